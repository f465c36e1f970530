package pricing

import (
	"fmt"
	"strings"
)

// Formatter renders cost estimates for chat display.
type Formatter struct{}

// NewFormatter creates a new formatter.
func NewFormatter() *Formatter {
	return &Formatter{}
}

// Format returns a readable per-resource breakdown plus the monthly total.
func (f *Formatter) Format(e Estimate) string {
	if len(e.Items) == 0 {
		return "No resources to estimate."
	}

	var sb strings.Builder
	sb.WriteString("Estimated monthly cost:\n")

	for _, item := range e.Items {
		name := item.Name
		if name == "" {
			name = string(item.Type)
		}
		line := fmt.Sprintf("  - %s (%s", name, item.Type)
		if item.SizeClass != "" {
			line += ", " + item.SizeClass
		}
		if item.Quantity > 1 {
			line += fmt.Sprintf(", x%d", item.Quantity)
		}
		line += fmt.Sprintf("): $%.2f/mo", item.MonthlyCost)
		if item.TotalCost != item.MonthlyCost {
			line += fmt.Sprintf(" ($%.2f total)", item.TotalCost)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("  Total: $%.2f/mo", e.TotalMonthly))
	return sb.String()
}
