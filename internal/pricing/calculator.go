// Package pricing provides deterministic monthly cost estimation for cloud
// resource descriptions. The calculator is a pure function over its inputs;
// it is used standalone (the estimate-cost tool) and to annotate deployment
// plans before confirmation.
package pricing

import (
	"math"
	"strings"
)

// ResourceType is a category of estimable cloud resource.
type ResourceType string

const (
	ResourceCompute  ResourceType = "compute"
	ResourceStorage  ResourceType = "storage"
	ResourceDatabase ResourceType = "database"
	ResourceFunction ResourceType = "function"
)

// Term is the purchasing term for compute capacity.
type Term string

const (
	TermOnDemand Term = "OnDemand"
	TermReserved Term = "Reserved"
	TermSpot     Term = "Spot"
)

// ResourceSpec describes one resource to estimate. Zero values fall back to
// sensible defaults (quantity 1, duration 1 month, on-demand term).
type ResourceSpec struct {
	Name           string
	Type           ResourceType
	SizeClass      string
	Quantity       int
	DurationMonths int
	TermType       Term
	Region         string

	// Storage and database fields
	StorageGB float64
	MultiZone bool

	// Function fields
	RequestCount  float64
	AvgDurationMs float64
	MemoryMB      float64
}

// LineItem is the estimate for a single resource spec.
type LineItem struct {
	Name        string
	Type        ResourceType
	SizeClass   string
	Quantity    int
	MonthlyCost float64
	TotalCost   float64
}

// Estimate is the result of one calculation: a per-resource breakdown plus
// the aggregate monthly total, all rounded to 2 decimal places for display.
type Estimate struct {
	Items        []LineItem
	TotalMonthly float64
}

// Calculator estimates resource costs from a pricing table. It holds no
// mutable state; identical inputs always produce identical estimates.
type Calculator struct {
	rates *Rates
}

// NewCalculator creates a calculator with the built-in pricing table.
func NewCalculator() *Calculator {
	return &Calculator{rates: DefaultRates()}
}

// NewCalculatorWithRates creates a calculator with a specific pricing table.
func NewCalculatorWithRates(rates *Rates) *Calculator {
	return &Calculator{rates: rates}
}

// Estimate calculates the monthly cost of each spec and the aggregate total.
func (c *Calculator) Estimate(specs []ResourceSpec) Estimate {
	estimate := Estimate{Items: make([]LineItem, 0, len(specs))}

	for _, spec := range specs {
		item := c.estimateOne(spec)
		estimate.Items = append(estimate.Items, item)
		estimate.TotalMonthly += item.MonthlyCost
	}

	estimate.TotalMonthly = Round2(estimate.TotalMonthly)
	return estimate
}

func (c *Calculator) estimateOne(spec ResourceSpec) LineItem {
	quantity := spec.Quantity
	if quantity <= 0 {
		quantity = 1
	}
	months := spec.DurationMonths
	if months <= 0 {
		months = 1
	}

	var monthly float64
	switch spec.Type {
	case ResourceCompute:
		monthly = c.rates.computeHourly(spec.SizeClass) * HoursPerMonth
		monthly *= termMultiplier(spec.TermType)
	case ResourceStorage:
		monthly = spec.StorageGB * c.rates.StoragePerGBMonth
	case ResourceDatabase:
		monthly = spec.StorageGB*c.rates.DatabaseStoragePerGBMonth +
			c.rates.databaseHourly(spec.SizeClass)*HoursPerMonth
		if spec.MultiZone {
			monthly *= 2
		}
	case ResourceFunction:
		computeGBSeconds := (spec.RequestCount * spec.AvgDurationMs / 1000) * (spec.MemoryMB / 1024)
		monthly = spec.RequestCount*c.rates.FunctionPerRequest +
			computeGBSeconds*c.rates.FunctionPerGBSecond
	}

	monthly *= float64(quantity)

	return LineItem{
		Name:        spec.Name,
		Type:        spec.Type,
		SizeClass:   spec.SizeClass,
		Quantity:    quantity,
		MonthlyCost: Round2(monthly),
		TotalCost:   Round2(monthly * float64(months)),
	}
}

func termMultiplier(term Term) float64 {
	switch term {
	case TermReserved:
		return ReservedMultiplier
	case TermSpot:
		return SpotMultiplier
	default:
		return 1.0
	}
}

// ParseResourceType normalizes a free-form type string from a directive.
func ParseResourceType(value string) (ResourceType, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "compute", "instance", "ec2":
		return ResourceCompute, true
	case "storage", "bucket", "s3":
		return ResourceStorage, true
	case "database", "db", "rds":
		return ResourceDatabase, true
	case "function", "lambda", "serverless":
		return ResourceFunction, true
	default:
		return "", false
	}
}

// ParseTerm normalizes a free-form term string; unknown terms are on-demand.
func ParseTerm(value string) Term {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "reserved":
		return TermReserved
	case "spot":
		return TermSpot
	default:
		return TermOnDemand
	}
}

// Round2 rounds to 2 decimal places for display.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
