//go:build !integration

package pricing_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/alex-galey/cloudpilot/internal/pricing"
)

var _ = Describe("Calculator", func() {
	var calculator *pricing.Calculator

	BeforeEach(func() {
		calculator = pricing.NewCalculator()
	})

	Context("compute resources", func() {
		It("should price an instance by hourly rate times hours per month", func() {
			estimate := calculator.Estimate([]pricing.ResourceSpec{
				{Name: "web", Type: pricing.ResourceCompute, SizeClass: "t2.micro"},
			})

			// 0.0116 * 730
			Expect(estimate.Items).To(HaveLen(1))
			Expect(estimate.Items[0].MonthlyCost).To(BeNumerically("~", 8.47, 0.001))
			Expect(estimate.TotalMonthly).To(BeNumerically("~", 8.47, 0.001))
		})

		It("should multiply by quantity", func() {
			estimate := calculator.Estimate([]pricing.ResourceSpec{
				{Type: pricing.ResourceCompute, SizeClass: "t2.micro", Quantity: 2},
			})

			Expect(estimate.Items[0].MonthlyCost).To(BeNumerically("~", 16.94, 0.001))
		})

		It("should apply the reserved term discount", func() {
			onDemand := calculator.Estimate([]pricing.ResourceSpec{
				{Type: pricing.ResourceCompute, SizeClass: "t2.micro", TermType: pricing.TermOnDemand},
			})
			reserved := calculator.Estimate([]pricing.ResourceSpec{
				{Type: pricing.ResourceCompute, SizeClass: "t2.micro", TermType: pricing.TermReserved},
			})

			Expect(reserved.TotalMonthly).To(BeNumerically("~", 0.0116*730*0.6, 0.01))
			Expect(reserved.TotalMonthly).To(BeNumerically("<", onDemand.TotalMonthly))
		})

		It("should apply the spot discount", func() {
			spot := calculator.Estimate([]pricing.ResourceSpec{
				{Type: pricing.ResourceCompute, SizeClass: "t2.micro", TermType: pricing.TermSpot},
			})

			Expect(spot.TotalMonthly).To(BeNumerically("~", 0.0116*730*0.3, 0.01))
		})

		It("should fall back to the default rate for unknown size classes", func() {
			estimate := calculator.Estimate([]pricing.ResourceSpec{
				{Type: pricing.ResourceCompute, SizeClass: "x99.colossal"},
			})

			Expect(estimate.TotalMonthly).To(BeNumerically("~", 0.05*730, 0.01))
		})
	})

	Context("storage resources", func() {
		It("should price by GB-month", func() {
			estimate := calculator.Estimate([]pricing.ResourceSpec{
				{Type: pricing.ResourceStorage, StorageGB: 100},
			})

			Expect(estimate.TotalMonthly).To(BeNumerically("~", 2.30, 0.001))
		})
	})

	Context("database resources", func() {
		It("should price instance hours plus storage", func() {
			estimate := calculator.Estimate([]pricing.ResourceSpec{
				{Type: pricing.ResourceDatabase, SizeClass: "db.t3.micro", StorageGB: 20},
			})

			// 0.017*730 + 20*0.115
			Expect(estimate.TotalMonthly).To(BeNumerically("~", 14.71, 0.001))
		})

		It("should double the cost for multi-zone deployments", func() {
			single := calculator.Estimate([]pricing.ResourceSpec{
				{Type: pricing.ResourceDatabase, SizeClass: "db.t3.micro", StorageGB: 20},
			})
			multi := calculator.Estimate([]pricing.ResourceSpec{
				{Type: pricing.ResourceDatabase, SizeClass: "db.t3.micro", StorageGB: 20, MultiZone: true},
			})

			Expect(multi.TotalMonthly).To(BeNumerically("~", single.TotalMonthly*2, 0.01))
		})
	})

	Context("function resources", func() {
		It("should price requests plus GB-seconds", func() {
			estimate := calculator.Estimate([]pricing.ResourceSpec{
				{
					Type:          pricing.ResourceFunction,
					RequestCount:  1_000_000,
					AvgDurationMs: 200,
					MemoryMB:      512,
				},
			})

			// 1M * 0.0000002 + (1M * 0.2s) * 0.5GB * 0.0000166667
			Expect(estimate.TotalMonthly).To(BeNumerically("~", 1.87, 0.01))
		})
	})

	Context("multi-resource estimates", func() {
		It("should sum line items into the monthly total", func() {
			estimate := calculator.Estimate([]pricing.ResourceSpec{
				{Type: pricing.ResourceCompute, SizeClass: "t2.micro"},
				{Type: pricing.ResourceStorage, StorageGB: 100},
			})

			Expect(estimate.Items).To(HaveLen(2))
			Expect(estimate.TotalMonthly).To(BeNumerically("~", estimate.Items[0].MonthlyCost+estimate.Items[1].MonthlyCost, 0.01))
		})

		It("should scale the total cost by the commitment duration", func() {
			estimate := calculator.Estimate([]pricing.ResourceSpec{
				{Type: pricing.ResourceCompute, SizeClass: "t2.micro", DurationMonths: 12},
			})

			Expect(estimate.Items[0].TotalCost).To(BeNumerically("~", estimate.Items[0].MonthlyCost*12, 0.1))
		})
	})

	Context("determinism", func() {
		It("should return identical estimates for identical inputs", func() {
			specs := []pricing.ResourceSpec{
				{Type: pricing.ResourceCompute, SizeClass: "m5.large", Quantity: 3, TermType: pricing.TermReserved},
				{Type: pricing.ResourceDatabase, SizeClass: "db.t3.micro", StorageGB: 50, MultiZone: true},
			}

			first := calculator.Estimate(specs)
			second := calculator.Estimate(specs)

			Expect(first).To(Equal(second))
		})
	})
})

var _ = Describe("ParseResourceType", func() {
	It("should accept common aliases", func() {
		for alias, want := range map[string]pricing.ResourceType{
			"compute":  pricing.ResourceCompute,
			"EC2":      pricing.ResourceCompute,
			"bucket":   pricing.ResourceStorage,
			"rds":      pricing.ResourceDatabase,
			"lambda":   pricing.ResourceFunction,
			"function": pricing.ResourceFunction,
		} {
			got, ok := pricing.ParseResourceType(alias)
			Expect(ok).To(BeTrue(), "alias %q", alias)
			Expect(got).To(Equal(want))
		}
	})

	It("should reject unknown types", func() {
		_, ok := pricing.ParseResourceType("quantum")
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("Formatter", func() {
	It("should render a line per resource and the total", func() {
		calculator := pricing.NewCalculator()
		formatter := pricing.NewFormatter()

		estimate := calculator.Estimate([]pricing.ResourceSpec{
			{Name: "web", Type: pricing.ResourceCompute, SizeClass: "t2.micro", Quantity: 2},
		})

		text := formatter.Format(estimate)

		Expect(text).To(ContainSubstring("Estimated monthly cost"))
		Expect(text).To(ContainSubstring("web"))
		Expect(text).To(ContainSubstring("t2.micro"))
		Expect(text).To(ContainSubstring("Total:"))
	})
})
