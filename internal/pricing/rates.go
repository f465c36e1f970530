package pricing

// HoursPerMonth is the average-month approximation used for every hourly
// rate conversion (365.25 * 24 / 12, rounded).
const HoursPerMonth = 730.0

// Term discount multipliers applied to compute monthly cost.
const (
	// ReservedMultiplier gives 40% off on-demand pricing.
	ReservedMultiplier = 0.6
	// SpotMultiplier gives 70% off on-demand pricing.
	SpotMultiplier = 0.3
)

// Rates contains the pricing tables for all estimable resource types,
// expressed in USD.
type Rates struct {
	// ComputeHourly maps instance size class to hourly rate.
	ComputeHourly map[string]float64
	// DefaultComputeHourly is used when a size class is unknown.
	DefaultComputeHourly float64

	// StoragePerGBMonth is the object-storage rate per GB-month.
	StoragePerGBMonth float64

	// DatabaseHourly maps database instance class to hourly rate.
	DatabaseHourly map[string]float64
	// DefaultDatabaseHourly is used when an instance class is unknown.
	DefaultDatabaseHourly float64
	// DatabaseStoragePerGBMonth is the database storage rate per GB-month.
	DatabaseStoragePerGBMonth float64

	// FunctionPerRequest is the per-invocation rate.
	FunctionPerRequest float64
	// FunctionPerGBSecond is the rate per GB-second of execution.
	FunctionPerGBSecond float64
}

// DefaultRates returns the built-in pricing table. Values approximate
// us-east-1 list prices; estimates are indicative, not billing-grade.
func DefaultRates() *Rates {
	return &Rates{
		ComputeHourly: map[string]float64{
			"t2.nano":   0.0058,
			"t2.micro":  0.0116,
			"t2.small":  0.023,
			"t2.medium": 0.0464,
			"t2.large":  0.0928,
			"t3.micro":  0.0104,
			"t3.small":  0.0208,
			"t3.medium": 0.0416,
			"m5.large":  0.096,
			"m5.xlarge": 0.192,
			"c5.large":  0.085,
		},
		DefaultComputeHourly: 0.05,

		StoragePerGBMonth: 0.023,

		DatabaseHourly: map[string]float64{
			"db.t3.micro":  0.017,
			"db.t3.small":  0.034,
			"db.t3.medium": 0.068,
			"db.m5.large":  0.171,
			"db.r5.large":  0.24,
		},
		DefaultDatabaseHourly: 0.05,

		DatabaseStoragePerGBMonth: 0.115,

		FunctionPerRequest:  0.0000002,
		FunctionPerGBSecond: 0.0000166667,
	}
}

func (r *Rates) computeHourly(sizeClass string) float64 {
	if rate, ok := r.ComputeHourly[sizeClass]; ok {
		return rate
	}
	return r.DefaultComputeHourly
}

func (r *Rates) databaseHourly(sizeClass string) float64 {
	if rate, ok := r.DatabaseHourly[sizeClass]; ok {
		return rate
	}
	return r.DefaultDatabaseHourly
}
