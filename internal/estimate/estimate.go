// Package estimate holds the configurator arithmetic: price, savings and
// backup-runtime figures. Everything here is a pure function; nothing is
// persisted except the price, which the reservation flow computes once at
// creation time.
package estimate

const (
	// Average solar yield assumed per installed kW, in kWh per day.
	SolarYieldPerKWDay = 4.5

	// Grid rate assumed for savings and usage math, USD per kWh.
	GridRatePerKWh = 0.15

	// Usable energy an integrated EV is assumed to contribute during an
	// outage, in kWh.
	EVContributionKWh = 75

	// Federal investment tax credit share.
	FederalTaxCreditRate = 0.30
)

// Price is the reservation price formula: base price plus per-unit solar
// and battery pricing. No rounding is applied.
func Price(basePrice, solarPricePerKW, batteryPricePerKWh float64, solarKW, batteryKWh int) float64 {
	return basePrice + float64(solarKW)*solarPricePerKW + float64(batteryKWh)*batteryPricePerKWh
}

// DailyUsageKWh derives average household usage from a monthly bill at the
// assumed grid rate.
func DailyUsageKWh(avgMonthlyBill float64) float64 {
	return (avgMonthlyBill / GridRatePerKWh) / 30
}

// BackupHours is how long the battery carries the household at its average
// daily usage. EV integration adds a fixed usable-energy contribution.
func BackupHours(batteryKWh int, dailyUsageKWh float64, evIntegration bool) float64 {
	if dailyUsageKWh <= 0 {
		return 0
	}
	hours := (float64(batteryKWh) / dailyUsageKWh) * 24
	if evIntegration {
		hours += (EVContributionKWh / dailyUsageKWh) * 24
	}
	return hours
}

// System is the full configurator result set for one configuration.
type System struct {
	SystemCost       float64 `json:"system_cost"`
	FederalTaxCredit float64 `json:"federal_tax_credit"`
	NetCost          float64 `json:"net_cost"`
	DailySolarKWh    float64 `json:"daily_solar_kwh"`
	MonthlySavings   float64 `json:"monthly_savings"`
	AnnualSavings    float64 `json:"annual_savings"`
	PaybackYears     float64 `json:"payback_years"`
	BackupHours      float64 `json:"backup_hours"`
}

// Estimate computes every configurator figure from the product pricing row
// and the requested sizes.
func Estimate(basePrice, solarPricePerKW, batteryPricePerKWh float64, solarKW, batteryKWh int, evIntegration bool, avgMonthlyBill float64) System {
	cost := Price(basePrice, solarPricePerKW, batteryPricePerKWh, solarKW, batteryKWh)
	credit := cost * FederalTaxCreditRate
	net := cost - credit

	dailySolar := float64(solarKW) * SolarYieldPerKWDay
	monthly := dailySolar * GridRatePerKWh * 30
	annual := monthly * 12

	payback := 0.0
	if annual > 0 {
		payback = net / annual
	}

	return System{
		SystemCost:       cost,
		FederalTaxCredit: credit,
		NetCost:          net,
		DailySolarKWh:    dailySolar,
		MonthlySavings:   monthly,
		AnnualSavings:    annual,
		PaybackYears:     payback,
		BackupHours:      BackupHours(batteryKWh, DailyUsageKWh(avgMonthlyBill), evIntegration),
	}
}
