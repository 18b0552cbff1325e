package estimate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriceFormula(t *testing.T) {
	// h1: base 35000, solar 2500/kW, battery 800/kWh
	got := Price(35000, 2500, 800, 8, 20)
	assert.Equal(t, 35000+8*2500.0+20*800.0, got)

	// deterministic: identical inputs, identical price
	assert.Equal(t, got, Price(35000, 2500, 800, 8, 20))
}

func TestPriceBulkPricing(t *testing.T) {
	// b3 carries discounted per-unit pricing
	got := Price(95000, 2200, 700, 30, 80)
	assert.Equal(t, 95000+30*2200.0+80*700.0, got)
}

func TestDailyUsageKWh(t *testing.T) {
	// $200/month at $0.15/kWh over 30 days
	assert.InDelta(t, 44.444, DailyUsageKWh(200), 0.001)
}

func TestBackupHours(t *testing.T) {
	daily := DailyUsageKWh(200)

	noEV := BackupHours(20, daily, false)
	assert.InDelta(t, (20/daily)*24, noEV, 1e-9)

	withEV := BackupHours(20, daily, true)
	assert.InDelta(t, noEV+(EVContributionKWh/daily)*24, withEV, 1e-9)
	assert.Greater(t, withEV, noEV)
}

func TestBackupHoursZeroUsage(t *testing.T) {
	assert.Equal(t, 0.0, BackupHours(20, 0, true))
}

func TestEstimate(t *testing.T) {
	sys := Estimate(35000, 2500, 800, 8, 20, true, 200)

	assert.Equal(t, 71000.0, sys.SystemCost)
	assert.InDelta(t, 71000*0.30, sys.FederalTaxCredit, 1e-9)
	assert.InDelta(t, 71000*0.70, sys.NetCost, 1e-9)
	assert.InDelta(t, 8*4.5, sys.DailySolarKWh, 1e-9)
	assert.InDelta(t, 8*4.5*0.15*30, sys.MonthlySavings, 1e-9)
	assert.InDelta(t, sys.MonthlySavings*12, sys.AnnualSavings, 1e-9)
	assert.InDelta(t, sys.NetCost/sys.AnnualSavings, sys.PaybackYears, 1e-9)
	assert.Greater(t, sys.BackupHours, 0.0)
}
