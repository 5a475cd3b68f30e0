// Package tax implements Canadian province sales-tax rules: a fixed regime
// table, a category taxability classifier, and the tax calculation itself.
package tax

import (
	"errors"
	"fmt"
	"strconv"
)

// Province is a two-letter Canadian province code.
type Province string

const (
	Alberta              Province = "AB"
	BritishColumbia      Province = "BC"
	Manitoba             Province = "MB"
	NewBrunswick         Province = "NB"
	NewfoundlandLabrador Province = "NL"
	NovaScotia           Province = "NS"
	Ontario              Province = "ON"
	PrinceEdwardIsland   Province = "PE"
	Quebec               Province = "QC"
	Saskatchewan         Province = "SK"
)

// DefaultProvince is the regime used when a stored preference is missing or
// unrecognized. Unknown codes are recovered locally, never surfaced to the user.
const DefaultProvince = Ontario

// ErrUnknownProvince is returned by RateFor for codes outside the fixed ten.
var ErrUnknownProvince = errors.New("unknown province")

// Regime holds one province's sales-tax rates. Rates are stored in
// thousandths of a percent (Quebec's 9.975% QST is 9975) so the table stays
// exact in integer form; use the rate methods for fractional rates.
//
// GSTMilli is recorded on every row (the federal rate is uniform); where
// HSTMilli is set, the harmonized rate replaces GST+PST at checkout.
type Regime struct {
	Code     Province `json:"code"`
	Name     string   `json:"name"`
	GSTMilli int      `json:"-"`
	PSTMilli int      `json:"-"`
	HSTMilli int      `json:"-"`
}

// regimes is the fixed jurisdiction table. GST is federally uniform at 5%.
var regimes = []Regime{
	{Code: Alberta, Name: "Alberta", GSTMilli: 5000},
	{Code: BritishColumbia, Name: "British Columbia", GSTMilli: 5000, PSTMilli: 7000},
	{Code: Manitoba, Name: "Manitoba", GSTMilli: 5000, PSTMilli: 7000},
	{Code: NewBrunswick, Name: "New Brunswick", GSTMilli: 5000, HSTMilli: 15000},
	{Code: NewfoundlandLabrador, Name: "Newfoundland and Labrador", GSTMilli: 5000, HSTMilli: 15000},
	{Code: NovaScotia, Name: "Nova Scotia", GSTMilli: 5000, HSTMilli: 15000},
	{Code: Ontario, Name: "Ontario", GSTMilli: 5000, HSTMilli: 13000},
	{Code: PrinceEdwardIsland, Name: "Prince Edward Island", GSTMilli: 5000, HSTMilli: 15000},
	{Code: Quebec, Name: "Quebec", GSTMilli: 5000, PSTMilli: 9975},
	{Code: Saskatchewan, Name: "Saskatchewan", GSTMilli: 5000, PSTMilli: 6000},
}

var regimeByCode = func() map[Province]Regime {
	m := make(map[Province]Regime, len(regimes))
	for _, r := range regimes {
		m[r.Code] = r
	}
	return m
}()

// Regimes returns the full province table in stable order.
func Regimes() []Regime {
	out := make([]Regime, len(regimes))
	copy(out, regimes)
	return out
}

// RateFor looks up the regime for a province code. It fails with
// ErrUnknownProvince for anything outside the fixed ten.
func RateFor(code string) (Regime, error) {
	r, ok := regimeByCode[Province(code)]
	if !ok {
		return Regime{}, fmt.Errorf("%w: %q", ErrUnknownProvince, code)
	}
	return r, nil
}

// Resolve is RateFor with the documented recovery: unknown codes fall back to
// the default province instead of propagating an error.
func Resolve(code string) Regime {
	r, err := RateFor(code)
	if err != nil {
		return regimeByCode[DefaultProvince]
	}
	return r
}

// GSTRate returns the federal GST as a fraction (0.05).
func (r Regime) GSTRate() float64 { return float64(r.GSTMilli) / 100000 }

// PSTRate returns the provincial sales tax as a fraction, 0 for HST provinces.
func (r Regime) PSTRate() float64 { return float64(r.PSTMilli) / 100000 }

// HSTRate returns the harmonized rate as a fraction, 0 for non-HST provinces.
func (r Regime) HSTRate() float64 { return float64(r.HSTMilli) / 100000 }

// TotalRate returns the effective combined rate: HST where harmonized,
// otherwise GST+PST.
func (r Regime) TotalRate() float64 {
	if r.HSTMilli > 0 {
		return float64(r.HSTMilli) / 100000
	}
	return float64(r.GSTMilli+r.PSTMilli) / 100000
}

// Description renders the regime for display: "HST 13%", "GST 5% + PST 9.98%"
// (PST always to two decimals), or "GST 5%" for Alberta.
func (r Regime) Description() string {
	switch {
	case r.HSTMilli > 0:
		return "HST " + wholePercent(r.HSTMilli) + "%"
	case r.PSTMilli > 0:
		return "GST " + wholePercent(r.GSTMilli) + "% + PST " + twoDecimalPercent(r.PSTMilli) + "%"
	default:
		return "GST " + wholePercent(r.GSTMilli) + "%"
	}
}

// wholePercent renders a milli-percent value without decimals when it is a
// whole percentage, falling back to two decimals otherwise.
func wholePercent(milli int) string {
	if milli%1000 == 0 {
		return strconv.Itoa(milli / 1000)
	}
	return twoDecimalPercent(milli)
}

// twoDecimalPercent rounds a milli-percent value to hundredths of a percent,
// so 9975 renders as "9.98".
func twoDecimalPercent(milli int) string {
	h := (milli + 5) / 10
	return fmt.Sprintf("%d.%02d", h/100, h%100)
}
