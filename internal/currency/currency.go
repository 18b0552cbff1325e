// Package currency is the static, display-only conversion table. Rates are
// USD-based snapshots used for cosmetic price rendering; reservations are
// always recorded in USD.
package currency

import (
	"fmt"
	"sort"
	"strconv"
)

type Info struct {
	Code   string  `json:"code"`
	Rate   float64 `json:"rate"`
	Symbol string  `json:"symbol"`
	Name   string  `json:"name"`
}

var rates = map[string]Info{
	"USD": {Code: "USD", Rate: 1, Symbol: "$", Name: "US Dollar"},
	"NGN": {Code: "NGN", Rate: 1650, Symbol: "₦", Name: "Nigerian Naira"},
	"ZAR": {Code: "ZAR", Rate: 18.5, Symbol: "R", Name: "South African Rand"},
	"KES": {Code: "KES", Rate: 155, Symbol: "KSh", Name: "Kenyan Shilling"},
	"GHS": {Code: "GHS", Rate: 16.5, Symbol: "GH₵", Name: "Ghanaian Cedi"},
	"EGP": {Code: "EGP", Rate: 49, Symbol: "E£", Name: "Egyptian Pound"},
	"TZS": {Code: "TZS", Rate: 2650, Symbol: "TSh", Name: "Tanzanian Shilling"},
	"UGX": {Code: "UGX", Rate: 3750, Symbol: "USh", Name: "Ugandan Shilling"},
	"EUR": {Code: "EUR", Rate: 0.92, Symbol: "€", Name: "Euro"},
	"GBP": {Code: "GBP", Rate: 0.79, Symbol: "£", Name: "British Pound"},
}

func Lookup(code string) (Info, bool) {
	info, ok := rates[code]
	return info, ok
}

// Convert turns a USD amount into the target currency.
func Convert(code string, usdAmount float64) (float64, error) {
	info, ok := rates[code]
	if !ok {
		return 0, fmt.Errorf("unknown currency %q", code)
	}
	return usdAmount * info.Rate, nil
}

// Format renders a USD amount in the target currency with its symbol.
// Amounts at or above one thousand collapse to a short K/M form.
func Format(code string, usdAmount float64, short bool) (string, error) {
	info, ok := rates[code]
	if !ok {
		return "", fmt.Errorf("unknown currency %q", code)
	}
	converted := usdAmount * info.Rate

	var formatted string
	switch {
	case short && converted >= 1_000_000:
		formatted = strconv.FormatFloat(converted/1_000_000, 'f', 1, 64) + "M"
	case short && converted >= 1_000:
		formatted = strconv.FormatFloat(converted/1_000, 'f', 1, 64) + "K"
	default:
		formatted = strconv.FormatFloat(converted, 'f', 0, 64)
	}
	return info.Symbol + formatted, nil
}

// All lists the table sorted by code.
func All() []Info {
	out := make([]Info, 0, len(rates))
	for _, info := range rates {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
