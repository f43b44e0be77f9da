// Package format renders prices for display in the configured currency.
package format

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

type Formatter struct {
	printer *message.Printer
	unit    currency.Unit
	symbol  string
	scale   int
}

// New returns a Formatter for the ISO 4217 code, localized for tag.
func New(code string, tag language.Tag) (*Formatter, error) {
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		return nil, fmt.Errorf("unknown currency %q: %w", code, err)
	}

	scale, _ := currency.Standard.Rounding(unit)
	p := message.NewPrinter(tag)

	return &Formatter{
		printer: p,
		unit:    unit,
		symbol:  p.Sprint(currency.Symbol(unit)),
		scale:   scale,
	}, nil
}

func (f *Formatter) Currency() string {
	return f.unit.String()
}

// Price rounds d to the currency's minor unit and formats it with its
// symbol, e.g. "$1,234.50".
func (f *Formatter) Price(d decimal.Decimal) string {
	rounded := d.Round(int32(f.scale))
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Abs()
	}
	v, _ := rounded.Float64()
	return sign + f.symbol + f.printer.Sprint(number.Decimal(v, number.Scale(f.scale)))
}

// Discount renders a percentage off, e.g. "-20%". Zero renders empty.
func Discount(percent int) string {
	if percent <= 0 {
		return ""
	}
	return fmt.Sprintf("-%d%%", percent)
}

// Sold renders a units-sold count the way product cards show it,
// e.g. "1.2k sold".
func Sold(n int) string {
	switch {
	case n >= 1000000:
		return fmt.Sprintf("%.1fM sold", float64(n)/1000000)
	case n >= 1000:
		return fmt.Sprintf("%.1fk sold", float64(n)/1000)
	default:
		return fmt.Sprintf("%d sold", n)
	}
}
