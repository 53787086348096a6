// Package presenter formats customer values for display.
package presenter

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/umalmyha/ledger/internal/model"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CurrencyLabel is shown under every amount
const CurrencyLabel = "CAD"

const shortIDLength = 10

// Tone is the color hint of signed amount
type Tone string

const (
	ToneNeutral  Tone = "neutral"
	TonePositive Tone = "positive"
	ToneNegative Tone = "negative"
)

// Amount is a formatted money value
type Amount struct {
	Text     string
	Tone     Tone
	Currency string
}

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatAmount renders value with two decimals, positive values get "+" when showSign is set
func FormatAmount(value float64, showSign bool) Amount {
	rounded := decimal.NewFromFloat(value).Round(2)

	a := Amount{Text: currency(rounded), Tone: ToneNeutral, Currency: CurrencyLabel}
	if !showSign {
		return a
	}

	switch rounded.Sign() {
	case 1:
		a.Text = "+" + a.Text
		a.Tone = TonePositive
	case -1:
		a.Tone = ToneNegative
	}
	return a
}

func currency(d decimal.Decimal) string {
	abs := printer.Sprintf("%.2f", d.Abs().InexactFloat64())
	if d.Sign() < 0 {
		return "-$" + abs
	}
	return "$" + abs
}

// StatusClass returns badge css modifier of status
func StatusClass(s model.Status) string {
	return "badge-" + strings.ToLower(string(s))
}

// ShortID returns leading part of id shown under customer name
func ShortID(id string) string {
	r := []rune(id)
	if len(r) <= shortIDLength {
		return id
	}
	return string(r[:shortIDLength])
}
