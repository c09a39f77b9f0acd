package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/Veraticus/money-manager/internal/model"
)

// Formatter renders amounts and dates for one currency and locale.
type Formatter struct {
	printer   *message.Printer
	symbol    string
	separator string
	code      string
}

// NewFormatter builds a formatter for an ISO 4217 code such as "INR" and a
// BCP 47 locale such as "en-IN".
func NewFormatter(code, locale string) (*Formatter, error) {
	unit, err := currency.ParseISO(strings.TrimSpace(code))
	if err != nil {
		return nil, fmt.Errorf("unknown currency %q: %w", code, err)
	}
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return nil, fmt.Errorf("unknown locale %q: %w", locale, err)
	}

	printer := message.NewPrinter(tag)

	// The locale's decimal separator sits between the digits of 1.5.
	separator := "."
	if sample := []rune(printer.Sprint(number.Decimal(1.5, number.MinFractionDigits(1)))); len(sample) >= 3 {
		separator = string(sample[1 : len(sample)-1])
	}

	return &Formatter{
		printer:   printer,
		symbol:    printer.Sprint(currency.NarrowSymbol(unit)),
		separator: separator,
		code:      unit.String(),
	}, nil
}

// Currency returns the ISO code amounts are shown in.
func (f *Formatter) Currency() string {
	return f.code
}

// Amount renders d with the currency symbol, locale digit grouping and two
// decimals, e.g. ₹1,23,456.50.
func (f *Formatter) Amount(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}

	d = d.Round(2)
	whole := d.Truncate(0)
	cents := d.Sub(whole).Shift(2).IntPart()

	return sign + f.symbol + f.integer(whole) + f.separator +
		f.printer.Sprint(number.Decimal(cents, number.MinIntegerDigits(2)))
}

// integer groups whole by the locale. Values beyond int64 are printed without
// grouping rather than through a lossy float.
func (f *Formatter) integer(whole decimal.Decimal) string {
	n := whole.BigInt()
	if !n.IsInt64() {
		return n.String()
	}
	return f.printer.Sprint(number.Decimal(n.Int64()))
}

// Signed renders a transaction amount with the direction it moves money.
func (f *Formatter) Signed(txn model.Transaction) string {
	switch txn.Type() {
	case model.TransactionTypeIncome:
		return "+" + f.Amount(txn.Amount)
	case model.TransactionTypeExpense:
		return "-" + f.Amount(txn.Amount)
	default:
		return f.Amount(txn.Amount)
	}
}

// Date renders a calendar date in the persisted layout.
func (f *Formatter) Date(t time.Time) string {
	return t.Format(model.DateLayout)
}
