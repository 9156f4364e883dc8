// Package format turns ledger values into the strings printed on the audit report.
package format

import (
	"strings"

	"github.com/de-tools/audit-atlas/pkg/models/domain"
	"github.com/shopspring/decimal"
)

const (
	DefaultHashLen = 16
	NotAvailable   = "N/A"

	dateLayout      = "Jan 02, 2006, 15:04"
	dateShortLayout = "Jan 02, 06"
)

// Amounts are limited to what a float64 can hold. Bigger or tinier values parse as invalid, and
// the exponent floor keeps rescaling in sums and formatting bounded.
const (
	maxMagnitude = 308
	minMagnitude = -324
	minExponent  = -350
)

var (
	thousand = decimal.New(1, 3)
	million  = decimal.New(1, 6)
	billion  = decimal.New(1, 9)
)

// ParseAmount parses a ledger amount for aggregation. Only finite, non-negative numbers are valid;
// everything else reports false and a zero value.
func ParseAmount(s string) (decimal.Decimal, bool) {
	d, ok := parseDecimal(s)
	if !ok || d.IsNegative() {
		return decimal.Zero, false
	}
	return d, true
}

func parseDecimal(s string) (decimal.Decimal, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	if d.IsZero() {
		return decimal.Zero, true
	}
	exp := int64(d.Exponent())
	magnitude := exp + int64(d.NumDigits()) - 1
	if exp < minExponent || magnitude > maxMagnitude || magnitude < minMagnitude {
		return decimal.Zero, false
	}
	return d, true
}

// Money renders d with two decimals and thousands separators, e.g. 1234567.891 -> "1,234,567.89".
func Money(d decimal.Decimal) string {
	fixed := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if d.Round(2).IsNegative() {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

// Amount formats a source amount string. Unparsable input renders as "0.00".
func Amount(s string) string {
	d, ok := parseDecimal(s)
	if !ok {
		return Money(decimal.Zero)
	}
	return Money(d)
}

func Dollars(d decimal.Decimal) string {
	return "$" + Money(d)
}

// Compact shortens large values with K/M/B suffixes; smaller values fall back to Money.
func Compact(d decimal.Decimal) string {
	switch {
	case d.GreaterThanOrEqual(billion):
		return d.Div(billion).StringFixed(2) + "B"
	case d.GreaterThanOrEqual(million):
		return d.Div(million).StringFixed(2) + "M"
	case d.GreaterThanOrEqual(thousand):
		return d.Div(thousand).StringFixed(2) + "K"
	default:
		return Money(d)
	}
}

// Date renders a timestamp as "Jan 02, 2006, 15:04". Unparsable input is returned as-is.
func Date(ts string) string {
	t, ok := domain.ParseTimestamp(ts)
	if !ok {
		return ts
	}
	return t.Format(dateLayout)
}

func DateShort(ts string) string {
	t, ok := domain.ParseTimestamp(ts)
	if !ok {
		return ts
	}
	return t.Format(dateShortLayout)
}

// TruncHash keeps n/2 leading and n/2 trailing characters of a hash joined by "...".
// Hashes no longer than n come back unchanged; an empty hash becomes "N/A".
func TruncHash(hash string, n int) string {
	if hash == "" {
		return NotAvailable
	}
	r := []rune(hash)
	if len(r) <= n {
		return hash
	}
	half := n / 2
	return string(r[:half]) + "..." + string(r[len(r)-half:])
}

var typeLabels = map[domain.TransactionType]string{
	domain.TxLockCreated:    "Lock Created",
	domain.TxLockApproved:   "Lock Approved",
	domain.TxLockRejected:   "Lock Rejected",
	domain.TxReserveCreated: "Reserve Created",
	domain.TxMintCompleted:  "Mint Completed",
	domain.TxUSDInjection:   "USD Injection",
	domain.TxCertification:  "Certification",
}

func TypeLabel(t domain.TransactionType) string {
	if label, ok := typeLabels[t]; ok {
		return label
	}
	if t == "" {
		return "Unknown"
	}
	return string(t)
}

// OrNA substitutes the "N/A" placeholder for empty optional fields.
func OrNA(s string) string {
	if s == "" {
		return NotAvailable
	}
	return s
}

// Clip cuts s to at most n runes.
func Clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
