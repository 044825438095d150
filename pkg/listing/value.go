package listing

import (
	"cmp"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Kind identifies how a Value is ordered.
type Kind int

const (
	KindMissing Kind = iota
	KindText
	KindNumber
	KindDecimal
	KindTime
)

// Value is a single field of a record as seen by filters and comparators.
type Value struct {
	kind Kind
	text string
	num  float64
	dec  decimal.Decimal
	at   time.Time
}

// Missing is the value of an absent field.
func Missing() Value { return Value{} }

// Text wraps a string. Empty strings are real values; use OptionalText for
// fields where "" means unset.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// OptionalText treats the empty string as missing.
func OptionalText(s string) Value {
	if s == "" {
		return Missing()
	}
	return Text(s)
}

// Number wraps a float. NaN is treated as missing.
func Number(f float64) Value {
	if math.IsNaN(f) {
		return Missing()
	}
	return Value{kind: KindNumber, num: f}
}

// Int wraps an integer.
func Int(n int) Value { return Value{kind: KindNumber, num: float64(n)} }

// Decimal wraps an exact decimal amount.
func Decimal(d decimal.Decimal) Value { return Value{kind: KindDecimal, dec: d} }

// Time wraps an instant. The zero time is treated as missing.
func Time(t time.Time) Value {
	if t.IsZero() {
		return Missing()
	}
	return Value{kind: KindTime, at: t}
}

// Kind reports the value kind.
func (v Value) Kind() Kind { return v.kind }

// IsMissing reports whether the field is absent.
func (v Value) IsMissing() bool { return v.kind == KindMissing }

// String renders the value for search and filter matching.
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindDecimal:
		return v.dec.String()
	case KindTime:
		return v.at.Format("2006-01-02")
	default:
		return ""
	}
}

// Compare orders two present values by their natural ordering: lexicographic
// for text, numeric for numbers and decimals, chronological for times.
// Numbers and decimals compare with each other; any other mix of kinds is
// ordered by kind so the result stays total. Missing values sort after
// everything else.
func Compare(a, b Value) int {
	if a.kind == b.kind {
		switch a.kind {
		case KindText:
			return strings.Compare(a.text, b.text)
		case KindNumber:
			return cmp.Compare(a.num, b.num)
		case KindDecimal:
			return a.dec.Cmp(b.dec)
		case KindTime:
			return a.at.Compare(b.at)
		default:
			return 0
		}
	}

	if a.isNumeric() && b.isNumeric() {
		return a.asDecimal().Cmp(b.asDecimal())
	}

	if a.kind == KindMissing {
		return 1
	}
	if b.kind == KindMissing {
		return -1
	}
	return cmp.Compare(a.kind, b.kind)
}

func (v Value) isNumeric() bool {
	return v.kind == KindNumber || v.kind == KindDecimal
}

func (v Value) asDecimal() decimal.Decimal {
	if v.kind == KindDecimal {
		return v.dec
	}
	return decimal.NewFromFloat(v.num)
}
