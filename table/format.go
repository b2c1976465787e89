package table

import (
	"fmt"
	"math/big"
	"reflect"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultDateLayout = "02/01/2006"
	FooterDateLayout  = "Jan 02, 06"

	groupSeparator = ","
)

// FormatCell renders the value of column in row according to the column's Formatting.
// Zero values render as an empty string.
func FormatCell(row Row, column string) string {
	c, _, ok := findColumn(row, column)
	if !ok {
		return ""
	}
	v := row.Value(c.Field)
	if isEmpty(v) {
		return ""
	}

	switch c.Formatting {
	case Float:
		if d, ok := toDecimal(v); ok {
			return formatDecimal(d, 2)
		}
	case Integer:
		if d, ok := toDecimal(v); ok {
			return formatDecimal(d, 0)
		}
	case Date:
		if t, ok := toTime(v); ok {
			if c.DateFormat != nil {
				return c.DateFormat(t)
			}
			return t.Format(DefaultDateLayout)
		}
	}
	return fmt.Sprint(v)
}

// FooterValue computes the default footer cell of column over rows: "Total" for the
// first column, the date range for date columns and the sum for numeric columns.
func FooterValue(rows []Row, column string) string {
	if len(rows) == 0 {
		return ""
	}
	c, index, ok := findColumn(rows[0], column)
	if !ok {
		return ""
	}
	if index == 0 {
		return "Total"
	}

	switch {
	case c.Type == Date:
		var lo, hi time.Time
		for _, r := range rows {
			t, ok := toTime(r.Value(c.Field))
			if !ok || t.IsZero() {
				continue
			}
			if lo.IsZero() || t.Before(lo) {
				lo = t
			}
			if hi.IsZero() || t.After(hi) {
				hi = t
			}
		}
		if lo.IsZero() {
			return ""
		}
		return lo.Format(FooterDateLayout) + " - " + hi.Format(FooterDateLayout)
	case c.Type.numeric():
		sum := decimal.Zero
		for _, r := range rows {
			if d, ok := toDecimal(r.Value(c.Field)); ok {
				sum = sum.Add(d)
			}
		}
		if sum.Equal(sum.Truncate(0)) {
			return formatDecimal(sum, 0)
		}
		return formatDecimal(sum, 2)
	}
	return ""
}

// formatDecimal rounds d to places and groups the integer digits by thousands.
// It works on the decimal string so large sums keep every digit.
func formatDecimal(d decimal.Decimal, places int) string {
	fixed := d.StringFixed(int32(places))
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}
	whole, fraction, hasFraction := strings.Cut(fixed, ".")

	var b strings.Builder
	b.WriteString(sign)
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteString(groupSeparator)
		}
		b.WriteRune(r)
	}
	if hasFraction {
		b.WriteString(".")
		b.WriteString(fraction)
	}
	return b.String()
}

func isEmpty(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case decimal.Decimal:
		return x.IsZero()
	case time.Time:
		return x.IsZero()
	}
	return reflect.ValueOf(v).IsZero()
}

// toDecimal accepts Go numbers, decimals and free-form numeric strings such as "1,400$".
func toDecimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int32:
		return decimal.NewFromInt32(n), true
	case int64:
		return decimal.NewFromInt(n), true
	case uint:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(uint64(n)), 0), true
	case uint64:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(n), 0), true
	case float32:
		return decimal.NewFromFloat32(n), true
	case float64:
		return decimal.NewFromFloat(n), true
	case string:
		cleaned := strings.Map(func(r rune) rune {
			if (r >= '0' && r <= '9') || r == '.' || r == '-' {
				return r
			}
			return -1
		}, n)
		if cleaned == "" {
			return decimal.Zero, false
		}
		d, err := decimal.NewFromString(cleaned)
		return d, err == nil
	}
	return decimal.Zero, false
}

func toTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		if t != nil {
			return *t, true
		}
	}
	return time.Time{}, false
}

// compareValues orders missing values first, then by the column's type.
func compareValues(a, b any, kind DataType) int {
	switch {
	case kind.numeric():
		da, aok := toDecimal(a)
		db, bok := toDecimal(b)
		if aok && bok {
			return da.Cmp(db)
		}
		return comparePresence(aok, bok)
	case kind == Date:
		ta, aok := toTime(a)
		tb, bok := toTime(b)
		if aok && bok {
			return ta.Compare(tb)
		}
		return comparePresence(aok, bok)
	case kind == Boolean:
		ba, _ := a.(bool)
		bb, _ := b.(bool)
		switch {
		case ba == bb:
			return 0
		case bb:
			return -1
		default:
			return 1
		}
	}
	return strings.Compare(lowerText(a), lowerText(b))
}

func comparePresence(a, b bool) int {
	switch {
	case a == b:
		return 0
	case b:
		return -1
	default:
		return 1
	}
}

func lowerText(v any) string {
	if v == nil {
		return ""
	}
	return strings.ToLower(fmt.Sprint(v))
}
