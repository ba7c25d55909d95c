package props

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/ledgerport-dev/ledgerport/internal/model"
)

// DateFormat selects a pattern from the fixed table of accepted date
// layouts.
type DateFormat int

const (
	DateYMD DateFormat = iota
	DateDMY
	DateMDY
	DateDM
	DateMD
)

var dateFormatNames = []string{"y-m-d", "d-m-y", "m-d-y", "d-m", "m-d"}

// DateFormatNames returns the names of all supported date formats, indexed
// by DateFormat.
func DateFormatNames() []string {
	return append([]string(nil), dateFormatNames...)
}

// DateFormatByName returns the date format with the given name.
func DateFormatByName(name string) (DateFormat, bool) {
	for i, n := range dateFormatNames {
		if n == name {
			return DateFormat(i), true
		}
	}
	return DateYMD, false
}

func (f DateFormat) String() string {
	if int(f) < len(dateFormatNames) {
		return dateFormatNames[f]
	}
	return "unknown"
}

func isDateSep(r rune) bool {
	return r == '-' || r == '/' || r == '.' || r == '\'' || r == ' '
}

// ParseDate parses a date string against the selected format. Fields may
// be separated by '-', '/', '.', ''' or space. Two-digit years below 70
// resolve to 20xx, others to 19xx. Formats without a year use the current
// year. Impossible dates (Feb 30) fail.
func ParseDate(value string, format DateFormat) (time.Time, error) {
	fields := strings.FieldsFunc(value, isDateSep)

	var order string
	switch format {
	case DateYMD:
		order = "ymd"
	case DateDMY:
		order = "dmy"
	case DateMDY:
		order = "mdy"
	case DateDM:
		order = "dm"
	case DateMD:
		order = "md"
	default:
		return time.Time{}, fmt.Errorf("unknown date format %d", format)
	}

	if len(fields) != len(order) {
		return time.Time{}, fmt.Errorf("%q doesn't match date format %s", value, format)
	}

	year := time.Now().Year()
	var month, day int
	for i, part := range order {
		n, err := strconv.Atoi(fields[i])
		if err != nil {
			return time.Time{}, fmt.Errorf("%q doesn't match date format %s", value, format)
		}
		switch part {
		case 'y':
			year = n
			if year < 70 {
				year += 2000
			} else if year < 100 {
				year += 1900
			}
		case 'm':
			month = n
		case 'd':
			day = n
		}
	}

	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || d.Month() != time.Month(month) || d.Day() != day {
		return time.Time{}, fmt.Errorf("%q is not a valid date", value)
	}
	return d, nil
}

// neutralTime pins a date to the neutral time of day used for posted and
// reconcile timestamps, so imported dates compare equal regardless of the
// importing host's timezone.
func neutralTime(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 10, 59, 0, 0, time.UTC)
}

// CurrencyFormat selects the grouping and decimal-mark convention used to
// parse monetary strings.
type CurrencyFormat int

const (
	// CurrencyLocale infers the decimal mark from the string itself: with
	// both marks present the later one is decimal; a lone mark followed by
	// exactly three digits in a number of at least four digits is read as
	// grouping.
	CurrencyLocale CurrencyFormat = iota
	// CurrencyPeriod reads '.' as the decimal mark and ',' as grouping.
	CurrencyPeriod
	// CurrencyComma reads ',' as the decimal mark and '.' as grouping.
	CurrencyComma
)

var currencyFormatNames = []string{"locale", "period", "comma"}

// CurrencyFormatNames returns the names of all supported currency formats,
// indexed by CurrencyFormat.
func CurrencyFormatNames() []string {
	return append([]string(nil), currencyFormatNames...)
}

// CurrencyFormatByName returns the currency format with the given name.
func CurrencyFormatByName(name string) (CurrencyFormat, bool) {
	for i, n := range currencyFormatNames {
		if n == name {
			return CurrencyFormat(i), true
		}
	}
	return CurrencyLocale, false
}

func (f CurrencyFormat) String() string {
	if int(f) < len(currencyFormatNames) {
		return currencyFormatNames[f]
	}
	return "unknown"
}

// ParseMonetary parses a monetary string per the selected currency format
// into an exact decimal. The empty string parses to zero; a string without
// any digit fails. Currency symbols, signs and spaces are stripped before
// the convention is applied.
func ParseMonetary(value string, format CurrencyFormat) (decimal.Decimal, error) {
	// An empty field is treated as zero.
	if value == "" {
		return decimal.Zero, nil
	}

	if !strings.ContainsFunc(value, unicode.IsDigit) {
		return decimal.Zero, fmt.Errorf("value doesn't appear to contain a valid number")
	}

	negative := false
	var b strings.Builder
	for _, r := range value {
		switch {
		case r == '-':
			negative = true
		case r == '+':
		case unicode.Is(unicode.Sc, r) || unicode.IsSpace(r):
		default:
			b.WriteRune(r)
		}
	}
	cleaned := b.String()

	var num string
	switch format {
	case CurrencyPeriod:
		num = strings.ReplaceAll(cleaned, ",", "")
	case CurrencyComma:
		num = strings.ReplaceAll(cleaned, ".", "")
		num = strings.ReplaceAll(num, ",", ".")
	case CurrencyLocale:
		num = normalizeLocaleNumber(cleaned)
	default:
		return decimal.Zero, fmt.Errorf("unknown currency format %d", format)
	}

	if !validNumber(num) {
		return decimal.Zero, fmt.Errorf("value can't be parsed into a number using the selected currency format")
	}

	d, err := decimal.NewFromString(num)
	if err != nil {
		return decimal.Zero, fmt.Errorf("value can't be parsed into a number using the selected currency format")
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}

// normalizeLocaleNumber rewrites a digits-and-separators string to plain
// period-decimal form using the heuristic described on CurrencyLocale.
func normalizeLocaleNumber(s string) string {
	lastDot := strings.LastIndexByte(s, '.')
	lastComma := strings.LastIndexByte(s, ',')

	var decimalMark byte
	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastDot > lastComma {
			decimalMark = '.'
		} else {
			decimalMark = ','
		}
	case lastDot >= 0:
		if separatorIsGrouping(s, '.') {
			decimalMark = 0
		} else {
			decimalMark = '.'
		}
	case lastComma >= 0:
		if separatorIsGrouping(s, ',') {
			decimalMark = 0
		} else {
			decimalMark = ','
		}
	default:
		return s
	}

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '.', ',':
			if c == decimalMark {
				b.WriteByte('.')
			}
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// separatorIsGrouping reports whether a lone separator kind reads as a
// thousands group: multiple occurrences always do; a single occurrence
// does when exactly three digits follow it and the number has at least
// four digits in total. A leading group that is empty or a bare zero
// never reads as grouping, so "0.005" keeps its decimal mark.
func separatorIsGrouping(s string, sep byte) bool {
	if strings.Count(s, string(sep)) > 1 {
		return true
	}
	idx := strings.IndexByte(s, sep)
	if head := s[:idx]; head == "" || head == "0" {
		return false
	}
	digits := 0
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			digits++
		}
	}
	return len(s)-idx-1 == 3 && digits >= 4
}

func validNumber(s string) bool {
	if s == "" {
		return false
	}
	dots := 0
	hasDigit := false
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] >= '0' && s[i] <= '9':
			hasDigit = true
		case s[i] == '.':
			dots++
			if dots > 1 {
				return false
			}
		default:
			return false
		}
	}
	return hasDigit
}

// FormatMonetary renders a decimal using the decimal mark of the selected
// currency format, without grouping. Parsing the result under the same
// format yields an equal amount.
func FormatMonetary(d decimal.Decimal, format CurrencyFormat) string {
	s := d.String()
	if format == CurrencyComma {
		s = strings.ReplaceAll(s, ".", ",")
	}
	return s
}

// CommodityLookup is the commodity table collaborator consumed by
// ParseCommodity.
type CommodityLookup interface {
	LookupUnique(uniqueName string) *model.Commodity
	Lookup(namespace, mnemonic string) *model.Commodity
	Namespaces() []string
}

// ParseCommodity resolves a commodity string: first as a unique name, then
// as a mnemonic in the currency namespace, then as a mnemonic in any other
// namespace in the table's enumeration order. An empty string means no
// commodity was specified and resolves to nil without error.
func ParseCommodity(value string, table CommodityLookup) (*model.Commodity, error) {
	if value == "" {
		return nil, nil
	}

	if c := table.LookupUnique(value); c != nil {
		return c, nil
	}
	if c := table.Lookup(model.CurrencyNamespace, value); c != nil {
		return c, nil
	}
	for _, ns := range table.Namespaces() {
		if ns == model.CurrencyNamespace {
			continue
		}
		if c := table.Lookup(ns, value); c != nil {
			return c, nil
		}
	}
	return nil, fmt.Errorf("value can't be parsed into a valid commodity")
}

// ParseReconciled maps a reconcile-state string to a ReconcileState.
// Single letters and word forms are accepted. A voided state resolves to
// not-reconciled here; voiding is handled at the transaction level.
func ParseReconciled(value string) (model.ReconcileState, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "n", "not reconciled", "unreconciled":
		return model.NotReconciled, nil
	case "c", "cleared":
		return model.Cleared, nil
	case "y", "reconciled":
		return model.Reconciled, nil
	case "f", "frozen":
		return model.Frozen, nil
	case "v", "void", "voided":
		return model.NotReconciled, nil
	}
	return model.NotReconciled, fmt.Errorf("value can't be parsed into a valid reconcile state")
}
