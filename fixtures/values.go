package fixtures

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// Date is a calendar date written as YYYY-MM-DD in fixture records.
type Date struct {
	time.Time
}

// NewDate returns the date at midnight UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// UnmarshalYAML implements yaml.BytesUnmarshaler.
func (d *Date) UnmarshalYAML(b []byte) error {
	s := scalar(b)
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return fmt.Errorf("%w: date %q: want YYYY-MM-DD", ErrInvalidRecord, s)
	}
	d.Time = t
	return nil
}

// Long formats the date as "March 15, 2024".
func (d Date) Long() string {
	return d.Format("January 2, 2006")
}

// DayOfMonth formats the day with its English ordinal suffix, e.g. "1st".
func (d Date) DayOfMonth() string {
	return ordinal(d.Day())
}

// Execution formats the date the way agreements state it:
// "15th day of March, 2024".
func (d Date) Execution() string {
	return fmt.Sprintf("%s day of %s, %d", ordinal(d.Day()), d.Month(), d.Year())
}

// AddDays returns the date n days later.
func (d Date) AddDays(n int) Date {
	return Date{d.AddDate(0, 0, n)}
}

// AddYears returns the same calendar day n years later.
func (d Date) AddYears(n int) Date {
	return Date{d.AddDate(n, 0, 0)}
}

// Money is an amount of US dollars in cents.
type Money int64

// ParseMoney accepts "$1,845.00", "1845.5" or "18000".
func ParseMoney(s string) (Money, error) {
	raw := strings.TrimSpace(s)
	clean := strings.ReplaceAll(strings.TrimPrefix(raw, "$"), ",", "")
	if clean == "" {
		return 0, fmt.Errorf("%w: empty amount", ErrInvalidRecord)
	}
	whole, frac, hasFrac := strings.Cut(clean, ".")
	if !allDigits(whole) || (hasFrac && !allDigits(frac)) {
		return 0, fmt.Errorf("%w: amount %q", ErrInvalidRecord, raw)
	}
	dollars, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || dollars < 0 {
		return 0, fmt.Errorf("%w: amount %q", ErrInvalidRecord, raw)
	}
	var cents int64
	if hasFrac {
		if len(frac) == 0 || len(frac) > 2 {
			return 0, fmt.Errorf("%w: amount %q: at most two decimals", ErrInvalidRecord, raw)
		}
		if len(frac) == 1 {
			frac += "0"
		}
		cents, err = strconv.ParseInt(frac, 10, 64)
		if err != nil || cents < 0 {
			return 0, fmt.Errorf("%w: amount %q", ErrInvalidRecord, raw)
		}
	}
	return Money(dollars*100 + cents), nil
}

// UnmarshalYAML implements yaml.BytesUnmarshaler.
func (m *Money) UnmarshalYAML(b []byte) error {
	v, err := ParseMoney(scalar(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Dollars returns the whole-dollar part.
func (m Money) Dollars() int64 { return int64(m) / 100 }

// Cents returns the cent part.
func (m Money) Cents() int64 { return int64(m) % 100 }

// String formats the amount with grouping and cents: "$5,535.00".
func (m Money) String() string {
	return printer.Sprintf("$%d.%02d", m.Dollars(), m.Cents())
}

// Whole formats the amount without cents when they are zero: "$18,000".
func (m Money) Whole() string {
	if m.Cents() != 0 {
		return m.String()
	}
	return printer.Sprintf("$%d", m.Dollars())
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func scalar(b []byte) string {
	return strings.Trim(strings.TrimSpace(string(b)), `"'`)
}

func ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}

var fractionWords = map[int]string{
	2:  "One-half",
	3:  "One-third",
	4:  "One-quarter",
	5:  "One-fifth",
	6:  "One-sixth",
	7:  "One-seventh",
	8:  "One-eighth",
	9:  "One-ninth",
	10: "One-tenth",
}

// fractionWord names the share 1/n of a whole: "One-third".
func fractionWord(n int) string {
	if n == 1 {
		return "All"
	}
	if w, ok := fractionWords[n]; ok {
		return w
	}
	return fmt.Sprintf("1/%d", n)
}

var (
	smallNumbers = []string{
		"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
		"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen",
		"seventeen", "eighteen", "nineteen",
	}
	tens = []string{"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety"}
)

// numberWords spells out 0 to 999 in English, e.g. 30 -> "thirty".
func numberWords(n int) string {
	switch {
	case n < 0 || n > 999:
		return strconv.Itoa(n)
	case n < 20:
		return smallNumbers[n]
	case n < 100:
		if n%10 == 0 {
			return tens[n/10]
		}
		return tens[n/10] + "-" + smallNumbers[n%10]
	default:
		s := smallNumbers[n/100] + " hundred"
		if n%100 != 0 {
			s += " " + numberWords(n%100)
		}
		return s
	}
}
