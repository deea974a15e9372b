package neighborhood

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/rotisserie/eris"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ParseMinutes reads the leading integer of a commute string such as "25min".
func ParseMinutes(s string) (int, error) {
	s = strings.TrimSpace(s)
	end := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsDigit(r) })
	if end == -1 {
		end = len(s)
	}
	if end == 0 {
		return 0, eris.Errorf("neighborhood: commute %q has no leading minutes", s)
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, eris.Wrapf(err, "neighborhood: parse commute %q", s)
	}
	return n, nil
}

// ParseCurrency reads a currency string such as "£2,800" as whole units.
func ParseCurrency(s string) (int, error) {
	digits := strings.TrimLeftFunc(strings.TrimSpace(s), func(r rune) bool { return !unicode.IsDigit(r) })
	digits = strings.ReplaceAll(digits, ",", "")
	if digits == "" {
		return 0, eris.Errorf("neighborhood: rent %q has no amount", s)
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, eris.Wrapf(err, "neighborhood: parse rent %q", s)
	}
	return n, nil
}

var gbPrinter = message.NewPrinter(language.BritishEnglish)

// FormatRent renders a monthly amount the way the catalog writes it.
func FormatRent(amount int) string {
	return gbPrinter.Sprintf("£%d", amount)
}

// FormatMinutes renders a commute the way the catalog writes it.
func FormatMinutes(minutes int) string {
	return strconv.Itoa(minutes) + "min"
}
