package simplify

import (
	"fmt"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatPayment renders a payment as a display string such as
// "Alice pays Bob $ 42.50". currencyCode must be a valid ISO 4217 code;
// the parse error for an unknown code is returned unchanged.
//
// Symbol choice and spacing come from x/text's English locale data and
// may shift between x/text releases, so callers (and tests) should not
// pin the exact rendering of the amount.
func FormatPayment(p Payment, currencyCode string) (string, error) {
	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		return "", err
	}
	amount := printer.Sprint(currency.Symbol(unit.Amount(p.Amount)))
	return fmt.Sprintf("%s pays %s %s", p.FromMemberName, p.ToMemberName, amount), nil
}
