package convert

import "github.com/deepdatta/fixofx/internal/model"

// euroCurrencyMarker is the currency field value some European banks put
// on every record of a euro-denominated export.
const euroCurrencyMarker = "^EUR"

// guessFormats is the read-only first pass: it scans every extracted
// transaction and settles statement-wide conventions before any
// rewriting happens.
//
// Date convention: if any single transaction's date has a leading number
// in the 13..31 range and still parses month-first, the whole statement
// is treated as day-first. This is a guess: an all-low-day statement
// from a day-first bank stays month-first, but that is the only signal
// available inside one export. Parse failures here are ignored; the
// authoritative parse happens in the normalization pass.
//
// Currency: when no default currency was configured, the first
// transaction carrying the euro marker sets the statement default.
func (c *Converter) guessFormats(txns []model.Transaction) (dayFirst bool, curDef string) {
	dayFirst = c.opts.DayFirst
	curDef = c.opts.CurDef

	for _, txn := range txns {
		if txn.Date.IsSet() {
			raw := txn.Date.Value()
			if _, err := parseDate(raw, false); err == nil {
				if day, ok := leadingNumber(raw); ok && day >= 13 && day <= 31 {
					dayFirst = true
				}
			}
		}
		if curDef == "" && txn.Currency.Or("") == euroCurrencyMarker {
			curDef = "EUR"
		}
	}
	return dayFirst, curDef
}
