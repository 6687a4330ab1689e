package convert

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/deepdatta/fixofx/internal/model"
)

// ErrAmbiguousAmount marks a transaction whose amount is an explicit
// unknown-value sentinel. Some credit card exports (Home Depot, notably)
// send companion records carrying a memo but no standalone amount; there
// is no reliable way to reattach them, so the record is dropped rather
// than guessed at. Dropping is per-transaction and never aborts the
// batch.
var ErrAmbiguousAmount = errors.New("transaction amount is undefined")

var allDigits = regexp.MustCompile(`^[0-9]+$`)

// maskedCardPrefix is how some credit card exports mask the card number
// they mistakenly put in the check number field.
const maskedCardPrefix = "XXXX-XXXX-XXXX"

// normalizer rewrites extracted transactions into canonical form using
// the conventions settled by the detection pass. Rules run in a fixed
// order (date, amount, number, type, payee) and later rules read the
// earlier rules' output, so the order is load-bearing.
type normalizer struct {
	dayFirst bool
	acctType string
}

// normalize returns a canonical copy of txn, or an error: DateParseError
// is fatal for the conversion, ErrAmbiguousAmount drops just this
// transaction.
func (n normalizer) normalize(txn model.Transaction) (model.Transaction, error) {
	var err error
	if txn, err = n.normalizeDate(txn); err != nil {
		return txn, err
	}
	if txn, err = n.normalizeAmount(txn); err != nil {
		return txn, err
	}
	txn = n.normalizeNumber(txn)
	txn = n.normalizeType(txn)
	txn = n.normalizePayee(txn)
	return txn, nil
}

func (n normalizer) normalizeDate(txn model.Transaction) (model.Transaction, error) {
	if !txn.Date.IsSet() {
		return txn, nil
	}
	raw := strings.TrimSpace(txn.Date.Value())
	parsed, err := parseDate(raw, n.dayFirst)
	if err != nil {
		return txn, err
	}
	txn.Date = model.F(parsed.Format("20060102"))
	return txn, nil
}

func (n normalizer) normalizeAmount(txn model.Transaction) (model.Transaction, error) {
	amount := txn.Amount.Or("00.00")

	// An amount of a bare dash or space is a companion record with no
	// standalone amount; see ErrAmbiguousAmount.
	if amount == "-" || amount == " " {
		return txn, ErrAmbiguousAmount
	}

	// Some exports put the amount in a secondary column and leave the
	// primary one at the zero placeholder.
	if amount == "00.00" {
		amount = txn.Amount2.Or("00.00")
	}

	amount = strings.TrimSpace(amount)

	// Some exports include a currency sigil in the amount.
	amount = strings.Replace(amount, "$", "", 1)

	// Non-US banks sometimes express the sign as a trailing minus.
	if strings.HasSuffix(amount, "-") {
		amount = "-" + amount[:len(amount)-1]
	}

	// Render to exactly two fractional digits where parseable; an
	// unparseable amount is kept cleaned but uncorrected.
	if d, err := decimal.NewFromString(amount); err == nil {
		amount = d.StringFixed(2)
	}

	txn.Amount = model.F(amount)
	return txn, nil
}

func (n normalizer) normalizeNumber(txn model.Transaction) model.Transaction {
	if !txn.Number.IsSet() {
		return txn
	}
	number := strings.TrimSpace(txn.Number.Value())

	switch {
	case number == "N/A":
		// Chase puts a literal "N/A" in the check number field.
		txn.Number = model.Field{}

	case strings.HasPrefix(number, maskedCardPrefix):
		// Home Depot credit cards put the masked card number in the
		// check number field.
		txn.Number = model.Field{}

	case n.acctType == AcctTypeCreditCard:
		// Credit card exports (MBNA, CapitalOne) use the number field
		// as an internal transaction ID, not a check number.
		txn.Number = model.Field{}

	case number == "0000000000":
		// At least one bank stamps an all-zero number on every
		// non-check transaction.
		txn.Number = model.Field{}

	case allDigits.MatchString(number) && !txn.Type.IsSet():
		// A plain numeric reference on an untyped transaction is a
		// check; some banks never mark check transactions explicitly.
		txn.Type = model.F(TypeCheck)
	}
	return txn
}

func (n normalizer) normalizeType(txn model.Transaction) model.Transaction {
	if txn.Type.IsSet() {
		if code, ok := lookupType(txn.Type.Value()); ok {
			txn.Type = model.F(code)
			return txn
		}
	}
	if code, ok := scanType(txn.Memo.Or(""), txn.Category.Or("")); ok {
		txn.Type = model.F(code)
	}
	return txn
}

// normalizePayee synthesizes a payee when the export has none, working
// down a fixed precedence chain. The order is deliberate: a transaction
// with both a check number and an interest type resolves as a check,
// never as interest.
func (n normalizer) normalizePayee(txn model.Transaction) model.Transaction {
	memo := txn.Memo
	category := txn.Category
	number := txn.Number
	txnType := txn.Type.Or("")
	negative := strings.HasPrefix(txn.Amount.Or(""), "-")

	if !txn.Payee.IsSet() {
		switch {
		case number.IsSet() && (n.acctType == AcctTypeChecking || n.acctType == AcctTypeSavings):
			txn.Payee = model.F("Check #" + number.Value())
			txn.Type = model.F(TypeCheck)

		case txnType == "INT" && negative:
			txn.Payee = model.F("Interest paid")

		case txnType == "INT":
			txn.Payee = model.F("Interest earned")

		case txnType == "ATM" && negative:
			txn.Payee = model.F("ATM Withdrawal")

		case txnType == "ATM":
			txn.Payee = model.F("ATM Deposit")

		case txnType == "POS" && negative:
			txn.Payee = model.F("Point of Sale Payment")

		case txnType == "POS":
			txn.Payee = model.F("Point of Sale Credit")

		case memo.IsSet():
			txn.Payee = memo

		case category.IsSet():
			txn.Payee = category

		// No payee, no memo, no check number, no type. Who knows what
		// this stuff is.
		case txnType == "" && negative:
			txn.Payee = model.F("Other Debit")
			txn.Type = model.F(TypeDebit)

		case txnType == "":
			txn.Payee = model.F("Other Credit")
			txn.Type = model.F(TypeCredit)
		}
	}

	// Whatever happened above, the type must end up with a valid value.
	if !txn.Type.IsSet() {
		if negative {
			txn.Type = model.F(TypeDebit)
		} else {
			txn.Type = model.F(TypeCredit)
		}
	}

	if memo.IsSet() {
		txn.Payee = model.F(txn.Payee.Or("") + " (" + memo.Value() + ")")
	}
	return txn
}
