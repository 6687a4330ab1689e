// Package convert turns parsed IIF documents into normalized statements:
// a read-only detection pass settles statement-wide conventions, then a
// normalization pass rewrites each transaction against them.
package convert

import (
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/deepdatta/fixofx/internal/iif"
	"github.com/deepdatta/fixofx/internal/model"
)

// Account types with special normalization handling.
const (
	AcctTypeChecking   = "CHECKING"
	AcctTypeSavings    = "SAVINGS"
	AcctTypeCreditCard = "CREDITCARD"
)

// Transaction type codes the normalizer assigns directly.
const (
	TypeCheck  = "CHECK"
	TypeDebit  = "DEBIT"
	TypeCredit = "CREDIT"
)

const unknownValue = "UNKNOWN"

// Options is the account bundle and conversion knobs supplied by the
// caller. Empty identity fields default to "UNKNOWN" and Lang to "ENG".
type Options struct {
	FID      string
	Org      string
	BankID   string
	AcctID   string
	AcctType string // CHECKING, SAVINGS, CREDITCARD, ...
	Balance  string
	CurDef   string // empty means infer from the statement, USD at render time
	Lang     string
	DayFirst bool // explicit day-first override; detection can still turn it on

	// Now supplies the fallback statement date for empty statements.
	// Defaults to time.Now.
	Now func() time.Time

	// Logger receives per-transaction skip notices. Defaults to a no-op
	// logger.
	Logger *zerolog.Logger
}

// Statement is the normalized output of one conversion, ready for a
// document builder.
type Statement struct {
	Org      string
	FID      string
	BankID   string
	AcctID   string
	AcctType string
	Balance  string
	CurDef   string // "" if neither configured nor inferred
	Lang     string
	DayFirst bool

	StartDate string // YYYYMMDD
	EndDate   string // YYYYMMDD

	// Transactions are ordered most recent date first; within a date,
	// statement order is preserved.
	Transactions []model.Transaction
}

// Converter runs the two-pass conversion pipeline. It holds only
// configuration; every Convert call builds its statement context from
// scratch, so a Converter is safe to reuse across inputs.
type Converter struct {
	opts Options
	log  zerolog.Logger
}

// New returns a Converter for the given account bundle.
func New(opts Options) *Converter {
	defaultStr(&opts.FID, unknownValue)
	defaultStr(&opts.Org, unknownValue)
	defaultStr(&opts.BankID, unknownValue)
	defaultStr(&opts.AcctID, unknownValue)
	defaultStr(&opts.AcctType, unknownValue)
	defaultStr(&opts.Balance, unknownValue)
	defaultStr(&opts.Lang, "ENG")
	if opts.Now == nil {
		opts.Now = time.Now
	}

	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}
	return &Converter{opts: opts, log: log}
}

// Convert parses input as IIF and produces a normalized statement.
// Grammar and date parse errors abort the conversion; transactions with
// undefined amounts are dropped and logged.
func (c *Converter) Convert(input string) (*Statement, error) {
	doc, err := iif.Parse(input)
	if err != nil {
		return nil, err
	}
	txns := iif.ExtractTransactions(doc)

	dayFirst, curDef := c.guessFormats(txns)

	norm := normalizer{dayFirst: dayFirst, acctType: c.opts.AcctType}
	index := newStatementIndex()
	for _, txn := range txns {
		clean, err := norm.normalize(txn)
		if err != nil {
			if errors.Is(err, ErrAmbiguousAmount) {
				c.log.Debug().
					Str("date", txn.Date.Or("")).
					Str("payee", txn.Payee.Or("")).
					Msg("skipping transaction")
				continue
			}
			return nil, err
		}
		index.add(clean)
	}

	start, end := index.dateRange(c.opts.Now)

	return &Statement{
		Org:          c.opts.Org,
		FID:          c.opts.FID,
		BankID:       c.opts.BankID,
		AcctID:       c.opts.AcctID,
		AcctType:     c.opts.AcctType,
		Balance:      c.opts.Balance,
		CurDef:       curDef,
		Lang:         c.opts.Lang,
		DayFirst:     dayFirst,
		StartDate:    start,
		EndDate:      end,
		Transactions: index.ordered(c.opts.Org, c.opts.AcctType),
	}, nil
}

func defaultStr(s *string, def string) {
	if *s == "" {
		*s = def
	}
}
