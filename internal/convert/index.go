package convert

import (
	"sort"
	"time"

	"github.com/deepdatta/fixofx/internal/id"
	"github.com/deepdatta/fixofx/internal/model"
)

// unknownDate buckets the rare transaction that arrived with no date at
// all. Canonical dates are 8 digits, so the sentinel never collides.
const unknownDate = "UNKNOWN"

// statementIndex buckets normalized transactions by canonical date,
// preserving insertion order within each date.
type statementIndex struct {
	buckets map[string][]model.Transaction
}

func newStatementIndex() *statementIndex {
	return &statementIndex{buckets: make(map[string][]model.Transaction)}
}

func (ix *statementIndex) add(txn model.Transaction) {
	key := txn.Date.Or(unknownDate)
	ix.buckets[key] = append(ix.buckets[key], txn)
}

// dateRange returns the statement's start and end dates: the minimum and
// maximum bucket keys. Lexicographic comparison is correct because
// canonical dates are YYYYMMDD. Statements with no surviving
// transactions happen a lot (an export is often just the headers when
// there was no activity) and then both dates fall back to the clock.
func (ix *statementIndex) dateRange(now func() time.Time) (start, end string) {
	if len(ix.buckets) == 0 {
		today := now().Format("20060102")
		return today, today
	}
	dates := ix.sortedDates()
	return dates[0], dates[len(dates)-1]
}

// ordered returns all transactions most recent date first, preserving
// insertion order within a date, with synthetic IDs assigned. The index
// component counts down from the bucket size, matching the order
// consumers render transactions in.
func (ix *statementIndex) ordered(org, acctType string) []model.Transaction {
	dates := ix.sortedDates()

	var out []model.Transaction
	for i := len(dates) - 1; i >= 0; i-- {
		bucket := ix.buckets[dates[i]]
		index := len(bucket)
		for _, txn := range bucket {
			txn.ID = model.F(id.FormatTxnID(org, acctType, txn.Date.Or(unknownDate), index, txn.Amount.Or("00.00")))
			out = append(out, txn)
			index--
		}
	}
	return out
}

func (ix *statementIndex) sortedDates() []string {
	dates := make([]string, 0, len(ix.buckets))
	for d := range ix.buckets {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}
