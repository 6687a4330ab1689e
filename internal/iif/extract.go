package iif

import "github.com/deepdatta/fixofx/internal/model"

// Parent record columns the grammar accepts. The empty canonical name
// means the column is parsed for field counting but not carried onto the
// canonical transaction.
var transColumns = map[string]string{
	"TRNSID":    "Number",
	"TIMESTAMP": "",
	"TRNSTYPE":  "Type",
	"DATE":      "Date",
	"ACCNT":     "",
	"NAME":      "Payee",
	"CLASS":     "Category",
	"AMOUNT":    "Amount",
	"AMOUNT2":   "Amount2",
	"CURRENCY":  "Currency",
	"DOCNUM":    "",
	"MEMO":      "Memo",
	"CLEAR":     "",
	"PRICE":     "",
}

// Split record columns. Splits are parsed so that block structure and
// field counts are enforced, but they are not merged into the canonical
// transaction; statement normalization works on parent records only.
var splitColumns = map[string]bool{
	"SPLID":      true,
	"TRNSTYPE":   true,
	"DATE":       true,
	"ACCNT":      true,
	"NAME":       true,
	"CLASS":      true,
	"AMOUNT":     true,
	"DOCNUM":     true,
	"MEMO":       true,
	"CLEAR":      true,
	"PRICE":      true,
	"QNTY":       true,
	"INVITEM":    true,
	"PAYMETH":    true,
	"TAXABLE":    true,
	"REIMBEREXP": true,
	"EXTRA":      true,
	"VALDAJ":     true,
}

func isTransColumn(name string) bool {
	_, ok := transColumns[name]
	return ok
}

func isSplitColumn(name string) bool {
	return splitColumns[name]
}

// ExtractTransactions flattens the first section of doc into canonical
// transactions, one per parent record, zipping record values against the
// section's parent header. Additional sections are ignored; multi-section
// inputs are a documented limitation of the converter.
func ExtractTransactions(doc *Document) []model.Transaction {
	if doc == nil || len(doc.Sections) == 0 {
		return nil
	}
	sec := doc.Sections[0]

	var txns []model.Transaction
	for _, blk := range sec.Blocks {
		var txn model.Transaction
		for i, col := range sec.TransFields {
			setField(&txn, transColumns[col], blk.Trans[i])
		}
		txns = append(txns, txn)
	}
	return txns
}

func setField(txn *model.Transaction, name, value string) {
	switch name {
	case "Number":
		txn.Number = model.F(value)
	case "Type":
		txn.Type = model.F(value)
	case "Date":
		txn.Date = model.F(value)
	case "Payee":
		txn.Payee = model.F(value)
	case "Category":
		txn.Category = model.F(value)
	case "Amount":
		txn.Amount = model.F(value)
	case "Amount2":
		txn.Amount2 = model.F(value)
	case "Currency":
		txn.Currency = model.F(value)
	case "Memo":
		txn.Memo = model.F(value)
	}
}
