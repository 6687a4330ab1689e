package ofx

import (
	"strings"

	"github.com/deepdatta/fixofx/internal/convert"
	"github.com/deepdatta/fixofx/internal/model"
)

// Build renders a normalized statement as an OFX 1.02 document: signon
// block, then a bank or credit card message set chosen by account type.
func Build(stmt *convert.Statement) string {
	return Document(Agg("OFX", signon(stmt), messageSet(stmt)))
}

func signon(stmt *convert.Statement) Node {
	return Agg("SIGNONMSGSRSV1",
		Agg("SONRS",
			status(),
			Leaf("DTSERVER", stmt.EndDate),
			Leaf("LANGUAGE", stmt.Lang),
			Agg("FI",
				Leaf("ORG", stmt.Org),
				Leaf("FID", stmt.FID))))
}

func messageSet(stmt *convert.Statement) Node {
	// The default currency is applied at render time rather than during
	// conversion, so a caller can still override whatever the statement
	// scan inferred.
	curdef := stmt.CurDef
	if curdef == "" {
		curdef = "USD"
	}

	if stmt.AcctType == convert.AcctTypeCreditCard {
		return Agg("CREDITCARDMSGSRSV1",
			Agg("CCSTMTTRNRS",
				Leaf("TRNUID", "0"),
				status(),
				Agg("CCSTMTRS",
					Leaf("CURDEF", curdef),
					Agg("CCACCTFROM",
						Leaf("ACCTID", stmt.AcctID)),
					tranList(stmt),
					ledgerBal(stmt),
					availBal(stmt))))
	}

	return Agg("BANKMSGSRSV1",
		Agg("STMTTRNRS",
			Leaf("TRNUID", "0"),
			status(),
			Agg("STMTRS",
				Leaf("CURDEF", curdef),
				Agg("BANKACCTFROM",
					Leaf("BANKID", stmt.BankID),
					Leaf("ACCTID", stmt.AcctID),
					Leaf("ACCTTYPE", stmt.AcctType)),
				tranList(stmt),
				ledgerBal(stmt),
				availBal(stmt))))
}

func status() Node {
	return Agg("STATUS",
		Leaf("CODE", "0"),
		Leaf("SEVERITY", "INFO"),
		Leaf("MESSAGE", "SUCCESS"))
}

func ledgerBal(stmt *convert.Statement) Node {
	return Agg("LEDGERBAL",
		Leaf("BALAMT", stmt.Balance),
		Leaf("DTASOF", stmt.EndDate))
}

func availBal(stmt *convert.Statement) Node {
	return Agg("AVAILBAL",
		Leaf("BALAMT", stmt.Balance),
		Leaf("DTASOF", stmt.EndDate))
}

func tranList(stmt *convert.Statement) Node {
	kids := []Node{
		Leaf("DTSTART", stmt.StartDate),
		Leaf("DTEND", stmt.EndDate),
	}
	for _, txn := range stmt.Transactions {
		kids = append(kids, stmtTrn(txn))
	}
	return Agg("BANKTRANLIST", kids...)
}

// stmtTrn renders one transaction. Fields appear in a fixed order and
// absent or blank fields are omitted entirely, never emitted empty.
func stmtTrn(txn model.Transaction) Node {
	var kids []Node
	add := func(tag string, f model.Field, escape bool) {
		if !f.IsSet() {
			return
		}
		v := strings.TrimSpace(f.Value())
		if v == "" {
			return
		}
		if escape {
			v = Escape(v)
		}
		kids = append(kids, Leaf(tag, v))
	}

	add("TRNTYPE", txn.Type, false)
	add("DTPOSTED", txn.Date, false)
	add("TRNAMT", txn.Amount, false)
	add("CHECKNUM", txn.Number, false)
	add("FITID", txn.ID, false)
	add("NAME", txn.Payee, true)
	add("MEMO", txn.Memo, true)
	add("CATEGORY", txn.Category, true)

	return Agg("STMTTRN", kids...)
}
