package ofx

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deepdatta/fixofx/internal/convert"
	"github.com/deepdatta/fixofx/internal/model"
)

func bankStatement() *convert.Statement {
	return &convert.Statement{
		Org:       "Acme Bank",
		FID:       "1234",
		BankID:    "987654321",
		AcctID:    "00012345",
		AcctType:  convert.AcctTypeChecking,
		Balance:   "1500.00",
		Lang:      "ENG",
		StartDate: "20160325",
		EndDate:   "20160327",
		Transactions: []model.Transaction{
			{
				Type:   model.F("DEBIT"),
				Date:   model.F("20160327"),
				Amount: model.F("-2.00"),
				ID:     model.F("Acme Bank-CHECKING-20160327-1--2.00"),
				Payee:  model.F("Gas & Go"),
			},
			{
				Type:   model.F("CHECK"),
				Date:   model.F("20160325"),
				Amount: model.F("-20.00"),
				Number: model.F("0452"),
				ID:     model.F("Acme Bank-CHECKING-20160325-1--20.00"),
				Payee:  model.F("Check #0452"),
			},
		},
	}
}

func TestBuildBankStatement(t *testing.T) {
	doc := Build(bankStatement())

	assert.Contains(t, doc, "<BANKMSGSRSV1>")
	assert.NotContains(t, doc, "CREDITCARDMSGSRSV1")

	// Signon block carries the end date and institution identity.
	assert.Contains(t, doc, "<DTSERVER>20160327")
	assert.Contains(t, doc, "<LANGUAGE>ENG")
	assert.Contains(t, doc, "<ORG>Acme Bank")
	assert.Contains(t, doc, "<FID>1234")

	assert.Contains(t, doc, "<BANKID>987654321")
	assert.Contains(t, doc, "<ACCTID>00012345")
	assert.Contains(t, doc, "<ACCTTYPE>CHECKING")

	assert.Contains(t, doc, "<DTSTART>20160325")
	assert.Contains(t, doc, "<DTEND>20160327")
	assert.Contains(t, doc, "<BALAMT>1500.00")

	// No currency configured or inferred: USD at render time.
	assert.Contains(t, doc, "<CURDEF>USD")

	// Payee is escaped.
	assert.Contains(t, doc, "<NAME>Gas &amp; Go")
	assert.Contains(t, doc, "<CHECKNUM>0452")
	assert.Contains(t, doc, "<FITID>Acme Bank-CHECKING-20160325-1--20.00")
}

func TestBuildCreditCardStatement(t *testing.T) {
	stmt := bankStatement()
	stmt.AcctType = convert.AcctTypeCreditCard
	stmt.CurDef = "EUR"

	doc := Build(stmt)

	assert.Contains(t, doc, "<CREDITCARDMSGSRSV1>")
	assert.Contains(t, doc, "<CCSTMTTRNRS>")
	assert.Contains(t, doc, "<CCACCTFROM>")
	assert.NotContains(t, doc, "BANKACCTFROM")
	assert.NotContains(t, doc, "<BANKID>")

	// Inferred or configured currency wins over the USD default.
	assert.Contains(t, doc, "<CURDEF>EUR")
}

func TestBuildOmitsAbsentAndBlankFields(t *testing.T) {
	stmt := &convert.Statement{
		AcctType:  convert.AcctTypeChecking,
		StartDate: "20160325",
		EndDate:   "20160325",
		Transactions: []model.Transaction{
			{
				Type:   model.F("DEBIT"),
				Date:   model.F("20160325"),
				Amount: model.F("-1.00"),
				Memo:   model.F("   "),
			},
		},
	}

	doc := Build(stmt)

	// Absent number/payee/category and the blank memo all disappear.
	assert.NotContains(t, doc, "CHECKNUM")
	assert.NotContains(t, doc, "<NAME>")
	assert.NotContains(t, doc, "<MEMO>")
	assert.NotContains(t, doc, "CATEGORY")
}

func TestBuildTransactionFieldOrder(t *testing.T) {
	doc := Build(bankStatement())

	idx := func(s string) int {
		i := strings.Index(doc, s)
		require.GreaterOrEqual(t, i, 0, "missing %s", s)
		return i
	}

	// Field order within a transaction is fixed.
	assert.Less(t, idx("<TRNTYPE>CHECK"), idx("<DTPOSTED>20160325"))
	assert.Less(t, idx("<DTPOSTED>20160325"), idx("<TRNAMT>-20.00"))
	assert.Less(t, idx("<TRNAMT>-20.00"), idx("<CHECKNUM>0452"))
	assert.Less(t, idx("<CHECKNUM>0452"), idx("<NAME>Check #0452"))
}
