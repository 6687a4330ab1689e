package convert

import "strings"

// typeAlias pairs an institution's vernacular transaction-type key with
// the OFX 2.0 standard code it translates to.
type typeAlias struct {
	Key  string
	Code string
}

// txnTypes is the catalog of transaction types banks embed in the type,
// memo, or category fields. Keys are the vernacular spellings seen in
// the wild ("DBT" for "DEBIT" and so on); codes are OFX 2.0 standard
// transaction types, except ACH which gets special treatment downstream.
// Order matters: when a memo or category is scanned for an embedded
// type, the first key that matches wins.
var txnTypes = []typeAlias{
	{"ACH", "ACH"},
	{"CHECK CARD", "POS"},
	{"CREDIT", "CREDIT"},
	{"DBT", "DEBIT"},
	{"DEBIT", "DEBIT"},
	{"INT", "INT"},
	{"DIV", "DIV"},
	{"FEE", "FEE"},
	{"SRVCHG", "SRVCHG"},
	{"DEP", "DEP"},
	{"DEPOSIT", "DEP"},
	{"ATM", "ATM"},
	{"POS", "POS"},
	{"XFER", "XFER"},
	{"CHECK", "CHECK"},
	{"PAYMENT", "PAYMENT"},
	{"CASH", "CASH"},
	{"DIRECTDEP", "DIRECTDEP"},
	{"DIRECTDEBIT", "DIRECTDEBIT"},
	{"REPEATPMT", "REPEATPMT"},
	{"OTHER", "OTHER"},
}

// lookupType canonicalizes an explicit type value: a case-insensitive
// exact match against a vernacular key yields the standard code.
func lookupType(s string) (string, bool) {
	up := strings.ToUpper(s)
	for _, a := range txnTypes {
		if a.Key == up {
			return a.Code, true
		}
	}
	return "", false
}

// scanType looks for a type embedded in free text, in catalog order.
// A key matches when either field contains it; the first hit wins, so
// catalog order is behavior-defining.
func scanType(memo, category string) (string, bool) {
	memoUp := strings.ToUpper(memo)
	catUp := strings.ToUpper(category)
	for _, a := range txnTypes {
		if strings.Contains(catUp, a.Key) || strings.Contains(memoUp, a.Key) {
			return a.Code, true
		}
	}
	return "", false
}
