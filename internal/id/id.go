// Package id builds the synthetic identifiers attached to statement
// transactions.
package id

import "fmt"

// FormatTxnID assembles a transaction ID from as many uniqueness
// guarantors as the statement offers: account organization, account
// type, canonical date, the per-date countdown index, and the cleaned
// amount. Within one date bucket the countdown index alone keeps IDs
// distinct.
func FormatTxnID(org, acctType, date string, index int, amount string) string {
	return fmt.Sprintf("%s-%s-%s-%d-%s", org, acctType, date, index, amount)
}
