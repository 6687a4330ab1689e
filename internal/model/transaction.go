package model

// Field is an optional string value on a Transaction. Bank exports omit
// fields rather than sending empty ones, and several normalization rules
// key on absence, so presence is tracked explicitly instead of treating
// "" as missing.
type Field struct {
	value string
	set   bool
}

// F returns a Field holding v.
func F(v string) Field {
	return Field{value: v, set: true}
}

// IsSet reports whether the field was present on the source record.
func (f Field) IsSet() bool { return f.set }

// Value returns the field value, or "" if the field is unset.
func (f Field) Value() string { return f.value }

// Or returns the field value, or def if the field is unset.
func (f Field) Or(def string) string {
	if f.set {
		return f.value
	}
	return def
}

// Transaction is one canonical bank transaction as extracted from an
// interchange record. All values are strings until normalization; once
// normalized, Date is an 8-digit YYYYMMDD string, Amount carries exactly
// two fractional digits where parseable, and Type is either unset or an
// OFX transaction type code.
type Transaction struct {
	Date     Field
	Amount   Field
	Amount2  Field
	Number   Field
	Type     Field
	Payee    Field
	Memo     Field
	Category Field
	Currency Field
	ID       Field
}
