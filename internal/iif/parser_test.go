package iif

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doc(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

func TestParseBasicDocument(t *testing.T) {
	input := doc(
		"!TRNS\tTRNSID\tDATE\tACCNT\tNAME\tAMOUNT\tMEMO",
		"!SPL\tSPLID\tDATE\tACCNT\tAMOUNT",
		"!ENDTRNS",
		"TRNS\t1\t03/25/2016\tChecking\tGrocery Store\t-50.00\tweekly run",
		"SPL\t2\t03/25/2016\tFood\t50.00",
		"ENDTRNS",
		"TRNS\t3\t03/26/2016\tChecking\tGas Station\t-30.00\t",
		"SPL\t4\t03/26/2016\tAuto\t30.00",
		"ENDTRNS",
	)

	d, err := Parse(input)
	require.NoError(t, err)
	require.Len(t, d.Sections, 1)

	sec := d.Sections[0]
	assert.Equal(t, []string{"TRNSID", "DATE", "ACCNT", "NAME", "AMOUNT", "MEMO"}, sec.TransFields)
	assert.Equal(t, []string{"SPLID", "DATE", "ACCNT", "AMOUNT"}, sec.SplitFields)
	require.Len(t, sec.Blocks, 2)

	assert.Equal(t, []string{"1", "03/25/2016", "Checking", "Grocery Store", "-50.00", "weekly run"}, sec.Blocks[0].Trans)
	require.Len(t, sec.Blocks[0].Splits, 1)
	assert.Equal(t, []string{"2", "03/25/2016", "Food", "50.00"}, sec.Blocks[0].Splits[0])

	// Unquoted empty trailing field survives as an empty value.
	assert.Equal(t, "", sec.Blocks[1].Trans[5])
}

func TestParseQuotedValues(t *testing.T) {
	input := doc(
		"!TRNS\tDATE\tNAME\tAMOUNT",
		"!SPL\tSPLID\tAMOUNT",
		"!ENDTRNS",
		"TRNS\t03/25/2016\t\"Joe's  Diner \"\t-12.00",
		"SPL\t1\t12.00",
		"ENDTRNS",
		"TRNS\t03/26/2016\t'single quoted'\t\"-4.00\"",
		"SPL\t2\t4.00",
		"ENDTRNS",
	)

	d, err := Parse(input)
	require.NoError(t, err)
	blocks := d.Sections[0].Blocks
	require.Len(t, blocks, 2)

	// Interior whitespace inside quotes is preserved verbatim.
	assert.Equal(t, "Joe's  Diner ", blocks[0].Trans[1])
	assert.Equal(t, "single quoted", blocks[1].Trans[1])
	assert.Equal(t, "-4.00", blocks[1].Trans[2])
}

func TestParseMismatchedQuotesKept(t *testing.T) {
	input := doc(
		"!TRNS\tDATE\tNAME\tAMOUNT",
		"!SPL\tSPLID",
		"!ENDTRNS",
		"TRNS\t03/25/2016\t\"mismatched'\t-1.00",
		"SPL\t1",
		"ENDTRNS",
	)

	d, err := Parse(input)
	require.NoError(t, err)
	assert.Equal(t, "\"mismatched'", d.Sections[0].Blocks[0].Trans[1])
}

func TestParseTrailingWhitespaceIgnored(t *testing.T) {
	input := doc(
		"!TRNS\tDATE\tAMOUNT \t",
		"!SPL\tSPLID",
		"!ENDTRNS  ",
		"TRNS\t03/25/2016\t-1.00\t ",
		"SPL\t1",
		"ENDTRNS\t",
	)

	// Trailing blanks after the last field or a bare marker are noise.
	d, err := Parse(input)
	require.NoError(t, err)
	assert.Equal(t, []string{"DATE", "AMOUNT"}, d.Sections[0].TransFields)
	assert.Equal(t, []string{"03/25/2016", "-1.00"}, d.Sections[0].Blocks[0].Trans)
}

func TestParseCRLF(t *testing.T) {
	input := "!TRNS\tDATE\tAMOUNT\r\n!SPL\tSPLID\r\n!ENDTRNS\r\nTRNS\t1/2/2016\t-9.99\r\nSPL\t1\r\nENDTRNS\r\n"

	d, err := Parse(input)
	require.NoError(t, err)
	require.Len(t, d.Sections[0].Blocks, 1)
	assert.Equal(t, "-9.99", d.Sections[0].Blocks[0].Trans[1])
}

func TestParseBlockWithoutSplits(t *testing.T) {
	input := doc(
		"!TRNS\tDATE\tAMOUNT",
		"!SPL\tSPLID",
		"!ENDTRNS",
		"TRNS\t03/25/2016\t-1.00",
		"ENDTRNS",
	)

	d, err := Parse(input)
	require.NoError(t, err)
	require.Len(t, d.Sections[0].Blocks, 1)
	assert.Empty(t, d.Sections[0].Blocks[0].Splits)
}

func TestParseMultipleSections(t *testing.T) {
	input := doc(
		"!TRNS\tDATE\tAMOUNT",
		"!SPL\tSPLID",
		"!ENDTRNS",
		"TRNS\t03/25/2016\t-1.00",
		"ENDTRNS",
		"!TRNS\tDATE\tAMOUNT\tMEMO",
		"!SPL\tSPLID",
		"!ENDTRNS",
		"TRNS\t04/01/2016\t-2.00\tnext month",
		"ENDTRNS",
	)

	d, err := Parse(input)
	require.NoError(t, err)
	require.Len(t, d.Sections, 2)
	assert.Len(t, d.Sections[0].TransFields, 2)
	assert.Len(t, d.Sections[1].TransFields, 3)
}

func TestParseEmptySection(t *testing.T) {
	// A headers-only export is common: no activity in the statement.
	input := doc(
		"!TRNS\tDATE\tAMOUNT",
		"!SPL\tSPLID",
		"!ENDTRNS",
	)

	d, err := Parse(input)
	require.NoError(t, err)
	require.Len(t, d.Sections, 1)
	assert.Empty(t, d.Sections[0].Blocks)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty input",
			input: "",
			want:  "missing !TRNS header",
		},
		{
			name: "missing split header",
			input: doc(
				"!TRNS\tDATE\tAMOUNT",
				"!ENDTRNS",
			),
			want: "expected !SPL header",
		},
		{
			name: "missing end of header",
			input: doc(
				"!TRNS\tDATE\tAMOUNT",
				"!SPL\tSPLID",
				"TRNS\t03/25/2016\t-1.00",
			),
			want: "expected !ENDTRNS marker",
		},
		{
			name: "parent field count mismatch",
			input: doc(
				"!TRNS\tDATE\tAMOUNT",
				"!SPL\tSPLID",
				"!ENDTRNS",
				"TRNS\t03/25/2016\t-1.00\textra",
				"ENDTRNS",
			),
			want: "parent record has 3 fields, header declares 2",
		},
		{
			name: "split field count mismatch",
			input: doc(
				"!TRNS\tDATE\tAMOUNT",
				"!SPL\tSPLID\tAMOUNT",
				"!ENDTRNS",
				"TRNS\t03/25/2016\t-1.00",
				"SPL\t1",
				"ENDTRNS",
			),
			want: "split record has 1 fields, header declares 2",
		},
		{
			name: "input ends mid-block",
			input: doc(
				"!TRNS\tDATE\tAMOUNT",
				"!SPL\tSPLID",
				"!ENDTRNS",
				"TRNS\t03/25/2016\t-1.00",
				"SPL\t1",
			),
			want: "input ends mid-block",
		},
		{
			name: "unknown parent field",
			input: doc(
				"!TRNS\tDATE\tBOGUS",
				"!SPL\tSPLID",
				"!ENDTRNS",
			),
			want: `unknown parent field name "BOGUS"`,
		},
		{
			name: "unknown record marker",
			input: doc(
				"!TRNS\tDATE\tAMOUNT",
				"!SPL\tSPLID",
				"!ENDTRNS",
				"TRNS\t03/25/2016\t-1.00",
				"WAT\t1",
				"ENDTRNS",
			),
			want: "expected SPL or ENDTRNS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)

			var gerr *GrammarError
			require.ErrorAs(t, err, &gerr)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestGrammarErrorIncludesLineNumber(t *testing.T) {
	input := doc(
		"!TRNS\tDATE\tAMOUNT",
		"!SPL\tSPLID",
		"!ENDTRNS",
		"TRNS\t03/25/2016\t-1.00\textra",
		"ENDTRNS",
	)

	_, err := Parse(input)
	var gerr *GrammarError
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, 4, gerr.Line)
}
