// Package iif parses QuickBooks IIF bank exports: tab-delimited lines
// grouped into header declarations and parent/split transaction blocks.
package iif

import (
	"fmt"
	"strings"
)

// Grammar marker tokens. Each appears as the first tab-separated field
// of its line.
const (
	markTransHeader = "!TRNS"
	markSplitHeader = "!SPL"
	markEndHeader   = "!ENDTRNS"
	markTrans       = "TRNS"
	markSplit       = "SPL"
	markEndTrans    = "ENDTRNS"
)

// GrammarError reports malformed IIF structure: a missing marker, a
// record whose field count disagrees with the active header, or input
// that ends mid-block.
type GrammarError struct {
	Line int // 1-based line number
	Msg  string
}

func (e *GrammarError) Error() string {
	return fmt.Sprintf("iif: line %d: %s", e.Line, e.Msg)
}

// Section is one header declaration pair plus the transaction blocks
// that follow it, up to the next header or end of input.
type Section struct {
	TransFields []string // parent record column names
	SplitFields []string // split record column names
	Blocks      []Block
}

// Block is one parent transaction record with its split records.
type Block struct {
	Trans  []string   // parent record values, len == len(TransFields)
	Splits [][]string // split record values, each len == len(SplitFields)
}

// Document is the parsed form of one IIF input.
type Document struct {
	Sections []Section
}

// Parse runs the full input through the line lexer and marker-keyed
// parser. The input must be fully materialized; the grammar is not
// streamable because header declarations govern all records after them.
func Parse(input string) (*Document, error) {
	lx := newLexer(input)
	doc := &Document{}

	for {
		lx.skipBlank()
		if lx.eof() {
			break
		}
		sec, err := parseSection(lx)
		if err != nil {
			return nil, err
		}
		doc.Sections = append(doc.Sections, sec)
	}

	if len(doc.Sections) == 0 {
		return nil, &GrammarError{Line: 1, Msg: "missing " + markTransHeader + " header"}
	}
	return doc, nil
}

func parseSection(lx *lexer) (Section, error) {
	var sec Section

	ln := lx.next()
	if ln.marker != markTransHeader {
		return sec, ln.errf("expected %s header, got %q", markTransHeader, ln.marker)
	}
	if err := checkFieldNames(ln, isTransColumn, "parent"); err != nil {
		return sec, err
	}
	sec.TransFields = ln.fields

	ln = lx.next()
	if ln.marker != markSplitHeader {
		return sec, ln.errf("expected %s header, got %q", markSplitHeader, ln.marker)
	}
	if err := checkFieldNames(ln, isSplitColumn, "split"); err != nil {
		return sec, err
	}
	sec.SplitFields = ln.fields

	ln = lx.next()
	if ln.marker != markEndHeader {
		return sec, ln.errf("expected %s marker, got %q", markEndHeader, ln.marker)
	}

	for {
		lx.skipBlank()
		if lx.eof() || lx.peek().marker == markTransHeader {
			return sec, nil
		}
		blk, err := parseBlock(lx, len(sec.TransFields), len(sec.SplitFields))
		if err != nil {
			return sec, err
		}
		sec.Blocks = append(sec.Blocks, blk)
	}
}

func parseBlock(lx *lexer, nTrans, nSplit int) (Block, error) {
	var blk Block

	ln := lx.next()
	if ln.marker != markTrans {
		return blk, ln.errf("expected %s record, got %q", markTrans, ln.marker)
	}
	if len(ln.fields) != nTrans {
		return blk, ln.errf("parent record has %d fields, header declares %d", len(ln.fields), nTrans)
	}
	blk.Trans = ln.fields

	for {
		if lx.eof() {
			return blk, (&line{num: lx.lineCount()}).errf("input ends mid-block, missing %s", markEndTrans)
		}
		ln = lx.next()
		switch ln.marker {
		case markSplit:
			if len(ln.fields) != nSplit {
				return blk, ln.errf("split record has %d fields, header declares %d", len(ln.fields), nSplit)
			}
			blk.Splits = append(blk.Splits, ln.fields)
		case markEndTrans:
			return blk, nil
		default:
			return blk, ln.errf("expected %s or %s, got %q", markSplit, markEndTrans, ln.marker)
		}
	}
}

func checkFieldNames(ln line, known func(string) bool, kind string) error {
	if len(ln.fields) == 0 {
		return ln.errf("%s header declares no fields", kind)
	}
	for _, name := range ln.fields {
		if !known(name) {
			return ln.errf("unknown %s field name %q", kind, name)
		}
	}
	return nil
}

// line is one lexed input line: the leading marker token plus the
// remaining tab-separated, quote-stripped fields.
type line struct {
	num    int
	marker string
	fields []string
	blank  bool
}

func (l line) errf(format string, args ...any) error {
	return &GrammarError{Line: l.num, Msg: fmt.Sprintf(format, args...)}
}

type lexer struct {
	lines []line
	pos   int
}

func newLexer(input string) *lexer {
	raw := strings.Split(input, "\n")
	lx := &lexer{}
	for i, r := range raw {
		// Trailing whitespace before the line terminator is noise;
		// whitespace inside quoted values survives because the closing
		// quote protects it.
		r = strings.TrimRight(r, " \t\r")
		ln := line{num: i + 1}
		if r == "" {
			ln.blank = true
			lx.lines = append(lx.lines, ln)
			continue
		}
		parts := strings.Split(r, "\t")
		ln.marker = parts[0]
		for _, p := range parts[1:] {
			ln.fields = append(ln.fields, stripQuotes(p))
		}
		lx.lines = append(lx.lines, ln)
	}
	// A trailing newline produces one empty tail line; drop it so eof
	// detection is exact.
	for len(lx.lines) > 0 && lx.lines[len(lx.lines)-1].blank {
		lx.lines = lx.lines[:len(lx.lines)-1]
	}
	return lx
}

func (lx *lexer) eof() bool { return lx.pos >= len(lx.lines) }

func (lx *lexer) peek() line { return lx.lines[lx.pos] }

func (lx *lexer) next() line {
	ln := lx.lines[lx.pos]
	lx.pos++
	return ln
}

func (lx *lexer) skipBlank() {
	for !lx.eof() && lx.lines[lx.pos].blank {
		lx.pos++
	}
}

func (lx *lexer) lineCount() int { return len(lx.lines) }

// stripQuotes removes one pair of matching surrounding single or double
// quotes. Everything between the quotes, tabs excepted (fields are split
// before quotes are inspected), is preserved verbatim.
func stripQuotes(s string) string {
	if len(s) < 2 {
		return s
	}
	first, last := s[0], s[len(s)-1]
	if first == last && (first == '"' || first == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}
