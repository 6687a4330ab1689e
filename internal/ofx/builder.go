// Package ofx renders normalized statements as OFX 1.02 documents: a
// key/value header block followed by an SGML tag tree in which leaf
// elements are unclosed and aggregates are closed.
package ofx

import "strings"

// Node is one element in the OFX body. A node is either a leaf carrying
// text or an aggregate carrying children, never both.
type Node struct {
	Name string
	Text string
	Kids []Node
}

// Leaf returns a value element, rendered as <NAME>text with no closing
// tag.
func Leaf(name, text string) Node {
	return Node{Name: name, Text: text}
}

// Agg returns an aggregate element, rendered with opening and closing
// tags around its children.
func Agg(name string, kids ...Node) Node {
	return Node{Name: name, Kids: kids}
}

func (n Node) render(b *strings.Builder) {
	if len(n.Kids) == 0 {
		b.WriteString("<")
		b.WriteString(n.Name)
		b.WriteString(">")
		b.WriteString(n.Text)
		b.WriteString("\r\n")
		return
	}
	b.WriteString("<")
	b.WriteString(n.Name)
	b.WriteString(">\r\n")
	for _, k := range n.Kids {
		k.render(b)
	}
	b.WriteString("</")
	b.WriteString(n.Name)
	b.WriteString(">\r\n")
}

// headerField is one OFX 1.02 declaration header line.
type headerField struct {
	Key   string
	Value string
}

// header102 is the fixed declaration block for the OFX 1.02 documents
// this converter emits.
var header102 = []headerField{
	{"OFXHEADER", "100"},
	{"DATA", "OFXSGML"},
	{"VERSION", "102"},
	{"SECURITY", "NONE"},
	{"ENCODING", "USASCII"},
	{"CHARSET", "1252"},
	{"COMPRESSION", "NONE"},
	{"OLDFILEUID", "NONE"},
	{"NEWFILEUID", "NONE"},
}

// Document renders the header block and body into a complete OFX 1.02
// document.
func Document(body Node) string {
	var b strings.Builder
	for _, h := range header102 {
		b.WriteString(h.Key)
		b.WriteString(":")
		b.WriteString(h.Value)
		b.WriteString("\r\n")
	}
	b.WriteString("\r\n")
	body.render(&b)
	return b.String()
}

var (
	// Payee, memo, and category values may arrive pre-escaped from the
	// source export, so they are unescaped before escaping to avoid
	// double-escaped output.
	sgmlUnescaper = strings.NewReplacer("&lt;", "<", "&gt;", ">", "&amp;", "&")
	sgmlEscaper   = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
)

// Escape normalizes s to safely-escaped SGML text.
func Escape(s string) string {
	return sgmlEscaper.Replace(sgmlUnescaper.Replace(s))
}
