package ofx

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderLeafAndAggregate(t *testing.T) {
	doc := Document(
		Agg("OFX",
			Agg("FI",
				Leaf("ORG", "Acme"),
				Leaf("FID", "123"))))

	// Leaves are unclosed, aggregates closed, per OFX 1.02 SGML.
	assert.Contains(t, doc, "<ORG>Acme\r\n")
	assert.Contains(t, doc, "<FID>123\r\n")
	assert.Contains(t, doc, "<FI>\r\n")
	assert.Contains(t, doc, "</FI>\r\n")
	assert.NotContains(t, doc, "</ORG>")
	assert.True(t, strings.HasSuffix(doc, "</OFX>\r\n"))
}

func TestDocumentHeader(t *testing.T) {
	doc := Document(Agg("OFX"))

	assert.True(t, strings.HasPrefix(doc, "OFXHEADER:100\r\n"))
	for _, want := range []string{
		"DATA:OFXSGML",
		"VERSION:102",
		"SECURITY:NONE",
		"ENCODING:USASCII",
		"CHARSET:1252",
		"COMPRESSION:NONE",
		"OLDFILEUID:NONE",
		"NEWFILEUID:NONE",
	} {
		assert.Contains(t, doc, want+"\r\n")
	}

	// Blank line separates the header block from the body.
	assert.Contains(t, doc, "NEWFILEUID:NONE\r\n\r\n<OFX>")
}

func TestEscape(t *testing.T) {
	assert.Equal(t, "A &amp; B", Escape("A & B"))
	assert.Equal(t, "&lt;TAG&gt;", Escape("<TAG>"))

	// Already-escaped input is not escaped twice.
	assert.Equal(t, "A &amp; B", Escape("A &amp; B"))
}
