package htmldoc

import (
	"bytes"

	"golang.org/x/net/html"

	"github.com/tsawler/tablemd/model"
)

// Locate returns the byte range of every top-level <table> element in doc,
// from the start of its opening tag through the end of its matching closing
// tag, in document order.
//
// Nested tables stay inside the range of the table that contains them.
// Markup inside comments and raw-text elements such as <script> is not
// considered. A table that is never closed produces no range.
func Locate(doc []byte) []model.Span {
	spans, _ := locate(doc)
	return spans
}

// locate is Locate that also reports the start offset of a top-level table
// left open at the end of doc, or -1.
func locate(doc []byte) ([]model.Span, int) {
	z := html.NewTokenizer(bytes.NewReader(doc))

	var spans []model.Span
	offset, depth, start := 0, 0, 0

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		size := len(z.Raw())

		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken:
			if isTableTag(z) {
				if depth == 0 {
					start = offset
				}
				depth++
			}
		case html.EndTagToken:
			if depth > 0 && isTableTag(z) {
				depth--
				if depth == 0 {
					spans = append(spans, model.Span{Start: start, End: offset + size})
				}
			}
		}

		offset += size
	}

	if depth > 0 {
		return spans, start
	}
	return spans, -1
}

// isTableTag reports whether the current tag token is <table>. TagName
// lower-cases the name, so matching is case-insensitive.
func isTableTag(z *html.Tokenizer) bool {
	name, _ := z.TagName()
	return string(name) == "table"
}
