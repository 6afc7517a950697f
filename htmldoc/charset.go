package htmldoc

import (
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"
)

// Decode reads an HTML document and returns it as UTF-8. The charset is
// taken from a byte order mark, the contentType parameter (e.g.
// "text/html; charset=shift_jis") or a <meta> declaration, in that order.
// Documents that are already UTF-8 are returned byte for byte.
func Decode(r io.Reader, contentType string) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading HTML: %w", err)
	}
	return DecodeBytes(data, contentType)
}

// DecodeBytes is Decode for an in-memory document.
func DecodeBytes(data []byte, contentType string) ([]byte, error) {
	enc, name, certain := charset.DetermineEncoding(data, contentType)
	if name == "utf-8" || (!certain && utf8.Valid(data)) {
		return data, nil
	}

	out, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return out, nil
}
