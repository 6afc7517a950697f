// Package format provides input detection for batch conversion.
package format

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
)

// Format represents a recognised input kind.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// HTML indicates an HTML document or fragment.
	HTML
	// XHTML indicates an XML-serialised HTML document.
	XHTML
	// Binary indicates content that is not text (PDF, ZIP-based office
	// documents, images, or anything holding NUL bytes).
	Binary
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case HTML:
		return "HTML"
	case XHTML:
		return "XHTML"
	case Binary:
		return "Binary"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case HTML:
		return ".html"
	case XHTML:
		return ".xhtml"
	default:
		return ""
	}
}

// IsHTML reports whether the format can be converted.
func (f Format) IsHTML() bool {
	return f == HTML || f == XHTML
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".html", ".htm", ".shtml":
		return HTML
	case ".xhtml", ".xht":
		return XHTML
	case ".pdf", ".docx", ".xlsx", ".pptx", ".odt", ".zip", ".png", ".jpg", ".jpeg", ".gif":
		return Binary
	default:
		return Unknown
	}
}

// DetectFromMagic checks the leading bytes of a document to determine its
// format. Returns Unknown if the format cannot be determined from the bytes
// alone.
func DetectFromMagic(data []byte) Format {
	if len(data) == 0 {
		return Unknown
	}

	// PDF magic: %PDF
	if bytes.HasPrefix(data, []byte("%PDF")) {
		return Binary
	}

	// ZIP magic: PK\x03\x04
	if bytes.HasPrefix(data, []byte{0x50, 0x4B, 0x03, 0x04}) {
		return Binary
	}

	if bytes.IndexByte(data, 0) >= 0 && !hasUTF16BOM(data) {
		return Binary
	}

	return detectHTMLMagic(data)
}

// hasUTF16BOM reports whether data starts with a UTF-16 byte order mark.
// Such documents hold NUL bytes but are still text.
func hasUTF16BOM(data []byte) bool {
	return bytes.HasPrefix(data, []byte{0xFE, 0xFF}) || bytes.HasPrefix(data, []byte{0xFF, 0xFE})
}

// htmlSignatures are the tag openings accepted at the start of an HTML
// document or fragment.
var htmlSignatures = []string{
	"<!DOCTYPE HTML",
	"<HTML",
	"<HEAD",
	"<BODY",
	"<TABLE",
	"<DIV",
	"<P>",
	"<META",
	"<!--",
}

// detectHTMLMagic checks if the data looks like HTML content.
func detectHTMLMagic(data []byte) Format {
	// Skip a UTF-8 BOM and leading whitespace
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	data = bytes.TrimLeft(data, " \t\r\n\f")
	if len(data) == 0 {
		return Unknown
	}

	upper := strings.ToUpper(string(data[:min(512, len(data))]))

	// XML declaration followed by html-like content is XHTML
	if strings.HasPrefix(upper, "<?XML") {
		if strings.Contains(upper, "<HTML") {
			return XHTML
		}
		return Unknown
	}

	for _, sig := range htmlSignatures {
		if strings.HasPrefix(upper, sig) {
			return HTML
		}
	}

	return Unknown
}

// DetectFromReader inspects the first bytes of the content to determine
// format.
func DetectFromReader(r io.ReaderAt) (Format, error) {
	magic := make([]byte, 512)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	return DetectFromMagic(magic[:n]), nil
}

// DetectFile combines extension and content detection. Content wins when it
// is conclusive; otherwise the extension decides.
func DetectFile(filename string, head []byte) Format {
	if f := DetectFromMagic(head); f != Unknown {
		return f
	}
	return Detect(filename)
}
