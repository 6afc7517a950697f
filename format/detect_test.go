package format

import (
	"bytes"
	"testing"
)

func TestFormat_String(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{HTML, "HTML"},
		{XHTML, "XHTML"},
		{Binary, "Binary"},
		{Unknown, "Unknown"},
		{Format(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("Format(%d).String() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestFormat_Extension(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{HTML, ".html"},
		{XHTML, ".xhtml"},
		{Binary, ""},
		{Unknown, ""},
	}

	for _, tt := range tests {
		if got := tt.format.Extension(); got != tt.want {
			t.Errorf("Format(%d).Extension() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestFormat_IsHTML(t *testing.T) {
	if !HTML.IsHTML() || !XHTML.IsHTML() {
		t.Error("HTML and XHTML should be convertible")
	}
	if Binary.IsHTML() || Unknown.IsHTML() {
		t.Error("Binary and Unknown should not be convertible")
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"page.html", HTML},
		{"page.HTML", HTML},
		{"page.Html", HTML},
		{"page.htm", HTML},
		{"page.HTM", HTML},
		{"page.shtml", HTML},
		{"page.xhtml", XHTML},
		{"page.xht", XHTML},
		{"report.pdf", Binary},
		{"report.docx", Binary},
		{"logo.PNG", Binary},
		{"notes.txt", Unknown},
		{"notes.md", Unknown},
		{"page", Unknown},
		{"", Unknown},
		{"/path/to/file.html", HTML},
		{"/path.d/to/file", Unknown},
	}

	for _, tt := range tests {
		if got := Detect(tt.filename); got != tt.want {
			t.Errorf("Detect(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestDetectFromMagic(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{
			name: "HTML with DOCTYPE",
			data: []byte("<!DOCTYPE html>\n<html>"),
			want: HTML,
		},
		{
			name: "HTML with html tag",
			data: []byte("<html><head>"),
			want: HTML,
		},
		{
			name: "HTML with whitespace before DOCTYPE",
			data: []byte("  \n  <!DOCTYPE HTML PUBLIC"),
			want: HTML,
		},
		{
			name: "table fragment",
			data: []byte("<table><tr><td>1</td></tr></table>"),
			want: HTML,
		},
		{
			name: "leading comment",
			data: []byte("<!-- generated -->\n<div>"),
			want: HTML,
		},
		{
			name: "UTF-8 BOM",
			data: []byte("\xEF\xBB\xBF<html>"),
			want: HTML,
		},
		{
			name: "XHTML",
			data: []byte(`<?xml version="1.0"?>` + "\n" + `<html xmlns="http://www.w3.org/1999/xhtml">`),
			want: XHTML,
		},
		{
			name: "plain XML",
			data: []byte(`<?xml version="1.0"?><feed>`),
			want: Unknown,
		},
		{
			name: "PDF magic bytes",
			data: []byte("%PDF-1.4"),
			want: Binary,
		},
		{
			name: "ZIP magic bytes",
			data: []byte{0x50, 0x4B, 0x03, 0x04, 0x00, 0x00, 0x00, 0x00},
			want: Binary,
		},
		{
			name: "NUL bytes",
			data: []byte{0x01, 0x00, 0x03, 0x04, 0x05},
			want: Binary,
		},
		{
			name: "UTF-16 document",
			data: []byte{0xFF, 0xFE, '<', 0x00, 'h', 0x00},
			want: Unknown,
		},
		{
			name: "empty data",
			data: []byte{},
			want: Unknown,
		},
		{
			name: "whitespace only",
			data: []byte(" \n\t"),
			want: Unknown,
		},
		{
			name: "text file",
			data: []byte("Hello, World!"),
			want: Unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFromMagic(tt.data); got != tt.want {
				t.Errorf("DetectFromMagic() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectFromReader_HTML(t *testing.T) {
	data := []byte("<!DOCTYPE html>\n<html><head><title>Test</title></head><body></body></html>")

	format, err := DetectFromReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("DetectFromReader() error = %v", err)
	}
	if format != HTML {
		t.Errorf("DetectFromReader() = %v, want HTML", format)
	}
}

func TestDetectFromReader_Unknown(t *testing.T) {
	data := []byte("Hello, World! This is plain text.")

	format, err := DetectFromReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("DetectFromReader() error = %v", err)
	}
	if format != Unknown {
		t.Errorf("DetectFromReader() = %v, want Unknown", format)
	}
}

func TestDetectFile(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		head     string
		want     Format
	}{
		{"content wins over extension", "data.txt", "<html>", HTML},
		{"binary content in html file", "page.html", "%PDF-1.7", Binary},
		{"extension decides plain text", "page.html", "just some text", HTML},
		{"nothing conclusive", "notes.txt", "just some text", Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFile(tt.filename, []byte(tt.head)); got != tt.want {
				t.Errorf("DetectFile(%q) = %v, want %v", tt.filename, got, tt.want)
			}
		})
	}
}
