// Package format classifies byte buffers (JSON/XML/HTML/binary/plain) and
// renders them as styled display lines, following the rendering contract
// of the app's value pane.
package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Detected is the classification of a byte buffer.
type Detected int

const (
	PlainText Detected = iota
	Json
	Xml
	Html
	Binary
)

func (d Detected) Label() string {
	switch d {
	case Json:
		return "JSON"
	case Xml:
		return "XML"
	case Html:
		return "HTML"
	case Binary:
		return "BINARY"
	default:
		return "TEXT"
	}
}

var magicBytes = [][]byte{
	{0x89, 0x50, 0x4E, 0x47}, // PNG
	{0xFF, 0xD8, 0xFF},       // JPEG
	[]byte("GIF8"),           // GIF
	[]byte("%PDF"),           // PDF
}

// Detect classifies a byte buffer per the detection procedure: binary magic
// bytes and control-character ratio take priority, then structural JSON,
// then XML/HTML markers, else plain text.
func Detect(b []byte) Detected {
	for _, magic := range magicBytes {
		if bytes.HasPrefix(b, magic) {
			return Binary
		}
	}
	if controlCharRatio(b) > 0.10 || !utf8.Valid(b) {
		return Binary
	}

	trimmed := bytes.TrimSpace(b)
	if len(trimmed) > 0 {
		if (trimmed[0] == '{' && trimmed[len(trimmed)-1] == '}') ||
			(trimmed[0] == '[' && trimmed[len(trimmed)-1] == ']') {
			if json.Valid(trimmed) {
				return Json
			}
		}
	}

	s := string(trimmed)
	lower := strings.ToLower(s)
	switch {
	case strings.HasPrefix(s, "<?xml") || strings.HasPrefix(s, "<!DOCTYPE"):
		return Xml
	case strings.Contains(lower, "<html"):
		return Html
	case strings.HasPrefix(s, "<") && strings.HasSuffix(s, ">"):
		return Xml
	}

	return PlainText
}

func controlCharRatio(b []byte) float64 {
	if len(b) == 0 {
		return 0
	}
	control := 0
	for _, c := range b {
		if c < 0x20 && c != '\t' && c != '\n' && c != '\r' {
			control++
		}
	}
	return float64(control) / float64(len(b))
}

// PrettyJSON reformats s with two-space indentation. Idempotent: formatting
// already-pretty JSON reproduces the same bytes.
func PrettyJSON(s string) (string, error) {
	var v interface{}
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return "", fmt.Errorf("parse json: %w", err)
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("format json: %w", err)
	}
	return string(out), nil
}

// HighlightJSON tokenizes pretty-printed JSON and returns one ANSI-styled
// line per source line: object keys, string values, and numbers each get
// their own chroma token class. true, false, and null share one class
// (chroma's keyword-constant token), so booleans and null render in the
// same color.
func HighlightJSON(pretty string) ([]string, error) {
	lexer := lexers.Get("json")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	iterator, err := lexer.Tokenise(nil, pretty)
	if err != nil {
		return strings.Split(pretty, "\n"), nil
	}

	formatter := formatters.TTY256
	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return strings.Split(pretty, "\n"), nil
	}
	return strings.Split(strings.TrimRight(buf.String(), "\n"), "\n"), nil
}

// HexDump renders b as 16-bytes-per-row: a decimal-hex offset, two 8-byte
// hex groups separated by a gutter, and an ASCII gutter where non-printable
// bytes render as '.'.
func HexDump(b []byte) []string {
	var lines []string
	for offset := 0; offset < len(b); offset += 16 {
		end := offset + 16
		if end > len(b) {
			end = len(b)
		}
		row := b[offset:end]

		var hexPart strings.Builder
		for i := 0; i < 16; i++ {
			if i < len(row) {
				fmt.Fprintf(&hexPart, "%02x ", row[i])
			} else {
				hexPart.WriteString("   ")
			}
			if i == 7 {
				hexPart.WriteString(" ")
			}
		}

		var asciiPart strings.Builder
		for _, c := range row {
			if c >= 0x20 && c < 0x7f {
				asciiPart.WriteByte(c)
			} else {
				asciiPart.WriteByte('.')
			}
		}

		lines = append(lines, fmt.Sprintf("%08x  %s %s", offset, hexPart.String(), asciiPart.String()))
	}
	return lines
}

// ListLines renders a List value as "[i] item" per element.
func ListLines(items []string) []string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = fmt.Sprintf("[%d] %s", i, item)
	}
	return lines
}

// SetLines renders a Set value as one member per line, in adapter order.
func SetLines(members []string) []string {
	return append([]string{}, members...)
}

// OrderedSetLines renders an OrderedSet as "score: member" with two decimal
// digits of score.
func OrderedSetLines(member string, score float64) string {
	return fmt.Sprintf("%.2f: %s", score, member)
}

// HashLines renders a Hash field as "field: value".
func HashLines(field, value string) string {
	return fmt.Sprintf("%s: %s", field, value)
}
