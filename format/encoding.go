package format

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
)

// utf8BOM is stripped before formatting and re-attached verbatim on write.
var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// Encoding describes how a file's bytes map to its decoded text.
type Encoding struct {
	Name string
	BOM  bool
}

// The coding cookie only counts on the first line, or on the second line
// when the first is blank or a bare comment.
var (
	cookiePattern = regexp.MustCompile(`^[ \t\f]*#.*?coding[:=][ \t]*([-\w.]+)`)
	blankPattern  = regexp.MustCompile(`^[ \t\f]*(?:[#\r\n]|$)`)
)

// DetectEncoding reports the declared encoding of data: the UTF-8 byte
// order mark wins, then a coding cookie, then plain UTF-8.
func DetectEncoding(data []byte) Encoding {
	if bytes.HasPrefix(data, utf8BOM) {
		return Encoding{Name: "utf-8", BOM: true}
	}
	if name := codingCookie(data); name != "" {
		return Encoding{Name: name}
	}
	return Encoding{Name: "utf-8"}
}

func codingCookie(data []byte) string {
	lines := bytes.SplitN(data, []byte("\n"), 3)
	if len(lines) > 0 {
		if m := cookiePattern.FindSubmatch(lines[0]); m != nil {
			return strings.ToLower(string(m[1]))
		}
	}
	if len(lines) > 1 && blankPattern.Match(lines[0]) {
		if m := cookiePattern.FindSubmatch(lines[1]); m != nil {
			return strings.ToLower(string(m[1]))
		}
	}
	return ""
}

// Decode converts file bytes to text using the detected encoding and
// strips a leading byte order mark. When the declared encoding is
// unknown, or the bytes do not decode under it, Latin-1 applies instead;
// it accepts any byte sequence, so decoding as a whole cannot fail.
func Decode(data []byte) (string, Encoding) {
	enc := DetectEncoding(data)
	if enc.BOM {
		data = data[len(utf8BOM):]
	}

	if text, ok := decode(data, enc.Name); ok {
		return text, enc
	}
	enc.Name = "latin-1"
	text, _ := decode(data, enc.Name)
	return text, enc
}

// Encode converts formatted text back to the encoding the file was read
// in and re-attaches the byte order mark.
func Encode(text string, enc Encoding) ([]byte, error) {
	var data []byte
	if isUTF8Name(enc.Name) {
		data = []byte(text)
	} else {
		e := lookupEncoding(enc.Name)
		if e == nil {
			return nil, fmt.Errorf("unsupported encoding %q", enc.Name)
		}
		out, err := e.NewEncoder().Bytes([]byte(text))
		if err != nil {
			return nil, fmt.Errorf("encode as %s: %w", enc.Name, err)
		}
		data = out
	}
	if enc.BOM {
		data = append(append([]byte(nil), utf8BOM...), data...)
	}
	return data, nil
}

func decode(data []byte, name string) (string, bool) {
	if isUTF8Name(name) {
		if utf8.Valid(data) {
			return string(data), true
		}
		return "", false
	}
	e := lookupEncoding(name)
	if e == nil {
		return "", false
	}
	text, err := e.NewDecoder().Bytes(data)
	if err != nil {
		return "", false
	}
	return string(text), true
}

// lookupEncoding resolves an encoding declaration to a decoder. The
// Latin-1 spellings common in coding cookies are not IANA names, so they
// are mapped directly; everything else goes through the IANA index.
func lookupEncoding(name string) encoding.Encoding {
	switch normalizeEncodingName(name) {
	case "latin1", "latin", "iso88591", "88591", "cp819", "l1":
		return charmap.ISO8859_1
	}
	e, err := ianaindex.IANA.Encoding(name)
	if err != nil || e == nil {
		return nil
	}
	return e
}

func isUTF8Name(name string) bool {
	switch normalizeEncodingName(name) {
	case "", "utf8", "u8", "utf":
		return true
	}
	return false
}

func normalizeEncodingName(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, "-", "")
	return strings.ReplaceAll(name, "_", "")
}
