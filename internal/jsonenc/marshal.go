package jsonenc

import (
	"bytes"
	"encoding/json"
	"unicode/utf16"
	"unicode/utf8"
)

const hexDigits = "0123456789abcdef"

// Marshal encodes v and rewrites its string literals according to opts.
func Marshal(v any, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	raw := bytes.TrimRight(buf.Bytes(), "\n")

	out := escape(raw, opts)
	if opts.Has(PrettyPrint) {
		var pretty bytes.Buffer
		if err := json.Indent(&pretty, out, "", "    "); err != nil {
			return nil, err
		}
		out = pretty.Bytes()
	}
	return out, nil
}

// escape walks well-formed JSON produced by encoding/json. Only bytes inside
// string literals are rewritten.
func escape(src []byte, opts Options) []byte {
	dst := make([]byte, 0, len(src)+len(src)/8)
	inString := false

	for i := 0; i < len(src); {
		c := src[i]
		if !inString {
			if c == '"' {
				inString = true
			}
			dst = append(dst, c)
			i++
			continue
		}

		switch {
		case c == '"':
			inString = false
			dst = append(dst, c)
			i++
		case c == '\\':
			next := src[i+1]
			switch {
			case next == '"' && opts.Has(HexQuot):
				dst = append(dst, "\\u0022"...)
				i += 2
			case next == 'u':
				dst = append(dst, src[i:i+6]...)
				i += 6
			default:
				dst = append(dst, c, next)
				i += 2
			}
		case c == '<' && opts.Has(HexTag):
			dst = append(dst, "\\u003C"...)
			i++
		case c == '>' && opts.Has(HexTag):
			dst = append(dst, "\\u003E"...)
			i++
		case c == '&' && opts.Has(HexAmp):
			dst = append(dst, "\\u0026"...)
			i++
		case c == '\'' && opts.Has(HexApos):
			dst = append(dst, "\\u0027"...)
			i++
		case c == '/' && !opts.Has(UnescapedSlashes):
			dst = append(dst, '\\', '/')
			i++
		case c >= utf8.RuneSelf && !opts.Has(UnescapedUnicode):
			r, size := utf8.DecodeRune(src[i:])
			if r1, r2 := utf16.EncodeRune(r); r1 != utf8.RuneError {
				dst = appendUnicode(dst, r1)
				dst = appendUnicode(dst, r2)
			} else {
				dst = appendUnicode(dst, r)
			}
			i += size
		default:
			dst = append(dst, c)
			i++
		}
	}
	return dst
}

func appendUnicode(dst []byte, r rune) []byte {
	return append(dst, '\\', 'u',
		hexDigits[r>>12&0xf], hexDigits[r>>8&0xf], hexDigits[r>>4&0xf], hexDigits[r&0xf])
}
