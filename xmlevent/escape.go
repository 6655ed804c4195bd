package xmlevent

import (
	"bufio"
	"bytes"
	"strconv"
	"unicode/utf8"
)

var standardEntities = map[string]string{
	"lt":   "<",
	"gt":   ">",
	"amp":  "&",
	"apos": "'",
	"quot": "\"",
}

// unescape resolves the five predefined entities and numeric character
// references in data. It always returns a fresh slice, so the result never
// aliases the input.
func unescape(data []byte) ([]byte, error) {
	dst := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		if data[i] != '&' {
			dst = append(dst, data[i])
			continue
		}
		semi := bytes.IndexByte(data[i+1:], ';')
		if semi < 0 {
			return nil, ErrInvalidEntity
		}
		ref := data[i+1 : i+1+semi]
		if len(ref) == 0 {
			return nil, ErrInvalidEntity
		}
		if ref[0] == '#' {
			r, err := parseCharRef(ref[1:])
			if err != nil {
				return nil, err
			}
			dst = utf8.AppendRune(dst, r)
		} else {
			replacement, ok := standardEntities[string(ref)]
			if !ok {
				return nil, ErrInvalidEntity
			}
			dst = append(dst, replacement...)
		}
		i += semi + 1
	}
	return dst, nil
}

func parseCharRef(ref []byte) (rune, error) {
	if len(ref) == 0 {
		return 0, ErrInvalidCharRef
	}
	base := 10
	if ref[0] == 'x' || ref[0] == 'X' {
		base = 16
		ref = ref[1:]
	}
	n, err := strconv.ParseUint(string(ref), base, 32)
	if err != nil {
		return 0, ErrInvalidCharRef
	}
	r := rune(n)
	if !utf8.ValidRune(r) {
		return 0, ErrInvalidCharRef
	}
	return r, nil
}

// escapeTo writes s with the characters in the relevant set replaced by
// predefined entities. Attribute values additionally escape both quote kinds
// so the writer can always emit double-quoted values.
func escapeTo(bw *bufio.Writer, s string, attr bool) error {
	last := 0
	for i := 0; i < len(s); i++ {
		var ent string
		switch s[i] {
		case '&':
			ent = "&amp;"
		case '<':
			ent = "&lt;"
		case '>':
			ent = "&gt;"
		case '"':
			if !attr {
				continue
			}
			ent = "&quot;"
		case '\'':
			if !attr {
				continue
			}
			ent = "&apos;"
		default:
			continue
		}
		if _, err := bw.WriteString(s[last:i]); err != nil {
			return err
		}
		if _, err := bw.WriteString(ent); err != nil {
			return err
		}
		last = i + 1
	}
	_, err := bw.WriteString(s[last:])
	return err
}
