package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

type jsoncMode int

const (
	modeJSON jsoncMode = iota
	modeString
	modeLineComment
	modeBlockComment
)

// normalizeJSONC rewrites JSONC into strict JSON. Stripped characters are
// blanked with spaces so decode-error offsets still map to the user's file.
func normalizeJSONC(content string) (string, error) {
	stripped, err := stripComments(content)
	if err != nil {
		return "", err
	}
	return stripTrailingCommas(stripped), nil
}

func stripComments(content string) (string, error) {
	var out strings.Builder
	out.Grow(len(content))

	mode := modeJSON
	escape := false

	for i := 0; i < len(content); i++ {
		ch := content[i]

		switch mode {
		case modeLineComment:
			if ch == '\n' || ch == '\r' {
				mode = modeJSON
				out.WriteByte(ch)
			} else {
				out.WriteByte(' ')
			}

		case modeBlockComment:
			switch {
			case ch == '*' && i+1 < len(content) && content[i+1] == '/':
				mode = modeJSON
				out.WriteString("  ")
				i++
			case ch == '\n' || ch == '\r' || ch == '\t':
				out.WriteByte(ch)
			default:
				out.WriteByte(' ')
			}

		case modeString:
			out.WriteByte(ch)
			switch {
			case escape:
				escape = false
			case ch == '\\':
				escape = true
			case ch == '"':
				mode = modeJSON
			}

		default:
			if ch == '"' {
				mode = modeString
				out.WriteByte(ch)
				continue
			}
			if ch == '/' && i+1 < len(content) {
				switch content[i+1] {
				case '/':
					mode = modeLineComment
					out.WriteString("  ")
					i++
					continue
				case '*':
					mode = modeBlockComment
					out.WriteString("  ")
					i++
					continue
				}
			}
			out.WriteByte(ch)
		}
	}

	if mode == modeBlockComment {
		return "", fmt.Errorf("unterminated block comment in JSONC")
	}

	return out.String(), nil
}

func stripTrailingCommas(content string) string {
	var out strings.Builder
	out.Grow(len(content))

	inString := false
	escape := false

	for i := 0; i < len(content); i++ {
		ch := content[i]

		if inString {
			out.WriteByte(ch)
			switch {
			case escape:
				escape = false
			case ch == '\\':
				escape = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch {
		case ch == '"':
			inString = true
			out.WriteByte(ch)
		case ch == ',' && nextSignificantIsCloser(content, i+1):
			out.WriteByte(' ')
		default:
			out.WriteByte(ch)
		}
	}

	return out.String()
}

func nextSignificantIsCloser(content string, from int) bool {
	for i := from; i < len(content); i++ {
		switch content[i] {
		case ' ', '\n', '\r', '\t':
			continue
		case '}', ']':
			return true
		default:
			return false
		}
	}
	return false
}

func ensureSingleJSONValue(decoder *json.Decoder) error {
	var extra struct{}
	err := decoder.Decode(&extra)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err == nil {
		return fmt.Errorf("multiple JSON values are not allowed")
	}
	return err
}

func wrapJSONDecodeError(content string, err error) error {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		line, col := offsetToLineCol(content, syntaxErr.Offset)
		return fmt.Errorf("line %d column %d: %w", line, col, err)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		line, col := offsetToLineCol(content, typeErr.Offset)
		return fmt.Errorf("line %d column %d: %w", line, col, err)
	}

	return err
}

func offsetToLineCol(content string, offset int64) (int, int) {
	if offset <= 0 {
		return 1, 1
	}

	limit := int(offset)
	if limit > len(content) {
		limit = len(content)
	}

	line := 1
	col := 1
	for i := 0; i < limit-1; i++ {
		if content[i] == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}
