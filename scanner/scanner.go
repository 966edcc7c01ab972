// Package scanner turns JSON text into a stream of tokens.
//
// The scanner keeps only the current position and a scratch buffer for
// strings containing escape sequences; strings without escapes are returned
// as offsets into the source.
package scanner

import (
	"unicode/utf16"
	"unicode/utf8"

	"github.com/viant/jsonbind/jsonerr"
)

const excerptRadius = 12

// Scanner reads tokens from an immutable byte slice.
type Scanner struct {
	data    []byte
	pos     int
	scratch []byte
}

// New creates a scanner over data.
func New(data []byte) *Scanner {
	return &Scanner{data: data}
}

// Reset rewinds the scanner to the start of data, keeping the scratch buffer.
func (s *Scanner) Reset(data []byte) {
	s.data = data
	s.pos = 0
	s.scratch = s.scratch[:0]
}

// Pos returns the cursor position.
func (s *Scanner) Pos() int { return s.pos }

// Data returns the source buffer.
func (s *Scanner) Data() []byte { return s.data }

// Next advances past whitespace and returns the next token.
// A clean end of input yields a token of kind End and a nil error.
func (s *Scanner) Next() (Token, error) {
	s.skipWhitespace()
	if s.pos >= len(s.data) {
		return Token{Kind: End, Start: s.pos, End: s.pos}, nil
	}
	start := s.pos
	switch c := s.data[s.pos]; c {
	case '{':
		s.pos++
		return Token{Kind: LeftBrace, Start: start, End: s.pos}, nil
	case '}':
		s.pos++
		return Token{Kind: RightBrace, Start: start, End: s.pos}, nil
	case '[':
		s.pos++
		return Token{Kind: LeftBracket, Start: start, End: s.pos}, nil
	case ']':
		s.pos++
		return Token{Kind: RightBracket, Start: start, End: s.pos}, nil
	case ':':
		s.pos++
		return Token{Kind: Colon, Start: start, End: s.pos}, nil
	case ',':
		s.pos++
		return Token{Kind: Comma, Start: start, End: s.pos}, nil
	case '"':
		return s.scanString()
	case 't':
		return s.scanLiteral("true", Token{Kind: Bool, Bool: true})
	case 'f':
		return s.scanLiteral("false", Token{Kind: Bool})
	case 'n':
		return s.scanLiteral("null", Token{Kind: Null})
	default:
		if c == '-' || isDigit(c) {
			return s.scanNumber()
		}
		return Token{}, s.errorf(jsonerr.InvalidByte, start, "invalid character %q", c)
	}
}

// Bytes returns the decoded content of tok. For escaped strings the slice aliases
// the scratch buffer and is valid until the next string token is scanned.
func (s *Scanner) Bytes(tok Token) []byte {
	if tok.Escaped {
		return s.scratch
	}
	return s.data[tok.Start:tok.End]
}

// Text returns the decoded content of tok as a new string.
func (s *Scanner) Text(tok Token) string {
	return string(s.Bytes(tok))
}

// Excerpt returns a short fragment of the input around pos.
func (s *Scanner) Excerpt(pos int) string {
	return Excerpt(s.data, pos)
}

// Excerpt returns a short fragment of data around pos.
func Excerpt(data []byte, pos int) string {
	if len(data) == 0 {
		return ""
	}
	from := pos - excerptRadius
	if from < 0 {
		from = 0
	}
	to := pos + excerptRadius
	if to > len(data) {
		to = len(data)
	}
	if from > to {
		from = to
	}
	return string(data[from:to])
}

func (s *Scanner) skipWhitespace() {
	for s.pos < len(s.data) {
		switch s.data[s.pos] {
		case ' ', '\n', '\r', '\t':
			s.pos++
		default:
			return
		}
	}
}

func (s *Scanner) scanLiteral(literal string, tok Token) (Token, error) {
	start := s.pos
	for i := 0; i < len(literal); i++ {
		at := start + i
		if at >= len(s.data) {
			return Token{}, s.errorf(jsonerr.EndOfBuffer, at, "unexpected end of input in literal %s", literal)
		}
		if s.data[at] != literal[i] {
			return Token{}, s.errorf(jsonerr.InvalidByte, at, "invalid character %q in literal %s", s.data[at], literal)
		}
	}
	s.pos = start + len(literal)
	tok.Start = start
	tok.End = s.pos
	return tok, nil
}

func (s *Scanner) scanNumber() (Token, error) {
	start := s.pos
	kind := Integer
	i := start
	if s.data[i] == '-' {
		i++
	}
	var err error
	if i, err = s.requireDigits(i, "number"); err != nil {
		return Token{}, err
	}
	if i < len(s.data) && s.data[i] == '.' {
		kind = Decimal
		if i, err = s.requireDigits(i+1, "fraction"); err != nil {
			return Token{}, err
		}
	}
	if i < len(s.data) && (s.data[i] == 'e' || s.data[i] == 'E') {
		kind = Decimal
		i++
		if i < len(s.data) && (s.data[i] == '+' || s.data[i] == '-') {
			i++
		}
		if i, err = s.requireDigits(i, "exponent"); err != nil {
			return Token{}, err
		}
	}
	s.pos = i
	return Token{Kind: kind, Start: start, End: i}, nil
}

func (s *Scanner) requireDigits(i int, part string) (int, error) {
	if i >= len(s.data) {
		return i, s.errorf(jsonerr.EndOfBuffer, i, "unexpected end of input in %s", part)
	}
	if !isDigit(s.data[i]) {
		return i, s.errorf(jsonerr.InvalidByte, i, "invalid character %q in %s", s.data[i], part)
	}
	for i < len(s.data) && isDigit(s.data[i]) {
		i++
	}
	return i, nil
}

func (s *Scanner) scanString() (Token, error) {
	s.scratch = s.scratch[:0]
	start := s.pos + 1
	run := start
	escaped := false
	for i := start; i < len(s.data); {
		switch s.data[i] {
		case '"':
			if escaped {
				s.scratch = append(s.scratch, s.data[run:i]...)
			}
			s.pos = i + 1
			return Token{Kind: String, Start: start, End: i, Escaped: escaped}, nil
		case '\\':
			s.scratch = append(s.scratch, s.data[run:i]...)
			escaped = true
			n, err := s.decodeEscape(i)
			if err != nil {
				return Token{}, err
			}
			i += n
			run = i
		default:
			i++
		}
	}
	return Token{}, s.errorf(jsonerr.EndOfBuffer, len(s.data), "unterminated string starting at %d", start-1)
}

// decodeEscape decodes the escape sequence at i into the scratch buffer and returns its length.
func (s *Scanner) decodeEscape(i int) (int, error) {
	if i+1 >= len(s.data) {
		return 0, s.errorf(jsonerr.EndOfBuffer, i, "unexpected end of input in escape sequence")
	}
	switch c := s.data[i+1]; c {
	case '"', '\\', '/':
		s.scratch = append(s.scratch, c)
	case 'b':
		s.scratch = append(s.scratch, '\b')
	case 'f':
		s.scratch = append(s.scratch, '\f')
	case 'n':
		s.scratch = append(s.scratch, '\n')
	case 'r':
		s.scratch = append(s.scratch, '\r')
	case 't':
		s.scratch = append(s.scratch, '\t')
	case 'u':
		r, err := s.hex4(i + 2)
		if err != nil {
			return 0, err
		}
		if utf16.IsSurrogate(r) && i+12 <= len(s.data) && s.data[i+6] == '\\' && s.data[i+7] == 'u' {
			if low, lowErr := s.hex4(i + 8); lowErr == nil {
				if decoded := utf16.DecodeRune(r, low); decoded != utf8.RuneError {
					s.scratch = utf8.AppendRune(s.scratch, decoded)
					return 12, nil
				}
			}
		}
		s.scratch = utf8.AppendRune(s.scratch, r)
		return 6, nil
	default:
		return 0, s.errorf(jsonerr.InvalidByte, i+1, "invalid escape character %q", c)
	}
	return 2, nil
}

func (s *Scanner) hex4(i int) (rune, error) {
	if i+4 > len(s.data) {
		return 0, s.errorf(jsonerr.EndOfBuffer, len(s.data), "unexpected end of input in unicode escape")
	}
	var r rune
	for _, c := range s.data[i : i+4] {
		var d rune
		switch {
		case c >= '0' && c <= '9':
			d = rune(c - '0')
		case c >= 'a' && c <= 'f':
			d = rune(c-'a') + 10
		case c >= 'A' && c <= 'F':
			d = rune(c-'A') + 10
		default:
			return 0, s.errorf(jsonerr.InvalidByte, i, "invalid unicode escape")
		}
		r = r<<4 | d
	}
	return r, nil
}

func (s *Scanner) errorf(kind jsonerr.Kind, pos int, format string, args ...interface{}) error {
	return jsonerr.New(kind, pos, s.Excerpt(pos), format, args...)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// Unquote decodes a quoted JSON string literal.
func Unquote(literal string) (string, error) {
	s := New([]byte(literal))
	tok, err := s.Next()
	if err != nil {
		return "", err
	}
	if tok.Kind != String {
		return "", s.errorf(jsonerr.InvalidByte, tok.Start, "expected string, got %v", tok.Kind)
	}
	value := s.Text(tok)
	next, err := s.Next()
	if err != nil {
		return "", err
	}
	if next.Kind != End {
		return "", s.errorf(jsonerr.UnexpectedTokenAfterLeftBrace, next.Start, "unexpected %v after string", next.Kind)
	}
	return value, nil
}
