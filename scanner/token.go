package scanner

// Kind identifies a lexical token.
type Kind uint8

const (
	// End signals a clean end of input at a token boundary.
	End Kind = iota
	LeftBrace
	RightBrace
	LeftBracket
	RightBracket
	Colon
	Comma
	String
	Integer
	Decimal
	Bool
	Null
)

func (k Kind) String() string {
	switch k {
	case LeftBrace:
		return "'{'"
	case RightBrace:
		return "'}'"
	case LeftBracket:
		return "'['"
	case RightBracket:
		return "']'"
	case Colon:
		return "':'"
	case Comma:
		return "','"
	case String:
		return "string"
	case Integer:
		return "integer"
	case Decimal:
		return "decimal"
	case Bool:
		return "bool"
	case Null:
		return "null"
	default:
		return "end of input"
	}
}

// IsScalar reports whether the token is a complete value on its own.
func (k Kind) IsScalar() bool {
	switch k {
	case String, Integer, Decimal, Bool, Null:
		return true
	}
	return false
}

// IsNumber reports whether the token is a numeric literal.
func (k Kind) IsNumber() bool {
	return k == Integer || k == Decimal
}

// Token is a classified lexical unit; Start and End form a half-open range into the source.
// For strings the range excludes the quotes.
type Token struct {
	Kind  Kind
	Start int
	End   int
	Bool  bool
	// Escaped is set when the decoded string lives in the scanner scratch buffer.
	Escaped bool
}

// Len returns the source span length.
func (t Token) Len() int { return t.End - t.Start }
