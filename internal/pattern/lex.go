package pattern

import (
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

const (
	quotedToken = iota
)

var quotedMatcher = parsly.NewToken(quotedToken, "' .... '", matcher.NewQuote('\'', '\\'))
