// Package pattern translates date/time patterns (yyyy-MM-dd'T'HH:mm:ss.SSS) into Go time layouts.
package pattern

import (
	"fmt"
	"strings"
	"time"

	"github.com/viant/jsonbind/internal/lru"
	"github.com/viant/parsly"
)

// Default patterns per temporal kind.
const (
	Date     = "yyyy-MM-dd"
	Time     = "HH:mm:ss"
	DateTime = "yyyy-MM-dd HH:mm:ss"
	// GeneratedDateTime is the generator default for date-time values.
	GeneratedDateTime = "yyyy-MM-dd'T'HH:mm:ss.SSS"
)

var layouts = lru.New[string, string](512)

// Layout returns the Go layout for pattern.
func Layout(pattern string) (string, error) {
	return layouts.GetOrCreate(pattern, translate)
}

// MustLayout returns the Go layout for a known-good pattern.
func MustLayout(pattern string) string {
	layout, err := Layout(pattern)
	if err != nil {
		panic(err)
	}
	return layout
}

// Format formats t with pattern.
func Format(t time.Time, pattern string) (string, error) {
	layout, err := Layout(pattern)
	if err != nil {
		return "", err
	}
	return t.Format(layout), nil
}

// Parse parses value with pattern in UTC.
func Parse(value, pattern string) (time.Time, error) {
	layout, err := Layout(pattern)
	if err != nil {
		return time.Time{}, err
	}
	return time.ParseInLocation(layout, value, time.UTC)
}

func translate(pattern string) (string, error) {
	cursor := parsly.NewCursor("", []byte(pattern), 0)
	layout := strings.Builder{}
	for cursor.Pos < len(cursor.Input) {
		c := cursor.Input[cursor.Pos]
		if c == '\'' {
			match := cursor.MatchAny(quotedMatcher)
			if match.Code != quotedToken {
				return "", fmt.Errorf("unterminated quote in pattern %q", pattern)
			}
			text := match.Text(cursor)
			if text == "''" {
				layout.WriteByte('\'')
				continue
			}
			if len(text) >= 2 && text[0] == '\'' && text[len(text)-1] == '\'' {
				text = text[1 : len(text)-1]
			}
			layout.WriteString(text)
			continue
		}
		if !isLetter(c) {
			layout.WriteByte(c)
			cursor.Pos++
			continue
		}
		count := 1
		for cursor.Pos+count < len(cursor.Input) && cursor.Input[cursor.Pos+count] == c {
			count++
		}
		cursor.Pos += count
		element, err := layoutElement(c, count)
		if err != nil {
			return "", fmt.Errorf("pattern %q: %w", pattern, err)
		}
		layout.WriteString(element)
	}
	return layout.String(), nil
}

func layoutElement(letter byte, count int) (string, error) {
	switch letter {
	case 'y', 'u':
		if count == 2 {
			return "06", nil
		}
		return "2006", nil
	case 'M', 'L':
		switch count {
		case 1:
			return "1", nil
		case 2:
			return "01", nil
		case 3:
			return "Jan", nil
		}
		return "January", nil
	case 'd':
		if count == 1 {
			return "2", nil
		}
		return "02", nil
	case 'D':
		return "002", nil
	case 'H', 'k':
		return "15", nil
	case 'h', 'K':
		if count == 1 {
			return "3", nil
		}
		return "03", nil
	case 'm':
		if count == 1 {
			return "4", nil
		}
		return "04", nil
	case 's':
		if count == 1 {
			return "5", nil
		}
		return "05", nil
	case 'S':
		return strings.Repeat("0", count), nil
	case 'a':
		return "PM", nil
	case 'E':
		if count >= 4 {
			return "Monday", nil
		}
		return "Mon", nil
	case 'z':
		return "MST", nil
	case 'Z':
		return "-0700", nil
	case 'X':
		switch count {
		case 1:
			return "Z07", nil
		case 2:
			return "Z0700", nil
		}
		return "Z07:00", nil
	case 'x':
		switch count {
		case 1:
			return "-07", nil
		case 2:
			return "-0700", nil
		}
		return "-07:00", nil
	}
	return "", fmt.Errorf("unsupported pattern letter %q", letter)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
