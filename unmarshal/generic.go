package unmarshal

import (
	"github.com/viant/jsonbind/conv"
	"github.com/viant/jsonbind/jsonerr"
	"github.com/viant/jsonbind/scanner"
	"github.com/viant/jsonbind/value"
)

// parseDynamic parses the value starting with tok without a descriptor.
func (s *session) parseDynamic(tok scanner.Token) (value.Dynamic, error) {
	switch tok.Kind {
	case scanner.LeftBrace:
		m, err := s.parseObject()
		if err != nil {
			return value.Null(), err
		}
		return value.FromMap(m), nil
	case scanner.LeftBracket:
		l, err := s.parseArray()
		if err != nil {
			return value.Null(), err
		}
		return value.FromList(l), nil
	}
	ret, err := conv.Dynamic(tok, s.scanner.Bytes(tok))
	if err != nil {
		return ret, jsonerr.Wrap(jsonerr.Exception, err, tok.Start, "failed to convert %v", tok.Kind)
	}
	return ret, nil
}

// parseObject parses members after '{' into an ordered map; a repeated name keeps its position and takes the last value.
func (s *session) parseObject() (*value.OrderedMap, error) {
	ret := value.NewOrderedMap(0)
	tok, empty, err := s.first(scanner.RightBrace)
	if err != nil || empty {
		return ret, err
	}
	for {
		if _, err = s.member(tok); err != nil {
			return nil, err
		}
		name := s.scanner.Text(tok)
		if err = s.colon(); err != nil {
			return nil, err
		}
		if tok, err = s.value(); err != nil {
			return nil, err
		}
		item, err := s.parseDynamic(tok)
		if err != nil {
			return nil, err
		}
		ret.Set(name, item)
		more, err := s.separator(scanner.RightBrace)
		if err != nil {
			return nil, err
		}
		if !more {
			return ret, nil
		}
		if tok, err = s.next(); err != nil {
			return nil, err
		}
	}
}

// parseArray parses elements after '[' into a dynamic list.
func (s *session) parseArray() (value.List, error) {
	ret := value.List{}
	tok, empty, err := s.first(scanner.RightBracket)
	if err != nil || empty {
		return ret, err
	}
	for {
		if err = s.valueAt(tok); err != nil {
			return nil, err
		}
		item, err := s.parseDynamic(tok)
		if err != nil {
			return nil, err
		}
		ret = append(ret, item)
		more, err := s.separator(scanner.RightBracket)
		if err != nil {
			return nil, err
		}
		if !more {
			return ret, nil
		}
		if tok, err = s.next(); err != nil {
			return nil, err
		}
	}
}

// skipValue consumes the value starting with tok, checking its syntax.
func (s *session) skipValue(tok scanner.Token) error {
	switch tok.Kind {
	case scanner.LeftBrace:
		return s.skipObject()
	case scanner.LeftBracket:
		return s.skipArray()
	}
	return nil
}

func (s *session) skipObject() error {
	tok, empty, err := s.first(scanner.RightBrace)
	if err != nil || empty {
		return err
	}
	for {
		if _, err = s.member(tok); err != nil {
			return err
		}
		if err = s.colon(); err != nil {
			return err
		}
		if tok, err = s.value(); err != nil {
			return err
		}
		if err = s.skipValue(tok); err != nil {
			return err
		}
		more, err := s.separator(scanner.RightBrace)
		if err != nil || !more {
			return err
		}
		if tok, err = s.next(); err != nil {
			return err
		}
	}
}

func (s *session) skipArray() error {
	tok, empty, err := s.first(scanner.RightBracket)
	if err != nil || empty {
		return err
	}
	for {
		if err = s.valueAt(tok); err != nil {
			return err
		}
		if err = s.skipValue(tok); err != nil {
			return err
		}
		more, err := s.separator(scanner.RightBracket)
		if err != nil || !more {
			return err
		}
		if tok, err = s.next(); err != nil {
			return err
		}
	}
}
