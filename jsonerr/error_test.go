package jsonerr

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Error(t *testing.T) {
	var testCases = []struct {
		description string
		err         error
		expect      string
	}{
		{
			description: "offset and excerpt",
			err:         New(ExpectColonAfterName, 8, `"A"}`, "expected ':' after %q", "city"),
			expect:      `ExpectColonAfterName: expected ':' after "city" at 8 near "\"A\"}"`,
		},
		{
			description: "no offset",
			err:         New(Exception, -1, "", "unsupported type"),
			expect:      `Exception: unsupported type`,
		},
		{
			description: "wrapped cause",
			err:         Wrap(Exception, io.ErrUnexpectedEOF, -1, "failed to read %v", "a.json"),
			expect:      `Exception: failed to read a.json: unexpected EOF`,
		},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, testCase.err.Error(), testCase.description)
	}
}

func TestSentinel(t *testing.T) {
	err := fmt.Errorf("bind: %w", New(NameNotFoundInObject, 3, "", "unknown name %q", "x"))
	assert.True(t, errors.Is(err, Sentinel(NameNotFoundInObject)))
	assert.False(t, errors.Is(err, Sentinel(NameInvalid)))

	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, NameNotFoundInObject, kind)

	_, ok = KindOf(io.EOF)
	assert.False(t, ok)
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(Exception, nil, -1, "noop"))

	inner := New(InvalidByte, 4, "", "invalid character")
	cause := fmt.Errorf("ctx: %w", inner)
	assert.Equal(t, cause, Wrap(Exception, cause, -1, "outer"))

	wrapped := Wrap(Exception, io.EOF, 2, "read")
	assert.True(t, errors.Is(wrapped, io.EOF))
}
