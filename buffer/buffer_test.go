package buffer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuffer_Growth(t *testing.T) {
	b := New(4)
	assert.Equal(t, 4, b.Cap())
	_, _ = b.WriteString("abcdef")
	assert.Equal(t, 8, b.Cap())
	assert.Equal(t, "abcdef", b.String())
	_, _ = b.Write([]byte(strings.Repeat("x", 30)))
	assert.Equal(t, 64, b.Cap())
	assert.Equal(t, 36, b.Len())

	backing := b.Cap()
	b.Reset()
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, backing, b.Cap())
	_ = b.WriteByte('z')
	assert.Equal(t, "z", b.String())
}

func TestBuffer_CompositeWrites(t *testing.T) {
	var testCases = []struct {
		description string
		write       func(b *Buffer)
		expect      string
	}{
		{
			description: "compact quoted pair",
			write:       func(b *Buffer) { b.WritePair("name", "v", true, false) },
			expect:      `"name":"v"`,
		},
		{
			description: "pretty raw pair",
			write:       func(b *Buffer) { b.WritePair("n", "12", false, true) },
			expect:      `"n" : 12`,
		},
		{
			description: "tabs",
			write:       func(b *Buffer) { b.WriteTabs(3); b.WriteTabs(0) },
			expect:      "\t\t\t",
		},
		{
			description: "escaping",
			write:       func(b *Buffer) { b.WriteEscaped("a\"b\\c/d\b\f\n\r\t\x01é") },
			expect:      `"a\"b\\c\/d\b\f\n\r\t\u0001é"`,
		},
		{
			description: "empty string",
			write:       func(b *Buffer) { b.WriteEscaped("") },
			expect:      `""`,
		},
	}
	for _, testCase := range testCases {
		b := New(0)
		testCase.write(b)
		assert.Equal(t, testCase.expect, b.String(), testCase.description)
	}
}

func TestPool_ExclusiveAndReset(t *testing.T) {
	first := Get()
	_, _ = first.WriteString("leftover")
	Put(first)
	second := Get()
	assert.Equal(t, 0, second.Len())
	other := Get()
	assert.NotSame(t, second, other)
	Put(second)
	Put(other)

	big := New(maxPooledCap * 2)
	Put(big)
}
