// Package buffer provides an append-only output buffer used by the generator.
package buffer

import "unicode/utf8"

const (
	defaultCapacity = 256
	// doublingLimit bounds geometric growth; above it capacity grows additively.
	doublingLimit = 16 << 20
)

// Buffer is an append-only byte buffer with an explicit logical length.
type Buffer struct {
	data []byte
	n    int
}

// New creates a buffer with at least the given capacity.
func New(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &Buffer{data: make([]byte, capacity)}
}

// Len returns the number of bytes written.
func (b *Buffer) Len() int { return b.n }

// Cap returns the backing capacity.
func (b *Buffer) Cap() int { return len(b.data) }

// Reset clears the content, keeping the backing array.
func (b *Buffer) Reset() { b.n = 0 }

// Bytes returns the written content; the slice aliases the buffer.
func (b *Buffer) Bytes() []byte { return b.data[:b.n] }

// String materializes the content.
func (b *Buffer) String() string { return string(b.data[:b.n]) }

func (b *Buffer) ensure(extra int) {
	need := b.n + extra
	if need <= len(b.data) {
		return
	}
	capacity := len(b.data)
	if capacity == 0 {
		capacity = defaultCapacity
	}
	for capacity < need {
		if capacity < doublingLimit {
			capacity *= 2
		} else {
			capacity += doublingLimit
		}
	}
	grown := make([]byte, capacity)
	copy(grown, b.data[:b.n])
	b.data = grown
}

// WriteByte appends c.
func (b *Buffer) WriteByte(c byte) error {
	b.ensure(1)
	b.data[b.n] = c
	b.n++
	return nil
}

// Write appends a raw span.
func (b *Buffer) Write(p []byte) (int, error) {
	b.ensure(len(p))
	b.n += copy(b.data[b.n:], p)
	return len(p), nil
}

// WriteString appends a raw string.
func (b *Buffer) WriteString(s string) (int, error) {
	b.ensure(len(s))
	b.n += copy(b.data[b.n:], s)
	return len(s), nil
}

// WriteTabs appends count tab characters.
func (b *Buffer) WriteTabs(count int) {
	if count <= 0 {
		return
	}
	b.ensure(count)
	for i := 0; i < count; i++ {
		b.data[b.n+i] = '\t'
	}
	b.n += count
}

// WriteQuotedName appends "name": or "name" : in pretty mode.
func (b *Buffer) WriteQuotedName(name string, pretty bool) {
	b.WriteEscaped(name)
	if pretty {
		_, _ = b.WriteString(" : ")
		return
	}
	_ = b.WriteByte(':')
}

// WritePair appends a complete "name":value member; quoted values are escaped.
func (b *Buffer) WritePair(name, value string, quoted, pretty bool) {
	b.WriteQuotedName(name, pretty)
	if quoted {
		b.WriteEscaped(value)
		return
	}
	_, _ = b.WriteString(value)
}

const hexDigits = "0123456789abcdef"

// WriteEscaped appends s as a quoted JSON string literal.
// '/' is escaped along with the mandatory characters.
func (b *Buffer) WriteEscaped(s string) {
	b.ensure(len(s) + 2)
	_ = b.WriteByte('"')
	run := 0
	for i := 0; i < len(s); {
		c := s[i]
		if c >= utf8.RuneSelf {
			i++
			continue
		}
		var esc byte
		switch c {
		case '"', '\\', '/':
			esc = c
		case '\b':
			esc = 'b'
		case '\f':
			esc = 'f'
		case '\n':
			esc = 'n'
		case '\r':
			esc = 'r'
		case '\t':
			esc = 't'
		default:
			if c >= 0x20 {
				i++
				continue
			}
		}
		_, _ = b.WriteString(s[run:i])
		if esc != 0 {
			_ = b.WriteByte('\\')
			_ = b.WriteByte(esc)
		} else {
			_, _ = b.WriteString(`\u00`)
			_ = b.WriteByte(hexDigits[c>>4])
			_ = b.WriteByte(hexDigits[c&0xF])
		}
		i++
		run = i
	}
	_, _ = b.WriteString(s[run:])
	_ = b.WriteByte('"')
}
