// SPDX-License-Identifier: Apache-2.0

package containers

import (
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
)

const readChunkSize = 4 * 1024

// Buffer is a bytes.Buffer-like message buffer stored in a Vector[byte].
// It implements io.Writer, io.Reader, io.ReaderFrom and io.WriterTo.
// Reading consumes bytes from the front by shifting the remaining data down.
//
// With WithArena, both the contents and the intermediate ReadFrom chunk are
// allocated from the arena.
type Buffer struct {
	buf     *Vector[byte]
	arena   Arena
	readBuf []byte // intermediate buffer for ReadFrom
}

// NewBuffer creates an empty buffer.
func NewBuffer(opts ...Option) *Buffer {
	o := newOptions(opts)
	return &Buffer{
		buf:   NewVector[byte](opts...),
		arena: o.arena,
	}
}

// Format creates a buffer holding the fmt.Sprintf style formatting of args.
func Format(format string, args ...any) *Buffer {
	b := NewBuffer()
	b.Printf(format, args...)
	return b
}

// Write implements io.Writer interface.
// It writes len(p) bytes from p to the buffer.
func (b *Buffer) Write(p []byte) (n int, err error) {
	b.buf.PushMany(p...)
	return len(p), nil
}

// WriteByte writes a single byte to the buffer.
func (b *Buffer) WriteByte(c byte) error {
	b.buf.Push(c)
	return nil
}

// WriteString writes a string to the buffer.
func (b *Buffer) WriteString(s string) (n int, err error) {
	return b.Write([]byte(s))
}

// Printf appends the formatting of args to the buffer.
func (b *Buffer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(b, format, args...)
}

// WriteTo writes the buffer's contents to w and removes what was written.
// A writer that accepts less than everything without reporting an error
// yields io.ErrShortWrite.
func (b *Buffer) WriteTo(w io.Writer) (n int64, err error) {
	size := b.buf.Len()
	if size == 0 {
		return 0, nil
	}
	m, err := w.Write(b.buf.Data())
	if m > size {
		panic("containers: Buffer.WriteTo: invalid Write count")
	}
	if m > 0 {
		n = int64(m)
		b.buf.EraseRange(0, m)
	}
	if err == nil && m < size {
		err = io.ErrShortWrite
	}
	return n, err
}

// Read reads up to len(p) bytes from the buffer into p.
// It returns io.EOF when fewer than len(p) bytes were available.
func (b *Buffer) Read(p []byte) (n int, err error) {
	if b.buf.IsEmpty() {
		return 0, io.EOF
	}
	n = copy(p, b.buf.Data())
	if n < len(p) {
		err = io.EOF
	}
	b.buf.EraseRange(0, n)
	return n, err
}

// ReadByte reads and returns the next byte from the buffer.
func (b *Buffer) ReadByte() (byte, error) {
	if b.buf.IsEmpty() {
		return 0, io.EOF
	}
	c := b.buf.Front()
	b.buf.Erase(0)
	return c, nil
}

// Next returns a copy of the next n bytes, advancing the buffer as if they had
// been returned by Read. Fewer bytes are returned if the buffer is shorter.
func (b *Buffer) Next(n int) []byte {
	n = min(max(n, 0), b.buf.Len())
	result := make([]byte, n)
	copy(result, b.buf.Data())
	b.buf.EraseRange(0, n)
	return result
}

// ReadFrom implements io.ReaderFrom interface.
// It reads data from r until EOF or error, appending it to the buffer.
func (b *Buffer) ReadFrom(r io.Reader) (n int64, err error) {
	if b.readBuf == nil {
		b.readBuf = AllocateSlice[byte](b.arena, readChunkSize, readChunkSize)
	}
	for {
		nr, er := r.Read(b.readBuf)
		if nr > 0 {
			b.buf.PushMany(b.readBuf[:nr]...)
			n += int64(nr)
		}
		if er != nil {
			if errors.Is(er, io.EOF) {
				return n, nil
			}
			return n, er
		}
	}
}

// Bytes returns the unread contents. The slice is valid only until the next
// buffer modification.
func (b *Buffer) Bytes() []byte {
	if b.buf.IsEmpty() {
		return []byte{}
	}
	return b.buf.Data()
}

// String returns the unread contents as a string.
func (b *Buffer) String() string {
	return string(b.buf.Data())
}

// CString returns a copy of the contents followed by a terminating NUL byte,
// for APIs that expect C strings.
func (b *Buffer) CString() []byte {
	out := make([]byte, b.buf.Len()+1)
	copy(out, b.buf.Data())
	return out
}

// Replace substitutes every occurrence of find with replacement and
// returns the number of bytes replaced.
func (b *Buffer) Replace(find, replacement byte) int {
	var replaced int
	data := b.buf.Data()
	for i, c := range data {
		if c == find {
			data[i] = replacement
			replaced++
		}
	}
	return replaced
}

// Len returns the number of unread bytes.
func (b *Buffer) Len() int {
	return b.buf.Len()
}

// Cap returns the capacity of the underlying vector.
func (b *Buffer) Cap() int {
	return b.buf.Cap()
}

// Reserve grows the capacity to at least n bytes.
func (b *Buffer) Reserve(n int) {
	b.buf.Reserve(n)
}

// Reset empties the buffer but keeps its storage.
func (b *Buffer) Reset() {
	b.buf.Clear()
}

// Truncate discards all but the first n unread bytes.
// It panics if n is negative or greater than the length of the buffer.
func (b *Buffer) Truncate(n int) {
	checkRange("Buffer.Truncate", 0, n, b.buf.Len())
	b.buf.Resize(n)
}

// detach drops the storage, which must happen before the arena backing it is reset.
func (b *Buffer) detach() {
	b.buf.Release()
	b.readBuf = nil
}
