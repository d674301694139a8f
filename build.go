// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jfix

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"go4.org/mem"
)

// defaultCapacity is the initial buffer capacity for a Builder constructed
// without an explicit capacity. It is a performance hint only.
const defaultCapacity = 512

// BuildOptions are optional settings for constructing a Builder. A nil
// *BuildOptions is ready to use and provides default values as described.
type BuildOptions struct {
	// Reject input nesting containers more than this many levels deep.
	// If zero, nesting depth is unlimited. It must not be negative.
	MaxDepth int

	// Initial capacity in bytes of the accumulation buffer. If zero, a
	// small default capacity is used. The capacity is a performance hint;
	// the buffer grows as needed regardless.
	InitialCapacity int
}

func (o *BuildOptions) maxDepth() int {
	if o != nil && o.MaxDepth != 0 {
		return o.MaxDepth
	}
	return 0
}

func (o *BuildOptions) capacity() int {
	if o != nil && o.InitialCapacity > 0 {
		return o.InitialCapacity
	}
	return defaultCapacity
}

// A Builder accumulates a verified JSON document and can synthesize a valid
// completion of a truncated one. Input is verified as it arrives: every
// accepted byte is appended to an internal buffer, and the first rejected
// byte makes the builder permanently invalid. A builder that has rejected
// input fails every subsequent operation with ErrInvalid, even if later
// input would be acceptable on its own; only Reset clears the damage.
type Builder struct {
	buf     bytes.Buffer
	invalid bool
	v       *Verifier
}

// NewBuilder constructs a new empty Builder with the given options.
// A nil opts provides defaults: unlimited depth, small initial capacity.
func NewBuilder(opts *BuildOptions) *Builder {
	var b Builder
	if d := opts.maxDepth(); d != 0 {
		b.v = NewVerifierDepth(d)
	} else {
		b.v = NewVerifier()
	}
	b.buf.Grow(opts.capacity())
	return &b
}

// Len reports the number of bytes accepted so far.
func (b *Builder) Len() int { return b.buf.Len() }

// Status reports whether the accepted input comprises a complete document.
func (b *Builder) Status() Status { return b.v.Status() }

// Reset restores b to its initial state, as freshly constructed with the
// same options: the buffer is emptied and the damage flag is cleared.
func (b *Builder) Reset() {
	b.invalid = false
	b.buf.Reset()
	b.v.Reset()
}

// UpdateText feeds the bytes of text to the builder in order. Bytes are
// verified one at a time and appended to the buffer as they are accepted.
//
// If a byte is rejected, UpdateText reports the verifier's error and the
// builder becomes permanently invalid. The buffer retains every byte
// accepted before the rejected one; the partial progress is preserved but
// cannot be extended further. If the builder is already invalid, UpdateText
// reports ErrInvalid without consuming anything.
func (b *Builder) UpdateText(text mem.RO) error {
	if b.invalid {
		return fmt.Errorf("builder is damaged: %w", ErrInvalid)
	}
	for i := 0; i < text.Len(); i++ {
		c := text.At(i)
		if err := b.v.Update(c); err != nil {
			b.invalid = true
			return err
		}
		b.buf.WriteByte(c)
	}
	return nil
}

// Update feeds the bytes of data to the builder. See UpdateText.
func (b *Builder) Update(data []byte) error { return b.UpdateText(mem.B(data)) }

// UpdateString feeds the bytes of s to the builder. See UpdateText.
func (b *Builder) UpdateString(s string) error { return b.UpdateText(mem.S(s)) }

// Write implements io.Writer. It feeds data to the builder and reports the
// number of bytes accepted. A short count accompanies the error that
// rejected the remainder.
func (b *Builder) Write(data []byte) (int, error) {
	pos := b.buf.Len()
	err := b.Update(data)
	return b.buf.Len() - pos, err
}

// Bytes returns a copy of the accumulated buffer, or ErrInvalid if the
// builder is damaged.
func (b *Builder) Bytes() ([]byte, error) {
	if b.invalid {
		return nil, fmt.Errorf("builder is damaged: %w", ErrInvalid)
	}
	return bytes.Clone(b.buf.Bytes()), nil
}

// String returns the accumulated buffer decoded as text. It reports
// ErrInvalid if the builder is damaged, or ErrUTF8 if the buffer is not
// well-formed UTF-8.
func (b *Builder) String() (string, error) {
	if b.invalid {
		return "", fmt.Errorf("builder is damaged: %w", ErrInvalid)
	}
	if !utf8.Valid(b.buf.Bytes()) {
		return "", fmt.Errorf("buffer: %w", ErrUTF8)
	}
	return b.buf.String(), nil
}

// CompletedBytes returns a syntactically complete document synthesized from
// the accumulated input, or ErrInvalid if the builder is damaged.
//
// If the input already comprises a complete document it is returned
// unchanged. Otherwise the result is the longest prefix at which a value
// lay fully closed, with the closing tokens for every container still open
// at that point appended. Bytes after that prefix are discarded: an
// in-progress token or dangling member key is dropped, not guessed at.
//
// CompletedBytes does not modify the builder; input may still be appended
// afterward.
func (b *Builder) CompletedBytes() ([]byte, error) {
	if b.invalid {
		return nil, fmt.Errorf("builder is damaged: %w", ErrInvalid)
	}
	if b.v.Status() == Valid {
		return bytes.Clone(b.buf.Bytes()), nil
	}
	n, closers := b.v.Complete()
	out := append([]byte(nil), b.buf.Bytes()[:n]...)
	for c := range closers {
		out = append(out, c)
	}
	return out, nil
}

// CompletedString is CompletedBytes decoded as text. It reports ErrUTF8 if
// the completed document is not well-formed UTF-8.
func (b *Builder) CompletedString() (string, error) {
	data, err := b.CompletedBytes()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("buffer: %w", ErrUTF8)
	}
	return string(data), nil
}
