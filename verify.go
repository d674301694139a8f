// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jfix

import (
	"errors"
	"fmt"
	"iter"
	"math"
	"unicode/utf8"

	"github.com/creachadair/mds/stack"
)

// Errors reported by the verifier and builder. Every error returned by this
// package wraps exactly one of these values; use errors.Is to classify.
var (
	// ErrInvalid means the input violates a JSON syntax rule, or the
	// builder has already rejected input.
	ErrInvalid = errors.New("invalid JSON syntax")

	// ErrExceeded means accepting the input would nest containers more
	// deeply than the configured maximum.
	ErrExceeded = errors.New("maximum nesting depth exceeded")

	// ErrUTF8 means the accumulated buffer is not well-formed UTF-8 at the
	// point of text extraction.
	ErrUTF8 = errors.New("text is not valid UTF-8")
)

// Status is the verification status of the input consumed so far.
type Status int

// Constants defining the valid Status values.
const (
	Continue Status = iota // more bytes are needed to complete a document
	Valid                  // the input comprises a complete document
)

func (s Status) String() string {
	if s == Valid {
		return "valid"
	}
	return "continue"
}

// ctxKind identifies the innermost open structure on the nesting stack.
type ctxKind byte

const (
	ctxKey    ctxKind = iota // an object whose next member key is pending
	ctxArray                 // an array
	ctxObject                // an object whose member value is pending
)

// A Verifier is an incremental checker for JSON syntax. Bytes are fed to
// the verifier one at a time with Update; a byte is accepted only if it
// extends some valid document, and a rejected byte leaves the verifier
// unchanged. The zero value is not ready for use; construct a Verifier
// with NewVerifier or NewVerifierDepth.
type Verifier struct {
	max   int
	state parseState
	stack *stack.Stack[ctxKind]

	length  int // total bytes accepted
	lastOK  int // length at the most recent stateOK
	okDepth int // stack depth at the most recent stateOK
}

// NewVerifier constructs a new empty Verifier with no depth limit.
func NewVerifier() *Verifier { return NewVerifierDepth(math.MaxInt) }

// NewVerifierDepth constructs a new empty Verifier that rejects input
// nesting containers more than maxDepth levels deep. It panics if maxDepth
// is not positive.
func NewVerifierDepth(maxDepth int) *Verifier {
	if maxDepth <= 0 {
		panic("jfix: maximum depth must be positive")
	}
	return &Verifier{max: maxDepth, state: stateBegin, stack: stack.New[ctxKind]()}
}

// Len reports the number of bytes accepted so far.
func (v *Verifier) Len() int { return v.length }

// Status reports whether the accepted input comprises a complete document,
// or whether more input is needed.
func (v *Verifier) Status() Status {
	if v.state == stateOK && v.stack.IsEmpty() {
		return Valid
	}
	return Continue
}

// Reset restores v to its initial state, as freshly constructed with the
// same depth limit.
func (v *Verifier) Reset() {
	v.state = stateBegin
	v.length, v.lastOK, v.okDepth = 0, 0, 0
	v.stack.Clear()
}

// Update feeds the single byte c to the verifier. If c extends a valid
// document the verifier accepts it and returns nil. Otherwise Update
// reports an error wrapping ErrInvalid or ErrExceeded, and the verifier is
// unchanged: the caller may probe the same position again with a different
// byte.
//
// A byte outside the ASCII range is always accepted and reaffirms the
// current state. Such bytes belong to multibyte encodings of string
// content, which the grammar does not inspect; the verifier trusts that
// they occur inside an open string literal, and leaves encoding validity to
// the text-extraction boundary.
func (v *Verifier) Update(c byte) error {
	if c >= utf8.RuneSelf {
		v.setState(v.state)
		return nil
	}
	cls, ok := classify(c)
	if !ok {
		return v.failf("disallowed control %q: %w", c, ErrInvalid)
	}

	// Decide the complete outcome before mutating anything, so that a
	// rejection cannot leave a partial stack effect behind.
	switch t := transition(v.state, cls); t.op {
	case opState:
		v.setState(t.next)

	case opObjectOpen:
		if err := v.push(ctxKey); err != nil {
			return err
		}
		v.setState(stateObject)

	case opArrayOpen:
		if err := v.push(ctxArray); err != nil {
			return err
		}
		v.setState(stateArray)

	case opEmptyClose:
		if err := v.pop(ctxKey, c); err != nil {
			return err
		}
		v.setState(stateOK)

	case opObjectClose:
		if err := v.pop(ctxObject, c); err != nil {
			return err
		}
		v.setState(stateOK)

	case opArrayClose:
		if err := v.pop(ctxArray, c); err != nil {
			return err
		}
		v.setState(stateOK)

	case opQuote:
		top, ok := v.stack.Peek(0)
		if !ok {
			return v.failf("unexpected %q outside any value: %w", c, ErrInvalid)
		}
		if top == ctxKey {
			v.setState(stateColon) // the string was a member key
		} else {
			v.setState(stateOK) // the string was a value
		}

	case opComma:
		switch top, ok := v.stack.Peek(0); {
		case ok && top == ctxObject:
			v.swap(ctxKey)
			v.setState(stateKey)
		case ok && top == ctxArray:
			v.setState(stateValue)
		default:
			return v.failf("unexpected %q outside any value: %w", c, ErrInvalid)
		}

	case opColon:
		if top, ok := v.stack.Peek(0); !ok || top != ctxKey {
			return v.failf("unexpected %q: %w", c, ErrInvalid)
		}
		v.swap(ctxObject)
		v.setState(stateValue)

	default:
		// opReject, and any table cell left unset.
		return v.failf("unexpected %q: %w", c, ErrInvalid)
	}
	return nil
}

// Complete reports the length of the longest input prefix at which a value
// lay fully closed, and the sequence of closing bytes that seals every
// container still open at that point, ordered from the most deeply nested
// container outward. Appending the sequence to that prefix yields a
// complete document. Complete does not modify the verifier.
//
// Containers opened after the reported prefix are not represented in the
// sequence: they contribute no bytes to the prefix, so there is nothing of
// them to close. In particular a member key left dangling before its colon
// is simply dropped.
func (v *Verifier) Complete() (int, iter.Seq[byte]) {
	return v.lastOK, func(yield func(byte) bool) {
		// The bottom okDepth entries of the stack are the containers open
		// at the last fully-closed point. An entry that now reads ctxKey
		// was an object then (a later comma moved it to the key phase), so
		// anything that is not an array closes with a brace.
		for i := v.okDepth - 1; i >= 0; i-- {
			kind, ok := v.stack.Peek(v.stack.Len() - 1 - i)
			if !ok {
				return
			}
			b := byte('}')
			if kind == ctxArray {
				b = ']'
			}
			if !yield(b) {
				return
			}
		}
	}
}

// setState installs the state reached by an accepted byte and advances the
// counters. Every mutation of the verifier funnels through here or through
// the stack helpers below.
func (v *Verifier) setState(s parseState) {
	v.state = s
	v.length++
	if s == stateOK {
		v.lastOK = v.length
		v.okDepth = v.stack.Len()
	}
}

func (v *Verifier) push(k ctxKind) error {
	if v.stack.Len() >= v.max {
		return v.failf("nesting deeper than %d: %w", v.max, ErrExceeded)
	}
	v.stack.Add(k)
	return nil
}

// pop removes the innermost context, which must be of kind want; otherwise
// it reports an error without modifying the stack.
func (v *Verifier) pop(want ctxKind, c byte) error {
	if got, ok := v.stack.Peek(0); !ok || got != want {
		return v.failf("unexpected %q: %w", c, ErrInvalid)
	}
	v.stack.Pop()
	return nil
}

// swap replaces the innermost context with kind k.
// Precondition: the stack is not empty.
func (v *Verifier) swap(k ctxKind) {
	v.stack.Pop()
	v.stack.Add(k)
}

func (v *Verifier) failf(msg string, args ...any) error {
	return posError{v.length, fmt.Errorf(msg, args...)}
}

// posError carries the byte offset at which an input was rejected.
type posError struct {
	pos int
	err error
}

func (p posError) Error() string {
	return fmt.Sprintf("%s (offset %d)", p.err.Error(), p.pos)
}

func (p posError) Unwrap() error { return p.err }
