// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jfix implements a streaming JSON syntax verifier, and a builder
// that can repair a truncated JSON input by closing its open structures.
//
// # Verifying
//
// The Verifier type implements an incremental check for JSON syntax.  Feed
// input to a verifier one byte at a time with its Update method. Update
// reports nil if the byte extends a syntactically valid document prefix, or
// an error if it does not:
//
//	v := jfix.NewVerifier()
//	for _, b := range []byte(input) {
//	   if err := v.Update(b); err != nil {
//	      log.Fatalf("Invalid input: %v", err)
//	   }
//	}
//
// A rejected byte does not change the state of the verifier, so the caller
// may probe with a different byte at the same position, or simply stop.
// Call Status to check whether the input so far comprises a complete
// document:
//
//	if v.Status() == jfix.Valid {
//	   log.Print("Document complete")
//	}
//
// The verifier certifies structural well-formedness only: braces, brackets,
// commas, colons, and string quoting must nest and alternate correctly.  It
// does not decode values, so token-level mistakes that do not disturb the
// structure (for example a malformed number) are not detected.
//
// # Building
//
// The Builder type accumulates verified input in a buffer, and can
// synthesize a valid completion of an input that arrived damaged.  Unlike a
// bare Verifier, a Builder that has rejected input is permanently invalid:
// every subsequent operation fails until Reset is called.
//
//	b := jfix.NewBuilder(nil)
//	b.UpdateString(`{"name": "annie", "parents": {"mother": null, "bro`)
//
//	s, err := b.CompletedString()
//	// s == `{"name": "annie", "parents": {"mother": null}}`
//
// CompletedBytes and CompletedString discard any trailing bytes written
// after the last point at which a value lay fully closed, then append the
// closing tokens for every container still open at that point.  The result
// is a document a fresh Verifier reports as Valid.
//
// # Errors
//
// All failures are reported as exactly one of three kinds: ErrInvalid for a
// syntax violation or a damaged builder, ErrExceeded for a nesting depth
// over the configured maximum, and ErrUTF8 for text extraction from a
// buffer that is not well-formed UTF-8. Errors wrap their kind, so use
// errors.Is to distinguish them.
package jfix
