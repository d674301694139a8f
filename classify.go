// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jfix

import "strings"

// charClass is the lexical class of a single input byte, the alphabet of the
// transition table.
type charClass byte

// Constants defining the valid charClass values.
const (
	cSpace   charClass = iota // whitespace: space, tab, CR, LF
	cQuote                    // double quotation mark `"`
	cColon                    // colon ":"
	cComma                    // comma ","
	cLBrace                   // left brace "{"
	cRBrace                   // right brace "}"
	cLSquare                  // left square bracket "["
	cRSquare                  // right square bracket "]"
	cOther                    // literal content: number, constant, or string interior

	numClasses // must be last
)

var classStr = [...]string{
	cSpace:   "whitespace",
	cQuote:   `'"'`,
	cColon:   `":"`,
	cComma:   `","`,
	cLBrace:  `"{"`,
	cRBrace:  `"}"`,
	cLSquare: `"["`,
	cRSquare: `"]"`,
	cOther:   "literal content",
}

func (c charClass) String() string {
	if int(c) >= len(classStr) {
		return "invalid class"
	}
	return classStr[c]
}

var structural = [...]charClass{cQuote, cLBrace, cRBrace, cLSquare, cRSquare, cComma, cColon}

// classify reports the lexical class of b. It reports false for a disallowed
// raw control byte. The caller must not pass a byte >= 128: bytes outside
// the ASCII range belong to multibyte encodings the grammar does not
// classify, and the verifier handles them before classification.
func classify(b byte) (charClass, bool) {
	if i := strings.IndexByte(`"{}[],:`, b); i >= 0 {
		return structural[i], true
	}
	switch b {
	case ' ', '\t', '\r', '\n':
		return cSpace, true
	}
	if b < ' ' {
		return 0, false
	}
	return cOther, true
}
