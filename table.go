// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jfix

// parseState is the state of the verifier automaton between input bytes.
type parseState byte

// Constants defining the valid parseState values.
const (
	stateBegin  parseState = iota // initial state, before any value
	stateKey                      // inside an object, expecting the next member key
	stateValue                    // expecting a value
	stateColon                    // inside or just past a member key, before its colon
	stateArray                    // just opened an array, expecting a value or "]"
	stateObject                   // just opened an object, expecting a key or "}"
	stateOK                       // a value lies complete at this position

	numStates // must be last
)

var stateStr = [...]string{
	stateBegin:  "begin",
	stateKey:    "key",
	stateValue:  "value",
	stateColon:  "colon",
	stateArray:  "array",
	stateObject: "object",
	stateOK:     "ok",
}

func (s parseState) String() string {
	if int(s) >= len(stateStr) {
		return "invalid state"
	}
	return stateStr[s]
}

// opcode describes what a transition does besides changing state.  The zero
// value is opReject, so any (state, class) pair the table does not name is
// rejected.
type opcode byte

const (
	opReject     opcode = iota // the byte cannot extend any valid document
	opState                    // advance to outcome.next, no stack effect
	opObjectOpen               // "{": push a key context
	opArrayOpen                // "[": push an array context
	opEmptyClose               // "}" before any member: pop a key context
	opObjectClose              // "}": pop an object context
	opArrayClose               // "]": pop an array context
	opQuote                    // `"`: resolve against the innermost context
	opComma                    // ",": next member or element
	opColon                    // ":": member key is complete
)

// outcome is the result of a transition lookup: a tagged union of reject,
// simple advance, and advance with a stack operation.
type outcome struct {
	op   opcode
	next parseState // meaningful only when op == opState
}

func advance(s parseState) outcome { return outcome{op: opState, next: s} }
func operate(op opcode) outcome    { return outcome{op: op} }

// transitions encodes the JSON grammar as (state, class) -> outcome.  It is
// the single authority on structural legality; the verifier applies the
// stack effects it prescribes but contains no grammar knowledge of its own.
//
// Unlisted cells are the zero outcome, opReject.
//
// Two states do double duty as string interiors: stateColon carries the
// bytes of a member key, and stateOK the bytes of a string value.  Keeping
// the state set this small makes a handful of structural bytes inside
// strings indistinguishable from real delimiters; the table tolerates the
// common cases (commas in keys, colons in values) and misreads the rest.
var transitions = [numStates][numClasses]outcome{
	stateBegin: {
		cSpace:   advance(stateBegin),
		cQuote:   operate(opQuote),
		cLBrace:  operate(opObjectOpen),
		cLSquare: operate(opArrayOpen),
		cOther:   advance(stateOK), // one leading literal value
	},
	stateKey: {
		cSpace: advance(stateKey),
		cQuote: operate(opQuote),
	},
	stateValue: {
		cSpace:   advance(stateValue),
		cQuote:   operate(opQuote),
		cLBrace:  operate(opObjectOpen),
		cLSquare: operate(opArrayOpen),
		cOther:   advance(stateOK),
	},
	stateColon: {
		// A member key in progress: everything except the closing quote and
		// the colon is key content.
		cSpace:   advance(stateColon),
		cQuote:   operate(opQuote),
		cColon:   operate(opColon),
		cComma:   advance(stateColon),
		cLBrace:  advance(stateColon),
		cRBrace:  advance(stateColon),
		cLSquare: advance(stateColon),
		cRSquare: advance(stateColon),
		cOther:   advance(stateColon),
	},
	stateArray: {
		cSpace:   advance(stateArray),
		cQuote:   operate(opQuote),
		cLBrace:  operate(opObjectOpen),
		cLSquare: operate(opArrayOpen),
		cRSquare: operate(opArrayClose), // empty array
		cOther:   advance(stateOK),
	},
	stateObject: {
		cSpace:  advance(stateObject),
		cQuote:  operate(opQuote),
		cRBrace: operate(opEmptyClose), // empty object
	},
	stateOK: {
		cSpace:   advance(stateOK),
		cQuote:   operate(opQuote),
		cColon:   advance(stateOK), // string values may contain colons
		cComma:   operate(opComma),
		cRBrace:  operate(opObjectClose),
		cRSquare: operate(opArrayClose),
		cOther:   advance(stateOK),
	},
}

// transition reports the outcome for class c in state s.
func transition(s parseState, c charClass) outcome { return transitions[s][c] }
