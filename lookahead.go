// Copyright 2018 Open Source Robotics Foundation, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package rclargs

import "fmt"

// lookahead wraps the DFA lexer with a 2-token lookahead buffer, the way a
// recursive-descent parser needs to peek ahead of the token it is about to
// accept. It mirrors rcl_lexer_lookahead2_t: text/textIdx track the cursor,
// start/end/tag[0] is the already-analyzed-but-not-yet-accepted token,
// [1] is the one beyond it (lazily analyzed on Peek2).
type lookahead struct {
	text    string
	textIdx int

	start [2]int
	end   [2]int
	tag   [2]LexemeTag

	// filled[i] reports whether slot i holds a lexeme already analyzed by
	// the DFA (as opposed to stale/unset).
	filled [2]bool
}

// newLookahead creates a lookahead buffer over text. There is no separate
// init/fini pair as in the C original: construction and garbage collection
// replace that lifecycle, and there is nothing for Close to release, so
// lookahead carries no Close method.
func newLookahead(text string) *lookahead {
	return &lookahead{text: text}
}

func (la *lookahead) analyzeAt(idx int) (LexemeTag, int, int) {
	tag, length := analyze(la.text[idx:])
	end := idx + length
	if end > len(la.text) {
		end = len(la.text)
	}
	if end < idx {
		end = idx
	}
	return tag, idx, end
}

// Peek reports the tag of the next lexeme without consuming it.
func (la *lookahead) Peek() LexemeTag {
	if !la.filled[0] {
		tag, start, end := la.analyzeAt(la.textIdx)
		la.tag[0], la.start[0], la.end[0] = tag, start, end
		la.filled[0] = true
	}
	return la.tag[0]
}

// Peek2 reports the tag of the lexeme following the next one, without
// consuming either.
func (la *lookahead) Peek2() LexemeTag {
	la.Peek()
	if !la.filled[1] {
		tag, start, end := la.analyzeAt(la.end[0])
		la.tag[1], la.start[1], la.end[1] = tag, start, end
		la.filled[1] = true
	}
	return la.tag[1]
}

// Accept consumes the next lexeme (Peek must have been called, or the
// current position must be at end of string) and returns it.
func (la *lookahead) Accept() (Lexeme, error) {
	if la.textIdx >= len(la.text) {
		// At the end of the string there is always an implicit, zero-length
		// EOF lexeme available to accept even without a prior Peek.
		return Lexeme{Tag: EOF, Start: la.textIdx, Length: 0}, nil
	}
	if !la.filled[0] {
		return Lexeme{}, fmt.Errorf("%w: no lexeme to accept, Peek was not called", ErrUnspecified)
	}

	lex := Lexeme{Tag: la.tag[0], Start: la.start[0], Length: la.end[0] - la.start[0]}
	la.textIdx = la.end[0]

	// Shift slot 1 into slot 0.
	la.tag[0], la.start[0], la.end[0] = la.tag[1], la.start[1], la.end[1]
	la.filled[0] = la.filled[1]
	la.filled[1] = false

	return lex, nil
}

// Expect peeks the next lexeme; if its tag matches want it is accepted and
// returned, otherwise an error is returned and the cursor does not move.
func (la *lookahead) Expect(want LexemeTag) (Lexeme, error) {
	got := la.Peek()
	if got != want {
		if got == None || got == EOF {
			return Lexeme{}, fmt.Errorf("%w: expected %s but found %s", ErrWrongLexeme, want, got)
		}
		return Lexeme{}, fmt.Errorf("%w: expected %s but found %s %q", ErrWrongLexeme, want, got, la.PeekText())
	}
	return la.Accept()
}

// PeekText returns the text that the next (already-peeked) lexeme spans.
func (la *lookahead) PeekText() string {
	if !la.filled[0] {
		return ""
	}
	return la.text[la.start[0]:la.end[0]]
}

// Remaining returns all text from the current cursor to the end of the
// buffer, without consuming it. Used by param-rule parsing to take the
// YAML value tail verbatim.
func (la *lookahead) Remaining() string {
	return la.text[la.textIdx:]
}

// AtEOF reports whether the cursor has reached the end of the buffer.
func (la *lookahead) AtEOF() bool {
	return la.textIdx >= len(la.text)
}
