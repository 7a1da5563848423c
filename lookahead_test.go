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

import "testing"

func TestLookaheadPeekAcceptSequence(t *testing.T) {
	la := newLookahead("__node:=talker")
	if got := la.Peek(); got != Node {
		t.Fatalf("Peek() = %s, want Node", got)
	}
	lex, err := la.Accept()
	if err != nil {
		t.Fatal(err)
	}
	if lex.Tag != Node || lex.Text("__node:=talker") != "__node" {
		t.Fatalf("Accept() = %+v, text %q", lex, lex.Text("__node:=talker"))
	}

	if _, err := la.Expect(Separator); err != nil {
		t.Fatal(err)
	}

	if got := la.Remaining(); got != "talker" {
		t.Fatalf("Remaining() = %q, want %q", got, "talker")
	}
}

func TestLookaheadPeek2DoesNotConsume(t *testing.T) {
	la := newLookahead("foo:bar")
	first := la.Peek()
	second := la.Peek2()
	if first != Token {
		t.Fatalf("Peek() = %s, want Token", first)
	}
	if second != Colon {
		t.Fatalf("Peek2() = %s, want Colon", second)
	}
	// Peek2 must not have consumed anything: Peek() still reports the
	// same lexeme.
	if again := la.Peek(); again != first {
		t.Fatalf("Peek() after Peek2() = %s, want %s", again, first)
	}
	lex, err := la.Accept()
	if err != nil {
		t.Fatal(err)
	}
	if lex.Text("foo:bar") != "foo" {
		t.Fatalf("Accept() text = %q, want %q", lex.Text("foo:bar"), "foo")
	}
}

func TestLookaheadExpectWrongLexemeError(t *testing.T) {
	la := newLookahead("foo:=bar")
	if _, err := la.Expect(Colon); err == nil {
		t.Fatal("Expect(Colon) on a Token lexeme should have failed")
	}
}

func TestLookaheadAcceptAtEOFWithoutPeek(t *testing.T) {
	la := newLookahead("")
	lex, err := la.Accept()
	if err != nil {
		t.Fatal(err)
	}
	if lex.Tag != EOF || lex.Length != 0 {
		t.Fatalf("Accept() at EOF = %+v, want zero-length EOF lexeme", lex)
	}
}

func TestLookaheadDoesNotOverrunOnDoubleUnderscore(t *testing.T) {
	// analyze("__") alone reports a length one past the input (see
	// TestAnalyzeCanOverrunByOne); the lookahead buffer must clamp that
	// before it is used to slice text, or Accept would panic.
	la := newLookahead("__")
	tag := la.Peek()
	if tag != None {
		t.Fatalf("Peek() = %s, want None", tag)
	}
	lex, err := la.Accept()
	if err != nil {
		t.Fatal(err)
	}
	if lex.Start+lex.Length > len("__") {
		t.Fatalf("Accept() lexeme %+v overruns input of length %d", lex, len("__"))
	}
}

func TestLookaheadAtEOF(t *testing.T) {
	la := newLookahead("x")
	if la.AtEOF() {
		t.Fatal("AtEOF() true before consuming input")
	}
	la.Peek()
	if _, err := la.Accept(); err != nil {
		t.Fatal(err)
	}
	if !la.AtEOF() {
		t.Fatal("AtEOF() false after consuming entire input")
	}
}
