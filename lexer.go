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

// The lexer finds a lexeme at the start of a string. It looks at one
// character at a time and uses that character's value to decide how to
// transition a state machine.
//
// A transition is taken if a character's value falls within its range; no
// two transitions out of a state overlap. If none match, the else
// transition is taken. Every state has exactly one else transition, encoded
// as (elseState, elseMovement). A movement of 0 advances the cursor by one
// character; a movement of M>=1 rewinds the cursor by M-1 characters
// (M=1 leaves the cursor where it is).
//
// States >= firstTerminal are terminal: the loop stops and reports the
// state's terminal tag.

type lexTransition struct {
	toState    int
	rangeStart byte
	rangeEnd   byte
}

type lexState struct {
	elseState    int
	elseMovement int
	terminal     LexemeTag
	transitions  []lexTransition
}

const (
	s0 = iota
	s1
	s2
	s3
	s4
	s5
	s6
	s7
	s8
	s9
	s10
	s11
	s12
	s13
	s14
	s15
	s16
	s17
	s18
	s19
	s20
	s21
	s22
	s23
	s24
	s25
	s26
	s27
	s28
	s29
	s30

	firstTerminal
)

var lexStates = []lexState{
	// s0: dispatch on the first character of a lexeme.
	s0: {int(None), 0, lexStateNone, []lexTransition{
		{int(ForwardSlash), '/', '/'},
		{s1, '\\', '\\'},
		{s2, '~', '~'},
		{s3, '_', '_'},
		{s8, 'a', 'q'},
		{s8, 's', 'z'},
		{s8, 'A', 'Z'},
		{s10, 'r', 'r'},
		{s29, '*', '*'},
		{s30, ':', ':'},
		{int(Dot), '.', '.'},
	}},
	// s1: backreference digit after '\'.
	s1: {int(None), 0, lexStateNone, []lexTransition{
		{int(Br1), '1', '1'},
		{int(Br2), '2', '2'},
		{int(Br3), '3', '3'},
		{int(Br4), '4', '4'},
		{int(Br5), '5', '5'},
		{int(Br6), '6', '6'},
		{int(Br7), '7', '7'},
		{int(Br8), '8', '8'},
		{int(Br9), '9', '9'},
	}},
	// s2: '~' must be followed by '/'.
	s2: {int(None), 0, lexStateNone, []lexTransition{
		{int(TildeSlash), '/', '/'},
	}},
	// s3: '_' - could be the start of __node / __ns, or a plain token.
	s3: {s9, 1, lexStateNone, []lexTransition{
		{s4, '_', '_'},
	}},
	s4: {int(None), 0, lexStateNone, []lexTransition{
		{s5, 'n', 'n'},
	}},
	s5: {int(None), 0, lexStateNone, []lexTransition{
		{int(Ns), 's', 's'},
		{s6, 'o', 'o'},
	}},
	s6: {int(None), 0, lexStateNone, []lexTransition{
		{s7, 'd', 'd'},
	}},
	s7: {int(None), 0, lexStateNone, []lexTransition{
		{int(Node), 'e', 'e'},
	}},
	// s8: generic token body.
	s8: {int(Token), 1, lexStateNone, []lexTransition{
		{s8, 'a', 'z'},
		{s8, 'A', 'Z'},
		{s8, '0', '9'},
		{s9, '_', '_'},
	}},
	s9: {int(Token), 1, lexStateNone, []lexTransition{
		{s8, 'a', 'z'},
		{s8, 'A', 'Z'},
		{s8, '0', '9'},
	}},
	// s10..s19: speculative match of "rostopic://".
	s10: {s8, 1, lexStateNone, []lexTransition{{s11, 'o', 'o'}}},
	s11: {s8, 1, lexStateNone, []lexTransition{{s12, 's', 's'}}},
	s12: {s8, 1, lexStateNone, []lexTransition{
		{s13, 't', 't'},
		{s20, 's', 's'},
	}},
	s13: {s8, 1, lexStateNone, []lexTransition{{s14, 'o', 'o'}}},
	s14: {s8, 1, lexStateNone, []lexTransition{{s15, 'p', 'p'}}},
	s15: {s8, 1, lexStateNone, []lexTransition{{s16, 'i', 'i'}}},
	s16: {s8, 1, lexStateNone, []lexTransition{{s17, 'c', 'c'}}},
	s17: {s8, 1, lexStateNone, []lexTransition{{s18, ':', ':'}}},
	s18: {s8, 2, lexStateNone, []lexTransition{{s19, '/', '/'}}},
	s19: {s8, 3, lexStateNone, []lexTransition{{int(URLTopic), '/', '/'}}},
	// s20..s28: speculative match of "rosservice://".
	s20: {s8, 1, lexStateNone, []lexTransition{{s21, 'e', 'e'}}},
	s21: {s8, 1, lexStateNone, []lexTransition{{s22, 'r', 'r'}}},
	s22: {s8, 1, lexStateNone, []lexTransition{{s23, 'v', 'v'}}},
	s23: {s8, 1, lexStateNone, []lexTransition{{s24, 'i', 'i'}}},
	s24: {s8, 1, lexStateNone, []lexTransition{{s25, 'c', 'c'}}},
	s25: {s8, 1, lexStateNone, []lexTransition{{s26, 'e', 'e'}}},
	s26: {s8, 1, lexStateNone, []lexTransition{{s27, ':', ':'}}},
	s27: {s8, 2, lexStateNone, []lexTransition{{s28, '/', '/'}}},
	s28: {s8, 3, lexStateNone, []lexTransition{{int(URLService), '/', '/'}}},
	// s29: '*' or '**'.
	s29: {int(WildOne), 1, lexStateNone, []lexTransition{
		{int(WildMulti), '*', '*'},
	}},
	// s30: ':' or ':='.
	s30: {int(Colon), 1, lexStateNone, []lexTransition{
		{int(Separator), '=', '='},
	}},
}

func init() {
	// Terminal pseudo-states: each one only carries its own tag. analyze()
	// never re-enters a terminal state, so elseState/elseMovement are unused.
	terminals := []LexemeTag{
		TildeSlash, URLService, URLTopic, Colon, Node, Ns, Separator,
		Br1, Br2, Br3, Br4, Br5, Br6, Br7, Br8, Br9, Token, ForwardSlash,
		WildOne, WildMulti, Dot, EOF, None,
	}
	for _, tag := range terminals {
		for len(lexStates) <= int(tag) {
			lexStates = append(lexStates, lexState{})
		}
		lexStates[int(tag)] = lexState{s0, 0, tag, nil}
	}
}

// analyze finds the longest lexeme starting at the beginning of text and
// reports its tag and length. It never returns an error: an unrecognized
// character sequence yields the None tag with a length describing how far
// the state machine got before giving up, mirroring rcl_lexer_analyze.
func analyze(text string) (LexemeTag, int) {
	if len(text) == 0 {
		return EOF, 0
	}

	state := &lexStates[s0]
	length := 0
	next := 0
	for {
		var current byte
		if length < len(text) {
			current = text[length]
		}
		next = 0
		movement := 0

		matched := false
		for _, tr := range state.transitions {
			if tr.rangeStart <= current && current <= tr.rangeEnd {
				next = tr.toState
				matched = true
				break
			}
		}
		if !matched {
			next = state.elseState
			movement = state.elseMovement
		}

		if movement == 0 {
			length++
		} else {
			length -= movement - 1
		}

		state = &lexStates[next]
		if next >= firstTerminal {
			break
		}
	}
	return state.terminal, length
}
