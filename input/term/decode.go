// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package term

import (
	"cogentcore.org/engine/input"
)

type decodeState int

const (
	stateText decodeState = iota
	stateEscape
	stateCSI
	stateSS3
)

// decoder turns terminal bytes into key presses, including the
// ANSI escape sequences for arrows, navigation and function keys.
type decoder struct {
	state decodeState
	param int
}

// csiTilde are the keys of CSI n ~ sequences.
var csiTilde = map[int]input.Key{
	1: input.KeyHome, 2: input.KeyInsert, 3: input.KeyDelete, 4: input.KeyEnd,
	5: input.KeyPageUp, 6: input.KeyPageDown, 7: input.KeyHome, 8: input.KeyEnd,
	11: input.KeyF1, 12: input.KeyF2, 13: input.KeyF3, 14: input.KeyF4, 15: input.KeyF5,
	17: input.KeyF6, 18: input.KeyF7, 19: input.KeyF8, 20: input.KeyF9, 21: input.KeyF10,
	23: input.KeyF11, 24: input.KeyF12,
}

// finalKey returns the key of a CSI or SS3 sequence ending in c.
func finalKey(c byte) (input.Key, bool) {
	switch c {
	case 'A':
		return input.KeyUpArrow, true
	case 'B':
		return input.KeyDownArrow, true
	case 'C':
		return input.KeyRightArrow, true
	case 'D':
		return input.KeyLeftArrow, true
	case 'H':
		return input.KeyHome, true
	case 'F':
		return input.KeyEnd, true
	case 'P':
		return input.KeyF1, true
	case 'Q':
		return input.KeyF2, true
	case 'R':
		return input.KeyF3, true
	case 'S':
		return input.KeyF4, true
	}
	return 0, false
}

// feed decodes one chunk of bytes read from the terminal. An escape
// byte at the end of a chunk is the Escape key itself.
func (d *decoder) feed(p []byte, emit func(input.Key)) {
	for _, c := range p {
		d.byte(c, emit)
	}
	if d.state == stateEscape {
		emit(input.KeyEscape)
		d.state = stateText
	}
}

func (d *decoder) byte(c byte, emit func(input.Key)) {
	switch d.state {
	case stateEscape:
		switch c {
		case '[':
			d.state, d.param = stateCSI, 0
			return
		case 'O':
			d.state = stateSS3
			return
		}
		emit(input.KeyEscape)
		d.state = stateText
		d.byte(c, emit)
	case stateCSI:
		switch {
		case c >= '0' && c <= '9':
			d.param = d.param*10 + int(c-'0')
		case c == ';':
			d.param = 0
		case c >= 0x40 && c <= 0x7E:
			d.state = stateText
			if c == '~' {
				if k, ok := csiTilde[d.param]; ok {
					emit(k)
				}
			} else if k, ok := finalKey(c); ok {
				emit(k)
			}
		}
	case stateSS3:
		d.state = stateText
		if k, ok := finalKey(c); ok {
			emit(k)
		}
	default:
		d.text(c, emit)
	}
}

func (d *decoder) text(c byte, emit func(input.Key)) {
	switch {
	case c == 0x1B:
		d.state = stateEscape
	case c == '\r' || c == '\n':
		emit(input.KeyEnter)
	case c == '\t':
		emit(input.KeyTab)
	case c == 0x7F || c == 0x08:
		emit(input.KeyBackSpace)
	case c >= 1 && c <= 26:
		emit(input.KeyLeftCtrl)
		if k, ok := input.KeyForChar(rune('a' + c - 1)); ok {
			emit(k)
		}
	default:
		if k, ok := input.KeyForChar(rune(c)); ok {
			if c >= 'A' && c <= 'Z' {
				emit(input.KeyLeftShift)
			}
			emit(k)
		}
	}
}
