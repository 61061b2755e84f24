// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package input

import "fmt"

// Key is a keyboard semantic: a scan code independent of layout.
type Key uint16

// NumKeys is the number of keyboard semantics.
const NumKeys = 256

const (
	KeyEscape       Key = 0x01
	Key1            Key = 0x02
	Key2            Key = 0x03
	Key3            Key = 0x04
	Key4            Key = 0x05
	Key5            Key = 0x06
	Key6            Key = 0x07
	Key7            Key = 0x08
	Key8            Key = 0x09
	Key9            Key = 0x0A
	Key0            Key = 0x0B
	KeyMinus        Key = 0x0C
	KeyEquals       Key = 0x0D
	KeyBackSpace    Key = 0x0E
	KeyTab          Key = 0x0F
	KeyQ            Key = 0x10
	KeyW            Key = 0x11
	KeyE            Key = 0x12
	KeyR            Key = 0x13
	KeyT            Key = 0x14
	KeyY            Key = 0x15
	KeyU            Key = 0x16
	KeyI            Key = 0x17
	KeyO            Key = 0x18
	KeyP            Key = 0x19
	KeyLeftBracket  Key = 0x1A
	KeyRightBracket Key = 0x1B
	KeyEnter        Key = 0x1C
	KeyLeftCtrl     Key = 0x1D
	KeyA            Key = 0x1E
	KeyS            Key = 0x1F
	KeyD            Key = 0x20
	KeyF            Key = 0x21
	KeyG            Key = 0x22
	KeyH            Key = 0x23
	KeyJ            Key = 0x24
	KeyK            Key = 0x25
	KeyL            Key = 0x26
	KeySemicolon    Key = 0x27
	KeyApostrophe   Key = 0x28
	KeyGrave        Key = 0x29
	KeyLeftShift    Key = 0x2A
	KeyBackSlash    Key = 0x2B
	KeyZ            Key = 0x2C
	KeyX            Key = 0x2D
	KeyC            Key = 0x2E
	KeyV            Key = 0x2F
	KeyB            Key = 0x30
	KeyN            Key = 0x31
	KeyM            Key = 0x32
	KeyComma        Key = 0x33
	KeyPeriod       Key = 0x34
	KeySlash        Key = 0x35
	KeyRightShift   Key = 0x36
	KeyLeftAlt      Key = 0x38
	KeySpace        Key = 0x39
	KeyF1           Key = 0x3B
	KeyF2           Key = 0x3C
	KeyF3           Key = 0x3D
	KeyF4           Key = 0x3E
	KeyF5           Key = 0x3F
	KeyF6           Key = 0x40
	KeyF7           Key = 0x41
	KeyF8           Key = 0x42
	KeyF9           Key = 0x43
	KeyF10          Key = 0x44
	KeyF11          Key = 0x57
	KeyF12          Key = 0x58
	KeyRightCtrl    Key = 0x9D
	KeyRightAlt     Key = 0xB8
	KeyHome         Key = 0xC7
	KeyUpArrow      Key = 0xC8
	KeyPageUp       Key = 0xC9
	KeyLeftArrow    Key = 0xCB
	KeyRightArrow   Key = 0xCD
	KeyEnd          Key = 0xCF
	KeyDownArrow    Key = 0xD0
	KeyPageDown     Key = 0xD1
	KeyInsert       Key = 0xD2
	KeyDelete       Key = 0xD3

	// KeyAnyKey matches any key. It triggers while any key is down
	// or was released this frame.
	KeyAnyKey Key = 0xEE
)

var keyNames = map[Key]string{
	KeyEscape: "Escape", KeyMinus: "Minus", KeyEquals: "Equals", KeyBackSpace: "BackSpace",
	KeyTab: "Tab", KeyLeftBracket: "LeftBracket", KeyRightBracket: "RightBracket",
	KeyEnter: "Enter", KeyLeftCtrl: "LeftCtrl", KeySemicolon: "Semicolon",
	KeyApostrophe: "Apostrophe", KeyGrave: "Grave", KeyLeftShift: "LeftShift",
	KeyBackSlash: "BackSlash", KeyComma: "Comma", KeyPeriod: "Period", KeySlash: "Slash",
	KeyRightShift: "RightShift", KeyLeftAlt: "LeftAlt", KeySpace: "Space",
	KeyRightCtrl: "RightCtrl", KeyRightAlt: "RightAlt", KeyHome: "Home", KeyUpArrow: "UpArrow",
	KeyPageUp: "PageUp", KeyLeftArrow: "LeftArrow", KeyRightArrow: "RightArrow", KeyEnd: "End",
	KeyDownArrow: "DownArrow", KeyPageDown: "PageDown", KeyInsert: "Insert", KeyDelete: "Delete",
	KeyAnyKey: "AnyKey",
}

// charKeys maps printable ASCII to keys, ignoring case.
var charKeys [128]Key

func init() {
	rows := []struct {
		chars string
		first Key
	}{
		{"1234567890-=", Key1},
		{"qwertyuiop[]", KeyQ},
		{"asdfghjkl;'`", KeyA},
		{"\\zxcvbnm,./", KeyBackSlash},
	}
	for _, r := range rows {
		for i, c := range r.chars {
			k := r.first + Key(i)
			charKeys[c] = k
			if c >= 'a' && c <= 'z' {
				charKeys[c-'a'+'A'] = k
				keyNames[k] = string(c - 'a' + 'A')
			} else if c >= '0' && c <= '9' {
				keyNames[k] = string(c)
			}
		}
	}
	charKeys[' '] = KeySpace
	for i := range 10 {
		keyNames[KeyF1+Key(i)] = fmt.Sprintf("F%d", i+1)
	}
	keyNames[KeyF11] = "F11"
	keyNames[KeyF12] = "F12"
}

// KeyForChar returns the key that types the given character,
// and false if there is none.
func KeyForChar(c rune) (Key, bool) {
	if c < 0 || c >= 128 || charKeys[c] == 0 {
		return 0, false
	}
	return charKeys[c], true
}

func (k Key) String() string {
	if n, ok := keyNames[k]; ok {
		return n
	}
	return fmt.Sprintf("Key(0x%02X)", uint16(k))
}
