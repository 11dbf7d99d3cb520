package terminal

// keyToName maps Key constants to canonical string names. Modifier
// prefixes are joined with '+' ("ctrl+up", "alt+enter").
var keyToName = map[Key]string{
	KeyEscape:    "escape",
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyBacktab:   "shift+tab",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeySpace:     "space",

	KeyUp:       "up",
	KeyDown:     "down",
	KeyLeft:     "left",
	KeyRight:    "right",
	KeyHome:     "home",
	KeyEnd:      "end",
	KeyPageUp:   "page_up",
	KeyPageDown: "page_down",
	KeyInsert:   "insert",

	KeyF1:  "f1",
	KeyF2:  "f2",
	KeyF3:  "f3",
	KeyF4:  "f4",
	KeyF5:  "f5",
	KeyF6:  "f6",
	KeyF7:  "f7",
	KeyF8:  "f8",
	KeyF9:  "f9",
	KeyF10: "f10",
	KeyF11: "f11",
	KeyF12: "f12",

	KeyCtrlA: "ctrl+a",
	KeyCtrlB: "ctrl+b",
	KeyCtrlC: "ctrl+c",
	KeyCtrlD: "ctrl+d",
	KeyCtrlE: "ctrl+e",
	KeyCtrlF: "ctrl+f",
	KeyCtrlG: "ctrl+g",
	KeyCtrlH: "ctrl+h",
	KeyCtrlK: "ctrl+k",
	KeyCtrlL: "ctrl+l",
	KeyCtrlN: "ctrl+n",
	KeyCtrlO: "ctrl+o",
	KeyCtrlP: "ctrl+p",
	KeyCtrlQ: "ctrl+q",
	KeyCtrlR: "ctrl+r",
	KeyCtrlS: "ctrl+s",
	KeyCtrlT: "ctrl+t",
	KeyCtrlU: "ctrl+u",
	KeyCtrlV: "ctrl+v",
	KeyCtrlW: "ctrl+w",
	KeyCtrlX: "ctrl+x",
	KeyCtrlY: "ctrl+y",
	KeyCtrlZ: "ctrl+z",

	KeyCtrlSpace:        "ctrl+space",
	KeyCtrlBackslash:    "ctrl+backslash",
	KeyCtrlBracketRight: "ctrl+bracket_right",
	KeyCtrlCaret:        "ctrl+caret",
	KeyCtrlUnderscore:   "ctrl+underscore",
}

// nameToKey is the reverse lookup, built from keyToName
var nameToKey map[string]Key

func init() {
	nameToKey = make(map[string]Key, len(keyToName))
	for k, v := range keyToName {
		nameToKey[v] = k
	}
	// Aliases
	nameToKey["backtab"] = KeyBacktab
}

// KeyName returns the canonical string name for a Key constant.
// Returns empty string for KeyNone and KeyRune.
func KeyName(k Key) string {
	return keyToName[k]
}

// KeyByName resolves a canonical name to a Key constant.
// Returns KeyNone and false if name is unknown.
func KeyByName(name string) (Key, bool) {
	k, ok := nameToKey[name]
	return k, ok
}

// modPrefix returns the '+'-joined modifier prefix for a name
// ("ctrl+shift+" for ModCtrl|ModShift). Empty for ModNone.
func modPrefix(m Modifier) string {
	switch m {
	case ModNone:
		return ""
	case ModShift:
		return "shift+"
	case ModAlt:
		return "alt+"
	case ModCtrl:
		return "ctrl+"
	case ModCtrl | ModShift:
		return "ctrl+shift+"
	case ModAlt | ModShift:
		return "alt+shift+"
	case ModCtrl | ModAlt:
		return "ctrl+alt+"
	default:
		return "ctrl+alt+shift+"
	}
}

// EventKeyName renders a key event as its canonical name. Runes come
// back as the literal character ("a", "é"); named keys use keyToName;
// modifiers prepend their prefix. Keys that already encode a modifier
// in their identity (ctrl+a, shift+tab) are returned as-is.
func EventKeyName(ev Event) string {
	if ev.Key == KeyRune {
		return modPrefix(ev.Mod) + string(ev.Rune)
	}
	name := keyToName[ev.Key]
	if name == "" {
		return ""
	}
	if ev.Key == KeyBacktab || ev.Key >= KeyCtrlA {
		// Modifier baked into the key identity
		return name
	}
	return modPrefix(ev.Mod) + name
}
