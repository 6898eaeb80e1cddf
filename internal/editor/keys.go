package editor

import (
	"sort"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// keyString converts a key event into the form used by the keymap,
// e.g. "ctrl+s", "alt+left", "f10", "a".
func keyString(ev *tcell.EventKey) string {
	mods := ev.Modifiers()
	// Keys that share codes with ctrl letters come first.
	switch ev.Key() {
	case tcell.KeyEnter:
		return "enter"
	case tcell.KeyTab:
		return "tab"
	case tcell.KeyBacktab:
		return "shift+tab"
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return "backspace"
	case tcell.KeyEscape:
		return "esc"
	}

	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		name := string(r)
		if r == ' ' {
			name = "space"
		}
		if mods&tcell.ModAlt != 0 {
			return "alt+" + strings.ToLower(name)
		}
		if mods&tcell.ModCtrl != 0 {
			return "ctrl+" + strings.ToLower(name)
		}
		return name
	}
	if ev.Key() >= tcell.KeyCtrlA && ev.Key() <= tcell.KeyCtrlZ {
		return "ctrl+" + string(rune('a'+int(ev.Key()-tcell.KeyCtrlA)))
	}

	name, ok := namedKeys[ev.Key()]
	if !ok {
		if ev.Key() >= tcell.KeyF1 && ev.Key() <= tcell.KeyF12 {
			name = "f" + strconv.Itoa(int(ev.Key()-tcell.KeyF1)+1)
		} else {
			return ""
		}
	}
	prefix := ""
	if mods&tcell.ModCtrl != 0 {
		prefix += "ctrl+"
	}
	if mods&tcell.ModAlt != 0 {
		prefix += "alt+"
	}
	if mods&tcell.ModShift != 0 {
		prefix += "shift+"
	}
	return prefix + name
}

var namedKeys = map[tcell.Key]string{
	tcell.KeyUp:     "up",
	tcell.KeyDown:   "down",
	tcell.KeyLeft:   "left",
	tcell.KeyRight:  "right",
	tcell.KeyPgUp:   "pgup",
	tcell.KeyPgDn:   "pgdn",
	tcell.KeyHome:   "home",
	tcell.KeyEnd:    "end",
	tcell.KeyDelete: "del",
	tcell.KeyInsert: "ins",
}

// keyDisplay turns "ctrl+pgdn" into "Ctrl+PgDn" for menus.
func keyDisplay(key string) string {
	parts := strings.Split(key, "+")
	for i, p := range parts {
		switch p {
		case "pgup":
			parts[i] = "PgUp"
		case "pgdn":
			parts[i] = "PgDn"
		case "del":
			parts[i] = "Del"
		default:
			if p == "" {
				continue
			}
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, "+")
}

// keysFor returns the keys bound to action, shortest first.
func keysFor(keymap map[string]string, action string) []string {
	var keys []string
	for k, v := range keymap {
		if v == action {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) < len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}
