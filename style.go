package sir

import (
	"fmt"
	"sync"
)

// styleEntry pairs a level with its override style, StyleInvalid meaning
// "no override, use the default for this level."
type styleEntry struct {
	level Level
	style Style
}

// styleTable is the Style Table component: an array of eight level→style
// overrides guarded by its own lock, independent of the Library State and
// File Cache locks (see the package-level concurrency notes in state.go).
type styleTable struct {
	mu      sync.Mutex
	entries [numLevels]styleEntry
}

func newStyleTable() *styleTable {
	t := &styleTable{}
	for i := range t.entries {
		t.entries[i] = styleEntry{level: Level(i), style: StyleInvalid}
	}
	return t
}

var defaultStyles = [numLevels]Style{
	LevelDebug:     StyleDim | FG(ColorWhite),
	LevelInfo:      FG(ColorWhite),
	LevelNotice:    FG(ColorCyan),
	LevelWarn:      FG(ColorYellow),
	LevelError:     FG(ColorRed),
	LevelCritical:  StyleBold | FG(ColorRed),
	LevelAlert:     StyleBold | FG(ColorBlack) | BG(ColorYellow),
	LevelEmergency: StyleBold | FG(ColorYellow) | BG(ColorRed),
}

// get returns the effective style for level: the override if one is set,
// otherwise the hard-coded default.
func (t *styleTable) get(level Level) Style {
	if !level.valid() {
		return StyleInvalid
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.entries[level].style != StyleInvalid {
		return t.entries[level].style
	}
	return defaultStyles[level]
}

// set validates style and stores it as the override for level.
func (t *styleTable) set(level Level, style Style) *Error {
	if !level.valid() {
		return newError(ErrInvalidLevels)
	}
	if _, _, _, ok := style.valid(); !ok {
		return newError(ErrInvalidTextStyle)
	}
	t.mu.Lock()
	t.entries[level].style = style
	t.mu.Unlock()
	return nil
}

// resetAll clears every override back to "use the default".
func (t *styleTable) resetAll() {
	t.mu.Lock()
	for i := range t.entries {
		t.entries[i].style = StyleInvalid
	}
	t.mu.Unlock()
}

// ansiEscape renders style as an ANSI SGR escape sequence, e.g.
// "\x1b[1;031;043m", omitting the fg/bg components when they carry the
// default-region value of zero, matching the source's _log_formatstyle.
func ansiEscape(style Style) string {
	attr, fg, bg, ok := style.valid()
	if !ok {
		return ""
	}
	privAttr := ansiAttr(attr)
	out := fmt.Sprintf("\x1b[%d", privAttr)
	if fgCode := ansiColor(fg, false); fgCode != 0 {
		out += fmt.Sprintf(";%03d", fgCode)
	}
	if bgCode := ansiColor(bg, true); bgCode != 0 {
		out += fmt.Sprintf(";%03d", bgCode)
	}
	return out + "m"
}

const ansiReset = "\x1b[0m"

func ansiAttr(attr uint32) int {
	switch Style(attr) {
	case StyleBold:
		return 1
	case StyleDim:
		return 2
	default:
		return 0
	}
}

// ansiColor maps a colour region value to its SGR code. The bright/"light"
// variants (indices 9-16) are not directly representable as a single SGR
// foreground/background code on every terminal, so they fall back to their
// non-bright counterpart. No attribute is added for them: the rendered
// attribute is only the one in the style's own attribute region.
func ansiColor(c uint32, background bool) int {
	base := 30
	if background {
		base = 40
	}
	if c == uint32(ColorDefault) {
		return 0
	}
	if c > uint32(ColorDefault) {
		c -= uint32(ColorDefault) + 1
	}
	if c > 7 {
		return 0
	}
	return base + int(c)
}
