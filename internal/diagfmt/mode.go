package diagfmt

import (
	"fmt"
	"strings"
)

// Mode selects the encoding of a rendered diagnostic report.
type Mode uint8

const (
	ModePlain Mode = iota
	ModeANSI
	ModeHTML
)

func (m Mode) String() string {
	switch m {
	case ModePlain:
		return "plain"
	case ModeANSI:
		return "ansi"
	case ModeHTML:
		return "html"
	}
	return fmt.Sprintf("Mode(%d)", m)
}

// ParseMode accepts the names used in playground.toml and on the command line.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "plain", "text":
		return ModePlain, nil
	case "ansi", "color":
		return ModeANSI, nil
	case "html":
		return ModeHTML, nil
	}
	return ModePlain, fmt.Errorf("unknown render mode %q (want plain, ansi or html)", s)
}
