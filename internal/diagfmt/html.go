package diagfmt

import (
	"fmt"
	"html"
	"strconv"
	"strings"
)

// HTMLFallback replaces the report when the ANSI stream cannot be converted.
const HTMLFallback = "Failed to parse ANSI to HTML"

var (
	ansiNormal = [8]string{"#000000", "#aa0000", "#00aa00", "#aa5500", "#0000aa", "#aa00aa", "#00aaaa", "#aaaaaa"}
	ansiBright = [8]string{"#555555", "#ff5555", "#55ff55", "#ffff55", "#5555ff", "#ff55ff", "#55ffff", "#ffffff"}
)

type sgrState struct {
	fg, bg    string
	bold      bool
	faint     bool
	italic    bool
	underline bool
}

func (s *sgrState) apply(params string) error {
	if params == "" {
		*s = sgrState{}
		return nil
	}
	for _, p := range strings.Split(params, ";") {
		code, err := strconv.Atoi(p)
		if err != nil {
			return fmt.Errorf("bad SGR parameter %q", p)
		}
		switch {
		case code == 0:
			*s = sgrState{}
		case code == 1:
			s.bold = true
		case code == 2:
			s.faint = true
		case code == 3:
			s.italic = true
		case code == 4:
			s.underline = true
		case code == 22:
			s.bold, s.faint = false, false
		case code == 23:
			s.italic = false
		case code == 24:
			s.underline = false
		case code >= 30 && code <= 37:
			s.fg = ansiNormal[code-30]
		case code == 39:
			s.fg = ""
		case code >= 40 && code <= 47:
			s.bg = ansiNormal[code-40]
		case code == 49:
			s.bg = ""
		case code >= 90 && code <= 97:
			s.fg = ansiBright[code-90]
		case code >= 100 && code <= 107:
			s.bg = ansiBright[code-100]
		default:
			return fmt.Errorf("unsupported SGR code %d", code)
		}
	}
	return nil
}

func (s sgrState) css() string {
	var decls []string
	if s.fg != "" {
		decls = append(decls, "color:"+s.fg)
	}
	if s.bg != "" {
		decls = append(decls, "background-color:"+s.bg)
	}
	if s.bold {
		decls = append(decls, "font-weight:bold")
	}
	if s.faint {
		decls = append(decls, "opacity:0.7")
	}
	if s.italic {
		decls = append(decls, "font-style:italic")
	}
	if s.underline {
		decls = append(decls, "text-decoration:underline")
	}
	return strings.Join(decls, ";")
}

// ANSIToHTML converts SGR escape sequences into inline-styled <span>
// elements and HTML-escapes the text between them. Any other control
// sequence is an error.
func ANSIToHTML(in string) (string, error) {
	var (
		b    strings.Builder
		st   sgrState
		open bool
		text int
	)
	for i := 0; i < len(in); {
		if in[i] != 0x1b {
			i++
			continue
		}
		b.WriteString(html.EscapeString(in[text:i]))
		if i+1 >= len(in) || in[i+1] != '[' {
			return "", fmt.Errorf("offset %d: escape is not a control sequence", i)
		}
		j := i + 2
		for j < len(in) && (in[j] >= '0' && in[j] <= '9' || in[j] == ';') {
			j++
		}
		if j >= len(in) {
			return "", fmt.Errorf("offset %d: unterminated escape sequence", i)
		}
		if in[j] != 'm' {
			return "", fmt.Errorf("offset %d: unsupported control sequence %q", i, in[i+1:j+1])
		}
		if err := st.apply(in[i+2 : j]); err != nil {
			return "", fmt.Errorf("offset %d: %w", i, err)
		}
		if open {
			b.WriteString("</span>")
			open = false
		}
		if css := st.css(); css != "" {
			fmt.Fprintf(&b, `<span style="%s">`, css)
			open = true
		}
		i = j + 1
		text = i
	}
	b.WriteString(html.EscapeString(in[text:]))
	if open {
		b.WriteString("</span>")
	}
	return b.String(), nil
}
