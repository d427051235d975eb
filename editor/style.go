package editor

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/codearea/textarea"
	"github.com/iw2rmb/codearea/token"
)

// Style controls the editor's rendering. Token styles colour text; role
// styles are layered over them for the decorations the area paints.
type Style struct {
	Text          lipgloss.Style
	Gutter        lipgloss.Style
	LineNum       lipgloss.Style
	LineNumActive lipgloss.Style
	Status        lipgloss.Style
	Tooltip       lipgloss.Style

	Tokens map[token.Category]lipgloss.Style
	Roles  map[textarea.Role]lipgloss.Style
}

// roleOrder is the order role styles are layered in; later roles win.
var roleOrder = []textarea.Role{
	textarea.RoleLineHighlight,
	textarea.RoleSelection,
	textarea.RoleBox,
	textarea.RoleBracket,
	textarea.RoleDeprecated,
	textarea.RoleError,
	textarea.RoleLink,
	textarea.RoleCaret,
	textarea.RoleOverwriteCaret,
}

// DefaultStyle is ThemeStyle with the default renderer.
func DefaultStyle(theme string) Style {
	return ThemeStyle(lipgloss.DefaultRenderer(), theme)
}

// ThemeStyle derives a Style from a chroma style. Unknown themes fall back
// to chroma's default.
func ThemeStyle(r *lipgloss.Renderer, theme string) Style {
	cs := styles.Get(theme)
	bg := cs.Get(chroma.Background)
	hl := cs.Get(chroma.LineHighlight)
	nums := cs.Get(chroma.LineNumbers)

	text := r.NewStyle()
	if bg.Colour.IsSet() {
		text = text.Foreground(color(bg.Colour))
	}
	lineBg := hl.Background
	if !lineBg.IsSet() && bg.Background.IsSet() {
		lineBg = bg.Background.Brighten(0.08)
	}
	selection := r.NewStyle().Background(lipgloss.Color("237"))
	if lineBg.IsSet() {
		selection = r.NewStyle().Background(color(lineBg.Brighten(0.15)))
	}

	gutter := r.NewStyle().Foreground(lipgloss.Color("240"))
	if nums.Colour.IsSet() {
		gutter = gutter.Foreground(color(nums.Colour))
	}

	errFg := lipgloss.Color("#ff5555")
	if e := cs.Get(chroma.Error); e.Colour.IsSet() {
		errFg = color(e.Colour)
	}

	s := Style{
		Text:          text,
		Gutter:        gutter,
		LineNum:       gutter,
		LineNumActive: gutter.Bold(true),
		Status:        r.NewStyle().Reverse(true),
		Tooltip:       r.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1),
		Tokens:        make(map[token.Category]lipgloss.Style),
		Roles: map[textarea.Role]lipgloss.Style{
			textarea.RoleLineHighlight:  r.NewStyle(),
			textarea.RoleSelection:      selection,
			textarea.RoleBox:            r.NewStyle().Underline(true),
			textarea.RoleBracket:        r.NewStyle().Bold(true).Underline(true),
			textarea.RoleDeprecated:     r.NewStyle().Strikethrough(true),
			textarea.RoleError:          r.NewStyle().Foreground(errFg).Underline(true),
			textarea.RoleLink:           r.NewStyle().Underline(true),
			textarea.RoleCaret:          r.NewStyle().Reverse(true),
			textarea.RoleOverwriteCaret: r.NewStyle().Reverse(true).Underline(true),
		},
	}
	if lineBg.IsSet() {
		s.Roles[textarea.RoleLineHighlight] = r.NewStyle().Background(color(lineBg))
	}
	for _, c := range token.Categories() {
		s.Tokens[c] = entryStyle(r, cs.Get(c.TokenType()))
	}
	return s
}

func entryStyle(r *lipgloss.Renderer, e chroma.StyleEntry) lipgloss.Style {
	st := r.NewStyle()
	if e.Colour.IsSet() {
		st = st.Foreground(color(e.Colour))
	}
	if e.Bold == chroma.Yes {
		st = st.Bold(true)
	}
	if e.Italic == chroma.Yes {
		st = st.Italic(true)
	}
	if e.Underline == chroma.Yes {
		st = st.Underline(true)
	}
	return st
}

func color(c chroma.Colour) lipgloss.Color { return lipgloss.Color(c.String()) }

// cellStyle layers the role styles in roles over the token style of cat.
func (s Style) cellStyle(cat token.Category, roles roleSet) lipgloss.Style {
	st, ok := s.Tokens[cat]
	if !ok {
		st = s.Text
	}
	for _, r := range roleOrder {
		if roles.has(r) {
			if rs, ok := s.Roles[r]; ok {
				st = rs.Inherit(st)
			}
		}
	}
	return st
}
