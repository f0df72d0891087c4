package color

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Tag identifies the style of a report line.
type Tag int

const (
	// None renders text unstyled.
	None Tag = iota
	// Green marks passing cases and full-score totals.
	Green
	// Red marks failing cases, partial totals and errors.
	Red
)

// String makes Tag satisfy the fmt.Stringer interface.
func (t Tag) String() string {
	switch t {
	case Green:
		return "green"
	case Red:
		return "red"
	default:
		return "none"
	}
}

// For returns the tag for a line whose outcome is passed. It returns None
// whenever coloring is disabled.
func For(passed, enabled bool) Tag {
	if !enabled {
		return None
	}
	if passed {
		return Green
	}
	return Red
}

// Bright ANSI green and red (escapes 92 and 91).
var (
	colorPass = lipgloss.Color("10")
	colorFail = lipgloss.Color("9")
)

// Palette renders tagged text for a single output stream.
type Palette struct {
	renderer *lipgloss.Renderer
	profile  termenv.Profile
	pass     lipgloss.Style
	fail     lipgloss.Style
}

// NewPalette creates a palette writing to w. With enabled false every tag
// renders as plain text.
func NewPalette(w io.Writer, enabled bool) *Palette {
	renderer := lipgloss.NewRenderer(w)
	profile := termenv.Ascii
	if enabled {
		profile = termenv.ANSI
	}
	renderer.SetColorProfile(profile)

	return &Palette{
		renderer: renderer,
		profile:  profile,
		pass:     renderer.NewStyle().Foreground(colorPass),
		fail:     renderer.NewStyle().Foreground(colorFail),
	}
}

// Render styles s according to tag.
func (p *Palette) Render(tag Tag, s string) string {
	switch tag {
	case Green:
		return p.pass.Render(s)
	case Red:
		return p.fail.Render(s)
	default:
		return s
	}
}

// Profile is the color profile the palette renders with.
func (p *Palette) Profile() termenv.Profile {
	return p.profile
}

// Enabled reports whether the palette emits escape sequences.
func (p *Palette) Enabled() bool {
	return p.profile != termenv.Ascii
}
