// Package color decides how fixrun report lines are styled.
//
// Styling is a pure decision: For maps the outcome of a line (passed or not)
// and whether coloring was requested to a Tag, and a Palette renders text for
// a Tag. There is no package-level "current color"; each line is styled on
// its own.
//
// # Usage Example
//
//	palette := color.NewPalette(os.Stdout, useColor)
//	fmt.Println(palette.Render(color.For(passed, useColor), "testcase-01 10/10"))
//
// When coloring is requested the palette forces the 16 color ANSI profile,
// regardless of whether stdout is a terminal, so piped CI logs keep the
// green/red markers. Otherwise it renders plain ASCII.
package color
