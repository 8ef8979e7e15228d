package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/ironsheep/paint-study-mcp/internal/colormath"
)

const swatchWidth = 6

// colorEnabled reports whether ANSI colour should be written to w.
func colorEnabled(w io.Writer, noColor bool) bool {
	if noColor {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// swatch is a solid 24-bit background block, or "" when colour is off.
func swatch(c colormath.RGB, enabled bool) string {
	if !enabled {
		return ""
	}
	return fmt.Sprintf("\033[48;2;%d;%d;%dm%s\033[0m ", c.R, c.G, c.B, strings.Repeat(" ", swatchWidth))
}

// heading prints a bold section title.
func heading(w io.Writer, enabled bool, title string) {
	c := color.New(color.Bold, color.Underline)
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	c.Fprintln(w, title)
}
