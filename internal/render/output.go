// Package render provides output formatting for the CLI commands,
// separating presentation from workflow logic.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Writer wraps an io.Writer with formatting utilities. When pretty is
// false (non-TTY output), status lines fall back to plain prefixes.
type Writer struct {
	out    io.Writer
	pretty bool
}

// NewWriter creates a Writer.
func NewWriter(w io.Writer, pretty bool) *Writer {
	return &Writer{out: w, pretty: pretty}
}

// Stdout returns a Writer for os.Stdout.
func Stdout(pretty bool) *Writer {
	return NewWriter(os.Stdout, pretty)
}

// Println writes formatted text with newline.
func (w *Writer) Println(format string, args ...any) {
	fmt.Fprintf(w.out, format+"\n", args...)
}

// Line writes a blank line.
func (w *Writer) Line() {
	fmt.Fprintln(w.out)
}

// Step writes a step header.
func (w *Writer) Step(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if w.pretty {
		fmt.Fprintln(w.out, color.CyanString("▸ ")+msg)
		return
	}
	fmt.Fprintln(w.out, "> "+msg)
}

// Success writes a success line.
func (w *Writer) Success(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if w.pretty {
		fmt.Fprintln(w.out, color.GreenString("✓ ")+msg)
		return
	}
	fmt.Fprintln(w.out, "ok: "+msg)
}

// Warn writes a non-fatal warning line.
func (w *Writer) Warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if w.pretty {
		fmt.Fprintln(w.out, color.YellowString("! ")+msg)
		return
	}
	fmt.Fprintln(w.out, "warning: "+msg)
}

// Error writes an error line.
func (w *Writer) Error(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if w.pretty {
		fmt.Fprintln(w.out, color.RedString("✗ ")+msg)
		return
	}
	fmt.Fprintln(w.out, "error: "+msg)
}

// Item writes an indented item line.
func (w *Writer) Item(format string, args ...any) {
	fmt.Fprintf(w.out, "  "+format+"\n", args...)
}

// Rule writes a horizontal separator.
func (w *Writer) Rule() {
	fmt.Fprintln(w.out, strings.Repeat("─", 48))
}

// Truncate shortens a string to max length.
func Truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
