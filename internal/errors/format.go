package errors

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

const (
	ansiReset = "\033[0m"
	ansiRed   = "\033[31m"
	ansiCyan  = "\033[36m"
	ansiGray  = "\033[90m"
	ansiBold  = "\033[1m"
)

// Colors controls whether Format emits ANSI escapes.
var Colors = true

func paint(code, text string) string {
	if !Colors {
		return text
	}
	return code + text + ansiReset
}

// Format renders the error for a terminal: header, location with the
// surrounding source lines, detail and hint.
func (e *Error) Format() string {
	var b strings.Builder

	b.WriteString("\n")
	header := "ERROR: "
	if e.Code != "" {
		header = "ERROR " + e.Code + ": "
	}
	b.WriteString(paint(ansiRed+ansiBold, header))
	b.WriteString(e.Message)
	b.WriteString("\n\n")

	if e.Location != nil {
		b.WriteString("  " + paint(ansiCyan, e.Location.String()) + "\n\n")
		if len(e.Context) > 0 {
			first := e.Location.Line - len(e.Context)/2
			if first < 1 {
				first = 1
			}
			for i, line := range e.Context {
				n := first + i
				marker := "    "
				if n == e.Location.Line {
					marker = "  " + paint(ansiRed, "→ ")
				}
				fmt.Fprintf(&b, "%s%4d%s%s\n", marker, n, paint(ansiGray, " │ "), line)
				if n == e.Location.Line && e.Location.Column > 0 {
					b.WriteString("        " + paint(ansiGray, "│ "))
					b.WriteString(strings.Repeat(" ", e.Location.Column-1))
					b.WriteString(paint(ansiRed, "^") + "\n")
				}
			}
			b.WriteString("\n")
		}
	}

	if e.Detail != "" {
		for _, line := range wrapText(e.Detail, 70) {
			b.WriteString("  " + line + "\n")
		}
		b.WriteString("\n")
	}
	if e.Wrapped != nil {
		b.WriteString("  " + paint(ansiGray, "cause: ") + e.Wrapped.Error() + "\n\n")
	}
	if e.Suggestion != "" {
		b.WriteString("  " + paint(ansiCyan, "Hint: ") + e.Suggestion + "\n\n")
	}
	return b.String()
}

// FormatCompact returns a single-line form suitable for log lines.
func (e *Error) FormatCompact() string {
	var b strings.Builder
	if e.Location != nil {
		b.WriteString(e.Location.String())
		b.WriteString(": ")
	}
	if e.Code != "" {
		b.WriteString("[" + e.Code + "] ")
	}
	b.WriteString(e.Message)
	if e.Detail != "" {
		b.WriteString(" (" + e.Detail + ")")
	}
	if e.Wrapped != nil {
		b.WriteString(": " + e.Wrapped.Error())
	}
	return b.String()
}

type jsonError struct {
	Code       string `json:"code,omitempty"`
	Category   string `json:"category,omitempty"`
	Message    string `json:"message"`
	Detail     string `json:"detail,omitempty"`
	File       string `json:"file,omitempty"`
	Line       int    `json:"line,omitempty"`
	Column     int    `json:"column,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
	Cause      string `json:"cause,omitempty"`
}

// MarshalJSON encodes the error for machine consumers such as live clients.
func (e *Error) MarshalJSON() ([]byte, error) {
	j := jsonError{
		Code:       e.Code,
		Category:   string(e.Category),
		Message:    e.Message,
		Detail:     e.Detail,
		Suggestion: e.Suggestion,
	}
	if e.Location != nil {
		j.File, j.Line, j.Column = e.Location.File, e.Location.Line, e.Location.Column
	}
	if e.Wrapped != nil {
		j.Cause = e.Wrapped.Error()
	}
	return json.Marshal(j)
}

// Print writes the formatted error to w. Errors that are not *Error are
// printed plainly.
func Print(w io.Writer, err error) {
	if e, ok := err.(*Error); ok {
		fmt.Fprint(w, e.Format())
		return
	}
	fmt.Fprintf(w, "\n%s%v\n\n", paint(ansiRed+ansiBold, "ERROR: "), err)
}

// wrapText wraps text to the specified width.
func wrapText(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		if len(current)+1+len(word) > width {
			lines = append(lines, current)
			current = word
		} else {
			current += " " + word
		}
	}
	return append(lines, current)
}
