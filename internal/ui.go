package internal

import (
	"errors"
	"fmt"
	"io"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
)

// Color formatting functions
func Bold(text string) string {
	return colorBold + text + colorReset
}

func Green(text string) string {
	return colorGreen + text + colorReset
}

func Yellow(text string) string {
	return colorYellow + text + colorReset
}

func Red(text string) string {
	return colorRed + text + colorReset
}

// Progress prints a plain status line
func Progress(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
}

// ShowSuccess displays a success message
func ShowSuccess(w io.Writer, message string) {
	fmt.Fprintf(w, "%s %s\n", Green("✓"), message)
}

// ShowError displays an error message
func ShowError(w io.Writer, message string) {
	fmt.Fprintf(w, "%s %s\n", Red("✗"), message)
}

var errorMessages = []struct {
	err     error
	message string
}{
	{ErrConnectionFailed, "Connection failed. Please check your credentials or server status."},
	{ErrInvalidMagnet, "Invalid or missing magnet link."},
}

// ErrorMessage returns the text shown to the user for err
func ErrorMessage(err error) string {
	for _, m := range errorMessages {
		if errors.Is(err, m.err) {
			return m.message
		}
	}
	return err.Error()
}
