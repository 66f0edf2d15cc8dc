package internal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// Prompter reads answers from the user. Every method blocks until input arrives.
type Prompter interface {
	Ask(label string) (string, error)
	Mask(label string) (string, error)
	Select(title string, options []string, defaultValue string) (string, error)
}

// NewPrompter returns a TUI prompter when in and out are terminals and a
// line-oriented one otherwise. SDLS_INTERACTIVE=false forces the latter.
func NewPrompter(in *os.File, out *os.File) Prompter {
	if isInteractive(in, out) {
		return HuhPrompter{}
	}
	return NewLinePrompter(in, out)
}

func isInteractive(in, out *os.File) bool {
	if v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(EnvInteractive))); err == nil && !v {
		return false
	}
	return isTerminal(in) && isTerminal(out)
}

func isTerminal(file *os.File) bool {
	if file == nil {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// HuhPrompter implements Prompter with the huh TUI library
type HuhPrompter struct{}

func (HuhPrompter) Ask(label string) (string, error) {
	var input string
	err := huh.NewInput().
		Title(label).
		Value(&input).
		Run()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

func (HuhPrompter) Mask(label string) (string, error) {
	var input string
	err := huh.NewInput().
		Title(label).
		EchoMode(huh.EchoModePassword).
		Value(&input).
		Run()
	if err != nil {
		return "", err
	}
	return input, nil
}

func (HuhPrompter) Select(title string, options []string, defaultValue string) (string, error) {
	if len(options) == 0 {
		return "", nil
	}

	huhOptions := make([]huh.Option[string], len(options))
	for i, opt := range options {
		huhOptions[i] = huh.NewOption(opt, opt)
	}

	selected := defaultValue
	err := huh.NewSelect[string]().
		Title(title).
		Options(huhOptions...).
		Value(&selected).
		Run()
	if err != nil {
		return "", err
	}
	return selected, nil
}

// LinePrompter implements Prompter over plain line input, for pipes and dumb terminals
type LinePrompter struct {
	in     io.Reader
	out    io.Writer
	reader *bufio.Reader
}

// NewLinePrompter creates a LinePrompter reading from in and writing prompts to out
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	if out == nil {
		out = io.Discard
	}
	return &LinePrompter{in: in, out: out, reader: bufio.NewReader(in)}
}

func (p *LinePrompter) Ask(label string) (string, error) {
	fmt.Fprintf(p.out, "%s ", label)
	return p.readLine()
}

func (p *LinePrompter) Mask(label string) (string, error) {
	fmt.Fprintf(p.out, "%s ", label)

	// Input already buffered by an earlier read is consumed before touching the terminal.
	if file, ok := p.in.(*os.File); ok && p.reader.Buffered() == 0 && term.IsTerminal(int(file.Fd())) {
		secret, err := term.ReadPassword(int(file.Fd()))
		fmt.Fprintln(p.out)
		if err != nil {
			return "", err
		}
		return string(secret), nil
	}

	line, err := p.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (p *LinePrompter) Select(title string, options []string, defaultValue string) (string, error) {
	if len(options) == 0 {
		return "", nil
	}

	fmt.Fprintln(p.out, Bold(title))
	for i, opt := range options {
		marker := " "
		if opt == defaultValue {
			marker = "*"
		}
		fmt.Fprintf(p.out, " %s %s %s\n", marker, Yellow(fmt.Sprintf("%d.", i+1)), opt)
	}
	fmt.Fprintf(p.out, "%s ", Bold("Enter choice:"))

	choice, err := p.readLine()
	if err != nil {
		return "", err
	}

	if choice == "" {
		return defaultValue, nil
	}
	if n, err := strconv.Atoi(choice); err == nil {
		if n < 1 || n > len(options) {
			return "", fmt.Errorf("invalid choice %d", n)
		}
		return options[n-1], nil
	}
	for _, opt := range options {
		if opt == choice {
			return opt, nil
		}
	}
	return "", fmt.Errorf("invalid choice %q", choice)
}

func (p *LinePrompter) readLine() (string, error) {
	line, err := p.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
