package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"
)

// ScannerReader reads lines from a plain stream, echoing the prompt to out
// when out is set. Lines may be of any length.
type ScannerReader struct {
	reader *bufio.Reader
	out    io.Writer
}

func NewScannerReader(in io.Reader, out io.Writer) *ScannerReader {
	return &ScannerReader{reader: bufio.NewReader(in), out: out}
}

func (s *ScannerReader) Prompt(prompt string) (string, error) {
	if s.out != nil {
		fmt.Fprint(s.out, prompt)
	}
	line, err := s.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			// last line without a trailing newline
			return strings.TrimSuffix(line, "\r"), nil
		}
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

// LinerReader is a terminal line editor with in-memory history.
type LinerReader struct {
	state *liner.State
}

func NewLinerReader() *LinerReader {
	ln := liner.NewLiner()
	ln.SetCtrlCAborts(true)
	return &LinerReader{state: ln}
}

// Prompt returns an empty line when the user presses Ctrl-C, so the current
// input is discarded without leaving the loop.
func (l *LinerReader) Prompt(prompt string) (string, error) {
	line, err := l.state.Prompt(prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(line) != "" {
		l.state.AppendHistory(line)
	}
	return line, nil
}

// Preload seeds the editor's history, oldest first.
func (l *LinerReader) Preload(lines []string) {
	for _, line := range lines {
		l.state.AppendHistory(line)
	}
}

func (l *LinerReader) Close() error {
	return l.state.Close()
}
