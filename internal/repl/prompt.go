package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter reads one command line at a time. It returns io.EOF when the
// input is exhausted or the user aborts.
type Prompter interface {
	Prompt(prompt string) (string, error)
	AppendHistory(line string)
}

// LineReader is a Prompter for plain, non-interactive input such as a
// piped command file.
type LineReader struct {
	r *bufio.Reader
	w io.Writer
}

// NewLineReader returns a LineReader reading lines from r and echoing
// prompts to w. A nil w drops the prompts.
func NewLineReader(r io.Reader, w io.Writer) *LineReader {
	if w == nil {
		w = io.Discard
	}
	return &LineReader{r: bufio.NewReader(r), w: w}
}

func (l *LineReader) Prompt(prompt string) (string, error) {
	fmt.Fprint(l.w, prompt)
	line, err := l.r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (*LineReader) AppendHistory(string) {}

// Complete returns completions for a partially typed command line.
func Complete(line string) []string {
	fields := strings.Fields(line)
	trailing := strings.HasSuffix(line, " ")
	switch {
	case len(fields) == 0:
		return commands
	case len(fields) == 1 && !trailing:
		return withPrefix(commands, "", fields[0])
	case fields[0] == "ADD" && (len(fields) == 1 || len(fields) == 2 && !trailing):
		word := ""
		if len(fields) == 2 {
			word = fields[1]
		}
		return withPrefix(kindWords, "ADD ", word)
	}
	return nil
}

func withPrefix(words []string, lead, partial string) []string {
	var out []string
	for _, w := range words {
		if strings.HasPrefix(w, partial) {
			out = append(out, lead+w)
		}
	}
	return out
}
