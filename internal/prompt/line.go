package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// LinePrompter reads one answer per line.
type LinePrompter struct {
	reader *bufio.Reader
	out    io.Writer
}

func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{
		reader: bufio.NewReader(in),
		out:    out,
	}
}

func (p *LinePrompter) Input(ctx context.Context, message, defaultValue string) (string, error) {
	if defaultValue != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", message, defaultValue)
	} else {
		fmt.Fprintf(p.out, "%s: ", message)
	}

	input, err := p.readLine(ctx)
	if err != nil {
		return "", err
	}
	if input == "" {
		return defaultValue, nil
	}
	return input, nil
}

func (p *LinePrompter) Confirm(ctx context.Context, message string, defaultValue bool) (bool, error) {
	hint := "y/N"
	if defaultValue {
		hint = "Y/n"
	}

	for {
		fmt.Fprintf(p.out, "%s [%s]: ", message, hint)

		input, err := p.readLine(ctx)
		if err != nil {
			return false, err
		}

		switch strings.ToLower(input) {
		case "":
			return defaultValue, nil
		case "y", "yes", "true":
			return true, nil
		case "n", "no", "false":
			return false, nil
		}
		fmt.Fprintln(p.out, "Please answer yes or no.")
	}
}

// readLine returns io.EOF once input is exhausted so callers that re-prompt
// cannot loop forever on a closed stdin.
func (p *LinePrompter) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	input, err := p.reader.ReadString('\n')
	if err != nil {
		if err == io.EOF && input != "" {
			return strings.TrimSpace(input), nil
		}
		return "", err
	}
	return strings.TrimSpace(input), nil
}
