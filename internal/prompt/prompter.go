package prompt

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

const (
	affirmativeResponseConstant = "y"
	negativeResponseConstant    = "n"
	responseDelimiterConstant   = '\n'
)

// ConfirmationPrompter asks a yes/no question and reports whether the answer was affirmative.
// Implementations return the context error when executionContext ends before an answer arrives.
type ConfirmationPrompter interface {
	Confirm(executionContext context.Context, prompt string) (bool, error)
}

type responseLine struct {
	text      string
	readError error
}

// IOConfirmationPrompter reads confirmation responses from an io.Reader.
// It is not safe for concurrent use.
type IOConfirmationPrompter struct {
	reader  *bufio.Reader
	writer  io.Writer
	pending chan responseLine
}

// NewIOConfirmationPrompter constructs a prompter from the provided reader and writer.
func NewIOConfirmationPrompter(input io.Reader, output io.Writer) *IOConfirmationPrompter {
	return &IOConfirmationPrompter{reader: bufio.NewReader(input), writer: output}
}

// Confirm writes the prompt and interprets y, in any case, as affirmative.
// End of input without an answer counts as a refusal. Cancelling executionContext
// abandons the wait; a line typed afterwards answers the next Confirm call.
func (prompter *IOConfirmationPrompter) Confirm(executionContext context.Context, prompt string) (bool, error) {
	if contextError := executionContext.Err(); contextError != nil {
		return false, contextError
	}
	if prompter.writer != nil {
		if _, writeError := io.WriteString(prompter.writer, prompt); writeError != nil {
			return false, writeError
		}
	}

	if prompter.pending == nil {
		prompter.pending = make(chan responseLine, 1)
		go prompter.readLine(prompter.pending)
	}

	select {
	case <-executionContext.Done():
		return false, executionContext.Err()
	case response := <-prompter.pending:
		prompter.pending = nil
		if response.readError != nil && !errors.Is(response.readError, io.EOF) {
			return false, response.readError
		}
		return strings.EqualFold(strings.TrimSpace(response.text), affirmativeResponseConstant), nil
	}
}

func (prompter *IOConfirmationPrompter) readLine(responses chan<- responseLine) {
	text, readError := prompter.reader.ReadString(responseDelimiterConstant)
	responses <- responseLine{text: text, readError: readError}
}

// FixedConfirmationPrompter answers every prompt with the same decision without reading input.
type FixedConfirmationPrompter struct {
	writer   io.Writer
	decision bool
}

// NewFixedConfirmationPrompter constructs a prompter that echoes the prompt and the fixed decision.
func NewFixedConfirmationPrompter(output io.Writer, decision bool) *FixedConfirmationPrompter {
	return &FixedConfirmationPrompter{writer: output, decision: decision}
}

// Confirm records the prompt and returns the fixed decision.
func (prompter *FixedConfirmationPrompter) Confirm(executionContext context.Context, prompt string) (bool, error) {
	if contextError := executionContext.Err(); contextError != nil {
		return false, contextError
	}
	if prompter.writer != nil {
		answer := affirmativeResponseConstant
		if !prompter.decision {
			answer = negativeResponseConstant
		}
		if _, writeError := io.WriteString(prompter.writer, prompt+answer+string(responseDelimiterConstant)); writeError != nil {
			return false, writeError
		}
	}
	return prompter.decision, nil
}

// IsInteractive reports whether input is a terminal an operator can type into.
func IsInteractive(input io.Reader) bool {
	inputFile, isFile := input.(*os.File)
	if !isFile {
		return false
	}
	return term.IsTerminal(int(inputFile.Fd()))
}
