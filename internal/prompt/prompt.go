// Package prompt models operator interaction as typed requests answered by a Prompter,
// so interactive flows can run against a console or against canned answers.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/temirov/lister/internal/utils"
)

// Kind classifies what a request expects as an answer.
type Kind string

const (
	KindConfirm Kind = "confirm"
	KindText    Kind = "text"
	KindChoice  Kind = "choice"
	KindList    Kind = "list"
)

const (
	confirmAnswer = "y"

	errorChoiceNotNumericFormat = "%w: %q is not a number"
	errorChoiceRangeFormat      = "%w: %d is outside 1-%d"
	errorReadInputFormat        = "read input: %w"
)

var (
	// ErrInputClosed is returned when no further answers are available.
	ErrInputClosed = errors.New("input closed")
	// ErrInvalidChoice is returned when a numbered pick is not a valid index.
	ErrInvalidChoice = errors.New("invalid choice")
)

// Request is one question shown to the operator.
type Request struct {
	Kind    Kind
	Message string
}

// Prompter answers requests.
type Prompter interface {
	Ask(request Request) (string, error)
}

// ConsolePrompter writes request messages to an output stream and reads one line per answer.
type ConsolePrompter struct {
	scanner *bufio.Scanner
	output  io.Writer
}

// NewConsolePrompter constructs a ConsolePrompter over the given streams.
func NewConsolePrompter(input io.Reader, output io.Writer) *ConsolePrompter {
	return &ConsolePrompter{scanner: bufio.NewScanner(input), output: output}
}

// Ask prints the message and returns the next input line without surrounding whitespace.
func (prompter *ConsolePrompter) Ask(request Request) (string, error) {
	if _, writeError := io.WriteString(prompter.output, request.Message); writeError != nil {
		return "", writeError
	}
	if !prompter.scanner.Scan() {
		if scanError := prompter.scanner.Err(); scanError != nil {
			return "", fmt.Errorf(errorReadInputFormat, scanError)
		}
		return "", ErrInputClosed
	}
	return strings.TrimSpace(prompter.scanner.Text()), nil
}

// ScriptedPrompter replays canned answers in order and records every request.
type ScriptedPrompter struct {
	answers []string
	asked   []Request
}

// NewScriptedPrompter constructs a ScriptedPrompter returning answers in order.
func NewScriptedPrompter(answers ...string) *ScriptedPrompter {
	return &ScriptedPrompter{answers: answers}
}

// Ask returns the next canned answer or ErrInputClosed once they run out.
func (prompter *ScriptedPrompter) Ask(request Request) (string, error) {
	prompter.asked = append(prompter.asked, request)
	if len(prompter.answers) == 0 {
		return "", ErrInputClosed
	}
	answer := prompter.answers[0]
	prompter.answers = prompter.answers[1:]
	return strings.TrimSpace(answer), nil
}

// Requests returns the requests asked so far.
func (prompter *ScriptedPrompter) Requests() []Request {
	return append([]Request{}, prompter.asked...)
}

// Remaining reports how many canned answers were not consumed.
func (prompter *ScriptedPrompter) Remaining() int {
	return len(prompter.answers)
}

var (
	_ Prompter = (*ConsolePrompter)(nil)
	_ Prompter = (*ScriptedPrompter)(nil)
)

// Confirm asks a yes/no question; only "y" (any case) confirms.
func Confirm(prompter Prompter, message string) (bool, error) {
	answer, askError := prompter.Ask(Request{Kind: KindConfirm, Message: message})
	if askError != nil {
		return false, askError
	}
	return strings.EqualFold(answer, confirmAnswer), nil
}

// Text asks for free-form text.
func Text(prompter Prompter, message string) (string, error) {
	return prompter.Ask(Request{Kind: KindText, Message: message})
}

// Number asks for an integer.
func Number(prompter Prompter, message string) (int, error) {
	answer, askError := prompter.Ask(Request{Kind: KindChoice, Message: message})
	if askError != nil {
		return 0, askError
	}
	value, parseError := strconv.Atoi(answer)
	if parseError != nil {
		return 0, fmt.Errorf(errorChoiceNotNumericFormat, ErrInvalidChoice, answer)
	}
	return value, nil
}

// Choice asks for a 1-based pick among count options and returns the 0-based index.
func Choice(prompter Prompter, message string, count int) (int, error) {
	value, numberError := Number(prompter, message)
	if numberError != nil {
		return 0, numberError
	}
	if value < 1 || value > count {
		return 0, fmt.Errorf(errorChoiceRangeFormat, ErrInvalidChoice, value, count)
	}
	return value - 1, nil
}

// List asks for comma-separated items; blank answers yield nil.
func List(prompter Prompter, message string) ([]string, error) {
	answer, askError := prompter.Ask(Request{Kind: KindList, Message: message})
	if askError != nil {
		return nil, askError
	}
	return utils.SplitList(answer), nil
}
