// Package prompt collects the add and edit forms interactively. It only
// gathers text; validation belongs to the tracker.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rustyeddy/mtgtrades/tracker"
)

// ErrCancelled is returned when input ends before the form is complete.
var ErrCancelled = errors.New("cancelled")

// Clear is typed to blank out a field that has a default.
const Clear = "-"

type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Ask prints question with its default and reads one line. An empty line
// keeps the default, Clear yields "", and end of input cancels.
func (p *Prompter) Ask(question, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", question, def)
	} else {
		fmt.Fprintf(p.out, "%s: ", question)
	}

	line, err := p.in.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		if errors.Is(err, io.EOF) {
			return "", ErrCancelled
		}
		return "", err
	}

	line = strings.TrimSpace(line)
	switch line {
	case "":
		return def, nil
	case Clear:
		return "", nil
	default:
		return line, nil
	}
}

// EditTrade asks for the four edit fields, offering cur as defaults.
func EditTrade(p *Prompter, cur tracker.EditInput) (tracker.EditInput, error) {
	var out tracker.EditInput
	var err error

	if out.GiveCard, err = p.Ask("Edit the card you're trading", cur.GiveCard); err != nil {
		return tracker.EditInput{}, err
	}
	if out.GiveValue, err = p.Ask("Edit the value you're giving", orZero(cur.GiveValue)); err != nil {
		return tracker.EditInput{}, err
	}
	if out.ReceiveCard, err = p.Ask("Edit the card you're receiving", cur.ReceiveCard); err != nil {
		return tracker.EditInput{}, err
	}
	if out.ReceiveValue, err = p.Ask("Edit the value you're receiving", orZero(cur.ReceiveValue)); err != nil {
		return tracker.EditInput{}, err
	}
	return out, nil
}

// AddTrade asks for a new trade.
func AddTrade(p *Prompter) (tracker.AddInput, error) {
	var out tracker.AddInput
	var err error

	if out.GiveCard, err = p.Ask("Card you gave (blank for none)", ""); err != nil {
		return tracker.AddInput{}, err
	}
	if out.GiveValue, err = p.Ask("Cash you gave", "0"); err != nil {
		return tracker.AddInput{}, err
	}
	if out.ReceiveCard, err = p.Ask("Card you got (blank for none)", ""); err != nil {
		return tracker.AddInput{}, err
	}
	if out.ReceiveValue, err = p.Ask("Cash you got", "0"); err != nil {
		return tracker.AddInput{}, err
	}
	return out, nil
}

func orZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}
