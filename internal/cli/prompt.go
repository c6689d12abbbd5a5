// Package cli implements the interactive terminal explorer: it asks for a
// city, month and day, prints the statistics report, and offers to start over.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/pkordes/bikeshare/internal/domain"
)

// Questions and rejection messages shown by Prompter.
const (
	greeting      = "Hello! Let's explore some US bikeshare data!"
	askCity       = "Would you like to see data for Chicago, New York City, or Washington? "
	askMonth      = `Enter the month (e.g., January, February, ...), or "all" for no month filter: `
	askDay        = `Enter the day of the week (e.g., Monday, Tuesday, ...), or "all" for no day filter: `
	askRestart    = "\nWould you like to restart? Enter yes or no.\n"
	invalidCity   = "Invalid city. Please choose a valid city."
	invalidMonth  = `Invalid month. Please enter a valid month or "all".`
	invalidDay    = `Invalid day. Please enter a valid day or "all".`
	sectionRule   = "----------------------------------------"
	restartAnswer = "yes"
)

// Prompter reads answers line by line from an input stream.
// Each question is repeated until it gets an acceptable answer; a rejected
// answer never moves on to the next question.
//
// Input is read on a background goroutine so a blocked read never stops a
// canceled ctx from ending the prompt.
type Prompter struct {
	in    io.Reader
	out   io.Writer
	once  sync.Once
	lines chan scanned
}

// scanned is one input line or the error that ended the input.
type scanned struct {
	text string
	err  error
}

// NewPrompter returns a Prompter reading from in and writing questions to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: in, out: out}
}

// Filter asks for city, month and day in that order and returns the resolved
// FilterSpec. Returns io.EOF if the input ends before all three are answered,
// or ctx.Err() once ctx is canceled.
func (p *Prompter) Filter(ctx context.Context) (domain.FilterSpec, error) {
	fmt.Fprintln(p.out, greeting)

	city, err := p.ask(ctx, askCity, invalidCity, func(s string) error {
		_, err := domain.ParseCity(s)
		return err
	})
	if err != nil {
		return domain.FilterSpec{}, err
	}
	month, err := p.ask(ctx, askMonth, invalidMonth, func(s string) error {
		_, err := domain.ParseMonth(s)
		return err
	})
	if err != nil {
		return domain.FilterSpec{}, err
	}
	day, err := p.ask(ctx, askDay, invalidDay, func(s string) error {
		_, err := domain.ParseDay(s)
		return err
	})
	if err != nil {
		return domain.FilterSpec{}, err
	}

	fmt.Fprintln(p.out, sectionRule)
	return domain.NewFilterSpec(city, month, day)
}

// Restart asks whether to run another round. Only "yes" (any case) restarts.
// End of input is a plain "no".
func (p *Prompter) Restart(ctx context.Context) (bool, error) {
	fmt.Fprint(p.out, askRestart)
	answer, err := p.line(ctx)
	if err == io.EOF {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return strings.EqualFold(strings.TrimSpace(answer), restartAnswer), nil
}

// ask prints question and reads answers until accept returns nil, printing
// invalid after every rejection.
func (p *Prompter) ask(ctx context.Context, question, invalid string, accept func(string) error) (string, error) {
	for {
		fmt.Fprint(p.out, question)
		answer, err := p.line(ctx)
		if err != nil {
			return "", err
		}
		if accept(answer) == nil {
			return answer, nil
		}
		fmt.Fprintln(p.out, invalid)
	}
}

// line returns the next input line, io.EOF when the input is exhausted, or
// ctx.Err() once ctx is canceled. A line that arrives together with the
// cancellation is dropped.
func (p *Prompter) line(ctx context.Context) (string, error) {
	p.once.Do(p.startReader)

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l, ok := <-p.lines:
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if !ok {
			return "", io.EOF
		}
		return l.text, l.err
	}
}

// startReader scans p.in until it ends, sending every line and finally the
// terminating error on p.lines.
func (p *Prompter) startReader() {
	p.lines = make(chan scanned)
	go func() {
		defer close(p.lines)
		sc := bufio.NewScanner(p.in)
		for sc.Scan() {
			p.lines <- scanned{text: sc.Text()}
		}
		err := io.EOF
		if sc.Err() != nil {
			err = fmt.Errorf("cli.Prompter: read input: %w", sc.Err())
		}
		p.lines <- scanned{err: err}
	}()
}
