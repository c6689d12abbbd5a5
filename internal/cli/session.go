package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/bikeshare/internal/domain"
)

// Explorer is the slice of the service layer the terminal session needs.
type Explorer interface {
	Explore(ctx context.Context, spec domain.FilterSpec) (domain.Report, error)
}

// Session runs rounds of prompt, compute, print until the user declines to
// restart or the input ends.
type Session struct {
	explore Explorer
	prompt  *Prompter
	out     io.Writer
	log     *slog.Logger
}

// NewSession wires a Session reading answers from in and printing to out.
// Diagnostics go to log, which should not share a stream with out.
func NewSession(explore Explorer, in io.Reader, out io.Writer, log *slog.Logger) *Session {
	return &Session{
		explore: explore,
		prompt:  NewPrompter(in, out),
		out:     out,
		log:     log,
	}
}

// Run loops until the user answers anything but "yes" to the restart
// question, the input ends, or ctx is canceled. A failed round is reported to
// the user and does not end the program.
func (s *Session) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		log := s.log.With("session_id", uuid.NewString())

		spec, err := s.prompt.Filter(ctx)
		if errors.Is(err, io.EOF) {
			log.Debug("input closed")
			return nil
		}
		if err != nil {
			return fmt.Errorf("cli.Session.Run: %w", err)
		}

		if err := s.round(ctx, log, spec); err != nil {
			return fmt.Errorf("cli.Session.Run: %w", err)
		}

		again, err := s.prompt.Restart(ctx)
		if err != nil {
			return fmt.Errorf("cli.Session.Run: %w", err)
		}
		if !again {
			return nil
		}
	}
}

// round computes and prints one report. It returns only ctx.Err(): any other
// failure is shown to the user and the session goes on.
func (s *Session) round(ctx context.Context, log *slog.Logger, spec domain.FilterSpec) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	log.InfoContext(ctx, "computing statistics",
		"city", string(spec.City),
		"month", spec.Month.String(),
		"day", spec.Day.String(),
	)

	start := time.Now()
	rep, err := s.explore.Explore(ctx, spec)
	elapsed := time.Since(start)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		log.ErrorContext(ctx, "statistics failed", "error", err)
		fmt.Fprintln(s.out, describe(spec, err))
		fmt.Fprintln(s.out, sectionRule)
		return nil
	}

	log.InfoContext(ctx, "statistics computed",
		"records", rep.Records,
		"duration_ms", elapsed.Milliseconds(),
	)
	WriteReport(s.out, rep, elapsed)
	return nil
}

// describe turns a failed round into a message for the user.
func describe(spec domain.FilterSpec, err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyResultSet):
		return fmt.Sprintf("\nNo trips in %s match month %q and day %q.", spec.City.Title(), spec.Month, spec.Day)
	case errors.Is(err, domain.ErrUnknownCity):
		return fmt.Sprintf("\nNo data is available for %s.", spec.City.Title())
	case errors.Is(err, domain.ErrMalformedRecord):
		return fmt.Sprintf("\nThe data for %s could not be read: %v", spec.City.Title(), err)
	default:
		return fmt.Sprintf("\nSomething went wrong: %v", err)
	}
}
