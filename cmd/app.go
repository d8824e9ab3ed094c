package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/Tiliavir/diary/internal/aggregate"
	"github.com/Tiliavir/diary/internal/config"
	"github.com/Tiliavir/diary/internal/diary"
	"github.com/Tiliavir/diary/internal/i18n"
	"github.com/Tiliavir/diary/internal/imaging"
	"github.com/Tiliavir/diary/internal/log"
	"github.com/Tiliavir/diary/internal/model"
	"github.com/Tiliavir/diary/internal/storage"
)

// app is everything a command needs, wired from the config.
type app struct {
	cfg     config.Config
	logger  *log.Logger
	printer *i18n.Printer
	backend storage.Backend
	ctrl    *diary.Controller
}

// openApp loads config and the entry store. Config problems exit 1,
// storage problems exit 2.
func openApp(ctx context.Context, now time.Time) *app {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if langFlag != "" {
		cfg.Display.Language = langFlag
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	level, _ := log.ParseLevel(cfg.Log.Level)
	lc := log.DefaultConfig()
	lc.Level = level
	logger := log.New(lc)
	log.SetDefault(logger)

	backend, err := storage.Open(cfg, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	store, err := diary.Open(ctx, backend, logger)
	if err != nil {
		_ = backend.Close()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	period, _ := aggregate.ParsePeriod(cfg.Display.ChartPeriod, now)
	p := i18n.New(cfg.Display.Language)
	resizer := imaging.Resizer{MaxWidth: cfg.Images.MaxWidth, Quality: cfg.Images.Quality}

	return &app{
		cfg:     cfg,
		logger:  logger,
		printer: p,
		backend: backend,
		ctrl:    diary.NewController(store, diary.NewState(now, period), resizer, p, logger),
	}
}

func (a *app) close() {
	if err := a.backend.Close(); err != nil {
		a.logger.Warn("closing storage", "error", err)
	}
}

// fail prints err as a notice and exits with exitCode(err).
func (a *app) fail(err error) {
	fmt.Fprintln(os.Stderr, a.ctrl.Notice(err))
	a.close()
	os.Exit(exitCode(err))
}

// exitCode is 1 for problems with the user's input and 2 for everything
// else, which in practice means storage.
func exitCode(err error) int {
	switch {
	case errors.Is(err, model.ErrMissingDate),
		errors.Is(err, model.ErrMissingTitle),
		errors.Is(err, diary.ErrSubmitInProgress),
		errors.Is(err, diary.ErrImportNotArray),
		errors.Is(err, diary.ErrImportInvalid),
		errors.Is(err, diary.ErrNotFound),
		errors.Is(err, diary.ErrPhotoResize):
		return 1
	}
	return 2
}

// splitList splits a comma-separated flag value, dropping blanks.
func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// confirm asks a yes/no question on out and reads the answer from in.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)
	answer, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

// createOutput returns stdout for "" or "-", otherwise a new file.
func createOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
