package diary

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Tiliavir/diary/internal/aggregate"
	"github.com/Tiliavir/diary/internal/calendar"
	"github.com/Tiliavir/diary/internal/chart"
	"github.com/Tiliavir/diary/internal/filter"
	"github.com/Tiliavir/diary/internal/i18n"
	"github.com/Tiliavir/diary/internal/log"
	"github.com/Tiliavir/diary/internal/model"
	"github.com/Tiliavir/diary/internal/report"
	"github.com/Tiliavir/diary/internal/timecalc"
)

var (
	// ErrSubmitInProgress rejects a submission while another one is still
	// resizing its photos.
	ErrSubmitInProgress = errors.New("a submission is already in progress")
	// ErrImportNotArray rejects import documents whose top-level value is
	// not a JSON array.
	ErrImportNotArray = errors.New("import document is not a JSON array")
	// ErrImportInvalid rejects import documents that do not parse.
	ErrImportInvalid = errors.New("import document is not valid JSON")
	// ErrPhotoResize wraps the first failed photo of a submission.
	ErrPhotoResize = errors.New("resizing photos")
)

// Resizer turns a photo file into a stored photo.
type Resizer interface {
	Resize(ctx context.Context, path string) (model.Photo, error)
}

// Submission is a form submission: the entry fields plus photo files still
// to be resized.
type Submission struct {
	Entry      model.Entry
	PhotoPaths []string
}

// View is one pass of the render pipeline.
type View struct {
	State     State
	List      []model.Entry
	ListHours float64
	// Totals is the localized list footer, e.g. "3 entries · 7.5 h".
	Totals   string
	Series   aggregate.Series
	Calendar calendar.Month
}

// Controller ties the Store to the current State and renders views.
type Controller struct {
	store      *Store
	state      State
	resizer    Resizer
	printer    *i18n.Printer
	logger     *log.Logger
	submitting atomic.Bool
}

// NewController returns a controller starting at state.
func NewController(store *Store, state State, resizer Resizer, p *i18n.Printer, logger *log.Logger) *Controller {
	if p == nil {
		p = i18n.New("")
	}
	if logger == nil {
		logger = log.Discard()
	}
	return &Controller{
		store:   store,
		state:   state,
		resizer: resizer,
		printer: p,
		logger:  logger.WithComponent("controller"),
	}
}

func (c *Controller) Store() *Store { return c.store }
func (c *Controller) State() State { return c.state }
func (c *Controller) SetState(s State) { c.state = s }
func (c *Controller) Printer() *i18n.Printer { return c.printer }

// Submit validates the entry, resizes all photos as a group and stores the
// result. Nothing is stored unless every photo resized. When photos are
// supplied they replace the entry's existing ones.
func (c *Controller) Submit(ctx context.Context, sub Submission) (model.Entry, error) {
	if !c.submitting.CompareAndSwap(false, true) {
		return model.Entry{}, ErrSubmitInProgress
	}
	defer c.submitting.Store(false)

	e := sub.Entry
	e.Normalize()
	if err := e.Validate(); err != nil {
		return model.Entry{}, err
	}

	if len(sub.PhotoPaths) > 0 {
		if c.resizer == nil {
			return model.Entry{}, errors.New("no photo resizer configured")
		}
		photos := make([]model.Photo, len(sub.PhotoPaths))
		g, gctx := errgroup.WithContext(ctx)
		for i, path := range sub.PhotoPaths {
			i, path := i, path
			g.Go(func() error {
				p, err := c.resizer.Resize(gctx, path)
				if err != nil {
					return err
				}
				photos[i] = p
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			c.logger.WarnContext(ctx, "photo resize failed", "error", err)
			return model.Entry{}, fmt.Errorf("%w: %w", ErrPhotoResize, err)
		}
		e.Photos = photos
	}

	saved, err := c.store.Upsert(ctx, e)
	if err != nil {
		return model.Entry{}, err
	}
	c.logger.InfoContext(ctx, "entry saved", "id", saved.ID, "date", saved.Date, "photos", len(saved.Photos))
	return saved, nil
}

// Render runs filter, list totals, aggregation and the calendar over the
// current state. It reads but never mutates the store.
func (c *Controller) Render(now time.Time) View {
	entries := c.store.All()
	s := c.state

	list := filter.Apply(entries, s.Filter)
	hours := filter.TotalHours(list)
	return View{
		State:     s,
		List:      list,
		ListHours: hours,
		Totals:    c.printer.Sprintf(i18n.KeyListTotals, len(list), timecalc.FormatHoursFixed(hours)),
		Series:    aggregate.Build(list, s.Period),
		Calendar: calendar.Build(s.Year, s.Month, entries, calendar.Options{
			Now:     now,
			Primary: true,
			Printer: c.printer,
		}),
	}
}

// WriteChart draws v's series as an SVG of the given size.
func (c *Controller) WriteChart(w io.Writer, v View, width, height int) error {
	svg := chart.NewSVG(float64(width), float64(height))
	chart.Render(svg, v.Series, chart.Options{Printer: c.printer})
	if _, err := svg.WriteTo(w); err != nil {
		return fmt.Errorf("writing chart: %w", err)
	}
	return nil
}

// Report summarises year/month over the whole collection.
func (c *Controller) Report(year int, month time.Month) report.Report {
	return report.Generate(year, month, c.store.All())
}

// Export writes the whole collection as an indented JSON array.
func (c *Controller) Export(w io.Writer) error {
	entries := c.store.All()
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding export: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	return nil
}

// Import replaces the collection with the JSON array read from r. Any
// other document is rejected and the collection is left untouched.
func (c *Controller) Import(ctx context.Context, r io.Reader) (int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("reading import: %w", err)
	}
	trimmed := bytes.TrimSpace(data)
	if !json.Valid(trimmed) {
		return 0, ErrImportInvalid
	}
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return 0, ErrImportNotArray
	}
	var entries []model.Entry
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrImportInvalid, err)
	}
	if err := c.store.Replace(ctx, entries); err != nil {
		return 0, err
	}
	c.logger.InfoContext(ctx, "entries imported", "count", len(entries))
	return len(entries), nil
}

// Notice returns the localized user-facing message for err, or "" for nil.
func (c *Controller) Notice(err error) string {
	return Notice(c.printer, err)
}

// Notice maps an operation error to its localized notice. Errors without a
// notice of their own are shown as is.
func Notice(p *i18n.Printer, err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, model.ErrMissingDate), errors.Is(err, model.ErrMissingTitle):
		return p.Sprintf(i18n.KeyNoticeRequired)
	case errors.Is(err, ErrSubmitInProgress):
		return p.Sprintf(i18n.KeyNoticeBusy)
	case errors.Is(err, ErrImportNotArray), errors.Is(err, ErrImportInvalid):
		return p.Sprintf(i18n.KeyNoticeInvalid)
	}
	return err.Error()
}
