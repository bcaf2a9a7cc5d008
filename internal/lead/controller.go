package lead

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/rootwave/site/internal/whatsapp"
	"github.com/samber/lo"
	"golang.org/x/sync/semaphore"
)

var (
	// ErrInvalidForm is returned by Submit when a required field fails validation.
	ErrInvalidForm = errors.New("form is not valid")

	// ErrSubmissionInFlight is returned by Submit while another submission runs.
	ErrSubmissionInFlight = errors.New("submission already in progress")
)

// Dispatcher opens a deep link in a new browsing context. Open must not block
// on network I/O; nothing is returned to the caller.
type Dispatcher interface {
	Open(url string)
}

// Deliverer sends a record to the remote collection endpoint exactly once.
type Deliverer interface {
	Deliver(ctx context.Context, rec Record) error
}

// FallbackWriter stores the CSV backup of a record. A non-nil error means the
// backup was not applied.
type FallbackWriter interface {
	Write(name string, data []byte) error
}

// Notifier shows a short notice to the visitor.
type Notifier interface {
	Notify(t Toast)
}

// Toast is a human-readable notice.
type Toast struct {
	Title       string
	Description string
	Destructive bool
}

// StatusCoder is implemented by delivery errors caused by a non-2xx response.
type StatusCoder interface {
	StatusCode() int
}

// Deps wires the controller to its collaborators. Dispatcher is required.
// A nil Deliverer skips the remote attempt, which then counts as failed.
type Deps struct {
	Dispatcher Dispatcher
	Deliverer  Deliverer
	Fallback   FallbackWriter
	Notifier   Notifier
	Now        func() time.Time
}

// Result describes a finished submission.
type Result struct {
	Status       Status
	DeepLink     string
	Record       Record
	Delivered    bool
	FallbackName string // set when the CSV fallback was attempted
	FallbackCSV  []byte
}

// Controller owns the state of one lead form and runs its submissions.
type Controller struct {
	variant  Variant
	settings Settings
	deps     Deps
	inFlight *semaphore.Weighted

	mu         sync.Mutex
	form       Form
	status     Status
	submitting bool
}

// NewController returns a controller with an empty form in the idle state.
func NewController(variant Variant, settings Settings, deps Deps) (*Controller, error) {
	if len(variant.Fields) == 0 {
		return nil, errors.New("variant has no fields")
	}
	if deps.Dispatcher == nil {
		return nil, errors.New("deep link dispatcher is required")
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Controller{
		variant:  variant,
		settings: settings,
		deps:     deps,
		inFlight: semaphore.NewWeighted(1),
		form:     NewForm(),
		status:   StatusIdle,
	}, nil
}

// Variant returns the field set the controller collects.
func (c *Controller) Variant() Variant {
	return c.variant
}

// Form returns a copy of the current form values.
func (c *Controller) Form() Form {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form.clone()
}

// Status returns the outcome of the last submission.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Submitting reports whether a submission is in flight.
func (c *Controller) Submitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitting
}

// Valid reports whether the current form may be submitted.
func (c *Controller) Valid() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Validate(c.form, c.variant)
}

// UpdateField replaces one scalar field. Unknown fields are ignored. Any edit
// re-arms the form by resetting the status to idle.
func (c *Controller) UpdateField(field Field, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.form.set(field, value) {
		slog.Debug("ignoring unknown form field", "field", field)
		return
	}
	c.rearm()
}

// SetStrawSizes replaces the size set. Unknown sizes are dropped.
func (c *Controller) SetStrawSizes(sizes []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form.StrawSizes = lo.Uniq(lo.Filter(sizes, func(s string, _ int) bool {
		return lo.Contains(Sizes, s)
	}))
	c.rearm()
}

// ToggleStrawSize adds size to the size set, or removes it when present.
func (c *Controller) ToggleStrawSize(size string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form.StrawSizes = toggleStrawSize(c.form.StrawSizes, size)
	c.rearm()
}

func (c *Controller) rearm() {
	if c.status != StatusIdle {
		c.status = StatusIdle
	}
}

// Submit opens the WhatsApp deep link, delivers the record to the webhook and
// falls back to a CSV backup when delivery fails. Only ErrInvalidForm and
// ErrSubmissionInFlight are returned; delivery failures are reported through
// the result status.
func (c *Controller) Submit(ctx context.Context) (Result, error) {
	done, err := c.Begin(ctx)
	if err != nil {
		return Result{}, err
	}
	return <-done, nil
}

// Begin validates the form and opens the WhatsApp deep link before it
// returns. Delivery and the CSV fallback continue in the background; the
// returned channel yields the result once and is then closed. While it runs,
// Submitting reports true and further submissions fail with
// ErrSubmissionInFlight.
func (c *Controller) Begin(ctx context.Context) (<-chan Result, error) {
	if !c.inFlight.TryAcquire(1) {
		return nil, ErrSubmissionInFlight
	}

	c.mu.Lock()
	if !Validate(c.form, c.variant) {
		c.mu.Unlock()
		c.inFlight.Release(1)
		return nil, ErrInvalidForm
	}
	form := c.form.clone()
	c.submitting = true
	c.status = StatusIdle
	c.mu.Unlock()

	link := whatsapp.Link(c.settings.WhatsAppNumber, FormatMessage(form, c.variant, c.settings))
	c.deps.Dispatcher.Open(link)

	done := make(chan Result, 1)
	go func() {
		defer close(done)
		defer c.inFlight.Release(1)
		done <- c.complete(ctx, form, link)
	}()
	return done, nil
}

// complete runs delivery and the fallback for a dispatched submission and
// resolves its status.
func (c *Controller) complete(ctx context.Context, form Form, link string) Result {
	now := c.deps.Now()
	rec := NewRecord(form, c.variant, c.settings, now)
	res := Result{DeepLink: link, Record: rec}

	res.Delivered = c.deliver(ctx, rec)
	applied := false
	if !res.Delivered {
		res.FallbackName = FallbackFilename(c.settings.Brand, now)
		res.FallbackCSV = rec.CSV()
		applied = c.writeFallback(res.FallbackName, res.FallbackCSV)
	}

	switch {
	case res.Delivered:
		res.Status = StatusSuccess
	case applied:
		res.Status = StatusFallback
	default:
		res.Status = StatusError
	}

	c.mu.Lock()
	c.status = res.Status
	if res.Status.Cleared() {
		c.form = NewForm()
	}
	c.submitting = false
	c.mu.Unlock()

	slog.Info("lead submitted",
		"variant", c.variant.Name,
		"status", res.Status,
		"delivered", res.Delivered,
	)
	return res
}

func (c *Controller) deliver(ctx context.Context, rec Record) bool {
	if c.deps.Deliverer == nil {
		return false
	}
	err := c.deps.Deliverer.Deliver(ctx, rec)
	if err == nil {
		c.notify(Toast{
			Title:       "Success!",
			Description: "Your sample request has been submitted successfully.",
		})
		return true
	}

	var sc StatusCoder
	if errors.As(err, &sc) {
		slog.Error("webhook rejected lead", "status_code", sc.StatusCode(), "error", err)
		c.notify(Toast{
			Title:       "Partial Success",
			Description: "Request sent via WhatsApp, but data recording had issues.",
			Destructive: true,
		})
		return false
	}
	slog.Error("webhook delivery failed", "error", err)
	c.notify(Toast{
		Title:       "WhatsApp Opened",
		Description: "Please complete your request via WhatsApp.",
	})
	return false
}

func (c *Controller) writeFallback(name string, data []byte) bool {
	if c.deps.Fallback == nil {
		slog.Warn("no csv fallback available", "file", name)
		return false
	}
	if err := c.deps.Fallback.Write(name, data); err != nil {
		slog.Error("csv fallback failed", "file", name, "error", err)
		return false
	}
	return true
}

func (c *Controller) notify(t Toast) {
	if c.deps.Notifier != nil {
		c.deps.Notifier.Notify(t)
	}
}
