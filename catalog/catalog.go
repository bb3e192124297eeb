// SPDX-License-Identifier: Apache-2.0

// Package catalog keeps an ordered registry of test units and runs them.
//
// A Catalog is an ordinary value owned by its creator: there is no hidden
// process-wide registry, so tests can build isolated catalogs and control the
// order in which units run. Units are stored in a containers.Bounded, which
// gives every catalog a hard registration ceiling.
package catalog

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"regexp"
	"slices"
	"time"

	"github.com/cockroachdb/errors"

	containers "github.com/wundergraph/go-containers"
)

// Func is the body of a test unit. Returning an error or panicking fails the unit.
type Func func(ctx context.Context) error

// Unit is a named test unit.
type Unit struct {
	Name string
	Fn   Func
}

// Catalog is an ordered, capacity-bounded registry of test units.
type Catalog struct {
	cfg    Config
	units  *containers.Bounded[Unit]
	logger *slog.Logger
	lock   *containers.CriticalSection
	pool   *containers.BufferPool
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithLogger sets the logger used by Run. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(c *Catalog) {
		c.logger = l
	}
}

// WithLock makes every Catalog method safe to call from several goroutines.
// A run holds the lock, so units must not call back into their catalog.
func WithLock() Option {
	return func(c *Catalog) {
		c.lock = &containers.CriticalSection{}
	}
}

// New creates an empty catalog.
func New(cfg Config, opts ...Option) (*Catalog, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "catalog config")
	}
	c := &Catalog{
		cfg:    cfg,
		units:  containers.NewBounded[Unit](cfg.Capacity),
		logger: slog.New(slog.DiscardHandler),
		pool:   containers.NewBufferPool(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Catalog) guard(fn func()) {
	if c.lock == nil {
		fn()
		return
	}
	c.lock.Do(fn)
}

// Register appends a unit. Registration past the capacity fails with an
// error wrapping containers.ErrFull and leaves the catalog unchanged.
func (c *Catalog) Register(name string, fn Func) error {
	if fn == nil {
		return errors.Newf("unit %q has no body", name)
	}
	var err error
	c.guard(func() {
		err = c.units.Append(Unit{Name: name, Fn: fn})
	})
	if err != nil {
		return errors.Wrapf(err, "registering unit %q", name)
	}
	return nil
}

// MustRegister is Register for init-time registration; it panics on failure.
func (c *Catalog) MustRegister(name string, fn Func) {
	if err := c.Register(name, fn); err != nil {
		panic(err)
	}
}

// Len returns the number of registered units.
func (c *Catalog) Len() int {
	var n int
	c.guard(func() { n = c.units.Len() })
	return n
}

// Cap returns the registration ceiling.
func (c *Catalog) Cap() int {
	return c.units.Cap()
}

// Units iterates over the units registered when it is called, in
// registration order. Later registrations are not visited.
func (c *Catalog) Units() iter.Seq[Unit] {
	var snapshot []Unit
	c.guard(func() { snapshot = slices.Clone(c.units.Data()) })
	return slices.Values(snapshot)
}

// Run executes every unit in registration order.
func (c *Catalog) Run(ctx context.Context) *Report {
	return c.run(ctx, nil)
}

// RunMatching executes the units whose name matches pattern.
func (c *Catalog) RunMatching(ctx context.Context, pattern *regexp.Regexp) *Report {
	return c.run(ctx, pattern.MatchString)
}

func (c *Catalog) run(ctx context.Context, match func(string) bool) *Report {
	report := newReport()
	c.guard(func() {
		c.logger.Info("Starting test units", "units", c.units.Len(), "capacity", c.units.Cap())
		start := time.Now()
		for i, u := range c.units.All() {
			if match != nil && !match(u.Name) {
				continue
			}
			if err := ctx.Err(); err != nil {
				report.add(Result{Index: i, Name: u.Name, Skipped: true})
				report.Canceled = err
				continue
			}
			res := c.runUnit(ctx, i, u)
			report.add(res)
			if res.Err != nil && c.cfg.FailFast {
				c.logger.Warn("Stopping after first failure", "unit", u.Name)
				break
			}
		}
		report.Elapsed = time.Since(start)
		c.logger.Info("All tests done",
			"passed", report.Passed, "failed", report.Failed, "skipped", report.Skipped,
			"elapsed", c.formatDuration(report.Elapsed))
	})
	return report
}

func (c *Catalog) runUnit(ctx context.Context, index int, u Unit) (res Result) {
	res = Result{Index: index, Name: u.Name}
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			res.Err = panicError(u.Name, r)
		}
		res.Duration = time.Since(start)
		res.Violation = res.Err != nil && errors.HasAssertionFailure(res.Err)
		c.logUnit(res)
	}()
	if err := u.Fn(ctx); err != nil {
		res.Err = errors.Wrapf(err, "unit %q", u.Name)
	}
	return res
}

func panicError(name string, r any) error {
	if err, ok := r.(error); ok {
		return errors.Wrapf(err, "unit %q panicked", name)
	}
	return errors.Newf("unit %q panicked: %s", name, fmt.Sprint(r))
}

func (c *Catalog) logUnit(res Result) {
	took := c.formatDuration(res.Duration)
	if res.Err != nil {
		c.logger.Error("Test unit failed", "index", res.Index, "unit", res.Name, "took", took, "violation", res.Violation, "err", res.Err)
		return
	}
	c.logger.Info("Test unit done", "index", res.Index, "unit", res.Name, "took", took)
}

func (c *Catalog) formatDuration(d time.Duration) string {
	u := c.cfg.Unit()
	item := c.pool.Acquire(uint64(u))
	defer c.pool.Release(item)
	FormatDuration(item.Buffer, d, u)
	return item.Buffer.String()
}
