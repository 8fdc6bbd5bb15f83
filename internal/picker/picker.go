// Package picker produces the date-grouped, selectable media list shown in
// the picker grid.
package picker

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/bagtoad/pix/internal/aggregate"
	"github.com/bagtoad/pix/internal/dateclass"
	"github.com/bagtoad/pix/internal/locale"
	"github.com/bagtoad/pix/internal/media"
	"github.com/bagtoad/pix/internal/scanner"
)

// Manager ties a media source to label strings, a clock and the caller's
// current selection.
type Manager struct {
	source      scanner.Source
	labels      dateclass.Resolver
	now         func() time.Time
	preselected []string
}

// Option configures a Manager.
type Option func(*Manager)

// WithLabels sets the label strings. The default is locale.English.
func WithLabels(r dateclass.Resolver) Option {
	return func(m *Manager) { m.labels = r }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithPreselected marks locators (or file paths) as already selected.
func WithPreselected(locators ...string) Option {
	return func(m *Manager) { m.SetPreselected(locators) }
}

// New returns a Manager reading from src.
func New(src scanner.Source, opts ...Option) *Manager {
	m := &Manager{
		source: src,
		labels: locale.English,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetPreselected replaces the pre-selection set. Plain paths are converted to
// file:// locators.
func (m *Manager) SetPreselected(locators []string) {
	m.preselected = make([]string, len(locators))
	for i, l := range locators {
		m.preselected[i] = media.NormalizeLocator(l)
	}
}

// Retrieve lists media for mode and groups it under date headers.
func (m *Manager) Retrieve(ctx context.Context, mode media.Mode) (aggregate.Result, error) {
	entries, err := m.source.List(ctx, mode)
	if err != nil {
		return aggregate.Result{}, fmt.Errorf("list media: %w", err)
	}

	result := aggregate.Aggregate(entries, mode, m.preselected, aggregate.Options{
		Boundaries: dateclass.BoundariesAt(m.now()),
		Labels:     m.labels,
	})
	log.Printf("Retrieved %d %s entries in %d sections (%d selected)",
		len(result.Items()), mode, len(result.Sections()), len(result.Selected))
	return result, nil
}
