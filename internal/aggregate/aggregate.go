// Package aggregate builds the picker list model: media items grouped under
// date-section headers, newest first, with pre-selected items flagged.
package aggregate

import (
	"strconv"

	"github.com/bagtoad/pix/internal/dateclass"
	"github.com/bagtoad/pix/internal/locale"
	"github.com/bagtoad/pix/internal/media"
)

// Entry is one row of the list model: either a section header or a media item.
type Entry struct {
	Header      bool       `json:"header"`
	HeaderDate  string     `json:"header_date"`
	Locator     string     `json:"locator,omitempty"`
	SequenceKey string     `json:"sequence_key,omitempty"`
	Kind        media.Kind `json:"kind"`
	Position    int        `json:"position"`
	Selected    bool       `json:"selected"`
}

// IsHeader reports whether e is a section header row.
func (e Entry) IsHeader() bool {
	return e.Header
}

// Result holds the flattened display list and the pre-selected items in the
// order they were encountered.
type Result struct {
	FullList []Entry `json:"list"`
	Selected []Entry `json:"selection"`
}

// Items returns the item rows of FullList, without headers.
func (r Result) Items() []Entry {
	items := make([]Entry, 0, len(r.FullList))
	for _, e := range r.FullList {
		if !e.IsHeader() {
			items = append(items, e)
		}
	}
	return items
}

// Sections returns the header labels in display order.
func (r Result) Sections() []string {
	var labels []string
	for _, e := range r.FullList {
		if e.IsHeader() {
			labels = append(labels, e.HeaderDate)
		}
	}
	return labels
}

// Options configures date classification for Aggregate.
type Options struct {
	Boundaries dateclass.Boundaries
	Labels     dateclass.Resolver
}

// fold is the per-call accumulator. It never outlives Aggregate.
type fold struct {
	opts     Options
	list     []Entry
	selected []Entry
	emitted  map[string]bool
	headers  map[string]bool
	current  string
	items    int
	picked   map[string]bool
}

// Aggregate filters entries by mode and emits them, in input order, under
// date headers. entries must already be sorted newest first. A descriptor's
// Kind decides the mode filter; the extension is used only when Kind is
// Unknown. A missing Locator is derived from Path, and descriptors with
// neither are dropped. Repeated locators are emitted once. Items whose locator is in preselected are
// marked selected and copied to Result.Selected.
func Aggregate(entries []media.Descriptor, mode media.Mode, preselected []string, opts Options) Result {
	f := &fold{
		opts:    opts,
		list:    []Entry{},
		emitted: make(map[string]bool, len(entries)),
		headers: make(map[string]bool),
		picked:  make(map[string]bool, len(preselected)),
	}
	f.selected = []Entry{}
	if f.opts.Labels == nil {
		f.opts.Labels = locale.English
	}
	for _, loc := range preselected {
		f.picked[loc] = true
	}

	for _, d := range entries {
		kind, ok := d.ResolvedKind()
		if !ok || !mode.AllowsKind(kind) {
			continue
		}
		d.Kind = kind
		if d.Locator = d.ResolvedLocator(); d.Locator == "" {
			continue
		}
		f.step(d)
	}

	return Result{FullList: f.list, Selected: f.selected}
}

func (f *fold) step(d media.Descriptor) {
	if f.emitted[d.Locator] {
		return
	}

	label := f.opts.Boundaries.Classify(d.ModTime).Format(f.opts.Labels)
	if label != f.current {
		f.current = label
		if !f.headers[label] {
			f.headers[label] = true
			f.list = append(f.list, Entry{
				Header:     true,
				HeaderDate: label,
				Kind:       d.Kind,
				Position:   -1,
			})
		}
	}

	item := Entry{
		HeaderDate:  f.current,
		Locator:     d.Locator,
		SequenceKey: strconv.Itoa(f.items),
		Kind:        d.Kind,
		Position:    len(f.list),
	}
	if f.picked[d.Locator] {
		item.Selected = true
		f.selected = append(f.selected, item)
	}
	f.list = append(f.list, item)
	f.items++
	f.emitted[d.Locator] = true
}
