package layout

import (
	"errors"
	"fmt"
)

// ErrUnknownSlot is returned when a link names a slot missing from the plan.
var ErrUnknownSlot = errors.New("unknown slot")

// Link joins the exit of slot From to slot To.
//
// When Elbow is set the connector bends at Mid, or at the start point plus
// the plan's stub length when Mid is nil.
type Link struct {
	From  string
	To    string
	Elbow bool
	Mid   *float64
}

// Plan is the unresolved description of a graphic.
type Plan struct {
	Width   float64 // figure width in units
	Height  float64 // figure height in units
	Metrics Metrics
	Insets  Insets
	Slots   []Slot
	Links   []Link
}

// Connector is a routed link.
type Connector struct {
	From string `json:"from"`
	To   string `json:"to"`
	Path Path   `json:"path"`
}

// Layout is a resolved plan.
type Layout struct {
	Width      float64
	Height     float64
	Slots      []Geometry
	Connectors []Connector

	index map[string]int
}

// Slot returns the geometry of the named slot.
func (l *Layout) Slot(name string) (Geometry, bool) {
	i, ok := l.index[name]
	if !ok {
		return Geometry{}, false
	}
	return l.Slots[i], true
}

// Names returns slot names in plan order.
func (l *Layout) Names() []string {
	names := make([]string, len(l.Slots))
	for i, g := range l.Slots {
		names[i] = g.Name
	}
	return names
}

// Resolve measures every slot, then routes every link from the finished
// geometry table. A zero Metrics value means [DefaultMetrics].
func (p Plan) Resolve() (*Layout, error) {
	m := p.Metrics
	if m == (Metrics{}) {
		m = DefaultMetrics
	}

	l := &Layout{
		Width:  p.Width,
		Height: p.Height,
		Slots:  make([]Geometry, 0, len(p.Slots)),
		index:  make(map[string]int, len(p.Slots)),
	}
	for _, s := range p.Slots {
		if _, dup := l.index[s.Name]; dup {
			return nil, fmt.Errorf("duplicate slot %q", s.Name)
		}
		l.index[s.Name] = len(l.Slots)
		l.Slots = append(l.Slots, m.Measure(s))
	}

	l.Connectors = make([]Connector, 0, len(p.Links))
	for _, ln := range p.Links {
		from, ok := l.Slot(ln.From)
		if !ok {
			return nil, fmt.Errorf("link %s -> %s: %w %q", ln.From, ln.To, ErrUnknownSlot, ln.From)
		}
		to, ok := l.Slot(ln.To)
		if !ok {
			return nil, fmt.Errorf("link %s -> %s: %w %q", ln.From, ln.To, ErrUnknownSlot, ln.To)
		}
		var mid *float64
		if ln.Elbow {
			mid = ln.Mid
			if mid == nil {
				x := from.Exit.X + p.Insets.Start + p.Insets.Stub
				mid = &x
			}
		}
		l.Connectors = append(l.Connectors, Connector{
			From: ln.From,
			To:   ln.To,
			Path: Route(from.Exit, to.Exit, mid, p.Insets),
		})
	}
	return l, nil
}
