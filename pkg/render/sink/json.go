package sink

import (
	"encoding/json"

	"github.com/matzehuels/orchard/pkg/layout"
)

// JSONOption configures [JSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	scene string
	unit  float64
}

// WithScene records the scene name in the output.
func WithScene(name string) JSONOption { return func(r *jsonRenderer) { r.scene = name } }

// WithUnit records the pixels-per-unit factor so consumers can convert.
func WithUnit(px float64) JSONOption { return func(r *jsonRenderer) { r.unit = px } }

type jsonOutput struct {
	Scene      string          `json:"scene,omitempty"`
	Unit       float64         `json:"unit,omitempty"`
	Width      float64         `json:"width"`
	Height     float64         `json:"height"`
	Slots      []jsonSlot      `json:"slots"`
	Connectors []jsonConnector `json:"connectors"`
}

type jsonSlot struct {
	Name     string          `json:"name"`
	Side     string          `json:"side"`
	Scale    float64         `json:"scale"`
	Label    string          `json:"label,omitempty"`
	X        float64         `json:"x"`
	Y        float64         `json:"y"`
	FontSize float64         `json:"font_size"`
	Entries  [2]layout.Entry `json:"entries"`
	Boxes    [2]jsonRect     `json:"boxes"`
	Values   [2]jsonRect     `json:"values"`
	LabelBox *jsonRect       `json:"label_box,omitempty"`
	Exit     jsonPoint       `json:"exit"`
}

type jsonRect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type jsonPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type jsonConnector struct {
	From   string      `json:"from"`
	To     string      `json:"to"`
	Points []jsonPoint `json:"points"`
}

// JSON exports the resolved geometry as pretty-printed JSON. Coordinates are
// figure units, y axis up.
func JSON(l *layout.Layout, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Scene:      r.scene,
		Unit:       r.unit,
		Width:      l.Width,
		Height:     l.Height,
		Slots:      make([]jsonSlot, 0, len(l.Slots)),
		Connectors: make([]jsonConnector, 0, len(l.Connectors)),
	}
	for _, g := range l.Slots {
		s := jsonSlot{
			Name:     g.Name,
			Side:     g.Side.String(),
			Scale:    g.Scale,
			Label:    g.Label,
			X:        g.Anchor.X,
			Y:        g.Anchor.Y,
			FontSize: g.FontSize,
			Entries:  g.Entries,
			Boxes:    [2]jsonRect{toJSONRect(g.Boxes[0]), toJSONRect(g.Boxes[1])},
			Values:   [2]jsonRect{toJSONRect(g.Values[0]), toJSONRect(g.Values[1])},
			Exit:     jsonPoint{g.Exit.X, g.Exit.Y},
		}
		if g.HasLabel {
			lb := toJSONRect(g.LabelBox)
			s.LabelBox = &lb
		}
		out.Slots = append(out.Slots, s)
	}
	for _, c := range l.Connectors {
		jc := jsonConnector{From: c.From, To: c.To, Points: make([]jsonPoint, len(c.Path))}
		for i, p := range c.Path {
			jc.Points[i] = jsonPoint{p.X, p.Y}
		}
		out.Connectors = append(out.Connectors, jc)
	}
	return json.MarshalIndent(out, "", "  ")
}

func toJSONRect(r layout.Rect) jsonRect {
	return jsonRect{X: r.Left, Y: r.Bottom, Width: r.Width(), Height: r.Height()}
}
