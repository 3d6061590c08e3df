package sink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/orchard/pkg/layout"
)

// DOTOption configures [DOT].
type DOTOption func(*dotRenderer)

type dotRenderer struct {
	detailed bool
	colors   map[layout.Side]string
}

// WithDetailed adds entry names and values to node labels.
func WithDetailed() DOTOption { return func(r *dotRenderer) { r.detailed = true } }

// WithSideColors sets node fill colours per bracket side (hex strings).
func WithSideColors(winners, losers string) DOTOption {
	return func(r *dotRenderer) {
		r.colors = map[layout.Side]string{layout.Winners: winners, layout.Losers: losers}
	}
}

// DOT converts a resolved layout to Graphviz DOT source. Slots become nodes
// pinned at their figure coordinates, connectors become edges.
func DOT(l *layout.Layout, opts ...DOTOption) string {
	r := dotRenderer{colors: map[layout.Side]string{layout.Winners: "#FFCC66", layout.Losers: "#FFB84D"}}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	buf.WriteString("digraph Bracket {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for _, g := range l.Slots {
		attrs := []string{
			fmt.Sprintf("label=%q", nodeLabel(g, r.detailed)),
			fmt.Sprintf("fillcolor=%q", r.colors[g.Side]),
			fmt.Sprintf("pos=\"%.2f,%.2f!\"", g.Anchor.X, g.Anchor.Y),
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", g.Name, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, c := range l.Connectors {
		fmt.Fprintf(&buf, "  %q -> %q;\n", c.From, c.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeLabel(g layout.Geometry, detailed bool) string {
	if !detailed {
		return g.Name
	}
	lines := []string{g.Name}
	for _, e := range g.Entries {
		if e.Value == "" {
			lines = append(lines, e.Name)
			continue
		}
		lines = append(lines, e.Name+": "+e.Value)
	}
	return strings.Join(lines, "\n")
}

// SVG renders DOT source to SVG using Graphviz.
func SVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg header with one whose
// width and height match the viewBox, so browser sources scale it cleanly.
func normalizeViewBox(svg []byte) []byte {
	m := viewBoxRe.FindSubmatch(svg)
	if m == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(m[3]), 64)
	h, _ := strconv.ParseFloat(string(m[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
