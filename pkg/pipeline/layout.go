package pipeline

import (
	"context"
	"errors"

	"github.com/matzehuels/orchard/pkg/layout"
	"github.com/matzehuels/orchard/pkg/render/sink"
	"github.com/matzehuels/orchard/pkg/scene"
)

// errNoLayout is returned for topology formats of scenes without a layout.
var errNoLayout = errors.New("scene has no layout")

// topology exports the resolved bracket layout as a DOT graph, its SVG
// rendering or the JSON geometry dump.
func topology(ctx context.Context, env *scene.Env, name string, l *layout.Layout, format string) ([]byte, error) {
	if l == nil {
		return nil, errNoLayout
	}
	switch format {
	case FormatJSON:
		return sink.JSON(l, sink.WithScene(name), sink.WithUnit(env.Theme.Bracket.Unit))
	case FormatDOT:
		return []byte(bracketDOT(env, l)), nil
	default:
		return sink.SVG(ctx, bracketDOT(env, l))
	}
}

func bracketDOT(env *scene.Env, l *layout.Layout) string {
	p := env.Theme.Palette
	return sink.DOT(l, sink.WithDetailed(), sink.WithSideColors(p.Win.String(), p.Loss.String()))
}
