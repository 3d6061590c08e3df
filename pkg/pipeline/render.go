package pipeline

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/matzehuels/orchard/pkg/layout"
	"github.com/matzehuels/orchard/pkg/observability"
	"github.com/matzehuels/orchard/pkg/render/anim"
	"github.com/matzehuels/orchard/pkg/render/sink"
	"github.com/matzehuels/orchard/pkg/scene"
)

// Output is a drawn scene before encoding. Layout is set for the bracket
// only; Frames is nil when only topology formats were requested.
type Output struct {
	Frames *anim.Sequence
	Layout *layout.Layout
}

// Render draws the scene described by opts from in.
func Render(ctx context.Context, env *scene.Env, opts Options, in *Inputs) (*Output, error) {
	static := func(img image.Image) *Output {
		return &Output{Frames: anim.Static(img, anim.DefaultDelay)}
	}

	switch opts.Scene {
	case SceneBracket:
		if !needsRaster(opts.Formats) {
			l, err := scene.BracketLayout(env, in.Results)
			if err != nil {
				return nil, err
			}
			return &Output{Layout: l}, nil
		}
		seq, l, err := scene.Bracket(ctx, env, in.Results)
		if err != nil {
			return nil, err
		}
		return &Output{Frames: seq, Layout: l}, nil

	case SceneCardFront:
		return static(scene.CardFront(ctx, env, in.Profiles[0], in.Seeds[0], in.Flavors[0])), nil

	case SceneCardBack:
		return static(scene.CardBack(ctx, env)), nil

	case SceneCardFlip:
		front := scene.CardFront(ctx, env, in.Profiles[0], in.Seeds[0], in.Flavors[0])
		back := scene.CardBack(ctx, env)
		return &Output{Frames: scene.CardFlip(front, back, env.Theme.Card)}, nil

	case SceneVersus:
		left := scene.CardFront(ctx, env, in.Profiles[0], in.Seeds[0], in.Flavors[0])
		right := scene.CardFront(ctx, env, in.Profiles[1], in.Seeds[1], in.Flavors[1])
		return &Output{Frames: scene.Versus(ctx, env, left, right)}, nil

	case SceneCommentary:
		return static(scene.Commentary(ctx, env, in.Profiles)), nil

	case SceneDonorScroll:
		return &Output{Frames: scene.DonorScroll(env, in.Donors)}, nil

	case SceneDonorWall:
		return &Output{Frames: scene.DonorWall(ctx, env, scene.DonorScroll(env, in.Donors))}, nil

	case ScenePoster:
		seq, err := scene.Poster(ctx, env)
		if err != nil {
			return nil, err
		}
		return &Output{Frames: seq}, nil
	}
	return nil, ValidateScene(opts.Scene)
}

// Encode writes out in every requested format.
func Encode(ctx context.Context, env *scene.Env, opts Options, out *Output) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		start := time.Now()
		data, err := encodeFormat(ctx, env, opts, out, format)
		observability.Pipeline().OnEncodeComplete(ctx, opts.Scene, format, len(data), time.Since(start), err)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func encodeFormat(ctx context.Context, env *scene.Env, opts Options, out *Output, format string) ([]byte, error) {
	switch format {
	case FormatPNG:
		if out.Frames == nil || out.Frames.Len() == 0 {
			return nil, anim.ErrEmpty
		}
		return sink.PNG(out.Frames.Frames[0])
	case FormatGIF:
		if out.Frames == nil {
			return nil, anim.ErrEmpty
		}
		return sink.GIF(out.Frames)
	case FormatDOT, FormatSVG, FormatJSON:
		return topology(ctx, env, opts.Scene, out.Layout, format)
	}
	return nil, ValidateFormat(opts.Scene, format)
}

func needsRaster(formats []string) bool {
	for _, f := range formats {
		if f == FormatPNG || f == FormatGIF {
			return true
		}
	}
	return false
}
