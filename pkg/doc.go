// Package pkg provides the core libraries for Orchard tournament stream graphics.
//
// # Overview
//
// Orchard draws the overlays a tournament stream shows between matches: the
// double-elimination bracket, player cards and their flip, the versus screen,
// the commentator panel, the scrolling donor list and the event poster. The
// pkg directory is organized into four main areas:
//
//  1. Geometry and drawing ([layout], [render], [scene])
//  2. Event data ([tournament], [io], [integrations])
//  3. Configuration and assets ([theme], [assets], [fonts])
//  4. Orchestration ([pipeline], [server], [cache])
//
// # Architecture
//
// The typical data flow through Orchard:
//
//	results / roster / donors files, profile API, donation page
//	         ↓
//	    [pipeline] Load (resolve players, fetch donors)
//	         ↓
//	    [layout] (slot geometry and connectors, bracket only)
//	         ↓
//	    [scene] (draw frames with [render/canvas] and [render/text])
//	         ↓
//	    [render/sink] (PNG, GIF, DOT, SVG, JSON)
//
// # Quick Start
//
// Render the bracket as an animated GIF:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/orchard/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil, pipeline.Deps{})
//	res, err := runner.Execute(context.Background(), pipeline.Options{
//	    Scene:   pipeline.SceneBracket,
//	    Results: "players_data.json",
//	    Formats: []string{pipeline.FormatGIF, pipeline.FormatDOT},
//	})
//	gif := res.Artifacts[pipeline.FormatGIF]
//
// # Main Packages
//
// [layout] - Pure bracket geometry. Slots are placed on a column and row
// grid; connectors are elbow polylines computed from the resolved slot
// boxes. Nothing in layout draws.
//
// [render] - Raster building blocks: the gg-backed [render/canvas], text
// fitting in [render/text], frame sequences in [render/anim] and the
// encoders in [render/sink].
//
// [scene] - One function per graphic, combining a theme, assets and event
// data into frames.
//
// [theme] - Every size, colour and asset name, loaded from TOML or YAML over
// the built-in presets.
//
// [assets] - Asset directory lookups with placeholders, and remote image
// fetching through the cache.
//
// [integrations] - HTTP clients for the player profile API ([integrations/tetrio])
// and the donation page ([integrations/matcherino]).
//
// [pipeline] - Load → render → encode with artifact caching. Used by the CLI
// and the preview server so both behave the same.
//
// [server] - chi router serving scenes to broadcast software.
//
// [cache] - File, Redis and null caches plus key derivation.
//
// [layout]: https://pkg.go.dev/github.com/matzehuels/orchard/pkg/layout
// [render]: https://pkg.go.dev/github.com/matzehuels/orchard/pkg/render
// [render/canvas]: https://pkg.go.dev/github.com/matzehuels/orchard/pkg/render/canvas
// [render/text]: https://pkg.go.dev/github.com/matzehuels/orchard/pkg/render/text
// [render/anim]: https://pkg.go.dev/github.com/matzehuels/orchard/pkg/render/anim
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/orchard/pkg/render/sink
// [scene]: https://pkg.go.dev/github.com/matzehuels/orchard/pkg/scene
// [tournament]: https://pkg.go.dev/github.com/matzehuels/orchard/pkg/tournament
// [io]: https://pkg.go.dev/github.com/matzehuels/orchard/pkg/io
// [integrations]: https://pkg.go.dev/github.com/matzehuels/orchard/pkg/integrations
// [integrations/tetrio]: https://pkg.go.dev/github.com/matzehuels/orchard/pkg/integrations/tetrio
// [integrations/matcherino]: https://pkg.go.dev/github.com/matzehuels/orchard/pkg/integrations/matcherino
// [theme]: https://pkg.go.dev/github.com/matzehuels/orchard/pkg/theme
// [assets]: https://pkg.go.dev/github.com/matzehuels/orchard/pkg/assets
// [fonts]: https://pkg.go.dev/github.com/matzehuels/orchard/pkg/fonts
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/orchard/pkg/pipeline
// [server]: https://pkg.go.dev/github.com/matzehuels/orchard/pkg/server
// [cache]: https://pkg.go.dev/github.com/matzehuels/orchard/pkg/cache
package pkg
