package sink

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/orchard/pkg/render/anim"
)

// PNG encodes img as PNG.
func PNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// GIF encodes seq as an animated GIF.
func GIF(seq *anim.Sequence) ([]byte, error) {
	var buf bytes.Buffer
	if err := anim.Encode(&buf, seq); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
