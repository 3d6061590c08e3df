package canvas

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

// Fade returns a copy of img with its alpha multiplied by opacity.
func Fade(img image.Image, opacity float64) *image.NRGBA {
	out := imaging.Clone(img)
	if opacity >= 1 {
		return out
	}
	if opacity < 0 {
		opacity = 0
	}
	for i := 3; i < len(out.Pix); i += 4 {
		out.Pix[i] = uint8(float64(out.Pix[i]) * opacity)
	}
	return out
}

// Rounded clips img to a rounded rectangle of the given corner radius.
func Rounded(img image.Image, radius float64) image.Image {
	b := img.Bounds()
	dc := gg.NewContext(b.Dx(), b.Dy())
	dc.DrawRoundedRectangle(0, 0, float64(b.Dx()), float64(b.Dy()), radius)
	dc.Clip()
	dc.DrawImage(img, -b.Min.X, -b.Min.Y)
	return dc.Image()
}

// Circle clips img to the largest centred circle.
func Circle(img image.Image) image.Image {
	b := img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	dc := gg.NewContext(b.Dx(), b.Dy())
	dc.DrawCircle(w/2, h/2, min(w, h)/2)
	dc.Clip()
	dc.DrawImage(img, -b.Min.X, -b.Min.Y)
	return dc.Image()
}

// Silhouette returns the alpha shape of img filled with col.
func Silhouette(img image.Image, col color.Color) *image.NRGBA {
	src := imaging.Clone(img)
	c := color.NRGBAModel.Convert(col).(color.NRGBA)
	for i := 0; i < len(src.Pix); i += 4 {
		a := src.Pix[i+3]
		src.Pix[i], src.Pix[i+1], src.Pix[i+2] = c.R, c.G, c.B
		src.Pix[i+3] = uint8(uint16(a) * uint16(c.A) / 255)
	}
	return src
}

// DropShadow returns img over a blurred silhouette offset by (dx, dy), padded
// so neither is clipped.
func DropShadow(img image.Image, col color.Color, blur float64, dx, dy int) *image.NRGBA {
	b := img.Bounds()
	pad := int(blur*3) + max(abs(dx), abs(dy))
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx()+2*pad, b.Dy()+2*pad))
	shadow := image.NewNRGBA(out.Bounds())
	draw.Draw(shadow, image.Rect(pad+dx, pad+dy, pad+dx+b.Dx(), pad+dy+b.Dy()), Silhouette(img, col), image.Point{}, draw.Over)
	draw.Draw(out, out.Bounds(), imaging.Blur(shadow, blur), image.Point{}, draw.Over)
	draw.Draw(out, image.Rect(pad, pad, pad+b.Dx(), pad+b.Dy()), img, b.Min, draw.Over)
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
