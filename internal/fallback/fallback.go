// Package fallback paints the static stills shown when no GPU context is
// available. They are flat approximations of each hero and never animate.
package fallback

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/vector"
)

var (
	backdrop = color.NRGBA{R: 0x08, G: 0x0e, B: 0x1a, A: 0xff}
	base     = color.NRGBA{R: 0x8a, G: 0x9e, B: 0x8f, A: 0xff}
)

const (
	lensDots    = 40
	silkLines   = 12
	dotOpacity  = 0.15
	glowOpacity = 0.06
)

// Lens paints the particle-field still: a soft central glow with a scatter
// of dots.
func Lens(width, height int) *image.RGBA {
	img := canvas(width, height)
	// a 40%-wide box whose circular gradient runs out to the box corners
	radialGlow(img, 0.2*math.Sqrt2*float64(width), glowOpacity)

	z := vector.NewRasterizer(width, height)
	dot := image.NewUniform(withAlpha(base, dotOpacity))
	for i := range lensDots {
		x := (15 + (math.Sin(float64(i)*2.39)*0.5+0.5)*70) / 100 * float64(width)
		y := (15 + (math.Cos(float64(i)*1.73)*0.5+0.5)*70) / 100 * float64(height)
		r := float32(2+i%5) / 2
		circle(z, float32(x), float32(y), r)
	}
	z.Draw(img, img.Bounds(), dot, image.Point{})
	return img
}

// Silk paints the threads still: twelve faint horizontal lines that fade in
// and out along their length.
func Silk(width, height int) *image.RGBA {
	img := canvas(width, height)
	for i := range silkLines {
		y := (10 + float64(i)/float64(silkLines-1)*80) / 100 * float64(height)
		opacity := 0.04 + (math.Sin(float64(i)*0.8)*0.5+0.5)*0.08

		left := 0.05 * float64(width)
		right := 0.95 * float64(width)
		z := vector.NewRasterizer(width, height)
		z.MoveTo(float32(left), float32(y))
		z.LineTo(float32(right), float32(y))
		z.LineTo(float32(right), float32(y+1))
		z.LineTo(float32(left), float32(y+1))
		z.ClosePath()
		z.Draw(img, img.Bounds(), fade{left: left, right: right, c: base, opacity: opacity}, image.Point{})
	}
	return img
}

func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

func canvas(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, max(width, 1), max(height, 1)))
	draw.Draw(img, img.Bounds(), image.NewUniform(backdrop), image.Point{}, draw.Src)
	return img
}

func withAlpha(c color.NRGBA, a float64) color.NRGBA {
	c.A = uint8(math.Round(a * 255))
	return c
}

// radialGlow fades from opacity at the centre to nothing at 70% of radius.
func radialGlow(img *image.RGBA, radius, opacity float64) {
	b := img.Bounds()
	cx, cy := float64(b.Dx())/2, float64(b.Dy())/2
	edge := radius * 0.7
	if edge <= 0 {
		return
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy)
			if d >= edge {
				continue
			}
			a := opacity * (1 - d/edge)
			img.Set(x, y, over(img.RGBAAt(x, y), base, a))
		}
	}
}

func over(dst color.RGBA, src color.NRGBA, a float64) color.RGBA {
	mix := func(d, s uint8) uint8 {
		return uint8(math.Round(float64(d)*(1-a) + float64(s)*a))
	}
	return color.RGBA{R: mix(dst.R, src.R), G: mix(dst.G, src.G), B: mix(dst.B, src.B), A: 0xff}
}

const kappa = 0.5522848

func circle(z *vector.Rasterizer, cx, cy, r float32) {
	k := r * kappa
	z.MoveTo(cx+r, cy)
	z.CubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	z.CubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	z.CubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	z.CubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	z.ClosePath()
}

// fade is a horizontal transparent-colour-transparent gradient.
type fade struct {
	left, right float64
	c           color.NRGBA
	opacity     float64
}

func (f fade) ColorModel() color.Model { return color.NRGBAModel }

func (f fade) Bounds() image.Rectangle {
	return image.Rect(-1e9, -1e9, 1e9, 1e9)
}

func (f fade) At(x, _ int) color.Color {
	span := f.right - f.left
	if span <= 0 {
		return color.NRGBA{}
	}
	t := (float64(x) + 0.5 - f.left) / span
	if t < 0 || t > 1 {
		return color.NRGBA{}
	}
	w := 1 - math.Abs(t*2-1)
	return withAlpha(f.c, f.opacity*w)
}
