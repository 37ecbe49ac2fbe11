package align

import (
	"image"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"facereel/internal/analysis"
)

// cropSquare extracts the face box from src, widened on its shorter axis to
// an exact square. The extra margin is split with the floor half before the
// region and the remainder after. Regions reaching past the frame edge are
// filled black.
func cropSquare(src image.Image, box analysis.BoundingBox) *image.NRGBA {
	left, top := box.Left, box.Top
	right, bottom := box.Right, box.Bottom
	if width, height := box.Width(), box.Height(); width < height {
		diff := height - width
		left -= diff / 2
		right += diff - diff/2
	} else if height < width {
		diff := width - height
		top -= diff / 2
		bottom += diff - diff/2
	}

	dst := image.NewNRGBA(image.Rect(0, 0, right-left, bottom-top))
	fillBlack(dst)
	// draw clips the region that falls outside src, leaving the fill
	draw.Draw(dst, dst.Bounds(), src, image.Pt(left, top), draw.Src)
	return dst
}

// rotate turns src counterclockwise by degrees around its center, keeping
// the canvas size. Uncovered corners stay black.
func rotate(src image.Image, degrees float64) *image.NRGBA {
	bounds := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	fillBlack(dst)

	sin, cos := math.Sincos(degrees * math.Pi / 180)
	cx := float64(bounds.Dx()) / 2
	cy := float64(bounds.Dy()) / 2
	// counterclockwise on a y-down raster
	matrix := f64.Aff3{
		cos, sin, cx - cos*cx - sin*cy,
		-sin, cos, cy + sin*cx - cos*cy,
	}
	xdraw.ApproxBiLinear.Transform(dst, matrix, src, bounds, xdraw.Over, nil)
	return dst
}

// translate shifts src by (dx, dy) pixels on a same-sized black canvas.
func translate(src image.Image, dx, dy int) *image.NRGBA {
	bounds := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	fillBlack(dst)
	draw.Draw(dst, dst.Bounds().Add(image.Pt(dx, dy)), src, bounds.Min, draw.Src)
	return dst
}

// resizeTo scales src to a width*height canvas with Catmull-Rom resampling.
func resizeTo(src image.Image, width, height int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// grayscale converts src to 8-bit grayscale.
func grayscale(src image.Image) *image.Gray {
	bounds := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), src, bounds.Min, draw.Src)
	return dst
}

func fillBlack(img *image.NRGBA) {
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+3] = 0xff
	}
}
