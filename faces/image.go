package faces

import (
	"image"
	"image/draw"

	"github.com/nfnt/resize"
)

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// Crop returns the part of img covered by box. The source is never modified,
// when the image type cannot share its pixels the region is copied.
func Crop(img image.Image, box Box) image.Image {
	r := box.Rect(img.Bounds().Min).Intersect(img.Bounds())
	if si, ok := img.(subImager); ok {
		return si.SubImage(r)
	}
	dst := image.NewNRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(dst, dst.Bounds(), img, r.Min, draw.Src)
	return dst
}

// Normalize scales a face crop to the FaceCanvasSize square with bicubic interpolation
func Normalize(crop image.Image) image.Image {
	return resize.Resize(FaceCanvasSize, FaceCanvasSize, crop, resize.Bicubic)
}

// Grayscale converts to 8-bit luminance (ITU-R BT.601 weights)
func Grayscale(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	b := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(gray, gray.Bounds(), img, b.Min, draw.Src)
	return gray
}

// Describe computes the descriptor of a normalized face
func Describe(face image.Image) Descriptor {
	small := resize.Resize(AnalysisSize, AnalysisSize, Grayscale(face), resize.Bilinear)
	return HOG(Grayscale(small))
}
