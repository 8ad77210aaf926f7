package faces

import (
	"image"
	"math"
)

const (
	hogOrientations = 9
	hogCellSize     = 8
	hogBlockCells   = 2
	hogClip         = 0.2
	hogEps          = 1e-5
)

// Descriptor is the gradient histogram feature vector of a face
type Descriptor []float64

// DescriptorLength returns the HOG vector length for a w x h analysis canvas
func DescriptorLength(w, h int) int {
	bx := w/hogCellSize - hogBlockCells + 1
	by := h/hogCellSize - hogBlockCells + 1
	if bx <= 0 || by <= 0 {
		return 0
	}
	return bx * by * hogBlockCells * hogBlockCells * hogOrientations
}

// HOG computes a histogram of oriented gradients over a grayscale image:
// 9 unsigned orientation bins, 8x8 pixel cells, 2x2 cell blocks with a one cell stride
// and L2-Hys block normalization.
func HOG(img *image.Gray) Descriptor {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	at := func(x, y int) float64 {
		return float64(img.Pix[img.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)])
	}

	cellsX, cellsY := w/hogCellSize, h/hogCellSize
	hist := make([]float64, cellsX*cellsY*hogOrientations)
	binWidth := 180.0 / hogOrientations
	cellArea := float64(hogCellSize * hogCellSize)

	for y := 0; y < cellsY*hogCellSize; y++ {
		for x := 0; x < cellsX*hogCellSize; x++ {
			// Border rows/columns have zero gradient along their axis
			var gx, gy float64
			if x > 0 && x < w-1 {
				gx = at(x+1, y) - at(x-1, y)
			}
			if y > 0 && y < h-1 {
				gy = at(x, y+1) - at(x, y-1)
			}
			mag := math.Hypot(gx, gy)
			if mag == 0 {
				continue
			}
			deg := math.Mod(math.Atan2(gy, gx)*180/math.Pi, 180)
			if deg < 0 {
				deg += 180
			}
			bin := int(deg / binWidth)
			if bin >= hogOrientations {
				continue
			}
			cell := (y/hogCellSize)*cellsX + x/hogCellSize
			hist[cell*hogOrientations+bin] += mag / cellArea
		}
	}

	out := make(Descriptor, 0, DescriptorLength(w, h))
	block := make([]float64, hogBlockCells*hogBlockCells*hogOrientations)
	for by := 0; by+hogBlockCells <= cellsY; by++ {
		for bx := 0; bx+hogBlockCells <= cellsX; bx++ {
			i := 0
			for cy := by; cy < by+hogBlockCells; cy++ {
				for cx := bx; cx < bx+hogBlockCells; cx++ {
					cell := cy*cellsX + cx
					i += copy(block[i:], hist[cell*hogOrientations:(cell+1)*hogOrientations])
				}
			}
			l2Hys(block)
			out = append(out, block...)
		}
	}
	return out
}

func l2Hys(v []float64) {
	l2normalize(v)
	for i := range v {
		if v[i] > hogClip {
			v[i] = hogClip
		}
	}
	l2normalize(v)
}

func l2normalize(v []float64) {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	norm := math.Sqrt(sum + hogEps*hogEps)
	for i := range v {
		v[i] /= norm
	}
}
