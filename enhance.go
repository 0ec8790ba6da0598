package moji

import (
	"image"

	"github.com/disintegration/gift"
)

// smoothKernel is the 3x3 smoothing kernel sharpness is interpolated
// against.
var smoothKernel = []float32{
	1, 1, 1,
	1, 5, 1,
	1, 1, 1,
}

// enhance applies brightness and then sharpness to img. Both are linear
// factors: 1 returns the input unchanged, channel values are clamped.
func enhance(img *image.RGBA, brightness, sharpness float64) *image.RGBA {
	if brightness != 1 {
		img = adjustBrightness(img, float32(brightness))
	}

	if sharpness != 1 {
		img = adjustSharpness(img, sharpness)
	}

	return img
}

func adjustBrightness(img *image.RGBA, factor float32) *image.RGBA {
	g := gift.New(gift.ColorFunc(
		func(r0, g0, b0, a0 float32) (r, g, b, a float32) {
			return clamp01(r0 * factor), clamp01(g0 * factor),
				clamp01(b0 * factor), a0
		},
	))
	g.SetParallelization(false)

	dst := image.NewRGBA(g.Bounds(img.Bounds()))
	g.Draw(dst, img)
	return dst
}

// adjustSharpness blends img with a smoothed copy of itself. Factors below 1
// move towards the smoothed copy, factors above 1 away from it.
func adjustSharpness(img *image.RGBA, factor float64) *image.RGBA {
	g := gift.New(gift.Convolution(smoothKernel, true, false, false, 0))
	g.SetParallelization(false)

	smooth := image.NewRGBA(g.Bounds(img.Bounds()))
	g.Draw(smooth, img)

	dst := image.NewRGBA(img.Bounds())
	for i := 0; i < len(img.Pix); i += 4 {
		for c := 0; c < 3; c++ {
			s := float64(smooth.Pix[i+c])
			v := s + (float64(img.Pix[i+c])-s)*factor
			dst.Pix[i+c] = clamp8(v)
		}
		dst.Pix[i+3] = img.Pix[i+3]
	}

	return dst
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}

	return v
}

func clamp8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}

	return uint8(v + 0.5)
}
