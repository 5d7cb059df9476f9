// Package imagex holds the image plumbing the vision APIs require:
// validation by decoding and a byte-budget downscale before upload.
package imagex

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"math"
)

// MaxUploadBytes is the payload cap the vision providers accept.
const MaxUploadBytes = 5 * 1024 * 1024

// Validate reports whether b decodes as a supported image. The reason is
// user-facing and safe to return in an HTTP 400.
func Validate(b []byte) (bool, string) {
	if len(b) == 0 {
		return false, "empty image data"
	}
	if _, _, err := image.Decode(bytes.NewReader(b)); err != nil {
		if _, err2 := tryDecodeStrict(b); err2 != nil {
			return false, "the file is not a valid image"
		}
	}
	return true, ""
}

// ResizeIfNeeded scales the image down so the encoded payload fits under
// maxBytes. On any decode/encode trouble the original bytes are returned;
// an oversized upload fails loudly at the provider instead.
func ResizeIfNeeded(b []byte, maxBytes int) []byte {
	if maxBytes <= 0 {
		maxBytes = MaxUploadBytes
	}
	if len(b) <= maxBytes {
		return b
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		if img, err = tryDecodeStrict(b); err != nil {
			return b
		}
	}
	scale := math.Sqrt(float64(maxBytes) / float64(len(b)))
	bounds := img.Bounds()
	newW := int(float64(bounds.Dx())*scale + 0.5)
	newH := int(float64(bounds.Dy())*scale + 0.5)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}
	scaled := scaleDownNN(img, newW, newH)

	var out bytes.Buffer
	if err := jpeg.Encode(&out, scaled, &jpeg.Options{Quality: 90}); err != nil {
		return b
	}
	return out.Bytes()
}

func tryDecodeStrict(b []byte) (image.Image, error) {
	if len(b) >= 2 && b[0] == 0xFF && b[1] == 0xD8 {
		return jpeg.Decode(bytes.NewReader(b))
	}
	if len(b) >= 8 &&
		b[0] == 0x89 && b[1] == 0x50 && b[2] == 0x4E && b[3] == 0x47 &&
		b[4] == 0x0D && b[5] == 0x0A && b[6] == 0x1A && b[7] == 0x0A {
		return png.Decode(bytes.NewReader(b))
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("unsupported image format")
	}
	return img, nil
}

func scaleDownNN(src image.Image, newW, newH int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	sb := src.Bounds()
	srcW := sb.Dx()
	srcH := sb.Dy()
	for y := 0; y < newH; y++ {
		sy := sb.Min.Y + (y*srcH)/newH
		for x := 0; x < newW; x++ {
			sx := sb.Min.X + (x*srcW)/newW
			dst.Set(x, y, src.At(sx, sy))
		}
	}
	return dst
}
