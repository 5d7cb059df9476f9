// Package fraud implements the cheap metadata heuristics that run before
// an image is sent to the vision model. They only flag obvious
// screenshot/edited-image submissions; scoring real fraud is the model's
// (and the adjuster's) job.
package fraud

import (
	"bytes"
	"fmt"
	"log"
)

var editorMarkers = [][]byte{
	[]byte("Photoshop"),
	[]byte("GIMP"),
	[]byte("Lightroom"),
	[]byte("Affinity"),
}

// Check inspects the image metadata and reports whether the submission
// looks inauthentic, with a user-facing reason. Errors never flag: on
// anything unexpected the image is treated as clean and the issue logged.
func Check(imageBytes []byte) (bool, string) {
	switch {
	case isPNG(imageBytes):
		// Screenshots are usually PNG and carry no camera metadata.
		return true, "Image appears to be a screenshot, not an original photo"
	case isJPEG(imageBytes):
		meta, err := jpegMetadata(imageBytes)
		if err != nil {
			log.Printf("fraud: metadata scan failed: %v", err)
			return false, ""
		}
		for _, marker := range editorMarkers {
			if bytes.Contains(meta, marker) {
				return true, fmt.Sprintf("Image appears to be edited with %s", marker)
			}
		}
	}
	return false, ""
}

func isPNG(b []byte) bool {
	return len(b) >= 8 &&
		b[0] == 0x89 && b[1] == 0x50 && b[2] == 0x4E && b[3] == 0x47 &&
		b[4] == 0x0D && b[5] == 0x0A && b[6] == 0x1A && b[7] == 0x0A
}

func isJPEG(b []byte) bool {
	return len(b) >= 2 && b[0] == 0xFF && b[1] == 0xD8
}

// jpegMetadata concatenates the APP segments (EXIF, XMP, Photoshop IRB)
// that precede the scan data. Editing software leaves its name in there.
func jpegMetadata(b []byte) ([]byte, error) {
	var meta []byte
	i := 2 // past SOI
	for i+4 <= len(b) {
		if b[i] != 0xFF {
			return meta, nil
		}
		marker := b[i+1]
		// Start of scan: no more metadata segments.
		if marker == 0xDA {
			return meta, nil
		}
		// Standalone markers have no length field.
		if marker == 0x01 || (marker >= 0xD0 && marker <= 0xD9) {
			i += 2
			continue
		}
		segLen := int(b[i+2])<<8 | int(b[i+3])
		if segLen < 2 || i+2+segLen > len(b) {
			return meta, fmt.Errorf("truncated segment at offset %d", i)
		}
		// APP0..APP15 and COM carry metadata.
		if (marker >= 0xE0 && marker <= 0xEF) || marker == 0xFE {
			meta = append(meta, b[i+4:i+2+segLen]...)
		}
		i += 2 + segLen
	}
	return meta, nil
}

// HasEXIF reports whether a JPEG carries an EXIF APP1 segment. Photos
// straight from a camera or phone almost always do.
func HasEXIF(b []byte) bool {
	if !isJPEG(b) {
		return false
	}
	meta, err := jpegMetadata(b)
	if err != nil {
		return false
	}
	return bytes.Contains(meta, []byte("Exif\x00\x00"))
}
