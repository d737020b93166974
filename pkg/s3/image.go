package s3

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
)

const (
	thumbSize    = 200
	mediumWidth  = 800
	mediumHeight = 600
)

// makeThumbnail scales the image to cover a square and crops the center,
// always yielding exactly thumbSize x thumbSize pixels.
func makeThumbnail(src image.Image) image.Image {
	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	scaledWidth, scaledHeight := thumbSize, thumbSize
	if width > height {
		scaledWidth = width * thumbSize / height
	} else if height > width {
		scaledHeight = height * thumbSize / width
	}

	scaled := scaleImage(src, scaledWidth, scaledHeight)

	offsetX := (scaledWidth - thumbSize) / 2
	offsetY := (scaledHeight - thumbSize) / 2
	crop := image.Rect(offsetX, offsetY, offsetX+thumbSize, offsetY+thumbSize)

	return scaled.SubImage(crop)
}

// makeMedium bounds the image within mediumWidth x mediumHeight, keeping the
// aspect ratio. Images already inside the bounds pass through untouched.
func makeMedium(src image.Image) image.Image {
	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width <= mediumWidth && height <= mediumHeight {
		return src
	}

	newWidth := mediumWidth
	newHeight := height * mediumWidth / width
	if newHeight > mediumHeight {
		newHeight = mediumHeight
		newWidth = width * mediumHeight / height
	}

	return scaleImage(src, newWidth, newHeight)
}

func scaleImage(src image.Image, width, height int) *image.RGBA {
	bounds := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, width, height))

	for y := 0; y < height; y++ {
		srcY := bounds.Min.Y + y*bounds.Dy()/height
		for x := 0; x < width; x++ {
			srcX := bounds.Min.X + x*bounds.Dx()/width
			dst.Set(x, y, src.At(srcX, srcY))
		}
	}

	return dst
}

func encodeImage(img image.Image, format string) ([]byte, error) {
	var buf bytes.Buffer
	var err error

	switch format {
	case "png":
		err = png.Encode(&buf, img)
	case "gif":
		err = gif.Encode(&buf, img, nil)
	case "jpeg":
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85})
	default:
		return nil, fmt.Errorf("unsupported image format: %s", format)
	}

	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
