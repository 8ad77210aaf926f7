package utils

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"strconv"

	"github.com/nfnt/resize"
)

var (
	ErrEmptyUpload = errors.New("uploaded file is empty")
	ErrTooLarge    = errors.New("uploaded file is too large")
	ErrNotAnImage  = errors.New("uploaded file is not a supported image")
)

// maxPixels guards against decompression bombs
const maxPixels = 50_000_000

// DecodeImage reads at most maxBytes and decodes a JPEG, PNG or GIF image
func DecodeImage(reader io.Reader, maxBytes int64) (image.Image, []byte, error) {
	data, err := io.ReadAll(io.LimitReader(reader, maxBytes+1))
	if err != nil {
		return nil, nil, err
	}
	if len(data) == 0 {
		return nil, nil, ErrEmptyUpload
	}
	if int64(len(data)) > maxBytes {
		return nil, nil, ErrTooLarge
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrNotAnImage, err)
	}
	if cfg.Width*cfg.Height > maxPixels {
		return nil, nil, ErrTooLarge
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrNotAnImage, err)
	}
	return img, data, nil
}

type ImageThumbConverted struct {
	ThumbSize int64
	NewX      uint16
	NewY      uint16
	OldX      uint16
	OldY      uint16
}

// CreateThumb scales img to fit in size x size (never upscaling) and writes it as JPEG
func CreateThumb(size uint, img image.Image, writer io.Writer) (result ImageThumbConverted, err error) {
	var newBuf bytes.Buffer
	newImage := resize.Thumbnail(size, size, img, resize.Lanczos3)
	if err = jpeg.Encode(&newBuf, newImage, &jpeg.Options{Quality: 90}); err != nil {
		return
	}
	imageRect := newImage.Bounds().Size()
	result.NewX = uint16(imageRect.X)
	result.NewY = uint16(imageRect.Y)

	imageRect = img.Bounds().Size()
	result.OldX = uint16(imageRect.X)
	result.OldY = uint16(imageRect.Y)

	result.ThumbSize, err = io.Copy(writer, &newBuf)
	return
}

// StringToUInt64 returns 0 for anything that is not a positive integer
func StringToUInt64(in string) uint64 {
	i, _ := strconv.ParseUint(in, 10, 64)
	return i
}

func StringToInt(in string) (int, bool) {
	i, err := strconv.Atoi(in)
	return i, err == nil
}
