// Package probe reads capture metadata from media files.
package probe

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/abema/go-mp4"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/webp"

	"github.com/bagtoad/pix/internal/media"
)

// ErrNoCaptureTime means the file carries no usable capture timestamp.
var ErrNoCaptureTime = errors.New("no capture time")

// mp4Epoch is the reference time of ISO BMFF creation timestamps.
var mp4Epoch = time.Date(1904, time.January, 1, 0, 0, 0, 0, time.UTC)

// CaptureTime returns when the media at path was recorded: EXIF DateTime for
// images, the movie header creation time for mp4 and mov. Files without
// such metadata return ErrNoCaptureTime.
func CaptureTime(path string, kind media.Kind) (time.Time, error) {
	switch kind {
	case media.Image:
		return exifTime(path)
	case media.Video:
		ext := strings.ToLower(filepath.Ext(path))
		if ext == ".mp4" || ext == ".mov" {
			return movieTime(path)
		}
	}
	return time.Time{}, ErrNoCaptureTime
}

func exifTime(path string) (time.Time, error) {
	f, err := os.Open(path)
	if err != nil {
		return time.Time{}, fmt.Errorf("cannot open image: %w", err)
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrNoCaptureTime, err)
	}
	t, err := x.DateTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrNoCaptureTime, err)
	}
	return t, nil
}

func movieTime(path string) (time.Time, error) {
	f, err := os.Open(path)
	if err != nil {
		return time.Time{}, fmt.Errorf("cannot open video: %w", err)
	}
	defer f.Close()

	boxes, err := mp4.ExtractBoxWithPayload(f, nil, mp4.BoxPath{mp4.BoxTypeMoov(), mp4.BoxTypeMvhd()})
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrNoCaptureTime, err)
	}
	for _, b := range boxes {
		mvhd, ok := b.Payload.(*mp4.Mvhd)
		if !ok {
			continue
		}
		secs := mvhd.GetCreationTime()
		if secs == 0 {
			break
		}
		return mp4Epoch.Add(time.Duration(secs) * time.Second), nil
	}
	return time.Time{}, ErrNoCaptureTime
}

// Decodable checks that the image at path has a readable header.
func Decodable(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("cannot open image: %w", err)
	}
	defer f.Close()

	if _, _, err := image.DecodeConfig(f); err != nil {
		return fmt.Errorf("cannot decode image: %w", err)
	}
	return nil
}
