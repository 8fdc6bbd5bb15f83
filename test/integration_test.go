//go:build integration

package integration_test

import (
	"bytes"
	"context"
	"encoding/binary"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bagtoad/pix/internal/locale"
	"github.com/bagtoad/pix/internal/media"
	"github.com/bagtoad/pix/internal/picker"
	"github.com/bagtoad/pix/internal/probe"
	"github.com/bagtoad/pix/internal/report"
	"github.com/bagtoad/pix/internal/scanner"
)

var now = time.Date(2026, 10, 5, 12, 0, 0, 0, time.Local)

// exifJPEG writes a JPEG whose APP1 segment carries an EXIF DateTime.
func exifJPEG(t *testing.T, path string, taken time.Time) {
	t.Helper()

	stamp := append([]byte(taken.Format("2006:01:02 15:04:05")), 0)

	var tiff bytes.Buffer
	tiff.WriteString("MM")
	binary.Write(&tiff, binary.BigEndian, uint16(42))
	binary.Write(&tiff, binary.BigEndian, uint32(8))
	binary.Write(&tiff, binary.BigEndian, uint16(1))      // one IFD entry
	binary.Write(&tiff, binary.BigEndian, uint16(0x0132)) // DateTime
	binary.Write(&tiff, binary.BigEndian, uint16(2))      // ASCII
	binary.Write(&tiff, binary.BigEndian, uint32(len(stamp)))
	binary.Write(&tiff, binary.BigEndian, uint32(26))
	binary.Write(&tiff, binary.BigEndian, uint32(0))
	tiff.Write(stamp)

	var body bytes.Buffer
	if err := jpeg.Encode(&body, solid(color.RGBA{90, 140, 200, 255}), nil); err != nil {
		t.Fatal(err)
	}
	encoded := body.Bytes()

	var out bytes.Buffer
	out.Write(encoded[:2]) // SOI
	out.Write([]byte{0xFF, 0xE1})
	binary.Write(&out, binary.BigEndian, uint16(2+6+tiff.Len()))
	out.WriteString("Exif\x00\x00")
	out.Write(tiff.Bytes())
	out.Write(encoded[2:])

	if err := os.WriteFile(path, out.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
}

func solid(c color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func plainJPEG(t *testing.T, path string, modTime time.Time) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := jpeg.Encode(f, solid(color.RGBA{200, 40, 40, 255}), nil); err != nil {
		t.Fatal(err)
	}
	f.Close()
	if err := os.Chtimes(path, modTime, modTime); err != nil {
		t.Fatal(err)
	}
}

func TestExifCaptureTime(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taken.jpg")
	taken := time.Date(2026, 6, 12, 9, 15, 0, 0, time.Local)
	exifJPEG(t, path, taken)

	got, err := probe.CaptureTime(path, media.Image)
	if err != nil {
		t.Fatalf("CaptureTime failed: %v", err)
	}
	if !got.Equal(taken) {
		t.Errorf("CaptureTime = %v, want %v", got, taken)
	}
	if err := probe.Decodable(path); err != nil {
		t.Errorf("EXIF JPEG should still decode: %v", err)
	}
}

func TestLibraryPipeline(t *testing.T) {
	root := t.TempDir()
	camera := filepath.Join(root, "DCIM", "Camera")
	if err := os.MkdirAll(camera, 0755); err != nil {
		t.Fatal(err)
	}

	// Copied yesterday, shot in June: capture time puts it under "June".
	shot := filepath.Join(camera, "june.jpg")
	exifJPEG(t, shot, time.Date(2026, 6, 12, 9, 15, 0, 0, time.Local))
	if err := os.Chtimes(shot, now.AddDate(0, 0, -1), now.AddDate(0, 0, -1)); err != nil {
		t.Fatal(err)
	}

	plainJPEG(t, filepath.Join(root, "fresh.jpg"), now.Add(time.Minute))
	plainJPEG(t, filepath.Join(camera, "week.jpg"), now.AddDate(0, 0, -3))
	if err := os.WriteFile(filepath.Join(camera, "corrupt.png"), []byte("fake"), 0644); err != nil {
		t.Fatal(err)
	}

	src := scanner.Library{Roots: []string{root}, CaptureTime: true, Verify: true}
	mgr := picker.New(src,
		picker.WithClock(func() time.Time { return now }),
		picker.WithLabels(locale.English),
		picker.WithPreselected(shot),
	)
	res, err := mgr.Retrieve(context.Background(), media.All)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"Recent", "Last week", "June"}
	got := res.Sections()
	if len(got) != len(want) {
		t.Fatalf("sections = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("section %d = %q, want %q", i, got[i], want[i])
		}
	}
	if len(res.Items()) != 3 {
		t.Errorf("corrupt image should be dropped, got %d items", len(res.Items()))
	}
	if len(res.Selected) != 1 || !strings.HasSuffix(res.Selected[0].Locator, "/june.jpg") {
		t.Errorf("unexpected selection: %+v", res.Selected)
	}

	report.Print(os.Stdout, res, report.Options{})
}

func TestFolderPipelineIgnoresMetadata(t *testing.T) {
	dir := t.TempDir()
	shot := filepath.Join(dir, "june.jpg")
	exifJPEG(t, shot, time.Date(2026, 6, 12, 9, 15, 0, 0, time.Local))
	if err := os.Chtimes(shot, now.AddDate(0, 0, -1), now.AddDate(0, 0, -1)); err != nil {
		t.Fatal(err)
	}

	res, err := picker.New(scanner.Folder{Dir: dir},
		picker.WithClock(func() time.Time { return now }),
	).Retrieve(context.Background(), media.Picture)
	if err != nil {
		t.Fatal(err)
	}
	if got := res.Sections(); len(got) != 1 || got[0] != "Last week" {
		t.Errorf("folder source should date by mtime, sections = %v", got)
	}
}
