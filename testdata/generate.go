// This program generates a sample picker folder for manual runs:
//
//	go run testdata/generate.go && pix --color testdata/Pix
//
// Files are back-dated so every date section appears.
//
//go:build ignore

package main

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

func main() {
	dir := filepath.Join("testdata", "Pix")
	os.MkdirAll(dir, 0755)
	now := time.Now()

	saveJPEG(filepath.Join(dir, "sky.jpg"), color.RGBA{100, 150, 220, 255})
	touch(filepath.Join(dir, "sky.jpg"), now.Add(time.Minute))

	savePNG(filepath.Join(dir, "receipt.png"), color.RGBA{245, 245, 245, 255})
	touch(filepath.Join(dir, "receipt.png"), now.AddDate(0, 0, -2))

	saveMovie(filepath.Join(dir, "party.mp4"), now.AddDate(0, 0, -20))
	touch(filepath.Join(dir, "party.mp4"), now.AddDate(0, 0, -20))

	saveJPEG(filepath.Join(dir, "beach.jpg"), color.RGBA{230, 200, 120, 255})
	touch(filepath.Join(dir, "beach.jpg"), now.AddDate(0, -3, 0))

	saveMovie(filepath.Join(dir, "concert.mov"), now.AddDate(0, -4, 0))
	touch(filepath.Join(dir, "concert.mov"), now.AddDate(0, -4, 0))

	// Not media; pix skips it.
	os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("not media"), 0644)
}

func touch(path string, t time.Time) {
	os.Chtimes(path, t, t)
}

func solid(c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func saveJPEG(path string, c color.RGBA) {
	f, _ := os.Create(path)
	defer f.Close()
	jpeg.Encode(f, solid(c), &jpeg.Options{Quality: 90})
}

func savePNG(path string, c color.RGBA) {
	f, _ := os.Create(path)
	defer f.Close()
	png.Encode(f, solid(c))
}

// saveMovie writes a bare moov/mvhd box carrying a creation time.
func saveMovie(path string, created time.Time) {
	epoch := time.Date(1904, time.January, 1, 0, 0, 0, 0, time.UTC)
	secs := uint32(created.Sub(epoch) / time.Second)

	var mvhd bytes.Buffer
	binary.Write(&mvhd, binary.BigEndian, []uint32{0, secs, secs, 1000, 5000, 0x00010000})
	binary.Write(&mvhd, binary.BigEndian, []int16{0x0100, 0})
	binary.Write(&mvhd, binary.BigEndian, [2]uint32{})
	binary.Write(&mvhd, binary.BigEndian, [9]int32{0x00010000, 0, 0, 0, 0x00010000, 0, 0, 0, 0x40000000})
	binary.Write(&mvhd, binary.BigEndian, [6]int32{})
	binary.Write(&mvhd, binary.BigEndian, uint32(2))

	box := func(typ string, body []byte) []byte {
		var b bytes.Buffer
		binary.Write(&b, binary.BigEndian, uint32(8+len(body)))
		b.WriteString(typ)
		b.Write(body)
		return b.Bytes()
	}
	os.WriteFile(path, box("moov", box("mvhd", mvhd.Bytes())), 0644)
}
