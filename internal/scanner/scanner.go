// Package scanner enumerates media files from a folder or a media library.
package scanner

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/bagtoad/pix/internal/media"
	"github.com/bagtoad/pix/internal/probe"
)

// Source lists media descriptors for a mode, newest first. A source that is
// not available returns an empty list, not an error.
type Source interface {
	List(ctx context.Context, mode media.Mode) ([]media.Descriptor, error)
}

// Folder lists the files directly inside Dir (non-recursive), the way the
// picker reads its own application folder.
type Folder struct {
	Dir string
}

// List implements Source.
func (f Folder) List(ctx context.Context, mode media.Mode) ([]media.Descriptor, error) {
	info, err := os.Stat(f.Dir)
	if err != nil {
		log.Printf("Warning: media folder %s unavailable: %v", f.Dir, err)
		return []media.Descriptor{}, nil
	}
	if !info.IsDir() {
		log.Printf("Warning: %s is not a directory", f.Dir)
		return []media.Descriptor{}, nil
	}

	entries, err := os.ReadDir(f.Dir)
	if err != nil {
		log.Printf("Warning: cannot read media folder %s: %v", f.Dir, err)
		return []media.Descriptor{}, nil
	}

	result := make([]media.Descriptor, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() || hidden(entry.Name()) || !mode.Allows(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			// Removed between ReadDir and Info.
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}
		d, ok := media.Describe(filepath.Join(f.Dir, entry.Name()), info.ModTime())
		if ok {
			result = append(result, d)
		}
	}

	media.SortNewestFirst(result)
	return result, nil
}

// Library walks Roots recursively, standing in for a device-wide media index.
type Library struct {
	Roots []string

	// CaptureTime dates files by EXIF or movie header metadata where present,
	// falling back to the modification time.
	CaptureTime bool

	// Verify drops images whose header cannot be decoded.
	Verify bool

	// OnFile, if set, is called for every media file visited.
	OnFile func(path string)
}

// List implements Source.
func (l Library) List(ctx context.Context, mode media.Mode) ([]media.Descriptor, error) {
	result := []media.Descriptor{}
	seen := make(map[string]bool)

	for _, root := range l.Roots {
		if _, err := os.Stat(root); err != nil {
			log.Printf("Warning: library root %s unavailable: %v", root, err)
			continue
		}

		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				log.Printf("Warning: skipping %s: %v", path, err)
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if d.IsDir() {
				if path != root && hidden(d.Name()) {
					return fs.SkipDir
				}
				return nil
			}
			if hidden(d.Name()) || !d.Type().IsRegular() || !mode.Allows(path) {
				return nil
			}
			if seen[path] {
				return nil
			}
			seen[path] = true

			if l.OnFile != nil {
				l.OnFile(path)
			}
			desc, ok := l.describe(path, d)
			if ok {
				result = append(result, desc)
			}
			return nil
		})
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			log.Printf("Warning: walking %s: %v", root, err)
		}
	}

	media.SortNewestFirst(result)
	return result, nil
}

func (l Library) describe(path string, d fs.DirEntry) (media.Descriptor, bool) {
	info, err := d.Info()
	if err != nil {
		return media.Descriptor{}, false
	}
	desc, ok := media.Describe(path, info.ModTime())
	if !ok {
		return desc, false
	}

	if l.Verify && desc.Kind == media.Image {
		if err := probe.Decodable(path); err != nil {
			log.Printf("Warning: skipping %s: %v", path, err)
			return desc, false
		}
	}
	if l.CaptureTime {
		if t, err := probe.CaptureTime(path, desc.Kind); err == nil && !t.IsZero() {
			desc.ModTime = t
		}
	}
	return desc, true
}

// Static serves a fixed descriptor list. Descriptors are filtered by mode and
// sorted newest first on every call; the backing slice is not modified. Kind
// is authoritative when set, and a missing Locator is derived from Path.
type Static []media.Descriptor

// List implements Source.
func (s Static) List(ctx context.Context, mode media.Mode) ([]media.Descriptor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result := make([]media.Descriptor, 0, len(s))
	for _, d := range s {
		kind, ok := d.ResolvedKind()
		if !ok || !mode.AllowsKind(kind) {
			continue
		}
		d.Kind = kind
		if d.Locator = d.ResolvedLocator(); d.Locator == "" {
			continue
		}
		result = append(result, d)
	}
	media.SortNewestFirst(result)
	return result, nil
}

func hidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
