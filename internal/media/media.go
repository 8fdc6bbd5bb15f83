// Package media defines media kinds, picker modes and raw media descriptors.
package media

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Kind is the media type of a single entry. The zero value is Unknown.
type Kind int

const (
	Unknown Kind = iota
	Image
	Video
)

func (k Kind) String() string {
	switch k {
	case Unknown:
		return "unknown"
	case Image:
		return "image"
	case Video:
		return "video"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// MarshalText encodes the kind as its lowercase name.
func (k Kind) MarshalText() ([]byte, error) {
	switch k {
	case Image, Video:
		return []byte(k.String()), nil
	}
	return nil, fmt.Errorf("unknown media kind %d", int(k))
}

// ImageExtensions and VideoExtensions hold the lowercase extensions (with the
// leading dot) the picker recognises.
var (
	ImageExtensions = map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".webp": true,
	}
	VideoExtensions = map[string]bool{
		".mp4": true,
		".avi": true,
		".mkv": true,
		".mov": true,
	}
)

// KindOf returns the media kind for path based on its extension.
func KindOf(path string) (Kind, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case ImageExtensions[ext]:
		return Image, true
	case VideoExtensions[ext]:
		return Video, true
	}
	return Unknown, false
}

// ErrInvalidMode is returned by ParseMode for unrecognised names.
var ErrInvalidMode = errors.New("invalid mode")

// Mode restricts which kinds of media a listing includes.
type Mode int

const (
	All Mode = iota
	Picture
	VideoOnly
)

func (m Mode) String() string {
	switch m {
	case Picture:
		return "picture"
	case VideoOnly:
		return "video"
	default:
		return "all"
	}
}

// Allows reports whether a file at path is part of mode.
func (m Mode) Allows(path string) bool {
	kind, _ := KindOf(path)
	return m.AllowsKind(kind)
}

// AllowsKind reports whether media of kind is part of mode. Unknown is never
// allowed.
func (m Mode) AllowsKind(kind Kind) bool {
	if kind != Image && kind != Video {
		return false
	}
	switch m {
	case Picture:
		return kind == Image
	case VideoOnly:
		return kind == Video
	default:
		return true
	}
}

// ParseMode parses "picture", "image", "video" or "all", ignoring case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "picture", "pictures", "image", "images":
		return Picture, nil
	case "video", "videos":
		return VideoOnly, nil
	case "all", "":
		return All, nil
	}
	return All, fmt.Errorf("%w %q (want picture, video or all)", ErrInvalidMode, s)
}

// Descriptor is one raw media file as reported by a source.
type Descriptor struct {
	Locator string
	Path    string
	Kind    Kind
	ModTime time.Time
}

// ResolvedKind returns d.Kind, or when it is Unknown, the kind implied by
// the extension of Path and then Locator.
func (d Descriptor) ResolvedKind() (Kind, bool) {
	if d.Kind == Image || d.Kind == Video {
		return d.Kind, true
	}
	if k, ok := KindOf(d.Path); ok {
		return k, true
	}
	return KindOf(d.Locator)
}

// ResolvedLocator returns d.Locator, or the file:// locator of Path when the
// locator is empty. It returns "" when neither is set.
func (d Descriptor) ResolvedLocator() string {
	if d.Locator != "" {
		return d.Locator
	}
	if d.Path != "" {
		return LocatorFor(d.Path)
	}
	return ""
}

// Describe builds a descriptor for path. It returns false when the extension
// is not a known media type.
func Describe(path string, modTime time.Time) (Descriptor, bool) {
	kind, ok := KindOf(path)
	if !ok {
		return Descriptor{}, false
	}
	return Descriptor{
		Locator: LocatorFor(path),
		Path:    path,
		Kind:    kind,
		ModTime: modTime,
	}, true
}

// LocatorFor converts a filesystem path into an absolute file:// URI.
func LocatorFor(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = filepath.Clean(path)
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String()
}

// NormalizeLocator turns a path or URI into the locator form used in
// descriptors. Values that already carry a scheme are returned unchanged.
func NormalizeLocator(s string) string {
	if strings.Contains(s, "://") {
		return s
	}
	return LocatorFor(s)
}

// SortNewestFirst orders descriptors by ModTime descending. Ties keep their
// original order.
func SortNewestFirst(ds []Descriptor) {
	sort.SliceStable(ds, func(i, j int) bool {
		return ds[i].ModTime.After(ds[j].ModTime)
	})
}
