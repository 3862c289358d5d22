// Package source turns opaque image handles (paths, data URLs, http URLs)
// into decoded images. A handle that cannot be loaded yields a placeholder
// picture instead of an error the viewer has to deal with.
package source

import (
	"bytes"
	"context"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/vincent-petithory/dataurl"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"artlens/internal/httpx"
)

// Kind classifies a handle.
type Kind int

const (
	KindFile Kind = iota
	KindData
	KindHTTP
	KindEmpty
)

// Image is a loaded (or failed) source.
type Image struct {
	Handle string
	Image  image.Image
	Format string
	Bytes  int
	// Err is set when the handle could not be loaded; Image then holds the
	// broken-image placeholder.
	Err error
}

// Broken reports whether the placeholder is being shown.
func (i Image) Broken() bool { return i.Err != nil }

// Classify returns the kind of handle.
func Classify(handle string) Kind {
	h := strings.TrimSpace(handle)
	switch {
	case h == "":
		return KindEmpty
	case strings.HasPrefix(h, "data:"):
		return KindData
	case strings.HasPrefix(h, "http://"), strings.HasPrefix(h, "https://"):
		return KindHTTP
	default:
		return KindFile
	}
}

// IsLocal reports whether handle names a file on disk.
func IsLocal(handle string) bool { return Classify(handle) == KindFile }

// Path resolves a file handle to an absolute path with ~ expanded.
func Path(handle string) (string, error) {
	if !IsLocal(handle) {
		return "", errors.Errorf("%q is not a file handle", Short(handle))
	}
	p := strings.TrimPrefix(strings.TrimSpace(handle), "file://")
	p, err := homedir.Expand(p)
	if err != nil {
		return "", errors.Wrap(err, "expand home")
	}
	p = os.ExpandEnv(p)
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", errors.Wrap(err, "absolute path")
	}
	return abs, nil
}

// Load resolves and decodes handle. It never returns a nil Image field.
func Load(ctx context.Context, handle string) Image {
	out := Image{Handle: handle}
	data, err := Read(ctx, handle)
	if err != nil {
		out.Err = err
		out.Image = Placeholder(placeholderSize, placeholderSize)
		return out
	}
	out.Bytes = len(data)
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		out.Err = errors.Wrap(err, "decode image")
		out.Image = Placeholder(placeholderSize, placeholderSize)
		return out
	}
	out.Image, out.Format = img, format
	return out
}

// Read returns the raw bytes behind handle.
func Read(ctx context.Context, handle string) ([]byte, error) {
	switch Classify(handle) {
	case KindEmpty:
		return nil, errors.New("empty image source")
	case KindData:
		return decodeDataURL(strings.TrimSpace(handle))
	case KindHTTP:
		return httpx.Fetch(ctx, strings.TrimSpace(handle))
	default:
		p, err := Path(handle)
		if err != nil {
			return nil, err
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, errors.Wrap(err, "read image")
		}
		return data, nil
	}
}

// decodeDataURL decodes an RFC 2397 data URL. Base64 payloads whose
// padding was dropped are accepted as well.
func decodeDataURL(s string) ([]byte, error) {
	du, err := dataurl.DecodeString(padBase64(s))
	if err != nil {
		return nil, errors.Wrap(err, "malformed data URL")
	}
	return du.Data, nil
}

func padBase64(s string) string {
	comma := strings.IndexByte(s, ',')
	if comma < 0 || !strings.HasSuffix(s[:comma], ";base64") {
		return s
	}
	if n := (len(s) - comma - 1) % 4; n != 0 {
		s += strings.Repeat("=", 4-n)
	}
	return s
}

// Short is a display form of handle: data URLs are elided.
func Short(handle string) string {
	h := strings.TrimSpace(handle)
	if Classify(h) == KindData {
		meta := strings.TrimPrefix(h, "data:")
		if i := strings.IndexByte(meta, ','); i >= 0 {
			meta = meta[:i]
		}
		return "data:" + meta + ",…"
	}
	return h
}
