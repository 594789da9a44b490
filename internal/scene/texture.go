package scene

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"math"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/singleflight"
)

// TextureSource loads a decoded image for a URL or path.
type TextureSource interface {
	Load(ctx context.Context, url string) (*image.RGBA, error)
}

// LoaderOptions configures a Loader.
type LoaderOptions struct {
	FS        fs.FS        // Local files are read from FS when set, otherwise from the OS
	Client    *http.Client // Used for http(s) URLs; http.DefaultClient when nil
	MaxWidth  int          // Larger images are downscaled to fit; 0 disables
	MaxHeight int
	MaxBytes  int64         // Largest encoded image accepted; DefaultMaxBytes when 0
	Timeout   time.Duration // Bound on one shared fetch; DefaultFetchTimeout when 0
}

// Loader defaults.
const (
	DefaultMaxBytes     = 32 << 20
	DefaultFetchTimeout = 30 * time.Second
)

// Loader fetches and decodes textures. Successful results are cached and
// concurrent loads of the same URL share one fetch, so every session on a
// server reuses the same decoded pictures.
type Loader struct {
	opts  LoaderOptions
	group singleflight.Group

	mu    sync.RWMutex
	cache map[string]*image.RGBA
}

// Compile-time check that Loader implements TextureSource.
var _ TextureSource = (*Loader)(nil)

// NewLoader creates a texture loader.
func NewLoader(opts LoaderOptions) *Loader {
	if opts.Client == nil {
		opts.Client = http.DefaultClient
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = DefaultMaxBytes
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultFetchTimeout
	}
	return &Loader{opts: opts, cache: make(map[string]*image.RGBA)}
}

// Load returns the texture at url. Failed loads are not cached.
//
// A fetch shared by several callers is not tied to any one caller's
// context: a caller whose ctx ends stops waiting, the others still get
// the image.
func (l *Loader) Load(ctx context.Context, url string) (*image.RGBA, error) {
	l.mu.RLock()
	img, ok := l.cache[url]
	l.mu.RUnlock()
	if ok {
		return img, nil
	}

	ch := l.group.DoChan(url, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), l.opts.Timeout)
		defer cancel()
		data, err := l.fetch(fetchCtx, url)
		if err != nil {
			return nil, err
		}
		img, err := l.decode(data)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", url, err)
		}
		l.mu.Lock()
		l.cache[url] = img
		l.mu.Unlock()
		return img, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*image.RGBA), nil
	}
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("build request for %s: %w", url, err)
		}
		resp, err := l.opts.Client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", url, err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
		}
		return l.readLimited(resp.Body, url)
	}

	var (
		f   io.ReadCloser
		err error
	)
	if l.opts.FS != nil {
		f, err = l.opts.FS.Open(url)
	} else {
		f, err = os.Open(url)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	defer f.Close()
	return l.readLimited(f, url)
}

// ErrTooLarge is returned for images over LoaderOptions.MaxBytes.
var ErrTooLarge = errors.New("image too large")

func (l *Loader) readLimited(r io.Reader, url string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, l.opts.MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	if int64(len(data)) > l.opts.MaxBytes {
		return nil, fmt.Errorf("read %s: %w (over %d bytes)", url, ErrTooLarge, l.opts.MaxBytes)
	}
	return data, nil
}

// decode turns encoded bytes into an RGBA image no larger than the configured bounds.
func (l *Loader) decode(data []byte) (*image.RGBA, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	b := src.Bounds()
	w, h := fitWithin(b.Dx(), b.Dy(), l.opts.MaxWidth, l.opts.MaxHeight)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	} else {
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	}
	return dst, nil
}

// fitWithin scales (w, h) down, keeping the aspect ratio, until it fits (maxW, maxH).
func fitWithin(w, h, maxW, maxH int) (int, int) {
	if maxW <= 0 || maxH <= 0 || (w <= maxW && h <= maxH) {
		return w, h
	}
	scale := min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	return max(1, int(math.Round(float64(w)*scale))), max(1, int(math.Round(float64(h)*scale)))
}
