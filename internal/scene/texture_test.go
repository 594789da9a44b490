package scene

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestLoaderReadsAndDownscales(t *testing.T) {
	fsys := fstest.MapFS{
		"assets/big.png": {Data: encodePNG(t, 400, 600, color.RGBA{R: 200, A: 255})},
	}
	l := NewLoader(LoaderOptions{FS: fsys, MaxWidth: 100, MaxHeight: 100})

	img, err := l.Load(context.Background(), "assets/big.png")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 67, 100), img.Bounds())
	assert.Equal(t, uint8(200), img.RGBAAt(10, 10).R)

	again, err := l.Load(context.Background(), "assets/big.png")
	require.NoError(t, err)
	assert.Same(t, img, again, "second load is served from cache")
}

func TestLoaderMissingAndCorrupt(t *testing.T) {
	fsys := fstest.MapFS{
		"bad.png": {Data: []byte("not an image")},
	}
	l := NewLoader(LoaderOptions{FS: fsys})

	_, err := l.Load(context.Background(), "missing.png")
	assert.Error(t, err)

	_, err = l.Load(context.Background(), "bad.png")
	assert.Error(t, err)
}

func TestLoaderHTTP(t *testing.T) {
	var hits atomic.Int32
	data := encodePNG(t, 8, 8, color.White)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/ok.png" {
			http.NotFound(w, r)
			return
		}
		w.Write(data)
	}))
	defer srv.Close()

	l := NewLoader(LoaderOptions{Client: srv.Client()})
	img, err := l.Load(context.Background(), srv.URL+"/ok.png")
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dx())

	_, err = l.Load(context.Background(), srv.URL+"/gone.png")
	assert.Error(t, err)

	_, err = l.Load(context.Background(), srv.URL+"/ok.png")
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

func TestLoaderSharedFetchSurvivesCallerCancel(t *testing.T) {
	data := encodePNG(t, 4, 4, color.White)
	started := make(chan struct{})
	release := make(chan struct{})
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			close(started)
		}
		<-release
		w.Write(data)
	}))
	defer srv.Close()
	url := srv.URL + "/slow.png"

	l := NewLoader(LoaderOptions{Client: srv.Client()})

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := l.Load(firstCtx, url)
		firstErr <- err
	}()
	<-started

	type result struct {
		img *image.RGBA
		err error
	}
	second := make(chan result, 1)
	go func() {
		img, err := l.Load(context.Background(), url)
		second <- result{img, err}
	}()

	cancelFirst()
	select {
	case err := <-firstErr:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("cancelled caller kept waiting")
	}

	close(release)
	select {
	case res := <-second:
		require.NoError(t, res.err)
		assert.Equal(t, 4, res.img.Bounds().Dx())
	case <-time.After(2 * time.Second):
		t.Fatal("second caller never got the image")
	}
	assert.Equal(t, int32(1), hits.Load(), "both callers share one fetch")

	img, err := l.Load(context.Background(), url)
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dy(), "result is cached")
}

func TestLoaderRejectsOversizedImages(t *testing.T) {
	data := encodePNG(t, 64, 64, color.White)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(data)
	}))
	defer srv.Close()
	fsys := fstest.MapFS{"big.png": {Data: data}}

	small := NewLoader(LoaderOptions{Client: srv.Client(), FS: fsys, MaxBytes: 16})
	_, err := small.Load(context.Background(), srv.URL+"/big.png")
	assert.ErrorIs(t, err, ErrTooLarge)
	_, err = small.Load(context.Background(), "big.png")
	assert.ErrorIs(t, err, ErrTooLarge)

	roomy := NewLoader(LoaderOptions{Client: srv.Client(), MaxBytes: int64(len(data))})
	_, err = roomy.Load(context.Background(), srv.URL+"/big.png")
	assert.NoError(t, err)
}

func TestFitWithin(t *testing.T) {
	tests := []struct {
		name             string
		w, h, maxW, maxH int
		wantW, wantH     int
	}{
		{"already fits", 10, 20, 100, 100, 10, 20},
		{"no limit", 1000, 1000, 0, 0, 1000, 1000},
		{"wide", 400, 100, 100, 100, 100, 25},
		{"tall", 100, 400, 100, 100, 25, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := fitWithin(tt.w, tt.h, tt.maxW, tt.maxH)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}
}
