package web

import (
	"bytes"
	"image/png"
	"io"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/birthday/internal/draw"
	"github.com/tomz197/birthday/internal/scene"
)

func newTestServer(t *testing.T, opts Options) *httptest.Server {
	t.Helper()
	opts.Logger = log.New(io.Discard)
	r := chi.NewRouter()
	NewHandler(opts).RegisterRoutes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func TestIndexShowsConnectHint(t *testing.T) {
	srv := newTestServer(t, Options{
		Title:    "Happy Birthday!",
		Subtitle: "<Shreya>",
		SSHHost:  "party.example.com",
		SSHPort:  "2222",
	})

	resp, body := get(t, srv.URL+"/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, string(body), "ssh -t party.example.com -p 2222")
	assert.Contains(t, string(body), "&lt;Shreya&gt;", "text is escaped")
}

func TestIndexOmitsDefaultPort(t *testing.T) {
	srv := newTestServer(t, Options{SSHHost: "party.example.com", SSHPort: "22"})
	_, body := get(t, srv.URL+"/")
	assert.Contains(t, string(body), "ssh -t party.example.com</code>")
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, Options{})
	resp, body := get(t, srv.URL+"/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok\n", string(body))
}

func TestSnapshotRoute(t *testing.T) {
	g := scene.NewGraph(draw.Black)
	g.Add(scene.NewStarfield(rand.New(rand.NewPCG(1, 1)), 500, 1000))

	srv := newTestServer(t, Options{Graph: g})
	resp, body := get(t, srv.URL+"/snapshot.png?w=64&h=5000&polar=45")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))

	img, err := png.Decode(bytes.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, maxSnapshotHeight, img.Bounds().Dy())
}

func TestSnapshotRouteNeedsGraph(t *testing.T) {
	srv := newTestServer(t, Options{})
	resp, _ := get(t, srv.URL+"/snapshot.png")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSnapshotShowsPainting(t *testing.T) {
	g := scene.NewGraph(draw.Black)
	g.Add(scene.NewAmbientLight(draw.Hex(0xffffff), 1))
	panel := scene.NewPanel(nil, 0, 1, 0)
	g.Add(panel.Painting)

	// Looking down +Z at the wooden box sitting at the origin.
	img := Snapshot(g, 40, 40, 1.5707963, 0, 20)
	c := img.RGBAAt(20, 20)
	assert.NotEqual(t, uint8(0), c.R)
}

func TestPaintingsServed(t *testing.T) {
	assets := fstest.MapFS{"dog.jpeg": {Data: []byte("woof")}}
	srv := newTestServer(t, Options{Assets: assets})

	resp, body := get(t, srv.URL+"/paintings/dog.jpeg")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "woof", string(body))

	resp, _ = get(t, srv.URL+"/paintings/cat.jpeg")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestQueryHelpers(t *testing.T) {
	assert.Equal(t, 7, queryInt("7", 1))
	assert.Equal(t, 1, queryInt("x", 1))
	assert.Equal(t, 2.5, queryFloat("2.5", 1))
	assert.Equal(t, 1.0, queryFloat("NaN", 1))
	assert.Equal(t, 10, clampInt(50, 1, 10))
}
