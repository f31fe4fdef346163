package frames

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestSourceURL(t *testing.T) {
	tests := []struct {
		base string
		n    int
		want string
	}{
		{"https://cdn.example.com/api/v2/4404/products/CHAIR", 1, "https://cdn.example.com/api/v2/4404/products/CHAIR/frames/1/"},
		{"https://cdn.example.com/api/v2/4404/products/CHAIR/", 32, "https://cdn.example.com/api/v2/4404/products/CHAIR/frames/32/"},
		{"http://localhost:8080", 7, "http://localhost:8080/frames/7/"},
	}

	for _, tt := range tests {
		src := Source{BaseURL: tt.base, Count: 32}
		if got := src.URL(tt.n); got != tt.want {
			t.Errorf("URL(%d) = %s, want %s", tt.n, got, tt.want)
		}
	}
}

func TestSourceURLs(t *testing.T) {
	src := Source{BaseURL: "http://x", Count: 32}
	urls := src.URLs()
	if len(urls) != 32 {
		t.Fatalf("got %d urls, want 32", len(urls))
	}
	if urls[0] != "http://x/frames/1/" {
		t.Errorf("urls[0] = %s", urls[0])
	}
	if urls[31] != "http://x/frames/32/" {
		t.Errorf("urls[31] = %s", urls[31])
	}
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 0x80, A: 0xff})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding png: %v", err)
	}
	return buf.Bytes()
}

// frameServer serves a PNG for every frame except frame 5 (404)
// and frame 6 (not an image).
func frameServer(t *testing.T) *httptest.Server {
	t.Helper()
	body := encodePNG(t, 8, 4)
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/frames/5/"):
			http.NotFound(w, r)
		case strings.HasSuffix(r.URL.Path, "/frames/6/"):
			w.Write([]byte("definitely not an image"))
		case strings.Contains(r.URL.Path, "/frames/"):
			w.Header().Set("Content-Type", "image/png")
			w.Write(body)
		default:
			http.NotFound(w, r)
		}
	}))
}

func collect(t *testing.T, ch <-chan Result) []Result {
	t.Helper()
	var out []Result
	timeout := time.After(10 * time.Second)
	for {
		select {
		case r, ok := <-ch:
			if !ok {
				return out
			}
			out = append(out, r)
		case <-timeout:
			t.Fatalf("timed out after %d results", len(out))
		}
	}
}

func TestPreload(t *testing.T) {
	srv := frameServer(t)
	defer srv.Close()

	l := NewLoader(srv.Client(), nil)
	results := collect(t, l.Preload(Source{BaseURL: srv.URL + "/products/CHAIR", Count: 32}))

	if len(results) != 32 {
		t.Fatalf("got %d results, want 32", len(results))
	}

	seen := make(map[int]bool)
	for _, r := range results {
		if seen[r.Index] {
			t.Errorf("duplicate result for index %d", r.Index)
		}
		seen[r.Index] = true

		switch r.Index {
		case 4, 5: // frames 5 and 6
			if r.Err == nil {
				t.Errorf("index %d: expected error", r.Index)
			}
		default:
			if r.Err != nil {
				t.Errorf("index %d: unexpected error %v", r.Index, r.Err)
				continue
			}
			if b := r.Image.Bounds(); b.Dx() != 8 || b.Dy() != 4 {
				t.Errorf("index %d: size %dx%d, want 8x4", r.Index, b.Dx(), b.Dy())
			}
		}
	}
}

func TestFetchStatusError(t *testing.T) {
	srv := frameServer(t)
	defer srv.Close()

	l := NewLoader(srv.Client(), nil)
	_, err := l.Fetch(srv.URL + "/frames/5/")
	if err == nil || !strings.Contains(err.Error(), "404") {
		t.Errorf("expected 404 error, got %v", err)
	}
}

func TestFetchUnreachable(t *testing.T) {
	srv := frameServer(t)
	url := srv.URL + "/frames/1/"
	srv.Close()

	l := NewLoader(nil, nil)
	if _, err := l.Fetch(url); err == nil {
		t.Error("expected error fetching from a closed server")
	}
}

func identity(r Result) (image.Image, error) { return r.Image, nil }

func TestSequenceApply(t *testing.T) {
	src := Source{BaseURL: "http://x", Count: 4}
	seq := NewSequence(src, identity)

	if seq.Len() != 4 {
		t.Fatalf("Len = %d, want 4", seq.Len())
	}
	if seq.At(2).URL != "http://x/frames/3/" {
		t.Errorf("slot 2 url = %s", seq.At(2).URL)
	}
	if seq.At(0).State != Pending {
		t.Errorf("initial state = %v, want pending", seq.At(0).State)
	}

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	if !seq.Apply(Result{Index: 0, Image: img}) {
		t.Error("apply of a loaded frame returned false")
	}
	if !seq.Apply(Result{Index: 1, Err: errors.New("boom")}) {
		t.Error("apply of a failed frame returned false")
	}
	if seq.Apply(Result{Index: 0, Image: img}) {
		t.Error("second apply to a settled slot returned true")
	}
	if seq.Apply(Result{Index: 9, Image: img}) {
		t.Error("apply out of range returned true")
	}

	if v, ok := seq.Value(0); !ok || v != img {
		t.Error("Value(0) did not return the loaded image")
	}
	if _, ok := seq.Value(1); ok {
		t.Error("Value(1) reported a failed frame as loaded")
	}
	if _, ok := seq.Value(-1); ok {
		t.Error("Value(-1) reported loaded")
	}
	if seq.Loaded() != 1 || seq.Failed() != 1 {
		t.Errorf("loaded=%d failed=%d, want 1 and 1", seq.Loaded(), seq.Failed())
	}
	if seq.Settled() {
		t.Error("sequence settled with pending slots")
	}
}

func TestSequenceConvertError(t *testing.T) {
	seq := NewSequence(Source{BaseURL: "http://x", Count: 1}, func(Result) (int, error) {
		return 0, errors.New("upload failed")
	})
	seq.Apply(Result{Index: 0, Image: image.NewRGBA(image.Rect(0, 0, 1, 1))})
	if seq.At(0).State != Failed {
		t.Errorf("state = %v, want failed", seq.At(0).State)
	}
	if !seq.Settled() {
		t.Error("expected settled")
	}
}

func TestSequenceDrain(t *testing.T) {
	seq := NewSequence(Source{BaseURL: "http://x", Count: 3}, identity)
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))

	ch := make(chan Result, 3)
	if n := seq.Drain(ch); n != 0 {
		t.Errorf("drain of empty channel = %d, want 0", n)
	}

	ch <- Result{Index: 2, Image: img}
	ch <- Result{Index: 0, Image: img}
	if n := seq.Drain(ch); n != 2 {
		t.Errorf("drain = %d, want 2", n)
	}

	ch <- Result{Index: 1, Err: errors.New("gone")}
	close(ch)
	if n := seq.Drain(ch); n != 1 {
		t.Errorf("drain = %d, want 1", n)
	}
	if !seq.Settled() {
		t.Error("expected settled")
	}
	if n := seq.Drain(nil); n != 0 {
		t.Errorf("drain(nil) = %d, want 0", n)
	}

	var indices []int
	seq.Each(func(i int, _ image.Image) { indices = append(indices, i) })
	if len(indices) != 2 || indices[0] != 0 || indices[1] != 2 {
		t.Errorf("Each visited %v, want [0 2]", indices)
	}
}

func TestStateString(t *testing.T) {
	for s, want := range map[State]string{Pending: "pending", Loaded: "loaded", Failed: "failed", State(9): "unknown"} {
		if s.String() != want {
			t.Errorf("State(%d).String() = %q, want %q", int(s), s.String(), want)
		}
	}
}
