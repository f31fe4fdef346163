package frames

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// Result is the outcome of loading one frame.
type Result struct {
	Index int // 0-based position in the sequence
	URL   string
	Image image.Image
	Err   error
}

// Loader fetches frame images over HTTP.
type Loader struct {
	client *http.Client
	log    *zap.Logger
}

// NewLoader creates a loader. A nil client means http.DefaultClient,
// which has no timeout.
func NewLoader(client *http.Client, log *zap.Logger) *Loader {
	if client == nil {
		client = http.DefaultClient
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{client: client, log: log}
}

// Preload starts loading every frame of src at once, one goroutine per frame,
// and returns a channel that yields each result as it completes. Results
// arrive in completion order. The channel is buffered for every frame so
// loads never wait on the reader, and it is closed after the last one.
//
// Loads are not retried and cannot be cancelled.
func (l *Loader) Preload(src Source) <-chan Result {
	urls := src.URLs()
	results := make(chan Result, len(urls))

	l.log.Info("preloading frames",
		zap.Int("count", len(urls)),
		zap.String("base_url", src.BaseURL),
	)

	var wg sync.WaitGroup
	for i, url := range urls {
		wg.Add(1)
		go func() {
			defer wg.Done()
			start := time.Now()
			img, err := l.Fetch(url)
			if err != nil {
				l.log.Warn("frame load failed",
					zap.Int("index", i),
					zap.String("url", url),
					zap.Error(err),
				)
			} else {
				l.log.Debug("frame loaded",
					zap.Int("index", i),
					zap.Duration("took", time.Since(start)),
				)
			}
			results <- Result{Index: i, URL: url, Image: img, Err: err}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// Fetch downloads and decodes a single image.
func (l *Loader) Fetch(url string) (image.Image, error) {
	resp, err := l.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("requesting %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("requesting %s: unexpected status %s", url, resp.Status)
	}

	img, format, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", url, err)
	}
	l.log.Debug("decoded frame",
		zap.String("url", url),
		zap.String("format", format),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()),
	)
	return img, nil
}
