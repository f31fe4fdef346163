// Package frames fetches and holds the ordered frame images of a product turn.
package frames

import (
	"fmt"
	"strings"
)

// Source describes where the frames of one product live.
// Frame n (1-based) is served at {BaseURL}/frames/{n}/.
type Source struct {
	BaseURL string
	Count   int
}

// URL returns the address of frame n, where n is in 1..Count.
func (s Source) URL(n int) string {
	return fmt.Sprintf("%s/frames/%d/", strings.TrimRight(s.BaseURL, "/"), n)
}

// URLs returns the addresses of all frames in order. Element i holds frame i+1.
func (s Source) URLs() []string {
	urls := make([]string, s.Count)
	for i := range urls {
		urls[i] = s.URL(i + 1)
	}
	return urls
}
