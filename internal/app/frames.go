package app

import (
	"github.com/Faultbox/spinview/internal/frames"
	"github.com/Faultbox/spinview/internal/viewer"
)

// frameSet exposes a frame sequence to the viewer.
type frameSet[T viewer.Image] struct {
	seq *frames.Sequence[T]
}

func (f frameSet[T]) Len() int { return f.seq.Len() }

func (f frameSet[T]) Frame(i int) (viewer.Image, bool) {
	v, ok := f.seq.Value(i)
	if !ok {
		return nil, false
	}
	return v, true
}

// progress tracks how far preloading has come and reports each change once.
type progress struct {
	total    int
	loaded   int
	failed   int
	reported bool
}

// update records the sequence counters and reports whether they moved.
func (p *progress) update(loaded, failed int) bool {
	if loaded == p.loaded && failed == p.failed {
		return false
	}
	p.loaded, p.failed = loaded, failed
	return true
}

func (p *progress) settled() bool { return p.loaded+p.failed >= p.total }
