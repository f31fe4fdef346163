package frames

// State is the load state of one frame slot.
type State int

const (
	Pending State = iota
	Loaded
	Failed
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Slot is one position in a Sequence.
type Slot[T any] struct {
	URL   string
	State State
	Value T
}

// Sequence is the fixed-length, ordered set of frames for one viewer.
// Values are produced from load results by a convert function, typically
// a GPU texture upload, so a Sequence must only be used from the thread
// that owns those values.
type Sequence[T any] struct {
	slots   []Slot[T]
	convert func(Result) (T, error)
	loaded  int
	failed  int
}

// NewSequence creates a sequence with one pending slot per frame of src.
func NewSequence[T any](src Source, convert func(Result) (T, error)) *Sequence[T] {
	urls := src.URLs()
	slots := make([]Slot[T], len(urls))
	for i, url := range urls {
		slots[i] = Slot[T]{URL: url}
	}
	return &Sequence[T]{slots: slots, convert: convert}
}

// Len returns the number of frames.
func (s *Sequence[T]) Len() int { return len(s.slots) }

// At returns the slot at index i.
func (s *Sequence[T]) At(i int) Slot[T] { return s.slots[i] }

// Value returns the value at index i and whether it is loaded.
func (s *Sequence[T]) Value(i int) (T, bool) {
	if i < 0 || i >= len(s.slots) || s.slots[i].State != Loaded {
		var zero T
		return zero, false
	}
	return s.slots[i].Value, true
}

// Loaded returns how many frames have loaded.
func (s *Sequence[T]) Loaded() int { return s.loaded }

// Failed returns how many frames failed to load.
func (s *Sequence[T]) Failed() int { return s.failed }

// Settled reports whether every slot has left the pending state.
func (s *Sequence[T]) Settled() bool { return s.loaded+s.failed == len(s.slots) }

// Apply stores one load result. Results for unknown indices or for slots
// that already settled are ignored. It reports whether a slot changed.
func (s *Sequence[T]) Apply(r Result) bool {
	if r.Index < 0 || r.Index >= len(s.slots) {
		return false
	}
	slot := &s.slots[r.Index]
	if slot.State != Pending {
		return false
	}

	if r.Err != nil || r.Image == nil {
		slot.State = Failed
		s.failed++
		return true
	}

	v, err := s.convert(r)
	if err != nil {
		slot.State = Failed
		s.failed++
		return true
	}
	slot.Value = v
	slot.State = Loaded
	s.loaded++
	return true
}

// Drain applies every result that is ready on ch without blocking and
// returns how many slots changed. A nil or closed channel drains nothing.
func (s *Sequence[T]) Drain(ch <-chan Result) int {
	if ch == nil {
		return 0
	}
	changed := 0
	for {
		select {
		case r, ok := <-ch:
			if !ok {
				return changed
			}
			if s.Apply(r) {
				changed++
			}
		default:
			return changed
		}
	}
}

// Each calls fn for every loaded value. Used to release values on teardown.
func (s *Sequence[T]) Each(fn func(i int, v T)) {
	for i, slot := range s.slots {
		if slot.State == Loaded {
			fn(i, slot.Value)
		}
	}
}
