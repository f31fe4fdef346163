package input

// Listener receives dispatched events.
type Listener func(Event)

type registration struct {
	id int
	fn Listener
}

// Dispatcher delivers events to listeners registered for the whole window.
// Components attach listeners when they mount and call the returned remove
// functions when they unmount. It is used from the event loop only.
type Dispatcher struct {
	nextID    int
	listeners map[EventType][]registration
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{listeners: make(map[EventType][]registration)}
}

// Listen registers fn for events of type t and returns a function that
// removes it. Calling the remove function more than once is harmless.
func (d *Dispatcher) Listen(t EventType, fn Listener) (remove func()) {
	d.nextID++
	id := d.nextID
	d.listeners[t] = append(d.listeners[t], registration{id: id, fn: fn})

	return func() {
		regs := d.listeners[t]
		for i, r := range regs {
			if r.id == id {
				// Copy so a dispatch in progress keeps its snapshot intact.
				next := make([]registration, 0, len(regs)-1)
				next = append(next, regs[:i]...)
				next = append(next, regs[i+1:]...)
				if len(next) == 0 {
					delete(d.listeners, t)
				} else {
					d.listeners[t] = next
				}
				return
			}
		}
	}
}

// Dispatch delivers e to every listener registered for its type, in
// registration order. Changes made by listeners apply from the next event.
func (d *Dispatcher) Dispatch(e Event) {
	for _, r := range d.listeners[e.Type] {
		r.fn(e)
	}
}

// DispatchAll delivers events in order.
func (d *Dispatcher) DispatchAll(events []Event) {
	for _, e := range events {
		d.Dispatch(e)
	}
}

// Count returns the number of listeners registered for t.
func (d *Dispatcher) Count(t EventType) int {
	return len(d.listeners[t])
}
