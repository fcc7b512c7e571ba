package dom

// Event is a synthetic DOM event delivered to listeners after a value write.
// The applicator fires "input" then "change" for every successful write so
// observers that mirror framework bindings can react in browser order.
type Event struct {
	Type    string
	Target  *Element
	Bubbles bool
}

// Listener receives dispatched events.
type Listener func(Event)

type registration struct {
	eventType string
	fn        Listener
}

// AddEventListener registers a listener for the given event type on this
// element. Bubbling events invoke ancestor listeners after the target's own.
func (e *Element) AddEventListener(eventType string, fn Listener) {
	e.doc.listeners[e.node] = append(e.doc.listeners[e.node], registration{
		eventType: eventType,
		fn:        fn,
	})
}

// Dispatch delivers an event to the element and, when bubbles is true, to each
// of its ancestors in turn. Delivery is synchronous; listeners run on the
// caller's goroutine before Dispatch returns.
func (e *Element) Dispatch(eventType string, bubbles bool) {
	event := Event{Type: eventType, Target: e, Bubbles: bubbles}

	e.deliver(event)
	if !bubbles {
		return
	}
	for el := e.Parent(); el != nil; el = el.Parent() {
		el.deliver(event)
	}
}

func (e *Element) deliver(event Event) {
	for _, reg := range e.doc.listeners[e.node] {
		if reg.eventType == event.Type {
			reg.fn(event)
		}
	}
}
