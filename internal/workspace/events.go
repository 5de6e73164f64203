package workspace

import (
	"context"
	"sync"
	"time"
)

type EventKind string

const (
	EventScenarioAdded    EventKind = "scenario_added"
	EventVisionUpdated    EventKind = "vision_updated"
	EventComponentAdded   EventKind = "component_added"
	EventComponentUpdated EventKind = "component_updated"
	EventCapabilityAdded  EventKind = "capability_added"
	EventCleared          EventKind = "cleared"
)

const subscriberBuffer = 16

// Event describes one store mutation and the resulting sizes.
type Event struct {
	Kind         EventKind `json:"kind"`
	Subject      string    `json:"subject,omitempty"`
	Scenarios    int       `json:"scenarios"`
	Components   int       `json:"components"`
	Capabilities int       `json:"capabilities"`
	At           time.Time `json:"at"`
}

type broadcaster struct {
	mu   sync.Mutex
	subs map[chan Event]struct{}
}

func newBroadcaster() *broadcaster {
	return &broadcaster{subs: make(map[chan Event]struct{})}
}

func (b *broadcaster) subscribe(ctx context.Context) <-chan Event {
	ch := make(chan Event, subscriberBuffer)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subs, ch)
		close(ch)
		b.mu.Unlock()
	}()
	return ch
}

func (b *broadcaster) publish(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
