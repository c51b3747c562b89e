package events

import "sync"

type EventType string

const (
	EventMatchScheduled   EventType = "MATCH_SCHEDULED"
	EventMatchRescheduled EventType = "MATCH_RESCHEDULED"
	EventMatchUnscheduled EventType = "MATCH_UNSCHEDULED"
	EventScheduleCleared  EventType = "SCHEDULE_CLEARED"
	EventFixturesCreated  EventType = "FIXTURES_CREATED"
	EventBracketGenerated EventType = "BRACKET_GENERATED"
)

type Event struct {
	Type    EventType `json:"type"`
	Room    string    `json:"room,omitempty"`
	Payload any       `json:"payload"`
}

// Hub fans events out to in-process subscribers grouped by room
// (typically one room per tournament). Delivery is best effort: a
// subscriber whose buffer is full misses the event rather than blocking
// the publisher. Wiring rooms to an actual transport is the host's job.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[string]map[chan Event]struct{})}
}

// Subscribe registers a buffered channel on a room and returns it with a
// cancel func. Cancel is idempotent and closes the channel.
func (h *Hub) Subscribe(room string, buffer int) (<-chan Event, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan Event, buffer)

	h.mu.Lock()
	if _, ok := h.rooms[room]; !ok {
		h.rooms[room] = make(map[chan Event]struct{})
	}
	h.rooms[room][ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			if subs, ok := h.rooms[room]; ok {
				delete(subs, ch)
				if len(subs) == 0 {
					delete(h.rooms, room)
				}
			}
			h.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Publish delivers the event to every subscriber of the room. No-op for
// rooms without subscribers.
func (h *Hub) Publish(room string, eventType EventType, payload any) {
	ev := Event{Type: eventType, Room: room, Payload: payload}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.rooms[room] {
		select {
		case ch <- ev:
		default:
		}
	}
}
