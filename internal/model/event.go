package model

const (
	EventTypeClass = "class"
	EventTypeTrial = "trial"
	EventTypeEvent = "event"
)

const (
	EventStatusScheduled = "scheduled"
	EventStatusConfirmed = "confirmed"
	EventStatusCompleted = "completed"
	EventStatusCancelled = "cancelled"
)

// Event is a single item on the school calendar.
type Event struct {
	ID          int64  `json:"id"`
	Date        Date   `json:"date"`
	Time        string `json:"time"` // "16:30"
	Title       string `json:"title"`
	Type        string `json:"type"`
	Status      string `json:"status"`
	Description string `json:"description"`
}

func (e Event) Clone() Event {
	return e
}

type EventPatch struct {
	Date        Optional[Date] `json:"date,omitzero"`
	Time        *string        `json:"time"`
	Title       *string        `json:"title"`
	Type        *string        `json:"type"`
	Status      *string        `json:"status"`
	Description *string        `json:"description"`
}

func (p EventPatch) Apply(e *Event) {
	p.Date.applyValue(&e.Date)
	if p.Time != nil {
		e.Time = *p.Time
	}
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Type != nil {
		e.Type = *p.Type
	}
	if p.Status != nil {
		e.Status = *p.Status
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
}
