package notify

// Kind identifies a state-change broadcast.
type Kind string

const (
	EventCreated        Kind = "eventCreated"
	EventUpdated        Kind = "eventUpdated"
	EventDeleted        Kind = "eventDeleted"
	RegistrationChanged Kind = "registrationChanged"
)

// Message is the wire shape delivered to every connected client.
type Message struct {
	Kind    Kind        `json:"kind"`
	Payload interface{} `json:"payload"`
}

// Notifier fans a state change out to connected clients. Delivery is
// best-effort and never blocks the triggering write.
type Notifier interface {
	Publish(kind Kind, payload interface{})
}

// Noop discards every notification. Used in tests and as a fallback when no
// hub is attached.
type Noop struct{}

func (Noop) Publish(Kind, interface{}) {}
