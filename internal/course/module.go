package course

// Topic is one lesson within a module.
type Topic struct {
	ID   string
	Name string
}

// Module is one section of the SPI course outline.
type Module struct {
	ID            string
	Name          string
	Description   string
	Topics        []Topic
	Prerequisites []string
}

// TopicIDs returns the IDs of the module's topics in order.
func (m Module) TopicIDs() []string {
	ids := make([]string, len(m.Topics))
	for i, t := range m.Topics {
		ids[i] = t.ID
	}
	return ids
}

// PassingScore is the best quiz score at which a module counts as passed.
const PassingScore = 70

// Status is a module's state relative to the learner.
type Status int

const (
	StatusLocked    Status = iota // A prerequisite module is not yet passed
	StatusAvailable               // Unlocked, no questions answered yet
	StatusStudying                // Questions answered, quiz not yet passed
	StatusPassed                  // Best quiz score at or above PassingScore
)

// Icon returns the display icon for a status.
func (s Status) Icon() string {
	switch s {
	case StatusLocked:
		return "🔒"
	case StatusAvailable:
		return "🔓"
	case StatusStudying:
		return "📖"
	case StatusPassed:
		return "✅"
	default:
		return "?"
	}
}

// Label returns the display label for a status.
func (s Status) Label() string {
	switch s {
	case StatusLocked:
		return "Locked"
	case StatusAvailable:
		return "Available"
	case StatusStudying:
		return "Studying"
	case StatusPassed:
		return "Passed"
	default:
		return "Unknown"
	}
}
