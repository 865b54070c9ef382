package board

import (
	"time"

	"reforma-painel/internal/constants"
)

// Urgency classifies a pendency's deadline relative to today.
type Urgency int

const (
	NoDeadline Urgency = iota
	Upcoming
	DueToday
	Overdue
	Done
)

func (u Urgency) String() string {
	switch u {
	case Upcoming:
		return "upcoming"
	case DueToday:
		return "due_today"
	case Overdue:
		return "overdue"
	case Done:
		return "done"
	default:
		return "no_deadline"
	}
}

func (u Urgency) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// Classify is shared by the live board and the printable report, both must color
// deadlines the same way. A finished card is Done whatever its date; an empty or
// unparsable deadline is NoDeadline.
func Classify(status, prazo string, today time.Time) Urgency {
	if status == constants.LaneFeito {
		return Done
	}

	due, ok := ParseDate(prazo)
	if !ok {
		return NoDeadline
	}

	day := dateOf(today)
	switch {
	case due.Before(day):
		return Overdue
	case due.Equal(day):
		return DueToday
	default:
		return Upcoming
	}
}

// ParseDate reads an ISO calendar date.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ShortDate renders an ISO date as dd/mm, or "" when it does not parse.
func ShortDate(s string) string {
	t, ok := ParseDate(s)
	if !ok {
		return ""
	}
	return t.Format("02/01")
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Badge is the deadline marker shown on a live board card.
type Badge struct {
	Label string `json:"label"`
	Color string `json:"color,omitempty"`
	Bold  bool   `json:"bold,omitempty"`
}

func DueBadge(u Urgency, prazo string) Badge {
	short := ShortDate(prazo)
	if short == "" {
		return Badge{}
	}

	switch u {
	case Done:
		return Badge{Label: "✔ " + short, Color: "#27ae60"}
	case Overdue:
		return Badge{Label: "🔥 " + short, Color: "#c0392b", Bold: true}
	case DueToday:
		return Badge{Label: "⚠️ Hoje", Color: "#e67e22", Bold: true}
	default:
		return Badge{Label: "📅 " + short}
	}
}
