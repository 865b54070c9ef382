package board

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"reforma-painel/internal/constants"
)

var today = time.Date(2026, 3, 10, 15, 30, 0, 0, time.Local)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		status string
		prazo  string
		want   Urgency
	}{
		{"overdue", constants.LaneAFazer, "2026-03-09", Overdue},
		{"overdue while doing", constants.LaneFazendo, "2025-12-31", Overdue},
		{"due today", constants.LaneAFazer, "2026-03-10", DueToday},
		{"upcoming", constants.LaneFazendo, "2026-03-11", Upcoming},
		{"no deadline", constants.LaneAFazer, "", NoDeadline},
		{"unparsable deadline", constants.LaneAFazer, "10/03/2026", NoDeadline},
		{"done ignores past date", constants.LaneFeito, "2026-01-01", Done},
		{"done ignores missing date", constants.LaneFeito, "", Done},
		{"done ignores today", constants.LaneFeito, "2026-03-10", Done},
		{"unknown status still classified by date", "Bloqueado", "2026-03-01", Overdue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.status, tt.prazo, today))
		})
	}
}

func TestClassify_IgnoresTimeOfDay(t *testing.T) {
	late := time.Date(2026, 3, 10, 23, 59, 59, 0, time.UTC)
	early := time.Date(2026, 3, 10, 0, 0, 1, 0, time.UTC)

	assert.Equal(t, DueToday, Classify(constants.LaneAFazer, "2026-03-10", late))
	assert.Equal(t, DueToday, Classify(constants.LaneAFazer, "2026-03-10", early))
}

func TestDueBadge(t *testing.T) {
	assert.Equal(t, Badge{Label: "✔ 09/03", Color: "#27ae60"}, DueBadge(Done, "2026-03-09"))
	assert.Equal(t, Badge{Label: "🔥 09/03", Color: "#c0392b", Bold: true}, DueBadge(Overdue, "2026-03-09"))
	assert.Equal(t, Badge{Label: "⚠️ Hoje", Color: "#e67e22", Bold: true}, DueBadge(DueToday, "2026-03-10"))
	assert.Equal(t, Badge{Label: "📅 11/03"}, DueBadge(Upcoming, "2026-03-11"))
	assert.Equal(t, Badge{}, DueBadge(Done, ""))
	assert.Equal(t, Badge{}, DueBadge(NoDeadline, ""))
}

func TestUrgency_MarshalText(t *testing.T) {
	b, err := Overdue.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "overdue", string(b))
	assert.Equal(t, "no_deadline", NoDeadline.String())
}
