package board

import (
	"errors"

	"reforma-painel/internal/constants"
)

var (
	ErrInvalidTransition = errors.New("transição de status inválida")
	ErrNotDone           = errors.New("só é possível excluir tarefas em Feito")
)

// Action is a quick button offered on a card.
type Action string

const (
	ActionEdit   Action = "edit"
	ActionStart  Action = "start"
	ActionBack   Action = "back"
	ActionFinish Action = "finish"
	ActionReopen Action = "reopen"
	ActionDelete Action = "delete"
)

func laneIndex(status string) int {
	for i, l := range constants.Lanes {
		if l == status {
			return i
		}
	}
	return -1
}

// CanTransition allows only moves between adjacent lanes, in either direction.
// Moving to the current lane is a no-op and always allowed.
func CanTransition(from, to string) error {
	i, j := laneIndex(from), laneIndex(to)
	if i < 0 || j < 0 {
		return ErrInvalidTransition
	}
	if d := i - j; d > 1 || d < -1 {
		return ErrInvalidTransition
	}
	return nil
}

// Actions lists the quick buttons of a card in the given lane.
func Actions(status string) []Action {
	switch status {
	case constants.LaneAFazer:
		return []Action{ActionEdit, ActionStart}
	case constants.LaneFazendo:
		return []Action{ActionEdit, ActionBack, ActionFinish}
	case constants.LaneFeito:
		return []Action{ActionEdit, ActionReopen, ActionDelete}
	default:
		return []Action{ActionEdit}
	}
}
