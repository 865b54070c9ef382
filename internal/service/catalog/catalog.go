// Package catalog resolves manager and status references held by work items and
// pendencies into their current display values.
package catalog

import (
	"reforma-painel/internal/constants"
	"reforma-painel/internal/storage"
)

// RefState tells whether a reference resolved at render time.
type RefState int

const (
	Resolved RefState = iota
	// Unset means the row never pointed anywhere.
	Unset
	// Unknown means the row points to an id that no longer exists.
	Unknown
)

func (s RefState) String() string {
	switch s {
	case Resolved:
		return "resolved"
	case Unset:
		return "unset"
	default:
		return "unknown"
	}
}

func (s RefState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type ManagerRef struct {
	ID    *int64   `json:"id"`
	Nome  string   `json:"nome"`
	State RefState `json:"state"`
}

type StatusRef struct {
	ID    *int64   `json:"id"`
	Nome  string   `json:"nome"`
	Cor   string   `json:"cor"`
	State RefState `json:"state"`
}

type Catalog struct {
	managers map[int64]storage.Manager
	statuses map[int64]storage.StatusConfig
	// palette keeps registry order for legends
	palette []storage.StatusConfig
}

func New(managers []storage.Manager, statuses []storage.StatusConfig) *Catalog {
	c := &Catalog{
		managers: make(map[int64]storage.Manager, len(managers)),
		statuses: make(map[int64]storage.StatusConfig, len(statuses)),
		palette:  statuses,
	}
	for _, m := range managers {
		c.managers[m.ID] = m
	}
	for _, s := range statuses {
		c.statuses[s.ID] = s
	}
	return c
}

func (c *Catalog) Manager(id *int64) ManagerRef {
	if id == nil {
		return ManagerRef{Nome: constants.SemGestor, State: Unset}
	}
	m, ok := c.managers[*id]
	if !ok {
		return ManagerRef{ID: id, Nome: constants.Desconhecido, State: Unknown}
	}
	return ManagerRef{ID: id, Nome: m.Nome, State: Resolved}
}

func (c *Catalog) Status(id *int64) StatusRef {
	if id == nil {
		return StatusRef{Nome: constants.Desconhecido, Cor: constants.CorNeutra, State: Unset}
	}
	s, ok := c.statuses[*id]
	if !ok {
		return StatusRef{ID: id, Nome: constants.Desconhecido, Cor: constants.CorNeutra, State: Unknown}
	}
	return StatusRef{ID: id, Nome: s.Nome, Cor: s.Cor, State: Resolved}
}

// Palette maps status name to color, the legend of the progress chart.
func (c *Catalog) Palette() map[string]string {
	p := make(map[string]string, len(c.palette)+1)
	for _, s := range c.palette {
		p[s.Nome] = s.Cor
	}
	p[constants.Desconhecido] = constants.CorNeutra
	return p
}
