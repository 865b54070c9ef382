package board

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"reforma-painel/internal/constants"
	"reforma-painel/internal/service/catalog"
	"reforma-painel/internal/storage"
)

type Storage interface {
	GetAllPendencies(ctx context.Context) ([]storage.Pendency, error)
	GetAllManagers(ctx context.Context) ([]storage.Manager, error)
	GetPendency(ctx context.Context, id int64) (*storage.Pendency, error)
	CreatePendency(ctx context.Context, in storage.PendencyInput, today string) (int64, error)
	UpdatePendency(ctx context.Context, id int64, edit storage.PendencyEdit) error
	UpdatePendencyStatus(ctx context.Context, id int64, status string) error
	DeletePendency(ctx context.Context, id int64) error
}

type Service struct {
	storage   Storage
	log       *slog.Logger
	doneLimit int
	now       func() time.Time
}

func NewService(storage Storage, log *slog.Logger, doneLimit int, now func() time.Time) *Service {
	return &Service{storage: storage, log: log, doneLimit: doneLimit, now: now}
}

type Card struct {
	storage.Pendency
	Responsavel   catalog.ManagerRef `json:"responsavel"`
	Frota         string             `json:"frota"`
	PrioridadeCor string             `json:"prioridade_cor"`
	Urgencia      Urgency            `json:"urgencia"`
	Prazo         Badge              `json:"prazo_badge"`
	Acoes         []Action           `json:"acoes"`
}

type Lane struct {
	Status string `json:"status"`
	Cards  []Card `json:"cards"`
	// Total counts every card of the lane, including those cut by the done limit.
	Total int `json:"total"`
}

type Board struct {
	Lanes []Lane `json:"lanes"`
	// Unplaced holds cards whose status matches no lane.
	Unplaced []Card `json:"unplaced"`
}

// Board loads the pendency snapshot and lays it out in the three lanes. When
// gestores is not empty only cards of those managers are shown.
func (s *Service) Board(ctx context.Context, gestores []int64) (*Board, error) {
	const op = "service.board.Board"

	var (
		pendencies []storage.Pendency
		managers   []storage.Manager
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		pendencies, err = s.storage.GetAllPendencies(gCtx)
		if err != nil {
			return fmt.Errorf("pendencies: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		managers, err = s.storage.GetAllManagers(gCtx)
		if err != nil {
			return fmt.Errorf("managers: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	b := Build(FilterByManager(pendencies, gestores), catalog.New(managers, nil), s.now(), s.doneLimit)
	if len(b.Unplaced) > 0 {
		s.log.Warn("pendencies with unrecognized status left out of the board",
			slog.String("op", op), slog.Int("count", len(b.Unplaced)))
	}

	return b, nil
}

func FilterByManager(pendencies []storage.Pendency, gestores []int64) []storage.Pendency {
	if len(gestores) == 0 {
		return pendencies
	}

	want := make(map[int64]bool, len(gestores))
	for _, id := range gestores {
		want[id] = true
	}

	out := make([]storage.Pendency, 0, len(pendencies))
	for _, p := range pendencies {
		if p.GestorID != nil && want[*p.GestorID] {
			out = append(out, p)
		}
	}
	return out
}

// Build partitions the snapshot by exact status match. The Feito lane shows the
// most recent doneLimit cards, newest first; 0 keeps all of them.
func Build(pendencies []storage.Pendency, cat *catalog.Catalog, today time.Time, doneLimit int) *Board {
	b := &Board{Lanes: make([]Lane, len(constants.Lanes)), Unplaced: []Card{}}
	for i, status := range constants.Lanes {
		b.Lanes[i] = Lane{Status: status, Cards: []Card{}}
	}

	for _, p := range pendencies {
		c := newCard(p, cat, today)
		i := laneIndex(p.Status)
		if i < 0 {
			b.Unplaced = append(b.Unplaced, c)
			continue
		}
		b.Lanes[i].Cards = append(b.Lanes[i].Cards, c)
	}

	for i := range b.Lanes {
		b.Lanes[i].Total = len(b.Lanes[i].Cards)
	}

	done := &b.Lanes[laneIndex(constants.LaneFeito)]
	recent := make([]Card, 0, len(done.Cards))
	for i := len(done.Cards) - 1; i >= 0; i-- {
		if doneLimit > 0 && len(recent) == doneLimit {
			break
		}
		recent = append(recent, done.Cards[i])
	}
	done.Cards = recent

	return b
}

func newCard(p storage.Pendency, cat *catalog.Catalog, today time.Time) Card {
	u := Classify(p.Status, p.DataPrazo, today)

	frota := constants.FrotaGeral
	if p.FrotaVinculada != nil && *p.FrotaVinculada != "" {
		frota = *p.FrotaVinculada
	}

	cor, ok := constants.PrioridadeCores[p.Prioridade]
	if !ok {
		cor = constants.CorNeutra
	}

	return Card{
		Pendency:      p,
		Responsavel:   cat.Manager(p.GestorID),
		Frota:         frota,
		PrioridadeCor: cor,
		Urgencia:      u,
		Prazo:         DueBadge(u, p.DataPrazo),
		Acoes:         Actions(p.Status),
	}
}

func (s *Service) Create(ctx context.Context, in storage.PendencyInput) (int64, error) {
	if err := ValidateInput(in); err != nil {
		return 0, err
	}
	in.Titulo = strings.TrimSpace(in.Titulo)

	return s.storage.CreatePendency(ctx, in, s.now().Format(time.DateOnly))
}

// Edit rewrites every field of a card, status included.
func (s *Service) Edit(ctx context.Context, id int64, edit storage.PendencyEdit) error {
	if err := ValidateInput(edit.PendencyInput); err != nil {
		return err
	}
	if !constants.IsLane(edit.Status) {
		return &ValidationError{Field: "status", Message: "status deve ser A Fazer, Fazendo ou Feito"}
	}
	edit.Titulo = strings.TrimSpace(edit.Titulo)

	return s.storage.UpdatePendency(ctx, id, edit)
}

// Move is the quick transition between adjacent lanes. Moving a card to the lane
// it is already in changes nothing.
func (s *Service) Move(ctx context.Context, id int64, target string) (*storage.Pendency, error) {
	const op = "service.board.Move"

	if !constants.IsLane(target) {
		return nil, &ValidationError{Field: "status", Message: "status deve ser A Fazer, Fazendo ou Feito"}
	}

	p, err := s.storage.GetPendency(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.Status == target {
		return p, nil
	}

	if err := CanTransition(p.Status, target); err != nil {
		return nil, fmt.Errorf("%s: %q -> %q: %w", op, p.Status, target, err)
	}

	if err := s.storage.UpdatePendencyStatus(ctx, id, target); err != nil {
		return nil, err
	}

	p.Status = target
	return p, nil
}

// Delete removes a card from the Feito lane; cards elsewhere cannot be deleted.
func (s *Service) Delete(ctx context.Context, id int64) error {
	const op = "service.board.Delete"

	p, err := s.storage.GetPendency(ctx, id)
	if err != nil {
		return err
	}

	if p.Status != constants.LaneFeito {
		return fmt.Errorf("%s: id=%d in %q: %w", op, id, p.Status, ErrNotDone)
	}

	return s.storage.DeletePendency(ctx, id)
}
