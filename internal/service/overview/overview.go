package overview

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"reforma-painel/internal/constants"
	"reforma-painel/internal/service/catalog"
	"reforma-painel/internal/storage"
)

// NoProgress is shown instead of a mean when the selection is empty.
const NoProgress = "n/a"

// AllLots is the search value that disables the lot filter.
const AllLots = "Todos"

type Storage interface {
	GetAllWorkItems(ctx context.Context) ([]storage.WorkItem, error)
	GetAllManagers(ctx context.Context) ([]storage.Manager, error)
	GetAllStatuses(ctx context.Context) ([]storage.StatusConfig, error)
}

type Service struct {
	storage       Storage
	pendingStatus string
}

func NewService(storage Storage, pendingStatus string) *Service {
	return &Service{storage: storage, pendingStatus: pendingStatus}
}

// Row is a work item with its references resolved for display.
type Row struct {
	storage.WorkItem
	Responsavel catalog.ManagerRef `json:"responsavel"`
	Status      catalog.StatusRef  `json:"status"`
	// Rotulo is the chart label, "frota (responsável)".
	Rotulo string `json:"rotulo"`
}

type Summary struct {
	Total          int    `json:"total"`
	Concluidas     int    `json:"concluidas"`
	Pendentes      int    `json:"pendentes"`
	MediaProgresso int    `json:"media_progresso"`
	Andamento      string `json:"andamento"`
}

type LotRollup struct {
	Lote           string         `json:"lote"`
	Total          int            `json:"total"`
	PorStatus      map[string]int `json:"por_status"`
	MediaProgresso int            `json:"media_progresso"`
	Andamento      string         `json:"andamento"`
}

type Overview struct {
	Lotes        []string          `json:"lotes"`
	Selecionados []string          `json:"selecionados"`
	Resumo       Summary           `json:"resumo"`
	PorLote      []LotRollup       `json:"por_lote"`
	Grafico      []Row             `json:"grafico"`
	Cores        map[string]string `json:"cores"`
}

func (s *Service) load(ctx context.Context) ([]Row, *catalog.Catalog, error) {
	var (
		items    []storage.WorkItem
		managers []storage.Manager
		statuses []storage.StatusConfig
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.storage.GetAllWorkItems(gCtx)
		if err != nil {
			return fmt.Errorf("work items: %w", err)
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
	g.Go(func() error {
		var err error
		statuses, err = s.storage.GetAllStatuses(gCtx)
		if err != nil {
			return fmt.Errorf("statuses: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	cat := catalog.New(managers, statuses)
	return Resolve(items, cat), cat, nil
}

// Overview builds the TV panel for the selected lots; no selection means all lots.
func (s *Service) Overview(ctx context.Context, lots []string) (*Overview, error) {
	const op = "service.overview.Overview"

	rows, cat, err := s.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	all := Lots(rows)
	selected := lots
	if len(selected) == 0 {
		selected = all
	}

	filtered := FilterLots(rows, selected)

	return &Overview{
		Lotes:        all,
		Selecionados: selected,
		Resumo:       Summarize(filtered, s.pendingStatus),
		PorLote:      ByLot(filtered),
		Grafico:      ChartRows(filtered),
		Cores:        cat.Palette(),
	}, nil
}

// WorkItems lists resolved work items of one lot (or all) whose fleet code
// contains q, case-insensitively.
func (s *Service) WorkItems(ctx context.Context, lote, q string) ([]Row, error) {
	const op = "service.overview.WorkItems"

	rows, _, err := s.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return Search(rows, lote, q), nil
}

func Resolve(items []storage.WorkItem, cat *catalog.Catalog) []Row {
	rows := make([]Row, 0, len(items))
	for _, it := range items {
		m := cat.Manager(it.GestorID)
		rows = append(rows, Row{
			WorkItem:    it,
			Responsavel: m,
			Status:      cat.Status(it.StatusID),
			Rotulo:      it.Frota + " (" + m.Nome + ")",
		})
	}
	return rows
}

// Lots returns distinct lot names in order of first appearance.
func Lots(rows []Row) []string {
	seen := make(map[string]bool)
	lots := []string{}
	for _, r := range rows {
		if !seen[r.Lote] {
			seen[r.Lote] = true
			lots = append(lots, r.Lote)
		}
	}
	return lots
}

func FilterLots(rows []Row, lots []string) []Row {
	want := make(map[string]bool, len(lots))
	for _, l := range lots {
		want[l] = true
	}

	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if want[r.Lote] {
			out = append(out, r)
		}
	}
	return out
}

func Search(rows []Row, lote, q string) []Row {
	q = strings.ToLower(strings.TrimSpace(q))

	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if lote != "" && lote != AllLots && r.Lote != lote {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(r.Frota), q) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Summarize computes the four panel metrics. A status that does not occur in the
// set simply counts zero.
func Summarize(rows []Row, pendingStatus string) Summary {
	s := Summary{Total: len(rows)}
	for _, r := range rows {
		switch r.Status.Nome {
		case constants.StatusConcluido:
			s.Concluidas++
		case pendingStatus:
			s.Pendentes++
		}
	}
	s.MediaProgresso, s.Andamento = meanProgress(rows)
	return s
}

func ByLot(rows []Row) []LotRollup {
	groups := make(map[string][]Row)
	for _, r := range rows {
		groups[r.Lote] = append(groups[r.Lote], r)
	}

	out := make([]LotRollup, 0, len(groups))
	for _, lote := range Lots(rows) {
		g := groups[lote]
		lr := LotRollup{Lote: lote, Total: len(g), PorStatus: make(map[string]int)}
		for _, r := range g {
			lr.PorStatus[r.Status.Nome]++
		}
		lr.MediaProgresso, lr.Andamento = meanProgress(g)
		out = append(out, lr)
	}
	return out
}

// ChartRows orders the selection by lot, then by progress, for the bar chart.
func ChartRows(rows []Row) []Row {
	out := make([]Row, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Lote != out[j].Lote {
			return out[i].Lote < out[j].Lote
		}
		return out[i].Progresso < out[j].Progresso
	})
	return out
}

func meanProgress(rows []Row) (int, string) {
	if len(rows) == 0 {
		return 0, NoProgress
	}

	sum := 0
	for _, r := range rows {
		sum += r.Progresso
	}

	mean := int(math.RoundToEven(float64(sum) / float64(len(rows))))
	return mean, strconv.Itoa(mean) + "%"
}
