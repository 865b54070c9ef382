// Package generate_html renders the pendency board as a printable, self-contained
// HTML report.
package generate_html

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"reforma-painel/internal/constants"
	"reforma-painel/internal/service/board"
	"reforma-painel/internal/service/catalog"
	"reforma-painel/internal/storage"
)

//go:embed report.html.tmpl
var reportSource string

var reportTmpl = template.Must(template.New("report").Parse(reportSource))

type GenerateHTMLStorage interface {
	GetAllPendencies(ctx context.Context) ([]storage.Pendency, error)
	GetAllManagers(ctx context.Context) ([]storage.Manager, error)
}

type GenerateHTMLService struct {
	storage GenerateHTMLStorage
	now     func() time.Time
}

func NewGenerateService(storage GenerateHTMLStorage, now func() time.Time) *GenerateHTMLService {
	return &GenerateHTMLService{storage: storage, now: now}
}

type reportCard struct {
	ID               int64
	Prioridade       string
	PrioridadeRotulo string
	Responsavel      string
	Titulo           string
	Descricao        string
	Frota            string
	Prazo            string
	Atrasado         bool
}

type reportColumn struct {
	Status string
	Classe string
	Cards  []reportCard
}

type reportPage struct {
	Gerado       string
	Colunas      []reportColumn
	ForaDoQuadro []storage.Pendency
}

// Report is the rendered document together with the day it was generated for.
type Report struct {
	HTML []byte
	Day  time.Time
}

func (g *GenerateHTMLService) GenerateReport(ctx context.Context) (*Report, error) {
	const op = "service.generate_html.GenerateReport"

	var (
		pendencies []storage.Pendency
		managers   []storage.Manager
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		pendencies, err = g.storage.GetAllPendencies(egCtx)
		return err
	})
	eg.Go(func() error {
		var err error
		managers, err = g.storage.GetAllManagers(egCtx)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("%s: fetch data: %w", op, err)
	}

	day := g.now()
	html, err := Render(pendencies, catalog.New(managers, nil), day)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Report{HTML: html, Day: day}, nil
}

// Render lays the snapshot out in the three fixed lanes, each in insertion
// order. Output depends only on the snapshot and the calendar day of today.
func Render(pendencies []storage.Pendency, cat *catalog.Catalog, today time.Time) ([]byte, error) {
	page := reportPage{
		Gerado:  today.Format("02/01/2006"),
		Colunas: make([]reportColumn, len(constants.Lanes)),
	}

	for i, status := range constants.Lanes {
		col := reportColumn{Status: status, Cards: []reportCard{}}
		switch status {
		case constants.LaneFazendo:
			col.Classe = "bg-fazendo"
		case constants.LaneFeito:
			col.Classe = "bg-feito"
		}

		for _, p := range pendencies {
			if p.Status == status {
				col.Cards = append(col.Cards, newReportCard(p, cat, today))
			}
		}
		page.Colunas[i] = col
	}

	for _, p := range pendencies {
		if !constants.IsLane(p.Status) {
			page.ForaDoQuadro = append(page.ForaDoQuadro, p)
		}
	}

	var buf bytes.Buffer
	if err := reportTmpl.Execute(&buf, page); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return buf.Bytes(), nil
}

func newReportCard(p storage.Pendency, cat *catalog.Catalog, today time.Time) reportCard {
	prio := p.Prioridade
	if prio == "" {
		prio = constants.PrioridadeBaixa
	}

	frota := constants.FrotaGeral
	if p.FrotaVinculada != nil && *p.FrotaVinculada != "" {
		frota = *p.FrotaVinculada
	}

	return reportCard{
		ID:               p.ID,
		Prioridade:       prio,
		PrioridadeRotulo: strings.ToUpper(prio),
		Responsavel:      cat.Manager(p.GestorID).Nome,
		Titulo:           p.Titulo,
		Descricao:        p.Descricao,
		Frota:            frota,
		Prazo:            board.ShortDate(p.DataPrazo),
		Atrasado:         board.Classify(p.Status, p.DataPrazo, today) == board.Overdue,
	}
}

// DataURI embeds a document in a link target, so the browser can download it
// without the server keeping a file.
func DataURI(html []byte) string {
	return "data:text/html;base64," + base64.StdEncoding.EncodeToString(html)
}

func FileName(day time.Time) string {
	return "Relatorio_Visual_" + day.Format(time.DateOnly) + ".html"
}
