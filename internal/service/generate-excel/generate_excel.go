package generate_excel

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	"reforma-painel/internal/service/catalog"
	"reforma-painel/internal/storage"
)

const (
	SheetMachines   = "Máquinas"
	SheetPendencies = "Pendências"
	// SheetEmpty replaces the machines sheet when there are no work items,
	// so the workbook never ends up with zero sheets.
	SheetEmpty = "Vazio"
)

var (
	machineHeaders = []string{"id", "lote", "frota", "modelo", "responsavel", "data_inicio",
		"data_previsao", "status", "progresso", "observacao"}
	pendencyHeaders = []string{"id", "titulo", "descricao", "responsavel", "frota_vinculada",
		"prioridade", "status", "data_criacao", "data_prazo"}
)

type GenerateExcelStorage interface {
	GetAllWorkItems(ctx context.Context) ([]storage.WorkItem, error)
	GetAllPendencies(ctx context.Context) ([]storage.Pendency, error)
	GetAllManagers(ctx context.Context) ([]storage.Manager, error)
	GetAllStatuses(ctx context.Context) ([]storage.StatusConfig, error)
}

type GenerateExcelService struct {
	storage GenerateExcelStorage
}

func NewGenerateService(storage GenerateExcelStorage) *GenerateExcelService {
	return &GenerateExcelService{storage: storage}
}

// Snapshot is the full-table state an export is rendered from.
type Snapshot struct {
	WorkItems  []storage.WorkItem
	Pendencies []storage.Pendency
	Catalog    *catalog.Catalog
}

func (g *GenerateExcelService) GenerateExcel(ctx context.Context) ([]byte, error) {
	const op = "service.generate_excel.GenerateExcel"

	var (
		snap     Snapshot
		managers []storage.Manager
		statuses []storage.StatusConfig
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		snap.WorkItems, err = g.storage.GetAllWorkItems(egCtx)
		return err
	})
	eg.Go(func() error {
		var err error
		snap.Pendencies, err = g.storage.GetAllPendencies(egCtx)
		return err
	})
	eg.Go(func() error {
		var err error
		managers, err = g.storage.GetAllManagers(egCtx)
		return err
	})
	eg.Go(func() error {
		var err error
		statuses, err = g.storage.GetAllStatuses(egCtx)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("%s: fetch data: %w", op, err)
	}
	snap.Catalog = catalog.New(managers, statuses)

	data, err := Write(snap)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return data, nil
}

// Write renders the snapshot as an xlsx workbook.
func Write(snap Snapshot) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	if len(snap.WorkItems) == 0 {
		if err := f.SetSheetName("Sheet1", SheetEmpty); err != nil {
			return nil, err
		}
		if err := f.SetCellValue(SheetEmpty, "A1", SheetEmpty); err != nil {
			return nil, err
		}
	} else {
		if err := f.SetSheetName("Sheet1", SheetMachines); err != nil {
			return nil, err
		}
		rows := make([][]any, 0, len(snap.WorkItems))
		for _, it := range snap.WorkItems {
			rows = append(rows, []any{
				it.ID, it.Lote, it.Frota, it.Modelo,
				snap.Catalog.Manager(it.GestorID).Nome,
				it.DataInicio, it.DataPrevisao,
				snap.Catalog.Status(it.StatusID).Nome,
				it.Progresso, it.Observacao,
			})
		}
		if err := writeTable(f, SheetMachines, machineHeaders, rows, headerStyle); err != nil {
			return nil, fmt.Errorf("machines sheet: %w", err)
		}
	}

	if len(snap.Pendencies) > 0 {
		if _, err := f.NewSheet(SheetPendencies); err != nil {
			return nil, err
		}
		rows := make([][]any, 0, len(snap.Pendencies))
		for _, p := range snap.Pendencies {
			frota := ""
			if p.FrotaVinculada != nil {
				frota = *p.FrotaVinculada
			}
			rows = append(rows, []any{
				p.ID, p.Titulo, p.Descricao,
				snap.Catalog.Manager(p.GestorID).Nome,
				frota, p.Prioridade, p.Status, p.DataCriacao, p.DataPrazo,
			})
		}
		if err := writeTable(f, SheetPendencies, pendencyHeaders, rows, headerStyle); err != nil {
			return nil, fmt.Errorf("pendencies sheet: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write buffer: %w", err)
	}
	return buf.Bytes(), nil
}

func writeTable(f *excelize.File, sheet string, headers []string, rows [][]any, headerStyle int) error {
	for i, name := range headers {
		if err := f.SetCellValue(sheet, cellName(i+1, 1), name); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(sheet, "A1", cellName(len(headers), 1), headerStyle); err != nil {
		return err
	}

	for r, row := range rows {
		if err := f.SetSheetRow(sheet, cellName(1, r+2), &row); err != nil {
			return err
		}
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}

	last, _ := excelize.ColumnNumberToName(len(headers))
	return f.SetColWidth(sheet, "A", last, 15)
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

// FileName is the download name for a workbook generated on day.
func FileName(day time.Time) string {
	return "Reforma_" + day.Format(time.DateOnly) + ".xlsx"
}
