package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"reforma-painel/internal/constants"
	"reforma-painel/internal/storage"
)

const pendencyColumns = `id, titulo, descricao, gestor_id, frota_vinculada, prioridade, status, data_criacao, data_prazo`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPendency(row rowScanner) (storage.Pendency, error) {
	var (
		p        storage.Pendency
		gestorID sql.NullInt64
		frota    sql.NullString
		prazo    sql.NullString
	)

	err := row.Scan(&p.ID, &p.Titulo, &p.Descricao, &gestorID, &frota, &p.Prioridade, &p.Status, &p.DataCriacao, &prazo)
	if err != nil {
		return storage.Pendency{}, err
	}

	p.GestorID = nullInt64(gestorID)
	if frota.Valid && frota.String != "" {
		v := frota.String
		p.FrotaVinculada = &v
	}
	p.DataPrazo = prazo.String

	return p, nil
}

func (s *Storage) GetAllPendencies(ctx context.Context) ([]storage.Pendency, error) {
	const op = "storage.sqlstore.GetAllPendencies"

	rows, err := s.db.QueryContext(ctx, `SELECT `+pendencyColumns+` FROM pendencias ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%s: query pendencies: %w", op, err)
	}
	defer rows.Close()

	pendencies := []storage.Pendency{}
	for rows.Next() {
		p, err := scanPendency(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan pendency: %w", op, err)
		}
		pendencies = append(pendencies, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: iterate pendencies: %w", op, err)
	}

	return pendencies, nil
}

func (s *Storage) GetPendency(ctx context.Context, id int64) (*storage.Pendency, error) {
	const op = "storage.sqlstore.GetPendency"

	p, err := scanPendency(s.db.QueryRowContext(ctx, `SELECT `+pendencyColumns+` FROM pendencias WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: id=%d: %w", op, id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: scan pendency id=%d: %w", op, id, err)
	}

	return &p, nil
}

// CreatePendency adds a card to the "A Fazer" lane.
func (s *Storage) CreatePendency(ctx context.Context, in storage.PendencyInput, today string) (int64, error) {
	const op = "storage.sqlstore.CreatePendency"

	var id int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		ok, err := managerExists(ctx, tx, in.GestorID)
		if err != nil {
			return fmt.Errorf("%s: lookup manager: %w", op, err)
		}
		if !ok {
			return fmt.Errorf("%s: gestor_id=%d: %w", op, in.GestorID, storage.ErrUnknownManager)
		}

		res, err := tx.ExecContext(ctx, `
			INSERT INTO pendencias (titulo, descricao, gestor_id, frota_vinculada, prioridade, status, data_criacao, data_prazo)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			in.Titulo, in.Descricao, in.GestorID, frotaArg(in.FrotaVinculada), in.Prioridade,
			constants.LaneAFazer, today, nullString(in.DataPrazo))
		if err != nil {
			return fmt.Errorf("%s: insert pendency: %w", op, err)
		}

		id, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("%s: last insert id: %w", op, err)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return id, nil
}

func (s *Storage) UpdatePendency(ctx context.Context, id int64, edit storage.PendencyEdit) error {
	const op = "storage.sqlstore.UpdatePendency"

	return s.withTx(ctx, func(tx *sql.Tx) error {
		ok, err := managerExists(ctx, tx, edit.GestorID)
		if err != nil {
			return fmt.Errorf("%s: lookup manager: %w", op, err)
		}
		if !ok {
			return fmt.Errorf("%s: gestor_id=%d: %w", op, edit.GestorID, storage.ErrUnknownManager)
		}

		res, err := tx.ExecContext(ctx, `
			UPDATE pendencias
			SET titulo = ?, descricao = ?, gestor_id = ?, frota_vinculada = ?, prioridade = ?, status = ?, data_prazo = ?
			WHERE id = ?`,
			edit.Titulo, edit.Descricao, edit.GestorID, frotaArg(edit.FrotaVinculada), edit.Prioridade,
			edit.Status, nullString(edit.DataPrazo), id)
		if err != nil {
			return fmt.Errorf("%s: update pendency id=%d: %w", op, id, err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("%s: rows affected: %w", op, err)
		}
		if n == 0 {
			return fmt.Errorf("%s: id=%d: %w", op, id, storage.ErrNotFound)
		}

		return nil
	})
}

func (s *Storage) UpdatePendencyStatus(ctx context.Context, id int64, status string) error {
	const op = "storage.sqlstore.UpdatePendencyStatus"

	res, err := s.db.ExecContext(ctx, `UPDATE pendencias SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("%s: update status id=%d: %w", op, id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: id=%d: %w", op, id, storage.ErrNotFound)
	}

	return nil
}

func (s *Storage) DeletePendency(ctx context.Context, id int64) error {
	const op = "storage.sqlstore.DeletePendency"

	res, err := s.db.ExecContext(ctx, `DELETE FROM pendencias WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%s: delete pendency id=%d: %w", op, id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: id=%d: %w", op, id, storage.ErrNotFound)
	}

	return nil
}

func frotaArg(frota *string) sql.NullString {
	if frota == nil {
		return sql.NullString{}
	}
	return nullString(*frota)
}
