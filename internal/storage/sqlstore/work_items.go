package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"reforma-painel/internal/constants"
	"reforma-painel/internal/storage"
)

func (s *Storage) GetAllWorkItems(ctx context.Context) ([]storage.WorkItem, error) {
	const op = "storage.sqlstore.GetAllWorkItems"

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, lote, frota, modelo, gestor_id, data_inicio, data_previsao, status_id, progresso, observacao
		FROM reformas
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%s: query work items: %w", op, err)
	}
	defer rows.Close()

	items := []storage.WorkItem{}
	for rows.Next() {
		var (
			it       storage.WorkItem
			gestorID sql.NullInt64
			statusID sql.NullInt64
		)

		err := rows.Scan(&it.ID, &it.Lote, &it.Frota, &it.Modelo, &gestorID, &it.DataInicio,
			&it.DataPrevisao, &statusID, &it.Progresso, &it.Observacao)
		if err != nil {
			return nil, fmt.Errorf("%s: scan work item: %w", op, err)
		}

		it.GestorID = nullInt64(gestorID)
		it.StatusID = nullInt64(statusID)
		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: iterate work items: %w", op, err)
	}

	return items, nil
}

// GetLots lists lot names in order of first registration.
func (s *Storage) GetLots(ctx context.Context) ([]string, error) {
	const op = "storage.sqlstore.GetLots"

	rows, err := s.db.QueryContext(ctx, `SELECT lote FROM reformas GROUP BY lote ORDER BY MIN(id)`)
	if err != nil {
		return nil, fmt.Errorf("%s: query lots: %w", op, err)
	}
	defer rows.Close()

	lots := []string{}
	for rows.Next() {
		var lote string
		if err := rows.Scan(&lote); err != nil {
			return nil, fmt.Errorf("%s: scan lot: %w", op, err)
		}
		lots = append(lots, lote)
	}

	return lots, rows.Err()
}

// RegisterLot creates one work item per unit with a fleet code, all in one
// transaction. Returns how many rows were created.
func (s *Storage) RegisterLot(ctx context.Context, req storage.LotRegistration, today string) (int, error) {
	const op = "storage.sqlstore.RegisterLot"

	created := 0
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		ok, err := managerExists(ctx, tx, req.GestorID)
		if err != nil {
			return fmt.Errorf("%s: lookup manager: %w", op, err)
		}
		if !ok {
			return fmt.Errorf("%s: gestor_id=%d: %w", op, req.GestorID, storage.ErrUnknownManager)
		}

		initial, err := initialStatus(ctx, tx)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO reformas (lote, frota, modelo, gestor_id, data_inicio, data_previsao, status_id, progresso, observacao)
			VALUES (?, ?, ?, ?, ?, ?, ?, 0, ?)`)
		if err != nil {
			return fmt.Errorf("%s: prepare insert: %w", op, err)
		}
		defer stmt.Close()

		for _, u := range req.Units {
			frota := strings.TrimSpace(u.Frota)
			if frota == "" {
				continue
			}

			_, err := stmt.ExecContext(ctx, req.Lote, frota, u.Modelo, req.GestorID, today, req.DataPrevisao, initial, u.Obs)
			if err != nil {
				return fmt.Errorf("%s: insert fleet unit %q of lot %q: %w", op, frota, req.Lote, err)
			}
			created++
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return created, nil
}

// AddFleetUnit appends a unit to an existing lot, inheriting the lot's manager and
// expected completion date from its first row.
func (s *Storage) AddFleetUnit(ctx context.Context, lote string, unit storage.FleetUnit, today string) (int64, error) {
	const op = "storage.sqlstore.AddFleetUnit"

	var id int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var (
			gestorID     sql.NullInt64
			dataPrevisao string
		)

		err := tx.QueryRowContext(ctx, `SELECT gestor_id, data_previsao FROM reformas WHERE lote = ? ORDER BY id LIMIT 1`, lote).
			Scan(&gestorID, &dataPrevisao)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%s: lot %q: %w", op, lote, storage.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("%s: lookup lot %q: %w", op, lote, err)
		}

		initial, err := initialStatus(ctx, tx)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		res, err := tx.ExecContext(ctx, `
			INSERT INTO reformas (lote, frota, modelo, gestor_id, data_inicio, data_previsao, status_id, progresso, observacao)
			VALUES (?, ?, ?, ?, ?, ?, ?, 0, ?)`,
			lote, strings.TrimSpace(unit.Frota), unit.Modelo, gestorID, today, dataPrevisao, initial, unit.Obs)
		if err != nil {
			return fmt.Errorf("%s: insert fleet unit: %w", op, err)
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

func (s *Storage) UpdateWorkItem(ctx context.Context, id int64, upd storage.WorkItemUpdate) error {
	const op = "storage.sqlstore.UpdateWorkItem"

	return s.withTx(ctx, func(tx *sql.Tx) error {
		ok, err := statusExists(ctx, tx, upd.StatusID)
		if err != nil {
			return fmt.Errorf("%s: lookup status: %w", op, err)
		}
		if !ok {
			return fmt.Errorf("%s: status_id=%d: %w", op, upd.StatusID, storage.ErrUnknownStatus)
		}

		ok, err = managerExists(ctx, tx, upd.GestorID)
		if err != nil {
			return fmt.Errorf("%s: lookup manager: %w", op, err)
		}
		if !ok {
			return fmt.Errorf("%s: gestor_id=%d: %w", op, upd.GestorID, storage.ErrUnknownManager)
		}

		res, err := tx.ExecContext(ctx, `
			UPDATE reformas SET status_id = ?, progresso = ?, observacao = ?, gestor_id = ?
			WHERE id = ?`, upd.StatusID, upd.Progresso, upd.Observacao, upd.GestorID, id)
		if err != nil {
			return fmt.Errorf("%s: update work item id=%d: %w", op, id, err)
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

// ReassignManager moves the selected fleet-units of a lot (or the whole lot when
// none are selected) to another manager. Returns the number of rows changed.
func (s *Storage) ReassignManager(ctx context.Context, req storage.ManagerReassign) (int64, error) {
	const op = "storage.sqlstore.ReassignManager"

	var changed int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		ok, err := managerExists(ctx, tx, req.GestorID)
		if err != nil {
			return fmt.Errorf("%s: lookup manager: %w", op, err)
		}
		if !ok {
			return fmt.Errorf("%s: gestor_id=%d: %w", op, req.GestorID, storage.ErrUnknownManager)
		}

		query := `UPDATE reformas SET gestor_id = ? WHERE lote = ?`
		args := []any{req.GestorID, req.Lote}
		if len(req.Frotas) > 0 {
			query += ` AND frota IN (` + placeholders(len(req.Frotas)) + `)`
			for _, f := range req.Frotas {
				args = append(args, f)
			}
		}

		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("%s: update lot %q: %w", op, req.Lote, err)
		}

		changed, err = res.RowsAffected()
		if err != nil {
			return fmt.Errorf("%s: rows affected: %w", op, err)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return changed, nil
}

// RemoveFleetUnits deletes the listed fleet-units from a lot in one transaction.
func (s *Storage) RemoveFleetUnits(ctx context.Context, req storage.FleetRemoval) (int64, error) {
	const op = "storage.sqlstore.RemoveFleetUnits"

	var removed int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `DELETE FROM reformas WHERE lote = ? AND frota = ?`)
		if err != nil {
			return fmt.Errorf("%s: prepare delete: %w", op, err)
		}
		defer stmt.Close()

		for _, frota := range req.Frotas {
			res, err := stmt.ExecContext(ctx, req.Lote, frota)
			if err != nil {
				return fmt.Errorf("%s: delete %q from lot %q: %w", op, frota, req.Lote, err)
			}

			n, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("%s: rows affected: %w", op, err)
			}
			removed += n
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return removed, nil
}

// initialStatus is the registry id of "Aguardando", or NULL when it was removed.
func initialStatus(ctx context.Context, tx *sql.Tx) (sql.NullInt64, error) {
	var id sql.NullInt64

	err := tx.QueryRowContext(ctx, `SELECT id FROM status_config WHERE nome = ?`, constants.StatusAguardando).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return sql.NullInt64{}, nil
	}
	if err != nil {
		return sql.NullInt64{}, fmt.Errorf("lookup initial status: %w", err)
	}

	return id, nil
}
