package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"reforma-painel/internal/storage"
)

func (s *Storage) GetAllManagers(ctx context.Context) ([]storage.Manager, error) {
	const op = "storage.sqlstore.GetAllManagers"

	rows, err := s.db.QueryContext(ctx, `SELECT id, nome, setor FROM gestores ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%s: query managers: %w", op, err)
	}
	defer rows.Close()

	managers := []storage.Manager{}
	for rows.Next() {
		var m storage.Manager
		if err := rows.Scan(&m.ID, &m.Nome, &m.Setor); err != nil {
			return nil, fmt.Errorf("%s: scan manager: %w", op, err)
		}
		managers = append(managers, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: iterate managers: %w", op, err)
	}

	return managers, nil
}

func (s *Storage) CreateManager(ctx context.Context, m storage.Manager) (int64, error) {
	const op = "storage.sqlstore.CreateManager"

	res, err := s.db.ExecContext(ctx, `INSERT INTO gestores (nome, setor) VALUES (?, ?)`, m.Nome, m.Setor)
	if err != nil {
		if s.dialect.isDuplicate(err) {
			return 0, fmt.Errorf("%s: %q: %w", op, m.Nome, storage.ErrManagerExists)
		}
		return 0, fmt.Errorf("%s: insert manager: %w", op, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s: last insert id: %w", op, err)
	}

	return id, nil
}

// SyncManagers makes the managers table equal to the submitted one: rows missing
// from it are deleted, rows without id are inserted, the rest updated. An id that
// no longer exists fails the whole batch with storage.ErrNotFound.
func (s *Storage) SyncManagers(ctx context.Context, managers []storage.Manager) error {
	const op = "storage.sqlstore.SyncManagers"

	keep := make([]any, 0, len(managers))
	for _, m := range managers {
		if m.ID != 0 {
			keep = append(keep, m.ID)
		}
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		del := `DELETE FROM gestores`
		if len(keep) > 0 {
			del += ` WHERE id NOT IN (` + placeholders(len(keep)) + `)`
		}
		if _, err := tx.ExecContext(ctx, del, keep...); err != nil {
			return fmt.Errorf("%s: delete removed managers: %w", op, err)
		}

		for _, m := range managers {
			if m.ID == 0 {
				if strings.TrimSpace(m.Nome) == "" {
					continue
				}
				_, err := tx.ExecContext(ctx, `INSERT INTO gestores (nome, setor) VALUES (?, ?)`, m.Nome, m.Setor)
				if err != nil {
					return s.managerWriteErr(op, m, err)
				}
				continue
			}

			res, err := tx.ExecContext(ctx, `UPDATE gestores SET nome = ?, setor = ? WHERE id = ?`, m.Nome, m.Setor, m.ID)
			if err != nil {
				return s.managerWriteErr(op, m, err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("%s: rows affected: %w", op, err)
			}
			if n == 0 {
				return fmt.Errorf("%s: manager id=%d: %w", op, m.ID, storage.ErrNotFound)
			}
		}

		return nil
	})
}

func (s *Storage) managerWriteErr(op string, m storage.Manager, err error) error {
	if s.dialect.isDuplicate(err) {
		return fmt.Errorf("%s: %q: %w", op, m.Nome, storage.ErrManagerExists)
	}
	return fmt.Errorf("%s: write manager %q: %w", op, m.Nome, err)
}

// DeleteManager removes the manager only. Work items and pendencies keep the id
// and resolve it as unknown from then on.
func (s *Storage) DeleteManager(ctx context.Context, id int64) error {
	const op = "storage.sqlstore.DeleteManager"

	res, err := s.db.ExecContext(ctx, `DELETE FROM gestores WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%s: delete manager id=%d: %w", op, id, err)
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
