package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"reforma-painel/internal/storage"
)

func (s *Storage) GetAllStatuses(ctx context.Context) ([]storage.StatusConfig, error) {
	const op = "storage.sqlstore.GetAllStatuses"

	rows, err := s.db.QueryContext(ctx, `SELECT id, nome, cor FROM status_config ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%s: query statuses: %w", op, err)
	}
	defer rows.Close()

	statuses := []storage.StatusConfig{}
	for rows.Next() {
		var st storage.StatusConfig
		if err := rows.Scan(&st.ID, &st.Nome, &st.Cor); err != nil {
			return nil, fmt.Errorf("%s: scan status: %w", op, err)
		}
		statuses = append(statuses, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: iterate statuses: %w", op, err)
	}

	return statuses, nil
}

func (s *Storage) CreateStatus(ctx context.Context, st storage.StatusConfig) (int64, error) {
	const op = "storage.sqlstore.CreateStatus"

	res, err := s.db.ExecContext(ctx, `INSERT INTO status_config (nome, cor) VALUES (?, ?)`, st.Nome, st.Cor)
	if err != nil {
		if s.dialect.isDuplicate(err) {
			return 0, fmt.Errorf("%s: %q: %w", op, st.Nome, storage.ErrStatusExists)
		}
		return 0, fmt.Errorf("%s: insert status: %w", op, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s: last insert id: %w", op, err)
	}

	return id, nil
}

// DeleteStatus removes a status from the registry. A status still referenced by
// work items is only removed when reassignTo names another registered status;
// the references are moved in the same transaction.
func (s *Storage) DeleteStatus(ctx context.Context, id int64, reassignTo *int64) error {
	const op = "storage.sqlstore.DeleteStatus"

	return s.withTx(ctx, func(tx *sql.Tx) error {
		ok, err := statusExists(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("%s: lookup status id=%d: %w", op, id, err)
		}
		if !ok {
			return fmt.Errorf("%s: id=%d: %w", op, id, storage.ErrNotFound)
		}

		var inUse int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM reformas WHERE status_id = ?`, id).Scan(&inUse); err != nil {
			return fmt.Errorf("%s: count usage: %w", op, err)
		}

		if inUse > 0 {
			if reassignTo == nil || *reassignTo == id {
				return fmt.Errorf("%s: id=%d used by %d work items: %w", op, id, inUse, storage.ErrStatusInUse)
			}

			ok, err := statusExists(ctx, tx, *reassignTo)
			if err != nil {
				return fmt.Errorf("%s: lookup target status id=%d: %w", op, *reassignTo, err)
			}
			if !ok {
				return fmt.Errorf("%s: target id=%d: %w", op, *reassignTo, storage.ErrUnknownStatus)
			}

			if _, err := tx.ExecContext(ctx, `UPDATE reformas SET status_id = ? WHERE status_id = ?`, *reassignTo, id); err != nil {
				return fmt.Errorf("%s: reassign work items: %w", op, err)
			}
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM status_config WHERE id = ?`, id); err != nil {
			return fmt.Errorf("%s: delete status id=%d: %w", op, id, err)
		}

		return nil
	})
}
