package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-sql-driver/mysql"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"reforma-painel/internal/config"
	"reforma-painel/internal/constants"
)

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

type Storage struct {
	db      *sql.DB
	dialect dialect
}

type dialect struct {
	schema []string
	// addPrazo upgrades databases created before pendencies had a deadline.
	addPrazo    string
	isDuplicate func(err error) bool
}

var sqliteDialect = dialect{
	schema: []string{
		`CREATE TABLE IF NOT EXISTS gestores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			nome TEXT NOT NULL UNIQUE,
			setor TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS status_config (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			nome TEXT NOT NULL UNIQUE,
			cor TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS reformas (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			lote TEXT NOT NULL,
			frota TEXT NOT NULL,
			modelo TEXT NOT NULL DEFAULT '',
			gestor_id INTEGER,
			data_inicio TEXT NOT NULL,
			data_previsao TEXT NOT NULL DEFAULT '',
			status_id INTEGER,
			progresso INTEGER NOT NULL DEFAULT 0,
			observacao TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS pendencias (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			titulo TEXT NOT NULL,
			descricao TEXT NOT NULL DEFAULT '',
			gestor_id INTEGER,
			frota_vinculada TEXT,
			prioridade TEXT NOT NULL,
			status TEXT NOT NULL,
			data_criacao TEXT NOT NULL,
			data_prazo TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_reformas_lote ON reformas(lote)`,
	},
	addPrazo: `ALTER TABLE pendencias ADD COLUMN data_prazo TEXT`,
	isDuplicate: func(err error) bool {
		var se *sqlite.Error
		if !errors.As(err, &se) {
			return false
		}
		return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE || se.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	},
}

var mysqlDialect = dialect{
	schema: []string{
		`CREATE TABLE IF NOT EXISTS gestores (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			nome VARCHAR(191) NOT NULL UNIQUE,
			setor VARCHAR(191) NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS status_config (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			nome VARCHAR(191) NOT NULL UNIQUE,
			cor VARCHAR(16) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS reformas (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			lote VARCHAR(191) NOT NULL,
			frota VARCHAR(191) NOT NULL,
			modelo VARCHAR(191) NOT NULL DEFAULT '',
			gestor_id BIGINT NULL,
			data_inicio VARCHAR(10) NOT NULL,
			data_previsao VARCHAR(10) NOT NULL DEFAULT '',
			status_id BIGINT NULL,
			progresso INT NOT NULL DEFAULT 0,
			observacao TEXT NOT NULL,
			INDEX idx_reformas_lote (lote)
		)`,
		`CREATE TABLE IF NOT EXISTS pendencias (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			titulo VARCHAR(255) NOT NULL,
			descricao TEXT NOT NULL,
			gestor_id BIGINT NULL,
			frota_vinculada VARCHAR(191) NULL,
			prioridade VARCHAR(16) NOT NULL,
			status VARCHAR(16) NOT NULL,
			data_criacao VARCHAR(10) NOT NULL,
			data_prazo VARCHAR(10) NULL
		)`,
	},
	addPrazo: `ALTER TABLE pendencias ADD COLUMN data_prazo VARCHAR(10) NULL`,
	isDuplicate: func(err error) bool {
		var me *mysql.MySQLError
		return errors.As(err, &me) && me.Number == 1062
	},
}

func New(cfg config.Storage) (*Storage, error) {
	const op = "storage.sqlstore.New"

	switch cfg.Driver {
	case DriverSQLite, "":
		if dir := filepath.Dir(cfg.Path); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("%s: create directory: %w", op, err)
			}
		}

		db, err := sql.Open("sqlite", cfg.Path+"?_pragma=busy_timeout(5000)")
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		// one writer on a local file
		db.SetMaxOpenConns(1)

		return &Storage{db: db, dialect: sqliteDialect}, nil

	case DriverMySQL:
		mc := mysql.NewConfig()
		mc.User = cfg.DBUser
		mc.Passwd = cfg.DBPassword
		mc.Net = "tcp"
		mc.Addr = fmt.Sprintf("%s:%d", cfg.DBHost, cfg.DBPort)
		mc.DBName = cfg.DBName
		mc.ParseTime = true
		// UPDATE must report matched rows, not changed rows
		mc.ClientFoundRows = true

		db, err := sql.Open("mysql", mc.FormatDSN())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		return &Storage{db: db, dialect: mysqlDialect}, nil

	default:
		return nil, fmt.Errorf("%s: unsupported driver %q", op, cfg.Driver)
	}
}

func (s *Storage) Close() error {
	return s.db.Close()
}

// Init creates the schema, applies the additive migrations and seeds the default
// managers and statuses on an empty database. Safe to run on every start.
func (s *Storage) Init(ctx context.Context) error {
	const op = "storage.sqlstore.Init"

	for _, stmt := range s.dialect.schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%s: create schema: %w", op, err)
		}
	}

	// fails with "duplicate column" once the column exists
	_, _ = s.db.ExecContext(ctx, s.dialect.addPrazo)

	return s.withTx(ctx, func(tx *sql.Tx) error {
		var count int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM gestores`).Scan(&count); err != nil {
			return fmt.Errorf("%s: count managers: %w", op, err)
		}
		if count == 0 {
			for _, m := range constants.SeedManagers {
				if _, err := tx.ExecContext(ctx, `INSERT INTO gestores (nome, setor) VALUES (?, ?)`, m.Nome, m.Setor); err != nil {
					return fmt.Errorf("%s: seed manager %s: %w", op, m.Nome, err)
				}
			}
		}

		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM status_config`).Scan(&count); err != nil {
			return fmt.Errorf("%s: count statuses: %w", op, err)
		}
		if count == 0 {
			for _, st := range constants.SeedStatuses {
				if _, err := tx.ExecContext(ctx, `INSERT INTO status_config (nome, cor) VALUES (?, ?)`, st.Nome, st.Cor); err != nil {
					return fmt.Errorf("%s: seed status %s: %w", op, st.Nome, err)
				}
			}
		}

		return nil
	})
}

// withTx runs fn inside one transaction, rolled back on any error.
func (s *Storage) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func nullInt64(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func managerExists(ctx context.Context, tx *sql.Tx, id int64) (bool, error) {
	var found int64
	err := tx.QueryRowContext(ctx, `SELECT id FROM gestores WHERE id = ?`, id).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func statusExists(ctx context.Context, tx *sql.Tx, id int64) (bool, error) {
	var found int64
	err := tx.QueryRowContext(ctx, `SELECT id FROM status_config WHERE id = ?`, id).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
