// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package operators persists ANS operator records in SQLite and answers
// substring searches over them.
package operators

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/operator-search/pkg/types"
)

const defaultDBPath = "data/operators.db"

// Store manages the operator SQLite database.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewStore opens or creates the database at cfg.Path and creates the
// schema if it does not exist. The special path ":memory:" opens a
// private in-memory database.
func NewStore(cfg types.StoreConfig, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	dbPath := cfg.Path
	if dbPath == "" {
		dbPath = defaultDBPath
	}

	var dsn string
	if dbPath == ":memory:" {
		dsn = "file::memory:?_foreign_keys=on"
	} else {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
		dsn = dbPath + "?_journal_mode=WAL&_busy_timeout=5000"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if dbPath == ":memory:" {
		// Each connection would otherwise get its own empty database.
		db.SetMaxOpenConns(1)
	}

	s := &Store{db: db, logger: logger}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS operators (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			registro_ans TEXT NOT NULL UNIQUE,
			cnpj TEXT NOT NULL,
			razao_social TEXT NOT NULL,
			nome_fantasia TEXT,
			modalidade TEXT NOT NULL,
			logradouro TEXT NOT NULL,
			numero TEXT NOT NULL,
			complemento TEXT,
			bairro TEXT NOT NULL,
			cidade TEXT NOT NULL,
			uf TEXT NOT NULL,
			cep TEXT NOT NULL,
			ddd TEXT,
			telefone TEXT,
			fax TEXT,
			endereco_eletronico TEXT,
			representante TEXT,
			cargo_representante TEXT,
			regiao_de_comercializacao TEXT,
			data_registro_ans TEXT NOT NULL,
			razao_social_folded TEXT NOT NULL,
			nome_fantasia_folded TEXT NOT NULL,
			cidade_folded TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_operators_uf ON operators(uf)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Count returns the number of stored operators.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM operators`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting operators: %w", err)
	}
	return n, nil
}

// ImportSummary holds counts from one CSV import.
type ImportSummary struct {
	Imported int
	Skipped  int
}

const upsertSQL = `INSERT INTO operators (
	registro_ans, cnpj, razao_social, nome_fantasia, modalidade,
	logradouro, numero, complemento, bairro, cidade, uf, cep,
	ddd, telefone, fax, endereco_eletronico, representante,
	cargo_representante, regiao_de_comercializacao, data_registro_ans,
	razao_social_folded, nome_fantasia_folded, cidade_folded
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(registro_ans) DO UPDATE SET
	cnpj = excluded.cnpj,
	razao_social = excluded.razao_social,
	nome_fantasia = excluded.nome_fantasia,
	modalidade = excluded.modalidade,
	logradouro = excluded.logradouro,
	numero = excluded.numero,
	complemento = excluded.complemento,
	bairro = excluded.bairro,
	cidade = excluded.cidade,
	uf = excluded.uf,
	cep = excluded.cep,
	ddd = excluded.ddd,
	telefone = excluded.telefone,
	fax = excluded.fax,
	endereco_eletronico = excluded.endereco_eletronico,
	representante = excluded.representante,
	cargo_representante = excluded.cargo_representante,
	regiao_de_comercializacao = excluded.regiao_de_comercializacao,
	data_registro_ans = excluded.data_registro_ans,
	razao_social_folded = excluded.razao_social_folded,
	nome_fantasia_folded = excluded.nome_fantasia_folded,
	cidade_folded = excluded.cidade_folded`

// Import reads operators from a CSV stream and upserts them by Registro_ANS
// in a single transaction. Rows that cannot be parsed are reported to w
// and skipped. A bad header or a database error aborts the whole import.
func (s *Store) Import(ctx context.Context, r io.Reader, w io.Writer) (ImportSummary, error) {
	rd, err := NewReader(r)
	if err != nil {
		return ImportSummary{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, upsertSQL)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	var summary ImportSummary
	for {
		op, err := rd.Next()
		if err == io.EOF {
			break
		}
		var rowErr *RowError
		if errors.As(err, &rowErr) {
			fmt.Fprintf(w, "skipped %v\n", rowErr)
			summary.Skipped++
			continue
		}
		if err != nil {
			return summary, fmt.Errorf("reading CSV: %w", err)
		}

		if _, err := stmt.ExecContext(ctx, operatorArgs(op)...); err != nil {
			return summary, fmt.Errorf("storing operator %s: %w", op.RegistroANS, err)
		}
		summary.Imported++
	}

	if err := tx.Commit(); err != nil {
		return summary, fmt.Errorf("committing import: %w", err)
	}
	s.logger.Info("imported operators", "imported", summary.Imported, "skipped", summary.Skipped)
	return summary, nil
}

// ImportFile opens path and imports it.
func (s *Store) ImportFile(ctx context.Context, path string, w io.Writer) (ImportSummary, error) {
	f, err := os.Open(path)
	if err != nil {
		return ImportSummary{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return s.Import(ctx, f, w)
}

// LoadIfEmpty imports csvPath only when the store holds no operators. A
// missing file is logged and ignored so the API can still start.
func (s *Store) LoadIfEmpty(ctx context.Context, csvPath string, w io.Writer) (ImportSummary, error) {
	n, err := s.Count(ctx)
	if err != nil {
		return ImportSummary{}, err
	}
	if n > 0 {
		s.logger.Debug("store already populated, skipping CSV load", "operators", n)
		return ImportSummary{}, nil
	}
	if _, err := os.Stat(csvPath); errors.Is(err, os.ErrNotExist) {
		s.logger.Warn("operator CSV not found, store is empty", "path", csvPath)
		return ImportSummary{}, nil
	}
	return s.ImportFile(ctx, csvPath, w)
}

// Search returns at most limit operators whose legal name, trade name or
// city contains query, ignoring case and accents. Results come back in
// import order. A non-positive limit returns no rows.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]types.Operator, error) {
	if limit <= 0 {
		return []types.Operator{}, nil
	}

	pattern := likePattern(query)
	rows, err := s.db.QueryContext(ctx,
		`SELECT registro_ans, cnpj, razao_social, nome_fantasia, modalidade,
			logradouro, numero, complemento, bairro, cidade, uf, cep,
			ddd, telefone, fax, endereco_eletronico, representante,
			cargo_representante, regiao_de_comercializacao, data_registro_ans
		FROM operators
		WHERE razao_social_folded LIKE ? ESCAPE '\'
			OR nome_fantasia_folded LIKE ? ESCAPE '\'
			OR cidade_folded LIKE ? ESCAPE '\'
		ORDER BY rowid
		LIMIT ?`,
		pattern, pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("searching operators: %w", err)
	}
	defer rows.Close()

	results := []types.Operator{}
	for rows.Next() {
		op, err := scanOperator(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, op)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating search results: %w", err)
	}
	return results, nil
}

func operatorArgs(op types.Operator) []any {
	return []any{
		op.RegistroANS, op.CNPJ, op.RazaoSocial, nullable(op.NomeFantasia), op.Modalidade,
		op.Logradouro, op.Numero, nullable(op.Complemento), op.Bairro, op.Cidade, op.UF, op.CEP,
		nullable(op.DDD), nullable(op.Telefone), nullable(op.Fax), nullable(op.EnderecoEletronico),
		nullable(op.Representante), nullable(op.CargoRepresentante),
		nullable(op.RegiaoDeComercializacao), op.DataRegistroANS,
		fold(op.RazaoSocial), fold(deref(op.NomeFantasia)), fold(op.Cidade),
	}
}

func scanOperator(rows *sql.Rows) (types.Operator, error) {
	var (
		op  types.Operator
		opt [9]sql.NullString
	)
	err := rows.Scan(
		&op.RegistroANS, &op.CNPJ, &op.RazaoSocial, &opt[0], &op.Modalidade,
		&op.Logradouro, &op.Numero, &opt[1], &op.Bairro, &op.Cidade, &op.UF, &op.CEP,
		&opt[2], &opt[3], &opt[4], &opt[5], &opt[6], &opt[7], &opt[8], &op.DataRegistroANS,
	)
	if err != nil {
		return types.Operator{}, fmt.Errorf("scanning operator: %w", err)
	}
	op.NomeFantasia = ptr(opt[0])
	op.Complemento = ptr(opt[1])
	op.DDD = ptr(opt[2])
	op.Telefone = ptr(opt[3])
	op.Fax = ptr(opt[4])
	op.EnderecoEletronico = ptr(opt[5])
	op.Representante = ptr(opt[6])
	op.CargoRepresentante = ptr(opt[7])
	op.RegiaoDeComercializacao = ptr(opt[8])
	return op, nil
}

func nullable(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func ptr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
