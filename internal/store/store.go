// Package store persists named top-level type aliases and REPL session
// bookkeeping to a local SQLite file (spec SPEC_FULL §5, domain stack
// C13), so a long-running REPL session's declared types survive a
// process restart and so internal/typesvc can look a caller's
// previously-registered aliases up by name.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mindscript-lang/mindscript/internal/ast"
	"github.com/mindscript-lang/mindscript/internal/lexer"
	"github.com/mindscript-lang/mindscript/internal/parser"
	"github.com/mindscript-lang/mindscript/internal/printer"
)

// Registry is a SQLite-backed store of (session, alias name) -> type
// text. Values are kept as printed surface syntax, not a serialized AST,
// so the schema stays stable across changes to the AST's internal shape.
type Registry struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id         TEXT PRIMARY KEY,
	created_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS aliases (
	session_id TEXT NOT NULL,
	name       TEXT NOT NULL,
	type_text  TEXT NOT NULL,
	PRIMARY KEY (session_id, name)
);
`

// Open creates or reuses a SQLite database at path. An empty path opens an
// in-memory database, useful for tests and for a config.Registry of "".
func Open(path string) (*Registry, error) {
	dsn := path
	if dsn == "" {
		dsn = ":memory:"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening registry %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing registry schema: %w", err)
	}
	return &Registry{db: db}, nil
}

// Close releases the underlying database handle.
func (r *Registry) Close() error {
	return r.db.Close()
}

// NewSession records a fresh session id and returns it, so the REPL can
// hand the id back to the user for `mindscript repl --resume <id>`.
func (r *Registry) NewSession(ctx context.Context) (string, error) {
	id := uuid.New().String()
	_, err := r.db.ExecContext(ctx, `INSERT INTO sessions (id, created_at) VALUES (?, ?)`, id, time.Now().Unix())
	if err != nil {
		return "", fmt.Errorf("creating session: %w", err)
	}
	return id, nil
}

// HasSession reports whether session is a known, previously-created id.
func (r *Registry) HasSession(ctx context.Context, session string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM sessions WHERE id = ?`, session).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking session %s: %w", session, err)
	}
	return n > 0, nil
}

// SaveAlias persists a single `type Name = ...` declaration under session,
// overwriting any prior definition of the same name.
func (r *Registry) SaveAlias(ctx context.Context, session, name string, t ast.Type) error {
	text := printer.PrintType(t)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO aliases (session_id, name, type_text) VALUES (?, ?, ?)
		 ON CONFLICT(session_id, name) DO UPDATE SET type_text = excluded.type_text`,
		session, name, text)
	if err != nil {
		return fmt.Errorf("saving alias %s: %w", name, err)
	}
	return nil
}

// LoadAliases reparses every alias registered under session back into
// ast.Type nodes, keyed by name. Reparsing (rather than deserializing a
// stored AST) keeps the persisted form legible and forward-compatible.
func (r *Registry) LoadAliases(ctx context.Context, session string) (map[string]ast.Type, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name, type_text FROM aliases WHERE session_id = ?`, session)
	if err != nil {
		return nil, fmt.Errorf("loading aliases for session %s: %w", session, err)
	}
	defer rows.Close()

	out := make(map[string]ast.Type)
	for rows.Next() {
		var name, text string
		if err := rows.Scan(&name, &text); err != nil {
			return nil, fmt.Errorf("scanning alias row: %w", err)
		}
		t, err := parseTypeText(text)
		if err != nil {
			return nil, fmt.Errorf("reparsing alias %s = %s: %w", name, text, err)
		}
		out[name] = t
	}
	return out, rows.Err()
}

func parseTypeText(text string) (ast.Type, error) {
	p := parser.New(lexer.New(text))
	t := p.ParseTypeExpression()
	if errs := p.Errors(); len(errs) > 0 {
		return nil, fmt.Errorf("%v", errs)
	}
	return t, nil
}
