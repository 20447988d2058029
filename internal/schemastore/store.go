// Package schemastore keeps imported questionnaires in SQLite so a server
// can serve a schema that no longer exists on disk. The latest import is
// the active one; earlier imports stay queryable as revisions.
package schemastore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/HendryAvila/hoofy-interview/internal/schema"
	"github.com/HendryAvila/hoofy-interview/internal/tier"
	"github.com/google/uuid"

	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// timeNow is replaceable in tests.
var timeNow = time.Now

// DBFile is the database filename inside the data directory.
const DBFile = "interview.db"

// errEmpty reports a store with nothing imported yet.
var errEmpty = errors.New("schemastore: no questionnaire imported")

// ─── Types ───────────────────────────────────────────────────────────────────

// Revision describes one imported questionnaire.
type Revision struct {
	ID            string `json:"id"`
	Version       string `json:"version"`
	QuestionCount int    `json:"question_count"`
	ImportedAt    string `json:"imported_at"`
}

// Config holds store configuration.
type Config struct {
	DataDir string
}

// DefaultConfig places the database under ~/.hoofy-interview.
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	return Config{DataDir: filepath.Join(home, ".hoofy-interview")}
}

// ─── Store ───────────────────────────────────────────────────────────────────

// Store persists questionnaires and their field metadata.
// It satisfies schema.Loader.
type Store struct {
	db  *sql.DB
	cfg Config
}

var _ schema.Loader = (*Store)(nil)

// New opens (or creates) the database in cfg.DataDir and migrates it.
func New(cfg Config) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		return nil, fmt.Errorf("schemastore: create data dir: %w", err)
	}

	db, err := openDB("sqlite", filepath.Join(cfg.DataDir, DBFile))
	if err != nil {
		return nil, fmt.Errorf("schemastore: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("schemastore: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, cfg: cfg}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("schemastore: migration: %w", err)
	}
	return s, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return filepath.Join(s.cfg.DataDir, DBFile)
}

// ─── Migrations ──────────────────────────────────────────────────────────────

func (s *Store) migrate() error {
	ddl := `
		CREATE TABLE IF NOT EXISTS questionnaires (
			seq         INTEGER PRIMARY KEY AUTOINCREMENT,
			id          TEXT    NOT NULL UNIQUE,
			version     TEXT    NOT NULL,
			questions   INTEGER NOT NULL,
			document    TEXT    NOT NULL,
			imported_at TEXT    NOT NULL
		);

		CREATE TABLE IF NOT EXISTS field_metadata (
			questionnaire_id TEXT NOT NULL REFERENCES questionnaires(id) ON DELETE CASCADE,
			question_id      TEXT NOT NULL,
			tier             TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (questionnaire_id, question_id, tier)
		);

		CREATE INDEX IF NOT EXISTS idx_field_metadata_q ON field_metadata(questionnaire_id);
	`
	_, err := s.db.Exec(ddl)
	return err
}

// ─── Writes ──────────────────────────────────────────────────────────────────

// Import stores snap as the newest revision and returns its id.
// A metadata entry with no tiers is kept as a single row with an empty
// tier so it still hides the question at every tier after a round trip.
func (s *Store) Import(ctx context.Context, snap *schema.Snapshot) (string, error) {
	if snap == nil || snap.Questionnaire == nil {
		return "", fmt.Errorf("schemastore: import: nil snapshot")
	}
	doc, err := json.Marshal(snap.Questionnaire)
	if err != nil {
		return "", fmt.Errorf("schemastore: encode questionnaire: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("schemastore: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	id := uuid.NewString()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO questionnaires (id, version, questions, document, imported_at) VALUES (?, ?, ?, ?, ?)`,
		id, snap.Questionnaire.Version, len(snap.Questionnaire.Questions), string(doc),
		timeNow().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return "", fmt.Errorf("schemastore: insert questionnaire: %w", err)
	}

	for questionID, tiers := range snap.Metadata {
		labels := make([]string, 0, len(tiers))
		for _, t := range tiers {
			labels = append(labels, string(t))
		}
		if len(labels) == 0 {
			labels = []string{""}
		}
		for _, label := range labels {
			_, err := tx.ExecContext(ctx,
				`INSERT OR IGNORE INTO field_metadata (questionnaire_id, question_id, tier) VALUES (?, ?, ?)`,
				id, questionID, label,
			)
			if err != nil {
				return "", fmt.Errorf("schemastore: insert metadata %s: %w", questionID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("schemastore: commit: %w", err)
	}
	return id, nil
}

// ImportDir loads a questionnaire directory from disk and imports it.
func (s *Store) ImportDir(ctx context.Context, dir string) (string, *schema.Snapshot, error) {
	snap, err := schema.NewFileLoader(dir).Load(ctx)
	if err != nil {
		return "", nil, err
	}
	id, err := s.Import(ctx, snap)
	if err != nil {
		return "", nil, err
	}
	return id, snap, nil
}

// ─── Reads ───────────────────────────────────────────────────────────────────

// Load returns the most recently imported snapshot. Failures, including an
// empty store, wrap schema.ErrUnavailable.
func (s *Store) Load(ctx context.Context) (*schema.Snapshot, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM questionnaires ORDER BY seq DESC LIMIT 1`,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %w", schema.ErrUnavailable, errEmpty)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: schemastore: latest revision: %w", schema.ErrUnavailable, err)
	}
	return s.LoadRevision(ctx, id)
}

// LoadRevision returns the snapshot imported under id.
func (s *Store) LoadRevision(ctx context.Context, id string) (*schema.Snapshot, error) {
	var doc string
	err := s.db.QueryRowContext(ctx,
		`SELECT document FROM questionnaires WHERE id = ?`, id,
	).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: schemastore: revision %q not found", schema.ErrUnavailable, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: schemastore: read revision: %w", schema.ErrUnavailable, err)
	}

	q, err := schema.ParseQuestionnaire([]byte(doc), schema.FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", schema.ErrUnavailable, err)
	}
	meta, err := s.metadata(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", schema.ErrUnavailable, err)
	}
	return schema.NewSnapshot(q, meta), nil
}

func (s *Store) metadata(ctx context.Context, id string) (schema.FieldMetadata, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT question_id, tier FROM field_metadata WHERE questionnaire_id = ? ORDER BY question_id, tier`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("schemastore: read metadata: %w", err)
	}
	defer rows.Close()

	meta := schema.FieldMetadata{}
	for rows.Next() {
		var questionID, label string
		if err := rows.Scan(&questionID, &label); err != nil {
			return nil, fmt.Errorf("schemastore: scan metadata: %w", err)
		}
		tiers, ok := meta[questionID]
		if !ok {
			tiers = []tier.Tier{}
		}
		if label != "" {
			tiers = append(tiers, tier.Tier(label))
		}
		meta[questionID] = tiers
	}
	return meta, rows.Err()
}

// List returns every revision, newest first.
func (s *Store) List(ctx context.Context) ([]Revision, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, version, questions, imported_at FROM questionnaires ORDER BY seq DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("schemastore: list: %w", err)
	}
	defer rows.Close()

	revisions := []Revision{}
	for rows.Next() {
		var r Revision
		if err := rows.Scan(&r.ID, &r.Version, &r.QuestionCount, &r.ImportedAt); err != nil {
			return nil, fmt.Errorf("schemastore: scan revision: %w", err)
		}
		revisions = append(revisions, r)
	}
	return revisions, rows.Err()
}

// Delete removes a revision and its metadata.
func (s *Store) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("schemastore: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM field_metadata WHERE questionnaire_id = ?`, id); err != nil {
		return fmt.Errorf("schemastore: delete metadata: %w", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM questionnaires WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("schemastore: delete: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("schemastore: delete: %w", err)
	} else if n == 0 {
		return fmt.Errorf("schemastore: revision %q not found", id)
	}
	return tx.Commit()
}
