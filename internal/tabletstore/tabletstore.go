// Package tabletstore is the external append-only text store referenced by
// §6.2: it keys tablet text by (cx, cy, local_x, local_y) and, per the §9
// open question, versions those keys by the generator's configuration hash
// so a retuned generator can never silently serve text for a cell that no
// longer holds a tablet.
package tabletstore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	_ "modernc.org/sqlite"
)

// ErrConfigVersionMismatch is returned by CheckVersion when the
// dungeon.Config.GenerationHash() the store recorded differs from the one
// presented now. The store never guesses whether stale content is
// still valid; the operator must resolve it (migrate or wipe).
var ErrConfigVersionMismatch = fmt.Errorf("tabletstore: stored generation hash does not match current configuration")

// Store is a single-writer, append-only tablet text store backed by
// SQLite. Writes are funneled through one goroutine so SQLite's single
// writer never contends with itself; reads use the shared *sql.DB
// connection pool directly.
type Store struct {
	db *sql.DB

	ch   chan writeReq
	wg   sync.WaitGroup
	once sync.Once

	closed atomic.Bool
}

type writeReq struct {
	cx, cy, localX, localY int
	text                   string
	result                 chan error
}

// Open creates or opens the SQLite database at path and ensures its
// schema exists.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("tabletstore: empty db path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &Store{
		db: db,
		ch: make(chan writeReq, 4096),
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop()
	}()
	return s, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS tablets (
			cx INTEGER NOT NULL,
			cy INTEGER NOT NULL,
			local_x INTEGER NOT NULL,
			local_y INTEGER NOT NULL,
			text TEXT NOT NULL,
			PRIMARY KEY (cx, cy, local_x, local_y)
		);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// CheckVersion compares the store's recorded generation hash (recorded by
// the first CheckVersion call) against hash. A store with no recorded hash
// has no opinion and simply records hash for next time. A mismatch returns ErrConfigVersionMismatch.
func (s *Store) CheckVersion(ctx context.Context, hash uint64) error {
	var stored string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'generation_hash'`).Scan(&stored)
	if err == sql.ErrNoRows {
		_, err := s.db.ExecContext(ctx,
			`INSERT OR REPLACE INTO meta(key,value) VALUES('generation_hash', ?)`,
			fmt.Sprintf("%d", hash))
		return err
	}
	if err != nil {
		return err
	}
	if stored != fmt.Sprintf("%d", hash) {
		return ErrConfigVersionMismatch
	}
	return nil
}

// GetText returns the stored text for a tablet cell, if any.
func (s *Store) GetText(ctx context.Context, cx, cy, localX, localY int) (string, bool, error) {
	var text string
	err := s.db.QueryRowContext(ctx,
		`SELECT text FROM tablets WHERE cx=? AND cy=? AND local_x=? AND local_y=?`,
		cx, cy, localX, localY).Scan(&text)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return text, true, nil
}

// PutText queues an append of text to the given tablet cell's stored text
// (creating it if absent) and waits for it to be committed. Writes are serialized through the store's
// single writer goroutine.
func (s *Store) PutText(ctx context.Context, cx, cy, localX, localY int, text string) error {
	if s.closed.Load() {
		return fmt.Errorf("tabletstore: store closed")
	}
	result := make(chan error, 1)
	req := writeReq{cx: cx, cy: cy, localX: localX, localY: localY, text: text, result: result}

	select {
	case s.ch <- req:
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) loop() {
	stmt, err := s.db.Prepare(`INSERT INTO tablets(cx,cy,local_x,local_y,text) VALUES(?,?,?,?,?)
		ON CONFLICT(cx,cy,local_x,local_y) DO UPDATE SET text = tablets.text || excluded.text`)
	if err != nil {
		for req := range s.ch {
			req.result <- err
		}
		return
	}
	defer stmt.Close()

	for req := range s.ch {
		_, err := stmt.Exec(req.cx, req.cy, req.localX, req.localY, req.text)
		req.result <- err
	}
}

// Close stops the writer goroutine and closes the underlying database.
func (s *Store) Close() error {
	var err error
	s.once.Do(func() {
		s.closed.Store(true)
		close(s.ch)
		s.wg.Wait()
		err = s.db.Close()
	})
	return err
}
