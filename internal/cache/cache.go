// Package cache provides a content-addressed result cache for analysis
// runs, backed by a local sqlite database. Keys are sha256(domain||problem)
// so re-verifying an unchanged domain/problem pair, or re-computing
// metadata for an unchanged domain, is an index lookup instead of a full
// lex/parse/semantic pass. Adapted from the teacher's
// server/dao/sqlite connection-setup and migration idiom.
package cache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dekarrin/hddlint/internal/diag"
	"github.com/dekarrin/hddlint/internal/metadata"
	"github.com/dekarrin/hddlint/server/serr"
	"modernc.org/sqlite"
)

// Verify result warnings are cached as their rendered messages: diag's
// WarningType tagged union is closed to the diag package (its marker method
// is unexported), so a cache hit cannot reconstruct the original typed
// value and instead hands the caller the already-rendered text.

// Cache is a sqlite-backed store of prior analysis results.
type Cache struct {
	db *sql.DB
}

// Open creates (or reuses) a sqlite database at file and ensures its
// schema exists.
func Open(file string) (*Cache, error) {
	db, err := sql.Open("sqlite", file)
	if err != nil {
		return nil, wrapDBError(err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS verify_results (
		content_hash TEXT NOT NULL PRIMARY KEY,
		warnings_json TEXT NOT NULL
	);`)
	if err != nil {
		return nil, wrapDBError(err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS metadata_results (
		content_hash TEXT NOT NULL PRIMARY KEY,
		metadata_json TEXT NOT NULL
	);`)
	if err != nil {
		return nil, wrapDBError(err)
	}

	return &Cache{db: db}, nil
}

// Close releases the underlying database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

// GetVerify looks up a prior verify result for domain+problem, as the
// rendered message of each warning. hit is false if no entry exists, in
// which case messages is always nil.
func (c *Cache) GetVerify(ctx context.Context, domain, problem string) (messages []string, hit bool, err error) {
	key := contentHash(domain, problem)

	var warningsJSON string
	row := c.db.QueryRowContext(ctx, `SELECT warnings_json FROM verify_results WHERE content_hash = ?`, key)
	if err := row.Scan(&warningsJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, wrapDBError(err)
	}

	var stored []string
	if err := json.Unmarshal([]byte(warningsJSON), &stored); err != nil {
		return nil, false, serr.New("decode cached warnings", err)
	}
	return stored, true, nil
}

// PutVerify stores a verify result for later retrieval by GetVerify.
func (c *Cache) PutVerify(ctx context.Context, domain, problem string, warnings []diag.WarningType) error {
	key := contentHash(domain, problem)

	stored := make([]string, len(warnings))
	for i, w := range warnings {
		stored[i] = w.Error()
	}
	warningsJSON, err := json.Marshal(stored)
	if err != nil {
		return serr.New("encode warnings for cache", err)
	}

	_, err = c.db.ExecContext(ctx, `INSERT INTO verify_results (content_hash, warnings_json) VALUES (?, ?)
		ON CONFLICT(content_hash) DO UPDATE SET warnings_json = excluded.warnings_json`, key, string(warningsJSON))
	if err != nil {
		return wrapDBError(err)
	}
	return nil
}

// GetMetadata looks up a prior metadata result for domain. hit is false if
// no entry exists.
func (c *Cache) GetMetadata(ctx context.Context, domain string) (md metadata.MetaData, hit bool, err error) {
	key := contentHash(domain, "")

	var metadataJSON string
	row := c.db.QueryRowContext(ctx, `SELECT metadata_json FROM metadata_results WHERE content_hash = ?`, key)
	if err := row.Scan(&metadataJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return metadata.MetaData{}, false, nil
		}
		return metadata.MetaData{}, false, wrapDBError(err)
	}

	if err := json.Unmarshal([]byte(metadataJSON), &md); err != nil {
		return metadata.MetaData{}, false, serr.New("decode cached metadata", err)
	}
	return md, true, nil
}

// PutMetadata stores a metadata result for later retrieval by GetMetadata.
func (c *Cache) PutMetadata(ctx context.Context, domain string, md metadata.MetaData) error {
	key := contentHash(domain, "")

	metadataJSON, err := json.Marshal(md)
	if err != nil {
		return serr.New("encode metadata for cache", err)
	}

	_, err = c.db.ExecContext(ctx, `INSERT INTO metadata_results (content_hash, metadata_json) VALUES (?, ?)
		ON CONFLICT(content_hash) DO UPDATE SET metadata_json = excluded.metadata_json`, key, string(metadataJSON))
	if err != nil {
		return wrapDBError(err)
	}
	return nil
}

func contentHash(domain, problem string) string {
	sum := sha256.Sum256([]byte(domain + "\x00" + problem))
	return hex.EncodeToString(sum[:])
}

func wrapDBError(err error) error {
	sqliteErr := &sqlite.Error{}
	if errors.As(err, &sqliteErr) {
		return serr.New(fmt.Sprintf("sqlite: %s", sqlite.ErrorCodeString[sqliteErr.Code()]), err, serr.ErrCache)
	}
	return serr.New("", err, serr.ErrCache)
}
