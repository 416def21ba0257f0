package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/canteiro/internal/db"
	"github.com/alexanderramin/canteiro/internal/domain"
)

// timeLayout keeps sub-second precision so rows written within one
// transaction still sort by time.
const timeLayout = time.RFC3339Nano

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// intToBool converts a SQLite integer (0 or 1) to a Go bool.
func intToBool(i int) bool {
	return i != 0
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// parseTimes parses created_at/updated_at pairs into dst.
func parseTimes(createdStr, updatedStr string, created, updated *time.Time) error {
	var err error
	if *created, err = time.Parse(timeLayout, createdStr); err != nil {
		return fmt.Errorf("parsing created_at: %w", err)
	}
	if *updated, err = time.Parse(timeLayout, updatedStr); err != nil {
		return fmt.Errorf("parsing updated_at: %w", err)
	}
	return nil
}

// scanErr maps sql.ErrNoRows to a typed not-found error.
func scanErr(err error, entity, id string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFoundError(entity, id)
	}
	return fmt.Errorf("scanning %s: %w", entity, err)
}

// expectOneRow turns a zero-row UPDATE/DELETE into a not-found error.
func expectOneRow(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows for %s: %w", entity, err)
	}
	if n == 0 {
		return domain.NotFoundError(entity, id)
	}
	return nil
}

// expectVersionBump reports ErrConflict when a version-guarded UPDATE
// matched nothing. A missing row is reported as not found.
func expectVersionBump(ctx context.Context, q db.DBTX, res sql.Result, table, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows for %s: %w", entity, err)
	}
	if n == 1 {
		return nil
	}
	var exists int
	if err := q.QueryRowContext(ctx, `SELECT 1 FROM `+table+` WHERE id = ?`, id).Scan(&exists); err != nil {
		return scanErr(err, entity, id)
	}
	return fmt.Errorf("%s %s: %w", entity, id, domain.ErrConflict)
}

type rowScanner interface {
	Scan(dest ...any) error
}
