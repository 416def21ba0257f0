package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/canteiro/internal/db"
	"github.com/alexanderramin/canteiro/internal/domain"
)

const stageColumns = `id, phase_id, name, progress, is_skipped, version, created_at, updated_at`

// stageColumnsAliased is the same column list prefixed with "s." for join queries.
const stageColumnsAliased = `s.id, s.phase_id, s.name, s.progress, s.is_skipped, s.version,
		s.created_at, s.updated_at`

// SQLiteStageRepo implements StageRepo using a SQLite database.
type SQLiteStageRepo struct {
	db db.DBTX
}

func NewSQLiteStageRepo(q db.DBTX) *SQLiteStageRepo {
	return &SQLiteStageRepo{db: q}
}

func (r *SQLiteStageRepo) Create(ctx context.Context, s *domain.Stage) error {
	if s.Version == 0 {
		s.Version = 1
	}
	query := `INSERT INTO stages (` + stageColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.PhaseID, s.Name, s.Progress, boolToInt(s.Skipped), s.Version,
		formatTime(s.CreatedAt), formatTime(s.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting stage: %w", err)
	}
	return nil
}

func (r *SQLiteStageRepo) GetByID(ctx context.Context, id string) (*domain.Stage, error) {
	query := `SELECT ` + stageColumns + ` FROM stages WHERE id = ?`
	s, err := scanStage(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, scanErr(err, "stage", id)
	}
	return s, nil
}

func (r *SQLiteStageRepo) ListByPhase(ctx context.Context, phaseID string) ([]*domain.Stage, error) {
	query := `SELECT ` + stageColumns + ` FROM stages WHERE phase_id = ? ORDER BY rowid`
	rows, err := r.db.QueryContext(ctx, query, phaseID)
	if err != nil {
		return nil, fmt.Errorf("listing stages: %w", err)
	}
	return collectStages(rows)
}

func (r *SQLiteStageRepo) ListByConstruction(ctx context.Context, constructionID string) ([]*domain.Stage, error) {
	query := `SELECT ` + stageColumnsAliased + `
		FROM stages s
		JOIN phases p ON p.id = s.phase_id
		WHERE p.construction_id = ?
		ORDER BY p.rowid, s.rowid`
	rows, err := r.db.QueryContext(ctx, query, constructionID)
	if err != nil {
		return nil, fmt.Errorf("listing construction stages: %w", err)
	}
	return collectStages(rows)
}

func (r *SQLiteStageRepo) Update(ctx context.Context, s *domain.Stage) error {
	res, err := r.db.ExecContext(ctx, `UPDATE stages SET name = ?, is_skipped = ?, updated_at = ? WHERE id = ?`,
		s.Name, boolToInt(s.Skipped), formatTime(s.UpdatedAt), s.ID)
	if err != nil {
		return fmt.Errorf("updating stage: %w", err)
	}
	return expectOneRow(res, "stage", s.ID)
}

func (r *SQLiteStageRepo) UpdateProgress(ctx context.Context, s *domain.Stage) error {
	now := time.Now().UTC()
	query := `UPDATE stages SET progress = ?, version = version + 1, updated_at = ?
		WHERE id = ? AND version = ?`
	res, err := r.db.ExecContext(ctx, query, s.Progress, formatTime(now), s.ID, s.Version)
	if err != nil {
		return fmt.Errorf("updating stage progress: %w", err)
	}
	if err := expectVersionBump(ctx, r.db, res, "stages", "stage", s.ID); err != nil {
		return err
	}
	s.Version++
	s.UpdatedAt = now
	return nil
}

func (r *SQLiteStageRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM stages WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting stage: %w", err)
	}
	return expectOneRow(res, "stage", id)
}

func collectStages(rows *sql.Rows) ([]*domain.Stage, error) {
	defer rows.Close()
	var out []*domain.Stage
	for rows.Next() {
		s, err := scanStage(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning stage row: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stages: %w", err)
	}
	return out, nil
}

func scanStage(row rowScanner) (*domain.Stage, error) {
	var s domain.Stage
	var skipped int
	var createdAtStr, updatedAtStr string
	if err := row.Scan(&s.ID, &s.PhaseID, &s.Name, &s.Progress, &skipped, &s.Version, &createdAtStr, &updatedAtStr); err != nil {
		return nil, err
	}
	s.Skipped = intToBool(skipped)
	if err := parseTimes(createdAtStr, updatedAtStr, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
