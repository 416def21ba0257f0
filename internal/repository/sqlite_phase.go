package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/canteiro/internal/db"
	"github.com/alexanderramin/canteiro/internal/domain"
)

const phaseColumns = `id, construction_id, name, progress, version, created_at, updated_at`

// SQLitePhaseRepo implements PhaseRepo using a SQLite database.
type SQLitePhaseRepo struct {
	db db.DBTX
}

func NewSQLitePhaseRepo(q db.DBTX) *SQLitePhaseRepo {
	return &SQLitePhaseRepo{db: q}
}

func (r *SQLitePhaseRepo) Create(ctx context.Context, p *domain.Phase) error {
	if p.Version == 0 {
		p.Version = 1
	}
	query := `INSERT INTO phases (` + phaseColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.ConstructionID, p.Name, p.Progress, p.Version,
		formatTime(p.CreatedAt), formatTime(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting phase: %w", err)
	}
	return nil
}

func (r *SQLitePhaseRepo) GetByID(ctx context.Context, id string) (*domain.Phase, error) {
	query := `SELECT ` + phaseColumns + ` FROM phases WHERE id = ?`
	p, err := scanPhase(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, scanErr(err, "phase", id)
	}
	return p, nil
}

func (r *SQLitePhaseRepo) ListByConstruction(ctx context.Context, constructionID string) ([]*domain.Phase, error) {
	query := `SELECT ` + phaseColumns + ` FROM phases WHERE construction_id = ? ORDER BY rowid`
	rows, err := r.db.QueryContext(ctx, query, constructionID)
	if err != nil {
		return nil, fmt.Errorf("listing phases: %w", err)
	}
	defer rows.Close()

	var out []*domain.Phase
	for rows.Next() {
		p, err := scanPhase(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning phase row: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating phases: %w", err)
	}
	return out, nil
}

func (r *SQLitePhaseRepo) Update(ctx context.Context, p *domain.Phase) error {
	res, err := r.db.ExecContext(ctx, `UPDATE phases SET name = ?, updated_at = ? WHERE id = ?`,
		p.Name, formatTime(p.UpdatedAt), p.ID)
	if err != nil {
		return fmt.Errorf("updating phase: %w", err)
	}
	return expectOneRow(res, "phase", p.ID)
}

func (r *SQLitePhaseRepo) UpdateProgress(ctx context.Context, p *domain.Phase) error {
	now := time.Now().UTC()
	query := `UPDATE phases SET progress = ?, version = version + 1, updated_at = ?
		WHERE id = ? AND version = ?`
	res, err := r.db.ExecContext(ctx, query, p.Progress, formatTime(now), p.ID, p.Version)
	if err != nil {
		return fmt.Errorf("updating phase progress: %w", err)
	}
	if err := expectVersionBump(ctx, r.db, res, "phases", "phase", p.ID); err != nil {
		return err
	}
	p.Version++
	p.UpdatedAt = now
	return nil
}

func (r *SQLitePhaseRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM phases WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting phase: %w", err)
	}
	return expectOneRow(res, "phase", id)
}

func scanPhase(row rowScanner) (*domain.Phase, error) {
	var p domain.Phase
	var createdAtStr, updatedAtStr string
	if err := row.Scan(&p.ID, &p.ConstructionID, &p.Name, &p.Progress, &p.Version, &createdAtStr, &updatedAtStr); err != nil {
		return nil, err
	}
	if err := parseTimes(createdAtStr, updatedAtStr, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
