package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/canteiro/internal/db"
	"github.com/alexanderramin/canteiro/internal/domain"
)

const constructionColumns = `id, name, address, postal_code, city, district, owner_id,
		progress, version, created_at, updated_at`

// SQLiteConstructionRepo implements ConstructionRepo using a SQLite database.
type SQLiteConstructionRepo struct {
	db db.DBTX
}

// NewSQLiteConstructionRepo creates a new SQLiteConstructionRepo.
func NewSQLiteConstructionRepo(q db.DBTX) *SQLiteConstructionRepo {
	return &SQLiteConstructionRepo{db: q}
}

func (r *SQLiteConstructionRepo) Create(ctx context.Context, c *domain.Construction) error {
	if c.Version == 0 {
		c.Version = 1
	}
	query := `INSERT INTO constructions (` + constructionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.Name,
		c.Address,
		c.PostalCode,
		c.City,
		c.District,
		c.OwnerID,
		c.Progress,
		c.Version,
		formatTime(c.CreatedAt),
		formatTime(c.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting construction: %w", err)
	}
	return nil
}

func (r *SQLiteConstructionRepo) GetByID(ctx context.Context, id string) (*domain.Construction, error) {
	query := `SELECT ` + constructionColumns + ` FROM constructions WHERE id = ?`
	c, err := scanConstruction(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, scanErr(err, "construction", id)
	}
	return c, nil
}

func (r *SQLiteConstructionRepo) List(ctx context.Context) ([]*domain.Construction, error) {
	query := `SELECT ` + constructionColumns + ` FROM constructions ORDER BY created_at, rowid`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing constructions: %w", err)
	}
	defer rows.Close()

	var out []*domain.Construction
	for rows.Next() {
		c, err := scanConstruction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning construction row: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating constructions: %w", err)
	}
	return out, nil
}

// Update writes the descriptive fields. Progress and version are only
// written by UpdateProgress.
func (r *SQLiteConstructionRepo) Update(ctx context.Context, c *domain.Construction) error {
	query := `UPDATE constructions SET name = ?, address = ?, postal_code = ?, city = ?, district = ?,
		owner_id = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		c.Name, c.Address, c.PostalCode, c.City, c.District, c.OwnerID,
		formatTime(c.UpdatedAt), c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating construction: %w", err)
	}
	return expectOneRow(res, "construction", c.ID)
}

// UpdateProgress persists c.Progress if the stored version still equals
// c.Version, then bumps c.Version.
func (r *SQLiteConstructionRepo) UpdateProgress(ctx context.Context, c *domain.Construction) error {
	now := time.Now().UTC()
	query := `UPDATE constructions SET progress = ?, version = version + 1, updated_at = ?
		WHERE id = ? AND version = ?`
	res, err := r.db.ExecContext(ctx, query, c.Progress, formatTime(now), c.ID, c.Version)
	if err != nil {
		return fmt.Errorf("updating construction progress: %w", err)
	}
	if err := expectVersionBump(ctx, r.db, res, "constructions", "construction", c.ID); err != nil {
		return err
	}
	c.Version++
	c.UpdatedAt = now
	return nil
}

func (r *SQLiteConstructionRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM constructions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting construction: %w", err)
	}
	return expectOneRow(res, "construction", id)
}

func scanConstruction(row rowScanner) (*domain.Construction, error) {
	var c domain.Construction
	var createdAtStr, updatedAtStr string
	if err := row.Scan(
		&c.ID, &c.Name, &c.Address, &c.PostalCode, &c.City, &c.District, &c.OwnerID,
		&c.Progress, &c.Version, &createdAtStr, &updatedAtStr,
	); err != nil {
		return nil, err
	}
	if err := parseTimes(createdAtStr, updatedAtStr, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
