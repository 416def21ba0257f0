package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/canteiro/internal/db"
	"github.com/alexanderramin/canteiro/internal/domain"
)

const taskColumns = `id, stage_id, name, budgeted_cost, status, created_at, updated_at`

const taskColumnsAliased = `t.id, t.stage_id, t.name, t.budgeted_cost, t.status, t.created_at, t.updated_at`

// SQLiteTaskRepo implements TaskRepo using a SQLite database.
type SQLiteTaskRepo struct {
	db db.DBTX
}

func NewSQLiteTaskRepo(q db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: q}
}

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	query := `INSERT INTO tasks (` + taskColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.StageID, t.Name, t.BudgetedCost, string(t.Status),
		formatTime(t.CreatedAt), formatTime(t.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	t, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, scanErr(err, "task", id)
	}
	return t, nil
}

func (r *SQLiteTaskRepo) ListByStage(ctx context.Context, stageID string) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE stage_id = ? ORDER BY rowid`
	rows, err := r.db.QueryContext(ctx, query, stageID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	return collectTasks(rows)
}

func (r *SQLiteTaskRepo) ListByPhase(ctx context.Context, phaseID string) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumnsAliased + `
		FROM tasks t
		JOIN stages s ON s.id = t.stage_id
		WHERE s.phase_id = ?
		ORDER BY s.rowid, t.rowid`
	rows, err := r.db.QueryContext(ctx, query, phaseID)
	if err != nil {
		return nil, fmt.Errorf("listing phase tasks: %w", err)
	}
	return collectTasks(rows)
}

func (r *SQLiteTaskRepo) ListByConstruction(ctx context.Context, constructionID string) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumnsAliased + `
		FROM tasks t
		JOIN stages s ON s.id = t.stage_id
		JOIN phases p ON p.id = s.phase_id
		WHERE p.construction_id = ?
		ORDER BY p.rowid, s.rowid, t.rowid`
	rows, err := r.db.QueryContext(ctx, query, constructionID)
	if err != nil {
		return nil, fmt.Errorf("listing construction tasks: %w", err)
	}
	return collectTasks(rows)
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	query := `UPDATE tasks SET name = ?, budgeted_cost = ?, status = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.Name, t.BudgetedCost, string(t.Status), formatTime(t.UpdatedAt), t.ID)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return expectOneRow(res, "task", t.ID)
}

func (r *SQLiteTaskRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return expectOneRow(res, "task", id)
}

func collectTasks(rows *sql.Rows) ([]*domain.Task, error) {
	defer rows.Close()
	var out []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning task row: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return out, nil
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var t domain.Task
	var status, createdAtStr, updatedAtStr string
	if err := row.Scan(&t.ID, &t.StageID, &t.Name, &t.BudgetedCost, &status, &createdAtStr, &updatedAtStr); err != nil {
		return nil, err
	}
	t.Status = domain.TaskStatus(status)
	if err := parseTimes(createdAtStr, updatedAtStr, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}
