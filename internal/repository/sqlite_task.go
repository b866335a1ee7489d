package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/genba/internal/db"
	"github.com/alexanderramin/genba/internal/domain"
)

// SQLiteTaskRepo implements TaskRepo using a SQLite database.
type SQLiteTaskRepo struct {
	db db.DBTX
}

// NewSQLiteTaskRepo creates a new SQLiteTaskRepo.
func NewSQLiteTaskRepo(conn db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: conn}
}

const taskColumns = `id, project_id, text, start_date, end_date, color`

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	now := nowUTC()
	query := `INSERT INTO tasks (` + taskColumns + `, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.ProjectID,
		t.Text,
		nullableDate(t.Start),
		nullableDate(t.End),
		nullableString(t.Color),
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("task %q: %w", id, ErrNotFound)
	}
	return t, err
}

// List returns every task in creation order. Creation order is the input
// order the lane layout sees, so it must be stable across reads.
func (r *SQLiteTaskRepo) List(ctx context.Context) ([]*domain.Task, error) {
	return r.query(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY created_at, rowid`)
}

func (r *SQLiteTaskRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error) {
	return r.query(ctx, `SELECT `+taskColumns+` FROM tasks WHERE project_id = ? ORDER BY created_at, rowid`, projectID)
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	query := `UPDATE tasks SET project_id = ?, text = ?, start_date = ?, end_date = ?, color = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.ProjectID,
		t.Text,
		nullableDate(t.Start),
		nullableDate(t.End),
		nullableString(t.Color),
		nowUTC(),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return expectOneRow(res, "task", t.ID)
}

func (r *SQLiteTaskRepo) UpdateDates(ctx context.Context, id string, dr domain.DateRange) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET start_date = ?, end_date = ?, updated_at = ? WHERE id = ?`,
		domain.FormatDate(dr.Start), domain.FormatDate(dr.End), nowUTC(), id)
	if err != nil {
		return fmt.Errorf("updating task dates: %w", err)
	}
	return expectOneRow(res, "task", id)
}

func (r *SQLiteTaskRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return expectOneRow(res, "task", id)
}

// DeleteByProject removes every task of a project and reports how many.
func (r *SQLiteTaskRepo) DeleteByProject(ctx context.Context, projectID string) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE project_id = ?`, projectID)
	if err != nil {
		return 0, fmt.Errorf("deleting project tasks: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking deleted tasks: %w", err)
	}
	return int(n), nil
}

func (r *SQLiteTaskRepo) query(ctx context.Context, query string, args ...any) ([]*domain.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var t domain.Task
	var startStr, endStr, color sql.NullString

	if err := row.Scan(&t.ID, &t.ProjectID, &t.Text, &startStr, &endStr, &color); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}
	t.Start = parseNullableDate(startStr)
	t.End = parseNullableDate(endStr)
	t.Color = color.String
	return &t, nil
}
