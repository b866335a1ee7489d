package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/genba/internal/db"
	"github.com/alexanderramin/genba/internal/domain"
)

// SQLiteProjectRepo implements ProjectRepo using a SQLite database.
type SQLiteProjectRepo struct {
	db db.DBTX
}

// NewSQLiteProjectRepo creates a new SQLiteProjectRepo.
func NewSQLiteProjectRepo(conn db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: conn}
}

const projectColumns = `id, name, color, border_color, start_date, end_date, sort_order, created_at, updated_at`

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO projects (` + projectColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		p.Color,
		p.BorderColor,
		nullableDate(p.StartDate),
		nullableDate(p.EndDate),
		nullableInt(p.Order),
		p.CreatedAt.UTC().Format(time.RFC3339),
		p.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("project %q: %w", id, ErrNotFound)
	}
	return p, err
}

// List returns projects by display rank, unranked last, then by creation.
func (r *SQLiteProjectRepo) List(ctx context.Context) ([]*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects
		ORDER BY sort_order IS NULL, sort_order, created_at, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

func (r *SQLiteProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	query := `UPDATE projects SET name = ?, color = ?, border_color = ?, start_date = ?, end_date = ?,
		sort_order = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.Name,
		p.Color,
		p.BorderColor,
		nullableDate(p.StartDate),
		nullableDate(p.EndDate),
		nullableInt(p.Order),
		p.UpdatedAt.UTC().Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	return expectOneRow(res, "project", p.ID)
}

func (r *SQLiteProjectRepo) UpdateDates(ctx context.Context, id string, dr domain.DateRange) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE projects SET start_date = ?, end_date = ?, updated_at = ? WHERE id = ?`,
		domain.FormatDate(dr.Start), domain.FormatDate(dr.End), nowUTC(), id)
	if err != nil {
		return fmt.Errorf("updating project dates: %w", err)
	}
	return expectOneRow(res, "project", id)
}

func (r *SQLiteProjectRepo) UpdateOrder(ctx context.Context, id string, order int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE projects SET sort_order = ?, updated_at = ? WHERE id = ?`, order, nowUTC(), id)
	if err != nil {
		return fmt.Errorf("updating project order: %w", err)
	}
	return expectOneRow(res, "project", id)
}

func (r *SQLiteProjectRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return expectOneRow(res, "project", id)
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var p domain.Project
	var startStr, endStr sql.NullString
	var order sql.NullInt64
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&p.ID, &p.Name, &p.Color, &p.BorderColor,
		&startStr, &endStr, &order,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}

	p.StartDate = parseNullableDate(startStr)
	p.EndDate = parseNullableDate(endStr)
	p.Order = intPtr(order)

	if p.CreatedAt, err = parseTimestamp(createdAtStr, "created_at"); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTimestamp(updatedAtStr, "updated_at"); err != nil {
		return nil, err
	}
	return &p, nil
}
