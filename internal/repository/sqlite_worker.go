package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/genba/internal/db"
	"github.com/alexanderramin/genba/internal/domain"
)

// SQLiteWorkerRepo implements WorkerRepo using a SQLite database.
type SQLiteWorkerRepo struct {
	db db.DBTX
}

// NewSQLiteWorkerRepo creates a new SQLiteWorkerRepo.
func NewSQLiteWorkerRepo(conn db.DBTX) *SQLiteWorkerRepo {
	return &SQLiteWorkerRepo{db: conn}
}

const workerColumns = `id, name, name_kana, birth_date, sort_order`

func (r *SQLiteWorkerRepo) Create(ctx context.Context, w *domain.Worker) error {
	now := nowUTC()
	query := `INSERT INTO workers (` + workerColumns + `, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		w.ID, w.Name, w.NameKana, nullableDate(w.BirthDate), nullableInt(w.Order), now, now)
	if err != nil {
		return fmt.Errorf("inserting worker: %w", err)
	}
	return nil
}

func (r *SQLiteWorkerRepo) GetByID(ctx context.Context, id string) (*domain.Worker, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+workerColumns+` FROM workers WHERE id = ?`, id)
	w, err := scanWorker(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("worker %q: %w", id, ErrNotFound)
	}
	return w, err
}

func (r *SQLiteWorkerRepo) List(ctx context.Context) ([]*domain.Worker, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+workerColumns+` FROM workers
		ORDER BY sort_order IS NULL, sort_order, created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("listing workers: %w", err)
	}
	defer rows.Close()

	var workers []*domain.Worker
	for rows.Next() {
		w, err := scanWorker(rows)
		if err != nil {
			return nil, err
		}
		workers = append(workers, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating workers: %w", err)
	}
	return workers, nil
}

// Update writes the editable fields. Display order is only changed through
// UpdateOrder.
func (r *SQLiteWorkerRepo) Update(ctx context.Context, w *domain.Worker) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE workers SET name = ?, name_kana = ?, birth_date = ?, updated_at = ? WHERE id = ?`,
		w.Name, w.NameKana, nullableDate(w.BirthDate), nowUTC(), w.ID)
	if err != nil {
		return fmt.Errorf("updating worker: %w", err)
	}
	return expectOneRow(res, "worker", w.ID)
}

func (r *SQLiteWorkerRepo) UpdateOrder(ctx context.Context, id string, order int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE workers SET sort_order = ?, updated_at = ? WHERE id = ?`, order, nowUTC(), id)
	if err != nil {
		return fmt.Errorf("updating worker order: %w", err)
	}
	return expectOneRow(res, "worker", id)
}

func (r *SQLiteWorkerRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM workers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting worker: %w", err)
	}
	return expectOneRow(res, "worker", id)
}

func scanWorker(row rowScanner) (*domain.Worker, error) {
	var w domain.Worker
	var birth sql.NullString
	var order sql.NullInt64

	if err := row.Scan(&w.ID, &w.Name, &w.NameKana, &birth, &order); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning worker: %w", err)
	}
	w.BirthDate = parseNullableDate(birth)
	w.Order = intPtr(order)
	return &w, nil
}
