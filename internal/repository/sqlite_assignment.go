package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/genba/internal/db"
	"github.com/alexanderramin/genba/internal/domain"
)

// SQLiteAssignmentRepo implements AssignmentRepo using a SQLite database.
// Each cell's entries are stored as one JSON array.
type SQLiteAssignmentRepo struct {
	db db.DBTX
}

// NewSQLiteAssignmentRepo creates a new SQLiteAssignmentRepo.
func NewSQLiteAssignmentRepo(conn db.DBTX) *SQLiteAssignmentRepo {
	return &SQLiteAssignmentRepo{db: conn}
}

// assignmentRecord is the stored shape of one entry.
type assignmentRecord struct {
	Type  domain.AssignmentKind `json:"type"`
	ID    string                `json:"id,omitempty"`
	Value domain.WorkerStatus   `json:"value,omitempty"`
}

// EncodeAssignments serializes cell entries to their stored JSON form.
func EncodeAssignments(entries []domain.Assignment) (string, error) {
	records := make([]assignmentRecord, 0, len(entries))
	for _, a := range entries {
		switch v := a.(type) {
		case domain.ProjectAssignment:
			records = append(records, assignmentRecord{Type: domain.AssignProject, ID: v.ProjectID})
		case domain.StatusAssignment:
			records = append(records, assignmentRecord{Type: domain.AssignStatus, Value: v.Status})
		default:
			return "", fmt.Errorf("unsupported assignment type %T", a)
		}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("encoding assignments: %w", err)
	}
	return string(data), nil
}

// DecodeAssignments parses stored JSON. Entries of unknown type are dropped.
func DecodeAssignments(data string) ([]domain.Assignment, error) {
	var records []assignmentRecord
	if err := json.Unmarshal([]byte(data), &records); err != nil {
		return nil, fmt.Errorf("decoding assignments: %w", err)
	}
	entries := make([]domain.Assignment, 0, len(records))
	for _, r := range records {
		switch r.Type {
		case domain.AssignProject:
			entries = append(entries, domain.ProjectAssignment{ProjectID: r.ID})
		case domain.AssignStatus:
			entries = append(entries, domain.StatusAssignment{Status: r.Value})
		}
	}
	return entries, nil
}

// Put replaces the entries of a cell.
func (r *SQLiteAssignmentRepo) Put(ctx context.Context, key domain.CellKey, entries []domain.Assignment) error {
	data, err := EncodeAssignments(entries)
	if err != nil {
		return err
	}
	query := `INSERT INTO assignments (cell_key, worker_id, day, entries, updated_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(cell_key) DO UPDATE SET entries = excluded.entries, updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query,
		key.String(), key.WorkerID, domain.FormatDate(key.Date), data, nowUTC()); err != nil {
		return fmt.Errorf("writing assignments for %s: %w", key, err)
	}
	return nil
}

// Get returns a cell's entries; an unset cell has none.
func (r *SQLiteAssignmentRepo) Get(ctx context.Context, key domain.CellKey) ([]domain.Assignment, error) {
	var data string
	err := r.db.QueryRowContext(ctx, `SELECT entries FROM assignments WHERE cell_key = ?`, key.String()).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading assignments for %s: %w", key, err)
	}
	return DecodeAssignments(data)
}

func (r *SQLiteAssignmentRepo) List(ctx context.Context) (map[string][]domain.Assignment, error) {
	return r.query(ctx, `SELECT cell_key, entries FROM assignments`)
}

// ListRange returns cells whose day lies in [from, to].
func (r *SQLiteAssignmentRepo) ListRange(ctx context.Context, from, to time.Time) (map[string][]domain.Assignment, error) {
	return r.query(ctx, `SELECT cell_key, entries FROM assignments WHERE day >= ? AND day <= ?`,
		domain.FormatDate(from), domain.FormatDate(to))
}

func (r *SQLiteAssignmentRepo) Delete(ctx context.Context, key domain.CellKey) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM assignments WHERE cell_key = ?`, key.String()); err != nil {
		return fmt.Errorf("deleting assignments for %s: %w", key, err)
	}
	return nil
}

func (r *SQLiteAssignmentRepo) DeleteByWorker(ctx context.Context, workerID string) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM assignments WHERE worker_id = ?`, workerID)
	if err != nil {
		return 0, fmt.Errorf("deleting worker assignments: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking deleted assignments: %w", err)
	}
	return int(n), nil
}

func (r *SQLiteAssignmentRepo) query(ctx context.Context, query string, args ...any) (map[string][]domain.Assignment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing assignments: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]domain.Assignment)
	for rows.Next() {
		var key, data string
		if err := rows.Scan(&key, &data); err != nil {
			return nil, fmt.Errorf("scanning assignments: %w", err)
		}
		entries, err := DecodeAssignments(data)
		if err != nil {
			return nil, fmt.Errorf("cell %s: %w", key, err)
		}
		out[key] = entries
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating assignments: %w", err)
	}
	return out, nil
}
