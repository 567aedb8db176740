package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jask/decimalinput/internal/database"
)

// EntryRepo handles the value journal.
type EntryRepo struct {
	db *sql.DB
}

func NewEntryRepo(db *sql.DB) *EntryRepo { return &EntryRepo{db: db} }

// Append stores e, assigning an ID and timestamp when missing.
func (r *EntryRepo) Append(ctx context.Context, e Entry) (Entry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Kind == "" {
		e.Kind = KindCommit
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = database.Now()
	}
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO entries(id, scenario, value, valid, kind, created_at)
	VALUES (?, ?, ?, ?, ?, ?)
	`, e.ID, e.Scenario, e.Value, e.Valid, e.Kind, e.CreatedAt)
	if err != nil {
		return Entry{}, fmt.Errorf("append entry: %w", err)
	}
	return e, nil
}

// Latest returns the most recent entry for scenario, or nil when there is none.
func (r *EntryRepo) Latest(ctx context.Context, scenario string) (*Entry, error) {
	row := r.db.QueryRowContext(ctx, `
	SELECT id, scenario, value, valid, kind, created_at FROM entries
	WHERE scenario = ?
	ORDER BY created_at DESC, rowid DESC
	LIMIT 1`, scenario)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// List returns up to limit entries for scenario, newest first.
func (r *EntryRepo) List(ctx context.Context, scenario string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, scenario, value, valid, kind, created_at FROM entries
	WHERE scenario = ?
	ORDER BY created_at DESC, rowid DESC
	LIMIT ?`, scenario, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (Entry, error) {
	var (
		e     Entry
		value sql.NullFloat64
	)
	if err := s.Scan(&e.ID, &e.Scenario, &value, &e.Valid, &e.Kind, &e.CreatedAt); err != nil {
		return Entry{}, err
	}
	if value.Valid {
		v := value.Float64
		e.Value = &v
	}
	return e, nil
}
