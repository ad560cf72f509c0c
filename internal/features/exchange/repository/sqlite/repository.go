package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"secret-santa-backend/internal/features/exchange/models"
	"secret-santa-backend/internal/features/exchange/repository"
)

type sqliteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) repository.AssignmentRepository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) Replace(ctx context.Context, exchangeID string, assignments []models.Assignment, drawnAt time.Time) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin draw transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM assignments WHERE exchange_id = ?`, exchangeID); err != nil {
		return fmt.Errorf("failed to clear assignments of %s: %w", exchangeID, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO assignments (exchange_id, giver_id, receiver_id, drawn_at) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	millis := drawnAt.UTC().UnixMilli()
	for _, a := range assignments {
		if _, err = stmt.ExecContext(ctx, exchangeID, a.GiverID, a.ReceiverID, millis); err != nil {
			return fmt.Errorf("failed to insert assignment %s: %w", a.GiverID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit assignments of %s: %w", exchangeID, err)
	}
	return nil
}

func (r *sqliteRepository) Clear(ctx context.Context, exchangeID string) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM assignments WHERE exchange_id = ?`, exchangeID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear assignments of %s: %w", exchangeID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func (r *sqliteRepository) List(ctx context.Context, exchangeID string) ([]models.AssignmentRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT giver_id, receiver_id, drawn_at FROM assignments WHERE exchange_id = ? ORDER BY giver_id`, exchangeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	defer rows.Close()

	records := []models.AssignmentRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows, exchangeID)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *sqliteRepository) GetByGiver(ctx context.Context, exchangeID, giverID string) (*models.AssignmentRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT giver_id, receiver_id, drawn_at FROM assignments WHERE exchange_id = ? AND giver_id = ?`,
		exchangeID, giverID)
	rec, err := scanRecord(row, exchangeID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrAssignmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}
	return &rec, nil
}

func (r *sqliteRepository) ListExchanges(ctx context.Context) ([]models.ExchangeSummary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT exchange_id, COUNT(*) FROM assignments GROUP BY exchange_id ORDER BY exchange_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list exchanges: %w", err)
	}
	defer rows.Close()

	out := []models.ExchangeSummary{}
	for rows.Next() {
		var s models.ExchangeSummary
		if err := rows.Scan(&s.ID, &s.AssignmentsCount); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner, exchangeID string) (models.AssignmentRecord, error) {
	var (
		a       models.Assignment
		drawnAt int64
	)
	if err := s.Scan(&a.GiverID, &a.ReceiverID, &drawnAt); err != nil {
		return models.AssignmentRecord{}, err
	}
	return models.NewRecord(exchangeID, a, time.UnixMilli(drawnAt).UTC()), nil
}
