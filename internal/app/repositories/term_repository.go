package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cleardesk/backend/internal/app/models"
	"github.com/cleardesk/backend/internal/db"
	"github.com/cleardesk/backend/internal/pkg/apperrors"
)

// TermRepository handles database operations for academic terms
type TermRepository struct {
	db *pgxpool.Pool
}

// NewTermRepository creates a new term repository
func NewTermRepository(db *pgxpool.Pool) *TermRepository {
	return &TermRepository{
		db: db,
	}
}

const termColumns = `term_id, academic_year, semester, term_name, start_date, end_date,
	enrollment_start, enrollment_end, is_current, clearance_deadline, created_at`

func scanTerm(row pgx.Row) (*models.AcademicTerm, error) {
	var term models.AcademicTerm
	err := row.Scan(
		&term.TermID,
		&term.AcademicYear,
		&term.Semester,
		&term.TermName,
		&term.StartDate,
		&term.EndDate,
		&term.EnrollmentStart,
		&term.EnrollmentEnd,
		&term.IsCurrent,
		&term.ClearanceDeadline,
		&term.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTermNotFound
		}
		return nil, fmt.Errorf("error scanning academic term: %w", err)
	}
	return &term, nil
}

// Create inserts a new academic term and sets its generated ID
func (r *TermRepository) Create(ctx context.Context, term *models.AcademicTerm) error {
	query := `
		INSERT INTO academic_terms (academic_year, semester, term_name, start_date, end_date,
			enrollment_start, enrollment_end, is_current, clearance_deadline)
		VALUES ($1, $2, $3, $4, $5, $6, $7, false, $8)
		RETURNING term_id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		term.AcademicYear,
		term.Semester,
		term.TermName,
		term.StartDate,
		term.EndDate,
		term.EnrollmentStart,
		term.EnrollmentEnd,
		term.ClearanceDeadline,
	).Scan(&term.TermID, &term.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating academic term: %w", err)
	}

	return nil
}

// GetByID retrieves an academic term by ID
func (r *TermRepository) GetByID(ctx context.Context, termID int64) (*models.AcademicTerm, error) {
	query := `SELECT ` + termColumns + ` FROM academic_terms WHERE term_id = $1`
	return scanTerm(r.db.QueryRow(ctx, query, termID))
}

// GetCurrent retrieves the current academic term, if one is set
func (r *TermRepository) GetCurrent(ctx context.Context) (*models.AcademicTerm, error) {
	query := `SELECT ` + termColumns + ` FROM academic_terms WHERE is_current = true`
	return scanTerm(r.db.QueryRow(ctx, query))
}

// GetAll retrieves all academic terms, newest first
func (r *TermRepository) GetAll(ctx context.Context) ([]*models.AcademicTerm, error) {
	query := `SELECT ` + termColumns + ` FROM academic_terms ORDER BY start_date DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing academic terms: %w", err)
	}
	defer rows.Close()

	var terms []*models.AcademicTerm
	for rows.Next() {
		term, err := scanTerm(rows)
		if err != nil {
			return nil, err
		}
		terms = append(terms, term)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating academic terms: %w", err)
	}

	return terms, nil
}

// Update rewrites the mutable fields of an academic term
func (r *TermRepository) Update(ctx context.Context, term *models.AcademicTerm) error {
	query := `
		UPDATE academic_terms
		SET academic_year = $2, semester = $3, term_name = $4, start_date = $5, end_date = $6,
			enrollment_start = $7, enrollment_end = $8, clearance_deadline = $9
		WHERE term_id = $1
	`

	tag, err := r.db.Exec(ctx, query,
		term.TermID,
		term.AcademicYear,
		term.Semester,
		term.TermName,
		term.StartDate,
		term.EndDate,
		term.EnrollmentStart,
		term.EnrollmentEnd,
		term.ClearanceDeadline,
	)
	if err != nil {
		return fmt.Errorf("error updating academic term: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrTermNotFound
	}

	return nil
}

// SetCurrent makes one term current and unsets every other term in the same
// transaction, so no window exists where two terms are both current.
func (r *TermRepository) SetCurrent(ctx context.Context, termID int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `UPDATE academic_terms SET is_current = false WHERE is_current = true`); err != nil {
			return fmt.Errorf("error unsetting current term: %w", err)
		}

		tag, err := tx.Exec(ctx, `UPDATE academic_terms SET is_current = true WHERE term_id = $1`, termID)
		if err != nil {
			return fmt.Errorf("error setting current term: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrTermNotFound
		}

		return nil
	})
}

// Delete removes an academic term. Callers check the business guards
// (current term, existing clearances) before calling.
func (r *TermRepository) Delete(ctx context.Context, termID int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM academic_terms WHERE term_id = $1`, termID)
	if err != nil {
		return fmt.Errorf("error deleting academic term: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrTermNotFound
	}

	return nil
}

// HasClearances reports whether any clearance references the term
func (r *TermRepository) HasClearances(ctx context.Context, termID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM student_clearances WHERE term_id = $1)`
	if err := r.db.QueryRow(ctx, query, termID).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking term clearances: %w", err)
	}
	return exists, nil
}
