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
	"github.com/cleardesk/backend/internal/pkg/dberrors"
	"github.com/cleardesk/backend/internal/pkg/helpers"
)

// StudentListFilter narrows student listings
type StudentListFilter struct {
	Search           string
	Course           string
	YearLevel        int
	EnrollmentStatus string
	Page             int
	PerPage          int
}

// StudentRepository handles database operations for students
type StudentRepository struct {
	db       *pgxpool.Pool
	userRepo *UserRepository
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(pool *pgxpool.Pool, userRepo *UserRepository) *StudentRepository {
	return &StudentRepository{
		db:       pool,
		userRepo: userRepo,
	}
}

const studentColumns = `s.student_id, s.student_number, s.first_name, s.middle_name, s.last_name,
	s.course, s.year_level, s.section, s.contact_number, s.date_enrolled, s.enrollment_status`

// Every column not listed here must carry a schema default; date_enrolled
// and enrollment_status are stamped by the database on insert.
const studentInsertQuery = `
	INSERT INTO students (student_id, student_number, first_name, middle_name, last_name,
		course, year_level, section, contact_number, enrollment_status)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING date_enrolled
`

func scanStudent(row pgx.Row) (*models.Student, error) {
	var student models.Student
	err := row.Scan(
		&student.StudentID,
		&student.StudentNumber,
		&student.FirstName,
		&student.MiddleName,
		&student.LastName,
		&student.Course,
		&student.YearLevel,
		&student.Section,
		&student.ContactNumber,
		&student.DateEnrolled,
		&student.EnrollmentStatus,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error scanning student: %w", err)
	}
	return &student, nil
}

// CreateWithUser creates the account and the student profile atomically.
// The student row shares its primary key with the user row.
func (r *StudentRepository) CreateWithUser(ctx context.Context, user *models.User, student *models.Student) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := r.userRepo.CreateTx(ctx, tx, user); err != nil {
			return err
		}

		student.StudentID = user.ID
		if student.EnrollmentStatus == "" {
			student.EnrollmentStatus = models.EnrollmentStatusEnrolled
		}

		err := tx.QueryRow(ctx, studentInsertQuery,
			student.StudentID,
			student.StudentNumber,
			student.FirstName,
			student.MiddleName,
			student.LastName,
			student.Course,
			student.YearLevel,
			student.Section,
			student.ContactNumber,
			student.EnrollmentStatus,
		).Scan(&student.DateEnrolled)
		if err != nil {
			if dberrors.IsDuplicateConstraintError(err, "students_student_number_key") {
				return apperrors.ErrStudentNumberAlreadyExists
			}
			return fmt.Errorf("error creating student: %w", err)
		}

		return nil
	})
}

// GetByID retrieves a student profile by its user/student ID
func (r *StudentRepository) GetByID(ctx context.Context, studentID int64) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students s WHERE s.student_id = $1`
	return scanStudent(r.db.QueryRow(ctx, query, studentID))
}

// GetByStudentNumber retrieves a student profile by student number
func (r *StudentRepository) GetByStudentNumber(ctx context.Context, number string) (*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students s WHERE s.student_number = $1`
	return scanStudent(r.db.QueryRow(ctx, query, number))
}

// List retrieves students joined with their accounts, filtered and paginated
func (r *StudentRepository) List(ctx context.Context, filter StudentListFilter) ([]*models.Student, []*models.User, int, error) {
	page, perPage := helpers.NormalizePagination(filter.Page, filter.PerPage)

	where := ` WHERE 1=1`
	args := []any{}
	argPos := 1

	if filter.Search != "" {
		where += fmt.Sprintf(` AND (s.student_number ILIKE $%d OR s.first_name ILIKE $%d OR s.last_name ILIKE $%d)`,
			argPos, argPos, argPos)
		args = append(args, "%"+filter.Search+"%")
		argPos++
	}
	if filter.Course != "" {
		where += fmt.Sprintf(` AND s.course = $%d`, argPos)
		args = append(args, filter.Course)
		argPos++
	}
	if filter.YearLevel > 0 {
		where += fmt.Sprintf(` AND s.year_level = $%d`, argPos)
		args = append(args, filter.YearLevel)
		argPos++
	}
	if filter.EnrollmentStatus != "" {
		where += fmt.Sprintf(` AND s.enrollment_status = $%d`, argPos)
		args = append(args, filter.EnrollmentStatus)
		argPos++
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM students s` + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, nil, 0, fmt.Errorf("error counting students: %w", err)
	}

	query := `SELECT ` + studentColumns + `, ` + userColumns + `
		FROM students s
		JOIN users ON users.user_id = s.student_id` + where +
		fmt.Sprintf(` ORDER BY s.last_name, s.first_name LIMIT $%d OFFSET $%d`, argPos, argPos+1)
	args = append(args, perPage, helpers.Offset(page, perPage))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	var users []*models.User
	for rows.Next() {
		var student models.Student
		var user models.User
		err := rows.Scan(
			&student.StudentID,
			&student.StudentNumber,
			&student.FirstName,
			&student.MiddleName,
			&student.LastName,
			&student.Course,
			&student.YearLevel,
			&student.Section,
			&student.ContactNumber,
			&student.DateEnrolled,
			&student.EnrollmentStatus,
			&user.ID,
			&user.Username,
			&user.Email,
			&user.PasswordHash,
			&user.UserType,
			&user.IsActive,
			&user.CreatedAt,
			&user.LastLogin,
		)
		if err != nil {
			return nil, nil, 0, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, &student)
		users = append(users, &user)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, 0, fmt.Errorf("error iterating students: %w", err)
	}

	return students, users, total, nil
}

// Update applies the non-nil profile fields and optional account fields in one transaction
func (r *StudentRepository) Update(ctx context.Context, studentID int64, profile *models.Student, email *string, isActive *bool) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		query := `
			UPDATE students
			SET first_name = $2, middle_name = $3, last_name = $4, course = $5,
				year_level = $6, section = $7, contact_number = $8, enrollment_status = $9
			WHERE student_id = $1
		`

		tag, err := tx.Exec(ctx, query,
			studentID,
			profile.FirstName,
			profile.MiddleName,
			profile.LastName,
			profile.Course,
			profile.YearLevel,
			profile.Section,
			profile.ContactNumber,
			profile.EnrollmentStatus,
		)
		if err != nil {
			return fmt.Errorf("error updating student: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrStudentNotFound
		}

		if email != nil {
			if err := r.userRepo.UpdateEmailTx(ctx, tx, studentID, *email); err != nil {
				return err
			}
		}
		if isActive != nil {
			if err := r.userRepo.SetActiveTx(ctx, tx, studentID, *isActive); err != nil {
				return err
			}
		}

		return nil
	})
}

// Delete removes a student by deleting the owning account; the profile and
// clearance records cascade.
func (r *StudentRepository) Delete(ctx context.Context, studentID int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE user_id = $1 AND user_type = 'student'`, studentID)
	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// CountAll returns the total number of students
func (r *StudentRepository) CountAll(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM students`).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting students: %w", err)
	}
	return count, nil
}
