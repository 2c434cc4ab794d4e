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

// SysAdminRepository handles database operations for system administrators
type SysAdminRepository struct {
	db       *pgxpool.Pool
	userRepo *UserRepository
}

// NewSysAdminRepository creates a new system admin repository
func NewSysAdminRepository(pool *pgxpool.Pool, userRepo *UserRepository) *SysAdminRepository {
	return &SysAdminRepository{
		db:       pool,
		userRepo: userRepo,
	}
}

const sysAdminColumns = `sa.sys_admin_id, sa.admin_level, sa.full_name, sa.department, sa.assigned_date`

func scanSysAdmin(row pgx.Row) (*models.SystemAdmin, error) {
	var admin models.SystemAdmin
	err := row.Scan(
		&admin.SysAdminID,
		&admin.AdminLevel,
		&admin.FullName,
		&admin.Department,
		&admin.AssignedDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSysAdminNotFound
		}
		return nil, fmt.Errorf("error scanning system admin: %w", err)
	}
	return &admin, nil
}

// GetByUserID retrieves an administrator profile by its account ID
func (r *SysAdminRepository) GetByUserID(ctx context.Context, userID int64) (*models.SystemAdmin, error) {
	query := `SELECT ` + sysAdminColumns + ` FROM system_admins sa WHERE sa.sys_admin_id = $1`
	return scanSysAdmin(r.db.QueryRow(ctx, query, userID))
}

// CreateWithUser creates the account and administrator profile atomically
func (r *SysAdminRepository) CreateWithUser(ctx context.Context, user *models.User, admin *models.SystemAdmin) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := r.userRepo.CreateTx(ctx, tx, user); err != nil {
			return err
		}

		admin.SysAdminID = user.ID
		query := `
			INSERT INTO system_admins (sys_admin_id, admin_level, full_name, department)
			VALUES ($1, $2, $3, $4)
			RETURNING assigned_date
		`

		err := tx.QueryRow(ctx, query,
			admin.SysAdminID,
			admin.AdminLevel,
			admin.FullName,
			admin.Department,
		).Scan(&admin.AssignedDate)
		if err != nil {
			return fmt.Errorf("error creating system admin: %w", err)
		}

		return nil
	})
}

// List retrieves administrators joined with their accounts
func (r *SysAdminRepository) List(ctx context.Context) ([]*models.SystemAdmin, []*models.User, error) {
	query := `
		SELECT ` + sysAdminColumns + `, ` + userColumns + `
		FROM system_admins sa
		JOIN users ON users.user_id = sa.sys_admin_id
		ORDER BY sa.full_name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, nil, fmt.Errorf("error listing system admins: %w", err)
	}
	defer rows.Close()

	var admins []*models.SystemAdmin
	var users []*models.User
	for rows.Next() {
		var admin models.SystemAdmin
		var user models.User
		err := rows.Scan(
			&admin.SysAdminID,
			&admin.AdminLevel,
			&admin.FullName,
			&admin.Department,
			&admin.AssignedDate,
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
			return nil, nil, fmt.Errorf("error scanning system admin row: %w", err)
		}
		admins = append(admins, &admin)
		users = append(users, &user)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating system admins: %w", err)
	}

	return admins, users, nil
}

// Update applies profile and optional account changes in one transaction
func (r *SysAdminRepository) Update(ctx context.Context, adminID int64, fullName, adminLevel, department *string, email *string, isActive *bool) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		current, err := scanSysAdmin(tx.QueryRow(ctx,
			`SELECT `+sysAdminColumns+` FROM system_admins sa WHERE sa.sys_admin_id = $1 FOR UPDATE`,
			adminID))
		if err != nil {
			return err
		}

		if fullName != nil {
			current.FullName = *fullName
		}
		if adminLevel != nil {
			current.AdminLevel = models.AdminLevel(*adminLevel)
		}
		if department != nil {
			current.Department = department
		}

		query := `
			UPDATE system_admins
			SET admin_level = $2, full_name = $3, department = $4
			WHERE sys_admin_id = $1
		`
		if _, err := tx.Exec(ctx, query, adminID, current.AdminLevel, current.FullName, current.Department); err != nil {
			return fmt.Errorf("error updating system admin: %w", err)
		}

		if email != nil {
			if err := r.userRepo.UpdateEmailTx(ctx, tx, adminID, *email); err != nil {
				return err
			}
		}
		if isActive != nil {
			if err := r.userRepo.SetActiveTx(ctx, tx, adminID, *isActive); err != nil {
				return err
			}
		}

		return nil
	})
}

// Delete removes an administrator by deleting the owning account
func (r *SysAdminRepository) Delete(ctx context.Context, adminID int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE user_id = $1 AND user_type = 'sys_admin'`, adminID)
	if err != nil {
		return fmt.Errorf("error deleting system admin: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSysAdminNotFound
	}

	return nil
}
