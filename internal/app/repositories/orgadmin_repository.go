package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cleardesk/backend/internal/app/models"
	"github.com/cleardesk/backend/internal/db"
	"github.com/cleardesk/backend/internal/pkg/apperrors"
	"github.com/cleardesk/backend/internal/pkg/dberrors"
)

// OrgAdminRepository handles database operations for signatories
type OrgAdminRepository struct {
	db       *pgxpool.Pool
	userRepo *UserRepository
}

// NewOrgAdminRepository creates a new signatory repository
func NewOrgAdminRepository(pool *pgxpool.Pool, userRepo *UserRepository) *OrgAdminRepository {
	return &OrgAdminRepository{
		db:       pool,
		userRepo: userRepo,
	}
}

const orgAdminColumns = `oa.admin_id, oa.org_id, oa.position, oa.full_name, oa.assigned_date, oa.removed_date, oa.is_active`

func scanOrgAdmin(row pgx.Row) (*models.OrganizationAdmin, error) {
	var admin models.OrganizationAdmin
	err := row.Scan(
		&admin.AdminID,
		&admin.OrgID,
		&admin.Position,
		&admin.FullName,
		&admin.AssignedDate,
		&admin.RemovedDate,
		&admin.IsActive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSignatoryNotFound
		}
		return nil, fmt.Errorf("error scanning organization admin: %w", err)
	}
	return &admin, nil
}

// GetByUserID resolves the signatory whose account matches the caller.
// This is the authorization anchor of every signing operation: no row means
// the caller holds no signing office.
func (r *OrgAdminRepository) GetByUserID(ctx context.Context, userID int64) (*models.OrganizationAdmin, error) {
	query := `SELECT ` + orgAdminColumns + ` FROM organization_admins oa WHERE oa.admin_id = $1`
	return scanOrgAdmin(r.db.QueryRow(ctx, query, userID))
}

// CreateWithUser creates the account and the signatory profile atomically.
// The one-admin-per-organization rule is checked here inside the transaction.
func (r *OrgAdminRepository) CreateWithUser(ctx context.Context, user *models.User, admin *models.OrganizationAdmin) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var occupied bool
		err := tx.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM organization_admins WHERE org_id = $1)`,
			admin.OrgID,
		).Scan(&occupied)
		if err != nil {
			return fmt.Errorf("error checking organization admin slot: %w", err)
		}
		if occupied {
			return apperrors.ErrOrganizationHasAdmin
		}

		if err := r.userRepo.CreateTx(ctx, tx, user); err != nil {
			return err
		}

		admin.AdminID = user.ID
		query := `
			INSERT INTO organization_admins (admin_id, org_id, position, full_name, is_active)
			VALUES ($1, $2, $3, $4, true)
			RETURNING assigned_date, is_active
		`

		err = tx.QueryRow(ctx, query,
			admin.AdminID,
			admin.OrgID,
			admin.Position,
			admin.FullName,
		).Scan(&admin.AssignedDate, &admin.IsActive)
		if err != nil {
			if dberrors.IsForeignKeyViolation(err) {
				return apperrors.ErrOrganizationNotFound
			}
			return fmt.Errorf("error creating organization admin: %w", err)
		}

		return nil
	})
}

// List retrieves signatories joined with account and organization display fields
func (r *OrgAdminRepository) List(ctx context.Context) ([]*models.OrganizationAdmin, []*models.User, []string, error) {
	query := `
		SELECT ` + orgAdminColumns + `, ` + userColumns + `, o.org_name
		FROM organization_admins oa
		JOIN users ON users.user_id = oa.admin_id
		JOIN organizations o ON o.org_id = oa.org_id
		ORDER BY o.org_name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("error listing organization admins: %w", err)
	}
	defer rows.Close()

	var admins []*models.OrganizationAdmin
	var users []*models.User
	var orgNames []string
	for rows.Next() {
		var admin models.OrganizationAdmin
		var user models.User
		var orgName string
		err := rows.Scan(
			&admin.AdminID,
			&admin.OrgID,
			&admin.Position,
			&admin.FullName,
			&admin.AssignedDate,
			&admin.RemovedDate,
			&admin.IsActive,
			&user.ID,
			&user.Username,
			&user.Email,
			&user.PasswordHash,
			&user.UserType,
			&user.IsActive,
			&user.CreatedAt,
			&user.LastLogin,
			&orgName,
		)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("error scanning organization admin row: %w", err)
		}
		admins = append(admins, &admin)
		users = append(users, &user)
		orgNames = append(orgNames, orgName)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, nil, fmt.Errorf("error iterating organization admins: %w", err)
	}

	return admins, users, orgNames, nil
}

// Update applies signatory profile changes and optional account changes in one
// transaction. Deactivating a signatory also stamps removed_date; reactivating
// clears it.
func (r *OrgAdminRepository) Update(ctx context.Context, adminID int64, fullName, position *string, email *string, isActive *bool) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		current, err := scanOrgAdmin(tx.QueryRow(ctx,
			`SELECT `+orgAdminColumns+` FROM organization_admins oa WHERE oa.admin_id = $1 FOR UPDATE`,
			adminID))
		if err != nil {
			return err
		}

		if fullName != nil {
			current.FullName = *fullName
		}
		if position != nil {
			current.Position = *position
		}

		removedDate := current.RemovedDate
		active := current.IsActive
		if isActive != nil && *isActive != current.IsActive {
			active = *isActive
			if active {
				removedDate = nil
			} else {
				now := time.Now()
				removedDate = &now
			}
		}

		query := `
			UPDATE organization_admins
			SET position = $2, full_name = $3, is_active = $4, removed_date = $5
			WHERE admin_id = $1
		`
		if _, err := tx.Exec(ctx, query, adminID, current.Position, current.FullName, active, removedDate); err != nil {
			return fmt.Errorf("error updating organization admin: %w", err)
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

// Delete removes a signatory by deleting the owning account. Items keep
// their history: required_signatory_id and approved_by are set null by the
// schema, not cascaded.
func (r *OrgAdminRepository) Delete(ctx context.Context, adminID int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE user_id = $1 AND user_type = 'org_admin'`, adminID)
	if err != nil {
		return fmt.Errorf("error deleting organization admin: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSignatoryNotFound
	}

	return nil
}

// CountAll returns the total number of signatories
func (r *OrgAdminRepository) CountAll(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM organization_admins`).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting organization admins: %w", err)
	}
	return count, nil
}
