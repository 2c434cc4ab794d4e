package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cleardesk/backend/internal/app/models"
	"github.com/cleardesk/backend/internal/pkg/apperrors"
	"github.com/cleardesk/backend/internal/pkg/dberrors"
)

// OrganizationRepository handles database operations for signing offices
type OrganizationRepository struct {
	db *pgxpool.Pool
}

// NewOrganizationRepository creates a new organization repository
func NewOrganizationRepository(db *pgxpool.Pool) *OrganizationRepository {
	return &OrganizationRepository{
		db: db,
	}
}

const organizationColumns = `org_id, org_code, org_name, org_type, department, is_active, requires_clearance, created_at`

func scanOrganization(row pgx.Row) (*models.Organization, error) {
	var org models.Organization
	err := row.Scan(
		&org.OrgID,
		&org.OrgCode,
		&org.OrgName,
		&org.OrgType,
		&org.Department,
		&org.IsActive,
		&org.RequiresClearance,
		&org.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("error scanning organization: %w", err)
	}
	return &org, nil
}

// Create inserts a new organization and sets its generated ID
func (r *OrganizationRepository) Create(ctx context.Context, org *models.Organization) error {
	query := `
		INSERT INTO organizations (org_code, org_name, org_type, department, is_active, requires_clearance)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING org_id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		org.OrgCode,
		org.OrgName,
		org.OrgType,
		org.Department,
		org.IsActive,
		org.RequiresClearance,
	).Scan(&org.OrgID, &org.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "organizations_org_code_key") {
			return apperrors.ErrOrgCodeAlreadyExists
		}
		return fmt.Errorf("error creating organization: %w", err)
	}

	return nil
}

// GetByID retrieves an organization by ID
func (r *OrganizationRepository) GetByID(ctx context.Context, orgID int64) (*models.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organizations WHERE org_id = $1`
	return scanOrganization(r.db.QueryRow(ctx, query, orgID))
}

// GetAll retrieves all organizations ordered by name
func (r *OrganizationRepository) GetAll(ctx context.Context) ([]*models.Organization, error) {
	query := `SELECT ` + organizationColumns + ` FROM organizations ORDER BY org_name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing organizations: %w", err)
	}
	defer rows.Close()

	var orgs []*models.Organization
	for rows.Next() {
		org, err := scanOrganization(rows)
		if err != nil {
			return nil, err
		}
		orgs = append(orgs, org)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating organizations: %w", err)
	}

	return orgs, nil
}

// Update rewrites the mutable fields of an organization
func (r *OrganizationRepository) Update(ctx context.Context, org *models.Organization) error {
	query := `
		UPDATE organizations
		SET org_name = $2, org_type = $3, department = $4, is_active = $5, requires_clearance = $6
		WHERE org_id = $1
	`

	tag, err := r.db.Exec(ctx, query,
		org.OrgID,
		org.OrgName,
		org.OrgType,
		org.Department,
		org.IsActive,
		org.RequiresClearance,
	)
	if err != nil {
		return fmt.Errorf("error updating organization: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrOrganizationNotFound
	}

	return nil
}

// Delete removes an organization. Callers check the business guards
// (assigned admin, existing clearance items) before calling.
func (r *OrganizationRepository) Delete(ctx context.Context, orgID int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM organizations WHERE org_id = $1`, orgID)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrOrganizationHasRelations
		}
		return fmt.Errorf("error deleting organization: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrOrganizationNotFound
	}

	return nil
}

// HasClearanceItems reports whether any clearance item references the organization
func (r *OrganizationRepository) HasClearanceItems(ctx context.Context, orgID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM clearance_items WHERE org_id = $1)`
	if err := r.db.QueryRow(ctx, query, orgID).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking organization items: %w", err)
	}
	return exists, nil
}

// HasAdmin reports whether a signatory is assigned to the organization
func (r *OrganizationRepository) HasAdmin(ctx context.Context, orgID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM organization_admins WHERE org_id = $1)`
	if err := r.db.QueryRow(ctx, query, orgID).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking organization admin: %w", err)
	}
	return exists, nil
}

// CountAll returns the total number of organizations
func (r *OrganizationRepository) CountAll(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM organizations`).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting organizations: %w", err)
	}
	return count, nil
}
