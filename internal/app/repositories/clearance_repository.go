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
	"github.com/cleardesk/backend/internal/pkg/helpers"
)

// QueueFilter narrows a signatory's item queue
type QueueFilter struct {
	Status  string
	Search  string
	Page    int
	PerPage int
}

// QueueRow is one signatory queue entry with its display joins
type QueueRow struct {
	Item          models.ClearanceItem
	StudentNumber string
	StudentName   string
	Course        string
	YearLevel     int
	Section       *string
	OrgName       string
	TermName      string
	IsLocked      bool
	OverallStatus models.ClearanceStatus
}

// StatusCounts aggregates items by status
type StatusCounts struct {
	Total           int
	Pending         int
	Approved        int
	NeedsCompliance int
}

// ClearanceStatusCounts aggregates clearances by overall status
type ClearanceStatusCounts struct {
	Total      int
	Pending    int
	Incomplete int
	Approved   int
}

// ItemMutationResult reports a single item transition and its aggregate effect
type ItemMutationResult struct {
	Item           models.ClearanceItem
	PreviousStatus models.ItemStatus
	OverallStatus  models.ClearanceStatus
	OverallChanged bool
}

// BulkApproveResult reports what a batch approval actually changed
type BulkApproveResult struct {
	ApprovedCount     int
	ClearancesUpdated int
}

// StudentItemRow is one line of a student's own clearance view
type StudentItemRow struct {
	Item              models.ClearanceItem
	OrgName           string
	OrgCode           string
	SignatoryName     *string
	SignatoryPosition *string
	ApproverName      *string
}

// MonitorRow is one row of the administrator monitoring list
type MonitorRow struct {
	Clearance     models.StudentClearance
	StudentNumber string
	StudentName   string
	Course        string
	YearLevel     int
	TermName      string
	TotalItems    int
	ApprovedItems int
}

// MonitorFilter narrows the administrator monitoring list
type MonitorFilter struct {
	TermID  int64
	Status  string
	Search  string
	Page    int
	PerPage int
}

// OrgStatsRow aggregates item statuses for one organization
type OrgStatsRow struct {
	OrgID   int64
	OrgName string
	OrgCode string
	Counts  StatusCounts
}

// GenerateResult reports what a term-wide generation run created
type GenerateResult struct {
	ClearancesCreated int
	ItemsCreated      int
}

// ClearanceRepository handles database operations for clearances and their
// items, including the transactional approval paths.
type ClearanceRepository struct {
	db *pgxpool.Pool
}

// NewClearanceRepository creates a new clearance repository
func NewClearanceRepository(db *pgxpool.Pool) *ClearanceRepository {
	return &ClearanceRepository{
		db: db,
	}
}

const clearanceColumns = `c.clearance_id, c.student_id, c.term_id, c.overall_status, c.created_at,
	c.last_updated, c.approved_date, c.is_locked`

const itemColumns = `i.item_id, i.clearance_id, i.org_id, i.required_signatory_id, i.status,
	i.approved_by, i.approved_date, i.is_auto_approved, i.created_at, i.status_updated`

func scanClearance(row pgx.Row) (*models.StudentClearance, error) {
	var c models.StudentClearance
	err := row.Scan(
		&c.ClearanceID,
		&c.StudentID,
		&c.TermID,
		&c.OverallStatus,
		&c.CreatedAt,
		&c.LastUpdated,
		&c.ApprovedDate,
		&c.IsLocked,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrClearanceNotFound
		}
		return nil, fmt.Errorf("error scanning clearance: %w", err)
	}
	return &c, nil
}

func scanItem(row pgx.Row) (*models.ClearanceItem, error) {
	var item models.ClearanceItem
	err := row.Scan(
		&item.ItemID,
		&item.ClearanceID,
		&item.OrgID,
		&item.RequiredSignatoryID,
		&item.Status,
		&item.ApprovedBy,
		&item.ApprovedDate,
		&item.IsAutoApproved,
		&item.CreatedAt,
		&item.StatusUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrItemNotFound
		}
		return nil, fmt.Errorf("error scanning clearance item: %w", err)
	}
	return &item, nil
}

// loadItems reads every item of a clearance inside the given transaction
func loadItems(ctx context.Context, tx pgx.Tx, clearanceID int64) ([]models.ClearanceItem, error) {
	query := `SELECT ` + itemColumns + ` FROM clearance_items i WHERE i.clearance_id = $1 ORDER BY i.item_id`

	rows, err := tx.Query(ctx, query, clearanceID)
	if err != nil {
		return nil, fmt.Errorf("error loading clearance items: %w", err)
	}
	defer rows.Close()

	var items []models.ClearanceItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating clearance items: %w", err)
	}

	return items, nil
}

// recompute derives the overall status from all items of a locked-for-update
// clearance row and persists it when it changed. approved_date carries the
// moment the clearance became fully approved and is cleared whenever the
// status regresses.
func recompute(ctx context.Context, tx pgx.Tx, clearance *models.StudentClearance) (models.ClearanceStatus, bool, error) {
	items, err := loadItems(ctx, tx, clearance.ClearanceID)
	if err != nil {
		return "", false, err
	}

	newStatus := models.RecomputeOverallStatus(items)
	if newStatus == clearance.OverallStatus {
		return newStatus, false, nil
	}

	query := `
		UPDATE student_clearances
		SET overall_status = $2,
			approved_date = CASE WHEN $2 = 'approved' THEN now() ELSE NULL END,
			last_updated = now()
		WHERE clearance_id = $1
	`
	if _, err := tx.Exec(ctx, query, clearance.ClearanceID, newStatus); err != nil {
		return "", false, fmt.Errorf("error updating overall status: %w", err)
	}

	return newStatus, true, nil
}

// lockClearanceRow re-reads a clearance under FOR UPDATE. Every mutating path
// serializes on this lock so two concurrent last-item approvals cannot both
// miss the unanimity condition.
func lockClearanceRow(ctx context.Context, tx pgx.Tx, clearanceID int64) (*models.StudentClearance, error) {
	query := `SELECT ` + clearanceColumns + ` FROM student_clearances c WHERE c.clearance_id = $1 FOR UPDATE`
	return scanClearance(tx.QueryRow(ctx, query, clearanceID))
}

// lockItemScoped locates an item, serializes on its parent clearance, and
// re-reads the item under that lock. The pre-lock read only discovers the
// parent: its snapshot can predate a concurrent transition that committed
// while this transaction waited, so every predicate must run against the
// re-read. Ownership scoping happens in the lookup itself: an item that
// exists but belongs to another signatory is indistinguishable from a
// missing one.
func lockItemScoped(ctx context.Context, tx pgx.Tx, signatoryID, itemID int64) (*models.ClearanceItem, *models.StudentClearance, error) {
	const query = `SELECT ` + itemColumns + ` FROM clearance_items i WHERE i.item_id = $1 AND i.required_signatory_id = $2`

	item, err := scanItem(tx.QueryRow(ctx, query, itemID, signatoryID))
	if err != nil {
		return nil, nil, err
	}

	clearance, err := lockClearanceRow(ctx, tx, item.ClearanceID)
	if err != nil {
		return nil, nil, err
	}

	item, err = scanItem(tx.QueryRow(ctx, query, itemID, signatoryID))
	if err != nil {
		return nil, nil, err
	}

	return item, clearance, nil
}

// approvalGate validates an item/clearance pair read under the clearance lock
func approvalGate(item *models.ClearanceItem, clearance *models.StudentClearance) error {
	if clearance.IsLocked {
		return apperrors.ErrClearanceLocked
	}
	if item.Status == models.ItemStatusApproved {
		return apperrors.ErrAlreadyApproved
	}
	return nil
}

// complianceGate validates a needs-compliance transition. The mark has no
// status predicate: it may be re-applied, and it reopens approved items.
func complianceGate(clearance *models.StudentClearance) error {
	if clearance.IsLocked {
		return apperrors.ErrClearanceLocked
	}
	return nil
}

// ApproveItem transitions one item to approved on behalf of a signatory
func (r *ClearanceRepository) ApproveItem(ctx context.Context, signatoryID, itemID int64) (*ItemMutationResult, error) {
	var result ItemMutationResult

	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		item, clearance, err := lockItemScoped(ctx, tx, signatoryID, itemID)
		if err != nil {
			return err
		}
		if err := approvalGate(item, clearance); err != nil {
			return err
		}
		previous := item.Status

		now := time.Now()
		query := `
			UPDATE clearance_items
			SET status = 'approved', approved_by = $2, approved_date = $3, status_updated = $3
			WHERE item_id = $1
		`
		if _, err := tx.Exec(ctx, query, item.ItemID, signatoryID, now); err != nil {
			return fmt.Errorf("error approving item: %w", err)
		}

		item.Status = models.ItemStatusApproved
		item.ApprovedBy = &signatoryID
		item.ApprovedDate = &now
		item.StatusUpdated = now

		overall, changed, err := recompute(ctx, tx, clearance)
		if err != nil {
			return err
		}

		result = ItemMutationResult{
			Item:           *item,
			PreviousStatus: previous,
			OverallStatus:  overall,
			OverallChanged: changed,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// MarkNeedsCompliance flags one item as needing compliance. Unlike approval
// the transition may be re-applied to an item already in this state, and it
// is permitted on approved items: flagging reopens them. approved_date is
// cleared because the item is no longer cleared in any sense; approved_by
// still records who acted.
func (r *ClearanceRepository) MarkNeedsCompliance(ctx context.Context, signatoryID, itemID int64) (*ItemMutationResult, error) {
	var result ItemMutationResult

	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		item, clearance, err := lockItemScoped(ctx, tx, signatoryID, itemID)
		if err != nil {
			return err
		}
		if err := complianceGate(clearance); err != nil {
			return err
		}
		previous := item.Status

		now := time.Now()
		query := `
			UPDATE clearance_items
			SET status = 'needs_compliance', approved_by = $2, approved_date = NULL, status_updated = $3
			WHERE item_id = $1
		`
		if _, err := tx.Exec(ctx, query, item.ItemID, signatoryID, now); err != nil {
			return fmt.Errorf("error marking item: %w", err)
		}

		item.Status = models.ItemStatusNeedsCompliance
		item.ApprovedBy = &signatoryID
		item.ApprovedDate = nil
		item.StatusUpdated = now

		overall, changed, err := recompute(ctx, tx, clearance)
		if err != nil {
			return err
		}

		result = ItemMutationResult{
			Item:           *item,
			PreviousStatus: previous,
			OverallStatus:  overall,
			OverallChanged: changed,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// BulkApprove approves a batch of items in one transaction. Ids that do not
// exist at all fail the whole call with a validation error; ids that exist
// but fail a predicate (not owned by caller, clearance locked, already
// approved) are silently skipped, and the returned count reflects only items
// actually transitioned.
func (r *ClearanceRepository) BulkApprove(ctx context.Context, signatoryID int64, itemIDs []int64) (*BulkApproveResult, error) {
	ids := dedupIDs(itemIDs)
	if len(ids) == 0 {
		return nil, apperrors.NewValidationError("item id list cannot be empty")
	}

	var result BulkApproveResult

	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var existing int
		err := tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM clearance_items WHERE item_id = ANY($1)`, ids,
		).Scan(&existing)
		if err != nil {
			return fmt.Errorf("error checking item ids: %w", err)
		}
		if existing != len(ids) {
			return apperrors.NewValidationError("one or more item ids do not exist")
		}

		// Lock every parent clearance of the caller's candidate items up
		// front, in id order, before the batch write.
		lockQuery := `
			SELECT c.clearance_id
			FROM student_clearances c
			WHERE c.clearance_id IN (
				SELECT DISTINCT i.clearance_id FROM clearance_items i
				WHERE i.item_id = ANY($1) AND i.required_signatory_id = $2
			)
			ORDER BY c.clearance_id
			FOR UPDATE
		`
		lockRows, err := tx.Query(ctx, lockQuery, ids, signatoryID)
		if err != nil {
			return fmt.Errorf("error locking clearances: %w", err)
		}
		var clearanceIDs []int64
		for lockRows.Next() {
			var id int64
			if err := lockRows.Scan(&id); err != nil {
				lockRows.Close()
				return fmt.Errorf("error scanning clearance id: %w", err)
			}
			clearanceIDs = append(clearanceIDs, id)
		}
		lockRows.Close()
		if err := lockRows.Err(); err != nil {
			return fmt.Errorf("error iterating clearance ids: %w", err)
		}

		updateQuery := `
			UPDATE clearance_items i
			SET status = 'approved', approved_by = $2, approved_date = now(), status_updated = now()
			FROM student_clearances c
			WHERE c.clearance_id = i.clearance_id
				AND i.item_id = ANY($1)
				AND i.required_signatory_id = $2
				AND i.status <> 'approved'
				AND c.is_locked = false
		`
		tag, err := tx.Exec(ctx, updateQuery, ids, signatoryID)
		if err != nil {
			return fmt.Errorf("error bulk approving items: %w", err)
		}
		result.ApprovedCount = int(tag.RowsAffected())

		for _, clearanceID := range clearanceIDs {
			clearance, err := scanClearance(tx.QueryRow(ctx,
				`SELECT `+clearanceColumns+` FROM student_clearances c WHERE c.clearance_id = $1`,
				clearanceID))
			if err != nil {
				return err
			}
			if _, changed, err := recompute(ctx, tx, clearance); err != nil {
				return err
			} else if changed {
				result.ClearancesUpdated++
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func dedupIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// ListQueue retrieves a signatory's items joined with student, organization,
// term, and parent clearance display fields.
func (r *ClearanceRepository) ListQueue(ctx context.Context, signatoryID int64, filter QueueFilter) ([]QueueRow, int, error) {
	page, perPage := helpers.NormalizePagination(filter.Page, filter.PerPage)

	where := ` WHERE i.required_signatory_id = $1`
	args := []any{signatoryID}
	argPos := 2

	if filter.Status != "" {
		where += fmt.Sprintf(` AND i.status = $%d`, argPos)
		args = append(args, filter.Status)
		argPos++
	}
	if filter.Search != "" {
		where += fmt.Sprintf(` AND (s.student_number ILIKE $%d OR s.first_name ILIKE $%d OR s.last_name ILIKE $%d)`,
			argPos, argPos, argPos)
		args = append(args, "%"+filter.Search+"%")
		argPos++
	}

	countQuery := `
		SELECT COUNT(*)
		FROM clearance_items i
		JOIN student_clearances c ON c.clearance_id = i.clearance_id
		JOIN students s ON s.student_id = c.student_id` + where

	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting queue: %w", err)
	}

	query := `
		SELECT ` + itemColumns + `, s.student_number,
			s.first_name || ' ' || s.last_name, s.course, s.year_level, s.section,
			o.org_name, t.term_name, c.is_locked, c.overall_status
		FROM clearance_items i
		JOIN student_clearances c ON c.clearance_id = i.clearance_id
		JOIN students s ON s.student_id = c.student_id
		JOIN organizations o ON o.org_id = i.org_id
		JOIN academic_terms t ON t.term_id = c.term_id` + where +
		fmt.Sprintf(` ORDER BY i.status_updated DESC, i.item_id LIMIT $%d OFFSET $%d`, argPos, argPos+1)
	args = append(args, perPage, helpers.Offset(page, perPage))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing queue: %w", err)
	}
	defer rows.Close()

	var queue []QueueRow
	for rows.Next() {
		var row QueueRow
		err := rows.Scan(
			&row.Item.ItemID,
			&row.Item.ClearanceID,
			&row.Item.OrgID,
			&row.Item.RequiredSignatoryID,
			&row.Item.Status,
			&row.Item.ApprovedBy,
			&row.Item.ApprovedDate,
			&row.Item.IsAutoApproved,
			&row.Item.CreatedAt,
			&row.Item.StatusUpdated,
			&row.StudentNumber,
			&row.StudentName,
			&row.Course,
			&row.YearLevel,
			&row.Section,
			&row.OrgName,
			&row.TermName,
			&row.IsLocked,
			&row.OverallStatus,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning queue row: %w", err)
		}
		queue = append(queue, row)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating queue: %w", err)
	}

	return queue, total, nil
}

// CountQueueByStatus aggregates one signatory's items by status
func (r *ClearanceRepository) CountQueueByStatus(ctx context.Context, signatoryID int64) (*StatusCounts, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'approved'),
			COUNT(*) FILTER (WHERE status = 'needs_compliance')
		FROM clearance_items
		WHERE required_signatory_id = $1
	`

	var counts StatusCounts
	err := r.db.QueryRow(ctx, query, signatoryID).Scan(
		&counts.Total,
		&counts.Pending,
		&counts.Approved,
		&counts.NeedsCompliance,
	)
	if err != nil {
		return nil, fmt.Errorf("error counting queue statuses: %w", err)
	}

	return &counts, nil
}

// GetLatestForStudent retrieves a student's clearance for the current term,
// falling back to the most recent one.
func (r *ClearanceRepository) GetLatestForStudent(ctx context.Context, studentID int64) (*models.StudentClearance, string, error) {
	query := `
		SELECT ` + clearanceColumns + `, t.term_name
		FROM student_clearances c
		JOIN academic_terms t ON t.term_id = c.term_id
		WHERE c.student_id = $1
		ORDER BY t.is_current DESC, c.created_at DESC
		LIMIT 1
	`

	var c models.StudentClearance
	var termName string
	err := r.db.QueryRow(ctx, query, studentID).Scan(
		&c.ClearanceID,
		&c.StudentID,
		&c.TermID,
		&c.OverallStatus,
		&c.CreatedAt,
		&c.LastUpdated,
		&c.ApprovedDate,
		&c.IsLocked,
		&termName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", apperrors.ErrClearanceNotFound
		}
		return nil, "", fmt.Errorf("error retrieving clearance: %w", err)
	}

	return &c, termName, nil
}

// ListStudentItems retrieves the items of one clearance joined with
// organization and signatory display fields, for the student's own view.
func (r *ClearanceRepository) ListStudentItems(ctx context.Context, clearanceID int64) ([]StudentItemRow, error) {
	query := `
		SELECT ` + itemColumns + `, o.org_name, o.org_code,
			sig.full_name, sig.position, appr.full_name
		FROM clearance_items i
		JOIN organizations o ON o.org_id = i.org_id
		LEFT JOIN organization_admins sig ON sig.admin_id = i.required_signatory_id
		LEFT JOIN organization_admins appr ON appr.admin_id = i.approved_by
		WHERE i.clearance_id = $1
		ORDER BY o.org_name
	`

	rows, err := r.db.Query(ctx, query, clearanceID)
	if err != nil {
		return nil, fmt.Errorf("error listing student items: %w", err)
	}
	defer rows.Close()

	var items []StudentItemRow
	for rows.Next() {
		var row StudentItemRow
		err := rows.Scan(
			&row.Item.ItemID,
			&row.Item.ClearanceID,
			&row.Item.OrgID,
			&row.Item.RequiredSignatoryID,
			&row.Item.Status,
			&row.Item.ApprovedBy,
			&row.Item.ApprovedDate,
			&row.Item.IsAutoApproved,
			&row.Item.CreatedAt,
			&row.Item.StatusUpdated,
			&row.OrgName,
			&row.OrgCode,
			&row.SignatoryName,
			&row.SignatoryPosition,
			&row.ApproverName,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning student item row: %w", err)
		}
		items = append(items, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating student items: %w", err)
	}

	return items, nil
}

// GetByID retrieves one clearance
func (r *ClearanceRepository) GetByID(ctx context.Context, clearanceID int64) (*models.StudentClearance, error) {
	query := `SELECT ` + clearanceColumns + ` FROM student_clearances c WHERE c.clearance_id = $1`
	return scanClearance(r.db.QueryRow(ctx, query, clearanceID))
}

// ListMonitor retrieves clearances joined with student and term display
// fields plus per-clearance item progress, for administrator monitoring.
func (r *ClearanceRepository) ListMonitor(ctx context.Context, filter MonitorFilter) ([]MonitorRow, int, error) {
	page, perPage := helpers.NormalizePagination(filter.Page, filter.PerPage)

	where := ` WHERE 1=1`
	args := []any{}
	argPos := 1

	if filter.TermID > 0 {
		where += fmt.Sprintf(` AND c.term_id = $%d`, argPos)
		args = append(args, filter.TermID)
		argPos++
	}
	if filter.Status != "" {
		where += fmt.Sprintf(` AND c.overall_status = $%d`, argPos)
		args = append(args, filter.Status)
		argPos++
	}
	if filter.Search != "" {
		where += fmt.Sprintf(` AND (s.student_number ILIKE $%d OR s.first_name ILIKE $%d OR s.last_name ILIKE $%d)`,
			argPos, argPos, argPos)
		args = append(args, "%"+filter.Search+"%")
		argPos++
	}

	countQuery := `
		SELECT COUNT(*)
		FROM student_clearances c
		JOIN students s ON s.student_id = c.student_id` + where

	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting clearances: %w", err)
	}

	query := `
		SELECT ` + clearanceColumns + `, s.student_number,
			s.first_name || ' ' || s.last_name, s.course, s.year_level, t.term_name,
			(SELECT COUNT(*) FROM clearance_items i WHERE i.clearance_id = c.clearance_id),
			(SELECT COUNT(*) FROM clearance_items i WHERE i.clearance_id = c.clearance_id AND i.status = 'approved')
		FROM student_clearances c
		JOIN students s ON s.student_id = c.student_id
		JOIN academic_terms t ON t.term_id = c.term_id` + where +
		fmt.Sprintf(` ORDER BY c.last_updated DESC LIMIT $%d OFFSET $%d`, argPos, argPos+1)
	args = append(args, perPage, helpers.Offset(page, perPage))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing clearances: %w", err)
	}
	defer rows.Close()

	var list []MonitorRow
	for rows.Next() {
		var row MonitorRow
		err := rows.Scan(
			&row.Clearance.ClearanceID,
			&row.Clearance.StudentID,
			&row.Clearance.TermID,
			&row.Clearance.OverallStatus,
			&row.Clearance.CreatedAt,
			&row.Clearance.LastUpdated,
			&row.Clearance.ApprovedDate,
			&row.Clearance.IsLocked,
			&row.StudentNumber,
			&row.StudentName,
			&row.Course,
			&row.YearLevel,
			&row.TermName,
			&row.TotalItems,
			&row.ApprovedItems,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning clearance row: %w", err)
		}
		list = append(list, row)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating clearances: %w", err)
	}

	return list, total, nil
}

// SetLocked toggles the lock flag of a clearance. Locking is the only
// clearance field the administrator surface mutates directly.
func (r *ClearanceRepository) SetLocked(ctx context.Context, clearanceID int64, locked bool) error {
	query := `UPDATE student_clearances SET is_locked = $2, last_updated = now() WHERE clearance_id = $1`

	tag, err := r.db.Exec(ctx, query, clearanceID, locked)
	if err != nil {
		return fmt.Errorf("error updating lock flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrClearanceNotFound
	}

	return nil
}

// StatsByOrganization aggregates item statuses per organization
func (r *ClearanceRepository) StatsByOrganization(ctx context.Context) ([]OrgStatsRow, error) {
	query := `
		SELECT o.org_id, o.org_name, o.org_code,
			COUNT(i.item_id),
			COUNT(i.item_id) FILTER (WHERE i.status = 'pending'),
			COUNT(i.item_id) FILTER (WHERE i.status = 'approved'),
			COUNT(i.item_id) FILTER (WHERE i.status = 'needs_compliance')
		FROM organizations o
		LEFT JOIN clearance_items i ON i.org_id = o.org_id
		GROUP BY o.org_id, o.org_name, o.org_code
		ORDER BY o.org_name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error aggregating organization stats: %w", err)
	}
	defer rows.Close()

	var stats []OrgStatsRow
	for rows.Next() {
		var row OrgStatsRow
		err := rows.Scan(
			&row.OrgID,
			&row.OrgName,
			&row.OrgCode,
			&row.Counts.Total,
			&row.Counts.Pending,
			&row.Counts.Approved,
			&row.Counts.NeedsCompliance,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning organization stats: %w", err)
		}
		stats = append(stats, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating organization stats: %w", err)
	}

	return stats, nil
}

// CountByStatusForTerm aggregates a term's clearances by overall status
func (r *ClearanceRepository) CountByStatusForTerm(ctx context.Context, termID int64) (*ClearanceStatusCounts, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE overall_status = 'pending'),
			COUNT(*) FILTER (WHERE overall_status = 'incomplete'),
			COUNT(*) FILTER (WHERE overall_status = 'approved')
		FROM student_clearances
		WHERE term_id = $1
	`

	var counts ClearanceStatusCounts
	err := r.db.QueryRow(ctx, query, termID).Scan(
		&counts.Total,
		&counts.Pending,
		&counts.Incomplete,
		&counts.Approved,
	)
	if err != nil {
		return nil, fmt.Errorf("error counting clearance statuses: %w", err)
	}

	return &counts, nil
}

// GenerateForTerm creates a pending clearance for every enrolled student
// missing one for the term, plus one item per active signatory of each
// active organization that requires clearance. Both inserts run in one
// transaction; re-running is safe because existing rows are skipped.
func (r *ClearanceRepository) GenerateForTerm(ctx context.Context, termID int64) (*GenerateResult, error) {
	var result GenerateResult

	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		clearanceQuery := `
			INSERT INTO student_clearances (student_id, term_id)
			SELECT s.student_id, $1
			FROM students s
			WHERE s.enrollment_status = 'enrolled'
				AND NOT EXISTS (
					SELECT 1 FROM student_clearances c
					WHERE c.student_id = s.student_id AND c.term_id = $1
				)
		`
		tag, err := tx.Exec(ctx, clearanceQuery, termID)
		if err != nil {
			return fmt.Errorf("error generating clearances: %w", err)
		}
		result.ClearancesCreated = int(tag.RowsAffected())

		itemQuery := `
			INSERT INTO clearance_items (clearance_id, org_id, required_signatory_id)
			SELECT c.clearance_id, o.org_id, oa.admin_id
			FROM student_clearances c
			CROSS JOIN organizations o
			JOIN organization_admins oa ON oa.org_id = o.org_id AND oa.is_active = true
			WHERE c.term_id = $1
				AND o.is_active = true
				AND o.requires_clearance = true
				AND NOT EXISTS (
					SELECT 1 FROM clearance_items i
					WHERE i.clearance_id = c.clearance_id AND i.required_signatory_id = oa.admin_id
				)
		`
		tag, err = tx.Exec(ctx, itemQuery, termID)
		if err != nil {
			return fmt.Errorf("error generating clearance items: %w", err)
		}
		result.ItemsCreated = int(tag.RowsAffected())

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}
