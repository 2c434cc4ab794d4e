package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cleardesk/backend/internal/app/models"
	"github.com/cleardesk/backend/internal/pkg/helpers"
)

// AuditFilter narrows audit log listings
type AuditFilter struct {
	UserID     int64
	ActionType string
	TableName  string
	DateFrom   string
	DateTo     string
	Page       int
	PerPage    int
}

// AuditRow is one audit entry joined with the acting user's name
type AuditRow struct {
	Log      models.AuditLog
	Username *string
}

// AuditCount is a generic label/count aggregation row
type AuditCount struct {
	Label string
	Count int
}

// AuditRepository handles the append-only audit log store. Entries are only
// ever inserted and read, never updated or deleted.
type AuditRepository struct {
	db *pgxpool.Pool
}

// NewAuditRepository creates a new audit repository
func NewAuditRepository(db *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{
		db: db,
	}
}

// Insert appends one audit entry
func (r *AuditRepository) Insert(ctx context.Context, log *models.AuditLog) error {
	query := `
		INSERT INTO audit_logs (user_id, action_type, table_name, record_id, old_value, new_value, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING log_id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		log.UserID,
		log.ActionType,
		log.TableName,
		log.RecordID,
		log.OldValue,
		log.NewValue,
		log.IPAddress,
		log.UserAgent,
	).Scan(&log.LogID, &log.CreatedAt)
	if err != nil {
		return fmt.Errorf("error inserting audit log: %w", err)
	}

	return nil
}

// List retrieves audit entries newest first, filtered and paginated
func (r *AuditRepository) List(ctx context.Context, filter AuditFilter) ([]AuditRow, int, error) {
	page, perPage := helpers.NormalizePagination(filter.Page, filter.PerPage)

	where := ` WHERE 1=1`
	args := []any{}
	argPos := 1

	if filter.UserID > 0 {
		where += fmt.Sprintf(` AND a.user_id = $%d`, argPos)
		args = append(args, filter.UserID)
		argPos++
	}
	if filter.ActionType != "" {
		where += fmt.Sprintf(` AND a.action_type = $%d`, argPos)
		args = append(args, filter.ActionType)
		argPos++
	}
	if filter.TableName != "" {
		where += fmt.Sprintf(` AND a.table_name = $%d`, argPos)
		args = append(args, filter.TableName)
		argPos++
	}
	if filter.DateFrom != "" {
		where += fmt.Sprintf(` AND a.created_at >= $%d::date`, argPos)
		args = append(args, filter.DateFrom)
		argPos++
	}
	if filter.DateTo != "" {
		where += fmt.Sprintf(` AND a.created_at < $%d::date + interval '1 day'`, argPos)
		args = append(args, filter.DateTo)
		argPos++
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM audit_logs a` + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting audit logs: %w", err)
	}

	query := `
		SELECT a.log_id, a.user_id, a.action_type, a.table_name, a.record_id,
			a.old_value, a.new_value, a.ip_address, a.user_agent, a.created_at,
			users.username
		FROM audit_logs a
		LEFT JOIN users ON users.user_id = a.user_id` + where +
		fmt.Sprintf(` ORDER BY a.created_at DESC LIMIT $%d OFFSET $%d`, argPos, argPos+1)
	args = append(args, perPage, helpers.Offset(page, perPage))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing audit logs: %w", err)
	}
	defer rows.Close()

	var list []AuditRow
	for rows.Next() {
		var row AuditRow
		err := rows.Scan(
			&row.Log.LogID,
			&row.Log.UserID,
			&row.Log.ActionType,
			&row.Log.TableName,
			&row.Log.RecordID,
			&row.Log.OldValue,
			&row.Log.NewValue,
			&row.Log.IPAddress,
			&row.Log.UserAgent,
			&row.Log.CreatedAt,
			&row.Username,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning audit log: %w", err)
		}
		list = append(list, row)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating audit logs: %w", err)
	}

	return list, total, nil
}

// Recent retrieves the newest entries for the dashboard
func (r *AuditRepository) Recent(ctx context.Context, limit int) ([]AuditRow, error) {
	rows, _, err := r.List(ctx, AuditFilter{Page: 1, PerPage: limit})
	return rows, err
}

// CountByAction aggregates entries per action type
func (r *AuditRepository) CountByAction(ctx context.Context) ([]AuditCount, error) {
	return r.countBy(ctx, `SELECT action_type, COUNT(*) FROM audit_logs GROUP BY action_type ORDER BY COUNT(*) DESC`)
}

// CountByTable aggregates entries per affected table
func (r *AuditRepository) CountByTable(ctx context.Context) ([]AuditCount, error) {
	return r.countBy(ctx, `SELECT table_name, COUNT(*) FROM audit_logs GROUP BY table_name ORDER BY COUNT(*) DESC`)
}

// MostActiveUsers aggregates entries per acting user, busiest first
func (r *AuditRepository) MostActiveUsers(ctx context.Context, limit int) ([]AuditCount, error) {
	query := `
		SELECT users.username, COUNT(*)
		FROM audit_logs a
		JOIN users ON users.user_id = a.user_id
		GROUP BY users.username
		ORDER BY COUNT(*) DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("error aggregating audit logs: %w", err)
	}
	defer rows.Close()

	return scanAuditCounts(rows)
}

// UserAgents retrieves the raw user agent of every entry that has one, for
// browser breakdown aggregation in the service layer.
func (r *AuditRepository) UserAgents(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT user_agent FROM audit_logs WHERE user_agent IS NOT NULL`)
	if err != nil {
		return nil, fmt.Errorf("error listing user agents: %w", err)
	}
	defer rows.Close()

	var agents []string
	for rows.Next() {
		var agent string
		if err := rows.Scan(&agent); err != nil {
			return nil, fmt.Errorf("error scanning user agent: %w", err)
		}
		agents = append(agents, agent)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user agents: %w", err)
	}

	return agents, nil
}

func (r *AuditRepository) countBy(ctx context.Context, query string) ([]AuditCount, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error aggregating audit logs: %w", err)
	}
	defer rows.Close()

	return scanAuditCounts(rows)
}

func scanAuditCounts(rows pgx.Rows) ([]AuditCount, error) {
	var counts []AuditCount
	for rows.Next() {
		var c AuditCount
		if err := rows.Scan(&c.Label, &c.Count); err != nil {
			return nil, fmt.Errorf("error scanning audit count: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit counts: %w", err)
	}

	return counts, nil
}
