package services

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/mssola/useragent"

	"github.com/cleardesk/backend/internal/app/models"
	"github.com/cleardesk/backend/internal/app/models/dto"
	"github.com/cleardesk/backend/internal/app/repositories"
	"github.com/cleardesk/backend/internal/pkg/helpers"
	"github.com/cleardesk/backend/internal/pkg/logger"
)

// Actor carries the request identity and source metadata every audited
// operation records.
type Actor struct {
	UserID    int64
	IPAddress string
	UserAgent string
}

type auditStore interface {
	Insert(ctx context.Context, log *models.AuditLog) error
	List(ctx context.Context, filter repositories.AuditFilter) ([]repositories.AuditRow, int, error)
	CountByAction(ctx context.Context) ([]repositories.AuditCount, error)
	CountByTable(ctx context.Context) ([]repositories.AuditCount, error)
	MostActiveUsers(ctx context.Context, limit int) ([]repositories.AuditCount, error)
	UserAgents(ctx context.Context) ([]string, error)
}

// AuditService emits and queries the append-only audit trail
type AuditService struct {
	store auditStore
}

// NewAuditService creates a new audit service
func NewAuditService(store auditStore) *AuditService {
	return &AuditService{
		store: store,
	}
}

// Record appends one audit entry. Emission is best-effort: a failed insert
// is logged but never fails the operation it documents, which has already
// committed by the time the entry is written.
func (s *AuditService) Record(ctx context.Context, actor Actor, action models.AuditActionType, table string, recordID *int64, oldValue, newValue any) {
	log := &models.AuditLog{
		ActionType: action,
		TableName:  table,
		RecordID:   recordID,
	}

	if actor.UserID > 0 {
		log.UserID = &actor.UserID
	}
	if actor.IPAddress != "" {
		log.IPAddress = &actor.IPAddress
	}
	if actor.UserAgent != "" {
		log.UserAgent = &actor.UserAgent
	}
	log.OldValue = marshalSnapshot(oldValue)
	log.NewValue = marshalSnapshot(newValue)

	if err := s.store.Insert(ctx, log); err != nil {
		logger.Warn().Err(err).
			Str("action", string(action)).
			Str("table", table).
			Msg("Failed to write audit log")
	}
}

func marshalSnapshot(v any) *string {
	if v == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to marshal audit snapshot")
		return nil
	}
	snapshot := string(data)
	return &snapshot
}

// List retrieves audit entries, filtered and paginated
func (s *AuditService) List(ctx context.Context, filter repositories.AuditFilter) (*dto.PagedResponse, error) {
	rows, total, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	page, perPage := helpers.NormalizePagination(filter.Page, filter.PerPage)
	return dto.NewPagedResponse(toAuditResponses(rows), total, perPage, page, helpers.LastPage(total, perPage)), nil
}

// Recent retrieves the newest entries for the dashboard feed
func (s *AuditService) Recent(ctx context.Context, limit int) ([]dto.AuditLogResponse, error) {
	rows, _, err := s.store.List(ctx, repositories.AuditFilter{Page: 1, PerPage: limit})
	if err != nil {
		return nil, err
	}
	return toAuditResponses(rows), nil
}

// ListByUser retrieves one user's audit entries
func (s *AuditService) ListByUser(ctx context.Context, userID int64, page, perPage int) (*dto.PagedResponse, error) {
	return s.List(ctx, repositories.AuditFilter{UserID: userID, Page: page, PerPage: perPage})
}

// Stats aggregates audit activity by action, table, user, and browser
func (s *AuditService) Stats(ctx context.Context) (*dto.AuditStatsResponse, error) {
	byAction, err := s.store.CountByAction(ctx)
	if err != nil {
		return nil, err
	}
	byTable, err := s.store.CountByTable(ctx)
	if err != nil {
		return nil, err
	}
	activeUsers, err := s.store.MostActiveUsers(ctx, 10)
	if err != nil {
		return nil, err
	}
	agents, err := s.store.UserAgents(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.AuditStatsResponse{
		ByAction:        toCountRows(byAction),
		ByTable:         toCountRows(byTable),
		MostActiveUsers: toCountRows(activeUsers),
		Browsers:        browserBreakdown(agents),
	}, nil
}

// browserBreakdown parses raw user agent strings into a per-browser count
func browserBreakdown(agents []string) []dto.AuditCountRow {
	counts := make(map[string]int)
	for _, raw := range agents {
		ua := useragent.New(raw)
		name, _ := ua.Browser()
		if name == "" {
			name = "Unknown"
		}
		counts[name]++
	}

	rows := make([]dto.AuditCountRow, 0, len(counts))
	for name, count := range counts {
		rows = append(rows, dto.AuditCountRow{Label: name, Count: count})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Label < rows[j].Label
	})

	return rows
}

func toCountRows(counts []repositories.AuditCount) []dto.AuditCountRow {
	rows := make([]dto.AuditCountRow, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, dto.AuditCountRow{Label: c.Label, Count: c.Count})
	}
	return rows
}

func toAuditResponses(rows []repositories.AuditRow) []dto.AuditLogResponse {
	out := make([]dto.AuditLogResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.AuditLogResponse{
			LogID:      row.Log.LogID,
			UserID:     row.Log.UserID,
			Username:   row.Username,
			ActionType: string(row.Log.ActionType),
			TableName:  row.Log.TableName,
			RecordID:   row.Log.RecordID,
			OldValue:   row.Log.OldValue,
			NewValue:   row.Log.NewValue,
			IPAddress:  row.Log.IPAddress,
			UserAgent:  row.Log.UserAgent,
			CreatedAt:  row.Log.CreatedAt,
		})
	}
	return out
}
