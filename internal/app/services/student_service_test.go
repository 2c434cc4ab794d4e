package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleardesk/backend/internal/app/models"
	"github.com/cleardesk/backend/internal/app/repositories"
	"github.com/cleardesk/backend/internal/pkg/apperrors"
)

type fakeStudentReader struct {
	students map[int64]*models.Student
}

func (f *fakeStudentReader) GetByID(_ context.Context, studentID int64) (*models.Student, error) {
	student, ok := f.students[studentID]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return student, nil
}

type fakeUserReader struct {
	users map[int64]*models.User
}

func (f *fakeUserReader) GetByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

type fakeStudentClearances struct {
	clearance *models.StudentClearance
	termName  string
	items     []repositories.StudentItemRow
}

func (f *fakeStudentClearances) GetLatestForStudent(_ context.Context, _ int64) (*models.StudentClearance, string, error) {
	if f.clearance == nil {
		return nil, "", apperrors.ErrClearanceNotFound
	}
	return f.clearance, f.termName, nil
}

func (f *fakeStudentClearances) ListStudentItems(_ context.Context, _ int64) ([]repositories.StudentItemRow, error) {
	return f.items, nil
}

func TestProfileJoinsAccountAndStudent(t *testing.T) {
	users := &fakeUserReader{users: map[int64]*models.User{
		101: {ID: 101, Username: "acruz", Email: "acruz@example.edu"},
	}}
	students := &fakeStudentReader{students: map[int64]*models.Student{
		101: {StudentID: 101, StudentNumber: "2023-0001", FirstName: "Alex", LastName: "Cruz", Course: "BSIT", YearLevel: 3, EnrollmentStatus: models.EnrollmentStatusEnrolled},
	}}
	svc := NewStudentService(users, students, &fakeStudentClearances{})

	resp, err := svc.Profile(context.Background(), 101)
	require.NoError(t, err)

	assert.Equal(t, "acruz", resp.Username)
	assert.Equal(t, "2023-0001", resp.StudentNumber)
	assert.Equal(t, "enrolled", resp.EnrollmentStatus)
}

func TestClearancesWithoutRecord(t *testing.T) {
	svc := NewStudentService(&fakeUserReader{}, &fakeStudentReader{}, &fakeStudentClearances{})

	_, err := svc.Clearances(context.Background(), 101)
	assert.ErrorIs(t, err, apperrors.ErrClearanceNotFound)
}

func TestSummaryCountsAndLabel(t *testing.T) {
	tests := []struct {
		name      string
		overall   models.ClearanceStatus
		wantLabel string
	}{
		{"approved clearance", models.ClearanceStatusApproved, "Cleared"},
		{"incomplete clearance", models.ClearanceStatusIncomplete, "Needs Compliance"},
		{"pending clearance", models.ClearanceStatusPending, "In Progress"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearances := &fakeStudentClearances{
				clearance: &models.StudentClearance{ClearanceID: 9, OverallStatus: tt.overall},
				termName:  "first semester 2025-2026",
				items: []repositories.StudentItemRow{
					{Item: models.ClearanceItem{ItemID: 1, Status: models.ItemStatusApproved}},
					{Item: models.ClearanceItem{ItemID: 2, Status: models.ItemStatusApproved}},
					{Item: models.ClearanceItem{ItemID: 3, Status: models.ItemStatusPending}},
					{Item: models.ClearanceItem{ItemID: 4, Status: models.ItemStatusNeedsCompliance}},
				},
			}
			svc := NewStudentService(&fakeUserReader{}, &fakeStudentReader{}, clearances)

			summary, err := svc.Summary(context.Background(), 101)
			require.NoError(t, err)

			assert.Equal(t, 4, summary.TotalItems)
			assert.Equal(t, 2, summary.Approved)
			assert.Equal(t, 1, summary.Pending)
			assert.Equal(t, 1, summary.NeedsCompliance)
			assert.Equal(t, tt.wantLabel, summary.ClearanceStatus)
		})
	}
}
