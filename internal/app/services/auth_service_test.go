package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleardesk/backend/internal/app/models"
	"github.com/cleardesk/backend/internal/app/models/dto"
	"github.com/cleardesk/backend/internal/pkg/apperrors"
	"github.com/cleardesk/backend/internal/pkg/auth"
)

type fakeUserStore struct {
	byUsername map[string]*models.User
	lastLogin  *time.Time
}

func (f *fakeUserStore) Create(_ context.Context, _ *models.User) error { return nil }

func (f *fakeUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	for _, u := range f.byUsername {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) GetByUsername(_ context.Context, username string) (*models.User, error) {
	user, ok := f.byUsername[username]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserStore) UpdateLastLogin(_ context.Context, _ int64, at time.Time) error {
	f.lastLogin = &at
	return nil
}

type fakeStudentCreator struct {
	user    *models.User
	student *models.Student
}

func (f *fakeStudentCreator) CreateWithUser(_ context.Context, user *models.User, student *models.Student) error {
	user.ID = 101
	student.StudentID = user.ID
	f.user = user
	f.student = student
	return nil
}

type fakeTokenIssuer struct {
	gotUserType string
}

func (f *fakeTokenIssuer) GenerateToken(_ int64, _, userType string) (string, int, error) {
	f.gotUserType = userType
	return "test-token", 28800, nil
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return hash
}

func TestRegisterAssignsStudentRole(t *testing.T) {
	students := &fakeStudentCreator{}
	svc := NewAuthService(&fakeUserStore{}, students, &fakeTokenIssuer{}, &fakeAudit{})

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username:      "acruz",
		Email:         "acruz@example.edu",
		Password:      "Secret123!",
		StudentNumber: "2023-0001",
		FirstName:     "Alex",
		LastName:      "Cruz",
		Course:        "BSIT",
		YearLevel:     3,
	})
	require.NoError(t, err)

	// Role and active flag come from the server, never from the payload
	assert.Equal(t, string(models.UserTypeStudent), resp.UserType)
	assert.True(t, resp.IsActive)
	assert.Equal(t, int64(101), resp.UserID)

	require.NotNil(t, students.user)
	assert.True(t, auth.CheckPassword(students.user.PasswordHash, "Secret123!"))
	assert.NotEqual(t, "Secret123!", students.user.PasswordHash)
	assert.Equal(t, "2023-0001", students.student.StudentNumber)
}

func TestLoginSuccess(t *testing.T) {
	users := &fakeUserStore{byUsername: map[string]*models.User{
		"acruz": {
			ID:           101,
			Username:     "acruz",
			Email:        "acruz@example.edu",
			PasswordHash: mustHash(t, "Secret123!"),
			UserType:     models.UserTypeStudent,
			IsActive:     true,
		},
	}}
	tokens := &fakeTokenIssuer{}
	audit := &fakeAudit{}
	svc := NewAuthService(users, &fakeStudentCreator{}, tokens, audit)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "acruz", Password: "Secret123!"}, Actor{IPAddress: "10.0.0.1"})
	require.NoError(t, err)

	assert.Equal(t, "test-token", resp.Token.AccessToken)
	assert.Equal(t, "Bearer", resp.Token.TokenType)
	assert.Equal(t, 28800, resp.Token.ExpiresIn)
	assert.Equal(t, "student", tokens.gotUserType)
	assert.NotNil(t, users.lastLogin)

	require.Len(t, audit.entries, 1)
	assert.Equal(t, models.AuditActionLogin, audit.entries[0].action)
	require.NotNil(t, audit.entries[0].recordID)
	assert.Equal(t, int64(101), *audit.entries[0].recordID)
}

func TestLoginWrongPassword(t *testing.T) {
	users := &fakeUserStore{byUsername: map[string]*models.User{
		"acruz": {ID: 101, Username: "acruz", PasswordHash: mustHash(t, "Secret123!"), IsActive: true},
	}}
	svc := NewAuthService(users, &fakeStudentCreator{}, &fakeTokenIssuer{}, &fakeAudit{})

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "acruz", Password: "wrong"}, Actor{})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	svc := NewAuthService(&fakeUserStore{byUsername: map[string]*models.User{}}, &fakeStudentCreator{}, &fakeTokenIssuer{}, &fakeAudit{})

	// Unknown accounts fail identically to bad passwords
	_, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "ghost", Password: "whatever"}, Actor{})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginDisabledAccount(t *testing.T) {
	users := &fakeUserStore{byUsername: map[string]*models.User{
		"acruz": {ID: 101, Username: "acruz", PasswordHash: mustHash(t, "Secret123!"), IsActive: false},
	}}
	svc := NewAuthService(users, &fakeStudentCreator{}, &fakeTokenIssuer{}, &fakeAudit{})

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "acruz", Password: "Secret123!"}, Actor{})
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
}

func TestLogoutRecordsEvent(t *testing.T) {
	audit := &fakeAudit{}
	svc := NewAuthService(&fakeUserStore{}, &fakeStudentCreator{}, &fakeTokenIssuer{}, audit)

	svc.Logout(context.Background(), Actor{UserID: 101})

	require.Len(t, audit.entries, 1)
	assert.Equal(t, models.AuditActionLogout, audit.entries[0].action)
	assert.Equal(t, "users", audit.entries[0].table)
}
