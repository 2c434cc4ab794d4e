package services

import (
	"context"
	"time"

	"github.com/cleardesk/backend/internal/app/models"
	"github.com/cleardesk/backend/internal/app/models/dto"
	"github.com/cleardesk/backend/internal/pkg/apperrors"
	"github.com/cleardesk/backend/internal/pkg/auth"
	"github.com/cleardesk/backend/internal/pkg/logger"
)

type userStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, userID int64, at time.Time) error
}

type studentCreator interface {
	CreateWithUser(ctx context.Context, user *models.User, student *models.Student) error
}

type tokenIssuer interface {
	GenerateToken(userID int64, username, userType string) (string, int, error)
}

type auditRecorder interface {
	Record(ctx context.Context, actor Actor, action models.AuditActionType, table string, recordID *int64, oldValue, newValue any)
}

// AuthService handles registration, login, and logout
type AuthService struct {
	users    userStore
	students studentCreator
	tokens   tokenIssuer
	audit    auditRecorder
}

// NewAuthService creates a new auth service
func NewAuthService(users userStore, students studentCreator, tokens tokenIssuer, audit auditRecorder) *AuthService {
	return &AuthService{
		users:    users,
		students: students,
		tokens:   tokens,
		audit:    audit,
	}
}

// Register creates a student account from a self-registration request. The
// account role and active flag are assigned here, never taken from the
// request, so a crafted payload cannot self-provision an admin account.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.NewUser(req.Username, req.Email, hash, models.UserTypeStudent)
	student := &models.Student{
		StudentNumber: req.StudentNumber,
		FirstName:     req.FirstName,
		MiddleName:    req.MiddleName,
		LastName:      req.LastName,
		Course:        req.Course,
		YearLevel:     req.YearLevel,
		Section:       req.Section,
		ContactNumber: req.ContactNumber,
	}

	if err := s.students.CreateWithUser(ctx, user, student); err != nil {
		return nil, err
	}

	logger.Info().Int64("userId", user.ID).Str("studentNumber", student.StudentNumber).Msg("Student registered")

	return &dto.UserResponse{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		UserType: string(user.UserType),
		IsActive: user.IsActive,
	}, nil
}

// Login verifies credentials, issues a token, and records the login
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest, actor Actor) (*dto.AuthResponse, error) {
	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		// Credential failures are indistinguishable whether the account
		// exists or not.
		return nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	token, expiresIn, err := s.tokens.GenerateToken(user.ID, user.Username, string(user.UserType))
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		logger.Warn().Err(err).Int64("userId", user.ID).Msg("Failed to update last login")
	}

	actor.UserID = user.ID
	s.audit.Record(ctx, actor, models.AuditActionLogin, "users", &user.ID, nil, nil)

	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresIn:   expiresIn,
		},
		User: dto.UserResponse{
			UserID:   user.ID,
			Username: user.Username,
			Email:    user.Email,
			UserType: string(user.UserType),
			IsActive: user.IsActive,
		},
	}, nil
}

// Logout records the logout event. Tokens are stateless, so the entry is the
// only server-side trace of the session ending.
func (s *AuthService) Logout(ctx context.Context, actor Actor) {
	s.audit.Record(ctx, actor, models.AuditActionLogout, "users", &actor.UserID, nil, nil)
}
