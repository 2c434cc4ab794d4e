package seed

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/cleardesk/backend/internal/app/models"
	appRepos "github.com/cleardesk/backend/internal/app/repositories"
	"github.com/cleardesk/backend/internal/pkg/apperrors"
	"github.com/cleardesk/backend/internal/pkg/auth"
)

// CreateDefaultData creates the default signing offices, the current academic
// term, and a super admin account if they don't exist.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	repos := appRepos.NewRepositories(dbPool)

	lgr.Info().Msg("Checking/Creating default data (organizations/terms/admin)...")
	var finalErr error // To collect potential errors without stopping the process

	// --- Signing offices --- //
	defaultOrgs := []appModels.Organization{
		{OrgCode: "REG", OrgName: "Registrar's Office", OrgType: appModels.OrgTypeAdministrative, IsActive: true, RequiresClearance: true},
		{OrgCode: "LIB", OrgName: "University Library", OrgType: appModels.OrgTypeAcademic, IsActive: true, RequiresClearance: true},
		{OrgCode: "FIN", OrgName: "Finance Office", OrgType: appModels.OrgTypeFinance, IsActive: true, RequiresClearance: true},
		{OrgCode: "OSA", OrgName: "Office of Student Affairs", OrgType: appModels.OrgTypeStudentServices, IsActive: true, RequiresClearance: true},
	}
	for i := range defaultOrgs {
		org := defaultOrgs[i]
		if err := repos.OrganizationRepository.Create(ctx, &org); err != nil &&
			!errors.Is(err, apperrors.ErrOrgCodeAlreadyExists) {
			lgr.Error().Err(err).Str("orgCode", org.OrgCode).Msg("Error creating default organization")
			finalErr = errors.Join(finalErr, err)
		}
	}

	// --- Current academic term --- //
	current, err := repos.TermRepository.GetCurrent(ctx)
	if err != nil && !errors.Is(err, apperrors.ErrTermNotFound) {
		lgr.Error().Err(err).Msg("Error checking current term")
		finalErr = errors.Join(finalErr, err)
	} else if current == nil || errors.Is(err, apperrors.ErrTermNotFound) {
		now := time.Now()
		term := &appModels.AcademicTerm{
			AcademicYear: academicYearFor(now),
			Semester:     semesterFor(now),
			TermName:     string(semesterFor(now)) + " semester " + academicYearFor(now),
			StartDate:    now,
			EndDate:      now.AddDate(0, 5, 0),
		}
		if err := repos.TermRepository.Create(ctx, term); err != nil {
			lgr.Error().Err(err).Msg("Error creating default term")
			finalErr = errors.Join(finalErr, err)
		} else if err := repos.TermRepository.SetCurrent(ctx, term.TermID); err != nil {
			lgr.Error().Err(err).Msg("Error marking default term current")
			finalErr = errors.Join(finalErr, err)
		}
	}

	// --- Super admin account --- //
	_, err = repos.UserRepository.GetByUsername(ctx, "admin")
	switch {
	case err == nil:
		lgr.Info().Msg("Admin user already exists, skipping creation")
	case errors.Is(err, apperrors.ErrUserNotFound):
		hash, hashErr := auth.HashPassword("Admin123!")
		if hashErr != nil {
			lgr.Error().Err(hashErr).Msg("Error hashing admin password")
			finalErr = errors.Join(finalErr, hashErr)
			break
		}
		user := appModels.NewUser("admin", "admin@cleardesk.app", hash, appModels.UserTypeSysAdmin)
		admin := &appModels.SystemAdmin{
			AdminLevel:   appModels.AdminLevelSuperAdmin,
			FullName:     "System Administrator",
			AssignedDate: time.Now(),
		}
		if createErr := repos.SysAdminRepository.CreateWithUser(ctx, user, admin); createErr != nil {
			lgr.Error().Err(createErr).Msg("Error creating default admin user")
			finalErr = errors.Join(finalErr, createErr)
		} else {
			lgr.Info().Int64("adminID", admin.SysAdminID).Msg("Default admin user created successfully")
		}
	default:
		lgr.Error().Err(err).Msg("Error checking if admin user exists")
		finalErr = errors.Join(finalErr, err)
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr // Return collected errors, if any
}

// academicYearFor maps a date to its school-year label, e.g. "2025-2026".
func academicYearFor(t time.Time) string {
	start := t.Year()
	if t.Month() < time.June {
		start--
	}
	return strconv.Itoa(start) + "-" + strconv.Itoa(start+1)
}

// semesterFor maps a date to the semester that contains it.
func semesterFor(t time.Time) appModels.Semester {
	switch {
	case t.Month() >= time.June && t.Month() <= time.October:
		return appModels.SemesterFirst
	case t.Month() >= time.November || t.Month() <= time.March:
		return appModels.SemesterSecond
	default:
		return appModels.SemesterSummer
	}
}
