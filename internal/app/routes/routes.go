package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cleardesk/backend/internal/app/controllers"
	"github.com/cleardesk/backend/internal/app/models"
	"github.com/cleardesk/backend/internal/app/models/dto"
	"github.com/cleardesk/backend/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	ctrls *controllers.Controllers,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.Use(middleware.Metrics())

	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", ctrls.AuthController.Register)
		auth.POST("/login", ctrls.AuthController.Login)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", ctrls.AuthController.Logout)

		// Signatory routes
		orgAdmin := authenticated.Group("/org-admin")
		orgAdmin.Use(authMiddleware.RoleRequired(string(models.UserTypeOrgAdmin)))
		{
			orgAdmin.GET("/clearance-items", ctrls.OrgAdminController.ListItems)
			orgAdmin.PATCH("/clearance-items/:id/approve", ctrls.OrgAdminController.Approve)
			orgAdmin.PATCH("/clearance-items/:id/needs-compliance", ctrls.OrgAdminController.MarkNeedsCompliance)
			orgAdmin.POST("/clearance-items/bulk-approve", ctrls.OrgAdminController.BulkApprove)
			orgAdmin.GET("/statistics", ctrls.OrgAdminController.Statistics)
		}

		// Student routes
		student := authenticated.Group("/student")
		student.Use(authMiddleware.RoleRequired(string(models.UserTypeStudent)))
		{
			student.GET("/profile", ctrls.StudentController.Profile)
			student.GET("/clearances", ctrls.StudentController.Clearances)
			student.GET("/clearances/summary", ctrls.StudentController.Summary)
		}

		// Administrator routes
		mis := authenticated.Group("/mis")
		mis.Use(authMiddleware.RoleRequired(string(models.UserTypeSysAdmin)))
		{
			mis.GET("/dashboard", ctrls.MISController.Dashboard)

			mis.POST("/students", ctrls.MISController.CreateStudent)
			mis.GET("/students", ctrls.MISController.ListStudents)
			mis.GET("/students/:id", ctrls.MISController.GetStudent)
			mis.PUT("/students/:id", ctrls.MISController.UpdateStudent)
			mis.DELETE("/students/:id", ctrls.MISController.DeleteStudent)

			mis.POST("/org-admins", ctrls.MISController.CreateOrgAdmin)
			mis.GET("/org-admins", ctrls.MISController.ListOrgAdmins)
			mis.GET("/org-admins/:id", ctrls.MISController.GetOrgAdmin)
			mis.PUT("/org-admins/:id", ctrls.MISController.UpdateOrgAdmin)
			mis.DELETE("/org-admins/:id", ctrls.MISController.DeleteOrgAdmin)

			mis.POST("/sys-admins", ctrls.MISController.CreateSysAdmin)
			mis.GET("/sys-admins", ctrls.MISController.ListSysAdmins)
			mis.GET("/sys-admins/:id", ctrls.MISController.GetSysAdmin)
			mis.PUT("/sys-admins/:id", ctrls.MISController.UpdateSysAdmin)
			mis.DELETE("/sys-admins/:id", ctrls.MISController.DeleteSysAdmin)

			mis.POST("/organizations", ctrls.MISController.CreateOrganization)
			mis.GET("/organizations", ctrls.MISController.ListOrganizations)
			mis.GET("/organizations/:id", ctrls.MISController.GetOrganization)
			mis.PUT("/organizations/:id", ctrls.MISController.UpdateOrganization)
			mis.DELETE("/organizations/:id", ctrls.MISController.DeleteOrganization)

			mis.POST("/terms", ctrls.MISController.CreateTerm)
			mis.GET("/terms", ctrls.MISController.ListTerms)
			mis.GET("/terms/:id", ctrls.MISController.GetTerm)
			mis.PUT("/terms/:id", ctrls.MISController.UpdateTerm)
			mis.DELETE("/terms/:id", ctrls.MISController.DeleteTerm)
			mis.POST("/terms/:id/set-current", ctrls.MISController.SetCurrentTerm)
			mis.POST("/terms/:id/generate-clearances", ctrls.MISController.GenerateClearances)

			mis.GET("/clearances", ctrls.MISController.ListClearances)
			mis.GET("/clearances/stats-by-organization", ctrls.MISController.StatsByOrganization)
			mis.GET("/clearances/:id", ctrls.MISController.GetClearance)
			mis.GET("/clearances/:id/items", ctrls.MISController.GetClearanceItems)
			mis.PATCH("/clearances/:id/lock", ctrls.MISController.SetClearanceLock)

			mis.GET("/audit-logs", ctrls.MISController.ListAuditLogs)
			mis.GET("/audit-logs/stats", ctrls.MISController.AuditStats)
			mis.GET("/audit-logs/user/:id", ctrls.MISController.ListUserAuditLogs)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.APIResponse{
			Success:   true,
			Data:      gin.H{"status": "ok"},
			Timestamp: time.Now(),
		})
	})

	// Prometheus scrape endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger routes are set up in bootstrap.go already
}
