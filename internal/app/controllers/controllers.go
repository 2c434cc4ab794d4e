package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/cleardesk/backend/internal/app/services"
	"github.com/cleardesk/backend/internal/middleware"
)

// Controllers holds all the controller instances
type Controllers struct {
	AuthController     *AuthController
	OrgAdminController *OrgAdminController
	StudentController  *StudentController
	MISController      *MISController
}

// NewControllers initializes all controllers
func NewControllers(svcs *services.Services) *Controllers {
	return &Controllers{
		AuthController:     NewAuthController(svcs.AuthService),
		OrgAdminController: NewOrgAdminController(svcs.ApprovalService),
		StudentController:  NewStudentController(svcs.StudentService),
		MISController:      NewMISController(svcs.MISService, svcs.AuditService),
	}
}

// actorFrom builds the audit identity of the current request
func actorFrom(c *gin.Context) services.Actor {
	return services.Actor{
		UserID:    middleware.GetUserID(c),
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}
