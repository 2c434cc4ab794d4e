package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cleardesk/backend/internal/app/models/dto"
	"github.com/cleardesk/backend/internal/app/services"
	"github.com/cleardesk/backend/internal/middleware"
)

// StudentController serves a student's own profile and clearance views
type StudentController struct {
	studentService *services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService) *StudentController {
	return &StudentController{
		studentService: studentService,
	}
}

// Profile retrieves the caller's profile
// @Summary Get own profile
// @Description Retrieves the calling student's joined account and profile fields
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.StudentProfileResponse} "Profile"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /student/profile [get]
func (c *StudentController) Profile(ctx *gin.Context) {
	resp, err := c.studentService.Profile(ctx, middleware.GetUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// Clearances retrieves the caller's latest clearance with its items
// @Summary Get own clearance
// @Description Retrieves the calling student's latest clearance with every item and its signatory display fields
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.StudentClearanceResponse} "Clearance with items"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "No clearance on record"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /student/clearances [get]
func (c *StudentController) Clearances(ctx *gin.Context) {
	resp, err := c.studentService.Clearances(ctx, middleware.GetUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// Summary aggregates the caller's clearance into counts and a label
// @Summary Get own clearance summary
// @Description Counts the calling student's items per status and derives a display label
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ClearanceSummaryResponse} "Summary"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "No clearance on record"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /student/clearances/summary [get]
func (c *StudentController) Summary(ctx *gin.Context) {
	resp, err := c.studentService.Summary(ctx, middleware.GetUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}
