package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cleardesk/backend/internal/app/models/dto"
	"github.com/cleardesk/backend/internal/app/repositories"
	"github.com/cleardesk/backend/internal/app/services"
	"github.com/cleardesk/backend/internal/middleware"
)

// MISController is the administrator surface: entity management, clearance
// monitoring, and audit queries.
type MISController struct {
	misService   *services.MISService
	auditService *services.AuditService
}

// NewMISController creates a new MISController
func NewMISController(misService *services.MISService, auditService *services.AuditService) *MISController {
	return &MISController{
		misService:   misService,
		auditService: auditService,
	}
}

func bindJSON(ctx *gin.Context, target any) bool {
	if err := ctx.ShouldBindJSON(target); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return false
	}
	return true
}

// Dashboard aggregates counts, current-term progress, and recent activity
// @Summary Administrator dashboard
// @Tags mis
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.DashboardResponse}
// @Router /mis/dashboard [get]
func (c *MISController) Dashboard(ctx *gin.Context) {
	resp, err := c.misService.Dashboard(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// --- Students ---

// CreateStudent provisions a student account and profile
// @Summary Create a student
// @Tags mis
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStudentRequest true "Student information"
// @Success 201 {object} dto.APIResponse{data=dto.StudentDetailResponse}
// @Failure 409 {object} dto.ErrorResponse "Username, email, or student number already taken"
// @Router /mis/students [post]
func (c *MISController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.misService.CreateStudent(ctx, actorFrom(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(resp))
}

// ListStudents retrieves students, filtered and paginated
// @Summary List students
// @Tags mis
// @Produce json
// @Security BearerAuth
// @Param search query string false "Search student number or name"
// @Param course query string false "Filter by course"
// @Param year_level query int false "Filter by year level"
// @Param enrollment_status query string false "Filter by enrollment status"
// @Param page query int false "Page number"
// @Param per_page query int false "Rows per page"
// @Success 200 {object} dto.PagedResponse{data=[]dto.StudentDetailResponse}
// @Router /mis/students [get]
func (c *MISController) ListStudents(ctx *gin.Context) {
	var req dto.StudentListFilter
	if err := ctx.ShouldBindQuery(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid filter parameters").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := c.misService.ListStudents(ctx, repositories.StudentListFilter{
		Search:           req.Search,
		Course:           req.Course,
		YearLevel:        req.YearLevel,
		EnrollmentStatus: req.EnrollmentStatus,
		Page:             req.Page,
		PerPage:          req.PerPage,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetStudent retrieves one student profile
// @Summary Get a student
// @Tags mis
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=models.Student}
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /mis/students/{id} [get]
func (c *MISController) GetStudent(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	student, err := c.misService.GetStudent(ctx, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(student))
}

// UpdateStudent applies a partial student update
// @Summary Update a student
// @Tags mis
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param request body dto.UpdateStudentRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse
// @Router /mis/students/{id} [put]
func (c *MISController) UpdateStudent(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateStudentRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.misService.UpdateStudent(ctx, actorFrom(ctx), studentID, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Student updated"))
}

// DeleteStudent removes a student account and its clearance history
// @Summary Delete a student
// @Tags mis
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse
// @Router /mis/students/{id} [delete]
func (c *MISController) DeleteStudent(ctx *gin.Context) {
	studentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.misService.DeleteStudent(ctx, actorFrom(ctx), studentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Student deleted"))
}

// --- Organization admins ---

// CreateOrgAdmin provisions a signatory for an organization
// @Summary Create an organization admin
// @Tags mis
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateOrgAdminRequest true "Signatory information"
// @Success 201 {object} dto.APIResponse{data=dto.OrgAdminResponse}
// @Failure 422 {object} dto.ErrorResponse "Organization already has an admin"
// @Router /mis/org-admins [post]
func (c *MISController) CreateOrgAdmin(ctx *gin.Context) {
	var req dto.CreateOrgAdminRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.misService.CreateOrgAdmin(ctx, actorFrom(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(resp))
}

// ListOrgAdmins retrieves every signatory
// @Summary List organization admins
// @Tags mis
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.OrgAdminResponse}
// @Router /mis/org-admins [get]
func (c *MISController) ListOrgAdmins(ctx *gin.Context) {
	resp, err := c.misService.ListOrgAdmins(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// GetOrgAdmin retrieves one signatory profile
// @Summary Get an organization admin
// @Tags mis
// @Produce json
// @Security BearerAuth
// @Param id path int true "Admin ID"
// @Success 200 {object} dto.APIResponse{data=models.OrganizationAdmin}
// @Failure 404 {object} dto.ErrorResponse "Admin not found"
// @Router /mis/org-admins/{id} [get]
func (c *MISController) GetOrgAdmin(ctx *gin.Context) {
	adminID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	admin, err := c.misService.GetOrgAdmin(ctx, adminID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(admin))
}

// UpdateOrgAdmin applies a partial signatory update
// @Summary Update an organization admin
// @Tags mis
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Admin ID"
// @Param request body dto.UpdateOrgAdminRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse
// @Router /mis/org-admins/{id} [put]
func (c *MISController) UpdateOrgAdmin(ctx *gin.Context) {
	adminID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateOrgAdminRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.misService.UpdateOrgAdmin(ctx, actorFrom(ctx), adminID, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Organization admin updated"))
}

// DeleteOrgAdmin removes a signatory account
// @Summary Delete an organization admin
// @Tags mis
// @Produce json
// @Security BearerAuth
// @Param id path int true "Admin ID"
// @Success 200 {object} dto.APIResponse
// @Router /mis/org-admins/{id} [delete]
func (c *MISController) DeleteOrgAdmin(ctx *gin.Context) {
	adminID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.misService.DeleteOrgAdmin(ctx, actorFrom(ctx), adminID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Organization admin deleted"))
}

// --- System admins ---

// CreateSysAdmin provisions an administrator account
// @Summary Create a system admin
// @Tags mis
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateSysAdminRequest true "Administrator information"
// @Success 201 {object} dto.APIResponse{data=dto.SysAdminResponse}
// @Router /mis/sys-admins [post]
func (c *MISController) CreateSysAdmin(ctx *gin.Context) {
	var req dto.CreateSysAdminRequest
	if !bindJSON(ctx, &req) {
		return
	}

	resp, err := c.misService.CreateSysAdmin(ctx, actorFrom(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(resp))
}

// ListSysAdmins retrieves every administrator
// @Summary List system admins
// @Tags mis
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.SysAdminResponse}
// @Router /mis/sys-admins [get]
func (c *MISController) ListSysAdmins(ctx *gin.Context) {
	resp, err := c.misService.ListSysAdmins(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// GetSysAdmin retrieves one administrator profile
// @Summary Get a system admin
// @Tags mis
// @Produce json
// @Security BearerAuth
// @Param id path int true "Admin ID"
// @Success 200 {object} dto.APIResponse{data=models.SystemAdmin}
// @Failure 404 {object} dto.ErrorResponse "Admin not found"
// @Router /mis/sys-admins/{id} [get]
func (c *MISController) GetSysAdmin(ctx *gin.Context) {
	adminID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	admin, err := c.misService.GetSysAdmin(ctx, adminID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(admin))
}

// UpdateSysAdmin applies a partial administrator update
// @Summary Update a system admin
// @Tags mis
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Admin ID"
// @Param request body dto.UpdateSysAdminRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse
// @Router /mis/sys-admins/{id} [put]
func (c *MISController) UpdateSysAdmin(ctx *gin.Context) {
	adminID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateSysAdminRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.misService.UpdateSysAdmin(ctx, actorFrom(ctx), adminID, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("System admin updated"))
}

// DeleteSysAdmin removes an administrator account
// @Summary Delete a system admin
// @Tags mis
// @Produce json
// @Security BearerAuth
// @Param id path int true "Admin ID"
// @Success 200 {object} dto.APIResponse
// @Failure 422 {object} dto.ErrorResponse "Cannot delete own account"
// @Router /mis/sys-admins/{id} [delete]
func (c *MISController) DeleteSysAdmin(ctx *gin.Context) {
	adminID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.misService.DeleteSysAdmin(ctx, actorFrom(ctx), adminID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("System admin deleted"))
}

// --- Organizations ---

// CreateOrganization registers a signing office
// @Summary Create an organization
// @Tags mis
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateOrganizationRequest true "Organization information"
// @Success 201 {object} dto.APIResponse{data=models.Organization}
// @Failure 409 {object} dto.ErrorResponse "Organization code already exists"
// @Router /mis/organizations [post]
func (c *MISController) CreateOrganization(ctx *gin.Context) {
	var req dto.CreateOrganizationRequest
	if !bindJSON(ctx, &req) {
		return
	}

	org, err := c.misService.CreateOrganization(ctx, actorFrom(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(org))
}

// ListOrganizations retrieves every organization
// @Summary List organizations
// @Tags mis
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Organization}
// @Router /mis/organizations [get]
func (c *MISController) ListOrganizations(ctx *gin.Context) {
	orgs, err := c.misService.ListOrganizations(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(orgs))
}

// GetOrganization retrieves one organization
// @Summary Get an organization
// @Tags mis
// @Produce json
// @Security BearerAuth
// @Param id path int true "Organization ID"
// @Success 200 {object} dto.APIResponse{data=models.Organization}
// @Router /mis/organizations/{id} [get]
func (c *MISController) GetOrganization(ctx *gin.Context) {
	orgID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	org, err := c.misService.GetOrganization(ctx, orgID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(org))
}

// UpdateOrganization applies a partial organization update
// @Summary Update an organization
// @Tags mis
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Organization ID"
// @Param request body dto.UpdateOrganizationRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Organization}
// @Router /mis/organizations/{id} [put]
func (c *MISController) UpdateOrganization(ctx *gin.Context) {
	orgID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateOrganizationRequest
	if !bindJSON(ctx, &req) {
		return
	}

	org, err := c.misService.UpdateOrganization(ctx, actorFrom(ctx), orgID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(org))
}

// DeleteOrganization removes a signing office
// @Summary Delete an organization
// @Tags mis
// @Produce json
// @Security BearerAuth
// @Param id path int true "Organization ID"
// @Success 200 {object} dto.APIResponse
// @Failure 422 {object} dto.ErrorResponse "Organization has an admin or clearance data"
// @Router /mis/organizations/{id} [delete]
func (c *MISController) DeleteOrganization(ctx *gin.Context) {
	orgID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.misService.DeleteOrganization(ctx, actorFrom(ctx), orgID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Organization deleted"))
}

// --- Academic terms ---

// CreateTerm registers an academic term
// @Summary Create an academic term
// @Tags mis
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTermRequest true "Term information"
// @Success 201 {object} dto.APIResponse{data=models.AcademicTerm}
// @Router /mis/terms [post]
func (c *MISController) CreateTerm(ctx *gin.Context) {
	var req dto.CreateTermRequest
	if !bindJSON(ctx, &req) {
		return
	}

	term, err := c.misService.CreateTerm(ctx, actorFrom(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(term))
}

// ListTerms retrieves every academic term
// @Summary List academic terms
// @Tags mis
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.AcademicTerm}
// @Router /mis/terms [get]
func (c *MISController) ListTerms(ctx *gin.Context) {
	terms, err := c.misService.ListTerms(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(terms))
}

// GetTerm retrieves one academic term
// @Summary Get an academic term
// @Tags mis
// @Produce json
// @Security BearerAuth
// @Param id path int true "Term ID"
// @Success 200 {object} dto.APIResponse{data=models.AcademicTerm}
// @Failure 404 {object} dto.ErrorResponse "Term not found"
// @Router /mis/terms/{id} [get]
func (c *MISController) GetTerm(ctx *gin.Context) {
	termID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	term, err := c.misService.GetTerm(ctx, termID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(term))
}

// UpdateTerm applies a partial term update
// @Summary Update an academic term
// @Tags mis
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Term ID"
// @Param request body dto.UpdateTermRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.AcademicTerm}
// @Router /mis/terms/{id} [put]
func (c *MISController) UpdateTerm(ctx *gin.Context) {
	termID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateTermRequest
	if !bindJSON(ctx, &req) {
		return
	}

	term, err := c.misService.UpdateTerm(ctx, actorFrom(ctx), termID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(term))
}

// SetCurrentTerm promotes one term to current
// @Summary Set the current term
// @Tags mis
// @Produce json
// @Security BearerAuth
// @Param id path int true "Term ID"
// @Success 200 {object} dto.APIResponse
// @Router /mis/terms/{id}/set-current [post]
func (c *MISController) SetCurrentTerm(ctx *gin.Context) {
	termID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.misService.SetCurrentTerm(ctx, actorFrom(ctx), termID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Current term updated"))
}

// DeleteTerm removes an academic term
// @Summary Delete an academic term
// @Tags mis
// @Produce json
// @Security BearerAuth
// @Param id path int true "Term ID"
// @Success 200 {object} dto.APIResponse
// @Failure 422 {object} dto.ErrorResponse "Term is current or has clearances"
// @Router /mis/terms/{id} [delete]
func (c *MISController) DeleteTerm(ctx *gin.Context) {
	termID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.misService.DeleteTerm(ctx, actorFrom(ctx), termID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Academic term deleted"))
}

// GenerateClearances creates the term's missing clearances and items
// @Summary Generate clearances for a term
// @Tags mis
// @Produce json
// @Security BearerAuth
// @Param id path int true "Term ID"
// @Success 200 {object} dto.APIResponse{data=dto.GenerateClearancesResponse}
// @Router /mis/terms/{id}/generate-clearances [post]
func (c *MISController) GenerateClearances(ctx *gin.Context) {
	termID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	resp, err := c.misService.GenerateClearances(ctx, actorFrom(ctx), termID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(resp))
}

// --- Clearance monitoring ---

// ListClearances retrieves the monitoring list
// @Summary List clearances
// @Tags mis
// @Produce json
// @Security BearerAuth
// @Param term_id query int false "Filter by term"
// @Param status query string false "Filter by overall status" Enums(pending, incomplete, approved)
// @Param search query string false "Search student number or name"
// @Param page query int false "Page number"
// @Param per_page query int false "Rows per page"
// @Success 200 {object} dto.PagedResponse{data=[]dto.ClearanceMonitorRow}
// @Router /mis/clearances [get]
func (c *MISController) ListClearances(ctx *gin.Context) {
	var req dto.ClearanceListFilter
	if err := ctx.ShouldBindQuery(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid filter parameters").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := c.misService.ListClearances(ctx, repositories.MonitorFilter{
		TermID:  req.TermID,
		Status:  req.Status,
		Search:  req.Search,
		Page:    req.Page,
		PerPage: req.PerPage,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetClearance retrieves one clearance
// @Summary Get a clearance
// @Tags mis
// @Produce json
// @Security BearerAuth
// @Param id path int true "Clearance ID"
// @Success 200 {object} dto.APIResponse{data=models.StudentClearance}
// @Router /mis/clearances/{id} [get]
func (c *MISController) GetClearance(ctx *gin.Context) {
	clearanceID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	clearance, err := c.misService.GetClearance(ctx, clearanceID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(clearance))
}

// GetClearanceItems retrieves the items of one clearance
// @Summary Get clearance items
// @Tags mis
// @Produce json
// @Security BearerAuth
// @Param id path int true "Clearance ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.StudentClearanceItem}
// @Router /mis/clearances/{id}/items [get]
func (c *MISController) GetClearanceItems(ctx *gin.Context) {
	clearanceID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	items, err := c.misService.GetClearanceItems(ctx, clearanceID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(items))
}

// SetClearanceLock toggles the lock flag of a clearance
// @Summary Lock or unlock a clearance
// @Tags mis
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Clearance ID"
// @Param request body dto.LockClearanceRequest true "Lock flag"
// @Success 200 {object} dto.APIResponse
// @Router /mis/clearances/{id}/lock [patch]
func (c *MISController) SetClearanceLock(ctx *gin.Context) {
	clearanceID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.LockClearanceRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.misService.SetClearanceLock(ctx, actorFrom(ctx), clearanceID, *req.IsLocked); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	message := "Clearance unlocked"
	if *req.IsLocked {
		message = "Clearance locked"
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse(message))
}

// StatsByOrganization aggregates item statuses per organization
// @Summary Clearance statistics by organization
// @Tags mis
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.OrganizationClearanceStats}
// @Router /mis/clearances/stats-by-organization [get]
func (c *MISController) StatsByOrganization(ctx *gin.Context) {
	stats, err := c.misService.StatsByOrganization(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(stats))
}

// --- Audit logs ---

// ListAuditLogs retrieves audit entries, filtered and paginated
// @Summary List audit logs
// @Tags mis
// @Produce json
// @Security BearerAuth
// @Param action_type query string false "Filter by action" Enums(create, update, delete, login, logout)
// @Param table_name query string false "Filter by table"
// @Param date_from query string false "Start date (YYYY-MM-DD)"
// @Param date_to query string false "End date (YYYY-MM-DD)"
// @Param page query int false "Page number"
// @Param per_page query int false "Rows per page"
// @Success 200 {object} dto.PagedResponse{data=[]dto.AuditLogResponse}
// @Router /mis/audit-logs [get]
func (c *MISController) ListAuditLogs(ctx *gin.Context) {
	var req dto.AuditLogFilter
	if err := ctx.ShouldBindQuery(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid filter parameters").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := c.auditService.List(ctx, repositories.AuditFilter{
		ActionType: req.ActionType,
		TableName:  req.TableName,
		DateFrom:   req.DateFrom,
		DateTo:     req.DateTo,
		Page:       req.Page,
		PerPage:    req.PerPage,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ListUserAuditLogs retrieves one user's audit entries
// @Summary List a user's audit logs
// @Tags mis
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param page query int false "Page number"
// @Param per_page query int false "Rows per page"
// @Success 200 {object} dto.PagedResponse{data=[]dto.AuditLogResponse}
// @Router /mis/audit-logs/user/{id} [get]
func (c *MISController) ListUserAuditLogs(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.AuditLogFilter
	if err := ctx.ShouldBindQuery(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid filter parameters").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	resp, err := c.auditService.ListByUser(ctx, userID, req.Page, req.PerPage)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// AuditStats aggregates audit activity
// @Summary Audit log statistics
// @Tags mis
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.AuditStatsResponse}
// @Router /mis/audit-logs/stats [get]
func (c *MISController) AuditStats(ctx *gin.Context) {
	stats, err := c.auditService.Stats(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(stats))
}
