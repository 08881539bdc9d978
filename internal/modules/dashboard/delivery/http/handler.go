package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pkfit.com.br/pkfitsystem/internal/entity"
	"pkfit.com.br/pkfitsystem/internal/modules/dashboard/dto"
	dashboardService "pkfit.com.br/pkfitsystem/internal/modules/dashboard/service"
	userRepo "pkfit.com.br/pkfitsystem/internal/modules/user/repository"
	workoutRepo "pkfit.com.br/pkfitsystem/internal/modules/workout/repository"
	"pkfit.com.br/pkfitsystem/pkg/apperror"
	"pkfit.com.br/pkfitsystem/pkg/response"
	"pkfit.com.br/pkfitsystem/pkg/validator"
)

type DashboardHandler struct {
	dashboardService dashboardService.DashboardService
}

func NewDashboardHandler(dashboardService dashboardService.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// academyID resolves the caller's tenant. Academy-dashboard routes are only
// meaningful for users linked to an academy.
func academyID(c *gin.Context) (uuid.UUID, error) {
	user, err := response.CurrentUser(c)
	if err != nil {
		return uuid.Nil, err
	}

	if user.AcademyID == nil {
		return uuid.Nil, apperror.BadRequest("user is not linked to an academy")
	}

	return *user.AcademyID, nil
}

func pathID(c *gin.Context, message string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": message})
		return uuid.Nil, false
	}
	return id, true
}

func (h *DashboardHandler) Stats(c *gin.Context) {
	tenantID, err := academyID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	stats, err := h.dashboardService.Stats(c.Request.Context(), tenantID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, stats)
}

func (h *DashboardHandler) Activity(c *gin.Context) {
	tenantID, err := academyID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	activity, err := h.dashboardService.RecentActivity(c.Request.Context(), tenantID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, activity)
}

func (h *DashboardHandler) ListMembers(c *gin.Context) {
	tenantID, err := academyID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var filter userRepo.MemberFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": validator.FormatValidationError(err)})
		return
	}

	members, err := h.dashboardService.ListMembers(c.Request.Context(), tenantID, filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, members)
}

func (h *DashboardHandler) CreateMember(c *gin.Context) {
	tenantID, err := academyID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input dto.CreateMemberInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": validator.FormatValidationError(err)})
		return
	}

	member, err := h.dashboardService.CreateMember(c.Request.Context(), tenantID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, member)
}

func (h *DashboardHandler) UpdateMember(c *gin.Context) {
	tenantID, err := academyID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	userID, ok := pathID(c, "invalid user id")
	if !ok {
		return
	}

	var input dto.UpdateMemberInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": validator.FormatValidationError(err)})
		return
	}

	member, err := h.dashboardService.UpdateMember(c.Request.Context(), tenantID, userID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, member)
}

func (h *DashboardHandler) DeleteMember(c *gin.Context) {
	tenantID, err := academyID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	userID, ok := pathID(c, "invalid user id")
	if !ok {
		return
	}

	if err := h.dashboardService.DeleteMember(c.Request.Context(), tenantID, userID); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, "user removed successfully")
}

func (h *DashboardHandler) ListProfessors(c *gin.Context) {
	tenantID, err := academyID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	professors, err := h.dashboardService.ListProfessors(c.Request.Context(), tenantID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, professors)
}

func (h *DashboardHandler) ListWorkouts(c *gin.Context) {
	tenantID, err := academyID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var filter workoutRepo.Filter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": validator.FormatValidationError(err)})
		return
	}

	workouts, err := h.dashboardService.ListWorkouts(c.Request.Context(), tenantID, filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, workouts)
}

func (h *DashboardHandler) CreateWorkout(c *gin.Context) {
	tenantID, err := academyID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input dto.CreateWorkoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": validator.FormatValidationError(err)})
		return
	}

	workout, err := h.dashboardService.CreateWorkout(c.Request.Context(), tenantID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, workout)
}

func (h *DashboardHandler) UpdateWorkout(c *gin.Context) {
	tenantID, err := academyID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	workoutID, ok := pathID(c, "invalid workout id")
	if !ok {
		return
	}

	var input dto.UpdateWorkoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": validator.FormatValidationError(err)})
		return
	}

	workout, err := h.dashboardService.UpdateWorkout(c.Request.Context(), tenantID, workoutID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, workout)
}

func (h *DashboardHandler) DeleteWorkout(c *gin.Context) {
	tenantID, err := academyID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	workoutID, ok := pathID(c, "invalid workout id")
	if !ok {
		return
	}

	if err := h.dashboardService.DeleteWorkout(c.Request.Context(), tenantID, workoutID); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, "workout removed successfully")
}

func (h *DashboardHandler) ListRequests(c *gin.Context) {
	tenantID, err := academyID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	// Pending requests are the actionable ones; that is the default view.
	status := c.DefaultQuery("status", string(entity.RequestPending))

	requests, err := h.dashboardService.ListRequests(c.Request.Context(), tenantID, status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, requests)
}

func (h *DashboardHandler) ProcessRequest(c *gin.Context) {
	tenantID, err := academyID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	requestID, ok := pathID(c, "invalid request id")
	if !ok {
		return
	}

	var input dto.ProcessRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": validator.FormatValidationError(err)})
		return
	}

	request, err := h.dashboardService.ProcessRequest(c.Request.Context(), tenantID, requestID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, request)
}

func (h *DashboardHandler) GetAcademy(c *gin.Context) {
	tenantID, err := academyID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	academy, err := h.dashboardService.GetAcademy(c.Request.Context(), tenantID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, academy)
}

func (h *DashboardHandler) UpdateAcademy(c *gin.Context) {
	tenantID, err := academyID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var input dto.UpdateAcademyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": validator.FormatValidationError(err)})
		return
	}

	academy, err := h.dashboardService.UpdateAcademy(c.Request.Context(), tenantID, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, academy)
}

func (h *DashboardHandler) UploadLogo(c *gin.Context) {
	tenantID, err := academyID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	fileHeader, err := c.FormFile("logo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "logo file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "failed to read logo file"})
		return
	}
	defer file.Close()

	academy, err := h.dashboardService.UploadLogo(c.Request.Context(), tenantID, file, fileHeader.Filename)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, academy)
}
