package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pkfit.com.br/pkfitsystem/internal/modules/academy/dto"
	academyService "pkfit.com.br/pkfitsystem/internal/modules/academy/service"
	"pkfit.com.br/pkfitsystem/pkg/response"
	"pkfit.com.br/pkfitsystem/pkg/validator"
)

type AcademyHandler struct {
	academyService academyService.AcademyService
}

func NewAcademyHandler(academyService academyService.AcademyService) *AcademyHandler {
	return &AcademyHandler{
		academyService: academyService,
	}
}

func (h *AcademyHandler) List(c *gin.Context) {
	academies, err := h.academyService.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, academies)
}

func (h *AcademyHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid academy id"})
		return
	}

	academy, err := h.academyService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, academy)
}

func (h *AcademyHandler) Create(c *gin.Context) {
	var input dto.CreateAcademyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": validator.FormatValidationError(err)})
		return
	}

	result, err := h.academyService.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

func (h *AcademyHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid academy id"})
		return
	}

	var input dto.UpdateAcademyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": validator.FormatValidationError(err)})
		return
	}

	academy, err := h.academyService.Update(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, academy)
}

func (h *AcademyHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid academy id"})
		return
	}

	if err := h.academyService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, "academy removed successfully")
}
