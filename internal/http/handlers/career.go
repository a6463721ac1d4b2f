package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/careermap-backend/internal/http/response"
	"github.com/yungbote/careermap-backend/internal/services"
)

type CareerHandler struct {
	careerService services.CareerService
}

func NewCareerHandler(careerService services.CareerService) *CareerHandler {
	return &CareerHandler{careerService: careerService}
}

// GET /api/career?career=<name>&regenerate=<bool>
func (ch *CareerHandler) GetCareer(c *gin.Context) {
	resp, err := ch.careerService.Get(c.Request.Context(), c.Query("career"), regenerateParam(c))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, resp)
}

// Only the literal "true" forces regeneration.
func regenerateParam(c *gin.Context) bool {
	return c.Query("regenerate") == "true"
}
