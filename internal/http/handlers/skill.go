package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/careermap-backend/internal/http/response"
	"github.com/yungbote/careermap-backend/internal/modules/graph"
	"github.com/yungbote/careermap-backend/internal/services"
)

type SkillHandler struct {
	skillService services.SkillService
}

func NewSkillHandler(skillService services.SkillService) *SkillHandler {
	return &SkillHandler{skillService: skillService}
}

// GET /api/skill/learning?skill=<name>&regenerate=<bool>
func (sh *SkillHandler) GetLearning(c *gin.Context) {
	resp, err := sh.skillService.Learning(c.Request.Context(), c.Query("skill"), regenerateParam(c))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, resp)
}

type skillCareersResponse struct {
	Careers []graph.CareerView `json:"careers"`
}

// GET /api/skill/careers?skill=<id>
func (sh *SkillHandler) GetCareers(c *gin.Context) {
	careers, err := sh.skillService.Careers(c.Request.Context(), c.Query("skill"))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	if careers == nil {
		careers = []graph.CareerView{}
	}
	response.RespondOK(c, skillCareersResponse{Careers: careers})
}
