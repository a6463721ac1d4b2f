package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/careermap-backend/internal/http/response"
	"github.com/yungbote/careermap-backend/internal/services"
)

type GraphHandler struct {
	graphService services.GraphService
}

func NewGraphHandler(graphService services.GraphService) *GraphHandler {
	return &GraphHandler{graphService: graphService}
}

// GET /api/graph?center=<nodeId>
// Resolution failures degrade inside the service, so this never errors.
func (gh *GraphHandler) GetGraph(c *gin.Context) {
	response.RespondOK(c, gh.graphService.Neighborhood(c.Request.Context(), c.Query("center")))
}
