package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/practice-backend/internal/http/response"
	"github.com/yungbote/practice-backend/internal/modules/proficiency"
	"github.com/yungbote/practice-backend/internal/platform/logger"
)

type ProficiencyHandler struct {
	log         *logger.Logger
	proficiency *proficiency.Propagator
}

func NewProficiencyHandler(log *logger.Logger, p *proficiency.Propagator) *ProficiencyHandler {
	return &ProficiencyHandler{log: log.With("handler", "ProficiencyHandler"), proficiency: p}
}

// GET /api/proficiency
func (h *ProficiencyHandler) ListMine(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	snap, err := h.proficiency.ListProficiency(c.Request.Context(), userID)
	if err != nil {
		h.log.Error("list proficiency failed", "user_id", userID, "error", err)
		response.RespondError(c, http.StatusInternalServerError, "list_proficiency_failed", err)
		return
	}
	response.RespondOK(c, snap)
}
