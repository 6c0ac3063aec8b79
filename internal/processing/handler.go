package processing

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"learnanything-backend/internal/documents"
	"learnanything-backend/internal/shared/server/middleware"
	"learnanything-backend/internal/shared/server/respond"
)

// GenerateRequest optionally overrides generation defaults for one run.
type GenerateRequest struct {
	NumQuestions int    `json:"numQuestions"`
	Difficulty   string `json:"difficulty"`
}

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches processing routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/documents/:id/generate", h.generate)
}

func (h *Handler) generate(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	documentID := c.Param("id")

	var req GenerateRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
			return
		}
	}
	if req.NumQuestions < 0 || req.NumQuestions > 50 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "numQuestions must be between 1 and 50", nil)
		return
	}
	switch req.Difficulty {
	case "", "easy", "medium", "hard":
	default:
		respond.Error(c, http.StatusBadRequest, "validation_error", "difficulty must be easy, medium or hard", nil)
		return
	}

	err := h.Svc.Start(c.Request.Context(), userID, documentID, Options{
		NumQuestions: req.NumQuestions,
		Difficulty:   req.Difficulty,
	})
	if err != nil {
		switch {
		case errors.Is(err, documents.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		case errors.Is(err, documents.ErrStatusConflict):
			respond.Error(c, http.StatusConflict, "processing_in_progress", "document is already being processed", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to start processing", nil)
		}
		return
	}

	c.Set("documentId", documentID)
	respond.JSON(c, http.StatusAccepted, gin.H{
		"documentId": documentID,
		"status":     string(documents.StatusProcessing),
	})
}
