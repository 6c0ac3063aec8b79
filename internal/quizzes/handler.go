package quizzes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"learnanything-backend/internal/shared/server/middleware"
	"learnanything-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches quiz routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/quizzes", h.list)
	rg.GET("/quizzes/:id", h.get)
	rg.GET("/documents/:id/quizzes", h.listByDocument)
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	quizID := c.Param("id")

	quiz, err := h.Svc.Get(c.Request.Context(), userID, quizID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "quiz not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch quiz", nil)
		}
		return
	}

	c.Set("quizId", quiz.ID)
	respond.JSON(c, http.StatusOK, toResponse(quiz))
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	limit := 0
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}

	list, err := h.Svc.ListByUser(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list quizzes", nil)
		return
	}

	resp := make([]QuizSummaryResponse, 0, len(list))
	for _, quiz := range list {
		resp = append(resp, toSummary(quiz))
	}
	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) listByDocument(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	documentID := c.Param("id")

	list, err := h.Svc.ListByDocument(c.Request.Context(), userID, documentID)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list quizzes", nil)
		}
		return
	}

	resp := make([]QuizSummaryResponse, 0, len(list))
	for _, quiz := range list {
		resp = append(resp, toSummary(quiz))
	}

	c.Set("documentId", documentID)
	respond.JSON(c, http.StatusOK, resp)
}
