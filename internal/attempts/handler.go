package attempts

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

// RegisterRoutes attaches attempt routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/quizzes/:id/attempts", h.submit)
	rg.GET("/quizzes/:id/attempts", h.listByQuiz)
	rg.GET("/attempts", h.list)
}

func (h *Handler) submit(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	quizID := c.Param("id")

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	attempt, err := h.Svc.Submit(c.Request.Context(), userID, quizID, req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, ErrQuizNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "quiz not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to record attempt", nil)
		}
		return
	}

	c.Set("quizId", quizID)
	respond.Created(c, toResponse(attempt))
}

func (h *Handler) listByQuiz(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	quizID := c.Param("id")

	list, err := h.Svc.ListByQuiz(c.Request.Context(), userID, quizID)
	if err != nil {
		switch {
		case errors.Is(err, ErrQuizNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "quiz not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list attempts", nil)
		}
		return
	}

	resp := make([]AttemptResponse, 0, len(list))
	for _, attempt := range list {
		resp = append(resp, toResponse(attempt))
	}

	c.Set("quizId", quizID)
	respond.JSON(c, http.StatusOK, resp)
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
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list attempts", nil)
		return
	}

	resp := make([]AttemptResponse, 0, len(list))
	for _, attempt := range list {
		resp = append(resp, toResponse(attempt))
	}
	respond.JSON(c, http.StatusOK, resp)
}
