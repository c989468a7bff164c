package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/eduflow-api/internal/scope"
	"github.com/noah-isme/eduflow-api/internal/service"
	appErrors "github.com/noah-isme/eduflow-api/pkg/errors"
	"github.com/noah-isme/eduflow-api/pkg/response"
)

// ActivityHandler wires HTTP endpoints to the class activity service.
type ActivityHandler struct {
	service *service.ActivityService
}

// NewActivityHandler creates a new handler.
func NewActivityHandler(svc *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: svc}
}

func activityQueryFromRequest(c *gin.Context) (scope.ActivityQuery, error) {
	query := scope.ActivityQuery{
		Department: c.Query("department"),
		Instructor: c.Query("instructor"),
		Section:    c.Query("section"),
	}
	if raw := c.Query("startDate"); raw != "" {
		start, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return query, appErrors.Clone(appErrors.ErrValidation, "startDate must be YYYY-MM-DD")
		}
		query.StartDate = start
	}
	if raw := c.Query("endDate"); raw != "" {
		end, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return query, appErrors.Clone(appErrors.ErrValidation, "endDate must be YYYY-MM-DD")
		}
		query.EndDate = end
	}
	return query, nil
}

// List godoc
// @Summary List class activities
// @Description Activities inside the caller's scope; filters only narrow
// @Tags Activities
// @Produce json
// @Param startDate query string false "Window start (YYYY-MM-DD, inclusive)"
// @Param endDate query string false "Window end (YYYY-MM-DD, inclusive)"
// @Param department query string false "Department code"
// @Param instructor query string false "Instructor name, exact match"
// @Param section query string false "Section letter"
// @Success 200 {object} response.Envelope
// @Router /class-activities [get]
func (h *ActivityHandler) List(c *gin.Context) {
	query, err := activityQueryFromRequest(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	activities, err := h.service.List(c.Request.Context(), actorFromContext(c), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, activities)
}

// Instructors godoc
// @Summary List filterable instructor names
// @Tags Activities
// @Produce json
// @Param department query string false "Selected department"
// @Success 200 {object} response.Envelope
// @Router /class-activities/instructors [get]
func (h *ActivityHandler) Instructors(c *gin.Context) {
	names, err := h.service.Instructors(c.Request.Context(), actorFromContext(c), c.Query("department"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, names)
}

// Create godoc
// @Summary Log class activity
// @Tags Activities
// @Accept json
// @Produce json
// @Param payload body service.ActivityInput true "Activity payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /class-activities [post]
func (h *ActivityHandler) Create(c *gin.Context) {
	var input service.ActivityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid activity payload"))
		return
	}

	activity, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, activity)
}

// Delete godoc
// @Summary Delete class activity
// @Tags Activities
// @Param id path string true "Activity ID"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /class-activities/{id} [delete]
func (h *ActivityHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
