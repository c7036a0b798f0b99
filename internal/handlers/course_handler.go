// internal/handlers/course_handler.go
package handlers

import (
	"net/http"

	"github.com/LrenceLapating/Pathfinder/internal/middleware"
	"github.com/LrenceLapating/Pathfinder/internal/model"
	"github.com/LrenceLapating/Pathfinder/internal/service"
	"github.com/LrenceLapating/Pathfinder/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type CourseHandler struct {
	service service.CourseService
}

func NewCourseHandler(s service.CourseService) *CourseHandler {
	return &CourseHandler{service: s}
}

// ListCourses は公開中のコース一覧を返します
func (h *CourseHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	courses, err := h.service.ListCourses(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"courses": courses,
	}, logger)
}

// GetCourse はコース詳細（レッスン込み）を返します
func (h *CourseHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	courseID, err := uuid.Parse(chi.URLParam(r, "course_id"))
	if err != nil {
		appErr := model.NewAppError("INVALID_REQUEST", "Invalid course ID", "course_id", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	course, err := h.service.GetCourse(r.Context(), courseID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"course":  course,
	}, logger)
}
