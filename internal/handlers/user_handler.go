// internal/handlers/user_handler.go
package handlers

import (
	"net/http"

	"github.com/LrenceLapating/Pathfinder/internal/middleware"
	"github.com/LrenceLapating/Pathfinder/internal/service"
	"github.com/LrenceLapating/Pathfinder/internal/webutil"
)

type UserHandler struct {
	authService   service.AuthService
	courseService service.CourseService
}

func NewUserHandler(authService service.AuthService, courseService service.CourseService) *UserHandler {
	return &UserHandler{authService: authService, courseService: courseService}
}

// GetMe は認証済みユーザー自身のプロフィールとロール詳細を返します
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	current, err := h.authService.GetCurrentUser(r.Context(), userID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":        true,
		"user":           current.Profile,
		"studentDetails": current.StudentDetails,
		"teacherDetails": current.TeacherDetails,
	}, logger)
}

// GetMyProgress は認証済みユーザーの受講状況と進捗を返します
func (h *UserHandler) GetMyProgress(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	progress, err := h.courseService.GetUserProgress(r.Context(), userID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"enrollments": progress.Enrollments,
		"progress":    progress.Progress,
	}, logger)
}
