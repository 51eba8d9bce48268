package apperrors

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Error *AppError `json:"error"`
}

// HandleError пишет ошибку в ответ gin в едином формате.
// Все, что не является *AppError, заворачивается в INTERNAL с кодом 500.
func HandleError(c *gin.Context, err error) {
	var appErr *AppError
	if !As(err, &appErr) {
		appErr = InternalError(err)
	}

	if appErr.HTTPCode >= 500 {
		slog.Error("server error", "error", appErr.Unwrap())
	}

	c.JSON(appErr.HTTPCode, errorResponse{Error: appErr})
}
