package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mnogodumalon/kurs40/internal/app/models/dto"
	"github.com/mnogodumalon/kurs40/internal/pkg/apperrors"
)

// --- Central Error Handling ---

// HandleAPIError maps the error taxonomy onto HTTP responses. Every
// failure is terminal for that one user action; there is no retry logic
// here or anywhere else, the user retries manually.
func HandleAPIError(c *gin.Context, err error) {
	var apiErr *apperrors.APIError

	switch {
	case errors.Is(err, apperrors.ErrValidationFailed):
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error())
		var custom *apperrors.CustomError
		if errors.As(err, &custom) && custom.Field != "" {
			detail = detail.WithField(custom.Field)
		}
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))

	case errors.Is(err, apperrors.ErrUnknownKind):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnknownKind, "Unknown resource kind")))

	case errors.Is(err, apperrors.ErrResourceNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Resource not found")))

	case errors.As(err, &apiErr):
		if apiErr.Status == http.StatusNotFound {
			c.JSON(http.StatusNotFound, dto.NewErrorResponse(
				dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Record not found in record store")))
			return
		}
		c.JSON(http.StatusBadGateway, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeRecordStore, "Record store rejected the request").
				WithDetails(gin.H{"remoteStatus": apiErr.Status})))

	case errors.Is(err, apperrors.ErrTransport):
		c.JSON(http.StatusBadGateway, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnreachable, "Record store unreachable")))

	default:
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
	}
}
