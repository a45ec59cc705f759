package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/uniadmin/internal/app/models/dto"
	"github.com/yigit/uniadmin/internal/app/models/dto/enums"
	"github.com/yigit/uniadmin/internal/pkg/apperrors"
)

// ErrorTemplate is the name of the shared problem page template
const ErrorTemplate = "error"

// --- Central Error Handling ---

// HandlePageError renders the problem page matching err. It is the single
// place mapping application errors to HTTP statuses.
func HandlePageError(c *gin.Context, err error) {
	page := ErrorPageFor(err)

	log := Logger(c)
	var event *zerolog.Event
	switch page.Status {
	case http.StatusNotFound, http.StatusBadRequest:
		event = log.Debug()
	default:
		event = log.Error()
	}
	event.Err(err).Int("status", page.Status).Str("path", c.Request.URL.Path).Msg("Request failed")

	RenderErrorPage(c, page)
}

// ErrorPageFor maps an error onto the problem page shown to the user
func ErrorPageFor(err error) dto.ErrorPage {
	switch {
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return dto.NewErrorPage(http.StatusNotFound, enums.ErrorCodeResourceNotFound, notFoundMessage(err))
	case errors.Is(err, apperrors.ErrBadRequest):
		return dto.NewErrorPage(http.StatusBadRequest, enums.ErrorCodeBadRequest, "The request could not be processed. Reload the page and try again.")
	case errors.Is(err, apperrors.ErrValidationFailed):
		return dto.NewErrorPage(http.StatusBadRequest, enums.ErrorCodeValidationFailed, err.Error())
	case errors.Is(err, apperrors.ErrStorageUnavailable):
		return dto.NewErrorPage(http.StatusServiceUnavailable, enums.ErrorCodeStorageUnavailable, "The database is currently unavailable. Try again later.")
	case errors.Is(err, apperrors.ErrStorageConflict):
		return dto.NewErrorPage(http.StatusConflict, enums.ErrorCodeStorageConflict, apperrors.SaveFailedMessage)
	default:
		return dto.NewErrorPage(http.StatusInternalServerError, enums.ErrorCodeInternalServer, "An error occurred while processing your request.")
	}
}

func notFoundMessage(err error) string {
	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		return custom.Message
	}
	return "The requested resource was not found."
}

// RenderErrorPage writes page with its status and aborts the chain
func RenderErrorPage(c *gin.Context, page dto.ErrorPage) {
	page.RequestID = c.GetString(RequestIDKey)
	c.HTML(page.Status, ErrorTemplate, ViewData(c, page))
	c.Abort()
}

// NotFound renders the 404 page for unknown routes
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		RenderErrorPage(c, dto.NewErrorPage(http.StatusNotFound, enums.ErrorCodeResourceNotFound, "The requested page was not found."))
	}
}

// Recovery renders the 500 page when a handler panics
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		Logger(c).Error().Interface("panic", recovered).Str("path", c.Request.URL.Path).Msg("Recovered from panic")
		RenderErrorPage(c, dto.NewErrorPage(http.StatusInternalServerError, enums.ErrorCodeInternalServer, "An error occurred while processing your request."))
	})
}
