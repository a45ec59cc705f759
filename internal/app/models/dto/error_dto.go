package dto

import (
	"net/http"

	"github.com/yigit/uniadmin/internal/app/models/dto/enums"
)

// ErrorPage is the view model of the shared problem page
type ErrorPage struct {
	Status    int             // HTTP status sent with the page
	Code      enums.ErrorCode // Standardized error code
	Title     string          // Short heading
	Message   string          // Message safe to show to the user
	RequestID string          // Request ID from the logger middleware, if any
}

// NewErrorPage creates a problem page view model with a title derived from status
func NewErrorPage(status int, code enums.ErrorCode, message string) ErrorPage {
	return ErrorPage{
		Status:  status,
		Code:    code,
		Title:   http.StatusText(status),
		Message: message,
	}
}
