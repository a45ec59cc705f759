// Package controllers turns HTTP requests into service calls and renders the
// resulting pages. Every failure that does not keep a form open goes through
// middleware.HandlePageError.
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/uniadmin/internal/app/models/dto"
	"github.com/yigit/uniadmin/internal/middleware"
	"github.com/yigit/uniadmin/internal/pkg/apperrors"
)

// parseID reads a positive integer route parameter. A missing or malformed
// ID means the page does not exist.
func parseID(c *gin.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewResourceNotFoundError("No record matches the identifier " + strconv.Quote(raw) + ".")
	}
	return id, nil
}

// parseOptionalQueryID reads an optional integer from the query string
func parseOptionalQueryID(c *gin.Context, name string) (*int64, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, apperrors.NewResourceNotFoundError("No record matches the identifier " + strconv.Quote(raw) + ".")
	}
	return &id, nil
}

func render(c *gin.Context, status int, tmpl string, page any) {
	c.HTML(status, tmpl, middleware.ViewData(c, page))
}

// redirect queues a flash message and answers with 302 Found
func redirect(c *gin.Context, location, flash string) {
	if flash != "" {
		middleware.AddFlash(c, flash)
	}
	c.Redirect(http.StatusFound, location)
}

// bindForm binds the posted form fields into form
func bindForm(c *gin.Context, form any) error {
	if err := c.ShouldBind(form); err != nil {
		return apperrors.NewBadRequestError("the submitted form could not be read")
	}
	return nil
}

// renderFormFailure keeps the form open for validation errors and recoverable
// storage conflicts. It reports false when err needs the problem page instead.
func renderFormFailure(c *gin.Context, tmpl string, page dto.FormPage, err error) bool {
	var vErr *apperrors.ValidationError
	switch {
	case errors.As(err, &vErr):
		page.Errors = vErr.Fields
	case errors.Is(err, apperrors.ErrStorageConflict) && !errors.Is(err, apperrors.ErrStorageUnavailable):
		middleware.Logger(c).Error().Err(err).Str("path", c.Request.URL.Path).Msg("Save failed")
		page.Errors = map[string]string{"": apperrors.SaveFailedMessage}
	default:
		return false
	}
	render(c, http.StatusOK, tmpl, page)
	return true
}

// fail renders the form again when possible, otherwise the problem page
func fail(c *gin.Context, tmpl string, page dto.FormPage, err error) {
	if renderFormFailure(c, tmpl, page, err) {
		return
	}
	middleware.HandlePageError(c, err)
}
