package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yigit/uniadmin/internal/pkg/apperrors"
)

const (
	// CSRFFormField is the hidden input every POST form carries
	CSRFFormField = "__RequestVerificationToken"
	// CSRFHeader may carry the token instead of the form field
	CSRFHeader = "X-CSRF-Token"
	// CSRFContextKey holds the current token for templates
	CSRFContextKey = "csrfToken"

	csrfSessionKey = "csrf_token"
)

// CSRF keeps one anti-forgery token per session and rejects unsafe requests
// whose submitted token does not match it. Requires Sessions.
func CSRF() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		token, _ := session.Get(csrfSessionKey).(string)
		if token == "" {
			token = uuid.NewString()
			session.Set(csrfSessionKey, token)
			if err := session.Save(); err != nil {
				Logger(c).Error().Err(err).Msg("Failed to store anti-forgery token")
			}
		}
		c.Set(CSRFContextKey, token)

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		submitted := c.PostForm(CSRFFormField)
		if submitted == "" {
			submitted = c.GetHeader(CSRFHeader)
		}
		if subtle.ConstantTimeCompare([]byte(submitted), []byte(token)) != 1 {
			HandlePageError(c, apperrors.NewBadRequestError("anti-forgery token missing or invalid"))
			return
		}
		c.Next()
	}
}
