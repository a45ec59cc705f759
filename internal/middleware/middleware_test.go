package middleware

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/uniadmin/internal/app/models/dto/enums"
	"github.com/yigit/uniadmin/internal/pkg/apperrors"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	r := gin.New()
	r.SetHTMLTemplate(template.Must(template.New(ErrorTemplate).Parse(
		`{{.Page.Status}}|{{.Page.Code}}|{{.Page.Message}}|{{range .Flashes}}{{.}};{{end}}`)))
	r.Use(RequestLogger(zerolog.Nop()), Recovery(), Sessions(SessionOptions{Name: "test", Secret: testSecret, MaxAge: 60}), CSRF())
	r.NoRoute(NotFound())
	return r
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestErrorPageFor(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   enums.ErrorCode
	}{
		{"not found", apperrors.ErrStudentNotFound, http.StatusNotFound, enums.ErrorCodeResourceNotFound},
		{"bad request", apperrors.NewBadRequestError("bad id"), http.StatusBadRequest, enums.ErrorCodeBadRequest},
		{"validation", apperrors.NewFieldError("LastName", "required"), http.StatusBadRequest, enums.ErrorCodeValidationFailed},
		{"unavailable", apperrors.NewStorageUnavailableError("down", nil), http.StatusServiceUnavailable, enums.ErrorCodeStorageUnavailable},
		{"conflict", apperrors.NewStorageConflictError("rejected", nil), http.StatusConflict, enums.ErrorCodeStorageConflict},
		{"unknown", assert.AnError, http.StatusInternalServerError, enums.ErrorCodeInternalServer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := ErrorPageFor(tt.err)
			assert.Equal(t, tt.status, page.Status)
			assert.Equal(t, tt.code, page.Code)
			assert.Equal(t, http.StatusText(tt.status), page.Title)
		})
	}

	assert.Equal(t, "student not found", ErrorPageFor(apperrors.ErrStudentNotFound).Message)
}

func TestNotFoundAndRecovery(t *testing.T) {
	r := newRouter(t)
	r.GET("/panic", func(*gin.Context) { panic("boom") })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "404|RES_001|"))

	w = serve(r, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestRequestLogger_keepsValidRequestID(t *testing.T) {
	r := newRouter(t)
	r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	id := "4f1a9d2e-3b1c-4d2a-9e8f-0a1b2c3d4e5f"
	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(RequestIDHeader, id)
	w := serve(r, req)
	assert.Equal(t, id, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid")
	w = serve(r, req)
	assert.NotEqual(t, "not-a-uuid", w.Body.String())
}

func TestCSRF(t *testing.T) {
	r := newRouter(t)
	r.GET("/form", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(CSRFContextKey)) })
	r.POST("/form", func(c *gin.Context) {
		AddFlash(c, "Saved.")
		c.Redirect(http.StatusFound, "/flash")
	})
	r.GET("/flash", func(c *gin.Context) {
		RenderErrorPage(c, ErrorPageFor(apperrors.ErrStudentNotFound))
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/form", nil))
	require.Equal(t, http.StatusOK, w.Code)
	token := w.Body.String()
	require.NotEmpty(t, token)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	post := func(value string, withCookie bool) *httptest.ResponseRecorder {
		form := url.Values{}
		if value != "" {
			form.Set(CSRFFormField, value)
		}
		req := httptest.NewRequest(http.MethodPost, "/form", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		if withCookie {
			for _, ck := range cookies {
				req.AddCookie(ck)
			}
		}
		return serve(r, req)
	}

	t.Run("missing token", func(t *testing.T) {
		w := post("", true)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("wrong token", func(t *testing.T) {
		w := post("forged", true)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("token without session", func(t *testing.T) {
		w := post(token, false)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("valid token and flash", func(t *testing.T) {
		w := post(token, true)
		require.Equal(t, http.StatusFound, w.Code)

		req := httptest.NewRequest(http.MethodGet, "/flash", nil)
		for _, ck := range w.Result().Cookies() {
			req.AddCookie(ck)
		}
		flash := serve(r, req)
		assert.Contains(t, flash.Body.String(), "Saved.;")
	})

	t.Run("header token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/form", nil)
		req.Header.Set(CSRFHeader, token)
		for _, ck := range cookies {
			req.AddCookie(ck)
		}
		w := serve(r, req)
		assert.Equal(t, http.StatusFound, w.Code)
	})
}
