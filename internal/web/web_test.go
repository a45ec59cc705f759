package web

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/uniadmin/internal/app/models"
	"github.com/yigit/uniadmin/internal/app/models/dto"
	"github.com/yigit/uniadmin/internal/app/models/dto/enums"
)

func TestParseTemplates(t *testing.T) {
	tmpl, err := ParseTemplates()
	require.NoError(t, err)

	for _, entity := range []string{"students", "courses", "departments", "enrollments", "instructors"} {
		for _, page := range []string{"index", "details", "form"} {
			assert.NotNil(t, tmpl.Lookup(entity+"/"+page), entity+"/"+page)
		}
	}
	for _, name := range []string{"home/index", "home/about", "error", "header", "footer", "csrf"} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestErrorTemplate(t *testing.T) {
	tmpl, err := ParseTemplates()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = tmpl.ExecuteTemplate(&buf, "error", map[string]any{
		"Page":    dto.NewErrorPage(http.StatusNotFound, enums.ErrorCodeResourceNotFound, "student not found"),
		"Flashes": []string{"Student deleted."},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "student not found")
	assert.Contains(t, buf.String(), "Student deleted.")
}

func amount(t *testing.T, value string) pgtype.Numeric {
	t.Helper()
	n, err := models.ParseAmount(value)
	require.NoError(t, err)
	return n
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$350,000.00", FormatMoney(models.NewAmount(350000)))
	assert.Equal(t, "$0.50", FormatMoney(amount(t, "0.5")))
	assert.Equal(t, "$999,999,999,999,999.9999", FormatMoney(amount(t, "999999999999999.9999")))
}

func TestFormatGrade(t *testing.T) {
	assert.Equal(t, "No grade", FormatGrade(nil))
	assert.Equal(t, "A", FormatGrade(models.GradePtr("A")))
}

func TestDerefID(t *testing.T) {
	id := int64(7)
	assert.Equal(t, int64(7), derefID(&id))
	assert.Zero(t, derefID(nil))
}
