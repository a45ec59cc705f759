package helpers

import (
	"strings"

	"github.com/yigit/uniadmin/internal/app/models"
)

// GradeValue converts a grade into a value for a nullable CHAR(1) column.
func GradeValue(g *models.Grade) *string {
	if g == nil {
		return nil
	}
	s := string(*g)
	return &s
}

// LikePattern escapes s for use inside an ILIKE '%...%' filter.
func LikePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.TrimSpace(s)) + "%"
}
