// Package web holds the embedded HTML templates and the functions they use.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/yigit/uniadmin/internal/app/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed templates
var templateFS embed.FS

var printer = message.NewPrinter(language.English)

// FuncMap returns the helpers available to every template
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"formatDate": models.FormatDate,
		"inputDate":  models.InputDate,
		"grade":      FormatGrade,
		"money":      FormatMoney,
		"id":         derefID,
		"mod":        func(a, b int) int { return a % b },
		"year":       func() int { return time.Now().Year() },
	}
}

// ParseTemplates parses every embedded page and partial
func ParseTemplates() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(FuncMap()).ParseFS(templateFS, "templates/*.html", "templates/*/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return tmpl, nil
}

// FormatGrade renders an optional grade
func FormatGrade(g *models.Grade) string {
	if g == nil {
		return "No grade"
	}
	return string(*g)
}

// FormatMoney renders an amount as US dollars with thousands separators
func FormatMoney(amount pgtype.Numeric) string {
	text := models.FormatAmount(amount)
	sign := ""
	if strings.HasPrefix(text, "-") {
		sign, text = "-", text[1:]
	}
	whole, frac, _ := strings.Cut(text, ".")
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return sign + "$" + text
	}
	return printer.Sprintf("%s$%d.%s", sign, units, frac)
}

func derefID(id *int64) int64 {
	if id == nil {
		return 0
	}
	return *id
}
