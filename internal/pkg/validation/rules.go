package validation

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/yigit/uniadmin/internal/app/models"
)

// Validation rule patterns
var (
	// PersonNamePattern: starts with an uppercase letter, letters only
	PersonNamePattern = `^[A-Z][a-zA-Z]*$`

	// NameMaxLength bounds every person name, title and location
	NameMaxLength = 50
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	PersonName *regexp.Regexp
}{
	PersonName: regexp.MustCompile(PersonNamePattern),
}

// custom validation tags & texts
const (
	personNameTag  = "personname"
	personNameText = "{0} must start with an uppercase letter and contain only letters"

	formDateTag  = "formdate"
	formDateText = "{0} must be a date in yyyy-MM-dd or dd-MM-yyyy format"

	moneyTag  = "money"
	moneyText = "{0} must be a non-negative amount below 1,000,000,000,000,000 with at most 4 decimal places"

	intBetweenTag  = "intbetween"
	intBetweenText = "{0} must be a whole number between {1}"
)

// personNameValidation only allows names matching PersonNamePattern.
func personNameValidation(fl validator.FieldLevel) bool {
	return CompiledPatterns.PersonName.MatchString(fl.Field().String())
}

// formDateValidation accepts the date layouts understood by models.ParseDate.
func formDateValidation(fl validator.FieldLevel) bool {
	_, err := models.ParseDate(fl.Field().String())
	return err == nil
}

// moneyValidation accepts the amounts understood by models.ParseAmount.
func moneyValidation(fl validator.FieldLevel) bool {
	_, err := models.ParseAmount(fl.Field().String())
	return err == nil
}

// intBetweenValidation checks a numeric string against "min max" given as the tag param.
func intBetweenValidation(fl validator.FieldLevel) bool {
	bounds := strings.Fields(fl.Param())
	if len(bounds) != 2 {
		return false
	}
	lo, errLo := strconv.ParseInt(bounds[0], 10, 64)
	hi, errHi := strconv.ParseInt(bounds[1], 10, 64)
	if errLo != nil || errHi != nil {
		return false
	}

	v, err := strconv.ParseInt(strings.TrimSpace(fl.Field().String()), 10, 64)
	return err == nil && v >= lo && v <= hi
}
