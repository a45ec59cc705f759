package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/yigit/uniadmin/internal/pkg/apperrors"
)

// Validator validates bound forms and turns failures into field messages.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// New instantiates the validator with english messages and the custom tags.
func New() *Validator {
	validate := validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use form field names in messages so they line up with the inputs.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	_ = validate.RegisterValidation(personNameTag, personNameValidation)
	_ = validate.RegisterValidation(formDateTag, formDateValidation)
	_ = validate.RegisterValidation(moneyTag, moneyValidation)
	_ = validate.RegisterValidation(intBetweenTag, intBetweenValidation)

	v := &Validator{validate: validate, translator: translator}
	v.RegisterCustomTranslation(personNameTag, personNameText)
	v.RegisterCustomTranslation(formDateTag, formDateText)
	v.RegisterCustomTranslation(moneyTag, moneyText)
	v.registerIntBetweenTranslation()
	return v
}

// RegisterCustomTranslation registers a message for tag. {0} is replaced by the field name.
func (v *Validator) RegisterCustomTranslation(tag, text string) {
	_ = v.validate.RegisterTranslation(
		tag, v.translator,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

func (v *Validator) registerIntBetweenTranslation() {
	_ = v.validate.RegisterTranslation(
		intBetweenTag, v.translator,
		func(t ut.Translator) error { return t.Add(intBetweenTag, intBetweenText, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			bounds := strings.Join(strings.Fields(fe.Param()), " and ")
			s, _ := t.T(intBetweenTag, fe.Field(), bounds)
			return s
		},
	)
}

// Struct validates s and returns a *apperrors.ValidationError keyed by form field name.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	vErr := apperrors.NewValidationError()
	for _, fe := range fieldErrs {
		vErr.Add(fe.Field(), fe.Translate(v.translator))
	}
	return vErr
}
