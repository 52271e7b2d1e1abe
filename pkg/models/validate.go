package models

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	validate   *validator.Validate
	translator ut.Translator

	personaTag = "persona"
)

func init() {
	validate = validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(personaTag, personaValidation)
	_ = validate.RegisterTranslation(personaTag, translator,
		func(ut.Translator) error { return nil },
		func(_ ut.Translator, fe validator.FieldError) string {
			return "unknown parent persona"
		})
}

func personaValidation(fl validator.FieldLevel) bool {
	p, ok := fl.Field().Interface().(ParentPersona)
	if !ok {
		return false
	}
	_, known := ParsePersona(string(p))
	return known
}

// Validate runs the struct tags of v and reports every failing field.
// The returned error always matches ErrInvalidInput.
func Validate(v interface{}) error {
	if v == nil {
		return NewValidationError(nil, FieldError{Field: "body", Error: "is required"})
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr && rv.IsNil() {
		return NewValidationError(nil, FieldError{Field: "body", Error: "is required"})
	}

	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return NewValidationError(nil, FieldError{Field: "body", Error: err.Error()})
	}
	flds := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		flds = append(flds, FieldError{Field: fieldPath(fe.Namespace()), Error: fe.Translate(translator)})
	}
	return NewValidationError(nil, flds...)
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
