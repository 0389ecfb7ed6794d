package validator

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/pt_BR"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	pt_br_translations "github.com/go-playground/validator/v10/translations/pt_BR"
)

// Validator checks input structs against their validation tags and
// translates failures into pt-BR field messages.
type Validator struct {
	validate *govalidator.Validate
	trans    ut.Translator
}

// New builds a Validator with pt-BR translations registered.
func New() *Validator {
	v := govalidator.New()

	// Use JSON tag name for field names in error messages.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	locale := pt_BR.New()
	uni := ut.New(locale, locale)
	trans, _ := uni.GetTranslator("pt_BR")
	_ = pt_br_translations.RegisterDefaultTranslations(v, trans)

	return &Validator{validate: v, trans: trans}
}

// Check validates dst against its struct tags. Returns nil on success
// or a map of field name → human-readable message on failure.
func (v *Validator) Check(dst any) map[string]string {
	if err := v.validate.Struct(dst); err != nil {
		return v.TranslateErrors(err)
	}
	return nil
}

// TranslateErrors takes a validation error and returns a map of field
// name → message. A non-validation error becomes a single-key map with
// "detail".
func (v *Validator) TranslateErrors(err error) map[string]string {
	fields := make(map[string]string)

	var ve govalidator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			fields[fe.Field()] = fe.Translate(v.trans)
		}
		return fields
	}

	fields["detail"] = err.Error()
	return fields
}
