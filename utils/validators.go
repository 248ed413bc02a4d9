package utils

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"inotebook/dto"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Validator wraps the gin binding engine together with the translator used
// to render violation messages.
type Validator struct {
	Engine     *validator.Validate
	Translator ut.Translator
}

var (
	validatorOnce   sync.Once
	sharedValidator *Validator
	validatorErr    error
)

// InitValidator configures gin's binding engine: field names come from the
// json tag and messages from the English translations. Unknown JSON fields
// are rejected at decode time. The engine is process-wide, so the setup runs
// once.
func InitValidator() (*Validator, error) {
	validatorOnce.Do(func() {
		sharedValidator, validatorErr = initValidator()
	})
	return sharedValidator, validatorErr
}

func initValidator() (*Validator, error) {
	binding.EnableDecoderDisallowUnknownFields = true

	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil, errors.New("gin binding engine is not validator/v10")
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(v, trans); err != nil {
		return nil, err
	}
	if err := registerLengthTranslation(v, trans); err != nil {
		return nil, err
	}

	return &Validator{Engine: v, Translator: trans}, nil
}

// registerLengthTranslation replaces the stock "min" message for strings with
// the wording clients already match on, e.g. "Title must be atleast 3 characters".
func registerLengthTranslation(v *validator.Validate, trans ut.Translator) error {
	return v.RegisterTranslation("min", trans,
		func(t ut.Translator) error {
			return t.Add("min-length", "{0} must be atleast {1} characters", true)
		},
		func(t ut.Translator, fe validator.FieldError) string {
			if fe.Kind() != reflect.String {
				return fe.Error()
			}
			msg, err := t.T("min-length", capitalize(fe.Field()), fe.Param())
			if err != nil {
				return fe.Error()
			}
			return msg
		},
	)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// FieldErrors turns a binding error into the list of violated constraints.
// ok is false when err is not a validation failure (malformed JSON, wrong
// types, unknown fields).
func (v *Validator) FieldErrors(err error) (fieldErrs []dto.FieldError, ok bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, false
	}

	fieldErrs = make([]dto.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fieldErrs = append(fieldErrs, dto.FieldError{
			Field:   fe.Field(),
			Message: fe.Translate(v.Translator),
		})
	}
	return fieldErrs, true
}
