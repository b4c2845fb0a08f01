// Package validation plugs go-playground/validator into echo and turns its
// errors into per-field messages keyed by JSON field name.
package validation

import (
	"contribution-hub/app/server/constants"
	"errors"
	"fmt"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
	"reflect"
	"regexp"
	"slices"
	"strings"
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// FieldErrors 字段名 -> 错误信息
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	parts := make([]string, 0, len(f))
	for field, msg := range f {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	slices.Sort(parts)
	return "validation failed: " + strings.Join(parts, "; ")
}

type Validator struct {
	v     *validator.Validate
	trans ut.Translator
}

func New() (*Validator, error) {
	v := validator.New(validator.WithRequiredStructEnabled())

	// 使用 json tag 作为字段名，和请求体保持一致
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			name, _, _ = strings.Cut(fld.Tag.Get("query"), ",")
		}
		if name == "" {
			name, _, _ = strings.Cut(fld.Tag.Get("param"), ",")
		}
		return name
	})

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := entranslations.RegisterDefaultTranslations(v, trans); err != nil {
		return nil, fmt.Errorf("register default translations: %w", err)
	}

	custom := []struct {
		tag  string
		fn   validator.Func
		text string
	}{
		{"notblank", notBlank, "{0} must not be blank"},
		{"username", username, "{0} can only contain letters, numbers, _ and -"},
		{"lang", supportedLanguage, "{0} is not a supported language"},
	}
	for _, c := range custom {
		if err := v.RegisterValidation(c.tag, c.fn); err != nil {
			return nil, fmt.Errorf("register %s: %w", c.tag, err)
		}

		text := c.text
		tag := c.tag
		if err := v.RegisterTranslation(tag, trans, func(ut ut.Translator) error {
			return ut.Add(tag, text, true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T(fe.Tag(), fe.Field())
			return t
		}); err != nil {
			return nil, fmt.Errorf("register %s translation: %w", tag, err)
		}
	}

	return &Validator{v: v, trans: trans}, nil
}

// Validate 实现 echo.Validator
func (v *Validator) Validate(i any) error {
	err := v.v.Struct(i)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := FieldErrors{}
	for _, fe := range verrs {
		name := fe.Field()
		if _, exist := fields[name]; !exist {
			fields[name] = fe.Translate(v.trans)
		}
	}
	return fields
}

// Fields 从错误中取出字段信息，不是校验错误时返回 nil
func Fields(err error) map[string]string {
	var fields FieldErrors
	if errors.As(err, &fields) {
		return fields
	}
	return nil
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func username(fl validator.FieldLevel) bool {
	return usernameRegex.MatchString(fl.Field().String())
}

func supportedLanguage(fl validator.FieldLevel) bool {
	return slices.Contains(constants.SupportedLanguages, fl.Field().String())
}
