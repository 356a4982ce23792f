package validation

import (
	stderrors "errors"
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/kbukum/scopedi/errors"
)

// FieldError names one rejected config key.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// messages maps a validate tag to the phrase reported after the field name.
// A trailing space means the tag parameter is appended.
var messages = map[string]string{
	"required": "is required",
	"min":      "must be at least ",
	"max":      "must be at most ",
	"gte":      "must be greater than or equal to ",
	"lte":      "must be less than or equal to ",
	"oneof":    "must be one of: ",
}

var validatorInstance = sync.OnceValue(func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(configKey)
	return v
})

// configKey reports fields by their mapstructure key so messages use the
// same names as the YAML file and env variables.
func configKey(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("mapstructure"), ",")
	if name == "" || name == "-" {
		return snakeCase(fld.Name)
	}
	return name
}

// Validate checks s against its `validate` tags. Failures come back as a
// single INVALID_INPUT AppError listing every field, with the per-field
// breakdown under the "fields" detail.
func Validate(s any) error {
	err := validatorInstance().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return errors.Validation("validation failed").WithCause(err)
	}

	fields := make([]FieldError, 0, len(verrs))
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		f := FieldError{Field: keyPath(fe), Message: describe(fe)}
		fields = append(fields, f)
		parts = append(parts, f.Field+": "+f.Message)
	}

	return errors.Validation(strings.Join(parts, "; ")).WithDetail("fields", fields)
}

// keyPath drops the root struct from the namespace: "Config.logging.level"
// becomes "logging.level".
func keyPath(fe validator.FieldError) string {
	if _, rest, ok := strings.Cut(fe.Namespace(), "."); ok {
		return rest
	}
	return fe.Field()
}

func describe(fe validator.FieldError) string {
	msg, ok := messages[fe.Tag()]
	if !ok {
		return "is invalid"
	}
	if strings.HasSuffix(msg, " ") {
		return msg + fe.Param()
	}
	return msg
}

func snakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
