// Package validation validates configuration structs with struct tags
// (go-playground/validator) and reports failures as *errors.AppError with
// the INVALID_INPUT code.
//
//	type Config struct {
//	    MaxDepth int `mapstructure:"max_depth" validate:"min=1,max=1000"`
//	}
//	err := validation.Validate(cfg)
package validation
