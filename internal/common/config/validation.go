package config

import (
	"strings"

	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"
)

// Validatable is implemented by configs with rules the struct tags can't express.
type Validatable interface {
	Validate() error
}

// Validate checks the validate struct tags of config, then calls its Validate method if it has one.
func Validate(config interface{}) error {
	validate := validator.New()
	if err := validate.Struct(config); err != nil {
		return err
	}
	if v, ok := config.(Validatable); ok {
		return v.Validate()
	}
	return nil
}

func LogValidationErrors(err error) {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		if err != nil {
			log.Errorf("ConfigError: %s", err)
		}
		return
	}
	for _, err := range validationErrors {
		fieldName := stripPrefix(err.Namespace())
		tag := err.Tag()
		switch tag {
		case "required":
			log.Errorf("ConfigError: Field %s is required but was not found", fieldName)
		default:
			log.Errorf("ConfigError: Field %s has invalid value %v: %s", fieldName, err.Value(), tag)
		}
	}
}

func stripPrefix(s string) string {
	if idx := strings.Index(s, "."); idx != -1 {
		return s[idx+1:]
	}
	return s
}
