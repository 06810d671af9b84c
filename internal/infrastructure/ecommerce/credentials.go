package ecommerce

import (
	"errors"
	"reflect"

	"github.com/go-playground/validator/v10"

	"github.com/marketops/backoffice/internal/domain/inventory"
)

// credentialValidator reports fields by the environment variable that feeds them
var credentialValidator = newCredentialValidator()

func newCredentialValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("env"); name != "" {
			return name
		}
		return fld.Name
	})
	return v
}

// checkCredentials validates a credential struct tagged with `env` and
// `validate:"required"`. Every missing field is reported by its environment
// variable name in a single *inventory.ConfigError.
func checkCredentials(creds any) error {
	err := credentialValidator.Struct(creds)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	missing := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		missing = append(missing, fe.Field())
	}
	return &inventory.ConfigError{Missing: missing}
}
