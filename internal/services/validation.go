package services

import (
	"errors"
	"fmt"
	"strings"

	"blog/internal/common"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// validationError turns validator output into a common.ErrValidation failure.
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return common.Validation(err.Error())
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, e := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag()))
	}
	return common.Validation(strings.Join(msgs, "; "))
}

func checkStruct(v interface{}) error {
	if err := validate.Struct(v); err != nil {
		return validationError(err)
	}
	return nil
}
