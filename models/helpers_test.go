package models_test

import (
	"errors"

	"github.com/buildrise/costledger_backend/utils"
)

func asValidation(err error, target **utils.ValidationError) bool {
	return err != nil && errors.As(err, target)
}
