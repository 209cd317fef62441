package service

import (
	e "github.com/blogcore-dev/blogcore/internal/errors"
	"github.com/blogcore-dev/blogcore/internal/logger"
)

// storeErr maps raw storage failures to the generic retry-later error so
// driver details never reach the caller. Errors already carrying a status
// code (not found, validation) pass through untouched.
func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if e.Is[*e.ErrorWithStatusCode](err) {
		return err
	}
	logger.Log.Error("storage failure", "op", op, "error", err)
	return e.Downstream()
}
