package common

import (
	"errors"

	"github.com/quillblog/quill/logger"
)

// Combine joins the non-nil errors; it returns nil when all are nil.
func Combine(errs ...error) error {
	return errors.Join(errs...)
}

// Recover logs a recovered panic under msg and returns it.
func Recover(msg string) any {
	panicErr := recover()
	if panicErr != nil {
		if msg != "" {
			logger.Error(msg, " panic: ", panicErr)
		}
	}
	return panicErr
}
