package cli

import (
	"errors"
	"fmt"
)

// codeError carries a mapped validation exit code through cobra's error
// return. The report has already been rendered when it is raised, so Execute
// must not print it again.
type codeError struct {
	code int
}

func (e *codeError) Error() string {
	return fmt.Sprintf("validation failed (exit code %d)", e.code)
}

func isCodeError(err error) bool {
	var ce *codeError
	return errors.As(err, &ce)
}

// ExitStatus translates the error returned by Execute into a process exit
// code: 0 for nil, the mapped validation code for code errors, 1 otherwise.
func ExitStatus(err error) int {
	if err == nil {
		return 0
	}
	var ce *codeError
	if errors.As(err, &ce) {
		return ce.code
	}
	return 1
}
