package httperr

import (
	"errors"
	"strings"
)

// BusinessError carries a stable, machine readable code. Domain packages
// return it for rule violations; handlers translate the code to a status.
type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// CodeOf returns the business code wrapped in err, if any.
func CodeOf(err error) (string, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code, true
	}
	return "", false
}

// IsNotFound reports codes following the "<entity>_not_found" convention.
func IsNotFound(err error) bool {
	code, ok := CodeOf(err)
	return ok && strings.HasSuffix(code, "_not_found")
}
