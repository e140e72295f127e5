package applicants

import "errors"

// ErrNotFound indicates the requested applicant id does not exist.
var ErrNotFound = errors.New("applicant not found")
