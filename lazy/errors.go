package lazy

import "errors"

// ErrBuildAfterValidation indicates that a source which passed validation
// failed to build, for example because it exceeds a size limit. Load returns
// it wrapped together with the compiler error; Get panics with that error.
var ErrBuildAfterValidation = errors.New("lazy: build failed after validation")
