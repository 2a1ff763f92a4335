// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/invowk/pkgsurface/pkg/types"
)

// ExitError carries the process exit code of a failed command back to
// Execute. Resolution failures (missing manifest, malformed maps, scan
// errors) use types.ExitFailure; bad flags, locations or configuration use
// types.ExitUsage.
type ExitError struct {
	Code types.ExitCode
	Err  error
}

// usageError marks err as a command-line or configuration mistake.
func usageError(err error) *ExitError {
	return &ExitError{Code: types.ExitUsage, Err: err}
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("pkgsurface exited with code %s", e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}
