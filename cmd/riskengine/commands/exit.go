package commands

import (
	"errors"

	"github.com/wonny/aegis-risk/internal/risk"
)

// Process exit codes
const (
	ExitOK         = 0
	ExitFailure    = 1 // usage, file access, config, export
	ExitDegenerate = 2
	ExitNotFound   = 3
)

// ExitCode maps a command error to the process exit code
// ⭐ SSOT: 에러 → 종료 코드 매핑은 여기서만
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, risk.ErrDegenerateData):
		return ExitDegenerate
	case errors.Is(err, risk.ErrLabelNotFound), errors.Is(err, risk.ErrInvalidLabel):
		return ExitNotFound
	default:
		return ExitFailure
	}
}
