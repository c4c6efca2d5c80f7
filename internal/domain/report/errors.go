package report

import (
	"fmt"

	appErrors "lost-and-found/pkg/errors"
)

var (
	ErrLostReportNotFound  = fmt.Errorf("lost %w", appErrors.ErrReportNotFound)
	ErrFoundReportNotFound = fmt.Errorf("found %w", appErrors.ErrReportNotFound)
	ErrNotOwner            = appErrors.ErrReportNotOwned
	ErrAlreadyMatched      = appErrors.ErrReportAlreadyMatch
)
