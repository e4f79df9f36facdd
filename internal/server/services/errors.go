package services

import (
	"context"
	"errors"

	"github.com/akorchagin/authgate/internal/common"
)

// translateStoreErr maps low-level store failures to the service-level
// taxonomy. Deadline and cancellation failures become ErrorTransient so
// callers can retry; everything else is internal. Never called with the
// sentinel repo errors, which carry meaning of their own.
func translateStoreErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return common.ErrorTransient
	}
	return common.ErrorInternal
}
