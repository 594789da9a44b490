//go:build !cgo

package window

import (
	"context"
	"errors"
)

// Run reports that window mode is unavailable in this build.
func Run(_ context.Context, _ Options) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")
}
