// Package dispatcher walks the resolved handler registry in priority order
// and runs the first handler whose capability predicate matches the target.
package dispatcher

import (
	"os"

	"github.com/arthur-debert/lv/pkg/errors"
	"github.com/arthur-debert/lv/pkg/handlers"
	"github.com/arthur-debert/lv/pkg/logging"
)

// Dispatch renders a single path using the first matching handler. At most
// one handler action runs per invocation. A missing path is the only
// condition here that should fail the process.
func Dispatch(path string, registry []handlers.Handler) error {
	logger := logging.GetLogger("dispatcher")

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Newf(errors.ErrPathNotFound, "path not found: %s", path)
		}
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot access %s", path)
	}

	for _, h := range registry {
		if !h.CanHandle(path, info) {
			continue
		}
		logger.Debug().
			Str("handler", h.Name()).
			Str("path", path).
			Msg("dispatching to handler")
		return h.Handle(path)
	}

	// Unreachable with the default handler enabled; reaching it means the
	// user disabled the fallback of last resort.
	return errors.Newf(errors.ErrNoHandler, "no handler matched %s (is the default handler disabled?)", path)
}
