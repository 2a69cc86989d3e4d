package app

import (
	"fmt"

	"github.com/ryu-ryuk/re-wear/internal/domain"
)

// transactionError converts infrastructure failures escaping a transaction
// into the generic retryable error. Domain errors pass through unchanged; the
// underlying cause stays in the message for logs but callers only ever match
// on domain.ErrTransactionFailed.
func transactionError(err error) error {
	if err == nil || domain.KindOf(err) != domain.KindUnknown {
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrTransactionFailed, err)
}
