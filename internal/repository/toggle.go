package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Karan-RajKR/social-lite/internal/middleware"
	"github.com/Karan-RajKR/social-lite/internal/models"
	"github.com/Karan-RajKR/social-lite/internal/observability"

	"gorm.io/gorm"
)

// maxToggleAttempts bounds how often a toggle restarts after losing an insert race.
const maxToggleAttempts = 5

// errToggleRaced rolls back an attempt whose insert was beaten by a concurrent toggle.
var errToggleRaced = errors.New("toggle lost insert race")

// toggleOps describes one relationship key for runToggle.
type toggleOps struct {
	kind string
	// targetMissing reports NotFound for the toggle's target.
	targetMissing func() error
	exists        func(tx *gorm.DB) (bool, error)
	remove        func(tx *gorm.DB) *gorm.DB
	insert        func(tx *gorm.DB) *gorm.DB
}

// runToggle flips the relationship row and returns its final existence.
//
// Each attempt is one transaction: verify the target, delete the row, and if
// nothing was deleted insert it with ON CONFLICT DO NOTHING. An insert that
// affects no rows means another toggle created the row after our delete, so
// the attempt is retried and will remove that row instead. Every successful
// call therefore flips the row exactly once.
func runToggle(ctx context.Context, db *gorm.DB, ops toggleOps) (bool, error) {
	for attempt := 1; attempt <= maxToggleAttempts; attempt++ {
		var final bool
		err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			ok, err := ops.exists(tx)
			if err != nil {
				return err
			}
			if !ok {
				return ops.targetMissing()
			}

			res := ops.remove(tx)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected > 0 {
				final = false
				return nil
			}

			res = ops.insert(tx)
			if res.Error != nil {
				if isUniqueConstraintError(res.Error) {
					return errToggleRaced
				}
				return res.Error
			}
			if res.RowsAffected == 0 {
				return errToggleRaced
			}
			final = true
			return nil
		})

		switch {
		case err == nil:
			observability.RecordToggle(ops.kind, final)
			return final, nil
		case errors.Is(err, errToggleRaced):
			observability.ToggleRetries.WithLabelValues(ops.kind).Inc()
			middleware.Logger.DebugContext(ctx, "toggle retry",
				slog.String("kind", ops.kind),
				slog.Int("attempt", attempt),
			)
			continue
		default:
			return false, storeError(err)
		}
	}
	return false, models.NewInternalError(fmt.Errorf("%s toggle did not settle after %d attempts", ops.kind, maxToggleAttempts))
}

// rowExists runs a COUNT query scoped by query/args on model's table.
func rowExists(tx *gorm.DB, model interface{}, query string, args ...interface{}) (bool, error) {
	var n int64
	if err := tx.Model(model).Where(query, args...).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
