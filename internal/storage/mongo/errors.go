package mongo

import (
	"errors"
	"fmt"
	"strings"

	mongodrv "go.mongodb.org/mongo-driver/v2/mongo"

	"hotel_service/internal/domain"
)

// mapErr translates driver errors into domain sentinels.
func mapErr(coll string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongodrv.ErrNoDocuments):
		return fmt.Errorf("%s: %w", coll, domain.ErrNotFound)
	case mongodrv.IsDuplicateKeyError(err):
		if coll == hotelsColl && strings.Contains(err.Error(), "slug") {
			return domain.ErrSlugTaken
		}
		return fmt.Errorf("%s: duplicate key: %w", coll, domain.ErrConflict)
	default:
		return fmt.Errorf("%s: %w", coll, err)
	}
}
