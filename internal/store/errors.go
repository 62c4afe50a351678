package store

import (
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/yogesh1825/CareerConnect-Job-Portal/types"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when a write violates a uniqueness constraint.
var ErrDuplicate = errors.New("duplicate")

const uniqueViolation = "23505"

// parseUUID validates a Postgres row id. Malformed ids can never match a row.
func parseUUID(id types.ID) (string, error) {
	parsed, err := uuid.Parse(id.String())
	if err != nil {
		return "", ErrNotFound
	}
	return parsed.String(), nil
}

func newUUID() types.ID {
	return types.ID(uuid.NewString())
}

func mapPostgresError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return ErrDuplicate
	}
	return err
}

func likePattern(keyword string) string {
	escaped := keywordEscaper.Replace(keyword)
	return "%" + escaped + "%"
}
