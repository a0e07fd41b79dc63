package handler

import (
	"time"

	"github.com/ajjstores/retail-ledger-api/pkg/apperror"
	"github.com/ajjstores/retail-ledger-api/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// paramUUID parses a UUID path parameter
func paramUUID(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperror.NewFieldError(name, "invalid "+name)
	}
	return id, nil
}

// optionalUUID parses an optional UUID query value
func optionalUUID(field, raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, apperror.NewFieldError(field, "invalid "+field)
	}
	return &id, nil
}

// parseDate accepts YYYY-MM-DD or RFC3339; empty yields nil
func parseDate(field, raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, apperror.NewFieldError(field, field+" must be YYYY-MM-DD")
	}
	return &t, nil
}

// endOfDay makes a date-only upper bound inclusive
func endOfDay(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	end := t.Add(24*time.Hour - time.Nanosecond)
	return &end
}

func pageParams(page, perPage int) *pagination.PaginationParams {
	p := &pagination.PaginationParams{Page: page, PerPage: perPage}
	p.Validate()
	return p
}
