package handlers

import (
	"fmt"

	"github.com/SscSPs/queue_mood_board/internal/apperrors"
	"github.com/SscSPs/queue_mood_board/internal/core/domain"
	"github.com/SscSPs/queue_mood_board/internal/dto"
)

// resolveRange fills omitted bounds with today. Ordering is checked by the service.
func resolveRange(q dto.DateRangeQuery, today domain.Date) (domain.Date, domain.Date, error) {
	start, end := today, today
	var err error
	if q.Start != "" {
		if start, err = domain.ParseDate(q.Start); err != nil {
			return start, end, fmt.Errorf("%w: start: %v", apperrors.ErrValidation, err)
		}
	}
	if q.End != "" {
		if end, err = domain.ParseDate(q.End); err != nil {
			return start, end, fmt.Errorf("%w: end: %v", apperrors.ErrValidation, err)
		}
	}
	return start, end, nil
}
