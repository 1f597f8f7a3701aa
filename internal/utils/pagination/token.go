package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano // Use a precise time format

// EncodeToken creates a base64 encoded cursor from the timestamp of the last item
// on a page and the number of items served so far. Readings are append-only, so
// the served prefix of a range never changes and the count locates the next page.
func EncodeToken(last time.Time, served int) string {
	tokenStr := fmt.Sprintf("%s|%d", last.Format(timeFormat), served)
	return base64.RawURLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses a cursor produced by EncodeToken.
func DecodeToken(token string) (time.Time, int, error) {
	decodedBytes, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 {
		return time.Time{}, 0, fmt.Errorf("invalid pagination token format (split)")
	}

	last, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("invalid pagination token format (timestamp parse): %w", err)
	}
	served, err := strconv.Atoi(parts[1])
	if err != nil || served < 1 {
		return time.Time{}, 0, fmt.Errorf("invalid pagination token format (offset)")
	}
	return last, served, nil
}

// Page returns the slice of items after a cursor together with the cursor for the
// following page, or nil when this is the last one. timestampOf reads the
// timestamp the cursor is checked against.
func Page[T any](items []T, limit int, token string, timestampOf func(T) time.Time) ([]T, *string, error) {
	offset := 0
	if token != "" {
		last, served, err := DecodeToken(token)
		if err != nil {
			return nil, nil, err
		}
		if served > len(items) || !timestampOf(items[served-1]).Equal(last) {
			return nil, nil, fmt.Errorf("pagination token does not match this range")
		}
		offset = served
	}

	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	page := items[offset:end]
	if end == len(items) {
		return page, nil, nil
	}
	next := EncodeToken(timestampOf(items[end-1]), end)
	return page, &next, nil
}
