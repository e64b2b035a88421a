// Package pagination implements the opaque continuation tokens used by the
// list endpoints. Tokens are base64-wrapped pipe-joined fields so clients can
// round-trip them without caring about their contents.
package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano

// EncodeToken builds a token from the (entryDate, createdAt) sort tuple used
// by transaction listing.
func EncodeToken(entryDate time.Time, createdAt time.Time) string {
	return encode(entryDate.Format(timeFormat), createdAt.Format(timeFormat))
}

// DecodeToken parses a token produced by EncodeToken.
func DecodeToken(token string) (time.Time, time.Time, error) {
	parts, err := decode(token)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if len(parts) != 2 {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pagination token format (split)")
	}

	entryDate, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pagination token format (entry date parse): %w", err)
	}
	createdAt, err := time.Parse(timeFormat, parts[1])
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pagination token format (created_at parse): %w", err)
	}
	return entryDate, createdAt, nil
}

// EncodeDateBasedToken builds a token from a single timestamp. Used by the
// debt and movement listings, which sort on one time column.
func EncodeDateBasedToken(date time.Time) string {
	return encode(date.Format(timeFormat))
}

// DecodeDateBasedToken parses a token produced by EncodeDateBasedToken.
func DecodeDateBasedToken(token string) (time.Time, error) {
	parts, err := decode(token)
	if err != nil {
		return time.Time{}, err
	}

	date, err := time.Parse(timeFormat, strings.Join(parts, "|"))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid pagination token format (date parse): %w", err)
	}
	return date, nil
}

// EncodeMultiFieldToken builds a token from arbitrary string fields. Used by
// the inventory item listing, which sorts on (name, item_id).
func EncodeMultiFieldToken(fields ...string) string {
	return encode(fields...)
}

// DecodeMultiFieldToken parses a token into its component fields.
func DecodeMultiFieldToken(token string) ([]string, error) {
	return decode(token)
}

func encode(fields ...string) string {
	return base64.StdEncoding.EncodeToString([]byte(strings.Join(fields, "|")))
}

func decode(token string) ([]string, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	return strings.Split(string(raw), "|"), nil
}
