package service

import (
	"encoding/base64"
	"encoding/json"

	perr "daybrief/internal/platform/errors"
)

// cursor is the opaque list position; encoded as base64 JSON so clients can
// treat it as a token without caring about the shape
type cursor struct {
	Offset int `json:"offset"`
}

func encodeCursor(offset int) string {
	b, _ := json.Marshal(cursor{Offset: offset})
	return base64.StdEncoding.EncodeToString(b)
}

func decodeCursor(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return 0, perr.InvalidArgf("malformed cursor")
	}
	var c cursor
	if err := json.Unmarshal(raw, &c); err != nil || c.Offset < 0 {
		return 0, perr.InvalidArgf("malformed cursor")
	}
	return c.Offset, nil
}
