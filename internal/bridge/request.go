package bridge

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// ErrBadRequest is returned for completion payloads that cannot be decoded.
var ErrBadRequest = errors.New("bad completion request")

// Request is a decoded "complete" event.
type Request struct {
	ID      string
	Pattern any
}

// Response is the payload of a "completions" event.
type Response struct {
	ID    string
	Items []string
}

// Payload returns the event data in the shape the editor expects.
func (r Response) Payload() map[string]any {
	return map[string]any{"id": r.ID, "items": r.Items}
}

// ParseRequest decodes the arguments of a "complete" event. The first
// argument is either an object with "id" and "pattern" keys or a bare
// pattern string. A non-string pattern is kept as is; it completes to
// nothing.
func ParseRequest(data ...any) (Request, error) {
	if len(data) == 0 {
		return Request{}, fmt.Errorf("%w: no payload", ErrBadRequest)
	}

	switch v := data[0].(type) {
	case string:
		return Request{ID: uuid.NewString(), Pattern: v}, nil
	case map[string]any:
		pattern, ok := v["pattern"]
		if !ok {
			return Request{}, fmt.Errorf("%w: missing pattern", ErrBadRequest)
		}
		id, err := requestID(v["id"])
		if err != nil {
			return Request{}, err
		}
		return Request{ID: id, Pattern: pattern}, nil
	default:
		return Request{}, fmt.Errorf("%w: unexpected payload %T", ErrBadRequest, data[0])
	}
}

func requestID(v any) (string, error) {
	switch id := v.(type) {
	case nil:
		return uuid.NewString(), nil
	case string:
		if id == "" {
			return uuid.NewString(), nil
		}
		return id, nil
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("%w: id must be a string or number, got %T", ErrBadRequest, v)
	}
}
