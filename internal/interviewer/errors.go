package interviewer

import (
	"encoding/json"
	"fmt"
	"strings"
)

// FallbackMessage is used when a failed response carries no usable detail.
const FallbackMessage = "Request failed"

// APIError is returned for every non-2xx backend response. Backend failure
// modes are not distinguished: the message is all a caller should show.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

func newAPIError(status int, body []byte) *APIError {
	return &APIError{
		StatusCode: status,
		Message:    messageFromBody(body),
	}
}

// messageFromBody extracts the message from a {"detail": ...} body.
// A string detail is used as is; an object detail yields its "error" field,
// then its "message" field. Anything else, including a body that is not JSON,
// yields FallbackMessage.
func messageFromBody(body []byte) string {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		payload = map[string]any{}
	}

	switch detail := payload["detail"].(type) {
	case string:
		return detail
	case map[string]any:
		for _, key := range []string{"error", "message"} {
			if msg := detailText(detail[key]); msg != "" {
				return msg
			}
		}
	}

	return FallbackMessage
}

// detailText renders a detail field the way a loosely typed client would:
// empty, false, zero and null values do not count as a message.
func detailText(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if !val {
			return ""
		}
		return "true"
	case float64:
		if val == 0 {
			return ""
		}
		return fmt.Sprintf("%v", val)
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(data)
	}
}

// ValidationError reports required form fields that are missing or malformed.
// It is returned before any request is sent.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid request: " + strings.Join(e.Problems, "; ")
}
