package event

import (
	"encoding/json"
	"fmt"
)

// DecodePayload returns an event payload as T.
// In-process publishers hand over T or *T directly. Payloads replayed from the dead-letter
// file or the audit log arrive as raw JSON or generic maps and go through encoding/json.
func DecodePayload[T any](payload any) (T, error) {
	var out T
	switch v := payload.(type) {
	case T:
		return v, nil
	case *T:
		if v == nil {
			return out, fmt.Errorf(ErrFmtNilPayload, out)
		}
		return *v, nil
	case json.RawMessage:
		return out, json.Unmarshal(v, &out)
	case []byte:
		return out, json.Unmarshal(v, &out)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return out, fmt.Errorf(ErrFmtEncodePayload, payload, err)
	}
	return out, json.Unmarshal(data, &out)
}
