package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/osse101/brandish-progression/internal/cooldown"
	"github.com/osse101/brandish-progression/internal/domain"
	"github.com/osse101/brandish-progression/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// CooldownResponse is returned with 429 while an action is on cooldown
type CooldownResponse struct {
	Error            string `json:"error"`
	Kind             string `json:"kind"`
	Action           string `json:"action"`
	RemainingSeconds int64  `json:"remaining_seconds"`
}

// bufferPool is a pool of bytes.Buffer to reduce allocations during JSON encoding
var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 512))
	},
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		bufferPool.Put(buf)
	}()

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error(LogMsgEncodeFailed, "error", err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(LogMsgWriteFailed, "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// cooldownPhrases words each cooldown action for players
var cooldownPhrases = map[string]string{
	cooldown.ActionMine:          "mine",
	cooldown.ActionWork:          "work",
	cooldown.ActionJobChange:     "change job",
	cooldown.ActionWeeklySalary:  "claim your weekly salary",
	cooldown.ActionMonthlySalary: "claim your monthly salary",
}

func cooldownMessage(action string, remaining time.Duration) string {
	phrase, ok := cooldownPhrases[action]
	if !ok {
		phrase = action
	}
	hours := int(remaining.Hours())
	minutes := int(remaining.Minutes()) % 60
	seconds := int(remaining.Seconds()) % 60

	if hours > 0 {
		return fmt.Sprintf(MsgFmtCooldownHours, phrase, hours, minutes)
	}
	if minutes > 0 {
		return fmt.Sprintf(MsgFmtCooldownMinutes, phrase, minutes, seconds)
	}
	return fmt.Sprintf(MsgFmtCooldownSeconds, phrase, seconds)
}

// respondServiceError maps a service error onto its HTTP status by error kind.
// Expected failures carry the domain message; unexpected ones are logged and hidden.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	kind := domain.KindOf(err)
	log := logger.FromContext(r.Context())

	var cd cooldown.ErrOnCooldown
	if errors.As(err, &cd) {
		seconds := int64(math.Ceil(cd.Remaining.Seconds()))
		w.Header().Set(HeaderRetryAfter, strconv.FormatInt(seconds, 10))
		respondJSON(w, http.StatusTooManyRequests, CooldownResponse{
			Error:            cooldownMessage(cd.Action, cd.Remaining),
			Kind:             domain.KindCooldown.String(),
			Action:           cd.Action,
			RemainingSeconds: seconds,
		})
		return
	}

	status := statusForKind(kind)
	if status == http.StatusInternalServerError {
		log.Error(LogMsgServiceError, "error", err, "kind", kind.String())
		respondJSON(w, status, ErrorResponse{Error: ErrMsgGenericServerError, Kind: kind.String()})
		return
	}

	log.Debug(LogMsgServiceError, "error", err, "kind", kind.String())
	respondJSON(w, status, ErrorResponse{Error: err.Error(), Kind: kind.String()})
}

func statusForKind(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusUnprocessableEntity
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindCooldown:
		return http.StatusTooManyRequests
	case domain.KindCapacity, domain.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
