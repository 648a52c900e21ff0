package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/brandish-progression/internal/domain"
	"github.com/osse101/brandish-progression/internal/logger"
)

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// DecodeAndValidateRequest decodes a JSON request body and validates it.
// If it returns an error the response has already been written.
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context())

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		log.Warn(LogMsgDecodeFailed, "action", actionName, "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}
	log.Debug(LogMsgRequestDecoded, "action", actionName)

	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: FormatValidationError(err),
		})
		return err
	}
	return nil
}

// pathParams holds the ids every player route carries
type pathParams struct {
	GuildID  string `validate:"required,max=64,identifier"`
	PlayerID string `validate:"required,max=64,identifier"`
}

// profileKey reads and validates the guild and player path parameters.
// If ok is false the response has already been written.
func profileKey(w http.ResponseWriter, r *http.Request) (domain.ProfileKey, bool) {
	params := pathParams{
		GuildID:  chi.URLParam(r, ParamGuildID),
		PlayerID: chi.URLParam(r, ParamPlayerID),
	}
	if err := GetValidator().ValidateStruct(params); err != nil {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: FormatValidationError(err),
		})
		return domain.ProfileKey{}, false
	}
	return domain.ProfileKey{GuildID: params.GuildID, PlayerID: params.PlayerID}, true
}

// idParam reads a catalog or mission id path parameter
func idParam(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	value := chi.URLParam(r, name)
	if err := GetValidator().ValidateVar(value, "required,max=64,identifier"); err != nil {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: map[string]string{name: "Must be a non-empty id of letters, digits, '_' or '-'"},
		})
		return "", false
	}
	return value, true
}
