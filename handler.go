package signup

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
)

type registerAccountResponse struct {
	ID    ID     `json:"id"`
	Token string `json:"token"`
}

// RegisterAccountHandler exposes registration over JSON. Status classes:
// 422 for field violations (all of them, not just the first), 409 for a
// taken email, 503 when the store is unreachable, 500 for anything else.
// Internal causes go to the log, never into the response body.
func RegisterAccountHandler(svc Service, logger zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req, err := decodeRegisterAccountRequest(r)
		w.Header().Set("Content-Type", "application/json")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		res, err := svc.RegisterAccount(r.Context(), req)
		if err != nil {
			encodeError(err, w, logger)
			return
		}

		logger.Info().Str("id", string(res.ID)).Msg("account registered")

		w.Header().Set("Location", fmt.Sprintf("%s/%s", r.URL.Path, res.ID))
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(registerAccountResponse{ID: res.ID, Token: res.Token}); err != nil {
			logger.Error().Err(err).Msg("encoding response")
		}
	})
}

func encodeError(err error, w http.ResponseWriter, logger zerolog.Logger) {
	if verr, ok := AsValidationError(err); ok {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"errors": verr.Violations,
		})
		return
	}

	var code int
	var msg string
	switch {
	case errors.Is(err, ErrEmailTaken):
		code, msg = http.StatusConflict, ErrEmailTaken.Error()
	case errors.Is(err, ErrStoreUnavailable):
		logger.Error().Err(err).Msg("account store unavailable")
		code, msg = http.StatusServiceUnavailable, "service unavailable"
	default:
		logger.Error().Err(err).Msg("registration failed")
		code, msg = http.StatusInternalServerError, "server error"
	}

	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": msg,
	})
}

func decodeRegisterAccountRequest(r *http.Request) (registerAccountRequest, error) {
	req := registerAccountRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return registerAccountRequest{}, err
	}
	return req, nil
}
