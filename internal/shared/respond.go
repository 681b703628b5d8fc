package shared

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

// errorBody is the wire shape for all error responses.
type errorBody struct {
	Error   string `json:"error"`
	Success *bool  `json:"success,omitempty"`
}

// RespondJSON writes a JSON body with the given status.
func RespondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// RespondError maps a domain error onto the HTTP taxonomy. Caller-correctable
// errors surface their localized message; anything else is logged and hidden
// behind a generic body.
func RespondError(w http.ResponseWriter, logger *slog.Logger, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrMissingConfiguration):
		status = http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		status = http.StatusUnauthorized
	}

	message := UserMessage(err)
	if message == "" {
		if logger != nil {
			logger.Error("request failed", slog.Any("error", err))
		}
		message = "Серверийн алдаа гарлаа"
	}
	body := errorBody{Error: message}
	if status == http.StatusBadRequest {
		no := false
		body.Success = &no
	}
	RespondJSON(w, status, body)
}

// DecodeJSON decodes a request body, mapping malformed JSON to InvalidInput.
// Unknown fields are ignored, matching the lenient upstream clients.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return InvalidInput("Хүсэлтийн бие буруу байна")
	}
	return nil
}
