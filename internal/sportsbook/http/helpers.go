package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/radieske/league-sportsbook/internal/sportsbook/dto"
	"github.com/radieske/league-sportsbook/internal/tournament"
)

const maxBodyBytes = 1 << 20

// readJSON decodifica um único objeto JSON, recusando campos desconhecidos
func readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var syntaxError *json.SyntaxError
		var typeError *json.UnmarshalTypeError
		var tooLarge *http.MaxBytesError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &typeError):
			if typeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", typeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", typeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			return fmt.Errorf("body contains unknown key %s", strings.TrimPrefix(err.Error(), "json: unknown field "))
		case errors.As(err, &tooLarge):
			return fmt.Errorf("body must not be larger than %d bytes", maxBodyBytes)
		default:
			return err
		}
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}
	return nil
}

// writeJSON serializa a resposta em JSON e define o status HTTP
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
}

// statusFor traduz erros de domínio para status HTTP
func statusFor(err error) int {
	switch {
	case errors.Is(err, tournament.ErrPersistenceFailure):
		return http.StatusServiceUnavailable

	case errors.Is(err, tournament.ErrUnknownParticipant),
		errors.Is(err, tournament.ErrUnknownFixture),
		errors.Is(err, tournament.ErrUnknownGroup):
		return http.StatusNotFound

	case errors.Is(err, tournament.ErrDuplicateParticipant),
		errors.Is(err, tournament.ErrFixtureAlreadyDecided),
		errors.Is(err, tournament.ErrTransitionNotSupported),
		errors.Is(err, tournament.ErrTerminalPhase):
		return http.StatusConflict

	case errors.Is(err, tournament.ErrInvalidParticipant),
		errors.Is(err, tournament.ErrInvalidPrediction),
		errors.Is(err, tournament.ErrInvalidStake),
		errors.Is(err, tournament.ErrInvalidScore),
		errors.Is(err, tournament.ErrInvalidAmount),
		errors.Is(err, tournament.ErrInsufficientFunds),
		errors.Is(err, tournament.ErrInsufficientQualifiers):
		return http.StatusUnprocessableEntity

	default:
		return http.StatusInternalServerError
	}
}

// writeError responde o erro de uma operação. Em falha de persistência o
// resultado (já aplicado em memória) vai junto no corpo do 503.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error, result any) {
	status := statusFor(err)
	switch status {
	case http.StatusServiceUnavailable:
		s.log.Error("request applied but not persisted", zap.String("path", r.URL.Path), zap.Error(err))
		writeJSON(w, status, dto.PartialResponse{Error: err.Error(), Result: result})
	case http.StatusInternalServerError:
		s.log.Error("internal error", zap.String("path", r.URL.Path), zap.Error(err))
		writeJSON(w, status, dto.ErrorResponse{Error: "the server encountered a problem and could not process your request"})
	default:
		writeJSON(w, status, dto.ErrorResponse{Error: err.Error()})
	}
}
