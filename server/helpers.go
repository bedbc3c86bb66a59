package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ezBadminton/goswiss/core"
	"github.com/ezBadminton/goswiss/store"
)

const maxBodyBytes = 1_048_576

type envelope map[string]any

func readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var maxBytesError *http.MaxBytesError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return fmt.Errorf("body contains unknown key %s", fieldName)
		case errors.As(err, &maxBytesError):
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

func writeJSON(w http.ResponseWriter, status int, data any) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}
	js = append(js, '\n')

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	return err
}

func (s *Server) errorResponse(w http.ResponseWriter, r *http.Request, status int, message any) {
	if err := writeJSON(w, status, envelope{"error": message}); err != nil {
		s.requestLogger(r).WithError(err).Error("failed to write error response")
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (s *Server) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	s.requestLogger(r).WithError(err).Error("internal server error")
	message := "the server encountered a problem and could not process your request"
	s.errorResponse(w, r, http.StatusInternalServerError, message)
}

func (s *Server) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	s.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (s *Server) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	s.errorResponse(w, r, http.StatusNotFound, "the requested resource could not be found")
}

// Maps the errors of the engine and the store to responses
func (s *Server) mapServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrTournamentNotFound):
		s.notFoundResponse(w, r)

	case errors.Is(err, core.ErrEmptyRoster),
		errors.Is(err, core.ErrInsufficientPlayers),
		errors.Is(err, core.ErrDuplicateCompetitorName),
		errors.Is(err, core.ErrBlankCompetitorName),
		errors.Is(err, core.ErrInvalidRoundCount),
		errors.Is(err, core.ErrUnknownPairingMethod):
		s.errorResponse(w, r, http.StatusUnprocessableEntity, err.Error())

	case errors.Is(err, core.ErrInvalidScore),
		errors.Is(err, core.ErrResultsMismatch),
		errors.Is(err, core.ErrUnknownCompetitor),
		errors.Is(err, core.ErrSelfMatch):
		s.badRequestResponse(w, r, err)

	case errors.Is(err, core.ErrTournamentFinished),
		errors.Is(err, core.ErrRoundNotEntered):
		s.errorResponse(w, r, http.StatusConflict, err.Error())

	default:
		s.serverErrorResponse(w, r, err)
	}
}
