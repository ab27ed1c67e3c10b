package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/resume-shortlist/internal/evaluation"
	"github.com/jonathan/resume-shortlist/internal/schemas"
	"go.uber.org/zap"
)

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		notFound  *evaluation.NotFoundError
		invalid   *evaluation.ValidationError
		schemaErr *schemas.ValidationError
		tooLarge  *http.MaxBytesError
	)
	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &invalid), errors.As(err, &schemaErr):
		return http.StatusBadRequest
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// serviceError writes err with the status HTTPStatus picks. Server errors are logged.
func (s *Server) serviceError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		s.log.Error("request error", zap.String("path", r.URL.Path), zap.Error(err))
	}
	s.errorResponse(w, status, err.Error())
}
