package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/resume-shortlist/internal/evaluation"
	"github.com/jonathan/resume-shortlist/internal/types"
)

// maxBodyBytes bounds request bodies; resumes arrive as plain text.
const maxBodyBytes = 5 << 20

// readBody reads the request body up to maxBodyBytes.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	return body, nil
}

// decodeBody unmarshals a JSON body into v.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	body, err := readBody(w, r)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return &evaluation.ValidationError{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	return nil
}

// parseQueryInt reads an integer query parameter, falling back to defaultValue
// when it is absent or malformed.
func parseQueryInt(r *http.Request, key string, defaultValue int) int {
	valStr := r.URL.Query().Get(key)
	if valStr == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		return defaultValue
	}
	return val
}

// parseQueryFloat reads an optional float query parameter.
func parseQueryFloat(r *http.Request, key string) (*float64, error) {
	valStr := strings.TrimSpace(r.URL.Query().Get(key))
	if valStr == "" {
		return nil, nil
	}
	val, err := strconv.ParseFloat(valStr, 64)
	if err != nil {
		return nil, &evaluation.ValidationError{Field: key, Message: "must be a number"}
	}
	return &val, nil
}

// parsePathUUID parses a UUID path value.
func parsePathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, &evaluation.ValidationError{Field: name, Message: "must be a UUID"}
	}
	return id, nil
}

// parseEvaluationFilter builds a filter from the listing query parameters.
func parseEvaluationFilter(r *http.Request) (types.EvaluationFilter, error) {
	q := r.URL.Query()
	filter := types.DefaultEvaluationFilter()

	if status := q.Get("status"); status != "" {
		st := types.EvaluationStatus(status)
		filter.Status = &st
	}

	var err error
	bounds := []struct {
		key string
		dst **float64
	}{
		{"min_score", &filter.MinScore},
		{"max_score", &filter.MaxScore},
		{"min_experience", &filter.MinExperience},
		{"max_experience", &filter.MaxExperience},
	}
	for _, b := range bounds {
		if *b.dst, err = parseQueryFloat(r, b.key); err != nil {
			return filter, err
		}
	}

	filter.SkillsKeyword = q.Get("skills_keyword")
	filter.EducationKeyword = q.Get("education_keyword")
	if v := q.Get("sort_by"); v != "" {
		filter.SortBy = types.SortField(v)
	}
	if v := q.Get("sort_order"); v != "" {
		filter.SortOrder = types.SortOrder(strings.ToLower(v))
	}
	return filter, nil
}
