package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	apperrors "studiodesk/pkg/errors"
)

// SessionHeader carries the session ID issued by POST /api/v1/session.
const SessionHeader = "X-Session-ID"

// ExtractPage reads the 1-based page and the page size from the query.
// Missing values come back as zero for the caller to normalize.
func ExtractPage(r *http.Request) (int, int, error) {
	query := r.URL.Query()

	page := 0
	if s := query.Get("page"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid page parameter: " + s)
		}
		page = v
	}

	pageSize := 0
	if s := query.Get("pageSize"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid pageSize parameter: " + s)
		}
		pageSize = v
	}

	return page, pageSize, nil
}

// SessionID returns the caller's session ID or an Unauthorized error.
func SessionID(r *http.Request) (string, error) {
	id := r.Header.Get(SessionHeader)
	if id == "" {
		return "", apperrors.Unauthorized("missing " + SessionHeader + " header")
	}
	return id, nil
}

// DecodeBody reads a JSON request body into v. An empty or malformed body
// is reported as invalid input.
func DecodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return apperrors.InvalidInput("Request body is required")
		}
		return apperrors.InvalidInput("Invalid request body")
	}
	return nil
}
