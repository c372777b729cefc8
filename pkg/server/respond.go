package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	gderrors "github.com/matzehuels/graphdesk/pkg/errors"
)

// maxBodyBytes caps request bodies; a full snapshot of the largest generated
// graph fits comfortably.
const maxBodyBytes = 8 << 20

// errorBody is the JSON error envelope.
type errorBody struct {
	Code    gderrors.Code `json:"code"`
	Message string        `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	e := gderrors.Classify(err)
	writeJSON(w, gderrors.HTTPStatus(e.Code), errorBody{Code: e.Code, Message: e.Message})
}

func errNotFound(path string) error {
	return gderrors.New(gderrors.ErrCodeNotFound, "no route for %s", path)
}

// decode reads a JSON body into v, rejecting unknown fields.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return gderrors.Wrap(gderrors.ErrCodeInvalidInput, err, "invalid request body")
	}
	return nil
}

// intParam parses the named chi URL parameter.
func intParam(r *http.Request, name string) (int, error) {
	raw := chi.URLParam(r, name)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, gderrors.New(gderrors.ErrCodeInvalidInput, "%s must be an integer, got %q", name, raw)
	}
	return n, nil
}

// floatQuery parses an optional float query parameter, returning def when
// absent.
func floatQuery(r *http.Request, name string, def float64) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, gderrors.New(gderrors.ErrCodeInvalidInput, "%s must be a number, got %q", name, raw)
	}
	return f, nil
}

// intListQuery parses a comma-separated list of integers.
func intListQuery(r *http.Request, name string) ([]int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, gderrors.New(gderrors.ErrCodeInvalidInput, "%s: invalid vertex %q", name, p)
		}
		out = append(out, n)
	}
	return out, nil
}

func boolQuery(r *http.Request, name string) bool {
	b, _ := strconv.ParseBool(r.URL.Query().Get(name))
	return b
}

func unsupportedAlgorithm(algo string) error {
	return gderrors.New(gderrors.ErrCodeInvalidInput, "unknown algorithm %q (must be one of: bfs, dfs, dijkstra)", algo)
}
