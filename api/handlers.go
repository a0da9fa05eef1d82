// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/blinklabs-io/namgov"
	"github.com/blinklabs-io/namgov/internal/input"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "namgov"

// writeJSON writes a JSON response with the given status code.
func writeJSON(
	w http.ResponseWriter,
	status int,
	v any,
) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,errchkjson
	json.NewEncoder(w).Encode(v)
}

func writeError(
	w http.ResponseWriter,
	status int,
	message string,
) {
	writeJSON(w, status, ErrorResponse{
		StatusCode: status,
		Error:      http.StatusText(status),
		Message:    message,
	})
}

// handleRoot handles GET / and returns service metadata.
func (s *Server) handleRoot(
	w http.ResponseWriter,
	_ *http.Request,
) {
	writeJSON(w, http.StatusOK, RootResponse{
		Name:    serviceName,
		Version: s.config.Version,
	})
}

func (s *Server) handleHealth(
	w http.ResponseWriter,
	_ *http.Request,
) {
	writeJSON(w, http.StatusOK, HealthResponse{
		IsHealthy: true,
	})
}

func (s *Server) handleKinds(
	w http.ResponseWriter,
	_ *http.Request,
) {
	kinds := namgov.RecordKinds()
	resp := KindsResponse{Kinds: make([]string, 0, len(kinds))}
	for _, kind := range kinds {
		resp.Kinds = append(resp.Kinds, string(kind))
	}
	writeJSON(w, http.StatusOK, resp)
}

// decodeFailure carries the HTTP status and metric outcome of a rejected
// decode request.
type decodeFailure struct {
	status  int
	outcome string
	err     error
}

func (f *decodeFailure) Error() string {
	return f.err.Error()
}

func (f *decodeFailure) Unwrap() error {
	return f.err
}

func fail(status int, outcome string, err error) *decodeFailure {
	return &decodeFailure{status: status, outcome: outcome, err: err}
}

// handleDecode handles POST /api/v0/decode/{kind}. The body holds the
// record in the encoding named by the "encoding" query parameter.
func (s *Server) handleDecode(
	w http.ResponseWriter,
	r *http.Request,
) {
	kindName := r.PathValue("kind")
	ctx, span := s.tracer.Start(
		r.Context(),
		"decode",
		trace.WithAttributes(attribute.String("namgov.kind", kindName)),
	)
	defer span.End()

	kindLabel := kindUnknown
	kind, err := namgov.ParseRecordKind(kindName)
	if err == nil {
		kindLabel = string(kind)
	}
	start := time.Now()
	out, failure := s.decode(w, r, kind, err)
	s.metrics.decodeDuration.WithLabelValues(kindLabel).
		Observe(time.Since(start).Seconds())

	if failure != nil {
		span.RecordError(failure.err)
		span.SetStatus(codes.Error, failure.outcome)
		s.metrics.requestsTotal.WithLabelValues(kindLabel, failure.outcome).Inc()
		if failure.status >= http.StatusInternalServerError {
			s.logger.ErrorContext(
				ctx,
				"failed to render record",
				"kind", kindLabel,
				"error", failure.err,
			)
		} else {
			s.logger.DebugContext(
				ctx,
				"rejected decode request",
				"kind", kindLabel,
				"outcome", failure.outcome,
				"error", failure.err,
			)
		}
		writeError(w, failure.status, failure.err.Error())
		return
	}

	s.metrics.requestsTotal.WithLabelValues(kindLabel, outcomeOK).Inc()
	span.SetStatus(codes.Ok, "")
	if kind.PlainText() {
		quoted, err := json.Marshal(out)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		out = string(quoted)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck
	w.Write([]byte(out))
}

func (s *Server) decode(
	w http.ResponseWriter,
	r *http.Request,
	kind namgov.RecordKind,
	kindErr error,
) (string, *decodeFailure) {
	if kindErr != nil {
		return "", fail(http.StatusNotFound, outcomeInvalidRequest, kindErr)
	}
	opts, enc, failure := s.parseQuery(r, kind)
	if failure != nil {
		return "", failure
	}

	body := http.MaxBytesReader(w, r.Body, s.config.MaxBodySize)
	data, err := input.Read(body, enc, s.config.MaxBodySize)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) || errors.Is(err, input.ErrTooLarge) {
			return "", fail(
				http.StatusRequestEntityTooLarge,
				outcomeTooLarge,
				fmt.Errorf("%w: limit is %d bytes", input.ErrTooLarge, s.config.MaxBodySize),
			)
		}
		return "", fail(http.StatusBadRequest, outcomeInvalidRequest, err)
	}
	s.metrics.inputBytes.WithLabelValues(string(kind)).
		Observe(float64(len(data)))

	out, err := namgov.Decode(kind, data, opts)
	switch {
	case err == nil:
		return out, nil
	case errors.Is(err, namgov.ErrNotFound):
		return "", fail(http.StatusNotFound, outcomeNotFound, err)
	case errors.Is(err, namgov.ErrDecode):
		return "", fail(http.StatusBadRequest, outcomeDecodeError, err)
	default:
		return "", fail(
			http.StatusInternalServerError,
			outcomeSerializationError,
			err,
		)
	}
}

func (s *Server) parseQuery(
	r *http.Request,
	kind namgov.RecordKind,
) (namgov.DecodeOptions, input.Encoding, *decodeFailure) {
	var opts namgov.DecodeOptions
	query := r.URL.Query()
	enc := s.config.DefaultEncoding
	if v := query.Get("encoding"); v != "" {
		parsed, err := input.ParseEncoding(v)
		if err != nil {
			return opts, "", fail(http.StatusBadRequest, outcomeInvalidRequest, err)
		}
		enc = parsed
	}
	if kind.NeedsEpoch() {
		v := query.Get("epoch")
		if v == "" {
			return opts, "", fail(
				http.StatusBadRequest,
				outcomeInvalidRequest,
				errors.New("missing required query parameter: epoch"),
			)
		}
		epoch, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return opts, "", fail(
				http.StatusBadRequest,
				outcomeInvalidRequest,
				fmt.Errorf("invalid epoch: %w", err),
			)
		}
		opts.CurrentEpoch = epoch
	}
	if v := query.Get("optional"); v != "" {
		optional, err := strconv.ParseBool(v)
		if err != nil {
			return opts, "", fail(
				http.StatusBadRequest,
				outcomeInvalidRequest,
				fmt.Errorf("invalid optional flag: %w", err),
			)
		}
		opts.Optional = optional
	}
	return opts, enc, nil
}
