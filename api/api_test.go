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
	"bytes"
	"context"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/blinklabs-io/namgov/internal/input"
	"github.com/blinklabs-io/namgov/internal/test/testutil"
	"github.com/klauspost/compress/zstd"
	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const addr10 = "tnam1qygpzysnzs23v9ccrydpk8qarc0jqgfzyv4h4smf"

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return New(
		Config{
			ListenAddress:   "127.0.0.1:0",
			MaxBodySize:     1024,
			DefaultEncoding: input.EncodingHex,
			PromRegistry:    prometheus.NewRegistry(),
			Version:         "test",
		},
		slog.Default(),
	)
}

func proposalHex() string {
	data := testutil.NewBuilder().
		U64(1).
		U32(0).
		Address(1, testutil.Hash20(0x10)).
		U8(0).None().
		U64(10).U64(20).U64(25).
		Bytes()
	return hex.EncodeToString(data)
}

func addressBytes() []byte {
	return testutil.NewBuilder().Address(1, testutil.Hash20(0x10)).Bytes()
}

func doRequest(
	t *testing.T,
	s *Server,
	method string,
	target string,
	body []byte,
) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, w.Code, resp.StatusCode)
	return resp
}

func TestStartStop(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := newTestServer(t)
	require.NoError(t, s.Start(context.Background()))

	s.mu.Lock()
	assert.NotNil(t, s.httpServer)
	s.mu.Unlock()

	client := &http.Client{
		Transport: &http.Transport{DisableKeepAlives: true},
	}
	resp, err := client.Get("http://" + s.Addr() + "/health")
	require.NoError(t, err)
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	client.CloseIdleConnections()

	stopCtx, stopCancel := context.WithTimeout(
		context.Background(),
		5*time.Second,
	)
	defer stopCancel()
	require.NoError(t, s.Stop(stopCtx))

	s.mu.Lock()
	assert.Nil(t, s.httpServer)
	s.mu.Unlock()
}

func TestStartAlreadyStarted(t *testing.T) {
	s := newTestServer(t)
	ctx := t.Context()
	require.NoError(t, s.Start(ctx))
	defer func() {
		stopCtx, stopCancel := context.WithTimeout(
			context.Background(),
			5*time.Second,
		)
		defer stopCancel()
		_ = s.Stop(stopCtx)
	}()

	err := s.Start(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already started")
}

func TestStopOnContextCancel(t *testing.T) {
	s := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))
	cancel()
	testutil.WaitForCondition(
		t,
		func() bool {
			s.mu.Lock()
			defer s.mu.Unlock()
			return s.httpServer == nil
		},
		5*time.Second,
		"server did not stop after context cancellation",
	)
}

func TestHandleRootAndHealth(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	var root RootResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&root))
	assert.Equal(t, "namgov", root.Name)
	assert.Equal(t, "test", root.Version)

	w = doRequest(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var health HealthResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&health))
	assert.True(t, health.IsHealthy)

	w = doRequest(t, s, http.MethodGet, "/api/v0/kinds", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var kinds KindsResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&kinds))
	assert.Contains(t, kinds.Kinds, "proposal")
	assert.Contains(t, kinds.Kinds, "commission-pair")
}

func TestHandleDecodeProposal(t *testing.T) {
	s := newTestServer(t)
	w := doRequest(
		t, s, http.MethodPost,
		"/api/v0/decode/proposal?epoch=15",
		[]byte(proposalHex()),
	)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(
		t,
		`{"id":1,"proposal_type":"Default","author":"`+addr10+
			`","content":{},"voting_start_epoch":10,"voting_end_epoch":20,`+
			`"grace_epoch":25,"status":"on-going","data":""}`,
		w.Body.String(),
	)
	assert.InDelta(
		t,
		1,
		promtestutil.ToFloat64(
			s.metrics.requestsTotal.WithLabelValues("proposal", outcomeOK),
		),
		0,
	)
}

func TestHandleDecodeAddressEncodings(t *testing.T) {
	s := newTestServer(t)
	raw := addressBytes()
	testDefs := []struct {
		name  string
		query string
		body  []byte
	}{
		{name: "default hex", query: "", body: []byte(hex.EncodeToString(raw))},
		{name: "raw", query: "?encoding=raw", body: raw},
		{
			name:  "base64",
			query: "?encoding=base64",
			body:  []byte(base64.StdEncoding.EncodeToString(raw)),
		},
		{
			name:  "optional",
			query: "?encoding=raw&optional=true",
			body:  append([]byte{1}, raw...),
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			w := doRequest(
				t, s, http.MethodPost,
				"/api/v0/decode/address"+testDef.query,
				testDef.body,
			)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.Equal(t, `"`+addr10+`"`, w.Body.String())
		})
	}
}

func TestHandleDecodeZstdBody(t *testing.T) {
	s := newTestServer(t)
	zw, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	body := zw.EncodeAll(addressBytes(), nil)
	require.NoError(t, zw.Close())

	w := doRequest(t, s, http.MethodPost, "/api/v0/decode/address?encoding=raw", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, `"`+addr10+`"`, w.Body.String())
}

func TestHandleDecodeErrors(t *testing.T) {
	testDefs := []struct {
		name    string
		target  string
		body    []byte
		status  int
		kind    string
		outcome string
		message string
	}{
		{
			name:    "unknown kind",
			target:  "/api/v0/decode/block",
			status:  http.StatusNotFound,
			kind:    kindUnknown,
			outcome: outcomeInvalidRequest,
			message: "unknown record kind",
		},
		{
			name:    "missing epoch",
			target:  "/api/v0/decode/proposal",
			body:    []byte(proposalHex()),
			status:  http.StatusBadRequest,
			kind:    "proposal",
			outcome: outcomeInvalidRequest,
			message: "epoch",
		},
		{
			name:    "bad epoch",
			target:  "/api/v0/decode/proposal?epoch=-1",
			body:    []byte(proposalHex()),
			status:  http.StatusBadRequest,
			kind:    "proposal",
			outcome: outcomeInvalidRequest,
			message: "invalid epoch",
		},
		{
			name:    "bad encoding",
			target:  "/api/v0/decode/votes?encoding=base32",
			status:  http.StatusBadRequest,
			kind:    "votes",
			outcome: outcomeInvalidRequest,
			message: "unknown input encoding",
		},
		{
			name:    "bad hex",
			target:  "/api/v0/decode/votes",
			body:    []byte("zz"),
			status:  http.StatusBadRequest,
			kind:    "votes",
			outcome: outcomeInvalidRequest,
			message: "invalid input",
		},
		{
			name:    "truncated",
			target:  "/api/v0/decode/votes",
			body:    []byte("0100"),
			status:  http.StatusBadRequest,
			kind:    "votes",
			outcome: outcomeDecodeError,
			message: "decoding failed",
		},
		{
			name:    "empty",
			target:  "/api/v0/decode/commission-pair",
			status:  http.StatusBadRequest,
			kind:    "commission-pair",
			outcome: outcomeDecodeError,
			message: "decoding failed",
		},
		{
			name:    "not found",
			target:  "/api/v0/decode/votes?optional=1",
			body:    []byte("00"),
			status:  http.StatusNotFound,
			kind:    "votes",
			outcome: outcomeNotFound,
			message: "value not present",
		},
		{
			name:    "too large",
			target:  "/api/v0/decode/votes?encoding=raw",
			body:    make([]byte, 2048),
			status:  http.StatusRequestEntityTooLarge,
			kind:    "votes",
			outcome: outcomeTooLarge,
			message: "input too large",
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			s := newTestServer(t)
			w := doRequest(t, s, http.MethodPost, testDef.target, testDef.body)
			require.Equal(t, testDef.status, w.Code, w.Body.String())
			resp := decodeError(t, w)
			assert.Equal(t, http.StatusText(testDef.status), resp.Error)
			assert.True(
				t,
				strings.Contains(resp.Message, testDef.message),
				"message %q does not contain %q",
				resp.Message,
				testDef.message,
			)
			assert.InDelta(
				t,
				1,
				promtestutil.ToFloat64(
					s.metrics.requestsTotal.WithLabelValues(
						testDef.kind,
						testDef.outcome,
					),
				),
				0,
			)
		})
	}
}

func TestHandleDecodeMethodNotAllowed(t *testing.T) {
	s := newTestServer(t)
	w := doRequest(t, s, http.MethodGet, "/api/v0/decode/votes", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
