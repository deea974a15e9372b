package guideapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cityStub struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantErr    string
		wantStatus int
		wantName   string
	}{
		{
			name:     "success",
			status:   http.StatusOK,
			body:     `{"id":"paris","name":"Paris"}`,
			wantName: "Paris",
		},
		{
			name:     "created_is_success",
			status:   http.StatusCreated,
			body:     `{"id":"rome","name":"Rome"}`,
			wantName: "Rome",
		},
		{
			name:       "server_error",
			status:     http.StatusBadGateway,
			body:       `upstream down`,
			wantErr:    "unexpected status 502",
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "not_found",
			status:     http.StatusNotFound,
			body:       `{"error":"unknown city"}`,
			wantErr:    "unexpected status 404",
			wantStatus: http.StatusNotFound,
		},
		{
			name:    "malformed_response",
			status:  http.StatusOK,
			body:    `{not json`,
			wantErr: "unmarshal response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/generate", r.URL.Path)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewClient(WithBaseURL(srv.URL))
			var out cityStub
			err := client.Generate(context.Background(), GenerateRequest{City: "x"}, &out)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				if tt.wantStatus != 0 {
					var se *StatusError
					require.True(t, errors.As(err, &se))
					assert.Equal(t, tt.wantStatus, se.HTTPStatus())
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, out.Name)
		})
	}
}

func TestGenerate_RequestBodies(t *testing.T) {
	var bodies []map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		bodies = append(bodies, body)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))
	var out cityStub
	require.NoError(t, client.Generate(context.Background(), GenerateRequest{
		City:           "London",
		IncludeDetails: true,
		Sections:       []string{"overview", "education"},
	}, &out))
	require.NoError(t, client.Generate(context.Background(), GenerateRequest{City: "London", Query: "best schools?"}, &out))

	require.Len(t, bodies, 2)
	assert.Equal(t, "London", bodies[0]["city"])
	assert.Equal(t, true, bodies[0]["includeDetails"])
	assert.Len(t, bodies[0]["sections"], 2)
	assert.NotContains(t, bodies[0], "query")

	assert.Equal(t, "best schools?", bodies[1]["query"])
	assert.NotContains(t, bodies[1], "sections")
	assert.NotContains(t, bodies[1], "includeDetails")
}

func TestGenerate_TruncatesErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(strings.Repeat("x", 4096)))
	}))
	defer srv.Close()

	err := NewClient(WithBaseURL(srv.URL)).Generate(context.Background(), GenerateRequest{City: "x"}, &cityStub{})
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Len(t, se.Body, maxErrorBody)
}

func TestGenerate_ContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewClient(WithBaseURL(srv.URL)).Generate(ctx, GenerateRequest{City: "x"}, &cityStub{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "send request")
}

func TestGenerate_RateLimited(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL), WithRateLimit(0.001, 1))

	require.NoError(t, client.Generate(context.Background(), GenerateRequest{City: "x"}, &cityStub{}))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := client.Generate(ctx, GenerateRequest{City: "x"}, &cityStub{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit wait")
	assert.Equal(t, int32(1), hits.Load())
}

func TestNewClient_Defaults(t *testing.T) {
	t.Parallel()
	c := NewClient().(*httpClient)
	assert.Equal(t, defaultBaseURL, c.baseURL)
	assert.NotNil(t, c.http)
	assert.Nil(t, c.limiter)

	custom := &http.Client{}
	c = NewClient(WithHTTPClient(custom), WithRateLimit(5, 0)).(*httpClient)
	assert.Equal(t, custom, c.http)
	require.NotNil(t, c.limiter)
	assert.Equal(t, 1, c.limiter.Burst())
}
