package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/gamelog/internal/shared"
	"github.com/google/uuid"
)

func TestClient(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		t.Run("Normalizes BaseURL", func(t *testing.T) {
			c := NewClient(" http://example.com/api/ ", nil)
			if c.BaseURL() != "http://example.com/api" {
				t.Errorf("expected trimmed base URL, got %s", c.BaseURL())
			}
			if c.httpClient != http.DefaultClient {
				t.Error("expected http.DefaultClient to be used")
			}
		})

		t.Run("With Empty BaseURL", func(t *testing.T) {
			if c := NewClient("", nil); c.BaseURL() != defaultBaseURL {
				t.Errorf("expected default base URL, got %s", c.BaseURL())
			}
		})
	})

	t.Run("Get", func(t *testing.T) {
		t.Run("Decodes JSON And Sends Request ID", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodGet {
					t.Errorf("expected GET method, got %s", r.Method)
				}
				if _, err := uuid.Parse(r.Header.Get(requestIDHeader)); err != nil {
					t.Errorf("expected X-Request-ID to hold a uuid, got %q", r.Header.Get(requestIDHeader))
				}
				if r.Header.Get("Content-Type") != "" {
					t.Error("GET without body should not set Content-Type")
				}
				json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
			}))
			defer server.Close()

			var out map[string]string
			if err := NewClient(server.URL, nil).Get(context.Background(), "/health", &out); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if out["status"] != "ok" {
				t.Errorf("expected decoded body, got %v", out)
			}
		})

		t.Run("Invalid JSON", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("not json"))
			}))
			defer server.Close()

			var out map[string]string
			err := NewClient(server.URL, nil).Get(context.Background(), "/", &out)
			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
		})

		t.Run("Connection Refused", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
			url := server.URL
			server.Close()

			err := NewClient(url, nil).Get(context.Background(), "/", nil)
			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
		})

		t.Run("Deadline Exceeded", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				select {
				case <-r.Context().Done():
				case <-time.After(2 * time.Second):
				}
			}))
			defer server.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
			defer cancel()

			err := NewClient(server.URL, nil).Get(ctx, "/", nil)
			if !errors.Is(err, shared.ErrTimeout) {
				t.Errorf("expected ErrTimeout, got %v", err)
			}
		})
	})

	t.Run("Post", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Content-Type") != "application/json" {
				t.Errorf("expected JSON content type, got %s", r.Header.Get("Content-Type"))
			}
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			json.NewEncoder(w).Encode(map[string]string{"echo": body["name"]})
		}))
		defer server.Close()

		var out map[string]string
		err := NewClient(server.URL, nil).Post(context.Background(), "/echo", map[string]string{"name": "Hades"}, &out)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if out["echo"] != "Hades" {
			t.Errorf("expected echoed name, got %v", out)
		}
	})

	t.Run("Error Responses", func(t *testing.T) {
		tt := []struct {
			name       string
			status     int
			body       string
			wantDetail string
			wantErr    error
		}{
			{name: "detail field", status: http.StatusBadRequest, body: `{"detail":"name taken"}`, wantDetail: "name taken", wantErr: shared.ErrAPIRequest},
			{name: "message string", status: http.StatusConflict, body: `{"message":"duplicate","statusCode":409}`, wantDetail: "duplicate", wantErr: shared.ErrAPIRequest},
			{name: "message list", status: http.StatusBadRequest, body: `{"message":["name must be a string","name should not be empty"]}`, wantDetail: "name must be a string; name should not be empty", wantErr: shared.ErrAPIRequest},
			{name: "plain text", status: http.StatusInternalServerError, body: "boom", wantDetail: "boom", wantErr: shared.ErrAPIRequest},
			{name: "unavailable", status: http.StatusServiceUnavailable, body: "", wantErr: shared.ErrServiceUnavailable},
		}

		for _, tc := range tt {
			t.Run(tc.name, func(t *testing.T) {
				server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(tc.status)
					w.Write([]byte(tc.body))
				}))
				defer server.Close()

				err := NewClient(server.URL, nil).Get(context.Background(), "/fail", nil)
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}

				var se *StatusError
				if !errors.As(err, &se) {
					t.Fatalf("expected *StatusError, got %T", err)
				}
				if se.StatusCode != tc.status || se.Detail != tc.wantDetail {
					t.Errorf("unexpected status error %+v", se)
				}
				if se.RequestID == "" {
					t.Error("expected request id on error")
				}
				if tc.wantDetail != "" && !strings.Contains(err.Error(), tc.wantDetail) {
					t.Errorf("error message %q should contain detail", err.Error())
				}
			})
		}
	})
}

func TestNewHTTPClient(t *testing.T) {
	t.Run("Without Token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "" {
				t.Error("expected no Authorization header")
			}
		}))
		defer server.Close()

		client := NewHTTPClient(context.Background(), "", 5*time.Second)
		if client.Timeout != 5*time.Second {
			t.Errorf("expected timeout to be set, got %v", client.Timeout)
		}
		if err := NewClient(server.URL, client).Get(context.Background(), "/", nil); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("With Token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("Authorization"); got != "Bearer secret" {
				t.Errorf("expected bearer token, got %q", got)
			}
		}))
		defer server.Close()

		client := NewHTTPClient(context.Background(), "secret", time.Second)
		if err := NewClient(server.URL, client).Get(context.Background(), "/", nil); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})
}
