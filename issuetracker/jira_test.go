/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package issuetracker

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func newJiraServer(t *testing.T, issues map[string]string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/rest/api/2/issue/{key}", func(w http.ResponseWriter, r *http.Request) {
		key := r.PathValue("key")
		if user, pass, ok := r.BasicAuth(); ok && (user != "bot@example.com" || pass != "secret") {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch status, ok := issues[key]; {
		case key == "BOOM-1":
			w.WriteHeader(http.StatusInternalServerError)
		case !ok:
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"errorMessages": []string{"Issue does not exist or you do not have permission to see it."},
			})
		default:
			_ = json.NewEncoder(w).Encode(map[string]any{
				"key": key,
				"fields": map[string]any{
					"status": map[string]any{"name": status},
				},
			})
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestLookup(t *testing.T) {
	srv := newJiraServer(t, map[string]string{
		"ABC-123": "Accepted",
		"ABC-124": "Open",
	})
	c, err := New(srv.URL, WithBasicAuth("bot@example.com", "secret"))
	require.NoError(t, err)

	tests := []struct {
		name    string
		key     string
		want    TicketState
		wantErr bool
	}{{
		name: "accepted ticket",
		key:  "ABC-123",
		want: TicketState{Key: "ABC-123", Status: "Accepted", Found: true},
	}, {
		name: "open ticket",
		key:  "ABC-124",
		want: TicketState{Key: "ABC-124", Status: "Open", Found: true},
	}, {
		name: "unknown ticket",
		key:  "NOPE-1",
		want: NotFound("NOPE-1"),
	}, {
		name:    "server error",
		key:     "BOOM-1",
		wantErr: true,
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Lookup(context.Background(), tt.key)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Lookup() error: got = %v, wanted error = %v", err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Lookup() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLookupBadCredentials(t *testing.T) {
	srv := newJiraServer(t, map[string]string{"ABC-123": "Accepted"})
	c, err := New(srv.URL, WithBasicAuth("bot@example.com", "wrong"))
	require.NoError(t, err)

	if _, err := c.Lookup(context.Background(), "ABC-123"); err == nil {
		t.Error("Lookup() error: got = nil, wanted = non-nil")
	}
}

func TestNewRequiresBaseURL(t *testing.T) {
	if _, err := New("  "); err == nil {
		t.Error("New() error: got = nil, wanted = non-nil")
	}
}
