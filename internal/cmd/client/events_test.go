package client

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestEventsPollCommandHitsAPI(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[],"sync":"sync:0","has_more":false}`))
	}))
	defer srv.Close()

	cmd := NewEventsCommand(func() string { return srv.URL })
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"poll", "--resource", "P1", "--sync", "sync:0"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if gotPath != "/v1/events" {
		t.Fatalf("path: %s", gotPath)
	}
	if !strings.Contains(gotQuery, "resource=P1") || !strings.Contains(gotQuery, "sync=sync%3A0") {
		t.Fatalf("query: %s", gotQuery)
	}
	if !strings.Contains(out.String(), `"sync": "sync:0"`) {
		t.Fatalf("output: %s", out.String())
	}
}

func TestEventsRecordCommandPosts(t *testing.T) {
	var gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"sync":"sync:1"}`))
	}))
	defer srv.Close()

	cmd := NewEventsCommand(func() string { return srv.URL })
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"record", "--resource", "T1", "--action", "added", "--change", `{"field":"name"}`})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if gotMethod != http.MethodPost {
		t.Fatalf("method: %s", gotMethod)
	}
}

func TestEventsRecordRejectsBadChangeJSON(t *testing.T) {
	cmd := NewEventsCommand(func() string { return "http://127.0.0.1:1" })
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"record", "--resource", "T1", "--change", "{not json"})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error for invalid change JSON")
	}
}
