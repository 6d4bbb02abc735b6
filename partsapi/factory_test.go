package partsapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFactoryDefaults(t *testing.T) {
	cfg := ClientConfig{BaseURL: "http://localhost:8080"}
	cfg.applyDefaults()

	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.Timeout)
	}
	if cfg.RetryAttempts != 3 {
		t.Errorf("RetryAttempts = %d, want 3", cfg.RetryAttempts)
	}
	if cfg.RetryDelay != time.Second {
		t.Errorf("RetryDelay = %v, want 1s", cfg.RetryDelay)
	}
}

func TestFactoryAuthPrecedence(t *testing.T) {
	var gotAuth, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotKey = r.Header.Get("X-API-Key")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client, err := New(ClientConfig{BaseURL: srv.URL, Token: "tok", APIKey: "key"})
	if err != nil {
		t.Fatal(err)
	}
	if err := client.DeletePart(context.Background(), "p-1"); err != nil {
		t.Fatal(err)
	}
	if gotAuth != "Bearer tok" {
		t.Errorf("Authorization = %q, token must win over api key", gotAuth)
	}
	if gotKey != "" {
		t.Errorf("X-API-Key = %q, want unset", gotKey)
	}

	client, err = New(ClientConfig{BaseURL: srv.URL, APIKey: "key"})
	if err != nil {
		t.Fatal(err)
	}
	if err := client.DeletePart(context.Background(), "p-1"); err != nil {
		t.Fatal(err)
	}
	if gotKey != "key" {
		t.Errorf("X-API-Key = %q, want key", gotKey)
	}
}

func TestFactoryPresets(t *testing.T) {
	tests := []struct {
		name string
		make func(...Option) (*Client, error)
	}{
		{"development", NewDevelopment},
		{"staging", NewStaging},
		{"production", NewProduction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := tt.make()
			if err != nil {
				t.Fatalf("preset error = %v", err)
			}
			if client == nil {
				t.Fatal("preset returned nil client")
			}
		})
	}
}

func TestFactoryPresetOptions(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client, err := newPreset(ClientConfig{BaseURL: srv.URL, RetryAttempts: 1}, WithToken("dev-tok"))
	if err != nil {
		t.Fatal(err)
	}
	if err := client.DeletePart(context.Background(), "p-1"); err != nil {
		t.Fatal(err)
	}
	if gotAuth != "Bearer dev-tok" {
		t.Errorf("Authorization = %q", gotAuth)
	}
}
