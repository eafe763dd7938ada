package unsplash

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

func TestFetchPageMapsPhotos(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Client-ID test-key" {
			t.Errorf("missing client id header, got %q", got)
		}
		if r.URL.Query().Get("page") != "2" {
			t.Errorf("expected page=2, got %q", r.URL.Query().Get("page"))
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[{
			"id": "abc123",
			"description": "",
			"alt_description": "a mountain",
			"color": "#aabbcc",
			"likes": 42,
			"urls": {"regular": "https://img/r", "full": "https://img/f", "thumb": "https://img/t"},
			"user": {"name": "Jo Doe", "username": "jo", "links": {"html": "https://u/jo"}},
			"links": {"download": "https://img/dl"}
		}]`)
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, AccessKey: "test-key", PerPage: 12}, zerolog.Nop())
	images, err := client.FetchPage(context.Background(), 2)
	if err != nil {
		t.Fatalf("FetchPage failed: %v", err)
	}
	if len(images) != 1 {
		t.Fatalf("expected 1 image, got %d", len(images))
	}
	img := images[0]
	if img.ID != "abc123" || img.URL != "https://img/r" || img.FullURL != "https://img/f" {
		t.Fatalf("bad mapping: %+v", img)
	}
	if img.Description != "a mountain" {
		t.Fatalf("alt description not used: %q", img.Description)
	}
	if img.Photographer.Name != "Jo Doe" || img.Photographer.ProfileURL != "https://u/jo" {
		t.Fatalf("photographer mapping wrong: %+v", img.Photographer)
	}
}

func TestFetchPageEmptyTerminates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, AccessKey: "k"}, zerolog.Nop())
	images, err := client.FetchPage(context.Background(), 99)
	if err != nil {
		t.Fatalf("FetchPage failed: %v", err)
	}
	if len(images) != 0 {
		t.Fatalf("expected terminal empty page, got %d images", len(images))
	}
}

func TestFetchPageErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, AccessKey: "k"}, zerolog.Nop())
	if _, err := client.FetchPage(context.Background(), 1); err == nil {
		t.Fatal("expected error for 403 response")
	}
}
