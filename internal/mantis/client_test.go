package mantis_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"appliance-support-bot/internal/mantis"
)

func newTestClient(handler http.HandlerFunc) (*mantis.Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return mantis.NewClient(srv.URL, "test-token"), srv
}

func TestListProjects(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/projects" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			if got := r.Header.Get("Authorization"); got != "test-token" {
				t.Errorf("unexpected auth header %q", got)
			}
			json.NewEncoder(w).Encode(map[string]any{
				"projects": []map[string]any{
					{"id": 1, "name": "Appliances"},
					{"id": 2, "name": "Other"},
				},
			})
		})
		defer srv.Close()

		projects, err := client.ListProjects(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(projects) != 2 || projects[0].Name != "Appliances" {
			t.Errorf("unexpected projects: %+v", projects)
		}
	})

	t.Run("Unauthorized", func(t *testing.T) {
		client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
		defer srv.Close()

		_, err := client.ListProjects(context.Background())
		if !errors.Is(err, mantis.ErrUnauthorized) {
			t.Errorf("expected ErrUnauthorized, got %v", err)
		}
	})
}

func TestListCategories(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/projects/1/categories" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			json.NewEncoder(w).Encode(map[string]any{
				"categories": []map[string]any{
					{"id": 10, "name": "Plumbing"},
				},
			})
		})
		defer srv.Close()

		cats, err := client.ListCategories(context.Background(), 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(cats) != 1 || cats[0].Name != "Plumbing" {
			t.Errorf("unexpected categories: %+v", cats)
		}
	})

	t.Run("Endpoint Missing Falls Back To General", func(t *testing.T) {
		client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		defer srv.Close()

		cats, err := client.ListCategories(context.Background(), 1)
		if err != nil {
			t.Fatalf("expected fallback, got error: %v", err)
		}
		if len(cats) != 1 || cats[0].Name != "General" {
			t.Errorf("expected default General category, got %+v", cats)
		}
	})
}

func TestCreateIssue(t *testing.T) {
	t.Run("Nested Issue Response", func(t *testing.T) {
		client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/issues" {
				t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
			}
			var req mantis.CreateIssueRequest
			json.NewDecoder(r.Body).Decode(&req)
			if req.Summary != "washer leaks" {
				t.Errorf("unexpected summary %q", req.Summary)
			}
			json.NewEncoder(w).Encode(map[string]any{
				"issue": map[string]any{"id": 42, "summary": "washer leaks"},
			})
		})
		defer srv.Close()

		issue, err := client.CreateIssue(context.Background(), mantis.CreateIssueRequest{
			Summary:  "washer leaks",
			Project:  mantis.ObjectRef{Name: "Appliances"},
			Category: mantis.ObjectRef{Name: "Plumbing"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if issue.ID != 42 {
			t.Errorf("expected id 42, got %d", issue.ID)
		}
	})

	t.Run("Empty Category Defaults To General", func(t *testing.T) {
		client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			var req mantis.CreateIssueRequest
			json.NewDecoder(r.Body).Decode(&req)
			if req.Category.Name != "General" {
				t.Errorf("expected defaulted category, got %q", req.Category.Name)
			}
			json.NewEncoder(w).Encode(map[string]any{"issue": map[string]any{"id": 1}})
		})
		defer srv.Close()

		if _, err := client.CreateIssue(context.Background(), mantis.CreateIssueRequest{
			Summary: "x", Project: mantis.ObjectRef{Name: "Appliances"},
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestGetIssueShapes(t *testing.T) {
	shapes := []struct {
		name string
		body string
	}{
		{"Nested Issue", `{"issue":{"id":7,"summary":"noisy drum","status":{"id":50,"name":"assigned"}}}`},
		{"Issue List", `{"issues":[{"id":7,"summary":"noisy drum","status":{"id":50,"name":"assigned"}}]}`},
		{"Flat", `{"id":7,"summary":"noisy drum","status":{"id":50,"name":"assigned"}}`},
	}
	for _, tc := range shapes {
		t.Run(tc.name, func(t *testing.T) {
			client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/issues/7" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				w.Write([]byte(tc.body))
			})
			defer srv.Close()

			issue, err := client.GetIssue(context.Background(), 7)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if issue.ID != 7 || issue.Summary != "noisy drum" || issue.Status.Name != "assigned" {
				t.Errorf("shape not normalized: %+v", issue)
			}
		})
	}

	t.Run("Not Found", func(t *testing.T) {
		client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
		defer srv.Close()

		_, err := client.GetIssue(context.Background(), 999)
		if !errors.Is(err, mantis.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestIssueMutations(t *testing.T) {
	t.Run("Update Sends Patch", func(t *testing.T) {
		client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPatch || r.URL.Path != "/issues/5" {
				t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
			}
			var patch mantis.IssuePatch
			json.NewDecoder(r.Body).Decode(&patch)
			if patch.Status == nil || patch.Status.ID != 90 {
				t.Errorf("unexpected patch %+v", patch)
			}
			w.Write([]byte(`{"issue":{"id":5}}`))
		})
		defer srv.Close()

		err := client.UpdateIssue(context.Background(), 5, mantis.IssuePatch{
			Status: &mantis.ObjectRef{ID: 90},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodDelete || r.URL.Path != "/issues/5" {
				t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
			}
			w.WriteHeader(http.StatusOK)
		})
		defer srv.Close()

		if err := client.DeleteIssue(context.Background(), 5); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("Add Note", func(t *testing.T) {
		client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			var patch mantis.IssuePatch
			json.NewDecoder(r.Body).Decode(&patch)
			if patch.Note != "Closed via support bot." {
				t.Errorf("unexpected note %q", patch.Note)
			}
			w.WriteHeader(http.StatusOK)
		})
		defer srv.Close()

		if err := client.AddNote(context.Background(), 5, "Closed via support bot."); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("Server Error Surfaces Body", func(t *testing.T) {
		client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("boom"))
		})
		defer srv.Close()

		err := client.DeleteIssue(context.Background(), 5)
		if err == nil {
			t.Fatalf("expected error")
		}
	})
}
