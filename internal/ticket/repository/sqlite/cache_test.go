package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"appliance-support-bot/internal/model"
	"appliance-support-bot/internal/storage"
	"appliance-support-bot/internal/ticket/repository"
	"appliance-support-bot/internal/ticket/repository/sqlite"
)

func newTestCache(t *testing.T) repository.CacheRepository {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "tickets.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cache, err := sqlite.New(db)
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}
	return cache
}

func TestCacheAddAndList(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	t.Run("Empty List", func(t *testing.T) {
		tickets, err := cache.List(ctx, "u1")
		if err != nil {
			t.Fatal(err)
		}
		if len(tickets) != 0 {
			t.Errorf("expected empty list, got %v", tickets)
		}
	})

	t.Run("Ordered By Id", func(t *testing.T) {
		for _, tk := range []model.LocalTicket{
			{ID: 7, Category: "Electrical", Status: model.TicketStatusOpen},
			{ID: 5, Category: "Plumbing", Status: model.TicketStatusOpen},
		} {
			if err := cache.Add(ctx, "u1", tk); err != nil {
				t.Fatal(err)
			}
		}
		tickets, err := cache.List(ctx, "u1")
		if err != nil {
			t.Fatal(err)
		}
		if len(tickets) != 2 || tickets[0].ID != 5 || tickets[1].ID != 7 {
			t.Errorf("expected [5 7] ordering, got %v", tickets)
		}
	})

	t.Run("Add Is Upsert", func(t *testing.T) {
		if err := cache.Add(ctx, "u1", model.LocalTicket{
			ID: 5, Category: "Mechanical", Status: model.TicketStatusClosed,
		}); err != nil {
			t.Fatal(err)
		}
		tickets, err := cache.List(ctx, "u1")
		if err != nil {
			t.Fatal(err)
		}
		if len(tickets) != 2 {
			t.Fatalf("upsert must not duplicate, got %v", tickets)
		}
		if tickets[0].Category != "Mechanical" || tickets[0].Status != model.TicketStatusClosed {
			t.Errorf("upsert must refresh fields, got %+v", tickets[0])
		}
	})

	t.Run("Users Are Isolated", func(t *testing.T) {
		if err := cache.Add(ctx, "u2", model.LocalTicket{ID: 99, Category: "General", Status: model.TicketStatusOpen}); err != nil {
			t.Fatal(err)
		}
		tickets, err := cache.List(ctx, "u1")
		if err != nil {
			t.Fatal(err)
		}
		for _, tk := range tickets {
			if tk.ID == 99 {
				t.Errorf("ticket from another user leaked into list")
			}
		}
	})
}

func TestCacheMutations(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	seed := model.LocalTicket{ID: 5, Category: "Plumbing", Status: model.TicketStatusOpen}
	if err := cache.Add(ctx, "u1", seed); err != nil {
		t.Fatal(err)
	}

	t.Run("Update Status", func(t *testing.T) {
		if err := cache.UpdateStatus(ctx, "u1", 5, "resolved"); err != nil {
			t.Fatal(err)
		}
		tickets, _ := cache.List(ctx, "u1")
		if tickets[0].Status != "resolved" {
			t.Errorf("status not updated: %+v", tickets[0])
		}
	})

	t.Run("Update Category", func(t *testing.T) {
		if err := cache.UpdateCategory(ctx, "u1", 5, "Mechanical"); err != nil {
			t.Fatal(err)
		}
		tickets, _ := cache.List(ctx, "u1")
		if tickets[0].Category != "Mechanical" {
			t.Errorf("category not updated: %+v", tickets[0])
		}
	})

	t.Run("Remove", func(t *testing.T) {
		if err := cache.Remove(ctx, "u1", 5); err != nil {
			t.Fatal(err)
		}
		tickets, _ := cache.List(ctx, "u1")
		if len(tickets) != 0 {
			t.Errorf("expected empty cache, got %v", tickets)
		}
		// Removing an absent ticket is not an error.
		if err := cache.Remove(ctx, "u1", 5); err != nil {
			t.Errorf("second remove: %v", err)
		}
	})
}
