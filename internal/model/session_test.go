package model_test

import (
	"testing"

	"appliance-support-bot/internal/model"
)

func TestSessionActionStack(t *testing.T) {
	t.Run("Push Replaces Top", func(t *testing.T) {
		sess := model.NewSession("u1")
		sess.PushAction(model.ActionAskedKB)
		sess.PushAction(model.ActionAskedTicket)
		if len(sess.ActionStack) != 1 {
			t.Fatalf("stack must hold at most one pending question, got %d", len(sess.ActionStack))
		}
		if sess.PeekAction() != model.ActionAskedTicket {
			t.Errorf("expected latest question on top, got %q", sess.PeekAction())
		}
	})

	t.Run("Pop And Peek", func(t *testing.T) {
		sess := model.NewSession("u1")
		if sess.PeekAction() != "" {
			t.Errorf("empty stack must peek empty, got %q", sess.PeekAction())
		}
		sess.PushAction(model.ActionAskedKB)
		if got := sess.PopAction(); got != model.ActionAskedKB {
			t.Errorf("pop returned %q", got)
		}
		if sess.PeekAction() != "" {
			t.Errorf("stack must be empty after pop")
		}
	})

	t.Run("Clear", func(t *testing.T) {
		sess := model.NewSession("u1")
		sess.PushAction(model.ActionAskedKB)
		sess.ClearActions()
		if len(sess.ActionStack) != 0 {
			t.Errorf("clear must empty the stack")
		}
	})
}

func TestSessionTickets(t *testing.T) {
	t.Run("Add Deduplicates", func(t *testing.T) {
		sess := model.NewSession("u1")
		sess.AddTicket(5)
		sess.AddTicket(7)
		sess.AddTicket(5)
		if len(sess.Tickets) != 2 {
			t.Errorf("expected [5 7], got %v", sess.Tickets)
		}
	})

	t.Run("Remove", func(t *testing.T) {
		sess := model.NewSession("u1")
		sess.AddTicket(5)
		sess.AddTicket(7)
		sess.RemoveTicket(5)
		if len(sess.Tickets) != 1 || sess.Tickets[0] != 7 {
			t.Errorf("expected [7], got %v", sess.Tickets)
		}
		sess.RemoveTicket(999) // absent id is a no-op
		if len(sess.Tickets) != 1 {
			t.Errorf("removing an absent id must not change the list")
		}
	})
}

func TestSessionLogTurn(t *testing.T) {
	sess := model.NewSession("u1")
	sess.LogTurn("user", "hello")
	sess.LogTurn("bot", "hi")
	if len(sess.History) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(sess.History))
	}
	if sess.History[0].Role != "user" || sess.History[1].Role != "bot" {
		t.Errorf("unexpected roles: %+v", sess.History)
	}
	if sess.History[1].Text != "hi" {
		t.Errorf("unexpected turn text: %+v", sess.History[1])
	}
}
