package usecase

import (
	"context"
	"fmt"
	"strings"

	"appliance-support-bot/internal/dialogue"
	"appliance-support-bot/internal/model"
	"appliance-support-bot/internal/nlu"
	"appliance-support-bot/internal/router"
)

// HandleMessage runs one inbound message through the dialogue state machine
// and returns the replies to send. Handling is serialized per user.
func (uc *implUseCase) HandleMessage(ctx context.Context, sc model.Scope, text string) ([]string, error) {
	unlock := uc.lockUser(sc.UserID)
	defer unlock()

	msg := strings.TrimSpace(text)
	lower := strings.ToLower(msg)

	exists, err := uc.sessions.Exists(ctx, sc.UserID)
	if err != nil {
		return nil, err
	}

	if exists {
		expired, expErr := uc.sessions.Expired(ctx, sc.UserID)
		if expErr != nil {
			return nil, expErr
		}
		if expired {
			if err := uc.resetPreservingTickets(ctx, sc.UserID); err != nil {
				return nil, err
			}
			return []string{dialogue.ReplySessionExpired}, nil
		}
	}

	if !exists || lower == "reset" {
		if err := uc.resetPreservingTickets(ctx, sc.UserID); err != nil {
			return nil, err
		}
		return []string{dialogue.ReplyWelcome}, nil
	}

	sess, err := uc.sessions.Get(ctx, sc.UserID)
	if err != nil {
		return nil, err
	}

	// Audit trail; Save also stamps activity.
	sess.LogTurn("user", msg)
	if err := uc.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}

	replies, err := uc.dispatch(ctx, sc, sess, msg, lower)
	if err != nil {
		return nil, err
	}

	// Bot turns land on whatever record exists now; the flow may have
	// replaced it with a fresh one.
	if logErr := uc.sessions.Update(ctx, sc.UserID, func(s *model.Session) {
		for _, r := range replies {
			s.LogTurn("bot", r)
		}
	}); logErr != nil {
		uc.l.Warnf(ctx, "internal.dialogue.HandleMessage: audit log failed: %v", logErr)
	}

	return replies, nil
}

func isYesNo(lower string) bool {
	switch lower {
	case "yes", "y", "no", "n":
		return true
	}
	return false
}

func (uc *implUseCase) dispatch(ctx context.Context, sc model.Scope, sess *model.Session, msg, lower string) ([]string, error) {
	// Universal command: help never touches the classifier.
	if lower == "help" || lower == "!help" {
		sess.ClearActions()
		if err := uc.sessions.Save(ctx, sess); err != nil {
			return nil, err
		}
		return []string{dialogue.ReplyHelp}, nil
	}

	// A pending yes/no question is resolved via the action stack, bypassing
	// the classifier. With no question pending, a bare yes/no goes through
	// normal routing like any other message.
	if isYesNo(lower) && sess.PeekAction() != "" {
		return uc.resolveConfirmation(ctx, sc, sess, lower, msg)
	}

	out := uc.router.Route(ctx, msg, nlu.RouteContext{
		LastProblem:        sess.Problem,
		ClarificationAsked: sess.ClarificationAsked,
		State:              string(sess.State),
		OpenTicketIDs:      sess.Tickets,
	})

	switch out.Action {
	case router.ActionHelp:
		sess.ClearActions()
		if err := uc.sessions.Save(ctx, sess); err != nil {
			return nil, err
		}
		return []string{dialogue.ReplyHelp}, nil

	case router.ActionGreeting:
		sess.ClearActions()
		if err := uc.sessions.Save(ctx, sess); err != nil {
			return nil, err
		}
		return []string{dialogue.ReplyGreeting}, nil

	case router.ActionOutOfScope:
		sess.ClearActions()
		if err := uc.sessions.Save(ctx, sess); err != nil {
			return nil, err
		}
		return []string{dialogue.ReplyOutOfScope}, nil

	case router.ActionSecurity:
		if err := uc.resetPreservingTickets(ctx, sc.UserID); err != nil {
			return nil, err
		}
		return []string{dialogue.ReplySecurity}, nil

	case router.ActionTicketStatus:
		return uc.ticketStatus(ctx, sc, sess)

	case router.ActionCloseTicket:
		return uc.closeTicket(ctx, sc, sess, msg)

	case router.ActionDeleteTicket:
		return uc.deleteTicket(ctx, sc, sess, msg)

	case router.ActionClarify:
		return uc.clarify(ctx, sc, sess, msg)

	case router.ActionKBAnswer:
		return uc.kbAnswer(ctx, sc, sess, msg)

	case router.ActionCreateTicket:
		problem := sess.Problem
		if problem == "" {
			problem = msg
		}
		return uc.runCreatePipeline(ctx, sc, problem)
	}

	return []string{dialogue.ReplyFallback}, nil
}

// clarify asks the one-time clarifying question. When it was already asked
// for this problem cycle, the accumulated context is treated as sufficient
// and creation starts directly.
func (uc *implUseCase) clarify(ctx context.Context, sc model.Scope, sess *model.Session, msg string) ([]string, error) {
	if !sess.ClarificationAsked {
		sess.ClarificationAsked = true
		sess.State = model.StateAwaitingClarification
		sess.PushAction(model.ActionAskedKB)
		if err := uc.sessions.Save(ctx, sess); err != nil {
			return nil, err
		}
		return []string{dialogue.ReplyClarify}, nil
	}

	problem := sess.Problem
	if problem == "" {
		problem = msg
	}
	return uc.runCreatePipeline(ctx, sc, problem)
}

// kbAnswer stores the problem, fetches troubleshooting advice, and asks for
// confirmation. An escalation signal skips straight to ticket creation.
func (uc *implUseCase) kbAnswer(ctx context.Context, sc model.Scope, sess *model.Session, msg string) ([]string, error) {
	sess.Problem = msg

	advice, err := uc.troubleshoot.Troubleshoot(ctx, msg, sess.ClarificationAsked)
	if err != nil {
		uc.l.Warnf(ctx, "internal.dialogue.kbAnswer: troubleshooting failed: %v", err)
		if saveErr := uc.sessions.Save(ctx, sess); saveErr != nil {
			return nil, saveErr
		}
		return []string{dialogue.ReplyTroubleshootUnavailable}, nil
	}

	if advice == "" {
		// Needs professional help; escalate to a ticket.
		if saveErr := uc.sessions.Save(ctx, sess); saveErr != nil {
			return nil, saveErr
		}
		return uc.runCreatePipeline(ctx, sc, msg)
	}

	sess.KBSolution = advice
	sess.State = model.StateAwaitingKBConfirm
	sess.ClarificationAsked = false
	sess.PushAction(model.ActionAskedKB)
	if err := uc.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}
	return []string{fmt.Sprintf(dialogue.FmtKBSolution, advice)}, nil
}
