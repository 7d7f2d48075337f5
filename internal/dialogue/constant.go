package dialogue

// Fixed reply texts.
const (
	ReplyHelp = "Appliance Support Bot Help:\n" +
		"- Describe your appliance problem to get troubleshooting help.\n" +
		"- Say things like 'any update on my ticket', 'delete my leak ticket', 'close ticket 15'.\n" +
		"- Type `status` to see your tickets, or `reset` to restart the session."

	ReplyWelcome        = "👋 Hi! I'm the appliance support bot. What's the issue with your appliance?"
	ReplySessionExpired = "🔒 Your previous session expired due to inactivity. Let's start fresh. What's your appliance issue?"
	ReplyGreeting       = "😊 Hi there! Let me know if you have any appliance issues or questions!"
	ReplyOutOfScope     = "Sorry, I can only help with appliance problems."
	ReplySecurity       = "🚫 Sorry, I can't share sensitive information."
	ReplyGladToHelp     = "✅ Glad I could help! If you have another issue, just describe it."
	ReplyClarify        = "Can you please clarify your appliance issue with more detail?"
	ReplyNoTickets      = "You have no open tickets."
	ReplyFallback       = "Sorry, I didn't understand. Please describe your appliance problem, or type `help` for options."

	ReplyTicketConfirmYes = "🎫 Ticket created! You can check status by typing `status`."
	ReplyTicketConfirmNo  = "👍 No ticket created. If you have another issue, just describe it."

	ReplyNoProjects      = "⚠️ No projects found in the tracker. Contact admin."
	ReplyNoCategories    = "Sorry, I couldn't create a ticket because there is no available category. Please contact support."
	ReplyUnresolvedMatch = "Sorry, I couldn't match your issue to an exact project/category. Please try rephrasing or contact support."

	ReplyTroubleshootUnavailable = "I couldn't look that up right now. Please try again in a moment."
)

// Reply formats.
const (
	FmtTicketCreated         = "🎫 Ticket created! Your ticket ID is `%d`. You can check status by typing `status`."
	FmtTicketCreatedFallback = "🎫 Ticket created (default category)! Your ticket ID is `%d`. You can check status by typing `status`."
	FmtTicketClosed          = "✅ Ticket `%d` closed."
	FmtTicketDeleted         = "🗑️ Ticket `%d` deleted."
	FmtCloseError            = "Error closing ticket: %v"
	FmtDeleteError           = "Error deleting ticket: %v"
	FmtCreateError           = "Error creating ticket: %v"
	FmtKBSolution            = "🧰 Possible Solution:\n\n%s\n\nDid this help? (yes/no)"
	FmtWhichTicket           = "Which ticket would you like to %s? Please specify the ticket ID or summary."
)
