package telegram

import (
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// RegisterBotCommands registers the /start and /help handlers.
func RegisterBotCommands(b *telebot.Bot, adminTelegramID int64, baseLogger *logrus.Entry) {
	startHelpLogger := baseLogger.WithField("handler_group", "start_help")

	b.Handle("/start", func(c telebot.Context) error {
		senderID := c.Sender().ID
		logCtx := startHelpLogger.WithField("command", "/start").WithField("sender_id", senderID)
		logCtx.Info("Processing /start command")

		if senderID == adminTelegramID {
			return c.Send("Hi! I schedule and send birthday greetings to your contacts. Use /help for the command list.")
		}
		logCtx.Info("User is not the admin")
		return c.Send("Hi! This bot is managed by its administrator and has no commands for other users.")
	})

	b.Handle("/help", func(c telebot.Context) error {
		senderID := c.Sender().ID
		logCtx := startHelpLogger.WithField("command", "/help").WithField("sender_id", senderID)
		logCtx.Info("Processing /help command")

		if senderID != adminTelegramID {
			return c.Send("No commands are available for you.")
		}

		var helpText strings.Builder
		helpText.WriteString("Available admin commands:\n\n")
		helpText.WriteString("`/add_contact <Phone> <Month> <Day> <Name>`\n - Add a contact; their next birthday greeting is armed immediately.\n\n")
		helpText.WriteString("`/remove_contact <ContactID>`\n - Remove a contact and cancel their scheduled greetings.\n\n")
		helpText.WriteString("`/list_contacts`\n - Show all contacts with their IDs.\n\n")
		helpText.WriteString("`/upcoming`\n - Show scheduled greetings ordered by send time.\n\n")
		helpText.WriteString("`/schedule_all`\n - Run a full scheduling sweep now.\n\n")
		helpText.WriteString("`/cancel_greeting <GreetingID>`\n - Cancel a scheduled greeting before it is sent.\n\n")
		helpText.WriteString("`/resend <GreetingID>`\n - Queue a failed greeting for immediate resend.\n\n")
		helpText.WriteString("`/help`\n - Show this message.")
		return c.Send(helpText.String(), &telebot.SendOptions{ParseMode: telebot.ModeMarkdown})
	})
}
