package telegram

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"birthday_greeting_bot/internal/app"
	"birthday_greeting_bot/internal/domain/greeting"
	idb "birthday_greeting_bot/internal/infra/database"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// RegisterAdminHandlers registers handlers for admin commands. All of them
// are gated on the configured admin Telegram ID.
func RegisterAdminHandlers(
	ctx context.Context,
	b *telebot.Bot,
	contactService *app.ContactService,
	scheduleService *app.ScheduleService,
	greetingRepo greeting.Repository,
	adminTelegramID int64,
	baseLogger *logrus.Entry,
) {
	b.Handle("/add_contact", func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/add_contact",
			"sender_id": c.Sender().ID,
		})

		if c.Sender().ID != adminTelegramID {
			handlerLogger.Warn("Unauthorized access attempt")
			return c.Send("Error: you are not allowed to use this command.")
		}

		args := c.Args()
		// Expected format: /add_contact <Phone> <Month> <Day> <Name...>
		if len(args) < 4 {
			handlerLogger.WithField("args_count", len(args)).Warn("Invalid command format")
			return c.Send("Invalid format. Use: /add_contact <Phone> <Month 1-12> <Day 1-31> <Name>")
		}

		phone := args[0]
		month, err := strconv.Atoi(args[1])
		if err != nil {
			return c.Send("Error: month must be a number between 1 and 12.")
		}
		day, err := strconv.Atoi(args[2])
		if err != nil {
			return c.Send("Error: day must be a number between 1 and 31.")
		}
		name := strings.Join(args[3:], " ")

		newContact, err := contactService.AddContact(ctx, c.Sender().ID, name, phone, time.Month(month), day)
		if err != nil {
			logWithError := handlerLogger.WithError(err)
			switch err {
			case app.ErrAdminNotAuthorized:
				logWithError.Warn("Admin not authorized (service level)")
				return c.Send("Error: you are not allowed to use this command.")
			case app.ErrInvalidBirthday:
				return c.Send("Error: birthday must be a valid month (1-12) and day (1-31).")
			case app.ErrEmptyName:
				return c.Send("Error: name cannot be empty.")
			default:
				logWithError.Error("Failed to add contact")
				return c.Send(fmt.Sprintf("Failed to add contact: %s", err.Error()))
			}
		}

		handlerLogger.WithField("contact_id", newContact.ID).Info("Contact added")
		return c.Send(fmt.Sprintf("Contact %s (%s) added with birthday %02d-%02d.\nID: %s",
			newContact.Name, newContact.PhoneNumber, int(newContact.BirthdayMonth), newContact.BirthdayDay, newContact.ID))
	})

	b.Handle("/remove_contact", func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/remove_contact",
			"sender_id": c.Sender().ID,
		})

		if c.Sender().ID != adminTelegramID {
			handlerLogger.Warn("Unauthorized access attempt")
			return c.Send("Error: you are not allowed to use this command.")
		}

		args := c.Args()
		if len(args) != 1 {
			return c.Send("Invalid format. Use: /remove_contact <ContactID>")
		}

		cancelled, err := contactService.RemoveContact(ctx, c.Sender().ID, args[0])
		if err != nil {
			if err == idb.ErrContactNotFound {
				return c.Send("Error: no contact with that ID.")
			}
			handlerLogger.WithError(err).Error("Failed to remove contact")
			return c.Send(fmt.Sprintf("Failed to remove contact: %s", err.Error()))
		}

		handlerLogger.WithField("cancelled", cancelled).Info("Contact removed")
		return c.Send(fmt.Sprintf("Contact removed. Cancelled %d scheduled greeting(s).", cancelled))
	})

	b.Handle("/list_contacts", func(c telebot.Context) error {
		if c.Sender().ID != adminTelegramID {
			return c.Send("Error: you are not allowed to use this command.")
		}

		contacts, err := contactService.ListContacts(ctx, c.Sender().ID)
		if err != nil {
			baseLogger.WithError(err).Error("Failed to list contacts")
			return c.Send("Failed to list contacts.")
		}
		if len(contacts) == 0 {
			return c.Send("No contacts yet. Add one with /add_contact.")
		}

		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("Contacts (%d):\n\n", len(contacts)))
		for _, ct := range contacts {
			sb.WriteString(fmt.Sprintf("%s — %s, birthday %02d-%02d\n  ID: %s\n",
				ct.Name, ct.PhoneNumber, int(ct.BirthdayMonth), ct.BirthdayDay, ct.ID))
		}
		return c.Send(sb.String())
	})

	b.Handle("/upcoming", func(c telebot.Context) error {
		if c.Sender().ID != adminTelegramID {
			return c.Send("Error: you are not allowed to use this command.")
		}

		greetings, err := greetingRepo.List(ctx)
		if err != nil {
			baseLogger.WithError(err).Error("Failed to list greetings")
			return c.Send("Failed to list greetings.")
		}

		scheduled := make([]*greeting.Greeting, 0)
		for _, g := range greetings {
			if g.Status == greeting.StatusScheduled {
				scheduled = append(scheduled, g)
			}
		}
		if len(scheduled) == 0 {
			return c.Send("No scheduled greetings.")
		}
		sort.Slice(scheduled, func(i, j int) bool { return scheduled[i].SendAt.Before(scheduled[j].SendAt) })

		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("Scheduled greetings (%d):\n\n", len(scheduled)))
		for _, g := range scheduled {
			sb.WriteString(fmt.Sprintf("%s — %s\n  ID: %s\n", g.SendAt.Format("2006-01-02 15:04"), g.ContactName, g.ID))
		}
		return c.Send(sb.String())
	})

	b.Handle("/schedule_all", func(c telebot.Context) error {
		if c.Sender().ID != adminTelegramID {
			return c.Send("Error: you are not allowed to use this command.")
		}

		greetings, err := scheduleService.ScheduleAll(ctx)
		if err != nil {
			baseLogger.WithError(err).Error("Scheduling sweep failed")
			return c.Send(fmt.Sprintf("Scheduling sweep failed: %s", err.Error()))
		}
		return c.Send(fmt.Sprintf("Scheduling sweep complete: %d greeting(s) armed or already present.", len(greetings)))
	})

	b.Handle("/cancel_greeting", func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/cancel_greeting",
			"sender_id": c.Sender().ID,
		})

		if c.Sender().ID != adminTelegramID {
			handlerLogger.Warn("Unauthorized access attempt")
			return c.Send("Error: you are not allowed to use this command.")
		}

		args := c.Args()
		if len(args) != 1 {
			return c.Send("Invalid format. Use: /cancel_greeting <GreetingID>")
		}

		if err := scheduleService.Cancel(ctx, args[0]); err != nil {
			switch err {
			case idb.ErrGreetingNotFound:
				return c.Send("Error: no greeting with that ID.")
			case app.ErrGreetingNotCancellable:
				return c.Send("Error: greeting is not scheduled anymore; an in-flight or finished send cannot be cancelled.")
			default:
				handlerLogger.WithError(err).Error("Failed to cancel greeting")
				return c.Send(fmt.Sprintf("Failed to cancel greeting: %s", err.Error()))
			}
		}
		handlerLogger.WithField("greeting_id", args[0]).Info("Greeting cancelled")
		return c.Send("Greeting cancelled.")
	})

	b.Handle("/resend", func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/resend",
			"sender_id": c.Sender().ID,
		})

		if c.Sender().ID != adminTelegramID {
			handlerLogger.Warn("Unauthorized access attempt")
			return c.Send("Error: you are not allowed to use this command.")
		}

		args := c.Args()
		if len(args) != 1 {
			return c.Send("Invalid format. Use: /resend <GreetingID>")
		}

		g, err := scheduleService.Resend(ctx, args[0])
		if err != nil {
			switch err {
			case idb.ErrGreetingNotFound:
				return c.Send("Error: no greeting with that ID.")
			case app.ErrGreetingNotResendable:
				return c.Send("Error: only failed greetings can be resent.")
			case app.ErrGreetingAlreadyScheduled:
				return c.Send("Error: a greeting is already scheduled for this contact this year.")
			default:
				handlerLogger.WithError(err).Error("Failed to resend greeting")
				return c.Send(fmt.Sprintf("Failed to resend greeting: %s", err.Error()))
			}
		}

		handlerLogger.WithField("new_greeting_id", g.ID).Info("Greeting queued for resend")
		return c.Send(fmt.Sprintf("Greeting queued for resend (new ID: %s). It will go out on the next dispatch cycle.", g.ID))
	})
}
