package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/kanban-service/internal/config"
	"github.com/spec-kit/kanban-service/internal/events"
	"github.com/spec-kit/kanban-service/internal/mail"
)

// NotificationService turns session-lifecycle events into outbound emails.
type NotificationService struct {
	dispatcher events.Dispatcher
	mailer     mail.Mailer
	logger     *zap.Logger
	cfg        config.MailConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, mailer mail.Mailer, logger *zap.Logger, cfg config.MailConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		mailer:     mailer,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventUserRegistered, n.handleConfirmation)
	n.dispatcher.Subscribe(events.EventConfirmationResent, n.handleConfirmation)
	n.dispatcher.Subscribe(events.EventPasswordResetRequest, n.handlePasswordReset)
}

func (n *NotificationService) handleConfirmation(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.MailTokenPayload)
	if !ok {
		n.logger.Error("unexpected payload type", zap.String("event_type", string(event.Type)))
		return nil
	}

	link := fmt.Sprintf("%s?token=%s", n.cfg.ConfirmURL, payload.Token)
	body := fmt.Sprintf(`Hello,<br/>
        <p>Welcome!</p>
        <p>To complete registration, click or copy the link below:</p>
        <p><a href=%q>%s</a></p>`, link, link)

	n.send(ctx, event, mail.Message{
		To:      payload.Email,
		Subject: "Complete your registration",
		HTML:    body,
	})
	return nil
}

func (n *NotificationService) handlePasswordReset(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.MailTokenPayload)
	if !ok {
		n.logger.Error("unexpected payload type", zap.String("event_type", string(event.Type)))
		return nil
	}

	link := fmt.Sprintf("%s?token=%s", n.cfg.ResetURL, payload.Token)
	body := fmt.Sprintf(`Hello,<br/>
        <p>Someone, hopefully you, requested a password reset.</p>
        <p>To complete the reset, click or copy the link below:</p>
        <p><a href=%q>%s</a></p>`, link, link)

	n.send(ctx, event, mail.Message{
		To:      payload.Email,
		Subject: "Your password reset request",
		HTML:    body,
	})
	return nil
}

func (n *NotificationService) send(ctx context.Context, event events.Event, msg mail.Message) {
	if !n.cfg.Enabled || n.mailer == nil {
		n.logger.Debug("mail disabled; skipping delivery",
			zap.String("event_type", string(event.Type)),
			zap.String("to", msg.To))
		return
	}
	if err := n.mailer.Send(ctx, msg); err != nil {
		n.logger.Error("send mail",
			zap.String("event_type", string(event.Type)),
			zap.String("to", msg.To),
			zap.Error(err))
	}
}
