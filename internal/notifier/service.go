package notifier

import (
	"context"
	"fmt"
	"strings"

	"aquavalle/pkg/config"
	"aquavalle/pkg/kafka"
	"aquavalle/pkg/mailer"
	"aquavalle/pkg/model"
)

// Service turns reservation and admin events into outbound emails. It is
// wired as the handler of the notifier's Kafka consumer.
type Service struct {
	mailer *mailer.Mailer
	cfg    *config.Config
}

func NewService(m *mailer.Mailer, cfg *config.Config) *Service {
	return &Service{
		mailer: m,
		cfg:    cfg,
	}
}

// Handle implements kafka.MessageHandler. Unknown event types are skipped,
// not retried: there is nothing a redelivery would fix.
func (s *Service) Handle(ctx context.Context, msg kafka.Message) error {
	eventType := msg.GetEventType()

	switch eventType {
	case model.EventReservationCreated:
		return s.handleReservationCreated(msg)
	case model.EventReservationCancelled:
		return s.handleReservationCancelled(msg)
	case model.EventPasswordResetRequested:
		return s.handlePasswordReset(msg)
	default:
		s.cfg.Log.Warn("Skipping unknown event type", "event_type", eventType, "event_id", msg.GetEventID())
		return nil
	}
}

func (s *Service) handleReservationCreated(msg kafka.Message) error {
	var event model.ReservationEvent
	if err := msg.DecodeValue(&event); err != nil {
		return kafka.NewPermanentError("failed to decode reservation event", err)
	}

	if event.ClientEmail == "" {
		s.cfg.Log.Info("Reservation has no client email, skipping confirmation",
			"reservation_id", event.ReservationID)
		return nil
	}

	subject := "Your reservation is confirmed"
	body := confirmationBody(&event)

	if err := s.mailer.Send(event.ClientEmail, subject, body); err != nil {
		return kafka.NewTransientError("failed to send confirmation email", err)
	}

	s.cfg.Log.Info("Confirmation email sent",
		"reservation_id", event.ReservationID,
		"to", event.ClientEmail,
	)
	return nil
}

func (s *Service) handleReservationCancelled(msg kafka.Message) error {
	var event model.ReservationEvent
	if err := msg.DecodeValue(&event); err != nil {
		return kafka.NewPermanentError("failed to decode reservation event", err)
	}

	if event.ClientEmail == "" {
		return nil
	}

	body := fmt.Sprintf(
		"Hello %s,\n\nYour reservation for %s has been cancelled.\n\nIf you did not request this, please contact us.\n",
		event.ClientName, event.CheckInDate,
	)

	if err := s.mailer.Send(event.ClientEmail, "Your reservation has been cancelled", body); err != nil {
		return kafka.NewTransientError("failed to send cancellation email", err)
	}
	return nil
}

func (s *Service) handlePasswordReset(msg kafka.Message) error {
	var event model.PasswordResetEvent
	if err := msg.DecodeValue(&event); err != nil {
		return kafka.NewPermanentError("failed to decode password reset event", err)
	}

	body := fmt.Sprintf(
		"Your password reset code is: %s\n\nIt expires at %s. If you did not request a reset, ignore this email.\n",
		event.Code, event.ExpiresAt.Format("15:04 MST"),
	)

	if err := s.mailer.Send(event.Email, "Password reset code", body); err != nil {
		return kafka.NewTransientError("failed to send reset code email", err)
	}

	s.cfg.Log.Info("Password reset email sent", "to", event.Email)
	return nil
}

func confirmationBody(event *model.ReservationEvent) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Hello %s,\n\nYour reservation is confirmed.\n\n", event.ClientName)

	if event.Type == model.TypeLodging {
		fmt.Fprintf(&b, "Check-in: %s\n", event.CheckInDate)
		if event.CheckOutDate != nil {
			fmt.Fprintf(&b, "Check-out: %s\n", event.CheckOutDate)
		}
		if len(event.RoomNames) > 0 {
			fmt.Fprintf(&b, "Rooms: %s\n", strings.Join(event.RoomNames, ", "))
		}
	} else {
		fmt.Fprintf(&b, "Date: %s\n", event.CheckInDate)
	}

	fmt.Fprintf(&b, "Guests: %d\nTotal: %.2f EUR\n\nWe look forward to seeing you!\n", event.NumGuests, event.TotalPrice)
	return b.String()
}
