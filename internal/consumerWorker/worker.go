package consumerWorker

import (
	"context"
	"encoding/json"

	"github.com/wb-go/wbf/zlog"

	"santahub/internal/dto"
	"santahub/internal/mailer"
	"santahub/internal/rabbit"
	"santahub/internal/repo"
)

// Reader drains the notification queue: registration-closed markers fired by
// the delayed exchange, confirmation receipts, and approved-assignment
// notifications that turn into emails to the giver.
type Reader struct {
	RMQ    *rabbit.Client
	repo   repo.Repository
	smtp   *mailer.SMTPConfig
	done   chan struct{}
	cancel context.CancelFunc
}

func NewReader(rmq *rabbit.Client, repo repo.Repository, smtp *mailer.SMTPConfig) *Reader {
	return &Reader{
		RMQ:  rmq,
		repo: repo,
		smtp: smtp,
		done: make(chan struct{}),
	}
}

func (r *Reader) Start(ctx context.Context) {
	cctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	zlog.Logger.Info().Msg("notification worker started")

	go func() {
		defer close(r.done)

		if err := r.RMQ.Consume(r.handle(cctx)); err != nil {
			zlog.Logger.Error().Err(err).Msg("failed to start consuming")
			return
		}

		<-cctx.Done()
		zlog.Logger.Info().Msg("notification worker stopped by context")
	}()
}

func (r *Reader) Stop() {
	if r.cancel != nil {
		r.cancel()
		<-r.done
	}
}

func (r *Reader) handle(ctx context.Context) func([]byte) error {
	return func(body []byte) error {
		var msg dto.NotificationMessage
		if err := json.Unmarshal(body, &msg); err != nil {
			zlog.Logger.Error().Err(err).Msgf("failed to unmarshal message: %s", string(body))
			return err
		}

		switch msg.Type {
		case dto.MessageRegistrationClosed:
			return r.handleRegistrationClosed(ctx, msg)
		case dto.MessageRegistrationConfirmed:
			return r.handleRegistrationConfirmed(ctx, msg)
		case dto.MessageAssignmentApproved:
			return r.handleAssignmentApproved(ctx, msg)
		default:
			zlog.Logger.Warn().Str("type", msg.Type).Msg("unknown notification type, dropping")
			return nil
		}
	}
}

func (r *Reader) handleRegistrationClosed(ctx context.Context, msg dto.NotificationMessage) error {
	participants, err := r.repo.ListConfirmedParticipants(ctx, msg.EventID)
	if err != nil {
		zlog.Logger.Error().Err(err).Int64("event_id", msg.EventID).
			Msg("failed to count confirmed participants")
		return err
	}

	zlog.Logger.Info().
		Int64("event_id", msg.EventID).
		Int("confirmed", len(participants)).
		Msg("registration window closed, assignment generation can run")
	return nil
}

func (r *Reader) handleRegistrationConfirmed(ctx context.Context, msg dto.NotificationMessage) error {
	event, err := r.repo.GetEventByID(ctx, msg.EventID)
	if err != nil {
		zlog.Logger.Error().Err(err).Int64("event_id", msg.EventID).Msg("failed to get event in worker")
		return nil
	}
	user, err := r.repo.GetUserByID(ctx, msg.UserID)
	if err != nil {
		zlog.Logger.Error().Err(err).Int64("user_id", msg.UserID).Msg("failed to get user in worker")
		return nil
	}

	if err := mailer.SendConfirmationEmail(&zlog.Logger, r.smtp, user.Email, event.Name); err != nil {
		zlog.Logger.Warn().Err(err).Int64("user_id", user.ID).Msg("failed to send confirmation email")
	}
	return nil
}

func (r *Reader) handleAssignmentApproved(ctx context.Context, msg dto.NotificationMessage) error {
	a, err := r.repo.GetAssignmentByID(ctx, msg.AssignmentID)
	if err != nil {
		// Deleted between approval and delivery; nothing to notify about.
		zlog.Logger.Warn().Int64("assignment_id", msg.AssignmentID).Msg("approved assignment no longer exists")
		return nil
	}

	event, err := r.repo.GetEventByID(ctx, a.EventID)
	if err != nil {
		zlog.Logger.Error().Err(err).Int64("event_id", a.EventID).Msg("failed to get event in worker")
		return nil
	}

	giver, err := r.repo.GetUserByID(ctx, a.GiverID)
	if err != nil {
		zlog.Logger.Error().Err(err).Int64("user_id", a.GiverID).Msg("failed to get giver in worker")
		return nil
	}
	receiver, err := r.repo.GetUserByID(ctx, a.ReceiverID)
	if err != nil {
		zlog.Logger.Error().Err(err).Int64("user_id", a.ReceiverID).Msg("failed to get receiver in worker")
		return nil
	}

	address := ""
	if reg, err := r.repo.GetRegistration(ctx, a.EventID, a.ReceiverID); err == nil {
		address = reg.ConfirmedAddress
	}

	if err := mailer.SendAssignmentEmail(
		&zlog.Logger, r.smtp, giver.Email, event.Name, receiver.Name, address,
	); err != nil {
		zlog.Logger.Warn().Err(err).
			Int64("assignment_id", a.ID).
			Msg("failed to send assignment email")
	} else {
		zlog.Logger.Info().
			Int64("assignment_id", a.ID).
			Int64("giver_id", a.GiverID).
			Msg("assignment email sent to giver")
	}
	return nil
}
