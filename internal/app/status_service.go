// internal/app/status_service.go
package app

import (
	"context"
	"errors"
	"time"

	"homework_status_bot/internal/domain/homework"
	domainTelegram "homework_status_bot/internal/domain/telegram"
	"homework_status_bot/internal/infra/metrics"

	"github.com/sirupsen/logrus"
)

// FaultMessagePrefix starts every fault notification sent to the chat.
const FaultMessagePrefix = "Сбой в работе программы: "

// Fetcher returns the raw decoded body of a homework status request.
type Fetcher interface {
	HomeworkStatuses(ctx context.Context, fromDate int64) (any, error)
}

// StatusService defines the polling iteration and read access to its state.
type StatusService interface {
	// Poll runs one fetch → validate → diff → notify iteration. Faults are
	// logged and relayed to the chat here; the returned error is the fault
	// handled in this iteration, nil on success. A cancelled poll is neither
	// counted nor relayed.
	Poll(ctx context.Context) error
	Snapshot() Snapshot
}

// StatusServiceImpl implements the StatusService interface.
type StatusServiceImpl struct {
	fetcher        Fetcher
	telegramClient domainTelegram.Client
	chatID         int64
	session        *Session
	logger         *logrus.Entry
	now            func() time.Time
}

func NewStatusServiceImpl(
	fetcher Fetcher,
	tc domainTelegram.Client,
	chatID int64,
	session *Session,
	logger *logrus.Entry,
) *StatusServiceImpl {
	return &StatusServiceImpl{
		fetcher:        fetcher,
		telegramClient: tc,
		chatID:         chatID,
		session:        session,
		logger:         logger,
		now:            time.Now,
	}
}

func (s *StatusServiceImpl) Snapshot() Snapshot {
	return s.session.Snapshot()
}

func (s *StatusServiceImpl) Poll(ctx context.Context) error {
	err := s.poll(ctx)
	if errors.Is(err, context.Canceled) {
		s.logger.WithError(err).Info("Poll cancelled")
		return err
	}
	s.session.markPolled(s.now())
	if err != nil {
		metrics.PollsTotal.WithLabelValues("fault").Inc()
		s.handleFault(err)
		return err
	}
	metrics.PollsTotal.WithLabelValues("ok").Inc()
	return nil
}

func (s *StatusServiceImpl) poll(ctx context.Context) error {
	cursor := s.session.Cursor()
	logCtx := s.logger.WithField("cursor", cursor)

	body, err := s.fetcher.HomeworkStatuses(ctx, cursor)
	if err != nil {
		return err
	}

	homeworks, currentDate, err := homework.CheckResponse(body)
	if err != nil {
		return err
	}
	s.session.advance(currentDate)
	logCtx = logCtx.WithField("current_date", currentDate)

	if len(homeworks) == 0 {
		logCtx.Debug("Response is empty, no homework updates")
		return nil
	}

	// The API lists the most recent homework first.
	hw, err := homework.FromRaw(homeworks[0])
	if err != nil {
		return err
	}
	message, err := homework.ParseStatus(hw)
	if err != nil {
		return err
	}

	logCtx = logCtx.WithField("homework", hw.Name).WithField("status", hw.Status)
	if !s.session.recordStatus(hw) {
		logCtx.Info("No changes in homework status")
		return nil
	}

	logCtx.Info("Homework status changed")
	return s.send("status", message)
}

// handleFault logs err and relays it to the chat unless the same fault was relayed last.
func (s *StatusServiceImpl) handleFault(err error) {
	kind := homework.KindOf(err)
	metrics.FaultsTotal.WithLabelValues(string(kind)).Inc()

	message := FaultMessagePrefix + err.Error()
	logCtx := s.logger.WithError(err).WithField("fault_kind", kind)
	logCtx.Error("Polling iteration failed")

	if !s.session.recordFault(homework.Identity(err)) {
		logCtx.Debug("Fault already reported, notification skipped")
		return
	}
	// A failed relay has already been logged by send; there is nowhere else to report it.
	_ = s.send("fault", message)
}

func (s *StatusServiceImpl) send(kind, text string) error {
	logCtx := s.logger.WithField("chat_id", s.chatID).WithField("kind", kind)

	if err := s.telegramClient.SendMessage(s.chatID, text); err != nil {
		metrics.NotificationsTotal.WithLabelValues(kind, "failed").Inc()
		logCtx.WithError(err).Error("Failed to send Telegram message")
		return homework.NewFault(homework.FaultChatUnreachable, err, "Сбой при отправке сообщения в Telegram")
	}

	metrics.NotificationsTotal.WithLabelValues(kind, "sent").Inc()
	logCtx.Infof("Message sent: %s", text)
	return nil
}
