package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rsawant/invest-engine/internal/collaborator"
	"github.com/rsawant/invest-engine/internal/domain"
	"github.com/rsawant/invest-engine/internal/repository"
)

// DispatchService is the batch job that executes due schedule events: it
// credits each bucket allocation through the ledger and marks the event
// dispatched. The review core only produces the schedule; this job consumes it.
type DispatchService struct {
	Schedules repository.ScheduleRepository
	Deposits  repository.DepositRepository
	Ledger    collaborator.Ledger

	Log   *logrus.Logger
	Limit int
}

func NewDispatchService(
	schedules repository.ScheduleRepository,
	deposits repository.DepositRepository,
	ledger collaborator.Ledger,
	log *logrus.Logger,
	limit int,
) *DispatchService {
	return &DispatchService{
		Schedules: schedules,
		Deposits:  deposits,
		Ledger:    ledger,
		Log:       log,
		Limit:     limit,
	}
}

// DispatchDue processes pending events due on or before asOf. A failed event
// is logged and left pending for the next run.
func (s *DispatchService) DispatchDue(ctx context.Context, asOf time.Time) (int, error) {
	events, err := s.Schedules.GetDue(ctx, asOf, s.Limit)
	if err != nil {
		return 0, err
	}

	dispatched := 0
	for _, event := range events {
		if err := s.dispatch(ctx, event); err != nil {
			s.Log.WithError(err).WithFields(logrus.Fields{
				"event_id":  event.ID.String(),
				"scheme_id": event.SchemeID,
				"due_date":  event.DueDate.Format("2006-01-02"),
			}).Error("event dispatch failed, will retry next run")
			continue
		}
		dispatched++
	}

	s.Log.WithFields(logrus.Fields{
		"due":        len(events),
		"dispatched": dispatched,
	}).Info("dispatch run complete")

	return dispatched, nil
}

func (s *DispatchService) dispatch(ctx context.Context, event *domain.ScheduleEvent) error {
	deposit, err := s.Deposits.GetByID(ctx, *event.DepositID)
	if err != nil {
		return err
	}

	for _, bucket := range domain.AllBuckets() {
		amount := event.AmountFor(bucket)
		if !amount.IsPositive() {
			continue
		}
		if err := s.Ledger.Credit(ctx, deposit.InvestorID, amount, bucket); err != nil {
			return err
		}
	}

	return s.Schedules.MarkDispatched(ctx, event.ID)
}
