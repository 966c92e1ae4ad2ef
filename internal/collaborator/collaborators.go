package collaborator

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/rsawant/invest-engine/internal/domain"
)

// External collaborators the review core calls outward to. Failures here are
// logged and retried outside the core; they never roll back a committed
// transition.

// IdentityIssuer provisions platform credentials for an activated business
type IdentityIssuer interface {
	IssueCredentials(ctx context.Context, entity *domain.ReviewEntity) (string, error)
}

// Notifier delivers decision outcome notifications
type Notifier interface {
	Notify(ctx context.Context, recipient, template string, data map[string]interface{}) error
}

// Ledger credits wallet buckets with schedule event allocations
type Ledger interface {
	Credit(ctx context.Context, walletID string, amount decimal.Decimal, bucket domain.Bucket) error
}

// EscrowSettler releases escrow bookkeeping when a project closes
type EscrowSettler interface {
	Settle(ctx context.Context, projectID string) error
}

// Log-backed default implementations, used until the real platform services
// are wired in.

type LogIdentityIssuer struct {
	Log *logrus.Logger
}

func (i *LogIdentityIssuer) IssueCredentials(_ context.Context, entity *domain.ReviewEntity) (string, error) {
	userID := "USR-" + strings.ToUpper(uuid.New().String()[:8])
	i.Log.WithFields(logrus.Fields{
		"entity_id": entity.ID,
		"user_id":   userID,
	}).Info("issued credentials for activated business")
	return userID, nil
}

type LogNotifier struct {
	Log *logrus.Logger
}

func (n *LogNotifier) Notify(_ context.Context, recipient, template string, data map[string]interface{}) error {
	n.Log.WithFields(logrus.Fields{
		"recipient": recipient,
		"template":  template,
		"data":      data,
	}).Info("notification dispatched")
	return nil
}

type LogLedger struct {
	Log *logrus.Logger
}

func (l *LogLedger) Credit(_ context.Context, walletID string, amount decimal.Decimal, bucket domain.Bucket) error {
	l.Log.WithFields(logrus.Fields{
		"wallet_id": walletID,
		"amount":    amount.String(),
		"bucket":    string(bucket),
	}).Info("wallet credited")
	return nil
}

type LogEscrowSettler struct {
	Log *logrus.Logger
}

func (s *LogEscrowSettler) Settle(_ context.Context, projectID string) error {
	s.Log.WithField("project_id", projectID).Info("escrow settled for closed project")
	return nil
}
