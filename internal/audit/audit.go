// Package audit records admin decisions: document verdicts and account
// disable/enable actions.
package audit

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Action names.
const (
	ActionVerdict = "verdict"
	ActionDisable = "disable"
	ActionEnable  = "enable"
)

// Event describes one accepted admin decision.
type Event struct {
	Action     string    `json:"action"`
	Target     string    `json:"target"`
	TargetID   string    `json:"target_id"`
	DocumentID string    `json:"document_id,omitempty"`
	Verdict    string    `json:"verdict,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	SessionID  string    `json:"session_id,omitempty"`
	At         time.Time `json:"at"`
}

// Publisher delivers audit events. Publishing is best effort: the decision
// has already been accepted by the backend when an event is published.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
	Close() error
}

// LogPublisher writes events to the application log.
type LogPublisher struct {
	logger *zap.Logger
}

func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(_ context.Context, ev Event) error {
	p.logger.Info("admin decision",
		zap.String("action", ev.Action),
		zap.String("target", ev.Target),
		zap.String("target_id", ev.TargetID),
		zap.String("document_id", ev.DocumentID),
		zap.String("verdict", ev.Verdict),
		zap.String("reason", ev.Reason),
		zap.Time("at", ev.At),
	)
	return nil
}

func (p *LogPublisher) Close() error { return nil }
