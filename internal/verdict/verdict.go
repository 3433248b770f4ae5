// Package verdict submits admin decisions to the backend: approving or
// rejecting a submitted document, and disabling or enabling an account.
//
// Every request is checked before any network call. A decision the backend
// accepts invalidates the target's detail and collection cache keys together;
// a decision it refuses is reported with the backend's own message and is
// never retried.
package verdict

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/cargorental/admin-dashboard/internal/audit"
	"github.com/cargorental/admin-dashboard/internal/backend"
	"github.com/cargorental/admin-dashboard/internal/pkg/apperror"
)

// Verdict values accepted by the backend.
const (
	Approved = "APPROVED"
	Rejected = "REJECTED"
)

// Bounds on the trimmed length of a rejection reason.
const (
	MinRejectReason = 10
	MaxRejectReason = 500
)

var (
	ErrInvalidVerdict   = apperror.Validation("verdict must be APPROVED or REJECTED")
	ErrMissingTarget    = apperror.Validation("target id is required")
	ErrMissingDocument  = apperror.Validation("document id is required")
	ErrReasonTooShort   = apperror.Validation("rejection reason must be at least 10 characters")
	ErrReasonTooLong    = apperror.Validation("rejection reason must be at most 500 characters")
	ErrReasonRequired   = apperror.Validation("a reason is required to disable an account")
	ErrAccountsDisabled = apperror.Validation("this target has no account state")
)

// Poster sends a JSON request to the backend.
type Poster interface {
	Post(ctx context.Context, path string, body, out any) error
}

// Invalidator marks cache keys stale.
type Invalidator interface {
	Invalidate(keys ...string)
}

// Target describes one kind of reviewable resource.
type Target struct {
	Name          string
	CollectionKey string
	DetailKey     func(id string) string
	// ExtraKeys are other views built from the same data, invalidated along
	// with the detail and collection keys.
	ExtraKeys   []string
	VerdictPath func(targetID, documentID string) string
	// AccountPath is the backend's disable endpoint. It toggles: posting to it
	// for a disabled account enables it again. Nil when the target has no
	// account state.
	AccountPath func(targetID string) string
	// RequireRejectReason demands a reason of at least MinRejectReason
	// characters on rejections.
	RequireRejectReason bool
	// ReasonField is the body field carrying the rejection reason.
	ReasonField string
}

// Request is one verdict on one document.
type Request struct {
	TargetID   string
	DocumentID string
	Verdict    string
	Reason     string
	SessionID  string
}

// AccountRequest disables or enables an account.
type AccountRequest struct {
	TargetID  string
	Disable   bool
	Reason    string
	SessionID string
}

// Workflow runs verdict and account-state mutations.
type Workflow struct {
	cache     Invalidator
	publisher audit.Publisher
	logger    *zap.Logger
	now       func() time.Time
}

func NewWorkflow(cache Invalidator, publisher audit.Publisher, logger *zap.Logger) *Workflow {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Workflow{cache: cache, publisher: publisher, logger: logger, now: time.Now}
}

// Validate checks req against target without touching the network.
func Validate(target Target, req Request) error {
	if strings.TrimSpace(req.TargetID) == "" {
		return ErrMissingTarget
	}
	if strings.TrimSpace(req.DocumentID) == "" {
		return ErrMissingDocument
	}
	switch req.Verdict {
	case Approved:
	case Rejected:
		if target.RequireRejectReason && !ReasonLongEnough(req.Reason) {
			return ErrReasonTooShort
		}
		if utf8.RuneCountInString(strings.TrimSpace(req.Reason)) > MaxRejectReason {
			return ErrReasonTooLong
		}
	default:
		return ErrInvalidVerdict
	}
	return nil
}

// ReasonLongEnough reports whether reason has at least MinRejectReason
// characters once surrounding whitespace is removed.
func ReasonLongEnough(reason string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(reason)) >= MinRejectReason
}

// Submit validates req, posts the verdict and, once the backend accepts it,
// invalidates the target's cached views.
func (w *Workflow) Submit(ctx context.Context, client Poster, target Target, req Request) error {
	if err := Validate(target, req); err != nil {
		return err
	}

	body := map[string]string{"verdict": req.Verdict}
	if req.Verdict == Rejected && target.ReasonField != "" {
		body[target.ReasonField] = strings.TrimSpace(req.Reason)
	}

	if err := client.Post(ctx, target.VerdictPath(req.TargetID, req.DocumentID), body, nil); err != nil {
		return w.mutationError(target, req.TargetID, err)
	}

	w.settle(ctx, target, req.TargetID, audit.Event{
		Action:     audit.ActionVerdict,
		DocumentID: req.DocumentID,
		Verdict:    req.Verdict,
		Reason:     strings.TrimSpace(req.Reason),
		SessionID:  req.SessionID,
	})
	return nil
}

// SetAccountState disables or enables an account. Disabling requires a reason.
func (w *Workflow) SetAccountState(ctx context.Context, client Poster, target Target, req AccountRequest) error {
	if target.AccountPath == nil {
		return ErrAccountsDisabled
	}
	if strings.TrimSpace(req.TargetID) == "" {
		return ErrMissingTarget
	}
	reason := strings.TrimSpace(req.Reason)
	if req.Disable && reason == "" {
		return ErrReasonRequired
	}

	if err := client.Post(ctx, target.AccountPath(req.TargetID), map[string]string{"reason": reason}, nil); err != nil {
		return w.mutationError(target, req.TargetID, err)
	}

	action := audit.ActionEnable
	if req.Disable {
		action = audit.ActionDisable
	}
	w.settle(ctx, target, req.TargetID, audit.Event{Action: action, Reason: reason, SessionID: req.SessionID})
	return nil
}

// settle runs after the backend accepted a mutation.
func (w *Workflow) settle(ctx context.Context, target Target, id string, ev audit.Event) {
	keys := append([]string{target.DetailKey(id), target.CollectionKey}, target.ExtraKeys...)
	w.cache.Invalidate(keys...)

	ev.Target = target.Name
	ev.TargetID = id
	ev.At = w.now().UTC()
	if w.publisher == nil {
		return
	}
	if err := w.publisher.Publish(context.WithoutCancel(ctx), ev); err != nil {
		w.logger.Warn("failed to publish audit event", zap.String("target", target.Name), zap.String("id", id), zap.Error(err))
	}
}

func (w *Workflow) mutationError(target Target, id string, err error) error {
	w.logger.Info("mutation refused",
		zap.String("target", target.Name),
		zap.String("id", id),
		zap.Error(err),
	)

	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.Status
		if code < 400 || code > 499 {
			code = http.StatusBadGateway
		}
		return apperror.Mutation(err, code, backend.MessageOf(err, "the backend could not apply the change"))
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return apperror.Mutation(err, http.StatusGatewayTimeout, "the backend did not answer in time")
	}
	return apperror.Mutation(err, http.StatusBadGateway, "could not reach the backend")
}
