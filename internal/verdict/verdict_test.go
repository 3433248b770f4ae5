package verdict

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cargorental/admin-dashboard/internal/audit"
	"github.com/cargorental/admin-dashboard/internal/backend"
	"github.com/cargorental/admin-dashboard/internal/pkg/apperror"
)

type fakePoster struct {
	calls []postCall
	err   error
}

type postCall struct {
	path string
	body map[string]string
}

func (f *fakePoster) Post(_ context.Context, path string, body, _ any) error {
	f.calls = append(f.calls, postCall{path: path, body: body.(map[string]string)})
	return f.err
}

type fakeCache struct {
	invalidations [][]string
}

func (f *fakeCache) Invalidate(keys ...string) {
	f.invalidations = append(f.invalidations, keys)
}

type fakePublisher struct {
	mu     sync.Mutex
	events []audit.Event
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, ev audit.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, ev)
	return f.err
}

func (f *fakePublisher) Close() error { return nil }

var ownerTarget = Target{
	Name:          "owner",
	CollectionKey: "owners",
	DetailKey:     func(id string) string { return "owner:" + id },
	VerdictPath: func(id, doc string) string {
		return "/api/admin/owners/" + id + "/documents/" + doc + "/verdict"
	},
	AccountPath: func(id string) string { return "/api/admin/owners/" + id + "/disable" },
}

var vehicleTarget = Target{
	Name:          "vehicle",
	CollectionKey: "vehicles",
	DetailKey:     func(id string) string { return "vehicle:" + id },
	VerdictPath: func(id, doc string) string {
		return "/api/admin/vehicles/" + id + "/documents/" + doc + "/verdict"
	},
	RequireRejectReason: true,
	ReasonField:         "reason_reason",
}

func newWorkflow() (*Workflow, *fakeCache, *fakePublisher) {
	cache := &fakeCache{}
	pub := &fakePublisher{}
	return NewWorkflow(cache, pub, nil), cache, pub
}

func TestSubmit_ApproveInvalidatesDetailAndCollectionTogether(t *testing.T) {
	w, cache, pub := newWorkflow()
	client := &fakePoster{}

	err := w.Submit(context.Background(), client, ownerTarget, Request{TargetID: "12", DocumentID: "3", Verdict: Approved})
	require.NoError(t, err)

	require.Len(t, client.calls, 1)
	assert.Equal(t, "/api/admin/owners/12/documents/3/verdict", client.calls[0].path)
	assert.Equal(t, map[string]string{"verdict": "APPROVED"}, client.calls[0].body)

	require.Len(t, cache.invalidations, 1, "both keys go stale in one step")
	assert.Equal(t, []string{"owner:12", "owners"}, cache.invalidations[0])

	require.Len(t, pub.events, 1)
	assert.Equal(t, audit.ActionVerdict, pub.events[0].Action)
	assert.Equal(t, "owner", pub.events[0].Target)
	assert.Equal(t, "12", pub.events[0].TargetID)
}

func TestSubmit_ExtraKeys(t *testing.T) {
	w, cache, _ := newWorkflow()
	target := ownerTarget
	target.ExtraKeys = []string{"dashboard"}

	require.NoError(t, w.Submit(context.Background(), &fakePoster{}, target, Request{TargetID: "1", DocumentID: "2", Verdict: Rejected}))
	assert.Equal(t, []string{"owner:1", "owners", "dashboard"}, cache.invalidations[0])
}

func TestSubmit_RejectReasonLength(t *testing.T) {
	tests := []struct {
		name    string
		reason  string
		wantErr error
	}{
		{"nine characters", "too short", ErrReasonTooShort},
		{"ten characters", "blurry doc", nil},
		{"padding does not count", "   short   ", ErrReasonTooShort},
		{"empty", "", ErrReasonTooShort},
		{"multibyte counted as characters", "ñññññññññ", ErrReasonTooShort},
		{"over the limit", strings.Repeat("x", 501), ErrReasonTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, cache, _ := newWorkflow()
			client := &fakePoster{}

			err := w.Submit(context.Background(), client, vehicleTarget, Request{
				TargetID: "5", DocumentID: "9", Verdict: Rejected, Reason: tt.reason,
			})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, client.calls, "no network call on a validation failure")
				assert.Empty(t, cache.invalidations)
				return
			}
			require.NoError(t, err)
			require.Len(t, client.calls, 1)
			assert.Equal(t, tt.reason, client.calls[0].body["reason_reason"])
		})
	}
}

func TestSubmit_ApproveIgnoresReasonRule(t *testing.T) {
	w, _, _ := newWorkflow()
	client := &fakePoster{}

	require.NoError(t, w.Submit(context.Background(), client, vehicleTarget, Request{TargetID: "5", DocumentID: "9", Verdict: Approved}))
	_, hasReason := client.calls[0].body["reason_reason"]
	assert.False(t, hasReason)
}

func TestSubmit_ValidationBeforeNetwork(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want error
	}{
		{"bad verdict", Request{TargetID: "1", DocumentID: "2", Verdict: "MAYBE"}, ErrInvalidVerdict},
		{"lowercase verdict", Request{TargetID: "1", DocumentID: "2", Verdict: "approved"}, ErrInvalidVerdict},
		{"missing target", Request{DocumentID: "2", Verdict: Approved}, ErrMissingTarget},
		{"missing document", Request{TargetID: "1", Verdict: Approved}, ErrMissingDocument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _, _ := newWorkflow()
			client := &fakePoster{}

			err := w.Submit(context.Background(), client, ownerTarget, tt.req)
			assert.ErrorIs(t, err, tt.want)

			var appErr *apperror.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, apperror.KindValidation, appErr.Kind)
			assert.Empty(t, client.calls)
		})
	}
}

func TestSubmit_BackendRefusal(t *testing.T) {
	w, cache, pub := newWorkflow()
	client := &fakePoster{err: &backend.APIError{Status: http.StatusConflict, Message: "Document already reviewed"}}

	err := w.Submit(context.Background(), client, ownerTarget, Request{TargetID: "12", DocumentID: "3", Verdict: Approved})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.KindMutation, appErr.Kind)
	assert.Equal(t, http.StatusConflict, appErr.Code)
	assert.Equal(t, "Document already reviewed", appErr.Message)

	assert.Len(t, client.calls, 1, "never retried")
	assert.Empty(t, cache.invalidations)
	assert.Empty(t, pub.events)
}

func TestSubmit_BackendServerErrorBecomesBadGateway(t *testing.T) {
	w, _, _ := newWorkflow()
	client := &fakePoster{err: &backend.APIError{Status: http.StatusInternalServerError, Message: "boom"}}

	err := w.Submit(context.Background(), client, ownerTarget, Request{TargetID: "1", DocumentID: "2", Verdict: Approved})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadGateway, appErr.Code)
	assert.Equal(t, "boom", appErr.Message)
}

func TestSubmit_TransportFailure(t *testing.T) {
	w, _, _ := newWorkflow()
	client := &fakePoster{err: errors.New("connection refused")}

	err := w.Submit(context.Background(), client, ownerTarget, Request{TargetID: "1", DocumentID: "2", Verdict: Approved})

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.KindMutation, appErr.Kind)
	assert.Equal(t, http.StatusBadGateway, appErr.Code)
}

func TestSubmit_AuditFailureDoesNotFailMutation(t *testing.T) {
	cache := &fakeCache{}
	w := NewWorkflow(cache, &fakePublisher{err: errors.New("broker down")}, nil)

	err := w.Submit(context.Background(), &fakePoster{}, ownerTarget, Request{TargetID: "1", DocumentID: "2", Verdict: Approved})
	require.NoError(t, err)
	assert.Len(t, cache.invalidations, 1)
}

func TestSetAccountState(t *testing.T) {
	t.Run("disable requires a reason", func(t *testing.T) {
		w, _, _ := newWorkflow()
		client := &fakePoster{}

		err := w.SetAccountState(context.Background(), client, ownerTarget, AccountRequest{TargetID: "7", Disable: true, Reason: "   "})
		assert.ErrorIs(t, err, ErrReasonRequired)
		assert.Empty(t, client.calls)
	})

	t.Run("disable posts the trimmed reason", func(t *testing.T) {
		w, cache, pub := newWorkflow()
		client := &fakePoster{}

		err := w.SetAccountState(context.Background(), client, ownerTarget, AccountRequest{TargetID: "7", Disable: true, Reason: " fraud "})
		require.NoError(t, err)
		assert.Equal(t, "/api/admin/owners/7/disable", client.calls[0].path)
		assert.Equal(t, "fraud", client.calls[0].body["reason"])
		assert.Equal(t, []string{"owner:7", "owners"}, cache.invalidations[0])
		assert.Equal(t, audit.ActionDisable, pub.events[0].Action)
	})

	t.Run("enable needs no reason", func(t *testing.T) {
		w, _, pub := newWorkflow()
		client := &fakePoster{}

		require.NoError(t, w.SetAccountState(context.Background(), client, ownerTarget, AccountRequest{TargetID: "7"}))
		assert.Equal(t, audit.ActionEnable, pub.events[0].Action)
	})

	t.Run("target without accounts", func(t *testing.T) {
		w, _, _ := newWorkflow()
		err := w.SetAccountState(context.Background(), &fakePoster{}, vehicleTarget, AccountRequest{TargetID: "7", Disable: true, Reason: "x"})
		assert.ErrorIs(t, err, ErrAccountsDisabled)
	})
}

func TestReasonLongEnough(t *testing.T) {
	assert.False(t, ReasonLongEnough(strings.Repeat("a", 9)))
	assert.True(t, ReasonLongEnough(strings.Repeat("a", 10)))
	assert.True(t, ReasonLongEnough("\t"+strings.Repeat("a", 10)+"\n"))
}
