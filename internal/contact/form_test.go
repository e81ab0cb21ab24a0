package contact

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Hamsacgowda/Hamsa-B-C/internal/model"
	"github.com/google/go-cmp/cmp"
)

type mockSubmitter struct {
	submitFunc func(ctx context.Context, msg *model.Submission) error
	calls      int
}

func (m *mockSubmitter) Submit(ctx context.Context, msg *model.Submission) error {
	m.calls++
	if m.submitFunc != nil {
		return m.submitFunc(ctx, msg)
	}
	return nil
}

// fakeClock is a manually advanced clock.
type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

var filled = Fields{
	Name:    "Jane Doe",
	Email:   "jane@example.com",
	Subject: "Project collaboration",
	Message: "Tell me about your project...",
}

func TestForm_StartsIdleAndEmpty(t *testing.T) {
	f := NewForm(&mockSubmitter{})

	if !f.Fields().IsZero() {
		t.Errorf("expected empty fields, got %+v", f.Fields())
	}
	if f.State() != StateIdle {
		t.Errorf("expected idle, got %v", f.State())
	}
	if f.Notice().Visible() {
		t.Error("expected no notice")
	}
	if f.SubmitLabel() != "Send Message" {
		t.Errorf("unexpected label %q", f.SubmitLabel())
	}
}

func TestForm_Set(t *testing.T) {
	f := NewForm(&mockSubmitter{})
	for name, value := range map[string]string{
		"name": filled.Name, "email": filled.Email, "subject": filled.Subject, "message": filled.Message,
	} {
		if err := f.Set(name, value); err != nil {
			t.Fatalf("Set(%s): %v", name, err)
		}
	}
	if diff := cmp.Diff(filled, f.Fields()); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
	if err := f.Set("phone", "123"); err == nil {
		t.Error("expected error for unknown field")
	}
}

func TestForm_SubmitSuccess_ClearsFieldsAndExpiresNotice(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)}
	var sent *model.Submission
	sub := &mockSubmitter{submitFunc: func(ctx context.Context, msg *model.Submission) error {
		sent = msg
		return nil
	}}
	f := NewForm(sub, WithClock(clock.Now))
	f.SetFields(filled)

	if err := f.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	want := &model.Submission{Name: filled.Name, Email: filled.Email, Subject: filled.Subject, Message: filled.Message}
	if diff := cmp.Diff(want, sent); diff != "" {
		t.Errorf("sent submission mismatch (-want +got):\n%s", diff)
	}
	if !f.Fields().IsZero() {
		t.Errorf("expected fields reset, got %+v", f.Fields())
	}
	n := f.Notice()
	if n.Kind != NoticeSuccess || n.Text != SuccessText {
		t.Errorf("expected success notice, got %+v", n)
	}
	if f.State() != StateSuccess {
		t.Errorf("expected success state, got %v", f.State())
	}
	if got := f.NoticeExpiresIn(); got != 5*time.Second {
		t.Errorf("expected notice to expire in 5s, got %v", got)
	}

	clock.Advance(4*time.Second + 999*time.Millisecond)
	if !f.Notice().Visible() {
		t.Error("notice should still be visible just before 5s")
	}

	clock.Advance(time.Millisecond)
	if f.Notice().Visible() {
		t.Error("notice should be gone after 5s")
	}
	if f.State() != StateIdle {
		t.Errorf("expected idle after notice expiry, got %v", f.State())
	}
}

func TestForm_SubmitFailure_KeepsFieldsAndError(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	sub := &mockSubmitter{submitFunc: func(ctx context.Context, msg *model.Submission) error {
		return errors.New("permission denied for table contact_submissions")
	}}
	f := NewForm(sub, WithClock(clock.Now))
	f.SetFields(filled)

	if err := f.Submit(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if diff := cmp.Diff(filled, f.Fields()); diff != "" {
		t.Errorf("fields must be kept on failure (-want +got):\n%s", diff)
	}

	n := f.Notice()
	if n.Kind != NoticeError || n.Text != "permission denied for table contact_submissions" {
		t.Errorf("unexpected notice %+v", n)
	}

	clock.Advance(time.Hour)
	if !f.Notice().Visible() {
		t.Error("error notice must persist until the next submit")
	}
	if f.State() != StateError {
		t.Errorf("expected error state, got %v", f.State())
	}
	if f.NoticeExpiresIn() != 0 {
		t.Error("error notice should not expire")
	}
}

func TestForm_Reject_ShowsErrorWithoutSubmitting(t *testing.T) {
	sub := &mockSubmitter{}
	f := NewForm(sub)
	f.SetFields(filled)

	f.Reject(RateLimitedText)

	if sub.calls != 0 {
		t.Errorf("Reject must not submit, got %d calls", sub.calls)
	}
	if n := f.Notice(); n.Kind != NoticeError || n.Text != RateLimitedText {
		t.Errorf("unexpected notice %+v", n)
	}
	if diff := cmp.Diff(filled, f.Fields()); diff != "" {
		t.Errorf("fields must be kept (-want +got):\n%s", diff)
	}
	if f.State() != StateError || !f.CanSubmit() {
		t.Errorf("expected an enabled form in the error state, got %v", f.State())
	}
}

func TestForm_SubmitFailure_FallbackText(t *testing.T) {
	sub := &mockSubmitter{submitFunc: func(ctx context.Context, msg *model.Submission) error {
		return errors.New("  ")
	}}
	f := NewForm(sub)

	_ = f.Submit(context.Background())

	if got := f.Notice().Text; got != FallbackErrorText {
		t.Errorf("expected fallback text, got %q", got)
	}
}

func TestForm_NextSubmitClearsPreviousError(t *testing.T) {
	fail := true
	sub := &mockSubmitter{submitFunc: func(ctx context.Context, msg *model.Submission) error {
		if fail {
			return errors.New("offline")
		}
		return nil
	}}
	f := NewForm(sub)
	f.SetFields(filled)

	_ = f.Submit(context.Background())
	if f.Notice().Kind != NoticeError {
		t.Fatal("expected error notice after first submit")
	}

	fail = false
	if err := f.Submit(context.Background()); err != nil {
		t.Fatalf("second Submit: %v", err)
	}
	if f.Notice().Kind != NoticeSuccess {
		t.Errorf("expected success notice after retry by the visitor, got %+v", f.Notice())
	}
	if sub.calls != 2 {
		t.Errorf("expected exactly 2 store calls, got %d", sub.calls)
	}
}

func TestForm_RejectsConcurrentSubmit(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	sub := &mockSubmitter{submitFunc: func(ctx context.Context, msg *model.Submission) error {
		close(started)
		<-release
		return nil
	}}
	f := NewForm(sub)
	f.SetFields(filled)

	done := make(chan error, 1)
	go func() { done <- f.Submit(context.Background()) }()
	<-started

	if f.State() != StateSubmitting {
		t.Errorf("expected submitting state, got %v", f.State())
	}
	if f.CanSubmit() {
		t.Error("submit control should be disabled while in flight")
	}
	if f.SubmitLabel() != "Sending..." {
		t.Errorf("unexpected label %q", f.SubmitLabel())
	}
	if err := f.Submit(context.Background()); !errors.Is(err, ErrSubmitInFlight) {
		t.Errorf("expected ErrSubmitInFlight, got %v", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first Submit: %v", err)
	}
	if sub.calls != 1 {
		t.Errorf("expected one store call, got %d", sub.calls)
	}
	if !f.CanSubmit() {
		t.Error("submit control should be enabled after settling")
	}
}
