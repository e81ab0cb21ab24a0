// Package contact implements the visitor-facing contact form cycle:
// idle → submitting → (success | error) → idle.
package contact

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Hamsacgowda/Hamsa-B-C/internal/model"
)

const (
	// SuccessText is shown after a submission is stored.
	SuccessText = "Message sent successfully! I'll get back to you soon."
	// FallbackErrorText is shown when a failure carries no message of its own.
	FallbackErrorText = "Failed to send message"
	// RateLimitedText is shown when a visitor sends too many messages.
	RateLimitedText = "Too many messages sent. Please try again in a minute."
	// SuccessNoticeTTL is how long the success notice stays visible.
	SuccessNoticeTTL = 5 * time.Second

	submitLabel     = "Send Message"
	submittingLabel = "Sending..."
)

// ErrSubmitInFlight is returned when Submit is called while a previous
// submission from the same form has not settled.
var ErrSubmitInFlight = errors.New("contact: submission already in flight")

// Submitter stores one submission. The submission service satisfies it.
type Submitter interface {
	Submit(ctx context.Context, msg *model.Submission) error
}

// Fields are the four visitor-editable values of the form.
type Fields struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// IsZero reports whether every field is empty.
func (f Fields) IsZero() bool {
	return f == Fields{}
}

// State is the externally visible phase of the form.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return "idle"
	}
}

// NoticeKind distinguishes the two feedback notices.
type NoticeKind int

const (
	NoticeNone NoticeKind = iota
	NoticeSuccess
	NoticeError
)

// Notice is the feedback shown under the form.
type Notice struct {
	Kind NoticeKind
	Text string
}

// Visible reports whether the notice should be rendered.
func (n Notice) Visible() bool { return n.Kind != NoticeNone }

// Option configures a Form.
type Option func(*Form)

// WithClock replaces time.Now, used to expire the success notice.
func WithClock(now func() time.Time) Option {
	return func(f *Form) { f.now = now }
}

// Form holds the local state of one contact form.
type Form struct {
	submitter Submitter
	now       func() time.Time

	mu            sync.Mutex
	fields        Fields
	submitting    bool
	notice        Notice
	noticeExpires time.Time // zero: never expires
}

// NewForm returns an idle form with empty fields.
func NewForm(s Submitter, opts ...Option) *Form {
	f := &Form{submitter: s, now: time.Now}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// SetFields replaces all four field values.
func (f *Form) SetFields(fields Fields) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields = fields
}

// Set updates one field by its form name (name, email, subject, message).
func (f *Form) Set(name, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch name {
	case "name":
		f.fields.Name = value
	case "email":
		f.fields.Email = value
	case "subject":
		f.fields.Subject = value
	case "message":
		f.fields.Message = value
	default:
		return fmt.Errorf("contact: unknown field %q", name)
	}
	return nil
}

// Fields returns the current field values.
func (f *Form) Fields() Fields {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields
}

// Notice returns the visible notice, if any. A success notice disappears
// SuccessNoticeTTL after it was shown; an error notice stays until the next
// Submit.
func (f *Form) Notice() Notice {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.visibleNoticeLocked()
}

// NoticeExpiresIn returns the remaining lifetime of the visible notice, or
// zero when it does not expire.
func (f *Form) NoticeExpiresIn() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.visibleNoticeLocked().Visible() || f.noticeExpires.IsZero() {
		return 0
	}
	return f.noticeExpires.Sub(f.now())
}

func (f *Form) visibleNoticeLocked() Notice {
	if !f.noticeExpires.IsZero() && !f.now().Before(f.noticeExpires) {
		return Notice{}
	}
	return f.notice
}

// State derives the current phase from the in-flight flag and the notice.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitting {
		return StateSubmitting
	}
	switch f.visibleNoticeLocked().Kind {
	case NoticeSuccess:
		return StateSuccess
	case NoticeError:
		return StateError
	default:
		return StateIdle
	}
}

// CanSubmit reports whether the submit control is enabled.
func (f *Form) CanSubmit() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.submitting
}

// SubmitLabel is the text of the submit control.
func (f *Form) SubmitLabel() string {
	if f.CanSubmit() {
		return submitLabel
	}
	return submittingLabel
}

// Submit sends the current fields as one new submission.
//
// On success the fields are cleared and the success notice is shown for
// SuccessNoticeTTL. On failure the fields are kept and the error text stays
// visible until the next call. No retry is attempted.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return ErrSubmitInFlight
	}
	f.submitting = true
	f.notice = Notice{}
	f.noticeExpires = time.Time{}
	fields := f.fields
	f.mu.Unlock()

	msg := &model.Submission{
		Name:    fields.Name,
		Email:   fields.Email,
		Subject: fields.Subject,
		Message: fields.Message,
	}
	err := f.submitter.Submit(ctx, msg)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = false
	if err != nil {
		f.notice = Notice{Kind: NoticeError, Text: errorText(err)}
		return err
	}
	f.fields = Fields{}
	f.notice = Notice{Kind: NoticeSuccess, Text: SuccessText}
	f.noticeExpires = f.now().Add(SuccessNoticeTTL)
	return nil
}

// Reject shows an error notice with text without submitting. The fields
// are kept.
func (f *Form) Reject(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notice = Notice{Kind: NoticeError, Text: text}
	f.noticeExpires = time.Time{}
}

func errorText(err error) string {
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return FallbackErrorText
}
