// Package form implements the draft-editing state machine behind the UI
// forms: closed → editing → submitting → (closed on success | editing with
// an error on failure). The draft is always a copy; the canonical record is
// only touched through the store after a confirmed server response.
package form

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

type Status int

const (
	StatusClosed Status = iota
	StatusEditing
	StatusSubmitting
)

var (
	// ErrClosed is returned when Submit is called on a closed form.
	ErrClosed = errors.New("form is not open")
	// ErrSubmitInFlight is returned when Submit is called while a previous
	// submit has not resolved yet.
	ErrSubmitInFlight = errors.New("a submit is already in flight")
)

// ValidationError reports required-field violations found before any call
// is attempted.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing or invalid fields: %s", strings.Join(e.Fields, ", "))
}

// SubmitFunc performs the actual create/update call with a copy of the
// draft.
type SubmitFunc[D any] func(ctx context.Context, draft D) error

// ValidateFunc checks a draft client-side; it returns a *ValidationError
// when required fields are missing.
type ValidateFunc[D any] func(draft D) error

// Form is the state machine for one editable record of draft type D.
type Form[D any] struct {
	mu       sync.Mutex
	status   Status
	draft    D
	existing bool
	errMsg   string
	gen      uint64
}

// Open seeds the draft and enters editing mode. existing marks edit-of-record
// as opposed to create.
func (f *Form[D]) Open(draft D, existing bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gen++
	f.status = StatusEditing
	f.draft = draft
	f.existing = existing
	f.errMsg = ""
}

// Cancel discards the draft unconditionally and closes the form. It does not
// wait for an in-flight submit; that submit's result is discarded when it
// resolves.
func (f *Form[D]) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gen++
	f.status = StatusClosed
	var zero D
	f.draft = zero
	f.errMsg = ""
}

// Submit validates the draft and runs do with a copy of it. While the call
// is in flight the form reports StatusSubmitting and refuses further
// submits. On success the form closes and the draft is cleared; on failure
// it stays open with the draft preserved and a generic failure message. A
// result that resolves after Cancel is discarded.
func (f *Form[D]) Submit(ctx context.Context, validate ValidateFunc[D], do SubmitFunc[D]) error {
	f.mu.Lock()
	switch f.status {
	case StatusClosed:
		f.mu.Unlock()
		return ErrClosed
	case StatusSubmitting:
		f.mu.Unlock()
		return ErrSubmitInFlight
	}

	draft := f.draft
	if validate != nil {
		if err := validate(draft); err != nil {
			var verr *ValidationError
			if errors.As(err, &verr) {
				f.errMsg = verr.Error()
			}
			f.mu.Unlock()
			return err
		}
	}

	f.status = StatusSubmitting
	f.errMsg = ""
	gen := f.gen
	f.mu.Unlock()

	err := do(ctx, draft)

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.gen != gen {
		return err // form was cancelled; never apply the outcome
	}

	if err != nil {
		f.status = StatusEditing
		f.errMsg = "Failed to save. Please try again."
		return err
	}

	f.status = StatusClosed
	var zero D
	f.draft = zero
	return nil
}

// Draft returns a copy of the current draft.
func (f *Form[D]) Draft() D {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// SetDraft replaces the draft while editing. It is a no-op on a closed or
// submitting form.
func (f *Form[D]) SetDraft(draft D) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.status != StatusEditing {
		return
	}
	f.draft = draft
}

func (f *Form[D]) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// IsExisting reports whether the form was opened on an existing record.
func (f *Form[D]) IsExisting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.existing
}

// ErrMessage returns the user-facing failure message, if any.
func (f *Form[D]) ErrMessage() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errMsg
}
