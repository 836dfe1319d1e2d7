package form

import (
	"context"
	"errors"
	"testing"

	"insurtrack/internal/domain/customer"
	"insurtrack/internal/domain/insurance"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormOpenSeedsDraftCopy(t *testing.T) {
	existing := &customer.Customer{ID: 1, Name: "Alice", Email: "alice@example.com"}

	var f CustomerForm
	f.Open(NewCustomerDraft(existing), true)

	assert.Equal(t, StatusEditing, f.Status())
	assert.True(t, f.IsExisting())

	// Editing the draft never touches the source record.
	d := f.Draft()
	d.Name = "changed"
	f.SetDraft(d)
	assert.Equal(t, "Alice", existing.Name)
	assert.Equal(t, "changed", f.Draft().Name)
}

func TestFormSubmitClosedIsRejected(t *testing.T) {
	var f CustomerForm
	err := f.Submit(context.Background(), nil, func(ctx context.Context, d CustomerDraft) error {
		t.Fatal("submit func must not run on a closed form")
		return nil
	})
	assert.ErrorIs(t, err, ErrClosed)
}

func TestFormValidationBlocksCall(t *testing.T) {
	var f CustomerForm
	f.Open(CustomerDraft{}, false) // name missing

	called := false
	err := f.Submit(context.Background(), ValidateCustomerDraft, func(ctx context.Context, d CustomerDraft) error {
		called = true
		return nil
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")
	assert.False(t, called)
	assert.Equal(t, StatusEditing, f.Status(), "form stays open for correction")
	assert.NotEmpty(t, f.ErrMessage())
}

func TestFormSubmitSuccessClosesAndClears(t *testing.T) {
	var f CustomerForm
	f.Open(CustomerDraft{Name: "Alice"}, false)

	err := f.Submit(context.Background(), ValidateCustomerDraft, func(ctx context.Context, d CustomerDraft) error {
		assert.Equal(t, "Alice", d.Name)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, StatusClosed, f.Status())
	assert.Empty(t, f.Draft().Name)
	assert.Empty(t, f.ErrMessage())
}

func TestFormSubmitFailureKeepsDraft(t *testing.T) {
	var f CustomerForm
	f.Open(CustomerDraft{Name: "Alice", Notes: "vip"}, false)

	err := f.Submit(context.Background(), ValidateCustomerDraft, func(ctx context.Context, d CustomerDraft) error {
		return errors.New("server rejected")
	})

	require.Error(t, err)
	assert.Equal(t, StatusEditing, f.Status())
	assert.Equal(t, "vip", f.Draft().Notes, "draft survives a failed submit")
	assert.Equal(t, "Failed to save. Please try again.", f.ErrMessage())
}

func TestFormDuplicateSubmitSuppressed(t *testing.T) {
	var f CustomerForm
	f.Open(CustomerDraft{Name: "Alice"}, false)

	inFlight := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		done <- f.Submit(context.Background(), nil, func(ctx context.Context, d CustomerDraft) error {
			close(inFlight)
			<-release
			return nil
		})
	}()

	<-inFlight
	err := f.Submit(context.Background(), nil, func(ctx context.Context, d CustomerDraft) error {
		t.Error("second submit must not run")
		return nil
	})
	assert.ErrorIs(t, err, ErrSubmitInFlight)

	close(release)
	require.NoError(t, <-done)
}

func TestFormCancelDuringSubmitDiscardsOutcome(t *testing.T) {
	var f CustomerForm
	f.Open(CustomerDraft{Name: "Alice"}, false)

	inFlight := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		done <- f.Submit(context.Background(), nil, func(ctx context.Context, d CustomerDraft) error {
			close(inFlight)
			<-release
			return errors.New("late failure")
		})
	}()

	<-inFlight
	f.Cancel()
	assert.Equal(t, StatusClosed, f.Status())

	close(release)
	<-done

	// The late failure must not reopen the cancelled form or set a message.
	assert.Equal(t, StatusClosed, f.Status())
	assert.Empty(t, f.ErrMessage())
}

func TestFormCancelClearsDraft(t *testing.T) {
	var f CustomerForm
	f.Open(CustomerDraft{Name: "Alice"}, true)
	f.Cancel()

	assert.Equal(t, StatusClosed, f.Status())
	assert.Empty(t, f.Draft().Name)
}

func TestFormSetDraftIgnoredWhenNotEditing(t *testing.T) {
	var f CustomerForm
	f.SetDraft(CustomerDraft{Name: "ghost"})
	assert.Empty(t, f.Draft().Name)
}

func TestValidateInsuranceDraftCollectsAllProblems(t *testing.T) {
	err := ValidateInsuranceDraft(InsuranceDraft{
		Type:          "boat",
		RenewalDate:   "31-12-2026",
		PremiumAmount: -5,
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ElementsMatch(t,
		[]string{"type", "renewal_date", "coverage_details", "premium_amount"},
		verr.Fields,
	)
}

func TestValidateInsuranceDraftAcceptsCompleteDraft(t *testing.T) {
	err := ValidateInsuranceDraft(InsuranceDraft{
		Type:            insurance.TypeAuto,
		RenewalDate:     "2026-09-15",
		CoverageDetails: "full coverage",
		PremiumAmount:   0,
	})
	assert.NoError(t, err)
}

func TestInsuranceDraftRequestParsesDate(t *testing.T) {
	d := InsuranceDraft{
		Type:            insurance.TypeHealth,
		RenewalDate:     "2026-09-15",
		CoverageDetails: "dental",
		PremiumAmount:   42.5,
	}

	req, err := d.Request()
	require.NoError(t, err)
	assert.Equal(t, "2026-09-15", req.RenewalDate.String())
	assert.Zero(t, req.CustomerID, "customer binding belongs to the store")

	_, err = InsuranceDraft{RenewalDate: "soon"}.Request()
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestNewInsuranceDraftRoundTripsDate(t *testing.T) {
	existing := &insurance.Insurance{
		ID:          4,
		Type:        insurance.TypeLife,
		RenewalDate: insurance.NewDate(2027, 3, 1),
	}

	d := NewInsuranceDraft(existing)
	assert.Equal(t, "2027-03-01", d.RenewalDate)
}
