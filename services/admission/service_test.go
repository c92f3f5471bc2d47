package admission

import (
	"fmt"
	"regexp"
	"sync"
	"testing"
	"time"

	"acesped/models"
	"acesped/payments"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakeGateway records calls and serves canned verify results
type fakeGateway struct {
	mu          sync.Mutex
	initCalls   int
	verifyCalls int
	results     map[string]*payments.VerifyResult
	verifyErr   error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{results: make(map[string]*payments.VerifyResult)}
}

func (f *fakeGateway) Initialize(email string, amountKobo int64, callbackURL string, metadata map[string]string) (*payments.InitResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.initCalls++
	ref := fmt.Sprintf("PSK-%d", f.initCalls)
	return &payments.InitResult{
		AuthorizationURL: "https://checkout.example.test/" + ref,
		Reference:        ref,
	}, nil
}

func (f *fakeGateway) Verify(reference string) (*payments.VerifyResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.verifyCalls++
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	if res, ok := f.results[reference]; ok {
		return res, nil
	}
	return nil, payments.ErrInvalidReference
}

func (f *fakeGateway) succeedReference(reference string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results[reference] = &payments.VerifyResult{Success: true, Status: "success", AmountKobo: 1000000, Currency: "NGN"}
}

func (f *fakeGateway) failReference(reference string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results[reference] = &payments.VerifyResult{Success: false, Status: "abandoned"}
}

func (f *fakeGateway) verifyCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.verifyCalls
}

// countingNotifier counts applied transitions
type countingNotifier struct {
	mu                sync.Mutex
	applicationEvents int
	skillEvents       int
	acceptanceEvents  int
}

func (n *countingNotifier) ApplicationFeeConfirmed(*models.Applicant) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.applicationEvents++
}

func (n *countingNotifier) SkillEnrolled(*models.SkillApplicant) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.skillEvents++
}

func (n *countingNotifier) AcceptanceConfirmed(*models.Applicant) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.acceptanceEvents++
}

func newTestService(t *testing.T) (*Service, *fakeGateway, *countingNotifier, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_busy_timeout=5000"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// Single connection keeps the shared in-memory database alive and
	// serializes concurrent test writers.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Applicant{}, &models.SkillApplicant{}))

	// Fresh tables per test; the shared in-memory DB persists across opens
	db.Exec("DELETE FROM applicants")
	db.Exec("DELETE FROM skill_applicants")

	gateway := newFakeGateway()
	notifier := &countingNotifier{}
	svc := NewService(db, gateway, "2026/2027")
	svc.SetNotifier(notifier)
	return svc, gateway, notifier, db
}

func validApplication() ApplicationInput {
	return ApplicationInput{
		FirstName: "Adaeze",
		LastName:  "Okafor",
		Email:     "adaeze@example.com",
		Mobile:    "08030000001",
		Programme: "MSc Special Education",
	}
}

func TestSubmitApplication(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	applicant, err := svc.SubmitApplication(validApplication())
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^ACE/SPED/2026/[0-9A-F]{6}$`), applicant.ApplicationNumber)
	assert.Equal(t, models.ApplicantStatusPending, applicant.Status)
	assert.Equal(t, "2026/2027", applicant.AdmissionSession)
	assert.False(t, applicant.ApplicationFeePaid)
	assert.Nil(t, applicant.ApplicationPaidAt)
}

func TestSubmitApplicationValidation(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	input := validApplication()
	input.Email = "not-an-email"
	input.Programme = ""

	_, err := svc.SubmitApplication(input)
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Contains(t, vErr.Fields, "email")
	assert.Contains(t, vErr.Fields, "programme")
	assert.NotContains(t, vErr.Fields, "firstName")
}

func TestApplicationNumbersUniqueUnderConcurrentSubmissions(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	const n = 20
	var wg sync.WaitGroup
	numbers := make(chan string, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			input := validApplication()
			input.Email = fmt.Sprintf("applicant%d@example.com", i)
			applicant, err := svc.SubmitApplication(input)
			if err != nil {
				t.Errorf("submission %d failed: %v", i, err)
				return
			}
			numbers <- applicant.ApplicationNumber
		}(i)
	}
	wg.Wait()
	close(numbers)

	seen := make(map[string]bool)
	for number := range numbers {
		assert.False(t, seen[number], "duplicate application number %s", number)
		seen[number] = true
	}
	assert.Len(t, seen, n)
}

func TestConfirmApplicationPayment(t *testing.T) {
	svc, gateway, notifier, _ := newTestService(t)

	applicant, err := svc.SubmitApplication(validApplication())
	require.NoError(t, err)

	init, err := svc.InitializeApplicationPayment(applicant.ApplicationNumber, payments.ToKobo(10000), "http://localhost/cb")
	require.NoError(t, err)
	gateway.succeedReference(init.Reference)

	confirmed, err := svc.ConfirmApplicationPayment(init.Reference, "")
	require.NoError(t, err)
	assert.True(t, confirmed.ApplicationFeePaid)
	require.NotNil(t, confirmed.ApplicationPaidAt)
	assert.WithinDuration(t, time.Now(), *confirmed.ApplicationPaidAt, 5*time.Second)
	assert.Equal(t, init.Reference, confirmed.PaymentReference)
	assert.Equal(t, 1, gateway.verifyCount())
	assert.Equal(t, 1, notifier.applicationEvents)
}

func TestConfirmApplicationPaymentByNumberHint(t *testing.T) {
	svc, gateway, _, _ := newTestService(t)

	applicant, err := svc.SubmitApplication(validApplication())
	require.NoError(t, err)

	// Reference never stored locally; only the hint resolves the record
	gateway.succeedReference("PSK-fresh")
	confirmed, err := svc.ConfirmApplicationPayment("PSK-fresh", applicant.ApplicationNumber)
	require.NoError(t, err)
	assert.True(t, confirmed.ApplicationFeePaid)
	assert.Equal(t, "PSK-fresh", confirmed.PaymentReference)
}

func TestConfirmApplicationPaymentIdempotent(t *testing.T) {
	svc, gateway, notifier, _ := newTestService(t)

	applicant, err := svc.SubmitApplication(validApplication())
	require.NoError(t, err)

	init, err := svc.InitializeApplicationPayment(applicant.ApplicationNumber, payments.ToKobo(10000), "http://localhost/cb")
	require.NoError(t, err)
	gateway.succeedReference(init.Reference)

	first, err := svc.ConfirmApplicationPayment(init.Reference, "")
	require.NoError(t, err)
	callsAfterFirst := gateway.verifyCount()

	second, err := svc.ConfirmApplicationPayment(init.Reference, "")
	require.NoError(t, err)

	// Identical state, zero additional gateway calls, zero additional writes
	assert.Equal(t, callsAfterFirst, gateway.verifyCount())
	assert.Equal(t, first.ApplicationFeePaid, second.ApplicationFeePaid)
	assert.Equal(t, first.PaymentReference, second.PaymentReference)
	require.NotNil(t, second.ApplicationPaidAt)
	assert.True(t, first.ApplicationPaidAt.Equal(*second.ApplicationPaidAt))
	assert.Equal(t, 1, notifier.applicationEvents)
}

func TestConcurrentConfirmsApplyExactlyOnce(t *testing.T) {
	svc, gateway, notifier, _ := newTestService(t)

	applicant, err := svc.SubmitApplication(validApplication())
	require.NoError(t, err)

	init, err := svc.InitializeApplicationPayment(applicant.ApplicationNumber, payments.ToKobo(10000), "http://localhost/cb")
	require.NoError(t, err)
	gateway.succeedReference(init.Reference)

	const n = 8
	var wg sync.WaitGroup
	results := make([]*models.Applicant, n)
	errs := make([]error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.ConfirmApplicationPayment(init.Reference, "")
		}(i)
	}
	wg.Wait()

	var paidAt *time.Time
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.True(t, results[i].ApplicationFeePaid)
		require.NotNil(t, results[i].ApplicationPaidAt)
		if paidAt == nil {
			paidAt = results[i].ApplicationPaidAt
		} else {
			// every caller observes the single applied transition
			assert.True(t, paidAt.Equal(*results[i].ApplicationPaidAt))
		}
	}
	assert.Equal(t, 1, notifier.applicationEvents)
}

func TestConfirmApplicationPaymentFailureWritesNothing(t *testing.T) {
	svc, gateway, notifier, _ := newTestService(t)

	applicant, err := svc.SubmitApplication(validApplication())
	require.NoError(t, err)

	init, err := svc.InitializeApplicationPayment(applicant.ApplicationNumber, payments.ToKobo(10000), "http://localhost/cb")
	require.NoError(t, err)
	gateway.failReference(init.Reference)

	_, err = svc.ConfirmApplicationPayment(init.Reference, "")
	assert.ErrorIs(t, err, ErrPaymentNotConfirmed)

	fresh, err := svc.findByNumber(applicant.ApplicationNumber)
	require.NoError(t, err)
	assert.False(t, fresh.ApplicationFeePaid)
	assert.Nil(t, fresh.ApplicationPaidAt)
	assert.Equal(t, 0, notifier.applicationEvents)
}

func TestConfirmApplicationPaymentUnknownRecord(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.ConfirmApplicationPayment("PSK-unknown", "")
	assert.ErrorIs(t, err, ErrRecordNotFound)

	_, err = svc.ConfirmApplicationPayment("", "")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func admitApplicant(t *testing.T, svc *Service, db *gorm.DB) *models.Applicant {
	t.Helper()

	applicant, err := svc.SubmitApplication(validApplication())
	require.NoError(t, err)

	now := time.Now()
	require.NoError(t, db.Model(applicant).Updates(map[string]interface{}{
		"application_fee_paid": true,
		"application_paid_at":  now,
		"payment_reference":    "PSK-app",
		"status":               models.ApplicantStatusAdmitted,
	}).Error)

	fresh, err := svc.findByNumber(applicant.ApplicationNumber)
	require.NoError(t, err)
	return fresh
}

func TestVerifyAcceptanceIdentity(t *testing.T) {
	svc, _, _, db := newTestService(t)
	applicant := admitApplicant(t, svc, db)

	found, err := svc.VerifyAcceptanceIdentity("ADAEZE@example.com", applicant.ApplicationNumber)
	require.NoError(t, err)
	assert.Equal(t, applicant.ApplicationNumber, found.ApplicationNumber)

	_, err = svc.VerifyAcceptanceIdentity("someoneelse@example.com", applicant.ApplicationNumber)
	assert.ErrorIs(t, err, ErrRecordNotFound)

	_, err = svc.VerifyAcceptanceIdentity("adaeze@example.com", "ACE/SPED/2026/XXXXXX")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestConfirmAcceptancePayment(t *testing.T) {
	svc, gateway, notifier, db := newTestService(t)
	applicant := admitApplicant(t, svc, db)

	init, err := svc.InitializeAcceptancePayment(applicant.ApplicationNumber, payments.ToKobo(50000), "http://localhost/cb")
	require.NoError(t, err)
	gateway.succeedReference(init.Reference)

	confirmed, err := svc.ConfirmAcceptancePayment(init.Reference, applicant.ApplicationNumber)
	require.NoError(t, err)

	assert.True(t, confirmed.AcceptanceFeePaid)
	require.NotNil(t, confirmed.AcceptancePaidAt)
	assert.WithinDuration(t, time.Now(), *confirmed.AcceptancePaidAt, 5*time.Second)
	assert.Equal(t, init.Reference, confirmed.AcceptancePaymentReference)
	assert.Equal(t, 1, notifier.acceptanceEvents)
}

func TestInitializeAcceptancePaymentWritesNoPaymentFacts(t *testing.T) {
	svc, _, _, db := newTestService(t)
	applicant := admitApplicant(t, svc, db)

	init, err := svc.InitializeAcceptancePayment(applicant.ApplicationNumber, payments.ToKobo(50000), "http://localhost/cb")
	require.NoError(t, err)
	require.NotEmpty(t, init.Reference)

	// The record stays fully unpaid until the verify-backed confirm
	fresh, err := svc.findByNumber(applicant.ApplicationNumber)
	require.NoError(t, err)
	assert.False(t, fresh.AcceptanceFeePaid)
	assert.Nil(t, fresh.AcceptancePaidAt)
	assert.Empty(t, fresh.AcceptancePaymentReference)
}

func TestConfirmAcceptancePaymentIdempotent(t *testing.T) {
	svc, gateway, notifier, db := newTestService(t)
	applicant := admitApplicant(t, svc, db)

	init, err := svc.InitializeAcceptancePayment(applicant.ApplicationNumber, payments.ToKobo(50000), "http://localhost/cb")
	require.NoError(t, err)
	gateway.succeedReference(init.Reference)

	first, err := svc.ConfirmAcceptancePayment(init.Reference, applicant.ApplicationNumber)
	require.NoError(t, err)
	callsAfterFirst := gateway.verifyCount()

	// No hint needed on the repeat: the stored reference resolves the record
	second, err := svc.ConfirmAcceptancePayment(init.Reference, "")
	require.NoError(t, err)

	assert.Equal(t, callsAfterFirst, gateway.verifyCount())
	assert.True(t, second.AcceptanceFeePaid)
	assert.True(t, first.AcceptancePaidAt.Equal(*second.AcceptancePaidAt))
	assert.Equal(t, first.AcceptancePaymentReference, second.AcceptancePaymentReference)
	assert.Equal(t, 1, notifier.acceptanceEvents)
}

func TestConfirmAcceptancePaymentRequiresAdmission(t *testing.T) {
	svc, gateway, _, _ := newTestService(t)

	applicant, err := svc.SubmitApplication(validApplication())
	require.NoError(t, err)

	_, err = svc.InitializeAcceptancePayment(applicant.ApplicationNumber, payments.ToKobo(50000), "http://localhost/cb")
	assert.ErrorIs(t, err, ErrNotAdmitted)

	gateway.succeedReference("PSK-early")
	_, err = svc.ConfirmAcceptancePayment("PSK-early", applicant.ApplicationNumber)
	assert.ErrorIs(t, err, ErrNotAdmitted)
}

func TestAcceptanceTripleConsistency(t *testing.T) {
	svc, gateway, _, db := newTestService(t)
	applicant := admitApplicant(t, svc, db)

	// Before payment: all three unset
	assert.False(t, applicant.AcceptanceFeePaid)
	assert.Nil(t, applicant.AcceptancePaidAt)
	assert.Empty(t, applicant.AcceptancePaymentReference)

	// Initialize leaves all three unset
	init, err := svc.InitializeAcceptancePayment(applicant.ApplicationNumber, payments.ToKobo(50000), "http://localhost/cb")
	require.NoError(t, err)
	opened, err := svc.findByNumber(applicant.ApplicationNumber)
	require.NoError(t, err)
	assert.False(t, opened.AcceptanceFeePaid)
	assert.Nil(t, opened.AcceptancePaidAt)
	assert.Empty(t, opened.AcceptancePaymentReference)

	// Failed verify leaves all three unset
	gateway.failReference(init.Reference)
	_, err = svc.ConfirmAcceptancePayment(init.Reference, applicant.ApplicationNumber)
	assert.ErrorIs(t, err, ErrPaymentNotConfirmed)

	fresh, err := svc.findByNumber(applicant.ApplicationNumber)
	require.NoError(t, err)
	assert.False(t, fresh.AcceptanceFeePaid)
	assert.Nil(t, fresh.AcceptancePaidAt)
	assert.Empty(t, fresh.AcceptancePaymentReference)

	// Successful verify sets all three together
	gateway.succeedReference(init.Reference)
	confirmed, err := svc.ConfirmAcceptancePayment(init.Reference, applicant.ApplicationNumber)
	require.NoError(t, err)
	assert.True(t, confirmed.AcceptanceFeePaid)
	assert.NotNil(t, confirmed.AcceptancePaidAt)
	assert.NotEmpty(t, confirmed.AcceptancePaymentReference)
}

func TestIssueAdmissionLetter(t *testing.T) {
	svc, gateway, _, db := newTestService(t)

	_, err := svc.IssueAdmissionLetter("ACE/SPED/2026/XXXXXX")
	assert.ErrorIs(t, err, ErrRecordNotFound)

	applicant := admitApplicant(t, svc, db)

	// Gated until the acceptance fee is confirmed
	_, err = svc.IssueAdmissionLetter(applicant.ApplicationNumber)
	assert.ErrorIs(t, err, ErrAcceptanceRequired)

	init, err := svc.InitializeAcceptancePayment(applicant.ApplicationNumber, payments.ToKobo(50000), "http://localhost/cb")
	require.NoError(t, err)
	gateway.succeedReference(init.Reference)
	confirmed, err := svc.ConfirmAcceptancePayment(init.Reference, applicant.ApplicationNumber)
	require.NoError(t, err)

	letter, err := svc.IssueAdmissionLetter(applicant.ApplicationNumber)
	require.NoError(t, err)
	assert.Equal(t, applicant.ApplicationNumber, letter.ApplicationNumber)
	assert.Equal(t, "Adaeze Okafor", letter.FullName)
	assert.Equal(t, "MSc Special Education", letter.Programme)
	assert.Equal(t, "2026/2027", letter.AdmissionSession)
	assert.Equal(t, confirmed.AcceptancePaymentReference, letter.AcceptancePaymentReference)
	assert.WithinDuration(t, time.Now(), letter.IssuedAt, 5*time.Second)
}

func TestSkillApplicationLifecycle(t *testing.T) {
	svc, gateway, notifier, _ := newTestService(t)

	applicant, err := svc.SubmitSkillApplication(SkillApplicationInput{
		FirstName:      "Bashir",
		LastName:       "Lawal",
		Email:          "bashir@example.com",
		Mobile:         "08030000002",
		SkillProgramme: "Braille Production",
	})
	require.NoError(t, err)
	assert.Equal(t, models.SkillStatusAwaitingPayment, applicant.Status)
	assert.Regexp(t, regexp.MustCompile(`^ACE/SPED/2026/[0-9A-F]{6}$`), applicant.ApplicationNumber)

	init, err := svc.InitializeSkillPayment(applicant.ApplicationNumber, payments.ToKobo(25000), "http://localhost/cb")
	require.NoError(t, err)
	gateway.succeedReference(init.Reference)

	enrolled, err := svc.ConfirmSkillApplicationPayment(init.Reference, "")
	require.NoError(t, err)
	assert.Equal(t, models.SkillStatusEnrolled, enrolled.Status)
	assert.True(t, enrolled.ApplicationFeePaid)
	assert.NotNil(t, enrolled.ApplicationPaidAt)
	assert.Equal(t, 1, notifier.skillEvents)

	// Duplicate confirm is absorbed
	again, err := svc.ConfirmSkillApplicationPayment(init.Reference, "")
	require.NoError(t, err)
	assert.Equal(t, 1, gateway.verifyCount())
	assert.True(t, enrolled.ApplicationPaidAt.Equal(*again.ApplicationPaidAt))
	assert.Equal(t, 1, notifier.skillEvents)
}
