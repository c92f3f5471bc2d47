package payments

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize(t *testing.T) {
	var gotAuth string
	var gotBody initializeRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/transaction/initialize", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": true,
			"message": "Authorization URL created",
			"data": {
				"authorization_url": "https://checkout.paystack.com/abc123",
				"access_code": "abc123",
				"reference": "ref-0001"
			}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "sk_test_secret", 5*time.Second)

	result, err := client.Initialize("jane@example.com", ToKobo(10000), "https://portal.example.com/callback", map[string]string{
		"applicationNumber": "ACE/SPED/2026/AB12CD",
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer sk_test_secret", gotAuth)
	assert.Equal(t, "jane@example.com", gotBody.Email)
	assert.Equal(t, int64(1000000), gotBody.Amount)
	assert.Equal(t, "https://portal.example.com/callback", gotBody.CallbackURL)
	assert.Equal(t, "ACE/SPED/2026/AB12CD", gotBody.Metadata["applicationNumber"])

	assert.Equal(t, "https://checkout.paystack.com/abc123", result.AuthorizationURL)
	assert.Equal(t, "abc123", result.AccessCode)
	assert.Equal(t, "ref-0001", result.Reference)
}

func TestInitializeRejectsBadAmount(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "sk_test_secret", time.Second)

	_, err := client.Initialize("jane@example.com", 0, "", nil)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = client.Initialize("jane@example.com", -500, "", nil)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestInitializeProviderDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, "sk_test_secret", time.Second)

	_, err := client.Initialize("jane@example.com", 100000, "", nil)
	assert.ErrorIs(t, err, ErrGatewayUnavailable)
}

func TestInitializeRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"status": false, "message": "Invalid email address"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "sk_test_secret", time.Second)

	_, err := client.Initialize("not-an-email", 100000, "", nil)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrGatewayUnavailable)
	assert.Contains(t, err.Error(), "Invalid email address")
}

func TestVerifySuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/transaction/verify/ref-0001", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": true,
			"message": "Verification successful",
			"data": {
				"status": "success",
				"amount": 1000000,
				"currency": "NGN",
				"customer": {"email": "jane@example.com"}
			}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "sk_test_secret", time.Second)

	result, err := client.Verify("ref-0001")
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, "success", result.Status)
	assert.Equal(t, int64(1000000), result.AmountKobo)
	assert.Equal(t, "NGN", result.Currency)
	assert.Equal(t, "jane@example.com", result.CustomerEmail)
	assert.NotEmpty(t, result.Raw)
}

func TestVerifyNotSuccessful(t *testing.T) {
	for _, status := range []string{"failed", "abandoned"} {
		t.Run(status, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{
					"status": true,
					"message": "Verification successful",
					"data": {"status": "` + status + `", "amount": 1000000, "currency": "NGN", "customer": {"email": "jane@example.com"}}
				}`))
			}))
			defer server.Close()

			client := NewClient(server.URL, "sk_test_secret", time.Second)

			result, err := client.Verify("ref-0002")
			require.NoError(t, err)

			assert.False(t, result.Success)
			assert.Equal(t, status, result.Status)
		})
	}
}

func TestVerifyUnknownReference(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"status": false, "message": "Transaction reference not found"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "sk_test_secret", time.Second)

	_, err := client.Verify("no-such-reference")
	assert.ErrorIs(t, err, ErrInvalidReference)
}

func TestVerifyEmptyReference(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "sk_test_secret", time.Second)

	_, err := client.Verify("")
	assert.ErrorIs(t, err, ErrInvalidReference)
}

func TestVerifyProviderDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, "sk_test_secret", time.Second)

	_, err := client.Verify("ref-0001")
	assert.ErrorIs(t, err, ErrGatewayUnavailable)
}

func TestVerifyTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClient(server.URL, "sk_test_secret", 50*time.Millisecond)

	_, err := client.Verify("ref-0001")
	assert.ErrorIs(t, err, ErrGatewayUnavailable)
}

func TestToKobo(t *testing.T) {
	assert.Equal(t, int64(0), ToKobo(0))
	assert.Equal(t, int64(100), ToKobo(1))
	assert.Equal(t, int64(5000000), ToKobo(50000))
}
