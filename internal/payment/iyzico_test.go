package payment

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(baseURL string) *Client {
	return &Client{
		APIKey:     "test-api-key",
		SecretKey:  "test-secret",
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 2 * time.Second},
	}
}

func TestInitializeCheckoutForm(t *testing.T) {
	var gotAuth, gotRnd string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payment/iyzipos/checkoutform/initialize/auth/ecom", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		gotAuth = r.Header.Get("Authorization")
		gotRnd = r.Header.Get("x-iyzi-rnd")

		json.NewEncoder(w).Encode(CheckoutFormResult{
			Status:         "success",
			Token:          "tok-123",
			PaymentPageURL: "https://sandbox.example/pay/tok-123",
		})
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	result, err := c.InitializeCheckoutForm(&CheckoutFormRequest{
		Locale:         "tr",
		ConversationID: "conv-1",
		Price:          "50.00",
		PaidPrice:      "50.00",
		Currency:       "TRY",
	})
	require.NoError(t, err)

	assert.Equal(t, "tok-123", result.Token)
	assert.Equal(t, "https://sandbox.example/pay/tok-123", result.PaymentPageURL)

	// İmzalı IYZWSv2 başlığı ve istek başına değişen rnd gönderilmiş olmalı
	assert.NotEmpty(t, gotRnd)
	assert.Contains(t, gotAuth, "IYZWSv2 ")
}

func TestRetrieveCheckoutForm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payment/iyzipos/checkoutform/auth/ecom/detail", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "tok-123", body["token"])

		json.NewEncoder(w).Encode(CheckoutFormResult{
			Status:         "success",
			PaymentStatus:  "SUCCESS",
			ConversationID: "conv-1",
		})
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	result, err := c.RetrieveCheckoutForm("tok-123")
	require.NoError(t, err)

	assert.Equal(t, "SUCCESS", result.PaymentStatus)
	assert.Equal(t, "conv-1", result.ConversationID)
}

// Gateway hata döndüğünde çağıran hata alır, başarı sanılmaz
func TestCheckoutFormFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(CheckoutFormResult{
			Status:       "failure",
			ErrorMessage: "Invalid api key",
		})
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.RetrieveCheckoutForm("tok-123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid api key")
}

func TestCheckoutFormUnreachable(t *testing.T) {
	c := testClient("http://127.0.0.1:1")
	_, err := c.RetrieveCheckoutForm("tok-123")
	require.Error(t, err)
}
