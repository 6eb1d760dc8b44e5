package payment

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"takas-backend/internal/config"

	"github.com/google/uuid"
)

// Client - iyzico ödeme formu istemcisi. Gateway dışarıda çalışan opak
// bir servistir; buradan sadece form başlatma ve token doğrulama
// çağrıları yapılır. Çağrının başarısı hiçbir zaman ödemeyi tek başına
// onaylamaz (onay ayrı, yetkili bir işlemdir).
type Client struct {
	APIKey     string
	SecretKey  string
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		APIKey:     cfg.IyzicoAPIKey,
		SecretKey:  cfg.IyzicoSecretKey,
		BaseURL:    cfg.IyzicoBaseURL,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type Buyer struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	Surname             string `json:"surname"`
	Email               string `json:"email"`
	IdentityNumber      string `json:"identityNumber"`
	RegistrationAddress string `json:"registrationAddress"`
	City                string `json:"city"`
	Country             string `json:"country"`
	IP                  string `json:"ip"`
}

type Address struct {
	ContactName string `json:"contactName"`
	City        string `json:"city"`
	Country     string `json:"country"`
	Address     string `json:"address"`
}

type BasketItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Category1 string `json:"category1"`
	ItemType  string `json:"itemType"` // VIRTUAL: fiziksel teslimat yok
	Price     string `json:"price"`
}

type CheckoutFormRequest struct {
	Locale              string       `json:"locale"`
	ConversationID      string       `json:"conversationId"`
	Price               string       `json:"price"`
	PaidPrice           string       `json:"paidPrice"`
	Currency            string       `json:"currency"`
	BasketID            string       `json:"basketId"`
	PaymentGroup        string       `json:"paymentGroup"`
	CallbackURL         string       `json:"callbackUrl"`
	EnabledInstallments []string     `json:"enabledInstallments"`
	Buyer               Buyer        `json:"buyer"`
	ShippingAddress     Address      `json:"shippingAddress"`
	BillingAddress      Address      `json:"billingAddress"`
	BasketItems         []BasketItem `json:"basketItems"`
}

type CheckoutFormResult struct {
	Status              string `json:"status"`
	ErrorMessage        string `json:"errorMessage"`
	Token               string `json:"token"`
	CheckoutFormContent string `json:"checkoutFormContent"`
	PaymentPageURL      string `json:"paymentPageUrl"`
	PaymentStatus       string `json:"paymentStatus"`
	ConversationID      string `json:"conversationId"`
}

// InitializeCheckoutForm - ödeme formunu başlatır, yönlendirme
// token'ını döner
func (c *Client) InitializeCheckoutForm(req *CheckoutFormRequest) (*CheckoutFormResult, error) {
	return c.post("/payment/iyzipos/checkoutform/initialize/auth/ecom", req)
}

// RetrieveCheckoutForm - callback'te gelen token ile ödeme sonucunu
// gateway'den doğrular
func (c *Client) RetrieveCheckoutForm(token string) (*CheckoutFormResult, error) {
	body := map[string]string{
		"locale": "tr",
		"token":  token,
	}
	return c.post("/payment/iyzipos/checkoutform/auth/ecom/detail", body)
}

func (c *Client) post(path string, payload interface{}) (*CheckoutFormResult, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, c.BaseURL+path, bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}

	randomStr := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-iyzi-rnd", randomStr)
	req.Header.Set("Authorization", c.authHeader(path, randomStr, raw))

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ödeme servisine ulaşılamadı: %w", err)
	}
	defer resp.Body.Close()

	var result CheckoutFormResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("ödeme servisi cevabı çözümlenemedi: %w", err)
	}

	if resp.StatusCode != http.StatusOK || result.Status != "success" {
		return nil, fmt.Errorf("ödeme servisi hata döndü: %s", result.ErrorMessage)
	}

	return &result, nil
}

// authHeader - IYZWSv2 imzası: HMAC-SHA256(rnd + path + body)
func (c *Client) authHeader(path, randomStr string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(c.SecretKey))
	mac.Write([]byte(randomStr + path))
	mac.Write(body)
	signature := hex.EncodeToString(mac.Sum(nil))

	auth := fmt.Sprintf("apiKey:%s&randomKey:%s&signature:%s", c.APIKey, randomStr, signature)
	return "IYZWSv2 " + base64.StdEncoding.EncodeToString([]byte(auth))
}
