package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	JWTSecret   string
	CORSOrigins string

	// iyzico ödeme altyapısı
	IyzicoAPIKey    string
	IyzicoSecretKey string
	IyzicoBaseURL   string
	CallbackURL     string // Ödeme sonrası gateway'in geri döneceği adres
}

func Load() *Config {
	// .env varsa yükle, yoksa sorun değil (production'da env'den gelir)
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		DatabaseDSN:     getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=takas port=5432 sslmode=disable"),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		CORSOrigins:     getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		IyzicoAPIKey:    getEnv("IYZICO_API_KEY", ""),
		IyzicoSecretKey: getEnv("IYZICO_SECRET_KEY", ""),
		IyzicoBaseURL:   getEnv("IYZICO_BASE_URL", "https://sandbox-api.iyzipay.com"),
		CallbackURL:     getEnv("PAYMENT_CALLBACK_URL", "http://localhost:8080/api/payments/callback"),
	}

	// Production güvenlik kontrolleri
	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] JWT_SECRET environment değişkeni tanımlanmamış! Production için zorunludur.")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET en az 32 karakter olmalıdır! Güvenlik riski.")
	}
	if cfg.IyzicoAPIKey == "" || cfg.IyzicoSecretKey == "" {
		log.Println("[WARN] IYZICO_API_KEY / IYZICO_SECRET_KEY tanımlanmamış, ödeme formu başlatılamaz.")
	}
	if cfg.CORSOrigins == "http://localhost:5173" {
		log.Println("[WARN] CORS_ALLOWED_ORIGINS varsayılan değer kullanılıyor, production için mutlaka kendi domain'ini tanımla.")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
