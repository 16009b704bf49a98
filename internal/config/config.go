package config

import (
	"crypto/rsa"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
)

type Config struct {
	JWTPrivateKey *rsa.PrivateKey
	JWTPublicKey  *rsa.PublicKey
	SessionTTL    time.Duration

	DatabaseURL string
	Port        string

	RedisAddress  string
	RedisPassword string

	OSSEndpoint        string
	OSSAccessKeyID     string
	OSSAccessKeySecret string
	ComplaintBucket    string
	ResolutionBucket   string

	AllowedOrigins []string
}

func Load() *Config {
	// Best-effort: real env vars win over .env contents.
	_ = godotenv.Load()

	privateKeyPath := os.Getenv("PRIVATE_KEY_PATH")
	if privateKeyPath == "" {
		privateKeyPath = "/etc/certs/private.pem"
	}
	privateKey, err := loadPrivateKey(privateKeyPath)
	if err != nil {
		panic("Failed to load private key: " + err.Error())
	}

	publicKeyPath := os.Getenv("PUBLIC_KEY_PATH")
	if publicKeyPath == "" {
		publicKeyPath = "/etc/certs/public.pem"
	}
	publicKey, err := loadPublicKey(publicKeyPath)
	if err != nil {
		panic("Failed to load public key: " + err.Error())
	}

	dbURL := os.Getenv("DB_CONNECTION_STRING")
	if dbURL == "" {
		panic("DB_CONNECTION_STRING environment variable is required")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	sessionTTL := 24 * time.Hour
	if v := os.Getenv("SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic("Invalid SESSION_TTL: " + err.Error())
		}
		sessionTTL = d
	}

	return &Config{
		JWTPrivateKey: privateKey,
		JWTPublicKey:  publicKey,
		SessionTTL:    sessionTTL,

		DatabaseURL: dbURL,
		Port:        port,

		RedisAddress:  envOr("REDIS_ADDRESS", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		OSSEndpoint:        requireEnv("OSS_ENDPOINT"),
		OSSAccessKeyID:     requireEnv("OSS_ACCESS_KEY_ID"),
		OSSAccessKeySecret: requireEnv("OSS_ACCESS_KEY_SECRET"),
		ComplaintBucket:    envOr("COMPLAINT_IMAGES_BUCKET", "complaint-images"),
		ResolutionBucket:   envOr("RESOLUTION_IMAGES_BUCKET", "resolution-images"),

		AllowedOrigins: []string{envOr("ALLOWED_ORIGIN", "*")},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(key + " environment variable is required")
	}
	return v
}

func loadPrivateKey(path string) (*rsa.PrivateKey, error) {
	keyData, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(keyData)
	if err != nil {
		return nil, err
	}
	return privateKey, nil
}

func loadPublicKey(path string) (*rsa.PublicKey, error) {
	keyData, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(keyData)
	if err != nil {
		return nil, err
	}
	return publicKey, nil
}
