package types

type Config struct {
	Environment     string `envconfig:"ENVIRONMENT" default:"development"`
	ServerPort      uint   `envconfig:"SERVER_PORT" default:"8080"`
	DatabaseURL     string `envconfig:"DATABASE_URL"`
	ReadTimeoutSec  uint   `envconfig:"READ_TIMEOUT_SEC" default:"10"`
	WriteTimeoutSec uint   `envconfig:"WRITE_TIMEOUT_SEC" default:"15"`

	// Hosted auth provider (phone OTP sign-in, JWKS-verified sessions)
	AuthBaseURL   string `envconfig:"AUTH_BASE_URL"`
	AuthAPIKey    string `envconfig:"AUTH_API_KEY"`
	AuthIssuerURL string `envconfig:"AUTH_ISSUER_URL"`

	// Draft store. When REDIS_ADDR is empty the server falls back to the
	// in-process store, which does not survive restarts.
	RedisAddr     string `envconfig:"REDIS_ADDR"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	DraftTTLSec   uint   `envconfig:"DRAFT_TTL_SEC" default:"86400"`

	// Object storage provider: "s3" or "supabase"
	StorageProvider   string `envconfig:"STORAGE_PROVIDER" default:"s3"`
	StorageBucketName string `envconfig:"STORAGE_BUCKET_NAME" default:"documents"`
	StoragePublicBase string `envconfig:"STORAGE_PUBLIC_BASE"`
	SupabaseProjectID string `envconfig:"SUPABASE_PROJECT_ID"`
	SupabaseAPIKey    string `envconfig:"SUPABASE_API_KEY"`

	// Cookie encryption keys (base64 encoded)
	// openssl rand -base64 32
	// to generate values
	CookieHashKey  string `envconfig:"COOKIE_HASH_KEY"`  // 32 or 64 bytes
	CookieBlockKey string `envconfig:"COOKIE_BLOCK_KEY"` // 16, 24, or 32 bytes
}
