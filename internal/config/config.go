// Package config loads server configuration from the environment.
package config

import "time"

// Config holds everything the server needs at startup. Values come from
// environment variables (a .env file is loaded first if present), with
// defaults suitable for local development. JWT_SECRET has no default and
// must be set.
type Config struct {
	Port      int    `env:"PORT" env-default:"8080"`
	DBPath    string `env:"DB_PATH" env-default:"data/vibenotes.db"`
	LogFormat string `env:"LOG_FORMAT" env-default:"text"` // "text" or "pretty"

	JWTSecret string        `env:"JWT_SECRET" env-required:"true"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" env-default:"24h"`

	AvatarDir      string `env:"AVATAR_DIR" env-default:"uploads/avatars"`
	AttachmentDir  string `env:"ATTACHMENT_DIR" env-default:"uploads/attachments"`
	MaxUploadBytes int64  `env:"MAX_UPLOAD_BYTES" env-default:"10485760"` // 10 MiB
}
