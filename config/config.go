// config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Config holds everything the application reads from the environment.
// It is loaded once in main and handed to constructors; nothing else
// consults os.Getenv for business configuration.
type Config struct {
	Port     string
	MongoURI string
	DBName   string

	// SessionSecret signs the session tokens carried in the admin cookie.
	SessionSecret string

	// AdminID is the one user account allowed past the admin gate.
	AdminID primitive.ObjectID

	// SettingsID addresses the singleton site settings document,
	// seeded out-of-band.
	SettingsID primitive.ObjectID

	SMTPHost      string
	SMTPPort      int
	SMTPUser      string
	SMTPPassword  string
	MailFrom      string
	MailRecipient string

	// Redis is optional; when unset the session revocation list
	// falls back to process memory.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Load reads configuration from environment variables. Mongo, session
// secret and the two fixed document identifiers are required; mail and
// Redis settings may stay empty, which disables the features backed by
// them.
func Load() (*Config, error) {
	cfg := &Config{
		Port:     envOrDefault("PORT", "8080"),
		MongoURI: envOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		DBName:   envOrDefault("DB_NAME", "reelframe"),

		SessionSecret: os.Getenv("SESSION_SECRET"),

		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPUser:      os.Getenv("SMTP_USER"),
		SMTPPassword:  os.Getenv("SMTP_PASSWORD"),
		MailFrom:      os.Getenv("MAIL_FROM"),
		MailRecipient: os.Getenv("MAIL_RECIPIENT"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
	}

	if cfg.SessionSecret == "" {
		return nil, errors.New("SESSION_SECRET environment variable is required")
	}

	adminID, err := requiredObjectID("ADMIN_ID")
	if err != nil {
		return nil, err
	}
	cfg.AdminID = adminID

	settingsID, err := requiredObjectID("SETTINGS_ID")
	if err != nil {
		return nil, err
	}
	cfg.SettingsID = settingsID

	if portStr := os.Getenv("SMTP_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid SMTP_PORT: %v", err)
		}
		cfg.SMTPPort = port
	}

	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		db, err := strconv.Atoi(dbStr)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB: %v", err)
		}
		cfg.RedisDB = db
	}

	return cfg, nil
}

// MailConfigured reports whether the contact form can actually dial SMTP.
func (c *Config) MailConfigured() bool {
	return c.SMTPHost != "" && c.SMTPPort != 0 && c.MailFrom != "" && c.MailRecipient != ""
}

func requiredObjectID(key string) (primitive.ObjectID, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return primitive.NilObjectID, fmt.Errorf("%s environment variable is required", key)
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%s must be a valid ObjectID hex string: %v", key, err)
	}
	return id, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
