package config

import (
	"os"
	"time"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis (optional; empty disables the listing cache)
	RedisURL string

	// Identity provider (Supabase). Either the legacy HS256 project secret or a
	// JWKS URL for asymmetric signing; JWKS wins when both are set.
	SupabaseJWTSecret string
	SupabaseJWKSURL   string

	// Media host (Cloudinary)
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	UploadFolder        string
	StagingFolder       string
	StagingMaxAge       time.Duration

	// Listing cache
	ListingCacheTTL time.Duration

	// Admin bootstrap (the stored is_admin flag is mutated out-of-band; this list
	// lets operators grant access before any row is flagged)
	AdminEmails string

	// Server
	Port        string
	CORSOrigins string
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "srinibas_vastra"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		RedisURL: getEnv("REDIS_URL", ""),

		SupabaseJWTSecret: getEnv("SUPABASE_JWT_SECRET", ""),
		SupabaseJWKSURL:   getEnv("SUPABASE_JWKS_URL", ""),

		CloudinaryCloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", ""),
		UploadFolder:        getEnv("UPLOAD_FOLDER", "product-images"),
		StagingFolder:       getEnv("STAGING_FOLDER", "staging"),
		StagingMaxAge:       parseDuration(getEnv("STAGING_MAX_AGE", "24h")),

		ListingCacheTTL: parseDuration(getEnv("LISTING_CACHE_TTL", "60s")),

		AdminEmails: getEnv("ADMIN_EMAILS", ""),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return time.Minute
	}
	return d
}
