// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// Environment variables (UQLAKES_API_URL, UQLAKES_STATIC_DIR,
// UQLAKES_CACHE_DIR) override file values; a .env file is honoured if present.
package config
