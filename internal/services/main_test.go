package services

import (
	"os"
	"testing"

	"safetyconnect_backend/internal/config"
)

func TestMain(m *testing.M) {
	cfg := &config.Config{}
	cfg.Server.BaseURL = "https://atld.web.app"
	cfg.Upload.MaxSize = 10 * 1024 * 1024
	cfg.Upload.AllowedTypes = []string{"image/png", "application/pdf"}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = 60
	config.AppConfig = cfg

	os.Exit(m.Run())
}
