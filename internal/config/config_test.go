package config

import "testing"

func TestLoadDoesNotInjectWeakAuthDefaults(t *testing.T) {
	t.Setenv("AUTH_SECRET", "")
	t.Setenv("MANAGER_PIN", "")

	cfg := Load()
	if cfg.AuthSecret != "" {
		t.Fatalf("expected empty AUTH_SECRET when unset, got %q", cfg.AuthSecret)
	}
	if cfg.ManagerPIN != "" {
		t.Fatalf("expected empty MANAGER_PIN when unset, got %q", cfg.ManagerPIN)
	}
}

func TestLoadFallsBackOnBadNumericValues(t *testing.T) {
	t.Setenv("REPORT_TTL_SECONDS", "not-a-number")
	t.Setenv("MORA_RATE_PERCENT", "-4")

	cfg := Load()
	if cfg.ReportTTLSeconds != 300 {
		t.Fatalf("expected default report TTL 300, got %d", cfg.ReportTTLSeconds)
	}
	if cfg.MoraRatePercent != 2 {
		t.Fatalf("expected default mora rate 2, got %v", cfg.MoraRatePercent)
	}
}
