package config

import "testing"

func TestNewDefaults(t *testing.T) {
	cfg, err := New()
	if err != nil {
		t.Fatalf("config load failed: %v", err)
	}

	if cfg.DB.Host == "" || cfg.DB.Port == 0 {
		t.Fatalf("missing database defaults: %+v", cfg.DB)
	}
	if cfg.Srv.TrackerServicePort == "" {
		t.Fatalf("missing service port default")
	}
	if cfg.Log.Level == "" {
		t.Fatalf("missing log level default")
	}
}

func TestNewReadsEnvironment(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("TRACKER_SERVICE_PORT", "4001")
	t.Setenv("RABBITMQ_PORT", "not-a-number")

	cfg, err := New()
	if err != nil {
		t.Fatalf("config load failed: %v", err)
	}

	if cfg.DB.Host != "db.internal" || cfg.DB.Port != 6543 {
		t.Fatalf("environment overrides ignored: %+v", cfg.DB)
	}
	if cfg.Srv.TrackerServicePort != "4001" {
		t.Fatalf("service port override ignored: %q", cfg.Srv.TrackerServicePort)
	}
	if cfg.RabbitMq.Port != 5672 {
		t.Fatalf("malformed int should fall back to default, got %d", cfg.RabbitMq.Port)
	}
}
