package env

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("NMI_BASE_URL", "")
	t.Setenv("NMI_SECURITY_KEY", "")

	Load()

	if Env.Port != "3001" {
		t.Errorf("port = %q, want 3001", Env.Port)
	}
	if Env.GatewayBaseURL != "https://secure.nmi.com" {
		t.Errorf("gateway = %q", Env.GatewayBaseURL)
	}
	if Env.HasSecurityKey() {
		t.Error("no key configured, HasSecurityKey must be false")
	}
}

func TestHasSecurityKeyRejectsPlaceholder(t *testing.T) {
	e := &EnvironmentVariables{SecurityKey: SecurityKeyPlaceholder}
	if e.HasSecurityKey() {
		t.Error("the .env.example placeholder must not count as a real key")
	}

	e.SecurityKey = "sk_live_123"
	if !e.HasSecurityKey() {
		t.Error("a real key must count")
	}
}
