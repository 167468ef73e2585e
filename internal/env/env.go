package env

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// SecurityKeyPlaceholder is the sample value shipped in .env.example. A key
// equal to it is treated the same as no key at all, so a copied example file
// keeps the portal in mock mode instead of sending garbage credentials.
const SecurityKeyPlaceholder = "your_nmi_security_key_here"

type EnvironmentVariables struct {
	Port            string
	GatewayBaseURL  string
	SecurityKey     string
	PartnerKey      string
	TokenizationKey string
}

var (
	Env *EnvironmentVariables
)

func Load() {
	// .env is optional; deployments set variables externally.
	_ = godotenv.Load()

	Env = &EnvironmentVariables{
		Port:            getOptionalEnv("PORT", "3001"),
		GatewayBaseURL:  getOptionalEnv("NMI_BASE_URL", "https://secure.nmi.com"),
		SecurityKey:     getOptionalEnv("NMI_SECURITY_KEY", ""),
		PartnerKey:      getOptionalEnv("NMI_PARTNER_KEY", ""),
		TokenizationKey: getOptionalEnv("NMI_TOKENIZATION_KEY", ""),
	}

	log.Info().
		Str("port", Env.Port).
		Str("gateway", Env.GatewayBaseURL).
		Bool("securityKey", Env.HasSecurityKey()).
		Bool("partnerKey", Env.PartnerKey != "").
		Bool("tokenizationKey", Env.TokenizationKey != "").
		Msg("[env] environment variables loaded")
}

// HasSecurityKey reports whether a usable transaction security key is
// configured. The placeholder from .env.example does not count.
func (e *EnvironmentVariables) HasSecurityKey() bool {
	return e.SecurityKey != "" && e.SecurityKey != SecurityKeyPlaceholder
}

func getOptionalEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
