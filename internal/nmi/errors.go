package nmi

import "errors"

var (
	// ErrPartnerKeyMissing means a v4 call was attempted without a partner
	// authorization key configured. The call fails before any network
	// activity; there is no mock fallback on the v4 path.
	ErrPartnerKeyMissing = errors.New("missing environment variable: NMI_PARTNER_KEY")

	// ErrRelayFailed wraps transport-level failures talking to the gateway.
	// A declined transaction is NOT a relay failure; the gateway answers
	// those normally and the caller reads the normalized response field.
	ErrRelayFailed = errors.New("gateway relay request failed")
)
