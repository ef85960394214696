package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"cash-register/internal/core/domain"
)

// HMACEventSigner implements ports.EventSigner using HMAC-SHA256.
type HMACEventSigner struct {
	secret []byte
}

// NewHMACEventSigner creates a signer keyed with secret.
func NewHMACEventSigner(secret string) *HMACEventSigner {
	return &HMACEventSigner{secret: []byte(secret)}
}

// Sign returns the lowercase hex HMAC-SHA256 of the event's canonical string.
func (s *HMACEventSigner) Sign(event domain.RegisterEvent, payload []byte) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(CanonicalEventString(event, payload)))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify checks signature in constant time.
func (s *HMACEventSigner) Verify(event domain.RegisterEvent, payload []byte, signature string) bool {
	expected := s.Sign(event, payload)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// CanonicalEventString builds the signed form of an event.
// Format: TYPE|UNIX_MILLIS|PAYLOAD
func CanonicalEventString(event domain.RegisterEvent, payload []byte) string {
	return fmt.Sprintf("%s|%d|%s", event.Type, event.OccurredAt.UnixMilli(), payload)
}
