package service

import (
	"testing"
	"time"

	"cash-register/internal/core/domain"

	"github.com/stretchr/testify/assert"
)

func testEvent() domain.RegisterEvent {
	return domain.NewRegisterEmptiedEvent(2000, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
}

func TestHMACEventSigner_SignAndVerify(t *testing.T) {
	signer := NewHMACEventSigner("events-secret")
	payload := []byte(`{"type":"register.emptied","total_removed":2000}`)

	signature := signer.Sign(testEvent(), payload)

	assert.Regexp(t, `^[0-9a-f]{64}$`, signature, "signature should be 64-char lowercase hex (SHA-256)")
	assert.True(t, signer.Verify(testEvent(), payload, signature))
	assert.Equal(t, signature, signer.Sign(testEvent(), payload), "signing is deterministic")
}

func TestHMACEventSigner_VerifyFails(t *testing.T) {
	signer := NewHMACEventSigner("events-secret")
	payload := []byte(`{"total_removed":2000}`)
	signature := signer.Sign(testEvent(), payload)

	later := testEvent()
	later.OccurredAt = later.OccurredAt.Add(time.Second)
	other := testEvent()
	other.Type = domain.EventPaymentCommitted

	tests := []struct {
		name      string
		signer    *HMACEventSigner
		event     domain.RegisterEvent
		payload   []byte
		signature string
	}{
		{"wrong key", NewHMACEventSigner("other-secret"), testEvent(), payload, signature},
		{"tampered payload", signer, testEvent(), []byte(`{"total_removed":1}`), signature},
		{"different time", signer, later, payload, signature},
		{"different type", signer, other, payload, signature},
		{"garbage signature", signer, testEvent(), payload, "deadbeef"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, tt.signer.Verify(tt.event, tt.payload, tt.signature))
		})
	}
}

func TestCanonicalEventString(t *testing.T) {
	got := CanonicalEventString(testEvent(), []byte(`{}`))
	assert.Equal(t, "register.emptied|1772366400000|{}", got)
}
