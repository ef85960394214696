package domain

// BuildIdempotencyKey namespaces a client-supplied Idempotency-Key header.
func BuildIdempotencyKey(clientKey string) string {
	return "payment:" + clientKey
}
