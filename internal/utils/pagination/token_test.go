package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeToken(t *testing.T) {
	// Standard timestamp with nanoseconds
	at := time.Date(2024, 3, 1, 14, 30, 45, 123456789, time.UTC)

	token := EncodeToken(at, "txn-0042")
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedAt, decodedID, err := DecodeToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, at, decodedAt, "Timestamp should match after decode")
	assert.Equal(t, "txn-0042", decodedID, "ID should match after decode")

	// Non-UTC input is normalised
	manila := time.FixedZone("PHT", 8*60*60)
	local := time.Date(2024, 3, 1, 23, 30, 0, 0, manila)
	decodedLocal, _, err := DecodeToken(EncodeToken(local, "x"))
	assert.NoError(t, err)
	assert.True(t, local.Equal(decodedLocal), "Instant should survive a zone change")

	// IDs containing the separator stay intact
	_, pipedID, err := DecodeToken(EncodeToken(at, "a|b"))
	assert.NoError(t, err)
	assert.Equal(t, "a|b", pipedID)
}

func TestDecodeTokenError(t *testing.T) {
	_, _, err := DecodeToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode", "Error should mention base64 decoding")

	noSep := base64.StdEncoding.EncodeToString([]byte("2024-03-01T00:00:00Z"))
	_, _, err = DecodeToken(noSep)
	assert.Error(t, err, "Should return an error for invalid token format")
	assert.Contains(t, err.Error(), "split", "Error should mention splitting issue")

	emptyID := base64.StdEncoding.EncodeToString([]byte("2024-03-01T00:00:00Z|"))
	_, _, err = DecodeToken(emptyID)
	assert.Error(t, err, "Should reject a cursor without an ID")

	badTime := base64.StdEncoding.EncodeToString([]byte("notadate|txn-1"))
	_, _, err = DecodeToken(badTime)
	assert.Error(t, err, "Should return an error for invalid timestamp")
	assert.Contains(t, err.Error(), "timestamp parse", "Error should mention timestamp parsing issue")
}
