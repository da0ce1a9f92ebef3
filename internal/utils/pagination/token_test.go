package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	entryDate := time.Date(2026, 4, 12, 0, 0, 0, 0, time.UTC)
	token := EncodeToken(entryDate, "YV-2026-00017")

	gotDate, gotNo, err := DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, gotDate.Equal(entryDate))
	assert.Equal(t, "YV-2026-00017", gotNo)
}

func TestDecodeToken_InvalidBase64(t *testing.T) {
	_, _, err := DecodeToken("not base64!!!")
	assert.Error(t, err)
}

func TestDecodeToken_MissingSeparator(t *testing.T) {
	token := base64.StdEncoding.EncodeToString([]byte("no-separator-here"))
	_, _, err := DecodeToken(token)
	assert.Error(t, err)
}

func TestDecodeToken_BadDate(t *testing.T) {
	token := base64.StdEncoding.EncodeToString([]byte("yesterday|YV-2026-00001"))
	_, _, err := DecodeToken(token)
	assert.Error(t, err)
}
