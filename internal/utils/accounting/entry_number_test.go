package accounting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatEntryNumber(t *testing.T) {
	assert.Equal(t, "YV-2026-00001", FormatEntryNumber("YV", 2026, 1))
	assert.Equal(t, "YV-2026-00042", FormatEntryNumber("YV", 2026, 42))
	assert.Equal(t, "JRN-2025-123456", FormatEntryNumber("JRN", 2025, 123456), "wide sequences keep all digits")
}

func TestParseEntrySequence(t *testing.T) {
	seq, ok := ParseEntrySequence("YV-2026-00042")
	assert.True(t, ok)
	assert.Equal(t, int64(42), seq)

	seq, ok = ParseEntrySequence("YV-2026-123456")
	assert.True(t, ok)
	assert.Equal(t, int64(123456), seq)

	for _, bad := range []string{"", "YV", "YV-2026-", "YV-2026-abc"} {
		seq, ok = ParseEntrySequence(bad)
		assert.False(t, ok, "input %q", bad)
		assert.Equal(t, int64(0), seq, "input %q", bad)
	}
}
