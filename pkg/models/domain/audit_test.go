package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateRange_Contains(t *testing.T) {
	tests := []struct {
		name     string
		rng      DateRange
		ts       string
		expected bool
	}{
		{name: "open range", rng: DateRange{}, ts: "2025-01-01T00:00:00Z", expected: true},
		{name: "before from", rng: DateRange{From: "2025-02-01"}, ts: "2025-01-31T23:59:59Z", expected: false},
		{name: "on from", rng: DateRange{From: "2025-02-01"}, ts: "2025-02-01T00:00:00Z", expected: true},
		{name: "bare to includes whole day", rng: DateRange{To: "2025-02-01"}, ts: "2025-02-01T18:30:00Z", expected: true},
		{name: "after to", rng: DateRange{To: "2025-02-01T12:00:00Z"}, ts: "2025-02-01T12:00:01Z", expected: false},
		{name: "unparsable kept", rng: DateRange{From: "2025-02-01"}, ts: "yesterday", expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.rng.Contains(tt.ts))
		})
	}
}

func TestDateRange_Bounds(t *testing.T) {
	from, to := DateRange{From: "2025-02-01", To: "2025-02-28"}.Bounds()
	if assert.NotNil(t, from) && assert.NotNil(t, to) {
		assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), *from)
		assert.Equal(t, time.Date(2025, 2, 28, 23, 59, 59, 999999999, time.UTC), *to)
	}

	from, to = DateRange{From: "garbage"}.Bounds()
	assert.Nil(t, from)
	assert.Nil(t, to)
}

func TestAuditTransaction_TxHash(t *testing.T) {
	assert.Equal(t, "", AuditTransaction{}.TxHash())
	assert.False(t, AuditTransaction{Blockchain: &BlockchainRecord{}}.HasTxHash())
	assert.True(t, AuditTransaction{Blockchain: &BlockchainRecord{TxHash: "0xabc"}}.HasTxHash())
}

func TestParseTimestamp(t *testing.T) {
	for _, s := range []string{"2025-06-13T10:00:00Z", "2025-06-13T10:00:00.123Z", "2025-06-13T10:00:00", "2025-06-13"} {
		_, ok := ParseTimestamp(s)
		assert.True(t, ok, s)
	}
	_, ok := ParseTimestamp("not a date")
	assert.False(t, ok)
}
