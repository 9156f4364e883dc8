package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPalette_StatusColor(t *testing.T) {
	p := DefaultPalette()

	tests := []struct {
		status   string
		expected Color
	}{
		{"completed", p.Lemon},
		{"approved", p.Lemon},
		{"APPROVED", p.Lemon},
		{"rejected", p.Red},
		{"pending", p.Gold},
		{"", p.Gold},
		{"whatever", p.Gold},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			assert.Equal(t, tt.expected, p.StatusColor(tt.status))
		})
	}
}

func TestPalette_RoleColor(t *testing.T) {
	p := DefaultPalette()
	assert.Equal(t, p.Gold, p.RoleColor("DCB Treasury"))
	assert.Equal(t, p.Gold, p.RoleColor("DAES Signer"))
	assert.Equal(t, p.Lemon, p.RoleColor("Treasury Minting"))
	assert.Equal(t, p.Purple, p.RoleColor("VUSDMinter Contract"))
}

func TestTreasuryCurrencies(t *testing.T) {
	currencies := TreasuryCurrencies()
	assert.Len(t, currencies, 15)

	active := 0
	for _, c := range currencies {
		if c.Active {
			active++
			assert.Equal(t, "USD", c.Code)
		}
	}
	assert.Equal(t, 1, active)

	// callers get their own copy
	currencies[1].Active = true
	assert.False(t, TreasuryCurrencies()[1].Active)
}
