package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/de-tools/audit-atlas/pkg/models/domain"
	"github.com/de-tools/audit-atlas/pkg/report/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const profilesFile = `
[monthly]
title = MONTHLY AUDIT
subtitle = January close
platform = lemx_minting
generated_by = compliance
include_blockchain_data = false
from = 2025-01-01
to = 2025-01-31

[quick]
title = QUICK LOOK
include_signatures = no

[empty]
`

func TestRegistry(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), ".auditcfg")
	require.NoError(t, os.WriteFile(path, []byte(profilesFile), 0o600))

	registry, err := NewRegistry(path)
	require.NoError(t, err)

	t.Run("profiles with keys only", func(t *testing.T) {
		profiles, err := registry.GetProfiles(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"monthly", "quick"}, profiles)
	})

	tests := []struct {
		name     string
		profile  string
		expected *domain.AuditReportConfig
	}{
		{
			name:    "full profile",
			profile: "monthly",
			expected: &domain.AuditReportConfig{
				Title:                 "MONTHLY AUDIT",
				Subtitle:              "January close",
				Platform:              domain.PlatformMinting,
				GeneratedBy:           "compliance",
				DateRange:             &domain.DateRange{From: "2025-01-01", To: "2025-01-31"},
				IncludeBlockchainData: false,
				IncludeSignatures:     true,
			},
		},
		{
			name:    "defaults",
			profile: "quick",
			expected: &domain.AuditReportConfig{
				Title:                 "QUICK LOOK",
				Platform:              domain.PlatformTreasury,
				IncludeBlockchainData: true,
				IncludeSignatures:     false,
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := registry.GetConfig(ctx, tc.profile)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, cfg)
		})
	}

	t.Run("unknown and empty profiles", func(t *testing.T) {
		for _, name := range []string{"missing", "empty"} {
			cfg, err := registry.GetConfig(ctx, name)
			assert.ErrorIs(t, err, ErrProfileNotFound)
			assert.Nil(t, cfg)
		}
	})
}

func TestNewRegistry_MissingFile(t *testing.T) {
	_, err := NewRegistry(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestLoadSettings(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		s, err := LoadSettings("")
		require.NoError(t, err)
		assert.Equal(t, "8080", s.Server.Port)
		assert.Equal(t, "audit-atlas.db", s.DbPath)
		assert.Equal(t, "us-east-1", s.S3.Region)
		assert.Equal(t, "reports", s.S3.Prefix)
	})

	t.Run("file then environment", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "audit.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "9000"
db_path: /tmp/ledger.db
s3:
  bucket: reports-bucket
branding:
  network_name: TestNet
  chain_id: 77
`), 0o600))
		t.Setenv("AUDIT_SERVER_PORT", "9100")
		t.Setenv("AUDIT_OUTPUT_DIR", "/srv/reports")

		s, err := LoadSettings(path)
		require.NoError(t, err)
		assert.Equal(t, "9100", s.Server.Port)
		assert.Equal(t, "/tmp/ledger.db", s.DbPath)
		assert.Equal(t, "/srv/reports", s.OutputDir)
		assert.Equal(t, "reports-bucket", s.S3.Bucket)
		assert.Equal(t, "TestNet", s.Branding.NetworkName)
		assert.Equal(t, int64(77), s.Branding.ChainID)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadSettings(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})
}

func TestBrandingSettings_Apply(t *testing.T) {
	base := theme.DefaultBranding()

	assert.Equal(t, base, BrandingSettings{}.Apply(base))

	got := BrandingSettings{NetworkName: "TestNet", ChainID: 77}.Apply(base)
	assert.Equal(t, "TestNet", got.NetworkName)
	assert.Equal(t, int64(77), got.ChainID)
	assert.Equal(t, base.Product, got.Product)
}
