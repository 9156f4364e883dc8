package config

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/de-tools/audit-atlas/pkg/models/domain"
	"gopkg.in/ini.v1"
)

var ErrProfileNotFound = errors.New("profile not found")

// Registry resolves named report profiles from an ini file such as:
//
//	[monthly]
//	title = MONTHLY AUDIT
//	platform = DCB_TREASURY
//	generated_by = compliance
//	include_blockchain_data = true
//	include_signatures = false
//	from = 2025-01-01
//	to = 2025-01-31
type Registry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetConfig(ctx context.Context, profile string) (*domain.AuditReportConfig, error)
}

type cfgRegistry struct {
	cfg *ini.File
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load profiles %s: %w", path, err)
	}
	return &cfgRegistry{cfg: cfg}, nil
}

// NewRegistryFromBytes parses profiles held in memory.
func NewRegistryFromBytes(data []byte) (Registry, error) {
	cfg, err := ini.Load(data)
	if err != nil {
		return nil, fmt.Errorf("parse profiles: %w", err)
	}
	return &cfgRegistry{cfg: cfg}, nil
}

func (cr *cfgRegistry) GetProfiles(_ context.Context) ([]string, error) {
	profiles := make([]string, 0)
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (cr *cfgRegistry) GetConfig(_ context.Context, profile string) (*domain.AuditReportConfig, error) {
	section, err := cr.cfg.GetSection(profile)
	if err != nil || len(section.Keys()) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, profile)
	}

	cfg := &domain.AuditReportConfig{
		Title:                 section.Key("title").String(),
		Subtitle:              section.Key("subtitle").String(),
		Platform:              domain.Platform(strings.ToUpper(section.Key("platform").MustString(string(domain.PlatformTreasury)))),
		GeneratedBy:           section.Key("generated_by").String(),
		IncludeBlockchainData: section.Key("include_blockchain_data").MustBool(true),
		IncludeSignatures:     section.Key("include_signatures").MustBool(true),
	}

	from := section.Key("from").String()
	to := section.Key("to").String()
	if from != "" || to != "" {
		cfg.DateRange = &domain.DateRange{From: from, To: to}
	}
	return cfg, nil
}
