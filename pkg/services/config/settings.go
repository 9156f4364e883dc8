package config

import (
	"fmt"
	"strings"

	"github.com/de-tools/audit-atlas/pkg/report/theme"
	"github.com/spf13/viper"
)

const EnvPrefix = "AUDIT"

type ServerSettings struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type S3Settings struct {
	Bucket  string `mapstructure:"bucket"`
	Prefix  string `mapstructure:"prefix"`
	Profile string `mapstructure:"profile"`
	Region  string `mapstructure:"region"`
}

// BrandingSettings overrides the default report wording. Empty values keep the defaults.
type BrandingSettings struct {
	Product         string `mapstructure:"product"`
	VerificationTag string `mapstructure:"verification_tag"`
	NetworkName     string `mapstructure:"network_name"`
	ChainID         int64  `mapstructure:"chain_id"`
	ContractAddress string `mapstructure:"contract_address"`
	RPCHost         string `mapstructure:"rpc_host"`
	ExplorerHost    string `mapstructure:"explorer_host"`
}

type Settings struct {
	Server    ServerSettings   `mapstructure:"server"`
	DbPath    string           `mapstructure:"db_path"`
	OutputDir string           `mapstructure:"output_dir"`
	Profiles  string           `mapstructure:"profiles"`
	S3        S3Settings       `mapstructure:"s3"`
	Branding  BrandingSettings `mapstructure:"branding"`
}

var defaults = map[string]any{
	"server.host":               "localhost",
	"server.port":               "8080",
	"db_path":                   "audit-atlas.db",
	"output_dir":                ".",
	"profiles":                  "",
	"s3.bucket":                 "",
	"s3.prefix":                 "reports",
	"s3.profile":                "",
	"s3.region":                 "us-east-1",
	"branding.product":          "",
	"branding.verification_tag": "",
	"branding.network_name":     "",
	"branding.chain_id":         0,
	"branding.contract_address": "",
	"branding.rpc_host":         "",
	"branding.explorer_host":    "",
}

// LoadSettings reads the optional settings file at path, then AUDIT_* environment variables
// (AUDIT_SERVER_PORT, AUDIT_S3_BUCKET, ...) on top of it.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	return &s, nil
}

// Apply returns base with every non-empty override applied.
func (b BrandingSettings) Apply(base theme.Branding) theme.Branding {
	if b.Product != "" {
		base.Product = b.Product
	}
	if b.VerificationTag != "" {
		base.VerificationTag = b.VerificationTag
	}
	if b.NetworkName != "" {
		base.NetworkName = b.NetworkName
	}
	if b.ChainID != 0 {
		base.ChainID = b.ChainID
	}
	if b.ContractAddress != "" {
		base.ContractAddress = b.ContractAddress
	}
	if b.RPCHost != "" {
		base.RPCHost = b.RPCHost
	}
	if b.ExplorerHost != "" {
		base.ExplorerHost = b.ExplorerHost
	}
	return base
}
