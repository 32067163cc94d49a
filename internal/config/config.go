package config

import (
	"reflect"
	"time"

	"github.com/go-viper/mapstructure/v2"

	"github.com/driftline/driftline/internal/core/domain"
	"github.com/driftline/driftline/internal/errors"
	"github.com/driftline/driftline/internal/log"
)

type Config struct {
	Settings  SettingsConfig   `yaml:"settings" mapstructure:"settings"`
	Project   ProjectConfig    `yaml:"project" mapstructure:"project" validate:"required"`
	Provider  string           `yaml:"provider" mapstructure:"provider" validate:"required,oneof=gcp aws"`
	GCP       *GCPConfig       `yaml:"gcp,omitempty" mapstructure:"gcp"`
	AWS       *AWSConfig       `yaml:"aws,omitempty" mapstructure:"aws"`
	State     StateConfig      `yaml:"state" mapstructure:"state"`
	Terraform TerraformConfig  `yaml:"terraform" mapstructure:"terraform"`
	Resources []ResourceConfig `yaml:"resources" mapstructure:"resources" validate:"dive"`
}

type ProjectConfig struct {
	Name string `yaml:"name" mapstructure:"name" validate:"required"`
	// HCLFile optionally points at a project.hcl declaring resources; it
	// supplements the resources list above.
	HCLFile string `yaml:"hcl_file" mapstructure:"hcl_file"`
}

type SettingsConfig struct {
	LogLevel  log.Level  `yaml:"log_level" mapstructure:"log_level"`
	LogFormat log.Format `yaml:"log_format" mapstructure:"log_format"`
	Reporter  string     `yaml:"reporter" mapstructure:"reporter" validate:"omitempty,oneof=text json"`
	// ScanTimeout bounds each per-kind cloud query independently.
	ScanTimeout time.Duration `yaml:"scan_timeout" mapstructure:"scan_timeout"`
	// OpTimeout bounds each individual import/delete operation.
	OpTimeout time.Duration `yaml:"op_timeout" mapstructure:"op_timeout"`
	// MatchStrategies is the classifier's fallback order.
	MatchStrategies []string `yaml:"match_strategies" mapstructure:"match_strategies" validate:"dive,oneof=exact state-name normalized"`
	// APIRateRPS caps cloud list calls per second per provider instance.
	APIRateRPS int `yaml:"api_rate_rps" mapstructure:"api_rate_rps"`
}

type GCPConfig struct {
	ProjectID string `yaml:"project_id" mapstructure:"project_id" validate:"required"`
	Region    string `yaml:"region" mapstructure:"region"`
	// CredentialsFile overrides application default credentials.
	CredentialsFile string `yaml:"credentials_file" mapstructure:"credentials_file"`
}

type AWSConfig struct {
	Region  string `yaml:"region" mapstructure:"region"`
	Profile string `yaml:"profile" mapstructure:"profile"`
}

type StateConfig struct {
	// Path overrides state file discovery; empty means locate from the
	// working directory.
	Path string `yaml:"path" mapstructure:"path"`
	// Mode is "file" (read terraform.tfstate directly) or "show" (pull the
	// live state through terraform show -json).
	Mode string `yaml:"mode" mapstructure:"mode" validate:"omitempty,oneof=file show"`
}

type TerraformConfig struct {
	// Path to the terraform binary; empty resolves via $PATH and then
	// hc-install.
	Path string `yaml:"path" mapstructure:"path"`
	// Version pins the binary hc-install fetches when nothing is installed.
	Version string `yaml:"version" mapstructure:"version"`
	WorkDir string `yaml:"work_dir" mapstructure:"work_dir"`
}

type ResourceConfig struct {
	Kind    domain.ResourceKind `yaml:"kind" mapstructure:"kind" validate:"required"`
	Name    string              `yaml:"name" mapstructure:"name" validate:"required"`
	Network string              `yaml:"network" mapstructure:"network"`
}

func DefaultConfig() *Config {
	return &Config{
		Settings: SettingsConfig{
			LogLevel:        log.LevelInfo,
			LogFormat:       log.FormatText,
			Reporter:        "text",
			ScanTimeout:     30 * time.Second,
			OpTimeout:       60 * time.Second,
			MatchStrategies: []string{"exact", "state-name", "normalized"},
			APIRateRPS:      20,
		},
		Provider: "gcp",
		State:    StateConfig{Mode: "file"},
	}
}

// Declared returns the resources the validator operates on.
func (c *Config) Declared() []domain.DeclaredResource {
	out := make([]domain.DeclaredResource, 0, len(c.Resources))
	for _, rc := range c.Resources {
		out = append(out, domain.DeclaredResource{
			Kind:    rc.Kind,
			Name:    rc.Name,
			Network: rc.Network,
		})
	}
	return out
}

// MatchStrategies converts the configured strategy names.
func (c *Config) MatchStrategies() []domain.MatchStrategy {
	if len(c.Settings.MatchStrategies) == 0 {
		return domain.DefaultMatchStrategies()
	}
	out := make([]domain.MatchStrategy, 0, len(c.Settings.MatchStrategies))
	for _, s := range c.Settings.MatchStrategies {
		out = append(out, domain.MatchStrategy(s))
	}
	return out
}

// KindDecodeHook lets viper decode the lowercase kind spellings used in
// config files into domain.ResourceKind values.
func KindDecodeHook() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to != reflect.TypeOf(domain.ResourceKind("")) {
			return data, nil
		}
		s := data.(string)
		kind, ok := domain.ParseKind(s)
		if !ok {
			return nil, errors.New(errors.CodeConfigParseError, "unknown resource kind: "+s)
		}
		return kind, nil
	}
}
