package config

import (
	"testing"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driftline/driftline/internal/core/domain"
)

func TestUnmarshalDecodesKindSpellings(t *testing.T) {
	v := viper.New()
	v.Set("project.name", "acme")
	v.Set("resources", []map[string]any{
		{"kind": "bucket", "name": "acme-uploads"},
		{"kind": "url_map", "name": "acme-lb"},
	})

	cfg := DefaultConfig()
	err := v.Unmarshal(cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		KindDecodeHook(),
		mapstructure.StringToTimeDurationHookFunc(),
	)))
	require.NoError(t, err)

	require.Len(t, cfg.Resources, 2)
	assert.Equal(t, domain.KindBucket, cfg.Resources[0].Kind)
	assert.Equal(t, domain.KindURLMap, cfg.Resources[1].Kind)
}

func TestUnmarshalRejectsUnknownKind(t *testing.T) {
	v := viper.New()
	v.Set("resources", []map[string]any{{"kind": "spaceship", "name": "x"}})

	cfg := DefaultConfig()
	err := v.Unmarshal(cfg, viper.DecodeHook(KindDecodeHook()))
	assert.Error(t, err)
}

func TestMatchStrategiesFallsBackToDefault(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Settings.MatchStrategies = nil
	assert.Equal(t, domain.DefaultMatchStrategies(), cfg.MatchStrategies())

	cfg.Settings.MatchStrategies = []string{"exact"}
	assert.Equal(t, []domain.MatchStrategy{domain.MatchExact}, cfg.MatchStrategies())
}

func TestDeclared(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Resources = []ResourceConfig{
		{Kind: domain.KindFunction, Name: "acme-resize", Network: "acme-net"},
	}

	declared := cfg.Declared()
	require.Len(t, declared, 1)
	assert.Equal(t, domain.DeclaredResource{
		Kind: domain.KindFunction, Name: "acme-resize", Network: "acme-net",
	}, declared[0])
}
