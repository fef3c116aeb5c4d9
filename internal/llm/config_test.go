package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig_Tiers(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ProviderGemini, cfg.Provider)
	assert.Equal(t, DefaultTemperature, cfg.Temperature)
	for tier, model := range map[ModelTier]string{
		TierLite:     "gemini-2.5-flash-lite",
		TierStandard: "gemini-2.5-flash",
		TierAdvanced: "gemini-2.5-pro",
	} {
		assert.Equal(t, model, cfg.GetModel(tier), tier)
	}
}

func TestGetModel_FallbackChain(t *testing.T) {
	tests := []struct {
		name   string
		models map[ModelTier]string
		tier   ModelTier
		want   string
	}{
		{name: "exact tier", models: map[ModelTier]string{TierLite: "a", TierStandard: "b"}, tier: TierLite, want: "a"},
		{name: "missing tier uses standard", models: map[ModelTier]string{TierLite: "a", TierStandard: "b"}, tier: TierAdvanced, want: "b"},
		{name: "then lite", models: map[ModelTier]string{TierLite: "a"}, tier: "unknown", want: "a"},
		{name: "nothing configured", models: map[ModelTier]string{}, tier: TierStandard, want: ""},
		{name: "nil map", models: nil, tier: TierStandard, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Provider: ProviderGemini, Models: tt.models}
			assert.Equal(t, tt.want, cfg.GetModel(tt.tier))
		})
	}
}

func TestWithModel_CopiesConfig(t *testing.T) {
	base := DefaultConfig()
	base.Temperature = 0.2

	overridden := base.WithModel(TierStandard, "gemini-2.5-pro")

	assert.Equal(t, "gemini-2.5-pro", overridden.GetModel(TierStandard))
	assert.Equal(t, "gemini-2.5-flash", base.GetModel(TierStandard), "base is not mutated")
	assert.Equal(t, "gemini-2.5-flash-lite", overridden.GetModel(TierLite))
	assert.Equal(t, float32(0.2), overridden.Temperature)
	assert.Equal(t, base.Provider, overridden.Provider)
}
