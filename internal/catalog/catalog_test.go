package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresets_Default(t *testing.T) {
	presets := Presets(Options{IncludeMangoHUD: true})
	require.NotEmpty(t, presets)

	keys := map[string]bool{}
	for _, p := range presets {
		assert.False(t, keys[p.Key], "duplicate key %s", p.Key)
		keys[p.Key] = true
		assert.Contains(t, p.Command, "%command%")
		assert.NotEmpty(t, p.Name)
		assert.NotEmpty(t, p.Category)
	}

	assert.True(t, keys["basic"])
	assert.True(t, keys["basic_mangohud"])
	assert.True(t, keys["fsr4_enhanced"])
	assert.True(t, keys["no_dlss_fg_mangohud"])
}

func TestPresets_MangoHUDVariants(t *testing.T) {
	with := Presets(Options{IncludeMangoHUD: true})
	without := Presets(Options{})

	assert.Equal(t, len(without)*2, len(with))
	for _, p := range without {
		assert.NotContains(t, p.Key, "_mangohud")
	}

	p, ok := Find("basic_mangohud", Options{IncludeMangoHUD: true})
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(p.Command, "mangohud "))
	assert.Contains(t, p.Requirements, "MangoHUD")
}

func TestPresets_RDNA3Variants(t *testing.T) {
	opts := Options{RDNA3Workaround: true}
	p, ok := Find("basic_rdna3", opts)
	require.True(t, ok)

	assert.Contains(t, p.Command, "DXIL_SPIRV_CONFIG=wmma_rdna3_workaround")
	assert.Contains(t, p.Command, "RADV_PERFTEST=nggc")
	assert.Contains(t, p.Compatibility, "RDNA3")

	// A preset that already sets RADV_PERFTEST gets nggc joined in,
	// not a second variable.
	p, ok = Find("fsr4_enhanced_rdna3", opts)
	require.True(t, ok)
	assert.Contains(t, p.Command, "RADV_PERFTEST=nggc,rt")
	assert.Equal(t, 1, strings.Count(p.Command, "RADV_PERFTEST="))
}

func TestPresets_RDNA3HandlesCustomOverrides(t *testing.T) {
	p, ok := Find("no_dlss_fg_rdna3", Options{RDNA3Workaround: true})
	require.True(t, ok)

	assert.Contains(t, p.Command, `WINEDLLOVERRIDES="dxgi=n,b;nvngx=n,b"`)
	assert.Contains(t, p.Command, `" DXIL_SPIRV_CONFIG=wmma_rdna3_workaround`)
}

func TestFind_Missing(t *testing.T) {
	// RDNA3 variants only exist when the workaround is requested.
	_, ok := Find("basic_rdna3", Options{})
	assert.False(t, ok)

	_, ok = Find("nope", Options{IncludeMangoHUD: true, RDNA3Workaround: true})
	assert.False(t, ok)
}
