// Package catalog holds the launch-option presets this tool can inject
// into Steam, including the MangoHUD and RDNA3-workaround variants.
package catalog

import "strings"

// Preset is one ready-made launch command with enough context for a user
// to pick the right variant.
type Preset struct {
	Key           string
	Name          string
	Description   string
	Command       string
	Category      string
	Compatibility string
	Requirements  string
}

// Options shape the preset list.
type Options struct {
	// RDNA3Workaround adds derived variants carrying the RDNA3 WMMA
	// shader workaround.
	RDNA3Workaround bool
	// IncludeMangoHUD keeps the MangoHUD overlay variants (on by
	// default in the CLI).
	IncludeMangoHUD bool
}

// base overrides the game's dxgi so OptiScaler loads inside Proton.
const base = `WINEDLLOVERRIDES="dxgi=n,b"`

func basePresets() []Preset {
	return []Preset{
		{
			Key:           "basic",
			Name:          "Basic OptiScaler",
			Description:   "Essential OptiScaler setup - recommended starting point",
			Command:       base + ` PROTON_FSR4_UPGRADE=1 %command%`,
			Category:      "basic",
			Compatibility: "All games",
			Requirements:  "OptiScaler installed",
		},
		{
			Key:           "advanced",
			Name:          "Advanced OptiScaler",
			Description:   "Enhanced performance and compatibility settings",
			Command:       base + ` PROTON_FSR4_UPGRADE=1 DXVK_ASYNC=1 PROTON_ENABLE_NVAPI=1 PROTON_HIDE_NVIDIA_GPU=0 VKD3D_CONFIG=dxr11,dxr WINE_CPU_TOPOLOGY=4:2 %command%`,
			Category:      "advanced",
			Compatibility: "Most games",
			Requirements:  "OptiScaler installed, DXVK",
		},
		{
			Key:           "debug",
			Name:          "Debug Mode",
			Description:   "Detailed logging for troubleshooting issues",
			Command:       base + ` PROTON_LOG=+all WINEDEBUG=+dll PROTON_FSR4_UPGRADE=1 %command%`,
			Category:      "debug",
			Compatibility: "All games",
			Requirements:  "OptiScaler installed",
		},
		{
			Key:           "antilag",
			Name:          "Anti-Lag 2",
			Description:   "Experimental latency reduction (AMD only)",
			Command:       base + ` PROTON_FSR4_UPGRADE=1 RADV_PERFTEST=rt %command%`,
			Category:      "experimental",
			Compatibility: "AMD GPUs only",
			Requirements:  "OptiScaler installed, AMD GPU",
		},
		{
			Key:           "fsr4_enhanced",
			Name:          "FSR4 Enhanced",
			Description:   "Optimized FSR4 settings with enhanced performance",
			Command:       base + ` PROTON_FSR4_UPGRADE=1 RADV_PERFTEST=nggc,rt %command%`,
			Category:      "fsr4",
			Compatibility: "AMD GPUs (FSR4 capable)",
			Requirements:  "OptiScaler installed, AMD GPU, FSR4 DLL",
		},
		{
			Key:           "ue_dx12",
			Name:          "Unreal Engine + DX12",
			Description:   "Optimized for Unreal Engine games with DirectX 12",
			Command:       base + ` PROTON_FSR4_UPGRADE=1 -dx12 %command%`,
			Category:      "game_specific",
			Compatibility: "Unreal Engine games",
			Requirements:  "OptiScaler installed, UE game",
		},
		{
			Key:           "no_dlss_fg",
			Name:          "Disable DLSS Frame Generation",
			Description:   "For games with DLSS Frame Generation issues",
			Command:       `WINEDLLOVERRIDES="dxgi=n,b;nvngx=n,b" PROTON_FSR4_UPGRADE=1 %command%`,
			Category:      "compatibility",
			Compatibility: "Games with DLSS FG issues",
			Requirements:  "OptiScaler installed",
		},
	}
}

// Presets returns the catalog in stable order: every base preset followed
// by its MangoHUD variant, then the derived RDNA3 variants when enabled.
func Presets(opts Options) []Preset {
	var out []Preset
	for _, p := range basePresets() {
		out = append(out, p)
		if opts.IncludeMangoHUD {
			out = append(out, mangoHUDVariant(p))
		}
	}
	if opts.RDNA3Workaround {
		for _, p := range out {
			if v, ok := rdna3Variant(p); ok {
				out = append(out, v)
			}
		}
	}
	return out
}

// Find looks a preset up by key across every variant.
func Find(key string, opts Options) (Preset, bool) {
	for _, p := range Presets(opts) {
		if p.Key == key {
			return p, true
		}
	}
	return Preset{}, false
}

func mangoHUDVariant(p Preset) Preset {
	return Preset{
		Key:           p.Key + "_mangohud",
		Name:          p.Name + " + MangoHUD",
		Description:   p.Description + " - with performance monitoring overlay",
		Command:       "mangohud " + p.Command,
		Category:      p.Category,
		Compatibility: p.Compatibility,
		Requirements:  p.Requirements + ", MangoHUD",
	}
}

// rdna3Variant injects the WMMA shader workaround RDNA3 cards need for
// FSR4, mirroring how the env vars compose: the override is appended to
// the dxgi WINEDLLOVERRIDES and nggc joins (or starts) RADV_PERFTEST.
func rdna3Variant(p Preset) (Preset, bool) {
	if strings.Contains(p.Command, "DXIL_SPIRV_CONFIG=wmma_rdna3_workaround") {
		return Preset{}, false
	}
	cmd := p.Command
	if i := strings.Index(cmd, `WINEDLLOVERRIDES="`); i >= 0 {
		if j := strings.Index(cmd[i+len(`WINEDLLOVERRIDES="`):], `"`); j >= 0 {
			at := i + len(`WINEDLLOVERRIDES="`) + j + 1
			cmd = cmd[:at] + " DXIL_SPIRV_CONFIG=wmma_rdna3_workaround" + cmd[at:]
		}
	} else {
		cmd = "DXIL_SPIRV_CONFIG=wmma_rdna3_workaround " + cmd
	}
	if strings.Contains(cmd, "RADV_PERFTEST=nggc") {
		// already set
	} else if strings.Contains(cmd, "RADV_PERFTEST=") {
		cmd = strings.Replace(cmd, "RADV_PERFTEST=", "RADV_PERFTEST=nggc,", 1)
	} else {
		cmd = strings.Replace(cmd, "PROTON_FSR4_UPGRADE=1", "PROTON_FSR4_UPGRADE=1 RADV_PERFTEST=nggc", 1)
	}
	return Preset{
		Key:           p.Key + "_rdna3",
		Name:          p.Name + " (RDNA3)",
		Description:   p.Description + " - RDNA3 GPU workaround",
		Command:       cmd,
		Category:      p.Category,
		Compatibility: "RDNA3 GPUs only",
		Requirements:  p.Requirements + ", RDNA3 GPU",
	}, true
}
