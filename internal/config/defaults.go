package config

import (
	_ "embed"
	"math"
)

//go:embed defaults/light.yaml
var defaultLightYAML []byte

// DefaultLightConfig returns the hardcoded configuration used when the
// embedded YAML cannot be parsed.
func DefaultLightConfig() LightConfig {
	return LightConfig{
		Light: LightSection{
			MaxGenerations: 10,
			RayCount:       15,
			RayEpsilon:     0.001,
			MaxRayLength:   2000,
		},
		Receiver: ReceiverSection{
			ChargeDecay:     0.98,
			ChargeIncrement: 5,
			ChargeThreshold: 100,
		},
		Lens: LensSection{
			RadiusOfCurvature: 110,
			CoverageAngle:     math.Pi / 5,
			RefractiveIndex:   1.5,
		},
		World: WorldSection{
			Width:          1280,
			Height:         720,
			WallTile:       32,
			MirrorWidth:    8,
			MirrorHeight:   64,
			SourceWidth:    32,
			SourceSpread:   math.Pi / 6,
			ReceiverSize:   32,
			EnemySize:      32,
			ActorSize:      32,
			AnimationSpeed: 0.01,
			MoveStep:       8,
			RotateStep:     math.Pi / 36,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultLightYAML
}
