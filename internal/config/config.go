// Package config provides YAML-based configuration loading and quality
// presets for the light engine and the scene built around it.
package config

// LightConfig contains every tunable the engine and world depend on.
type LightConfig struct {
	Light    LightSection    `yaml:"light"`
	Receiver ReceiverSection `yaml:"receiver"`
	Lens     LensSection     `yaml:"lens"`
	World    WorldSection    `yaml:"world"`
}

// LightSection defines ray propagation limits.
type LightSection struct {
	MaxGenerations int     `yaml:"max_generations"`
	RayCount       int     `yaml:"ray_count"`
	RayEpsilon     float64 `yaml:"ray_epsilon"`    // child origin offset along the new direction
	MaxRayLength   float64 `yaml:"max_ray_length"` // drawn length of a ray that hit nothing
}

// ReceiverSection defines the charge accumulator.
type ReceiverSection struct {
	ChargeDecay     float64 `yaml:"charge_decay"` // multiplier applied every tick, in (0, 1)
	ChargeIncrement float64 `yaml:"charge_increment"`
	ChargeThreshold float64 `yaml:"charge_threshold"`
}

// LensSection defines the fixed lens shape.
type LensSection struct {
	RadiusOfCurvature float64 `yaml:"radius_of_curvature"`
	CoverageAngle     float64 `yaml:"coverage_angle"` // radians covered by each face
	RefractiveIndex   float64 `yaml:"refractive_index"`
}

// WorldSection defines playfield and object dimensions in world units.
type WorldSection struct {
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	WallTile       float64 `yaml:"wall_tile"`
	MirrorWidth    float64 `yaml:"mirror_width"`
	MirrorHeight   float64 `yaml:"mirror_height"`
	SourceWidth    float64 `yaml:"source_width"`
	SourceSpread   float64 `yaml:"source_spread"` // default radial spread in radians
	ReceiverSize   float64 `yaml:"receiver_size"`
	EnemySize      float64 `yaml:"enemy_size"`
	ActorSize      float64 `yaml:"actor_size"`
	AnimationSpeed float64 `yaml:"animation_speed"` // interpolation step per tick
	MoveStep       float64 `yaml:"move_step"`       // player nudge distance
	RotateStep     float64 `yaml:"rotate_step"`     // player rotation step in radians
}

// Validate clamps out-of-range values back to usable ones and reports
// which fields it touched.
func (c *LightConfig) Validate() []string {
	d := DefaultLightConfig()
	var fixed []string

	if c.Light.MaxGenerations < 0 {
		c.Light.MaxGenerations = 0
		fixed = append(fixed, "light.max_generations")
	}
	if c.Light.RayCount < 1 {
		c.Light.RayCount = 1
		fixed = append(fixed, "light.ray_count")
	}
	if c.Light.RayEpsilon <= 0 {
		c.Light.RayEpsilon = d.Light.RayEpsilon
		fixed = append(fixed, "light.ray_epsilon")
	}
	if c.Light.MaxRayLength <= 0 {
		c.Light.MaxRayLength = d.Light.MaxRayLength
		fixed = append(fixed, "light.max_ray_length")
	}
	if c.Receiver.ChargeDecay <= 0 || c.Receiver.ChargeDecay >= 1 {
		c.Receiver.ChargeDecay = d.Receiver.ChargeDecay
		fixed = append(fixed, "receiver.charge_decay")
	}
	if c.Receiver.ChargeIncrement < 0 {
		c.Receiver.ChargeIncrement = d.Receiver.ChargeIncrement
		fixed = append(fixed, "receiver.charge_increment")
	}
	if c.Receiver.ChargeThreshold <= 0 {
		c.Receiver.ChargeThreshold = d.Receiver.ChargeThreshold
		fixed = append(fixed, "receiver.charge_threshold")
	}
	if c.Lens.RadiusOfCurvature <= 0 {
		c.Lens.RadiusOfCurvature = d.Lens.RadiusOfCurvature
		fixed = append(fixed, "lens.radius_of_curvature")
	}
	if c.Lens.CoverageAngle <= 0 || c.Lens.CoverageAngle >= 3.14159 {
		c.Lens.CoverageAngle = d.Lens.CoverageAngle
		fixed = append(fixed, "lens.coverage_angle")
	}
	if c.Lens.RefractiveIndex <= 0 {
		c.Lens.RefractiveIndex = d.Lens.RefractiveIndex
		fixed = append(fixed, "lens.refractive_index")
	}
	if c.World.Width <= 0 || c.World.Height <= 0 {
		c.World.Width, c.World.Height = d.World.Width, d.World.Height
		fixed = append(fixed, "world.width/height")
	}
	positive := []struct {
		name string
		v    *float64
		def  float64
	}{
		{"world.wall_tile", &c.World.WallTile, d.World.WallTile},
		{"world.mirror_width", &c.World.MirrorWidth, d.World.MirrorWidth},
		{"world.mirror_height", &c.World.MirrorHeight, d.World.MirrorHeight},
		{"world.source_width", &c.World.SourceWidth, d.World.SourceWidth},
		{"world.receiver_size", &c.World.ReceiverSize, d.World.ReceiverSize},
		{"world.enemy_size", &c.World.EnemySize, d.World.EnemySize},
		{"world.actor_size", &c.World.ActorSize, d.World.ActorSize},
		{"world.animation_speed", &c.World.AnimationSpeed, d.World.AnimationSpeed},
		{"world.move_step", &c.World.MoveStep, d.World.MoveStep},
		{"world.rotate_step", &c.World.RotateStep, d.World.RotateStep},
	}
	for _, p := range positive {
		if *p.v <= 0 {
			*p.v = p.def
			fixed = append(fixed, p.name)
		}
	}
	if c.World.SourceSpread < 0 {
		c.World.SourceSpread = d.World.SourceSpread
		fixed = append(fixed, "world.source_spread")
	}
	return fixed
}
