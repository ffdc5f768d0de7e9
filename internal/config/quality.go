package config

import "fmt"

// QualityPreset represents a named ray budget.
type QualityPreset string

const (
	QualityLow    QualityPreset = "low"
	QualityNormal QualityPreset = "normal"
	QualityHigh   QualityPreset = "high"
)

// ParseQuality converts a flag value into a preset. Empty means normal.
func ParseQuality(s string) (QualityPreset, error) {
	switch QualityPreset(s) {
	case "", QualityNormal:
		return QualityNormal, nil
	case QualityLow:
		return QualityLow, nil
	case QualityHigh:
		return QualityHigh, nil
	default:
		return "", fmt.Errorf("config: unknown quality %q (want low, normal or high)", s)
	}
}

// ApplyQuality modifies the ray budget based on a preset.
// Normal leaves the loaded configuration untouched.
func ApplyQuality(cfg *LightConfig, preset QualityPreset) {
	switch preset {
	case QualityLow:
		cfg.Light.RayCount = max(1, cfg.Light.RayCount/3)
		cfg.Light.MaxGenerations = min(cfg.Light.MaxGenerations, 4)
	case QualityHigh:
		cfg.Light.RayCount *= 3
		cfg.Light.MaxGenerations += 6
	}
}
