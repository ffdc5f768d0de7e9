// Package formats provides pluggable level file format parsers.
package formats

import (
	"errors"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Order    int               `yaml:"order,omitempty"`
	Borders  *bool             `yaml:"borders,omitempty"` // default true
	Player   *YAMLPoint        `yaml:"player,omitempty"`
	Objects  []YAMLObject      `yaml:"objects"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// YAMLPoint is a position in world units.
type YAMLPoint struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// YAMLObject is one object entry. Angles are in degrees.
type YAMLObject struct {
	Kind    string             `yaml:"kind"`
	Name    string             `yaml:"name,omitempty"`
	X       float64            `yaml:"x"`
	Y       float64            `yaml:"y"`
	Angle   float64            `yaml:"angle,omitempty"`
	Params  map[string]float64 `yaml:"params,omitempty"`
	Animate *YAMLAnimation     `yaml:"animate,omitempty"`
}

// YAMLAnimation describes a ping-pong path relative to the start pose.
type YAMLAnimation struct {
	DX    float64 `yaml:"dx"`
	DY    float64 `yaml:"dy"`
	Turn  float64 `yaml:"turn,omitempty"` // degrees
	Speed float64 `yaml:"speed,omitempty"`
}

// Object is a parsed object with angles converted to radians.
type Object struct {
	Kind    string
	Name    string
	X, Y    float64
	Rot     float64
	Params  map[string]float64
	Animate *Animation
}

// Animation is a parsed animation with the turn in radians.
type Animation struct {
	DX, DY float64
	Turn   float64
	Speed  float64
}

// Level represents a parsed level ready for use.
type Level struct {
	ID       string
	Name     string
	Order    int
	Borders  bool
	Player   *YAMLPoint
	Objects  []Object
	Metadata map[string]string
}

// Degree-valued keys inside params that are converted to radians.
var angleParams = map[string]bool{"spread": true}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yl.ID == "" {
		return Level{}, errors.New("level has no id")
	}

	level := Level{
		ID:       yl.ID,
		Name:     yl.Name,
		Order:    yl.Order,
		Borders:  yl.Borders == nil || *yl.Borders,
		Player:   yl.Player,
		Metadata: yl.Metadata,
	}
	if level.Name == "" {
		level.Name = yl.ID
	}

	for i, o := range yl.Objects {
		if o.Kind == "" {
			return Level{}, fmt.Errorf("object %d: missing kind", i)
		}
		obj := Object{
			Kind: o.Kind,
			Name: o.Name,
			X:    o.X,
			Y:    o.Y,
			Rot:  radians(o.Angle),
		}
		if len(o.Params) > 0 {
			obj.Params = make(map[string]float64, len(o.Params))
			for k, v := range o.Params {
				if angleParams[k] {
					v = radians(v)
				}
				obj.Params[k] = v
			}
		}
		if o.Animate != nil {
			obj.Animate = &Animation{
				DX:    o.Animate.DX,
				DY:    o.Animate.DY,
				Turn:  radians(o.Animate.Turn),
				Speed: o.Animate.Speed,
			}
		}
		level.Objects = append(level.Objects, obj)
	}

	return level, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
