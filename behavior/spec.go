package behavior

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// TypeSpec is the YAML schema for a single enemy type. Zero fields fall back
// to the defaults applied in Normalize.
type TypeSpec struct {
	Name        string `yaml:"name"`
	DisplayName string `yaml:"display_name"`
	Boss        bool   `yaml:"boss"`

	Health         float64 `yaml:"health"`
	Damage         float64 `yaml:"damage"`
	AttackRange    float64 `yaml:"attack_range"`
	AttackSpeed    float64 `yaml:"attack_speed"`
	DetectionRange float64 `yaml:"detection_range"`
	Speed          float64 `yaml:"speed"`
	Experience     int     `yaml:"experience"`

	CollisionRadius float64 `yaml:"collision_radius"`
	HeightOffset    float64 `yaml:"height_offset"`
	Scale           float64 `yaml:"scale"`

	// Behavior is "melee" or "ranged".
	Behavior         string `yaml:"behavior"`
	ProjectileType   string `yaml:"projectile_type"`
	ProjectileFlight string `yaml:"projectile_flight"`

	// Category overrides the name-membership defense tier when set.
	Category string `yaml:"category"`

	PersistentAggression bool    `yaml:"persistent_aggression"`
	AggressionTimeout    float64 `yaml:"aggression_timeout"`
	RegenRate            float64 `yaml:"regen_rate"`

	// Ability names a built-in archetype ("frost"); AbilityScript names a
	// tengo script under behavior/scripts instead.
	Ability       string `yaml:"ability"`
	AbilityScript string `yaml:"ability_script"`
}

// Normalize fills defaults so downstream code never divides by zero or walks
// an enemy at zero speed by accident.
func (s *TypeSpec) Normalize() {
	if s == nil {
		return
	}
	if s.DisplayName == "" {
		s.DisplayName = s.Name
	}
	if s.Health <= 0 {
		s.Health = 1
	}
	if s.AttackSpeed <= 0 {
		s.AttackSpeed = 1
	}
	if s.AttackRange <= 0 {
		s.AttackRange = 1.5
	}
	if s.DetectionRange <= 0 {
		s.DetectionRange = 15
	}
	if s.Speed <= 0 {
		s.Speed = 2
	}
	if s.CollisionRadius <= 0 {
		s.CollisionRadius = 0.5
	}
	if s.Scale <= 0 {
		s.Scale = 1
	}
	if s.AggressionTimeout <= 0 {
		s.AggressionTimeout = 5
	}
}

// Ranged reports whether the type fights at range: either tagged "ranged" or
// carrying an attack range past melee reach.
func (s TypeSpec) Ranged() bool {
	return s.Behavior == "ranged" || s.AttackRange > 4
}

// SpecFile is the top-level YAML document for enemy definitions.
type SpecFile struct {
	Enemies []TypeSpec `yaml:"enemies"`
}

// LoadSpec unmarshals a behavior definition file into T.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("behavior: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("behavior: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}
