package behavior

import "fmt"

// Category is the defense tier an enemy type belongs to. It drives the flat
// defense value in the damage formula.
type Category int

const (
	CategoryDefault Category = iota
	CategoryUndead
	CategoryTank
	CategoryBoss
)

// Defense returns the flat defense value for the tier.
func (c Category) Defense() float64 {
	switch c {
	case CategoryBoss:
		return 25
	case CategoryTank:
		return 15
	case CategoryUndead:
		return 5
	default:
		return 10
	}
}

func (c Category) String() string {
	switch c {
	case CategoryBoss:
		return "boss"
	case CategoryTank:
		return "tank"
	case CategoryUndead:
		return "undead"
	default:
		return "default"
	}
}

// categoryNames maps the YAML override strings onto tiers.
var categoryNames = map[string]Category{
	"boss":    CategoryBoss,
	"tank":    CategoryTank,
	"undead":  CategoryUndead,
	"default": CategoryDefault,
}

// Tier membership by type name. Types absent from every set fall back to the
// default tier.
var (
	bossTypes = map[string]bool{
		"frost_sovereign": true,
		"ember_tyrant":    true,
	}
	tankTypes = map[string]bool{
		"ironshell":   true,
		"barrow_ogre": true,
	}
	undeadTypes = map[string]bool{
		"bone_strider": true,
		"gravewight":   true,
	}
)

// CategoryFor resolves the defense tier for a type name by membership.
func CategoryFor(typeName string) Category {
	switch {
	case bossTypes[typeName]:
		return CategoryBoss
	case tankTypes[typeName]:
		return CategoryTank
	case undeadTypes[typeName]:
		return CategoryUndead
	default:
		return CategoryDefault
	}
}

// Tuning is the per-type aggression block consumed by the combat loop.
type Tuning struct {
	DetectionRange       float64
	PersistentAggression bool
	AggressionTimeout    float64
}

// Table holds the loaded enemy definitions keyed by type name.
type Table struct {
	byName map[string]TypeSpec
	order  []string
}

// LoadTable reads the embedded enemy definitions.
func LoadTable() (*Table, error) {
	file, err := LoadSpec[SpecFile]("enemies.yaml")
	if err != nil {
		return nil, err
	}
	return NewTable(file.Enemies)
}

// NewTable builds a lookup table from a slice of specs.
func NewTable(specs []TypeSpec) (*Table, error) {
	t := &Table{byName: make(map[string]TypeSpec, len(specs))}
	for i := range specs {
		s := specs[i]
		if s.Name == "" {
			return nil, fmt.Errorf("behavior: enemy spec %d has no name", i)
		}
		if _, ok := t.byName[s.Name]; ok {
			return nil, fmt.Errorf("behavior: duplicate enemy type %q", s.Name)
		}
		s.Normalize()
		t.byName[s.Name] = s
		t.order = append(t.order, s.Name)
	}
	return t, nil
}

// Spec returns the definition for a type name.
func (t *Table) Spec(name string) (TypeSpec, bool) {
	if t == nil {
		return TypeSpec{}, false
	}
	s, ok := t.byName[name]
	return s, ok
}

// Names returns the type names in file order.
func (t *Table) Names() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// CategoryOf resolves the defense tier for a type, honoring a YAML override
// before falling back to name membership.
func (t *Table) CategoryOf(name string) Category {
	if t != nil {
		if s, ok := t.byName[name]; ok {
			if cat, ok := categoryNames[s.Category]; ok {
				return cat
			}
		}
	}
	return CategoryFor(name)
}

// TuningFor returns the aggression tuning for a type, or defaults when the
// type is unknown.
func (t *Table) TuningFor(name string) Tuning {
	if t != nil {
		if s, ok := t.byName[name]; ok {
			return Tuning{
				DetectionRange:       s.DetectionRange,
				PersistentAggression: s.PersistentAggression,
				AggressionTimeout:    s.AggressionTimeout,
			}
		}
	}
	return Tuning{DetectionRange: 15, AggressionTimeout: 5}
}

// RegenFor returns the health regeneration rate (hp/sec) for a type.
func (t *Table) RegenFor(name string) float64 {
	if t == nil {
		return 0
	}
	if s, ok := t.byName[name]; ok {
		return s.RegenRate
	}
	return 0
}
