package behavior

import "testing"

func TestLoadTableFromEmbeddedDefs(t *testing.T) {
	table, err := LoadTable()
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}
	names := table.Names()
	if len(names) != 8 {
		t.Fatalf("loaded %d types, want 8: %v", len(names), names)
	}

	husk, ok := table.Spec("husk")
	if !ok {
		t.Fatal("husk missing")
	}
	if husk.Health != 40 || husk.Damage != 8 || husk.Ranged() {
		t.Errorf("husk = %+v", husk)
	}

	gravewight, ok := table.Spec("gravewight")
	if !ok {
		t.Fatal("gravewight missing")
	}
	if !gravewight.Ranged() || gravewight.ProjectileFlight != "curve" {
		t.Errorf("gravewight = %+v", gravewight)
	}

	sovereign, ok := table.Spec("frost_sovereign")
	if !ok {
		t.Fatal("frost_sovereign missing")
	}
	if !sovereign.Boss || !sovereign.PersistentAggression || sovereign.Ability != "frost" {
		t.Errorf("frost_sovereign = %+v", sovereign)
	}
}

func TestCategoryMembership(t *testing.T) {
	tests := []struct {
		typeName string
		want     Category
	}{
		{"frost_sovereign", CategoryBoss},
		{"ember_tyrant", CategoryBoss},
		{"ironshell", CategoryTank},
		{"bone_strider", CategoryUndead},
		{"gravewight", CategoryUndead},
		{"husk", CategoryDefault},
		{"never_heard_of_it", CategoryDefault},
	}
	for _, tt := range tests {
		if got := CategoryFor(tt.typeName); got != tt.want {
			t.Errorf("CategoryFor(%q) = %v, want %v", tt.typeName, got, tt.want)
		}
	}
}

func TestCategoryOverrideFromSpec(t *testing.T) {
	table, err := NewTable([]TypeSpec{
		{Name: "plated_crawler", Category: "tank"},
		{Name: "frost_sovereign"},
	})
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	if got := table.CategoryOf("plated_crawler"); got != CategoryTank {
		t.Errorf("override category = %v, want tank", got)
	}
	// no override: fall back to name membership
	if got := table.CategoryOf("frost_sovereign"); got != CategoryBoss {
		t.Errorf("membership category = %v, want boss", got)
	}
}

func TestDefenseValues(t *testing.T) {
	tests := []struct {
		cat  Category
		want float64
	}{
		{CategoryDefault, 10},
		{CategoryUndead, 5},
		{CategoryTank, 15},
		{CategoryBoss, 25},
	}
	for _, tt := range tests {
		if got := tt.cat.Defense(); got != tt.want {
			t.Errorf("%v.Defense() = %v, want %v", tt.cat, got, tt.want)
		}
	}
}

func TestNewTableRejectsDuplicates(t *testing.T) {
	if _, err := NewTable([]TypeSpec{{Name: "husk"}, {Name: "husk"}}); err == nil {
		t.Error("duplicate type name accepted")
	}
	if _, err := NewTable([]TypeSpec{{}}); err == nil {
		t.Error("unnamed type accepted")
	}
}

func TestNormalizeDefaults(t *testing.T) {
	s := TypeSpec{Name: "thing"}
	s.Normalize()
	if s.DisplayName != "thing" {
		t.Errorf("display name = %q", s.DisplayName)
	}
	if s.Health != 1 || s.AttackSpeed != 1 || s.AttackRange != 1.5 {
		t.Errorf("combat defaults = %+v", s)
	}
	if s.DetectionRange != 15 || s.Speed != 2 || s.AggressionTimeout != 5 {
		t.Errorf("movement defaults = %+v", s)
	}
}

func TestRanged(t *testing.T) {
	tests := []struct {
		name string
		spec TypeSpec
		want bool
	}{
		{"tagged ranged", TypeSpec{Behavior: "ranged"}, true},
		{"long reach", TypeSpec{Behavior: "melee", AttackRange: 9}, true},
		{"melee", TypeSpec{Behavior: "melee", AttackRange: 1.5}, false},
	}
	for _, tt := range tests {
		if got := tt.spec.Ranged(); got != tt.want {
			t.Errorf("%s: Ranged() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestTuningForUnknownType(t *testing.T) {
	table, _ := NewTable(nil)
	got := table.TuningFor("missing")
	if got.DetectionRange != 15 || got.AggressionTimeout != 5 || got.PersistentAggression {
		t.Errorf("unknown tuning = %+v", got)
	}
	if table.RegenFor("missing") != 0 {
		t.Error("unknown type should not regenerate")
	}
}
