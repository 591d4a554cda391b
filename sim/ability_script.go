package sim

import (
	"fmt"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/seivard/grimhollow/behavior"
)

// Scripted abilities let a behavior definition ship its special-ability logic
// as a tengo script instead of a built-in archetype. The script defines
// try_cast(engine, state) and returns true when it fired; state is a mutable
// map that persists for the enemy's lifetime.
const abilityDispatchScript = `
__cast := try_cast(__engine, __state)
`

type scriptAbilities struct {
	typeName string
	compiled *tengo.Compiled
	state    *tengo.Map
	disabled bool

	afflicted Player
	applied   []EffectKind
}

func newScriptAbilitiesFromFile(typeName, scriptName string) (SpecialAbilities, error) {
	src, err := behavior.LoadScript(scriptName)
	if err != nil {
		return nil, fmt.Errorf("load script %s: %w", scriptName, err)
	}
	return newScriptAbilities(typeName, src)
}

func newScriptAbilities(typeName string, src []byte) (SpecialAbilities, error) {
	script := tengo.NewScript(append(append([]byte{}, src...), []byte(abilityDispatchScript)...))
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile ability script: %w", err)
	}

	return &scriptAbilities{
		typeName: typeName,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

func (a *scriptAbilities) TryCast(w *World, e *Enemy, target Target, dist float64) bool {
	if a == nil || a.disabled || a.compiled == nil || w == nil || e == nil || !target.Valid() {
		return false
	}

	engine := &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"now":          &tengo.Float{Value: w.Now()},
		"dist":         &tengo.Float{Value: dist},
		"attack_range": &tengo.Float{Value: e.attackRange},
		"health_frac":  &tengo.Float{Value: e.health / e.maxHealth},
		"cast": &tengo.UserFunction{Name: "cast", Value: func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) < 1 {
				return nil, tengo.ErrWrongNumArguments
			}
			damage, ok := tengo.ToFloat64(args[0])
			if !ok {
				return nil, tengo.ErrInvalidArgumentType{Name: "damage", Expected: "float", Found: args[0].TypeName()}
			}
			amount := ApplyDefense(damage, behavior.CategoryDefault, false)
			target.ApplyDamage(w, amount, e.id)
			if len(args) >= 3 {
				effect, _ := tengo.ToString(args[1])
				seconds, _ := tengo.ToFloat64(args[2])
				if p, ok := target.Player(); ok && effect != "" && seconds > 0 {
					kind := EffectKind(effect)
					p.ApplyEffect(kind, seconds)
					a.afflicted = p
					a.applied = append(a.applied, kind)
				}
			}
			return tengo.TrueValue, nil
		}},
	}}

	if err := a.compiled.Set("__engine", engine); err != nil {
		a.fail(err)
		return false
	}
	if err := a.compiled.Set("__state", a.state); err != nil {
		a.fail(err)
		return false
	}
	if err := a.compiled.Run(); err != nil {
		a.fail(err)
		return false
	}
	return a.compiled.Get("__cast").Bool()
}

// fail disables the scripted ability after the first runtime error. The
// enemy keeps fighting with its basic kit; the simulation never stops for a
// bad script.
func (a *scriptAbilities) fail(err error) {
	log.Printf("ability: %s script error: %v", a.typeName, err)
	a.disabled = true
}

func (a *scriptAbilities) OnOwnerDeath(target Player) {
	if a == nil {
		return
	}
	p := target
	if a.afflicted != nil {
		p = a.afflicted
	}
	if p == nil {
		return
	}
	for _, kind := range a.applied {
		if p.HasEffect(kind) {
			p.RemoveEffect(kind)
		}
	}
}
