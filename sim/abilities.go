package sim

import (
	"log"

	"github.com/seivard/grimhollow/behavior"
)

// SpecialAbilities is the per-archetype strategy hook the combat loop calls
// before normal attack/chase logic. A true return means an ability fired and
// pre-empts the rest of the tick. OnOwnerDeath removes any lingering status
// effects this instance put on the local player.
type SpecialAbilities interface {
	TryCast(w *World, e *Enemy, target Target, dist float64) bool
	OnOwnerDeath(target Player)
}

// abilityArchetypes maps behavior table names onto constructors.
var abilityArchetypes = map[string]func(spec behavior.TypeSpec) SpecialAbilities{
	"frost": newFrostAbilities,
}

// abilitiesFor builds the ability strategy for a spec, or nil when the type
// has none. A broken scripted ability is logged and dropped so the enemy
// still fights with its basic kit.
func abilitiesFor(spec behavior.TypeSpec) SpecialAbilities {
	if spec.AbilityScript != "" {
		a, err := newScriptAbilitiesFromFile(spec.Name, spec.AbilityScript)
		if err != nil {
			log.Printf("ability: %s: %v", spec.Name, err)
			return nil
		}
		return a
	}
	if spec.Ability == "" {
		return nil
	}
	ctor, ok := abilityArchetypes[spec.Ability]
	if !ok {
		log.Printf("ability: %s: unknown archetype %q", spec.Name, spec.Ability)
		return nil
	}
	return ctor(spec)
}

// Frost archetype tuning. The nova is a ranged burst usable in a distance
// band; the shatter is a close-range slam keyed off attack range. Both run
// independent cooldowns.
const (
	frostNovaMinRange    = 5.0
	frostNovaMaxRange    = 10.0
	frostNovaEffectRange = 8.0
	frostNovaCooldown    = 8.0
	frostNovaDamage      = 18.0
	frostNovaFreezeSecs  = 3.0

	frostShatterRangeMult = 1.5
	frostShatterCooldown  = 5.0
	frostShatterDamage    = 25.0
	frostShatterSlowSecs  = 2.0
)

type frostAbilities struct {
	novaReadyAt    float64
	shatterReadyAt float64
	afflicted      Player
}

func newFrostAbilities(behavior.TypeSpec) SpecialAbilities {
	return &frostAbilities{}
}

func (a *frostAbilities) TryCast(w *World, e *Enemy, target Target, dist float64) bool {
	if a == nil || w == nil || e == nil || !target.Valid() {
		return false
	}
	now := w.Now()

	if dist >= frostNovaMinRange && dist <= frostNovaMaxRange && now >= a.novaReadyAt {
		amount := ApplyDefense(frostNovaDamage, behavior.CategoryDefault, false)
		target.ApplyDamage(w, amount, e.id)
		if p, ok := target.Player(); ok && dist <= frostNovaEffectRange {
			p.ApplyEffect(EffectFrozen, frostNovaFreezeSecs)
			a.afflicted = p
		}
		a.novaReadyAt = now + frostNovaCooldown
		return true
	}

	if dist <= e.attackRange*frostShatterRangeMult && now >= a.shatterReadyAt {
		amount := ApplyDefense(frostShatterDamage, behavior.CategoryDefault, false)
		target.ApplyDamage(w, amount, e.id)
		if p, ok := target.Player(); ok {
			p.ApplyEffect(EffectSlowed, frostShatterSlowSecs)
			a.afflicted = p
		}
		a.shatterReadyAt = now + frostShatterCooldown
		return true
	}

	return false
}

func (a *frostAbilities) OnOwnerDeath(target Player) {
	p := target
	if a != nil && a.afflicted != nil {
		p = a.afflicted
	}
	if p == nil {
		return
	}
	if p.HasEffect(EffectFrozen) {
		p.RemoveEffect(EffectFrozen)
	}
	if p.HasEffect(EffectSlowed) {
		p.RemoveEffect(EffectSlowed)
	}
}
