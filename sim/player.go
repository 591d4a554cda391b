package sim

import "github.com/seivard/grimhollow/common"

// EffectKind names a timed status effect on a player.
type EffectKind string

const (
	EffectFrozen   EffectKind = "frozen"
	EffectSlowed   EffectKind = "slowed"
	EffectPoisoned EffectKind = "poisoned"
)

// Damageable is anything an enemy or projectile can hit.
type Damageable interface {
	Position() common.Vec3
	TakeDamage(amount float64)
}

// Player is the local player capability the surrounding game provides. The
// core reads position, deals damage, manages status effects it applied, and
// grants experience; everything else about the player is out of scope.
type Player interface {
	Damageable
	ApplyEffect(kind EffectKind, seconds float64)
	HasEffect(kind EffectKind) bool
	RemoveEffect(kind EffectKind)
	AddExperience(amount int)
}
