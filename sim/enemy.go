package sim

import (
	"log"
	"math"

	"github.com/jakecoffman/cp"

	"github.com/seivard/grimhollow/behavior"
	"github.com/seivard/grimhollow/common"
	"github.com/seivard/grimhollow/network"
)

// Combat timing tuning (seconds / world units).
const (
	knockbackDuration = 0.3
	knockbackDistance = 1.0
	// how long isAttacking stays up after an attack, for the animator
	attackHoldWindow = 0.5

	deathAnimDuration     = 1.0
	bossDeathAnimDuration = 0.5
	deathSinkDepth        = 0.3
)

// movementPhase is the mutually exclusive branch the movement/attack part of
// a tick runs in. Terrain follow still runs in the knocked-back and stunned
// phases; everything else is gated on the active phase.
type movementPhase int

const (
	phaseActive movementPhase = iota
	phaseKnockedBack
	phaseStunned
)

type deathAnimation struct {
	startPos  common.Vec3
	endPos    common.Vec3
	startRoll float64
	endRoll   float64
	startedAt float64
	duration  float64
	fade      bool
}

// Enemy is one hostile actor. All state is owned by the simulation driver
// goroutine; the only mutation entry points from outside the tick are
// TakeDamage and Stun.
type Enemy struct {
	id          int
	typeName    string
	displayName string
	boss        bool

	health         float64
	maxHealth      float64
	damage         float64
	attackRange    float64
	attackSpeed    float64
	detectionRange float64
	experience     int

	pos             common.Vec3
	yaw             float64
	roll            float64
	fade            float64
	speed           float64
	collisionRadius float64
	heightOffset    float64
	scale           float64

	ranged         bool
	projectileType string
	flight         FlightStyle

	moving         bool
	attacking      bool
	dead           bool
	attackCooldown float64
	attackHoldEnd  float64

	knockedBack   bool
	knockbackEnd  float64
	stunned       bool
	stunEnd       float64
	aggressive    bool
	aggressionEnd float64

	allowTerrainUpdates bool
	initialPositionSet  bool
	initialY            float64
	lastTerrainCheck    *common.Vec3

	persistentAggression bool
	aggressionTimeout    float64
	regenRate            float64
	category             behavior.Category

	target         Target
	originalTarget Player

	abilities SpecialAbilities
	deathAnim *deathAnimation
}

// NewEnemy builds an enemy from its behavior definition. IDs are assigned by
// the pool owner, not by the enemy itself.
func NewEnemy(id int, spec behavior.TypeSpec, cat behavior.Category, pos common.Vec3) *Enemy {
	spec.Normalize()
	e := &Enemy{
		id:          id,
		typeName:    spec.Name,
		displayName: spec.DisplayName,
		boss:        spec.Boss,

		health:         spec.Health,
		maxHealth:      spec.Health,
		damage:         spec.Damage,
		attackRange:    spec.AttackRange,
		attackSpeed:    spec.AttackSpeed,
		detectionRange: spec.DetectionRange,
		experience:     spec.Experience,

		pos:             pos,
		fade:            1,
		speed:           spec.Speed,
		collisionRadius: spec.CollisionRadius,
		heightOffset:    spec.HeightOffset,
		scale:           spec.Scale,

		ranged:         spec.Ranged(),
		projectileType: spec.ProjectileType,
		flight:         FlightStyleFrom(spec.ProjectileFlight),

		// bosses are pinned to their first known ground height for life
		allowTerrainUpdates: !spec.Boss,

		persistentAggression: spec.PersistentAggression,
		aggressionTimeout:    spec.AggressionTimeout,
		regenRate:            spec.RegenRate,
		category:             cat,
	}
	e.abilities = abilitiesFor(spec)
	return e
}

func (e *Enemy) ID() int                 { return e.id }
func (e *Enemy) TypeName() string        { return e.typeName }
func (e *Enemy) DisplayName() string     { return e.displayName }
func (e *Enemy) Boss() bool              { return e.boss }
func (e *Enemy) Health() float64         { return e.health }
func (e *Enemy) MaxHealth() float64      { return e.maxHealth }
func (e *Enemy) Position() common.Vec3   { return e.pos }
func (e *Enemy) Yaw() float64            { return e.yaw }
func (e *Enemy) Dead() bool              { return e.dead }
func (e *Enemy) Attacking() bool         { return e.attacking }
func (e *Enemy) Moving() bool            { return e.moving }
func (e *Enemy) Aggressive() bool        { return e.aggressive }
func (e *Enemy) AttackCooldown() float64 { return e.attackCooldown }
func (e *Enemy) Ranged() bool            { return e.ranged }
func (e *Enemy) Target() Target          { return e.target }

// SetPosition moves the enemy. A pinned boss keeps its locked Y on the next
// terrain pass no matter what Y is written here.
func (e *Enemy) SetPosition(pos common.Vec3) {
	if e == nil {
		return
	}
	e.pos = pos
}

func (e *Enemy) movementPhase(now float64) movementPhase {
	switch {
	case e.knockedBack && now < e.knockbackEnd:
		return phaseKnockedBack
	case e.stunned && now < e.stunEnd:
		return phaseStunned
	default:
		return phaseActive
	}
}

// Update runs one simulation tick for the enemy. It returns false when the
// enemy has finished its death animation and must be removed from the pool.
func (e *Enemy) Update(w *World, delta float64) bool {
	if e == nil || w == nil {
		return false
	}
	now := w.Now()

	if e.deathAnim != nil {
		return e.advanceDeathAnimation(now)
	}
	if e.dead {
		return false
	}

	switch e.movementPhase(now) {
	case phaseKnockedBack, phaseStunned:
		// no decisions while staggered, but stay glued to the ground
		e.followTerrain(w)
		return true
	}
	e.knockedBack = false
	e.stunned = false

	e.followTerrain(w)
	e.validatePosition(w)
	e.regenerate(delta)

	e.attackCooldown -= delta

	e.target = w.ResolveTarget(e.pos)
	if p, ok := e.target.Player(); ok && e.originalTarget == nil {
		e.originalTarget = p
	}

	if e.attacking && now >= e.attackHoldEnd {
		e.attacking = false
	}

	if !e.target.Valid() {
		e.moving = false
		return true
	}

	dist := math.Sqrt(common.HorizontalDistSq(e.pos, e.target.Position()))

	if e.abilities != nil && e.abilities.TryCast(w, e, e.target, dist) {
		e.moving = false
		e.attacking = true
		e.attackHoldEnd = now + attackHoldWindow
		return true
	}

	airborne := w.targetAirborne(e.target)

	switch {
	case dist <= e.attackRange && (!airborne || e.ranged):
		e.moving = false
		e.faceTarget()
		e.aggressive = true
		e.aggressionEnd = now + e.aggressionTimeout
		if e.attackCooldown <= 0 {
			e.attack(w, now)
			e.attackCooldown = 1 / e.attackSpeed
		}
	case dist <= e.attackRange:
		// melee can't reach an airborne target: hold position and track it
		e.moving = false
		e.faceTarget()
	default:
		if e.aggressive && !e.persistentAggression && now >= e.aggressionEnd {
			e.aggressive = false
		}
		inDetection := dist <= e.detectionRange
		if inDetection || e.aggressive {
			e.moving = true
			e.chase(w, delta)
			if inDetection {
				e.aggressive = true
				e.aggressionEnd = now + e.aggressionTimeout
			}
		} else {
			e.moving = false
		}
	}

	return true
}

// chase steers straight at the target in the ground plane at chase speed.
func (e *Enemy) chase(w *World, delta float64) {
	dir := e.target.Position().Horizontal().Sub(e.pos.Horizontal())
	if dir.LengthSq() <= 1e-9 {
		return
	}
	step := dir.Normalize().Mult(e.speed * w.cfg.ChaseMultiplier * delta)
	e.pos.X += step.X
	e.pos.Z += step.Y
	e.faceTarget()
	e.followTerrain(w)
}

func (e *Enemy) faceTarget() {
	if !e.target.Valid() {
		return
	}
	d := e.target.Position().Sub(e.pos)
	if d.X*d.X+d.Z*d.Z > 1e-9 {
		e.yaw = math.Atan2(d.X, d.Z)
	}
}

// attack issues one attack against the resolved target. A missing target is
// logged and skipped; the caller still resets the cooldown so the enemy
// doesn't spin on a retry every tick.
func (e *Enemy) attack(w *World, now float64) {
	if !e.target.Valid() {
		log.Printf("combat: enemy %d attacked with no target", e.id)
		return
	}
	e.attacking = true
	e.attackHoldEnd = now + attackHoldWindow

	if e.ranged {
		w.projectiles.Spawn(e, nil)
		return
	}
	amount := ApplyDefense(e.damage, behavior.CategoryDefault, false)
	e.target.ApplyDamage(w, amount, e.id)
}

func (e *Enemy) regenerate(delta float64) {
	if e.dead || e.regenRate <= 0 {
		return
	}
	e.health += e.regenRate * delta
	if e.health > e.maxHealth {
		e.health = e.maxHealth
	}
}

// TakeDamage is the single mutation entry point for combat systems outside
// the core. It returns the defense-reduced damage actually applied, or 0 when
// the enemy is already dead. Knockback is skipped on a killing blow, and
// bosses are never displaced.
func (e *Enemy) TakeDamage(w *World, amount float64, knockback bool, dir cp.Vector, ignoreDefense bool) int {
	if e == nil || e.dead {
		return 0
	}

	actual := ApplyDefense(amount, e.category, ignoreDefense)
	e.health -= float64(actual)
	if e.health <= 0 {
		e.health = 0
		e.die(w)
		return actual
	}

	if knockback && w != nil {
		e.knockedBack = true
		e.knockbackEnd = w.Now() + knockbackDuration
		if e.allowTerrainUpdates && dir.LengthSq() > 1e-9 {
			step := dir.Normalize().Mult(knockbackDistance)
			e.pos.X += step.X
			e.pos.Z += step.Y
			e.followTerrain(w)
		}
	}
	return actual
}

// Stun staggers the enemy for the given duration. Stuns don't stack; a new
// stun only extends the window.
func (e *Enemy) Stun(w *World, seconds float64) {
	if e == nil || w == nil || e.dead || seconds <= 0 {
		return
	}
	e.stunned = true
	if end := w.Now() + seconds; end > e.stunEnd {
		e.stunEnd = end
	}
}

// die marks the enemy dead, cleans up its status effects, distributes
// experience, and starts the death animation. Idempotent: a second call while
// the animation runs is a no-op.
func (e *Enemy) die(w *World) {
	if e == nil || e.deathAnim != nil {
		return
	}
	e.dead = true
	e.health = 0
	e.moving = false
	e.attacking = false

	if e.abilities != nil {
		e.abilities.OnOwnerDeath(e.originalTarget)
	}
	e.grantExperience(w)

	duration := deathAnimDuration
	fade := false
	endPos := e.pos
	endRoll := math.Pi / 2
	if e.boss {
		// bosses get the simplified fade-out instead of the fall-over tween
		duration = bossDeathAnimDuration
		fade = true
		endRoll = e.roll
	} else {
		endPos.Y -= deathSinkDepth
	}

	now := 0.0
	if w != nil {
		now = w.Now()
	}
	e.deathAnim = &deathAnimation{
		startPos:  e.pos,
		endPos:    endPos,
		startRoll: e.roll,
		endRoll:   endRoll,
		startedAt: now,
		duration:  duration,
		fade:      fade,
	}
}

// grantExperience splits the kill reward across the session. In multiplayer
// each of the N players gets floor(value/N); the integer remainder is lost by
// design. The host broadcasts the share so peers credit the same amount.
func (e *Enemy) grantExperience(w *World) {
	if w == nil || e.experience <= 0 {
		return
	}
	if w.transport != nil && w.transport.Active() {
		total := len(w.transport.Roster()) + 1
		share := e.experience / total
		if w.local != nil && share > 0 {
			w.local.AddExperience(share)
		}
		if w.transport.Host() {
			w.transport.Broadcast(network.ShareExperience(share, e.id, total))
		}
		return
	}
	if w.local != nil {
		w.local.AddExperience(e.experience)
	}
}

// advanceDeathAnimation plays the death tween with a cubic ease-out. Returns
// false once the animation completes; the pool owner removes the enemy then.
func (e *Enemy) advanceDeathAnimation(now float64) bool {
	a := e.deathAnim
	p := (now - a.startedAt) / a.duration
	if p >= 1 {
		e.pos = a.endPos
		e.roll = a.endRoll
		if a.fade {
			e.fade = 0
		}
		e.deathAnim = nil
		return false
	}
	eased := 1 - math.Pow(1-p, 3)
	e.pos = common.LerpVec3(a.startPos, a.endPos, eased)
	e.roll = common.Lerp(a.startRoll, a.endRoll, eased)
	if a.fade {
		e.fade = 1 - eased
	}
	return true
}
