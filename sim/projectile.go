package sim

import (
	"math"

	"github.com/seivard/grimhollow/behavior"
	"github.com/seivard/grimhollow/common"
)

// FlightStyle selects how a projectile travels.
type FlightStyle int

const (
	// FlightDirect re-aims at the target every tick (homing).
	FlightDirect FlightStyle = iota
	// FlightCurve flies a parabolic arc to the point the target occupied at
	// spawn time; only the final hit test tracks the live target.
	FlightCurve
)

// FlightStyleFrom maps a behavior table string onto a style.
func FlightStyleFrom(name string) FlightStyle {
	if name == "curve" {
		return FlightCurve
	}
	return FlightDirect
}

const (
	// aim lead keeps shots from burying into the ground at the target's feet
	projectileAimLead = 0.5
	// floor for the spawn-time arc length so progress never divides by zero
	curveMinDistance = 0.1
	directionEpsilon = 1e-6
)

// Projectile is a single in-flight damage carrier owned by the manager.
type Projectile struct {
	target Target
	pos    common.Vec3
	dir    common.Vec3

	flight      FlightStyle
	speed       float64
	hitRadius   float64
	maxLifetime float64
	lifetime    float64
	active      bool
	visual      string

	curveStart common.Vec3
	curveEnd   common.Vec3
	curveT     float64
	curveArc   float64
	curveDist  float64

	damage   float64
	sourceID int
}

func (p *Projectile) Active() bool           { return p != nil && p.active }
func (p *Projectile) Position() common.Vec3  { return p.pos }
func (p *Projectile) Direction() common.Vec3 { return p.dir }
func (p *Projectile) Visual() string         { return p.visual }
func (p *Projectile) Lifetime() float64      { return p.lifetime }
func (p *Projectile) Style() FlightStyle     { return p.flight }

// Update advances the projectile by delta seconds. It returns false when the
// projectile is done (hit, expired, or orphaned) and must be retired by the
// caller.
func (p *Projectile) Update(w *World, delta float64) bool {
	if p == nil || !p.active || !p.target.Valid() {
		return false
	}

	p.lifetime += delta
	if p.lifetime >= p.maxLifetime {
		p.dispose()
		return false
	}

	switch p.flight {
	case FlightCurve:
		p.curveT += (p.speed * delta) / p.curveDist
		if p.curveT > 1 {
			p.curveT = 1
		}
		t := p.curveT
		p.pos = common.LerpVec3(p.curveStart, p.curveEnd, t)
		p.pos.Y += math.Sin(t*math.Pi) * p.curveArc
		// facing follows the fixed aim point, not the live target
		if d := p.curveEnd.Sub(p.pos); d.LengthSq() > directionEpsilon {
			p.dir = d.Normalize()
		}
	default:
		aim := p.target.Position()
		aim.Y += projectileAimLead
		if d := aim.Sub(p.pos); d.LengthSq() > directionEpsilon {
			p.dir = d.Normalize()
		}
		p.pos = p.pos.Add(p.dir.Scale(p.speed * delta))
	}

	// hit test against where the target is now, so curve shots still land on
	// a target that moved since spawn
	if p.pos.Sub(p.target.Position()).LengthSq() <= p.hitRadius*p.hitRadius {
		amount := ApplyDefense(p.damage, behavior.CategoryDefault, false)
		p.target.ApplyDamage(w, amount, p.sourceID)
		p.dispose()
		return false
	}

	return true
}

func (p *Projectile) dispose() {
	if p == nil {
		return
	}
	p.active = false
	p.target = Target{}
}
