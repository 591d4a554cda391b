package sim

import "log"

// Projectile defaults. Curve shots fly slower than direct ones so the arc
// reads on screen.
const (
	defaultMaxProjectiles = 80
	directProjectileSpeed = 18.0
	curveProjectileSpeed  = 12.0
	defaultHitRadius      = 0.6
	defaultMaxLifetime    = 4.0
	defaultCurveArcHeight = 2.0
	spawnMuzzleLift       = 0.3
)

// SpawnOverrides tweaks a single spawn. Zero fields keep the defaults derived
// from the enemy.
type SpawnOverrides struct {
	Speed       float64
	HitRadius   float64
	MaxLifetime float64
	ArcHeight   float64
	Damage      float64
}

// ProjectileManager owns every live projectile. It enforces a hard cap on the
// live count: spawns past the cap are dropped silently, which is the intended
// backpressure, not an error.
type ProjectileManager struct {
	projectiles []*Projectile
	max         int
}

func NewProjectileManager(max int) *ProjectileManager {
	if max <= 0 {
		max = defaultMaxProjectiles
	}
	return &ProjectileManager{max: max}
}

// Count returns the live projectile count.
func (m *ProjectileManager) Count() int {
	if m == nil {
		return 0
	}
	return len(m.projectiles)
}

// Live returns the live projectiles; the slice is owned by the manager.
func (m *ProjectileManager) Live() []*Projectile {
	if m == nil {
		return nil
	}
	return m.projectiles
}

// Spawn launches a projectile from the enemy toward its resolved target.
// Returns nil when the enemy has no target or the manager is at capacity.
func (m *ProjectileManager) Spawn(e *Enemy, ov *SpawnOverrides) *Projectile {
	if m == nil || e == nil {
		return nil
	}
	if !e.target.Valid() {
		log.Printf("projectile: enemy %d fired with no target", e.id)
		return nil
	}
	if len(m.projectiles) >= m.max {
		return nil
	}

	src := e.pos
	src.Y += e.heightOffset + spawnMuzzleLift

	p := &Projectile{
		target:      e.target,
		pos:         src,
		flight:      e.flight,
		hitRadius:   defaultHitRadius,
		maxLifetime: defaultMaxLifetime,
		active:      true,
		visual:      e.projectileType,
		damage:      e.damage,
		sourceID:    e.id,
	}
	if p.flight == FlightCurve {
		p.speed = curveProjectileSpeed
	} else {
		p.speed = directProjectileSpeed
	}

	aim := e.target.Position()
	aim.Y += projectileAimLead
	switch p.flight {
	case FlightCurve:
		p.curveStart = src
		p.curveEnd = aim
		p.curveDist = aim.Sub(src).Length()
		if p.curveDist < curveMinDistance {
			p.curveDist = curveMinDistance
		}
		p.curveArc = defaultCurveArcHeight
		p.dir = aim.Sub(src).Normalize()
	default:
		p.dir = aim.Sub(src).Normalize()
	}

	if ov != nil {
		if ov.Speed > 0 {
			p.speed = ov.Speed
		}
		if ov.HitRadius > 0 {
			p.hitRadius = ov.HitRadius
		}
		if ov.MaxLifetime > 0 {
			p.maxLifetime = ov.MaxLifetime
		}
		if ov.ArcHeight > 0 {
			p.curveArc = ov.ArcHeight
		}
		if ov.Damage > 0 {
			p.damage = ov.Damage
		}
	}

	m.projectiles = append(m.projectiles, p)
	return p
}

// Update advances every live projectile and retires the finished ones.
// Iteration runs in reverse index order so swap-removal never skips an entry.
func (m *ProjectileManager) Update(w *World, delta float64) {
	if m == nil {
		return
	}
	for i := len(m.projectiles) - 1; i >= 0; i-- {
		if !m.projectiles[i].Update(w, delta) {
			m.remove(i)
		}
	}
}

// Clear disposes every projectile, e.g. on level change.
func (m *ProjectileManager) Clear() {
	if m == nil {
		return
	}
	for _, p := range m.projectiles {
		p.dispose()
	}
	m.projectiles = m.projectiles[:0]
}

func (m *ProjectileManager) remove(i int) {
	last := len(m.projectiles) - 1
	m.projectiles[i].dispose()
	m.projectiles[i] = m.projectiles[last]
	m.projectiles[last] = nil
	m.projectiles = m.projectiles[:last]
}
