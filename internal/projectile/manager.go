package projectile

import (
	"github.com/annel0/qeen-game/internal/physics"
	"github.com/annel0/qeen-game/internal/vec"
)

// Target представляет сущность, в которую может попасть снаряд
type Target interface {
	// TargetID идентификатор цели (совпадает с Entity.ID)
	TargetID() uint64

	// TargetRect хитбокс цели
	TargetRect() physics.Rect

	// OnProjectileHit применяет урон; dirSign — знак горизонтального
	// направления снаряда (для отброса)
	OnProjectileHit(damage int, dirSign int)
}

// Manager владеет снарядами: продвижение, столкновения, уборка
type Manager struct {
	projectiles []*Projectile
	solid       func(tile vec.Vec2) bool
}

// NewManager создаёт менеджер; solid — функция твёрдости тайлов уровня
func NewManager(solid func(tile vec.Vec2) bool) *Manager {
	return &Manager{solid: solid}
}

// Spawn добавляет снаряд в коллекцию
func (m *Manager) Spawn(p *Projectile) {
	m.projectiles = append(m.projectiles, p)
}

// Update продвигает все снаряды и проверяет попадания.
// Тайлы блокируют всегда; цели: владелец и уже поражённые
// пропускаются, непробивающий снаряд гибнет на первом попадании.
func (m *Manager) Update(dt float64, targets []Target) {
	snapshot := make([]*Projectile, len(m.projectiles))
	copy(snapshot, m.projectiles)

	for _, p := range snapshot {
		if !p.Ent.Active {
			continue
		}

		p.Lifetime -= dt
		if p.Lifetime <= 0 {
			p.Ent.Destroy()
			continue
		}

		// Баллистические снаряды тянет вниз собственная гравитация
		if p.Gravity > 0 {
			p.Ent.Body.Acceleration.Y += p.Gravity
		}
		p.Ent.Body.Update(dt)

		if m.hitsTile(p.Ent.Rect()) {
			p.Ent.Destroy()
			continue
		}

		m.checkTargets(p, targets)
	}

	active := m.projectiles[:0]
	for _, p := range m.projectiles {
		if p.Ent.Active {
			active = append(active, p)
		}
	}
	m.projectiles = active
}

// hitsTile проверяет пересечение с твёрдыми тайлами
func (m *Manager) hitsTile(r physics.Rect) bool {
	minTile := vec.Vec2{X: r.X, Y: r.Y}.ToTileCoords(physics.TileSize)
	maxTile := vec.Vec2{X: r.X + r.W, Y: r.Y + r.H}.ToTileCoords(physics.TileSize)

	for ty := minTile.Y; ty <= maxTile.Y; ty++ {
		for tx := minTile.X; tx <= maxTile.X; tx++ {
			if m.solid(vec.Vec2{X: tx, Y: ty}) {
				return true
			}
		}
	}
	return false
}

// checkTargets проверяет попадания по целям
func (m *Manager) checkTargets(p *Projectile, targets []Target) {
	rect := p.Ent.Rect()

	for _, target := range targets {
		if target.TargetID() == p.OwnerID || p.HasHit(target.TargetID()) {
			continue
		}
		if !rect.Intersects(target.TargetRect()) {
			continue
		}

		target.OnProjectileHit(p.Damage, p.Ent.Facing.Sign())
		p.markHit(target.TargetID())

		if !p.Penetrating {
			p.Ent.Destroy()
			return
		}
	}
}

// Projectiles возвращает активные снаряды
func (m *Manager) Projectiles() []*Projectile {
	return m.projectiles
}

// Count возвращает число снарядов
func (m *Manager) Count() int {
	return len(m.projectiles)
}

// Clear удаляет все снаряды (рестарт уровня)
func (m *Manager) Clear() {
	m.projectiles = nil
}
