package enemy

import (
	"github.com/annel0/qeen-game/internal/vec"
)

const (
	beaverPatrolSpeed   = 60
	beaverPatrolRange   = 60
	beaverWindupTime    = 0.5
	beaverThrowCooldown = 2.0
	beaverShotSpeed     = 200
	beaverShotGravity   = 300
	beaverShotDamage    = 15
)

// BriqBeaver — метатель кирпичей: перед броском делает замах,
// бросает по дуге в ПОСЛЕДНЮЮ известную позицию игрока (не самонаведение);
// урон во время замаха отменяет бросок
type BriqBeaver struct {
	windingUp   bool
	windupTimer float64
}

// NewBriqBeaver создаёт метателя с коротким патрулём вокруг спавна
func NewBriqBeaver(pos vec.Vec2) *Enemy {
	points := []vec.Vec2{
		{X: pos.X - beaverPatrolRange, Y: pos.Y},
		{X: pos.X + beaverPatrolRange, Y: pos.Y},
	}
	return newEnemy(&BriqBeaver{}, pos, vec.Vec2{X: 32, Y: 28}, points)
}

func (b *BriqBeaver) Params() Params {
	return Params{
		Kind:           "briq_beaver",
		MaxHealth:      80,
		Damage:         20,
		Speed:          beaverPatrolSpeed,
		DetectionRange: 220,
		AttackRange:    200,
		AttackCooldown: beaverThrowCooldown,
	}
}

func (b *BriqBeaver) Patrol(e *Enemy, w World, dt float64) {
	e.patrolStep(beaverPatrolSpeed)
}

func (b *BriqBeaver) Chase(e *Enemy, w World, dt float64, playerPos vec.Vec2) {
	e.moveToward(playerPos, beaverPatrolSpeed)
}

// Attack: замах → один бросок по дуге в запомненную позицию
func (b *BriqBeaver) Attack(e *Enemy, w World, dt float64, playerPos vec.Vec2) {
	e.Ent.Body.Velocity.X = 0
	e.faceToward(playerPos)

	if b.windingUp {
		b.windupTimer -= dt
		if b.windupTimer <= 0 {
			b.windingUp = false
			b.throw(e, w)
			e.AttackCooldown = beaverThrowCooldown
		}
		return
	}

	if e.AttackCooldown <= 0 {
		b.windingUp = true
		b.windupTimer = beaverWindupTime
	}
}

// throw бросает кирпич в последнюю известную позицию игрока
func (b *BriqBeaver) throw(e *Enemy, w World) {
	if !e.LastKnownSet {
		return
	}

	center := e.Ent.Center()
	to := vec.Vec2Float{
		X: float64(e.LastKnown.X - center.X),
		Y: float64(e.LastKnown.Y-center.Y) - 40, // бросок с навесом
	}
	w.SpawnEnemyShot(Shot{
		OwnerID: e.Ent.ID,
		From:    center,
		Dir:     to.Normalized(),
		Speed:   beaverShotSpeed,
		Damage:  beaverShotDamage,
		Gravity: beaverShotGravity,
	})
}

// OnDamaged: урон в замахе срывает бросок
func (b *BriqBeaver) OnDamaged(e *Enemy) {
	if b.windingUp {
		b.windingUp = false
		b.windupTimer = 0
		e.AttackCooldown = beaverThrowCooldown
	}
}

var _ DamageInterrupter = (*BriqBeaver)(nil)
