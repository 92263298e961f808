package enemy

import (
	"github.com/annel0/qeen-game/internal/vec"
)

const (
	jumperInterval        = 2.0
	jumperPrepareTime     = 0.3
	jumperImpulse         = 350
	jumperLandingCooldown = 0.5
)

// EventEnemyExploded публикуется при гибели дрона-прыгуна
const EventEnemyExploded = "enemy_exploded"

// JumperDrqne — прыгающий дрон: горизонтальную погоню игнорирует
// полностью, по расписанию делает замах и один вертикальный импульс,
// при гибели взрывается
type JumperDrqne struct {
	preparing    bool
	prepareTimer float64
	jumpTimer    float64
	landCooldown float64
	wasAirborne  bool
}

// NewJumperDrqne создаёт дрона в указанной позиции
func NewJumperDrqne(pos vec.Vec2) *Enemy {
	return newEnemy(&JumperDrqne{jumpTimer: jumperInterval}, pos, vec.Vec2{X: 24, Y: 24}, nil)
}

func (j *JumperDrqne) Params() Params {
	return Params{
		Kind:           "jumper_drqne",
		MaxHealth:      60,
		Damage:         15,
		Speed:          0,
		DetectionRange: 180,
		AttackRange:    50,
		AttackCooldown: jumperInterval,
	}
}

// Tick ведёт цикл прыжка независимо от состояния каркаса
func (j *JumperDrqne) Tick(e *Enemy, w World, dt float64) {
	body := &e.Ent.Body

	// Фиксация приземления запускает паузу перед следующим замахом
	if j.wasAirborne && body.Grounded {
		j.landCooldown = jumperLandingCooldown
	}
	j.wasAirborne = !body.Grounded

	if j.preparing {
		j.prepareTimer -= dt
		if j.prepareTimer <= 0 {
			j.preparing = false
			body.Velocity.Y = -jumperImpulse
			body.Grounded = false
			j.jumpTimer = jumperInterval
		}
		return
	}

	if !body.Grounded {
		return
	}

	j.landCooldown -= dt
	if j.landCooldown > 0 {
		return
	}

	j.jumpTimer -= dt
	if j.jumpTimer <= 0 {
		j.preparing = true
		j.prepareTimer = jumperPrepareTime
	}
}

// Горизонтального движения у дрона нет ни в одном состоянии
func (j *JumperDrqne) Patrol(e *Enemy, w World, dt float64) { e.Ent.Body.Velocity.X = 0 }

func (j *JumperDrqne) Chase(e *Enemy, w World, dt float64, playerPos vec.Vec2) {
	e.Ent.Body.Velocity.X = 0
}

func (j *JumperDrqne) Attack(e *Enemy, w World, dt float64, playerPos vec.Vec2) {
	e.Ent.Body.Velocity.X = 0
}

// OnDeath делегирует взрыв внешнему слою эффектов через событие
func (j *JumperDrqne) OnDeath(e *Enemy, w World) {
	w.Notify(EventEnemyExploded, e.Ent.Center())
}

var _ Ticker = (*JumperDrqne)(nil)
var _ DeathHandler = (*JumperDrqne)(nil)
