package enemy

import (
	"math"

	"github.com/annel0/qeen-game/internal/vec"
)

const (
	walqerPatrolSpeed = 60
	walqerChaseSpeed  = 70
	walqerShotSpeed   = 300

	// Конус зрения ±30° от горизонтали взгляда — уже базового правила
	walqerVisionCone = math.Pi / 6
)

// WalqerBot — шагающий патрульный: ходит между двумя смещениями от
// точки спавна, видит в узком переднем конусе, в атаке стреляет
// прямым снарядом по перезарядке
type WalqerBot struct{}

// NewWalqerBot создаёт шагохода с патрулём spawn±patrolRange
func NewWalqerBot(pos vec.Vec2, patrolRange int) *Enemy {
	points := []vec.Vec2{
		{X: pos.X - patrolRange, Y: pos.Y},
		{X: pos.X + patrolRange, Y: pos.Y},
	}
	return newEnemy(&WalqerBot{}, pos, vec.Vec2{X: 28, Y: 32}, points)
}

func (b *WalqerBot) Params() Params {
	return Params{
		Kind:           "walqer_bot",
		MaxHealth:      50,
		Damage:         10,
		Speed:          80,
		DetectionRange: 200,
		AttackRange:    150,
		AttackCooldown: 1.5,
	}
}

func (b *WalqerBot) Patrol(e *Enemy, w World, dt float64) {
	e.patrolStep(walqerPatrolSpeed)
}

func (b *WalqerBot) Chase(e *Enemy, w World, dt float64, playerPos vec.Vec2) {
	e.moveToward(playerPos, walqerChaseSpeed)
}

func (b *WalqerBot) Attack(e *Enemy, w World, dt float64, playerPos vec.Vec2) {
	e.Ent.Body.Velocity.X = 0
	e.faceToward(playerPos)

	if e.AttackCooldown <= 0 {
		dir := vec.Vec2Float{X: float64(e.Ent.Facing.Sign()), Y: 0}
		w.SpawnEnemyShot(Shot{
			OwnerID: e.Ent.ID,
			From:    e.Ent.Center(),
			Dir:     dir,
			Speed:   walqerShotSpeed,
			Damage:  b.Params().Damage,
		})
		e.AttackCooldown = b.Params().AttackCooldown
	}
}

// CanDetect сужает обнаружение до конуса ±30° вперёд
func (b *WalqerBot) CanDetect(e *Enemy, playerPos vec.Vec2) bool {
	center := e.Ent.Center()
	dx := float64(playerPos.X-center.X) * float64(e.Ent.Facing.Sign())
	dy := float64(playerPos.Y - center.Y)
	if dx <= 0 {
		return false
	}
	return math.Abs(math.Atan2(dy, dx)) <= walqerVisionCone
}

// HurtExit после оглушения шагоход разворачивается и продолжает патруль
func (b *WalqerBot) HurtExit(e *Enemy) StateKind {
	e.Ent.Facing = e.Ent.Facing.Flip()
	return StatePatrol
}

var _ DetectionGate = (*WalqerBot)(nil)
var _ HurtExiter = (*WalqerBot)(nil)
