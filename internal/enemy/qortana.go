package enemy

import (
	"math"

	"github.com/annel0/qeen-game/internal/vec"
)

const (
	qortanaSpeedFactor  = 1.2
	qortanaBaseSpeed    = 80
	qortanaZigzagAmp    = 50.0
	qortanaZigzagFreq   = 2.0
	qortanaStandoffFrac = 0.7
	qortanaZapSpeed     = 400
	qortanaZapDamage    = 2
)

// QortanaHalo — летающий преследователь: идёт на игрока с синусоидальным
// зигзагом поперёк курса, держит дистанцию 70% радиуса атаки и бьёт
// усиленным "зарядом" по перезарядке
type QortanaHalo struct{}

// NewQortanaHalo создаёт летающего врага
func NewQortanaHalo(pos vec.Vec2) *Enemy {
	return newEnemy(&QortanaHalo{}, pos, vec.Vec2{X: 28, Y: 28}, nil)
}

func (q *QortanaHalo) Params() Params {
	return Params{
		Kind:           "qortana_halo",
		MaxHealth:      80,
		Damage:         qortanaZapDamage,
		Speed:          int(qortanaBaseSpeed * qortanaSpeedFactor),
		DetectionRange: 300,
		AttackRange:    150,
		AttackCooldown: 2.0,
		Flying:         true,
	}
}

func (q *QortanaHalo) Patrol(e *Enemy, w World, dt float64) {
	e.Ent.Body.Velocity = vec.Vec2{}
}

// Chase: курс на игрока плюс перпендикулярная синусоида; у рубежа
// удержания дистанции — отход
func (q *QortanaHalo) Chase(e *Enemy, w World, dt float64, playerPos vec.Vec2) {
	params := q.Params()
	center := e.Ent.Center()

	to := vec.Vec2Float{
		X: float64(playerPos.X - center.X),
		Y: float64(playerPos.Y - center.Y),
	}
	dist := to.Length()
	dir := to.Normalized()

	standoff := params.AttackRange * qortanaStandoffFrac
	if dist < standoff {
		dir = dir.Mul(-1) // слишком близко — отлетаем
	}

	// Перпендикуляр к курсу, качающийся с частотой 2 Гц
	perp := vec.Vec2Float{X: -dir.Y, Y: dir.X}
	wobble := math.Sin(e.Age*qortanaZigzagFreq*2*math.Pi) * qortanaZigzagAmp

	velocity := dir.Mul(float64(params.Speed)).Add(perp.Mul(wobble))
	e.Ent.Body.Velocity = velocity.ToVec2()
	e.faceToward(playerPos)
}

// Attack: удержание дистанции и заряд каждые 2 секунды
func (q *QortanaHalo) Attack(e *Enemy, w World, dt float64, playerPos vec.Vec2) {
	params := q.Params()
	center := e.Ent.Center()
	dist := center.DistanceTo(playerPos)

	standoff := params.AttackRange * qortanaStandoffFrac
	switch {
	case dist < standoff-waypointThreshold:
		e.moveToward(vec.Vec2{X: 2*center.X - playerPos.X, Y: center.Y}, params.Speed)
	case dist > standoff+waypointThreshold:
		e.moveToward(playerPos, params.Speed)
	default:
		e.Ent.Body.Velocity.X = 0
	}
	e.faceToward(playerPos)

	if e.AttackCooldown <= 0 {
		to := vec.Vec2Float{
			X: float64(playerPos.X - center.X),
			Y: float64(playerPos.Y - center.Y),
		}
		w.SpawnEnemyShot(Shot{
			OwnerID: e.Ent.ID,
			From:    center,
			Dir:     to.Normalized(),
			Speed:   qortanaZapSpeed,
			Damage:  qortanaZapDamage,
		})
		e.AttackCooldown = params.AttackCooldown
	}
}
