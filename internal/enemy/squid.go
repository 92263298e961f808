package enemy

import (
	"math"

	"github.com/annel0/qeen-game/internal/vec"
)

const (
	squidBobAmplitude  = 8.0
	squidBobSpeed      = 2.0
	squidPatrolWidth   = 100
	squidPatrolHeight  = 50.0
	squidSwoopDuration = 0.5
	squidSwoopCooldown = 2.0
	squidHoverHeight   = 32
	squidPatrolSpeed   = 70
)

// HoverSquid — парящий кальмар: постоянный вертикальный бобинг,
// патруль "восьмёркой" вокруг спавна, атака — пикирование с
// интерполяцией ease-in-out в ЗАХВАЧЕННУЮ позицию игрока
type HoverSquid struct {
	swooping      bool
	swoopTimer    float64
	swoopStart    vec.Vec2
	swoopTarget   vec.Vec2
	swoopCooldown float64
}

// NewHoverSquid создаёт кальмара; края "восьмёрки" служат точками
// патруля, чтобы каркас стартовал в Patrol
func NewHoverSquid(pos vec.Vec2) *Enemy {
	points := []vec.Vec2{
		{X: pos.X - squidPatrolWidth, Y: pos.Y},
		{X: pos.X + squidPatrolWidth, Y: pos.Y},
	}
	return newEnemy(&HoverSquid{}, pos, vec.Vec2{X: 30, Y: 26}, points)
}

func (s *HoverSquid) Params() Params {
	return Params{
		Kind:           "hover_squid",
		MaxHealth:      40,
		Damage:         15,
		Speed:          squidPatrolSpeed,
		DetectionRange: 240,
		AttackRange:    160,
		AttackCooldown: squidSwoopCooldown,
		Flying:         true,
	}
}

// Tick: бобинг работает всегда, кроме пикирования
func (s *HoverSquid) Tick(e *Enemy, w World, dt float64) {
	s.swoopCooldown -= dt
	if s.swooping {
		return
	}

	bob := math.Sin(e.Age*squidBobSpeed*2*math.Pi) * squidBobAmplitude
	e.Ent.Body.Position.Y += int(bob) - int(math.Sin((e.Age-dt)*squidBobSpeed*2*math.Pi)*squidBobAmplitude)
}

// Patrol: горизонтальная осцилляция ±100 с вертикальной синусоидой ±50 —
// траектория "восьмёрки" вокруг точки спавна
func (s *HoverSquid) Patrol(e *Enemy, w World, dt float64) {
	e.Ent.Body.Velocity = vec.Vec2{}

	phase := e.Age * squidBobSpeed
	e.Ent.Body.Position = vec.Vec2{
		X: e.SpawnPos.X + int(float64(squidPatrolWidth)*math.Sin(phase)),
		Y: e.SpawnPos.Y + int(squidPatrolHeight*math.Sin(2*phase)),
	}
}

// Chase: держится над игроком на высоте парения
func (s *HoverSquid) Chase(e *Enemy, w World, dt float64, playerPos vec.Vec2) {
	hover := vec.Vec2{X: playerPos.X, Y: playerPos.Y - squidHoverHeight*2}
	e.moveToward(hover, squidPatrolSpeed)
	if e.Ent.Center().Y < hover.Y {
		e.Ent.Body.Velocity.Y = squidPatrolSpeed / 2
	} else {
		e.Ent.Body.Velocity.Y = -squidPatrolSpeed / 2
	}
}

// Attack: пикирование по ease-in-out кубику t²(3−2t) в позицию,
// захваченную в момент начала — без подруливания по пути
func (s *HoverSquid) Attack(e *Enemy, w World, dt float64, playerPos vec.Vec2) {
	if s.swooping {
		s.swoopTimer += dt
		t := s.swoopTimer / squidSwoopDuration
		if t >= 1.0 {
			t = 1.0
			s.swooping = false
			s.swoopCooldown = squidSwoopCooldown
		}
		ease := t * t * (3.0 - 2.0*t)
		e.Ent.Body.Position = vec.Vec2{
			X: s.swoopStart.X + int(float64(s.swoopTarget.X-s.swoopStart.X)*ease),
			Y: s.swoopStart.Y + int(float64(s.swoopTarget.Y-s.swoopStart.Y)*ease),
		}
		return
	}

	e.Ent.Body.Velocity = vec.Vec2{}
	e.faceToward(playerPos)

	if s.swoopCooldown <= 0 {
		s.swooping = true
		s.swoopTimer = 0
		s.swoopStart = e.Ent.Body.Position
		s.swoopTarget = vec.Vec2{
			X: playerPos.X - e.Ent.Body.Size.X/2,
			Y: playerPos.Y - e.Ent.Body.Size.Y/2,
		}
	}
}

// HurtExit: кальмар разворачивается и возвращается к патрулю
func (s *HoverSquid) HurtExit(e *Enemy) StateKind {
	e.Ent.Facing = e.Ent.Facing.Flip()
	return StatePatrol
}

// OnDamaged: урон срывает пикирование
func (s *HoverSquid) OnDamaged(e *Enemy) {
	if s.swooping {
		s.swooping = false
		s.swoopCooldown = squidSwoopCooldown
	}
}

var (
	_ Ticker            = (*HoverSquid)(nil)
	_ HurtExiter        = (*HoverSquid)(nil)
	_ DamageInterrupter = (*HoverSquid)(nil)
)
