package player

import (
	"github.com/annel0/qeen-game/internal/entity"
	"github.com/annel0/qeen-game/internal/physics"
	"github.com/annel0/qeen-game/internal/vec"
	"github.com/annel0/qeen-game/internal/wonqmode"
)

// Имена состояний автомата игрока
const (
	StateNormal  = "normal"
	StatePogo    = string(PowerupPogo)
	StateJetpack = string(PowerupJetpack)
)

const (
	jumpCooldownTime  = 0.2
	shootCooldownTime = 0.5

	// Асимметричное затухание для "резкой" остановки:
	// на земле без ввода скорость гасится сильнее, чем в воздухе
	groundIdleDecay = 0.7
	airIdleDecay    = 0.5

	// Ниже этого порога остаточная скорость обнуляется точно в 0
	idleStopThreshold = 10
)

// NormalState — обычное движение: бег, одиночный прыжок с земли,
// стрельба с перезарядкой
type NormalState struct {
	jumpCooldown  float64
	shootCooldown float64
}

func (s *NormalState) Name() string { return StateNormal }

func (s *NormalState) Enter(p *Player) {
	s.jumpCooldown = 0
	s.shootCooldown = 0
}

func (s *NormalState) Update(p *Player, w World, dt float64, in Input, mods wonqmode.Inputs) State {
	s.jumpCooldown -= dt
	s.shootCooldown -= dt

	body := &p.Ent.Body

	// Горизонтальное движение (ось уже пропущена через режимы — зеркало и т.п.)
	if mods.MoveAxis != 0 {
		body.Velocity.X = mods.MoveAxis * int(MoveSpeed*mods.SpeedScale)
		if mods.MoveAxis < 0 {
			p.Ent.Facing = entity.FacingLeft
		} else {
			p.Ent.Facing = entity.FacingRight
		}
	} else {
		decay := airIdleDecay
		if body.Grounded {
			decay = groundIdleDecay
		}
		vx := int(float64(body.Velocity.X) * decay)
		if vx > -idleStopThreshold && vx < idleStopThreshold {
			vx = 0
		}
		body.Velocity.X = vx
	}

	// Одиночный прыжок только с земли
	if in.Jump && body.Grounded && s.jumpCooldown <= 0 {
		body.Velocity.Y = -JumpSpeed
		body.Grounded = false
		s.jumpCooldown = jumpCooldownTime
	}

	body.ApplyGravity(int(Gravity * mods.GravityScale))

	if in.Shoot && s.shootCooldown <= 0 {
		w.SpawnPlayerShot(p.Ent.ID, muzzlePosition(p), p.Ent.Facing)
		s.shootCooldown = shootCooldownTime
	}

	clampFall(body, TerminalVelocity)
	w.StepBody(body, dt)

	return s
}

func (s *NormalState) Exit(p *Player) {}

// muzzlePosition возвращает точку вылета снаряда на уровне груди
// со стороны взгляда
func muzzlePosition(p *Player) vec.Vec2 {
	r := p.Ent.Rect()
	x := r.X
	if p.Ent.Facing == entity.FacingRight {
		x = r.X + r.W
	}
	return vec.Vec2{X: x, Y: r.Y + r.H/3}
}

// clampFall ограничивает только скорость падения (вверх не режем)
func clampFall(body *physics.Body, terminal int) {
	if body.Velocity.Y > terminal {
		body.Velocity.Y = terminal
	}
}
