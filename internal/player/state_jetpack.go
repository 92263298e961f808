package player

import (
	"github.com/annel0/qeen-game/internal/entity"
	"github.com/annel0/qeen-game/internal/wonqmode"
)

const (
	jetpackDashSpeed     = 600
	jetpackDashDuration  = 0.3
	jetpackDashCooldown  = 1.0
	jetpackFuelMax       = 100.0
	jetpackFuelConsume   = 20.0
	jetpackFuelRecharge  = 10.0
	jetpackRechargeDelay = 1.0

	// Рывок отклоняется, если топлива меньше 10% от максимума
	jetpackFuelMinFrac = 0.1
)

// JetpackState — реактивный ранец: горизонтальный рывок фиксированной
// длительности на топливе, восстановление топлива с задержкой
type JetpackState struct {
	Fuel float64

	dashing       bool
	dashTimer     float64
	dashDir       int
	dashCooldown  float64
	rechargeDelay float64
}

func (s *JetpackState) Name() string { return StateJetpack }

func (s *JetpackState) Enter(p *Player) {
	s.Fuel = jetpackFuelMax
	s.dashing = false
	s.dashTimer = 0
	s.dashCooldown = 0
	s.rechargeDelay = 0
}

func (s *JetpackState) Update(p *Player, w World, dt float64, in Input, mods wonqmode.Inputs) State {
	s.dashCooldown -= dt
	s.rechargeDelay -= dt

	body := &p.Ent.Body

	// Запуск рывка проверяется до физики, чтобы скорость рывка
	// действовала уже в текущем тике
	if !s.dashing && in.Dash && s.canDash() {
		s.dashing = true
		s.dashTimer = jetpackDashDuration
		s.dashDir = mods.MoveAxis
		if s.dashDir == 0 {
			s.dashDir = p.Ent.Facing.Sign()
		}
	}

	if s.dashing {
		s.dashTimer -= dt
		s.Fuel -= jetpackFuelConsume * dt

		// Во время рывка гравитация отключена: строго горизонтальный бросок
		body.Velocity.X = s.dashDir * int(jetpackDashSpeed*mods.SpeedScale)
		body.Velocity.Y = 0

		if s.dashTimer <= 0 || s.Fuel <= 0 {
			s.dashing = false
			s.dashCooldown = jetpackDashCooldown
			s.rechargeDelay = jetpackRechargeDelay
		}
	} else {
		if mods.MoveAxis != 0 {
			body.Velocity.X = mods.MoveAxis * int(MoveSpeed*mods.SpeedScale)
			if mods.MoveAxis < 0 {
				p.Ent.Facing = entity.FacingLeft
			} else {
				p.Ent.Facing = entity.FacingRight
			}
		} else {
			vx := int(float64(body.Velocity.X) * airIdleDecay)
			if vx > -idleStopThreshold && vx < idleStopThreshold {
				vx = 0
			}
			body.Velocity.X = vx
		}

		if in.Jump && body.Grounded {
			body.Velocity.Y = -JumpSpeed
			body.Grounded = false
		}

		// Исчерпание топлива вне рывка снимает усиление
		if s.Fuel <= 0 {
			p.RemovePowerup(PowerupJetpack)
			return p.states[StateNormal]
		}

		// Топливо восстанавливается только после паузы и не в рывке
		if s.rechargeDelay <= 0 && s.Fuel < jetpackFuelMax {
			s.Fuel += jetpackFuelRecharge * dt
			if s.Fuel > jetpackFuelMax {
				s.Fuel = jetpackFuelMax
			}
		}

		body.ApplyGravity(int(Gravity * mods.GravityScale))
	}

	clampFall(body, TerminalVelocity)
	w.StepBody(body, dt)

	return s
}

func (s *JetpackState) Exit(p *Player) {}

// canDash проверяет доступность рывка: не в рывке, перезарядка прошла,
// топлива не меньше 10% от максимума (ровно 10% ещё хватает)
func (s *JetpackState) canDash() bool {
	return !s.dashing && s.dashCooldown <= 0 && s.Fuel >= jetpackFuelMax*jetpackFuelMinFrac
}
