package player

import (
	"github.com/annel0/qeen-game/internal/entity"
	"github.com/annel0/qeen-game/internal/vec"
	"github.com/annel0/qeen-game/internal/wonqmode"
)

const (
	pogoBounceSpeed     = 350
	pogoSpecialFactor   = 1.5
	pogoBounceLockout   = 0.3
	pogoHorizontalBoost = 1.5

	bassBlastCooldown = 2.0
	bassBlastSlam     = 500
	bassBlastRadius   = 100
	bassBlastDamage   = 20
)

// PogoState — езда на пого-палке: автоматический отскок от земли,
// одноразовый усиленный отскок и бас-удар вниз по области
type PogoState struct {
	bounceLockout float64
	blastCooldown float64
	specialReady  bool
	wasGrounded   bool
	jumpHeld      bool
}

func (s *PogoState) Name() string { return StatePogo }

func (s *PogoState) Enter(p *Player) {
	s.bounceLockout = 0
	s.blastCooldown = 0
	s.specialReady = true
	s.wasGrounded = p.Ent.Body.Grounded
	s.jumpHeld = false
}

func (s *PogoState) Update(p *Player, w World, dt float64, in Input, mods wonqmode.Inputs) State {
	s.bounceLockout -= dt
	s.blastCooldown -= dt

	body := &p.Ent.Body

	// Ручное спешивание: усиление возвращается в мир у ног игрока
	if in.Interact {
		p.RemovePowerup(PowerupPogo)
		w.DropPowerup(PowerupPogo, vec.Vec2{X: body.Position.X, Y: body.Position.Y + body.Size.Y})
		return p.states[StateNormal]
	}

	// Управление в воздухе усилено — пого требует манёвра
	if mods.MoveAxis != 0 {
		body.Velocity.X = mods.MoveAxis * int(MoveSpeed*pogoHorizontalBoost*mods.SpeedScale)
		if mods.MoveAxis < 0 {
			p.Ent.Facing = entity.FacingLeft
		} else {
			p.Ent.Facing = entity.FacingRight
		}
	}

	// Усиленный отскок одноразовый: тратится по свежему нажатию
	// прыжка, восстанавливается только в момент приземления.
	// Удержание кнопки через несколько приземлений даёт усиление
	// лишь на первом
	landed := body.Grounded && !s.wasGrounded
	s.wasGrounded = body.Grounded
	jumpPressed := in.Jump && !s.jumpHeld
	s.jumpHeld = in.Jump

	if body.Grounded {
		if landed {
			s.specialReady = true
		}

		if s.bounceLockout <= 0 {
			bounce := pogoBounceSpeed
			if jumpPressed && s.specialReady {
				bounce = int(float64(pogoBounceSpeed) * pogoSpecialFactor)
				s.specialReady = false
			}
			body.Velocity.Y = -bounce
			body.Grounded = false
			s.bounceLockout = pogoBounceLockout
		}
	}

	// Бас-удар: только в падении и не чаще раза в 2 секунды
	if in.Down && body.Velocity.Y > 0 && s.blastCooldown <= 0 {
		body.Velocity.Y = bassBlastSlam
		w.BlastEnemies(p.Ent.Center(), bassBlastRadius, bassBlastDamage)
		s.blastCooldown = bassBlastCooldown
	}

	// На пого гравитация действует всегда, даже у земли
	body.Acceleration.Y += int(Gravity * mods.GravityScale)

	clampFall(body, TerminalVelocity)
	w.StepBody(body, dt)

	return s
}

func (s *PogoState) Exit(p *Player) {}
