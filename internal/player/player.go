package player

import (
	"github.com/annel0/qeen-game/internal/entity"
	"github.com/annel0/qeen-game/internal/logging"
	"github.com/annel0/qeen-game/internal/physics"
	"github.com/annel0/qeen-game/internal/vec"
	"github.com/annel0/qeen-game/internal/wonqmode"
)

const (
	// Gravity гравитация игрока (пиксели/с²) — круче общей,
	// чтобы прыжок ощущался "упругим"
	Gravity = 2400

	// MoveSpeed горизонтальная скорость бега
	MoveSpeed = 768

	// JumpSpeed начальная скорость прыжка
	JumpSpeed = 1200

	// TerminalVelocity предел скорости падения
	TerminalVelocity = 1536

	// MaxHealth здоровье в барах; любой удар снимает ровно один бар
	MaxHealth = 10

	// PowerupDuration время действия усиления; повторный подбор
	// обновляет таймер заново
	PowerupDuration = 10.0

	invincibilityTime = 1.5
	knockbackUpSpeed  = 300
)

// PowerupKind представляет тип усиления игрока
type PowerupKind string

const (
	PowerupPogo    PowerupKind = "jumpupstiq"
	PowerupJetpack PowerupKind = "jettpaq"
)

// Input снимок ввода игрока за один тик
type Input struct {
	MoveAxis int // -1, 0, +1
	Jump     bool
	Shoot    bool
	Interact bool
	Dash     bool
	Down     bool
}

// World определяет, что игроку нужно от мира.
// Реализуется сценой; игрок никогда не трогает мир напрямую.
type World interface {
	// StepBody выполняет физический шаг тела с разрешением коллизий
	StepBody(b *physics.Body, dt float64)

	// SpawnPlayerShot создаёт снаряд игрока
	SpawnPlayerShot(ownerID uint64, from vec.Vec2, facing entity.Facing)

	// DropPowerup возвращает усиление в мир (ручное спешивание с пого)
	DropPowerup(kind PowerupKind, pos vec.Vec2)

	// BlastEnemies наносит урон по области (бас-удар пого)
	BlastEnemies(center vec.Vec2, radius, damage int)
}

// State представляет состояние конечного автомата игрока
type State interface {
	Name() string
	Enter(p *Player)
	Update(p *Player, w World, dt float64, in Input, mods wonqmode.Inputs) State
	Exit(p *Player)
}

// Player представляет персонажа игрока с конечным автоматом движения.
// Инвариант: currentState никогда не nil после создания; потеря
// усиления всегда возвращает в Normal.
type Player struct {
	Ent    *entity.Entity
	Health int
	Score  int

	// Активные усиления и их оставшееся время
	Powerups map[PowerupKind]float64

	Invincible      bool
	invincibleTimer float64

	currentState State
	states       map[string]State
}

// New создаёт игрока в указанной позиции в состоянии Normal
func New(pos vec.Vec2) *Player {
	p := &Player{
		Ent:      entity.NewEntity(entity.KindPlayer, pos, vec.Vec2{X: 24, Y: 48}),
		Health:   MaxHealth,
		Powerups: make(map[PowerupKind]float64),
	}
	p.Ent.Body.Friction = 0.3

	p.states = map[string]State{
		StateNormal:  &NormalState{},
		StatePogo:    &PogoState{},
		StateJetpack: &JetpackState{},
	}
	p.currentState = p.states[StateNormal]
	p.currentState.Enter(p)

	return p
}

// StateName возвращает имя текущего состояния
func (p *Player) StateName() string {
	return p.currentState.Name()
}

// State возвращает текущее состояние (для проверок инвариантов в тестах)
func (p *Player) State() State {
	return p.currentState
}

// ChangeState переводит автомат в именованное состояние.
// Неизвестное имя — ошибка программиста, возвращается громко.
func (p *Player) ChangeState(name string) error {
	next, ok := p.states[name]
	if !ok {
		return &entity.InvalidStateTransitionError{Machine: "player", Requested: name}
	}
	if next == p.currentState {
		return nil
	}

	p.currentState.Exit(p)
	p.currentState = next
	p.currentState.Enter(p)
	logging.Debug("Игрок перешёл в состояние %s", name)
	return nil
}

// Update выполняет один тик игрока: таймеры, текущее состояние, переходы
func (p *Player) Update(w World, dt float64, in Input, mods wonqmode.Inputs) {
	if p.Invincible {
		p.invincibleTimer -= dt
		if p.invincibleTimer <= 0 {
			p.Invincible = false
		}
	}

	p.tickPowerups(dt)

	next := p.currentState.Update(p, w, dt, in, mods)
	if next != nil && next != p.currentState {
		p.currentState.Exit(p)
		p.currentState = next
		p.currentState.Enter(p)
	}
}

// tickPowerups продвигает таймеры усилений; истёкшее усиление
// возвращает игрока в Normal
func (p *Player) tickPowerups(dt float64) {
	for kind, remaining := range p.Powerups {
		remaining -= dt
		if remaining <= 0 {
			delete(p.Powerups, kind)
			if p.StateName() == string(kind) {
				p.ChangeState(StateNormal)
			}
			continue
		}
		p.Powerups[kind] = remaining
	}
}

// CollectPowerup подбирает усиление: переход в соответствующее
// состояние, повторный подбор обновляет таймер
func (p *Player) CollectPowerup(kind PowerupKind) error {
	p.Powerups[kind] = PowerupDuration
	return p.ChangeState(string(kind))
}

// RemovePowerup снимает усиление без перехода (вызывается состояниями
// при ручном спешивании/исчерпании ресурса)
func (p *Player) RemovePowerup(kind PowerupKind) {
	delete(p.Powerups, kind)
}

// TakeDamage наносит игроку урон: ровно один бар за любой удар.
// Состояние движения НЕ меняется — усиление переживает урон;
// включается неуязвимость и отброс вверх.
// Возвращает true, если урон был применён.
func (p *Player) TakeDamage() bool {
	if p.Invincible || !p.IsAlive() {
		return false
	}

	p.Health--
	p.Invincible = true
	p.invincibleTimer = invincibilityTime
	p.Ent.Body.Velocity.Y = -knockbackUpSpeed

	logging.Debug("Игрок получил урон, здоровье %d/%d", p.Health, MaxHealth)

	if p.Health <= 0 {
		p.Die()
	}
	return true
}

// Die обрабатывает смерть: здоровье в 0, возврат в Normal
func (p *Player) Die() {
	p.Health = 0
	for kind := range p.Powerups {
		delete(p.Powerups, kind)
	}
	p.ChangeState(StateNormal)
}

// Reset возвращает игрока к начальному состоянию (рестарт уровня)
func (p *Player) Reset(pos vec.Vec2) {
	p.Health = MaxHealth
	p.Score = 0
	p.Invincible = false
	p.invincibleTimer = 0
	for kind := range p.Powerups {
		delete(p.Powerups, kind)
	}
	p.Ent.Body.Position = pos
	p.Ent.Body.Velocity = vec.Vec2{}
	p.Ent.Body.Acceleration = vec.Vec2{}
	p.Ent.Active = true
	p.ChangeState(StateNormal)
}

// IsAlive проверяет, жив ли игрок
func (p *Player) IsAlive() bool {
	return p.Health > 0
}

// AddScore начисляет очки
func (p *Player) AddScore(value int) {
	p.Score += value
}

// Position возвращает позицию игрока
func (p *Player) Position() vec.Vec2 {
	return p.Ent.Body.Position
}
