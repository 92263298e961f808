package enemy

import (
	"github.com/annel0/qeen-game/internal/entity"
	"github.com/annel0/qeen-game/internal/logging"
	"github.com/annel0/qeen-game/internal/physics"
	"github.com/annel0/qeen-game/internal/vec"
)

// StateKind представляет состояние автомата врага
type StateKind string

const (
	StateIdle   StateKind = "idle"
	StatePatrol StateKind = "patrol"
	StateChase  StateKind = "chase"
	StateAttack StateKind = "attack"
	StateHurt   StateKind = "hurt"
	StateDead   StateKind = "dead"
)

const (
	// hurtStunTime длительность оглушения после урона
	hurtStunTime = 1.0

	// deathLingerTime задержка перед удалением мёртвого врага
	deathLingerTime = 1.0

	// knockbackDecay затухание отброса за тик оглушения
	knockbackDecay = 0.9

	// waypointThreshold дистанция "достижения" точки патруля
	waypointThreshold = 5.0
)

// World определяет, что врагам нужно от мира
type World interface {
	// StepBody выполняет физический шаг тела с коллизиями
	StepBody(b *physics.Body, dt float64)

	// PlayerPosition возвращает позицию игрока; false — игрок ещё
	// не заспавнен (нормальное переходное состояние, не ошибка)
	PlayerPosition() (vec.Vec2, bool)

	// SpawnEnemyShot создаёт вражеский снаряд
	SpawnEnemyShot(shot Shot)

	// Notify сообщает миру об игровом событии (взрыв, реплика…)
	Notify(event string, at vec.Vec2)
}

// Shot описывает вражеский снаряд
type Shot struct {
	OwnerID uint64
	From    vec.Vec2
	Dir     vec.Vec2Float
	Speed   int
	Damage  int
	Gravity int // 0 — линейный полёт, >0 — баллистическая дуга
}

// Params базовые параметры архетипа
type Params struct {
	Kind           string
	MaxHealth      int
	Damage         int
	Speed          int // пиксели/с
	DetectionRange float64
	AttackRange    float64
	AttackCooldown float64
	Flying         bool
}

// Pattern определяет поведение архетипа ВНУТРИ состояний.
// Легальность переходов задаёт общий каркас, паттерны её не меняют.
type Pattern interface {
	Params() Params
	Patrol(e *Enemy, w World, dt float64)
	Chase(e *Enemy, w World, dt float64, playerPos vec.Vec2)
	Attack(e *Enemy, w World, dt float64, playerPos vec.Vec2)
}

// Необязательные расширения паттернов:

// Ticker выполняется каждый тик независимо от состояния (бобинг и т.п.)
type Ticker interface {
	Tick(e *Enemy, w World, dt float64)
}

// DetectionGate сужает обнаружение сверх базового правила
// (например, узкий конус зрения)
type DetectionGate interface {
	CanDetect(e *Enemy, playerPos vec.Vec2) bool
}

// HurtExiter переопределяет состояние после выхода из оглушения
type HurtExiter interface {
	HurtExit(e *Enemy) StateKind
}

// DeathHandler вызывается один раз при истечении таймера смерти
type DeathHandler interface {
	OnDeath(e *Enemy, w World)
}

// DamageInterrupter получает уведомление о входящем уроне
// (отмена замаха, срыв пикирования)
type DamageInterrupter interface {
	OnDamaged(e *Enemy)
}

// Enemy представляет врага: общий каркас состояний плюс
// скомпонованный паттерн архетипа. Инвариант: из Dead переходов нет,
// кроме отложенного удаления по таймеру.
type Enemy struct {
	Ent     *entity.Entity
	Pattern Pattern

	Health int
	State  StateKind

	SpawnPos     vec.Vec2
	PatrolPoints []vec.Vec2
	patrolIndex  int

	// Последняя известная позиция игрока (для бросков "по памяти")
	LastKnown    vec.Vec2
	LastKnownSet bool

	Age float64 // время жизни, фаза для синусоид

	hurtTimer      float64
	deathTimer     float64
	AttackCooldown float64
}

// newEnemy создаёт врага с указанным паттерном.
// Начальное состояние: Patrol при наличии точек патруля, иначе Idle.
func newEnemy(pattern Pattern, pos, size vec.Vec2, patrolPoints []vec.Vec2) *Enemy {
	params := pattern.Params()

	e := &Enemy{
		Ent:          entity.NewEntity(entity.KindEnemy, pos, size),
		Pattern:      pattern,
		Health:       params.MaxHealth,
		SpawnPos:     pos,
		PatrolPoints: patrolPoints,
		State:        StateIdle,
	}
	if len(patrolPoints) > 0 {
		e.State = StatePatrol
	}
	e.Ent.Payload["kind"] = params.Kind

	return e
}

// Kind возвращает имя архетипа
func (e *Enemy) Kind() string {
	return e.Pattern.Params().Kind
}

// IsAlive проверяет, жив ли враг
func (e *Enemy) IsAlive() bool {
	return e.Health > 0
}

// Think выполняет один тик врага. Dead и Hurt обрабатываются
// единообразно до любого поведения паттерна.
func (e *Enemy) Think(w World, dt float64) {
	if !e.Ent.Active {
		return
	}

	e.Age += dt
	params := e.Pattern.Params()
	body := &e.Ent.Body

	switch e.State {
	case StateDead:
		e.deathTimer -= dt
		if e.deathTimer <= 0 {
			if dh, ok := e.Pattern.(DeathHandler); ok {
				dh.OnDeath(e, w)
			}
			e.Ent.Destroy()
		}
		return

	case StateHurt:
		e.hurtTimer -= dt

		// Оглушение блокирует движение: только затухающий отброс
		body.Velocity.X = int(float64(body.Velocity.X) * knockbackDecay)
		if !params.Flying {
			body.ApplyGravity(physics.DefaultGravity)
		}
		w.StepBody(body, dt)

		if e.hurtTimer <= 0 {
			if he, ok := e.Pattern.(HurtExiter); ok {
				e.State = he.HurtExit(e)
			} else {
				e.State = StateIdle
			}
		}
		return
	}

	if tick, ok := e.Pattern.(Ticker); ok {
		tick.Tick(e, w, dt)
	}

	playerPos, known := w.PlayerPosition()
	detected := known && e.CanDetectPlayer(playerPos)
	if detected {
		e.LastKnown = playerPos
		e.LastKnownSet = true
	}

	e.AttackCooldown -= dt

	switch e.State {
	case StateIdle:
		body.Velocity.X = 0
		if detected {
			e.State = StateChase
		} else if len(e.PatrolPoints) > 0 {
			e.State = StatePatrol
		}

	case StatePatrol:
		if detected {
			e.State = StateChase
		} else {
			e.Pattern.Patrol(e, w, dt)
		}

	case StateChase:
		if !known {
			e.State = e.fallbackState()
			break
		}
		dist := e.Ent.Center().DistanceTo(playerPos)
		switch {
		case dist <= params.AttackRange:
			e.State = StateAttack
		case dist > params.DetectionRange:
			e.State = e.fallbackState()
		default:
			e.Pattern.Chase(e, w, dt, playerPos)
		}

	case StateAttack:
		if !known {
			e.State = e.fallbackState()
			break
		}
		if e.Ent.Center().DistanceTo(playerPos) > params.AttackRange {
			e.State = StateChase
			break
		}
		e.Pattern.Attack(e, w, dt, playerPos)
	}

	if !params.Flying {
		body.ApplyGravity(physics.DefaultGravity)
	}
	w.StepBody(body, dt)
}

// fallbackState возвращает состояние при потере игрока
func (e *Enemy) fallbackState() StateKind {
	if len(e.PatrolPoints) > 0 {
		return StatePatrol
	}
	return StateIdle
}

// CanDetectPlayer проверяет обнаружение: дистанция в пределах
// DetectionRange И игрок со стороны взгляда. Враг не "чувствует"
// игрока за спиной.
func (e *Enemy) CanDetectPlayer(playerPos vec.Vec2) bool {
	center := e.Ent.Center()
	if center.DistanceTo(playerPos) > e.Pattern.Params().DetectionRange {
		return false
	}

	dx := playerPos.X - center.X
	if dx != 0 && sign(dx) != e.Ent.Facing.Sign() {
		return false
	}

	if gate, ok := e.Pattern.(DetectionGate); ok {
		return gate.CanDetect(e, playerPos)
	}
	return true
}

// TakeDamage наносит урон с необязательным отбросом.
// Мёртвые враги игнорируют урон (никакой спирали в минус).
func (e *Enemy) TakeDamage(amount int, knockback vec.Vec2) {
	if e.State == StateDead {
		return
	}

	if di, ok := e.Pattern.(DamageInterrupter); ok {
		di.OnDamaged(e)
	}

	e.Health -= amount
	if e.Health <= 0 {
		e.Health = 0
		e.State = StateDead
		e.deathTimer = deathLingerTime
		e.Ent.Body.Velocity = vec.Vec2{}
		logging.Debug("Враг %s (id=%d) погиб", e.Kind(), e.Ent.ID)
		return
	}

	e.State = StateHurt
	e.hurtTimer = hurtStunTime
	e.Ent.Body.Velocity = knockback
}

// moveToward направляет горизонтальную скорость к цели; взгляд
// следует за движением
func (e *Enemy) moveToward(target vec.Vec2, speed int) {
	dx := target.X - e.Ent.Center().X
	if dx < 0 {
		e.Ent.Body.Velocity.X = -speed
		e.Ent.Facing = entity.FacingLeft
	} else if dx > 0 {
		e.Ent.Body.Velocity.X = speed
		e.Ent.Facing = entity.FacingRight
	} else {
		e.Ent.Body.Velocity.X = 0
	}
}

// faceToward разворачивает взгляд к цели без движения
func (e *Enemy) faceToward(target vec.Vec2) {
	dx := target.X - e.Ent.Center().X
	if dx < 0 {
		e.Ent.Facing = entity.FacingLeft
	} else if dx > 0 {
		e.Ent.Facing = entity.FacingRight
	}
}

// patrolStep движение между точками патруля с переключением
// по достижении текущей. Достижение меряется только по X:
// moveToward двигает лишь горизонталь, вертикальная составляющая
// дистанции никогда не сокращается
func (e *Enemy) patrolStep(speed int) {
	if len(e.PatrolPoints) == 0 {
		e.Ent.Body.Velocity.X = 0
		return
	}

	target := e.PatrolPoints[e.patrolIndex]
	dx := target.X - e.Ent.Center().X
	if dx < 0 {
		dx = -dx
	}
	if float64(dx) <= waypointThreshold {
		e.patrolIndex = (e.patrolIndex + 1) % len(e.PatrolPoints)
		target = e.PatrolPoints[e.patrolIndex]
	}
	e.moveToward(target, speed)
}

func sign(v int) int {
	if v < 0 {
		return -1
	}
	if v > 0 {
		return 1
	}
	return 0
}
