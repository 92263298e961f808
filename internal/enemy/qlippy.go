package enemy

import (
	"math"

	"github.com/annel0/qeen-game/internal/vec"
)

const (
	qlippyFloatSpeed     = 60
	qlippyFollowDistance = 80.0
	qlippyFollowSlack    = 20.0
	qlippyPopupCooldown  = 5.0
	qlippyPopupDuration  = 3.0
	qlippyBobAmplitude   = 8.0
	qlippyBobSpeed       = 2.0
)

// EventQlippyPopup публикуется, когда Qlippy показывает реплику
const EventQlippyPopup = "qlippy_popup"

// Qlippy — безвредный спутник-помеха: урона не наносит, вместо атаки
// всплывает с блокирующей репликой; один HP, анимация "смерти"
// совпадает с анимацией прощания
type Qlippy struct {
	popupCooldown float64
	popupTimer    float64
	baseY         int
}

// NewQlippy создаёт спутника
func NewQlippy(pos vec.Vec2) *Enemy {
	e := newEnemy(&Qlippy{baseY: pos.Y}, pos, vec.Vec2{X: 20, Y: 24}, nil)
	return e
}

func (q *Qlippy) Params() Params {
	return Params{
		Kind:           "qlippy",
		MaxHealth:      1,
		Damage:         0,
		Speed:          qlippyFloatSpeed,
		DetectionRange: 300,
		AttackRange:    qlippyFollowDistance + qlippyFollowSlack,
		AttackCooldown: qlippyPopupCooldown,
		Flying:         true,
	}
}

// Tick держит таймеры реплики и вертикальный бобинг
func (q *Qlippy) Tick(e *Enemy, w World, dt float64) {
	q.popupCooldown -= dt
	if q.popupTimer > 0 {
		q.popupTimer -= dt
	}

	bob := math.Sin(e.Age*qlippyBobSpeed*2*math.Pi) * qlippyBobAmplitude
	e.Ent.Body.Position.Y = q.baseY + int(bob)
}

func (q *Qlippy) Patrol(e *Enemy, w World, dt float64) {
	e.Ent.Body.Velocity = vec.Vec2{}
}

// Chase: подлетает к игроку, останавливаясь на комфортной дистанции
func (q *Qlippy) Chase(e *Enemy, w World, dt float64, playerPos vec.Vec2) {
	dist := e.Ent.Center().DistanceTo(playerPos)
	if dist > qlippyFollowDistance+qlippyFollowSlack {
		e.moveToward(playerPos, qlippyFloatSpeed)
	} else {
		e.Ent.Body.Velocity.X = 0
	}
	q.baseY = playerPos.Y - 16 // парит чуть выше игрока
}

// Attack: вместо урона — всплывающая реплика по перезарядке
func (q *Qlippy) Attack(e *Enemy, w World, dt float64, playerPos vec.Vec2) {
	e.Ent.Body.Velocity.X = 0
	e.faceToward(playerPos)

	if q.popupCooldown <= 0 {
		q.popupTimer = qlippyPopupDuration
		q.popupCooldown = qlippyPopupCooldown
		w.Notify(EventQlippyPopup, e.Ent.Center())
	}
}

// PopupActive сообщает, показывается ли реплика сейчас
func (q *Qlippy) PopupActive() bool {
	return q.popupTimer > 0
}

var _ Ticker = (*Qlippy)(nil)
