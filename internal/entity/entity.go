package entity

import (
	"sync/atomic"

	"github.com/annel0/qeen-game/internal/physics"
	"github.com/annel0/qeen-game/internal/vec"
)

// Kind представляет тип сущности
type Kind uint16

const (
	KindPlayer Kind = iota
	KindEnemy
	KindProjectile
	KindPickup
	KindDoor
	KindHazard
)

// Facing представляет направление взгляда сущности
type Facing int

const (
	FacingLeft Facing = iota
	FacingRight
)

// Sign возвращает знак направления: -1 влево, +1 вправо
func (f Facing) Sign() int {
	if f == FacingLeft {
		return -1
	}
	return 1
}

// Flip возвращает противоположное направление
func (f Facing) Flip() Facing {
	if f == FacingLeft {
		return FacingRight
	}
	return FacingLeft
}

// Entity представляет базовую сущность симуляции.
// Неактивная сущность не обновляется и не участвует в коллизиях;
// владеющий менеджер удаляет её на следующем проходе уборки.
type Entity struct {
	ID      uint64
	Kind    Kind
	Body    physics.Body
	ZIndex  int
	Active  bool
	Facing  Facing
	Payload map[string]interface{} // Дополнительные данные сущности
}

var nextID uint64

// NewEntity создаёт новую активную сущность с уникальным ID
func NewEntity(kind Kind, pos, size vec.Vec2) *Entity {
	return &Entity{
		ID:      atomic.AddUint64(&nextID, 1),
		Kind:    kind,
		Body:    *physics.NewBody(pos, size),
		Active:  true,
		Facing:  FacingRight,
		Payload: make(map[string]interface{}),
	}
}

// Destroy помечает сущность неактивной; физическое удаление выполняет
// владеющий менеджер
func (e *Entity) Destroy() {
	e.Active = false
}

// Rect возвращает ограничивающий прямоугольник сущности
func (e *Entity) Rect() physics.Rect {
	return e.Body.Rect()
}

// Center возвращает центр сущности
func (e *Entity) Center() vec.Vec2 {
	return e.Rect().Center()
}

// IsCollidingWith проверяет AABB-пересечение с другой сущностью.
// Неактивные сущности ни с чем не сталкиваются.
func (e *Entity) IsCollidingWith(other *Entity) bool {
	if !e.Active || !other.Active {
		return false
	}
	return e.Rect().Intersects(other.Rect())
}
