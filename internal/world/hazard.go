package world

import (
	"github.com/annel0/qeen-game/internal/entity"
	"github.com/annel0/qeen-game/internal/physics"
	"github.com/annel0/qeen-game/internal/vec"
)

// HazardKind представляет тип опасности
type HazardKind string

const (
	HazardSpike HazardKind = "spike"
	HazardAcid  HazardKind = "acid"
	HazardLaser HazardKind = "laser"
)

const (
	// acidTickInterval интервал периодического урона кислоты
	acidTickInterval = 1.0

	// laserOnDuration / laserOffDuration цикл работы лазера
	laserOnDuration  = 1.0
	laserOffDuration = 1.0
)

// Hazard представляет статическую опасность уровня.
// Шипы и кислота действуют контактом; лазер периодически включается
type Hazard struct {
	Ent    *entity.Entity
	Kind   HazardKind
	Damage int

	on        bool
	phase     float64 // таймер цикла лазера
	acidTimer float64 // отсчёт до следующего тика кислоты
}

// NewHazard создаёт опасность указанного типа размером в один тайл
func NewHazard(kind HazardKind, pos vec.Vec2) *Hazard {
	ent := entity.NewEntity(entity.KindHazard, pos, vec.Vec2{X: physics.TileSize, Y: physics.TileSize})
	return &Hazard{
		Ent:    ent,
		Kind:   kind,
		Damage: 1,
		on:     true,
	}
}

// Update продвигает внутренние таймеры
func (h *Hazard) Update(dt float64) {
	switch h.Kind {
	case HazardLaser:
		h.phase += dt
		cycle := laserOnDuration + laserOffDuration
		for h.phase >= cycle {
			h.phase -= cycle
		}
		h.on = h.phase < laserOnDuration

	case HazardAcid:
		if h.acidTimer > 0 {
			h.acidTimer -= dt
		}
	}
}

// Active сообщает, опасен ли объект прямо сейчас
func (h *Hazard) Active() bool {
	return h.Ent.Active && h.on
}

// CheckContact проверяет контакт с прямоугольником и возвращает урон,
// который следует нанести в этот тик. Кислота наносит урон
// периодически, пока контакт сохраняется; шипы и лазер — при каждом
// касании (окно неуязвимости игрока само ограничивает частоту)
func (h *Hazard) CheckContact(r physics.Rect) (int, bool) {
	if !h.Active() || !h.Ent.Rect().Intersects(r) {
		return 0, false
	}

	if h.Kind == HazardAcid {
		if h.acidTimer > 0 {
			return 0, false
		}
		h.acidTimer = acidTickInterval
	}
	return h.Damage, true
}
