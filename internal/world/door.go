package world

import (
	"github.com/annel0/qeen-game/internal/entity"
	"github.com/annel0/qeen-game/internal/physics"
	"github.com/annel0/qeen-game/internal/vec"
)

// DoorState представляет состояние двери
type DoorState uint8

const (
	DoorLocked DoorState = iota
	DoorUnlocked
	DoorOpening
	DoorOpen
)

func (s DoorState) String() string {
	switch s {
	case DoorLocked:
		return "locked"
	case DoorUnlocked:
		return "unlocked"
	case DoorOpening:
		return "opening"
	case DoorOpen:
		return "open"
	default:
		return "unknown"
	}
}

// doorOpenRate скорость анимации открытия (доля/с): полное открытие за 0.2 с
const doorOpenRate = 5.0

// Door представляет запертую дверь. Прогрессия состояний строго
// монотонна: Locked → Unlocked → Opening → Open; назад — только Reset()
type Door struct {
	Ent           *entity.Entity
	RequiredKeyID string
	State         DoorState
	OpenProgress  float64 // 0..1, растёт только в Opening
}

// NewDoor создаёт запертую дверь размером 1×2 тайла
func NewDoor(pos vec.Vec2, requiredKeyID string) *Door {
	ent := entity.NewEntity(entity.KindDoor, pos, vec.Vec2{X: physics.TileSize, Y: physics.TileSize * 2})
	return &Door{
		Ent:           ent,
		RequiredKeyID: requiredKeyID,
		State:         DoorLocked,
	}
}

// Unlock пытается отпереть дверь ключом; чужой ключ ничего не меняет.
// Возвращает true, если дверь отперта этим вызовом
func (d *Door) Unlock(keyID string) bool {
	if d.State != DoorLocked || keyID != d.RequiredKeyID {
		return false
	}
	d.State = DoorUnlocked
	return true
}

// Open запускает анимацию открытия; допустимо только из Unlocked
func (d *Door) Open() bool {
	if d.State != DoorUnlocked {
		return false
	}
	d.State = DoorOpening
	return true
}

// Update продвигает анимацию открытия
func (d *Door) Update(dt float64) {
	if d.State != DoorOpening {
		return
	}
	d.OpenProgress += doorOpenRate * dt
	if d.OpenProgress >= 1.0 {
		d.OpenProgress = 1.0
		d.State = DoorOpen
	}
}

// Blocks сообщает, преграждает ли дверь путь (всё, кроме Open)
func (d *Door) Blocks() bool {
	return d.State != DoorOpen
}

// Reset возвращает дверь в исходное запертое состояние (рестарт уровня)
func (d *Door) Reset() {
	d.State = DoorLocked
	d.OpenProgress = 0
}
