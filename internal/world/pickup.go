package world

import (
	"github.com/annel0/qeen-game/internal/entity"
	"github.com/annel0/qeen-game/internal/vec"
)

// PickupKind представляет тип подбираемого объекта
type PickupKind string

const (
	PickupChip      PickupKind = "chip"
	PickupFloppy    PickupKind = "floppy"
	PickupMedallion PickupKind = "medallion"
	PickupPowerup   PickupKind = "powerup"
	PickupKey       PickupKind = "key"
	PickupAmmo      PickupKind = "ammo"
)

// Очки за коллекционные предметы
const (
	ChipScore      = 100
	FloppyScore    = 500
	MedallionScore = 1000
)

// pickupSize сторона хитбокса подбираемого объекта
const pickupSize = 16

// Pickup представляет подбираемый объект: коллекционный предмет,
// усиление, ключ или боеприпасы. Анимация покачивания — забота
// рендера, симуляция позицию не трогает
type Pickup struct {
	Ent     *entity.Entity
	Kind    PickupKind
	Score   int    // очки за подбор (коллекционные)
	Subtype string // вид усиления или id ключа
	Amount  int    // количество боеприпасов
}

// NewCollectible создаёт коллекционный предмет с очками по виду
func NewCollectible(kind PickupKind, pos vec.Vec2) *Pickup {
	score := 0
	switch kind {
	case PickupChip:
		score = ChipScore
	case PickupFloppy:
		score = FloppyScore
	case PickupMedallion:
		score = MedallionScore
	}

	return &Pickup{
		Ent:   newPickupEntity(pos),
		Kind:  kind,
		Score: score,
	}
}

// NewPowerupPickup создаёт усиление; subtype — вид усиления
func NewPowerupPickup(pos vec.Vec2, subtype string) *Pickup {
	return &Pickup{
		Ent:     newPickupEntity(pos),
		Kind:    PickupPowerup,
		Subtype: subtype,
	}
}

// NewKeyPickup создаёт ключ с указанным id
func NewKeyPickup(pos vec.Vec2, keyID string) *Pickup {
	return &Pickup{
		Ent:     newPickupEntity(pos),
		Kind:    PickupKey,
		Subtype: keyID,
	}
}

// NewAmmoPickup создаёт подбор боеприпасов
func NewAmmoPickup(pos vec.Vec2, amount int) *Pickup {
	return &Pickup{
		Ent:    newPickupEntity(pos),
		Kind:   PickupAmmo,
		Amount: amount,
	}
}

func newPickupEntity(pos vec.Vec2) *entity.Entity {
	return entity.NewEntity(entity.KindPickup, pos, vec.Vec2{X: pickupSize, Y: pickupSize})
}

// Collect помечает объект подобранным
func (p *Pickup) Collect() {
	p.Ent.Destroy()
}
