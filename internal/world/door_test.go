package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/qeen-game/internal/physics"
	"github.com/annel0/qeen-game/internal/vec"
)

const tick = 1.0 / 60.0

func TestDoorStateProgression(t *testing.T) {
	d := NewDoor(vec.Vec2{X: 64, Y: 0}, "red")

	assert.Equal(t, DoorLocked, d.State)
	assert.True(t, d.Blocks())

	t.Run("чужой ключ не отпирает", func(t *testing.T) {
		assert.False(t, d.Unlock("blue"))
		assert.Equal(t, DoorLocked, d.State)
	})

	t.Run("открытие из запертого состояния запрещено", func(t *testing.T) {
		assert.False(t, d.Open())
		assert.Equal(t, DoorLocked, d.State)
	})

	t.Run("подходящий ключ отпирает", func(t *testing.T) {
		assert.True(t, d.Unlock("red"))
		assert.Equal(t, DoorUnlocked, d.State)
		assert.True(t, d.Blocks(), "отпертая дверь всё ещё преграждает путь")
	})

	t.Run("повторное отпирание невозможно", func(t *testing.T) {
		assert.False(t, d.Unlock("red"))
	})

	t.Run("открытие анимировано, не мгновенно", func(t *testing.T) {
		require.True(t, d.Open())
		assert.Equal(t, DoorOpening, d.State)

		d.Update(tick)
		assert.Equal(t, DoorOpening, d.State, "за один тик дверь не успевает открыться")
		assert.Greater(t, d.OpenProgress, 0.0)

		// 5.0 доли/с — полное открытие за 0.2 с
		for i := 0; i < 12; i++ {
			d.Update(tick)
		}
		assert.Equal(t, DoorOpen, d.State)
		assert.Equal(t, 1.0, d.OpenProgress)
		assert.False(t, d.Blocks(), "открытая дверь не преграждает путь")
	})

	t.Run("сброс возвращает в исходное состояние", func(t *testing.T) {
		d.Reset()
		assert.Equal(t, DoorLocked, d.State)
		assert.Zero(t, d.OpenProgress)
		assert.True(t, d.Blocks())
	})
}

func TestHazardSpikeContact(t *testing.T) {
	h := NewHazard(HazardSpike, vec.Vec2{X: 0, Y: 0})

	dmg, hit := h.CheckContact(physics.Rect{X: 10, Y: 10, W: 24, H: 48})
	require.True(t, hit)
	assert.Equal(t, 1, dmg)

	_, hit = h.CheckContact(physics.Rect{X: 200, Y: 200, W: 24, H: 48})
	assert.False(t, hit, "без пересечения урона нет")
}

func TestHazardLaserCycle(t *testing.T) {
	h := NewHazard(HazardLaser, vec.Vec2{X: 0, Y: 0})
	touching := physics.Rect{X: 8, Y: 8, W: 16, H: 16}

	_, hit := h.CheckContact(touching)
	assert.True(t, hit, "лазер начинает цикл включённым")

	// Через 1.5 с лазер в выключенной фазе
	for i := 0; i < 90; i++ {
		h.Update(tick)
	}
	_, hit = h.CheckContact(touching)
	assert.False(t, hit, "выключенный лазер безопасен")

	// Полный цикл 2.0 с — снова включён
	for i := 0; i < 31; i++ {
		h.Update(tick)
	}
	_, hit = h.CheckContact(touching)
	assert.True(t, hit, "после полного цикла лазер снова опасен")
}

func TestHazardAcidTicks(t *testing.T) {
	h := NewHazard(HazardAcid, vec.Vec2{X: 0, Y: 0})
	touching := physics.Rect{X: 8, Y: 8, W: 16, H: 16}

	dmg, hit := h.CheckContact(touching)
	require.True(t, hit)
	assert.Equal(t, 1, dmg)

	_, hit = h.CheckContact(touching)
	assert.False(t, hit, "повторный урон кислоты только после интервала")

	for i := 0; i < 61; i++ {
		h.Update(tick)
	}
	_, hit = h.CheckContact(touching)
	assert.True(t, hit, "после интервала кислота снова наносит урон")
}

func TestCollectibleScores(t *testing.T) {
	assert.Equal(t, 100, NewCollectible(PickupChip, vec.Vec2{}).Score)
	assert.Equal(t, 500, NewCollectible(PickupFloppy, vec.Vec2{}).Score)
	assert.Equal(t, 1000, NewCollectible(PickupMedallion, vec.Vec2{}).Score)

	p := NewCollectible(PickupChip, vec.Vec2{X: 10, Y: 10})
	p.Collect()
	assert.False(t, p.Ent.Active, "подобранный предмет деактивируется")
}

func TestExitZone(t *testing.T) {
	z := NewExitZone(vec.Vec2{X: 320, Y: 64})

	assert.True(t, z.Reached(physics.Rect{X: 330, Y: 70, W: 24, H: 48}))
	assert.False(t, z.Reached(physics.Rect{X: 0, Y: 0, W: 24, H: 48}))
}
