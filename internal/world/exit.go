package world

import (
	"github.com/annel0/qeen-game/internal/physics"
	"github.com/annel0/qeen-game/internal/vec"
)

// ExitZone представляет зону завершения уровня
type ExitZone struct {
	Rect physics.Rect
}

// NewExitZone создаёт зону выхода размером 1×2 тайла
func NewExitZone(pos vec.Vec2) *ExitZone {
	return &ExitZone{
		Rect: physics.Rect{X: pos.X, Y: pos.Y, W: physics.TileSize, H: physics.TileSize * 2},
	}
}

// Reached проверяет, достиг ли прямоугольник игрока зоны выхода
func (z *ExitZone) Reached(player physics.Rect) bool {
	return z.Rect.Intersects(player)
}
