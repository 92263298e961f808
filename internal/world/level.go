package world

import (
	"fmt"

	"github.com/annel0/qeen-game/internal/vec"
)

// LevelFormatError описывает нарушение формата уровня. Загрузчик
// отвергает уровень целиком: никакая часть данных не устанавливается
type LevelFormatError struct {
	Field  string
	Reason string
}

func (e *LevelFormatError) Error() string {
	return fmt.Sprintf("некорректный формат уровня: поле %q: %s", e.Field, e.Reason)
}

// EntitySpec описывает сущность уровня в тайловых координатах
type EntitySpec struct {
	Type    string
	X, Y    int
	Subtype string
}

// LevelData представляет проверенные данные уровня.
// Экземпляр существует только после успешной валидации
type LevelData struct {
	Name       string
	Width      int
	Height     int
	Tiles      [][]int // 0 — пусто, >0 — id твёрдого тайла
	Entities   []EntitySpec
	Modes      []string
	Background string
	Music      string
}

// TileAt возвращает id тайла; индексы вне сетки считаются пустотой
func (l *LevelData) TileAt(tile vec.Vec2) int {
	if tile.Y < 0 || tile.Y >= l.Height || tile.X < 0 || tile.X >= l.Width {
		return 0
	}
	return l.Tiles[tile.Y][tile.X]
}

// Solid сообщает, твёрд ли тайл (сигнатура совпадает с physics.Resolver)
func (l *LevelData) Solid(tile vec.Vec2) bool {
	return l.TileAt(tile) > 0
}

// PixelSize возвращает размер уровня в пикселях
func (l *LevelData) PixelSize(tileSize int) vec.Vec2 {
	return vec.Vec2{X: l.Width * tileSize, Y: l.Height * tileSize}
}
