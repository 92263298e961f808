package physics

import (
	"github.com/annel0/qeen-game/internal/vec"
)

const (
	// TileSize размер тайла в пикселях
	TileSize = 32

	// DefaultGravity ускорение свободного падения (пиксели/с²)
	DefaultGravity = 980

	// frictionStopThreshold порог скорости, ниже которого трение
	// останавливает тело полностью (иначе бесконечное микроскольжение)
	frictionStopThreshold = 10
)

// Body представляет физическое тело с целочисленной кинематикой.
// Позиция, скорость и ускорение хранятся в целых пикселях; усечение
// к целому выполняется после КАЖДОЙ операции интегрирования — это
// осознанный контракт, дающий детерминированную "ступенчатую" физику.
type Body struct {
	Position     vec.Vec2
	Velocity     vec.Vec2
	Acceleration vec.Vec2
	Size         vec.Vec2
	Grounded     bool
	Mass         int
	Friction     float64
}

// NewBody создаёт тело в указанной позиции с указанным размером
func NewBody(pos, size vec.Vec2) *Body {
	return &Body{
		Position: pos,
		Size:     size,
		Mass:     1,
		Friction: 0.1,
	}
}

// Update интегрирует движение за dt секунд.
// Усечение к целому применяется к СУММЕ после каждой операции
// (velocity += a*dt, затем position += v*dt), а не к приращению —
// иначе медленные тела застревали бы на месте.
// Ускорение обнуляется после применения (импульсная модель:
// силы действуют один тик, не накапливаются).
func (b *Body) Update(dt float64) {
	b.Velocity = vec.Vec2{
		X: int(float64(b.Velocity.X) + float64(b.Acceleration.X)*dt),
		Y: int(float64(b.Velocity.Y) + float64(b.Acceleration.Y)*dt),
	}
	b.Position = vec.Vec2{
		X: int(float64(b.Position.X) + float64(b.Velocity.X)*dt),
		Y: int(float64(b.Position.Y) + float64(b.Velocity.Y)*dt),
	}
	b.Acceleration = vec.Vec2{}
}

// ApplyForce добавляет силу с учётом массы тела
func (b *Body) ApplyForce(force vec.Vec2) {
	mass := b.Mass
	if mass <= 0 {
		mass = 1
	}
	b.Acceleration = b.Acceleration.Add(vec.Vec2{X: force.X / mass, Y: force.Y / mass})
}

// ApplyGravity добавляет гравитацию к ускорению, только если тело в воздухе
func (b *Body) ApplyGravity(gravity int) {
	if !b.Grounded {
		b.Acceleration.Y += gravity
	}
}

// ApplyFriction применяет трение к горизонтальной скорости.
// Работает только на земле; ниже порога скорость обнуляется точно в 0.
func (b *Body) ApplyFriction() {
	if !b.Grounded {
		return
	}

	vx := int(float64(b.Velocity.X) * (1.0 - b.Friction))
	if vx > -frictionStopThreshold && vx < frictionStopThreshold {
		vx = 0
	}
	b.Velocity.X = vx
}

// ClampVelocity ограничивает скорость по модулю, сохраняя направление
func (b *Body) ClampVelocity(maxSpeed int) {
	length := b.Velocity.Length()
	if length <= float64(maxSpeed) || length == 0 {
		return
	}

	scale := float64(maxSpeed) / length
	b.Velocity = b.Velocity.Scale(scale)
}

// Rect возвращает ограничивающий прямоугольник тела
func (b *Body) Rect() Rect {
	return Rect{X: b.Position.X, Y: b.Position.Y, W: b.Size.X, H: b.Size.Y}
}

// Bounds возвращает границы тела как целые числа (контракт для рендера)
func (b *Body) Bounds() (x, y, w, h int) {
	return b.Position.X, b.Position.Y, b.Size.X, b.Size.Y
}
