package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/annel0/qeen-game/internal/vec"
)

func TestBodyApplyForce(t *testing.T) {
	// Сценарий: сила (100,0) за один шаг dt=1.0
	b := NewBody(vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 16, Y: 16})
	b.ApplyForce(vec.Vec2{X: 100, Y: 0})

	assert.Equal(t, vec.Vec2{X: 100, Y: 0}, b.Acceleration, "ускорение должно быть применено до интегрирования")

	b.Update(1.0)

	assert.Equal(t, vec.Vec2{X: 100, Y: 0}, b.Velocity, "скорость после интегрирования")
	assert.Equal(t, vec.Vec2{X: 100, Y: 0}, b.Position, "позиция после интегрирования")
	assert.Equal(t, vec.Vec2{}, b.Acceleration, "ускорение должно обнуляться после шага")
}

func TestBodyDeterminism(t *testing.T) {
	// Две независимые симуляции с одинаковыми входами обязаны дать
	// побитово идентичный результат
	run := func() *Body {
		b := NewBody(vec.Vec2{X: 3, Y: 7}, vec.Vec2{X: 16, Y: 16})
		for i := 0; i < 600; i++ {
			b.ApplyGravity(DefaultGravity)
			b.ApplyForce(vec.Vec2{X: 37, Y: -13})
			b.Update(1.0 / 60.0)
		}
		return b
	}

	a := run()
	c := run()

	assert.Equal(t, a.Position, c.Position, "позиции двух прогонов должны совпадать")
	assert.Equal(t, a.Velocity, c.Velocity, "скорости двух прогонов должны совпадать")
}

func TestBodyFriction(t *testing.T) {
	t.Run("трение только на земле", func(t *testing.T) {
		b := NewBody(vec.Vec2{}, vec.Vec2{X: 16, Y: 16})
		b.Velocity.X = 100
		b.Friction = 0.5
		b.Grounded = false

		b.ApplyFriction()
		assert.Equal(t, 100, b.Velocity.X, "в воздухе трение не применяется")

		b.Grounded = true
		b.ApplyFriction()
		assert.Equal(t, 50, b.Velocity.X, "на земле скорость уменьшается")
	})

	t.Run("остановка ниже порога", func(t *testing.T) {
		b := NewBody(vec.Vec2{}, vec.Vec2{X: 16, Y: 16})
		b.Velocity.X = 12
		b.Friction = 0.5
		b.Grounded = true

		b.ApplyFriction()
		assert.Equal(t, 0, b.Velocity.X, "скорость ниже порога должна обнуляться точно в 0")
	})

	t.Run("отрицательная скорость тоже обнуляется", func(t *testing.T) {
		b := NewBody(vec.Vec2{}, vec.Vec2{X: 16, Y: 16})
		b.Velocity.X = -15
		b.Friction = 0.5
		b.Grounded = true

		b.ApplyFriction()
		assert.Equal(t, 0, b.Velocity.X)
	})
}

func TestBodyGravity(t *testing.T) {
	b := NewBody(vec.Vec2{}, vec.Vec2{X: 16, Y: 16})

	b.Grounded = true
	b.ApplyGravity(DefaultGravity)
	assert.Equal(t, 0, b.Acceleration.Y, "на земле гравитация не действует")

	b.Grounded = false
	b.ApplyGravity(DefaultGravity)
	assert.Equal(t, DefaultGravity, b.Acceleration.Y, "в воздухе гравитация добавляется к ускорению")
}

func TestBodyClampVelocity(t *testing.T) {
	b := NewBody(vec.Vec2{}, vec.Vec2{X: 16, Y: 16})
	b.Velocity = vec.Vec2{X: 300, Y: 400} // длина 500

	b.ClampVelocity(100)

	assert.Equal(t, vec.Vec2{X: 60, Y: 80}, b.Velocity, "скорость масштабируется с сохранением направления")

	b.Velocity = vec.Vec2{X: 30, Y: 40}
	b.ClampVelocity(100)
	assert.Equal(t, vec.Vec2{X: 30, Y: 40}, b.Velocity, "скорость ниже лимита не изменяется")
}
