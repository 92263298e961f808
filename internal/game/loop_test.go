package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/qeen-game/internal/world"
)

func newLoopScene(t *testing.T) *Scene {
	t.Helper()
	s, err := NewScene(testLevel(world.EntitySpec{Type: "player_spawn", X: 1, Y: 1}), Deps{})
	require.NoError(t, err)
	return s
}

func TestLoopConsumesAccumulator(t *testing.T) {
	l := NewLoop(newLoopScene(t), nil)

	steps := l.Advance(0.055)
	assert.Equal(t, 3, steps, "0.055 с вмещает три шага по 1/60")
	assert.InDelta(t, 0.3, l.Alpha(), 0.01, "остаток аккумулятора даёт альфу интерполяции")

	steps = l.Advance(0.001)
	assert.Zero(t, steps, "недостаточно накопленного времени — шаг не выполняется")
}

func TestLoopClampsFrameDelta(t *testing.T) {
	l := NewLoop(newLoopScene(t), nil)

	steps := l.Advance(10.0)
	assert.Equal(t, MaxStepsPerFrame, steps, "кадровое время ограничено потолком шагов")
	assert.Less(t, l.Alpha(), 1.0, "лишнее время отброшено, альфа в пределах шага")
}

func TestLoopStepCapDiscardsExcess(t *testing.T) {
	l := NewLoop(newLoopScene(t), nil)

	l.Advance(MaxFrameDelta)

	// После сброса излишка следующий маленький кадр не порождает лавину
	steps := l.Advance(FixedDelta * 1.5)
	assert.LessOrEqual(t, steps, 2, "накопленный излишек не переносится между кадрами")
}

func TestLoopDeterministicReplay(t *testing.T) {
	run := func() (int, int) {
		s := newLoopScene(t)
		l := NewLoop(s, nil)
		for i := 0; i < 120; i++ {
			l.Advance(FixedDelta)
		}
		return s.Player.Ent.Body.Position.X, s.Player.Ent.Body.Position.Y
	}

	x1, y1 := run()
	x2, y2 := run()
	assert.Equal(t, x1, x2, "повтор с теми же входами даёт ту же позицию")
	assert.Equal(t, y1, y2)
}
