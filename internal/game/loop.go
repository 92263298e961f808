package game

import (
	"context"
	"math"
	"time"

	"github.com/annel0/qeen-game/internal/logging"
	"github.com/annel0/qeen-game/internal/metrics"
)

const (
	// FixedDelta длительность одного шага симуляции
	FixedDelta = 1.0 / 60.0

	// MaxFrameDelta потолок кадрового времени: всё сверх отбрасывается,
	// чтобы пауза отладчика не превращалась в лавину шагов
	MaxFrameDelta = 0.25

	// MaxStepsPerFrame жёсткий предел шагов за один кадр
	MaxStepsPerFrame = 5
)

// Loop реализует фиксированный шаг с аккумулятором.
// Кадровое время накапливается и расходуется порциями FixedDelta;
// замедление активных режимов сцена применяет внутри шага сама
type Loop struct {
	scene       *Scene
	accumulator float64
	met         *metrics.Gameplay
}

// NewLoop создаёт цикл над сценой
func NewLoop(scene *Scene, met *metrics.Gameplay) *Loop {
	return &Loop{scene: scene, met: met}
}

// Advance потребляет кадровое время и выполняет шаги симуляции.
// Возвращает число выполненных шагов
func (l *Loop) Advance(frameDelta float64) int {
	if frameDelta > MaxFrameDelta {
		frameDelta = MaxFrameDelta
	}
	l.accumulator += frameDelta

	steps := 0
	for l.accumulator >= FixedDelta && steps < MaxStepsPerFrame {
		start := time.Now()
		l.scene.Update(FixedDelta)
		l.met.ObserveStep(time.Since(start))

		l.accumulator -= FixedDelta
		steps++
	}

	// Предел достигнут — лишнее время отбрасывается, не переносится
	if steps == MaxStepsPerFrame && l.accumulator >= FixedDelta {
		l.accumulator = math.Mod(l.accumulator, FixedDelta)
	}

	return steps
}

// Alpha возвращает долю недопотреблённого шага [0..1) для
// интерполяции позиции на стороне рендера
func (l *Loop) Alpha() float64 {
	return l.accumulator / FixedDelta
}

// Run крутит цикл в реальном времени до завершения уровня, смерти
// игрока или отмены контекста
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			l.Advance(now.Sub(last).Seconds())
			last = now

			if l.scene.Complete {
				logging.Info("Симуляция остановлена: уровень пройден")
				return nil
			}
			if !l.scene.Player.IsAlive() {
				logging.Info("Симуляция остановлена: игрок погиб")
				return nil
			}
		}
	}
}
