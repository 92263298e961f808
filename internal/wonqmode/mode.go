package wonqmode

import "math"

// Kind представляет тип глобального режима-модификатора
type Kind string

const (
	KindLowGravity  Kind = "low_g"
	KindMirror      Kind = "mirror"
	KindBulletTime  Kind = "bullet_time"
	KindSpeedyBoots Kind = "speedy_boots"
	KindGlitch      Kind = "glitch"
	KindJunglist    Kind = "junglist"
)

// Inputs набор физических параметров, которые режимы трансформируют.
// Автоматы состояний запрашивают их один раз за тик и применяют
// мультипликативно ДО собственной физики; реестр никогда не мутирует
// внутренности автоматов.
type Inputs struct {
	GravityScale float64 // Множитель гравитации
	TimeScale    float64 // Множитель времени симуляции
	SpeedScale   float64 // Множитель скорости движения
	MoveAxis     int     // Горизонтальный ввод: -1, 0, +1
	Pulse        bool    // Ритмический импульс текущего тика
}

// DefaultInputs возвращает нейтральные параметры для указанного ввода
func DefaultInputs(moveAxis int) Inputs {
	return Inputs{
		GravityScale: 1.0,
		TimeScale:    1.0,
		SpeedScale:   1.0,
		MoveAxis:     moveAxis,
	}
}

// Transform чистая функция-модификатор: принимает параметры и время
// активности режима, возвращает новые параметры. Никакого состояния.
type Transform func(in Inputs, elapsed float64) Inputs

// Spec описывает режим: длительность (0 = бессрочно), перезарядка
// и чистая трансформация физических параметров
type Spec struct {
	Duration  float64
	Cooldown  float64
	Transform Transform
}

const junglistBPM = 174.0

// builtinSpecs таблица встроенных режимов
func builtinSpecs() map[Kind]Spec {
	return map[Kind]Spec{
		KindLowGravity: {
			Transform: func(in Inputs, _ float64) Inputs {
				in.GravityScale *= 0.4
				return in
			},
		},
		KindMirror: {
			Duration: 45.0,
			Cooldown: 30.0,
			Transform: func(in Inputs, _ float64) Inputs {
				in.MoveAxis = -in.MoveAxis
				return in
			},
		},
		KindBulletTime: {
			Duration: 5.0,
			Cooldown: 10.0,
			Transform: func(in Inputs, _ float64) Inputs {
				in.TimeScale *= 0.3
				return in
			},
		},
		KindSpeedyBoots: {
			Duration: 30.0,
			Cooldown: 60.0,
			Transform: func(in Inputs, _ float64) Inputs {
				in.SpeedScale *= 2.0
				return in
			},
		},
		KindGlitch: {
			// Косметический режим: физику не трогает, но активен
			// для внешних потребителей (рендер, звук)
			Duration:  20.0,
			Cooldown:  45.0,
			Transform: func(in Inputs, _ float64) Inputs { return in },
		},
		KindJunglist: {
			// 174 BPM: импульс в начале каждого бита (первые 0.1 c)
			Transform: func(in Inputs, elapsed float64) Inputs {
				beat := 60.0 / junglistBPM
				if math.Mod(elapsed, beat) < 0.1 {
					in.Pulse = true
				}
				return in
			},
		},
	}
}
