package player

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/qeen-game/internal/entity"
	"github.com/annel0/qeen-game/internal/physics"
	"github.com/annel0/qeen-game/internal/vec"
	"github.com/annel0/qeen-game/internal/wonqmode"
)

// stubWorld — мир без тайлов: тело просто интегрируется,
// все запросы к миру записываются
type stubWorld struct {
	shots    int
	dropped  []PowerupKind
	blasts   int
	grounded bool
}

func (s *stubWorld) StepBody(b *physics.Body, dt float64) {
	b.Update(dt)
	b.Grounded = s.grounded
}

func (s *stubWorld) SpawnPlayerShot(ownerID uint64, from vec.Vec2, facing entity.Facing) {
	s.shots++
}

func (s *stubWorld) DropPowerup(kind PowerupKind, pos vec.Vec2) {
	s.dropped = append(s.dropped, kind)
}

func (s *stubWorld) BlastEnemies(center vec.Vec2, radius, damage int) {
	s.blasts++
}

const dt = 1.0 / 60.0

func neutral(axis int) wonqmode.Inputs { return wonqmode.DefaultInputs(axis) }

func TestPlayerInitialState(t *testing.T) {
	p := New(vec.Vec2{X: 100, Y: 100})

	assert.Equal(t, StateNormal, p.StateName(), "игрок создаётся в Normal")
	assert.Equal(t, MaxHealth, p.Health)
	assert.NotNil(t, p.State(), "состояние никогда не nil")
}

func TestPlayerUnknownStateTransition(t *testing.T) {
	p := New(vec.Vec2{})

	err := p.ChangeState("flying")
	require.Error(t, err, "неизвестное состояние должно возвращать ошибку")

	var tErr *entity.InvalidStateTransitionError
	require.True(t, errors.As(err, &tErr), "ошибка должна иметь тип InvalidStateTransitionError")
	assert.Equal(t, "player", tErr.Machine)
	assert.Equal(t, "flying", tErr.Requested)
	assert.Equal(t, StateNormal, p.StateName(), "состояние не изменилось")
}

func TestPowerupSurvivesDamage(t *testing.T) {
	for _, kind := range []PowerupKind{PowerupPogo, PowerupJetpack} {
		t.Run(string(kind), func(t *testing.T) {
			p := New(vec.Vec2{})
			require.NoError(t, p.CollectPowerup(kind))
			stateBefore := p.State()

			ok := p.TakeDamage()

			require.True(t, ok, "урон должен примениться")
			assert.Equal(t, MaxHealth-1, p.Health, "любой удар снимает ровно один бар")
			assert.Same(t, stateBefore, p.State(), "несмертельный урон не меняет состояние")
			assert.True(t, p.Invincible, "после урона включается неуязвимость")
		})
	}
}

func TestPlayerInvincibilityWindow(t *testing.T) {
	p := New(vec.Vec2{})
	w := &stubWorld{}

	require.True(t, p.TakeDamage())
	assert.False(t, p.TakeDamage(), "повторный урон в окне неуязвимости игнорируется")
	assert.Equal(t, MaxHealth-1, p.Health)

	// Окно 1.5 секунды истекает
	for i := 0; i < 91; i++ {
		p.Update(w, dt, Input{}, neutral(0))
	}

	assert.False(t, p.Invincible)
	assert.True(t, p.TakeDamage(), "после окна урон снова проходит")
}

func TestPowerupRecollectRefreshesDuration(t *testing.T) {
	p := New(vec.Vec2{})
	w := &stubWorld{}

	require.NoError(t, p.CollectPowerup(PowerupPogo))

	// Прожигаем половину длительности
	for i := 0; i < 300; i++ {
		p.Update(w, dt, Input{}, neutral(0))
	}
	assert.Less(t, p.Powerups[PowerupPogo], PowerupDuration/2+0.1)

	// Повторный подбор обновляет таймер заново
	require.NoError(t, p.CollectPowerup(PowerupPogo))
	assert.InDelta(t, PowerupDuration, p.Powerups[PowerupPogo], 1e-9)
	assert.Equal(t, StatePogo, p.StateName())
}

func TestPowerupExpiryReturnsToNormal(t *testing.T) {
	p := New(vec.Vec2{})
	w := &stubWorld{}

	require.NoError(t, p.CollectPowerup(PowerupJetpack))
	assert.Equal(t, StateJetpack, p.StateName())

	// 10 секунд + запас
	for i := 0; i < 640; i++ {
		p.Update(w, dt, Input{}, neutral(0))
	}

	assert.Equal(t, StateNormal, p.StateName(), "истёкшее усиление возвращает в Normal")
	assert.Empty(t, p.Powerups)
}

func TestPogoManualUnmountDropsPickup(t *testing.T) {
	p := New(vec.Vec2{X: 64, Y: 64})
	w := &stubWorld{}

	require.NoError(t, p.CollectPowerup(PowerupPogo))
	p.Update(w, dt, Input{Interact: true}, neutral(0))

	assert.Equal(t, StateNormal, p.StateName(), "спешивание возвращает в Normal")
	require.Len(t, w.dropped, 1, "усиление должно вернуться в мир")
	assert.Equal(t, PowerupPogo, w.dropped[0])
	assert.Empty(t, p.Powerups)
}

func TestPogoBounceAndSpecial(t *testing.T) {
	p := New(vec.Vec2{})
	w := &stubWorld{grounded: true}

	require.NoError(t, p.CollectPowerup(PowerupPogo))
	p.Ent.Body.Grounded = true

	// Обычный отскок без прыжка (гравитация того же тика чуть съедает импульс)
	p.Update(w, dt, Input{}, neutral(0))
	normalBounce := p.Ent.Body.Velocity.Y
	assert.Less(t, normalBounce, -300, "автоматический отскок от земли")

	// Усиленный отскок по прыжку — одноразовый до следующего приземления
	p2 := New(vec.Vec2{})
	require.NoError(t, p2.CollectPowerup(PowerupPogo))
	p2.Ent.Body.Grounded = true
	p2.Update(w, dt, Input{Jump: true}, neutral(0))
	assert.Less(t, p2.Ent.Body.Velocity.Y, normalBounce, "усиленный отскок сильнее обычного")
}

func TestPogoSpecialNotRepeatedWhileJumpHeld(t *testing.T) {
	p := New(vec.Vec2{})
	w := &stubWorld{grounded: true}

	require.NoError(t, p.CollectPowerup(PowerupPogo))
	p.Ent.Body.Grounded = true
	held := Input{Jump: true}

	// Первое приземление со свежим нажатием — усиленный отскок
	p.Update(w, dt, held, neutral(0))
	first := p.Ent.Body.Velocity.Y
	assert.Less(t, first, -450, "свежее нажатие прыжка даёт усиленный отскок")

	// Полёт и повторное приземление, кнопка не отпускалась
	w.grounded = false
	for i := 0; i < 20; i++ {
		p.Update(w, dt, held, neutral(0))
	}
	w.grounded = true
	p.Update(w, dt, held, neutral(0)) // тик касания земли
	p.Update(w, dt, held, neutral(0))
	second := p.Ent.Body.Velocity.Y
	assert.Greater(t, second, -400, "без нового нажатия отскок обычный")

	// Отпустили кнопку; свежий прыжок после приземления снова усилен
	w.grounded = false
	for i := 0; i < 20; i++ {
		p.Update(w, dt, Input{}, neutral(0))
	}
	w.grounded = true
	p.Update(w, dt, Input{}, neutral(0))
	p.Update(w, dt, held, neutral(0))
	assert.Less(t, p.Ent.Body.Velocity.Y, -450, "приземление восстанавливает усиление")
}

func TestPogoBassBlastRequiresFalling(t *testing.T) {
	p := New(vec.Vec2{})
	w := &stubWorld{}

	require.NoError(t, p.CollectPowerup(PowerupPogo))

	// Движение вверх — бас-удар не срабатывает
	p.Ent.Body.Velocity.Y = -200
	p.Update(w, dt, Input{Down: true}, neutral(0))
	assert.Zero(t, w.blasts, "бас-удар требует падения")

	// Падение — срабатывает, со слэмом вниз
	p.Ent.Body.Velocity.Y = 200
	p.Update(w, dt, Input{Down: true}, neutral(0))
	assert.Equal(t, 1, w.blasts)

	// Перезарядка 2 секунды
	p.Ent.Body.Velocity.Y = 200
	p.Update(w, dt, Input{Down: true}, neutral(0))
	assert.Equal(t, 1, w.blasts, "повторный удар до перезарядки игнорируется")
}

func TestJetpackDash(t *testing.T) {
	t.Run("рывок фиксированной длительности", func(t *testing.T) {
		p := New(vec.Vec2{})
		w := &stubWorld{}
		require.NoError(t, p.CollectPowerup(PowerupJetpack))

		p.Update(w, dt, Input{Dash: true, MoveAxis: 1}, neutral(1))
		assert.Equal(t, jetpackDashSpeed, p.Ent.Body.Velocity.X, "рывок задаёт фиксированную скорость")
		assert.Equal(t, 0, p.Ent.Body.Velocity.Y, "вертикальная скорость в рывке обнулена")
	})

	t.Run("отказ при нехватке топлива", func(t *testing.T) {
		p := New(vec.Vec2{})
		require.NoError(t, p.CollectPowerup(PowerupJetpack))

		js := p.State().(*JetpackState)
		js.Fuel = jetpackFuelMax * 0.05 // ниже порога 10%

		assert.False(t, js.canDash(), "рывок отклоняется при топливе < 10%")

		js.Fuel = jetpackFuelMax * jetpackFuelMinFrac
		assert.True(t, js.canDash(), "ровно 10% топлива ещё хватает на рывок")
	})

	t.Run("исчерпание топлива возвращает в Normal", func(t *testing.T) {
		p := New(vec.Vec2{})
		w := &stubWorld{}
		require.NoError(t, p.CollectPowerup(PowerupJetpack))

		js := p.State().(*JetpackState)
		js.Fuel = 0
		p.Update(w, dt, Input{}, neutral(0))

		assert.Equal(t, StateNormal, p.StateName())
		assert.Empty(t, p.Powerups, "усиление снято вместе с топливом")
	})
}

func TestNormalShootCooldown(t *testing.T) {
	p := New(vec.Vec2{})
	w := &stubWorld{}

	p.Update(w, dt, Input{Shoot: true}, neutral(0))
	p.Update(w, dt, Input{Shoot: true}, neutral(0))
	assert.Equal(t, 1, w.shots, "второй выстрел до перезарядки не проходит")

	// Перезарядка 0.5 c
	for i := 0; i < 30; i++ {
		p.Update(w, dt, Input{}, neutral(0))
	}
	p.Update(w, dt, Input{Shoot: true}, neutral(0))
	assert.Equal(t, 2, w.shots)
}

func TestNormalFrictionSnap(t *testing.T) {
	p := New(vec.Vec2{})
	w := &stubWorld{grounded: true}
	p.Ent.Body.Grounded = true
	p.Ent.Body.Velocity.X = 12

	p.Update(w, dt, Input{}, neutral(0))

	assert.Equal(t, 0, p.Ent.Body.Velocity.X, "остаточная скорость ниже порога обнуляется точно в 0")
}

func TestPlayerReset(t *testing.T) {
	p := New(vec.Vec2{X: 10, Y: 10})
	require.NoError(t, p.CollectPowerup(PowerupPogo))
	p.TakeDamage()
	p.AddScore(500)

	p.Reset(vec.Vec2{X: 32, Y: 32})

	assert.Equal(t, StateNormal, p.StateName())
	assert.Equal(t, MaxHealth, p.Health)
	assert.Zero(t, p.Score)
	assert.Empty(t, p.Powerups)
	assert.Equal(t, vec.Vec2{X: 32, Y: 32}, p.Position())
}
