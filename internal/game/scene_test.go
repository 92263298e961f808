package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/qeen-game/internal/player"
	"github.com/annel0/qeen-game/internal/wonqmode"
	"github.com/annel0/qeen-game/internal/world"
)

// testLevel строит маленький уровень: полоса земли в нижней строке,
// объекты по переданным описаниям
func testLevel(entities ...world.EntitySpec) *world.LevelData {
	const w, h = 8, 4
	tiles := make([][]int, h)
	for y := range tiles {
		tiles[y] = make([]int, w)
	}
	for x := 0; x < w; x++ {
		tiles[h-1][x] = 1
	}

	return &world.LevelData{
		Name:     "test",
		Width:    w,
		Height:   h,
		Tiles:    tiles,
		Entities: entities,
	}
}

func newTestScene(t *testing.T, entities ...world.EntitySpec) *Scene {
	t.Helper()
	s, err := NewScene(testLevel(entities...), Deps{})
	require.NoError(t, err)
	return s
}

func settle(s *Scene, steps int) {
	for i := 0; i < steps; i++ {
		s.Update(FixedDelta)
	}
}

func TestSceneInstallsEntities(t *testing.T) {
	s := newTestScene(t,
		world.EntitySpec{Type: "player_spawn", X: 1, Y: 1},
		world.EntitySpec{Type: "enemy", X: 5, Y: 1, Subtype: "walqer_bot"},
		world.EntitySpec{Type: "chip", X: 3, Y: 2},
		world.EntitySpec{Type: "exit", X: 7, Y: 1},
	)

	require.NotNil(t, s.Player)
	assert.Equal(t, 1, s.Enemies.Count())
	assert.Len(t, s.Pickups, 1)
	require.NotNil(t, s.Exit)
}

func TestSceneRejectsUnknownEntities(t *testing.T) {
	_, err := NewScene(testLevel(world.EntitySpec{Type: "enemy", X: 1, Y: 1, Subtype: "dragon"}), Deps{})
	assert.Error(t, err, "неизвестный архетип врага отменяет сборку сцены")

	_, err = NewScene(testLevel(world.EntitySpec{Type: "teleporter", X: 1, Y: 1}), Deps{})
	assert.Error(t, err, "неизвестный тип сущности отменяет сборку сцены")

	_, err = NewScene(testLevel(world.EntitySpec{Type: "hazard", X: 1, Y: 1, Subtype: "lava"}), Deps{})
	assert.Error(t, err, "неизвестный тип опасности отменяет сборку сцены")
}

func TestSceneHazardDamagesPlayer(t *testing.T) {
	s := newTestScene(t,
		world.EntitySpec{Type: "player_spawn", X: 1, Y: 1},
		world.EntitySpec{Type: "hazard", X: 1, Y: 2, Subtype: "spike"},
	)

	settle(s, 30)

	assert.Equal(t, player.MaxHealth-1, s.Player.Health,
		"шипы под ногами снимают бар, неуязвимость гасит повторы")
}

func TestSceneLaserDamagesWithoutBlocking(t *testing.T) {
	// Лазер на пути игрока: в отличие от двери он не входит в карту
	// твёрдости — урон есть, преграды нет
	s := newTestScene(t,
		world.EntitySpec{Type: "player_spawn", X: 1, Y: 1},
		world.EntitySpec{Type: "hazard", X: 3, Y: 2, Subtype: "laser"},
	)

	s.SetInput(player.Input{MoveAxis: 1})
	settle(s, 12) // лазер ещё в активной фазе цикла

	assert.Greater(t, s.Player.Ent.Body.Position.X, 128,
		"включённый лазер не преграждает путь")
	assert.Equal(t, player.MaxHealth-1, s.Player.Health,
		"проход сквозь активный лазер стоит один бар")
}

func TestSceneAutoActivatesModes(t *testing.T) {
	level := testLevel(world.EntitySpec{Type: "player_spawn", X: 1, Y: 1})
	level.Modes = []string{"low_g", "bullet_time"}

	s, err := NewScene(level, Deps{})
	require.NoError(t, err)

	assert.True(t, s.Registry.IsActive(wonqmode.KindLowGravity))
	assert.True(t, s.Registry.IsActive(wonqmode.KindBulletTime))
	assert.InDelta(t, 0.3, s.TimeScale(), 1e-9, "bullet_time замедляет время")

	level.Modes = []string{"no_such_mode"}
	_, err = NewScene(level, Deps{})
	assert.Error(t, err, "неизвестный режим отменяет сборку сцены")
}

func TestSceneBulletTimeExpiresInRealTime(t *testing.T) {
	level := testLevel(world.EntitySpec{Type: "player_spawn", X: 1, Y: 1})
	level.Modes = []string{"bullet_time"}

	s, err := NewScene(level, Deps{})
	require.NoError(t, err)
	require.InDelta(t, 0.3, s.TimeScale(), 1e-9)

	// Длительность 5 с меряется реальными шагами: собственное
	// замедление режима её не растягивает
	settle(s, 299)
	assert.True(t, s.Registry.IsActive(wonqmode.KindBulletTime), "до 5 с режим ещё активен")

	settle(s, 2)
	assert.False(t, s.Registry.IsActive(wonqmode.KindBulletTime), "режим истёк за свои 5 реальных секунд")
	assert.InDelta(t, 1.0, s.TimeScale(), 1e-9, "после истечения время идёт обычным ходом")
}

func TestScenePlayerLandsOnGround(t *testing.T) {
	s := newTestScene(t, world.EntitySpec{Type: "player_spawn", X: 1, Y: 1})

	settle(s, 60)

	assert.True(t, s.Player.Ent.Body.Grounded, "игрок должен приземлиться на нижний ряд")
	assert.Equal(t, 96, s.Player.Ent.Body.Position.Y+s.Player.Ent.Body.Size.Y,
		"ноги на границе твёрдого ряда")
}

func TestSceneCollectsPickups(t *testing.T) {
	s := newTestScene(t,
		world.EntitySpec{Type: "player_spawn", X: 1, Y: 1},
		world.EntitySpec{Type: "chip", X: 1, Y: 1},
		world.EntitySpec{Type: "ammo", X: 1, Y: 1},
	)

	s.Update(FixedDelta)

	assert.Equal(t, 100, s.Player.Score, "чип приносит 100 очков")
	assert.Equal(t, startingAmmo+10, s.Ammo, "боеприпасы пополняют запас")
	assert.Empty(t, s.Pickups, "подобранные объекты убраны уборкой")
}

func TestScenePowerupPickupChangesState(t *testing.T) {
	s := newTestScene(t,
		world.EntitySpec{Type: "player_spawn", X: 1, Y: 1},
		world.EntitySpec{Type: "powerup", X: 1, Y: 1, Subtype: "jumpupstiq"},
	)

	s.Update(FixedDelta)

	assert.Equal(t, player.StatePogo, s.Player.StateName(), "подбор пого-усиления меняет состояние")
}

func TestSceneContactDamage(t *testing.T) {
	s := newTestScene(t,
		world.EntitySpec{Type: "player_spawn", X: 1, Y: 1},
		world.EntitySpec{Type: "enemy", X: 1, Y: 1, Subtype: "walqer_bot"},
	)

	settle(s, 10)

	assert.Equal(t, player.MaxHealth-1, s.Player.Health,
		"касание врага снимает ровно один бар, окно неуязвимости гасит повторы")
}

func TestSceneExitCompletesLevel(t *testing.T) {
	s := newTestScene(t,
		world.EntitySpec{Type: "player_spawn", X: 1, Y: 1},
		world.EntitySpec{Type: "exit", X: 1, Y: 1},
	)

	s.Update(FixedDelta)

	assert.True(t, s.Complete)

	// Завершённая сцена заморожена
	score := s.Player.Score
	settle(s, 10)
	assert.Equal(t, score, s.Player.Score)
}

func TestSceneDoorWithKey(t *testing.T) {
	s := newTestScene(t,
		world.EntitySpec{Type: "player_spawn", X: 1, Y: 1},
		world.EntitySpec{Type: "key", X: 1, Y: 1, Subtype: "red"},
		world.EntitySpec{Type: "door", X: 3, Y: 1, Subtype: "red"},
	)

	require.Len(t, s.Doors, 1)
	door := s.Doors[0]

	// Игрок подбирает ключ на спавне и идёт вправо к двери
	s.SetInput(player.Input{MoveAxis: 1})
	settle(s, 120)

	assert.True(t, s.Keys["red"], "ключ подобран")
	assert.Equal(t, world.DoorOpen, door.State, "дверь с подходящим ключом открывается касанием")
	assert.False(t, door.Blocks())

	settle(s, 120)
	assert.Greater(t, s.Player.Ent.Body.Position.X, 128, "игрок прошёл сквозь открытую дверь")
}

func TestSceneShootingConsumesAmmo(t *testing.T) {
	s := newTestScene(t, world.EntitySpec{Type: "player_spawn", X: 1, Y: 1})
	settle(s, 60) // приземлиться

	s.SetInput(player.Input{Shoot: true})
	s.Update(FixedDelta)

	assert.Equal(t, startingAmmo-1, s.Ammo)
	assert.Equal(t, 1, s.playerShots.Count(), "выстрел породил снаряд")

	s.Ammo = 0
	s.SetInput(player.Input{Shoot: true})
	settle(s, 60)
	assert.Equal(t, 1, s.playerShots.Count(), "без боеприпасов выстрелов нет")
}

func TestSceneReset(t *testing.T) {
	s := newTestScene(t,
		world.EntitySpec{Type: "player_spawn", X: 1, Y: 1},
		world.EntitySpec{Type: "door", X: 5, Y: 1, Subtype: "red"},
	)

	settle(s, 30)
	s.Keys["red"] = true
	s.Complete = true

	s.Reset()

	assert.False(t, s.Complete)
	assert.Empty(t, s.Keys)
	assert.Equal(t, startingAmmo, s.Ammo)
	assert.Equal(t, world.DoorLocked, s.Doors[0].State)
	assert.Equal(t, s.spawnPos, s.Player.Ent.Body.Position, "игрок возвращён на точку спавна")
}

func TestSceneClosedDoorBlocksMovement(t *testing.T) {
	s := newTestScene(t,
		world.EntitySpec{Type: "player_spawn", X: 1, Y: 1},
		world.EntitySpec{Type: "door", X: 3, Y: 1, Subtype: "red"},
	)

	settle(s, 60) // приземлиться
	s.SetInput(player.Input{MoveAxis: 1})
	settle(s, 120)

	assert.LessOrEqual(t, s.Player.Ent.Body.Position.X+s.Player.Ent.Body.Size.X, 96,
		"запертая дверь останавливает игрока")
}

func TestSceneClosedDoorStopsShots(t *testing.T) {
	s := newTestScene(t,
		world.EntitySpec{Type: "player_spawn", X: 1, Y: 1},
		world.EntitySpec{Type: "door", X: 3, Y: 1, Subtype: "red"},
	)

	settle(s, 60) // приземлиться
	s.SetInput(player.Input{Shoot: true})
	s.Update(FixedDelta)
	require.Equal(t, 1, s.playerShots.Count())

	s.SetInput(player.Input{})
	settle(s, 31) // снаряд доходит до двери, перезарядка истекает
	assert.Zero(t, s.playerShots.Count(), "запертая дверь гасит снаряд, как и тело")

	// Открытая дверь снаряд пропускает
	s.Doors[0].State = world.DoorOpen
	s.SetInput(player.Input{Shoot: true})
	s.Update(FixedDelta)
	s.SetInput(player.Input{})
	settle(s, 15)
	assert.Equal(t, 1, s.playerShots.Count(), "открытая дверь не преграда для снаряда")
}
