package game

import (
	"context"
	"fmt"

	"github.com/annel0/qeen-game/internal/enemy"
	"github.com/annel0/qeen-game/internal/entity"
	"github.com/annel0/qeen-game/internal/eventbus"
	"github.com/annel0/qeen-game/internal/logging"
	"github.com/annel0/qeen-game/internal/metrics"
	"github.com/annel0/qeen-game/internal/physics"
	"github.com/annel0/qeen-game/internal/player"
	"github.com/annel0/qeen-game/internal/projectile"
	"github.com/annel0/qeen-game/internal/vec"
	"github.com/annel0/qeen-game/internal/wonqmode"
	"github.com/annel0/qeen-game/internal/world"
)

// startingAmmo боезапас игрока на старте уровня
const startingAmmo = 30

// Deps сервисы, внедряемые в сцену. Любое поле может быть nil —
// соответствующая подсистема просто не используется
type Deps struct {
	Bus     eventbus.EventBus
	Metrics *metrics.Gameplay
}

// Scene владеет всеми объектами уровня и продвигает симуляцию
// фиксированными шагами. Вся мутация происходит внутри Update,
// в одном потоке; сцена реализует интерфейсы мира для игрока и врагов
type Scene struct {
	Level    *world.LevelData
	Resolver *physics.Resolver
	Registry *wonqmode.Registry

	Player  *player.Player
	Enemies *enemy.Manager

	// Снаряды игрока и врагов держатся порознь: у них разные цели
	playerShots *projectile.Manager
	enemyShots  *projectile.Manager

	Doors   []*world.Door
	Hazards []*world.Hazard
	Pickups []*world.Pickup
	Exit    *world.ExitZone

	Keys map[string]bool
	Ammo int

	Complete bool

	spawnPos vec.Vec2
	input    player.Input
	deps     Deps
}

// NewScene собирает сцену из проверенных данных уровня.
// Ошибка установки (неизвестный враг, неизвестный режим) отменяет
// сборку целиком — наполовину собранная сцена наружу не выходит
func NewScene(level *world.LevelData, deps Deps) (*Scene, error) {
	s := &Scene{
		Level:    level,
		Registry: wonqmode.NewRegistry(),
		Enemies:  enemy.NewManager(),
		Keys:     make(map[string]bool),
		Ammo:     startingAmmo,
		deps:     deps,
	}
	// Снаряды летят по той же карте твёрдости, что и тела:
	// запертая дверь гасит пулю так же, как останавливает игрока
	s.Resolver = physics.NewResolver(s.solidAt)
	s.playerShots = projectile.NewManager(s.solidAt)
	s.enemyShots = projectile.NewManager(s.solidAt)

	for _, spec := range level.Entities {
		if err := s.installEntity(spec); err != nil {
			return nil, err
		}
	}

	if s.Player == nil {
		// Уровень без точки спавна валиден; игрок появляется в углу
		s.spawnPos = vec.Vec2{X: physics.TileSize, Y: physics.TileSize}
		s.Player = player.New(s.spawnPos)
	}

	for _, mode := range level.Modes {
		if err := s.Registry.Activate(wonqmode.Kind(mode)); err != nil {
			return nil, fmt.Errorf("автоактивация режима %q: %w", mode, err)
		}
	}

	logging.LogLevelLoad(level.Name, level.Width, level.Height, len(level.Entities))
	return s, nil
}

// installEntity создаёт объект сцены по описанию из уровня
func (s *Scene) installEntity(spec world.EntitySpec) error {
	pos := vec.Vec2{X: spec.X * physics.TileSize, Y: spec.Y * physics.TileSize}

	switch spec.Type {
	case "player_spawn":
		s.spawnPos = pos
		s.Player = player.New(pos)

	case "enemy":
		if _, err := s.Enemies.Spawn(spec.Subtype, pos); err != nil {
			return fmt.Errorf("установка врага: %w", err)
		}

	case "door":
		s.Doors = append(s.Doors, world.NewDoor(pos, spec.Subtype))

	case "key":
		s.Pickups = append(s.Pickups, world.NewKeyPickup(pos, spec.Subtype))

	case "powerup":
		s.Pickups = append(s.Pickups, world.NewPowerupPickup(pos, spec.Subtype))

	case "chip", "floppy", "medallion":
		s.Pickups = append(s.Pickups, world.NewCollectible(world.PickupKind(spec.Type), pos))

	case "ammo":
		s.Pickups = append(s.Pickups, world.NewAmmoPickup(pos, 10))

	case "hazard":
		switch kind := world.HazardKind(spec.Subtype); kind {
		case world.HazardSpike, world.HazardAcid, world.HazardLaser:
			s.Hazards = append(s.Hazards, world.NewHazard(kind, pos))
		default:
			return fmt.Errorf("неизвестный тип опасности: %q", spec.Subtype)
		}

	case "exit":
		s.Exit = world.NewExitZone(pos)

	default:
		return fmt.Errorf("неизвестный тип сущности уровня: %q", spec.Type)
	}
	return nil
}

// solidAt объединяет тайлы уровня и закрытые двери в одну карту
// твёрдости для резолвера коллизий
func (s *Scene) solidAt(tile vec.Vec2) bool {
	if s.Level.Solid(tile) {
		return true
	}
	px := vec.Vec2{X: tile.X * physics.TileSize, Y: tile.Y * physics.TileSize}
	tileRect := physics.Rect{X: px.X, Y: px.Y, W: physics.TileSize, H: physics.TileSize}
	for _, d := range s.Doors {
		if d.Blocks() && d.Ent.Rect().Intersects(tileRect) {
			return true
		}
	}
	return false
}

// SetInput задаёт ввод игрока на следующие шаги симуляции
func (s *Scene) SetInput(in player.Input) {
	s.input = in
}

// TimeScale возвращает текущий множитель времени активных режимов
func (s *Scene) TimeScale() float64 {
	return s.Registry.Apply(wonqmode.DefaultInputs(0)).TimeScale
}

// Update выполняет один фиксированный шаг симуляции; dt — реальное
// кадровое время. Порядок тика: режимы → игрок → враги → снаряды →
// объекты уровня → уборка. Контактный урон сверяется после движения
// врагов.
// Режимы тикают в реальном времени: bullet_time замедляет симуляцию,
// но не растягивает собственную длительность и таймеры других режимов
func (s *Scene) Update(dt float64) {
	if s.Complete {
		return
	}

	s.Registry.Tick(dt)
	mods := s.Registry.Apply(wonqmode.DefaultInputs(s.input.MoveAxis))
	simDt := dt * mods.TimeScale

	s.Player.Update(s, simDt, s.input, mods)

	s.Enemies.Update(s, simDt)
	s.checkContactDamage()

	s.playerShots.Update(simDt, s.enemyTargets())
	s.enemyShots.Update(simDt, []projectile.Target{playerTarget{s}})

	s.updateWorldObjects(simDt)
	s.sweep()

	s.deps.Metrics.SetSnapshot(s.Player.Health, s.Player.Score,
		s.Enemies.Count(), s.playerShots.Count()+s.enemyShots.Count())
}

// checkContactDamage наносит игроку урон от касания врагов
func (s *Scene) checkContactDamage() {
	if !s.Player.IsAlive() {
		return
	}
	playerRect := s.Player.Ent.Rect()

	for _, e := range s.Enemies.Enemies() {
		if !e.IsAlive() || e.Pattern.Params().Damage <= 0 {
			continue
		}
		if e.Ent.Rect().Intersects(playerRect) {
			s.damagePlayer()
			return
		}
	}
}

// damagePlayer применяет урон с публикацией события и метрикой
func (s *Scene) damagePlayer() {
	if !s.Player.TakeDamage() {
		return
	}
	s.deps.Metrics.IncDamage()
	s.publish(eventbus.EventPlayerDamaged, map[string]interface{}{
		"health": s.Player.Health,
	})
	if !s.Player.IsAlive() {
		s.publish(eventbus.EventPlayerDied, nil)
	}
}

// updateWorldObjects продвигает двери, опасности и подборы
func (s *Scene) updateWorldObjects(dt float64) {
	for _, d := range s.Doors {
		d.Update(dt)
	}

	if !s.Player.IsAlive() {
		return
	}
	playerRect := s.Player.Ent.Rect()

	for _, h := range s.Hazards {
		h.Update(dt)
		if _, hit := h.CheckContact(playerRect); hit {
			s.damagePlayer()
		}
	}

	for _, p := range s.Pickups {
		if p.Ent.Active && p.Ent.Rect().Intersects(playerRect) {
			s.collectPickup(p)
		}
	}

	// Дверь с подходящим собранным ключом отпирается касанием
	for _, d := range s.Doors {
		if d.State == world.DoorLocked && s.Keys[d.RequiredKeyID] &&
			d.Ent.Rect().Intersects(playerRect.Expand(4)) {
			d.Unlock(d.RequiredKeyID)
			d.Open()
			s.publish(eventbus.EventDoorUnlocked, map[string]interface{}{
				"key": d.RequiredKeyID,
			})
		}
	}

	if s.Exit != nil && s.Exit.Reached(playerRect) {
		s.Complete = true
		s.deps.Metrics.IncLevelCompleted()
		s.publish(eventbus.EventLevelComplete, map[string]interface{}{
			"level": s.Level.Name,
			"score": s.Player.Score,
		})
		logging.Info("Уровень %q завершён, счёт %d", s.Level.Name, s.Player.Score)
	}
}

// collectPickup применяет эффект подбираемого объекта
func (s *Scene) collectPickup(p *world.Pickup) {
	switch p.Kind {
	case world.PickupChip, world.PickupFloppy, world.PickupMedallion:
		s.Player.AddScore(p.Score)

	case world.PickupPowerup:
		if err := s.Player.CollectPowerup(player.PowerupKind(p.Subtype)); err != nil {
			logging.Warn("Неизвестное усиление %q пропущено", p.Subtype)
			return
		}

	case world.PickupKey:
		s.Keys[p.Subtype] = true

	case world.PickupAmmo:
		s.Ammo += p.Amount
	}

	p.Collect()
	s.deps.Metrics.IncCollected()
	s.publish(eventbus.EventItemCollected, map[string]interface{}{
		"kind":    string(p.Kind),
		"subtype": p.Subtype,
	})
}

// sweep убирает неактивные подборы; менеджеры врагов и снарядов
// подметают свои коллекции сами
func (s *Scene) sweep() {
	active := s.Pickups[:0]
	for _, p := range s.Pickups {
		if p.Ent.Active {
			active = append(active, p)
		}
	}
	s.Pickups = active
}

// Reset возвращает сцену к началу уровня: игрок на спавне, двери
// заперты, снаряды убраны. Собранные очки сохраняются у игрока? Нет:
// рестарт обнуляет прогресс уровня
func (s *Scene) Reset() {
	s.Player.Reset(s.spawnPos)
	for _, d := range s.Doors {
		d.Reset()
	}
	s.playerShots.Clear()
	s.enemyShots.Clear()
	s.Keys = make(map[string]bool)
	s.Ammo = startingAmmo
	s.Complete = false
}

// publish отправляет игровое событие в шину, если она подключена
func (s *Scene) publish(eventType string, payload map[string]interface{}) {
	if s.deps.Bus == nil {
		return
	}
	_ = s.deps.Bus.Publish(context.Background(), eventbus.NewGameEvent(eventType, payload))
}

//================ Мир глазами игрока (player.World) =================//

// StepBody выполняет физический шаг тела с разрешением коллизий
func (s *Scene) StepBody(b *physics.Body, dt float64) {
	s.Resolver.Step(b, dt)
}

// SpawnPlayerShot создаёт снаряд игрока, расходуя боезапас
func (s *Scene) SpawnPlayerShot(ownerID uint64, from vec.Vec2, facing entity.Facing) {
	if s.Ammo <= 0 {
		return
	}
	s.Ammo--

	dir := vec.Vec2Float{X: float64(facing.Sign())}
	p := projectile.New(ownerID, from, dir, projectile.DefaultSpeed, projectile.DefaultDamage)
	p.FromPlayer = true
	s.playerShots.Spawn(p)
}

// DropPowerup возвращает усиление в мир у ног игрока
func (s *Scene) DropPowerup(kind player.PowerupKind, pos vec.Vec2) {
	s.Pickups = append(s.Pickups, world.NewPowerupPickup(pos, string(kind)))
}

// BlastEnemies наносит урон по области (бас-удар пого)
func (s *Scene) BlastEnemies(center vec.Vec2, radius, damage int) {
	for _, e := range s.Enemies.InRadius(center, radius) {
		dir := sign(e.Ent.Center().X - center.X)
		e.TakeDamage(damage, vec.Vec2{X: dir * 150, Y: -100})
	}
}

//================ Мир глазами врагов (enemy.World) =================//

// PlayerPosition возвращает позицию игрока; мёртвый игрок невидим
func (s *Scene) PlayerPosition() (vec.Vec2, bool) {
	if s.Player == nil || !s.Player.IsAlive() {
		return vec.Vec2{}, false
	}
	return s.Player.Ent.Center(), true
}

// SpawnEnemyShot создаёт вражеский снаряд
func (s *Scene) SpawnEnemyShot(shot enemy.Shot) {
	p := projectile.New(shot.OwnerID, shot.From, shot.Dir, shot.Speed, shot.Damage)
	p.Gravity = shot.Gravity
	s.enemyShots.Spawn(p)
}

// Notify публикует игровое событие врага (взрыв, реплика)
func (s *Scene) Notify(event string, at vec.Vec2) {
	s.publish(eventbus.EventEnemyNotice, map[string]interface{}{
		"event": event,
		"x":     at.X,
		"y":     at.Y,
	})
}

//================ Адаптеры целей для снарядов =================//

// enemyTargets оборачивает живых врагов в цели для снарядов игрока
func (s *Scene) enemyTargets() []projectile.Target {
	enemies := s.Enemies.Enemies()
	targets := make([]projectile.Target, 0, len(enemies))
	for _, e := range enemies {
		if e.IsAlive() {
			targets = append(targets, enemyTarget{scene: s, e: e})
		}
	}
	return targets
}

type enemyTarget struct {
	scene *Scene
	e     *enemy.Enemy
}

func (t enemyTarget) TargetID() uint64         { return t.e.Ent.ID }
func (t enemyTarget) TargetRect() physics.Rect { return t.e.Ent.Rect() }

func (t enemyTarget) OnProjectileHit(damage, dirSign int) {
	t.e.TakeDamage(damage, vec.Vec2{X: dirSign * 200, Y: -100})
	if !t.e.IsAlive() {
		t.scene.deps.Metrics.IncEnemyKilled()
		t.scene.publish(eventbus.EventEnemyKilled, map[string]interface{}{
			"kind": t.e.Kind(),
		})
	}
}

type playerTarget struct {
	scene *Scene
}

func (t playerTarget) TargetID() uint64         { return t.scene.Player.Ent.ID }
func (t playerTarget) TargetRect() physics.Rect { return t.scene.Player.Ent.Rect() }

func (t playerTarget) OnProjectileHit(_, _ int) {
	t.scene.damagePlayer()
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 1
	}
}
