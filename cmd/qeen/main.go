package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/annel0/qeen-game/internal/config"
	"github.com/annel0/qeen-game/internal/diag"
	"github.com/annel0/qeen-game/internal/eventbus"
	"github.com/annel0/qeen-game/internal/game"
	"github.com/annel0/qeen-game/internal/logging"
	"github.com/annel0/qeen-game/internal/metrics"
	"github.com/annel0/qeen-game/internal/player"
	"github.com/annel0/qeen-game/internal/storage"
	"github.com/annel0/qeen-game/internal/world"
)

func main() {
	configPath := flag.String("config", "", "путь к YAML-конфигурации")
	levelPath := flag.String("level", "", "путь к файлу уровня (перекрывает конфиг)")
	seed := flag.Int64("seed", 1337, "сид процедурной генерации")
	flag.Parse()

	if err := run(*configPath, *levelPath, *seed); err != nil {
		fmt.Fprintf(os.Stderr, "фатальная ошибка: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, levelPath string, seed int64) error {
	if err := logging.InitLogger(); err != nil {
		return err
	}
	defer logging.CloseLogger()

	diag.LogSystemInfo()
	stopDiag := diag.StartReporter(30 * time.Second)
	defer stopDiag()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("чтение конфигурации: %w", err)
	}
	if cfg == nil {
		cfg = &config.Config{}
	}

	// Шина событий и её потребители
	bus := eventbus.NewMemoryBus(cfg.EventBus.GetBufferSize())
	eventbus.Init(bus)
	if cfg.EventBus.LogEvents {
		if err := eventbus.StartLoggingListener(bus); err != nil {
			return err
		}
	}

	exporter := eventbus.NewMetricsExporter(bus)
	exporter.StartHTTP(fmt.Sprintf(":%d", cfg.Server.GetMetricsPort()))
	defer exporter.Stop()

	gameplay := metrics.NewGameplay(nil)

	level, err := loadLevel(cfg, levelPath, seed)
	if err != nil {
		return err
	}

	scene, err := game.NewScene(level, game.Deps{Bus: bus, Metrics: gameplay})
	if err != nil {
		return fmt.Errorf("сборка сцены: %w", err)
	}

	progress, err := storage.NewBadgerProgressRepo(cfg.Storage.GetDataDir())
	if err != nil {
		return err
	}
	defer progress.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Автопилот: без рендера игрок просто идёт вправо и прыгает
	scene.SetInput(player.Input{MoveAxis: 1, Jump: true})

	loop := game.NewLoop(scene, gameplay)
	if err := loop.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}

	result := storage.RecordResult(context.Background(), progress,
		level.Name, scene.Player.Score, scene.Complete)
	if result != nil {
		logging.Warn("Не удалось сохранить прогресс: %v", result)
	}

	logging.Info("Итог: уровень %q, счёт %d, пройден=%v",
		level.Name, scene.Player.Score, scene.Complete)
	return nil
}

// loadLevel загружает уровень из файла или генерирует процедурно
func loadLevel(cfg *config.Config, levelPath string, seed int64) (*world.LevelData, error) {
	path := levelPath
	if path == "" {
		path = cfg.Game.LevelPath
	}
	if path != "" {
		return world.LoadLevelFile(path)
	}

	width, height := cfg.Game.Width, cfg.Game.Height
	if width <= 0 {
		width = 120
	}
	if height <= 0 {
		height = 16
	}
	if cfg.Game.Seed != 0 {
		seed = cfg.Game.Seed
	}

	return world.GenerateLevel("procedural", world.GeneratorOptions{
		Width:  width,
		Height: height,
		Seed:   seed,
	})
}
