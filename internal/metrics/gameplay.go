package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Gameplay инкапсулирует Prometheus-метрики игрового ядра.
// Nil-экземпляр безопасен: все методы превращаются в no-op, что
// позволяет собирать сцену без метрик в тестах
type Gameplay struct {
	damageTaken     prometheus.Counter
	itemsCollected  prometheus.Counter
	enemiesKilled   prometheus.Counter
	levelsCompleted prometheus.Counter

	health            prometheus.Gauge
	score             prometheus.Gauge
	activeEnemies     prometheus.Gauge
	activeProjectiles prometheus.Gauge

	stepDuration prometheus.Histogram
}

// NewGameplay создаёт и регистрирует метрики.
// reg == nil означает глобальный регистр Prometheus
func NewGameplay(reg prometheus.Registerer) *Gameplay {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	g := &Gameplay{
		damageTaken: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "qeen",
			Name:      "damage_taken_total",
			Help:      "Суммарный урон, полученный игроком (в полосках здоровья).",
		}),
		itemsCollected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "qeen",
			Name:      "items_collected_total",
			Help:      "Число подобранных предметов.",
		}),
		enemiesKilled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "qeen",
			Name:      "enemies_killed_total",
			Help:      "Число уничтоженных врагов.",
		}),
		levelsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "qeen",
			Name:      "levels_completed_total",
			Help:      "Число завершённых уровней.",
		}),
		health: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "qeen",
			Name:      "player_health",
			Help:      "Текущее здоровье игрока в полосках.",
		}),
		score: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "qeen",
			Name:      "player_score",
			Help:      "Текущий счёт игрока.",
		}),
		activeEnemies: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "qeen",
			Name:      "active_enemies",
			Help:      "Число активных врагов на сцене.",
		}),
		activeProjectiles: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "qeen",
			Name:      "active_projectiles",
			Help:      "Число активных снарядов на сцене.",
		}),
		stepDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "qeen",
			Name:      "step_duration_seconds",
			Help:      "Длительность одного фиксированного шага симуляции.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 2, 12),
		}),
	}

	reg.MustRegister(
		g.damageTaken, g.itemsCollected, g.enemiesKilled, g.levelsCompleted,
		g.health, g.score, g.activeEnemies, g.activeProjectiles,
		g.stepDuration,
	)
	return g
}

// IncDamage учитывает полученный игроком урон
func (g *Gameplay) IncDamage() {
	if g == nil {
		return
	}
	g.damageTaken.Inc()
}

// IncCollected учитывает подобранный предмет
func (g *Gameplay) IncCollected() {
	if g == nil {
		return
	}
	g.itemsCollected.Inc()
}

// IncEnemyKilled учитывает уничтоженного врага
func (g *Gameplay) IncEnemyKilled() {
	if g == nil {
		return
	}
	g.enemiesKilled.Inc()
}

// IncLevelCompleted учитывает завершённый уровень
func (g *Gameplay) IncLevelCompleted() {
	if g == nil {
		return
	}
	g.levelsCompleted.Inc()
}

// SetSnapshot обновляет датчики состояния сцены
func (g *Gameplay) SetSnapshot(health, score, enemies, projectiles int) {
	if g == nil {
		return
	}
	g.health.Set(float64(health))
	g.score.Set(float64(score))
	g.activeEnemies.Set(float64(enemies))
	g.activeProjectiles.Set(float64(projectiles))
}

// ObserveStep фиксирует длительность шага симуляции
func (g *Gameplay) ObserveStep(d time.Duration) {
	if g == nil {
		return
	}
	g.stepDuration.Observe(d.Seconds())
}
