package eventbus

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Типы игровых событий
const (
	EventPlayerDamaged = "player_damaged"
	EventPlayerDied    = "player_died"
	EventItemCollected = "item_collected"
	EventEnemyKilled   = "enemy_killed"
	EventLevelComplete = "level_complete"
	EventModeActivated = "mode_activated"
	EventDoorUnlocked  = "door_unlocked"
	EventEnemyNotice   = "enemy_notice" // взрывы, реплики и прочие сигналы врагов
)

// sourceSimulation имя источника для событий игрового ядра
const sourceSimulation = "simulation"

// NewGameEvent собирает конверт игрового события с UUID-идентификатором.
// Payload сериализуется в JSON; ошибка сериализации невозможна для
// map[string]interface{} с примитивными значениями и потому глотается
func NewGameEvent(eventType string, payload map[string]interface{}) *Envelope {
	data, _ := json.Marshal(payload)
	return &Envelope{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Source:    sourceSimulation,
		EventType: eventType,
		Version:   1,
		Priority:  3,
		Payload:   data,
	}
}
