package enemy

import (
	"fmt"

	"github.com/annel0/qeen-game/internal/logging"
	"github.com/annel0/qeen-game/internal/vec"
)

// Manager владеет коллекцией врагов: фабрика по имени архетипа,
// покадровое обновление и уборка неактивных
type Manager struct {
	enemies []*Enemy
}

// NewManager создаёт пустой менеджер врагов
func NewManager() *Manager {
	return &Manager{}
}

// Spawn создаёт врага указанного архетипа в позиции (в пикселях)
func (m *Manager) Spawn(kind string, pos vec.Vec2) (*Enemy, error) {
	var e *Enemy

	switch kind {
	case "walqer_bot":
		e = NewWalqerBot(pos, 50)
	case "jumper_drqne":
		e = NewJumperDrqne(pos)
	case "qortana_halo":
		e = NewQortanaHalo(pos)
	case "qlippy":
		e = NewQlippy(pos)
	case "briq_beaver":
		e = NewBriqBeaver(pos)
	case "hover_squid":
		e = NewHoverSquid(pos)
	default:
		return nil, fmt.Errorf("неизвестный архетип врага %q", kind)
	}

	m.enemies = append(m.enemies, e)
	logging.Debug("Создан враг %s (id=%d) в (%d,%d)", kind, e.Ent.ID, pos.X, pos.Y)
	return e, nil
}

// Update обновляет всех врагов и убирает уничтоженных.
// Обход идёт по копии, удаление — фильтром после обхода, чтобы
// не мутировать срез во время итерации.
func (m *Manager) Update(w World, dt float64) {
	snapshot := make([]*Enemy, len(m.enemies))
	copy(snapshot, m.enemies)

	for _, e := range snapshot {
		e.Think(w, dt)
	}

	alive := m.enemies[:0]
	for _, e := range m.enemies {
		if e.Ent.Active {
			alive = append(alive, e)
		}
	}
	m.enemies = alive
}

// Enemies возвращает текущий список врагов
func (m *Manager) Enemies() []*Enemy {
	return m.enemies
}

// InRadius возвращает живых врагов в радиусе от точки
func (m *Manager) InRadius(center vec.Vec2, radius int) []*Enemy {
	var result []*Enemy
	for _, e := range m.enemies {
		if e.Ent.Active && e.IsAlive() && e.Ent.Center().DistanceTo(center) <= float64(radius) {
			result = append(result, e)
		}
	}
	return result
}

// Count возвращает число врагов в коллекции
func (m *Manager) Count() int {
	return len(m.enemies)
}

// Clear удаляет всех врагов (рестарт уровня)
func (m *Manager) Clear() {
	m.enemies = nil
}
