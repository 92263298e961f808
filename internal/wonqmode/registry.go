package wonqmode

import "fmt"

// activeMode учёт одного активного режима
type activeMode struct {
	kind      Kind
	elapsed   float64
	remaining float64 // 0 при бессрочном режиме
}

// Registry управляет набором активных режимов-модификаторов.
// Мутируется только явными Activate/Deactivate, никогда из хуков.
type Registry struct {
	specs     map[Kind]Spec
	active    []*activeMode // в порядке активации
	cooldowns map[Kind]float64
}

// NewRegistry создаёт реестр со встроенными режимами
func NewRegistry() *Registry {
	return &Registry{
		specs:     builtinSpecs(),
		cooldowns: make(map[Kind]float64),
	}
}

// Register добавляет или заменяет режим в реестре
func (r *Registry) Register(kind Kind, spec Spec) {
	r.specs[kind] = spec
}

// Activate включает режим. Отказывает, если режим неизвестен,
// уже активен или на перезарядке.
func (r *Registry) Activate(kind Kind) error {
	spec, ok := r.specs[kind]
	if !ok {
		return fmt.Errorf("неизвестный режим %q", kind)
	}
	if r.IsActive(kind) {
		return fmt.Errorf("режим %q уже активен", kind)
	}
	if r.cooldowns[kind] > 0 {
		return fmt.Errorf("режим %q на перезарядке (осталось %.1f с)", kind, r.cooldowns[kind])
	}

	r.active = append(r.active, &activeMode{kind: kind, remaining: spec.Duration})
	return nil
}

// Deactivate выключает режим и запускает его перезарядку
func (r *Registry) Deactivate(kind Kind) {
	for i, am := range r.active {
		if am.kind == kind {
			r.active = append(r.active[:i], r.active[i+1:]...)
			if cd := r.specs[kind].Cooldown; cd > 0 {
				r.cooldowns[kind] = cd
			}
			return
		}
	}
}

// IsActive проверяет, активен ли режим
func (r *Registry) IsActive(kind Kind) bool {
	for _, am := range r.active {
		if am.kind == kind {
			return true
		}
	}
	return false
}

// ActiveModes возвращает активные режимы в порядке активации
func (r *Registry) ActiveModes() []Kind {
	kinds := make([]Kind, 0, len(r.active))
	for _, am := range r.active {
		kinds = append(kinds, am.kind)
	}
	return kinds
}

// CooldownRemaining возвращает остаток перезарядки режима
func (r *Registry) CooldownRemaining(kind Kind) float64 {
	return r.cooldowns[kind]
}

// Tick продвигает таймеры длительности и перезарядки.
// Истёкшие режимы снимаются (копия-затем-фильтр, чтобы не мутировать
// срез во время обхода).
func (r *Registry) Tick(dt float64) {
	expired := make([]Kind, 0)
	for _, am := range r.active {
		am.elapsed += dt
		if am.remaining > 0 {
			am.remaining -= dt
			if am.remaining <= 0 {
				expired = append(expired, am.kind)
			}
		}
	}
	for _, kind := range expired {
		r.Deactivate(kind)
	}

	for kind, cd := range r.cooldowns {
		cd -= dt
		if cd <= 0 {
			delete(r.cooldowns, kind)
		} else {
			r.cooldowns[kind] = cd
		}
	}
}

// Apply прогоняет параметры через трансформации активных режимов
// в порядке активации
func (r *Registry) Apply(in Inputs) Inputs {
	for _, am := range r.active {
		in = r.specs[am.kind].Transform(in, am.elapsed)
	}
	return in
}
