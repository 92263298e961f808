package entity

import "fmt"

// InvalidStateTransitionError возникает при запросе неизвестного
// состояния конечного автомата. Это ошибка программиста — она должна
// всплывать громко, а не превращаться в молчаливый no-op.
type InvalidStateTransitionError struct {
	Machine   string // Имя автомата (player, enemy…)
	Requested string // Запрошенное состояние
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("автомат %s: неизвестное состояние %q", e.Machine, e.Requested)
}
