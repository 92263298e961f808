package diag

import (
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/annel0/qeen-game/internal/logging"
)

// Snapshot агрегирует показатели процесса и системы на момент съёма
type Snapshot struct {
	Timestamp   time.Time
	CPUPercent  float64 // загрузка CPU процессом
	MemoryMB    float64 // RSS процесса в мегабайтах
	SystemMemPC float64 // занятость памяти системы в процентах
	Goroutines  int
}

// Collect снимает показатели текущего процесса.
// Ошибки отдельных датчиков не фатальны: недоступное поле остаётся
// нулевым, диагностика не роняет игру
func Collect() Snapshot {
	s := Snapshot{
		Timestamp:  time.Now(),
		Goroutines: runtime.NumGoroutine(),
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		s.SystemMemPC = vm.UsedPercent
	}

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return s
	}
	if pc, err := proc.CPUPercent(); err == nil {
		s.CPUPercent = pc
	}
	if mi, err := proc.MemoryInfo(); err == nil {
		s.MemoryMB = float64(mi.RSS) / (1024 * 1024)
	}

	return s
}

// LogSystemInfo пишет в лог сводку о машине при старте
func LogSystemInfo() {
	counts, _ := cpu.Counts(true)
	logging.Info("Система: %s/%s, %d логических CPU, Go %s",
		runtime.GOOS, runtime.GOARCH, counts, runtime.Version())

	if vm, err := mem.VirtualMemory(); err == nil {
		logging.Info("Память: %.1f ГБ всего, занято %.1f%%",
			float64(vm.Total)/(1024*1024*1024), vm.UsedPercent)
	}
}

// StartReporter периодически пишет снапшоты в лог, пока не закрыт stop
func StartReporter(interval time.Duration) (stop func()) {
	quit := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s := Collect()
				logging.Debug("Диагностика: cpu=%.1f%% rss=%.1fMB sysmem=%.1f%% goroutines=%d",
					s.CPUPercent, s.MemoryMB, s.SystemMemPC, s.Goroutines)
			case <-quit:
				return
			}
		}
	}()
	return func() { close(quit) }
}
