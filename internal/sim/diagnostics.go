package sim

import (
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/process"
)

// LiveCounter сообщает число живых объектов рендера (render.Arena)
type LiveCounter interface {
	Live() int
}

// Snapshot снимок диагностики для оверлея или лога
type Snapshot struct {
	Uptime     time.Duration
	CPUPercent float64 // Загрузка CPU процессом с прошлого снимка
	RSSMB      float64
	HeapMB     float64
	Goroutines int
	Entities   int // Живые объекты рендера, -1 если неизвестно
	FrameTime  time.Duration
}

// FPS шагов в секунду по последнему кадру
func (s Snapshot) FPS() float64 {
	if s.FrameTime <= 0 {
		return 0
	}
	return float64(time.Second) / float64(s.FrameTime)
}

func (s Snapshot) String() string {
	return fmt.Sprintf("uptime=%s fps=%.0f frame=%s cpu=%.1f%% rss=%.1fMB heap=%.1fMB goroutines=%d entities=%d",
		FormatUptime(s.Uptime), s.FPS(), s.FrameTime, s.CPUPercent, s.RSSMB, s.HeapMB, s.Goroutines, s.Entities)
}

// Diagnostics собирает показатели процесса и симуляции
type Diagnostics struct {
	StartTime time.Time

	entities LiveCounter
	proc     *process.Process

	mu        sync.Mutex
	frameTime time.Duration
}

// NewDiagnostics создаёт сборщик. entities может быть nil.
func NewDiagnostics(entities LiveCounter) (*Diagnostics, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, fmt.Errorf("процесс %d: %w", os.Getpid(), err)
	}

	d := &Diagnostics{
		StartTime: time.Now(),
		entities:  entities,
		proc:      proc,
	}
	// Первый вызов Percent задаёт точку отсчёта
	_, _ = proc.Percent(0)
	return d, nil
}

// RecordFrame запоминает длительность последнего шага
func (d *Diagnostics) RecordFrame(dt time.Duration) {
	d.mu.Lock()
	d.frameTime = dt
	d.mu.Unlock()
}

// Sample снимает показатели. Ошибки gopsutil не фатальны: поле остаётся нулевым.
func (d *Diagnostics) Sample() Snapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	d.mu.Lock()
	frame := d.frameTime
	d.mu.Unlock()

	s := Snapshot{
		Uptime:     time.Since(d.StartTime),
		HeapMB:     float64(m.HeapAlloc) / 1024 / 1024,
		Goroutines: runtime.NumGoroutine(),
		Entities:   -1,
		FrameTime:  frame,
	}
	if d.entities != nil {
		s.Entities = d.entities.Live()
	}

	if cpu, err := d.proc.Percent(0); err == nil {
		s.CPUPercent = cpu
	}
	if mem, err := d.proc.MemoryInfo(); err == nil {
		s.RSSMB = float64(mem.RSS) / 1024 / 1024
	}
	return s
}

// FormatUptime форматирует длительность как "1д 2ч 3м 4с", опуская старшие нули
func FormatUptime(uptime time.Duration) string {
	days := int(uptime.Hours()) / 24
	hours := int(uptime.Hours()) % 24
	minutes := int(uptime.Minutes()) % 60
	seconds := int(uptime.Seconds()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dд %dч %dм %dс", days, hours, minutes, seconds)
	case hours > 0:
		return fmt.Sprintf("%dч %dм %dс", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dм %dс", minutes, seconds)
	default:
		return fmt.Sprintf("%dс", seconds)
	}
}
