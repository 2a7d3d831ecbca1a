package render

import (
	"sync"

	"github.com/google/uuid"
)

// ArenaStats счётчики арены
type ArenaStats struct {
	Spawned uint64
	Retired uint64
	Live    int
}

// Arena - in-memory реализация Sink: хранит живые объекты по хэндлу
type Arena struct {
	instances map[Handle]Instance
	stats     ArenaStats
	mu        sync.RWMutex
}

// NewArena создаёт пустую арену
func NewArena() *Arena {
	return &Arena{
		instances: make(map[Handle]Instance),
	}
}

// Spawn регистрирует объект и возвращает его хэндл
func (a *Arena) Spawn(inst Instance) Handle {
	h := Handle(uuid.New())

	a.mu.Lock()
	defer a.mu.Unlock()

	a.instances[h] = inst
	a.stats.Spawned++
	return h
}

// Retire удаляет объект. Возвращает false, если хэндл неизвестен.
func (a *Arena) Retire(h Handle) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.instances[h]; !exists {
		return false
	}
	delete(a.instances, h)
	a.stats.Retired++
	return true
}

// Get возвращает объект по хэндлу
func (a *Arena) Get(h Handle) (Instance, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	inst, exists := a.instances[h]
	return inst, exists
}

// Live возвращает количество живых объектов
func (a *Arena) Live() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.instances)
}

// Stats возвращает снимок счётчиков
func (a *Arena) Stats() ArenaStats {
	a.mu.RLock()
	defer a.mu.RUnlock()

	s := a.stats
	s.Live = len(a.instances)
	return s
}
