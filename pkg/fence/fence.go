// Package fence отбрасывает устаревшие результаты асинхронных запросов.
//
// Каждый запрос получает монотонный тикет в рамках ключа (например, сессия + экран).
// Результат применяется, только если его тикет всё ещё последний выданный для ключа:
// быстрые повторные запросы с новыми фильтрами не могут быть перезаписаны
// медленным ответом на старые.
package fence

import (
	"sync"
	"time"
)

// Ticket выданный номер запроса
type Ticket struct {
	Key string
	ID  uint64
}

type entry struct {
	id     uint64
	issued time.Time
}

// Fence хранит последний выданный тикет по каждому ключу
// Номера берутся из общего счетчика, поэтому не повторяются даже после Forget и Prune
type Fence struct {
	mu     sync.Mutex
	seq    uint64
	latest map[string]entry
	now    func() time.Time
}

func New() *Fence {
	return &Fence{
		latest: make(map[string]entry),
		now:    time.Now,
	}
}

// Issue выдает новый тикет для ключа; все ранее выданные тикеты ключа становятся устаревшими
func (f *Fence) Issue(key string) Ticket {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.seq++
	f.latest[key] = entry{id: f.seq, issued: f.now()}
	return Ticket{Key: key, ID: f.seq}
}

// IsCurrent проверяет, что тикет последний для своего ключа
func (f *Fence) IsCurrent(t Ticket) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	e, ok := f.latest[t.Key]
	return ok && e.id == t.ID
}

// Commit выполняет apply под блокировкой, только если тикет актуален
// Возвращает false, если результат отброшен
func (f *Fence) Commit(t Ticket, apply func()) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if e, ok := f.latest[t.Key]; !ok || e.id != t.ID {
		return false
	}
	apply()
	return true
}

// Forget удаляет ключ (например, при завершении сессии)
func (f *Fence) Forget(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.latest, key)
}

// Prune удаляет ключи, последний тикет которых выдан раньше before
// Тикет удаленного ключа больше не считается актуальным
func (f *Fence) Prune(before time.Time) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	removed := 0
	for key, e := range f.latest {
		if e.issued.Before(before) {
			delete(f.latest, key)
			removed++
		}
	}
	return removed
}

// Len количество отслеживаемых ключей
func (f *Fence) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.latest)
}
