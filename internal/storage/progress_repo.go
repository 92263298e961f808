package storage

import (
	"context"
	"sync"
	"time"
)

// Progress хранит результат прохождения уровня
type Progress struct {
	LevelName string    `json:"level_name"`
	BestScore int       `json:"best_score"`
	Completed bool      `json:"completed"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProgressRepo интерфейс хранилища прогресса.
// Get возвращает (nil, nil) для неизвестного уровня
type ProgressRepo interface {
	Save(ctx context.Context, p *Progress) error
	Get(ctx context.Context, levelName string) (*Progress, error)
	List(ctx context.Context) ([]*Progress, error)
	Close() error
}

// RecordResult сливает результат забега с сохранённым прогрессом:
// лучший счёт только растёт, флаг прохождения не сбрасывается
func RecordResult(ctx context.Context, repo ProgressRepo, levelName string, score int, completed bool) error {
	existing, err := repo.Get(ctx, levelName)
	if err != nil {
		return err
	}

	p := &Progress{LevelName: levelName, BestScore: score, Completed: completed}
	if existing != nil {
		if existing.BestScore > p.BestScore {
			p.BestScore = existing.BestScore
		}
		p.Completed = p.Completed || existing.Completed
	}
	p.UpdatedAt = time.Now().UTC()

	return repo.Save(ctx, p)
}

//================ In-Memory implementation =================//

// MemoryProgressRepo хранит прогресс в памяти (тесты, быстрый старт)
type MemoryProgressRepo struct {
	mu      sync.RWMutex
	records map[string]Progress
}

// NewMemoryProgressRepo создаёт пустое хранилище в памяти
func NewMemoryProgressRepo() *MemoryProgressRepo {
	return &MemoryProgressRepo{records: make(map[string]Progress)}
}

func (r *MemoryProgressRepo) Save(_ context.Context, p *Progress) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[p.LevelName] = *p
	return nil
}

func (r *MemoryProgressRepo) Get(_ context.Context, levelName string) (*Progress, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.records[levelName]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *MemoryProgressRepo) List(_ context.Context) ([]*Progress, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Progress, 0, len(r.records))
	for _, p := range r.records {
		cp := p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *MemoryProgressRepo) Close() error {
	return nil
}
