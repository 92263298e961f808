package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v3"

	"github.com/annel0/qeen-game/internal/logging"
)

const progressKeyPrefix = "progress:"

// BadgerProgressRepo хранит прогресс в embedded BadgerDB
type BadgerProgressRepo struct {
	db *badger.DB
}

// NewBadgerProgressRepo открывает (или создаёт) базу в указанном каталоге
func NewBadgerProgressRepo(dataDir string) (*BadgerProgressRepo, error) {
	opts := badger.DefaultOptions(dataDir)
	opts.Logger = nil // Badger шумит в stdout; свой лог нам дороже

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("открытие BadgerDB в %s: %w", dataDir, err)
	}

	logging.Info("Хранилище прогресса открыто: %s", dataDir)
	return &BadgerProgressRepo{db: db}, nil
}

func progressKey(levelName string) []byte {
	return []byte(progressKeyPrefix + levelName)
}

func (r *BadgerProgressRepo) Save(_ context.Context, p *Progress) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("сериализация прогресса: %w", err)
	}

	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(progressKey(p.LevelName), data)
	})
}

func (r *BadgerProgressRepo) Get(_ context.Context, levelName string) (*Progress, error) {
	var p *Progress

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(progressKey(levelName))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			p = &Progress{}
			return json.Unmarshal(val, p)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("чтение прогресса %q: %w", levelName, err)
	}
	return p, nil
}

func (r *BadgerProgressRepo) List(_ context.Context) ([]*Progress, error) {
	var out []*Progress

	err := r.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(progressKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				p := &Progress{}
				if err := json.Unmarshal(val, p); err != nil {
					name := strings.TrimPrefix(string(it.Item().Key()), progressKeyPrefix)
					return fmt.Errorf("повреждённая запись %q: %w", name, err)
				}
				out = append(out, p)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *BadgerProgressRepo) Close() error {
	return r.db.Close()
}
