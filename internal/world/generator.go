package world

import (
	"fmt"

	"github.com/annel0/qeen-game/internal/util"
)

// GeneratorOptions настраивает процедурный генератор уровня
type GeneratorOptions struct {
	Width     int
	Height    int
	Seed      int64
	Roughness float64 // масштаб шума по горизонтали; 0 — значение по умолчанию
}

const defaultRoughness = 0.08

// GenerateLevel строит полосу ландшафта по одномерному срезу шума
// Перлина: высота земли в каждом столбце берётся из шума, ниже неё —
// твёрдые тайлы. Результат проходит ту же валидацию, что и уровни с
// диска
func GenerateLevel(name string, opts GeneratorOptions) (*LevelData, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, &LevelFormatError{Field: "width", Reason: "размеры генерации должны быть > 0"}
	}

	roughness := opts.Roughness
	if roughness <= 0 {
		roughness = defaultRoughness
	}

	util.InitPerlinNoise(opts.Seed)

	tiles := make([][]int, opts.Height)
	for y := range tiles {
		tiles[y] = make([]int, opts.Width)
	}

	// Земля занимает нижнюю треть..две трети уровня
	minGround := opts.Height / 3
	if minGround < 1 {
		minGround = 1
	}
	span := opts.Height/3 + 1

	for x := 0; x < opts.Width; x++ {
		noise := util.PerlinNoise2D(float64(x)*roughness, 0, opts.Seed)
		groundHeight := minGround + int(noise*float64(span))
		if groundHeight >= opts.Height {
			groundHeight = opts.Height - 1
		}

		for y := opts.Height - groundHeight; y < opts.Height; y++ {
			tiles[y][x] = 1
		}
	}

	level := &LevelData{
		Name:   fmt.Sprintf("%s (seed %d)", name, opts.Seed),
		Width:  opts.Width,
		Height: opts.Height,
		Tiles:  tiles,
	}

	// Точка появления игрока — над землёй у левого края
	spawnY := surfaceRow(tiles, 1) - 2
	if spawnY < 0 {
		spawnY = 0
	}
	level.Entities = append(level.Entities, EntitySpec{Type: "player_spawn", X: 1, Y: spawnY})

	return level, nil
}

// surfaceRow возвращает индекс первой твёрдой строки в столбце
func surfaceRow(tiles [][]int, x int) int {
	for y := range tiles {
		if x < len(tiles[y]) && tiles[y][x] > 0 {
			return y
		}
	}
	return len(tiles) - 1
}
