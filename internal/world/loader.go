package world

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// levelJSON — сырое представление файла уровня. Числа читаются как
// json.Number, чтобы отличить целые от дробных: молчаливое приведение
// запрещено, загрузчик обязан отвергать, а не исправлять
type levelJSON struct {
	Name       string          `json:"name"`
	Width      *json.Number    `json:"width"`
	Height     *json.Number    `json:"height"`
	Tiles      [][]json.Number `json:"tiles"`
	Entities   []entityJSON    `json:"entities"`
	Modes      []string        `json:"modes"`
	Background string          `json:"background"`
	Music      string          `json:"music"`
}

type entityJSON struct {
	Type    *string      `json:"type"`
	X       *json.Number `json:"x"`
	Y       *json.Number `json:"y"`
	Subtype string       `json:"subtype"`
}

// ParseLevel разбирает и валидирует JSON уровня.
// При любом нарушении возвращает *LevelFormatError и nil-данные:
// частичная установка уровня исключена по построению
func ParseLevel(data []byte) (*LevelData, error) {
	var raw levelJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &LevelFormatError{Field: "json", Reason: err.Error()}
	}

	if raw.Name == "" {
		return nil, &LevelFormatError{Field: "name", Reason: "имя уровня обязательно"}
	}

	width, err := requirePositiveInt("width", raw.Width)
	if err != nil {
		return nil, err
	}
	height, err := requirePositiveInt("height", raw.Height)
	if err != nil {
		return nil, err
	}

	if len(raw.Tiles) != height {
		return nil, &LevelFormatError{
			Field:  "tiles",
			Reason: fmt.Sprintf("ожидается %d строк, получено %d", height, len(raw.Tiles)),
		}
	}

	tiles := make([][]int, height)
	for y, row := range raw.Tiles {
		if len(row) != width {
			return nil, &LevelFormatError{
				Field:  "tiles",
				Reason: fmt.Sprintf("строка %d: ожидается %d тайлов, получено %d", y, width, len(row)),
			}
		}
		tiles[y] = make([]int, width)
		for x, cell := range row {
			id, err := cell.Int64()
			if err != nil {
				return nil, &LevelFormatError{
					Field:  "tiles",
					Reason: fmt.Sprintf("тайл [%d][%d]: значение %q не целое", y, x, cell.String()),
				}
			}
			if id < 0 {
				return nil, &LevelFormatError{
					Field:  "tiles",
					Reason: fmt.Sprintf("тайл [%d][%d]: отрицательный id %d", y, x, id),
				}
			}
			tiles[y][x] = int(id)
		}
	}

	entities := make([]EntitySpec, 0, len(raw.Entities))
	for i, ent := range raw.Entities {
		spec, err := validateEntity(i, ent, width, height)
		if err != nil {
			return nil, err
		}
		entities = append(entities, spec)
	}

	return &LevelData{
		Name:       raw.Name,
		Width:      width,
		Height:     height,
		Tiles:      tiles,
		Entities:   entities,
		Modes:      raw.Modes,
		Background: raw.Background,
		Music:      raw.Music,
	}, nil
}

// LoadLevelFile читает уровень с диска; файлы с суффиксом .gz
// прозрачно распаковываются
func LoadLevelFile(path string) (*LevelData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("открытие файла уровня: %w", err)
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("распаковка уровня %s: %w", path, err)
		}
		defer gz.Close()
		reader = gz
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("чтение файла уровня %s: %w", path, err)
	}
	return ParseLevel(data)
}

// SaveLevelFile сериализует уровень на диск; суффикс .gz включает сжатие
func SaveLevelFile(path string, level *LevelData) error {
	data, err := marshalLevel(level)
	if err != nil {
		return err
	}

	if strings.HasSuffix(path, ".gz") {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("создание файла уровня: %w", err)
		}
		defer f.Close()

		gz := gzip.NewWriter(f)
		if _, err := gz.Write(data); err != nil {
			return fmt.Errorf("сжатие уровня: %w", err)
		}
		return gz.Close()
	}

	return os.WriteFile(path, data, 0644)
}

func marshalLevel(level *LevelData) ([]byte, error) {
	out := map[string]interface{}{
		"name":       level.Name,
		"width":      level.Width,
		"height":     level.Height,
		"tiles":      level.Tiles,
		"modes":      level.Modes,
		"background": level.Background,
		"music":      level.Music,
	}

	ents := make([]map[string]interface{}, 0, len(level.Entities))
	for _, e := range level.Entities {
		m := map[string]interface{}{"type": e.Type, "x": e.X, "y": e.Y}
		if e.Subtype != "" {
			m["subtype"] = e.Subtype
		}
		ents = append(ents, m)
	}
	out["entities"] = ents

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("сериализация уровня: %w", err)
	}
	return data, nil
}

func requirePositiveInt(field string, n *json.Number) (int, error) {
	if n == nil {
		return 0, &LevelFormatError{Field: field, Reason: "поле обязательно"}
	}
	v, err := n.Int64()
	if err != nil {
		return 0, &LevelFormatError{Field: field, Reason: fmt.Sprintf("значение %q не целое", n.String())}
	}
	if v <= 0 {
		return 0, &LevelFormatError{Field: field, Reason: fmt.Sprintf("значение должно быть > 0, получено %d", v)}
	}
	return int(v), nil
}

func validateEntity(index int, ent entityJSON, width, height int) (EntitySpec, error) {
	field := fmt.Sprintf("entities[%d]", index)

	if ent.Type == nil || *ent.Type == "" {
		return EntitySpec{}, &LevelFormatError{Field: field, Reason: "тип сущности обязателен"}
	}

	x, err := requireCoord(field+".x", ent.X, width)
	if err != nil {
		return EntitySpec{}, err
	}
	y, err := requireCoord(field+".y", ent.Y, height)
	if err != nil {
		return EntitySpec{}, err
	}

	return EntitySpec{Type: *ent.Type, X: x, Y: y, Subtype: ent.Subtype}, nil
}

func requireCoord(field string, n *json.Number, limit int) (int, error) {
	if n == nil {
		return 0, &LevelFormatError{Field: field, Reason: "координата обязательна"}
	}
	v, err := n.Int64()
	if err != nil {
		return 0, &LevelFormatError{Field: field, Reason: fmt.Sprintf("значение %q не целое", n.String())}
	}
	if v < 0 || v >= int64(limit) {
		return 0, &LevelFormatError{
			Field:  field,
			Reason: fmt.Sprintf("координата %d вне диапазона [0, %d)", v, limit),
		}
	}
	return int(v), nil
}
