package physics

import (
	"sort"

	"github.com/annel0/qeen-game/internal/vec"
)

// Rect представляет AABB в пиксельных координатах
type Rect struct {
	X, Y, W, H int
}

// Intersects проверяет пересечение двух прямоугольников
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.W &&
		r.X+r.W > other.X &&
		r.Y < other.Y+other.H &&
		r.Y+r.H > other.Y
}

// Center возвращает центр прямоугольника
func (r Rect) Center() vec.Vec2 {
	return vec.Vec2{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Contains проверяет, находится ли точка внутри прямоугольника
func (r Rect) Contains(p vec.Vec2) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Expand возвращает прямоугольник, расширенный на margin во все стороны
func (r Rect) Expand(margin int) Rect {
	return Rect{X: r.X - margin, Y: r.Y - margin, W: r.W + margin*2, H: r.H + margin*2}
}

// Hit описывает одно столкновение: нормаль контакта (ось минимального
// перекрытия), глубину проникновения и индекс тайла (для тайловых коллизий)
type Hit struct {
	Normal vec.Vec2
	Depth  int
	Tile   vec.Vec2
}

// AABBCollision вычисляет детали пересечения a и b.
// Нормаль направлена от b к a по оси минимального перекрытия.
func AABBCollision(a, b Rect) (Hit, bool) {
	if !a.Intersects(b) {
		return Hit{}, false
	}

	overlapX := minInt(a.X+a.W, b.X+b.W) - maxInt(a.X, b.X)
	overlapY := minInt(a.Y+a.H, b.Y+b.H) - maxInt(a.Y, b.Y)

	var hit Hit
	if overlapX < overlapY {
		hit.Depth = overlapX
		if a.Center().X < b.Center().X {
			hit.Normal = vec.Vec2{X: -1}
		} else {
			hit.Normal = vec.Vec2{X: 1}
		}
	} else {
		hit.Depth = overlapY
		if a.Center().Y < b.Center().Y {
			hit.Normal = vec.Vec2{Y: -1}
		} else {
			hit.Normal = vec.Vec2{Y: 1}
		}
	}

	return hit, true
}

// Resolver разрешает столкновения тел с тайловой сеткой.
// solid — функция проверки твёрдости тайла; индексы за пределами
// уровня она обязана считать пустыми (не ошибкой).
type Resolver struct {
	TileSize int
	Solid    func(tile vec.Vec2) bool
}

// NewResolver создаёт резолвер для указанной функции твёрдости тайлов
func NewResolver(solid func(tile vec.Vec2) bool) *Resolver {
	return &Resolver{TileSize: TileSize, Solid: solid}
}

// TileRect возвращает прямоугольник тайла в пиксельных координатах
func (cs *Resolver) TileRect(tile vec.Vec2) Rect {
	return Rect{X: tile.X * cs.TileSize, Y: tile.Y * cs.TileSize, W: cs.TileSize, H: cs.TileSize}
}

// TileHits находит все столкновения прямоугольника с твёрдыми тайлами.
// Диапазон индексов: floor(pos/ts) .. floor((pos+size)/ts) включительно.
func (cs *Resolver) TileHits(r Rect) []Hit {
	minTile := vec.Vec2{X: r.X, Y: r.Y}.ToTileCoords(cs.TileSize)
	maxTile := vec.Vec2{X: r.X + r.W, Y: r.Y + r.H}.ToTileCoords(cs.TileSize)

	var hits []Hit
	for ty := minTile.Y; ty <= maxTile.Y; ty++ {
		for tx := minTile.X; tx <= maxTile.X; tx++ {
			tile := vec.Vec2{X: tx, Y: ty}
			if !cs.Solid(tile) {
				continue
			}
			if hit, ok := AABBCollision(r, cs.TileRect(tile)); ok {
				hit.Tile = tile
				hits = append(hits, hit)
			}
		}
	}

	return hits
}

// Resolve применяет одно столкновение к телу: смещает позицию на глубину
// вдоль нормали и обнуляет компонент скорости по оси нормали.
// Нормаль, направленная вверх, означает опору под ногами.
func (cs *Resolver) Resolve(b *Body, hit Hit) {
	b.Position = b.Position.Add(hit.Normal.Mul(hit.Depth))

	if hit.Normal.X != 0 {
		b.Velocity.X = 0
	}
	if hit.Normal.Y != 0 {
		b.Velocity.Y = 0
	}
	if hit.Normal.Y < 0 {
		b.Grounded = true
	}
}

// ResolveAll разрешает все столкновения за тик: сортировка по глубине
// по возрастанию (сначала самые мелкие) и последовательное применение —
// именно этот порядок даёт скольжение вдоль стены вместо туннелирования.
// Перед применением каждое столкновение перепроверяется с учётом уже
// внесённых коррекций позиции.
func (cs *Resolver) ResolveAll(b *Body, hits []Hit) {
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Depth < hits[j].Depth
	})

	for _, hit := range hits {
		current, ok := AABBCollision(b.Rect(), cs.TileRect(hit.Tile))
		if !ok {
			continue // уже вытолкнуло предыдущей коррекцией
		}
		current.Tile = hit.Tile
		cs.Resolve(b, current)
	}
}

// Step выполняет полный физический шаг тела: интегрирование движения
// и разрешение столкновений с тайлами по направленной политике:
//   - потолок проверяется только при движении вверх;
//   - земля — только при движении вниз (по всей ширине ног);
//   - стены — только в ряду тайлов на вертикальном центре тела
//     (позволяет перешагивать выступы в один тайл у ног).
func (cs *Resolver) Step(b *Body, dt float64) {
	movingDown := b.Velocity.Y >= 0

	b.Update(dt)
	b.Grounded = false

	hits := cs.TileHits(b.Rect())
	hits = cs.filterDirectional(b, hits, movingDown)
	cs.ResolveAll(b, hits)

	// Тело, стоящее ровно на границе тайла, не пересекается с ним —
	// опору подтверждаем зондом на 1 пиксель вниз по всей ширине ног
	if !b.Grounded && movingDown {
		b.Grounded = cs.groundProbe(b)
	}
}

// groundProbe проверяет наличие твёрдого тайла сразу под ногами тела
func (cs *Resolver) groundProbe(b *Body) bool {
	feetRow := vec.Vec2{X: 0, Y: b.Position.Y + b.Size.Y}.ToTileCoords(cs.TileSize).Y
	if (b.Position.Y+b.Size.Y)%cs.TileSize != 0 {
		return false // ноги не на границе тайла — опоры нет
	}

	left := vec.Vec2{X: b.Position.X, Y: 0}.ToTileCoords(cs.TileSize).X
	right := vec.Vec2{X: b.Position.X + b.Size.X - 1, Y: 0}.ToTileCoords(cs.TileSize).X
	for tx := left; tx <= right; tx++ {
		if cs.Solid(vec.Vec2{X: tx, Y: feetRow}) {
			return true
		}
	}
	return false
}

// filterDirectional отбрасывает столкновения, не подходящие под
// направленную политику проверок
func (cs *Resolver) filterDirectional(b *Body, hits []Hit, movingDown bool) []Hit {
	centerRow := vec.Vec2{X: 0, Y: b.Position.Y + b.Size.Y/2}.ToTileCoords(cs.TileSize).Y

	filtered := hits[:0]
	for _, hit := range hits {
		switch {
		case hit.Normal.Y < 0: // опора снизу
			if !movingDown {
				continue
			}
		case hit.Normal.Y > 0: // потолок
			if b.Velocity.Y >= 0 {
				continue
			}
		default: // стена
			if hit.Tile.Y != centerRow {
				continue
			}
		}
		filtered = append(filtered, hit)
	}

	return filtered
}

// Raycast пускает луч из origin в направлении dir с шагом TileSize/4
// и возвращает точку первого твёрдого тайла.
func (cs *Resolver) Raycast(origin vec.Vec2, dir vec.Vec2Float, maxDist float64) (vec.Vec2, bool) {
	step := float64(cs.TileSize) / 4.0
	d := dir.Normalized()

	for dist := 0.0; dist <= maxDist; dist += step {
		point := vec.Vec2{
			X: origin.X + int(d.X*dist),
			Y: origin.Y + int(d.Y*dist),
		}
		if cs.Solid(point.ToTileCoords(cs.TileSize)) {
			return point, true
		}
	}

	return vec.Vec2{}, false
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
