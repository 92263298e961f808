package vec

import "math"

// Vec2 представляет 2D координаты в пикселях.
// Вся симуляция работает на целых числах — это гарантирует
// детерминированную физику без дрейфа от плавающей точки.
type Vec2 struct {
	X, Y int
}

// Add складывает два вектора и возвращает новый
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub вычитает вектор и возвращает новый
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{X: v.X - other.X, Y: v.Y - other.Y}
}

// Mul умножает вектор на целочисленный скаляр
func (v Vec2) Mul(scalar int) Vec2 {
	return Vec2{X: v.X * scalar, Y: v.Y * scalar}
}

// Scale умножает вектор на дробный скаляр с усечением к целому.
// Усечение (не округление) — часть контракта физики.
func (v Vec2) Scale(factor float64) Vec2 {
	return Vec2{X: int(float64(v.X) * factor), Y: int(float64(v.Y) * factor)}
}

// ToTileCoords преобразует пиксельные координаты в координаты тайла
func (v Vec2) ToTileCoords(tileSize int) Vec2 {
	return Vec2{X: floorDiv(v.X, tileSize), Y: floorDiv(v.Y, tileSize)}
}

// DistanceTo вычисляет расстояние до другой точки
func (v Vec2) DistanceTo(other Vec2) float64 {
	dx := float64(v.X - other.X)
	dy := float64(v.Y - other.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// Length возвращает длину вектора
func (v Vec2) Length() float64 {
	return math.Sqrt(float64(v.X*v.X + v.Y*v.Y))
}

// IsZero проверяет, является ли вектор нулевым
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// floorDiv целочисленное деление с округлением вниз (для отрицательных координат)
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
