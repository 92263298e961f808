package projectile

import (
	"github.com/annel0/qeen-game/internal/entity"
	"github.com/annel0/qeen-game/internal/vec"
)

const (
	// DefaultSpeed скорость снаряда по умолчанию (пиксели/с)
	DefaultSpeed = 500

	// DefaultDamage урон снаряда по умолчанию
	DefaultDamage = 10

	// DefaultLifetime время жизни снаряда в секундах
	DefaultLifetime = 3.0

	// Size сторона квадратного хитбокса снаряда
	Size = 8
)

// Projectile представляет снаряд: линейный или баллистический полёт,
// обратный отсчёт жизни, учёт уже поражённых целей
type Projectile struct {
	Ent         *entity.Entity
	Damage      int
	Lifetime    float64
	OwnerID     uint64
	Penetrating bool
	Gravity     int  // 0 — линейный полёт
	FromPlayer  bool // чей снаряд — определяет допустимые цели

	hit map[uint64]bool
}

// New создаёт снаряд: скорость = нормализованное направление × speed,
// зафиксированная в момент выстрела
func New(owner uint64, from vec.Vec2, dir vec.Vec2Float, speed, damage int) *Projectile {
	ent := entity.NewEntity(entity.KindProjectile, from, vec.Vec2{X: Size, Y: Size})
	v := dir.Normalized().Mul(float64(speed))
	ent.Body.Velocity = v.ToVec2()
	if v.X < 0 {
		ent.Facing = entity.FacingLeft
	}

	return &Projectile{
		Ent:      ent,
		Damage:   damage,
		Lifetime: DefaultLifetime,
		OwnerID:  owner,
		hit:      make(map[uint64]bool),
	}
}

// HasHit проверяет, была ли цель уже поражена этим снарядом
func (p *Projectile) HasHit(targetID uint64) bool {
	return p.hit[targetID]
}

// markHit запоминает поражённую цель (защита от двойного попадания
// пробивающих снарядов)
func (p *Projectile) markHit(targetID uint64) {
	p.hit[targetID] = true
}
