package geom

// Circle is a circular collision shape. Position is carried by the owning
// entity, not the shape, so one shape value can be tested at any center.
type Circle struct {
	Radius float64
}

func NewCircle(radius float64) Circle {
	return Circle{Radius: radius}
}

// Intersects reports whether the circle centered at pos overlaps other
// centered at otherPos. Touching circles (distance exactly equal to the
// combined radii) do not intersect.
func (c Circle) Intersects(other Circle, pos, otherPos Vec2) bool {
	combined := c.Radius + other.Radius
	return pos.Sub(otherPos).LengthSquared() < combined*combined
}
