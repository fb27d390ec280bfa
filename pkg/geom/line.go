package geom

// Line represents a full bidirectional line through Point along
// Direction, parametrized as Point + d*Direction for any real d.
// It is not a ray: negative parameters are valid solutions, and the
// intersection solver deliberately reports them. Direction is not
// required to be normalized.
type Line struct {
	Point     Vector3
	Direction Vector3
}

// NewLine returns the line through point along direction.
func NewLine(point, direction Vector3) Line {
	return Line{Point: point, Direction: direction}
}

// At returns the point on the line at parameter d.
func (l Line) At(d float64) Vector3 {
	return l.Point.Add(l.Direction.Scale(d))
}
