package model

import (
	"strconv"

	"github.com/openbcf/bcf/internal/xmltree"
)

// ThreeDVector is a plain three-component vector. Point and Direction
// specialize it in name only; the visinfo schema serializes all of them as
// three float children.
type ThreeDVector struct {
	base
	X, Y, Z float64
}

// NewThreeDVector creates a vector with the given XML tag.
func NewThreeDVector(x, y, z float64, tag string, parent Node) *ThreeDVector {
	return &ThreeDVector{base: newBase(tag, parent, Original), X: x, Y: y, Z: z}
}

// Equal compares component-wise.
func (v *ThreeDVector) Equal(other *ThreeDVector) bool {
	return other != nil && v.X == other.X && v.Y == other.Y && v.Z == other.Z
}

func (v *ThreeDVector) Search(id uint64) Node {
	if v.id == id {
		return v
	}
	return nil
}

// Vectors are not dirty-tracked on their own; their container opts in.
func (v *ThreeDVector) StateList() []StateEntry { return ownEntry(v) }

// Element renders the vector under the given tag. Viewpoint containers name
// the same value differently (CameraViewPoint, Location, ...), so the tag is
// supplied by the caller.
func (v *ThreeDVector) Element(tag string) *xmltree.Element {
	el := xmltree.New(tag)
	el.AddText("X", formatFloat(v.X))
	el.AddText("Y", formatFloat(v.Y))
	el.AddText("Z", formatFloat(v.Z))
	return el
}

// Clone reconstructs the vector independent of any parent.
func (v *ThreeDVector) Clone() *ThreeDVector {
	cpy := *v
	cpy.base = v.base.cloneBase()
	return &cpy
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Point is a position in model space (visinfo.xsd:Point).
type Point struct {
	ThreeDVector
}

// NewPoint creates a point.
func NewPoint(x, y, z float64, parent Node) *Point {
	return &Point{ThreeDVector: *NewThreeDVector(x, y, z, "Point", parent)}
}

// Clone reconstructs the point independent of any parent.
func (p *Point) Clone() *Point {
	return &Point{ThreeDVector: *p.ThreeDVector.Clone()}
}

// Direction is a direction vector (visinfo.xsd:Direction).
type Direction struct {
	ThreeDVector
}

// NewDirection creates a direction vector.
func NewDirection(x, y, z float64, parent Node) *Direction {
	return &Direction{ThreeDVector: *NewThreeDVector(x, y, z, "Direction", parent)}
}

// Clone reconstructs the direction independent of any parent.
func (d *Direction) Clone() *Direction {
	return &Direction{ThreeDVector: *d.ThreeDVector.Clone()}
}

// Line is a line segment through model space (visinfo.xsd:Line).
type Line struct {
	base
	start *Point
	end   *Point
}

// NewLine creates a line and re-parents both endpoints to it.
func NewLine(start, end *Point, parent Node) *Line {
	l := &Line{base: newBase("Line", parent, Original), start: start, end: end}
	if l.start != nil {
		l.start.SetParent(l)
	}
	if l.end != nil {
		l.end.SetParent(l)
	}
	return l
}

func (l *Line) Start() *Point { return l.start }
func (l *Line) End() *Point   { return l.end }

func (l *Line) Equal(other *Line) bool {
	return other != nil && l.start.Equal(&other.start.ThreeDVector) &&
		l.end.Equal(&other.end.ThreeDVector)
}

func (l *Line) Search(id uint64) Node {
	if l.id == id {
		return l
	}
	return searchNodes(id, l.start, l.end)
}

func (l *Line) StateList() []StateEntry { return ownEntry(l) }

// Element renders the line as two nested points.
func (l *Line) Element() *xmltree.Element {
	el := xmltree.New(l.tag)
	el.Add(l.start.Element("StartPoint"))
	el.Add(l.end.Element("EndPoint"))
	return el
}

// Clone reconstructs the line independent of any parent.
func (l *Line) Clone() *Line {
	cpy := &Line{base: l.base.cloneBase(), start: l.start.Clone(), end: l.end.Clone()}
	cpy.start.SetParent(cpy)
	cpy.end.SetParent(cpy)
	return cpy
}

// ClippingPlane cuts the model along a plane (visinfo.xsd:ClippingPlane).
// Everything on the side of the plane that direction points to is clipped
// away.
type ClippingPlane struct {
	base
	location  *Point
	direction *Direction
}

// NewClippingPlane creates a clipping plane and re-parents its members.
func NewClippingPlane(location *Point, direction *Direction, parent Node) *ClippingPlane {
	p := &ClippingPlane{base: newBase("ClippingPlane", parent, Original), location: location, direction: direction}
	if p.location != nil {
		p.location.SetParent(p)
	}
	if p.direction != nil {
		p.direction.SetParent(p)
	}
	return p
}

func (p *ClippingPlane) Location() *Point     { return p.location }
func (p *ClippingPlane) Direction() *Direction { return p.direction }

func (p *ClippingPlane) Equal(other *ClippingPlane) bool {
	return other != nil && p.location.Equal(&other.location.ThreeDVector) &&
		p.direction.Equal(&other.direction.ThreeDVector)
}

func (p *ClippingPlane) Search(id uint64) Node {
	if p.id == id {
		return p
	}
	return searchNodes(id, p.location, p.direction)
}

func (p *ClippingPlane) StateList() []StateEntry { return ownEntry(p) }

// Element renders the plane as a location and a direction.
func (p *ClippingPlane) Element() *xmltree.Element {
	el := xmltree.New(p.tag)
	el.Add(p.location.Element("Location"))
	el.Add(p.direction.Element("Direction"))
	return el
}

// Clone reconstructs the plane independent of any parent.
func (p *ClippingPlane) Clone() *ClippingPlane {
	cpy := &ClippingPlane{base: p.base.cloneBase(), location: p.location.Clone(), direction: p.direction.Clone()}
	cpy.location.SetParent(cpy)
	cpy.direction.SetParent(cpy)
	return cpy
}
