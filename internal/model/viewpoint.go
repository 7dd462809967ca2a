package model

import (
	"github.com/google/uuid"

	"github.com/openbcf/bcf/internal/xmltree"
)

// OrthogonalCamera holds an orthographic camera pose
// (visinfo.xsd:OrthogonalCamera).
type OrthogonalCamera struct {
	base
	viewPoint        *Point
	direction        *Direction
	upVector         *Direction
	viewToWorldScale float64
}

// NewOrthogonalCamera creates a camera and re-parents its vector members.
func NewOrthogonalCamera(viewPoint *Point, direction, upVector *Direction, scale float64, parent Node) *OrthogonalCamera {
	c := &OrthogonalCamera{
		base:             newBase("OrthogonalCamera", parent, Original),
		viewPoint:        viewPoint,
		direction:        direction,
		upVector:         upVector,
		viewToWorldScale: scale,
	}
	if c.viewPoint != nil {
		c.viewPoint.SetParent(c)
	}
	if c.direction != nil {
		c.direction.SetParent(c)
	}
	if c.upVector != nil {
		c.upVector.SetParent(c)
	}
	return c
}

func (c *OrthogonalCamera) ViewPoint() *Point        { return c.viewPoint }
func (c *OrthogonalCamera) CameraDirection() *Direction { return c.direction }
func (c *OrthogonalCamera) UpVector() *Direction     { return c.upVector }
func (c *OrthogonalCamera) ViewToWorldScale() float64 { return c.viewToWorldScale }

func (c *OrthogonalCamera) Equal(other *OrthogonalCamera) bool {
	return other != nil &&
		c.viewPoint.Equal(&other.viewPoint.ThreeDVector) &&
		c.direction.Equal(&other.direction.ThreeDVector) &&
		c.upVector.Equal(&other.upVector.ThreeDVector) &&
		c.viewToWorldScale == other.viewToWorldScale
}

func (c *OrthogonalCamera) Search(id uint64) Node {
	if c.id == id {
		return c
	}
	return searchNodes(id, c.viewPoint, c.direction, c.upVector)
}

func (c *OrthogonalCamera) StateList() []StateEntry { return ownEntry(c) }

func (c *OrthogonalCamera) Element() *xmltree.Element {
	el := xmltree.New(c.tag)
	el.Add(c.viewPoint.Element("CameraViewPoint"))
	el.Add(c.direction.Element("CameraDirection"))
	el.Add(c.upVector.Element("CameraUpVector"))
	el.AddText("ViewToWorldScale", formatFloat(c.viewToWorldScale))
	return el
}

// Clone reconstructs the camera independent of any parent.
func (c *OrthogonalCamera) Clone() *OrthogonalCamera {
	cpy := &OrthogonalCamera{
		base:             c.base.cloneBase(),
		viewPoint:        c.viewPoint.Clone(),
		direction:        c.direction.Clone(),
		upVector:         c.upVector.Clone(),
		viewToWorldScale: c.viewToWorldScale,
	}
	cpy.viewPoint.SetParent(cpy)
	cpy.direction.SetParent(cpy)
	cpy.upVector.SetParent(cpy)
	return cpy
}

// PerspectiveCamera holds a perspective camera pose
// (visinfo.xsd:PerspectiveCamera).
type PerspectiveCamera struct {
	base
	viewPoint   *Point
	direction   *Direction
	upVector    *Direction
	fieldOfView float64
}

// NewPerspectiveCamera creates a camera and re-parents its vector members.
func NewPerspectiveCamera(viewPoint *Point, direction, upVector *Direction, fov float64, parent Node) *PerspectiveCamera {
	c := &PerspectiveCamera{
		base:        newBase("PerspectiveCamera", parent, Original),
		viewPoint:   viewPoint,
		direction:   direction,
		upVector:    upVector,
		fieldOfView: fov,
	}
	if c.viewPoint != nil {
		c.viewPoint.SetParent(c)
	}
	if c.direction != nil {
		c.direction.SetParent(c)
	}
	if c.upVector != nil {
		c.upVector.SetParent(c)
	}
	return c
}

func (c *PerspectiveCamera) ViewPoint() *Point        { return c.viewPoint }
func (c *PerspectiveCamera) CameraDirection() *Direction { return c.direction }
func (c *PerspectiveCamera) UpVector() *Direction     { return c.upVector }
func (c *PerspectiveCamera) FieldOfView() float64     { return c.fieldOfView }

func (c *PerspectiveCamera) Equal(other *PerspectiveCamera) bool {
	return other != nil &&
		c.viewPoint.Equal(&other.viewPoint.ThreeDVector) &&
		c.direction.Equal(&other.direction.ThreeDVector) &&
		c.upVector.Equal(&other.upVector.ThreeDVector) &&
		c.fieldOfView == other.fieldOfView
}

func (c *PerspectiveCamera) Search(id uint64) Node {
	if c.id == id {
		return c
	}
	return searchNodes(id, c.viewPoint, c.direction, c.upVector)
}

func (c *PerspectiveCamera) StateList() []StateEntry { return ownEntry(c) }

func (c *PerspectiveCamera) Element() *xmltree.Element {
	el := xmltree.New(c.tag)
	el.Add(c.viewPoint.Element("CameraViewPoint"))
	el.Add(c.direction.Element("CameraDirection"))
	el.Add(c.upVector.Element("CameraUpVector"))
	el.AddText("FieldOfView", formatFloat(c.fieldOfView))
	return el
}

// Clone reconstructs the camera independent of any parent.
func (c *PerspectiveCamera) Clone() *PerspectiveCamera {
	cpy := &PerspectiveCamera{
		base:        c.base.cloneBase(),
		viewPoint:   c.viewPoint.Clone(),
		direction:   c.direction.Clone(),
		upVector:    c.upVector.Clone(),
		fieldOfView: c.fieldOfView,
	}
	cpy.viewPoint.SetParent(cpy)
	cpy.direction.SetParent(cpy)
	cpy.upVector.SetParent(cpy)
	return cpy
}

// Components records which model components a viewpoint shows: a default
// visibility plus the IFC guids excepted from it.
type Components struct {
	base
	visibilityDefault bool
	exceptions        []string
}

// NewComponents creates a visibility record.
func NewComponents(visibilityDefault bool, exceptions []string, parent Node) *Components {
	return &Components{
		base:              newBase("Components", parent, Original),
		visibilityDefault: visibilityDefault,
		exceptions:        exceptions,
	}
}

func (c *Components) VisibilityDefault() bool { return c.visibilityDefault }
func (c *Components) Exceptions() []string    { return c.exceptions }

func (c *Components) Equal(other *Components) bool {
	if other == nil || c.visibilityDefault != other.visibilityDefault ||
		len(c.exceptions) != len(other.exceptions) {
		return false
	}
	for i := range c.exceptions {
		if c.exceptions[i] != other.exceptions[i] {
			return false
		}
	}
	return true
}

func (c *Components) Search(id uint64) Node {
	if c.id == id {
		return c
	}
	return nil
}

func (c *Components) StateList() []StateEntry { return ownEntry(c) }

func (c *Components) Element() *xmltree.Element {
	el := xmltree.New(c.tag)
	vis := xmltree.New("Visibility")
	vis.SetAttr("DefaultVisibility", formatValue(c.visibilityDefault))
	if len(c.exceptions) > 0 {
		exc := xmltree.New("Exceptions")
		for _, guid := range c.exceptions {
			exc.Add(xmltree.New("Component").SetAttr("IfcGuid", guid))
		}
		vis.Add(exc)
	}
	el.Add(vis)
	return el
}

// Clone reconstructs the record independent of any parent.
func (c *Components) Clone() *Components {
	cpy := &Components{
		base:              c.base.cloneBase(),
		visibilityDefault: c.visibilityDefault,
		exceptions:        append([]string(nil), c.exceptions...),
	}
	return cpy
}

// Viewpoint is the content of a .bcfv viewpoint file
// (visinfo.xsd:VisualizationInfo): camera pose plus component visibility.
// The 3D host application consumes it; the model only carries it through.
type Viewpoint struct {
	base
	guid           uuid.UUID
	components     *Components
	oCamera        *OrthogonalCamera
	pCamera        *PerspectiveCamera
	lines          []*Line
	clippingPlanes []*ClippingPlane
}

// NewViewpoint creates a viewpoint and re-parents all complex members.
func NewViewpoint(guid uuid.UUID, components *Components, oCamera *OrthogonalCamera, pCamera *PerspectiveCamera, parent Node, state State) *Viewpoint {
	v := &Viewpoint{
		base:       newBase("VisualizationInfo", parent, state),
		guid:       guid,
		components: components,
		oCamera:    oCamera,
		pCamera:    pCamera,
	}
	if v.components != nil {
		v.components.SetParent(v)
	}
	if v.oCamera != nil {
		v.oCamera.SetParent(v)
	}
	if v.pCamera != nil {
		v.pCamera.SetParent(v)
	}
	return v
}

func (v *Viewpoint) GUID() uuid.UUID                { return v.guid }
func (v *Viewpoint) GUIDEquals(guid uuid.UUID) bool { return v.guid == guid }
func (v *Viewpoint) Components() *Components        { return v.components }
func (v *Viewpoint) OrthogonalCamera() *OrthogonalCamera   { return v.oCamera }
func (v *Viewpoint) PerspectiveCamera() *PerspectiveCamera { return v.pCamera }
func (v *Viewpoint) Lines() []*Line                        { return v.lines }
func (v *Viewpoint) ClippingPlanes() []*ClippingPlane      { return v.clippingPlanes }

// AddLine appends a line annotation.
func (v *Viewpoint) AddLine(l *Line) {
	l.SetParent(v)
	v.lines = append(v.lines, l)
}

// AddClippingPlane appends a clipping plane.
func (v *Viewpoint) AddClippingPlane(p *ClippingPlane) {
	p.SetParent(v)
	v.clippingPlanes = append(v.clippingPlanes, p)
}

func (v *Viewpoint) Equal(other *Viewpoint) bool {
	if other == nil || v.guid != other.guid {
		return false
	}
	if !equalOrNil(v.components, other.components, (*Components).Equal) ||
		!equalOrNil(v.oCamera, other.oCamera, (*OrthogonalCamera).Equal) ||
		!equalOrNil(v.pCamera, other.pCamera, (*PerspectiveCamera).Equal) {
		return false
	}
	if len(v.lines) != len(other.lines) || len(v.clippingPlanes) != len(other.clippingPlanes) {
		return false
	}
	for i := range v.lines {
		if !v.lines[i].Equal(other.lines[i]) {
			return false
		}
	}
	for i := range v.clippingPlanes {
		if !v.clippingPlanes[i].Equal(other.clippingPlanes[i]) {
			return false
		}
	}
	return true
}

func (v *Viewpoint) Search(id uint64) Node {
	if v.id == id {
		return v
	}
	var members []Node
	if v.components != nil {
		members = append(members, v.components)
	}
	if v.oCamera != nil {
		members = append(members, v.oCamera)
	}
	if v.pCamera != nil {
		members = append(members, v.pCamera)
	}
	for _, l := range v.lines {
		members = append(members, l)
	}
	for _, p := range v.clippingPlanes {
		members = append(members, p)
	}
	return searchNodes(id, members...)
}

func (v *Viewpoint) StateList() []StateEntry { return ownEntry(v) }

// Element renders the whole visualization info document root.
func (v *Viewpoint) Element() *xmltree.Element {
	el := xmltree.New(v.tag)
	el.SetAttr("Guid", v.guid.String())
	if v.components != nil {
		el.Add(v.components.Element())
	}
	if v.oCamera != nil {
		el.Add(v.oCamera.Element())
	}
	if v.pCamera != nil {
		el.Add(v.pCamera.Element())
	}
	if len(v.lines) > 0 {
		lines := xmltree.New("Lines")
		for _, l := range v.lines {
			lines.Add(l.Element())
		}
		el.Add(lines)
	}
	if len(v.clippingPlanes) > 0 {
		planes := xmltree.New("ClippingPlanes")
		for _, p := range v.clippingPlanes {
			planes.Add(p.Element())
		}
		el.Add(planes)
	}
	return el
}

// Clone reconstructs the viewpoint without copying the containing object.
func (v *Viewpoint) Clone() *Viewpoint {
	cpy := &Viewpoint{base: v.base.cloneBase(), guid: v.guid}
	if v.components != nil {
		cpy.components = v.components.Clone()
		cpy.components.SetParent(cpy)
	}
	if v.oCamera != nil {
		cpy.oCamera = v.oCamera.Clone()
		cpy.oCamera.SetParent(cpy)
	}
	if v.pCamera != nil {
		cpy.pCamera = v.pCamera.Clone()
		cpy.pCamera.SetParent(cpy)
	}
	for _, l := range v.lines {
		lc := l.Clone()
		lc.SetParent(cpy)
		cpy.lines = append(cpy.lines, lc)
	}
	for _, p := range v.clippingPlanes {
		pc := p.Clone()
		pc.SetParent(cpy)
		cpy.clippingPlanes = append(cpy.clippingPlanes, pc)
	}
	return cpy
}

// equalOrNil treats two nil members as equal and otherwise delegates.
func equalOrNil[T any](a, b *T, eq func(*T, *T) bool) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return eq(a, b)
}
