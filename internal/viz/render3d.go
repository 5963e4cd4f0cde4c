package viz

import (
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/reaxsim/internal/atoms"
	"github.com/san-kum/reaxsim/internal/reaxff"
)

type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Length() float64      { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

func vec(p [3]float64) Vec3 { return Vec3{p[0], p[1], p[2]} }

// Camera orbits the molecule centroid. Distance sets the perspective
// strength in units of the molecule's radius.
type Camera struct {
	RotX, RotY, RotZ float64
	Zoom             float64
	Distance         float64
}

func NewCamera() *Camera {
	return &Camera{Zoom: 1.0, Distance: 6}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

// RotatePoint rotates a point around the camera's axes.
func (c *Camera) RotatePoint(p Vec3) Vec3 {
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cz, sz := math.Cos(c.RotZ), math.Sin(c.RotZ)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	return p
}

// Project maps p, given relative to the centroid in units of the molecule
// radius, onto a sw x sh sub-pixel screen.
func (c *Camera) Project(p Vec3, sw, sh int) (int, int, float64) {
	rot := c.RotatePoint(p).Scale(c.Zoom)
	scale := 1.0
	if c.Distance > 0 {
		scale = c.Distance / (c.Distance - math.Min(rot.Z, c.Distance-0.1))
	}
	half := 0.45 * math.Min(float64(sw), float64(sh))
	sx := int(math.Round(rot.X*scale*half)) + sw/2
	sy := int(math.Round(-rot.Y*scale*half)) + sh/2
	return sx, sy, rot.Z
}

// RenderMolecule draws bonds as lines (doubled for multiplicity 2 and up)
// and atoms as their element letter. styles[i] colors atom i.
func RenderMolecule(c *Canvas, sys *atoms.System, symbols []string, styles []lipgloss.Style, bonds []reaxff.Bond, cam *Camera) {
	if c == nil || sys == nil || cam == nil || sys.Len() == 0 {
		return
	}

	var centroid Vec3
	for _, a := range sys.Atoms {
		centroid = centroid.Add(vec(a.Position))
	}
	centroid = centroid.Scale(1 / float64(sys.Len()))

	radius := 1.0
	for _, a := range sys.Atoms {
		radius = math.Max(radius, vec(a.Position).Sub(centroid).Length())
	}

	sw, sh := c.PixelSize()
	xs := make([]int, sys.Len())
	ys := make([]int, sys.Len())
	for i, a := range sys.Atoms {
		p := vec(a.Position).Sub(centroid).Scale(1 / radius)
		xs[i], ys[i], _ = cam.Project(p, sw, sh)
	}

	for _, b := range bonds {
		x0, y0, x1, y1 := xs[b.I], ys[b.I], xs[b.J], ys[b.J]
		c.DrawLine(x0, y0, x1, y1)
		if b.Multiplicity >= 2 {
			ox, oy := 0, 1
			if absInt(y1-y0) > absInt(x1-x0) {
				ox, oy = 1, 0
			}
			c.DrawLine(x0+ox, y0+oy, x1+ox, y1+oy)
		}
	}

	for i := range sys.Atoms {
		r := '?'
		if i < len(symbols) && symbols[i] != "" {
			r = []rune(symbols[i])[0]
		}
		style := lipgloss.NewStyle()
		if i < len(styles) {
			style = styles[i]
		}
		c.Label(xs[i], ys[i], r, style)
	}
}
