package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a free-flying Euler camera. Yaw and pitch are in degrees; yaw -90
// looks down -z.
type Camera struct {
	Position    mgl32.Vec3
	Yaw         float64
	Pitch       float64
	AspectRatio float32
	FOV         float32
	NearPlane   float32
	FarPlane    float32
	Speed       float32 // blocks per second
	Sensitivity float64

	firstMouse bool
	lastX      float64
	lastY      float64
}

func NewCamera(width, height int) *Camera {
	return &Camera{
		Yaw:         -90.0,
		AspectRatio: float32(width) / float32(height),
		FOV:         70.0,
		NearPlane:   0.1,
		FarPlane:    2000.0,
		Speed:       40.0,
		Sensitivity: 0.1,
		firstMouse:  true,
	}
}

// SetViewport updates the aspect ratio; zero-sized viewports are ignored.
func (c *Camera) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.AspectRatio = float32(width) / float32(height)
}

func (c *Camera) GetProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.AspectRatio, c.NearPlane, c.FarPlane)
}

func (c *Camera) GetViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front()), mgl32.Vec3{0, 1, 0})
}

// ViewProjection returns projection*view.
func (c *Camera) ViewProjection() mgl32.Mat4 {
	return c.GetProjectionMatrix().Mul4(c.GetViewMatrix())
}

func (c *Camera) Front() mgl32.Vec3 {
	y := mgl32.DegToRad(float32(c.Yaw))
	pt := mgl32.DegToRad(float32(c.Pitch))
	fx := float32(math.Cos(float64(y)) * math.Cos(float64(pt)))
	fy := float32(math.Sin(float64(pt)))
	fz := float32(math.Sin(float64(y)) * math.Cos(float64(pt)))
	return mgl32.Vec3{fx, fy, fz}.Normalize()
}

// Right is the horizontal strafe direction.
func (c *Camera) Right() mgl32.Vec3 {
	return c.Front().Cross(mgl32.Vec3{0, 1, 0}).Normalize()
}

// HandleMouseMovement applies a cursor position to yaw and pitch.
func (c *Camera) HandleMouseMovement(xpos, ypos float64) {
	if c.firstMouse {
		c.lastX = xpos
		c.lastY = ypos
		c.firstMouse = false
		return
	}

	xoffset := (xpos - c.lastX) * c.Sensitivity
	yoffset := (c.lastY - ypos) * c.Sensitivity
	c.lastX = xpos
	c.lastY = ypos

	c.Yaw += xoffset
	c.Pitch += yoffset

	// Constrain pitch
	if c.Pitch > 89.0 {
		c.Pitch = 89.0
	}
	if c.Pitch < -89.0 {
		c.Pitch = -89.0
	}
}

// Move flies the camera. forward and strafe follow the look direction, up is
// world-vertical; each is expected in [-1, 1].
func (c *Camera) Move(forward, strafe, up float32, dt float64) {
	step := c.Speed * float32(dt)
	delta := c.Front().Mul(forward).
		Add(c.Right().Mul(strafe)).
		Add(mgl32.Vec3{0, up, 0})
	if delta.Len() < 1e-6 {
		return
	}
	c.Position = c.Position.Add(delta.Normalize().Mul(step))
}
