package world

import "github.com/go-gl/mathgl/mgl32"

// Direction identifies one of the six axis-aligned face orientations.
type Direction uint8

const (
	DirPosX Direction = iota // east
	DirNegX                  // west
	DirPosY                  // top
	DirNegY                  // bottom
	DirPosZ                  // north
	DirNegZ                  // south
)

// DirectionCount is the number of face directions.
const DirectionCount = 6

// Directions lists every direction in id order.
var Directions = [DirectionCount]Direction{DirPosX, DirNegX, DirPosY, DirNegY, DirPosZ, DirNegZ}

// Axis indices into [3]int / mgl32.Vec3.
const (
	AxisX = 0
	AxisY = 1
	AxisZ = 2
)

// FaceInfo is the per-direction lookup used by the mesher and the renderer.
// Axis is the normal (sweep) axis; U and V span the face plane.
type FaceInfo struct {
	Axis int
	Sign int // +1 or -1
	U, V int
}

var faceTable = [DirectionCount]FaceInfo{
	DirPosX: {Axis: AxisX, Sign: +1, U: AxisZ, V: AxisY},
	DirNegX: {Axis: AxisX, Sign: -1, U: AxisZ, V: AxisY},
	DirPosY: {Axis: AxisY, Sign: +1, U: AxisX, V: AxisZ},
	DirNegY: {Axis: AxisY, Sign: -1, U: AxisX, V: AxisZ},
	DirPosZ: {Axis: AxisZ, Sign: +1, U: AxisX, V: AxisY},
	DirNegZ: {Axis: AxisZ, Sign: -1, U: AxisX, V: AxisY},
}

var directionNames = [DirectionCount]string{"+x", "-x", "+y", "-y", "+z", "-z"}

// Info returns the axis table entry for d.
func (d Direction) Info() FaceInfo {
	return faceTable[d]
}

// Positive reports whether the face normal points along +axis.
func (d Direction) Positive() bool {
	return faceTable[d].Sign > 0
}

// Normal returns the outward unit normal.
func (d Direction) Normal() mgl32.Vec3 {
	var n mgl32.Vec3
	n[faceTable[d].Axis] = float32(faceTable[d].Sign)
	return n
}

// Valid reports whether d is one of the six known directions.
func (d Direction) Valid() bool {
	return d < DirectionCount
}

func (d Direction) String() string {
	if !d.Valid() {
		return "invalid"
	}
	return directionNames[d]
}
