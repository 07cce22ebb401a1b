package math

import (
	m "math"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

/**
 * @brief A perspective camera: eye position, look-at target and up vector
 * plus the projection parameters.
 */
type Camera struct {
	Eye    mgl32.Vec3
	Target mgl32.Vec3
	Up     mgl32.Vec3
	// Vertical field of view in degrees.
	FovY float32
	Near float32
	Far  float32
}

// NewDefaultCamera looks at the origin from eight units down the negative z axis.
func NewDefaultCamera() Camera {
	return Camera{
		Eye:    mgl32.Vec3{0, 0, -8},
		Target: mgl32.Vec3{0, 0, 0},
		Up:     mgl32.Vec3{0, 1, 0},
		FovY:   45,
		Near:   0.1,
		Far:    1000,
	}
}

func (c Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye, c.Target, c.Up)
}

func (c Camera) Projection(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(c.FovY), aspect, c.Near, c.Far)
}

/**
 * @brief A constant-speed spin: one full turn around Axis every Period.
 */
type Rotation struct {
	Period time.Duration
	Axis   mgl32.Vec3
}

func NewDefaultRotation() Rotation {
	return Rotation{
		Period: 8 * time.Second,
		Axis:   mgl32.Vec3{2, 1, 0},
	}
}

// Angle returns the rotation in radians reached at now. It depends on now only.
func (r Rotation) Angle(now time.Duration) float32 {
	if r.Period <= 0 {
		return 0
	}
	turns := now.Seconds() / r.Period.Seconds()
	return float32(turns * 2 * m.Pi)
}

// Matrix builds the model matrix for now. The axis is normalized first; a
// zero axis yields the identity.
func (r Rotation) Matrix(now time.Duration) mgl32.Mat4 {
	if r.Axis.Len() == 0 {
		return mgl32.Ident4()
	}
	return mgl32.HomogRotate3D(r.Angle(now), r.Axis.Normalize())
}

/**
 * @brief The three matrices pushed to the backend every frame. Values are
 * replaced, never edited in place.
 */
type TransformState struct {
	World      mgl32.Mat4
	View       mgl32.Mat4
	Projection mgl32.Mat4
}

// NewIdentityTransform is used by the flat demos which draw in clip space.
func NewIdentityTransform() TransformState {
	return TransformState{
		World:      mgl32.Ident4(),
		View:       mgl32.Ident4(),
		Projection: mgl32.Ident4(),
	}
}

// NewTransformState computes view and projection once; the world matrix starts as identity.
func NewTransformState(camera Camera, aspect float32) TransformState {
	return TransformState{
		World:      mgl32.Ident4(),
		View:       camera.View(),
		Projection: camera.Projection(aspect),
	}
}

// WithWorld returns a copy of t with a new world matrix.
func (t TransformState) WithWorld(world mgl32.Mat4) TransformState {
	t.World = world
	return t
}

// WithProjection returns a copy of t with a new projection, used on resize.
func (t TransformState) WithProjection(projection mgl32.Mat4) TransformState {
	t.Projection = projection
	return t
}

// Advance returns the transform for now: same view/projection, world rebuilt from r.
func (t TransformState) Advance(r Rotation, now time.Duration) TransformState {
	return t.WithWorld(r.Matrix(now))
}

// MVP is projection * view * world, the order the vertex shaders apply.
func (t TransformState) MVP() mgl32.Mat4 {
	return t.Projection.Mul4(t.View).Mul4(t.World)
}
