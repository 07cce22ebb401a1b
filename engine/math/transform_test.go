package math

import (
	m "math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestRotation_Angle(t *testing.T) {
	r := NewDefaultRotation()

	assert.Equal(t, float32(0), r.Angle(0))
	assert.InDelta(t, m.Pi/2, r.Angle(2*time.Second), 1e-6)
	assert.InDelta(t, m.Pi, r.Angle(4*time.Second), 1e-6)
	assert.InDelta(t, 2*m.Pi, r.Angle(8*time.Second), 1e-6)

	assert.Equal(t, float32(0), Rotation{Axis: mgl32.Vec3{0, 1, 0}}.Angle(time.Second), "zero period never turns")
}

func TestRotation_MatrixIsPureFunctionOfTime(t *testing.T) {
	r := NewDefaultRotation()
	now := 3250 * time.Millisecond

	a := r.Matrix(now)
	_ = r.Matrix(10 * time.Second)
	b := r.Matrix(now)
	assert.True(t, a.ApproxEqual(b))

	// A full period lands back on the identity.
	identity, full := mgl32.Ident4(), r.Matrix(8*time.Second)
	assert.InDeltaSlice(t, identity[:], full[:], 1e-5)
}

func TestRotation_AxisIsNormalized(t *testing.T) {
	r := Rotation{Period: 4 * time.Second, Axis: mgl32.Vec3{0, 5, 0}}
	got := r.Matrix(time.Second)
	want := mgl32.HomogRotate3DY(m.Pi / 2)
	assert.True(t, got.ApproxEqualThreshold(want, 1e-5))

	// Points on the axis do not move.
	axis := mgl32.Vec3{2, 1, 0}
	p := NewDefaultRotation().Matrix(1700 * time.Millisecond).Mul4x1(axis.Vec4(1)).Vec3()
	assert.True(t, p.ApproxEqualThreshold(axis, 1e-5))

	assert.Equal(t, mgl32.Ident4(), Rotation{Period: time.Second}.Matrix(time.Second))
}

func TestTransformState_Setup(t *testing.T) {
	cam := NewDefaultCamera()
	ts := NewTransformState(cam, 4.0/3.0)

	assert.Equal(t, mgl32.Ident4(), ts.World)
	assert.Equal(t, mgl32.LookAtV(mgl32.Vec3{0, 0, -8}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}), ts.View)
	assert.Equal(t, mgl32.Perspective(mgl32.DegToRad(45), 4.0/3.0, 0.1, 1000), ts.Projection)

	// The eye maps to the view-space origin.
	eye := ts.View.Mul4x1(cam.Eye.Vec4(1)).Vec3()
	assert.True(t, eye.ApproxEqualThreshold(mgl32.Vec3{}, 1e-5))
}

func TestTransformState_AdvanceKeepsViewAndProjection(t *testing.T) {
	ts := NewTransformState(NewDefaultCamera(), 1)
	next := ts.Advance(NewDefaultRotation(), 2*time.Second)

	assert.Equal(t, ts.View, next.View)
	assert.Equal(t, ts.Projection, next.Projection)
	assert.False(t, next.World.ApproxEqual(ts.World))
	assert.Equal(t, mgl32.Ident4(), ts.World, "the previous value is left untouched")

	assert.True(t, next.MVP().ApproxEqual(next.Projection.Mul4(next.View).Mul4(next.World)))
}

func TestCamera_ProjectionGuardsAspect(t *testing.T) {
	cam := NewDefaultCamera()
	assert.Equal(t, cam.Projection(1), cam.Projection(0))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, float32(0), Clamp(float32(-0.5), 0, 1))
	assert.Equal(t, float32(1), Clamp(float32(1.5), 0, 1))
	assert.Equal(t, 3, Clamp(3, 1, 5))
}

func TestColorSource(t *testing.T) {
	a := NewColorSource(42)
	b := NewColorSource(42)
	for i := 0; i < 100; i++ {
		ca, cb := a.Next(), b.Next()
		assert.Equal(t, ca, cb, "same seed, same sequence")
		for _, ch := range ca {
			assert.GreaterOrEqual(t, ch, float32(0))
			assert.Less(t, ch, float32(1))
		}
	}
}
