package sample

import (
	"math"

	"github.com/example/kernelcheck/internal/linmath"
)

// Generator produces input blocks of a fixed length.
type Generator interface {
	// Len returns the number of scalars in one block. It never changes.
	Len() int
	// Fill writes exactly Len() scalars of one fresh sample into dst.
	Fill(src *Source, dst []float64)
}

// Draw allocates a block and fills it from g.
func Draw(g Generator, src *Source) []float64 {
	block := make([]float64, g.Len())
	g.Fill(src, block)
	return block
}

type quatGen struct{}

// Quat draws a unit quaternion from three random Euler angles, each within
// ±π. The result is not uniform on the 4-sphere.
func Quat() Generator { return quatGen{} }

func (quatGen) Len() int { return 4 }

func (quatGen) Fill(src *Source, dst []float64) {
	q := randomQuat(src)
	copy(dst[:4], q[:])
}

func randomQuat(src *Source) linmath.Quat {
	return linmath.QuatFromEuler(linmath.EulerAngle{
		src.Next(2 * math.Pi),
		src.Next(2 * math.Pi),
		src.Next(2 * math.Pi),
	})
}

type axisAngleGen struct{}

// AxisAngle draws each component from [-2π, 0).
func AxisAngle() Generator { return axisAngleGen{} }

func (axisAngleGen) Len() int { return 3 }

func (axisAngleGen) Fill(src *Source, dst []float64) {
	for i := range 3 {
		dst[i] = src.Next(2*math.Pi) - math.Pi
	}
}

type pointGen struct{ extent float64 }

// Point draws a point uniformly from the cube of side extent centred on the
// origin.
func Point(extent float64) Generator { return pointGen{extent: extent} }

func (pointGen) Len() int { return 3 }

func (g pointGen) Fill(src *Source, dst []float64) {
	for i := range 3 {
		dst[i] = src.Next(g.extent)
	}
}

type poseGen struct{}

// Pose draws a random rotation and a position within the ten-unit cube,
// laid out as linmath.PoseFromSlice expects.
func Pose() Generator { return poseGen{} }

func (poseGen) Len() int { return linmath.PoseLen }

func (poseGen) Fill(src *Source, dst []float64) {
	rot := randomQuat(src)
	p := linmath.Pose{
		Pos: linmath.Vec3{src.Next(10), src.Next(10), src.Next(10)},
		Rot: rot,
	}
	p.Put(dst)
}

type calGen struct{}

// Cal draws every calibration coefficient from [-0.25, 0.25).
func Cal() Generator { return calGen{} }

func (calGen) Len() int { return linmath.CalLen }

func (calGen) Fill(src *Source, dst []float64) {
	for i := range linmath.CalLen {
		dst[i] = src.Next(0.5)
	}
}

type scalarGen struct{ mx float64 }

// Scalar draws one value from [-mx/2, mx/2).
func Scalar(mx float64) Generator { return scalarGen{mx: mx} }

func (scalarGen) Len() int { return 1 }

func (g scalarGen) Fill(src *Source, dst []float64) { dst[0] = src.Next(g.mx) }
