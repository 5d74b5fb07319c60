// Package renderer draws the canyon and the vehicle with OpenGL.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/canyon-flight/internal/canyon"
	"github.com/Faultbox/canyon-flight/internal/engine/lighting"
	"github.com/Faultbox/canyon-flight/internal/engine/shader"
	"github.com/Faultbox/canyon-flight/internal/engine/terrain"
	"github.com/Faultbox/canyon-flight/internal/flight"
	"github.com/Faultbox/canyon-flight/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	ClearColor [3]float32
	LightDir   [3]float32
	Ambient    float32
	FogNear    float32
	FogFar     float32
}

// DefaultConfig returns a sky-blue scene lit from above, fogged toward the far plane.
func DefaultConfig(width, height int) Config {
	return Config{
		Width:      width,
		Height:     height,
		ClearColor: [3]float32{0.55, 0.7, 0.9},
		LightDir:   lighting.DefaultSun().Direction(),
		Ambient:    0.35,
		FogNear:    600,
		FogFar:     1000,
	}
}

// View is the camera state for one frame.
type View struct {
	ViewProj math.Mat4
	Eye      math.Vec3
}

// segmentMesh pairs a terrain segment with its uploaded mesh.
type segmentMesh struct {
	segment *canyon.Segment
	gpu     gpuMesh
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config
	log    *zap.Logger

	program *shader.Program

	terrain   []segmentMesh
	airframe  gpuMesh
	explosion gpuMesh
}

// New creates a new renderer.
// Must be called after the OpenGL context is created.
func New(cfg Config, log *zap.Logger) (*Renderer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Renderer{
		config: cfg,
		log:    log,
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.MULTISAMPLE)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.ClearColor(cfg.ClearColor[0], cfg.ClearColor[1], cfg.ClearColor[2], 1.0)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	var err error
	r.program, err = shader.Compile(vertexShader, fragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	r.airframe = uploadMesh(AirframeMesh())
	r.explosion = uploadMesh(SphereMesh(sphereSlices, sphereStacks))

	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	for i := range r.terrain {
		r.terrain[i].gpu.release()
	}
	r.terrain = nil
	r.airframe.release()
	r.explosion.release()
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// ReadPixels reads back the current framebuffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() (pixels []byte, width, height int) {
	width, height = r.config.Width, r.config.Height
	pixels = make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, width, height
}

// Aspect returns the viewport aspect ratio.
func (r *Renderer) Aspect() float64 {
	if r.config.Height == 0 {
		return 1
	}
	return float64(r.config.Width) / float64(r.config.Height)
}

// SyncTerrain uploads meshes for newly ready segments and frees meshes of
// segments the streamer has retired.
func (r *Renderer) SyncTerrain(current [2]*canyon.Segment, cellSize float64) {
	have := make([]*canyon.Segment, len(r.terrain))
	for i, m := range r.terrain {
		have[i] = m.segment
	}
	add, drop := diffSegments(have, current)

	for _, seg := range drop {
		for i := 0; i < len(r.terrain); i++ {
			if r.terrain[i].segment == seg {
				r.terrain[i].gpu.release()
				r.terrain = append(r.terrain[:i], r.terrain[i+1:]...)
				break
			}
		}
	}

	for _, seg := range add {
		mesh := terrain.BuildMesh(seg, cellSize)
		r.terrain = append(r.terrain, segmentMesh{segment: seg, gpu: uploadMesh(mesh)})
		r.log.Debug("segment mesh uploaded",
			zap.Int("index", seg.Index),
			zap.Int("vertices", len(mesh.Vertices)),
		)
	}
}

// Begin starts a new frame.
func (r *Renderer) Begin(v View) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	r.program.Use()
	r.program.SetMat4("uViewProj", v.ViewProj)
	r.program.SetVec3("uEye", v.Eye.Float32())
	r.program.SetVec3("uLightDir", r.config.LightDir)
	r.program.SetFloat("uAmbient", r.config.Ambient)
	r.program.SetVec3("uFogColor", r.config.ClearColor)
	r.program.SetFloat("uFogNear", r.config.FogNear)
	r.program.SetFloat("uFogFar", r.config.FogFar)
}

// DrawTerrain draws every uploaded segment.
func (r *Renderer) DrawTerrain() {
	r.program.SetMat4("uModel", math.Identity())
	r.program.SetVec4("uTint", [4]float32{1, 1, 1, 1})
	for i := range r.terrain {
		r.terrain[i].gpu.draw()
	}
}

// DrawVehicle draws the airframe, and after a crash the expanding fireball.
func (r *Renderer) DrawVehicle(pose flight.Pose, dead bool, timeSinceDeath float64) {
	r.program.SetMat4("uModel", pose.Model())
	r.program.SetVec4("uTint", [4]float32{1, 1, 1, 1})
	r.airframe.draw()

	if !dead {
		return
	}

	radius, color := ExplosionAt(timeSinceDeath)
	if radius <= 0 || color[3] <= 0 {
		return
	}

	gl.Enable(gl.BLEND)
	gl.DepthMask(false)
	r.program.SetMat4("uModel", pose.Body.Mul(math.Scale(radius, radius, radius)))
	r.program.SetVec4("uTint", color)
	r.explosion.draw()
	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.UseProgram(0)
}
