// Package renderer draws the scene with OpenGL in up to three passes:
// shadow depth, main, and wireframe debug bounds.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/hopper/internal/engine/framebuffer"
	"github.com/Faultbox/hopper/internal/engine/lighting"
	"github.com/Faultbox/hopper/internal/engine/model"
	"github.com/Faultbox/hopper/internal/engine/scene"
	"github.com/Faultbox/hopper/internal/engine/shader"
	"github.com/Faultbox/hopper/internal/engine/shader/shaders"
	"github.com/Faultbox/hopper/internal/engine/shadow"
	"github.com/Faultbox/hopper/internal/logger"
)

// Config holds renderer configuration.
type Config struct {
	Width            int32
	Height           int32
	ClearColor       [4]float32
	ShadowResolution int32
	SunLongitude     int32
	SunLatitude      int32
	MSAA             bool
	// Offscreen renders into a framebuffer whose color texture is shown by
	// the debug overlay instead of the window's back buffer.
	Offscreen   bool
	CheckErrors bool
}

// Options toggles the optional passes per frame.
type Options struct {
	Shadows     bool
	DebugBounds bool
}

var debugColor = [3]float32{0.2, 1.0, 0.3}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	cfg   Config
	scene *scene.Scene
	res   *Resources
	log   *zap.Logger

	target    framebuffer.Target
	offscreen *framebuffer.Framebuffer

	mainPipe   *shader.Pipeline
	shadowPipe *shader.Pipeline
	debugPipe  *shader.Pipeline
	shadowMap  *shadow.Map

	lightDir      mgl32.Vec3
	lightViewProj mgl32.Mat4

	draws []DrawCall
}

// New initializes OpenGL, compiles the pipelines and creates the render
// targets. Must be called after the OpenGL context is created.
func New(cfg Config, sc *scene.Scene, importer model.Importer) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r := &Renderer{
		cfg:      cfg,
		scene:    sc,
		log:      logger.Named("renderer"),
		lightDir: lighting.SunDirection(cfg.SunLongitude, cfg.SunLatitude),
	}
	r.res = NewResources(NewGLDevice(), importer, sc)

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	var err error
	r.mainPipe, err = shader.NewPipeline("main", shaders.MainVertexShader, shaders.MainFragmentShader,
		"uMVP", "uModel", "uLightViewProj", "uTexture", "uShadowMap",
		"uTextured", "uShadowsEnabled", "uColor", "uLightDir")
	if err != nil {
		r.Destroy()
		return nil, err
	}
	r.shadowPipe, err = shader.NewPipeline("shadow", shaders.ShadowVertexShader, shaders.ShadowFragmentShader,
		"uLightViewProj", "uModel")
	if err != nil {
		r.Destroy()
		return nil, err
	}
	r.debugPipe, err = shader.NewPipeline("debug", shaders.DebugVertexShader, shaders.DebugFragmentShader,
		"uMVP", "uColor")
	if err != nil {
		r.Destroy()
		return nil, err
	}

	r.shadowMap, err = shadow.NewMap(cfg.ShadowResolution)
	if err != nil {
		r.Destroy()
		return nil, err
	}
	r.log.Debug("shadow map allocated", zap.Int32("size", r.shadowMap.Size()))

	if cfg.Offscreen {
		r.offscreen, err = framebuffer.New(cfg.Width, cfg.Height)
		if err != nil {
			r.Destroy()
			return nil, err
		}
		r.target = r.offscreen
	} else {
		r.target = framebuffer.NewScreen(cfg.Width, cfg.Height)
	}

	if cfg.MSAA {
		gl.Enable(gl.MULTISAMPLE)
	}

	return r, nil
}

// Resources returns the model loader bound to this renderer's device.
func (r *Renderer) Resources() *Resources {
	return r.res
}

// BeginFrame binds the frame target and clears color and depth.
func (r *Renderer) BeginFrame() {
	r.target.Bind()
	c := r.cfg.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Render draws the scene. viewProj is projection × view. It fails until the
// models have been finalized.
func (r *Renderer) Render(viewProj mgl32.Mat4, opts Options) error {
	if r.res == nil || !r.res.Finalized() {
		return ErrNotFinalized
	}

	gl.BindVertexArray(r.res.VertexArray())

	if opts.Shadows {
		r.lightViewProj = shadow.DirectionalLightMatrix(r.lightDir, r.scene.Bounds(scene.PassMain))
		r.renderShadowPass()
	}

	r.target.Bind()
	r.renderMainPass(viewProj, opts.Shadows)

	if opts.DebugBounds {
		r.renderDebugPass(viewProj)
	}

	gl.BindVertexArray(0)
	r.target.Unbind()

	if r.cfg.CheckErrors {
		r.checkErrors()
	}
	return nil
}

func (r *Renderer) renderShadowPass() {
	r.shadowMap.Begin()

	r.shadowPipe.Use()
	r.shadowPipe.SetMat4("uLightViewProj", r.lightViewProj)

	r.draws = BuildDrawList(r.scene, scene.PassMain, mgl32.Ident4(), r.draws[:0])
	for i := range r.draws {
		r.shadowPipe.SetMat4("uModel", r.draws[i].Model)
		drawPrimitive(r.draws[i].Primitive)
	}

	r.shadowMap.End()
}

func (r *Renderer) renderMainPass(viewProj mgl32.Mat4, shadows bool) {
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)

	p := r.mainPipe
	p.Use()
	p.SetVec3("uLightDir", r.lightDir)
	p.SetInt("uTexture", 0)
	p.SetInt("uShadowMap", 1)
	p.SetBool("uShadowsEnabled", shadows)
	p.SetMat4("uLightViewProj", r.lightViewProj)
	r.shadowMap.Sample(gl.TEXTURE1)
	gl.ActiveTexture(gl.TEXTURE0)

	r.draws = BuildDrawList(r.scene, scene.PassMain, viewProj, r.draws[:0])
	for i := range r.draws {
		d := &r.draws[i]
		p.SetMat4("uMVP", d.MVP)
		p.SetMat4("uModel", d.Model)

		mat := d.Primitive.Material
		p.SetBool("uTextured", mat.HasTexture)
		if mat.HasTexture {
			gl.BindTexture(gl.TEXTURE_2D, mat.Texture)
		} else {
			p.SetVec3("uColor", mat.Color)
		}
		drawPrimitive(d.Primitive)
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

func (r *Renderer) renderDebugPass(viewProj mgl32.Mat4) {
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)

	r.debugPipe.Use()
	r.debugPipe.SetVec3("uColor", debugColor)

	r.draws = BuildDrawList(r.scene, scene.PassDebugBounds, viewProj, r.draws[:0])
	for i := range r.draws {
		r.debugPipe.SetMat4("uMVP", r.draws[i].MVP)
		drawPrimitive(r.draws[i].Primitive)
	}

	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
}

func drawPrimitive(p *scene.Primitive) {
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, p.IndexBuffer)
	gl.DrawElements(gl.TRIANGLES, p.IndexCount, gl.UNSIGNED_INT, nil)
}

func (r *Renderer) checkErrors() {
	for i := 0; i < 8; i++ {
		code := gl.GetError()
		if code == gl.NO_ERROR {
			return
		}
		r.log.Warn("OpenGL error", zap.String("code", fmt.Sprintf("0x%04x", code)))
	}
}

// Resize adapts the frame target to a new drawable size.
func (r *Renderer) Resize(width, height int32) {
	r.target.Resize(width, height)
}

// ColorTexture returns the offscreen color texture, or 0 when drawing to the
// window directly.
func (r *Renderer) ColorTexture() uint32 {
	if r.offscreen == nil {
		return 0
	}
	return r.offscreen.ColorTexture()
}

// ReadPixels captures the frame target as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.target.Size()
	return r.target.ReadPixels(), int(w), int(h)
}

// Destroy releases pipelines, targets and every loaded model.
func (r *Renderer) Destroy() {
	if r.res != nil {
		r.res.Cleanup()
	}
	for _, p := range []*shader.Pipeline{r.mainPipe, r.shadowPipe, r.debugPipe} {
		if p != nil {
			p.Destroy()
		}
	}
	if r.shadowMap != nil {
		r.shadowMap.Destroy()
	}
	if r.offscreen != nil {
		r.offscreen.Destroy()
	}
}
