// Package ui provides the developer overlay panels.
package ui

import (
	"errors"
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/hopper/internal/engine/picking"
	"github.com/Faultbox/hopper/internal/engine/renderer"
	"github.com/Faultbox/hopper/internal/game/entity"
	"github.com/Faultbox/hopper/internal/game/world"
	"github.com/Faultbox/hopper/internal/logger"
)

// Overlay draws the "AABB" and "Global" panels and a frame timing readout.
type Overlay struct {
	editor  world.BoundsEditor
	player  *entity.Player
	options *renderer.Options
	save    func(path string) error
	log     *zap.Logger

	// Paths chosen in the save dialog, handled on the render thread
	saves chan string

	// Frame timing
	fps           float64
	frameTime     float64 // ms
	fpsUpdateTime float64 // seconds since last FPS update
	frameAccum    int
}

// NewOverlay creates the overlay. Checkbox edits write through options;
// save is called with the path picked in the save dialog.
func NewOverlay(editor world.BoundsEditor, player *entity.Player, options *renderer.Options, save func(path string) error) *Overlay {
	return &Overlay{
		editor:  editor,
		player:  player,
		options: options,
		save:    save,
		log:     logger.Named("overlay"),
		saves:   make(chan string, 1),
	}
}

// Update feeds the frame time in milliseconds.
func (o *Overlay) Update(deltaMs float64) {
	o.frameTime = deltaMs
	o.frameAccum++
	o.fpsUpdateTime += deltaMs / 1000.0

	// Update FPS every 0.5 seconds
	if o.fpsUpdateTime >= 0.5 {
		o.fps = float64(o.frameAccum) / o.fpsUpdateTime
		o.frameAccum = 0
		o.fpsUpdateTime = 0
	}
}

// FPS returns the last measured frame rate.
func (o *Overlay) FPS() float64 {
	return o.fps
}

// Draw renders the panels. Must be called inside an ImGui frame. viewProj is
// the camera used for the frame, for click picking.
func (o *Overlay) Draw(viewProj mgl32.Mat4) {
	o.handleSaves()
	o.pickOnClick(viewProj)
	o.drawBounds()
	o.drawGlobal()
}

// pickOnClick selects the collider under the cursor while the bounds are
// shown and no panel has the mouse.
func (o *Overlay) pickOnClick(viewProj mgl32.Mat4) {
	io := imgui.CurrentIO()
	if !o.options.DebugBounds || io.WantCaptureMouse() || !imgui.IsMouseClickedBool(imgui.MouseButtonLeft) {
		return
	}

	size := io.DisplaySize()
	mouse := imgui.MousePos()
	r := picking.ScreenToRay(mouse.X, mouse.Y, size.X, size.Y, viewProj.Inv())
	if i := o.editor.Pick(r); i >= 0 {
		o.editor.Select(i)
	}
}

func (o *Overlay) drawBounds() {
	if imgui.Begin("AABB") {
		imgui.Checkbox("Show", &o.options.DebugBounds)

		if o.editor.Count() > 0 {
			target := int32(o.editor.Selected())
			if imgui.InputInt("Target", &target) {
				o.editor.Select(int(target))
			}

			i := o.editor.Selected()
			center, half, err := o.editor.Bounds(i)
			if err == nil {
				pos := [3]float32(center)
				scl := [3]float32(half)
				changed := imgui.InputFloat3("Position", &pos)
				if imgui.InputFloat3("Scale", &scl) {
					changed = true
				}
				if changed {
					if err := o.editor.SetBounds(i, mgl32.Vec3(pos), mgl32.Vec3(scl)); err != nil {
						o.log.Warn("edit bounds", zap.Int("index", i), zap.Error(err))
					}
				}
			}
		}

		imgui.Separator()
		if imgui.Button("Save layout...") {
			o.requestSave()
		}
	}
	imgui.End()
}

func (o *Overlay) drawGlobal() {
	if imgui.Begin("Global") {
		fpsColor := imgui.NewVec4(0.2, 1.0, 0.2, 1.0)
		if o.fps < 30 {
			fpsColor = imgui.NewVec4(1.0, 0.2, 0.2, 1.0)
		} else if o.fps < 60 {
			fpsColor = imgui.NewVec4(1.0, 1.0, 0.2, 1.0)
		}
		imgui.TextColored(fpsColor, fmt.Sprintf("FPS: %.1f", o.fps))
		imgui.SameLine()
		imgui.TextDisabled(fmt.Sprintf("(%.2f ms)", o.frameTime))

		imgui.Separator()
		imgui.Text("Player position")
		imgui.Text(formatPosition(o.player.Position))
		imgui.Checkbox("Draw shadows?", &o.options.Shadows)
	}
	imgui.End()
}

// requestSave shows the native save dialog off the render thread. The chosen
// path is queued and written by the next Draw.
func (o *Overlay) requestSave() {
	go func() {
		path, err := dialog.File().
			Filter("Level layout", "yaml", "yml").
			Title("Save layout").
			Save()
		if err != nil {
			if !errors.Is(err, dialog.ErrCancelled) {
				o.log.Warn("save dialog", zap.Error(err))
			}
			return
		}

		select {
		case o.saves <- path:
		default:
			o.log.Warn("save already pending", zap.String("path", path))
		}
	}()
}

// handleSaves writes a queued layout, if any.
func (o *Overlay) handleSaves() {
	select {
	case path := <-o.saves:
		if err := o.save(path); err != nil {
			o.log.Error("save layout", zap.String("path", path), zap.Error(err))
			return
		}
		o.log.Info("layout saved", zap.String("path", path))
	default:
	}
}

func formatPosition(p mgl32.Vec3) string {
	return fmt.Sprintf("%f %f %f", p.X(), p.Y(), p.Z())
}
