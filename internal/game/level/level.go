// Package level describes a playable layout: which models to load, where
// instances go, the static colliders and the enemy patrols.
package level

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrUnknownModel is returned when a layout names a model it does not load.
var ErrUnknownModel = errors.New("unknown model")

// Level is a layout as stored in YAML. Models are named by file name
// without extension.
type Level struct {
	Name string `yaml:"name"`

	// Model files relative to the assets root, loaded in order
	Models []string `yaml:"models"`

	Player      string   `yaml:"player"`
	Props       []Prop   `yaml:"props"`
	BoundsModel string   `yaml:"bounds_model"`
	Colliders   []Box    `yaml:"colliders"`
	EnemyModel  string   `yaml:"enemy_model"`
	Enemies     []Patrol `yaml:"enemies"`
}

// Prop is a static decoration.
type Prop struct {
	Model    string     `yaml:"model"`
	Position [3]float32 `yaml:"position,flow"`
	Scale    [3]float32 `yaml:"scale,flow,omitempty"` // zero means 1
}

// Transform returns translate × scale.
func (p Prop) Transform() mgl32.Mat4 {
	s := mgl32.Vec3(p.Scale)
	if s == (mgl32.Vec3{}) {
		s = mgl32.Vec3{1, 1, 1}
	}
	return mgl32.Translate3D(p.Position[0], p.Position[1], p.Position[2]).
		Mul4(mgl32.Scale3D(s[0], s[1], s[2]))
}

// Box is a static collider given by center and half-extents.
type Box struct {
	Center [3]float32 `yaml:"center,flow"`
	Half   [3]float32 `yaml:"half,flow"`
}

// Patrol is an enemy moving between A and B.
type Patrol struct {
	A [3]float32 `yaml:"a,flow"`
	B [3]float32 `yaml:"b,flow"`
}

// ModelName returns the name a model file is referenced by.
func ModelName(file string) string {
	base := filepath.Base(file)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Default returns the built-in first level.
func Default() *Level {
	return &Level{
		Name: "level 1",
		Models: []string{
			"player.glb",
			"grass.glb",
			"cube.glb",
			"flag.glb",
			"lvl1.glb",
			"enemy.glb",
			"sign.glb",
		},
		Player: "player",
		Props: []Prop{
			{Model: "lvl1", Scale: [3]float32{2, 2, 2}},
			{Model: "sign", Position: [3]float32{-1.6, 3.6, 2.4}},
		},
		BoundsModel: "cube",
		Colliders: []Box{
			{Center: [3]float32{0, 1.7, 0}, Half: [3]float32{2, 2, 4.2}},
			{Center: [3]float32{0, 1.7, -12}, Half: [3]float32{2, 2, 4.2}},
			{Center: [3]float32{-6.3, 2.3, -14.5}, Half: [3]float32{4.2, 3, 1.7}},
			{Center: [3]float32{-15.7, 3.5, -17.9}, Half: [3]float32{2, 3.5, 5}},
			{Center: [3]float32{-8.4, 3.9, -23.4}, Half: [3]float32{2, 4.4, 2}},
		},
		EnemyModel: "enemy",
		Enemies: []Patrol{
			{A: [3]float32{-15.7, 8, -15}, B: [3]float32{-15.7, 8, -21}},
		},
	}
}

// Validate checks that every model reference resolves.
func (l *Level) Validate() error {
	names := make(map[string]bool, len(l.Models))
	for _, m := range l.Models {
		names[ModelName(m)] = true
	}

	check := func(what, name string) error {
		if !names[name] {
			return fmt.Errorf("%s %q: %w", what, name, ErrUnknownModel)
		}
		return nil
	}

	if err := check("player", l.Player); err != nil {
		return err
	}
	for i, p := range l.Props {
		if err := check(fmt.Sprintf("prop %d", i), p.Model); err != nil {
			return err
		}
	}
	if len(l.Colliders) > 0 {
		if err := check("bounds model", l.BoundsModel); err != nil {
			return err
		}
	}
	for i, c := range l.Colliders {
		for k := 0; k < 3; k++ {
			if c.Half[k] < 0 {
				return fmt.Errorf("collider %d: negative half-extent %v", i, c.Half)
			}
		}
	}
	if len(l.Enemies) > 0 {
		if err := check("enemy model", l.EnemyModel); err != nil {
			return err
		}
	}
	return nil
}
