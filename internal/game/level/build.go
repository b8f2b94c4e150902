package level

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/hopper/internal/engine/scene"
	"github.com/Faultbox/hopper/internal/game/entity"
	"github.com/Faultbox/hopper/internal/game/world"
	"github.com/Faultbox/hopper/internal/logger"
)

// ModelLoader registers a model file in the mesh catalog.
type ModelLoader interface {
	LoadModel(path string) (scene.MeshID, error)
}

// Result is a built level ready for world.New.
type Result struct {
	Meshes    map[string]scene.MeshID
	Player    *entity.Player
	Colliders []world.AABB
	Enemies   []*entity.Enemy
}

// LoadModels loads every model of l, in order, with paths resolved by
// resolve.
func (l *Level) LoadModels(loader ModelLoader, resolve func(string) string) (map[string]scene.MeshID, error) {
	meshes := make(map[string]scene.MeshID, len(l.Models))
	for _, file := range l.Models {
		id, err := loader.LoadModel(resolve(file))
		if err != nil {
			return nil, fmt.Errorf("load model %s: %w", file, err)
		}
		meshes[ModelName(file)] = id
	}
	return meshes, nil
}

// Instantiate creates the level's instances in a fixed order: player first,
// then props, one debug cube per collider, then one instance per enemy.
func (l *Level) Instantiate(sc *scene.Scene, meshes map[string]scene.MeshID) (*Result, error) {
	log := logger.Named("level")
	res := &Result{Meshes: meshes}

	mesh := func(name string) (scene.MeshID, error) {
		id, ok := meshes[name]
		if !ok {
			return 0, fmt.Errorf("%q: %w", name, ErrUnknownModel)
		}
		return id, nil
	}

	id, err := mesh(l.Player)
	if err != nil {
		return nil, err
	}
	playerInst, err := sc.AddInstance(id, mgl32.Ident4(), scene.PassMain)
	if err != nil {
		return nil, fmt.Errorf("player instance: %w", err)
	}
	res.Player = entity.NewPlayer(playerInst)
	if err := sc.SetTransform(playerInst, res.Player.Transform()); err != nil {
		return nil, err
	}

	for i, p := range l.Props {
		id, err := mesh(p.Model)
		if err != nil {
			return nil, fmt.Errorf("prop %d: %w", i, err)
		}
		if _, err := sc.AddInstance(id, p.Transform(), scene.PassMain); err != nil {
			return nil, fmt.Errorf("prop %d: %w", i, err)
		}
	}

	if len(l.Colliders) > 0 {
		cube, err := mesh(l.BoundsModel)
		if err != nil {
			return nil, fmt.Errorf("bounds model: %w", err)
		}
		for i, b := range l.Colliders {
			box := world.NewAABB(b.Center, b.Half)
			box.Instance, err = sc.AddInstance(cube, box.Transform(), scene.PassDebugBounds)
			if err != nil {
				return nil, fmt.Errorf("collider %d: %w", i, err)
			}
			res.Colliders = append(res.Colliders, box)
		}
	}

	if len(l.Enemies) > 0 {
		enemyMesh, err := mesh(l.EnemyModel)
		if err != nil {
			return nil, fmt.Errorf("enemy model: %w", err)
		}
		for i, p := range l.Enemies {
			e := entity.NewEnemy(p.A, p.B, scene.NoInstance)
			e.Instance, err = sc.AddInstance(enemyMesh, e.Transform(), scene.PassMain)
			if err != nil {
				return nil, fmt.Errorf("enemy %d: %w", i, err)
			}
			res.Enemies = append(res.Enemies, e)
		}
	}

	log.Info("level built",
		zap.String("name", l.Name),
		zap.Int("instances", sc.InstanceCount()),
		zap.Int("colliders", len(res.Colliders)),
		zap.Int("enemies", len(res.Enemies)),
	)
	return res, nil
}
