// Package systems contains ECS systems for the map.
package systems

import (
	"fmt"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/gridwalk/components"
	"github.com/pthm-cable/gridwalk/input"
	"github.com/pthm-cable/gridwalk/movement"
	"github.com/pthm-cable/gridwalk/telemetry"
)

// MoveSettings holds the tile crossing parameters shared by all requests.
type MoveSettings struct {
	TileSize     float64
	TileDuration time.Duration
	Steps        int
	HoldToRepeat bool
}

// MoveInputSystem turns directional input into tile crossings for idle players.
type MoveInputSystem struct {
	filter   ecs.Filter4[components.Transform, components.Movable, components.Actor, components.Player]
	settings MoveSettings
}

// NewMoveInputSystem creates the system. It fails if the settings cannot
// describe a crossing, so bad timing is caught before the first tick.
func NewMoveInputSystem(w *ecs.World, settings MoveSettings) (*MoveInputSystem, error) {
	probe := movement.NewRequest(movement.Down, settings.TileDuration, settings.Steps)
	if _, err := movement.NewDescriptor(probe, settings.TileSize); err != nil {
		return nil, fmt.Errorf("move settings: %w", err)
	}
	return &MoveInputSystem{
		filter:   *ecs.NewFilter4[components.Transform, components.Movable, components.Actor, components.Player](w),
		settings: settings,
	}, nil
}

// Update starts at most one crossing per idle player. Players already moving
// ignore input until their crossing completes. No player is a no-op.
func (s *MoveInputSystem) Update(tick int64, in input.Snapshot, emit func(telemetry.Event)) {
	o, ok := in.Direction(s.settings.HoldToRepeat)
	if !ok {
		return
	}

	req := movement.NewRequest(o, s.settings.TileDuration, s.settings.Steps)
	desc, err := movement.NewDescriptor(req, s.settings.TileSize)
	if err != nil {
		return
	}

	query := s.filter.Query()
	for query.Next() {
		tr, mov, actor, _ := query.Get()
		if !mov.Idle() {
			continue
		}
		if !mov.Begin(desc) {
			continue
		}
		mov.Origin = tr.Translation
		if emit != nil {
			emit(telemetry.NewMovementStartedEvent(tick, actor.ID, o, tr.Translation.X, tr.Translation.Y))
		}
	}
}
