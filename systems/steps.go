package systems

import (
	"time"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/gridwalk/components"
	"github.com/pthm-cable/gridwalk/movement"
	"github.com/pthm-cable/gridwalk/telemetry"
)

// StepSystem advances active crossings: position, substep count, frame and flip.
type StepSystem struct {
	filter  ecs.Filter3[components.Transform, components.Movable, components.Actor]
	sprites *ecs.Map1[components.Sprite]
	frames  movement.Frames
}

// NewStepSystem creates the step progression system.
func NewStepSystem(w *ecs.World, frames movement.Frames) *StepSystem {
	return &StepSystem{
		filter:  *ecs.NewFilter3[components.Transform, components.Movable, components.Actor](w),
		sprites: ecs.NewMap1[components.Sprite](w),
		frames:  frames,
	}
}

// Update feeds dt to every moving actor. Each completed substep moves the actor,
// animates its sprite when it has frames, and the last one lands it exactly one
// tile from its origin and returns it to Idle. It returns the number of actors
// that were mid-crossing.
func (s *StepSystem) Update(tick int64, dt time.Duration, emit func(telemetry.Event)) int {
	active := 0
	query := s.filter.Query()
	for query.Next() {
		tr, mov, actor := query.Get()
		if mov.Idle() {
			continue
		}
		active++

		var sprite *components.Sprite
		if e := query.Entity(); s.sprites.HasAll(e) {
			sprite = s.sprites.Get(e)
		}

		desc, _ := mov.Active()
		mov.Advance(dt, func(ev movement.StepEvent) {
			if ev.Final {
				tr.Translation = r3.Add(mov.Origin, desc.Total())
			} else {
				tr.Translation = r3.Add(tr.Translation, ev.Delta)
			}

			if sprite.Animatable() {
				sprite.Atlas.Index, sprite.FlipX = s.frames.Apply(ev.Orientation, sprite.Atlas.Index, sprite.FlipX)
			}

			if emit == nil {
				return
			}
			x, y := tr.Translation.X, tr.Translation.Y
			emit(telemetry.NewStepEvent(tick, actor.ID, ev.Orientation, ev.Index, x, y))
			if ev.Final {
				emit(telemetry.NewMovementCompletedEvent(tick, actor.ID, ev.Orientation, x, y))
			}
		})
	}
	return active
}
