package systems

import (
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/gridwalk/camera"
	"github.com/pthm-cable/gridwalk/components"
)

// CameraFollowSystem eases main cameras toward the player, keeping camera depth.
type CameraFollowSystem struct {
	players ecs.Filter2[components.Transform, components.Player]
	cameras ecs.Filter2[components.Transform, components.MainCamera]
	rate    float64
}

// NewCameraFollowSystem creates the system with the given decay rate.
func NewCameraFollowSystem(w *ecs.World, decayRate float64) *CameraFollowSystem {
	return &CameraFollowSystem{
		players: *ecs.NewFilter2[components.Transform, components.Player](w),
		cameras: *ecs.NewFilter2[components.Transform, components.MainCamera](w),
		rate:    decayRate,
	}
}

// Update moves cameras toward the first player. No player leaves cameras in place.
func (s *CameraFollowSystem) Update(dt time.Duration) {
	var target components.Transform
	found := false

	players := s.players.Query()
	for players.Next() {
		tr, _ := players.Get()
		target = *tr
		found = true
		players.Close()
		break
	}
	if !found {
		return
	}

	secs := dt.Seconds()
	cameras := s.cameras.Query()
	for cameras.Next() {
		tr, _ := cameras.Get()
		tr.Translation = camera.Follow(tr.Translation, target.Translation, s.rate, secs)
	}
}
