package systems

import "github.com/pthm-cable/gridwalk/telemetry"

// SystemInfo describes a tick system for HUD display.
type SystemInfo struct {
	ID          string // Internal identifier (matches the telemetry phase)
	Name        string // Display name
	Description string // What this system does
}

// SystemRegistry holds metadata about all systems in tick order.
// This centralizes system naming so the HUD and perf tracker stay in sync.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all known systems.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.Register(SystemInfo{ID: telemetry.PhaseInput, Name: "Move Input", Description: "Starts tile crossings for idle players"})
	reg.Register(SystemInfo{ID: telemetry.PhaseSteps, Name: "Steps", Description: "Advances substeps, frames and flips"})
	reg.Register(SystemInfo{ID: telemetry.PhaseZoom, Name: "Zoom", Description: "Cycles the projection scale"})
	reg.Register(SystemInfo{ID: telemetry.PhaseCamera, Name: "Camera", Description: "Smoothly follows the player"})
	reg.Register(SystemInfo{ID: telemetry.PhaseTelemetry, Name: "Telemetry", Description: "Drains events to collectors"})
	return reg
}

// Register adds a system to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
	r.byID[info.ID] = info
}

// Get returns system info by ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// GetName returns the display name for a system ID.
// Falls back to the ID itself if not found.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// All returns all registered systems.
func (r *SystemRegistry) All() []SystemInfo {
	return r.systems
}

// IDs returns all system IDs in registration order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}
