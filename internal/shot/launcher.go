package shot

import (
	"encoding/json"
	"fmt"

	"github.com/cxd309/hoopshot/internal/ballistics"
)

// Launcher holds the static parameters of a robot's ball launcher.
// The launch physics are encapsulated by the Model field; adding a new model
// only requires implementing ballistics.Model and registering it in
// UnmarshalJSON below. No solver code changes are needed.
type Launcher struct {
	Name     string           `json:"name"`
	Height   float64          `json:"height"`              // launch point above ground, metres
	MaxSpeed float64          `json:"max_speed,omitempty"` // mechanical limit, m/s; 0 = no limit beyond the physical cap
	Model    ballistics.Model `json:"-"`                   // set by UnmarshalJSON
}

// DefaultLauncher returns a drag-free launcher with no speed limit of its own.
func DefaultLauncher() Launcher {
	return Launcher{Name: "default", Model: ballistics.DragFree{}}
}

// modelDisc is the minimum JSON structure needed to read the model discriminator.
type modelDisc struct {
	Model string `json:"model"`
}

// launcherJSON is the raw JSON shape of a Launcher, before the model is resolved.
type launcherJSON struct {
	Name     string          `json:"name"`
	Height   float64         `json:"height"`
	MaxSpeed float64         `json:"max_speed,omitempty"`
	Model    json.RawMessage `json:"model,omitempty"`
}

// UnmarshalJSON implements json.Unmarshaler for Launcher.
// The optional "model" field must contain a "model" discriminator key that
// selects the concrete implementation; when absent the drag-free model is used.
//
// Supported models:
//   - "drag_free": uniform gravity, no air resistance.
func (l *Launcher) UnmarshalJSON(data []byte) error {
	var aux launcherJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	l.Name = aux.Name
	l.Height = aux.Height
	l.MaxSpeed = aux.MaxSpeed

	if l.Height < 0 {
		return fmt.Errorf("launcher %q: height %g must not be negative", l.Name, l.Height)
	}
	if l.MaxSpeed < 0 {
		return fmt.Errorf("launcher %q: max_speed %g must not be negative", l.Name, l.MaxSpeed)
	}

	if len(aux.Model) == 0 {
		l.Model = ballistics.DragFree{}
		return nil
	}

	var disc modelDisc
	if err := json.Unmarshal(aux.Model, &disc); err != nil {
		return fmt.Errorf("launcher %q: reading model discriminator: %w", l.Name, err)
	}

	model, err := ModelByName(disc.Model)
	if err != nil {
		return fmt.Errorf("launcher %q: %w", l.Name, err)
	}
	l.Model = model
	return nil
}

// MarshalJSON implements json.Marshaler for Launcher.
func (l Launcher) MarshalJSON() ([]byte, error) {
	aux := launcherJSON{Name: l.Name, Height: l.Height, MaxSpeed: l.MaxSpeed}
	if name := ModelName(l.Model); name != "" {
		raw, err := json.Marshal(modelDisc{Model: name})
		if err != nil {
			return nil, err
		}
		aux.Model = raw
	}
	return json.Marshal(aux)
}

// ModelByName resolves a model discriminator. An empty name selects the drag-free model.
func ModelByName(name string) (ballistics.Model, error) {
	switch name {
	case ballistics.DragFreeModelName, "":
		return ballistics.DragFree{}, nil
	default:
		return nil, fmt.Errorf("unknown ballistics model %q", name)
	}
}

// ModelName returns the discriminator for a known model, or "" for nil and unknown models.
func ModelName(m ballistics.Model) string {
	switch m.(type) {
	case ballistics.DragFree, *ballistics.DragFree:
		return ballistics.DragFreeModelName
	default:
		return ""
	}
}
