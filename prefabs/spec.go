package prefabs

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/milk9111/minigames/input"
	"gopkg.in/yaml.v3"
)

// ErrEmptySpec is returned for a prefab file with no content, which is what
// an editor leaves on disk between truncating and rewriting it.
var ErrEmptySpec = errors.New("prefabs: empty spec")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return zero, fmt.Errorf("%w: %s", ErrEmptySpec, filename)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

const (
	PhysicsFile    = "physics.yaml"
	ControllerFile = "controller.yaml"
	AnimationFile  = "animation.yaml"
	CameraFile     = "camera.yaml"
	InputFile      = "input.yaml"
)

type VecSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// PhysicsSpec tunes the physics backend. It is read once, when the backend
// is loaded.
type PhysicsSpec struct {
	Iterations  int     `yaml:"iterations"`
	Friction    float64 `yaml:"friction"`
	GroundProbe float64 `yaml:"ground_probe"`
	Gravity     VecSpec `yaml:"gravity"`
}

type ControllerSpec struct {
	Name             string  `yaml:"name"`
	Speed            float64 `yaml:"speed"`
	JumpForce        float64 `yaml:"jump_force"`
	CoyoteFrames     int     `yaml:"coyote_frames"`
	JumpBufferFrames int     `yaml:"jump_buffer_frames"`
	SlopeLimitDeg    float64 `yaml:"slope_limit_deg"`
	StepOffset       float64 `yaml:"step_offset"`
	Width            float64 `yaml:"width"`
	Height           float64 `yaml:"height"`
	Spawn            VecSpec `yaml:"spawn"`
}

type ThresholdSpec struct {
	IdleSpeed    float64 `yaml:"idle_speed"`
	WalkSpeed    float64 `yaml:"walk_speed"`
	RunSpeed     float64 `yaml:"run_speed"`
	JumpVelocity float64 `yaml:"jump_velocity"`
	FallVelocity float64 `yaml:"fall_velocity"`
}

// TransitionSpec is one row of a transition table. When is a tengo boolean
// expression over speed, vy, grounded, coyote and attack.
type TransitionSpec struct {
	Name     string  `yaml:"name"`
	From     string  `yaml:"from"`
	To       string  `yaml:"to"`
	When     string  `yaml:"when"`
	Duration float64 `yaml:"duration"`
}

// AnimationSpec configures blending thresholds and, optionally, replaces the
// built-in transition table.
type AnimationSpec struct {
	Initial         string           `yaml:"initial"`
	DefaultDuration float64          `yaml:"default_duration"`
	Thresholds      ThresholdSpec    `yaml:"thresholds"`
	Transitions     []TransitionSpec `yaml:"transitions"`
}

type CameraSpec struct {
	Name     string  `yaml:"name"`
	Size     float64 `yaml:"size"`
	Aspect   float64 `yaml:"aspect"`
	Near     float64 `yaml:"near"`
	Far      float64 `yaml:"far"`
	Damping  float64 `yaml:"damping"`
	Offset   VecSpec `yaml:"offset"`
	Position VecSpec `yaml:"position"`
}

type InputSpec struct {
	Mapping input.Mapping `yaml:",inline"`
}

func LoadPhysicsSpec() (*PhysicsSpec, error) {
	spec, err := LoadSpec[PhysicsSpec](PhysicsFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

func LoadControllerSpec() (*ControllerSpec, error) {
	spec, err := LoadSpec[ControllerSpec](ControllerFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

func LoadAnimationSpec() (*AnimationSpec, error) {
	spec, err := LoadSpec[AnimationSpec](AnimationFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

func LoadCameraSpec() (*CameraSpec, error) {
	spec, err := LoadSpec[CameraSpec](CameraFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// LoadInputSpec loads the bindings, filling any device section the file
// leaves out from input.DefaultMapping.
func LoadInputSpec() (*InputSpec, error) {
	spec, err := LoadSpec[InputSpec](InputFile)
	if err != nil {
		return nil, err
	}
	def := input.DefaultMapping()
	if len(spec.Mapping.Keys) == 0 {
		spec.Mapping.Keys = def.Keys
	}
	if len(spec.Mapping.Gamepad.Buttons) == 0 {
		spec.Mapping.Gamepad = def.Gamepad
	}
	if spec.Mapping.Touch.Joystick.Radius <= 0 && len(spec.Mapping.Touch.Buttons) == 0 {
		spec.Mapping.Touch = def.Touch
	}
	return &spec, nil
}
