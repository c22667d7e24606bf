package scene

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

var (
	// ErrUnknownMaterial is returned when a sphere names a material that is not defined
	ErrUnknownMaterial = errors.New("unknown material")
	// ErrUnknownMaterialType is returned for a material type other than
	// lambertian, metal, dielectric or solid
	ErrUnknownMaterialType = errors.New("unknown material type")
)

// Default camera values for scene files that omit them
const (
	defaultVFov   = 90.0
	defaultWidth  = 400
	defaultHeight = 225
)

// File is the YAML representation of a scene
type File struct {
	Name      string                  `yaml:"name,omitempty"`
	Camera    CameraSpec              `yaml:"camera"`
	Sampling  SamplingSpec            `yaml:"sampling,omitempty"`
	Materials map[string]MaterialSpec `yaml:"materials"`
	Spheres   []SphereSpec            `yaml:"spheres"`
}

type CameraSpec struct {
	LookFrom [3]float64    `yaml:"look_from"`
	LookAt   [3]float64    `yaml:"look_at"`
	VFov     float64       `yaml:"vfov,omitempty"`   // Degrees, defaults to 90
	Width    int           `yaml:"width,omitempty"`  // Pixels, defaults to 400
	Height   int           `yaml:"height,omitempty"` // Pixels, defaults to 225
	Rotate   *RotationSpec `yaml:"rotate,omitempty"`
}

// RotationSpec is an extra rotation about the world origin, applied after look-at
type RotationSpec struct {
	Axis    [3]float64 `yaml:"axis"`
	Degrees float64    `yaml:"degrees"`
}

// SamplingSpec overrides renderer.DefaultSamplingConfig; zero values keep the default
type SamplingSpec struct {
	SamplesPerPixel int   `yaml:"samples_per_pixel,omitempty"`
	MaxDepth        int   `yaml:"max_depth,omitempty"`
	Workers         int   `yaml:"workers,omitempty"`
	Seed            int64 `yaml:"seed,omitempty"`
}

type MaterialSpec struct {
	Type            string     `yaml:"type"`
	Albedo          [3]float64 `yaml:"albedo,omitempty"`           // lambertian, metal
	Fuzz            float64    `yaml:"fuzz,omitempty"`             // metal
	RefractiveIndex float64    `yaml:"refractive_index,omitempty"` // dielectric
	Color           [3]float64 `yaml:"color,omitempty"`            // solid
}

type SphereSpec struct {
	Center   [3]float64 `yaml:"center"`
	Radius   float64    `yaml:"radius"`
	Material string     `yaml:"material"`
}

// LoadFile reads and builds a YAML scene file. A file without a name takes
// its base name.
func LoadFile(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene file: %w", err)
	}

	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// Parse decodes a YAML scene and builds it. Unknown keys are rejected.
func Parse(data []byte) (*Scene, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var f File
	if err := decoder.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("parsing scene: empty document")
		}
		return nil, fmt.Errorf("parsing scene: %w", err)
	}
	return f.Build()
}

// Build converts the file into a Scene. Spheres naming the same material
// share one material instance.
func (f *File) Build() (*Scene, error) {
	cameraConfig, err := f.Camera.config()
	if err != nil {
		return nil, err
	}

	materials, err := f.buildMaterials()
	if err != nil {
		return nil, err
	}

	world := geometry.NewHittableCollection()
	for i, sphere := range f.Spheres {
		mat, ok := materials[sphere.Material]
		if !ok {
			return nil, fmt.Errorf("sphere %d: %w %q", i, ErrUnknownMaterial, sphere.Material)
		}
		world.Add(geometry.NewSphere(vec(sphere.Center), sphere.Radius, mat))
	}

	return &Scene{
		Name:           f.Name,
		CameraConfig:   cameraConfig,
		World:          world,
		SamplingConfig: renderer.MergeSamplingConfig(renderer.DefaultSamplingConfig(), f.Sampling.config()),
	}, nil
}

func (f *File) buildMaterials() (map[string]material.Material, error) {
	// Sorted so the first reported error does not depend on map order
	names := make([]string, 0, len(f.Materials))
	for name := range f.Materials {
		names = append(names, name)
	}
	sort.Strings(names)

	materials := make(map[string]material.Material, len(names))
	for _, name := range names {
		mat, err := f.Materials[name].build()
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		materials[name] = mat
	}
	return materials, nil
}

func (m MaterialSpec) build() (material.Material, error) {
	switch strings.ToLower(m.Type) {
	case "lambertian":
		return material.NewLambertian(vec(m.Albedo)), nil
	case "metal":
		return material.NewMetal(vec(m.Albedo), m.Fuzz), nil
	case "dielectric":
		if !(m.RefractiveIndex > 0) {
			return nil, fmt.Errorf("refractive index %v must be positive", m.RefractiveIndex)
		}
		return material.NewDielectric(m.RefractiveIndex), nil
	case "solid":
		return material.NewSolidColor(vec(m.Color)), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownMaterialType, m.Type)
	}
}

func (c CameraSpec) config() (renderer.CameraConfig, error) {
	config := renderer.CameraConfig{
		Transform: core.NewLookAtTransform(vec(c.LookFrom), vec(c.LookAt)),
		VFov:      c.VFov,
		Width:     c.Width,
		Height:    c.Height,
	}
	if config.VFov == 0 {
		config.VFov = defaultVFov
	}
	if config.Width == 0 {
		config.Width = defaultWidth
	}
	if config.Height == 0 {
		config.Height = defaultHeight
	}

	if c.Rotate != nil {
		axis := r3.Vec{X: c.Rotate.Axis[0], Y: c.Rotate.Axis[1], Z: c.Rotate.Axis[2]}
		if r3.Norm(axis) == 0 {
			return renderer.CameraConfig{}, errors.New("camera: rotation axis must be non-zero")
		}
		rotation := r3.NewRotation(c.Rotate.Degrees*math.Pi/180, r3.Unit(axis))
		config.Transform = config.Transform.Rotated(rotation)
	}

	if err := config.Validate(); err != nil {
		return renderer.CameraConfig{}, fmt.Errorf("camera: %w", err)
	}
	return config, nil
}

func (s SamplingSpec) config() renderer.SamplingConfig {
	return renderer.SamplingConfig{
		SamplesPerPixel: s.SamplesPerPixel,
		MaxDepth:        s.MaxDepth,
		NumWorkers:      s.Workers,
		Seed:            s.Seed,
	}
}

func vec(v [3]float64) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}
