package atmosphere

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Material is the sky's scattering parameter set. Distances are in metres in the
// planet's frame, coefficients per metre. It is plain value data: assignment copies it.
type Material struct {
	// SunPosition points at the sun; only its direction matters
	SunPosition mgl32.Vec3 `json:"sun_position"`
	// RayOrigin is the viewer's position relative to the planet centre
	RayOrigin    mgl32.Vec3 `json:"ray_origin"`
	SunIntensity float32    `json:"sun_intensity"`

	PlanetRadius     float32 `json:"planet_radius"`
	AtmosphereRadius float32 `json:"atmosphere_radius"`

	// Wavelength dependence is a fixed RGB approximation
	RayleighCoefficient mgl32.Vec3 `json:"rayleigh_coefficient"`
	MieCoefficient      float32    `json:"mie_coefficient"`

	RayleighScaleHeight float32 `json:"rayleigh_scale_height"`
	MieScaleHeight      float32 `json:"mie_scale_height"`

	// MieDirection is the Henyey-Greenstein asymmetry g, in (-1, 1)
	MieDirection float32 `json:"mie_direction"`
}

// DefaultMaterial returns the Earth daytime preset
func DefaultMaterial() Material {
	return Material{
		SunPosition:         mgl32.Vec3{0, 1, 1},
		RayOrigin:           mgl32.Vec3{0, 6372e3, 0},
		SunIntensity:        22.0,
		PlanetRadius:        6371e3,
		AtmosphereRadius:    6471e3,
		RayleighCoefficient: mgl32.Vec3{5.5e-6, 13.0e-6, 22.4e-6},
		MieCoefficient:      21e-6,
		RayleighScaleHeight: 8e3,
		MieScaleHeight:      1.2e3,
		MieDirection:        0.758,
	}
}

// Clone returns an independent copy
func (m Material) Clone() Material {
	return m
}

// Equal reports structural equality. It exists for change detection, not ordering.
func (m Material) Equal(other Material) bool {
	return m == other
}

// SunDirection returns the normalized sun direction, straight up when SunPosition is degenerate
func (m Material) SunDirection() mgl32.Vec3 {
	l := m.SunPosition.Len()
	if l < 1e-12 || math.IsNaN(float64(l)) || math.IsInf(float64(l), 0) {
		return mgl32.Vec3{0, 1, 0}
	}
	return m.SunPosition.Mul(1 / l)
}

// SetSunAngles points the sun by elevation above the horizon and azimuth around +Y, in radians
func (m *Material) SetSunAngles(elevation, azimuth float32) {
	m.SunPosition = SunFromAngles(elevation, azimuth)
}

// SunFromAngles converts elevation/azimuth (radians) into a unit direction.
// Azimuth 0 faces -Z, the default camera forward.
func SunFromAngles(elevation, azimuth float32) mgl32.Vec3 {
	ce := float32(math.Cos(float64(elevation)))
	return mgl32.Vec3{
		ce * float32(math.Sin(float64(azimuth))),
		float32(math.Sin(float64(elevation))),
		-ce * float32(math.Cos(float64(azimuth))),
	}
}

// Uniform names bound by ApplyUniforms
const (
	UniformSunPosition         = "sunPosition"
	UniformRayOrigin           = "rayOrigin"
	UniformSunIntensity        = "sunIntensity"
	UniformPlanetRadius        = "planetRadius"
	UniformAtmosphereRadius    = "atmosphereRadius"
	UniformRayleighCoefficient = "rayleighCoefficient"
	UniformMieCoefficient      = "mieCoefficient"
	UniformRayleighScaleHeight = "rayleighScaleHeight"
	UniformMieScaleHeight      = "mieScaleHeight"
	UniformMieDirection        = "mieDirection"
)

// UniformSetter receives shader parameters
type UniformSetter interface {
	SetVec3(name string, value mgl32.Vec3)
	SetFloat(name string, value float32)
}

// ApplyUniforms writes every parameter the fragment stage reads
func (m Material) ApplyUniforms(u UniformSetter) {
	u.SetVec3(UniformSunPosition, m.SunPosition)
	u.SetVec3(UniformRayOrigin, m.RayOrigin)
	u.SetFloat(UniformSunIntensity, m.SunIntensity)
	u.SetFloat(UniformPlanetRadius, m.PlanetRadius)
	u.SetFloat(UniformAtmosphereRadius, m.AtmosphereRadius)
	u.SetVec3(UniformRayleighCoefficient, m.RayleighCoefficient)
	u.SetFloat(UniformMieCoefficient, m.MieCoefficient)
	u.SetFloat(UniformRayleighScaleHeight, m.RayleighScaleHeight)
	u.SetFloat(UniformMieScaleHeight, m.MieScaleHeight)
	u.SetFloat(UniformMieDirection, m.MieDirection)
}
