package atmosphere

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// Integration sample counts. The fragment shader uses the same values.
const (
	PrimarySteps   = 16
	SecondarySteps = 8
)

// miss is what raySphere returns when the ray misses: start after end
var miss = mgl64.Vec2{1e5, -1e5}

// raySphere intersects a ray with a sphere centred on the origin and returns
// the near and far distances along dir. dir must be normalized.
func raySphere(origin, dir mgl64.Vec3, radius float64) mgl64.Vec2 {
	a := dir.Dot(dir)
	b := 2.0 * dir.Dot(origin)
	c := origin.Dot(origin) - radius*radius
	d := b*b - 4.0*a*c
	if d < 0.0 {
		return miss
	}
	s := math.Sqrt(d)
	return mgl64.Vec2{(-b - s) / (2.0 * a), (-b + s) / (2.0 * a)}
}

func rayleighPhase(mu float64) float64 {
	return 3.0 / (16.0 * math.Pi) * (1.0 + mu*mu)
}

func miePhase(mu, g float64) float64 {
	gg := g * g
	denom := math.Max(math.Pow(1.0+gg-2.0*mu*g, 1.5), 1e-6) * (2.0 + gg)
	return 3.0 / (8.0 * math.Pi) * ((1.0 - gg) * (mu*mu + 1.0)) / denom
}

func normalize64(v mgl32.Vec3) (mgl64.Vec3, bool) {
	d := mgl64.Vec3{float64(v[0]), float64(v[1]), float64(v[2])}
	l := d.Len()
	if l < 1e-12 || math.IsNaN(l) || math.IsInf(l, 0) {
		return mgl64.Vec3{}, false
	}
	return d.Mul(1.0 / l), true
}

func vec64(v mgl32.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{float64(v[0]), float64(v[1]), float64(v[2])}
}

func expVec(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{math.Exp(v[0]), math.Exp(v[1]), math.Exp(v[2])}
}

// Scatter integrates single scattering along viewDir and returns linear radiance.
// Only the direction of viewDir matters; a zero vector yields black.
func Scatter(viewDir mgl32.Vec3, m Material) mgl32.Vec3 {
	r, ok := normalize64(viewDir)
	if !ok {
		return mgl32.Vec3{}
	}
	sun, ok := normalize64(m.SunPosition)
	if !ok {
		sun = mgl64.Vec3{0, 1, 0}
	}

	r0 := vec64(m.RayOrigin)
	rPlanet := float64(m.PlanetRadius)
	rAtmos := float64(m.AtmosphereRadius)
	kRlh := vec64(m.RayleighCoefficient)
	kMie := float64(m.MieCoefficient)
	shRlh := float64(m.RayleighScaleHeight)
	shMie := float64(m.MieScaleHeight)
	g := float64(m.MieDirection)

	p := raySphere(r0, r, rAtmos)
	if p[0] > p[1] {
		return mgl32.Vec3{}
	}
	// The viewer sits inside the atmosphere: start at the eye, stop at the ground
	p[0] = math.Max(p[0], 0.0)
	if ground := raySphere(r0, r, rPlanet); ground[0] > 0.0 {
		p[1] = math.Min(p[1], ground[0])
	}
	if p[1] <= p[0] {
		return mgl32.Vec3{}
	}

	iStepSize := (p[1] - p[0]) / float64(PrimarySteps)
	iTime := p[0]

	var totalRlh, totalMie mgl64.Vec3
	iOdRlh, iOdMie := 0.0, 0.0

	mu := r.Dot(sun)
	pRlh := rayleighPhase(mu)
	pMie := miePhase(mu, g)

	for i := 0; i < PrimarySteps; i++ {
		iPos := r0.Add(r.Mul(iTime + iStepSize*0.5))
		iHeight := iPos.Len() - rPlanet

		odStepRlh := math.Exp(-iHeight/shRlh) * iStepSize
		odStepMie := math.Exp(-iHeight/shMie) * iStepSize
		iOdRlh += odStepRlh
		iOdMie += odStepMie

		jStepSize := math.Max(raySphere(iPos, sun, rAtmos)[1], 0.0) / float64(SecondarySteps)
		jTime := 0.0
		jOdRlh, jOdMie := 0.0, 0.0
		lit := true

		for j := 0; j < SecondarySteps; j++ {
			jPos := iPos.Add(sun.Mul(jTime + jStepSize*0.5))
			jHeight := jPos.Len() - rPlanet
			if jHeight < 0.0 {
				// Sun ray passes through the planet
				lit = false
				break
			}
			jOdRlh += math.Exp(-jHeight/shRlh) * jStepSize
			jOdMie += math.Exp(-jHeight/shMie) * jStepSize
			jTime += jStepSize
		}

		if lit {
			depth := kRlh.Mul(iOdRlh + jOdRlh).Add(mgl64.Vec3{1, 1, 1}.Mul(kMie * (iOdMie + jOdMie)))
			attn := expVec(depth.Mul(-1.0))
			totalRlh = totalRlh.Add(attn.Mul(odStepRlh))
			totalMie = totalMie.Add(attn.Mul(odStepMie))
		}

		iTime += iStepSize
	}

	c := mgl64.Vec3{
		pRlh * kRlh[0] * totalRlh[0],
		pRlh * kRlh[1] * totalRlh[1],
		pRlh * kRlh[2] * totalRlh[2],
	}.Add(totalMie.Mul(pMie * kMie)).Mul(float64(m.SunIntensity))

	return mgl32.Vec3{float32(c[0]), float32(c[1]), float32(c[2])}
}

// Tonemap maps linear radiance into [0, 1] per channel. Very bright values round to 1 in float32.
func Tonemap(c mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		1 - float32(math.Exp(-float64(c[0]))),
		1 - float32(math.Exp(-float64(c[1]))),
		1 - float32(math.Exp(-float64(c[2]))),
	}
}

// SkyColor is the displayed colour of a sky fragment at worldPos seen from cameraPos
func SkyColor(worldPos, cameraPos mgl32.Vec3, m Material) mgl32.Vec3 {
	return Tonemap(Scatter(worldPos.Sub(cameraPos), m))
}

// Sampler evaluates the sky for arbitrary directions, e.g. for probes or ambient light
type Sampler struct {
	Material Material
}

// Sample returns the tonemapped sky colour in direction dir
func (s Sampler) Sample(dir mgl32.Vec3) mgl32.Vec3 {
	return Tonemap(Scatter(dir, s.Material))
}

// Ambient averages the upper hemisphere with a fixed set of directions
func (s Sampler) Ambient() mgl32.Vec3 {
	dirs := [...]mgl32.Vec3{
		{0, 1, 0},
		{1, 1, 0}, {-1, 1, 0}, {0, 1, 1}, {0, 1, -1},
		{1, 0.2, 1}, {-1, 0.2, 1}, {1, 0.2, -1}, {-1, 0.2, -1},
	}
	var sum mgl32.Vec3
	for _, d := range dirs {
		sum = sum.Add(s.Sample(d))
	}
	return sum.Mul(1 / float32(len(dirs)))
}
