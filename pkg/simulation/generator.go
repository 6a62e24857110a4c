// Package simulation produces the synthetic ergonomic readings of the desk.
// Every value is a deterministic function of a phase accumulator, so a given
// starting phase always yields the same sequence of samples.
package simulation

import (
	"math"

	"github.com/janael-pinheiro/smartdesk-agent-golang/pkg/entities"
)

const (
	DefaultPhaseStep = 0.2

	TemperatureOffset    = 24.0
	TemperatureAmplitude = 5.0

	IlluminanceOffset    = 350.0
	IlluminanceAmplitude = 300.0
	IlluminanceFrequency = 0.5

	ScreenHeightOffset    = 115.0
	ScreenHeightAmplitude = 20.0
	ScreenHeightFrequency = 0.2

	SeatedMinutesStep    = 20
	SeatedMinutesCeiling = 90

	PostureFrequency = 0.3
	PostureThreshold = 0.3
)

// Generator owns the phase accumulator and the seated-minutes counter.
// It is not safe for concurrent use.
type Generator struct {
	phase         float64
	step          float64
	seatedMinutes int
}

func NewGenerator(initialPhase, step float64) *Generator {
	return &Generator{phase: initialPhase, step: step}
}

// NextSample advances the phase by one step and derives a fresh sample from it.
func (g *Generator) NextSample(deviceID string) entities.Sample {
	g.phase += g.step
	a := g.phase

	g.seatedMinutes += SeatedMinutesStep
	if g.seatedMinutes > SeatedMinutesCeiling {
		g.seatedMinutes = 0
	}

	return entities.Sample{
		DeviceID:      deviceID,
		Temperature:   Temperature(a),
		Illuminance:   Illuminance(a),
		SeatedMinutes: g.seatedMinutes,
		ScreenHeight:  ScreenHeight(a),
		Posture:       ClassifyPosture(math.Sin(a * PostureFrequency)),
	}
}

func (g *Generator) Phase() float64 {
	return g.phase
}

func Temperature(phase float64) float64 {
	return TemperatureOffset + TemperatureAmplitude*math.Sin(phase)
}

// Illuminance truncates toward zero; the result is always positive so this
// is a floor.
func Illuminance(phase float64) int {
	return int(IlluminanceOffset + IlluminanceAmplitude*math.Sin(phase*IlluminanceFrequency))
}

func ScreenHeight(phase float64) float64 {
	return ScreenHeightOffset + ScreenHeightAmplitude*math.Sin(phase*ScreenHeightFrequency)
}

// ClassifyPosture maps the posture wave onto the three classes. LEANING
// includes both thresholds.
func ClassifyPosture(wave float64) entities.Posture {
	switch {
	case wave > PostureThreshold:
		return entities.PostureCorrect
	case wave >= -PostureThreshold:
		return entities.PostureLeaning
	default:
		return entities.PostureSlouched
	}
}
