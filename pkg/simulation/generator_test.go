package simulation

import (
	"math"
	"testing"

	"github.com/janael-pinheiro/smartdesk-agent-golang/pkg/entities"
	"github.com/stretchr/testify/assert"
)

const testDeviceID = "563412C40A24"

func TestFirstSampleFromZeroPhase(t *testing.T) {
	generator := NewGenerator(0, DefaultPhaseStep)
	sample := generator.NextSample(testDeviceID)

	assert.InDelta(t, 0.2, generator.Phase(), 1e-12)
	assert.InDelta(t, 24.993, sample.Temperature, 0.001)
	assert.Equal(t, 379, sample.Illuminance)
	assert.InDelta(t, 115.80, sample.ScreenHeight, 0.01)
	assert.Equal(t, 20, sample.SeatedMinutes)
	assert.Equal(t, entities.PostureLeaning, sample.Posture)
	assert.Equal(t, testDeviceID, sample.DeviceID)
}

func TestSeatedMinutesWrapsAfterEighty(t *testing.T) {
	generator := NewGenerator(0, DefaultPhaseStep)
	expected := []int{20, 40, 60, 80, 0, 20, 40, 60, 80, 0, 20}
	for i, want := range expected {
		sample := generator.NextSample(testDeviceID)
		assert.Equal(t, want, sample.SeatedMinutes, "cycle %d", i+1)
	}
}

func TestPhaseAdvancesOncePerSample(t *testing.T) {
	generator := NewGenerator(1.0, DefaultPhaseStep)
	previous := generator.Phase()
	for i := 0; i < 50; i++ {
		generator.NextSample(testDeviceID)
		assert.Greater(t, generator.Phase(), previous)
		assert.InDelta(t, previous+DefaultPhaseStep, generator.Phase(), 1e-9)
		previous = generator.Phase()
	}
}

func TestWaveformsStayInRange(t *testing.T) {
	generator := NewGenerator(0, DefaultPhaseStep)
	for i := 0; i < 2000; i++ {
		sample := generator.NextSample(testDeviceID)
		assert.GreaterOrEqual(t, sample.Temperature, 19.0)
		assert.LessOrEqual(t, sample.Temperature, 29.0)
		assert.GreaterOrEqual(t, sample.Illuminance, 50)
		assert.LessOrEqual(t, sample.Illuminance, 650)
		assert.GreaterOrEqual(t, sample.ScreenHeight, 95.0)
		assert.LessOrEqual(t, sample.ScreenHeight, 135.0)
	}
}

func TestIlluminanceTruncates(t *testing.T) {
	// 350 + 300*sin(0.1) = 379.95
	assert.Equal(t, 379, Illuminance(0.2))
	assert.Equal(t, 650, Illuminance(math.Pi))
}

func TestClassifyPosture(t *testing.T) {
	cases := []struct {
		wave float64
		want entities.Posture
	}{
		{0.31, entities.PostureCorrect},
		{1.0, entities.PostureCorrect},
		{0.3, entities.PostureLeaning},
		{0.0, entities.PostureLeaning},
		{-0.3, entities.PostureLeaning},
		{-0.31, entities.PostureSlouched},
		{-1.0, entities.PostureSlouched},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ClassifyPosture(c.wave), "wave %v", c.wave)
	}
}

func TestPostureFollowsPhase(t *testing.T) {
	generator := NewGenerator(0, DefaultPhaseStep)
	for i := 0; i < 200; i++ {
		sample := generator.NextSample(testDeviceID)
		want := ClassifyPosture(math.Sin(generator.Phase() * PostureFrequency))
		assert.Equal(t, want, sample.Posture)
	}
}

func TestSameStartGivesSameSequence(t *testing.T) {
	first := NewGenerator(0.4, DefaultPhaseStep)
	second := NewGenerator(0.4, DefaultPhaseStep)
	for i := 0; i < 30; i++ {
		assert.Equal(t, first.NextSample(testDeviceID), second.NextSample(testDeviceID))
	}
}
