package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostureCodesAndLabels(t *testing.T) {
	assert.Equal(t, 0, PostureCorrect.Code())
	assert.Equal(t, 1, PostureLeaning.Code())
	assert.Equal(t, 2, PostureSlouched.Code())

	assert.Equal(t, "CORRETA", PostureCorrect.Label())
	assert.Equal(t, "INCLINADA", PostureLeaning.Label())
	assert.Equal(t, "CURVADO", PostureSlouched.Label())
	assert.Equal(t, "LEANING", PostureLeaning.String())
	assert.Equal(t, "UNKNOWN", Posture(7).String())
}

func TestStateOf(t *testing.T) {
	assert.Equal(t, ConnectionUp, StateOf(true))
	assert.Equal(t, ConnectionDown, StateOf(false))
}
