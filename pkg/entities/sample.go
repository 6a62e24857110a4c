package entities

type Posture int

const (
	PostureCorrect  Posture = 0
	PostureLeaning  Posture = 1
	PostureSlouched Posture = 2
)

// Code returns the numeric posture code sent in both payloads.
func (p Posture) Code() int {
	return int(p)
}

// Label returns the description consumed by the Node-RED flows.
func (p Posture) Label() string {
	switch p {
	case PostureCorrect:
		return "CORRETA"
	case PostureLeaning:
		return "INCLINADA"
	case PostureSlouched:
		return "CURVADO"
	}
	return "DESCONHECIDA"
}

func (p Posture) String() string {
	switch p {
	case PostureCorrect:
		return "CORRECT"
	case PostureLeaning:
		return "LEANING"
	case PostureSlouched:
		return "SLOUCHED"
	}
	return "UNKNOWN"
}

// Sample is one simulated ergonomic reading. It is built once per publish
// cycle and discarded after both channels have been tried.
type Sample struct {
	DeviceID      string
	Temperature   float64
	Illuminance   int
	SeatedMinutes int
	ScreenHeight  float64
	Posture       Posture
}

type ConnectionState string

const (
	ConnectionDown ConnectionState = "down"
	ConnectionUp   ConnectionState = "up"
)

func StateOf(up bool) ConnectionState {
	if up {
		return ConnectionUp
	}
	return ConnectionDown
}
