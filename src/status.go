package scm

/*-------------------------------------------------------------
 *
 * Purpose:	Collar operating modes reported in status frames.
 *
 *--------------------------------------------------------------*/

import "fmt"

type OperatingMode int

const (
	ModeUnknown          OperatingMode = 0
	ModeTesting          OperatingMode = 1
	ModeCertification    OperatingMode = 2
	ModeGPSTest          OperatingMode = 3
	ModeTransmissionTest OperatingMode = 4
	ModeHibernation      OperatingMode = 5
	ModeBLEMenu          OperatingMode = 6
	ModeDeployed         OperatingMode = 7
	ModePedometer        OperatingMode = 8
)

var operatingModeNames = map[OperatingMode]string{
	ModeUnknown:          "Unknown",
	ModeTesting:          "Testing",
	ModeCertification:    "Certification",
	ModeGPSTest:          "GPS_Test",
	ModeTransmissionTest: "Transmission_Test",
	ModeHibernation:      "Hibernation",
	ModeBLEMenu:          "BLE_Menu",
	ModeDeployed:         "Deployed",
	ModePedometer:        "Pedometer",
}

func (m OperatingMode) String() string {
	if name, ok := operatingModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("OperatingMode(%d)", int(m))
}

func (m OperatingMode) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnsupportedOperatingModeError reports a status frame whose mode
// code falls outside the known set.
type UnsupportedOperatingModeError struct {
	Code uint32
}

func (e *UnsupportedOperatingModeError) Error() string {
	return fmt.Sprintf("unsupported operating mode code %d, expected 0 through %d", e.Code, int(ModePedometer))
}

// OperatingModeFromCode maps a packed mode code to the enumeration.
func OperatingModeFromCode(code uint32) (OperatingMode, error) {
	if code > uint32(ModePedometer) {
		return 0, &UnsupportedOperatingModeError{Code: code}
	}
	return OperatingMode(code), nil
}
