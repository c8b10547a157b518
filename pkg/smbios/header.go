package smbios

import (
	"fmt"

	"github.com/pkg/errors"
)

// headerLen is the size of the header common to all structures
const headerLen = 4

// Type of an SMBIOS structure. Values up to 127 are defined by the
// specification, 128 and above are OEM specific.
type Type uint8

// Structure types
const (
	TypeBIOS Type = iota
	TypeSystem
	TypeBaseboard
	TypeChassis
	TypeProcessor
	TypeMemoryController
	TypeMemoryModule
	TypeCache
	TypePortConnector
	TypeSystemSlots
	TypeOnBoardDevices
	TypeOEMStrings
	TypeSystemConfigurationOptions
	TypeBIOSLanguage
	TypeGroupAssociations
	TypeSystemEventLog
	TypePhysicalMemoryArray
	TypeMemoryDevice
	Type32BitMemoryError
	TypeMemoryArrayMappedAddress
	TypeMemoryDeviceMappedAddress
	TypeBuiltinPointingDevice
	TypePortableBattery
	TypeSystemReset
	TypeHardwareSecurity
	TypeSystemPowerControls
	TypeVoltageProbe
	TypeCoolingDevice
	TypeTemperatureProbe
	TypeElectricalCurrentProbe
	TypeOutOfBandRemoteAccess
	TypeBootIntegrityServices
	TypeSystemBoot
	Type64BitMemoryError
	TypeManagementDevice
	TypeManagementDeviceComponent
	TypeManagementDeviceThresholdData
	TypeMemoryChannel
	TypeIPMIDevice
	TypePowerSupply
	TypeAdditionalInformation
	TypeOnboardDevicesExtendedInformation
	TypeManagementControllerHostInterface
	TypeTPMDevice
	TypeProcessorAdditionalInformation
	TypeFirmwareInventoryInformation
	TypeStringProperty

	TypeInactive   Type = 126
	TypeEndOfTable Type = 127
)

var typeNames = map[Type]string{
	TypeBIOS:                              "BIOS Information",
	TypeSystem:                            "System Information",
	TypeBaseboard:                         "Base Board Information",
	TypeChassis:                           "Chassis Information",
	TypeProcessor:                         "Processor Information",
	TypeMemoryController:                  "Memory Controller Information",
	TypeMemoryModule:                      "Memory Module Information",
	TypeCache:                             "Cache Information",
	TypePortConnector:                     "Port Connector Information",
	TypeSystemSlots:                       "System Slot Information",
	TypeOnBoardDevices:                    "On Board Device Information",
	TypeOEMStrings:                        "OEM Strings",
	TypeSystemConfigurationOptions:        "System Configuration Options",
	TypeBIOSLanguage:                      "BIOS Language Information",
	TypeGroupAssociations:                 "Group Associations",
	TypeSystemEventLog:                    "System Event Log",
	TypePhysicalMemoryArray:               "Physical Memory Array",
	TypeMemoryDevice:                      "Memory Device",
	Type32BitMemoryError:                  "32-bit Memory Error Information",
	TypeMemoryArrayMappedAddress:          "Memory Array Mapped Address",
	TypeMemoryDeviceMappedAddress:         "Memory Device Mapped Address",
	TypeBuiltinPointingDevice:             "Built-in Pointing Device",
	TypePortableBattery:                   "Portable Battery",
	TypeSystemReset:                       "System Reset",
	TypeHardwareSecurity:                  "Hardware Security",
	TypeSystemPowerControls:               "System Power Controls",
	TypeVoltageProbe:                      "Voltage Probe",
	TypeCoolingDevice:                     "Cooling Device",
	TypeTemperatureProbe:                  "Temperature Probe",
	TypeElectricalCurrentProbe:            "Electrical Current Probe",
	TypeOutOfBandRemoteAccess:             "Out-of-band Remote Access",
	TypeBootIntegrityServices:             "Boot Integrity Services",
	TypeSystemBoot:                        "System Boot Information",
	Type64BitMemoryError:                  "64-bit Memory Error Information",
	TypeManagementDevice:                  "Management Device",
	TypeManagementDeviceComponent:         "Management Device Component",
	TypeManagementDeviceThresholdData:     "Management Device Threshold Data",
	TypeMemoryChannel:                     "Memory Channel",
	TypeIPMIDevice:                        "IPMI Device Information",
	TypePowerSupply:                       "System Power Supply",
	TypeAdditionalInformation:             "Additional Information",
	TypeOnboardDevicesExtendedInformation: "Onboard Device",
	TypeManagementControllerHostInterface: "Management Controller Host Interface",
	TypeTPMDevice:                         "TPM Device",
	TypeProcessorAdditionalInformation:    "Processor Additional Information",
	TypeFirmwareInventoryInformation:      "Firmware Inventory Information",
	TypeStringProperty:                    "String Property",
	TypeInactive:                          "Inactive",
	TypeEndOfTable:                        "End Of Table",
}

func (t Type) String() string {
	if str, ok := typeNames[t]; ok {
		return str
	}
	if t >= 128 {
		return fmt.Sprintf("OEM-specific Type %d", uint8(t))
	}

	return fmt.Sprintf("Unknown Type %d", uint8(t))
}

// Header is the header common to all structures
type Header struct {
	Type Type `json:"type" yaml:"type"`
	// Length of the formatted area including the header. The string
	// table is not included.
	Length uint8 `json:"length" yaml:"length"`
	// Handle uniquely identifies the structure in the table, other
	// structures use it to reference this one.
	Handle uint16 `json:"handle" yaml:"handle"`
}

// Record returns the header a structure was decoded from
func (h Header) Record() Header {
	return h
}

func parseHeader(c cursor, offset int) (Header, error) {
	b, err := c.slice(offset, headerLen)
	if err != nil {
		return Header{}, errors.WithMessagef(ErrTruncatedHeader, "%d bytes left", c.len()-offset)
	}

	h := Header{
		Type:   Type(b[0]),
		Length: b[1],
		Handle: uint16(b[2]) | uint16(b[3])<<8,
	}

	if h.Length < headerLen {
		return h, errors.WithMessagef(ErrInvalidLength, "length %d is below header size", h.Length)
	}

	return h, nil
}
