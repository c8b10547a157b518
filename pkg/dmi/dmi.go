package dmi

import (
	"fmt"

	"github.com/threefoldtech/smbios/pkg/smbios"
)

// DecoderVersion is the information about the decoder in this package
const DecoderVersion = `threefoldtech Go smbios decoder v0.3.0`

// DMI represents the list of sections rendered from a decoded SMBIOS table,
// as well as information about the tool used to get these sections.
// Property in section is in the form of key value pairs where values are
// optional and may include a list of items as well.
// k: [v]
//
//	[
//		item1
//		item2
//		...
//	]
type DMI struct {
	Tooling  Tooling   `json:"tooling" yaml:"tooling"`
	Sections []Section `json:"sections" yaml:"sections"`
	// Diagnostics are the problems found while decoding the table
	Diagnostics []string `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// Tooling holds the information and version about the tool used to
// read DMI information
type Tooling struct {
	Aggregator string `json:"aggregator" yaml:"aggregator"`
	Decoder    string `json:"decoder" yaml:"decoder"`
}

var sectionNames = map[smbios.Type]string{
	smbios.TypeBIOS:                              "BIOS",
	smbios.TypeSystem:                            "System",
	smbios.TypeBaseboard:                         "Baseboard",
	smbios.TypeChassis:                           "Chassis",
	smbios.TypeProcessor:                         "Processor",
	smbios.TypeMemoryController:                  "MemoryController",
	smbios.TypeMemoryModule:                      "MemoryModule",
	smbios.TypeCache:                             "Cache",
	smbios.TypePortConnector:                     "PortConnector",
	smbios.TypeSystemSlots:                       "SystemSlots",
	smbios.TypeOnBoardDevices:                    "OnBoardDevices",
	smbios.TypeOEMStrings:                        "OEMSettings",
	smbios.TypeSystemConfigurationOptions:        "SystemConfigurationOptions",
	smbios.TypeBIOSLanguage:                      "BIOSLanguage",
	smbios.TypeGroupAssociations:                 "GroupAssociations",
	smbios.TypeSystemEventLog:                    "SystemEventLog",
	smbios.TypePhysicalMemoryArray:               "PhysicalMemoryArray",
	smbios.TypeMemoryDevice:                      "MemoryDevice",
	smbios.Type32BitMemoryError:                  "32BitMemoryError",
	smbios.TypeMemoryArrayMappedAddress:          "MemoryArrayMappedAddress",
	smbios.TypeMemoryDeviceMappedAddress:         "MemoryDeviceMappedAddress",
	smbios.TypeBuiltinPointingDevice:             "BuiltinPointingDevice",
	smbios.TypePortableBattery:                   "PortableBattery",
	smbios.TypeSystemReset:                       "SystemReset",
	smbios.TypeHardwareSecurity:                  "HardwareSecurity",
	smbios.TypeSystemPowerControls:               "SystemPowerControls",
	smbios.TypeVoltageProbe:                      "VoltageProbe",
	smbios.TypeCoolingDevice:                     "CoolingDevice",
	smbios.TypeTemperatureProbe:                  "TemperatureProbe",
	smbios.TypeElectricalCurrentProbe:            "ElectricalCurrentProbe",
	smbios.TypeOutOfBandRemoteAccess:             "OutOfBandRemoteAccess",
	smbios.TypeBootIntegrityServices:             "BootIntegrityServices",
	smbios.TypeSystemBoot:                        "SystemBoot",
	smbios.Type64BitMemoryError:                  "64BitMemoryError",
	smbios.TypeManagementDevice:                  "ManagementDevice",
	smbios.TypeManagementDeviceComponent:         "ManagementDeviceComponent",
	smbios.TypeManagementDeviceThresholdData:     "ManagementThresholdData",
	smbios.TypeMemoryChannel:                     "MemoryChannel",
	smbios.TypeIPMIDevice:                        "IPMIDevice",
	smbios.TypePowerSupply:                       "PowerSupply",
	smbios.TypeAdditionalInformation:             "AdditionalInformation",
	smbios.TypeOnboardDevicesExtendedInformation: "OnboardDeviceExtendedInformation",
	smbios.TypeManagementControllerHostInterface: "ManagementControllerHostInterface",
	smbios.TypeTPMDevice:                         "TPMDevice",
	smbios.TypeProcessorAdditionalInformation:    "ProcessorAdditionalInformation",
	smbios.TypeFirmwareInventoryInformation:      "FirmwareInventoryInformation",
	smbios.TypeStringProperty:                    "StringProperty",
	smbios.TypeInactive:                          "Inactive",
}

// PropertyData represents a key value pair with optional list of items
type PropertyData struct {
	Val   string   `json:"value" yaml:"value"`
	Items []string `json:"items,omitempty" yaml:"items,omitempty"`
}

// Section represents a complete section like BIOS or Baseboard
type Section struct {
	HandleLine  string       `json:"handleline" yaml:"handleline"`
	TypeStr     string       `json:"typestr,omitempty" yaml:"typestr,omitempty"`
	Type        smbios.Type  `json:"typenum" yaml:"typenum"`
	SubSections []SubSection `json:"subsections" yaml:"subsections"`
}

// SubSection represents part of a section, identified by a title
type SubSection struct {
	Title      string                  `json:"title" yaml:"title"`
	Properties map[string]PropertyData `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// sectionTypeToString returns the section name of type t
func sectionTypeToString(t smbios.Type) string {
	str := sectionNames[t]
	if str == "" {
		return fmt.Sprintf("Custom Type %d", t)
	}
	return str
}

// FromResult renders a decoded table into sections, one per structure in
// table order. Fields that are not present in a structure are left out of
// its properties.
func FromResult(result *smbios.Result) *DMI {
	tooling := Tooling{
		Aggregator: "unknown",
		Decoder:    DecoderVersion,
	}
	if !result.Version.IsZero() {
		tooling.Aggregator = fmt.Sprintf("SMBIOS %s", result.Version)
	}

	secs := make([]Section, 0, len(result.Structures))
	for _, s := range result.Structures {
		secs = append(secs, newSection(s, result.Version))
	}

	var diags []string
	for _, d := range result.Diagnostics {
		diags = append(diags, d.Error())
	}

	return &DMI{
		Tooling:     tooling,
		Sections:    secs,
		Diagnostics: diags,
	}
}

func newSection(s smbios.Structure, version smbios.Version) Section {
	h := s.Record()

	return Section{
		HandleLine: fmt.Sprintf("Handle 0x%04X, DMI type %d, %d bytes", h.Handle, h.Type, h.Length),
		TypeStr:    sectionTypeToString(h.Type),
		Type:       h.Type,
		SubSections: []SubSection{{
			Title:      h.Type.String(),
			Properties: render(s, version),
		}},
	}
}

// SectionsByType returns all the sections of type t
func (d *DMI) SectionsByType(t smbios.Type) []Section {
	var found []Section
	for _, sec := range d.Sections {
		if sec.Type == t {
			found = append(found, sec)
		}
	}

	return found
}

// Property returns the first value of property key in the sections of
// type t
func (d *DMI) Property(t smbios.Type, key string) (string, bool) {
	for _, sec := range d.SectionsByType(t) {
		for _, sub := range sec.SubSections {
			if prop, ok := sub.Properties[key]; ok {
				return prop.Val, true
			}
		}
	}

	return "", false
}

// BoardVersion returns the serial number of the base board
func (d *DMI) BoardVersion() string {
	serial, _ := d.Property(smbios.TypeBaseboard, "Serial Number")
	return serial
}
