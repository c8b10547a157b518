package dmi

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/threefoldtech/smbios/pkg/smbios"
)

// properties of a sub section under construction
type properties map[string]PropertyData

func (p properties) set(key, val string) {
	p[key] = PropertyData{Val: val}
}

func (p properties) list(key string, items []string) {
	if len(items) == 0 {
		return
	}
	p[key] = PropertyData{Items: items}
}

// text sets a string property, empty strings are reported the way
// dmidecode does
func (p properties) text(key string, v *string) {
	if v == nil {
		return
	}

	val := strings.TrimSpace(*v)
	if len(val) == 0 {
		val = "Not Specified"
	}
	p.set(key, val)
}

func prop[V any](p properties, key string, v *V, format func(V) string) {
	if v == nil {
		return
	}
	p.set(key, format(*v))
}

func dec[V ~uint8 | ~uint16 | ~uint32 | ~uint64](v V) string {
	return strconv.FormatUint(uint64(v), 10)
}

func handle(h uint16) string {
	return fmt.Sprintf("0x%04X", h)
}

func unit(u string) func(uint16) string {
	return func(v uint16) string {
		if v == 0 {
			return "Unknown"
		}
		return fmt.Sprintf("%d %s", v, u)
	}
}

func render(s smbios.Structure, version smbios.Version) map[string]PropertyData {
	p := make(properties)

	switch s := s.(type) {
	case *smbios.BIOSInformation:
		renderBIOS(p, s)
	case *smbios.SystemInformation:
		renderSystem(p, s, version)
	case *smbios.BaseboardInformation:
		renderBaseboard(p, s)
	case *smbios.ChassisInformation:
		renderChassis(p, s)
	case *smbios.ProcessorInformation:
		renderProcessor(p, s)
	case *smbios.CacheInformation:
		renderCache(p, s)
	case *smbios.SystemSlot:
		renderSlot(p, s)
	case *smbios.OEMStrings:
		for i, str := range s.Strings {
			p.text(fmt.Sprintf("String %d", i+1), &str)
		}
	case *smbios.PhysicalMemoryArray:
		renderMemoryArray(p, s)
	case *smbios.MemoryDevice:
		renderMemoryDevice(p, s)
	case *smbios.MemoryArrayMappedAddress:
		renderMappedAddress(p, s)
	case *smbios.SystemBootInformation:
		prop(p, "Status", s.Status, smbios.BootStatus.String)
	case *smbios.Unknown:
		renderUnknown(p, s)
	}

	if len(p) == 0 {
		return nil
	}

	return p
}

func renderBIOS(p properties, s *smbios.BIOSInformation) {
	p.text("Vendor", s.Vendor)
	p.text("Version", s.Version)
	p.text("Release Date", s.ReleaseDate)
	prop(p, "Address", s.StartingSegment, func(v uint16) string {
		return fmt.Sprintf("0x%05X", uint32(v)<<4)
	})
	if size, ok := s.ROMSizeBytes(); ok {
		p.set("ROM Size", humanize.IBytes(size))
	}

	var items []string
	if s.Characteristics != nil {
		items = append(items, s.Characteristics.Names()...)
	}
	if s.CharacteristicsExt1 != nil {
		items = append(items, s.CharacteristicsExt1.Names()...)
	}
	if s.CharacteristicsExt2 != nil {
		items = append(items, s.CharacteristicsExt2.Names()...)
	}
	p.list("Characteristics", items)

	if s.SystemBIOSMajorRelease != nil && s.SystemBIOSMinorRelease != nil && *s.SystemBIOSMajorRelease != 0xff {
		p.set("BIOS Revision", fmt.Sprintf("%d.%d", *s.SystemBIOSMajorRelease, *s.SystemBIOSMinorRelease))
	}
	if s.ControllerMajorRelease != nil && s.ControllerMinorRelease != nil && *s.ControllerMajorRelease != 0xff {
		p.set("Firmware Revision", fmt.Sprintf("%d.%d", *s.ControllerMajorRelease, *s.ControllerMinorRelease))
	}
}

func renderSystem(p properties, s *smbios.SystemInformation, version smbios.Version) {
	p.text("Manufacturer", s.Manufacturer)
	p.text("Product Name", s.ProductName)
	p.text("Version", s.Version)
	p.text("Serial Number", s.SerialNumber)
	prop(p, "UUID", s.UUID, func(u smbios.UUID) string {
		switch {
		case u.IsZero():
			return "Not Present"
		case u.IsUnset():
			return "Not Settable"
		}
		return u.Format(version)
	})
	prop(p, "Wake-up Type", s.WakeUpType, smbios.WakeUpType.String)
	p.text("SKU Number", s.SKUNumber)
	p.text("Family", s.Family)
}

func renderBaseboard(p properties, s *smbios.BaseboardInformation) {
	p.text("Manufacturer", s.Manufacturer)
	p.text("Product Name", s.Product)
	p.text("Version", s.Version)
	p.text("Serial Number", s.SerialNumber)
	p.text("Asset Tag", s.AssetTag)
	if s.Features != nil {
		p.list("Features", s.Features.Names())
	}
	p.text("Location In Chassis", s.LocationInChassis)
	prop(p, "Chassis Handle", s.ChassisHandle, handle)
	prop(p, "Type", s.BoardType, smbios.BoardType.String)

	if s.ContainedObjectHandles != nil {
		var items []string
		for _, h := range s.ContainedObjectHandles {
			items = append(items, handle(h))
		}
		p["Contained Object Handles"] = PropertyData{Val: strconv.Itoa(len(items)), Items: items}
	}
}

func renderChassis(p properties, s *smbios.ChassisInformation) {
	p.text("Manufacturer", s.Manufacturer)
	if s.Type != nil {
		p.set("Type", s.Type.String())
		lock := "Not Present"
		if s.Type.Locked() {
			lock = "Present"
		}
		p.set("Lock", lock)
	}
	p.text("Version", s.Version)
	p.text("Serial Number", s.SerialNumber)
	p.text("Asset Tag", s.AssetTag)
	prop(p, "Boot-up State", s.BootUpState, smbios.ChassisState.String)
	prop(p, "Power Supply State", s.PowerSupply, smbios.ChassisState.String)
	prop(p, "Thermal State", s.Thermal, smbios.ChassisState.String)
	prop(p, "Security Status", s.Security, smbios.SecurityStatus.String)
	prop(p, "OEM Information", s.OEMDefined, func(v uint32) string {
		return fmt.Sprintf("0x%08X", v)
	})
	prop(p, "Height", s.Height, func(v uint8) string {
		if v == 0 {
			return "Unspecified"
		}
		return fmt.Sprintf("%d U", v)
	})
	prop(p, "Number Of Power Cords", s.PowerCords, func(v uint8) string {
		if v == 0 {
			return "Unspecified"
		}
		return dec(v)
	})
	if s.ContainedElements != nil {
		p.set("Contained Elements", strconv.Itoa(len(s.ContainedElements)))
	}
	p.text("SKU Number", s.SKUNumber)
}

func renderProcessor(p properties, s *smbios.ProcessorInformation) {
	p.text("Socket Designation", s.SocketDesignation)
	prop(p, "Type", s.ProcessorType, smbios.ProcessorType.String)
	if family, ok := s.EffectiveFamily(); ok {
		p.set("Family", family.String())
	}
	p.text("Manufacturer", s.Manufacturer)
	prop(p, "ID", s.ID, func(v uint64) string {
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], v)
		return fmt.Sprintf("% X", b[:])
	})
	p.text("Version", s.Version)
	prop(p, "Voltage", s.Voltage, smbios.ProcessorVoltage.String)
	prop(p, "External Clock", s.ExternalClock, unit("MHz"))
	prop(p, "Max Speed", s.MaxSpeed, unit("MHz"))
	prop(p, "Current Speed", s.CurrentSpeed, unit("MHz"))
	prop(p, "Status", s.Status, smbios.ProcessorStatus.String)
	prop(p, "Upgrade", s.Upgrade, smbios.ProcessorUpgrade.String)
	prop(p, "L1 Cache Handle", s.L1CacheHandle, cacheHandle)
	prop(p, "L2 Cache Handle", s.L2CacheHandle, cacheHandle)
	prop(p, "L3 Cache Handle", s.L3CacheHandle, cacheHandle)
	p.text("Serial Number", s.SerialNumber)
	p.text("Asset Tag", s.AssetTag)
	p.text("Part Number", s.PartNumber)
	if count, ok := s.Cores(); ok {
		p.set("Core Count", dec(count))
	}
	if count, ok := s.EnabledCores(); ok {
		p.set("Core Enabled", dec(count))
	}
	if count, ok := s.Threads(); ok {
		p.set("Thread Count", dec(count))
	}
	if s.Characteristics != nil {
		p.list("Characteristics", s.Characteristics.Names())
	}
	p.text("Socket Type", s.SocketType)
}

func cacheHandle(h uint16) string {
	if h == 0xffff {
		return "Not Provided"
	}
	return handle(h)
}

func renderCache(p properties, s *smbios.CacheInformation) {
	p.text("Socket Designation", s.SocketDesignation)
	if c := s.Configuration; c != nil {
		enabled := "Disabled"
		if c.Enabled() {
			enabled = "Enabled"
		}
		socketed := "Not Socketed"
		if c.Socketed() {
			socketed = "Socketed"
		}
		p.set("Configuration", fmt.Sprintf("%s, %s, Level %d", enabled, socketed, c.Level()))
		p.set("Operational Mode", c.Mode())
		p.set("Location", c.Location())
	}
	if size, ok := cacheSize(s.InstalledSize, s.InstalledSize2); ok {
		p.set("Installed Size", humanize.IBytes(size))
	}
	if size, ok := cacheSize(s.MaximumSize, s.MaximumSize2); ok {
		p.set("Maximum Size", humanize.IBytes(size))
	}
	if s.SupportedSRAM != nil {
		p.list("Supported SRAM Types", s.SupportedSRAM.Names())
	}
	if s.CurrentSRAM != nil {
		p.set("Installed SRAM Type", strings.Join(s.CurrentSRAM.Names(), ", "))
	}
	prop(p, "Speed", s.Speed, func(v uint8) string {
		if v == 0 {
			return "Unknown"
		}
		return fmt.Sprintf("%d ns", v)
	})
	prop(p, "Error Correction Type", s.ErrorCorrection, smbios.ErrorCorrection.String)
	prop(p, "System Type", s.SystemType, smbios.CacheSystemType.String)
	prop(p, "Associativity", s.Associativity, smbios.CacheAssociativity.String)
}

// cacheSize picks the 4 bytes size when the 2 bytes one defers to it
func cacheSize(short *smbios.CacheSize, long *smbios.CacheSize2) (uint64, bool) {
	if short == nil {
		return 0, false
	}
	if short.Extended() {
		if long == nil {
			return 0, false
		}
		return long.Bytes(), true
	}

	return short.Bytes(), true
}

func renderSlot(p properties, s *smbios.SystemSlot) {
	p.text("Designation", s.Designation)
	prop(p, "Type", s.SlotType, smbios.SlotType.String)
	prop(p, "Data Bus Width", s.DataBusWidth, smbios.SlotWidth.String)
	prop(p, "Current Usage", s.CurrentUsage, smbios.SlotUsage.String)
	prop(p, "Length", s.SlotLength, smbios.SlotLength.String)
	prop(p, "ID", s.ID, dec[uint16])

	var items []string
	if s.Characteristics1 != nil {
		items = append(items, s.Characteristics1.Names()...)
	}
	if s.Characteristics2 != nil {
		items = append(items, s.Characteristics2.Names()...)
	}
	p.list("Characteristics", items)

	if s.SegmentGroup != nil && s.Bus != nil && s.DeviceFunction != nil {
		p.set("Bus Address", fmt.Sprintf("%04x:%02x:%s", *s.SegmentGroup, *s.Bus, *s.DeviceFunction))
	}
	prop(p, "Data Bus Width (Base)", s.BaseDataBusWidth, dec[uint8])

	var peers []string
	for _, peer := range s.PeerDevices {
		peers = append(peers, fmt.Sprintf("%04x:%02x:%s (Width %d)", peer.SegmentGroup, peer.Bus, peer.DeviceFunction, peer.DataBusWidth))
	}
	p.list("Peer Devices", peers)

	prop(p, "Physical Width", s.PhysicalWidth, smbios.SlotWidth.String)
	prop(p, "Pitch", s.Pitch, func(v uint16) string {
		if v == 0 {
			return "Unknown"
		}
		return fmt.Sprintf("%d.%02d mm", v/100, v%100)
	})
}

func renderMemoryArray(p properties, s *smbios.PhysicalMemoryArray) {
	prop(p, "Location", s.Location, smbios.MemoryArrayLocation.String)
	prop(p, "Use", s.Use, smbios.MemoryArrayUse.String)
	prop(p, "Error Correction Type", s.ErrorCorrection, smbios.ErrorCorrection.String)
	if size, ok := s.CapacityBytes(); ok {
		p.set("Maximum Capacity", humanize.IBytes(size))
	}
	prop(p, "Error Information Handle", s.ErrorHandle, errorHandle)
	prop(p, "Number Of Devices", s.NumberOfDevices, dec[uint16])
}

func errorHandle(h uint16) string {
	switch h {
	case 0xfffe:
		return "Not Provided"
	case 0xffff:
		return "No Error"
	}
	return handle(h)
}

func renderMemoryDevice(p properties, s *smbios.MemoryDevice) {
	prop(p, "Array Handle", s.ArrayHandle, handle)
	prop(p, "Error Information Handle", s.ErrorHandle, errorHandle)
	prop(p, "Total Width", s.TotalWidth, width)
	prop(p, "Data Width", s.DataWidth, width)
	if s.Size != nil {
		size, ok := s.SizeBytes()
		switch {
		case !s.Size.Installed():
			p.set("Size", "No Module Installed")
		case !ok:
			p.set("Size", "Unknown")
		default:
			p.set("Size", humanize.IBytes(size))
		}
	}
	prop(p, "Form Factor", s.FormFactor, smbios.MemoryFormFactor.String)
	prop(p, "Set", s.DeviceSet, func(v uint8) string {
		switch v {
		case 0:
			return "None"
		case 0xff:
			return "Unknown"
		}
		return dec(v)
	})
	p.text("Locator", s.DeviceLocator)
	p.text("Bank Locator", s.BankLocator)
	prop(p, "Type", s.MemoryType, smbios.MemoryType.String)
	if s.TypeDetail != nil {
		p.list("Type Detail", s.TypeDetail.Names())
	}
	if speed, ok := memorySpeed(s.Speed, s.ExtendedSpeed); ok {
		p.set("Speed", speed)
	}
	p.text("Manufacturer", s.Manufacturer)
	p.text("Serial Number", s.SerialNumber)
	p.text("Asset Tag", s.AssetTag)
	p.text("Part Number", s.PartNumber)
	if rank, ok := s.Rank(); ok {
		p.set("Rank", dec(rank))
	}
	if speed, ok := memorySpeed(s.ConfiguredSpeed, s.ExtendedConfiguredSpeed); ok {
		p.set("Configured Memory Speed", speed)
	}
	prop(p, "Minimum Voltage", s.MinimumVoltage, voltage)
	prop(p, "Maximum Voltage", s.MaximumVoltage, voltage)
	prop(p, "Configured Voltage", s.ConfiguredVoltage, voltage)
	prop(p, "Memory Technology", s.Technology, smbios.MemoryTechnology.String)
	if s.OperatingModeCapability != nil {
		p.list("Memory Operating Mode Capability", s.OperatingModeCapability.Names())
	}
	p.text("Firmware Version", s.FirmwareVersion)
	prop(p, "Module Manufacturer ID", s.ModuleManufacturerID, jedecID)
	prop(p, "Module Product ID", s.ModuleProductID, jedecID)
	prop(p, "Non-Volatile Size", s.NonVolatileSize, portionSize)
	prop(p, "Volatile Size", s.VolatileSize, portionSize)
	prop(p, "Cache Size", s.CacheSize, portionSize)
	prop(p, "Logical Size", s.LogicalSize, portionSize)
}

func width(v uint16) string {
	if v == 0xffff || v == 0 {
		return "Unknown"
	}
	return fmt.Sprintf("%d bits", v)
}

func voltage(mv uint16) string {
	if mv == 0 {
		return "Unknown"
	}
	return fmt.Sprintf("%.3f V", float64(mv)/1000)
}

func jedecID(v uint16) string {
	if v == 0 {
		return "Unknown"
	}
	return fmt.Sprintf("0x%04X", v)
}

func portionSize(v uint64) string {
	switch v {
	case 0:
		return "None"
	case 0xffffffffffffffff:
		return "Unknown"
	}
	return humanize.IBytes(v)
}

// memorySpeed resolves the 2 bytes speed, deferring to the extended one
// when it is saturated
func memorySpeed(speed *uint16, extended *uint32) (string, bool) {
	if speed == nil {
		return "", false
	}

	switch *speed {
	case 0:
		return "Unknown", true
	case 0xffff:
		if extended == nil {
			return "Unknown", true
		}
		return fmt.Sprintf("%d MT/s", *extended&0x7fffffff), true
	}

	return fmt.Sprintf("%d MT/s", *speed), true
}

func renderMappedAddress(p properties, s *smbios.MemoryArrayMappedAddress) {
	if start, end, ok := s.Range(); ok {
		p.set("Starting Address", fmt.Sprintf("0x%011X", start))
		p.set("Ending Address", fmt.Sprintf("0x%011X", end))
		if end >= start {
			p.set("Range Size", humanize.IBytes(end-start+1))
		}
	}
	prop(p, "Physical Array Handle", s.ArrayHandle, handle)
	prop(p, "Partition Width", s.PartitionWidth, dec[uint8])
}

func renderUnknown(p properties, s *smbios.Unknown) {
	var lines []string
	for i := 0; i < len(s.Data); i += 16 {
		end := min(i+16, len(s.Data))
		lines = append(lines, fmt.Sprintf("% X", s.Data[i:end]))
	}
	p.list("Header and Data", lines)
	p.list("Strings", s.Strings)
	if s.Truncated {
		p.set("Truncated", "Yes")
	}
}
