package fan

// Attribute handles for the fan service, as assigned by the deployed GATT
// database. The numbering is stable; renumbering requires regenerating the
// service table on the device.
const (
	HandlePowerValue           uint16 = 0x0040
	HandlePowerUserDescription uint16 = 0x0041

	HandleOverrideValue           uint16 = 0x0043
	HandleOverrideUserDescription uint16 = 0x0044

	HandleTachometerValue           uint16 = 0x0046
	HandleTachometerUserDescription uint16 = 0x0047

	HandleAggregateValue               uint16 = 0x0049
	HandleAggregateClientConfiguration uint16 = 0x004a
	HandleAggregateServerConfiguration uint16 = 0x004b
	HandleAggregateUserDescription     uint16 = 0x004c

	HandlePolicyCooldownValue           uint16 = 0x004e
	HandlePolicyCooldownUserDescription uint16 = 0x004f

	HandlePolicyVOCPassiveMaxValue           uint16 = 0x0051
	HandlePolicyVOCPassiveMaxUserDescription uint16 = 0x0052

	HandlePolicyVOCImproveMinValue           uint16 = 0x0054
	HandlePolicyVOCImproveMinUserDescription uint16 = 0x0055
)
