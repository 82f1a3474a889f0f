package fan

import "github.com/thetic/nevermore-controller/gatt"

// User-description strings served for each characteristic.
const (
	descPower      = "Fan %"
	descOverride   = "Fan % - Override"
	descTachometer = "Fan RPM"
	descAggregate  = "Aggregated Service Data"
	descCooldown   = "How long to continue filtering after conditions are acceptable"
	descPassiveMax = "Filter if any VOC sensor reaches this threshold"
	descImproveMin = "Filter if intake exceeds exhaust by this threshold"
)

// serverCfgAlwaysBroadcast is the fixed server-configuration marker.
const serverCfgAlwaysBroadcast uint16 = 0x0001

// ReadAttr implements gatt.Service. Reads only ever serialize already-valid
// in-memory state; every case funnels through gatt.ReadBlob so partial
// (offset) reads behave uniformly.
func (s *Service) ReadAttr(conn gatt.ConnHandle, attr uint16, offset int, out []byte) (int, bool) {
	switch attr {
	case HandlePowerUserDescription:
		return gatt.ReadBlob([]byte(descPower), offset, out), true
	case HandleOverrideUserDescription:
		return gatt.ReadBlob([]byte(descOverride), offset, out), true
	case HandleTachometerUserDescription:
		return gatt.ReadBlob([]byte(descTachometer), offset, out), true
	case HandleAggregateUserDescription:
		return gatt.ReadBlob([]byte(descAggregate), offset, out), true
	case HandlePolicyCooldownUserDescription:
		return gatt.ReadBlob([]byte(descCooldown), offset, out), true
	case HandlePolicyVOCPassiveMaxUserDescription:
		return gatt.ReadBlob([]byte(descPassiveMax), offset, out), true
	case HandlePolicyVOCImproveMinUserDescription:
		return gatt.ReadBlob([]byte(descImproveMin), offset, out), true

	case HandlePowerValue:
		return gatt.ReadBlob([]byte{byte(s.power)}, offset, out), true
	case HandleOverrideValue:
		return gatt.ReadBlob([]byte{byte(s.override)}, offset, out), true
	case HandleTachometerValue:
		return gatt.ReadBlob(gatt.EncodeUint16(uint16(s.rpm())), offset, out), true
	case HandleAggregateValue:
		return gatt.ReadBlob(s.aggregate(), offset, out), true

	case HandlePolicyCooldownValue:
		return gatt.ReadBlob(gatt.EncodeUint16(s.policy.CooldownSecs), offset, out), true
	case HandlePolicyVOCPassiveMaxValue:
		return gatt.ReadBlob(gatt.EncodeUint16(s.policy.VOCPassiveMax), offset, out), true
	case HandlePolicyVOCImproveMinValue:
		return gatt.ReadBlob(gatt.EncodeUint16(s.policy.VOCImproveMin), offset, out), true

	case HandleAggregateClientConfiguration:
		return gatt.ReadBlob(gatt.EncodeUint16(s.notifyAggregate.ClientConfiguration(conn)), offset, out), true
	case HandleAggregateServerConfiguration:
		return gatt.ReadBlob(gatt.EncodeUint16(serverCfgAlwaysBroadcast), offset, out), true

	default:
		return 0, false
	}
}

// WriteAttr implements gatt.Service. Decode failures abort the write before
// any state changes.
func (s *Service) WriteAttr(conn gatt.ConnHandle, attr uint16, offset int, data []byte) (byte, bool) {
	c := gatt.NewWriteConsumer(data, offset)

	switch attr {
	case HandlePolicyCooldownValue:
		return writeScalar(c, &s.policy.CooldownSecs), true
	case HandlePolicyVOCPassiveMaxValue:
		return writeScalar(c, &s.policy.VOCPassiveMax), true
	case HandlePolicyVOCImproveMinValue:
		return writeScalar(c, &s.policy.VOCImproveMin), true

	case HandleOverrideValue:
		v, err := gatt.Exactly[gatt.Percentage8](c)
		if err != nil {
			return gatt.WriteStatus(err), true
		}
		s.SetPowerOverride(v)
		return gatt.StatusSuccess, true

	case HandleAggregateClientConfiguration:
		return s.notifyAggregate.WriteClientConfiguration(conn, c), true

	default:
		return 0, false
	}
}

// writeScalar decodes an exact-size value into dst, leaving dst untouched
// on failure.
func writeScalar[T any](c *gatt.WriteConsumer, dst *T) byte {
	v, err := gatt.Exactly[T](c)
	if err != nil {
		return gatt.WriteStatus(err)
	}
	*dst = v
	return gatt.StatusSuccess
}
