package midi

import (
	gomidi "gitlab.com/gomidi/midi/v2"
)

// Cell colour CCs.
const (
	CCColumn uint8 = 20
	CCRow    uint8 = 21
	CCColor  uint8 = 22
)

// NRPN framing CCs.
const (
	CCNRPNParamMSB uint8 = 99
	CCNRPNParamLSB uint8 = 98
	CCDataMSB      uint8 = 6
	CCDataLSB      uint8 = 38
	CCRPNMSB       uint8 = 101
	CCRPNLSB       uint8 = 100

	nullRPN uint8 = 127
)

// NRPN parameters.
const (
	NRPNOctave    = 36
	NRPNRowOffset = 227

	FactoryRowOffset = 5
	FactoryOctave    = 5
	MaxOctave        = 10
)

// ColumnOffset is added to a playable column before it goes on the wire;
// protocol column 0 is the instrument's control column.
const ColumnOffset = 1

// CellColor encodes a single cell colour write.
func CellColor(ch uint8, col, row int, c Color) []gomidi.Message {
	return []gomidi.Message{
		gomidi.ControlChange(ch, CCColumn, clamp7(col+ColumnOffset)),
		gomidi.ControlChange(ch, CCRow, clamp7(row)),
		gomidi.ControlChange(ch, CCColor, uint8(c)),
	}
}

// NRPN encodes a 14-bit parameter write followed by the null-RPN reset.
// Out of range params and values are clamped to 0..16383.
func NRPN(ch uint8, param, value int) []gomidi.Message {
	param, value = clamp14(param), clamp14(value)
	return []gomidi.Message{
		gomidi.ControlChange(ch, CCNRPNParamMSB, uint8((param>>7)&0x7F)),
		gomidi.ControlChange(ch, CCNRPNParamLSB, uint8(param&0x7F)),
		gomidi.ControlChange(ch, CCDataMSB, uint8((value>>7)&0x7F)),
		gomidi.ControlChange(ch, CCDataLSB, uint8(value&0x7F)),
		gomidi.ControlChange(ch, CCRPNMSB, nullRPN),
		gomidi.ControlChange(ch, CCRPNLSB, nullRPN),
	}
}

func clamp7(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 127 {
		return 127
	}
	return uint8(v)
}

func clamp14(v int) int {
	if v < 0 {
		return 0
	}
	if v > 0x3FFF {
		return 0x3FFF
	}
	return v
}
