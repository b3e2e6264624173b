package cpu_test

import (
	"testing"

	"github.com/dralth/nes6502/cpu"
)

// Rerun the 2-byte instruction at the origin with fresh inputs.
func rerun(c *cpu.CPU, operand byte, a byte, carry bool) {
	c.SetPC(origin)
	c.Bus.Write(origin+1, operand)
	c.Reg.A = a
	c.Reg.P.SetCarry(carry)
	c.Step()
}

func TestADCAllInputs(t *testing.T) {
	c := loadCPU(t, 0x69, 0x00)

	for a := 0; a < 256; a++ {
		for m := 0; m < 256; m++ {
			for cin := 0; cin < 2; cin++ {
				rerun(c, byte(m), byte(a), cin == 1)

				sum := a + m + cin
				wantA := byte(sum)
				if c.Reg.A != wantA {
					t.Fatalf("ADC(%02X,%02X,%d): A exp $%02X, got $%02X", a, m, cin, wantA, c.Reg.A)
				}
				if got := c.Reg.P.Carry(); got != (sum > 0xff) {
					t.Fatalf("ADC(%02X,%02X,%d): C exp %v, got %v", a, m, cin, sum > 0xff, got)
				}
				wantV := (byte(a)^wantA)&(byte(m)^wantA)&0x80 != 0
				if got := c.Reg.P.Overflow(); got != wantV {
					t.Fatalf("ADC(%02X,%02X,%d): V exp %v, got %v", a, m, cin, wantV, got)
				}
				if got := c.Reg.P.Zero(); got != (wantA == 0) {
					t.Fatalf("ADC(%02X,%02X,%d): Z exp %v, got %v", a, m, cin, wantA == 0, got)
				}
				if got := c.Reg.P.Sign(); got != (wantA&0x80 != 0) {
					t.Fatalf("ADC(%02X,%02X,%d): N exp %v, got %v", a, m, cin, wantA&0x80 != 0, got)
				}
			}
		}
	}
}

// SBC of M and ADC of M's complement must agree in every register and
// flag, for all inputs.
func TestSBCMatchesADCOfComplement(t *testing.T) {
	sbc := loadCPU(t, 0xe9, 0x00)
	adc := loadCPU(t, 0x69, 0x00)

	for a := 0; a < 256; a++ {
		for m := 0; m < 256; m++ {
			for cin := 0; cin < 2; cin++ {
				rerun(sbc, byte(m), byte(a), cin == 1)
				rerun(adc, ^byte(m), byte(a), cin == 1)

				if sbc.Reg.A != adc.Reg.A || sbc.Reg.P != adc.Reg.P {
					t.Fatalf("SBC(%02X,%02X,%d) diverges from ADC: A $%02X/$%02X P $%02X/$%02X",
						a, m, cin, sbc.Reg.A, adc.Reg.A, byte(sbc.Reg.P), byte(adc.Reg.P))
				}
			}
		}
	}
}

func TestCompareAllInputs(t *testing.T) {
	c := loadCPU(t, 0xc9, 0x00)

	for a := 0; a < 256; a++ {
		for m := 0; m < 256; m++ {
			rerun(c, byte(m), byte(a), false)

			if got := c.Reg.P.Carry(); got != (a >= m) {
				t.Fatalf("CMP(%02X,%02X): C exp %v, got %v", a, m, a >= m, got)
			}
			if got := c.Reg.P.Zero(); got != (a == m) {
				t.Fatalf("CMP(%02X,%02X): Z exp %v, got %v", a, m, a == m, got)
			}
			diff := byte(a) - byte(m)
			if got := c.Reg.P.Sign(); got != (diff&0x80 != 0) {
				t.Fatalf("CMP(%02X,%02X): N exp %v, got %v", a, m, diff&0x80 != 0, got)
			}
		}
	}
}

func TestCompareIndex(t *testing.T) {
	// CPX #$10; CPY #$30
	c := loadCPU(t, 0xe0, 0x10, 0xc0, 0x30)
	c.Reg.X = 0x10
	c.Reg.Y = 0x20

	stepCPU(c, 1)
	expectFlag(t, c, cpu.CarryBit, "C", true)
	expectFlag(t, c, cpu.ZeroBit, "Z", true)

	stepCPU(c, 1)
	expectFlag(t, c, cpu.CarryBit, "C", false)
	expectFlag(t, c, cpu.ZeroBit, "Z", false)
	expectFlag(t, c, cpu.SignBit, "N", true)
}

func TestShiftAccumulator(t *testing.T) {
	// ASL A
	c := loadCPU(t, 0x0a)
	c.Reg.A = 0xc1
	stepCPU(c, 1)
	expectACC(t, c, 0x82)
	expectFlag(t, c, cpu.CarryBit, "C", true)
	expectFlag(t, c, cpu.SignBit, "N", true)

	// LSR A clears the sign flag unconditionally.
	c = loadCPU(t, 0x4a)
	c.Reg.A = 0x01
	c.Reg.P.SetSign(true)
	stepCPU(c, 1)
	expectACC(t, c, 0x00)
	expectFlag(t, c, cpu.CarryBit, "C", true)
	expectFlag(t, c, cpu.ZeroBit, "Z", true)
	expectFlag(t, c, cpu.SignBit, "N", false)
}

// ROL followed by ROR restores both the memory operand and the carry.
func TestRotateRoundTrip(t *testing.T) {
	for v := 0; v < 256; v++ {
		for cin := 0; cin < 2; cin++ {
			c := loadCPU(t, 0x26, 0x10, 0x66, 0x10)
			c.Bus.Write(0x0010, byte(v))
			c.Reg.P.SetCarry(cin == 1)

			stepCPU(c, 2)

			expectMem(t, c, 0x0010, byte(v))
			if got := c.Reg.P.Carry(); got != (cin == 1) {
				t.Fatalf("ROL;ROR(%02X,%d): carry not restored", v, cin)
			}
		}
	}
}

// INC followed by DEC restores the memory operand and the N/Z flags it
// implies.
func TestIncDecRoundTrip(t *testing.T) {
	for _, v := range []byte{0x00, 0x01, 0x7f, 0x80, 0xfe, 0xff} {
		c := loadCPU(t, 0xe6, 0x10, 0xc6, 0x10)
		c.Bus.Write(0x0010, v)

		stepCPU(c, 2)

		expectMem(t, c, 0x0010, v)
		expectFlag(t, c, cpu.ZeroBit, "Z", v == 0)
		expectFlag(t, c, cpu.SignBit, "N", v&0x80 != 0)
	}
}

func TestIndexRegisterIncDec(t *testing.T) {
	// INX; DEX; INY; DEY with wraparound values
	c := loadCPU(t, 0xe8, 0xca, 0xc8, 0x88)
	c.Reg.X = 0xff
	c.Reg.Y = 0x7f

	stepCPU(c, 1)
	expectX(t, c, 0x00)
	expectFlag(t, c, cpu.ZeroBit, "Z", true)

	stepCPU(c, 1)
	expectX(t, c, 0xff)
	expectFlag(t, c, cpu.SignBit, "N", true)

	stepCPU(c, 1)
	if c.Reg.Y != 0x80 {
		t.Errorf("Y incorrect. exp: $80, got: $%02X", c.Reg.Y)
	}
	expectFlag(t, c, cpu.SignBit, "N", true)

	stepCPU(c, 1)
	if c.Reg.Y != 0x7f {
		t.Errorf("Y incorrect. exp: $7F, got: $%02X", c.Reg.Y)
	}
	expectFlag(t, c, cpu.SignBit, "N", false)
}

func TestLogicalOps(t *testing.T) {
	// AND #$0F; ORA #$80; EOR #$FF
	c := loadCPU(t, 0x29, 0x0f, 0x09, 0x80, 0x49, 0xff)
	c.Reg.A = 0x5a

	stepCPU(c, 1)
	expectACC(t, c, 0x0a)

	stepCPU(c, 1)
	expectACC(t, c, 0x8a)
	expectFlag(t, c, cpu.SignBit, "N", true)

	stepCPU(c, 1)
	expectACC(t, c, 0x75)
	expectFlag(t, c, cpu.SignBit, "N", false)
}

func TestBIT(t *testing.T) {
	c := loadCPU(t, 0x24, 0x10)
	c.Bus.Write(0x0010, 0xc0)
	c.Reg.A = 0x3f

	stepCPU(c, 1)

	// Z from A AND M; N and V from bits 7 and 6 of M. A is untouched.
	expectACC(t, c, 0x3f)
	expectFlag(t, c, cpu.ZeroBit, "Z", true)
	expectFlag(t, c, cpu.SignBit, "N", true)
	expectFlag(t, c, cpu.OverflowBit, "V", true)
}

func TestTransfers(t *testing.T) {
	// TAX; TAY; TXS; TSX; TXA; TYA
	c := loadCPU(t, 0xaa, 0xa8, 0x9a, 0xba, 0x8a, 0x98)
	c.Reg.A = 0x80

	stepCPU(c, 2)
	expectX(t, c, 0x80)
	if c.Reg.Y != 0x80 {
		t.Errorf("Y incorrect. exp: $80, got: $%02X", c.Reg.Y)
	}
	expectFlag(t, c, cpu.SignBit, "N", true)

	// TXS must not touch the flags.
	c.Reg.P = 0
	stepCPU(c, 1)
	expectSP(t, c, 0x80)
	if c.Reg.P != 0 {
		t.Errorf("TXS modified flags: $%02X", byte(c.Reg.P))
	}

	// TSX does.
	stepCPU(c, 1)
	expectX(t, c, 0x80)
	expectFlag(t, c, cpu.SignBit, "N", true)

	stepCPU(c, 2)
	expectACC(t, c, 0x80)
}

func TestStackRoundTrip(t *testing.T) {
	// PHA; LDA #$00; PLA
	c := loadCPU(t, 0x48, 0xa9, 0x00, 0x68)
	c.Reg.SP = 0xff
	c.Reg.A = 0x9c

	stepCPU(c, 3)

	expectACC(t, c, 0x9c)
	expectSP(t, c, 0xff)
	expectMem(t, c, 0x01ff, 0x9c)
	expectFlag(t, c, cpu.SignBit, "N", true)
	expectFlag(t, c, cpu.ZeroBit, "Z", false)
}

func TestStackPointerWrap(t *testing.T) {
	// Pushing with SP at $00 wraps to $FF and stays in page 1.
	c := loadCPU(t, 0x48)
	c.Reg.SP = 0x00
	c.Reg.A = 0x42

	stepCPU(c, 1)

	expectMem(t, c, 0x0100, 0x42)
	expectSP(t, c, 0xff)
}

func TestFlagOps(t *testing.T) {
	// SEC; SED; SEI; CLC; CLD; CLI; CLV
	c := loadCPU(t, 0x38, 0xf8, 0x78, 0x18, 0xd8, 0x58, 0xb8)
	c.Reg.P.SetOverflow(true)

	stepCPU(c, 3)
	expectFlag(t, c, cpu.CarryBit, "C", true)
	expectFlag(t, c, cpu.DecimalBit, "D", true)
	expectFlag(t, c, cpu.InterruptDisableBit, "I", true)

	stepCPU(c, 4)
	expectFlag(t, c, cpu.CarryBit, "C", false)
	expectFlag(t, c, cpu.DecimalBit, "D", false)
	expectFlag(t, c, cpu.InterruptDisableBit, "I", false)
	expectFlag(t, c, cpu.OverflowBit, "V", false)
}

// The NES 6502 ignores the decimal flag: ADC yields binary results with D
// set or clear.
func TestDecimalFlagIgnored(t *testing.T) {
	run := func(decimal bool) *cpu.CPU {
		c := loadCPU(t, 0x69, 0x19)
		c.Reg.A = 0x19
		c.Reg.P.SetDecimal(decimal)
		stepCPU(c, 1)
		return c
	}

	plain := run(false)
	dec := run(true)

	expectACC(t, plain, 0x32)
	expectACC(t, dec, 0x32)
	if plain.Reg.P|cpu.DecimalBit != dec.Reg.P|cpu.DecimalBit {
		t.Errorf("decimal flag changed ADC flags: $%02X vs $%02X",
			byte(plain.Reg.P), byte(dec.Reg.P))
	}
}
