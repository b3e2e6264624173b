package cpu_test

import (
	"testing"

	"github.com/dralth/nes6502/cpu"
)

// Zero-page indexed addressing wraps within the zero page: the effective
// address never reaches page 1.
func TestZeroPageIndexedWraps(t *testing.T) {
	// LDA $80,X with X = $FF
	c := loadCPU(t, 0xb5, 0x80)
	c.Reg.X = 0xff
	c.Bus.Write(0x007f, 0x55)
	c.Bus.Write(0x017f, 0xaa)

	stepCPU(c, 1)
	expectACC(t, c, 0x55)

	// STA $F0,X with X = $20
	c = loadCPU(t, 0x95, 0xf0)
	c.Reg.X = 0x20
	c.Reg.A = 0x66

	stepCPU(c, 1)
	expectMem(t, c, 0x0010, 0x66)
	expectMem(t, c, 0x0110, 0x00)

	// LDX $80,Y with Y = $90
	c = loadCPU(t, 0xb6, 0x80)
	c.Reg.Y = 0x90
	c.Bus.Write(0x0010, 0x77)

	stepCPU(c, 1)
	expectX(t, c, 0x77)
}

// Absolute indexed addressing carries into the high byte and costs an
// extra cycle when it crosses a page.
func TestAbsoluteIndexedPageCross(t *testing.T) {
	// LDA $20FF,X with X = 1
	c := loadCPU(t, 0xbd, 0xff, 0x20)
	c.Reg.X = 1
	c.Bus.Write(0x2100, 0x99)

	stepCPU(c, 1)
	expectACC(t, c, 0x99)
	expectCycles(t, c, 5)

	// Same load without a crossing costs the base cycles.
	c = loadCPU(t, 0xbd, 0x00, 0x20)
	c.Reg.X = 1
	c.Bus.Write(0x2001, 0x98)

	stepCPU(c, 1)
	expectACC(t, c, 0x98)
	expectCycles(t, c, 4)
}

// (zp,X) indexes the pointer before dereferencing it, wrapping within the
// zero page.
func TestIndexedIndirect(t *testing.T) {
	// LDA ($FE,X) with X = 3: pointer lives at $01/$02.
	c := loadCPU(t, 0xa1, 0xfe)
	c.Reg.X = 3
	c.Bus.Write(0x0001, 0x34)
	c.Bus.Write(0x0002, 0x12)
	c.Bus.Write(0x1234, 0xab)

	stepCPU(c, 1)
	expectACC(t, c, 0xab)
}

// (zp),Y dereferences the pointer first, then indexes with full carry
// across pages.
func TestIndirectIndexed(t *testing.T) {
	// LDA ($10),Y with Y = 2 and pointer $90FF: effective $9101.
	c := loadCPU(t, 0xb1, 0x10)
	c.Reg.Y = 2
	c.Bus.Write(0x0010, 0xff)
	c.Bus.Write(0x0011, 0x90)
	c.Bus.Write(0x9101, 0x5a)

	stepCPU(c, 1)
	expectACC(t, c, 0x5a)
	expectCycles(t, c, 6) // page crossed
}

// A (zp),Y pointer at $FF reads its high byte from $00.
func TestIndirectIndexedPointerWraps(t *testing.T) {
	c := loadCPU(t, 0xb1, 0xff)
	c.Bus.Write(0x00ff, 0x00)
	c.Bus.Write(0x0000, 0x40)
	c.Bus.Write(0x4000, 0x77)

	stepCPU(c, 1)
	expectACC(t, c, 0x77)
}

func TestBranchCycleAccounting(t *testing.T) {
	// A not-taken branch costs 2 cycles.
	c := loadCPU(t, 0xd0, 0x10)
	c.Reg.P.SetZero(true)
	stepCPU(c, 1)
	expectPC(t, c, 0x8002)
	expectCycles(t, c, 2)

	// A taken branch within the page costs 3.
	c = loadCPU(t, 0xd0, 0x10)
	stepCPU(c, 1)
	expectPC(t, c, 0x8012)
	expectCycles(t, c, 3)

	// A taken branch across a page boundary costs 4.
	c = loadCPU(t, 0xd0, 0xfb)
	stepCPU(c, 1)
	expectPC(t, c, 0x7ffd)
	expectCycles(t, c, 4)
}

func TestImmediateOperand(t *testing.T) {
	c := loadCPU(t, 0xa0, 0x7f)
	stepCPU(c, 1)
	if c.Reg.Y != 0x7f {
		t.Errorf("Y incorrect. exp: $7F, got: $%02X", c.Reg.Y)
	}
	expectPC(t, c, 0x8002)
}

func TestAccumulatorMode(t *testing.T) {
	// ROL A must not touch memory.
	c := loadCPU(t, 0x2a)
	c.Reg.A = 0x40
	c.Reg.P.SetCarry(true)

	stepCPU(c, 1)

	expectACC(t, c, 0x81)
	expectFlag(t, c, cpu.CarryBit, "C", false)
	expectPC(t, c, 0x8001)
}

// The order of bus accesses within a read-modify-write instruction is
// observable: the operand is read before it is written back.
type busAccess struct {
	write bool
	addr  uint16
}

type probeBus struct {
	cpu.FlatMemory
	log []busAccess
}

func (b *probeBus) Read(addr uint16) byte {
	b.log = append(b.log, busAccess{false, addr})
	return b.FlatMemory.Read(addr)
}

func (b *probeBus) Write(addr uint16, v byte) {
	b.log = append(b.log, busAccess{true, addr})
	b.FlatMemory.Write(addr, v)
}

func TestBusAccessOrder(t *testing.T) {
	b := &probeBus{}
	b.StoreBytes(origin, []byte{0xe6, 0x10}) // INC $10
	b.FlatMemory.Write(0xfffc, byte(origin&0xff))
	b.FlatMemory.Write(0xfffd, byte(origin>>8))

	c := cpu.NewCPU(b)
	c.Reset()
	b.log = nil

	c.Step()

	want := []busAccess{
		{false, origin},     // opcode fetch
		{false, origin + 1}, // operand fetch
		{false, 0x0010},     // operand read
		{true, 0x0010},      // operand write
	}
	if len(b.log) != len(want) {
		t.Fatalf("bus access count incorrect. exp: %d, got: %d", len(want), len(b.log))
	}
	for i := range want {
		if b.log[i] != want[i] {
			t.Errorf("bus access %d incorrect. exp: %v, got: %v", i, want[i], b.log[i])
		}
	}
}
