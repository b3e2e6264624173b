package cpu_test

import (
	"testing"

	"github.com/dralth/nes6502/cpu"
)

func TestStatusAccessors(t *testing.T) {
	var p cpu.Status

	p.SetCarry(true)
	p.SetSign(true)
	if !p.Carry() || !p.Sign() {
		t.Error("flags not set")
	}
	if p.Zero() || p.Overflow() || p.Decimal() || p.InterruptDisable() {
		t.Error("unrelated flags set")
	}

	p.SetCarry(false)
	if p.Carry() {
		t.Error("carry not cleared")
	}
	if !p.Sign() {
		t.Error("clearing carry disturbed the sign flag")
	}
}

func TestStatusSetZN(t *testing.T) {
	var p cpu.Status

	p.SetZN(0x00)
	if !p.Zero() || p.Sign() {
		t.Errorf("SetZN(0): P = $%02X", byte(p))
	}

	p.SetZN(0x80)
	if p.Zero() || !p.Sign() {
		t.Errorf("SetZN(80): P = $%02X", byte(p))
	}

	p.SetZN(0x01)
	if p.Zero() || p.Sign() {
		t.Errorf("SetZN(01): P = $%02X", byte(p))
	}
}

// The saved form always carries the reserved bit; the break bit reflects
// the push source. Restoring ignores both.
func TestStatusSaveRestore(t *testing.T) {
	var p cpu.Status
	p.SetCarry(true)
	p.SetOverflow(true)

	saved := p.Save(true)
	want := byte(cpu.CarryBit | cpu.OverflowBit | cpu.BreakBit | cpu.ReservedBit)
	if saved != want {
		t.Errorf("Save(true): exp $%02X, got $%02X", want, saved)
	}

	saved = p.Save(false)
	want = byte(cpu.CarryBit | cpu.OverflowBit | cpu.ReservedBit)
	if saved != want {
		t.Errorf("Save(false): exp $%02X, got $%02X", want, saved)
	}

	var q cpu.Status
	q.Restore(0xff)
	if q&(cpu.BreakBit|cpu.ReservedBit) != 0 {
		t.Errorf("Restore adopted break/reserved bits: $%02X", byte(q))
	}
	if !q.Carry() || !q.Zero() || !q.InterruptDisable() || !q.Decimal() ||
		!q.Overflow() || !q.Sign() {
		t.Errorf("Restore dropped flags: $%02X", byte(q))
	}
}

func TestRegistersInit(t *testing.T) {
	r := cpu.Registers{A: 1, X: 2, Y: 3, SP: 4, PC: 5, P: 0xff}
	r.Init()
	if r.A != 0 || r.X != 0 || r.Y != 0 || r.SP != 0 || r.PC != 0 || r.P != 0 {
		t.Errorf("Init left state behind: %+v", r)
	}
}
