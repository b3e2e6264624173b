package disasm_test

import (
	"strings"
	"testing"

	"github.com/dralth/nes6502/cpu"
	"github.com/dralth/nes6502/disasm"
)

func TestDisassemble(t *testing.T) {
	cases := []struct {
		addr uint16
		code []byte
		want string
		next uint16
	}{
		{0x1000, []byte{0xa9, 0x42}, "LDA #$42", 0x1002},
		{0x1000, []byte{0x8d, 0x34, 0x12}, "STA $1234", 0x1003},
		{0x1000, []byte{0xb5, 0x10}, "LDA $10,X", 0x1002},
		{0x1000, []byte{0x6c, 0xff, 0x10}, "JMP ($10FF)", 0x1003},
		{0x1000, []byte{0xa1, 0x20}, "LDA ($20,X)", 0x1002},
		{0x1000, []byte{0xb1, 0x20}, "LDA ($20),Y", 0x1002},
		{0x1000, []byte{0x0a}, "ASL ", 0x1001},
		{0x1000, []byte{0xea}, "NOP ", 0x1001},
		{0x1000, []byte{0xa7, 0x10}, "LAX $10", 0x1002},
		{0x1000, []byte{0x02}, "JAM ", 0x1001},
		// Branch targets display as absolute addresses.
		{0x1000, []byte{0xd0, 0xfe}, "BNE $1000", 0x1002},
		{0x1000, []byte{0xd0, 0x10}, "BNE $1012", 0x1002},
	}

	for _, tc := range cases {
		mem := cpu.NewFlatMemory()
		mem.StoreBytes(tc.addr, tc.code)

		line, next := disasm.Disassemble(mem, tc.addr)
		if strings.TrimSpace(line) != strings.TrimSpace(tc.want) {
			t.Errorf("Disassemble(% X): exp %q, got %q", tc.code, tc.want, line)
		}
		if next != tc.next {
			t.Errorf("Disassemble(% X): next exp $%04X, got $%04X", tc.code, tc.next, next)
		}
	}
}

func TestGetInstructionBytes(t *testing.T) {
	mem := cpu.NewFlatMemory()
	mem.StoreBytes(0x1000, []byte{0x8d, 0x34, 0x12})

	b := disasm.GetInstructionBytes(mem, 0x1000)
	if len(b) != 3 || b[0] != 0x8d || b[1] != 0x34 || b[2] != 0x12 {
		t.Errorf("instruction bytes incorrect: % X", b)
	}
}

func TestGetRegisterString(t *testing.T) {
	r := cpu.Registers{A: 0xab, X: 0x01, Y: 0x02, SP: 0xfd, PC: 0x8000}
	r.P.SetSign(true)
	r.P.SetCarry(true)

	s := disasm.GetRegisterString(&r)
	if !strings.Contains(s, "A=AB") || !strings.Contains(s, "PC=8000") {
		t.Errorf("register string incorrect: %q", s)
	}
	if !strings.Contains(s, "N") || !strings.Contains(s, "C") {
		t.Errorf("register string missing flags: %q", s)
	}
}

func TestLogger(t *testing.T) {
	mem := cpu.NewFlatMemory()
	mem.StoreBytes(0x8000, []byte{0xa9, 0x42})
	mem.Write(0xfffc, 0x00)
	mem.Write(0xfffd, 0x80)

	c := cpu.NewCPU(mem)
	c.Reset()

	var sb strings.Builder
	c.AttachTracer(disasm.NewLogger(&sb, mem))
	c.Step()

	line := sb.String()
	if !strings.Contains(line, "8000") || !strings.Contains(line, "LDA #$42") {
		t.Errorf("trace line incorrect: %q", line)
	}
	if !strings.Contains(line, "A:42") {
		t.Errorf("trace line missing post-execution state: %q", line)
	}
}
