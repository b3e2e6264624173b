// Copyright 2026 The nes6502 authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package disasm implements a disassembler for the NES 6502 instruction
// set, undocumented opcodes included.
package disasm

import (
	"fmt"

	"github.com/dralth/nes6502/cpu"
)

// Disassembler formatting for addressing modes
var modeFormat = []string{
	"#$%s",    // IMM
	"%s",      // IMP
	"$%s",     // REL
	"$%s",     // ZPG
	"$%s,X",   // ZPX
	"$%s,Y",   // ZPY
	"$%s",     // ABS
	"$%s,X",   // ABX
	"$%s,Y",   // ABY
	"($%s)",   // IND
	"($%s,X)", // IDX
	"($%s),Y", // IDY
	"%s",      // ACC
}

var hex = "0123456789ABCDEF"

// Return a hexadecimal string representation of the byte slice read as a
// little-endian value: the last byte is printed first.
func hexString(b []byte) string {
	hexlen := len(b) * 2
	hexbuf := make([]byte, hexlen)
	j := hexlen - 1
	for _, n := range b {
		hexbuf[j] = hex[n&0xf]
		hexbuf[j-1] = hex[n>>4]
		j -= 2
	}
	return string(hexbuf)
}

// Disassemble the machine code on bus 'b' at address 'addr'. Return a
// 'line' string representing the disassembled instruction and a 'next'
// address that starts the following line of machine code.
func Disassemble(b cpu.Bus, addr uint16) (line string, next uint16) {
	opcode := b.Read(addr)
	inst := cpu.GetInstructionSet().Lookup(opcode)

	var operand []byte
	for i := byte(1); i < inst.Length; i++ {
		operand = append(operand, b.Read(addr+uint16(i)))
	}

	if inst.Mode == cpu.REL {
		// Convert the relative offset to an absolute address.
		braddr := int(addr) + int(inst.Length) + int(operand[0])
		if operand[0] > 0x7f {
			braddr -= 256
		}
		operand = []byte{byte(braddr), byte(braddr >> 8)}
	}

	format := "%s " + modeFormat[inst.Mode]
	line = fmt.Sprintf(format, inst.Name, hexString(operand))
	next = addr + uint16(inst.Length)
	return line, next
}

// GetInstructionBytes returns the machine code bytes of the instruction
// on bus 'b' at address 'addr'.
func GetInstructionBytes(b cpu.Bus, addr uint16) []byte {
	inst := cpu.GetInstructionSet().Lookup(b.Read(addr))
	bytes := make([]byte, 0, 3)
	for i := byte(0); i < inst.Length; i++ {
		bytes = append(bytes, b.Read(addr+uint16(i)))
	}
	return bytes
}

// GetRegisterString returns a string describing the contents of the CPU
// register file.
func GetRegisterString(r *cpu.Registers) string {
	return fmt.Sprintf("A=%02X X=%02X Y=%02X PS=[%s] SP=%02X PC=%04X",
		r.A, r.X, r.Y, getStatusBits(r.P), r.SP, r.PC)
}

// GetCompactRegisterString returns a compact string describing the
// contents of the CPU register file.
func GetCompactRegisterString(r *cpu.Registers) string {
	return fmt.Sprintf("A:%02X X:%02X Y:%02X P:%02X SP:%02X",
		r.A, r.X, r.Y, byte(r.P), r.SP)
}

func getStatusBits(p cpu.Status) string {
	v := func(bit cpu.Status, ch byte) byte {
		if p&bit != 0 {
			return ch
		}
		return '-'
	}
	return string([]byte{
		v(cpu.SignBit, 'N'),
		v(cpu.OverflowBit, 'V'),
		v(cpu.DecimalBit, 'D'),
		v(cpu.InterruptDisableBit, 'I'),
		v(cpu.ZeroBit, 'Z'),
		v(cpu.CarryBit, 'C'),
	})
}
