// Copyright 2026 The nes6502 authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package disasm

import (
	"fmt"
	"io"

	"github.com/dralth/nes6502/cpu"
)

// A Logger is a cpu.Tracer that writes one disassembled line per
// executed instruction: the instruction's address and bytes, its
// mnemonic form, and the CPU state it left behind.
type Logger struct {
	w io.Writer
	b cpu.Bus
}

// NewLogger creates a trace logger that disassembles from bus 'b' and
// writes to 'w'.
func NewLogger(w io.Writer, b cpu.Bus) *Logger {
	return &Logger{w: w, b: b}
}

// Trace implements cpu.Tracer.
func (l *Logger) Trace(pc uint16, inst *cpu.Instruction, snap cpu.Snapshot) {
	line, _ := Disassemble(l.b, pc)
	fmt.Fprintf(l.w, "%04X  %-8s  %-14s %s CYC:%d\n",
		pc, codeString(GetInstructionBytes(l.b, pc)), line,
		GetCompactRegisterString(&snap.Reg), snap.Cycles)
}

// Return the instruction's machine code bytes as space-separated hex.
func codeString(b []byte) string {
	s := make([]byte, 0, len(b)*3)
	for i, n := range b {
		if i > 0 {
			s = append(s, ' ')
		}
		s = append(s, hex[n>>4], hex[n&0xf])
	}
	return string(s)
}
