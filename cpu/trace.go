// Copyright 2026 The nes6502 authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// A Snapshot is a copy of the CPU state taken after an instruction
// completes.
type Snapshot struct {
	Reg    Registers // register file, status flags included
	Cycles uint64    // total executed CPU cycles
}

// Snapshot returns a copy of the current CPU state.
func (c *CPU) Snapshot() Snapshot {
	return Snapshot{
		Reg:    c.Reg,
		Cycles: c.Cycles,
	}
}

// A Tracer is notified after each executed instruction with the address
// the instruction was fetched from, its decoded table entry, and the CPU
// state left behind. Tracers must not mutate CPU or bus state.
type Tracer interface {
	Trace(pc uint16, inst *Instruction, snap Snapshot)
}
