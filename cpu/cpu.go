// Copyright 2026 The nes6502 authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cpu implements an instruction-level emulator of the MOS 6502 as
// found in the Nintendo Entertainment System: NMOS instruction set with
// the undocumented opcodes, and no decimal mode.
package cpu

// Interrupt vectors
const (
	vectorNMI   = 0xfffa
	vectorReset = 0xfffc
	vectorIRQ   = 0xfffe
	vectorBRK   = 0xfffe
)

// CPU represents a single NES 6502 CPU. It drives all memory traffic
// through the Bus it was created with.
type CPU struct {
	Reg     Registers       // CPU registers
	Bus     Bus             // assigned system bus
	Cycles  uint64          // total executed CPU cycles
	LastPC  uint16          // address of the most recently fetched instruction
	InstSet *InstructionSet // instruction set used by the CPU

	inst        *Instruction // instruction currently being executed
	opAddr      uint16       // effective address resolved by the addressing mode
	halted      bool         // set by a JAM opcode, cleared by Reset
	pageCrossed bool
	deltaCycles int8
	tracer      Tracer
	debugger    *Debugger
	storeByte   func(c *CPU, addr uint16, v byte)
}

// NewCPU creates an emulated 6502 CPU bound to the specified bus.
func NewCPU(bus Bus) *CPU {
	c := &CPU{
		Bus:       bus,
		InstSet:   GetInstructionSet(),
		storeByte: (*CPU).storeByteNormal,
	}
	c.Reg.Init()
	return c
}

// SetPC updates the CPU program counter to 'addr'.
func (c *CPU) SetPC(addr uint16) {
	c.Reg.PC = addr
}

// GetInstruction returns the instruction opcode at the requested address.
func (c *CPU) GetInstruction(addr uint16) *Instruction {
	opcode := c.Bus.Read(addr)
	return c.InstSet.Lookup(opcode)
}

// NextAddr returns the address of the instruction following the
// instruction at addr.
func (c *CPU) NextAddr(addr uint16) uint16 {
	opcode := c.Bus.Read(addr)
	inst := c.InstSet.Lookup(opcode)
	return addr + uint16(inst.Length)
}

// Reset clears all registers and flags, reloads the program counter from
// the reset vector, and releases a jammed CPU.
func (c *CPU) Reset() {
	c.Reg.Init()
	c.Reg.PC = c.loadWord(vectorReset)
	c.halted = false
}

// Halted reports whether the CPU has executed a JAM opcode. A halted CPU
// ignores Step until Reset is called.
func (c *CPU) Halted() bool {
	return c.halted
}

// Step executes the single instruction at the current program counter.
func (c *CPU) Step() {
	if c.halted {
		return
	}

	// Grab the next opcode at the current PC and look up its instruction
	// data.
	opcode := c.Bus.Read(c.Reg.PC)
	inst := c.InstSet.Lookup(opcode)

	c.LastPC = c.Reg.PC
	c.Reg.PC++

	// Resolve the effective address. The addressing routine consumes the
	// operand bytes and leaves the address in opAddr for the instruction
	// to use.
	c.inst = inst
	c.pageCrossed = false
	c.deltaCycles = 0
	inst.fetch(c)

	// Execute the instruction.
	inst.fn(c, inst)

	// Update the CPU cycle counter, with special-case logic to handle
	// page boundary crossings and taken branches.
	c.Cycles += uint64(int8(inst.Cycles) + c.deltaCycles)
	if c.pageCrossed {
		c.Cycles += uint64(inst.BPCycles)
	}

	if c.tracer != nil {
		c.tracer.Trace(c.LastPC, inst, c.Snapshot())
	}

	// Update the debugger so it can handle breakpoints.
	if c.debugger != nil {
		c.debugger.onUpdatePC(c, c.Reg.PC)
	}
}

// IRQ delivers a maskable hardware interrupt request. It is ignored while
// the interrupt disable flag is set.
func (c *CPU) IRQ() {
	if !c.Reg.P.InterruptDisable() {
		c.interrupt(false, vectorIRQ)
	}
}

// NMI delivers a non-maskable interrupt.
func (c *CPU) NMI() {
	c.interrupt(false, vectorNMI)
}

// AttachTracer installs a trace sink that is notified after every executed
// instruction.
func (c *CPU) AttachTracer(t Tracer) {
	c.tracer = t
}

// DetachTracer removes the currently installed trace sink.
func (c *CPU) DetachTracer() {
	c.tracer = nil
}

// AttachDebugger attaches a debugger to the CPU. The debugger receives
// notifications whenever the CPU executes an instruction or stores a byte
// to memory.
func (c *CPU) AttachDebugger(debugger *Debugger) {
	c.debugger = debugger
	c.storeByte = (*CPU).storeByteDebugger
}

// DetachDebugger detaches the current debugger from the CPU.
func (c *CPU) DetachDebugger() {
	c.debugger = nil
	c.storeByte = (*CPU).storeByteNormal
}

// read returns the current instruction's operand: the accumulator in
// accumulator mode, otherwise the byte at the resolved effective address.
func (c *CPU) read() byte {
	if c.inst.Mode == ACC {
		return c.Reg.A
	}
	return c.Bus.Read(c.opAddr)
}

// write stores the current instruction's result: to the accumulator in
// accumulator mode, otherwise to the resolved effective address.
func (c *CPU) write(v byte) {
	if c.inst.Mode == ACC {
		c.Reg.A = v
		return
	}
	c.storeByte(c, c.opAddr, v)
}

// Store the byte value 'v' at the address 'addr'.
func (c *CPU) storeByteNormal(addr uint16, v byte) {
	c.Bus.Write(addr, v)
}

// Store the byte value 'v' at the address 'addr', notifying the attached
// debugger.
func (c *CPU) storeByteDebugger(addr uint16, v byte) {
	c.debugger.onDataStore(c, addr, v)
	c.Bus.Write(addr, v)
}

// Push a value 'v' onto the stack.
func (c *CPU) push(v byte) {
	c.storeByte(c, stackAddress(c.Reg.SP), v)
	c.Reg.SP--
}

// Push the address 'addr' onto the stack.
func (c *CPU) pushAddress(addr uint16) {
	c.push(byte(addr >> 8))
	c.push(byte(addr))
}

// Pop a value from the stack and return it.
func (c *CPU) pop() byte {
	c.Reg.SP++
	return c.Bus.Read(stackAddress(c.Reg.SP))
}

// Pop a 16-bit address off the stack.
func (c *CPU) popAddress() uint16 {
	lo := c.pop()
	hi := c.pop()
	return uint16(lo) | uint16(hi)<<8
}

// Update the Zero and Sign flags based on the value of 'v'.
func (c *CPU) updateNZ(v byte) {
	c.Reg.P.SetZN(v)
}

// Execute a branch using the current instruction's offset operand.
func (c *CPU) branch() {
	offset := c.read()
	oldPC := c.Reg.PC
	if offset < 0x80 {
		c.Reg.PC += uint16(offset)
	} else {
		c.Reg.PC -= 0x100 - uint16(offset)
	}
	c.deltaCycles++
	if ((c.Reg.PC ^ oldPC) & 0xff00) != 0 {
		c.deltaCycles++
	}
}

// Handle an interrupt by pushing the program counter and status flags on
// the stack, then switching the program counter to the vectored address.
func (c *CPU) interrupt(brk bool, vector uint16) {
	c.pushAddress(c.Reg.PC)
	c.push(c.Reg.P.Save(brk))
	c.Reg.P.SetInterruptDisable(true)
	c.Reg.PC = c.loadWord(vector)
}
