// Copyright 2026 The nes6502 authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// Mode describes a memory addressing mode.
type Mode byte

// All possible memory addressing modes
const (
	IMM Mode = iota // Immediate
	IMP             // Implied (no operand)
	REL             // Relative
	ZPG             // Zero Page
	ZPX             // Zero Page,X
	ZPY             // Zero Page,Y
	ABS             // Absolute
	ABX             // Absolute,X
	ABY             // Absolute,Y
	IND             // (Indirect)
	IDX             // (Indirect,X)
	IDY             // (Indirect),Y
	ACC             // Accumulator (no operand)
)

// Number of operand bytes consumed by each addressing mode.
var modeLength = [...]byte{
	IMM: 1,
	IMP: 0,
	REL: 1,
	ZPG: 1,
	ZPX: 1,
	ZPY: 1,
	ABS: 2,
	ABX: 2,
	ABY: 2,
	IND: 2,
	IDX: 1,
	IDY: 1,
	ACC: 0,
}

// An addrfunc resolves one addressing mode: it consumes the instruction's
// operand bytes at PC and stores the effective address in the CPU's opAddr
// working field.
type addrfunc func(c *CPU)

// Immediate: the operand byte itself is the data, so the effective address
// is the operand's own location.
func (c *CPU) amImmediate() {
	c.opAddr = c.Reg.PC
	c.Reg.PC++
}

// Implied: the operand is implicit in the opcode.
func (c *CPU) amImplied() {
}

// Accumulator: a one-byte instruction form operating on A. Reads and
// writes are redirected to the accumulator by the mode tag.
func (c *CPU) amAccumulator() {
	c.opAddr = uint16(c.Reg.A)
}

// Relative: the operand is a signed branch offset. It is consumed like an
// immediate; the branch target is computed at execution time.
func (c *CPU) amRelative() {
	c.opAddr = c.Reg.PC
	c.Reg.PC++
}

// Zero page: a one-byte address with a zero high byte.
func (c *CPU) amZeroPage() {
	c.opAddr = uint16(c.fetchByte())
}

// Zero page,X: the index is added without carry, so the effective address
// never leaves the zero page.
func (c *CPU) amZeroPageX() {
	c.opAddr = offsetZeroPage(c.fetchByte(), c.Reg.X)
}

// Zero page,Y
func (c *CPU) amZeroPageY() {
	c.opAddr = offsetZeroPage(c.fetchByte(), c.Reg.Y)
}

// Absolute: a full 16-bit little-endian address.
func (c *CPU) amAbsolute() {
	c.opAddr = c.fetchWord()
}

// Absolute,X: the index carries across pages, and a crossing costs the
// instruction its boundary-page cycles.
func (c *CPU) amAbsoluteX() {
	c.opAddr, c.pageCrossed = offsetAddress(c.fetchWord(), c.Reg.X)
}

// Absolute,Y
func (c *CPU) amAbsoluteY() {
	c.opAddr, c.pageCrossed = offsetAddress(c.fetchWord(), c.Reg.Y)
}

// Indirect: used only by JMP. The target word is fetched with the NMOS
// page-wrap defect.
func (c *CPU) amIndirect() {
	c.opAddr = c.loadWordBug(c.fetchWord())
}

// (Indirect,X): the zero-page pointer is indexed by X before being
// dereferenced; both the add and the pointer read wrap within page zero.
func (c *CPU) amIndexedIndirect() {
	c.opAddr = c.loadWordZeroPage(c.fetchByte() + c.Reg.X)
}

// (Indirect),Y: the zero-page pointer is dereferenced first, then indexed
// by Y with full carry.
func (c *CPU) amIndirectIndexed() {
	addr := c.loadWordZeroPage(c.fetchByte())
	c.opAddr, c.pageCrossed = offsetAddress(addr, c.Reg.Y)
}
