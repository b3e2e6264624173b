// Copyright 2026 The nes6502 authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// The Bus interface connects the CPU to the system's flat 16-bit address
// space. Cartridge ROM, RAM pages and memory-mapped peripheral registers
// all hang off the bus; the CPU never knows which is which.
type Bus interface {
	// Read returns the byte at the requested address.
	Read(addr uint16) byte

	// Write stores a byte at the requested address.
	Write(addr uint16, v byte)
}

// FlatMemory is a Bus backed by a single 64K RAM buffer with no mapped
// peripherals. It is the memory used by the host and by tests.
type FlatMemory struct {
	b [64 * 1024]byte
}

// NewFlatMemory creates a new 16-bit memory space.
func NewFlatMemory() *FlatMemory {
	return &FlatMemory{}
}

// Read returns the byte at the requested address.
func (m *FlatMemory) Read(addr uint16) byte {
	return m.b[addr]
}

// Write stores a byte at the requested address.
func (m *FlatMemory) Write(addr uint16, v byte) {
	m.b[addr] = v
}

// StoreBytes copies a block of bytes into memory starting at the requested
// address.
func (m *FlatMemory) StoreBytes(addr uint16, b []byte) {
	copy(m.b[addr:], b)
}

// LoadBytes copies memory starting at the requested address into the
// buffer 'b'.
func (m *FlatMemory) LoadBytes(addr uint16, b []byte) {
	copy(b, m.b[addr:])
}

// Return the offset address 'addr' + 'offset'. If the offset crossed a
// page boundary, return 'pageCrossed' as true.
func offsetAddress(addr uint16, offset byte) (newAddr uint16, pageCrossed bool) {
	newAddr = addr + uint16(offset)
	pageCrossed = ((newAddr & 0xff00) != (addr & 0xff00))
	return newAddr, pageCrossed
}

// Offset a zero-page address by 'offset'. The sum wraps within the zero
// page; indexed zero-page addressing never escapes it.
func offsetZeroPage(addr byte, offset byte) uint16 {
	return uint16(addr + offset)
}

// Given a 1-byte stack pointer register, return the corresponding stack
// memory address in page 1.
func stackAddress(offset byte) uint16 {
	return uint16(0x100) + uint16(offset)
}

// fetchByte reads the byte at PC and advances PC past it.
func (c *CPU) fetchByte() byte {
	v := c.Bus.Read(c.Reg.PC)
	c.Reg.PC++
	return v
}

// fetchWord reads the little-endian word at PC and advances PC past it.
func (c *CPU) fetchWord() uint16 {
	lo := c.fetchByte()
	hi := c.fetchByte()
	return uint16(lo) | uint16(hi)<<8
}

// loadWord reads a little-endian word from the bus.
func (c *CPU) loadWord(addr uint16) uint16 {
	lo := c.Bus.Read(addr)
	hi := c.Bus.Read(addr + 1)
	return uint16(lo) | uint16(hi)<<8
}

// loadWordBug reads a little-endian word without carrying the low byte's
// increment into the high byte of the pointer. A pointer ending in $FF
// reads its high byte from the start of the same page, not the next one.
// This mimics the NMOS 6502, and is the documented JMP ($xxFF) defect.
func (c *CPU) loadWordBug(addr uint16) uint16 {
	lo := c.Bus.Read(addr)
	hi := c.Bus.Read(addr&0xff00 | uint16(byte(addr)+1))
	return uint16(lo) | uint16(hi)<<8
}

// loadWordZeroPage reads a little-endian word from the zero page, with
// the pointer wrapping within the zero page.
func (c *CPU) loadWordZeroPage(zp byte) uint16 {
	lo := c.Bus.Read(uint16(zp))
	hi := c.Bus.Read(uint16(zp + 1))
	return uint16(lo) | uint16(hi)<<8
}
