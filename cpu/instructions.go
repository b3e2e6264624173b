// Copyright 2026 The nes6502 authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// addToAccumulator implements the shared ADC/SBC data path: A + add + C,
// computed 16 bits wide. The NES 6502 never consults the decimal flag, so
// there is no BCD variant.
func (c *CPU) addToAccumulator(add byte) {
	acc := uint16(c.Reg.A)
	sum := acc + uint16(add) + uint16(boolToByte(c.Reg.P.Carry()))
	c.Reg.P.SetCarry(sum > 0xff)
	c.Reg.P.SetOverflow((acc^sum)&(uint16(add)^sum)&0x80 != 0)
	c.Reg.A = byte(sum)
	c.updateNZ(c.Reg.A)
}

// compare implements the shared CMP/CPX/CPY rule on a register value.
func (c *CPU) compare(reg byte) {
	v := c.read()
	c.Reg.P.SetCarry(reg >= v)
	c.updateNZ(reg - v)
}

// Add with Carry
func (c *CPU) adc(inst *Instruction) {
	c.addToAccumulator(c.read())
}

// Boolean AND
func (c *CPU) and(inst *Instruction) {
	c.Reg.A &= c.read()
	c.updateNZ(c.Reg.A)
}

// Arithmetic Shift Left
func (c *CPU) asl(inst *Instruction) {
	v := c.read()
	c.Reg.P.SetCarry(v&0x80 != 0)
	v <<= 1
	c.updateNZ(v)
	c.write(v)
}

// Branch if Carry Clear
func (c *CPU) bcc(inst *Instruction) {
	if !c.Reg.P.Carry() {
		c.branch()
	}
}

// Branch if Carry Set
func (c *CPU) bcs(inst *Instruction) {
	if c.Reg.P.Carry() {
		c.branch()
	}
}

// Branch if EQual (to zero)
func (c *CPU) beq(inst *Instruction) {
	if c.Reg.P.Zero() {
		c.branch()
	}
}

// Bit Test
func (c *CPU) bit(inst *Instruction) {
	v := c.read()
	c.Reg.P.SetZero(v&c.Reg.A == 0)
	c.Reg.P.SetSign(v&0x80 != 0)
	c.Reg.P.SetOverflow(v&0x40 != 0)
}

// Branch if MInus (negative)
func (c *CPU) bmi(inst *Instruction) {
	if c.Reg.P.Sign() {
		c.branch()
	}
}

// Branch if Not Equal (not zero)
func (c *CPU) bne(inst *Instruction) {
	if !c.Reg.P.Zero() {
		c.branch()
	}
}

// Branch if PLus (positive)
func (c *CPU) bpl(inst *Instruction) {
	if !c.Reg.P.Sign() {
		c.branch()
	}
}

// Break: a software interrupt through the IRQ/BRK vector. The pushed
// return address skips the byte after the BRK opcode.
func (c *CPU) brk(inst *Instruction) {
	c.Reg.PC++
	c.interrupt(true, vectorBRK)
}

// Branch if oVerflow Clear
func (c *CPU) bvc(inst *Instruction) {
	if !c.Reg.P.Overflow() {
		c.branch()
	}
}

// Branch if oVerflow Set
func (c *CPU) bvs(inst *Instruction) {
	if c.Reg.P.Overflow() {
		c.branch()
	}
}

// Clear Carry flag
func (c *CPU) clc(inst *Instruction) {
	c.Reg.P.SetCarry(false)
}

// Clear Decimal flag
func (c *CPU) cld(inst *Instruction) {
	c.Reg.P.SetDecimal(false)
}

// Clear InterruptDisable flag
func (c *CPU) cli(inst *Instruction) {
	c.Reg.P.SetInterruptDisable(false)
}

// Clear oVerflow flag
func (c *CPU) clv(inst *Instruction) {
	c.Reg.P.SetOverflow(false)
}

// Compare to accumulator
func (c *CPU) cmp(inst *Instruction) {
	c.compare(c.Reg.A)
}

// Compare to X register
func (c *CPU) cpx(inst *Instruction) {
	c.compare(c.Reg.X)
}

// Compare to Y register
func (c *CPU) cpy(inst *Instruction) {
	c.compare(c.Reg.Y)
}

// Decrement memory value
func (c *CPU) dec(inst *Instruction) {
	v := c.read() - 1
	c.updateNZ(v)
	c.write(v)
}

// Decrement X register
func (c *CPU) dex(inst *Instruction) {
	c.Reg.X--
	c.updateNZ(c.Reg.X)
}

// Decrement Y register
func (c *CPU) dey(inst *Instruction) {
	c.Reg.Y--
	c.updateNZ(c.Reg.Y)
}

// Boolean XOR
func (c *CPU) eor(inst *Instruction) {
	c.Reg.A ^= c.read()
	c.updateNZ(c.Reg.A)
}

// Increment memory value
func (c *CPU) inc(inst *Instruction) {
	v := c.read() + 1
	c.updateNZ(v)
	c.write(v)
}

// Increment X register
func (c *CPU) inx(inst *Instruction) {
	c.Reg.X++
	c.updateNZ(c.Reg.X)
}

// Increment Y register
func (c *CPU) iny(inst *Instruction) {
	c.Reg.Y++
	c.updateNZ(c.Reg.Y)
}

// Jump to memory address
func (c *CPU) jmp(inst *Instruction) {
	c.Reg.PC = c.opAddr
}

// Jump to subroutine. The addressing routine has already consumed the
// operand, so PC-1 is the address of the operand's last byte, which is
// what the 6502 pushes.
func (c *CPU) jsr(inst *Instruction) {
	c.pushAddress(c.Reg.PC - 1)
	c.Reg.PC = c.opAddr
}

// Load Accumulator
func (c *CPU) lda(inst *Instruction) {
	c.Reg.A = c.read()
	c.updateNZ(c.Reg.A)
}

// Load the X register
func (c *CPU) ldx(inst *Instruction) {
	c.Reg.X = c.read()
	c.updateNZ(c.Reg.X)
}

// Load the Y register
func (c *CPU) ldy(inst *Instruction) {
	c.Reg.Y = c.read()
	c.updateNZ(c.Reg.Y)
}

// Logical Shift Right
func (c *CPU) lsr(inst *Instruction) {
	v := c.read()
	c.Reg.P.SetCarry(v&1 == 1)
	v >>= 1
	c.updateNZ(v)
	c.write(v)
}

// No-operation
func (c *CPU) nop(inst *Instruction) {
	// Do nothing
}

// Boolean OR
func (c *CPU) ora(inst *Instruction) {
	c.Reg.A |= c.read()
	c.updateNZ(c.Reg.A)
}

// Push Accumulator
func (c *CPU) pha(inst *Instruction) {
	c.push(c.Reg.A)
}

// Push Processor flags, with the break and reserved bits forced on.
func (c *CPU) php(inst *Instruction) {
	c.push(c.Reg.P.Save(true))
}

// Pull (pop) Accumulator
func (c *CPU) pla(inst *Instruction) {
	c.Reg.A = c.pop()
	c.updateNZ(c.Reg.A)
}

// Pull (pop) Processor flags, ignoring the pulled break and reserved bits.
func (c *CPU) plp(inst *Instruction) {
	c.Reg.P.Restore(c.pop())
}

// Rotate Left
func (c *CPU) rol(inst *Instruction) {
	tmp := c.read()
	v := tmp<<1 | boolToByte(c.Reg.P.Carry())
	c.Reg.P.SetCarry(tmp&0x80 != 0)
	c.updateNZ(v)
	c.write(v)
}

// Rotate Right
func (c *CPU) ror(inst *Instruction) {
	tmp := c.read()
	v := tmp>>1 | boolToByte(c.Reg.P.Carry())<<7
	c.Reg.P.SetCarry(tmp&1 != 0)
	c.updateNZ(v)
	c.write(v)
}

// Return from Interrupt
func (c *CPU) rti(inst *Instruction) {
	c.Reg.P.Restore(c.pop())
	c.Reg.PC = c.popAddress()
}

// Return from Subroutine
func (c *CPU) rts(inst *Instruction) {
	c.Reg.PC = c.popAddress() + 1
}

// Subtract with Carry: ADC of the operand's complement, same carry and
// overflow rules.
func (c *CPU) sbc(inst *Instruction) {
	c.addToAccumulator(^c.read())
}

// Set Carry flag
func (c *CPU) sec(inst *Instruction) {
	c.Reg.P.SetCarry(true)
}

// Set Decimal flag
func (c *CPU) sed(inst *Instruction) {
	c.Reg.P.SetDecimal(true)
}

// Set InterruptDisable flag
func (c *CPU) sei(inst *Instruction) {
	c.Reg.P.SetInterruptDisable(true)
}

// Store Accumulator
func (c *CPU) sta(inst *Instruction) {
	c.write(c.Reg.A)
}

// Store X register
func (c *CPU) stx(inst *Instruction) {
	c.write(c.Reg.X)
}

// Store Y register
func (c *CPU) sty(inst *Instruction) {
	c.write(c.Reg.Y)
}

// Transfer Accumulator to X register
func (c *CPU) tax(inst *Instruction) {
	c.Reg.X = c.Reg.A
	c.updateNZ(c.Reg.X)
}

// Transfer Accumulator to Y register
func (c *CPU) tay(inst *Instruction) {
	c.Reg.Y = c.Reg.A
	c.updateNZ(c.Reg.Y)
}

// Transfer Stack pointer to X register
func (c *CPU) tsx(inst *Instruction) {
	c.Reg.X = c.Reg.SP
	c.updateNZ(c.Reg.X)
}

// Transfer X register to Accumulator
func (c *CPU) txa(inst *Instruction) {
	c.Reg.A = c.Reg.X
	c.updateNZ(c.Reg.A)
}

// Transfer X register to the Stack pointer. Flags are unaffected.
func (c *CPU) txs(inst *Instruction) {
	c.Reg.SP = c.Reg.X
}

// Transfer Y register to the Accumulator
func (c *CPU) tya(inst *Instruction) {
	c.Reg.A = c.Reg.Y
	c.updateNZ(c.Reg.A)
}

// JAM: freeze the CPU. The program counter is wound back onto the jam
// opcode so the machine state repeats until Reset.
func (c *CPU) jam(inst *Instruction) {
	c.Reg.PC--
	c.halted = true
}

// SLO: ASL the memory operand, then OR it into the accumulator.
func (c *CPU) slo(inst *Instruction) {
	v := c.read()
	c.Reg.P.SetCarry(v&0x80 != 0)
	v <<= 1
	c.write(v)
	c.Reg.A |= v
	c.updateNZ(c.Reg.A)
}

// RLA: ROL the memory operand, then AND it into the accumulator.
func (c *CPU) rla(inst *Instruction) {
	tmp := c.read()
	v := tmp<<1 | boolToByte(c.Reg.P.Carry())
	c.Reg.P.SetCarry(tmp&0x80 != 0)
	c.write(v)
	c.Reg.A &= v
	c.updateNZ(c.Reg.A)
}

// SRE: LSR the memory operand, then XOR it into the accumulator.
func (c *CPU) sre(inst *Instruction) {
	v := c.read()
	c.Reg.P.SetCarry(v&1 == 1)
	v >>= 1
	c.write(v)
	c.Reg.A ^= v
	c.updateNZ(c.Reg.A)
}

// RRA: ROR the memory operand, then add it to the accumulator with carry.
func (c *CPU) rra(inst *Instruction) {
	tmp := c.read()
	v := tmp>>1 | boolToByte(c.Reg.P.Carry())<<7
	c.Reg.P.SetCarry(tmp&1 != 0)
	c.write(v)
	c.addToAccumulator(v)
}

// DCP: decrement the memory operand, then compare it to the accumulator.
func (c *CPU) dcp(inst *Instruction) {
	v := c.read() - 1
	c.write(v)
	c.Reg.P.SetCarry(c.Reg.A >= v)
	c.updateNZ(c.Reg.A - v)
}

// ISC: increment the memory operand, then subtract it from the
// accumulator with borrow.
func (c *CPU) isc(inst *Instruction) {
	v := c.read() + 1
	c.write(v)
	c.addToAccumulator(^v)
}

// LAX: load the accumulator and the X register together.
func (c *CPU) lax(inst *Instruction) {
	v := c.read()
	c.Reg.A = v
	c.Reg.X = v
	c.updateNZ(v)
}

// SAX: store A AND X. Flags are unaffected.
func (c *CPU) sax(inst *Instruction) {
	c.write(c.Reg.A & c.Reg.X)
}

// ALR: AND the operand into the accumulator, then LSR the accumulator.
func (c *CPU) alr(inst *Instruction) {
	v := c.Reg.A & c.read()
	c.Reg.P.SetCarry(v&1 == 1)
	v >>= 1
	c.Reg.A = v
	c.updateNZ(v)
}

// ANC: AND the operand into the accumulator, copying the sign bit into
// the carry.
func (c *CPU) anc(inst *Instruction) {
	c.Reg.A &= c.read()
	c.updateNZ(c.Reg.A)
	c.Reg.P.SetCarry(c.Reg.A&0x80 != 0)
}

// ARR: AND the operand into the accumulator, then ROR it. The carry comes
// from bit 6 of the result and the overflow from bit 6 xor bit 5; the
// rotate runs through the adder on real silicon.
func (c *CPU) arr(inst *Instruction) {
	v := c.Reg.A & c.read()
	v = v>>1 | boolToByte(c.Reg.P.Carry())<<7
	c.Reg.A = v
	c.updateNZ(v)
	c.Reg.P.SetCarry(v&0x40 != 0)
	c.Reg.P.SetOverflow((v>>6^v>>5)&1 != 0)
}

// SBX: X = (A AND X) - operand, with the CMP carry rule.
func (c *CPU) sbx(inst *Instruction) {
	v := c.read()
	ax := c.Reg.A & c.Reg.X
	c.Reg.P.SetCarry(ax >= v)
	c.Reg.X = ax - v
	c.updateNZ(c.Reg.X)
}

// LAS: AND the operand with the stack pointer, loading the result into
// A, X and SP.
func (c *CPU) las(inst *Instruction) {
	v := c.read() & c.Reg.SP
	c.Reg.A = v
	c.Reg.X = v
	c.Reg.SP = v
	c.updateNZ(v)
}

// Unstable undocumented instruction (ANE, LXA, SHA, SHX, SHY, TAS). The
// result depends on analog effects on real silicon, so the operand is
// consumed and nothing else happens.
func (c *CPU) unstable(inst *Instruction) {
	// Do nothing
}
