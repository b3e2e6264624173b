// Copyright 2026 The nes6502 authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

import "strings"

// An opsym is an internal symbol used to associate an opcode's data with
// its implementation.
type opsym byte

const (
	symADC opsym = iota
	symALR
	symANC
	symAND
	symANE
	symARR
	symASL
	symBCC
	symBCS
	symBEQ
	symBIT
	symBMI
	symBNE
	symBPL
	symBRK
	symBVC
	symBVS
	symCLC
	symCLD
	symCLI
	symCLV
	symCMP
	symCPX
	symCPY
	symDCP
	symDEC
	symDEX
	symDEY
	symEOR
	symINC
	symINX
	symINY
	symISC
	symJAM
	symJMP
	symJSR
	symLAS
	symLAX
	symLDA
	symLDX
	symLDY
	symLSR
	symLXA
	symNOP
	symORA
	symPHA
	symPHP
	symPLA
	symPLP
	symRLA
	symROL
	symROR
	symRRA
	symRTI
	symRTS
	symSAX
	symSBC
	symSBX
	symSEC
	symSED
	symSEI
	symSHA
	symSHX
	symSHY
	symSLO
	symSRE
	symSTA
	symSTX
	symSTY
	symTAS
	symTAX
	symTAY
	symTSX
	symTXA
	symTXS
	symTYA
	symUSB
)

type instfunc func(c *CPU, inst *Instruction)

// Emulator implementation for each opcode
type opcodeImpl struct {
	sym  opsym
	name string
	fn   instfunc
}

var impl = []opcodeImpl{
	{symADC, "ADC", (*CPU).adc},
	{symALR, "ALR", (*CPU).alr},
	{symANC, "ANC", (*CPU).anc},
	{symAND, "AND", (*CPU).and},
	{symANE, "ANE", (*CPU).unstable},
	{symARR, "ARR", (*CPU).arr},
	{symASL, "ASL", (*CPU).asl},
	{symBCC, "BCC", (*CPU).bcc},
	{symBCS, "BCS", (*CPU).bcs},
	{symBEQ, "BEQ", (*CPU).beq},
	{symBIT, "BIT", (*CPU).bit},
	{symBMI, "BMI", (*CPU).bmi},
	{symBNE, "BNE", (*CPU).bne},
	{symBPL, "BPL", (*CPU).bpl},
	{symBRK, "BRK", (*CPU).brk},
	{symBVC, "BVC", (*CPU).bvc},
	{symBVS, "BVS", (*CPU).bvs},
	{symCLC, "CLC", (*CPU).clc},
	{symCLD, "CLD", (*CPU).cld},
	{symCLI, "CLI", (*CPU).cli},
	{symCLV, "CLV", (*CPU).clv},
	{symCMP, "CMP", (*CPU).cmp},
	{symCPX, "CPX", (*CPU).cpx},
	{symCPY, "CPY", (*CPU).cpy},
	{symDCP, "DCP", (*CPU).dcp},
	{symDEC, "DEC", (*CPU).dec},
	{symDEX, "DEX", (*CPU).dex},
	{symDEY, "DEY", (*CPU).dey},
	{symEOR, "EOR", (*CPU).eor},
	{symINC, "INC", (*CPU).inc},
	{symINX, "INX", (*CPU).inx},
	{symINY, "INY", (*CPU).iny},
	{symISC, "ISC", (*CPU).isc},
	{symJAM, "JAM", (*CPU).jam},
	{symJMP, "JMP", (*CPU).jmp},
	{symJSR, "JSR", (*CPU).jsr},
	{symLAS, "LAS", (*CPU).las},
	{symLAX, "LAX", (*CPU).lax},
	{symLDA, "LDA", (*CPU).lda},
	{symLDX, "LDX", (*CPU).ldx},
	{symLDY, "LDY", (*CPU).ldy},
	{symLSR, "LSR", (*CPU).lsr},
	{symLXA, "LXA", (*CPU).unstable},
	{symNOP, "NOP", (*CPU).nop},
	{symORA, "ORA", (*CPU).ora},
	{symPHA, "PHA", (*CPU).pha},
	{symPHP, "PHP", (*CPU).php},
	{symPLA, "PLA", (*CPU).pla},
	{symPLP, "PLP", (*CPU).plp},
	{symRLA, "RLA", (*CPU).rla},
	{symROL, "ROL", (*CPU).rol},
	{symROR, "ROR", (*CPU).ror},
	{symRRA, "RRA", (*CPU).rra},
	{symRTI, "RTI", (*CPU).rti},
	{symRTS, "RTS", (*CPU).rts},
	{symSAX, "SAX", (*CPU).sax},
	{symSBC, "SBC", (*CPU).sbc},
	{symSBX, "SBX", (*CPU).sbx},
	{symSEC, "SEC", (*CPU).sec},
	{symSED, "SED", (*CPU).sed},
	{symSEI, "SEI", (*CPU).sei},
	{symSHA, "SHA", (*CPU).unstable},
	{symSHX, "SHX", (*CPU).unstable},
	{symSHY, "SHY", (*CPU).unstable},
	{symSLO, "SLO", (*CPU).slo},
	{symSRE, "SRE", (*CPU).sre},
	{symSTA, "STA", (*CPU).sta},
	{symSTX, "STX", (*CPU).stx},
	{symSTY, "STY", (*CPU).sty},
	{symTAS, "TAS", (*CPU).unstable},
	{symTAX, "TAX", (*CPU).tax},
	{symTAY, "TAY", (*CPU).tay},
	{symTSX, "TSX", (*CPU).tsx},
	{symTXA, "TXA", (*CPU).txa},
	{symTXS, "TXS", (*CPU).txs},
	{symTYA, "TYA", (*CPU).tya},
	{symUSB, "USB", (*CPU).sbc},
}

// Addressing routine for each mode
var modeFunc = [...]addrfunc{
	IMM: (*CPU).amImmediate,
	IMP: (*CPU).amImplied,
	REL: (*CPU).amRelative,
	ZPG: (*CPU).amZeroPage,
	ZPX: (*CPU).amZeroPageX,
	ZPY: (*CPU).amZeroPageY,
	ABS: (*CPU).amAbsolute,
	ABX: (*CPU).amAbsoluteX,
	ABY: (*CPU).amAbsoluteY,
	IND: (*CPU).amIndirect,
	IDX: (*CPU).amIndexedIndirect,
	IDY: (*CPU).amIndirectIndexed,
	ACC: (*CPU).amAccumulator,
}

// Opcode data for an (opcode, mode) pair
type opcodeData struct {
	sym      opsym // internal opcode symbol
	mode     Mode  // addressing mode
	opcode   byte  // opcode hex value
	cycles   byte  // number of CPU cycles to execute the instruction
	bpcycles byte  // additional CPU cycles if the instruction crosses a page
}

// All 256 (opcode, mode) pairs. The NES 6502 decodes every byte value:
// the positions left unused by the documented instruction set hold the
// undocumented instructions, listed after the documented ones.
var data = []opcodeData{
	{symLDA, IMM, 0xa9, 2, 0},
	{symLDA, ZPG, 0xa5, 3, 0},
	{symLDA, ZPX, 0xb5, 4, 0},
	{symLDA, ABS, 0xad, 4, 0},
	{symLDA, ABX, 0xbd, 4, 1},
	{symLDA, ABY, 0xb9, 4, 1},
	{symLDA, IDX, 0xa1, 6, 0},
	{symLDA, IDY, 0xb1, 5, 1},

	{symLDX, IMM, 0xa2, 2, 0},
	{symLDX, ZPG, 0xa6, 3, 0},
	{symLDX, ZPY, 0xb6, 4, 0},
	{symLDX, ABS, 0xae, 4, 0},
	{symLDX, ABY, 0xbe, 4, 1},

	{symLDY, IMM, 0xa0, 2, 0},
	{symLDY, ZPG, 0xa4, 3, 0},
	{symLDY, ZPX, 0xb4, 4, 0},
	{symLDY, ABS, 0xac, 4, 0},
	{symLDY, ABX, 0xbc, 4, 1},

	{symSTA, ZPG, 0x85, 3, 0},
	{symSTA, ZPX, 0x95, 4, 0},
	{symSTA, ABS, 0x8d, 4, 0},
	{symSTA, ABX, 0x9d, 5, 0},
	{symSTA, ABY, 0x99, 5, 0},
	{symSTA, IDX, 0x81, 6, 0},
	{symSTA, IDY, 0x91, 6, 0},

	{symSTX, ZPG, 0x86, 3, 0},
	{symSTX, ZPY, 0x96, 4, 0},
	{symSTX, ABS, 0x8e, 4, 0},

	{symSTY, ZPG, 0x84, 3, 0},
	{symSTY, ZPX, 0x94, 4, 0},
	{symSTY, ABS, 0x8c, 4, 0},

	{symADC, IMM, 0x69, 2, 0},
	{symADC, ZPG, 0x65, 3, 0},
	{symADC, ZPX, 0x75, 4, 0},
	{symADC, ABS, 0x6d, 4, 0},
	{symADC, ABX, 0x7d, 4, 1},
	{symADC, ABY, 0x79, 4, 1},
	{symADC, IDX, 0x61, 6, 0},
	{symADC, IDY, 0x71, 5, 1},

	{symSBC, IMM, 0xe9, 2, 0},
	{symSBC, ZPG, 0xe5, 3, 0},
	{symSBC, ZPX, 0xf5, 4, 0},
	{symSBC, ABS, 0xed, 4, 0},
	{symSBC, ABX, 0xfd, 4, 1},
	{symSBC, ABY, 0xf9, 4, 1},
	{symSBC, IDX, 0xe1, 6, 0},
	{symSBC, IDY, 0xf1, 5, 1},

	{symCMP, IMM, 0xc9, 2, 0},
	{symCMP, ZPG, 0xc5, 3, 0},
	{symCMP, ZPX, 0xd5, 4, 0},
	{symCMP, ABS, 0xcd, 4, 0},
	{symCMP, ABX, 0xdd, 4, 1},
	{symCMP, ABY, 0xd9, 4, 1},
	{symCMP, IDX, 0xc1, 6, 0},
	{symCMP, IDY, 0xd1, 5, 1},

	{symCPX, IMM, 0xe0, 2, 0},
	{symCPX, ZPG, 0xe4, 3, 0},
	{symCPX, ABS, 0xec, 4, 0},

	{symCPY, IMM, 0xc0, 2, 0},
	{symCPY, ZPG, 0xc4, 3, 0},
	{symCPY, ABS, 0xcc, 4, 0},

	{symBIT, ZPG, 0x24, 3, 0},
	{symBIT, ABS, 0x2c, 4, 0},

	{symCLC, IMP, 0x18, 2, 0},
	{symSEC, IMP, 0x38, 2, 0},
	{symCLI, IMP, 0x58, 2, 0},
	{symSEI, IMP, 0x78, 2, 0},
	{symCLD, IMP, 0xd8, 2, 0},
	{symSED, IMP, 0xf8, 2, 0},
	{symCLV, IMP, 0xb8, 2, 0},

	{symBCC, REL, 0x90, 2, 1},
	{symBCS, REL, 0xb0, 2, 1},
	{symBEQ, REL, 0xf0, 2, 1},
	{symBNE, REL, 0xd0, 2, 1},
	{symBMI, REL, 0x30, 2, 1},
	{symBPL, REL, 0x10, 2, 1},
	{symBVC, REL, 0x50, 2, 1},
	{symBVS, REL, 0x70, 2, 1},

	{symBRK, IMP, 0x00, 7, 0},

	{symAND, IMM, 0x29, 2, 0},
	{symAND, ZPG, 0x25, 3, 0},
	{symAND, ZPX, 0x35, 4, 0},
	{symAND, ABS, 0x2d, 4, 0},
	{symAND, ABX, 0x3d, 4, 1},
	{symAND, ABY, 0x39, 4, 1},
	{symAND, IDX, 0x21, 6, 0},
	{symAND, IDY, 0x31, 5, 1},

	{symORA, IMM, 0x09, 2, 0},
	{symORA, ZPG, 0x05, 3, 0},
	{symORA, ZPX, 0x15, 4, 0},
	{symORA, ABS, 0x0d, 4, 0},
	{symORA, ABX, 0x1d, 4, 1},
	{symORA, ABY, 0x19, 4, 1},
	{symORA, IDX, 0x01, 6, 0},
	{symORA, IDY, 0x11, 5, 1},

	{symEOR, IMM, 0x49, 2, 0},
	{symEOR, ZPG, 0x45, 3, 0},
	{symEOR, ZPX, 0x55, 4, 0},
	{symEOR, ABS, 0x4d, 4, 0},
	{symEOR, ABX, 0x5d, 4, 1},
	{symEOR, ABY, 0x59, 4, 1},
	{symEOR, IDX, 0x41, 6, 0},
	{symEOR, IDY, 0x51, 5, 1},

	{symINC, ZPG, 0xe6, 5, 0},
	{symINC, ZPX, 0xf6, 6, 0},
	{symINC, ABS, 0xee, 6, 0},
	{symINC, ABX, 0xfe, 7, 0},

	{symDEC, ZPG, 0xc6, 5, 0},
	{symDEC, ZPX, 0xd6, 6, 0},
	{symDEC, ABS, 0xce, 6, 0},
	{symDEC, ABX, 0xde, 7, 0},

	{symINX, IMP, 0xe8, 2, 0},
	{symINY, IMP, 0xc8, 2, 0},

	{symDEX, IMP, 0xca, 2, 0},
	{symDEY, IMP, 0x88, 2, 0},

	{symJMP, ABS, 0x4c, 3, 0},
	{symJMP, IND, 0x6c, 5, 0},

	{symJSR, ABS, 0x20, 6, 0},
	{symRTS, IMP, 0x60, 6, 0},

	{symRTI, IMP, 0x40, 6, 0},

	{symNOP, IMP, 0xea, 2, 0},

	{symTAX, IMP, 0xaa, 2, 0},
	{symTXA, IMP, 0x8a, 2, 0},
	{symTAY, IMP, 0xa8, 2, 0},
	{symTYA, IMP, 0x98, 2, 0},
	{symTXS, IMP, 0x9a, 2, 0},
	{symTSX, IMP, 0xba, 2, 0},

	{symPHA, IMP, 0x48, 3, 0},
	{symPLA, IMP, 0x68, 4, 0},
	{symPHP, IMP, 0x08, 3, 0},
	{symPLP, IMP, 0x28, 4, 0},

	{symASL, ACC, 0x0a, 2, 0},
	{symASL, ZPG, 0x06, 5, 0},
	{symASL, ZPX, 0x16, 6, 0},
	{symASL, ABS, 0x0e, 6, 0},
	{symASL, ABX, 0x1e, 7, 0},

	{symLSR, ACC, 0x4a, 2, 0},
	{symLSR, ZPG, 0x46, 5, 0},
	{symLSR, ZPX, 0x56, 6, 0},
	{symLSR, ABS, 0x4e, 6, 0},
	{symLSR, ABX, 0x5e, 7, 0},

	{symROL, ACC, 0x2a, 2, 0},
	{symROL, ZPG, 0x26, 5, 0},
	{symROL, ZPX, 0x36, 6, 0},
	{symROL, ABS, 0x2e, 6, 0},
	{symROL, ABX, 0x3e, 7, 0},

	{symROR, ACC, 0x6a, 2, 0},
	{symROR, ZPG, 0x66, 5, 0},
	{symROR, ZPX, 0x76, 6, 0},
	{symROR, ABS, 0x6e, 6, 0},
	{symROR, ABX, 0x7e, 7, 0},

	// Undocumented instructions

	{symSLO, ZPG, 0x07, 5, 0},
	{symSLO, ZPX, 0x17, 6, 0},
	{symSLO, ABS, 0x0f, 6, 0},
	{symSLO, ABX, 0x1f, 7, 0},
	{symSLO, ABY, 0x1b, 7, 0},
	{symSLO, IDX, 0x03, 8, 0},
	{symSLO, IDY, 0x13, 8, 0},

	{symRLA, ZPG, 0x27, 5, 0},
	{symRLA, ZPX, 0x37, 6, 0},
	{symRLA, ABS, 0x2f, 6, 0},
	{symRLA, ABX, 0x3f, 7, 0},
	{symRLA, ABY, 0x3b, 7, 0},
	{symRLA, IDX, 0x23, 8, 0},
	{symRLA, IDY, 0x33, 8, 0},

	{symSRE, ZPG, 0x47, 5, 0},
	{symSRE, ZPX, 0x57, 6, 0},
	{symSRE, ABS, 0x4f, 6, 0},
	{symSRE, ABX, 0x5f, 7, 0},
	{symSRE, ABY, 0x5b, 7, 0},
	{symSRE, IDX, 0x43, 8, 0},
	{symSRE, IDY, 0x53, 8, 0},

	{symRRA, ZPG, 0x67, 5, 0},
	{symRRA, ZPX, 0x77, 6, 0},
	{symRRA, ABS, 0x6f, 6, 0},
	{symRRA, ABX, 0x7f, 7, 0},
	{symRRA, ABY, 0x7b, 7, 0},
	{symRRA, IDX, 0x63, 8, 0},
	{symRRA, IDY, 0x73, 8, 0},

	{symDCP, ZPG, 0xc7, 5, 0},
	{symDCP, ZPX, 0xd7, 6, 0},
	{symDCP, ABS, 0xcf, 6, 0},
	{symDCP, ABX, 0xdf, 7, 0},
	{symDCP, ABY, 0xdb, 7, 0},
	{symDCP, IDX, 0xc3, 8, 0},
	{symDCP, IDY, 0xd3, 8, 0},

	{symISC, ZPG, 0xe7, 5, 0},
	{symISC, ZPX, 0xf7, 6, 0},
	{symISC, ABS, 0xef, 6, 0},
	{symISC, ABX, 0xff, 7, 0},
	{symISC, ABY, 0xfb, 7, 0},
	{symISC, IDX, 0xe3, 8, 0},
	{symISC, IDY, 0xf3, 8, 0},

	{symLAX, ZPG, 0xa7, 3, 0},
	{symLAX, ZPY, 0xb7, 4, 0},
	{symLAX, ABS, 0xaf, 4, 0},
	{symLAX, ABY, 0xbf, 4, 1},
	{symLAX, IDX, 0xa3, 6, 0},
	{symLAX, IDY, 0xb3, 5, 1},

	{symSAX, ZPG, 0x87, 3, 0},
	{symSAX, ZPY, 0x97, 4, 0},
	{symSAX, ABS, 0x8f, 4, 0},
	{symSAX, IDX, 0x83, 6, 0},

	{symANC, IMM, 0x0b, 2, 0},
	{symANC, IMM, 0x2b, 2, 0},
	{symALR, IMM, 0x4b, 2, 0},
	{symARR, IMM, 0x6b, 2, 0},
	{symANE, IMM, 0x8b, 2, 0},
	{symLXA, IMM, 0xab, 2, 0},
	{symSBX, IMM, 0xcb, 2, 0},
	{symUSB, IMM, 0xeb, 2, 0},

	{symSHA, IDY, 0x93, 6, 0},
	{symSHA, ABY, 0x9f, 5, 0},
	{symSHX, ABY, 0x9e, 5, 0},
	{symSHY, ABX, 0x9c, 5, 0},
	{symTAS, ABY, 0x9b, 5, 0},
	{symLAS, ABY, 0xbb, 4, 1},

	{symNOP, IMP, 0x1a, 2, 0},
	{symNOP, IMP, 0x3a, 2, 0},
	{symNOP, IMP, 0x5a, 2, 0},
	{symNOP, IMP, 0x7a, 2, 0},
	{symNOP, IMP, 0xda, 2, 0},
	{symNOP, IMP, 0xfa, 2, 0},
	{symNOP, IMM, 0x80, 2, 0},
	{symNOP, IMM, 0x82, 2, 0},
	{symNOP, IMM, 0x89, 2, 0},
	{symNOP, IMM, 0xc2, 2, 0},
	{symNOP, IMM, 0xe2, 2, 0},
	{symNOP, ZPG, 0x04, 3, 0},
	{symNOP, ZPG, 0x44, 3, 0},
	{symNOP, ZPG, 0x64, 3, 0},
	{symNOP, ZPX, 0x14, 4, 0},
	{symNOP, ZPX, 0x34, 4, 0},
	{symNOP, ZPX, 0x54, 4, 0},
	{symNOP, ZPX, 0x74, 4, 0},
	{symNOP, ZPX, 0xd4, 4, 0},
	{symNOP, ZPX, 0xf4, 4, 0},
	{symNOP, ABS, 0x0c, 4, 0},
	{symNOP, ABX, 0x1c, 4, 1},
	{symNOP, ABX, 0x3c, 4, 1},
	{symNOP, ABX, 0x5c, 4, 1},
	{symNOP, ABX, 0x7c, 4, 1},
	{symNOP, ABX, 0xdc, 4, 1},
	{symNOP, ABX, 0xfc, 4, 1},

	{symJAM, IMP, 0x02, 2, 0},
	{symJAM, IMP, 0x12, 2, 0},
	{symJAM, IMP, 0x22, 2, 0},
	{symJAM, IMP, 0x32, 2, 0},
	{symJAM, IMP, 0x42, 2, 0},
	{symJAM, IMP, 0x52, 2, 0},
	{symJAM, IMP, 0x62, 2, 0},
	{symJAM, IMP, 0x72, 2, 0},
	{symJAM, IMP, 0x92, 2, 0},
	{symJAM, IMP, 0xb2, 2, 0},
	{symJAM, IMP, 0xd2, 2, 0},
	{symJAM, IMP, 0xf2, 2, 0},
}

// An Instruction describes a CPU instruction: its name, its addressing
// mode, its opcode value, its operand size, and its CPU cycle cost.
type Instruction struct {
	Name     string   // all-caps name of the instruction
	Mode     Mode     // addressing mode
	Opcode   byte     // hexadecimal opcode value
	Length   byte     // combined size of opcode and operand, in bytes
	Cycles   byte     // number of CPU cycles to execute the instruction
	BPCycles byte     // additional cycles required if a page boundary is crossed
	fetch    addrfunc // addressing-mode resolver for the instruction
	fn       instfunc // emulator implementation of the instruction
}

// An InstructionSet defines the set of all 256 instructions that can run
// on the emulated CPU, indexed by opcode value.
type InstructionSet struct {
	instructions [256]Instruction
	variants     map[string][]*Instruction // variants of each instruction
}

// Lookup retrieves the CPU instruction corresponding to the requested
// opcode. It never returns nil: the table is total over the opcode byte.
func (s *InstructionSet) Lookup(opcode byte) *Instruction {
	return &s.instructions[opcode]
}

// GetInstructions returns all CPU instructions whose name matches the
// provided string.
func (s *InstructionSet) GetInstructions(name string) []*Instruction {
	return s.variants[strings.ToUpper(name)]
}

// Build the instruction set from the implementation and opcode tables.
func newInstructionSet() *InstructionSet {
	set := &InstructionSet{
		variants: make(map[string][]*Instruction),
	}

	// Create a map from symbol to implementation.
	symToImpl := make(map[opsym]*opcodeImpl, len(impl))
	for i := range impl {
		symToImpl[impl[i].sym] = &impl[i]
	}

	seen := 0
	for _, d := range data {
		inst := &set.instructions[d.opcode]
		if inst.fn != nil {
			panic("duplicate opcode")
		}

		impl := symToImpl[d.sym]
		inst.Name = impl.name
		inst.Mode = d.mode
		inst.Opcode = d.opcode
		inst.Length = 1 + modeLength[d.mode]
		inst.Cycles = d.cycles
		inst.BPCycles = d.bpcycles
		inst.fetch = modeFunc[d.mode]
		inst.fn = impl.fn

		set.variants[inst.Name] = append(set.variants[inst.Name], inst)
		seen++
	}

	if seen != 256 {
		panic("missing opcode")
	}
	return set
}

var instructionSet *InstructionSet

// GetInstructionSet returns the NES 6502 instruction set, building it on
// first use.
func GetInstructionSet() *InstructionSet {
	if instructionSet == nil {
		instructionSet = newInstructionSet()
	}
	return instructionSet
}
