// Copyright 2026 The nes6502 authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package host emulates a computer system built around the NES 6502 CPU:
// 64K of memory, a built-in debugger, a disassembler and an execution
// trace log. Within the host it is possible to load machine code into
// memory, step through it, set address and data breakpoints, dump and
// modify memory, and manipulate CPU registers.
package host

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/cmd"
	"github.com/dralth/nes6502/cpu"
	"github.com/dralth/nes6502/disasm"
)

type displayFlags uint8

const (
	displayRegisters displayFlags = 1 << iota
	displayCycles

	displayAll = displayRegisters | displayCycles
)

// The host is either waiting for a command or running the CPU; a
// breakpoint stops a run.
type state byte

const (
	stateIdle state = iota
	stateRunning
	stateInterrupted
)

// A Host represents a fully emulated NES 6502 system: CPU, 64K of
// memory, a built-in debugger and a disassembler.
type Host struct {
	mem      *cpu.FlatMemory
	cpu      *cpu.CPU
	debugger *cpu.Debugger
	settings *settings

	in          *bufio.Scanner
	out         *bufio.Writer
	interactive bool
	state       state
	lastCmd     *cmd.Selection
	traceFile   *os.File

	// continuation cursors for the disassemble and memory dump windows
	nextDisasm uint16
	nextDump   uint16
}

// New creates a new host environment.
func New() *Host {
	h := &Host{
		state:    stateIdle,
		settings: newSettings(),
	}

	h.mem = cpu.NewFlatMemory()
	h.cpu = cpu.NewCPU(h.mem)

	h.debugger = cpu.NewDebugger(h)
	h.cpu.AttachDebugger(h.debugger)

	return h
}

// RunCommands reads host commands from 'r' and writes results to 'w'
// until the reader is exhausted or a command ends the session. In
// interactive mode a prompt is displayed before each command.
func (h *Host) RunCommands(r io.Reader, w io.Writer, interactive bool) {
	prevIn, prevOut, prevMode := h.in, h.out, h.interactive
	h.in = bufio.NewScanner(r)
	h.out = bufio.NewWriter(w)
	h.interactive = interactive
	defer func() {
		h.flush()
		h.in, h.out, h.interactive = prevIn, prevOut, prevMode
	}()

	if interactive {
		h.println()
		h.showPC()
	}

	for {
		h.prompt()
		if !h.in.Scan() {
			return
		}
		if err := h.dispatch(strings.TrimSpace(h.in.Text())); err != nil {
			return
		}
	}
}

// dispatch resolves one command line against the command tree and runs
// its handler. An empty line repeats the previous command. The returned
// error is non-nil only when the session should end.
func (h *Host) dispatch(line string) error {
	var sel cmd.Selection
	switch {
	case line != "":
		var err error
		sel, err = cmds.Lookup(line)
		switch {
		case errors.Is(err, cmd.ErrNotFound):
			h.println("Command not found.")
			return nil
		case errors.Is(err, cmd.ErrAmbiguous):
			h.println("Command is ambiguous.")
			return nil
		case err != nil:
			h.printf("ERROR: %v.\n", err)
			return nil
		}
	case h.lastCmd != nil:
		sel = *h.lastCmd
	}

	if sel.Command == nil {
		return nil
	}
	h.lastCmd = &sel

	handler := sel.Command.Data.(func(*Host, cmd.Selection) error)
	return handler(h, sel)
}

// Break interrupts a running CPU.
func (h *Host) Break() {
	h.println()

	switch h.state {
	case stateRunning:
		h.state = stateInterrupted
		h.showPC()
	case stateIdle:
		h.prompt()
	}
}

func (h *Host) print(args ...any) {
	fmt.Fprint(h.out, args...)
}

func (h *Host) printf(format string, args ...any) {
	fmt.Fprintf(h.out, format, args...)
	h.flush()
}

func (h *Host) println(args ...any) {
	fmt.Fprintln(h.out, args...)
	h.flush()
}

func (h *Host) flush() {
	h.out.Flush()
}

func (h *Host) prompt() {
	if h.interactive {
		h.print("* ")
		h.flush()
	}
}

func (h *Host) showPC() {
	if h.interactive {
		h.println(h.sourceLine(h.cpu.Reg.PC, displayAll))
	}
}

func (h *Host) showUsage(c *cmd.Command) {
	if c.HelpText != "" {
		h.printf("Usage: %s\n", c.HelpText)
	}
}

// argAddr parses argument 'i' of the selection as an address, printing
// the usage or parse error itself when it fails.
func (h *Host) argAddr(sel cmd.Selection, i int) (uint16, bool) {
	if len(sel.Args) <= i {
		h.showUsage(sel.Command)
		return 0, false
	}
	addr, err := h.parseAddr(sel.Args[i])
	if err != nil {
		h.printf("%v\n", err)
		return 0, false
	}
	return addr, true
}

// argCount parses an optional trailing repeat count, defaulting to 1.
func (h *Host) argCount(sel cmd.Selection) int {
	if len(sel.Args) == 0 {
		return 1
	}
	n, err := h.parseExpr(sel.Args[0])
	if err != nil || n < 1 {
		return 1
	}
	return int(n)
}

// cursor resolves the optional leading address argument of a windowed
// command: "." means the current PC, "$" or nothing continues from the
// previous window.
func (h *Host) cursor(args []string, cont uint16) (uint16, error) {
	switch {
	case len(args) == 0 || args[0] == "$":
		if cont == 0 {
			return h.cpu.Reg.PC, nil
		}
		return cont, nil
	case args[0] == ".":
		return h.cpu.Reg.PC, nil
	default:
		return h.parseAddr(args[0])
	}
}

func (h *Host) cmdHelp(sel cmd.Selection) error {
	if len(sel.Args) > 0 {
		s, err := cmds.Lookup(strings.Join(sel.Args, " "))
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		if s.Command.HelpText != "" {
			h.printf("Usage: %s\n\n", s.Command.HelpText)
		}
		if s.Command.Description != "" {
			h.printf("%s\n", s.Command.Description)
		}
		return nil
	}

	h.println("nes6502 commands:")
	for _, c := range helpTopics {
		h.printf("    %-15s  %s\n", c[0], c[1])
	}
	return nil
}

var helpTopics = [][2]string{
	{"breakpoint", "Breakpoint commands"},
	{"databreakpoint", "Data breakpoint commands"},
	{"disassemble", "Disassemble code"},
	{"evaluate", "Evaluate an expression"},
	{"execute", "Execute a command script file"},
	{"interrupt", "Interrupt commands"},
	{"load", "Load a binary file"},
	{"memory", "Memory commands"},
	{"quit", "Quit the program"},
	{"register", "View or change register values"},
	{"reset", "Reset the CPU"},
	{"run", "Run the CPU"},
	{"set", "Set a configuration variable"},
	{"step", "Step the debugger"},
	{"trace", "Execution trace commands"},
}

func (h *Host) cmdBreakpointList(sel cmd.Selection) error {
	bps := h.debugger.GetBreakpoints()
	if len(bps) == 0 {
		h.println("No breakpoints set.")
		return nil
	}
	for _, b := range bps {
		h.printf("$%04X  enabled=%v\n", b.Address, !b.Disabled)
	}
	return nil
}

func (h *Host) cmdBreakpointAdd(sel cmd.Selection) error {
	if addr, ok := h.argAddr(sel, 0); ok {
		h.debugger.AddBreakpoint(addr)
		h.printf("Breakpoint added at $%04X.\n", addr)
	}
	return nil
}

func (h *Host) cmdBreakpointRemove(sel cmd.Selection) error {
	if addr, ok := h.argAddr(sel, 0); ok {
		if h.debugger.GetBreakpoint(addr) == nil {
			h.printf("No breakpoint was set on $%04X.\n", addr)
			return nil
		}
		h.debugger.RemoveBreakpoint(addr)
		h.printf("Breakpoint at $%04X removed.\n", addr)
	}
	return nil
}

func (h *Host) cmdBreakpointEnable(sel cmd.Selection) error {
	return h.switchBreakpoint(sel, false)
}

func (h *Host) cmdBreakpointDisable(sel cmd.Selection) error {
	return h.switchBreakpoint(sel, true)
}

func (h *Host) switchBreakpoint(sel cmd.Selection, disable bool) error {
	addr, ok := h.argAddr(sel, 0)
	if !ok {
		return nil
	}
	b := h.debugger.GetBreakpoint(addr)
	if b == nil {
		h.printf("No breakpoint was set on $%04X.\n", addr)
		return nil
	}
	b.Disabled = disable
	h.printf("Breakpoint at $%04X %s.\n", addr, enabledString(!disable))
	return nil
}

func (h *Host) cmdDataBreakpointList(sel cmd.Selection) error {
	bps := h.debugger.GetDataBreakpoints()
	if len(bps) == 0 {
		h.println("No data breakpoints set.")
		return nil
	}
	for _, b := range bps {
		if b.Conditional {
			h.printf("$%04X  enabled=%-5v  value=$%02X\n", b.Address, !b.Disabled, b.Value)
		} else {
			h.printf("$%04X  enabled=%-5v\n", b.Address, !b.Disabled)
		}
	}
	return nil
}

func (h *Host) cmdDataBreakpointAdd(sel cmd.Selection) error {
	addr, ok := h.argAddr(sel, 0)
	if !ok {
		return nil
	}

	if len(sel.Args) > 1 {
		v, err := h.parseExpr(sel.Args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		h.debugger.AddConditionalDataBreakpoint(addr, byte(v))
		h.printf("Conditional data breakpoint added at $%04X for value $%02X.\n", addr, byte(v))
		return nil
	}

	h.debugger.AddDataBreakpoint(addr)
	h.printf("Data breakpoint added at $%04X.\n", addr)
	return nil
}

func (h *Host) cmdDataBreakpointRemove(sel cmd.Selection) error {
	if addr, ok := h.argAddr(sel, 0); ok {
		if h.debugger.GetDataBreakpoint(addr) == nil {
			h.printf("No data breakpoint was set on $%04X.\n", addr)
			return nil
		}
		h.debugger.RemoveDataBreakpoint(addr)
		h.printf("Data breakpoint at $%04X removed.\n", addr)
	}
	return nil
}

func (h *Host) cmdDataBreakpointEnable(sel cmd.Selection) error {
	return h.switchDataBreakpoint(sel, false)
}

func (h *Host) cmdDataBreakpointDisable(sel cmd.Selection) error {
	return h.switchDataBreakpoint(sel, true)
}

func (h *Host) switchDataBreakpoint(sel cmd.Selection, disable bool) error {
	addr, ok := h.argAddr(sel, 0)
	if !ok {
		return nil
	}
	b := h.debugger.GetDataBreakpoint(addr)
	if b == nil {
		h.printf("No data breakpoint was set on $%04X.\n", addr)
		return nil
	}
	b.Disabled = disable
	h.printf("Data breakpoint at $%04X %s.\n", addr, enabledString(!disable))
	return nil
}

func enabledString(on bool) string {
	if on {
		return "enabled"
	}
	return "disabled"
}

func (h *Host) cmdDisassemble(sel cmd.Selection) error {
	addr, err := h.cursor(sel.Args, h.nextDisasm)
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	lines := h.settings.DisasmLines
	if len(sel.Args) > 1 {
		if n, err := h.parseExpr(sel.Args[1]); err == nil && n > 0 {
			lines = int(n)
		}
	}

	for i := 0; i < lines; i++ {
		h.println(h.sourceLine(addr, 0))
		addr = h.cpu.NextAddr(addr)
	}

	h.nextDisasm = addr
	h.lastCmd.Args = []string{"$", fmt.Sprintf("%d", lines)}
	return nil
}

func (h *Host) cmdEvaluate(sel cmd.Selection) error {
	if len(sel.Args) == 0 {
		h.showUsage(sel.Command)
		return nil
	}

	v, err := h.parseExpr(strings.Join(sel.Args, " "))
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}
	h.printf("$%04X\n", uint16(v))
	return nil
}

func (h *Host) cmdExecute(sel cmd.Selection) error {
	if len(sel.Args) == 0 {
		h.showUsage(sel.Command)
		return nil
	}

	file, err := os.Open(sel.Args[0])
	if err != nil {
		h.printf("Failed to open '%s': %v\n", filepath.Base(sel.Args[0]), err)
		return nil
	}
	defer file.Close()

	h.RunCommands(file, h.out, false)
	return nil
}

func (h *Host) cmdInterruptIRQ(sel cmd.Selection) error {
	h.cpu.IRQ()
	h.showPC()
	return nil
}

func (h *Host) cmdInterruptNMI(sel cmd.Selection) error {
	h.cpu.NMI()
	h.showPC()
	return nil
}

func (h *Host) cmdLoad(sel cmd.Selection) error {
	if len(sel.Args) < 2 {
		h.showUsage(sel.Command)
		return nil
	}

	addr, ok := h.argAddr(sel, 1)
	if !ok {
		return nil
	}

	filename := sel.Args[0]
	data, err := os.ReadFile(filename)
	if err != nil {
		h.printf("Failed to read '%s': %v\n", filepath.Base(filename), err)
		return nil
	}
	if len(data) > 0x10000-int(addr) {
		h.printf("File '%s' exceeds memory.\n", filepath.Base(filename))
		return nil
	}

	h.mem.StoreBytes(addr, data)
	h.cpu.SetPC(addr)
	h.printf("Loaded '%s' to $%04X..$%04X\n", filepath.Base(filename), addr,
		int(addr)+len(data)-1)
	return nil
}

func (h *Host) cmdMemoryDump(sel cmd.Selection) error {
	addr, err := h.cursor(sel.Args, h.nextDump)
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	n := uint16(h.settings.MemDumpBytes)
	if len(sel.Args) > 1 {
		v, err := h.parseExpr(sel.Args[1])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		n = uint16(v)
	}

	h.dumpMemory(addr, n)

	h.nextDump = addr + n
	h.lastCmd.Args = []string{"$", fmt.Sprintf("%d", n)}
	return nil
}

func (h *Host) cmdMemorySet(sel cmd.Selection) error {
	if len(sel.Args) < 2 {
		h.showUsage(sel.Command)
		return nil
	}

	addr, ok := h.argAddr(sel, 0)
	if !ok {
		return nil
	}

	for i, s := range sel.Args[1:] {
		v, err := h.parseExpr(s)
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		h.mem.Write(addr+uint16(i), byte(v))
	}

	h.printf("%d byte(s) set starting at $%04X.\n", len(sel.Args)-1, addr)
	return nil
}

func (h *Host) cmdQuit(sel cmd.Selection) error {
	return errors.New("exiting program")
}

func (h *Host) cmdRegister(sel cmd.Selection) error {
	if len(sel.Args) == 0 {
		h.println(h.sourceLine(h.cpu.Reg.PC, displayAll))
		return nil
	}
	if len(sel.Args) < 2 {
		h.showUsage(sel.Command)
		return nil
	}

	v, err := h.parseExpr(sel.Args[1])
	if err != nil {
		h.printf("%v\n", err)
		return nil
	}

	reg := &h.cpu.Reg
	name := strings.ToUpper(sel.Args[0])
	switch name {
	case "A":
		reg.A = byte(v)
	case "X":
		reg.X = byte(v)
	case "Y":
		reg.Y = byte(v)
	case "SP":
		reg.SP = byte(v)
	case "PC", ".":
		reg.PC = uint16(v)
	case "N":
		reg.P.SetSign(v != 0)
	case "Z":
		reg.P.SetZero(v != 0)
	case "C":
		reg.P.SetCarry(v != 0)
	case "I":
		reg.P.SetInterruptDisable(v != 0)
	case "D":
		reg.P.SetDecimal(v != 0)
	case "V":
		reg.P.SetOverflow(v != 0)
	default:
		h.printf("Unknown register or flag '%s'.\n", sel.Args[0])
		return nil
	}

	h.printf("Register %s set.\n", name)
	h.showPC()
	return nil
}

func (h *Host) cmdReset(sel cmd.Selection) error {
	h.cpu.Reset()
	h.printf("CPU reset. PC = $%04X.\n", h.cpu.Reg.PC)
	h.nextDisasm = h.cpu.Reg.PC
	return nil
}

func (h *Host) cmdRun(sel cmd.Selection) error {
	if len(sel.Args) > 0 {
		pc, err := h.parseAddr(sel.Args[0])
		if err != nil {
			h.printf("%v\n", err)
			return nil
		}
		h.cpu.SetPC(pc)
	}

	h.printf("Running from $%04X. Press ctrl-C to break.\n", h.cpu.Reg.PC)

	h.runCPU(func() { h.cpu.Step() })

	if h.cpu.Halted() {
		h.printf("CPU jammed at $%04X. Reset to continue.\n", h.cpu.Reg.PC)
	}
	h.nextDisasm = h.cpu.Reg.PC
	return nil
}

func (h *Host) cmdSet(sel cmd.Selection) error {
	switch len(sel.Args) {
	case 0:
		h.println("Variables:")
		h.settings.display(h.out)
		h.flush()
	case 1:
		h.showUsage(sel.Command)
	default:
		key := strings.ToLower(sel.Args[0])
		value := strings.Join(sel.Args[1:], " ")
		if err := h.settings.assign(key, value, h.parseExpr); err != nil {
			h.printf("%v\n", err)
			return nil
		}
		h.println("Setting updated.")
	}
	return nil
}

func (h *Host) cmdStepIn(sel cmd.Selection) error {
	h.stepCPU(h.argCount(sel), func() { h.cpu.Step() })
	return nil
}

func (h *Host) cmdStepOver(sel cmd.Selection) error {
	h.stepCPU(h.argCount(sel), h.stepOver)
	return nil
}

func (h *Host) cmdTraceOn(sel cmd.Selection) error {
	w := io.Writer(os.Stderr)
	if len(sel.Args) > 0 {
		file, err := os.Create(sel.Args[0])
		if err != nil {
			h.printf("Failed to create '%s': %v\n", filepath.Base(sel.Args[0]), err)
			return nil
		}
		h.traceFile = file
		w = file
	}

	h.cpu.AttachTracer(disasm.NewLogger(w, h.mem))
	h.println("Execution trace enabled.")
	return nil
}

func (h *Host) cmdTraceOff(sel cmd.Selection) error {
	h.cpu.DetachTracer()
	if h.traceFile != nil {
		h.traceFile.Close()
		h.traceFile = nil
	}
	h.println("Execution trace disabled.")
	return nil
}

// runCPU drives the CPU with 'step' until a breakpoint fires, the CPU
// jams, or Ctrl-C interrupts the run.
func (h *Host) runCPU(step func()) {
	h.state = stateRunning
	for h.state == stateRunning && !h.cpu.Halted() {
		step()
	}
	h.state = stateIdle
}

// stepCPU runs 'count' debugger steps, echoing the final MaxStepLines
// instruction lines.
func (h *Host) stepCPU(count int, step func()) {
	h.state = stateRunning
	for n := count; n > 0 && h.state == stateRunning && !h.cpu.Halted(); n-- {
		step()
		switch {
		case n == h.settings.MaxStepLines+1:
			h.println("...")
		case n <= h.settings.MaxStepLines:
			h.showPC()
		}
	}
	h.state = stateIdle
	h.nextDisasm = h.cpu.Reg.PC
}

// stepOver executes one instruction. A JSR runs to its matching return:
// the subroutine's instructions execute until control falls on the
// instruction after the JSR, a breakpoint fires, or the CPU jams.
func (h *Host) stepOver() {
	inst := h.cpu.GetInstruction(h.cpu.Reg.PC)
	resume := h.cpu.Reg.PC + uint16(inst.Length)

	h.cpu.Step()
	if inst.Name != "JSR" {
		return
	}

	for h.state == stateRunning && !h.cpu.Halted() && h.cpu.Reg.PC != resume {
		h.cpu.Step()
	}
}

func (h *Host) parseAddr(expr string) (uint16, error) {
	v, err := h.parseExpr(expr)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		v += 0x10000
	}
	return uint16(v), nil
}

// sourceLine formats one disassembled instruction line, optionally
// trailed by the register file and cycle counter.
func (h *Host) sourceLine(addr uint16, flags displayFlags) string {
	text, _ := disasm.Disassemble(h.mem, addr)
	code := disasm.GetInstructionBytes(h.mem, addr)

	var sb strings.Builder
	fmt.Fprintf(&sb, "%04X-   ", addr)
	for _, b := range code {
		fmt.Fprintf(&sb, "%02X ", b)
	}
	sb.WriteString(strings.Repeat("   ", 3-len(code)))
	fmt.Fprintf(&sb, "   %-15s", text)

	if flags&displayRegisters != 0 {
		sb.WriteByte(' ')
		sb.WriteString(disasm.GetRegisterString(&h.cpu.Reg))
	}
	if flags&displayCycles != 0 {
		fmt.Fprintf(&sb, " C=%-12d", h.cpu.Cycles)
	}
	return sb.String()
}

// dumpMemory prints a hex-and-ASCII dump of 'n' bytes of memory,
// 16 bytes per aligned row, clipped at the top of the address space.
func (h *Host) dumpMemory(addr, n uint16) {
	if n == 0 {
		return
	}

	first := uint32(addr)
	limit := first + uint32(n)
	if limit > 0x10000 {
		limit = 0x10000
	}

	for row := first &^ 0xf; row < limit; row += 16 {
		var hexCol, textCol strings.Builder
		for i := uint32(0); i < 16; i++ {
			if i == 8 {
				hexCol.WriteByte(' ')
			}
			a := row + i
			if a < first || a >= limit {
				hexCol.WriteString("   ")
				textCol.WriteByte(' ')
				continue
			}
			v := h.mem.Read(uint16(a))
			fmt.Fprintf(&hexCol, "%02X ", v)
			if v >= 32 && v < 127 {
				textCol.WriteByte(v)
			} else {
				textCol.WriteByte('.')
			}
		}
		h.printf("%04X-   %-49s %s\n", uint16(row), hexCol.String(), textCol.String())
	}
}

// OnBreakpoint implements cpu.DebuggerHandler.
func (h *Host) OnBreakpoint(c *cpu.CPU, b *cpu.Breakpoint) {
	h.state = stateInterrupted
	h.printf("Breakpoint hit at $%04X.\n", b.Address)
	h.showPC()
}

// OnDataBreakpoint implements cpu.DebuggerHandler.
func (h *Host) OnDataBreakpoint(c *cpu.CPU, b *cpu.DataBreakpoint) {
	h.state = stateInterrupted
	h.printf("Data breakpoint hit on address $%04X.\n", b.Address)
	if c.LastPC != c.Reg.PC {
		h.println(h.sourceLine(c.LastPC, displayAll))
	}
	h.showPC()
}
