// Copyright 2026 The nes6502 authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import "github.com/beevik/cmd"

// The host command tree. Each command stores its handler as tree data;
// the dispatch loop pulls it back out and invokes it.
var cmds *cmd.Tree

var breakpointCmds = cmd.NewTree("Breakpoint", []cmd.Command{
	{
		Name:        "list",
		Brief:       "List breakpoints",
		Description: "List all current breakpoints.",
		HelpText:    "breakpoint list",
		Data:        (*Host).cmdBreakpointList,
	},
	{
		Name:  "add",
		Brief: "Add a breakpoint",
		Description: "Add a breakpoint at the specified address. The" +
			" breakpoint starts enabled.",
		HelpText: "breakpoint add <address>",
		Data:     (*Host).cmdBreakpointAdd,
	},
	{
		Name:        "remove",
		Brief:       "Remove a breakpoint",
		Description: "Remove a breakpoint at the specified address.",
		HelpText:    "breakpoint remove <address>",
		Data:        (*Host).cmdBreakpointRemove,
	},
	{
		Name:        "enable",
		Brief:       "Enable a breakpoint",
		Description: "Enable a previously added breakpoint.",
		HelpText:    "breakpoint enable <address>",
		Data:        (*Host).cmdBreakpointEnable,
	},
	{
		Name:  "disable",
		Brief: "Disable a breakpoint",
		Description: "Disable a previously added breakpoint without" +
			" removing it.",
		HelpText: "breakpoint disable <address>",
		Data:     (*Host).cmdBreakpointDisable,
	},
})

var dataBreakpointCmds = cmd.NewTree("Data breakpoint", []cmd.Command{
	{
		Name:        "list",
		Brief:       "List data breakpoints",
		Description: "List all current data breakpoints.",
		HelpText:    "databreakpoint list",
		Data:        (*Host).cmdDataBreakpointList,
	},
	{
		Name:  "add",
		Brief: "Add a data breakpoint",
		Description: "Add a new data breakpoint at the specified memory" +
			" address. When the CPU stores data at this address, the" +
			" breakpoint will stop the CPU. Optionally, a byte value may be" +
			" specified, and the CPU will stop only when this value is" +
			" stored. The data breakpoint starts enabled.",
		HelpText: "databreakpoint add <address> [<value>]",
		Data:     (*Host).cmdDataBreakpointAdd,
	},
	{
		Name:  "remove",
		Brief: "Remove a data breakpoint",
		Description: "Remove a previously added data breakpoint at the" +
			" specified memory address.",
		HelpText: "databreakpoint remove <address>",
		Data:     (*Host).cmdDataBreakpointRemove,
	},
	{
		Name:        "enable",
		Brief:       "Enable a data breakpoint",
		Description: "Enable a previously added data breakpoint.",
		HelpText:    "databreakpoint enable <address>",
		Data:        (*Host).cmdDataBreakpointEnable,
	},
	{
		Name:        "disable",
		Brief:       "Disable a data breakpoint",
		Description: "Disable a previously added data breakpoint.",
		HelpText:    "databreakpoint disable <address>",
		Data:        (*Host).cmdDataBreakpointDisable,
	},
})

var interruptCmds = cmd.NewTree("Interrupt", []cmd.Command{
	{
		Name:  "irq",
		Brief: "Deliver a maskable interrupt",
		Description: "Deliver a maskable interrupt request to the CPU. The" +
			" request is ignored while the interrupt disable flag is set.",
		HelpText: "interrupt irq",
		Data:     (*Host).cmdInterruptIRQ,
	},
	{
		Name:        "nmi",
		Brief:       "Deliver a non-maskable interrupt",
		Description: "Deliver a non-maskable interrupt to the CPU.",
		HelpText:    "interrupt nmi",
		Data:        (*Host).cmdInterruptNMI,
	},
})

var memoryCmds = cmd.NewTree("Memory", []cmd.Command{
	{
		Name:  "dump",
		Brief: "Dump memory at address",
		Description: "Dump the contents of memory starting from the" +
			" specified address. The number of bytes to dump may be" +
			" specified as an option. If no address is specified, the" +
			" memory dump continues from where the last dump left off.",
		HelpText: "memory dump [<address>] [<bytes>]",
		Data:     (*Host).cmdMemoryDump,
	},
	{
		Name:  "set",
		Brief: "Set memory at address",
		Description: "Set the contents of memory starting from the" +
			" specified address. The values to assign should be a series of" +
			" space-separated byte values. You may use an expression for" +
			" each byte value.",
		HelpText: "memory set <address> <byte> [<byte> ...]",
		Data:     (*Host).cmdMemorySet,
	},
})

var stepCmds = cmd.NewTree("Step", []cmd.Command{
	{
		Name:  "in",
		Brief: "Step into next instruction",
		Description: "Step the CPU by a single instruction. If the" +
			" instruction is a subroutine call, step into the subroutine." +
			" The number of steps may be specified as an option.",
		HelpText: "step in [<count>]",
		Data:     (*Host).cmdStepIn,
	},
	{
		Name:  "over",
		Brief: "Step over next instruction",
		Description: "Step the CPU by a single instruction. If the" +
			" instruction is a subroutine call, step over the subroutine." +
			" The number of steps may be specified as an option.",
		HelpText: "step over [<count>]",
		Data:     (*Host).cmdStepOver,
	},
})

var traceCmds = cmd.NewTree("Trace", []cmd.Command{
	{
		Name:  "on",
		Brief: "Enable the execution trace log",
		Description: "Write one disassembled line per executed" +
			" instruction. The log goes to the named file, or to standard" +
			" error if no file is given.",
		HelpText: "trace on [<filename>]",
		Data:     (*Host).cmdTraceOn,
	},
	{
		Name:        "off",
		Brief:       "Disable the execution trace log",
		Description: "Stop writing the execution trace log.",
		HelpText:    "trace off",
		Data:        (*Host).cmdTraceOff,
	},
})

func init() {
	cmds = cmd.NewTree("nes6502", []cmd.Command{
		{
			Name:     "help",
			Shortcut: "?",
			Data:     (*Host).cmdHelp,
		},
		{
			Name:        "breakpoint",
			Shortcut:    "b",
			Brief:       "Breakpoint commands",
			Subcommands: breakpointCmds,
		},
		{
			Name:        "databreakpoint",
			Shortcut:    "db",
			Brief:       "Data breakpoint commands",
			Subcommands: dataBreakpointCmds,
		},
		{
			Name:     "disassemble",
			Shortcut: "d",
			Brief:    "Disassemble code",
			Description: "Disassemble machine code starting at the requested" +
				" address. The number of instruction lines to disassemble may" +
				" be specified as an option. If no address is specified, the" +
				" disassembly continues from where the last disassembly left" +
				" off.",
			HelpText: "disassemble [<address>] [<lines>]",
			Data:     (*Host).cmdDisassemble,
		},
		{
			Name:        "evaluate",
			Shortcut:    "e",
			Brief:       "Evaluate an expression",
			Description: "Evaluate a mathematical expression.",
			HelpText:    "evaluate <expression>",
			Data:        (*Host).cmdEvaluate,
		},
		{
			Name:  "execute",
			Brief: "Execute a command script file",
			Description: "Load a command script file from disk and execute" +
				" the commands it contains.",
			HelpText: "execute <filename>",
			Data:     (*Host).cmdExecute,
		},
		{
			Name:        "interrupt",
			Brief:       "Interrupt commands",
			Subcommands: interruptCmds,
		},
		{
			Name:  "load",
			Brief: "Load a binary file",
			Description: "Load the contents of a binary file into the" +
				" emulated system's memory at the specified address, and set" +
				" the program counter to that address.",
			HelpText: "load <filename> <address>",
			Data:     (*Host).cmdLoad,
		},
		{
			Name:        "memory",
			Brief:       "Memory commands",
			Subcommands: memoryCmds,
		},
		{
			Name:        "quit",
			Brief:       "Quit the program",
			Description: "Quit the program.",
			HelpText:    "quit",
			Data:        (*Host).cmdQuit,
		},
		{
			Name:     "register",
			Shortcut: "r",
			Brief:    "View or change register values",
			Description: "When used without arguments, this command displays" +
				" the current contents of the CPU registers. When used with" +
				" arguments, this command changes the value of a register or" +
				" one of the CPU's status flags. Allowed register names" +
				" include A, X, Y, PC and SP. Allowed status flag names" +
				" include N (Sign), Z (Zero), C (Carry)," +
				" I (InterruptDisable), D (Decimal) and V (Overflow).",
			HelpText: "register [<name> <value>]",
			Data:     (*Host).cmdRegister,
		},
		{
			Name:  "reset",
			Brief: "Reset the CPU",
			Description: "Reset the CPU: clear all registers and flags," +
				" release a jammed CPU, and reload the program counter from" +
				" the reset vector at $FFFC.",
			HelpText: "reset",
			Data:     (*Host).cmdReset,
		},
		{
			Name:  "run",
			Brief: "Run the CPU",
			Description: "Run the CPU until a breakpoint is hit, the CPU" +
				" jams, or the user types Ctrl-C.",
			HelpText: "run [<address>]",
			Data:     (*Host).cmdRun,
		},
		{
			Name:  "set",
			Brief: "Set a configuration variable",
			Description: "Set the value of a configuration variable. To see" +
				" the current values of all configuration variables, type set" +
				" without any arguments.",
			HelpText: "set [<var> <value>]",
			Data:     (*Host).cmdSet,
		},
		{
			Name:        "step",
			Brief:       "Step the debugger",
			Subcommands: stepCmds,
		},
		{
			Name:        "trace",
			Brief:       "Execution trace commands",
			Subcommands: traceCmds,
		},

		// Aliases for nested commands
		{Name: "ba", Alias: "breakpoint add"},
		{Name: "br", Alias: "breakpoint remove"},
		{Name: "bl", Alias: "breakpoint list"},
		{Name: "be", Alias: "breakpoint enable"},
		{Name: "bd", Alias: "breakpoint disable"},
		{Name: "dba", Alias: "databreakpoint add"},
		{Name: "dbr", Alias: "databreakpoint remove"},
		{Name: "dbl", Alias: "databreakpoint list"},
		{Name: "dbe", Alias: "databreakpoint enable"},
		{Name: "dbd", Alias: "databreakpoint disable"},
		{Name: "m", Alias: "memory dump"},
		{Name: "ms", Alias: "memory set"},
		{Name: "s", Alias: "step over"},
		{Name: "si", Alias: "step in"},
	})
}
