package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/caffeineduck/ecall/env"
	"github.com/caffeineduck/ecall/gas"
	"github.com/caffeineduck/ecall/storage"
)

const scratchMemorySize = 64 * 1024

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive syscall REPL with persistent state",
	Long: `Start an interactive session driving syscalls against a scratch VM:
64 KiB of guest memory, six argument registers, and an in-memory store
that persists across calls.

Commands:
  call <symbol> [reg...]   dispatch a syscall with the given registers
  poke <addr> <hex>        write hex bytes into guest memory
  peek <addr> <len>        dump guest memory
  gas [value]              show or set the gas budget per call
  readonly [on|off]        show or toggle the read-only flag
  list                     print the available syscalls
  help                     show this command summary

Type 'exit' or 'quit' to end the session, or press Ctrl+D.`,
}

func init() {
	replCmd.Run = runRepl
	replCmd.Flags().String("history", "", "History file path (default: ~/.ecall_history)")
	rootCmd.AddCommand(replCmd)
}

// scratchVM is the REPL's stand-in for a guest instance: flat memory, a
// gas register, and the six input registers set by the call command.
type scratchVM struct {
	mem  []byte
	gas  int64
	regs []uint64
}

func (vm *scratchVM) ReadInto(addr uint64, buf []byte) error {
	end := addr + uint64(len(buf))
	if end < addr || end > uint64(len(vm.mem)) {
		return fmt.Errorf("memory read [%d, %d) out of bounds", addr, end)
	}
	copy(buf, vm.mem[addr:end])
	return nil
}

func (vm *scratchVM) Gas() int64              { return vm.gas }
func (vm *scratchVM) SetGas(g int64)          { vm.gas = g }
func (vm *scratchVM) ReadInputRegs() []uint64 { return vm.regs }

// replExt is the execution context shared by every call in the session.
// The store persists; the meter is replaced per call.
type replExt struct {
	meter    *gas.Meter
	readOnly bool
	debug    []string
	store    storage.Store
}

func (e *replExt) GasMeter() *gas.Meter         { return e.meter }
func (e *replExt) ReadOnly() bool               { return e.readOnly }
func (e *replExt) AppendDebugBuffer(msg string) { e.debug = append(e.debug, msg) }
func (e *replExt) Store() storage.Store         { return e.store }

func runRepl(cmd *cobra.Command, args []string) {
	historyFile, _ := cmd.Flags().GetString("history")
	if historyFile == "" {
		home, _ := os.UserHomeDir()
		historyFile = filepath.Join(home, ".ecall_history")
	}

	table, err := buildTable(cmd, env.WithStrace())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	vm := &scratchVM{
		mem:  make([]byte, scratchMemorySize),
		regs: make([]uint64, table.BuildConfig().Convention.RegisterArgs),
	}
	ext := &replExt{store: storage.NewMemStore()}
	budget := uint64(1_000_000)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            ">>> ",
		HistoryFile:       historyFile,
		HistoryLimit:      1000,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing readline: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	fmt.Fprintf(os.Stderr, "ecall REPL, %d syscalls loaded (type 'help' for commands, Ctrl+D to exit)\n", table.Len())

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			if err == io.EOF {
				fmt.Println()
				break
			}
			fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		if err := replEval(table, vm, ext, &budget, line); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
}

func replEval(table *env.Table, vm *scratchVM, ext *replExt, budget *uint64, line string) error {
	fields := strings.Fields(line)
	cmd, rest := fields[0], fields[1:]

	switch cmd {
	case "call":
		return replCall(table, vm, ext, *budget, rest)
	case "poke":
		return replPoke(vm, rest)
	case "peek":
		return replPeek(vm, rest)
	case "gas":
		if len(rest) == 0 {
			fmt.Printf("gas budget: %d\n", *budget)
			return nil
		}
		v, err := strconv.ParseUint(rest[0], 0, 63)
		if err != nil {
			return fmt.Errorf("bad gas value %q: %w", rest[0], err)
		}
		*budget = v
		return nil
	case "readonly":
		if len(rest) == 0 {
			fmt.Printf("readonly: %v\n", ext.readOnly)
			return nil
		}
		switch rest[0] {
		case "on":
			ext.readOnly = true
		case "off":
			ext.readOnly = false
		default:
			return fmt.Errorf("readonly takes 'on' or 'off', got %q", rest[0])
		}
		return nil
	case "list":
		for _, sym := range table.Syscalls(true) {
			fmt.Println(sym)
		}
		return nil
	case "help":
		fmt.Print(replCmd.Long)
		fmt.Println()
		return nil
	default:
		return fmt.Errorf("unknown command %q (try 'help')", cmd)
	}
}

func replCall(table *env.Table, vm *scratchVM, ext *replExt, budget uint64, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: call <symbol> [reg...]")
	}
	symbol := args[0]
	if len(args)-1 > len(vm.regs) {
		return fmt.Errorf("at most %d registers, got %d", len(vm.regs), len(args)-1)
	}
	for i := range vm.regs {
		vm.regs[i] = 0
	}
	for i, a := range args[1:] {
		v, err := strconv.ParseUint(a, 0, 64)
		if err != nil {
			return fmt.Errorf("bad register value %q: %w", a, err)
		}
		vm.regs[i] = v
	}

	vm.gas = int64(budget)
	ext.meter = gas.NewMeter(budget)
	ext.debug = ext.debug[:0]

	ret, err := table.Dispatch(vm, ext, symbol)

	for _, msg := range ext.debug {
		fmt.Print(msg)
		if !strings.HasSuffix(msg, "\n") {
			fmt.Println()
		}
	}
	if err != nil {
		fmt.Printf("trap: %v (gas left %d)\n", err, vm.gas)
		return nil
	}
	if ret != nil {
		fmt.Printf("= %d (gas left %d)\n", *ret, vm.gas)
	} else {
		fmt.Printf("= ok (gas left %d)\n", vm.gas)
	}
	return nil
}

func replPoke(vm *scratchVM, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: poke <addr> <hex>")
	}
	addr, err := strconv.ParseUint(args[0], 0, 64)
	if err != nil {
		return fmt.Errorf("bad address %q: %w", args[0], err)
	}
	data, err := hex.DecodeString(args[1])
	if err != nil {
		return fmt.Errorf("bad hex payload: %w", err)
	}
	end := addr + uint64(len(data))
	if end < addr || end > uint64(len(vm.mem)) {
		return fmt.Errorf("write [%d, %d) out of bounds", addr, end)
	}
	copy(vm.mem[addr:], data)
	return nil
}

func replPeek(vm *scratchVM, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: peek <addr> <len>")
	}
	addr, err := strconv.ParseUint(args[0], 0, 64)
	if err != nil {
		return fmt.Errorf("bad address %q: %w", args[0], err)
	}
	length, err := strconv.ParseUint(args[1], 0, 64)
	if err != nil {
		return fmt.Errorf("bad length %q: %w", args[1], err)
	}
	end := addr + length
	if end < addr || end > uint64(len(vm.mem)) {
		return fmt.Errorf("read [%d, %d) out of bounds", addr, end)
	}
	fmt.Println(hex.Dump(vm.mem[addr:end]))
	return nil
}
