package nes

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/golang/glog"
	"golang.org/x/term"
)

var errQuit = errors.New("quit")

var stepArgRe = regexp.MustCompile(`^([0-9]+)([ds]?)$`)

// DebugConsole a NES console for debugging, you can execute some commands through stdio.
// commands:
//   s [N|Nd|Ns]:
//     execute N instruction(s), Nd prints a trace line per instruction,
//     Ns runs N seconds worth of CPU cycles.
//   p [cpu|ppu|bus|cartridge|wram|oam|stack]:
//     print.
//   br 0xADDR:
//     set a break point.
//   t:
//     print the trace line of the next instruction.
//   r:
//     reset.
//   q:
//     quit.
type DebugConsole struct {
	*Console
	breakpoints []uint16
	out         io.Writer
}

func NewDebugConsole(console *Console) *DebugConsole {
	return &DebugConsole{Console: console, out: os.Stdout}
}

// Run reads commands until q or the end of input. When stdin is a terminal it
// is put in raw mode for line editing and history.
func (c *DebugConsole) Run() error {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return c.run(bufio.NewScanner(os.Stdin))
	}
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to set raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)
	t := term.NewTerminal(struct {
		io.Reader
		io.Writer
	}{os.Stdin, os.Stdout}, ">> ")
	c.out = t
	defer func() { c.out = os.Stdout }()
	fmt.Fprintln(c.out, "Debugger mode, 'q' to quit")
	for {
		line, err := t.ReadLine()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := c.Exec(line); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			fmt.Fprintln(c.out, err)
		}
	}
}

func (c *DebugConsole) run(scanner *bufio.Scanner) error {
	fmt.Fprintln(c.out, "Debugger mode, 'q' to quit")
	for scanner.Scan() {
		if err := c.Exec(scanner.Text()); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			fmt.Fprintln(c.out, err)
		}
	}
	return scanner.Err()
}

// Exec runs one command line.
func (c *DebugConsole) Exec(line string) error {
	args := strings.Fields(line)
	if len(args) == 0 {
		return nil
	}
	switch args[0] {
	case "p", "print":
		c.printCommand(args)
	case "s", "step":
		instructions, cycles, err := c.stepCommand(args)
		if err != nil {
			return err
		}
		c.basePrint()
		fmt.Fprintf(c.out, "Executed %d instructions, %d CPU cycles, %d PPU cycles.\n", instructions, cycles, 3*cycles)
	case "br", "breakpoint":
		return c.breakPointCommand(args)
	case "t", "trace":
		fmt.Fprintln(c.out, c.Trace())
	case "r", "reset":
		c.Reset()
	case "q", "quit":
		fmt.Fprintln(c.out, "Quitting.")
		return errQuit
	default:
		return fmt.Errorf("unknown command %q", line)
	}
	return nil
}

func (c *DebugConsole) basePrint() {
	fmt.Fprintln(c.out, "--------------------------------------------------")
	fmt.Fprintf(c.out, "Executed cycles: %d\n", c.CPU.Cycles())
	fmt.Fprintf(c.out, "Rendered frame: %d\n", c.PPU.Frame())
	fmt.Fprintln(c.out, "Next: "+c.Trace())
	r := c.CPU.Registers()
	fmt.Fprintf(c.out, "CPU: PC=0x%04x, A=0x%02x, X=0x%02x, Y=0x%02x, S=0x%02x, P=0x%02x\n",
		r.PC, r.A, r.X, r.Y, r.S, r.P)
	fmt.Fprintf(c.out, "PPU: %v\n", c.PPU)
}

// dump prints n bytes from address, 16 per row.
func (c *DebugConsole) dump(read func(uint16) byte, address uint16, n int) {
	for i := 0; i < n; i++ {
		if i%16 == 0 {
			if i > 0 {
				fmt.Fprintln(c.out)
			}
			fmt.Fprintf(c.out, "0x%04x:", address+uint16(i))
		}
		fmt.Fprintf(c.out, " %02x", read(address+uint16(i)))
	}
	fmt.Fprintln(c.out)
}

func (c *DebugConsole) printCommand(args []string) {
	if len(args) < 2 {
		c.basePrint()
		return
	}
	switch args[1] {
	case "c", "cpu":
		fmt.Fprintf(c.out, "%+v, cycles=%d\n", c.CPU.Registers(), c.CPU.Cycles())
	case "p", "ppu":
		fmt.Fprintf(c.out, "%v\n", c.PPU)
	case "b", "bus":
		fmt.Fprintf(c.out, "clocks=%d, pad0=0x%02x, pad1=0x%02x\n",
			c.Bus.Clocks(), c.Bus.Controller(0).State(), c.Bus.Controller(1).State())
	case "ca", "cartridge":
		fmt.Fprintf(c.out, "mapper=%d, PRG=%dx16KB, CHR=%dx8KB, mirroring=%v\n",
			c.Cartridge.MapperNumber(), c.Cartridge.PRGBanks(), c.Cartridge.CHRBanks(), c.Cartridge.Mirroring())
	case "wr", "wram":
		c.dump(c.Bus.peek, 0x0000, ramSize)
	case "st", "stack":
		c.dump(c.Bus.peek, stackBase, 256)
	case "o", "oam":
		c.dump(func(a uint16) byte { return c.PPU.oam[a] }, 0, len(c.PPU.oam))
	default:
		fmt.Fprintf(c.out, "unknown target %q\n", args[1])
	}
}

func (c *DebugConsole) checkBreak() bool {
	for _, b := range c.breakpoints {
		if b == c.CPU.PC() {
			fmt.Fprintf(c.out, "Break at: 0x%04x\n", b)
			return true
		}
	}
	return false
}

// stepCommand returns the number of instructions and CPU cycles executed.
func (c *DebugConsole) stepCommand(args []string) (int, int, error) {
	if len(args) < 2 {
		return 1, c.StepInstruction(), nil
	}
	m := stepArgRe.FindStringSubmatch(args[1])
	if m == nil {
		return 0, 0, fmt.Errorf("invalid step count %q", args[1])
	}
	num, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid step count %q: %w", args[1], err)
	}
	instructions, cycles := 0, 0
	switch m[2] {
	case "s":
		// s means seconds but this doesn't execute 1 sec, this executes CPUFrequency * num
		// This will be 60 * num frames execution.
		steps := CPUFrequency * num
		for cycles < steps {
			cycles += c.StepInstruction()
			instructions++
			if c.checkBreak() {
				break
			}
		}
	case "d":
		// debug -> steps with trace lines.
		for i := 0; i < num; i++ {
			fmt.Fprintln(c.out, c.Trace())
			cycles += c.StepInstruction()
			instructions++
			if c.checkBreak() {
				break
			}
		}
	default:
		for i := 0; i < num; i++ {
			cycles += c.StepInstruction()
			instructions++
			if c.checkBreak() {
				break
			}
		}
	}
	return instructions, cycles, nil
}

func (c *DebugConsole) breakPointCommand(args []string) error {
	if len(args) < 2 {
		return errors.New("br needs an address")
	}
	var address uint16
	if _, err := fmt.Sscanf(args[1], "0x%x", &address); err != nil {
		return fmt.Errorf("invalid address %q: %w", args[1], err)
	}
	c.breakpoints = append(c.breakpoints, address)
	glog.V(1).Infof("Breakpoint set: 0x%04x", address)
	return nil
}
