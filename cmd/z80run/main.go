// Command z80run loads a raw Z80 binary image and either runs it, with
// optional console and RNG peripherals, or disassembles it. Grounded on the CLI shape
// of z80opt's cobra rootCmd with subcommands (cmd/z80opt/main.go).
package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"z80core/cpu"
	"z80core/decode"
	"z80core/machine"
	"z80core/memory"
	"z80core/peripherals"
	"z80core/ports"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "z80run",
		Short: "Run or disassemble a raw Z80 binary image",
	}

	var origin uint16
	var memSize int
	var maxSteps int
	var withConsole bool
	var withRNG bool
	var consolePort byte
	var rngPort byte

	runCmd := &cobra.Command{
		Use:   "run [image]",
		Short: "Load a binary image and execute it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("z80run: %w", err)
			}

			mem := memory.New(memSize)
			mem.Load(img, origin)

			pt := &ports.Table{}
			var console *peripherals.Console
			if withConsole {
				console, err = peripherals.NewConsole()
				if err != nil {
					return fmt.Errorf("z80run: %w", err)
				}
				defer console.Stop()
				pt.InstallInput(consolePort, console)
				pt.InstallOutput(consolePort, console)
			}
			if withRNG {
				pt.InstallInput(rngPort, peripherals.RNG{})
			}

			c := cpu.New(mem, pt)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				// Cancel ctx when the loop ends for any reason, so the
				// console goroutine below also returns.
				defer stop()
				return machine.Run(c, origin, maxSteps)
			})
			if console != nil {
				g.Go(func() error {
					<-gctx.Done()
					console.Stop()
					return nil
				})
			}

			if err := g.Wait(); err != nil && err != machine.ErrHalted {
				return fmt.Errorf("z80run: %w", err)
			}
			return nil
		},
	}
	runCmd.Flags().Uint16Var(&origin, "origin", 0, "load address and entry point")
	runCmd.Flags().IntVar(&memSize, "mem-size", memory.DefaultSize, "memory size in bytes")
	runCmd.Flags().IntVar(&maxSteps, "max-steps", 0, "instruction step budget (0 = unbounded)")
	runCmd.Flags().BoolVar(&withConsole, "console", false, "attach a raw-mode console peripheral")
	runCmd.Flags().BoolVar(&withRNG, "rng", false, "attach a pseudo-random-byte peripheral")
	runCmd.Flags().Uint8Var(&consolePort, "console-port", 0x01, "port number for the console peripheral")
	runCmd.Flags().Uint8Var(&rngPort, "rng-port", 0x02, "port number for the RNG peripheral")

	var disasmCount int

	disasmCmd := &cobra.Command{
		Use:   "disasm [image]",
		Short: "Decode instructions from a binary image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("z80run: %w", err)
			}

			mem := memory.New(len(img) + int(origin))
			mem.Load(img, origin)
			c := cpu.New(mem, &ports.Table{})

			addr := origin
			for i := 0; i < disasmCount; i++ {
				start := addr
				cursor := &cliCursor{c: c, addr: addr}
				instr := decode.Decode(cursor)
				fmt.Printf("%04X: %#v\n", start, instr)
				addr = cursor.addr
			}
			return nil
		},
	}
	disasmCmd.Flags().Uint16Var(&origin, "origin", 0, "load address and disassembly start")
	disasmCmd.Flags().IntVar(&disasmCount, "count", 16, "number of instructions to decode")

	rootCmd.AddCommand(runCmd, disasmCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// cliCursor is disasm's own decode.Reader, independent of machine's
// unexported cursor type.
type cliCursor struct {
	c    *cpu.CPU
	addr uint16
}

func (cur *cliCursor) ReadByte() byte {
	v := cur.c.Mem.Read(cur.addr)
	cur.addr++
	return v
}
