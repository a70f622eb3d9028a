package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Urethramancer/fass/assembler"
	"github.com/Urethramancer/fass/disassembler"
	"github.com/grimdork/climate/arg"
	"github.com/k0kubun/pp/v3"
)

func main() {
	opt := arg.New("fass")
	opt.SetDefaultHelp(true)
	opt.SetOption(arg.GroupDefault, "s", "strict", "Write no output if there were any errors.", false, false, arg.VarBool, nil)
	opt.SetOption(arg.GroupDefault, "l", "listing", "Print a listing of the compiled code.", false, false, arg.VarBool, nil)
	opt.SetOption(arg.GroupDefault, "y", "symbols", "Print the symbol table.", false, false, arg.VarBool, nil)
	opt.SetOption(arg.GroupDefault, "q", "quiet", "Don't print diagnostics.", false, false, arg.VarBool, nil)
	opt.SetPositional("SOURCE", "Source file to compile.", "", true, arg.VarString)
	opt.SetPositional("OUTPUT", "Binary file to write. Hex is printed if omitted.", "", false, arg.VarString)

	err := opt.Parse(os.Args)
	if err != nil {
		if errors.Is(err, arg.ErrNoArgs) {
			opt.PrintHelp()
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	source := opt.GetPosString("SOURCE")
	data, err := os.ReadFile(source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading source file: %v\n", err)
		os.Exit(1)
	}

	opts := []assembler.Option{assembler.WithStrict(opt.GetBool("strict"))}
	if !opt.GetBool("quiet") {
		opts = append(opts, assembler.WithSink(assembler.NewWriterSink(os.Stderr)))
	}
	res, err := assembler.New(opts...).Assemble(string(data))
	if errors.Is(err, assembler.ErrStrict) {
		fmt.Fprintf(os.Stderr, "%s: %d error(s), no output written\n", source, len(res.Diagnostics))
		os.Exit(2)
	}

	if opt.GetBool("symbols") {
		pp.Fprintf(os.Stderr, "Symbols: %v\n", res.Symbols)
	}
	if opt.GetBool("listing") {
		text, err := disassembler.Listing(res.Code, res.Origin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Listing error: %v\n", err)
		} else {
			fmt.Print(text)
		}
	}

	output := opt.GetPosString("OUTPUT")
	if output == "" {
		if !opt.GetBool("listing") {
			printHex(res.Code)
		}
		return
	}
	if err := os.WriteFile(output, res.Code, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
		os.Exit(1)
	}
}

// printHex prints the code as hex bytes, 16 per line.
func printHex(code []byte) {
	for i := 0; i < len(code); i += 16 {
		end := min(i+16, len(code))
		parts := make([]string, 0, end-i)
		for _, b := range code[i:end] {
			parts = append(parts, fmt.Sprintf("%02X", b))
		}
		fmt.Println(strings.Join(parts, " "))
	}
}
