package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Urethramancer/fass/disassembler"
	"github.com/grimdork/climate/arg"
)

func main() {
	opt := arg.New("fassdis")
	opt.SetDefaultHelp(true)
	opt.SetOption(arg.GroupDefault, "o", "origin", "Load address of the first byte ($0600, 0x600 or 1536).", "0", false, arg.VarString, nil)
	opt.SetOption(arg.GroupDefault, "l", "listing", "Add addresses and bytes as comments.", false, false, arg.VarBool, nil)
	opt.SetPositional("INPUT", "Binary file to disassemble.", "", true, arg.VarString)
	opt.SetPositional("OUTPUT", "Source file to write. Printed if omitted.", "", false, arg.VarString)

	err := opt.Parse(os.Args)
	if err != nil {
		if errors.Is(err, arg.ErrNoArgs) {
			opt.PrintHelp()
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	origin, err := parseAddress(opt.GetString("origin"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid origin: %v\n", err)
		os.Exit(1)
	}

	// The binary is read as-is; the disassembler never modifies it.
	code, err := os.ReadFile(opt.GetPosString("INPUT"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input file: %v\n", err)
		os.Exit(1)
	}

	dis := disassembler.Disassemble
	if opt.GetBool("listing") {
		dis = disassembler.Listing
	}
	text, err := dis(code, origin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Disassembly error: %v\n", err)
		os.Exit(1)
	}

	outputFile := opt.GetPosString("OUTPUT")
	if outputFile == "" {
		fmt.Print(text)
		return
	}

	if err := os.WriteFile(outputFile, []byte(text), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Disassembly written to %s\n", outputFile)
}

// parseAddress accepts $hex as well as the prefixes strconv understands.
func parseAddress(s string) (int, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "$") {
		s = "0x" + s[1:]
	}
	v, err := strconv.ParseInt(s, 0, 32)
	if err != nil {
		return 0, err
	}
	if v < 0 || v > 0xFFFF {
		return 0, fmt.Errorf("%s is outside $0000-$FFFF", s)
	}
	return int(v), nil
}
