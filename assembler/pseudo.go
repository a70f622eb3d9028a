package assembler

import (
	"errors"

	"github.com/Urethramancer/fass/cpu"
)

// pseudoFunc rewrites a pseudo-instruction into a real mnemonic and operands.
type pseudoFunc func(ops []Operand) (string, []Operand, error)

// pseudoInstructions holds the readable aliases of the language. Like
// cpu.Instructions, entries can be added without touching the generator.
var pseudoInstructions = map[string]pseudoFunc{
	"GOTO":      alias("JMP"),
	"PUSH":      stackOp("PHA", "PHP"),
	"PULL":      stackOp("PLA", "PLP"),
	"CARRY":     flagOp("CLC", "SEC"),
	"INTERRUPT": flagOp("CLI", "SEI"),
	"DECIMAL":   flagOp("CLD", "SED"),
	"OVERFLOW":  flagOp("CLV", ""),
}

// isMnemonic reports whether s (upper case) names an instruction.
func isMnemonic(s string) bool {
	if cpu.IsMnemonic(s) {
		return true
	}
	_, ok := pseudoInstructions[s]
	return ok
}

func alias(mnemonic string) pseudoFunc {
	return func(ops []Operand) (string, []Operand, error) {
		return mnemonic, ops, nil
	}
}

// stackOp handles "push a" and "push flags".
func stackOp(acc, flags string) pseudoFunc {
	return func(ops []Operand) (string, []Operand, error) {
		if len(ops) != 1 || ops[0].Kind != OpRegister {
			return "", nil, errors.New("requires A or FLAGS")
		}
		switch ops[0].Register {
		case cpu.RegA:
			return acc, nil, nil
		case cpu.RegFlags:
			return flags, nil, nil
		}
		return "", nil, errors.New("requires A or FLAGS")
	}
}

// flagOp handles "carry 0" and "carry 1".
func flagOp(clear, set string) pseudoFunc {
	return func(ops []Operand) (string, []Operand, error) {
		if len(ops) != 1 || ops[0].Kind != OpNumber || ops[0].IsSymbolic() {
			return "", nil, errors.New("requires 0 or 1")
		}
		switch ops[0].Value {
		case 0:
			return clear, nil, nil
		case 1:
			if set == "" {
				return "", nil, errors.New("can't be set programmatically")
			}
			return set, nil, nil
		}
		return "", nil, errors.New("requires 0 or 1")
	}
}
