package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/a32ir/a32ir"
)

// unmarshalRegisters reads a YAML mapping of d0-d31 and q0-q15 to
// hexadecimal values. A q value is its high doubleword then its low one.
// Names that cover the same doubleword, such as q1 and d3, are rejected.
func unmarshalRegisters(raw []byte) (regs a32ir.Registers, err error) {
	var m map[string]string
	if err = yaml.Unmarshal(raw, &m); err != nil {
		return regs, fmt.Errorf("parsing registers: %w", err)
	}
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	var owner [len(regs.D)]string
	for _, name := range names {
		lower := strings.ToLower(name)
		first, count, err := registerSpan(lower)
		if err != nil {
			return regs, err
		}
		for d := first; d < first+count; d++ {
			if owner[d] != "" {
				return regs, fmt.Errorf("registers %s and %s overlap", owner[d], name)
			}
			owner[d] = name
		}
		if err = setRegister(&regs, lower, m[name]); err != nil {
			return regs, err
		}
	}
	return regs, nil
}

// registerSpan returns the doublewords covered by the register name.
func registerSpan(name string) (first, count int, err error) {
	if len(name) < 2 {
		return 0, 0, fmt.Errorf("invalid register name %q", name)
	}
	n, err := strconv.Atoi(name[1:])
	if err != nil || n < 0 {
		return 0, 0, fmt.Errorf("invalid register name %q", name)
	}
	var regs a32ir.Registers
	switch {
	case name[0] == 'd' && n < len(regs.D):
		return n, 1, nil
	case name[0] == 'q' && n < len(regs.D)/2:
		return 2 * n, 2, nil
	}
	return 0, 0, fmt.Errorf("invalid register name %q", name)
}

func setRegister(regs *a32ir.Registers, name, value string) error {
	first, count, err := registerSpan(name)
	if err != nil {
		return err
	}
	digits := strings.ReplaceAll(strings.TrimPrefix(strings.ToLower(value), "0x"), "_", "")
	if count == 1 {
		v, err := strconv.ParseUint(digits, 16, 64)
		if err != nil {
			return fmt.Errorf("invalid value of %s: %w", name, err)
		}
		regs.D[first] = v
		return nil
	}

	if len(digits) > 32 {
		return fmt.Errorf("invalid value of %s: more than 128 bits", name)
	}
	digits = strings.Repeat("0", 32-len(digits)) + digits
	hi, err := strconv.ParseUint(digits[:16], 16, 64)
	if err != nil {
		return fmt.Errorf("invalid value of %s: %w", name, err)
	}
	lo, err := strconv.ParseUint(digits[16:], 16, 64)
	if err != nil {
		return fmt.Errorf("invalid value of %s: %w", name, err)
	}
	regs.SetQ(first/2, lo, hi)
	return nil
}

type evalResult struct {
	Exit      exitResult        `yaml:"exit"`
	Registers map[string]string `yaml:"registers"`
}

type exitResult struct {
	Raised    bool   `yaml:"raised"`
	PC        string `yaml:"pc,omitempty"`
	Exception string `yaml:"exception,omitempty"`
	Terminal  string `yaml:"terminal,omitempty"`
}

func marshalResult(exit a32ir.Exit, regs *a32ir.Registers) ([]byte, error) {
	res := evalResult{Registers: map[string]string{}}
	if exit.Raised {
		res.Exit = exitResult{Raised: true, PC: fmt.Sprintf("%#x", exit.PC), Exception: exit.Exception.String()}
	} else {
		res.Exit.Terminal = exit.Terminal.String()
	}
	for i, v := range regs.D {
		if v != 0 {
			res.Registers["d"+strconv.Itoa(i)] = fmt.Sprintf("0x%016x", v)
		}
	}
	return yaml.Marshal(&res)
}
