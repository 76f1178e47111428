package main

import (
	"fmt"
	"strconv"
	"strings"
)

// parseWords parses hexadecimal instruction words, with or without a 0x prefix.
func parseWords(args []string) ([]uint32, error) {
	ret := make([]uint32, 0, len(args))
	for _, arg := range args {
		s := strings.TrimPrefix(strings.ToLower(arg), "0x")
		s = strings.ReplaceAll(s, "_", "")
		w, err := strconv.ParseUint(s, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid instruction word %q", arg)
		}
		ret = append(ret, uint32(w))
	}
	return ret, nil
}
