package mips

import "fmt"

// RegisterInfo describes one architectural register.
type RegisterInfo struct {
	Name string
	Size int // bytes
}

// StackPointer is the ABI name of the stack pointer.
const StackPointer = "sp"

var gprNames = [32]string{
	"zero", "at", "v0", "v1", "a0", "a1", "a2", "a3",
	"t0", "t1", "t2", "t3", "t4", "t5", "t6", "t7",
	"s0", "s1", "s2", "s3", "s4", "s5", "s6", "s7",
	"t8", "t9", "k0", "k1", "gp", "sp", "fp", "ra",
}

// Reserved slots are empty and render numerically.
var cop0Names = [32]string{
	"Index", "Random", "EntryLo0", "EntryLo1", "Context", "PageMask", "Wired", "",
	"BadVAddr", "Count", "EntryHi", "Compare", "Status", "Cause", "EPC", "PRId",
	"Config", "LLAddr", "WatchLo", "WatchHi", "XContext", "", "", "",
	"", "", "PErr", "CacheErr", "TagLo", "TagHi", "ErrorEPC", "",
}

// GPR returns the sigil-prefixed ABI name of general purpose register n.
func GPR(n uint32) string {
	return "$" + gprNames[n&0x1F]
}

// FPR returns the name of floating point register n.
func FPR(n uint32) string {
	return fmt.Sprintf("$f%d", n&0x1F)
}

// COP0 returns the name of system control register n. Reserved
// registers are rendered as "$n".
func COP0(n uint32) string {
	if name := cop0Names[n&0x1F]; name != "" {
		return name
	}
	return fmt.Sprintf("$%d", n&0x1F)
}

// COP0Names lists the named system control registers.
func COP0Names() []string {
	var names []string
	for _, n := range cop0Names {
		if n != "" {
			names = append(names, n)
		}
	}
	return names
}

// Registers returns the VR4300 register file: the general purpose
// registers, the floating point registers and the coprocessor banks.
func Registers() []RegisterInfo {
	regs := make([]RegisterInfo, 0, 67)
	for _, n := range gprNames[1:] {
		regs = append(regs, RegisterInfo{Name: n, Size: 8})
	}
	for i := range 31 {
		regs = append(regs, RegisterInfo{Name: fmt.Sprintf("f%d", i), Size: 8})
	}
	regs = append(regs,
		RegisterInfo{Name: "cop0s", Size: 4},
		RegisterInfo{Name: "cop0c", Size: 8},
		RegisterInfo{Name: "cop1", Size: 4},
	)
	return regs
}
