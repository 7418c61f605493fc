package mips

// Immediate arithmetic, keyed by primary opcode. andi, ori and xori
// (0x0C-0x0E) take zero-extended immediates.
var immOps = map[uint32]string{
	0x08: "addi",
	0x09: "addiu",
	0x0A: "slti",
	0x0B: "sltiu",
	0x0C: "andi",
	0x0D: "ori",
	0x0E: "xori",
	0x18: "daddi",
	0x19: "daddiu",
}

var memOps = map[uint32]string{
	0x1A: "ldl",
	0x1B: "ldr",
	0x20: "lb",
	0x21: "lh",
	0x22: "lwl",
	0x23: "lw",
	0x24: "lbu",
	0x25: "lhu",
	0x26: "lwr",
	0x27: "lwu",
	0x28: "sb",
	0x29: "sh",
	0x2A: "swl",
	0x2B: "sw",
	0x2C: "sdl",
	0x2D: "sdr",
	0x2E: "swr",
	0x30: "ll",
	0x34: "lld",
	0x37: "ld",
	0x38: "sc",
	0x3C: "scd",
	0x3F: "sd",
}

var fpuMemOps = map[uint32]string{
	0x31: "lwc1",
	0x35: "ldc1",
	0x39: "swc1",
	0x3D: "sdc1",
}

// SPECIAL function field.
var specialOps = map[uint32]string{
	0x00: "sll",
	0x02: "srl",
	0x03: "sra",
	0x04: "sllv",
	0x06: "srlv",
	0x07: "srav",
	0x10: "mfhi",
	0x11: "mthi",
	0x12: "mflo",
	0x13: "mtlo",
	0x14: "dsllv",
	0x16: "dsrlv",
	0x17: "dsrav",
	0x18: "mult",
	0x19: "multu",
	0x1A: "div",
	0x1B: "divu",
	0x1C: "dmult",
	0x1D: "dmultu",
	0x1E: "ddiv",
	0x1F: "ddivu",
	0x20: "add",
	0x21: "addu",
	0x22: "sub",
	0x23: "subu",
	0x24: "and",
	0x25: "or",
	0x26: "xor",
	0x27: "nor",
	0x2A: "slt",
	0x2B: "sltu",
	0x2C: "dadd",
	0x2D: "daddu",
	0x2E: "dsub",
	0x2F: "dsubu",
	0x30: "tge",
	0x31: "tgeu",
	0x32: "tlt",
	0x33: "tltu",
	0x34: "teq",
	0x36: "tne",
	0x38: "dsll",
	0x3A: "dsrl",
	0x3B: "dsra",
	0x3C: "dsll32",
	0x3E: "dsrl32",
	0x3F: "dsra32",
}

// REGIMM rt field.
var regimmOps = map[uint32]string{
	0x00: "bltz",
	0x01: "bgez",
	0x02: "bltzl",
	0x03: "bgezl",
	0x08: "tgei",
	0x09: "tgeiu",
	0x0A: "tlti",
	0x0B: "tltiu",
	0x0C: "teqi",
	0x0E: "tnei",
	0x10: "bltzal",
	0x11: "bgezal",
	0x12: "bltzall",
	0x13: "bgezall",
}

var bc1Ops = map[uint32]string{
	0x0: "bc1f",
	0x1: "bc1t",
	0x2: "bc1fl",
	0x3: "bc1tl",
}

var fpuFormats = map[uint32]string{
	0x10: ".s",
	0x11: ".d",
	0x14: ".w",
	0x15: ".l",
}

var fpuOps = map[uint32]string{
	0x00: "add",
	0x01: "sub",
	0x02: "mul",
	0x03: "div",
	0x04: "sqrt",
	0x05: "abs",
	0x06: "mov",
	0x07: "neg",
	0x08: "round.l",
	0x09: "trunc.l",
	0x0A: "ceil.l",
	0x0B: "floor.l",
	0x0C: "round.w",
	0x0D: "trunc.w",
	0x0E: "ceil.w",
	0x0F: "floor.w",
	0x20: "cvt.s",
	0x21: "cvt.d",
	0x24: "cvt.w",
	0x25: "cvt.l",
}

var fpuCompare = [16]string{
	"f", "un", "eq", "ueq", "olt", "ult", "ole", "ule",
	"sf", "ngle", "seq", "ngl", "lt", "nge", "le", "ngt",
}
