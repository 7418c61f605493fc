package mips

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		word uint32
		want string
	}{
		{"nop", 0x00000000, "nop"},
		{"addiu negative", 0x27BDFFE8, "addiu       $sp, $sp, -0x18"},
		{"sw", 0xAFBF0014, "sw          $ra, 0x14($sp)"},
		{"lw", 0x8FA8FFE8, "lw          $t0, -0x18($sp)"},
		{"lui", 0x3C018000, "lui         $at, 0x8000"},
		{"ori unsigned", 0x3421FFFF, "ori         $at, $at, 0xFFFF"},
		{"sll", 0x00031080, "sll         $v0, $v1, 2"},
		{"addu", 0x00851021, "addu        $v0, $a0, $a1"},
		{"move", 0x00801021, "move        $v0, $a0"},
		{"negu", 0x00041023, "negu        $v0, $a0"},
		{"mult", 0x00850018, "mult        $a0, $a1"},
		{"mflo", 0x00001012, "mflo        $v0"},
		{"jr", 0x03E00008, "jr          $ra"},
		{"jalr ra", 0x0320F809, "jalr        $t9"},
		{"jalr rd", 0x03201009, "jalr        $v0, $t9"},
		{"j", 0x08000400, "j           func_00000400"},
		{"jal", 0x0C000400, "jal         func_00000400"},
		{"b", 0x10000003, "b           . + 4 + (0x3 << 2)"},
		{"beqz", 0x10400003, "beqz        $v0, . + 4 + (0x3 << 2)"},
		{"beq", 0x1043FFFE, "beq         $v0, $v1, . + 4 + (-0x2 << 2)"},
		{"bnez", 0x1440FFFF, "bnez        $v0, . + 4 + (-0x1 << 2)"},
		{"bne", 0x14430002, "bne         $v0, $v1, . + 4 + (0x2 << 2)"},
		{"bgez", 0x04410004, "bgez        $v0, . + 4 + (0x4 << 2)"},
		{"bal", 0x04110004, "bal         . + 4 + (0x4 << 2)"},
		{"mtc0", 0x40886000, "mtc0        $t0, Status"},
		{"mfc0", 0x40086800, "mfc0        $t0, Cause"},
		{"mfc0 reserved", 0x40083800, "mfc0        $t0, $7"},
		{"eret", 0x42000018, "eret"},
		{"add.s", 0x46020000, "add.s       $f0, $f0, $f2"},
		{"c.eq.s", 0x46020032, "c.eq.s      $f0, $f2"},
		{"bc1t", 0x45010005, "bc1t        . + 4 + (0x5 << 2)"},
		{"lwc1", 0xC7A00010, "lwc1        $f0, 0x10($sp)"},
		{"cache", 0xBC940000, "cache       0x14, 0x0($a0)"},
		{"break", 0x0000000D, "break"},
		{"break code", 0x0007000D, "break       7"},
		{"syscall", 0x0000000C, "syscall"},
		{"unknown", 0x4C000000, ".word       0x4C000000"},
	}

	var d Decoder
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.Decode(tt.word, 0x80000400))
		})
	}
}

func TestDecodeNoPseudo(t *testing.T) {
	d := Decoder{NoPseudo: true}
	assert.Equal(t, "sll         $zero, $zero, 0", d.Decode(0, 0))
	assert.Equal(t, "beq         $zero, $zero, . + 4 + (0x3 << 2)", d.Decode(0x10000003, 0))
	assert.Equal(t, "addu        $v0, $a0, $zero", d.Decode(0x00801021, 0))
}

func TestDecodeIgnoresAddress(t *testing.T) {
	var d Decoder
	assert.Equal(t, d.Decode(0x1043FFFE, 0), d.Decode(0x1043FFFE, 0x80246000))
}

func TestRegisters(t *testing.T) {
	regs := Registers()
	assert.Len(t, regs, 31+31+3)
	assert.Equal(t, RegisterInfo{Name: "at", Size: 8}, regs[0])
	assert.Equal(t, RegisterInfo{Name: "cop1", Size: 4}, regs[len(regs)-1])
	assert.Equal(t, "$sp", GPR(29))
	assert.Equal(t, "$f31", FPR(31))
	assert.Equal(t, "Status", COP0(12))
	assert.NotContains(t, COP0Names(), "")
}
