package arch

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"n64view/internal/disasm"
	"n64view/internal/mips"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		span     string
		mnemonic string
		want     disasm.TokenKind
		ok       bool
	}{
		{", ", "addu", disasm.Separator, true},
		{",", "addu", disasm.Separator, true},
		{"(", "lw", disasm.Separator, true},
		{")", "lw", disasm.Separator, true},
		{"        ", "lw", disasm.Separator, true},
		{"\t", "lw", disasm.Separator, true},
		{"$sp", "lw", disasm.Register, true},
		{"$f12", "add.s", disasm.Register, true},
		{"Status", "mtc0", disasm.Register, true},
		{"TagLo", "mtc0", disasm.Register, true},
		{"0x5", "beq", disasm.CodeRelativeAddress, true},
		{"-0x2", "bnez", disasm.CodeRelativeAddress, true},
		{"0x5", "break", disasm.Integer, true},
		{"0x8000", "lui", disasm.Integer, true},
		{"-0x18", "lw", disasm.Integer, true},
		{"0x80246000", "jal", disasm.Integer, true},
		{"12", "sll", disasm.Integer, true},
		{"12", "bgez", disasm.Integer, true},
		{"%lo", "addiu", disasm.Text, false},
		{"sym", "addiu", disasm.Text, false},
		{"-12", "addiu", disasm.Text, false},
		{"", "addiu", disasm.Text, false},
	}

	for _, tt := range tests {
		t.Run(tt.mnemonic+"/"+tt.span, func(t *testing.T) {
			got, ok := Classify(tt.span, tt.mnemonic)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestClassifyDecoderRegisterNames(t *testing.T) {
	for _, name := range mips.COP0Names() {
		kind, ok := Classify(name, "mfc0")
		assert.True(t, ok, name)
		assert.Equal(t, disasm.Register, kind, name)
	}
}

func TestIsBranchFamily(t *testing.T) {
	assert.True(t, IsBranchFamily("b"))
	assert.True(t, IsBranchFamily("beq"))
	assert.True(t, IsBranchFamily("bc1tl"))
	assert.False(t, IsBranchFamily("break"))
	assert.False(t, IsBranchFamily("jal"))
	assert.False(t, IsBranchFamily(""))
}
