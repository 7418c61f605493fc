package cmd

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"n64view/internal/logging"
	"n64view/internal/rom"
)

// leaf is a small function: a forward branch, a direct call, an
// indirect call and a return.
var leaf = []uint32{
	0x27BDFFE8, // addiu $sp, $sp, -0x18
	0x14800002, // bnez  $a0, .L8000000C
	0x00000000, // nop
	0x0C000400, // jal   func_80001000
	0x00000000, // nop
	0x0320F809, // jalr  $t9
	0x00000000, // nop
	0x03E00008, // jr    $ra
	0x27BD0018, // addiu $sp, $sp, 0x18
}

// testROM writes a big endian image booting leaf at 0x80000000.
func testROM(t *testing.T) *rom.Image {
	t.Helper()
	b := make([]byte, rom.CodeOffset+0x100)
	copy(b, []byte{0x80, 0x37, 0x12, 0x40})
	binary.BigEndian.PutUint32(b[0x08:], 0x80000000)
	copy(b[0x20:0x34], "LEAF TEST           ")
	b[0x3B] = 'N'
	copy(b[0x3C:], "LF")
	b[0x3E] = 'E'
	for i, w := range leaf {
		binary.BigEndian.PutUint32(b[rom.CodeOffset+4*i:], w)
	}

	path := filepath.Join(t.TempDir(), "leaf.z64")
	require.NoError(t, os.WriteFile(path, b, 0o644))
	im, err := rom.Open(path)
	require.NoError(t, err)
	return im
}

func testSession(t *testing.T, cfg Config) *session {
	t.Helper()
	t.Setenv("N64VIEW_NO_COLOR", "1")
	s, err := newSession(cfg, logging.NewLoggerWithWriter(&bytes.Buffer{}))
	require.NoError(t, err)
	t.Cleanup(s.close)
	return s
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("N64VIEW_NO_COLOR", "")
	t.Setenv("N64VIEW_WORKERS", "")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	path := filepath.Join(t.TempDir(), "n64view.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"style":"charm","workers":2,"entry":"boot"}`), 0o644))
	cfg, err = LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "charm", cfg.Style)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, EntryBoot, cfg.Entry)
	assert.Equal(t, "charm", cfg.Palette().Name)

	t.Setenv("N64VIEW_WORKERS", "6")
	t.Setenv("N64VIEW_NO_COLOR", "1")
	cfg, err = LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Workers)
	assert.True(t, cfg.NoColor)
}

func TestLoadConfigErrors(t *testing.T) {
	t.Setenv("N64VIEW_WORKERS", "")
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
		return p
	}

	tests := []struct {
		name string
		path string
		env  string
	}{
		{"style", write("style.json", `{"style":"neon"}`), ""},
		{"entry", write("entry.json", `{"entry":"main"}`), ""},
		{"workers", write("workers.json", `{"workers":-1}`), ""},
		{"env workers", "", "many"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("N64VIEW_WORKERS", tt.env)
			_, err := LoadConfig(tt.path)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	_, err := LoadConfig(write("bad.json", `{`))
	assert.Error(t, err)
	_, err = LoadConfig(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSchema(t *testing.T) {
	bts, err := Schema()
	require.NoError(t, err)
	s := string(bts)
	for _, field := range []string{"noColor", "workers", "symbols", "entry", "style"} {
		assert.Contains(t, s, `"`+field+`"`)
	}
}

func TestParseAddr(t *testing.T) {
	tests := []struct {
		in      string
		want    uint32
		wantErr bool
	}{
		{"0x80000400", 0x80000400, false},
		{"80000400", 0x80000400, false},
		{"#1024", 1024, false},
		{"0x100000000", 0, true},
		{"zz", 0, true},
	}
	for _, tt := range tests {
		got, err := parseAddr(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestRunWord(t *testing.T) {
	s := testSession(t, DefaultConfig())

	var buf bytes.Buffer
	require.NoError(t, runWord(&buf, s, 0x1043FFFE, 0x2000, false))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "00002000  beq"), out)
	assert.Contains(t, out, `code-relative-address  "-0x2"`)
	assert.Contains(t, out, "0x00001ff8")
	assert.Contains(t, out, "0x00002004")
}

func TestRunWordJSON(t *testing.T) {
	s := testSession(t, DefaultConfig())

	var buf bytes.Buffer
	require.NoError(t, runWord(&buf, s, 0x0C000400, 0x80000000, true))

	var got wordReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 4, got.Length)
	assert.Equal(t, "0c000400", got.Raw)
	require.Len(t, got.Edges, 1)
	assert.Equal(t, JSONEdge{Kind: "unconditional", Target: "0x80001000"}, got.Edges[0])
}

func TestRunDis(t *testing.T) {
	im := testROM(t)
	cfg := DefaultConfig()
	cfg.Entry = EntryBoot
	cfg.Workers = 2
	s := testSession(t, cfg)

	start, err := s.start(im, nil)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x80000000), start)

	var buf bytes.Buffer
	require.NoError(t, runDis(context.Background(), &buf, s, im, start, disOptions{function: true}))
	out := buf.String()
	assert.Contains(t, out, ".L8000000C:")
	assert.Contains(t, out, "; -> .L8000000C")
	assert.Contains(t, out, "; func_80001000")
	assert.Contains(t, out, "; indirect call via $t9")
	assert.Equal(t, len(leaf)+1, strings.Count(strings.TrimSpace(out), "\n")+1)
	assert.NotContains(t, out, "\x1b[")
}

func TestRunDisSymbols(t *testing.T) {
	path := filepath.Join(t.TempDir(), "symbol_addrs.txt")
	require.NoError(t, os.WriteFile(path, []byte("osInitialize = 0x80001000;\n"), 0o644))

	im := testROM(t)
	cfg := DefaultConfig()
	cfg.Symbols = path
	s := testSession(t, cfg)

	var buf bytes.Buffer
	require.NoError(t, runDis(context.Background(), &buf, s, im, 0x80000000, disOptions{count: 4}))
	assert.Contains(t, buf.String(), "; osInitialize")
	assert.Equal(t, 4, strings.Count(strings.TrimSpace(buf.String()), "\n")) // 4 lines plus a label
}

func TestRunDisJSON(t *testing.T) {
	im := testROM(t)
	s := testSession(t, DefaultConfig())

	var buf bytes.Buffer
	require.NoError(t, runDis(context.Background(), &buf, s, im, 0x80000000, disOptions{count: 2, json: true}))

	var got []JSONInst
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "0x80000000", got[0].Address)
	assert.Equal(t, "27bdffe8", got[0].Raw)
	assert.Equal(t, "addiu", got[0].Tokens[0].Text)
	require.Len(t, got[1].Edges, 2)
	assert.Equal(t, JSONEdge{Kind: "true", Target: "0x8000000c"}, got[1].Edges[0])
	assert.Equal(t, JSONEdge{Kind: "false", Target: "0x80000008"}, got[1].Edges[1])
}

func TestRunDisUnmapped(t *testing.T) {
	im := testROM(t)
	s := testSession(t, DefaultConfig())
	err := runDis(context.Background(), &bytes.Buffer{}, s, im, 0x90000000, disOptions{count: 4})
	assert.Error(t, err)
}

func TestSessionMissingSymbols(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Symbols = filepath.Join(t.TempDir(), "none.txt")
	_, err := newSession(cfg, logging.NewLoggerWithWriter(&bytes.Buffer{}))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReport(t *testing.T) {
	im := testROM(t)
	cfg := DefaultConfig()
	cfg.Entry = EntryBoot
	s := testSession(t, cfg)

	md, err := report(context.Background(), s, im)
	require.NoError(t, err)
	assert.Contains(t, md, "# LEAF TEST")
	assert.Contains(t, md, "| game code | `NLFE` |")
	assert.Contains(t, md, "| code | `0x80000000` |")
	assert.Contains(t, md, "## Entry `0x80000000`")
	assert.Contains(t, md, "stack pointer `sp`")

	var buf bytes.Buffer
	require.NoError(t, runInfo(context.Background(), &buf, s, im, false, 80))
	assert.Contains(t, buf.String(), "LEAF TEST")
}

// constDecoder decodes every word to the same text.
type constDecoder string

func (d constDecoder) Decode(word, addr uint32) string { return string(d) }

func TestReportCountsSweepWarnings(t *testing.T) {
	im := testROM(t)
	cfg := DefaultConfig()
	cfg.Entry = EntryBoot
	s := testSession(t, cfg)
	s.dec = constDecoder("sync        stype")

	// The code segment holds 0x100 bytes, one bad span per word.
	for range 2 {
		md, err := report(context.Background(), s, im)
		require.NoError(t, err)
		assert.Contains(t, md, "64 unrecognized tokens")
	}

	_, warnings, err := listing(context.Background(), s, im, 0x80000000, disOptions{count: 3})
	require.NoError(t, err)
	require.Len(t, warnings, 3)
	assert.Equal(t, "stype", warnings[0].Text)
}

func TestLogs(t *testing.T) {
	dir := t.TempDir()
	_, err := latestLog(dir)
	assert.ErrorIs(t, err, ErrNoLogFile)

	older := filepath.Join(dir, "n64view-20260101-000000-debug.log")
	newer := filepath.Join(dir, "n64view-20260102-000000-debug.log")
	require.NoError(t, os.WriteFile(older, []byte("old\n"), 0o644))
	require.NoError(t, os.WriteFile(newer, []byte("WARN Unrecognized token\nINFO done\n"), 0o644))

	got, err := latestLog(dir)
	require.NoError(t, err)
	assert.Equal(t, newer, got)

	var buf bytes.Buffer
	require.NoError(t, followLog(context.Background(), &buf, got, false))
	assert.Equal(t, "WARN Unrecognized token\nINFO done\n", buf.String())
}

func TestFollowLogCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "n64view-20260101-000000-debug.log")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, followLog(ctx, &bytes.Buffer{}, path, true))
}

func TestRootWordCommand(t *testing.T) {
	t.Setenv("N64VIEW_NO_COLOR", "1")
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"word", "--json", "03e00008", "0x80000000"})
	t.Cleanup(func() { rootCmd.SetArgs(nil); rootCmd.SetOut(nil) })
	require.NoError(t, rootCmd.Execute())

	var got wordReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "jr          $ra", got.Text)
	assert.Equal(t, []JSONEdge{{Kind: "indirect"}}, got.Edges)
}
