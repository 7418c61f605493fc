package analysis

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"n64view/internal/arch"
	"n64view/internal/disasm"
)

// ErrUnmapped is returned when the sweep start address is not mapped.
var ErrUnmapped = errors.New("address not mapped")

// Reader exposes code bytes by virtual address.
type Reader interface {
	SliceVA(va uint32, size uint32) ([]byte, bool)
}

// Sweep linearly decodes up to count instructions starting at start.
// The range is clipped to the containing segment. Decoding is spread
// over workers goroutines (GOMAXPROCS when workers <= 0); each task
// writes its own slots of the result, so the order matches addresses.
func Sweep(ctx context.Context, r Reader, a *arch.Arch, start uint32, count, workers int) (disasm.Stream, error) {
	if count <= 0 {
		count = DefaultSweepInstructions
	}
	count = min(count, MaxSweepInstructions)
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	data, ok := r.SliceVA(start, uint32(count*arch.InstructionLength))
	if !ok {
		return nil, fmt.Errorf("sweep at 0x%08x: %w", start, ErrUnmapped)
	}
	n := len(data) / arch.InstructionLength
	out := make(disasm.Stream, n)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for lo := 0; lo < n; lo += sweepChunk {
		hi := min(lo+sweepChunk, n)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for i := lo; i < hi; i++ {
				off := i * arch.InstructionLength
				inst, err := a.Decode(data[off:off+arch.InstructionLength], start+uint32(off))
				if err != nil {
					return fmt.Errorf("decode 0x%08x: %w", start+uint32(off), err)
				}
				out[i] = inst
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// UntilReturn cuts a stream after the first "jr $ra" and its delay
// slot, or after MaxFunctionInstructions.
func UntilReturn(s disasm.Stream) disasm.Stream {
	limit := min(len(s), MaxFunctionInstructions)
	for i := 0; i < limit; i++ {
		if s[i].Op != "jr" {
			continue
		}
		ops := s[i].Tokens.Operands()
		if len(ops) == 1 && ops[0] == "$ra" {
			return s[:min(i+2, len(s))]
		}
	}
	return s[:limit]
}
