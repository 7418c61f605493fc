package analysis

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/ianlancetaylor/demangle"
)

// ErrBadSymbolLine is returned for a symbol map line that is not
// "name = 0xADDR;".
var ErrBadSymbolLine = errors.New("malformed symbol line")

type Symbol struct {
	Addr      uint32
	Name      string
	Demangled string
}

// Display returns the demangled name when there is one.
func (s Symbol) Display() string {
	if s.Demangled != "" {
		return s.Demangled
	}
	return s.Name
}

// SymbolMap indexes symbols by address.
type SymbolMap struct {
	byAddr map[uint32]Symbol
}

// demangleCache memoises demangling across symbol maps.
type demangleCache struct {
	mu    sync.Mutex
	names map[string]string
	hits  map[string]int
}

var cache = &demangleCache{
	names: make(map[string]string),
	hits:  make(map[string]int),
}

// CachedDemangle demangles C++ and Rust names, returning mangled
// unchanged when it is a plain C identifier.
func CachedDemangle(mangled string) string {
	cache.mu.Lock()
	if d, ok := cache.names[mangled]; ok {
		cache.hits[mangled]++
		cache.mu.Unlock()
		return d
	}
	cache.mu.Unlock()

	d := demangle.Filter(mangled, demangle.NoClones)

	cache.mu.Lock()
	cache.names[mangled] = d
	cache.mu.Unlock()
	return d
}

// DemangleCacheStats returns the number of cached names and the number
// of lookups served from the cache.
func DemangleCacheStats() (symbols, hits int) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	for _, n := range cache.hits {
		hits += n
	}
	return len(cache.names), hits
}

// ParseSymbolMap reads "name = 0xADDR;" lines as used by splat's
// symbol_addrs.txt. Comments after "//" and blank lines are ignored.
// When two names share an address the first wins.
func ParseSymbolMap(r io.Reader) (*SymbolMap, error) {
	sm := &SymbolMap{byAddr: make(map[uint32]Symbol)}
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.Index(text, "//"); i >= 0 {
			text = text[:i]
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		name, value, ok := strings.Cut(text, "=")
		if !ok {
			return nil, fmt.Errorf("line %d: %w", line, ErrBadSymbolLine)
		}
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(strings.TrimSuffix(value, ";"))
		addr, err := strconv.ParseUint(value, 0, 32)
		if err != nil || name == "" {
			return nil, fmt.Errorf("line %d: %w", line, ErrBadSymbolLine)
		}
		if _, dup := sm.byAddr[uint32(addr)]; dup {
			continue
		}
		sym := Symbol{Addr: uint32(addr), Name: name}
		if d := CachedDemangle(name); d != name {
			sym.Demangled = d
		}
		sm.byAddr[sym.Addr] = sym
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read symbols: %w", err)
	}
	return sm, nil
}

// LoadSymbolMap parses the symbol map at path.
func LoadSymbolMap(path string) (*SymbolMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open symbols: %w", err)
	}
	defer f.Close()
	return ParseSymbolMap(f)
}

// Lookup returns the symbol at addr.
func (sm *SymbolMap) Lookup(addr uint32) (Symbol, bool) {
	if sm == nil {
		return Symbol{}, false
	}
	s, ok := sm.byAddr[addr]
	return s, ok
}

// Symbols returns all symbols sorted by address.
func (sm *SymbolMap) Symbols() []Symbol {
	if sm == nil {
		return nil
	}
	out := make([]Symbol, 0, len(sm.byAddr))
	for _, s := range sm.byAddr {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Addr < out[j].Addr })
	return out
}

// Len returns the number of symbols.
func (sm *SymbolMap) Len() int {
	if sm == nil {
		return 0
	}
	return len(sm.byAddr)
}
