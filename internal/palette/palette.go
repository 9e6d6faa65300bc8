// Package palette resolves an anchor's opaque color field — a palette name
// or a hex string — to concrete RGB components.
package palette

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dlclark/regexp2"
)

// RGB is a resolved color, three 0-255 components.
type RGB [3]uint8

// DefaultName is the entry Resolve falls back to for unrecognized input.
const DefaultName = "yellow"

var hexPattern = regexp2.MustCompile(`^#?[0-9a-fA-F]{6}$`, 0)

// entry is one row of the palette table, also the shape of a TOML
// override file's [[colors]] array.
type entry struct {
	Name string `toml:"name"`
	Hex  string `toml:"hex"`
}

type overrideFile struct {
	Colors []entry `toml:"colors"`
}

func defaultEntries() []entry {
	return []entry{
		{Name: "yellow", Hex: "FFF176"},
		{Name: "green", Hex: "AED581"},
		{Name: "blue", Hex: "81D4FA"},
		{Name: "pink", Hex: "F48FB1"},
		{Name: "orange", Hex: "FFB74D"},
		{Name: "purple", Hex: "CE93D8"},
	}
}

// Palette is an ordered name-to-hex table with a designated default entry.
// Table is case-insensitively keyed; LoadOverride entries with a name that
// already exists replace it in place, preserving its position, otherwise
// they're appended.
type Palette struct {
	order []string // lowercased names, in table order
	table map[string]RGB
}

// New builds a Palette from the built-in default table.
func New() *Palette {
	p := &Palette{table: make(map[string]RGB)}
	for _, e := range defaultEntries() {
		p.put(e.Name, e.Hex)
	}
	return p
}

func (p *Palette) put(name, hex string) {
	rgb, ok := decodeHex(hex)
	if !ok {
		return
	}
	key := strings.ToLower(name)
	if _, exists := p.table[key]; !exists {
		p.order = append(p.order, key)
	}
	p.table[key] = rgb
}

// LoadOverride merges a TOML file of `[[colors]] name = "..." hex = "..."`
// entries into p.
func (p *Palette) LoadOverride(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read palette override: %w", err)
	}
	var f overrideFile
	if _, err := toml.Decode(string(data), &f); err != nil {
		return fmt.Errorf("decode palette override %s: %w", path, err)
	}
	for _, e := range f.Colors {
		p.put(e.Name, e.Hex)
	}
	return nil
}

// Resolve turns a palette name or a hex string into RGB components. It
// never errors: unrecognized input resolves to the default entry, keeping
// the engine's "nothing is fatal" property for this opaque field.
func (p *Palette) Resolve(nameOrHex string) RGB {
	matched, _ := hexPattern.MatchString(nameOrHex)
	if matched {
		if rgb, ok := decodeHex(nameOrHex); ok {
			return rgb
		}
	}
	if rgb, ok := p.table[strings.ToLower(nameOrHex)]; ok {
		return rgb
	}
	if rgb, ok := p.table[DefaultName]; ok {
		return rgb
	}
	return RGB{} // unreachable unless the default entry was itself removed
}

func decodeHex(hex string) (RGB, bool) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return RGB{}, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return RGB{}, false
	}
	return RGB{uint8(v >> 16), uint8(v >> 8), uint8(v)}, true
}
