package registry

import (
	"fmt"
	"io"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

type screenFile struct {
	Screens []screenEntry `toml:"screen"`
}

type screenEntry struct {
	ID        string `toml:"id"`
	Title     string `toml:"title"`
	Tier      string `toml:"tier"`
	Destroy   string `toml:"destroy"`
	Footprint bool   `toml:"footprint"`
}

// Load reads screen definitions from a TOML file.
func Load(path string) (*Registry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open screens: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read screens: %w", err)
	}
	return Parse(bytes)
}

// Parse builds a registry from TOML definitions of the form
//
//	[[screen]]
//	id = "lobby"
//	tier = "full"
//	destroy = "state-change"
//	footprint = true
func Parse(data []byte) (*Registry, error) {
	var raw screenFile
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse screens: %w", err)
	}
	r := New()
	for i, entry := range raw.Screens {
		d, err := entry.descriptor()
		if err != nil {
			return nil, fmt.Errorf("screen %d: %w", i+1, err)
		}
		r.Register(d)
	}
	return r, nil
}

func (e screenEntry) descriptor() (Descriptor, error) {
	id := strings.TrimSpace(e.ID)
	if id == "" {
		return Descriptor{}, fmt.Errorf("id is empty")
	}
	tier, err := ParseTier(e.Tier)
	if err != nil {
		return Descriptor{}, fmt.Errorf("%s: %w", id, err)
	}
	policy, err := ParseDestroyPolicy(e.Destroy)
	if err != nil {
		return Descriptor{}, fmt.Errorf("%s: %w", id, err)
	}
	return Descriptor{
		ID:        ID(id),
		Title:     strings.TrimSpace(e.Title),
		Tier:      tier,
		Destroy:   policy,
		Footprint: e.Footprint,
	}, nil
}
