package batch

import (
	"path/filepath"
	"sync"
)

// Registry hands out one Processor per (input, output) directory pair,
// creating it on first use. Distinct pairs run independently; the per-pair
// Processor serializes its own runs.
type Registry struct {
	mu      sync.Mutex
	factory func(inputDir, outputDir string) *Processor
	procs   map[string]*Processor
}

func NewRegistry(factory func(inputDir, outputDir string) *Processor) *Registry {
	return &Registry{
		factory: factory,
		procs:   make(map[string]*Processor),
	}
}

// Get returns the Processor for the directory pair, creating it if needed.
// Paths are cleaned so "./in" and "in" map to the same Processor.
func (r *Registry) Get(inputDir, outputDir string) *Processor {
	key := filepath.Clean(inputDir) + "\x00" + filepath.Clean(outputDir)

	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.procs[key]; ok {
		return p
	}
	p := r.factory(inputDir, outputDir)
	r.procs[key] = p
	return p
}
