package store

import (
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

// The four fixed keys holding the JSON-serialized collections.
const (
	KeyTasks    = "tasks"
	KeyEvents   = "events"
	KeyJournal  = "journal"
	KeyProjects = "projects"
)

// Persistence is the process-local durable key-value layer. Writes are
// synchronous; a failed Set must surface to the caller, it is never
// retried.
type Persistence interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
}

// Load creates a Persistence backed by diskv using the provided config,
// falling back to LoadConfig when cfg is nil.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	return &persistence{d: diskv.New(diskv.Options{
		BasePath:     cfg.BasePath(),
		Transform:    flatTransform,
		CacheSizeMax: 1024 * 1024, // 1MB
	})}, nil
}

type persistence struct {
	d *diskv.Diskv
}

func (p *persistence) Get(key string) ([]byte, bool, error) {
	if !p.d.Has(key) {
		return nil, false, nil
	}
	val, err := p.d.Read(key)
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (p *persistence) Set(key string, value []byte) error {
	return p.d.Write(key, value)
}

// flatTransform stores every collection file directly under the base
// path; the key space is four fixed names, nesting buys nothing.
func flatTransform(s string) []string {
	if i := strings.IndexByte(s, '/'); i >= 0 {
		return []string{s[:i]}
	}
	return []string{}
}
