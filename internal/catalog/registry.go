package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"tickboard/internal/logger"
)

// watchlistSchema validates an override file before the snapshot is swapped;
// a bad file never replaces a good snapshot.
const watchlistSchema = `{
	"type": "object",
	"required": ["equities"],
	"properties": {
		"equities": {
			"type": "array",
			"minItems": 1,
			"items": {"type": "string", "pattern": "^[A-Z0-9]+\\.[A-Z]+$"}
		}
	}
}`

// Registry holds the equity universe: an embedded symbol list, optionally
// overridden by a watched YAML file. Snapshots are immutable; reload builds
// a fresh one and swaps it whole.
type Registry struct {
	path    string
	schema  *jsonschema.Schema
	watcher *fsnotify.Watcher

	mu       sync.RWMutex
	snapshot []Asset
}

// NewRegistry builds the registry from the embedded list, then applies and
// watches the override file when a path is given.
func NewRegistry(path string) (*Registry, error) {
	schema, err := jsonschema.CompileString("watchlist.json", watchlistSchema)
	if err != nil {
		return nil, fmt.Errorf("compiling watchlist schema: %w", err)
	}
	r := &Registry{path: strings.TrimSpace(path), schema: schema}
	r.snapshot = buildEquityAssets(defaultEquitySymbols)

	if r.path == "" {
		return r, nil
	}
	if err := r.reload(); err != nil {
		logger.Warnf("[catalog] equity watchlist %s unusable, keeping embedded list: %v", r.path, err)
	}
	if err := r.watch(); err != nil {
		logger.Warnf("[catalog] equity watchlist watch failed: %v", err)
	}
	return r, nil
}

// Assets returns the current snapshot.
func (r *Registry) Assets() []Asset {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Asset, len(r.snapshot))
	copy(out, r.snapshot)
	return out
}

func (r *Registry) Close() error {
	if r.watcher != nil {
		return r.watcher.Close()
	}
	return nil
}

func (r *Registry) reload() error {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		return err
	}
	var doc struct {
		Equities []string `yaml:"equities"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parsing watchlist: %w", err)
	}
	if err := r.validate(doc.Equities); err != nil {
		return err
	}
	next := buildEquityAssets(doc.Equities)
	r.mu.Lock()
	r.snapshot = next
	r.mu.Unlock()
	logger.Infof("[catalog] equity watchlist reloaded: %d symbols", len(next))
	return nil
}

func (r *Registry) validate(symbols []string) error {
	payload, err := json.Marshal(map[string]any{"equities": symbols})
	if err != nil {
		return err
	}
	var doc any
	if err := json.NewDecoder(bytes.NewReader(payload)).Decode(&doc); err != nil {
		return err
	}
	if err := r.schema.Validate(doc); err != nil {
		return fmt.Errorf("watchlist schema: %w", err)
	}
	return nil
}

func (r *Registry) watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(r.path); err != nil {
		watcher.Close()
		return err
	}
	r.watcher = watcher
	go func() {
		for {
			select {
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if evt.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				if err := r.reload(); err != nil {
					logger.Errorf("[catalog] watchlist reload failed (%s): %v", evt.Name, err)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warnf("[catalog] watchlist watcher: %v", err)
			}
		}
	}()
	return nil
}

// buildEquityAssets de-duplicates, strips the exchange suffix for display
// and sorts by name.
func buildEquityAssets(symbols []string) []Asset {
	seen := make(map[string]struct{}, len(symbols))
	out := make([]Asset, 0, len(symbols))
	for _, sym := range symbols {
		sym = strings.ToUpper(strings.TrimSpace(sym))
		if sym == "" {
			continue
		}
		if _, dup := seen[sym]; dup {
			continue
		}
		seen[sym] = struct{}{}
		out = append(out, Asset{
			ID:     sym,
			Symbol: sym,
			Name:   stripExchangeSuffix(sym),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func stripExchangeSuffix(symbol string) string {
	if idx := strings.LastIndex(symbol, "."); idx > 0 {
		return symbol[:idx]
	}
	return symbol
}
