package assets

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"

	opt "github.com/repeale/fp-go/option"
	"github.com/rs/zerolog/log"
)

// Asset is one entry of the avatar manifest.
type Asset struct {
	ID   string   `json:"id"`
	Slot string   `json:"slot"`
	Name string   `json:"name"`
	Path string   `json:"path"`
	NSFW bool     `json:"nsfw,omitempty"`
	Tags []string `json:"tags,omitempty"`
}

// Registry is a slot-keyed asset manifest. Fallbacks maps each slot to the
// id of the asset used when nothing else is acceptable.
type Registry struct {
	Version   int               `json:"version"`
	Assets    []Asset           `json:"assets"`
	Fallbacks map[string]string `json:"fallbacks"`

	byID map[string]int
}

// EmptyRegistry has no assets and no fallbacks. It is what callers get when
// the manifest cannot be fetched.
func EmptyRegistry() *Registry {
	r := &Registry{Fallbacks: map[string]string{}}
	r.index()
	return r
}

// ParseRegistry decodes a JSON manifest.
func ParseRegistry(data []byte) (*Registry, error) {
	var r Registry
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("assets: parse registry: %w", err)
	}
	if r.Fallbacks == nil {
		r.Fallbacks = map[string]string{}
	}
	r.index()
	return &r, nil
}

// DefaultRegistry returns the manifest embedded in the binary.
func DefaultRegistry() (*Registry, error) {
	data, err := LoadFile(registryFile)
	if err != nil {
		return nil, fmt.Errorf("assets: load %s: %w", registryFile, err)
	}
	return ParseRegistry(data)
}

// FetchRegistry downloads and decodes the manifest at url.
func FetchRegistry(ctx context.Context, client *http.Client, url string) (*Registry, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("assets: fetch registry: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("assets: fetch registry: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("assets: fetch registry: bad status: %s", resp.Status)
	}

	buffer, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("assets: fetch registry: %w", err)
	}
	return ParseRegistry(buffer)
}

// LoadRegistry fetches the manifest at url. Failures are logged and an
// empty registry is returned, so callers always get something usable.
func LoadRegistry(ctx context.Context, client *http.Client, url string) *Registry {
	r, err := FetchRegistry(ctx, client, url)
	if err != nil {
		log.Error().Err(err).Str("url", url).Msg("Assets: registry unavailable, using empty fallback")
		return EmptyRegistry()
	}
	log.Info().Str("url", url).Int("assets", len(r.Assets)).Msg("Assets: registry loaded")
	return r
}

func (r *Registry) index() {
	r.byID = make(map[string]int, len(r.Assets))
	for i, a := range r.Assets {
		if _, dup := r.byID[a.ID]; !dup {
			r.byID[a.ID] = i
		}
	}
}

// Get looks up an asset by id.
func (r *Registry) Get(id string) opt.Option[Asset] {
	if r.byID == nil {
		r.index()
	}
	i, ok := r.byID[id]
	if !ok {
		return opt.None[Asset]()
	}
	return opt.Some(r.Assets[i])
}

// Fallback returns the fallback asset of slot, if the slot names one that
// exists.
func (r *Registry) Fallback(slot string) opt.Option[Asset] {
	id, ok := r.Fallbacks[slot]
	if !ok || id == "" {
		return opt.None[Asset]()
	}
	return r.Get(id)
}

// SafeAlternative resolves id to something acceptable. Safe assets, or any
// asset when allowNSFW is set, resolve to themselves. Otherwise the slot's
// fallback is tried, then the first safe asset in the same slot.
func (r *Registry) SafeAlternative(id string, allowNSFW bool) opt.Option[Asset] {
	found := r.Get(id)
	if opt.IsNone(found) {
		return found
	}
	asset := found.Value
	if allowNSFW || !asset.NSFW {
		return found
	}

	fallback := r.Fallback(asset.Slot)
	if opt.IsSome(fallback) && !fallback.Value.NSFW {
		return fallback
	}
	for _, a := range r.Assets {
		if a.Slot == asset.Slot && !a.NSFW {
			return opt.Some(a)
		}
	}
	return opt.None[Asset]()
}

// Slots lists every slot named by an asset or a fallback, sorted.
func (r *Registry) Slots() []string {
	seen := map[string]bool{}
	for _, a := range r.Assets {
		seen[a.Slot] = true
	}
	for slot := range r.Fallbacks {
		seen[slot] = true
	}
	slots := make([]string, 0, len(seen))
	for s := range seen {
		slots = append(slots, s)
	}
	sort.Strings(slots)
	return slots
}

// Validate reports structural problems as messages. An empty result means
// the registry is consistent.
func (r *Registry) Validate() []string {
	var problems []string

	ids := map[string]bool{}
	for _, a := range r.Assets {
		if a.ID == "" {
			problems = append(problems, fmt.Sprintf("asset in slot %q has no id", a.Slot))
			continue
		}
		if ids[a.ID] {
			problems = append(problems, fmt.Sprintf("duplicate asset id %q", a.ID))
		}
		ids[a.ID] = true
	}

	for _, slot := range r.Slots() {
		id, ok := r.Fallbacks[slot]
		if !ok || id == "" {
			problems = append(problems, fmt.Sprintf("slot %q has no fallback", slot))
			continue
		}
		fallback := r.Get(id)
		if opt.IsNone(fallback) {
			problems = append(problems, fmt.Sprintf("slot %q fallback %q does not exist", slot, id))
			continue
		}
		if fallback.Value.NSFW {
			problems = append(problems, fmt.Sprintf("slot %q fallback %q is nsfw", slot, id))
		}
		if fallback.Value.Slot != slot {
			problems = append(problems, fmt.Sprintf("slot %q fallback %q belongs to slot %q", slot, id, fallback.Value.Slot))
		}
	}
	return problems
}
