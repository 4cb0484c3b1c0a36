package store

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/peterbourgon/diskv/v3"
	"github.com/rs/zerolog"

	"tableflip.dev/roadmap/pkg/roadmap"
)

// Persistence defines the persistence contract for roadmaps.
type Persistence interface {
	Roadmaps(ctx context.Context) []roadmap.Meta
	EnsureRoadmap(name string) error
	UpdateRoadmap(ctx context.Context, name string, meta roadmap.Meta) error
	DeleteRoadmap(ctx context.Context, name string) error
	Snapshot(ctx context.Context, name string) *roadmap.Snapshot
	Features(ctx context.Context, name string) []*roadmap.Feature
	Themes(ctx context.Context, name string) []*roadmap.Theme
	StoreFeature(f *roadmap.Feature) error
	DeleteFeature(f *roadmap.Feature) error
	StoreTheme(t *roadmap.Theme) error
	DeleteTheme(t *roadmap.Theme) error
	Project(ctx context.Context) *roadmap.Project
	StoreProject(p *roadmap.Project) error
	Watch(ctx context.Context) (<-chan Event, error)
}

// Option customises Load.
type Option func(*persistence)

// WithLogger sets the logger used to report unreadable records.
func WithLogger(l zerolog.Logger) Option {
	return func(p *persistence) {
		p.log = l
	}
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config, opts ...Option) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	p := &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		// No read cache: other processes write to the same tree and the
		// watcher reloads from disk.
		CacheSizeMax: 0,
	}), basePath: basePath, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
	log      zerolog.Logger
}

type kind string

const (
	kindFeature kind = "features"
	kindTheme   kind = "themes"
)

func (p *persistence) readInto(key string, target interface{}) error {
	val, err := p.d.Read(key)
	if err != nil {
		return err
	}
	return json.Unmarshal(val, target)
}

func (p *persistence) keys(ctx context.Context, name string, k kind) []string {
	prefix := fmt.Sprintf("%s-%s-", toRoadmap(name), k)
	var out []string
	for key := range p.d.KeysPrefix(prefix, ctx.Done()) {
		out = append(out, key)
	}
	return out
}

func (p *persistence) Features(ctx context.Context, name string) []*roadmap.Feature {
	all := make([]*roadmap.Feature, 0)
	for _, key := range p.keys(ctx, name, kindFeature) {
		f := &roadmap.Feature{}
		if err := p.readInto(key, f); err != nil {
			p.log.Warn().Err(err).Str("key", key).Msg("store: skip unreadable feature")
			continue
		}
		f.ID = keyToPathTransform(key).FileName
		f.Roadmap = name
		all = append(all, f)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return createdBefore(all[i].Created.Time, all[j].Created.Time, all[i].ID, all[j].ID)
	})
	return all
}

func (p *persistence) Themes(ctx context.Context, name string) []*roadmap.Theme {
	all := make([]*roadmap.Theme, 0)
	for _, key := range p.keys(ctx, name, kindTheme) {
		t := &roadmap.Theme{}
		if err := p.readInto(key, t); err != nil {
			p.log.Warn().Err(err).Str("key", key).Msg("store: skip unreadable theme")
			continue
		}
		t.ID = keyToPathTransform(key).FileName
		t.Roadmap = name
		all = append(all, t)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return createdBefore(all[i].Created.Time, all[j].Created.Time, all[i].ID, all[j].ID)
	})
	return all
}

func (p *persistence) Snapshot(ctx context.Context, name string) *roadmap.Snapshot {
	meta := roadmap.Meta{Name: name}
	if idx, err := p.loadRoadmapsIndex(); err == nil {
		if m, ok := idx[name]; ok {
			meta = m
		}
	} else {
		p.log.Warn().Err(err).Msg("store: load roadmaps index")
	}
	return &roadmap.Snapshot{
		Meta:     meta,
		Themes:   p.Themes(ctx, name),
		Features: p.Features(ctx, name),
	}
}

func (p *persistence) StoreFeature(f *roadmap.Feature) error {
	if f == nil {
		return errors.New("store: nil feature")
	}
	if strings.TrimSpace(f.Roadmap) == "" {
		return errors.New("store: feature roadmap required")
	}
	if f.Created.IsZero() {
		f.Created = roadmap.Now()
	}
	key := toKey(f.Roadmap, kindFeature, &f.ID, f)
	return p.write(key, f)
}

func (p *persistence) DeleteFeature(f *roadmap.Feature) error {
	if f == nil || f.ID == "" {
		return errors.New("store: feature id required")
	}
	return p.d.Erase(toKey(f.Roadmap, kindFeature, &f.ID, f))
}

func (p *persistence) StoreTheme(t *roadmap.Theme) error {
	if t == nil {
		return errors.New("store: nil theme")
	}
	if strings.TrimSpace(t.Roadmap) == "" {
		return errors.New("store: theme roadmap required")
	}
	if t.Created.IsZero() {
		t.Created = roadmap.Now()
	}
	key := toKey(t.Roadmap, kindTheme, &t.ID, t)
	return p.write(key, t)
}

func (p *persistence) DeleteTheme(t *roadmap.Theme) error {
	if t == nil || t.ID == "" {
		return errors.New("store: theme id required")
	}
	return p.d.Erase(toKey(t.Roadmap, kindTheme, &t.ID, t))
}

func (p *persistence) write(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := p.d.Write(key, data); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

func (p *persistence) Roadmaps(ctx context.Context) []roadmap.Meta {
	all := make(map[string]roadmap.Meta)
	if idx, err := p.loadRoadmapsIndex(); err == nil {
		for name, meta := range idx {
			all[name] = meta
		}
	} else {
		p.log.Warn().Err(err).Msg("store: load roadmaps index")
	}

	// roadmaps written by an older index or by hand still show up
	for key := range p.d.Keys(ctx.Done()) {
		pk := keyToPathTransform(key)
		if len(pk.Path) != 2 || pk.Path[0] == "" {
			// index files at the root
			continue
		}
		name := fromRoadmap(pk.Path[0])
		if _, ok := all[name]; !ok {
			all[name] = roadmap.Meta{Name: name}
		}
	}

	list := make([]roadmap.Meta, 0, len(all))
	for name, meta := range all {
		if meta.Name == "" {
			meta.Name = name
		}
		list = append(list, meta)
	}
	sort.SliceStable(list, func(i, j int) bool {
		return createdBefore(list[i].Created.Time, list[j].Created.Time, list[i].Name, list[j].Name)
	})
	return list
}

func (p *persistence) EnsureRoadmap(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("store: roadmap name required")
	}
	if err := os.MkdirAll(filepath.Join(p.basePath, toRoadmap(name)), 0o755); err != nil {
		return fmt.Errorf("store: ensure roadmap directory: %w", err)
	}
	index, err := p.loadRoadmapsIndex()
	if err != nil {
		return fmt.Errorf("store: load roadmaps index: %w", err)
	}
	if _, ok := index[name]; ok {
		return nil
	}
	index[name] = roadmap.Meta{Name: name, Created: roadmap.Now()}
	if err := p.saveRoadmapsIndex(index); err != nil {
		return fmt.Errorf("store: save roadmaps index: %w", err)
	}
	return nil
}

func (p *persistence) DeleteRoadmap(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("store: roadmap name required")
	}
	for _, k := range []kind{kindFeature, kindTheme} {
		for _, key := range p.keys(ctx, name, k) {
			if err := p.d.Erase(key); err != nil {
				return fmt.Errorf("store: erase %s: %w", key, err)
			}
		}
	}
	if err := os.RemoveAll(filepath.Join(p.basePath, toRoadmap(name))); err != nil {
		return fmt.Errorf("store: remove roadmap directory: %w", err)
	}
	index, err := p.loadRoadmapsIndex()
	if err != nil {
		return fmt.Errorf("store: load roadmaps index: %w", err)
	}
	delete(index, name)
	if err := p.saveRoadmapsIndex(index); err != nil {
		return fmt.Errorf("store: save roadmaps index: %w", err)
	}
	return nil
}

// ErrRoadmapExists is returned when renaming onto a roadmap that exists.
var ErrRoadmapExists = errors.New("store: roadmap already exists")

// UpdateRoadmap replaces the metadata of name. When meta.Name differs the
// roadmap is renamed: its features and themes move under the new name.
func (p *persistence) UpdateRoadmap(ctx context.Context, name string, meta roadmap.Meta) error {
	name = strings.TrimSpace(name)
	meta.Name = strings.TrimSpace(meta.Name)
	if name == "" || meta.Name == "" {
		return errors.New("store: roadmap name required")
	}
	index, err := p.loadRoadmapsIndex()
	if err != nil {
		return fmt.Errorf("store: load roadmaps index: %w", err)
	}
	old, ok := index[name]
	if !ok {
		old = roadmap.Meta{Name: name, Created: roadmap.Now()}
	}
	if meta.Created.IsZero() {
		meta.Created = old.Created
	}

	if meta.Name != name {
		if _, taken := index[meta.Name]; taken {
			return fmt.Errorf("%w: %q", ErrRoadmapExists, meta.Name)
		}
		if err := p.moveRoadmap(ctx, name, meta.Name); err != nil {
			return err
		}
		delete(index, name)
	}
	index[meta.Name] = meta
	if err := p.saveRoadmapsIndex(index); err != nil {
		return fmt.Errorf("store: save roadmaps index: %w", err)
	}
	return nil
}

// moveRoadmap rewrites every record of from under to, then drops from's
// directory.
func (p *persistence) moveRoadmap(ctx context.Context, from, to string) error {
	if err := os.MkdirAll(filepath.Join(p.basePath, toRoadmap(to)), 0o755); err != nil {
		return fmt.Errorf("store: ensure roadmap directory: %w", err)
	}
	for _, k := range []kind{kindFeature, kindTheme} {
		for _, key := range p.keys(ctx, from, k) {
			val, err := p.d.Read(key)
			if err != nil {
				return fmt.Errorf("store: read %s: %w", key, err)
			}
			var rec map[string]interface{}
			if err := json.Unmarshal(val, &rec); err != nil {
				p.log.Warn().Err(err).Str("key", key).Msg("store: skip unreadable record")
				continue
			}
			rec["roadmap"] = to
			id := keyToPathTransform(key).FileName
			if err := p.write(toKey(to, k, &id, nil), rec); err != nil {
				return err
			}
			if err := p.d.Erase(key); err != nil {
				return fmt.Errorf("store: erase %s: %w", key, err)
			}
		}
	}
	if err := os.RemoveAll(filepath.Join(p.basePath, toRoadmap(from))); err != nil {
		return fmt.Errorf("store: remove roadmap directory: %w", err)
	}
	return nil
}

// projectKey sits at the root, outside every roadmap directory.
const projectKey = "project"

// Project returns the stored project, or nil when none was stored.
func (p *persistence) Project(_ context.Context) *roadmap.Project {
	if !p.d.Has(projectKey) {
		return nil
	}
	proj := &roadmap.Project{}
	if err := p.readInto(projectKey, proj); err != nil {
		p.log.Warn().Err(err).Msg("store: skip unreadable project")
		return nil
	}
	return proj
}

// StoreProject writes the project, giving people without an id one.
func (p *persistence) StoreProject(proj *roadmap.Project) error {
	if proj == nil {
		return errors.New("store: nil project")
	}
	for _, g := range []roadmap.Group{roadmap.Members, roadmap.Stakeholders} {
		people := proj.People(g)
		for i := range people {
			if people[i].ID == "" {
				people[i].ID = contentID(people[i])
			}
		}
	}
	return p.write(projectKey, proj)
}

const roadmapsIndexFile = ".roadmaps.json"

func (p *persistence) roadmapsIndexPath() string {
	return filepath.Join(p.basePath, roadmapsIndexFile)
}

func (p *persistence) loadRoadmapsIndex() (map[string]roadmap.Meta, error) {
	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p.roadmapsIndexPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return make(map[string]roadmap.Meta), nil
		}
		return nil, err
	}
	list, err := roadmap.UnmarshalList(data)
	if err != nil {
		return nil, err
	}
	index := make(map[string]roadmap.Meta, len(list))
	for _, meta := range list {
		name := strings.TrimSpace(meta.Name)
		if name == "" {
			continue
		}
		meta.Name = name
		index[name] = meta
	}
	return index, nil
}

func (p *persistence) saveRoadmapsIndex(idx map[string]roadmap.Meta) error {
	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return err
	}
	list := make([]roadmap.Meta, 0, len(idx))
	for name, meta := range idx {
		if meta.Name == "" {
			meta.Name = name
		}
		list = append(list, meta)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})
	data, err := roadmap.MarshalList(list)
	if err != nil {
		return err
	}
	path := p.roadmapsIndexPath()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func createdBefore(lt, rt time.Time, lid, rid string) bool {
	switch {
	case lt.IsZero() && rt.IsZero():
		return lid < rid
	case lt.IsZero():
		return false
	case rt.IsZero():
		return true
	default:
		if lt.Equal(rt) {
			return lid < rid
		}
		return lt.Before(rt)
	}
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

// toKey makes `roadmap-kind-id`, assigning an id from the record's content
// when it has none yet.
func toKey(name string, k kind, id *string, v interface{}) string {
	if *id == "" {
		*id = contentID(v)
	}
	return fmt.Sprintf("%s-%s-%s", toRoadmap(name), k, *id)
}

func contentID(v interface{}) string {
	b, _ := json.Marshal(v)
	sum := md5.Sum(b)
	return fmt.Sprintf("%x", sum[:8])
}

func toRoadmap(s string) string {
	return hex.EncodeToString([]byte(s))
}

func fromRoadmap(s string) string {
	name, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Sprintf("fromRoadmap: %s", err)
	}
	return string(name)
}
