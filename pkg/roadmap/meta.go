package roadmap

import "encoding/json"

// Meta describes a persisted roadmap.
type Meta struct {
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Created     Timestamp `json:"created" yaml:"created"`
}

// MarshalList serialises a metadata slice.
func MarshalList(metas []Meta) ([]byte, error) {
	return json.MarshalIndent(metas, "", "  ")
}

// UnmarshalList deserialises a metadata slice and upgrades legacy arrays of
// plain roadmap names.
func UnmarshalList(data []byte) ([]Meta, error) {
	if len(data) == 0 {
		return []Meta{}, nil
	}
	var metas []Meta
	if err := json.Unmarshal(data, &metas); err == nil {
		return metas, nil
	}
	var legacy []string
	if err := json.Unmarshal(data, &legacy); err != nil {
		return nil, err
	}
	metas = make([]Meta, 0, len(legacy))
	for _, name := range legacy {
		metas = append(metas, Meta{Name: name})
	}
	return metas, nil
}

// Snapshot is everything the layout engine needs for one roadmap: its themes
// in display order and its features in creation order.
type Snapshot struct {
	Meta     Meta       `json:"roadmap" yaml:"roadmap"`
	Themes   []*Theme   `json:"themes" yaml:"themes"`
	Features []*Feature `json:"features" yaml:"features"`
}

// Feature finds a feature by id.
func (s *Snapshot) Feature(id string) (*Feature, bool) {
	if s == nil {
		return nil, false
	}
	for _, f := range s.Features {
		if f != nil && f.ID == id {
			return f, true
		}
	}
	return nil, false
}

// RemoveFeature drops the feature with the given id and reports whether it
// was present.
func (s *Snapshot) RemoveFeature(id string) bool {
	if s == nil {
		return false
	}
	for i, f := range s.Features {
		if f != nil && f.ID == id {
			s.Features = append(s.Features[:i], s.Features[i+1:]...)
			return true
		}
	}
	return false
}

// Theme finds a theme by id.
func (s *Snapshot) Theme(id string) (*Theme, bool) {
	if s == nil || id == "" {
		return nil, false
	}
	for _, t := range s.Themes {
		if t != nil && t.ID == id {
			return t, true
		}
	}
	return nil, false
}

// Clone deep-copies the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	cp := &Snapshot{Meta: s.Meta}
	cp.Themes = make([]*Theme, 0, len(s.Themes))
	for _, t := range s.Themes {
		cp.Themes = append(cp.Themes, t.Clone())
	}
	cp.Features = make([]*Feature, 0, len(s.Features))
	for _, f := range s.Features {
		cp.Features = append(cp.Features, f.Clone())
	}
	return cp
}
