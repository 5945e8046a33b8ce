// Package extract promotes reusable nested property shapes to independent
// sub-asset specs. Extracted specs enter the collection mid-pipeline and
// flow through all remaining stages like originally-loaded specs.
package extract

import "github.com/artpar/specforge/domain/spec"

const stageName = "extract-sub-assets"

// DefaultThreshold is the minimum member count for a nested shape to be
// promoted.
const DefaultThreshold = 2

// Extractor promotes nested Object and Array(Object) shapes at or above the
// complexity threshold. Candidates are deduplicated by structural hash, so a
// shape produces exactly one sub-asset no matter how often or where it
// occurs; every occurrence is replaced by a reference to it.
type Extractor struct {
	threshold int
}

// NewExtractor creates an extractor. threshold <= 0 selects DefaultThreshold.
func NewExtractor(threshold int) Extractor {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return Extractor{threshold: threshold}
}

// Name implements pipeline.Stage.
func (Extractor) Name() string { return stageName }

// Run implements pipeline.Stage. Newly created sub-assets are themselves
// scanned, so shapes nested inside extracted shapes are promoted too; the
// structural-hash dedup bounds recursion on self-referential shapes.
func (e Extractor) Run(specs []spec.PkgSpec) ([]spec.PkgSpec, error) {
	st := &state{
		threshold: e.threshold,
		byHash:    make(map[string]string),
		taken:     make(map[string]bool),
	}
	for i := range specs {
		st.taken[specs[i].Name] = true
	}

	// Index loop: sub-assets appended during the pass are scanned as well.
	for i := 0; i < len(specs); i++ {
		created := st.scan(&specs[i])
		specs = append(specs, created...)
	}

	return specs, nil
}

type state struct {
	threshold int

	// byHash maps structural shape hash to the sub-asset spec name.
	byHash map[string]string

	// taken tracks spec names already present in the collection.
	taken map[string]bool
}

func (st *state) scan(s *spec.PkgSpec) []spec.PkgSpec {
	var created []spec.PkgSpec
	for i := range s.Props {
		p := &s.Props[i]
		st.visit(s.Name, p, p.Name, &created)
	}
	return created
}

func (st *state) visit(owner string, p *spec.Prop, nameHint string, created *[]spec.PkgSpec) {
	switch p.Kind {
	case spec.KindObject:
		if p.Ref == "" && len(p.Children) >= st.threshold {
			st.promote(owner, p, nameHint, created)
			return
		}
		for i := range p.Children {
			c := &p.Children[i]
			st.visit(owner, c, c.Name, created)
		}
	case spec.KindArray:
		if p.Element != nil {
			st.visit(owner, p.Element, nameHint, created)
		}
	case spec.KindMap:
		if p.Value != nil {
			st.visit(owner, p.Value, nameHint, created)
		}
	}
}

// promote replaces the inline shape with a reference marker, creating the
// sub-asset spec on first encounter of the shape.
func (st *state) promote(owner string, p *spec.Prop, nameHint string, created *[]spec.PkgSpec) {
	h := spec.ShapeHash(*p)

	name, ok := st.byHash[h]
	if !ok {
		name = st.subAssetName(nameHint, h)
		st.byHash[h] = name
		st.taken[name] = true

		sub := spec.PkgSpec{Name: name, Parent: owner}
		for _, c := range p.Children {
			cc := c.Clone()
			rebasePaths(&cc, "")
			sub.Props = append(sub.Props, cc)
		}
		*created = append(*created, sub)
	}

	p.Ref = name
	p.Children = nil
}

func (st *state) subAssetName(hint, hash string) string {
	if hint == "" {
		hint = "shape"
	}
	if !st.taken[hint] {
		return hint
	}
	return hint + "-" + hash[:8]
}

// rebasePaths rewrites a cloned subtree's paths as if its root were a
// top-level property of the new sub-asset spec.
func rebasePaths(p *spec.Prop, prefix string) {
	p.Path = prefix + p.Name
	for i := range p.Children {
		rebasePaths(&p.Children[i], p.Path+"/")
	}
	if p.Element != nil {
		rebaseSynthetic(p.Element, p.Path+"[]")
	}
	if p.Value != nil {
		rebaseSynthetic(p.Value, p.Path+"{}")
	}
}

func rebaseSynthetic(p *spec.Prop, path string) {
	p.Path = path
	for i := range p.Children {
		rebasePaths(&p.Children[i], p.Path+"/")
	}
	if p.Element != nil {
		rebaseSynthetic(p.Element, p.Path+"[]")
	}
	if p.Value != nil {
		rebaseSynthetic(p.Value, p.Path+"{}")
	}
}
