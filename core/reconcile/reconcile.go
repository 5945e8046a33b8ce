// Package reconcile matches freshly generated specs against previously
// emitted ones so regenerating the pipeline does not orphan references held
// by existing user data. A schema variant id is never reused for two
// different logical entities: any match that would merge unrelated resources
// is a fatal conflict, not a silent merge.
package reconcile

import (
	"fmt"
	"sort"
	"strings"

	"github.com/artpar/specforge/domain/spec"
	"github.com/artpar/specforge/ports"
)

const stageName = "reconcile-identity"

// ConflictError reports a schema variant id contested by two logical
// entities. It aborts the whole run.
type ConflictError struct {
	// SchemaID is the contested identity.
	SchemaID string

	// Claimants are the spec names that would share the id.
	Claimants []string
}

// Error returns the conflict message.
func (e *ConflictError) Error() string {
	return fmt.Sprintf("identity conflict: schema id %q claimed by %s",
		e.SchemaID, strings.Join(e.Claimants, " and "))
}

// Reconciler assigns or carries forward schema variant identities.
type Reconciler struct {
	prior map[string]spec.PkgSpec
	ids   ports.IDGenerator
}

// NewReconciler creates a reconciler over the previously emitted specs.
func NewReconciler(prior map[string]spec.PkgSpec, ids ports.IDGenerator) *Reconciler {
	return &Reconciler{prior: prior, ids: ids}
}

// Name implements pipeline.Stage.
func (*Reconciler) Name() string { return stageName }

// Run implements pipeline.Stage. Matching order: exact name match first,
// then a fuzzy structural-fingerprint fallback for renamed types. On match
// the prior id is carried forward and user-authored prior functions of
// matching kind and name are preserved over generated defaults. Unmatched
// specs get a freshly minted id.
func (r *Reconciler) Run(specs []spec.PkgSpec) ([]spec.PkgSpec, error) {
	if err := r.checkPriorIntegrity(); err != nil {
		return nil, err
	}

	claimed := make(map[string]string) // schema id -> new spec name
	usedPrior := make(map[string]bool) // prior spec name -> claimed
	matched := make(map[int]bool)      // new spec index -> matched

	fps := make([]string, len(specs))
	for i := range specs {
		fps[i] = spec.Fingerprint(specs[i])
	}

	// Pass 1: exact (type name, variant name) match.
	for i := range specs {
		p, ok := r.prior[specs[i].Name]
		if !ok || p.SchemaID == "" {
			continue
		}
		if other, taken := claimed[p.SchemaID]; taken {
			return nil, &ConflictError{SchemaID: p.SchemaID, Claimants: []string{other, specs[i].Name}}
		}
		claimed[p.SchemaID] = specs[i].Name
		usedPrior[specs[i].Name] = true
		matched[i] = true
		adopt(&specs[i], p)
	}

	// Pass 2: fuzzy fallback for renamed types. A match requires equal
	// structural fingerprints with exactly one candidate on each side;
	// any tie is left unmatched rather than guessed.
	newByFP := make(map[string][]int)
	for i := range specs {
		if matched[i] {
			continue
		}
		newByFP[fps[i]] = append(newByFP[fps[i]], i)
	}

	priorByFP := make(map[string][]string)
	for name, p := range r.prior {
		if usedPrior[name] || p.SchemaID == "" {
			continue
		}
		priorByFP[spec.Fingerprint(p)] = append(priorByFP[spec.Fingerprint(p)], name)
	}
	for fp := range priorByFP {
		sort.Strings(priorByFP[fp])
	}

	for i := range specs {
		if matched[i] {
			continue
		}
		fp := fps[i]
		candidates := priorByFP[fp]
		if len(candidates) == 0 {
			continue
		}
		if len(candidates) > 1 || len(newByFP[fp]) > 1 {
			specs[i].Warn(stageName, "ambiguous structural match (%d prior, %d new candidates), minting new identity",
				len(candidates), len(newByFP[fp]))
			continue
		}

		p := r.prior[candidates[0]]
		if other, taken := claimed[p.SchemaID]; taken {
			return nil, &ConflictError{SchemaID: p.SchemaID, Claimants: []string{other, specs[i].Name}}
		}
		claimed[p.SchemaID] = specs[i].Name
		usedPrior[candidates[0]] = true
		matched[i] = true
		adopt(&specs[i], p)
		specs[i].Warn(stageName, "identity carried forward from renamed spec %q by structural fingerprint", candidates[0])
	}

	// Pass 3: mint fresh identities for everything left.
	for i := range specs {
		if matched[i] {
			continue
		}
		specs[i].SchemaID = r.ids.New()
	}

	return specs, nil
}

// checkPriorIntegrity rejects a prior collection that already carries one
// schema id for two entities; reconciling against it could only spread the
// corruption.
func (r *Reconciler) checkPriorIntegrity() error {
	byID := make(map[string]string)
	names := make([]string, 0, len(r.prior))
	for name := range r.prior {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		id := r.prior[name].SchemaID
		if id == "" {
			continue
		}
		if other, ok := byID[id]; ok {
			return &ConflictError{SchemaID: id, Claimants: []string{other, name}}
		}
		byID[id] = name
	}
	return nil
}

// adopt carries the prior identity onto the new spec and preserves
// user-authored prior functions over freshly generated defaults. This is
// where the conflict deferred by the function generators is resolved.
func adopt(s *spec.PkgSpec, prior spec.PkgSpec) {
	s.SchemaID = prior.SchemaID

	for _, pf := range prior.Funcs {
		if pf.Origin != spec.OriginUser {
			continue
		}
		replaced := false
		for j := range s.Funcs {
			if s.Funcs[j].Kind == pf.Kind && s.Funcs[j].Name == pf.Name {
				s.Funcs[j] = pf
				replaced = true
				break
			}
		}
		if !replaced {
			s.Funcs = append(s.Funcs, pf)
		}
	}
}
