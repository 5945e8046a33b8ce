// Package synth compiles each spec's finalized property tree and socket set
// into the source of its authoritative definition function. Generation is
// deterministic: identical spec content yields byte-identical source, so
// regenerations produce stable diffs.
package synth

import (
	"fmt"
	"strings"

	"github.com/artpar/specforge/domain/spec"
)

const stageName = "synthesize-asset-funcs"

// AssetFuncName is the name of the definition function bound to every spec.
const AssetFuncName = "definition"

// Synthesizer generates the asset definition function for every spec.
type Synthesizer struct{}

// NewSynthesizer creates the asset function synthesizer.
func NewSynthesizer() Synthesizer {
	return Synthesizer{}
}

// Name implements pipeline.Stage.
func (Synthesizer) Name() string { return stageName }

// Run implements pipeline.Stage. An existing binding is replaced so the
// stage can be re-run without duplicating the function.
func (Synthesizer) Run(specs []spec.PkgSpec) ([]spec.PkgSpec, error) {
	for i := range specs {
		s := &specs[i]
		fn := spec.Func{
			Name:   AssetFuncName,
			Kind:   spec.FuncAsset,
			Origin: spec.OriginGenerated,
			Code:   Generate(*s),
		}

		replaced := false
		for j := range s.Funcs {
			if s.Funcs[j].Kind == spec.FuncAsset && s.Funcs[j].Name == AssetFuncName {
				s.Funcs[j] = fn
				replaced = true
				break
			}
		}
		if !replaced {
			s.Funcs = append(s.Funcs, fn)
		}
	}
	return specs, nil
}

// Generate renders the definition function source for one spec. Properties
// and sockets are emitted in their stored order.
func Generate(s spec.PkgSpec) string {
	var b strings.Builder
	b.WriteString("function main() {\n")
	b.WriteString("    const asset = new AssetBuilder();\n")

	if len(s.Props) > 0 {
		b.WriteString("\n")
	}
	for _, p := range s.Props {
		b.WriteString("    asset.addProp(")
		writeProp(&b, p, 1)
		b.WriteString(");\n")
	}

	if len(s.Sockets) > 0 {
		b.WriteString("\n")
	}
	for _, sock := range s.Sockets {
		method := "addInputSocket"
		if sock.Direction == spec.SocketOutput {
			method = "addOutputSocket"
		}
		fmt.Fprintf(&b, "    asset.%s(new SocketBuilder().setName(%q).setKind(%q).build());\n",
			method, sock.Name, sock.Kind)
	}

	b.WriteString("\n    return asset.build();\n")
	b.WriteString("}\n")
	return b.String()
}

func writeProp(b *strings.Builder, p spec.Prop, depth int) {
	pad := strings.Repeat("    ", depth+1)

	fmt.Fprintf(b, "new PropBuilder()\n%s.setName(%q)\n%s.setKind(%q)", pad, p.Name, pad, p.Kind)
	if p.Required {
		fmt.Fprintf(b, "\n%s.setRequired(true)", pad)
	}
	if p.ReadOnly {
		fmt.Fprintf(b, "\n%s.setReadOnly(true)", pad)
	}
	if p.Ref != "" {
		fmt.Fprintf(b, "\n%s.setRef(%q)", pad, p.Ref)
	}
	for _, c := range p.Children {
		fmt.Fprintf(b, "\n%s.addChild(", pad)
		writeProp(b, c, depth+1)
		b.WriteString(")")
	}
	if p.Element != nil {
		fmt.Fprintf(b, "\n%s.setElement(", pad)
		writeProp(b, *p.Element, depth+1)
		b.WriteString(")")
	}
	if p.Value != nil {
		fmt.Fprintf(b, "\n%s.setValue(", pad)
		writeProp(b, *p.Value, depth+1)
		b.WriteString(")")
	}
	fmt.Fprintf(b, "\n%s.build()", pad)
}
