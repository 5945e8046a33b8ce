package spec

import "testing"

func objectProp(name, path string) Prop {
	return Prop{
		Name: name,
		Kind: KindObject,
		Path: path,
		Children: []Prop{
			{Name: "deadLetterTargetArn", Kind: KindString, Path: path + "/deadLetterTargetArn"},
			{Name: "maxReceiveCount", Kind: KindNumber, Path: path + "/maxReceiveCount"},
		},
	}
}

func TestShapeHashIgnoresNameAndPath(t *testing.T) {
	a := objectProp("RedrivePolicy", "RedrivePolicy")
	b := objectProp("FailurePolicy", "Deep/Nested/FailurePolicy")

	if ShapeHash(a) != ShapeHash(b) {
		t.Error("structurally identical shapes at different paths should hash equal")
	}
}

func TestShapeHashIgnoresMemberOrder(t *testing.T) {
	a := objectProp("P", "P")
	b := a.Clone()
	b.Children[0], b.Children[1] = b.Children[1], b.Children[0]

	if ShapeHash(a) != ShapeHash(b) {
		t.Error("member order should not affect the shape hash")
	}
}

func TestShapeHashSensitiveToMembers(t *testing.T) {
	a := objectProp("P", "P")

	b := a.Clone()
	b.Children[1].Kind = KindString
	if ShapeHash(a) == ShapeHash(b) {
		t.Error("member kind change should change the shape hash")
	}

	c := a.Clone()
	c.Children = append(c.Children, Prop{Name: "extra", Kind: KindBoolean})
	if ShapeHash(a) == ShapeHash(c) {
		t.Error("added member should change the shape hash")
	}
}

func TestFingerprintSurvivesRename(t *testing.T) {
	a := PkgSpec{
		Name:    "Example::Queue::Resource",
		Props:   []Prop{{Name: "QueueArn", Kind: KindString, Path: "QueueArn", ReadOnly: true}},
		Sockets: []Socket{{Name: "QueueArn", Kind: KindString, Direction: SocketOutput}},
	}
	b := a.Clone()
	b.Name = "Example::Queue::ResourceV2"

	if Fingerprint(a) != Fingerprint(b) {
		t.Error("fingerprint should not depend on the spec name")
	}
}

func TestFingerprintSensitiveToStructure(t *testing.T) {
	a := PkgSpec{
		Name:  "T",
		Props: []Prop{{Name: "Arn", Kind: KindString, Path: "Arn", ReadOnly: true}},
	}

	b := a.Clone()
	b.Props[0].Kind = KindNumber
	if Fingerprint(a) == Fingerprint(b) {
		t.Error("prop kind change should change the fingerprint")
	}

	c := a.Clone()
	c.Sockets = []Socket{{Name: "Arn", Kind: KindString, Direction: SocketOutput}}
	if Fingerprint(a) == Fingerprint(c) {
		t.Error("output socket change should change the fingerprint")
	}
}

func TestFingerprintIgnoresInputSockets(t *testing.T) {
	a := PkgSpec{
		Name:  "T",
		Props: []Prop{{Name: "Arn", Kind: KindString, Path: "Arn"}},
	}
	b := a.Clone()
	b.Sockets = []Socket{{Name: "credential", Kind: KindString, Direction: SocketInput}}

	if Fingerprint(a) != Fingerprint(b) {
		t.Error("input sockets should not affect the fingerprint")
	}
}
