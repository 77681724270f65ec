package doc

import (
	"strings"
	"testing"
)

func sample() *Document {
	d := NewWithRoot("catalog")
	a := d.Root.AddChild("comb")
	a.SetAttr("id", "1")
	a.SetAttr("owner", "alice")
	a.AddChild("title").Text = "first"
	b := d.Root.AddChild("comb")
	b.SetAttr("id", "2")
	b.SetAttr("owner", "bob")
	b.AddChild("title").Text = "second"
	c := d.Root.AddChild("comb")
	c.SetAttr("id", "3")
	c.SetAttr("owner", "alice")
	c.SetAttr("archived", "true")
	return d
}

func TestEmpty(t *testing.T) {
	var nilDoc *Document
	if !nilDoc.IsEmpty() || !New().IsEmpty() {
		t.Errorf("Expected nil and new documents to be empty")
	}
	if NewWithRoot("r").IsEmpty() {
		t.Errorf("Expected a document with a root not to be empty")
	}
	if nilDoc.Size() != 0 || nilDoc.String() != "" {
		t.Errorf("Expected empty size and rendering")
	}
	if !nilDoc.Clone().IsEmpty() {
		t.Errorf("Expected the clone of nil to be empty")
	}
}

func TestCloneAndEqual(t *testing.T) {
	d := sample()
	c := d.Clone()
	if !d.Equal(c) {
		t.Fatalf("Expected clone to equal the original")
	}
	c.Root.Children[0].SetAttr("owner", "mallory")
	if d.Equal(c) {
		t.Errorf("Expected modified clone to differ")
	}
	if owner, _ := d.Root.Children[0].Attr("owner"); owner != "alice" {
		t.Errorf("Expected original to be unaffected, got %s", owner)
	}
	if !New().Equal(nil) {
		t.Errorf("Expected empty documents to be equal")
	}
}

func TestAttributes(t *testing.T) {
	n := &Node{Name: "comb", Attrs: []Attribute{{Name: "id", Value: "1"}}}
	n.SetAttr("owner", "alice")
	n.SetAttr("id", "2")
	want := []Attribute{{Name: "id", Value: "2"}, {Name: "owner", Value: "alice"}}
	if len(n.Attrs) != len(want) || n.Attrs[0] != want[0] || n.Attrs[1] != want[1] {
		t.Errorf("Expected %v, got %v", want, n.Attrs)
	}

	// the Attr directive and the Attribute type live side by side
	d, err := Apply(&Document{Root: n}, XPath("/comb"), Attr("kind", "x"))
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if kind, ok := d.Root.Attr("kind"); !ok || kind != "x" {
		t.Errorf("Expected kind=x, got %v", d.Root.Attrs)
	}
}

func TestSize(t *testing.T) {
	d := NewWithRoot("ab")
	d.Root.SetAttr("k", "vvv")
	d.Root.Text = "text"
	// "ab" + "k" + "vvv" + "text"
	if got := d.Size(); got != 10 {
		t.Errorf("Expected size 10, got %d", got)
	}
}

func TestString(t *testing.T) {
	s := sample().String()
	for _, want := range []string{"<catalog>", "<comb id='1' owner='alice'>", "<title>first</title>", "</catalog>"} {
		if !strings.Contains(s, want) {
			t.Errorf("Expected rendering to contain %q:\n%s", want, s)
		}
	}
}

func TestNodeHelpers(t *testing.T) {
	n := &Node{Name: "n"}
	n.SetAttr("a", "1")
	n.SetAttr("a", "2")
	if len(n.Attrs) != 1 {
		t.Errorf("Expected SetAttr to replace, got %v", n.Attrs)
	}
	n.AddChild("x")
	if n.Child("x") == nil || n.Child("y") != nil {
		t.Errorf("Expected Child to find x only")
	}
}
