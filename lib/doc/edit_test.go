package doc

import (
	"errors"
	"testing"
)

func TestApplyBuildsDocument(t *testing.T) {
	d, err := Apply(New(),
		Add("catalog"),
		Add("comb"), Attr("id", "1"), Up(),
		Add("comb"), Attr("id", "2"), Set("text"),
	)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if d.Root.Name != "catalog" || len(d.Root.Children) != 2 {
		t.Fatalf("Expected catalog with two combs, got %s", d)
	}
	if d.Root.Children[1].Text != "text" {
		t.Errorf("Expected text on the second comb, got %q", d.Root.Children[1].Text)
	}
}

func TestApplyDoesNotModifyInput(t *testing.T) {
	d := sample()
	before := d.Clone()
	if _, err := Apply(d, XPath("/catalog/comb"), Attr("touched", "yes")); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if !d.Equal(before) {
		t.Errorf("Expected input document to be unchanged")
	}
}

func TestAddIf(t *testing.T) {
	d, _ := Apply(New(), AddIf("catalog"), AddIf("comb[@id='1' and @kind='x']"))
	d, err := Apply(d, AddIf("catalog"), AddIf("comb[@id='1' and @kind='x']"), Attr("seen", "twice"))
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if len(d.Root.Children) != 1 {
		t.Fatalf("Expected AddIf to reuse the existing entry, got %s", d)
	}
	comb := d.Root.Children[0]
	if kind, _ := comb.Attr("kind"); kind != "x" {
		t.Errorf("Expected attribute equalities to be applied, got %v", comb.Attrs)
	}
	if seen, _ := comb.Attr("seen"); seen != "twice" {
		t.Errorf("Expected cursor to be on the entry, got %v", comb.Attrs)
	}

	if _, err := Apply(d, AddIf("/catalog")); err == nil {
		t.Errorf("Expected absolute AddIf step to be rejected")
	}
	if _, err := Apply(d, AddIf("a/b")); err == nil {
		t.Errorf("Expected multi step AddIf to be rejected")
	}
}

func TestRemove(t *testing.T) {
	d, err := Apply(sample(), XPath("/catalog/comb[@owner='alice']"), Remove())
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if got := ids(d.Root.Children); got != "[2]" {
		t.Errorf("Expected only comb 2 to remain, got %s", got)
	}

	d, _ = Apply(sample(), XPath("/catalog"), Remove())
	if !d.IsEmpty() {
		t.Errorf("Expected removing the root to empty the document, got %s", d)
	}

	// no match, no change
	d, _ = Apply(sample(), XPath("/catalog/comb[@id='9']"), Remove())
	if !d.Equal(sample()) {
		t.Errorf("Expected unmatched remove to be a no-op")
	}
}

func TestRelativeXPath(t *testing.T) {
	d, err := Apply(sample(), XPath("/catalog/comb[@id='1']"), XPath("title"), Set("renamed"))
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if d.Root.Children[0].Child("title").Text != "renamed" {
		t.Errorf("Expected title of comb 1 to be renamed")
	}
	if d.Root.Children[1].Child("title").Text != "second" {
		t.Errorf("Expected other titles to be untouched")
	}
}

func TestApplyErrors(t *testing.T) {
	cases := map[string][]Directive{
		"second root":       {Add("a"), Up(), Add("b")},
		"attr on document":  {Attr("a", "b")},
		"text on document":  {Set("x")},
		"remove document":   {Remove()},
		"up from document":  {Up()},
		"invalid name":      {Add("a b")},
		"invalid attr name": {Add("a"), Attr("", "x")},
		"invalid xpath":     {XPath("a[")},
	}
	for name, dirs := range cases {
		if _, err := Apply(New(), dirs...); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}

func TestParseDirectives(t *testing.T) {
	dirs, err := ParseDirectives([]string{
		"add:catalog", "addif:comb[@id='1']", "attr:owner=alice", "set:hello", "up", "xpath:/catalog/comb", "remove",
	})
	if err != nil {
		t.Fatalf("ParseDirectives failed: %v", err)
	}
	if len(dirs) != 7 || dirs[2].String() != `ATTR owner="alice"` {
		t.Errorf("Unexpected directives %v", dirs)
	}
	for _, bad := range []string{"attr:novalue", "jump:1"} {
		if _, err := ParseDirective(bad); err == nil {
			t.Errorf("ParseDirective(%q): expected an error", bad)
		}
	}
}

func TestRequire(t *testing.T) {
	d, err := Apply(sample(), Require("/catalog/comb[@id='2']"), Attr("seen", "yes"))
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if seen, _ := d.Root.Children[1].Attr("seen"); seen != "yes" {
		t.Errorf("Expected the cursor to be on comb 2, got %s", d)
	}

	_, err = Apply(sample(), Require("/catalog/comb[@id='9']"), Attr("seen", "yes"))
	if !errors.Is(err, ErrNoMatch) {
		t.Errorf("Expected ErrNoMatch, got %v", err)
	}
	if _, err := ParseDirective("require:/catalog"); err != nil {
		t.Errorf("ParseDirective(require) failed: %v", err)
	}
}
