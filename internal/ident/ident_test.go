package ident

import "testing"

func TestEqualComparesAllFourComponents(t *testing.T) {
	a := Identifier{Path: []string{"list"}, Name: "map", Class: Normal, Annot: []string{"int"}}
	b := Identifier{Path: []string{"list"}, Name: "map", Class: Normal, Annot: []string{"int"}}
	if !a.Equal(b) {
		t.Fatalf("%#v != %#v, want equal", a, b)
	}

	cases := []Identifier{
		{Path: []string{"str"}, Name: "map", Class: Normal, Annot: []string{"int"}},
		{Path: []string{"list"}, Name: "filter", Class: Normal, Annot: []string{"int"}},
		{Path: []string{"list"}, Name: "map", Class: TypeName, Annot: []string{"int"}},
		{Path: []string{"list"}, Name: "map", Class: Normal, Annot: []string{"float"}},
		{Path: []string{"list"}, Name: "map", Class: Normal},
	}
	for _, other := range cases {
		if a.Equal(other) {
			t.Errorf("%#v == %#v, want not equal", a, other)
		}
	}
}

func TestStringRendersPathAndAnnotations(t *testing.T) {
	id := Identifier{Path: []string{"a", "b"}, Name: "name", Annot: []string{"T", "U"}}
	if got, want := id.String(), "a:b:name<T,U>"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestStringWithNoPathOrAnnotations(t *testing.T) {
	id := New("double")
	if got, want := id.String(), "double"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestIsQualified(t *testing.T) {
	if New("double").IsQualified() {
		t.Fatalf("New(...) with no path reported IsQualified() = true")
	}
	if !New("double").WithPath([]string{"mathx"}).IsQualified() {
		t.Fatalf("WithPath(...) did not make IsQualified() true")
	}
}

func TestWithPathCopiesAndDoesNotAliasCaller(t *testing.T) {
	path := []string{"mathx"}
	id := New("double").WithPath(path)
	path[0] = "mutated"
	if id.Path[0] != "mathx" {
		t.Fatalf("WithPath aliased the caller's slice: id.Path = %v", id.Path)
	}
}

func TestClassString(t *testing.T) {
	tests := map[Class]string{Normal: "normal", Operator: "operator", TypeName: "type"}
	for c, want := range tests {
		if got := c.String(); got != want {
			t.Errorf("Class(%d).String() = %q, want %q", c, got, want)
		}
	}
}
