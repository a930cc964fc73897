package token

import "testing"

func scanAll(src string) []RawToken {
	l := New(src, "<test>")
	var toks []RawToken
	for {
		tr := l.NextToken()
		toks = append(toks, tr.Inner)
		if tr.Inner.Kind == RawEOF {
			return toks
		}
	}
}

func TestLexerScansIntAndFloatLiterals(t *testing.T) {
	toks := scanAll("42 3.5")
	if toks[0].Kind != RawInlined || toks[0].Lit.Kind != LitInt || toks[0].Lit.Int != 42 {
		t.Fatalf("toks[0] = %#v, want int literal 42", toks[0])
	}
	if toks[1].Kind != RawInlined || toks[1].Lit.Kind != LitFloat || toks[1].Lit.Flt != 3.5 {
		t.Fatalf("toks[1] = %#v, want float literal 3.5", toks[1])
	}
}

func TestLexerScansBoolAndNothingLiterals(t *testing.T) {
	toks := scanAll("true false nothing")
	want := []Inlined{
		{Kind: LitBool, Bool: true},
		{Kind: LitBool, Bool: false},
		{Kind: LitNothing},
	}
	for i, w := range want {
		if toks[i].Lit != w {
			t.Errorf("toks[%d].Lit = %#v, want %#v", i, toks[i].Lit, w)
		}
	}
}

func TestLexerSplitsQualifiedIdentifierOnColons(t *testing.T) {
	toks := scanAll("mathx:double")
	if toks[0].Kind != RawIdentifier {
		t.Fatalf("toks[0].Kind = %v, want RawIdentifier", toks[0].Kind)
	}
	ident := toks[0].Ident
	if len(ident.Path) != 1 || ident.Path[0] != "mathx" || ident.Name != "double" {
		t.Fatalf("ident = %#v, want Path=[mathx] Name=double", ident)
	}
}

func TestLexerRecognizesHeaderAndKeywords(t *testing.T) {
	toks := scanAll("fn if elif else then first and where use type enum")
	if toks[0].Kind != RawHeader || toks[0].Header != HeaderFn {
		t.Fatalf("toks[0] = %#v, want header fn", toks[0])
	}
	wantKeys := []Key{KeyIf, KeyElif, KeyElse, KeyThen, KeyFirst, KeyAnd}
	idx := 1
	for _, k := range wantKeys {
		if toks[idx].Kind != RawKey || toks[idx].Key != k {
			t.Fatalf("toks[%d] = %#v, want key %v", idx, toks[idx], k)
		}
		idx++
	}
	wantHeaders := []HeaderKind{HeaderWhere, HeaderUse, HeaderType, HeaderEnum}
	for _, h := range wantHeaders {
		if toks[idx].Kind != RawHeader || toks[idx].Header != h {
			t.Fatalf("toks[%d] = %#v, want header %v", idx, toks[idx], h)
		}
		idx++
	}
}

func TestLexerSkipsLineComments(t *testing.T) {
	toks := scanAll("1 -- a comment\n2")
	if toks[0].Lit.Int != 1 {
		t.Fatalf("toks[0] = %#v, want 1", toks[0])
	}
	if toks[1].Kind != RawNewLine {
		t.Fatalf("toks[1] = %#v, want newline (comment skipped)", toks[1])
	}
	if toks[2].Lit.Int != 2 {
		t.Fatalf("toks[2] = %#v, want 2", toks[2])
	}
}

func TestLexerScansUnimplementedMarker(t *testing.T) {
	toks := scanAll("??")
	if toks[0].Kind != RawUnimplemented {
		t.Fatalf("toks[0] = %#v, want RawUnimplemented", toks[0])
	}
}

func TestLexerScansPunctuation(t *testing.T) {
	toks := scanAll("( ) [ ] { } , . \\ | # = ->")
	want := []Key{
		KeyParenOpen, KeyParenClose, KeyListOpen, KeyListClose,
		KeyRecordOpen, KeyRecordClose, KeyComma, KeyDot, KeyBackslash,
		KeyPipe, KeyHash, KeyAssign, KeyArrow,
	}
	for i, k := range want {
		if toks[i].Kind != RawKey || toks[i].Key != k {
			t.Fatalf("toks[%d] = %#v, want key %v", i, toks[i], k)
		}
	}
}

func TestNormalizeStripsBOM(t *testing.T) {
	src := append([]byte{0xEF, 0xBB, 0xBF}, []byte("fn")...)
	got := Normalize(src)
	if string(got) != "fn" {
		t.Fatalf("Normalize(bom+fn) = %q, want %q", got, "fn")
	}
}
