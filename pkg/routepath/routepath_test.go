package routepath

import (
	"errors"
	"testing"
)

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr error
	}{
		{"", "/", nil},
		{"/", "/", nil},
		{"/produto", "/produto", nil},
		{"/produto/", "/produto", nil},
		{"produto", "/produto", nil},
		{"//produto//", "/produto", nil},
		{"/a/./b", "/a/b", nil},
		{"/a/../produto", "/produto", nil},
		{"/%C3%A1", "/%C3%A1", nil},
		{"/../x", "", ErrPathEscapesRoot},
		{`/a\b`, "", ErrBackslashInPath},
		{"/a%00", "", ErrNullByteInPath},
		{"/a\x00", "", ErrNullByteInPath},
		{"/a%G1", "", ErrInvalidPercentEscape},
		{"/a%2", "", ErrInvalidPercentEscape},
	}

	for _, tt := range tests {
		got, err := Canonicalize(tt.in)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Canonicalize(%q) error = %v, want %v", tt.in, err, tt.wantErr)
			}
			continue
		}
		if err != nil {
			t.Errorf("Canonicalize(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Canonicalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	target, err := Parse("/produto/?cor=azul#detalhes")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if target.Path != "/produto" || target.Query != "cor=azul" || target.Hash != "detalhes" {
		t.Errorf("Parse = %+v", target)
	}
	if got := target.FullPath(); got != "/produto?cor=azul#detalhes" {
		t.Errorf("FullPath = %q", got)
	}

	for _, in := range []string{"http://evil.example/", "https://x/", "//x/y"} {
		if _, err := Parse(in); !errors.Is(err, ErrAbsoluteURL) {
			t.Errorf("Parse(%q) error = %v, want ErrAbsoluteURL", in, err)
		}
	}
}

func TestSegments(t *testing.T) {
	if got := Segments("/"); got != nil {
		t.Errorf("Segments(/) = %v, want nil", got)
	}
	got := Segments("/a/b")
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("Segments(/a/b) = %v", got)
	}
}

func TestNormalizeBase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"/", ""},
		{" / ", ""},
		{"loja", "/loja"},
		{"/loja/", "/loja"},
		{"/loja//app/", "/loja/app"},
		{"https://cdn.example.com/loja/", "/loja"},
		{"https://cdn.example.com", ""},
	}
	for _, tt := range tests {
		got, err := NormalizeBase(tt.in)
		if err != nil {
			t.Errorf("NormalizeBase(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("NormalizeBase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	if _, err := NormalizeBase("/../x"); err == nil {
		t.Error("NormalizeBase should reject paths escaping root")
	}
}

func TestJoinAndStripBase(t *testing.T) {
	tests := []struct {
		base, path, joined string
	}{
		{"", "/", "/"},
		{"", "/produto", "/produto"},
		{"/loja", "/", "/loja/"},
		{"/loja", "/produto", "/loja/produto"},
		{"/loja", "/produto?x=1", "/loja/produto?x=1"},
	}
	for _, tt := range tests {
		if got := JoinBase(tt.base, tt.path); got != tt.joined {
			t.Errorf("JoinBase(%q, %q) = %q, want %q", tt.base, tt.path, got, tt.joined)
		}
	}

	strip := []struct {
		base, urlPath, want string
		ok                  bool
	}{
		{"", "/produto", "/produto", true},
		{"", "", "/", true},
		{"/loja", "/loja", "/", true},
		{"/loja", "/loja/", "/", true},
		{"/loja", "/loja/produto", "/produto", true},
		{"/loja", "/lojas/produto", "", false},
		{"/loja", "/produto", "", false},
	}
	for _, tt := range strip {
		got, ok := StripBase(tt.base, tt.urlPath)
		if got != tt.want || ok != tt.ok {
			t.Errorf("StripBase(%q, %q) = %q, %v; want %q, %v", tt.base, tt.urlPath, got, ok, tt.want, tt.ok)
		}
	}

	if BaseHref("") != "/" || BaseHref("/loja") != "/loja/" {
		t.Error("BaseHref should end with a slash")
	}
}
