package nav

import "testing"

func TestPostPath(t *testing.T) {
	if got := PostPath("abc"); got != "/post/abc" {
		t.Errorf("PostPath(abc) = %q", got)
	}
}

func TestParsePostPath(t *testing.T) {
	cases := []struct {
		path     string
		wantSlug string
		wantOK   bool
	}{
		{"/post/abc", "abc", true},
		{"/post/hello-world-42", "hello-world-42", true},
		{"/", "", false},
		{"", "", false},
		{"/post/", "", false},
		{"/post/a/b", "", false},
		{"/posts/abc", "", false},
		{"/about", "", false},
	}

	for _, tc := range cases {
		slug, ok := ParsePostPath(tc.path)
		if slug != tc.wantSlug || ok != tc.wantOK {
			t.Errorf("ParsePostPath(%q) = (%q, %v), want (%q, %v)",
				tc.path, slug, ok, tc.wantSlug, tc.wantOK)
		}
	}
}

func TestStack_PushTruncatesForward(t *testing.T) {
	s := NewStack("/")
	s.Push("/post/a")
	s.Push("/post/b")

	if path, ok := s.Back(); !ok || path != "/post/a" {
		t.Fatalf("Back() = (%q, %v)", path, ok)
	}

	// Pushing from the middle drops the forward entries.
	s.Push("/post/c")
	if path, ok := s.Forward(); ok {
		t.Fatalf("Forward after push should fail, got %q", path)
	}
	if s.Path() != "/post/c" {
		t.Errorf("Path() = %q, want /post/c", s.Path())
	}
}

func TestStack_BackStopsAtOldest(t *testing.T) {
	s := NewStack("/")
	if path, ok := s.Back(); ok {
		t.Fatalf("Back at oldest entry should fail, got %q", path)
	}
	if s.Path() != "/" {
		t.Errorf("Path() = %q, want /", s.Path())
	}
}
