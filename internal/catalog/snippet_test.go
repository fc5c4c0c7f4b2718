package catalog_test

import (
	"testing"
	"time"

	"ojplay/internal/catalog"
	"ojplay/internal/testutil"
)

func TestResolveSnippet(t *testing.T) {
	deletedAt := time.Now()
	p := &catalog.Problem{
		ID: 1,
		Snippets: []catalog.BoilerplateSnippet{
			{Language: "python", CodeSnippet: "def old(): pass", DeletedAt: &deletedAt},
			{Language: "javascript", CodeSnippet: "function f() {}"},
			{Language: "python", CodeSnippet: "def f(): pass"},
			{Language: "python", CodeSnippet: "def g(): pass"},
		},
	}

	tests := []struct {
		name string
		lang string
		want string
	}{
		{name: "exact match", lang: "javascript", want: "function f() {}"},
		{name: "first live match wins", lang: "python", want: "def f(): pass"},
		{name: "no match", lang: "cpp", want: ""},
		{name: "case sensitive", lang: "Python", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, catalog.ResolveSnippet(p, tt.lang), tt.want)
		})
	}
}

func TestResolveSnippetNilProblem(t *testing.T) {
	testutil.AssertEqual(t, catalog.ResolveSnippet(nil, "python"), "")
}
