package racket

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLanguage(t *testing.T) {
	tests := []struct {
		name string
		src  Source
		want string
	}{
		{
			name: "lang pragma",
			src:  Source{Text: "#lang racket/base\n(define x 1)\n", Cursor: -1},
			want: "racket/base",
		},
		{
			name: "lang pragma typed",
			src:  Source{Text: ";; header comment\n#lang typed/racket\n", Cursor: -1},
			want: "typed/racket",
		},
		{
			name: "module header only",
			src:  Source{Text: "(module+ test racket/base\n  (check-equal? 1 1))\n", Cursor: -1},
			want: "racket/base",
		},
		{
			name: "pragma wins over module header",
			src:  Source{Text: "#lang racket\n(module inner scheme/base 1)\n", Cursor: -1},
			want: "racket",
		},
		{
			name: "no declaration",
			src:  Source{Text: "(define x 1)\n", Cursor: -1},
			want: "#f",
		},
		{
			name: "empty buffer",
			src:  Source{Cursor: -1},
			want: "#f",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Language(tt.src); got != tt.want {
				t.Errorf("Language() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveModule(t *testing.T) {
	tests := []struct {
		name string
		src  Source
		want ModuleRef
	}{
		{
			name: "pragma with file is the file itself",
			src:  Source{Text: "#lang racket/base\n", Path: "/home/user/code.rkt", Cursor: -1},
			want: ModuleRef{Kind: ModulePath, Path: "/home/user/code.rkt"},
		},
		{
			name: "pragma without backing file resolves to nothing",
			src:  Source{Text: "#lang racket/base\n", Cursor: -1},
			want: NoModule,
		},
		{
			name: "submodule with file",
			src: Source{
				Text:   "#lang racket/base\n(module+ test racket/base\n  1)\n",
				Path:   "/home/user/code.rkt",
				Cursor: -1,
			},
			want: ModuleRef{Kind: ModuleSubmodule, Name: "test", Path: "/home/user/code.rkt"},
		},
		{
			name: "submodule without backing file is a bare name",
			src:  Source{Text: "(module+ test racket/base\n  1)\n", Cursor: -1},
			want: ModuleRef{Kind: ModuleSymbol, Name: "test"},
		},
		{
			name: "no declarations at all",
			src:  Source{Text: "(define x 1)\n", Path: "/home/user/code.rkt", Cursor: -1},
			want: NoModule,
		},
		{
			name: "cursor before the module form",
			src: Source{
				Text:   "#lang racket\n(define x 1)\n(module inner racket/base 1)\n",
				Path:   "/home/user/code.rkt",
				Cursor: 20,
			},
			want: ModuleRef{Kind: ModulePath, Path: "/home/user/code.rkt"},
		},
		{
			name: "cursor inside the module form",
			src: Source{
				Text:   "#lang racket\n(module inner racket/base\n  (define y 2))\n",
				Path:   "/home/user/code.rkt",
				Cursor: 40,
			},
			want: ModuleRef{Kind: ModuleSubmodule, Name: "inner", Path: "/home/user/code.rkt"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveModule(tt.src)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ResolveModule() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolveModuleIdempotent(t *testing.T) {
	src := Source{
		Text:   "#lang racket/base\n(module+ test racket/base 1)\n",
		Path:   "/tmp/a.rkt",
		Cursor: -1,
	}
	first := ResolveModule(src)
	second := ResolveModule(src)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("ResolveModule() not idempotent (-first +second):\n%s", diff)
	}
}

func TestLoadForm(t *testing.T) {
	tests := []struct {
		name string
		ref  ModuleRef
		want string
	}{
		{
			name: "file path is quoted",
			ref:  ModuleRef{Kind: ModulePath, Path: "/tmp/a.rkt"},
			want: `"/tmp/a.rkt"`,
		},
		{
			name: "submodule is a submod list",
			ref:  ModuleRef{Kind: ModuleSubmodule, Name: "test", Path: "/tmp/a.rkt"},
			want: `(submod "/tmp/a.rkt" test)`,
		},
		{
			name: "symbol is bare",
			ref:  ModuleRef{Kind: ModuleSymbol, Name: "racket/string"},
			want: "racket/string",
		},
		{
			name: "no module is the false token",
			ref:  NoModule,
			want: "#f",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ref.LoadForm(); got != tt.want {
				t.Errorf("LoadForm() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsZero(t *testing.T) {
	if !NoModule.IsZero() {
		t.Error("NoModule should be zero")
	}
	if !(ModuleRef{Kind: ModuleSymbol, Name: "  "}).IsZero() {
		t.Error("blank symbol should be zero")
	}
	if (ModuleRef{Kind: ModulePath, Path: "/tmp/a.rkt"}).IsZero() {
		t.Error("path reference is not zero")
	}
}
