package rewrite

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"extswap/internal/domain"
	"extswap/internal/errors"
)

func newDefaultRewriter(t *testing.T) *Rewriter {
	t.Helper()
	r, err := NewRewriter(domain.DefaultRules(domain.DefaultAlias, domain.DefaultFromExt, domain.DefaultToExt))
	require.NoError(t, err)
	return r
}

func TestRewriter_Rewrite(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		expected     string
		changed      bool
		replacements int
	}{
		{
			name:         "aliased double quoted",
			input:        `import { a } from "$lib/utils.js";`,
			expected:     `import { a } from "$lib/utils.ts";`,
			changed:      true,
			replacements: 1,
		},
		{
			name:         "aliased single quoted",
			input:        `import { a } from '$lib/stores/app.js';`,
			expected:     `import { a } from '$lib/stores/app.ts';`,
			changed:      true,
			replacements: 1,
		},
		{
			name:         "relative single quoted",
			input:        `import h from './helpers.js';`,
			expected:     `import h from './helpers.ts';`,
			changed:      true,
			replacements: 1,
		},
		{
			name:         "parent relative double quoted",
			input:        `import o from "../other.js";`,
			expected:     `import o from "../other.ts";`,
			changed:      true,
			replacements: 1,
		},
		{
			name:     "json extension untouched",
			input:    `import data from "$lib/data.json";`,
			expected: `import data from "$lib/data.json";`,
		},
		{
			name:     "mjs extension untouched",
			input:    `import m from './mod.mjs';`,
			expected: `import m from './mod.mjs';`,
		},
		{
			name:     "non-import content",
			input:    "const x = 1;\nexport default x;\n",
			expected: "const x = 1;\nexport default x;\n",
		},
		{
			name:     "bare package specifier untouched",
			input:    `import { writable } from "svelte/store.js";`,
			expected: `import { writable } from "svelte/store.js";`,
		},
		{
			name:     "other alias untouched",
			input:    `import x from "$app/navigation.js";`,
			expected: `import x from "$app/navigation.js";`,
		},
		{
			name:     "already rewritten",
			input:    `import { a } from "$lib/utils.ts";`,
			expected: `import { a } from "$lib/utils.ts";`,
		},
		{
			name: "multiple specifiers in one file",
			input: "import a from \"$lib/a.js\";\n" +
				"import b from '$lib/b.js';\n" +
				"import c from \"./c.js\";\n" +
				"import d from '../d/e.js';\n",
			expected: "import a from \"$lib/a.ts\";\n" +
				"import b from '$lib/b.ts';\n" +
				"import c from \"./c.ts\";\n" +
				"import d from '../d/e.ts';\n",
			changed:      true,
			replacements: 4,
		},
		{
			name:         "re-export statement",
			input:        `export { default } from "./Button.js";`,
			expected:     `export { default } from "./Button.ts";`,
			changed:      true,
			replacements: 1,
		},
		{
			name:         "svelte script block",
			input:        "<script lang=\"ts\">\n\timport Grid from '$lib/components/Grid.js';\n</script>\n<Grid />\n",
			expected:     "<script lang=\"ts\">\n\timport Grid from '$lib/components/Grid.ts';\n</script>\n<Grid />\n",
			changed:      true,
			replacements: 1,
		},
		{
			name:     "missing space after from",
			input:    `import a from"$lib/a.js";`,
			expected: `import a from"$lib/a.js";`,
		},
		{
			name:     "mismatched quotes untouched",
			input:    `import a from "$lib/a.js';`,
			expected: `import a from "$lib/a.js';`,
		},
	}

	r := newDefaultRewriter(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := r.Rewrite(tt.input)

			assert.Equal(t, tt.expected, result.Content)
			assert.Equal(t, tt.changed, result.Changed)
			assert.Equal(t, tt.replacements, result.Replacements)
		})
	}
}

func TestRewriter_Idempotent(t *testing.T) {
	r := newDefaultRewriter(t)
	input := "import a from \"$lib/a.js\";\nimport b from './b.js';\nimport c from '$lib/c.json';\n"

	first := r.Rewrite(input)
	require.True(t, first.Changed)

	second := r.Rewrite(first.Content)
	assert.False(t, second.Changed)
	assert.Equal(t, 0, second.Replacements)
	assert.Equal(t, first.Content, second.Content)
}

func TestRewriter_ExtensionOnlyChange(t *testing.T) {
	r := newDefaultRewriter(t)
	input := "// header\nimport a from \"$lib/deep/path/a.js\";\nconst s = 'keep me.js';\nimport b from './b.js';\n"

	result := r.Rewrite(input)
	require.True(t, result.Changed)

	// Same length and every differing byte lies inside a ".js" -> ".ts" token.
	require.Len(t, result.Content, len(input))
	for i := range input {
		if input[i] != result.Content[i] {
			assert.Equal(t, byte('j'), input[i], "unexpected change at offset %d", i)
			assert.Equal(t, byte('t'), result.Content[i], "unexpected change at offset %d", i)
			assert.Equal(t, ".", input[i-1:i])
		}
	}
	assert.Contains(t, result.Content, "'keep me.js'")
}

func TestRewriter_QuoteKindPreserved(t *testing.T) {
	r := newDefaultRewriter(t)

	double := r.Rewrite(`from "$lib/x.js"`)
	assert.Equal(t, `from "$lib/x.ts"`, double.Content)

	single := r.Rewrite(`from '$lib/x.js'`)
	assert.Equal(t, `from '$lib/x.ts'`, single.Content)
}

func TestRewriter_DoesNotCrossQuoteBoundary(t *testing.T) {
	r := newDefaultRewriter(t)

	// The first specifier is not an import of a .js file; the double-quote
	// rule must not stretch from its opening quote to the next .js".
	input := `import a from "$lib/a.svelte"; import b from "./b.js";`
	result := r.Rewrite(input)

	assert.Equal(t, `import a from "$lib/a.svelte"; import b from "./b.ts";`, result.Content)
	assert.Equal(t, 1, result.Replacements)
}

func TestRewriter_GreedyPathKeepsLastExtension(t *testing.T) {
	r := newDefaultRewriter(t)

	result := r.Rewrite(`from "./vendor.js.js"`)

	assert.Equal(t, `from "./vendor.js.ts"`, result.Content)
}

func TestRewriter_CustomRules(t *testing.T) {
	r, err := NewRewriter(domain.DefaultRules("@app", "mjs", "mts"))
	require.NoError(t, err)

	result := r.Rewrite("import a from '@app/a.mjs';\nimport b from \"$lib/b.js\";\n")

	assert.Equal(t, "import a from '@app/a.mts';\nimport b from \"$lib/b.js\";\n", result.Content)
	assert.True(t, result.Changed)
}

func TestRewriter_RegexMetaInAlias(t *testing.T) {
	r, err := NewRewriter([]domain.Rule{
		{Kind: domain.PathKindAlias, Quote: domain.QuoteDouble, Alias: "~+", From: "js", To: "ts"},
	})
	require.NoError(t, err)

	assert.Equal(t, `from "~+/a.ts"`, r.Rewrite(`from "~+/a.js"`).Content)
	assert.False(t, r.Rewrite(`from "~~/a.js"`).Changed)
}

func TestRewriter_SingleRuleOnlyAffectsItsQuote(t *testing.T) {
	r, err := NewRewriter([]domain.Rule{
		{Kind: domain.PathKindRelative, Quote: domain.QuoteSingle, From: "js", To: "ts"},
	})
	require.NoError(t, err)

	result := r.Rewrite(`from "./a.js"; from './b.js'`)

	assert.Equal(t, `from "./a.js"; from './b.ts'`, result.Content)
}

func TestRewriter_Rules(t *testing.T) {
	rules := domain.DefaultRules("$lib", "js", "ts")
	r, err := NewRewriter(rules)
	require.NoError(t, err)

	assert.Equal(t, rules, r.Rules())
	assert.Equal(t, `from "\$lib/([^"]*)\.js"`, r.Pattern(0))
	assert.Equal(t, `from '\$lib/([^']*)\.js'`, r.Pattern(1))
	assert.Equal(t, `from "\.([^"]*)\.js"`, r.Pattern(2))
	assert.Equal(t, `from '\.([^']*)\.js'`, r.Pattern(3))
}

func TestNewRewriter_Validation(t *testing.T) {
	valid := domain.Rule{Kind: domain.PathKindAlias, Quote: domain.QuoteDouble, Alias: "$lib", From: "js", To: "ts"}

	tests := []struct {
		name   string
		mutate func(r *domain.Rule)
		field  string
	}{
		{name: "unknown kind", mutate: func(r *domain.Rule) { r.Kind = "absolute" }, field: "rules[0].kind"},
		{name: "unknown quote", mutate: func(r *domain.Rule) { r.Quote = "backtick" }, field: "rules[0].quote"},
		{name: "empty alias", mutate: func(r *domain.Rule) { r.Alias = "" }, field: "rules[0].alias"},
		{name: "quoted alias", mutate: func(r *domain.Rule) { r.Alias = `$lib"` }, field: "rules[0].alias"},
		{name: "empty from", mutate: func(r *domain.Rule) { r.From = "" }, field: "rules[0].from"},
		{name: "empty to", mutate: func(r *domain.Rule) { r.To = "" }, field: "rules[0].to"},
		{name: "dotted extension", mutate: func(r *domain.Rule) { r.From = ".js" }, field: "rules[0].from"},
		{name: "separator in extension", mutate: func(r *domain.Rule) { r.To = "t/s" }, field: "rules[0].to"},
		{name: "same extension", mutate: func(r *domain.Rule) { r.To = "js" }, field: "rules[0].to"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := valid
			tt.mutate(&rule)

			r, err := NewRewriter([]domain.Rule{rule})

			require.Error(t, err)
			assert.Nil(t, r)
			assert.True(t, errors.IsValidation(err))
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestNewRewriter_RelativeRuleIgnoresAlias(t *testing.T) {
	_, err := NewRewriter([]domain.Rule{
		{Kind: domain.PathKindRelative, Quote: domain.QuoteDouble, From: "js", To: "ts"},
	})
	require.NoError(t, err)
}

func TestNewRewriter_NoRules(t *testing.T) {
	r, err := NewRewriter(nil)

	require.Error(t, err)
	assert.Nil(t, r)
	assert.True(t, strings.Contains(err.Error(), "at least one rewrite rule"))
}
