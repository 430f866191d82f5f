package codeowners

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func texts(tokens []Token) []string {
	var out []string
	for _, t := range tokens {
		out = append(out, t.Text)
	}
	return out
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		want       []string
	}{
		{"single reviewer", "@reviewer1", []string{"@reviewer1"}},
		{"and operation", "@reviewer1 AND @reviewer2", []string{"@reviewer1", "AND", "@reviewer2"}},
		{"or operation", "@reviewer1 OR @reviewer2", []string{"@reviewer1", "OR", "@reviewer2"}},
		{"parentheses", "(@reviewer1)", []string{"(", "@reviewer1", ")"}},
		{
			"complex expression",
			"(@reviewer1 OR @reviewer2) AND @reviewer3",
			[]string{"(", "@reviewer1", "OR", "@reviewer2", ")", "AND", "@reviewer3"},
		},
		{"empty expression", "", nil},
		{"surrounding whitespace", "  @reviewer1    AND   @reviewer2  ", []string{"@reviewer1", "AND", "@reviewer2"}},
		{
			"nested parentheses",
			"((@reviewer1 AND @reviewer2))",
			[]string{"(", "(", "@reviewer1", "AND", "@reviewer2", ")", ")"},
		},
		// Unrecognized characters are dropped, not rejected.
		{"stray ampersand", "@reviewer1 & @reviewer2", []string{"@reviewer1", "@reviewer2"}},
		{
			"team handles with hyphens and case",
			"@qubeio/FusionOperate-Architect AND @qubeio/DevEng-Architect",
			[]string{"@qubeio/FusionOperate-Architect", "AND", "@qubeio/DevEng-Architect"},
		},
		{
			"mixed team handle shapes",
			"(@org/simple-team OR @qubeio/Complex-Team-Name)",
			[]string{"(", "@org/simple-team", "OR", "@qubeio/Complex-Team-Name", ")"},
		},
		{
			"underscores and hyphens",
			"@org-name/team_name-1 AND @org-name/other-team_2",
			[]string{"@org-name/team_name-1", "AND", "@org-name/other-team_2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.expression)
			require.NoError(t, err)
			assert.Equal(t, tt.want, texts(tokens))
		})
	}
}

func TestTokenizeInvalid(t *testing.T) {
	tests := []struct {
		name       string
		expression string
	}{
		{"unbalanced open paren", "(@a AND @b"},
		{"unbalanced close paren", "@a AND @b)"},
		{"consecutive and", "@a AND AND @b"},
		{"consecutive mixed", "@a AND OR @b"},
		{"leading double operator", "AND OR @a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.expression)
			assert.Nil(t, tokens)

			var invalid *InvalidExpressionError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.expression, invalid.Expression)
		})
	}
}

func TestTokenKinds(t *testing.T) {
	tokens, err := Tokenize("(@org/team AND @alice) OR @bob")
	require.NoError(t, err)

	require.Len(t, tokens, 7)
	assert.Equal(t, TokenLParen, tokens[0].Kind)
	assert.Equal(t, TokenOperand, tokens[1].Kind)
	assert.True(t, tokens[1].IsTeam())
	assert.Equal(t, "team", tokens[1].TeamSlug())
	assert.Equal(t, TokenAnd, tokens[2].Kind)
	assert.False(t, tokens[3].IsTeam())
	assert.Equal(t, TokenRParen, tokens[4].Kind)
	assert.Equal(t, TokenOr, tokens[5].Kind)
	assert.True(t, tokens[5].IsOperator())
	assert.False(t, tokens[6].IsOperator())
}
