package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vippsas/sqlfront/dialect"
	"github.com/vippsas/sqlfront/token"
)

func tokenize(t *testing.T, sql string, flags dialect.Flags) []token.Token {
	t.Helper()
	toks, err := Tokenize(sql, flags)
	require.NoError(t, err)
	return toks
}

func TestIdentifiersAndKeywords(t *testing.T) {
	toks := tokenize(t, "SELECT foo FROM bar", dialect.NewFlags(dialect.Regular))
	require.Len(t, toks, 5)
	assert.Equal(t, token.KeywordKind, toks[0].Kind)
	assert.Equal(t, token.SELECT, toks[0].Keyword)
	assert.Equal(t, token.Identifier, toks[1].Kind)
	assert.Equal(t, "FOO", toks[1].Value)
	assert.Equal(t, token.KeywordKind, toks[2].Kind)
	assert.Equal(t, token.FROM, toks[2].Keyword)
	assert.Equal(t, token.EndOfInput, toks[4].Kind)
}

func TestQuotedIdentifierPreservesCase(t *testing.T) {
	toks := tokenize(t, `SELECT "MixedCase" FROM t`, dialect.NewFlags(dialect.Regular))
	assert.True(t, toks[1].Quoted)
	assert.Equal(t, "MixedCase", toks[1].Value)
}

func TestDoubledQuoteEscape(t *testing.T) {
	toks := tokenize(t, `SELECT "a""b" FROM t`, dialect.NewFlags(dialect.Regular))
	assert.Equal(t, `a"b`, toks[1].Value)
}

func TestBracketedIdentifierUnderMSSQL(t *testing.T) {
	toks := tokenize(t, "SELECT [my col] FROM t", dialect.NewFlags(dialect.MSSQLServer))
	assert.True(t, toks[1].Quoted)
	assert.Equal(t, "my col", toks[1].Value)
}

func TestStringLiteralWithEscapedQuote(t *testing.T) {
	toks := tokenize(t, `SELECT 'it''s' FROM t`, dialect.NewFlags(dialect.Regular))
	assert.Equal(t, token.CharacterStringLiteral, toks[1].Kind)
	assert.Equal(t, "it's", toks[1].Value)
}

func TestHexBinaryLiteral(t *testing.T) {
	toks := tokenize(t, "SELECT x'48656c6c6f' FROM t", dialect.NewFlags(dialect.Regular))
	assert.Equal(t, token.BinaryStringLiteral, toks[1].Kind)
	assert.Equal(t, "48656c6c6f", toks[1].Value)
}

func TestHexBinaryLiteralOddLengthErrors(t *testing.T) {
	_, err := Tokenize("SELECT x'abc' FROM t", dialect.NewFlags(dialect.Regular))
	require.Error(t, err)
}

func TestDollarQuotedString(t *testing.T) {
	toks := tokenize(t, "SELECT $tag$hello 'world'$tag$ FROM t", dialect.NewFlags(dialect.PostgreSQL))
	assert.Equal(t, token.CharacterStringLiteral, toks[1].Kind)
	assert.Equal(t, "hello 'world'", toks[1].Value)
}

func TestNumericLiteralClassification(t *testing.T) {
	toks := tokenize(t, "SELECT 1, 12345678901, 1.5, 1.5e10", dialect.NewFlags(dialect.Regular))
	assert.Equal(t, token.IntegerLiteral, toks[1].Kind)
	assert.Equal(t, token.BigintLiteral, toks[3].Kind)
	assert.Equal(t, token.ExactNumericLiteral, toks[5].Kind)
	assert.Equal(t, token.ApproximateNumericLiteral, toks[7].Kind)
}

func TestParameterMarkers(t *testing.T) {
	toks := tokenize(t, "SELECT ?, ?2, $3", dialect.NewFlags(dialect.PostgreSQL))
	assert.Equal(t, token.Parameter, toks[1].Kind)
	assert.Equal(t, 0, toks[1].ParamIndex)
	assert.Equal(t, token.Parameter, toks[3].Kind)
	assert.Equal(t, 2, toks[3].ParamIndex)
	assert.Equal(t, token.Parameter, toks[5].Kind)
	assert.Equal(t, 3, toks[5].ParamIndex)
}

func TestMultiRunePunctuation(t *testing.T) {
	toks := tokenize(t, "a <> b || c :: int", dialect.NewFlags(dialect.Regular))
	assert.Equal(t, token.NE, toks[1].Punct)
	assert.Equal(t, token.Concat, toks[3].Punct)
	assert.Equal(t, token.DoubleColon, toks[5].Punct)
}

func TestMinusIsExceptUnderPostgres(t *testing.T) {
	toks := tokenize(t, "a - b", dialect.NewFlags(dialect.PostgreSQL))
	assert.Equal(t, token.Minus, toks[1].Punct)
}

func TestLineAndBlockComments(t *testing.T) {
	toks := tokenize(t, "SELECT 1 -- trailing comment\n, /* inline */ 2", dialect.NewFlags(dialect.Regular))
	require.Len(t, toks, 5)
	assert.Equal(t, token.IntegerLiteral, toks[1].Kind)
	assert.Equal(t, token.IntegerLiteral, toks[3].Kind)
}

func TestCaseFoldingUpper(t *testing.T) {
	toks := tokenize(t, "select Foo", dialect.NewFlags(dialect.Oracle))
	assert.Equal(t, "FOO", toks[1].Value)
}

func TestCaseFoldingNoneUnderMySQL(t *testing.T) {
	toks := tokenize(t, "select Foo", dialect.NewFlags(dialect.MySQL))
	assert.Equal(t, "Foo", toks[1].Value)
}

func TestUnterminatedStringIsSyntaxError(t *testing.T) {
	_, err := Tokenize("SELECT 'abc", dialect.NewFlags(dialect.Regular))
	require.Error(t, err)
}

func TestBacktickQuotedNamesUnderMySQL(t *testing.T) {
	toks := tokenize(t, "SELECT `col` FROM t", dialect.NewFlags(dialect.MySQL))
	assert.True(t, toks[1].Quoted)
	assert.Equal(t, "col", toks[1].Value)
}
