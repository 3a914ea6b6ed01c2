// Package lexer implements the single-pass, rune-based tokenizer described
// by the front-end's type/literal layer: quoted identifiers, typed literals,
// parameter markers, and the handful of dialect-sensitive lexing hooks
// carried in dialect.Flags. The scanning discipline (readChar/peekChar, a
// position-save/restore helper for multi-rune lookahead) follows the
// teacher's lexer.
package lexer

import (
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/vippsas/sqlfront/dialect"
	"github.com/vippsas/sqlfront/sqlerr"
	"github.com/vippsas/sqlfront/token"
)

// Lexer scans one SQL text under a fixed set of dialect flags. It holds no
// state beyond the current scan position, so a single Lexer value is used
// for exactly one Tokenize call.
type Lexer struct {
	input  []rune
	flags  dialect.Flags
	log    *logrus.Entry
	folder cases.Caser

	pos     int // index of ch in input
	readPos int // index of the next rune to read
	ch      rune
}

// New creates a Lexer over sql under the given dialect flags.
func New(sql string, flags dialect.Flags) *Lexer {
	l := &Lexer{
		input:  []rune(sql),
		flags:  flags,
		log:    logrus.WithField("component", "lexer"),
		folder: identFolder(flags.CaseFold),
	}
	l.readChar()
	return l
}

// identFolder builds the Caser used to canonicalize unquoted identifiers
// under fold, matching the Unicode-aware folding the resolver applies
// downstream (resolver.New) so a name lexed here and one looked up later
// agree on casing.
func identFolder(fold dialect.CaseFold) cases.Caser {
	switch fold {
	case dialect.CaseFoldUpper:
		return cases.Upper(language.Und)
	case dialect.CaseFoldLower:
		return cases.Lower(language.Und)
	default:
		return cases.Caser{}
	}
}

func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
}

func (l *Lexer) peekChar() rune {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func (l *Lexer) peekCharAt(offset int) rune {
	idx := l.readPos - 1 + offset
	if idx < 0 || idx >= len(l.input) {
		return 0
	}
	return l.input[idx]
}

// save/restore let a branch speculatively consume runes (e.g. to tell U&"
// apart from a bare identifier starting with U) and back out cleanly.
type savedPos struct{ pos, readPos int; ch rune }

func (l *Lexer) save() savedPos { return savedPos{l.pos, l.readPos, l.ch} }
func (l *Lexer) restore(s savedPos) { l.pos, l.readPos, l.ch = s.pos, s.readPos, s.ch }

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r':
			l.readChar()
		case l.ch == '-' && l.peekChar() == '-':
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		case l.ch == '/' && l.peekChar() == '*':
			l.readChar()
			l.readChar()
			for !(l.ch == '*' && l.peekChar() == '/') && l.ch != 0 {
				l.readChar()
			}
			if l.ch != 0 {
				l.readChar()
				l.readChar()
			}
		default:
			return
		}
	}
}

// Tokenize scans the full input and returns every token, ending with a
// single EndOfInput token. A lexing failure is reported through sqlerr and
// stops the scan at the point of failure with the tokens produced so far.
func (l *Lexer) Tokenize() ([]token.Token, error) {
	var out []token.Token
	for {
		tok, err := l.Next()
		if err != nil {
			return out, err
		}
		out = append(out, tok)
		if tok.Kind == token.EndOfInput {
			return out, nil
		}
	}
}

// Next scans and returns the single next token.
func (l *Lexer) Next() (token.Token, error) {
	l.skipWhitespaceAndComments()
	start := l.pos

	switch {
	case l.ch == 0:
		return token.Token{Kind: token.EndOfInput, Start: start, End: start}, nil

	case (l.ch == 'x' || l.ch == 'X') && l.peekChar() == '\'':
		return l.readHexBinaryLiteral(start)

	case isIdentStart(l.ch):
		return l.readIdentifierOrKeyword(start)

	case l.ch == '"':
		return l.readQuotedIdentifier(start, '"')

	case l.ch == '`' && l.flags.BacktickQuotedNames:
		tok, err := l.readQuotedIdentifier(start, '`')
		if err == nil {
			tok.Value = l.foldIdentifier(tok.Value.(string))
		}
		return tok, err

	case l.ch == '[' && l.flags.SquareBracketQuotedNames:
		return l.readBracketedIdentifier(start)

	case l.ch == '\'':
		return l.readString(start)

	case l.ch == '$' && isDigit(l.peekChar()):
		return l.readDollarParameter(start)

	case l.ch == '$' && isIdentStart(l.peekChar()):
		if tok, ok, err := l.tryDollarQuotedString(start); ok {
			return tok, err
		}
		return l.illegalChar(start)

	case isDigit(l.ch):
		return l.readNumber(start)

	case l.ch == '.' && isDigit(l.peekChar()):
		return l.readNumber(start)

	case l.ch == '?':
		return l.readParameter(start)

	default:
		return l.readPunctuation(start)
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) ||
		(r == '#' && false) // '#' handled separately per SupportPoundSymbolForColumns
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func (l *Lexer) identTailAllowsPound() bool {
	return l.flags.SupportPoundSymbolForColumns
}

func (l *Lexer) readIdentifierOrKeyword(start int) (token.Token, error) {
	// Unicode-escaped identifier: U&"..." UESCAPE 'c'
	if (l.ch == 'U' || l.ch == 'u') && l.peekChar() == '&' && l.peekCharAt(2) == '"' {
		saved := l.save()
		l.readChar() // consume U
		l.readChar() // consume &
		tok, err := l.readQuotedIdentifier(start, '"')
		if err != nil {
			l.restore(saved)
		} else {
			tok.UnicodeEscape = true
			tok = l.maybeConsumeUescape(tok)
			return tok, nil
		}
	}

	for isIdentPart(l.ch) || (l.ch == '#' && l.identTailAllowsPound()) {
		l.readChar()
	}
	text := string(l.input[start:l.pos])
	upper := strings.ToUpper(text)
	if kw, ok := token.ByName[upper]; ok {
		return token.Token{Kind: token.KeywordKind, Start: start, End: l.pos, Text: text, Keyword: kw}, nil
	}
	return token.Token{Kind: token.Identifier, Start: start, End: l.pos, Text: text, Value: l.foldIdentifier(text)}, nil
}

// foldIdentifier canonicalizes an unquoted identifier's spelling under the
// dialect's case-fold mode using the same golang.org/x/text/cases machinery
// the resolver folds catalog lookups with (CaseFoldNone leaves text as-is:
// no fold is requested).
func (l *Lexer) foldIdentifier(text string) string {
	switch l.flags.CaseFold {
	case dialect.CaseFoldUpper, dialect.CaseFoldLower:
		return l.folder.String(text)
	default:
		return text
	}
}

func (l *Lexer) maybeConsumeUescape(tok token.Token) token.Token {
	save := l.save()
	l.skipWhitespaceAndComments()
	if strings.ToUpper(l.peekWord()) == "UESCAPE" {
		l.advanceWord()
		l.skipWhitespaceAndComments()
		if l.ch == '\'' {
			if esc, err := l.scanSingleQuoted(); err == nil {
				tok.Text += " UESCAPE '" + esc + "'"
				return tok
			}
		}
	}
	l.restore(save)
	return tok
}

func (l *Lexer) peekWord() string {
	i := l.pos
	for i < len(l.input) && isIdentPart(l.input[i]) {
		i++
	}
	return string(l.input[l.pos:i])
}

func (l *Lexer) advanceWord() {
	for isIdentPart(l.ch) {
		l.readChar()
	}
}

func (l *Lexer) readQuotedIdentifier(start int, quote rune) (token.Token, error) {
	l.readChar() // consume opening quote
	var sb strings.Builder
	for {
		if l.ch == 0 {
			return token.Token{}, sqlerr.Syntax(string(l.input), start)
		}
		if l.ch == quote {
			if l.peekChar() == quote {
				sb.WriteRune(quote)
				l.readChar()
				l.readChar()
				continue
			}
			l.readChar()
			break
		}
		sb.WriteRune(l.ch)
		l.readChar()
	}
	text := string(l.input[start:l.pos])
	return token.Token{Kind: token.Identifier, Start: start, End: l.pos, Text: text, Quoted: true, Value: sb.String()}, nil
}

func (l *Lexer) readBracketedIdentifier(start int) (token.Token, error) {
	l.readChar() // consume [
	var sb strings.Builder
	for l.ch != ']' {
		if l.ch == 0 {
			return token.Token{}, sqlerr.Syntax(string(l.input), start)
		}
		sb.WriteRune(l.ch)
		l.readChar()
	}
	l.readChar() // consume ]
	text := string(l.input[start:l.pos])
	return token.Token{Kind: token.Identifier, Start: start, End: l.pos, Text: text, Quoted: true, Value: sb.String()}, nil
}

func (l *Lexer) scanSingleQuoted() (string, error) {
	start := l.pos
	l.readChar()
	var sb strings.Builder
	for {
		if l.ch == 0 {
			return "", sqlerr.Syntax(string(l.input), start)
		}
		if l.ch == '\'' {
			if l.peekChar() == '\'' {
				sb.WriteByte('\'')
				l.readChar()
				l.readChar()
				continue
			}
			l.readChar()
			break
		}
		sb.WriteRune(l.ch)
		l.readChar()
	}
	return sb.String(), nil
}

func (l *Lexer) readString(start int) (token.Token, error) {
	val, err := l.scanSingleQuoted()
	if err != nil {
		return token.Token{}, err
	}
	text := string(l.input[start:l.pos])
	return token.Token{Kind: token.CharacterStringLiteral, Start: start, End: l.pos, Text: text, Value: val}, nil
}

// tryDollarQuotedString attempts to scan a PostgreSQL-style $tag$...$tag$
// dollar-quoted string starting at the current '$'. Reports ok=false (with
// the lexer position unchanged) if what follows isn't a valid tag/open
// sequence, so the caller can fall back to treating '$' as illegal.
func (l *Lexer) tryDollarQuotedString(start int) (token.Token, bool, error) {
	saved := l.save()
	l.readChar() // consume opening $
	tagStart := l.pos
	for isIdentPart(l.ch) {
		l.readChar()
	}
	tag := string(l.input[tagStart:l.pos])
	if l.ch != '$' {
		l.restore(saved)
		return token.Token{}, false, nil
	}
	l.readChar() // consume closing $ of the opening delimiter
	delim := "$" + tag + "$"
	delimRunes := []rune(delim)

	bodyStart := l.pos
	for {
		if l.ch == 0 {
			return token.Token{}, true, sqlerr.Syntax(string(l.input), start)
		}
		if l.ch == '$' && l.matchesAt(l.pos, delimRunes) {
			break
		}
		l.readChar()
	}
	body := string(l.input[bodyStart:l.pos])
	for range delimRunes {
		l.readChar()
	}
	text := string(l.input[start:l.pos])
	return token.Token{Kind: token.CharacterStringLiteral, Start: start, End: l.pos, Text: text, Value: body}, true, nil
}

func (l *Lexer) matchesAt(pos int, want []rune) bool {
	if pos+len(want) > len(l.input) {
		return false
	}
	for i, r := range want {
		if l.input[pos+i] != r {
			return false
		}
	}
	return true
}

func (l *Lexer) readHexBinaryLiteral(start int) (token.Token, error) {
	l.readChar() // consume x/X
	l.readChar() // consume opening '
	hexStart := l.pos
	for l.ch != '\'' {
		if l.ch == 0 {
			return token.Token{}, sqlerr.Syntax(string(l.input), start)
		}
		l.readChar()
	}
	hex := string(l.input[hexStart:l.pos])
	l.readChar() // consume closing '
	if len(hex)%2 != 0 {
		return token.Token{}, sqlerr.New(sqlerr.HexStringWrong1, hex)
	}
	text := string(l.input[start:l.pos])
	return token.Token{Kind: token.BinaryStringLiteral, Start: start, End: l.pos, Text: text, Value: hex}, nil
}

// readDollarParameter scans the PostgreSQL-style $N indexed parameter form.
func (l *Lexer) readDollarParameter(start int) (token.Token, error) {
	l.readChar() // consume $
	digitStart := l.pos
	for isDigit(l.ch) {
		l.readChar()
	}
	idx := parseIntDigits(l.input[digitStart:l.pos])
	text := string(l.input[start:l.pos])
	return token.Token{Kind: token.Parameter, Start: start, End: l.pos, Text: text, ParamIndex: idx}, nil
}

// readParameter scans `?` or `?N`. Only these plain forms are handled:
// `?(` and `?)` are not rewritten to `[`/`]` and lex as a `?` parameter
// followed by the parenthesis.
func (l *Lexer) readParameter(start int) (token.Token, error) {
	l.readChar() // consume ?
	if !isDigit(l.ch) {
		text := string(l.input[start:l.pos])
		return token.Token{Kind: token.Parameter, Start: start, End: l.pos, Text: text, ParamIndex: 0}, nil
	}
	digitStart := l.pos
	for isDigit(l.ch) {
		l.readChar()
	}
	idx := parseIntDigits(l.input[digitStart:l.pos])
	text := string(l.input[start:l.pos])
	return token.Token{Kind: token.Parameter, Start: start, End: l.pos, Text: text, ParamIndex: idx}, nil
}

func parseIntDigits(digits []rune) int {
	n := 0
	for _, d := range digits {
		n = n*10 + int(d-'0')
	}
	return n
}

// readNumber classifies a numeric literal into one of the four numeric token
// kinds: a bare integer no larger than 2147483647 becomes IntegerLiteral,
// a longer run of digits becomes BigintLiteral, a literal with a decimal
// point becomes ExactNumericLiteral, and one with an exponent becomes
// ApproximateNumericLiteral (spec.md §4.1/§4.2 numeric literal layer).
func (l *Lexer) readNumber(start int) (token.Token, error) {
	hasDot := false
	hasExp := false
	for {
		switch {
		case isDigit(l.ch):
			l.readChar()
		case l.ch == '.' && !hasDot && !hasExp:
			hasDot = true
			l.readChar()
		case (l.ch == 'e' || l.ch == 'E') && !hasExp && (isDigit(l.peekChar()) || ((l.peekChar() == '+' || l.peekChar() == '-') && isDigit(l.peekCharAt(2)))):
			hasExp = true
			l.readChar()
			if l.ch == '+' || l.ch == '-' {
				l.readChar()
			}
		default:
			goto done
		}
	}
done:
	text := string(l.input[start:l.pos])
	digits := strings.TrimLeft(text, "0")
	kind := token.IntegerLiteral
	switch {
	case hasExp:
		kind = token.ApproximateNumericLiteral
	case hasDot:
		kind = token.ExactNumericLiteral
	case len(digits) > 10 || (len(digits) == 10 && digits > "2147483647"):
		kind = token.BigintLiteral
	}
	return token.Token{Kind: kind, Start: start, End: l.pos, Text: text, Value: text}, nil
}

// punct2 and punct3 list multi-rune punctuation in longest-match-first
// order so readPunctuation's scan never misreads e.g. "::" as ":" + ":".
var punct3 = []struct {
	text string
	p    token.Punct
}{}

var punct2 = []struct {
	text string
	p    token.Punct
}{
	{">=", token.GE}, {"<=", token.LE}, {"<>", token.NE}, {"||", token.Concat},
	{"&&", token.AndAnd}, {"::", token.DoubleColon}, {":=", token.Assign},
	{"!~", token.NotTilde},
}

var punct1 = map[rune]token.Punct{
	'=': token.Eq, '>': token.GT, '<': token.LT, '@': token.At,
	'-': token.Minus, '+': token.Plus, '(': token.LParen, ')': token.RParen,
	'*': token.Star, ',': token.Comma, '.': token.Dot, '{': token.LBrace,
	'}': token.RBrace, '/': token.Slash, '%': token.Percent, ';': token.Semi,
	':': token.Colon, '[': token.LBracket, ']': token.RBracket, '~': token.Tilde,
}

func (l *Lexer) readPunctuation(start int) (token.Token, error) {
	for _, p := range punct3 {
		if l.matchesAt(l.pos, []rune(p.text)) {
			for range p.text {
				l.readChar()
			}
			return token.Token{Kind: token.PunctuationKind, Start: start, End: l.pos, Text: p.text, Punct: p.p}, nil
		}
	}
	for _, p := range punct2 {
		if l.matchesAt(l.pos, []rune(p.text)) {
			for range p.text {
				l.readChar()
			}
			return token.Token{Kind: token.PunctuationKind, Start: start, End: l.pos, Text: p.text, Punct: p.p}, nil
		}
	}
	if l.flags.MinusIsExcept && l.ch == '-' && l.peekChar() != '-' {
		l.readChar()
		return token.Token{Kind: token.PunctuationKind, Start: start, End: l.pos, Text: "-", Punct: token.Minus}, nil
	}
	if p, ok := punct1[l.ch]; ok {
		ch := l.ch
		l.readChar()
		return token.Token{Kind: token.PunctuationKind, Start: start, End: l.pos, Text: string(ch), Punct: p}, nil
	}
	return l.illegalChar(start)
}

func (l *Lexer) illegalChar(start int) (token.Token, error) {
	l.log.WithField("offset", start).Debug("illegal character")
	return token.Token{}, sqlerr.Syntax(string(l.input), start)
}

// Tokenize is a package-level convenience wrapper mirroring the teacher's
// standalone Tokenize(input string) []token.Token helper.
func Tokenize(sql string, flags dialect.Flags) ([]token.Token, error) {
	return New(sql, flags).Tokenize()
}
