// Package tokenizer interns field paths as dense integer tokens.
package tokenizer

import (
	"unicode/utf16"

	"github.com/armon/go-radix"

	"github.com/huynhanx03/go-hybridrow/pkg/encoding"
)

// Token is an interned path. Varint holds the precomputed wire encoding of ID.
type Token struct {
	ID     uint64
	Path   string
	Varint []byte
}

// None is the reserved token for the empty path.
var None = newToken(0, "")

// IsNull reports whether t is the reserved empty-path token.
func (t Token) IsNull() bool {
	return t.ID == 0
}

func newToken(id uint64, path string) Token {
	return Token{
		ID:     id,
		Path:   path,
		Varint: encoding.AppendUvarint(nil, id),
	}
}

// StringTokenizer maps paths to tokens and back. Ids are assigned densely from 1 in
// first-seen order; id 0 is reserved for the empty path.
// It is NOT thread-safe for Add; lookups are safe once no more paths are added.
type StringTokenizer struct {
	tokens  []Token
	byPath  *radix.Tree
	byUTF16 map[string]Token
}

// New creates a tokenizer holding only the reserved token.
func New() *StringTokenizer {
	t := &StringTokenizer{
		tokens:  []Token{None},
		byPath:  radix.New(),
		byUTF16: make(map[string]Token),
	}
	t.byPath.Insert(None.Path, None)
	t.byUTF16[UTF16Key(encodeUTF16(None.Path))] = None
	return t
}

// Add returns the token for path, allocating the next id if the path is new.
func (t *StringTokenizer) Add(path string) Token {
	if tok, ok := t.TryFindToken(path); ok {
		return tok
	}

	tok := newToken(uint64(len(t.tokens)), path)
	t.tokens = append(t.tokens, tok)
	t.byPath.Insert(path, tok)
	t.byUTF16[UTF16Key(encodeUTF16(path))] = tok
	return tok
}

// TryFindToken looks up the token of a path.
func (t *StringTokenizer) TryFindToken(path string) (Token, bool) {
	v, ok := t.byPath.Get(path)
	if !ok {
		return Token{}, false
	}
	return v.(Token), true
}

// TryFindTokenUTF16 looks up the token of a UTF-16 encoded path.
func (t *StringTokenizer) TryFindTokenUTF16(path []uint16) (Token, bool) {
	tok, ok := t.byUTF16[UTF16Key(path)]
	return tok, ok
}

// TryFindString returns the path interned under id.
func (t *StringTokenizer) TryFindString(id uint64) (string, bool) {
	if id >= uint64(len(t.tokens)) {
		return "", false
	}
	return t.tokens[id].Path, true
}

// Count returns the number of tokens, including the reserved one.
func (t *StringTokenizer) Count() int {
	return len(t.tokens)
}

// WithPrefix returns the tokens whose path starts with prefix, in lexical path order.
func (t *StringTokenizer) WithPrefix(prefix string) []Token {
	var out []Token
	t.byPath.WalkPrefix(prefix, func(_ string, v interface{}) bool {
		out = append(out, v.(Token))
		return false
	})
	return out
}

// View returns a read-only view of t. The view sees paths added to t later.
func (t *StringTokenizer) View() View {
	return View{t: t}
}

// View exposes the lookups of a StringTokenizer without Add, for tokenizers that
// must not change once shared.
type View struct {
	t *StringTokenizer
}

func (v View) TryFindToken(path string) (Token, bool)        { return v.t.TryFindToken(path) }
func (v View) TryFindTokenUTF16(path []uint16) (Token, bool) { return v.t.TryFindTokenUTF16(path) }
func (v View) TryFindString(id uint64) (string, bool)        { return v.t.TryFindString(id) }
func (v View) Count() int                                    { return v.t.Count() }
func (v View) WithPrefix(prefix string) []Token              { return v.t.WithPrefix(prefix) }

func encodeUTF16(s string) []uint16 {
	return utf16.Encode([]rune(s))
}

// UTF16Key packs UTF-16 code units into a comparable map key.
func UTF16Key(units []uint16) string {
	b := make([]byte, 2*len(units))
	for i, u := range units {
		b[2*i] = byte(u)
		b[2*i+1] = byte(u >> 8)
	}
	return string(b)
}
