package scanner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMask(t *testing.T) {
	sp := func(n int) string { return strings.Repeat(" ", n) }

	tests := []struct {
		name string
		src  string
		want string
	}{
		{"line comment", "a // b { c\nd", "a" + sp(9) + "\nd"},
		{"block comment", "a /* { */ b", "a" + sp(9) + "b"},
		{"nested block comment", "x /* a /* b */ c */ y", "x" + sp(19) + "y"},
		{"string", `f("a{b}") + g`, "f(" + sp(6) + ") + g"},
		{"escaped quote", `"a\"b" c`, sp(7) + "c"},
		{"char literal", "f(c = '{') + g", "f(c = " + sp(3) + ") + g"},
		{"escaped char literal", `'\'' x`, sp(4) + " x"},
		{"multiline string", "a \"\"\"\n{\n\"\"\" b", "a" + sp(4) + "\n" + sp(1) + "\n" + sp(4) + "b"},
		{"unterminated comment", "a /* b\nc", "a" + sp(5) + "\n" + sp(1)},
		{"plain code", "protocol A { func b() }", "protocol A { func b() }"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Mask(tt.src)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, len(tt.src), len(got))
			assert.Equal(t, strings.Count(tt.src, "\n"), strings.Count(got, "\n"))
		})
	}
}

func TestCountWord(t *testing.T) {
	text := "if x { iffy(); elif; if_y; for i in a { guard } } if"
	assert.Equal(t, 2, CountWord(text, "if"))
	assert.Equal(t, 1, CountWord(text, "for"))
	assert.Equal(t, 1, CountWord(text, "guard"))
	assert.Equal(t, 0, CountWord(text, "while"))
	assert.Equal(t, 0, CountWord(text, ""))
}

func TestIsIdentifier(t *testing.T) {
	assert.True(t, IsIdentifier("protocol"))
	assert.True(t, IsIdentifier("_x1"))
	assert.False(t, IsIdentifier("1x"))
	assert.False(t, IsIdentifier("a b"))
	assert.False(t, IsIdentifier(""))
}

func TestLineCount(t *testing.T) {
	assert.Equal(t, 1, LineCount(""))
	assert.Equal(t, 2, LineCount("a\n"))
	assert.Equal(t, 3, LineCount("a\nb\nc"))
}

func TestExtractInterfaces(t *testing.T) {
	src := `import Foundation

protocol Store {
    func load(id: String) -> Item?
    func save(_ item: Item)
}

// protocol Commented { func hidden() }

protocol Tagger: AnyObject where Self: Sendable {
    func tag(_ name: String, on item: Item)
}
`
	s := NewScanner("protocol", "func")
	defs, issues := s.ExtractInterfaces("defs.swift", src)

	require.Empty(t, issues)
	require.Len(t, defs, 2)

	assert.Equal(t, "Store", defs[0].Name)
	assert.Equal(t, 3, defs[0].Line)
	assert.Equal(t, 3, defs[0].BodyLine)
	assert.Equal(t, "defs.swift", defs[0].Source)
	assert.Contains(t, defs[0].Body, "func save(_ item: Item)")

	assert.Equal(t, "Tagger", defs[1].Name)
	assert.Equal(t, 10, defs[1].Line)
}

func TestExtractInterfaces_NestedBraces(t *testing.T) {
	src := `protocol Outer {
    var value: Int { get set }
    func a()
    func b()
}
protocol Next { func c() }`

	s := NewScanner("", "")
	defs, issues := s.ExtractInterfaces("x", src)

	require.Empty(t, issues)
	require.Len(t, defs, 2)
	assert.Contains(t, defs[0].Body, "func b()")
	assert.NotContains(t, defs[0].Body, "Next")

	ops, _ := s.ExtractOperations(defs[0])
	assert.Len(t, ops, 2)
}

func TestExtractInterfaces_BraceInsideString(t *testing.T) {
	src := `protocol P {
    func a(label: String = "}")
    func b()
}`
	defs, issues := NewScanner("", "").ExtractInterfaces("x", src)

	require.Empty(t, issues)
	require.Len(t, defs, 1)
	assert.Contains(t, defs[0].Body, "func b()")
}

func TestExtractInterfaces_Malformed(t *testing.T) {
	tests := []struct {
		name        string
		src         string
		wantDefs    int
		wantMessage string
	}{
		{"unbalanced body", "protocol Broken {\n func a()\n", 0, "unbalanced body"},
		{"no name", "protocol {\n}", 0, "not followed by a name"},
		{"no body", "protocol Decl;\nprotocol Ok { }", 1, "has no body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defs, issues := NewScanner("", "").ExtractInterfaces("x", tt.src)
			assert.Len(t, defs, tt.wantDefs)
			require.Len(t, issues, 1)
			assert.Contains(t, issues[0].Message, tt.wantMessage)
			assert.Equal(t, 1, issues[0].Line)
		})
	}
}

func TestExtractInterfaces_None(t *testing.T) {
	defs, issues := NewScanner("", "").ExtractInterfaces("x", "struct A { func b() {} }")
	assert.Empty(t, defs)
	assert.Empty(t, issues)
}

func TestExtractOperations(t *testing.T) {
	src := `protocol Repo {
    func all() -> [Item]
    func find<T: Hashable>(key: T, in scope: Scope) -> Item?
    func update(
        id: String,
        with change: (Item) -> Item
    )
}`
	s := NewScanner("", "")
	defs, _ := s.ExtractInterfaces("repo.swift", src)
	require.Len(t, defs, 1)

	ops, issues := s.ExtractOperations(defs[0])
	require.Empty(t, issues)
	require.Len(t, ops, 3)

	assert.Equal(t, "all", ops[0].Name)
	assert.Equal(t, "", ops[0].RawParameters)
	assert.Equal(t, 2, ops[0].Line)

	assert.Equal(t, "find", ops[1].Name)
	assert.Equal(t, "key: T, in scope: Scope", ops[1].RawParameters)
	assert.Equal(t, 3, ops[1].Line)

	assert.Equal(t, "update", ops[2].Name)
	assert.Equal(t, 4, ops[2].Line)
	assert.Equal(t, 2, CountParameters(ops[2].RawParameters))
}

func TestExtractOperations_Malformed(t *testing.T) {
	src := `protocol Ops {
    static func == (lhs: Self, rhs: Self) -> Bool
    func ok(a: Int)
    func broken(a: Int
}`
	s := NewScanner("", "")
	defs, _ := s.ExtractInterfaces("ops.swift", src)
	require.Len(t, defs, 1)

	ops, issues := s.ExtractOperations(defs[0])
	require.Len(t, ops, 1)
	assert.Equal(t, "ok", ops[0].Name)

	require.Len(t, issues, 2)
	assert.Equal(t, 2, issues[0].Line)
	assert.Contains(t, issues[0].Message, "not followed by a name")
	assert.Equal(t, 4, issues[1].Line)
	assert.Contains(t, issues[1].Message, "broken")
}

func TestExtractOperations_KotlinPreset(t *testing.T) {
	src := `interface Repo {
    fun <T> find(a: T, b: Int): T
    fun all(): List<Item>
    fun <K, V> index(items: Map<K, V>, strict: Boolean = a < b, limit: Int)
    fun List<Item>.second(): Item
    fun label(c: Char = '{'): String
}`
	s := NewScanner("interface", "fun")
	defs, issues := s.ExtractInterfaces("Repo.kt", src)
	require.Empty(t, issues)
	require.Len(t, defs, 1)

	ops, issues := s.ExtractOperations(defs[0])
	require.Empty(t, issues)
	require.Len(t, ops, 5)

	names := make([]string, len(ops))
	for i, op := range ops {
		names[i] = op.Name
	}
	assert.Equal(t, []string{"find", "all", "index", "second", "label"}, names)
	assert.Equal(t, "a: T, b: Int", ops[0].RawParameters)
	assert.Equal(t, 3, CountParameters(ops[2].RawParameters))
	assert.Equal(t, 0, CountParameters(ops[3].RawParameters))
	assert.Equal(t, 1, CountParameters(ops[4].RawParameters))
}

func TestExtractOperations_UnbalancedLeadingGeneric(t *testing.T) {
	s := NewScanner("interface", "fun")
	defs, _ := s.ExtractInterfaces("Bad.kt", "interface Bad {\n    fun <T find(a: T)\n    fun ok()\n}")
	require.Len(t, defs, 1)

	ops, issues := s.ExtractOperations(defs[0])
	require.Len(t, ops, 1)
	assert.Equal(t, "ok", ops[0].Name)
	require.Len(t, issues, 1)
	assert.Equal(t, 2, issues[0].Line)
	assert.Contains(t, issues[0].Message, "unbalanced generic clause")
}

func TestCountParameters(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"", 0},
		{"   \n\t ", 0},
		{"a: Int", 1},
		{"a: Int, b: String, c: Bool, d: Float", 4},
		{"a: Int, , b: Int", 2},
		{"a: Int,", 1},
		{"map: Dictionary<String, Int>, b: Int", 2},
		{"handler: (Int, String) -> Void", 1},
		{"xs: [Int], f: (Int) -> Bool", 2},
		{"a: Int /* b: Int, c: Int */", 1},
		{"strict: Bool = a < b, limit: Int, c: Int, d: Int", 4},
		{"ok: Bool = a<b, limit: Int", 2},
		{"m: Map<String, List<Int>>, n: Int", 2},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, CountParameters(tt.raw))
		})
	}
}

func TestSplitParameters_KeepsRawText(t *testing.T) {
	segments := SplitParameters(` a: String = "x, y" , b: Int `)
	assert.Equal(t, []string{`a: String = "x, y"`, "b: Int"}, segments)
}

func TestCountMethods(t *testing.T) {
	src := `final class Manager {
    func add(_ p: Project) { }
    // func commented() { }
    private func remove(id: String) { }
    let f = "func fake()"
}`
	assert.Equal(t, 2, NewScanner("", "").CountMethods(src))
}

func TestCountMethods_KotlinGenerics(t *testing.T) {
	src := "class Repo {\n    fun <T> find(a: T): T = a\n    fun all() = listOf<Item>()\n}"
	assert.Equal(t, 2, NewScanner("interface", "fun").CountMethods(src))
}

func TestExtraction_Idempotent(t *testing.T) {
	src := "protocol A { func a(x: Int) }\nprotocol B { func b() func c(y: Int, z: Int) }"
	s := NewScanner("", "")

	first, _ := s.ExtractInterfaces("x", src)
	second, _ := s.ExtractInterfaces("x", src)
	assert.Equal(t, first, second)
}
