package routes

import "errors"

// ErrEmptyValue is returned when an empty string is inserted into a Trie.
var ErrEmptyValue = errors.New("cannot add empty string to trie")

// trieNode is a single character position. live marks the end of an
// inserted value that has not been taken yet.
type trieNode struct {
	children map[byte]*trieNode
	// keys keeps child insertion order so traversal is reproducible.
	keys []byte
	live bool
}

func newTrieNode() *trieNode {
	return &trieNode{children: make(map[byte]*trieNode)}
}

func (n *trieNode) child(c byte) *trieNode {
	return n.children[c]
}

func (n *trieNode) addChild(c byte) *trieNode {
	if next, ok := n.children[c]; ok {
		return next
	}
	next := newTrieNode()
	n.children[c] = next
	n.keys = append(n.keys, c)
	return next
}

// Trie is a prefix tree over route ids. Taking a value clears its marker
// but never removes nodes, so the structure only grows.
type Trie struct {
	root *trieNode
}

// NewTrie creates an empty Trie.
func NewTrie() *Trie {
	return &Trie{root: newTrieNode()}
}

// Insert adds value and marks it live. Inserting the same value twice is a
// no-op.
func (t *Trie) Insert(value string) error {
	if value == "" {
		return ErrEmptyValue
	}
	node := t.root
	for i := 0; i < len(value); i++ {
		node = node.addChild(value[i])
	}
	node.live = true
	return nil
}

// Contains reports whether value is inserted and not yet taken.
func (t *Trie) Contains(value string) bool {
	node := t.find(value)
	return node != nil && node.live
}

func (t *Trie) find(prefix string) *trieNode {
	node := t.root
	for i := 0; i < len(prefix); i++ {
		node = node.child(prefix[i])
		if node == nil {
			return nil
		}
	}
	return node
}

// TakeDescendants visits every node below prefix (at any depth) and
// returns the live values for which accept returns true, clearing their
// markers. Values are visited children first, in insertion order.
// Missing prefixes yield nil without allocating nodes.
func (t *Trie) TakeDescendants(prefix string, accept func(value string) bool) []string {
	start := t.find(prefix)
	if start == nil {
		return nil
	}

	type frame struct {
		node     *trieNode
		char     byte
		depth    int
		expanded bool
	}

	var taken []string
	// buf holds the value of the node being visited; a frame writes its
	// character when expanded and everything below it only writes deeper.
	buf := []byte(prefix)
	stack := []frame{{node: start, depth: len(prefix)}}
	for len(stack) > 0 {
		top := len(stack) - 1
		if !stack[top].expanded {
			stack[top].expanded = true
			f := stack[top]
			if f.depth > len(prefix) {
				buf = append(buf[:f.depth-1], f.char)
			}
			// Push in reverse so the first inserted child is visited first.
			for i := len(f.node.keys) - 1; i >= 0; i-- {
				c := f.node.keys[i]
				stack = append(stack, frame{node: f.node.children[c], char: c, depth: f.depth + 1})
			}
			continue
		}

		f := stack[top]
		stack = stack[:top]
		if !f.node.live {
			continue
		}
		value := string(buf[:f.depth])
		if accept(value) {
			f.node.live = false
			taken = append(taken, value)
		}
	}
	return taken
}

// IsSegmentSeparator reports whether c delimits id or path segments.
func IsSegmentSeparator(c byte) bool {
	return c == '.' || c == '/' || c == '\\'
}

// descendantOf returns an accept func matching values that continue
// prefix with a segment separator, so "app" claims "app.projects" but not
// "apple".
func descendantOf(prefix string) func(string) bool {
	return func(value string) bool {
		return len(value) > len(prefix) && IsSegmentSeparator(value[len(prefix)])
	}
}
