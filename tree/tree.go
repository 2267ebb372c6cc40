// Package tree implements the selection-state tree: a lazily populated
// map of file system entries with per-node checked state,
// directory-to-descendant propagation, and a global toggle-all.
package tree

// Kind distinguishes file nodes from directory nodes.
type Kind int

const (
	KindFile Kind = iota
	KindDir
)

// Node is the in-memory record of one file system entry known to the
// tree. Path is the unique key; Kind is immutable after creation.
type Node struct {
	Path          string
	Name          string
	Kind          Kind
	Checked       bool
	ChildrenKnown bool // directories only: immediate children materialized
}

// IsDir reports whether the node is a directory.
func (n *Node) IsDir() bool {
	return n.Kind == KindDir
}

// Tree owns the path→Node map for one root directory. Nodes are created
// on demand during expansion or directory-toggle propagation and never
// deleted for the life of the tree.
//
// Tree is not safe for concurrent use. The host must serialize
// expand/toggle/generate operations on one instance; a bubbletea event
// loop does this naturally.
type Tree struct {
	root   string
	lister *Lister

	nodes map[string]*Node
	// order records discovery order so that CheckedFiles is
	// deterministic; Go map iteration is randomized.
	order []string

	// allChecked records only the direction of the last ToggleAll, not
	// the true aggregate of node states. Manual toggles can desync it;
	// that behavior is deliberate and kept.
	allChecked bool

	// seeds holds restored checked state applied to nodes as they are
	// discovered, so a saved selection survives lazy re-expansion.
	seeds map[string]bool
}

// New creates a Tree rooted at the given absolute directory path.
func New(root string, lister *Lister) *Tree {
	return &Tree{
		root:   root,
		lister: lister,
		nodes:  make(map[string]*Node),
	}
}

// Root returns the tree's root directory path.
func (t *Tree) Root() string {
	return t.root
}

// Node returns the known node for path, or nil.
func (t *Tree) Node(path string) *Node {
	return t.nodes[path]
}

// Len returns the number of known nodes.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Expand lists the immediate entries of dir and returns their nodes in
// listing order. Existing nodes are reused, preserving their checked
// state; missing ones are created unchecked (unless a restored seed for
// that path says otherwise). Expanding the root is how the tree
// discovers its top-level entries.
func (t *Tree) Expand(dir string) ([]*Node, error) {
	entries, err := t.lister.List(dir)
	if err != nil {
		return nil, err
	}

	nodes := make([]*Node, 0, len(entries))
	for _, e := range entries {
		nodes = append(nodes, t.ensure(e))
	}

	if parent, ok := t.nodes[dir]; ok {
		parent.ChildrenKnown = true
	}
	return nodes, nil
}

// Toggle flips the node's checked state. For a directory node the new
// state is propagated to every descendant on disk — known or not,
// expanded or not — applying the same listing exclusions. On a listing
// error the propagation stops where it is; there is no rollback.
func (t *Tree) Toggle(n *Node) error {
	n.Checked = !n.Checked
	if n.Kind == KindDir {
		return t.setSubtree(n.Path, n.Checked)
	}
	return nil
}

// setSubtree walks the actual file system under dir and sets every
// entry's checked state to checked, creating nodes as needed.
func (t *Tree) setSubtree(dir string, checked bool) error {
	entries, err := t.lister.List(dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		n := t.ensure(e)
		n.Checked = checked
		if e.IsDir {
			if err := t.setSubtree(e.Path, checked); err != nil {
				return err
			}
		}
	}
	return nil
}

// ToggleAll flips the internal all-checked flag and applies it to every
// node currently known to the tree. Parts of the file system never
// discovered are unaffected until visited. Always succeeds.
func (t *Tree) ToggleAll() {
	t.allChecked = !t.allChecked
	for _, path := range t.order {
		t.nodes[path].Checked = t.allChecked
	}
}

// CheckedFiles returns the paths of all known file nodes with checked
// state, in discovery order.
func (t *Tree) CheckedFiles() []string {
	var paths []string
	for _, path := range t.order {
		n := t.nodes[path]
		if n.Kind == KindFile && n.Checked {
			paths = append(paths, path)
		}
	}
	return paths
}

// Restore seeds the tree with a previously saved checked set. Paths
// already known are checked immediately; the rest are applied as their
// nodes are discovered.
func (t *Tree) Restore(checked map[string]bool) {
	if t.seeds == nil {
		t.seeds = make(map[string]bool)
	}
	for path, v := range checked {
		t.seeds[path] = v
		if n, ok := t.nodes[path]; ok {
			n.Checked = v
		}
	}
}

// Snapshot returns the current checked set as a path→checked map,
// suitable for persistence.
func (t *Tree) Snapshot() map[string]bool {
	checked := make(map[string]bool)
	for _, path := range t.order {
		if n := t.nodes[path]; n.Checked {
			checked[path] = true
		}
	}
	return checked
}

// ensure returns the node for the entry, creating and registering it on
// first discovery.
func (t *Tree) ensure(e Entry) *Node {
	if n, ok := t.nodes[e.Path]; ok {
		return n
	}
	kind := KindFile
	if e.IsDir {
		kind = KindDir
	}
	n := &Node{
		Path:    e.Path,
		Name:    e.Name,
		Kind:    kind,
		Checked: t.seeds[e.Path],
	}
	t.nodes[e.Path] = n
	t.order = append(t.order, e.Path)
	return n
}
