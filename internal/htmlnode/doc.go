// Package htmlnode is a minimal HTML element tree with a rendering contract.
//
// A tree has exactly two node shapes:
//
//	Leaf    - literal text, optionally wrapped in a tag
//	Parent  - a tag whose content is its ordered children
//
// Node is a closed interface: only Leaf and Parent implement it. Trees are
// built bottom-up and are never mutated after construction, so a rendered
// string is a pure function of the tree.
//
// Values and attributes are written verbatim. Callers that feed untrusted
// text into a tree are responsible for escaping it first.
package htmlnode
