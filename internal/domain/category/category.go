package category

import "errors"

// Common errors
var (
	ErrEmptyName = errors.New("category name cannot be empty")
)

// Type tags a category as a plain leaf or as the split marker
type Type string

const (
	TypeNormal Type = "NORMAL"
	TypeSplit  Type = "SPLIT"
)

// Kind tells what a category row stands for. Accounts share the category
// identifier space and are stored with KindAccount.
type Kind string

const (
	KindCategory Kind = "CATEGORY"
	KindAccount  Kind = "ACCOUNT"
)

// Category is a node in the category tree
type Category struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Type     Type   `json:"type"`
	ParentID *int64 `json:"parent_id,omitempty"`
	Position int    `json:"position"`
}

// NewCategory creates a detached category under the given parent
func NewCategory(name string, categoryType Type, parentID *int64) (*Category, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if categoryType == "" {
		categoryType = TypeNormal
	}

	return &Category{
		Name:     name,
		Type:     categoryType,
		ParentID: parentID,
	}, nil
}

// IsSplit reports whether the category is the split marker
func (c *Category) IsSplit() bool {
	return c.Type == TypeSplit
}

// Node is a category together with its nested children, used to read and
// write whole trees.
type Node struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Type     Type    `json:"type"`
	ParentID *int64  `json:"parent_id,omitempty"`
	Children []*Node `json:"children"`
}

// NewNode builds a childless node from a category
func NewNode(c *Category) *Node {
	return &Node{
		ID:       c.ID,
		Name:     c.Name,
		Type:     c.Type,
		ParentID: c.ParentID,
		Children: []*Node{},
	}
}

// MapTo copies the editable node fields onto the stored category
func (n *Node) MapTo(c *Category) {
	c.Name = n.Name
	if n.Type != "" {
		c.Type = n.Type
	}
}

// Leveled is a category with its depth below the root, as produced by a
// depth-first walk of the tree.
type Leveled struct {
	Category
	Level int `json:"level"`
}

// RefKind is the tag of a resolved category reference
type RefKind int

const (
	RefNone RefKind = iota
	RefNormal
	RefSplit
	RefTransfer
)

func (k RefKind) String() string {
	switch k {
	case RefNormal:
		return "NORMAL"
	case RefSplit:
		return "SPLIT"
	case RefTransfer:
		return "TRANSFER"
	default:
		return "NONE"
	}
}

// Ref is what an entry's category identifier resolves to. Exactly one of
// the variants applies, selected by Kind: no category, a leaf category, the
// split marker, or another account (a transfer target).
type Ref struct {
	Kind      RefKind
	ID        int64
	AccountID int64 // set for RefTransfer
}

// NoRef is the reference of an entry without category
var NoRef = Ref{Kind: RefNone}

// RefOf builds the reference for a stored category
func RefOf(c *Category) Ref {
	if c.IsSplit() {
		return Ref{Kind: RefSplit, ID: c.ID}
	}
	return Ref{Kind: RefNormal, ID: c.ID}
}

// TransferRef builds the reference for an account used as a category
func TransferRef(accountID int64) Ref {
	return Ref{Kind: RefTransfer, ID: accountID, AccountID: accountID}
}

// CategoryID returns the identifier to store on the entry, nil for RefNone
func (r Ref) CategoryID() *int64 {
	if r.Kind == RefNone {
		return nil
	}
	id := r.ID
	return &id
}
