package category

// Category groups products for browsing. Categories form a shallow tree
// via ParentID.
type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	ParentID    *int   `json:"parentId,omitempty"`
	Status      string `json:"status"`
	SortOrder   int    `json:"sortOrder"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Node is a category with its direct children, used by the tree view.
type Node struct {
	Category
	Children []Node `json:"children"`
}
