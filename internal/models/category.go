package models

// RootParentID is the sentinel parent ID marking a top-level category in
// CATEGORY_V1. MMEX writes -1 for roots; some builds leave 0 or NULL,
// which readers fold to -1.
const RootParentID int64 = -1

// Category represents one raw row of the CATEGORY_V1 table.
type Category struct {
	ID       int64  `json:"categid"`
	Name     string `json:"categname"`
	ParentID int64  `json:"parentid"`
}

// IsRoot reports whether the category sits at the top of its tree.
func (c Category) IsRoot() bool {
	return c.ParentID == RootParentID
}

// ResolvedCategory is a category with its fully-qualified, colon-joined
// name ("Food:Groceries"), derived from the category forest.
type ResolvedCategory struct {
	ID       int64  `json:"categid"`
	FullName string `json:"category"`
}
