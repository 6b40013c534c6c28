// Package category resolves the MMEX category forest into fully-qualified
// colon-joined names and validates/splits those names at the point of use.
package category

import (
	"errors"
	"fmt"
	"sort"

	"github.com/taekyunk/mmex2/internal/models"
)

// Separator joins the levels of a fully-qualified category name.
const Separator = ":"

// ErrCycleDetected means the closure over the category forest did not
// converge because a parent chain loops back on itself. Valid MMEX data
// never trips this.
var ErrCycleDetected = errors.New("cycle detected in category hierarchy")

// Resolve computes the transitive closure over the raw category rows and
// returns one ResolvedCategory per row reachable from a root, sorted
// lexicographically by full name.
//
// Roots (ParentID == RootParentID) resolve to their own name; every other
// row resolves to parentFullName + ":" + ownName once its parent has been
// resolved. Rows whose parent simply does not exist are excluded without
// error, matching the two-level business rule: they cannot be expressed
// as a valid name and the splitter rejects anything deeper anyway. Rows
// caught in a parent cycle fail with ErrCycleDetected instead.
func Resolve(rows []models.Category) ([]models.ResolvedCategory, error) {
	byID := make(map[int64]models.Category, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}

	resolved := make(map[int64]string, len(rows))
	pending := make([]models.Category, 0, len(rows))
	for _, row := range rows {
		if row.IsRoot() {
			resolved[row.ID] = row.Name
		} else {
			pending = append(pending, row)
		}
	}

	// Iterative relaxation: each pass resolves every row whose parent
	// resolved earlier. The pass count is bounded by the input size; a
	// pass that makes no progress means the remaining rows are either
	// dangling or cyclic.
	for pass := 0; len(pending) > 0 && pass <= len(rows); pass++ {
		remaining := pending[:0]
		for _, row := range pending {
			parent, ok := resolved[row.ParentID]
			if !ok {
				remaining = append(remaining, row)
				continue
			}
			resolved[row.ID] = parent + Separator + row.Name
		}
		if len(remaining) == len(pending) {
			break
		}
		pending = remaining
	}

	for _, row := range pending {
		if err := checkCycle(row, byID); err != nil {
			return nil, err
		}
	}

	out := make([]models.ResolvedCategory, 0, len(resolved))
	for id, name := range resolved {
		out = append(out, models.ResolvedCategory{ID: id, FullName: name})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FullName != out[j].FullName {
			return out[i].FullName < out[j].FullName
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// checkCycle walks the parent chain of an unresolved row. Reaching a
// missing parent is a dangling reference (tolerated); revisiting a row is
// a cycle (fatal).
func checkCycle(row models.Category, byID map[int64]models.Category) error {
	seen := map[int64]bool{row.ID: true}
	cur := row
	for {
		parent, ok := byID[cur.ParentID]
		if !ok {
			return nil
		}
		if seen[parent.ID] {
			return fmt.Errorf("%w: category %q (id %d) is its own ancestor", ErrCycleDetected, row.Name, row.ID)
		}
		seen[parent.ID] = true
		cur = parent
	}
}
