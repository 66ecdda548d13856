package memory

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redcow77/module-5-test/internal/repository/specification"
)

// columnFunc exposes a row's column values by database column name so the
// same specifications drive both GORM and the in-memory tables.
type columnFunc[T any] func(row *T, column string) interface{}

type query[T any] struct {
	filters []func(*T) bool
	orders  []specification.OrderBy
	limit   int
	offset  int
}

func compile[T any](col columnFunc[T], specs []specification.Specification) (*query[T], error) {
	q := &query[T]{limit: -1}
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			q.filters = append(q.filters, func(r *T) bool { return col(r, "id") == s.ID })
		case specification.ByIDs:
			set := int64Set(s.IDs)
			q.filters = append(q.filters, func(r *T) bool { return set[col(r, "id").(int64)] })
		case specification.ByParentID:
			q.filters = append(q.filters, func(r *T) bool {
				p := col(r, "parent_id").(*int64)
				if s.ParentID == nil {
					return p == nil
				}
				return p != nil && *p == *s.ParentID
			})
		case specification.ByParentIDs:
			set := int64Set(s.ParentIDs)
			q.filters = append(q.filters, func(r *T) bool {
				p := col(r, "parent_id").(*int64)
				return p != nil && set[*p]
			})
		case specification.ByPageID:
			q.filters = append(q.filters, func(r *T) bool { return col(r, "page_id") == s.PageID })
		case specification.ByPageIDs:
			set := int64Set(s.PageIDs)
			q.filters = append(q.filters, func(r *T) bool { return set[col(r, "page_id").(int64)] })
		case specification.MemoSearchQuery:
			needle := strings.ToLower(s.Query)
			q.filters = append(q.filters, func(r *T) bool {
				for _, c := range []string{"title", "content", "ai_summary", "tags"} {
					if containsFold(col(r, c), needle) {
						return true
					}
				}
				return false
			})
		case specification.OrderBy:
			q.orders = append(q.orders, s)
		case specification.Pagination:
			q.limit, q.offset = s.Limit, s.Offset
		default:
			return nil, fmt.Errorf("memory store: unsupported specification %T", spec)
		}
	}
	return q, nil
}

func (q *query[T]) run(col columnFunc[T], rows []*T) []*T {
	out := make([]*T, 0, len(rows))
	for _, r := range rows {
		if q.match(r) {
			out = append(out, r)
		}
	}

	// rows arrive sorted by id, which is the final tie-breaker
	sort.SliceStable(out, func(i, j int) bool {
		for _, o := range q.orders {
			c := compare(col(out[i], o.Field), col(out[j], o.Field))
			if c == 0 {
				continue
			}
			if o.Desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})

	if q.offset > 0 {
		if q.offset >= len(out) {
			return nil
		}
		out = out[q.offset:]
	}
	if q.limit >= 0 && q.limit < len(out) {
		out = out[:q.limit]
	}
	return out
}

func (q *query[T]) match(r *T) bool {
	for _, f := range q.filters {
		if !f(r) {
			return false
		}
	}
	return true
}

func int64Set(ids []int64) map[int64]bool {
	set := make(map[int64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func containsFold(v interface{}, needle string) bool {
	switch x := v.(type) {
	case string:
		return strings.Contains(strings.ToLower(x), needle)
	case *string:
		return x != nil && strings.Contains(strings.ToLower(*x), needle)
	case []string:
		for _, s := range x {
			if strings.Contains(strings.ToLower(s), needle) {
				return true
			}
		}
	}
	return false
}

// compare orders two column values of the same kind. Nil pointers sort first.
func compare(a, b interface{}) int {
	a, b = deref(a), deref(b)
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}
	switch x := a.(type) {
	case int64:
		y, ok := toInt64(b)
		if !ok {
			return -1
		}
		return cmpOrdered(x, y)
	case float64:
		y, ok := toFloat64(b)
		if !ok {
			return -1
		}
		return cmpOrdered(x, y)
	case string:
		y, ok := b.(string)
		if !ok {
			return -1
		}
		return strings.Compare(x, y)
	case time.Time:
		y, ok := b.(time.Time)
		if !ok {
			return -1
		}
		return x.Compare(y)
	}
	return -1
}

func deref(v interface{}) interface{} {
	switch x := v.(type) {
	case *int64:
		if x == nil {
			return nil
		}
		return *x
	case *string:
		if x == nil {
			return nil
		}
		return *x
	case *time.Time:
		if x == nil {
			return nil
		}
		return *x
	}
	return v
}

func toInt64(v interface{}) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case int:
		return int64(x), true
	}
	return 0, false
}

func toFloat64(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	}
	return 0, false
}

func cmpOrdered[N int64 | float64](a, b N) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
