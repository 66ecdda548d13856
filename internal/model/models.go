package model

// All lists every table owned by the workspace, in migration order.
func All() []interface{} {
	return []interface{}{
		&Page{},
		&Block{},
		&Memo{},
	}
}
