package cria

// assertUniqueIDs walks root and reports a ShapeError if any two nodes
// share a non-empty id. Empty ids are not tracked: callers are not
// required to id every node, only the ones a strategy or devtools trace
// needs to address later.
func assertUniqueIDs(root Node) error {
	seen := make(map[string]struct{})
	return walkIDs(root, seen)
}

func walkIDs(n Node, seen map[string]struct{}) error {
	if n == nil {
		return nil
	}
	switch v := n.(type) {
	case *Scope:
		if err := checkID(v.ID, seen); err != nil {
			return err
		}
		for _, c := range v.Children {
			if err := walkIDs(c, seen); err != nil {
				return err
			}
		}
	case *Message:
		if err := checkID(v.ID, seen); err != nil {
			return err
		}
	}
	return nil
}

func checkID(id string, seen map[string]struct{}) error {
	if id == "" {
		return nil
	}
	if _, dup := seen[id]; dup {
		return &ShapeError{MessageID: id, Reason: "duplicate node id"}
	}
	seen[id] = struct{}{}
	return nil
}
