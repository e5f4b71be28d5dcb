package domain

// BuildForest turns the flat subnet list into an ordered forest. Roots
// are subnets without a parent, in input order; each node's children are
// attached recursively to arbitrary depth, also in input order. A subnet
// whose parent id does not resolve in the same snapshot is promoted to a
// root rather than silently dropped. A visited set guards against parent
// cycles, which a consistent server never produces but a stale snapshot
// can.
func BuildForest(subnets []Subnet) []*SubnetTreeNode {
	byParent := make(map[int64][]Subnet, len(subnets))
	ids := make(map[int64]struct{}, len(subnets))
	for _, s := range subnets {
		ids[s.ID] = struct{}{}
	}

	var roots []Subnet
	for _, s := range subnets {
		if s.ParentID == nil {
			roots = append(roots, s)
			continue
		}
		if _, ok := ids[*s.ParentID]; !ok {
			roots = append(roots, s)
			continue
		}
		byParent[*s.ParentID] = append(byParent[*s.ParentID], s)
	}

	visited := make(map[int64]struct{}, len(subnets))
	forest := make([]*SubnetTreeNode, 0, len(roots))
	for _, r := range roots {
		if node := attach(r, byParent, visited); node != nil {
			forest = append(forest, node)
		}
	}
	return forest
}

func attach(s Subnet, byParent map[int64][]Subnet, visited map[int64]struct{}) *SubnetTreeNode {
	if _, seen := visited[s.ID]; seen {
		return nil
	}
	visited[s.ID] = struct{}{}

	node := &SubnetTreeNode{Subnet: s}
	for _, child := range byParent[s.ID] {
		if childNode := attach(child, byParent, visited); childNode != nil {
			node.Children = append(node.Children, childNode)
		}
	}
	return node
}
