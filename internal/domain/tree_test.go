package domain

import "testing"

func ptr(v int64) *int64 { return &v }

func TestBuildForestAttachesChildrenAtEveryDepth(t *testing.T) {
	forest := BuildForest([]Subnet{
		{ID: 1, Name: "Prod", CIDR: "10.0.0.0/16"},
		{ID: 2, Name: "Web", CIDR: "10.0.1.0/24", ParentID: ptr(1)},
		{ID: 3, Name: "Web-DMZ", CIDR: "10.0.1.128/25", ParentID: ptr(2)},
	})

	if len(forest) != 1 {
		t.Fatalf("expected 1 root, got %d", len(forest))
	}
	root := forest[0]
	if root.ID != 1 || len(root.Children) != 1 {
		t.Fatalf("unexpected root: id=%d children=%d", root.ID, len(root.Children))
	}
	child := root.Children[0]
	if child.ID != 2 || len(child.Children) != 1 || child.Children[0].ID != 3 {
		t.Fatalf("grandchild not attached: %+v", child)
	}
}

func TestBuildForestKeepsInputOrder(t *testing.T) {
	forest := BuildForest([]Subnet{
		{ID: 5, Name: "B"},
		{ID: 2, Name: "A"},
		{ID: 9, Name: "B-2", ParentID: ptr(5)},
		{ID: 7, Name: "B-1", ParentID: ptr(5)},
	})

	if len(forest) != 2 || forest[0].ID != 5 || forest[1].ID != 2 {
		t.Fatalf("root order not preserved: %+v", forest)
	}
	children := forest[0].Children
	if len(children) != 2 || children[0].ID != 9 || children[1].ID != 7 {
		t.Fatalf("sibling order not preserved: %+v", children)
	}
}

func TestBuildForestPromotesDanglingParentToRoot(t *testing.T) {
	forest := BuildForest([]Subnet{
		{ID: 1, Name: "Known"},
		{ID: 2, Name: "Orphan", ParentID: ptr(99)},
	})

	if len(forest) != 2 {
		t.Fatalf("expected orphan promoted to root, got %d roots", len(forest))
	}
}

func TestBuildForestGuardsAgainstCycles(t *testing.T) {
	forest := BuildForest([]Subnet{
		{ID: 1, ParentID: ptr(2)},
		{ID: 2, ParentID: ptr(1)},
	})

	count := 0
	var walk func(nodes []*SubnetTreeNode)
	walk = func(nodes []*SubnetTreeNode) {
		for _, n := range nodes {
			count++
			walk(n.Children)
		}
	}
	walk(forest)

	if count > 2 {
		t.Fatalf("cycle produced %d nodes", count)
	}
}

func TestBuildForestEveryNodeAppearsOnce(t *testing.T) {
	subnets := []Subnet{
		{ID: 1},
		{ID: 2, ParentID: ptr(1)},
		{ID: 3, ParentID: ptr(1)},
		{ID: 4, ParentID: ptr(2)},
		{ID: 5},
	}

	seen := map[int64]int{}
	var walk func(nodes []*SubnetTreeNode)
	walk = func(nodes []*SubnetTreeNode) {
		for _, n := range nodes {
			seen[n.ID]++
			for _, c := range n.Children {
				if c.ParentID == nil || *c.ParentID != n.ID {
					t.Fatalf("node %d attached under %d with parent %v", c.ID, n.ID, c.ParentID)
				}
			}
			walk(n.Children)
		}
	}
	walk(BuildForest(subnets))

	for _, s := range subnets {
		if seen[s.ID] != 1 {
			t.Fatalf("subnet %d appears %d times", s.ID, seen[s.ID])
		}
	}
}
