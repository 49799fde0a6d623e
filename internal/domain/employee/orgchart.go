package employee

import "sort"

type OrgNode struct {
	Employee Employee   `json:"employee"`
	Children []*OrgNode `json:"children,omitempty"`
}

type OrgChart struct {
	Roots []*OrgNode `json:"roots"`
	// Detached holds active employees unreachable from any root, which is
	// how members of a managerId cycle surface. The graph is never
	// validated acyclic on write, so the builder has to tolerate them.
	Detached []Employee `json:"detached,omitempty"`
}

// BuildOrgChart assembles the reporting forest for active employees from
// managerId adjacency. Roots are employees with no manager or whose manager
// is missing or terminated.
func BuildOrgChart(emps []Employee) OrgChart {
	active := make(map[string]Employee)
	for _, emp := range emps {
		if emp.Active() {
			active[emp.ID] = emp
		}
	}

	children := make(map[string][]Employee)
	var roots []Employee
	for _, emp := range active {
		if emp.ManagerID == "" || emp.ManagerID == emp.ID {
			roots = append(roots, emp)
			continue
		}
		if _, ok := active[emp.ManagerID]; !ok {
			roots = append(roots, emp)
			continue
		}
		children[emp.ManagerID] = append(children[emp.ManagerID], emp)
	}
	sortByName(roots)

	visited := make(map[string]bool)
	chart := OrgChart{Roots: make([]*OrgNode, 0, len(roots))}
	for _, root := range roots {
		chart.Roots = append(chart.Roots, buildNode(root, children, visited))
	}

	for _, emp := range active {
		if !visited[emp.ID] {
			chart.Detached = append(chart.Detached, emp)
		}
	}
	sortByName(chart.Detached)
	return chart
}

func buildNode(emp Employee, children map[string][]Employee, visited map[string]bool) *OrgNode {
	visited[emp.ID] = true
	node := &OrgNode{Employee: emp}
	reports := children[emp.ID]
	sortByName(reports)
	for _, report := range reports {
		if visited[report.ID] {
			continue
		}
		node.Children = append(node.Children, buildNode(report, children, visited))
	}
	return node
}

func sortByName(emps []Employee) {
	sort.Slice(emps, func(i, j int) bool {
		if emps[i].Name == emps[j].Name {
			return emps[i].ID < emps[j].ID
		}
		return emps[i].Name < emps[j].Name
	})
}
