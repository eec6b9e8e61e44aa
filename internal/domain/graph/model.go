package graph

// Node is a single vertex in the rendered knowledge graph. The color and
// size values are what the frontend's force layout expects.
type Node struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Type  string `json:"type"`
	Color string `json:"color"`
	Size  int    `json:"size"`
}

// Edge connects two nodes by id.
type Edge struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Weight float64 `json:"weight"`
	Type   string  `json:"type"`
}

// Stats summarizes the built graph.
type Stats struct {
	TotalNodes          int     `json:"total_nodes"`
	TotalEdges          int     `json:"total_edges"`
	SymptomNodes        int     `json:"symptom_nodes"`
	DiseaseNodes        int     `json:"disease_nodes"`
	TreatmentNodes      int     `json:"treatment_nodes"`
	AvgDegree           float64 `json:"avg_degree"`
	Density             float64 `json:"density"`
	ConnectedComponents int     `json:"connected_components"`
}

// Graph is the full response payload for one build.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
	Stats Stats  `json:"stats"`
}
