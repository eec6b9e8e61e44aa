package graph

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

const (
	typeSymptom   = "symptom"
	typeDisease   = "disease"
	typeTreatment = "treatment"

	colorSymptom   = "#3B82F6"
	colorDisease   = "#EF4444"
	colorTreatment = "#10B981"

	sizeSymptom   = 20
	sizeDisease   = 30
	sizeTreatment = 25

	edgeTreats    = "treats"
	edgeIndicates = "indicates"

	weightTreats   = 0.8
	weightStrong   = 0.8
	weightPartial  = 0.6
	weightWeak     = 0.2
	minEdgeWeight  = 0.3
	fallbackWeight = 0.5
)

// symptomRelations links symptom keywords to the diseases they commonly
// indicate. Keys match by containment in either direction.
var symptomRelations = map[string][]string{
	"fever":               {"influenza", "common cold", "food poisoning"},
	"headache":            {"migraine", "hypertension", "influenza"},
	"nausea":              {"migraine", "food poisoning", "gastritis"},
	"cough":               {"common cold", "influenza", "asthma"},
	"shortness of breath": {"asthma", "anxiety"},
	"chest pain":          {"anxiety", "hypertension"},
	"fatigue":             {"diabetes", "depression", "influenza"},
	"rash":                {"allergic reaction"},
	"stomach pain":        {"gastritis", "food poisoning"},
}

// staticTreatments is the built-in treatment list used when no richer
// source is available for a disease.
var staticTreatments = map[string][]string{
	"common cold":       {"Rest", "Fluids", "Over-the-counter medications"},
	"influenza":         {"Rest", "Antiviral medications", "Symptomatic treatment"},
	"migraine":          {"Pain relievers", "Rest", "Avoid triggers"},
	"food poisoning":    {"Hydration", "Bland diet", "Medical attention"},
	"allergic reaction": {"Antihistamines", "Avoid allergens", "Medical evaluation"},
	"anxiety":           {"Therapy", "Relaxation techniques", "Medical consultation"},
	"hypertension":      {"Lifestyle changes", "Medication", "Regular monitoring"},
	"diabetes":          {"Diet management", "Exercise", "Medication"},
	"asthma":            {"Inhalers", "Avoid triggers", "Medical management"},
	"gastritis":         {"Diet changes", "Medications", "Avoid irritants"},
}

var defaultTreatmentList = []string{"Medical consultation"}

// build assembles nodes and edges for the given symptoms and diseases.
// treatmentsFor resolves the treatment list for one disease name.
func build(symptoms, diseases []string, treatmentsFor func(disease string) []string) *Graph {
	g := &Graph{
		Nodes: make([]Node, 0, len(symptoms)+len(diseases)),
		Edges: make([]Edge, 0),
	}
	seen := make(map[string]bool)

	symptomIDs := make([]string, 0, len(symptoms))
	symptomNames := make([]string, 0, len(symptoms))
	for _, s := range symptoms {
		id := nodeID(typeSymptom, s)
		if seen[id] {
			continue
		}
		seen[id] = true
		symptomIDs = append(symptomIDs, id)
		symptomNames = append(symptomNames, s)
		g.Nodes = append(g.Nodes, Node{
			ID:    id,
			Label: titleCase(s),
			Type:  typeSymptom,
			Color: colorSymptom,
			Size:  sizeSymptom,
		})
	}

	diseaseIDs := make([]string, 0, len(diseases))
	diseaseNames := make([]string, 0, len(diseases))
	for _, d := range diseases {
		id := nodeID(typeDisease, d)
		if seen[id] {
			continue
		}
		seen[id] = true
		diseaseIDs = append(diseaseIDs, id)
		diseaseNames = append(diseaseNames, d)
		g.Nodes = append(g.Nodes, Node{
			ID:    id,
			Label: titleCase(d),
			Type:  typeDisease,
			Color: colorDisease,
			Size:  sizeDisease,
		})
	}

	// Treatment nodes and treats edges. Treatments shared between
	// diseases collapse into a single node.
	for i, d := range diseaseNames {
		for _, t := range treatmentsFor(d) {
			id := nodeID(typeTreatment, t)
			if !seen[id] {
				seen[id] = true
				g.Nodes = append(g.Nodes, Node{
					ID:    id,
					Label: titleCase(t),
					Type:  typeTreatment,
					Color: colorTreatment,
					Size:  sizeTreatment,
				})
			}
			g.Edges = append(g.Edges, Edge{
				Source: diseaseIDs[i],
				Target: id,
				Weight: weightTreats,
				Type:   edgeTreats,
			})
		}
	}

	// Symptom to disease edges, keeping only meaningful relationships.
	for i, s := range symptomNames {
		for j, d := range diseaseNames {
			w := relationWeight(strings.ToLower(s), strings.ToLower(d))
			if w <= minEdgeWeight {
				continue
			}
			g.Edges = append(g.Edges, Edge{
				Source: symptomIDs[i],
				Target: diseaseIDs[j],
				Weight: w,
				Type:   edgeIndicates,
			})
		}
	}

	g.Stats = computeStats(g.Nodes, g.Edges)
	return g
}

// relationWeight scores how strongly a symptom points at a disease. Both
// arguments must already be lowercased.
func relationWeight(symptom, disease string) float64 {
	var related []string
	for key, linked := range symptomRelations {
		if strings.Contains(symptom, key) || strings.Contains(key, symptom) {
			related = append(related, linked...)
		}
	}
	for _, r := range related {
		if r == disease {
			return weightStrong
		}
	}
	for _, r := range related {
		if strings.Contains(disease, r) || strings.Contains(r, disease) {
			return weightPartial
		}
	}
	return weightWeak
}

func computeStats(nodes []Node, edges []Edge) Stats {
	st := Stats{
		TotalNodes: len(nodes),
		TotalEdges: len(edges),
	}
	for _, n := range nodes {
		switch n.Type {
		case typeSymptom:
			st.SymptomNodes++
		case typeDisease:
			st.DiseaseNodes++
		case typeTreatment:
			st.TreatmentNodes++
		}
	}
	n := len(nodes)
	e := len(edges)
	if n > 0 {
		st.AvgDegree = round2(float64(2*e) / float64(n))
	}
	if n > 1 {
		st.Density = round3(float64(2*e) / float64(n*(n-1)))
	}
	st.ConnectedComponents = countComponents(nodes, edges)
	return st
}

// countComponents counts connected components treating edges as
// undirected. Isolated nodes each form their own component.
func countComponents(nodes []Node, edges []Edge) int {
	if len(nodes) == 0 {
		return 0
	}
	adj := make(map[string][]string, len(nodes))
	for _, n := range nodes {
		adj[n.ID] = nil
	}
	for _, e := range edges {
		adj[e.Source] = append(adj[e.Source], e.Target)
		adj[e.Target] = append(adj[e.Target], e.Source)
	}
	visited := make(map[string]bool, len(nodes))
	count := 0
	for _, n := range nodes {
		if visited[n.ID] {
			continue
		}
		count++
		queue := []string{n.ID}
		visited[n.ID] = true
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, next := range adj[cur] {
				if !visited[next] {
					visited[next] = true
					queue = append(queue, next)
				}
			}
		}
	}
	return count
}

// fallbackGraph is the minimal graph returned when a build fails. Every
// symptom links to every disease with a neutral weight.
func fallbackGraph(symptoms, diseases []string) *Graph {
	g := &Graph{
		Nodes: make([]Node, 0, len(symptoms)+len(diseases)),
		Edges: make([]Edge, 0, len(symptoms)*len(diseases)),
	}
	for i, s := range symptoms {
		g.Nodes = append(g.Nodes, Node{
			ID:    indexID(typeSymptom, i),
			Label: titleCase(s),
			Type:  typeSymptom,
			Color: colorSymptom,
			Size:  sizeSymptom,
		})
	}
	for i, d := range diseases {
		g.Nodes = append(g.Nodes, Node{
			ID:    indexID(typeDisease, i),
			Label: titleCase(d),
			Type:  typeDisease,
			Color: colorDisease,
			Size:  sizeDisease,
		})
	}
	for i := range symptoms {
		for j := range diseases {
			g.Edges = append(g.Edges, Edge{
				Source: indexID(typeSymptom, i),
				Target: indexID(typeDisease, j),
				Weight: fallbackWeight,
				Type:   edgeIndicates,
			})
		}
	}
	g.Stats = Stats{
		TotalNodes:          len(g.Nodes),
		TotalEdges:          len(g.Edges),
		SymptomNodes:        len(symptoms),
		DiseaseNodes:        len(diseases),
		TreatmentNodes:      0,
		AvgDegree:           2.0,
		Density:             0.5,
		ConnectedComponents: 1,
	}
	return g
}

func nodeID(kind, name string) string {
	return kind + "_" + strings.ReplaceAll(strings.ToLower(name), " ", "_")
}

func indexID(kind string, i int) string {
	return kind + "_" + strconv.Itoa(i)
}

// titleCase uppercases the first letter of each word, the way the
// frontend labels nodes.
func titleCase(s string) string {
	runes := []rune(strings.ToLower(s))
	prevLetter := false
	for i, r := range runes {
		if unicode.IsLetter(r) {
			if !prevLetter {
				runes[i] = unicode.ToUpper(r)
			}
			prevLetter = true
		} else {
			prevLetter = false
		}
	}
	return string(runes)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
