package graph

import (
	_ "embed"
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	types "github.com/yungbote/careermap-backend/internal/domain/graph"
)

//go:embed dataset.yaml
var datasetYAML []byte

// Dataset is the static career list used offline and by seeding.
type Dataset struct {
	Root         string              `yaml:"root"`
	Careers      []string            `yaml:"careers"`
	SkillCareers map[string][]string `yaml:"skill_careers"`
}

var builtin = mustLoadDataset(datasetYAML)

func mustLoadDataset(raw []byte) *Dataset {
	var d Dataset
	if err := yaml.Unmarshal(raw, &d); err != nil {
		panic(fmt.Sprintf("graph: invalid embedded dataset: %v", err))
	}
	if d.Root == "" {
		d.Root = types.RootNodeID
	}
	return &d
}

// Builtin returns the embedded dataset.
func Builtin() *Dataset { return builtin }

// Synthetic is the root connected to every career, one hop deep. The output
// is a pure function of the dataset.
func (d *Dataset) Synthetic() Neighborhood {
	out := Neighborhood{
		Nodes:     make([]NodeView, 0, len(d.Careers)+1),
		Links:     make([]LinkView, 0, len(d.Careers)),
		CenterID:  d.Root,
		Synthetic: true,
		Selected: &Selected{
			ID:      d.Root,
			Type:    string(types.NodeTypeCareer),
			Label:   d.Root,
			Pathway: []string{},
		},
	}
	out.Nodes = append(out.Nodes, NodeView{ID: d.Root, Label: d.Root, Type: string(types.NodeTypeCareer)})
	for _, c := range d.Careers {
		out.Nodes = append(out.Nodes, NodeView{ID: c, Label: c, Type: string(types.NodeTypeCareer)})
		out.Links = append(out.Links, LinkView{Source: d.Root, Target: c, Weight: 1})
	}
	return out
}

// CareersForSkill returns the mapped careers, or an empty slice when the
// skill is unknown. known reports whether the skill is mapped at all.
func (d *Dataset) CareersForSkill(skill string) (careers []CareerView, known bool) {
	labels, known := d.SkillCareers[skill]
	careers = make([]CareerView, 0, len(labels))
	for _, l := range labels {
		careers = append(careers, CareerView{
			ID:      l,
			Label:   l,
			Type:    string(types.NodeTypeCareer),
			Summary: fmt.Sprintf("%s is a career that uses %s.", l, skill),
		})
	}
	return careers, known
}

// seedEdge derives the edge id from its endpoints so reseeding is idempotent.
func seedEdge(source, target string) *types.Edge {
	return &types.Edge{
		ID:       uuid.NewSHA1(uuid.NameSpaceOID, []byte(source+"->"+target)),
		SourceID: source,
		TargetID: target,
		Weight:   1,
	}
}

// Seed builds the root, career and skill nodes plus their edges.
func (d *Dataset) Seed() ([]*types.Node, []*types.Edge) {
	nodes := []*types.Node{{ID: d.Root, Type: types.NodeTypeCareer, Label: d.Root}}
	edges := []*types.Edge{}
	seen := map[string]bool{d.Root: true}
	for _, c := range d.Careers {
		if !seen[c] {
			seen[c] = true
			nodes = append(nodes, &types.Node{ID: c, Type: types.NodeTypeCareer, Label: c})
		}
		edges = append(edges, seedEdge(d.Root, c))
	}
	for _, skill := range sortedKeys(d.SkillCareers) {
		if !seen[skill] {
			seen[skill] = true
			nodes = append(nodes, &types.Node{ID: skill, Type: types.NodeTypeSkill, Label: skill})
		}
		for _, c := range d.SkillCareers[skill] {
			edges = append(edges, seedEdge(c, skill))
		}
	}
	return nodes, edges
}
