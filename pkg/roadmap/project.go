package roadmap

import "strings"

// Group names one of the people lists of a project.
type Group string

const (
	Members      Group = "member"
	Stakeholders Group = "stakeholder"
)

// ParseGroup accepts singular and plural spellings.
func ParseGroup(s string) (Group, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "member", "members", "team":
		return Members, true
	case "stakeholder", "stakeholders":
		return Stakeholders, true
	}
	return "", false
}

// Person is a team member or a stakeholder.
type Person struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Role  string `json:"role" yaml:"role"`
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

// Project describes who the roadmaps are for. There is one per store.
type Project struct {
	Name         string    `json:"name" yaml:"name"`
	Description  string    `json:"description" yaml:"description"`
	Team         string    `json:"team" yaml:"team"`
	Updated      Timestamp `json:"updated" yaml:"updated"`
	Members      []Person  `json:"members" yaml:"members"`
	Stakeholders []Person  `json:"stakeholders" yaml:"stakeholders"`
}

// DefaultProject is shown until the project is first edited.
func DefaultProject() *Project {
	return &Project{
		Name:         "Product Roadmap",
		Description:  "Strategic product planning and feature prioritization",
		Team:         "Product Team",
		Members:      []Person{},
		Stakeholders: []Person{},
	}
}

// People returns the list for g.
func (p *Project) People(g Group) []Person {
	if g == Stakeholders {
		return p.Stakeholders
	}
	return p.Members
}

// SetPeople replaces the list for g.
func (p *Project) SetPeople(g Group, people []Person) {
	if g == Stakeholders {
		p.Stakeholders = people
		return
	}
	p.Members = people
}

// Person finds someone in the list for g.
func (p *Project) Person(g Group, id string) (Person, int, bool) {
	for i, person := range p.People(g) {
		if person.ID == id {
			return person, i, true
		}
	}
	return Person{}, -1, false
}

// Clone returns a copy that shares no state with p.
func (p *Project) Clone() *Project {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Members = append([]Person{}, p.Members...)
	cp.Stakeholders = append([]Person{}, p.Stakeholders...)
	return &cp
}
