package fleet

import (
	"github.com/seantiz/mxm/internal/mock"
	"github.com/seantiz/mxm/internal/model"
)

// Names of the built-in fleets.
const (
	Factory = "factory"
	Scatter = "scatter"
)

// FactoryFixtures is the plant floor shown on the table and bar views.
func FactoryFixtures() []mock.Fixture {
	return []mock.Fixture{
		{ID: "605", Status: model.MachineRunning, Project: model.ProjectInHouse, MTBFHours: 260, MTTRHours: 1.2},
		{ID: "606", Status: model.MachineDown, Project: model.ProjectInHouse, TimeDownMinutes: 125, MTBFHours: 95, MTTRHours: 3.8},
		{ID: "607", Status: model.MachineRunning, Project: model.ProjectSubcom, MTBFHours: 280, MTTRHours: 1.0},
		{ID: "608", Status: model.MachineDown, Project: model.ProjectSubcom, TimeDownMinutes: 45, MTBFHours: 140, MTTRHours: 2.6},
		{ID: "609", Status: model.MachineDown, Project: model.ProjectSubcom, TimeDownMinutes: 180, MTBFHours: 240, MTTRHours: 1.5},
		{ID: "610", Status: model.MachineRunning, Project: model.ProjectSubcom, MTBFHours: 110, MTTRHours: 4.1},
		{ID: "611", Status: model.MachineRunning, Project: model.ProjectInHouse, MTBFHours: 220, MTTRHours: 1.7},
	}
}

// ScatterFixtures is the fleet plotted on the MTBF/MTTR scatter view.
func ScatterFixtures() []mock.Fixture {
	return []mock.Fixture{
		{ID: "S-101", Status: model.MachineRunning, Project: model.ProjectSubcom, MTBFHours: 260, MTTRHours: 1.2},
		{ID: "S-102", Status: model.MachineDown, Project: model.ProjectSubcom, TimeDownMinutes: 125, MTBFHours: 95, MTTRHours: 3.8},
		{ID: "S-103", Status: model.MachineRunning, Project: model.ProjectSubcom, MTBFHours: 280, MTTRHours: 1.0},
		{ID: "S-104", Status: model.MachineDown, Project: model.ProjectSubcom, TimeDownMinutes: 45, MTBFHours: 140, MTTRHours: 2.6},
		{ID: "I-201", Status: model.MachineRunning, Project: model.ProjectInHouse, MTBFHours: 240, MTTRHours: 1.5},
		{ID: "I-202", Status: model.MachineDown, Project: model.ProjectInHouse, TimeDownMinutes: 180, MTBFHours: 110, MTTRHours: 4.1},
		{ID: "I-203", Status: model.MachineRunning, Project: model.ProjectInHouse, MTBFHours: 220, MTTRHours: 1.7},
	}
}

// Default returns a registry holding the built-in fleets.
func Default() *Registry {
	r := NewRegistry()
	r.Register(Factory, "Plant floor machines 605-611", FactoryFixtures())
	r.Register(Scatter, "Subcom and In-House lines for the reliability scatter", ScatterFixtures())
	return r
}
