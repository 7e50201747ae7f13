// Copyright (c) 2026 Raul Medina.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import "github.com/rmedina/expovote/models"

// projects is the static catalog for the event. Order matters: it is the
// display order of the voting screen.
var projects = []models.Project{
	{ID: "fate-bound", Name: "FATE BOUND", Category: "JUEGO", Members: []string{"Nath", "Kath"}},
	{ID: "lebab", Name: "LEBAB", Category: "ERP", Members: []string{"Luis", "Kevin"}},
	{ID: "zero-impact", Name: "ZERO IMPACT", Category: "SOCIAL", Members: []string{"Santi"}},
	{ID: "ihira", Name: "IHIRA", Category: "SOCIAL", Members: []string{"Raul", "Miguel", "Elias"}},
	{ID: "edu-sched", Name: "EDU SCHED", Category: "PROF", Members: []string{"Angel", "Luis", "Arturo"}},
	{ID: "lia", Name: "LIA", Category: "ML", Members: []string{"Laila"}},
	{ID: "photo-algo", Name: "PHOTO ALGO", Category: "SOCIAL", Members: []string{"Osvaldo", "Adrian"}},
}

// All returns the ordered project list. The returned slice is a copy; the
// catalog itself is immutable.
func All() []models.Project {
	out := make([]models.Project, len(projects))
	copy(out, projects)
	return out
}

// ByID looks up one project.
func ByID(id string) (models.Project, bool) {
	for _, p := range projects {
		if p.ID == id {
			return p, true
		}
	}
	return models.Project{}, false
}
