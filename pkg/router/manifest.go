package router

import (
	"encoding/json"
	"sort"
)

// Manifest is a JSON-serializable snapshot of a router's tables, built
// for the inspector and the publisher. It carries patterns and source
// paths, never handlers, so it is safe to ship off-process.
type Manifest struct {
	Routes        []ManifestRoute              `json:"routes"`
	Layouts       map[string]string            `json:"layouts,omitempty"`
	NamedLayouts  map[string]map[string]string `json:"namedLayouts,omitempty"`
	ErrorPages    map[string]string            `json:"errorPages,omitempty"`
	LoadingPages  map[string]string            `json:"loadingPages,omitempty"`
	Templates     map[string]string            `json:"templates,omitempty"`
	NotFoundPages map[string]string            `json:"notFoundPages,omitempty"`
	Barriers      []string                     `json:"nolayoutBarriers,omitempty"`
	Parallel      map[string]map[string]string `json:"parallelRoutes,omitempty"`
}

// ManifestRoute is one sorted-list entry of the manifest.
type ManifestRoute struct {
	Pattern    string            `json:"pattern"`
	Kind       string            `json:"kind"`
	SourcePath string            `json:"sourcePath,omitempty"`
	Priority   int               `json:"priority"`
	Name       string            `json:"name,omitempty"`
	Aliases    []string          `json:"aliases,omitempty"`
	Meta       map[string]string `json:"meta,omitempty"`
	RedirectTo string            `json:"redirectTo,omitempty"`
	SlotName   string            `json:"slotName,omitempty"`
	SlotParent string            `json:"slotParent,omitempty"`
	Intercept  string            `json:"interceptTarget,omitempty"`
}

// BuildManifest snapshots the router's current tables.
func BuildManifest(r *Router) *Manifest {
	m := &Manifest{
		Layouts:       patternTable(r.Layouts()),
		ErrorPages:    patternTable(r.ErrorPages()),
		LoadingPages:  patternTable(r.LoadingPages()),
		Templates:     patternTable(r.Templates()),
		NotFoundPages: patternTable(r.NotFoundPages()),
	}
	for _, rt := range r.Routes() {
		m.Routes = append(m.Routes, ManifestRoute{
			Pattern:    rt.Pattern,
			Kind:       rt.Kind.String(),
			SourcePath: rt.SourcePath,
			Priority:   rt.Priority,
			Name:       rt.Name,
			Aliases:    rt.Aliases,
			Meta:       rt.Meta,
			RedirectTo: rt.RedirectTo,
			SlotName:   rt.SlotName,
			SlotParent: rt.SlotParent,
			Intercept:  rt.InterceptTarget,
		})
	}
	if named := r.NamedLayouts(); len(named) > 0 {
		m.NamedLayouts = make(map[string]map[string]string, len(named))
		for parent, slots := range named {
			m.NamedLayouts[parent] = patternTable(slots)
		}
	}
	for barrier := range r.NoLayoutBarriers() {
		m.Barriers = append(m.Barriers, barrier)
	}
	sort.Strings(m.Barriers)
	if parallel := r.ParallelRoutes(); len(parallel) > 0 {
		m.Parallel = make(map[string]map[string]string, len(parallel))
		for parent, slots := range parallel {
			m.Parallel[parent] = patternTable(slots)
		}
	}
	return m
}

// JSON renders the manifest with stable indentation.
func (m *Manifest) JSON() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}

func patternTable(table map[string]*Route) map[string]string {
	if len(table) == 0 {
		return nil
	}
	out := make(map[string]string, len(table))
	for key, rt := range table {
		out[key] = rt.SourcePath
	}
	return out
}
