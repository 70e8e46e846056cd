package nebula

import (
	"fmt"
	"strings"
)

// ResourceKind is a raw material collected from resource cells.
type ResourceKind int

const (
	Quark ResourceKind = iota
	Plasma
	Neutrino

	numResources = 3
)

// ResourceKinds lists every resource kind in display order.
var ResourceKinds = [numResources]ResourceKind{Quark, Plasma, Neutrino}

var resourceNames = [numResources]string{"Quark", "Plasma", "Neutrino"}

// String returns the resource name.
func (k ResourceKind) String() string {
	if k < 0 || int(k) >= numResources {
		return "Unknown"
	}
	return resourceNames[k]
}

// ParseResource converts a case-insensitive name to a ResourceKind.
func ParseResource(name string) (ResourceKind, error) {
	for i, n := range resourceNames {
		if strings.EqualFold(strings.TrimSpace(name), n) {
			return ResourceKind(i), nil
		}
	}
	return 0, fmt.Errorf("nebula: unknown resource %q", name)
}

// ToolKind is a craftable tool.
type ToolKind int

const (
	Shield ToolKind = iota
	Pulse

	numTools = 2
)

// ToolKinds lists every tool kind in display order.
var ToolKinds = [numTools]ToolKind{Shield, Pulse}

var toolNames = [numTools]string{"Shield", "Pulse"}

// String returns the tool name.
func (k ToolKind) String() string {
	if k < 0 || int(k) >= numTools {
		return "Unknown"
	}
	return toolNames[k]
}

// ParseTool converts a case-insensitive name to a ToolKind.
func ParseTool(name string) (ToolKind, error) {
	for i, n := range toolNames {
		if strings.EqualFold(strings.TrimSpace(name), n) {
			return ToolKind(i), nil
		}
	}
	return 0, fmt.Errorf("nebula: unknown tool %q", name)
}

func (k ToolKind) valid() bool {
	return k >= 0 && int(k) < numTools
}

// ResourceCounts holds one non-negative count per resource kind.
type ResourceCounts [numResources]int

// Of returns the count for kind.
func (c ResourceCounts) Of(kind ResourceKind) int {
	if kind < 0 || int(kind) >= numResources {
		return 0
	}
	return c[kind]
}

// Covers reports whether c has at least the amounts in cost.
func (c ResourceCounts) Covers(cost ResourceCounts) bool {
	for i := range c {
		if c[i] < cost[i] {
			return false
		}
	}
	return true
}

// Total returns the sum of all counts.
func (c ResourceCounts) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

// ToolCounts holds one non-negative inventory count per tool kind.
type ToolCounts [numTools]int

// Of returns the count for kind.
func (c ToolCounts) Of(kind ToolKind) int {
	if !kind.valid() {
		return 0
	}
	return c[kind]
}
