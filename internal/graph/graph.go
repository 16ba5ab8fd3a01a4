// Package graph generates DOT and Mermaid format graphs of the deployment's
// privilege topology: which function assumes which access role.
package graph

import (
	"io"
	"strings"

	"github.com/emicklei/dot"

	campusdeploy "github.com/campustime/campus-deploy"
)

// Format specifies the output format for the graph.
type Format string

const (
	// FormatDOT outputs Graphviz DOT format.
	FormatDOT Format = "dot"
	// FormatMermaid outputs Mermaid format for GitHub/markdown rendering.
	FormatMermaid Format = "mermaid"
)

// Generator creates privilege-topology graphs from a deployment description.
type Generator struct {
	// Format specifies the output format (dot or mermaid). Defaults to dot.
	Format Format

	// IncludeBuildSpecs adds a node per managed application build.
	IncludeBuildSpecs bool
}

// Generate creates the graph for desc and writes it to w.
func (g *Generator) Generate(desc *campusdeploy.Description, w io.Writer) error {
	graph := g.buildGraph(desc)

	format := g.Format
	if format == "" {
		format = FormatDOT
	}

	var output string
	if format == FormatMermaid {
		output = dot.MermaidGraph(graph, dot.MermaidTopToBottom)
	} else {
		output = graph.String()
	}

	_, err := w.Write([]byte(output))
	return err
}

// GenerateString is a convenience method that returns the graph as a string.
func (g *Generator) GenerateString(desc *campusdeploy.Description) (string, error) {
	var sb strings.Builder
	if err := g.Generate(desc, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// buildGraph creates the dot.Graph structure from the description.
func (g *Generator) buildGraph(desc *campusdeploy.Description) *dot.Graph {
	graph := dot.NewGraph(dot.Directed)
	graph.Attr("rankdir", "TB")

	graph.NodeInitializer(func(n dot.Node) {
		n.Attr("shape", "box")
		n.Attr("fontname", "Arial")
	})
	graph.EdgeInitializer(func(e dot.Edge) {
		e.Attr("fontname", "Arial")
		e.Attr("fontsize", "10")
	})

	roleNodes := make(map[string]dot.Node, len(desc.Roles))
	for _, r := range desc.Roles {
		n := graph.Node(r.Name)
		n.Attr("shape", "ellipse")
		roleNodes[r.Name] = n
	}

	for _, f := range desc.Functions {
		n := graph.Node(f.Name)
		if f.Role == "" {
			continue
		}
		target, ok := roleNodes[f.Role]
		if !ok {
			// Dangling reference; still show it so lint failures are visible.
			target = graph.Node(f.Role)
			target.Attr("shape", "ellipse")
			target.Attr("style", "dashed")
			roleNodes[f.Role] = target
		}
		graph.Edge(n, target).Attr("label", "assumes")
	}

	if g.IncludeBuildSpecs {
		for _, b := range desc.BuildSpecs {
			n := graph.Node("build:" + b.App)
			n.Attr("shape", "note")
		}
	}

	return graph
}
