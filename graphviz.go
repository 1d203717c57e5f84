package fsm

import "github.com/enetx/g"

// ToDOT generates a DOT language string representation of the FSM for visualization.
// States appear in declaration order; the current state is highlighted and
// transitions to undeclared states are drawn in red.
func (f *FSM) ToDOT() g.String {
	b := g.NewBuilder()

	b.WriteString("digraph FSM {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString(
		"  node [shape=circle, style=filled, fillcolor=\"#f8f8f8\", color=\"#444444\", fontname=\"Helvetica\"];\n",
	)
	b.WriteString("  edge [fontname=\"Helvetica\", fontsize=10];\n\n")

	b.WriteString("  __start [shape=point, style=invis];\n")
	b.WriteString(g.Format("  __start -> \"{}\" [label=\" initial\"];\n\n", f.config.Initial))

	visited := g.NewSet[State]()
	for _, state := range f.history {
		visited.Insert(state)
	}

	for _, state := range f.config.names {
		var attrs g.Slice[g.String]
		attrs.Push(g.Format("label=\"{}\"", state))

		switch {
		case state == f.current:
			attrs.Push("fillcolor=\"#90ee90\"", "shape=doublecircle")
		case len(f.config.states[state].Transitions) == 0:
			attrs.Push("fillcolor=\"#d3d3d3\"", "shape=doublecircle")
		case visited.Contains(state):
			attrs.Push("fillcolor=\"#add8e6\"")
		}

		b.WriteString(g.Format("  \"{}\" [{}];\n", state, attrs.Join(", ")))
	}

	b.WriteByte('\n')

	for _, from := range f.config.names {
		grouped := g.NewMap[State, g.Slice[g.String]]()
		var targets g.Slice[State]

		for _, event := range f.config.events(from) {
			to := f.config.states[from].Transitions[event]
			labels, seen := grouped[to]
			if !seen {
				targets.Push(to)
			}

			labels.Push(g.String(event))
			grouped[to] = labels
		}

		for _, to := range targets {
			labels := grouped[to]

			var edge g.Slice[g.String]
			edge.Push(g.Format("label=\" {} \"", labels.Join("\\n")))

			if !f.config.HasState(to) {
				edge.Push("style=dashed", "color=red")
			}

			b.WriteString(g.Format("  \"{}\" -> \"{}\" [{}];\n", from, to, edge.Join(", ")))
		}
	}

	b.WriteString("\n  subgraph cluster_legend {\n")
	b.WriteString("    label = \"Legend\";\n")
	b.WriteString("    style = dashed;\n")
	b.WriteString(`    key [label=<
      <table border="0" cellpadding="4" cellspacing="0" cellborder="0">
        <tr><td align="right">●</td><td>Regular state</td></tr>
        <tr><td align="right"><font color="green">◎</font></td><td>Current state</td></tr>
        <tr><td align="right"><font color="blue">●</font></td><td>In history</td></tr>
        <tr><td align="right"><font color="gray">◎</font></td><td>Final state</td></tr>
        <tr><td align="right"><font color="red">→</font></td><td>Undeclared target</td></tr>
      </table>
    >, shape=none];`)

	b.WriteString("  }\n")
	b.WriteString("}\n")

	return b.String()
}
