package sankey

// WaitingStage is the sink that absorbs cards parked at intermediate stages,
// so every non-final stage's inflow matches its outflow in the diagram.
const WaitingStage = "Waiting"

// StageNode tracks the per-stage inflow and outflow of cards.
type StageNode struct {
	Name  string
	Final bool

	incoming map[string]int
	outgoing map[string]int
	outOrder []string
}

func newStageNode(name string, final bool) *StageNode {
	return &StageNode{
		Name:     name,
		Final:    final,
		incoming: make(map[string]int),
		outgoing: make(map[string]int),
	}
}

func (n *StageNode) addIncoming(from string, count int) {
	n.incoming[from] += count
}

func (n *StageNode) addOutgoing(to string, count int) {
	if _, seen := n.outgoing[to]; !seen {
		n.outOrder = append(n.outOrder, to)
	}
	n.outgoing[to] += count
}

// TotalIncoming returns the number of cards flowing into the stage.
func (n *StageNode) TotalIncoming() int {
	sum := 0
	for _, c := range n.incoming {
		sum += c
	}
	return sum
}

// TotalOutgoing returns the number of cards flowing out of the stage.
func (n *StageNode) TotalOutgoing() int {
	sum := 0
	for _, c := range n.outgoing {
		sum += c
	}
	return sum
}

// Waiting returns the surplus of cards that entered the stage and never left.
// Final stages never wait.
func (n *StageNode) Waiting() int {
	if n.Final {
		return 0
	}
	w := n.TotalIncoming() - n.TotalOutgoing()
	if w < 0 {
		return 0
	}
	return w
}

// FlowGraph is a directed graph of stage transitions across all cards.
type FlowGraph struct {
	nodes      map[string]*StageNode
	nodeOrder  []string
	finals     map[string]bool
	firstStage string
	totalCards int
	balanced   bool
}

// NewFlowGraph creates a graph seeded with the known pipeline stages and
// final states. Stages encountered later in journeys are added on the fly.
func NewFlowGraph(stages, finals []string) *FlowGraph {
	g := &FlowGraph{
		nodes:  make(map[string]*StageNode),
		finals: make(map[string]bool),
	}
	for _, s := range finals {
		g.finals[s] = true
	}
	for _, s := range stages {
		g.node(s)
	}
	for _, s := range finals {
		g.node(s)
	}
	if len(stages) > 0 {
		g.firstStage = stages[0]
	}
	return g
}

func (g *FlowGraph) node(name string) *StageNode {
	if n, ok := g.nodes[name]; ok {
		return n
	}
	n := newStageNode(name, g.finals[name])
	g.nodes[name] = n
	g.nodeOrder = append(g.nodeOrder, name)
	return n
}

// TotalCards returns the number of journeys added so far.
func (g *FlowGraph) TotalCards() int {
	return g.totalCards
}

// AddJourney records the consecutive transitions of one card's journey.
func (g *FlowGraph) AddJourney(lists []string) {
	if len(lists) == 0 {
		return
	}
	g.totalCards++
	// A lone entry still registers the stage so it can wait there.
	if len(lists) == 1 {
		g.node(lists[0])
		return
	}
	for i := 0; i+1 < len(lists); i++ {
		from, to := lists[i], lists[i+1]
		if from == to {
			continue
		}
		g.node(from).addOutgoing(to, 1)
		g.node(to).addIncoming(from, 1)
	}
}

// balance adds a flow into the Waiting sink for every non-final stage whose
// inflow exceeds its outflow. The first pipeline stage has no recorded inflow,
// so cards that entered the board there are counted against the card total.
func (g *FlowGraph) balance() {
	if g.balanced {
		return
	}
	g.balanced = true

	waiting := g.node(WaitingStage)
	waiting.Final = true

	for _, name := range g.nodeOrder {
		if name == WaitingStage {
			continue
		}
		n := g.nodes[name]

		stuck := n.Waiting()
		if name == g.firstStage && n.TotalIncoming() == 0 {
			stuck = g.totalCards - n.TotalOutgoing()
			if stuck < 0 {
				stuck = 0
			}
		}
		if stuck == 0 {
			continue
		}
		n.addOutgoing(WaitingStage, stuck)
		waiting.addIncoming(name, stuck)
	}
}

// Flows balances the graph and returns every edge as flow data, in node
// insertion order.
func (g *FlowGraph) Flows() []Flow {
	g.balance()

	var flows []Flow
	for _, name := range g.nodeOrder {
		n := g.nodes[name]
		for _, to := range n.outOrder {
			flows = append(flows, Flow{From: name, To: to, Count: n.outgoing[to]})
		}
	}
	return flows
}
