// Package mcts estimates hero equity with Monte Carlo Tree Search over chance
// nodes. Each node is a deal.State; its actions are a capped random sample of
// the cards that can be dealt next.
package mcts

import (
	"fmt"
	"math"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-mcts/internal/deal"
	"github.com/lox/holdem-mcts/internal/statistics"
	"github.com/lox/holdem-mcts/poker"
)

const rootIndex int32 = 0

// node lives in Tree.nodes. parent is an index, -1 for the root; ownership
// runs from parent to children only.
type node struct {
	state    deal.State
	parent   int32
	children []int32
	visits   int
	payoff   float64
	depth    int

	// untried is filled the first time the node is reached for expansion.
	untried []deal.Action
	sampled bool
}

// Tree is a single search tree. It is not safe for concurrent use; parallel
// searches give every worker its own Tree.
type Tree struct {
	nodes       []node
	rng         *rand.Rand
	exploration float64
	sampleLimit int
	logger      *log.Logger

	iterations int
	maxDepth   int
	rollouts   statistics.Rollouts
}

// NewTree creates a tree rooted at state.
func NewTree(root deal.State, rng *rand.Rand, exploration float64, sampleLimit int, logger *log.Logger) *Tree {
	t := &Tree{
		nodes:       make([]node, 1, 64),
		rng:         rng,
		exploration: exploration,
		sampleLimit: sampleLimit,
		logger:      logger,
	}
	t.nodes[rootIndex] = node{state: root, parent: -1}
	return t
}

// Iterate runs one round of selection, expansion, rollout and
// backpropagation.
func (t *Tree) Iterate() {
	cur := t.selectLeaf()
	if t.sample(cur) {
		cur = t.expand(cur)
	}
	outcome, ok := t.rollout(t.nodes[cur].state)
	if ok {
		t.rollouts.Add(outcome)
	} else {
		t.rollouts.AddUnderflow()
	}
	t.backpropagate(cur, outcome.Payoff())
	t.iterations++
}

// Root returns the root's visit count and cumulative payoff.
func (t *Tree) Root() (visits int, payoff float64) {
	r := &t.nodes[rootIndex]
	return r.visits, r.payoff
}

// Equity is root payoff over root visits, or zero before any iteration.
func (t *Tree) Equity() float64 {
	visits, payoff := t.Root()
	if visits == 0 {
		return 0
	}
	return payoff / float64(visits)
}

// Len is the number of nodes in the tree.
func (t *Tree) Len() int { return len(t.nodes) }

// MaxDepth is the depth of the deepest node, the root being 0.
func (t *Tree) MaxDepth() int { return t.maxDepth }

// Underflows counts rollouts that ran out of cards.
func (t *Tree) Underflows() int { return t.rollouts.Underflows }

// Rollouts returns the outcome tally of every rollout so far.
func (t *Tree) Rollouts() statistics.Rollouts { return t.rollouts }

// Iterations is the number of completed calls to Iterate.
func (t *Tree) Iterations() int { return t.iterations }

// selectLeaf descends from the root while the current node is fully
// expanded and has children.
func (t *Tree) selectLeaf() int32 {
	cur := rootIndex
	for {
		n := &t.nodes[cur]
		if !n.sampled || len(n.untried) > 0 || len(n.children) == 0 {
			return cur
		}
		cur = t.selectChild(cur)
	}
}

func (t *Tree) selectChild(idx int32) int32 {
	n := &t.nodes[idx]

	var unvisited []int32
	for _, c := range n.children {
		if t.nodes[c].visits == 0 {
			unvisited = append(unvisited, c)
		}
	}
	if len(unvisited) > 0 {
		return unvisited[t.rng.IntN(len(unvisited))]
	}

	logParent := math.Log(float64(n.visits))
	best := n.children[0]
	bestScore := math.Inf(-1)
	for _, c := range n.children {
		child := &t.nodes[c]
		v := float64(child.visits)
		score := child.payoff/v + t.exploration*math.Sqrt(logParent/v)
		if score > bestScore {
			best, bestScore = c, score
		}
	}
	return best
}

// sample draws the node's action set on first contact and reports whether an
// untried action is available.
func (t *Tree) sample(idx int32) bool {
	n := &t.nodes[idx]
	if !n.sampled {
		n.untried = n.state.LegalActions(t.rng, t.sampleLimit)
		n.sampled = true
	}
	return len(n.untried) > 0
}

// expand pops the last untried action of idx and appends the resulting child.
func (t *Tree) expand(idx int32) int32 {
	parent := &t.nodes[idx]
	last := len(parent.untried) - 1
	action := parent.untried[last]
	parent.untried = parent.untried[:last]
	if last == 0 {
		parent.untried = nil
	}

	child := node{
		state:  parent.state.Apply(action),
		parent: idx,
		depth:  parent.depth + 1,
	}
	childIdx := int32(len(t.nodes))
	parent.children = append(parent.children, childIdx)
	// parent is invalid past this append
	t.nodes = append(t.nodes, child)
	if child.depth > t.maxDepth {
		t.maxDepth = child.depth
	}
	return childIdx
}

// rollout deals out the rest of the hand at random and scores it from the
// hero's side. ok is false if the deck ran out, which scores as a loss.
func (t *Tree) rollout(s deal.State) (statistics.Outcome, bool) {
	opp, board, ok := s.Complete(t.rng)
	if !ok {
		t.logger.Warn("Rollout ran out of cards", "state", s.String())
		return statistics.Loss, false
	}

	hero := s.Hero()
	heroScore := poker.ScoreSeven([7]poker.Card{hero[0], hero[1], board[0], board[1], board[2], board[3], board[4]})
	oppScore := poker.ScoreSeven([7]poker.Card{opp[0], opp[1], board[0], board[1], board[2], board[3], board[4]})

	switch heroScore.Compare(oppScore) {
	case 1:
		return statistics.Win, true
	case 0:
		return statistics.Tie, true
	default:
		return statistics.Loss, true
	}
}

func (t *Tree) backpropagate(idx int32, payoff float64) {
	for idx >= 0 {
		n := &t.nodes[idx]
		n.visits++
		n.payoff += payoff
		idx = n.parent
	}
}

// Validate checks the visit bookkeeping: the root has one visit per
// iteration, no node has fewer visits than its children combined, and the
// rollouts that stopped at each node add up to the iteration count.
func (t *Tree) Validate() error {
	root := &t.nodes[rootIndex]
	if root.parent != -1 {
		return fmt.Errorf("root has parent %d", root.parent)
	}
	if root.visits != t.iterations {
		return fmt.Errorf("root visits %d != iterations %d", root.visits, t.iterations)
	}

	stopped := 0
	for i := range t.nodes {
		n := &t.nodes[i]
		childVisits := 0
		for _, c := range n.children {
			if c <= int32(i) || int(c) >= len(t.nodes) {
				return fmt.Errorf("node %d has out of order child %d", i, c)
			}
			child := &t.nodes[c]
			if child.parent != int32(i) {
				return fmt.Errorf("node %d lists child %d whose parent is %d", i, c, child.parent)
			}
			if child.depth != n.depth+1 {
				return fmt.Errorf("node %d at depth %d has child at depth %d", i, n.depth, child.depth)
			}
			childVisits += child.visits
		}
		if n.visits < childVisits {
			return fmt.Errorf("node %d has %d visits but its children have %d", i, n.visits, childVisits)
		}
		if n.payoff < 0 || n.payoff > float64(n.visits) {
			return fmt.Errorf("node %d payoff %.1f outside [0, %d]", i, n.payoff, n.visits)
		}
		stopped += n.visits - childVisits
	}
	if stopped != t.iterations {
		return fmt.Errorf("%d rollouts accounted for, want %d", stopped, t.iterations)
	}

	if err := t.rollouts.Validate(); err != nil {
		return err
	}
	if n := t.rollouts.Count(); n != t.iterations {
		return fmt.Errorf("%d rollouts tallied, want %d", n, t.iterations)
	}
	if math.Abs(root.payoff-t.rollouts.Payoff()) > 1e-6 {
		return fmt.Errorf("root payoff %.1f != rollout payoff %.1f", root.payoff, t.rollouts.Payoff())
	}
	return nil
}
