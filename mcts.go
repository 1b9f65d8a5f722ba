package main

import (
	"math"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"
)

// mctsNode owns its board snapshot and its children; the parent pointer is a
// non-owning back-reference used only while backpropagating. Trees are built
// fresh per decision and dropped afterwards.
type mctsNode struct {
	parent   *mctsNode
	children []*mctsNode
	move     Move
	mover    Player
	board    Board
	untried  []Move
	visits   int
	wins     float64
	terminal bool
	winner   Player
	draw     bool
}

func (n *mctsNode) toMove() Player {
	return otherPlayer(n.mover)
}

func (n *mctsNode) winRate() float64 {
	if n.visits == 0 {
		return 0
	}
	return n.wins / float64(n.visits)
}

// MCTSBestMove runs selection/expansion/simulation/backpropagation until the
// settings' deadline and returns the root child with the best win rate. It
// reports !ok when not even one iteration fit in the budget.
func MCTSBestMove(b *Board, settings AISettings) (Move, bool) {
	ctx := &searchContext{settings: settings}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	root := &mctsNode{
		mover: otherPlayer(settings.Player),
		board: *b,
	}
	root.untried = root.board.LegalMoves(nil)
	if winner, draw := root.board.Winner(); winner != PlayerNone || draw {
		return Move{}, false
	}

	iterations := 0
	for !ctx.timedOut() {
		node := selectNode(root, settings.Config.MctsExploration)
		if !node.terminal && len(node.untried) > 0 {
			node = expand(node, rng)
		}
		winner, draw := simulate(node, rng, ctx)
		backpropagate(node, winner, draw, settings.Player)
		iterations++
	}

	if len(root.children) == 0 {
		return Move{}, false
	}
	best := root.children[0]
	for _, child := range root.children[1:] {
		if child.winRate() > best.winRate() {
			best = child
		}
	}
	if settings.Config.AiLogSearchStats {
		log.Debug().
			Int("iterations", iterations).
			Int("root_children", len(root.children)).
			Int("best_visits", best.visits).
			Float64("best_win_rate", best.winRate()).
			Msg("mcts stats")
	}
	return best.move, true
}

// selectNode descends while the node is fully expanded, picking the child
// with the highest UCB1 value. Unvisited children have infinite priority.
func selectNode(node *mctsNode, exploration float64) *mctsNode {
	for !node.terminal && len(node.untried) == 0 && len(node.children) > 0 {
		var best *mctsNode
		bestValue := math.Inf(-1)
		logParent := math.Log(float64(node.visits + 1))
		for _, child := range node.children {
			if child.visits == 0 {
				best = child
				break
			}
			value := child.winRate() + exploration*math.Sqrt(logParent/float64(child.visits))
			if value > bestValue {
				bestValue = value
				best = child
			}
		}
		node = best
	}
	return node
}

// expand materializes exactly one child for a randomly chosen untried
// column.
func expand(node *mctsNode, rng *rand.Rand) *mctsNode {
	idx := rng.Intn(len(node.untried))
	move := node.untried[idx]
	node.untried[idx] = node.untried[len(node.untried)-1]
	node.untried = node.untried[:len(node.untried)-1]

	child := &mctsNode{
		parent: node,
		move:   move,
		mover:  node.toMove(),
		board:  node.board,
	}
	child.board.ApplyMove(move.X, move.Y, child.mover)
	if winner, draw := child.board.Winner(); winner != PlayerNone || draw {
		child.terminal = true
		child.winner = winner
		child.draw = draw
	} else {
		child.untried = child.board.LegalMoves(nil)
	}
	node.children = append(node.children, child)
	return child
}

// simulate plays the position out with a light policy: take an immediate
// win, block an immediate loss, otherwise lean central, otherwise random.
// Playout length is capped at the cell count as a safety bound.
func simulate(node *mctsNode, rng *rand.Rand, ctx *searchContext) (Player, bool) {
	if node.terminal {
		return node.winner, node.draw
	}
	if ctx.settings.Stats != nil {
		ctx.settings.Stats.Playouts++
	}
	board := node.board
	current := node.toMove()
	maxMoves := ctx.settings.Config.MctsMaxPlayoutMoves
	if maxMoves <= 0 {
		maxMoves = BoardCells
	}
	for i := 0; i < maxMoves; i++ {
		if winner, draw := board.Winner(); winner != PlayerNone || draw {
			return winner, draw
		}
		move, ok := playoutMove(&board, current, rng)
		if !ok {
			return PlayerNone, true
		}
		board.ApplyMove(move.X, move.Y, current)
		current = otherPlayer(current)
	}
	return PlayerNone, true
}

func playoutMove(b *Board, player Player, rng *rand.Rand) (Move, bool) {
	if move, ok := FindImmediateWin(b, player); ok {
		return move, true
	}
	if move, ok := FindImmediateWin(b, otherPlayer(player)); ok {
		return move, true
	}
	moves := b.LegalMoves(nil)
	if len(moves) == 0 {
		return Move{}, false
	}
	central := moves[:0:0]
	for _, move := range moves {
		if move.IsCentral() {
			central = append(central, move)
		}
	}
	if len(central) > 0 && rng.Intn(4) != 0 {
		return central[rng.Intn(len(central))], true
	}
	return moves[rng.Intn(len(moves))], true
}

// backpropagate walks the parent chain, crediting each ancestor from the
// root player's perspective: 1 for a win, 0.5 for a draw, 0 for a loss.
func backpropagate(node *mctsNode, winner Player, draw bool, rootPlayer Player) {
	outcome := 0.0
	if draw {
		outcome = 0.5
	} else if winner == rootPlayer {
		outcome = 1.0
	}
	for n := node; n != nil; n = n.parent {
		n.visits++
		n.wins += outcome
	}
}
