package main

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// The host loop speaks a small JSON protocol over one websocket:
//
//	-> {"type":"start","first_player":1}
//	<- {"type":"started","game_id":"..."}
//	-> {"type":"move","x":0,"y":1,"player":1}      host reports its own move
//	<- {"type":"state", ...}
//	-> {"type":"decide","player":2}                ask the engine to move
//	<- {"type":"move","x":2,"y":2,"z":0,"player":2,"elapsed_ms":412}
//
// The host stays authoritative; the service mirrors the moves it is told
// about, detects the end of the game and archives it.
type wsRequest struct {
	Type        string    `json:"type"`
	X           int       `json:"x"`
	Y           int       `json:"y"`
	Player      int       `json:"player"`
	FirstPlayer int       `json:"first_player"`
	Board       [][][]int `json:"board,omitempty"`
}

type wsReply struct {
	Type      string  `json:"type"`
	GameID    string  `json:"game_id,omitempty"`
	X         int     `json:"x,omitempty"`
	Y         int     `json:"y,omitempty"`
	Z         int     `json:"z,omitempty"`
	Player    int     `json:"player,omitempty"`
	Status    string  `json:"status,omitempty"`
	Winner    int     `json:"winner,omitempty"`
	ToMove    int     `json:"to_move,omitempty"`
	MoveCount int     `json:"move_count,omitempty"`
	ElapsedMs float64 `json:"elapsed_ms,omitempty"`
	Error     string  `json:"error,omitempty"`
}

func serveHostWS(policy *DecisionPolicy, w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	var game *Game
	for {
		var msg wsRequest
		if err := conn.ReadJSON(&msg); err != nil {
			if game != nil && !game.Finished() {
				log.Debug().Str("game_id", game.ID).Msg("host disconnected mid-game")
			}
			return
		}

		switch msg.Type {
		case "start":
			game = NewGame(Player(msg.FirstPlayer))
			log.Info().Str("game_id", game.ID).Msg("hosted game started")
			writeWS(conn, wsReply{Type: "started", GameID: game.ID, ToMove: int(game.ToMove)})

		case "move":
			if game == nil {
				writeWS(conn, wsReply{Type: "error", Error: "no game started"})
				continue
			}
			if err := game.Apply(Move{X: msg.X, Y: msg.Y}, Player(msg.Player), 0, false); err != nil {
				writeWS(conn, wsReply{Type: "error", GameID: game.ID, Error: err.Error()})
				continue
			}
			finishIfOver(game)
			writeWS(conn, stateReply(game))

		case "sync":
			// Resynchronize the mirror from the host's authoritative board.
			if game == nil {
				writeWS(conn, wsReply{Type: "error", Error: "no game started"})
				continue
			}
			board, err := BoardFromGrid(msg.Board)
			if err != nil {
				writeWS(conn, wsReply{Type: "error", GameID: game.ID, Error: err.Error()})
				continue
			}
			game.Board = board
			if msg.Player == int(PlayerOne) || msg.Player == int(PlayerTwo) {
				game.ToMove = Player(msg.Player)
			}
			game.refreshStatus()
			finishIfOver(game)
			writeWS(conn, stateReply(game))

		case "decide":
			if game == nil {
				writeWS(conn, wsReply{Type: "error", Error: "no game started"})
				continue
			}
			if game.Finished() {
				writeWS(conn, stateReply(game))
				continue
			}
			player := Player(msg.Player)
			if player != PlayerOne && player != PlayerTwo {
				player = game.ToMove
			}
			start := time.Now()
			move := policy.Decide(game.Board, player, game.LastMove())
			elapsed := time.Since(start)
			if err := game.Apply(move, player, elapsed, true); err != nil {
				writeWS(conn, wsReply{Type: "error", GameID: game.ID, Error: err.Error()})
				continue
			}
			finishIfOver(game)
			last := game.History[len(game.History)-1]
			writeWS(conn, wsReply{
				Type:      "move",
				GameID:    game.ID,
				X:         last.X,
				Y:         last.Y,
				Z:         last.Z,
				Player:    int(player),
				Status:    game.Status.String(),
				Winner:    int(game.Winner),
				ToMove:    int(game.ToMove),
				MoveCount: len(game.History),
				ElapsedMs: elapsed.Seconds() * 1000,
			})

		default:
			writeWS(conn, wsReply{Type: "error", Error: "unknown message type"})
		}
	}
}

func stateReply(game *Game) wsReply {
	return wsReply{
		Type:      "state",
		GameID:    game.ID,
		Status:    game.Status.String(),
		Winner:    int(game.Winner),
		ToMove:    int(game.ToMove),
		MoveCount: len(game.History),
	}
}

func finishIfOver(game *Game) {
	if !game.Finished() {
		return
	}
	if err := SaveGame(game); err != nil {
		log.Warn().Err(err).Str("game_id", game.ID).Msg("failed to archive game")
	}
}

func writeWS(conn *websocket.Conn, reply wsReply) {
	if err := conn.WriteJSON(reply); err != nil {
		log.Debug().Err(err).Msg("websocket write failed")
	}
}
