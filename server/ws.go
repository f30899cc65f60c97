package server

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"chess-rules/game"
	"chess-rules/position"
)

const writeWait = 10 * time.Second

// event is one frame sent to a WebSocket client.
type event struct {
	Type   string        `json:"type"`
	View   *game.View    `json:"view,omitempty"`
	Result *moveResponse `json:"result,omitempty"`
	Error  string        `json:"error,omitempty"`
}

// wsRequest is one frame read from a client: a move, or a promotion piece
// for the pending move.
type wsRequest struct {
	moveRequest
	Piece string `json:"piece,omitempty"`
}

// streamGame upgrades to a WebSocket, pushes a view after every change to
// the game and plays the moves the client sends.
func (s *Server) streamGame(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookup(w, r)
	if !ok {
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error("upgrade failed", slog.Any("error", err))
		return
	}
	defer conn.Close()
	s.log.Info("websocket connected",
		slog.String("id", g.ID.String()),
		slog.String("remote", conn.RemoteAddr().String()))

	views, cancel := g.Subscribe()
	replies := make(chan event, 4)
	done := make(chan struct{})

	// gorilla connections allow one writer at a time
	go func() {
		defer close(done)
		for {
			var ev event
			select {
			case v, ok := <-views:
				if !ok {
					conn.WriteControl(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
						time.Now().Add(writeWait))
					return
				}
				ev = event{Type: "view", View: &v}
			case ev = <-replies:
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(ev); err != nil {
				conn.Close()
				return
			}
		}
	}()

	for {
		var req wsRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Warn("websocket read", slog.Any("error", err))
			}
			break
		}
		select {
		case replies <- s.wsPlay(g, req):
		case <-done:
		}
	}
	cancel()
	<-done
	s.log.Info("websocket closed", slog.String("id", g.ID.String()))
}

func (s *Server) wsPlay(g *game.Game, req wsRequest) event {
	var (
		res position.Result
		err error
	)
	if req.Piece != "" {
		kind, perr := promotionKind(req.Piece)
		if perr != nil {
			return event{Type: "error", Error: perr.Error()}
		}
		res, err = g.ResolvePromotion(kind)
	} else {
		res, err = req.play(g)
	}
	var illegal *position.IllegalMoveError
	if err != nil && !errors.As(err, &illegal) {
		return event{Type: "error", Error: err.Error()}
	}
	out := newMoveResponse(res, g.View())
	return event{Type: "result", Result: &out}
}
