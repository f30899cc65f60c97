// Package server exposes games over HTTP and WebSocket.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"golang.org/x/exp/slices"

	"chess-rules/game"
	"chess-rules/position"
)

type Server struct {
	router   *mux.Router
	games    *game.Registry
	upgrader websocket.Upgrader
	origins  []string
	access   io.Writer
	log      *slog.Logger
}

type Option func(*Server)

// WithLogger sets the logger for server diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.log = l }
}

// WithAllowedOrigins sets the origins accepted for CORS and WebSocket
// upgrades. "*" allows any origin.
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) { s.origins = origins }
}

// WithAccessLog sets where the combined request log goes. nil disables it.
func WithAccessLog(w io.Writer) Option {
	return func(s *Server) { s.access = w }
}

func New(games *game.Registry, opts ...Option) *Server {
	s := &Server{
		router:  mux.NewRouter(),
		games:   games,
		origins: []string{"*"},
		access:  os.Stdout,
		log:     slog.Default().With("package", "server"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}

	jsonOnly := func(h http.HandlerFunc) http.Handler {
		return handlers.ContentTypeHandler(h, "application/json")
	}
	r := s.router
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, errors.New("not found"))
	})
	r.Handle("/games", jsonOnly(s.createGame)).Methods(http.MethodPost)
	r.HandleFunc("/games/{id}", s.getGame).Methods(http.MethodGet)
	r.HandleFunc("/games/{id}", s.deleteGame).Methods(http.MethodDelete)
	r.HandleFunc("/games/{id}/legal", s.legalMoves).Methods(http.MethodGet)
	r.HandleFunc("/games/{id}/pgn", s.exportPGN).Methods(http.MethodGet)
	r.Handle("/games/{id}/moves", jsonOnly(s.playMove)).Methods(http.MethodPost)
	r.Handle("/games/{id}/promotion", jsonOnly(s.resolvePromotion)).Methods(http.MethodPost)
	r.HandleFunc("/games/{id}/promotion", s.cancelPromotion).Methods(http.MethodDelete)
	r.HandleFunc("/games/{id}/ws", s.streamGame).Methods(http.MethodGet)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Handler wraps the router with panic recovery, CORS and the access log.
func (s *Server) Handler() http.Handler {
	var h http.Handler = s.router
	h = handlers.RecoveryHandler(
		handlers.RecoveryLogger(slog.NewLogLogger(s.log.Handler(), slog.LevelError)),
	)(h)
	h = handlers.CORS(
		handlers.AllowedOrigins(s.origins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodDelete}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(h)
	if s.access != nil {
		h = handlers.LoggingHandler(s.access, h)
	}
	return h
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || slices.Contains(s.origins, "*") {
		return true
	}
	return slices.Contains(s.origins, origin)
}

// lookup resolves {id} and writes the error response itself on failure.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*game.Game, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusNotFound, game.ErrNotFound)
		return nil, false
	}
	g, err := s.games.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return nil, false
	}
	return g, true
}

type createRequest struct {
	FEN string `json:"fen"`
}

func (s *Server) createGame(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	g, err := s.games.Create(req.FEN)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.log.Info("game created", slog.String("id", g.ID.String()), slog.String("fen", g.FEN()))
	w.Header().Set("Location", "/games/"+g.ID.String())
	writeJSON(w, http.StatusCreated, g.View())
}

func (s *Server) getGame(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, g.View())
}

func (s *Server) deleteGame(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookup(w, r)
	if !ok {
		return
	}
	if err := s.games.Remove(g.ID); err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	s.log.Info("game removed", slog.String("id", g.ID.String()))
	w.WriteHeader(http.StatusNoContent)
}

// legalMoves lists the legal moves, optionally only those leaving ?from=.
func (s *Server) legalMoves(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookup(w, r)
	if !ok {
		return
	}
	from := r.URL.Query().Get("from")
	moves := []string{}
	for _, m := range g.Position().LegalMoves() {
		if from == "" || m.From.String() == from {
			moves = append(moves, m.String())
		}
	}
	writeJSON(w, http.StatusOK, moves)
}

func (s *Server) exportPGN(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookup(w, r)
	if !ok {
		return
	}
	out, err := g.PGN()
	if err != nil {
		s.log.Error("pgn export", slog.String("id", g.ID.String()), slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/x-chess-pgn")
	io.WriteString(w, out)
}

func (s *Server) playMove(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var req moveRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	res, err := req.play(g)
	s.respond(w, g, res, err)
}

type promotionRequest struct {
	Piece string `json:"piece"`
}

func (s *Server) resolvePromotion(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var req promotionRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	kind, err := promotionKind(req.Piece)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	res, err := g.ResolvePromotion(kind)
	s.respond(w, g, res, err)
}

func (s *Server) cancelPromotion(w http.ResponseWriter, r *http.Request) {
	g, ok := s.lookup(w, r)
	if !ok {
		return
	}
	if err := g.CancelPromotion(); err != nil {
		writeError(w, statusOf(err), err)
		return
	}
	writeJSON(w, http.StatusOK, g.View())
}

// respond writes the outcome of a move. Illegal moves still carry the
// result body so clients can show the reason.
func (s *Server) respond(w http.ResponseWriter, g *game.Game, res position.Result, err error) {
	var illegal *position.IllegalMoveError
	switch {
	case errors.As(err, &illegal):
		writeJSON(w, http.StatusUnprocessableEntity, newMoveResponse(res, g.View()))
	case err != nil:
		writeError(w, statusOf(err), err)
	default:
		s.log.Debug("move played",
			slog.String("id", g.ID.String()),
			slog.String("move", res.Move.String()),
			slog.String("status", res.Status.String()))
		writeJSON(w, http.StatusOK, newMoveResponse(res, g.View()))
	}
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, game.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, game.ErrGameOver),
		errors.Is(err, game.ErrPromotionPending),
		errors.Is(err, game.ErrNoPendingPromotion):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, errorResponse{Error: err.Error()})
}
