package server_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"chess-rules/game"
	"chess-rules/server"
)

const promoFEN = "8/4P3/8/8/8/8/k7/4K3 w - - 0 1"

type moveResponse struct {
	Status string    `json:"status"`
	Reason string    `json:"reason"`
	Move   string    `json:"move"`
	Check  bool      `json:"check"`
	Game   game.View `json:"game"`
}

type event struct {
	Type   string        `json:"type"`
	View   *game.View    `json:"view"`
	Result *moveResponse `json:"result"`
	Error  string        `json:"error"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	s := server.New(game.NewRegistry(),
		server.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		server.WithAccessLog(nil),
	)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, ts *httptest.Server, method, path string, body any, out any) int {
	t.Helper()
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		rd = bytes.NewReader(buf)
	}
	req, err := http.NewRequest(method, ts.URL+path, rd)
	if err != nil {
		t.Fatal(err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("%s %s: decoding: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

func createGame(t *testing.T, ts *httptest.Server, fen string) game.View {
	t.Helper()
	var v game.View
	if code := do(t, ts, http.MethodPost, "/games", map[string]string{"fen": fen}, &v); code != http.StatusCreated {
		t.Fatalf("create: got %d want %d", code, http.StatusCreated)
	}
	return v
}

func TestCreateAndGet(t *testing.T) {
	ts := newTestServer(t)
	v := createGame(t, ts, "")
	if len(v.LegalMoves) != 20 || v.SideToMove != "white" || v.Outcome != "ongoing" {
		t.Fatalf("unexpected view %+v", v)
	}
	var got game.View
	if code := do(t, ts, http.MethodGet, "/games/"+v.ID, nil, &got); code != http.StatusOK {
		t.Fatalf("get: got %d want %d", code, http.StatusOK)
	}
	if got.FEN != v.FEN || got.Board[7][4] != "wK" {
		t.Fatalf("got %+v", got)
	}
	if code := do(t, ts, http.MethodPost, "/games", map[string]string{"fen": "8/8/8/8/8/8/8/8 w - - 0 1"}, nil); code != http.StatusBadRequest {
		t.Fatalf("kingless FEN: got %d want %d", code, http.StatusBadRequest)
	}
}

func TestNotFound(t *testing.T) {
	ts := newTestServer(t)
	for _, path := range []string{"/games/not-a-uuid", "/games/00000000-0000-0000-0000-000000000000", "/nowhere"} {
		if code := do(t, ts, http.MethodGet, path, nil, nil); code != http.StatusNotFound {
			t.Errorf("%s: got %d want %d", path, code, http.StatusNotFound)
		}
	}
}

func TestDeleteGame(t *testing.T) {
	ts := newTestServer(t)
	v := createGame(t, ts, "")
	if code := do(t, ts, http.MethodDelete, "/games/"+v.ID, nil, nil); code != http.StatusNoContent {
		t.Fatalf("got %d want %d", code, http.StatusNoContent)
	}
	if code := do(t, ts, http.MethodGet, "/games/"+v.ID, nil, nil); code != http.StatusNotFound {
		t.Fatalf("got %d want %d", code, http.StatusNotFound)
	}
}

func TestPlayMoves(t *testing.T) {
	ts := newTestServer(t)
	v := createGame(t, ts, "")
	path := "/games/" + v.ID + "/moves"

	var res moveResponse
	if code := do(t, ts, http.MethodPost, path, map[string]string{"move": "e2e4"}, &res); code != http.StatusOK {
		t.Fatalf("e2e4: got %d want %d", code, http.StatusOK)
	}
	if res.Status != "accepted" || res.Move != "e2e4" || res.Game.SideToMove != "black" {
		t.Fatalf("got %+v", res)
	}

	res = moveResponse{}
	if code := do(t, ts, http.MethodPost, path, map[string]string{"from": "e7", "to": "e4"}, &res); code != http.StatusUnprocessableEntity {
		t.Fatalf("e7e4: got %d want %d", code, http.StatusUnprocessableEntity)
	}
	if res.Status != "illegal" || res.Reason != "piece cannot move that way" {
		t.Fatalf("got %+v", res)
	}

	if code := do(t, ts, http.MethodPost, path, map[string]string{"move": "e9e4"}, nil); code != http.StatusBadRequest {
		t.Fatalf("bad square: got %d want %d", code, http.StatusBadRequest)
	}
}

func TestContentTypeRequired(t *testing.T) {
	ts := newTestServer(t)
	resp, err := ts.Client().Post(ts.URL+"/games", "text/plain", strings.NewReader("{}"))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnsupportedMediaType {
		t.Fatalf("got %d want %d", resp.StatusCode, http.StatusUnsupportedMediaType)
	}
}

func TestPromotionEndpoints(t *testing.T) {
	ts := newTestServer(t)
	v := createGame(t, ts, promoFEN)
	base := "/games/" + v.ID

	var res moveResponse
	if code := do(t, ts, http.MethodPost, base+"/moves", map[string]string{"move": "e7e8"}, &res); code != http.StatusOK {
		t.Fatalf("e7e8: got %d want %d", code, http.StatusOK)
	}
	if res.Status != "pending promotion" || res.Game.PendingPromotion != "e7e8" {
		t.Fatalf("got %+v", res)
	}
	if code := do(t, ts, http.MethodPost, base+"/moves", map[string]string{"move": "e1d1"}, nil); code != http.StatusConflict {
		t.Fatalf("move while pending: got %d want %d", code, http.StatusConflict)
	}
	if code := do(t, ts, http.MethodPost, base+"/promotion", map[string]string{"piece": "k"}, nil); code != http.StatusBadRequest {
		t.Fatalf("king promotion: got %d want %d", code, http.StatusBadRequest)
	}

	res = moveResponse{}
	if code := do(t, ts, http.MethodPost, base+"/promotion", map[string]string{"piece": "q"}, &res); code != http.StatusOK {
		t.Fatalf("promotion: got %d want %d", code, http.StatusOK)
	}
	if res.Status != "accepted" || res.Move != "e7e8q" || res.Game.Board[0][4] != "wQ" {
		t.Fatalf("got %+v", res)
	}
	if code := do(t, ts, http.MethodDelete, base+"/promotion", nil, nil); code != http.StatusConflict {
		t.Fatalf("cancel without pending: got %d want %d", code, http.StatusConflict)
	}
}

func TestLegalMovesFilter(t *testing.T) {
	ts := newTestServer(t)
	v := createGame(t, ts, "")
	var moves []string
	if code := do(t, ts, http.MethodGet, "/games/"+v.ID+"/legal?from=g1", nil, &moves); code != http.StatusOK {
		t.Fatalf("got %d want %d", code, http.StatusOK)
	}
	if len(moves) != 2 || moves[0] != "g1f3" || moves[1] != "g1h3" {
		t.Fatalf("got %v", moves)
	}
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t)
	req, _ := http.NewRequest(http.MethodOptions, ts.URL+"/games", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("got %d want %d", resp.StatusCode, http.StatusOK)
	}
	if resp.Header.Get("Access-Control-Allow-Origin") == "" {
		t.Fatalf("missing Access-Control-Allow-Origin")
	}
}

func readEvent(t *testing.T, conn *websocket.Conn) event {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var ev event
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("read: %v", err)
	}
	return ev
}

func TestWebSocketStream(t *testing.T) {
	ts := newTestServer(t)
	v := createGame(t, ts, "")
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/games/" + v.ID + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	ev := readEvent(t, conn)
	if ev.Type != "view" || ev.View == nil || len(ev.View.History) != 0 {
		t.Fatalf("first event %+v", ev)
	}

	if err := conn.WriteJSON(map[string]string{"move": "e2e4"}); err != nil {
		t.Fatal(err)
	}
	// the view and the reply can arrive in either order
	var sawView, sawResult bool
	for !sawView || !sawResult {
		ev := readEvent(t, conn)
		switch ev.Type {
		case "view":
			if len(ev.View.History) != 1 || ev.View.History[0] != "e2e4" {
				t.Fatalf("view %+v", ev.View)
			}
			sawView = true
		case "result":
			if ev.Result.Status != "accepted" {
				t.Fatalf("result %+v", ev.Result)
			}
			sawResult = true
		default:
			t.Fatalf("unexpected event %+v", ev)
		}
	}

	// moves made over HTTP reach the stream too
	if code := do(t, ts, http.MethodPost, "/games/"+v.ID+"/moves", map[string]string{"move": "c7c5"}, nil); code != http.StatusOK {
		t.Fatalf("c7c5: got %d want %d", code, http.StatusOK)
	}
	ev = readEvent(t, conn)
	if ev.Type != "view" || len(ev.View.History) != 2 {
		t.Fatalf("event after HTTP move %+v", ev)
	}

	if err := conn.WriteJSON(map[string]string{"move": "e3e4"}); err != nil {
		t.Fatal(err)
	}
	ev = readEvent(t, conn)
	if ev.Type != "error" || ev.Error == "" {
		t.Fatalf("got %+v want error event", ev)
	}
}

func TestExportPGN(t *testing.T) {
	ts := newTestServer(t)
	v := createGame(t, ts, "")
	for _, m := range []string{"e2e4", "e7e5", "g1f3"} {
		if code := do(t, ts, http.MethodPost, "/games/"+v.ID+"/moves", map[string]string{"move": m}, nil); code != http.StatusOK {
			t.Fatalf("%s: got %d want %d", m, code, http.StatusOK)
		}
	}
	resp, err := ts.Client().Get(ts.URL + "/games/" + v.ID + "/pgn")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "1. e4 e5 2. Nf3") {
		t.Fatalf("got %d:\n%s", resp.StatusCode, body)
	}
}
