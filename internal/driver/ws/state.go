// Package ws serves a browser preview of the show: a throttled PNG frame
// stream, a control socket, diagnostics and a health endpoint.
package ws

import (
	"bytes"
	"embed"
	"encoding/base64"
	"encoding/json"
	"errors"
	"image/png"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	diag "github.com/coreman2200/funtimes-epochs/internal/diagnostics"
	"github.com/coreman2200/funtimes-epochs/internal/driver/export"
	"github.com/coreman2200/funtimes-epochs/internal/render"
	"github.com/coreman2200/funtimes-epochs/internal/timeline"
)

//go:embed index.html
var assets embed.FS

// Controls is the subset of the conductor the control socket drives.
type Controls interface {
	TogglePlayPause() bool
	Reset()
	JumpToStage(k int) error
	Snapshot() timeline.State
}

// Status is the reply to every control message.
type Status struct {
	Stage   int     `json:"stage"`
	Name    string  `json:"name"`
	Desc    string  `json:"desc"`
	Elapsed float64 `json:"elapsed"`
	Playing bool    `json:"playing"`
	FrameID uint64  `json:"frame_id"`
	Error   string  `json:"error,omitempty"`
}

// ControlMsg is what clients send on /control.
type ControlMsg struct {
	Action string `json:"action"` // toggle | reset | jump | status
	Stage  *int   `json:"stage,omitempty"`
}

type frameMsg struct {
	T       int64   `json:"t"`
	FrameID uint64  `json:"frame_id"`
	Stage   int     `json:"stage"`
	Name    string  `json:"name"`
	Desc    string  `json:"desc"`
	Elapsed float64 `json:"elapsed"`
	Playing bool    `json:"playing"`
	PNG     string  `json:"png"`
}

// client serializes writes; gorilla allows one writer per conn.
type client struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) send(b []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(200 * time.Millisecond))
	return c.conn.WriteMessage(websocket.TextMessage, b)
}

// State is the preview hub. It is a render.Driver.
type State struct {
	mu       sync.RWMutex
	ctl      Controls
	throttle time.Duration
	lastEmit time.Time

	frameID   uint64
	startTime time.Time

	clients     map[*client]bool
	diagClients map[*client]bool

	up websocket.Upgrader
}

func NewState(ctl Controls, throttle time.Duration) *State {
	return &State{
		ctl:         ctl,
		throttle:    throttle,
		startTime:   time.Now(),
		clients:     map[*client]bool{},
		diagClients: map[*client]bool{},
		up:          websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
	}
}

// Write implements render.Driver: frames are encoded and broadcast at most
// once per throttle interval, and only when someone is watching.
func (s *State) Write(f render.Frame) error {
	s.mu.Lock()
	s.frameID = f.ID
	now := time.Now()
	if len(s.clients) == 0 || s.lastEmit.Add(s.throttle).After(now) {
		s.mu.Unlock()
		return nil
	}
	s.lastEmit = now
	s.mu.Unlock()

	var buf bytes.Buffer
	if err := png.Encode(&buf, export.Opaque(f.Image)); err != nil {
		return err
	}
	b, err := json.Marshal(frameMsg{
		T:       now.UnixNano(),
		FrameID: f.ID,
		Stage:   f.Stage.Index,
		Name:    f.Stage.Name,
		Desc:    f.Stage.Description,
		Elapsed: f.State.Elapsed,
		Playing: f.State.Playing,
		PNG:     base64.StdEncoding.EncodeToString(buf.Bytes()),
	})
	if err != nil {
		return err
	}
	s.broadcast(s.clients, b)
	return nil
}

// ClientCount is the number of connected frame listeners.
func (s *State) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

func (s *State) broadcast(set map[*client]bool, b []byte) {
	s.mu.RLock()
	targets := make([]*client, 0, len(set))
	for c := range set {
		targets = append(targets, c)
	}
	s.mu.RUnlock()
	for _, c := range targets {
		if err := c.send(b); err != nil {
			log.Debug().Err(err).Msg("ws write")
		}
	}
}

// register upgrades and tracks a listener until it disconnects.
func (s *State) register(w http.ResponseWriter, r *http.Request, set map[*client]bool) {
	conn, err := s.up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	c := &client{conn: conn}
	s.mu.Lock()
	set[c] = true
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			delete(set, c)
			s.mu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *State) HandleFramesWS(w http.ResponseWriter, r *http.Request) {
	s.register(w, r, s.clients)
}

func (s *State) HandleDiagWS(w http.ResponseWriter, r *http.Request) {
	s.register(w, r, s.diagClients)
}

func (s *State) HandleControlWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.up.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	c := &client{conn: conn}
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var msg ControlMsg
		st := Status{}
		if err := json.Unmarshal(data, &msg); err != nil {
			st.Error = "bad message: " + err.Error()
		} else if err := s.applyControl(msg); err != nil {
			st.Error = err.Error()
		}
		s.fillStatus(&st)
		b, _ := json.Marshal(st)
		if err := c.send(b); err != nil {
			return
		}
	}
}

func (s *State) HandleHealth(w http.ResponseWriter, r *http.Request) {
	st := s.ctl.Snapshot()
	s.mu.RLock()
	resp := map[string]any{
		"frame_id": s.frameID,
		"uptime_s": time.Since(s.startTime).Seconds(),
		"clients":  len(s.clients),
		"stage":    st.StageIndex(),
		"elapsed":  st.Elapsed,
		"playing":  st.Playing,
	}
	s.mu.RUnlock()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (s *State) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	http.ServeFileFS(w, r, assets, "index.html")
}

// Mux wires every route.
func (s *State) Mux() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.HandleIndex)
	mux.HandleFunc("/ws", s.HandleFramesWS)
	mux.HandleFunc("/diag", s.HandleDiagWS)
	mux.HandleFunc("/control", s.HandleControlWS)
	mux.HandleFunc("/health", s.HandleHealth)
	return WithCORS(mux)
}

var errNoStage = errors.New("jump requires stage")

type errUnknownAction string

func (e errUnknownAction) Error() string { return "unknown action: " + string(e) }

func (s *State) applyControl(msg ControlMsg) error {
	switch msg.Action {
	case "toggle":
		s.ctl.TogglePlayPause()
	case "reset":
		s.ctl.Reset()
	case "jump":
		if msg.Stage == nil {
			s.pushDiag(diag.New(diag.Warn, "CONTROL.REJECTED", "jump without stage"))
			return errNoStage
		}
		if err := s.ctl.JumpToStage(*msg.Stage); err != nil {
			s.pushDiag(diag.New(diag.Warn, "CONTROL.REJECTED", "jump rejected").With("stage", *msg.Stage))
			return err
		}
	case "status", "":
	default:
		s.pushDiag(diag.New(diag.Warn, "CONTROL.UNKNOWN", "unknown control action").With("action", msg.Action))
		return errUnknownAction(msg.Action)
	}
	return nil
}

func (s *State) fillStatus(st *Status) {
	snap := s.ctl.Snapshot()
	stage := snap.Stage()
	st.Stage = stage.Index
	st.Name = stage.Name
	st.Desc = stage.Description
	st.Elapsed = snap.Elapsed
	st.Playing = snap.Playing
	s.mu.RLock()
	st.FrameID = s.frameID
	s.mu.RUnlock()
}

func (s *State) pushDiag(d diag.Diagnostic) {
	b, _ := json.Marshal(d)
	s.broadcast(s.diagClients, b)
}

// WithCORS allows the preview to be driven from another origin.
func WithCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(200)
			return
		}
		h.ServeHTTP(w, r)
	})
}
