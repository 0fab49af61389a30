package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/seantiz/mxm/internal/mock"
	"github.com/seantiz/mxm/internal/model"
	"github.com/seantiz/mxm/internal/session"
	"github.com/seantiz/mxm/internal/window"
)

const (
	wsReadLimit   = 4096
	wsIdleTimeout = 60 * time.Second
	wsWriteWait   = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// CORS already allows every origin for the read-only API.
	CheckOrigin: func(*http.Request) bool { return true },
}

// windowItem is a visible row: its geometry plus the job it renders.
type windowItem struct {
	window.Item
	Customer       string `json:"customer"`
	PercentStarted int    `json:"percent_started"`
}

type windowFrame struct {
	Type      string       `json:"type"`
	List      session.List `json:"list"`
	Count     int          `json:"count"`
	Offset    float64      `json:"offset"`
	Viewport  float64      `json:"viewport"`
	TotalSize float64      `json:"total_size"`
	Items     []windowItem `json:"items"`
}

// windowMessage is sent by stream clients. Scroll moves the viewport,
// measure reports a rendered row height, scroll_to jumps to a row and list
// rebinds the window to the other half of the job list.
type windowMessage struct {
	Type     string       `json:"type"`
	Offset   float64      `json:"offset"`
	Viewport float64      `json:"viewport"`
	Index    int          `json:"index"`
	Size     float64      `json:"size"`
	List     session.List `json:"list,omitempty"`
}

type windowError struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// jobWindow binds a virtualizer to one half of the job list.
type jobWindow struct {
	sess     *session.Session
	list     session.List
	jobs     []model.Job
	v        *window.Virtualizer
	offset   float64
	viewport float64
}

func (s *Server) newJobWindow(name string) (*jobWindow, error) {
	l := session.List(name)
	if name == "" {
		l = session.ListActive
	}
	jobs, err := s.session.JobList(l)
	if err != nil {
		return nil, err
	}
	jw := &jobWindow{
		sess:     s.session,
		list:     l,
		jobs:     jobs,
		viewport: window.DefaultViewport,
	}
	jw.v = window.New(window.Options{Count: len(jobs), Key: jw.key})
	return jw, nil
}

func (jw *jobWindow) key(i int) string { return jw.jobs[i].ID }

// rebind switches to another list and scrolls back to the top. Row
// measurements are kept only for jobs in the new list.
func (jw *jobWindow) rebind(l session.List) error {
	jobs, err := jw.sess.JobList(l)
	if err != nil {
		return err
	}
	jw.list, jw.jobs, jw.offset = l, jobs, 0
	jw.v.Reset(len(jobs), jw.key)
	return nil
}

func (jw *jobWindow) frame() windowFrame {
	items := jw.v.Items(jw.offset, jw.viewport)
	out := make([]windowItem, len(items))
	for i, it := range items {
		j := jw.jobs[it.Index]
		out[i] = windowItem{Item: it, Customer: j.Customer, PercentStarted: mock.PercentStarted(j.Subjobs)}
	}
	return windowFrame{
		Type:      "frame",
		List:      jw.list,
		Count:     jw.v.Count(),
		Offset:    jw.offset,
		Viewport:  jw.viewport,
		TotalSize: jw.v.TotalSize(),
		Items:     out,
	}
}

// apply updates the window from one client message.
func (jw *jobWindow) apply(msg windowMessage) error {
	switch msg.Type {
	case "scroll":
		jw.offset = msg.Offset
		if msg.Viewport > 0 {
			jw.viewport = msg.Viewport
		}
		return nil
	case "measure":
		return jw.v.Measure(msg.Index, msg.Size)
	case "scroll_to":
		off, err := jw.v.ScrollToIndex(msg.Index, jw.viewport)
		if err != nil {
			return err
		}
		jw.offset = off
		return nil
	case "list":
		return jw.rebind(msg.List)
	}
	return errors.New("unknown message type " + msg.Type)
}

func (s *Server) handleWindow(w http.ResponseWriter, r *http.Request) {
	jw, err := s.newJobWindow(r.URL.Query().Get("list"))
	if err != nil {
		s.writeLookupError(w, r, err)
		return
	}
	jw.offset = parseFloatQuery(r, "offset", 0)
	jw.viewport = parseFloatQuery(r, "viewport", window.DefaultViewport)
	if i := parseIntQuery(r, "index", -1); i >= 0 {
		if err := jw.apply(windowMessage{Type: "scroll_to", Index: i}); err != nil {
			s.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	windowFrames.WithLabelValues("http").Inc()
	s.writeJSON(w, http.StatusOK, jw.frame())
}

// handleWindowStream keeps a virtualizer alive for the length of a
// websocket connection and answers every client message with a frame.
func (s *Server) handleWindowStream(w http.ResponseWriter, r *http.Request) {
	jw, err := s.newJobWindow(r.URL.Query().Get("list"))
	if err != nil {
		s.writeLookupError(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(wsReadLimit)

	streamID := model.NewID()
	s.logger.Debug("window stream opened", "stream_id", streamID, "list", jw.list, "count", jw.v.Count())

	send := func(v any) error {
		conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		return conn.WriteJSON(v)
	}

	windowFrames.WithLabelValues("ws").Inc()
	if err := send(jw.frame()); err != nil {
		return
	}

	for {
		conn.SetReadDeadline(time.Now().Add(wsIdleTimeout))
		var msg windowMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Debug("window stream dropped", "stream_id", streamID, "error", err)
			}
			return
		}

		if err := jw.apply(msg); err != nil {
			if err := send(windowError{Type: "error", Error: err.Error()}); err != nil {
				return
			}
			continue
		}
		windowFrames.WithLabelValues("ws").Inc()
		if err := send(jw.frame()); err != nil {
			return
		}
	}
}
