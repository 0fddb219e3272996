package server

import (
	"net/http"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/alexiusacademia/gopipe/internal/flow"
)

// maxFrameSize bounds an incoming frame; a flow.Input is five numbers
const maxFrameSize = 4096

// Message types sent on /api/ws
const (
	MsgStep   = "step"
	MsgResult = "result"
	MsgError  = "error"
)

// Message is one frame of a streamed flow solve
type Message struct {
	Type   string       `json:"type"`
	Step   *flow.Step   `json:"step,omitempty"`
	Result *flow.Result `json:"result,omitempty"`
	Error  string       `json:"error,omitempty"`
}

// handleWS reads flow.Input frames and answers each with its iteration
// steps followed by the final result. Every frame spends a token from
// the client's rate limit bucket.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("websocket upgrade")
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxFrameSize)

	for {
		var in flow.Input
		if err := conn.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Warn("websocket read")
			}
			return
		}

		if !s.limiter.Allow(r) {
			if err := conn.WriteJSON(Message{Type: MsgError, Error: errTooManyRequests}); err != nil {
				return
			}
			continue
		}

		if err := s.streamFlow(conn, in); err != nil {
			log.WithError(err).Warn("websocket write")
			return
		}
	}
}

func (s *Server) streamFlow(conn *websocket.Conn, in flow.Input) error {
	var writeErr error
	solver := flow.NewSolver(s.opts)
	solver.Observer = func(st flow.Step) {
		if writeErr != nil {
			return
		}
		writeErr = conn.WriteJSON(Message{Type: MsgStep, Step: &st})
	}

	res, err := solver.Solve(in)
	if writeErr != nil {
		return writeErr
	}
	if err != nil {
		return conn.WriteJSON(Message{Type: MsgError, Error: err.Error()})
	}

	// History already went out step by step
	res.History = nil
	return conn.WriteJSON(Message{Type: MsgResult, Result: res})
}
