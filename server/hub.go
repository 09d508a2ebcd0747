package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"fabsim/calculator"
	"fabsim/model"
	"fabsim/theory"
)

// Message types of the live page protocol.
const (
	MsgEnv    = "env"
	MsgStart  = "start"
	MsgTheory = "theory"

	MsgEnvSet = "envSet"
	MsgResult = "result"
	MsgError  = "error"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	maxMsgSize = 4096
)

// Hub serves one websocket connection. Requests are handled in order by
// handleRequest, replies are written by handleResponse only.
type Hub struct {
	c       calculator.Calculator
	conn    *websocket.Conn
	metrics *Metrics
	// current inputs of the page, owned by handleRequest
	env model.SimulationRequest
	// request
	msg chan model.Msg
	// response
	reply   chan model.Msg
	done    chan struct{} // read loop ended
	stopped chan struct{} // writer ended
}

func NewHub(c calculator.Calculator, conn *websocket.Conn, metrics *Metrics) *Hub {
	return &Hub{
		c:       c,
		conn:    conn,
		metrics: metrics,
		env:     model.DefaultRequest(),
		msg:     make(chan model.Msg, 10),
		reply:   make(chan model.Msg, 10),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// Run blocks until the peer goes away.
func (h *Hub) Run() {
	h.metrics.Connections.Inc()
	defer h.metrics.Connections.Dec()

	go h.handleRequest()
	go h.handleResponse()
	h.readLoop()
}

func (h *Hub) readLoop() {
	defer close(h.done)
	h.conn.SetReadLimit(maxMsgSize)
	h.conn.SetReadDeadline(time.Now().Add(pongWait))
	h.conn.SetPongHandler(func(string) error {
		return h.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		var msg model.Msg
		if err := h.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.WithField("err", err).Warn("websocket read")
			}
			return
		}
		select {
		case h.msg <- msg:
		case <-h.stopped:
			return
		}
	}
}

func (h *Hub) handleRequest() {
	for {
		select {
		case msg := <-h.msg:
			reply := h.dispatch(msg)
			select {
			case h.reply <- reply:
			case <-h.stopped:
				return
			}
		case <-h.done:
			return
		}
	}
}

func (h *Hub) handleResponse() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		close(h.stopped)
		h.conn.Close()
	}()
	for {
		select {
		case reply := <-h.reply:
			h.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := h.conn.WriteJSON(&reply); err != nil {
				log.WithField("err", err).Warn("websocket write")
				return
			}
		case <-ticker.C:
			h.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := h.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-h.done:
			return
		}
	}
}

func (h *Hub) dispatch(msg model.Msg) model.Msg {
	switch msg.Type {
	case MsgEnv:
		env := h.env
		if err := json.Unmarshal([]byte(msg.Content), &env); err != nil {
			return h.fail(fmt.Errorf("bad env: %w", err))
		}
		env, err := env.Normalize()
		if err != nil {
			return h.fail(err)
		}
		h.env = env
		data, _ := json.Marshal(env)
		return model.Msg{Type: MsgEnvSet, Content: string(data)}
	case MsgStart:
		res, err := h.metrics.simulate(h.c, h.env, "ws")
		if err != nil {
			return h.fail(err)
		}
		data, err := json.Marshal(res)
		if err != nil {
			return h.fail(err)
		}
		return model.Msg{Type: MsgResult, Content: string(data)}
	case MsgTheory:
		md, err := theory.Markdown(h.env.Process)
		if err != nil {
			return h.fail(err)
		}
		return model.Msg{Type: MsgTheory, Content: md}
	}
	return h.fail(errors.New("no such type: " + msg.Type))
}

func (h *Hub) fail(err error) model.Msg {
	log.WithField("err", err).Info("websocket request rejected")
	return model.Msg{Type: MsgError, Content: err.Error()}
}
