package randsrv

import (
	"log"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/tutils/krull"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4 << 10,
	WriteBufferSize: 4 << 10,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const readTimeout = time.Second * 15
const pingPeriod = time.Second * 10
const writeTimeout = time.Second

func (s *Server) streamCount() uint64 {
	return atomic.LoadUint64(&s.nextStream)
}

// handleStream upgrades to a websocket and writes an endless binary
// stream of generator output. Each connection draws from its own
// stream selector, so concurrent clients see independent sequences.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	id := uuid.New().String()[:8] // Use first 8 chars of UUID for brevity
	stream := atomic.AddUint64(&s.nextStream, 1)
	src := s.opts.sourceNewer(s.opts.seedMaterial, stream)
	log.Printf("[INFO] %s stream %d connected from %s", id, stream, r.RemoteAddr)

	done := make(chan struct{})
	defer close(done)
	go startPing(conn, done)

	// Drain incoming frames so control messages keep flowing; any
	// read error ends the stream.
	readErr := make(chan struct{})
	go func() {
		defer close(readErr)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	rd := krull.NewReader(src)
	buf := make([]byte, streamChunkSize)
	var sent int64
	for {
		select {
		case <-readErr:
			log.Printf("[INFO] %s stream %d closed after %d bytes", id, stream, sent)
			return
		default:
		}

		rd.Read(buf)
		conn.SetWriteDeadline(time.Now().Add(writeTimeout * 10))
		if err := conn.WriteMessage(websocket.BinaryMessage, buf); err != nil {
			log.Printf("[INFO] %s stream %d write ended: %v", id, stream, err)
			return
		}
		sent += int64(len(buf))
		if c := s.opts.bytesCounter; c != nil {
			c.Add(int64(len(buf)))
		}
	}
}

func startPing(conn *websocket.Conn, done chan struct{}) {
	conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(writeTimeout))
		case <-done:
			return
		}
	}
}
