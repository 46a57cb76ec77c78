package endpoints

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/athan/internal/http/api"
	"github.com/Nixie-Tech-LLC/athan/internal/http/api/tv/packets"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// streamPrayers pushes a status frame on connect and then once per interval
// until the screen goes away.
func (p *PrayerController) streamPrayers(c *gin.Context) {
	location := c.Param("location")

	// fail with a plain HTTP error while we still can
	if _, err := p.timetable.Status(c.Request.Context(), location, p.clock.Now()); err != nil {
		apiErr := api.ErrorFrom(err)
		c.JSON(apiErr.Code, gin.H{"error": apiErr.Message})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("location", location).Msg("websocket upgrade failed")
		return
	}
	log.Info().Str("location", location).Msg("websocket connected")

	defer func() {
		log.Info().Str("location", location).Msg("websocket disconnected")
		conn.Close()
	}()

	// the read pump only exists to notice the peer closing
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		if err := p.pushStatus(c, conn, location); err != nil {
			log.Debug().Err(err).Str("location", location).Msg("websocket write failed")
			return
		}

		select {
		case <-closed:
			return
		case <-ticker.C:
		}
	}
}

func (p *PrayerController) pushStatus(c *gin.Context, conn *websocket.Conn, location string) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}

	st, err := p.timetable.Status(c.Request.Context(), location, p.clock.Now())
	if err != nil {
		// keep the socket open; tomorrow's table may show up later
		log.Warn().Err(err).Str("location", location).Msg("status unavailable for stream")
		return conn.WriteJSON(packets.StreamError{Type: "error", Error: api.ErrorFrom(err).Message})
	}

	frame := statusResponse(st)
	frame.Type = "status"
	return conn.WriteJSON(frame)
}
