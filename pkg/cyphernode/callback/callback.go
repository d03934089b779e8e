// Package callback receives the notifications the gateway sends to the
// unconfirmedCallbackURL and confirmedCallbackURL of a watch.
package callback

import (
	"context"
	"net/http"
	"strings"

	"github.com/ArkLabsHQ/cyphernode/pkg/cyphernode"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultUnconfirmedPath = "/callback0conf"
	DefaultConfirmedPath   = "/callback1conf"
)

// Notification is posted by the gateway when a watched address receives a
// transaction, and again when that transaction is mined. Block fields are
// empty on the 0-conf notification.
type Notification struct {
	ID            cyphernode.FlexInt   `json:"id"`
	Address       string               `json:"address" binding:"required"`
	Hash          string               `json:"hash" binding:"required"`
	VoutN         int64                `json:"vout_n"`
	SentAmount    float64              `json:"sent_amount"`
	Confirmations int64                `json:"confirmations"`
	Received      cyphernode.Timestamp `json:"received"`
	Size          int64                `json:"size"`
	VSize         int64                `json:"vsize"`
	Fees          float64              `json:"fees"`
	Replaceable   bool                 `json:"replaceable"`
	BlockHash     string               `json:"blockhash"`
	BlockTime     cyphernode.Timestamp `json:"blocktime"`
	BlockHeight   cyphernode.FlexInt   `json:"blockheight"`
	// EventMessage is the base64 payload given to watch, echoed back.
	EventMessage string `json:"eventMessage,omitempty"`
}

func (n Notification) Confirmed() bool {
	return n.Confirmations > 0
}

// HandlerFunc processes a notification. A returned error makes the
// receiver answer 500.
type HandlerFunc func(ctx context.Context, n Notification) error

type Config struct {
	UnconfirmedPath string
	ConfirmedPath   string
	OnUnconfirmed   HandlerFunc
	OnConfirmed     HandlerFunc
	Logger          *log.Entry
}

func (c Config) paths() (string, string) {
	unconfirmed, confirmed := c.UnconfirmedPath, c.ConfirmedPath
	if unconfirmed == "" {
		unconfirmed = DefaultUnconfirmedPath
	}
	if confirmed == "" {
		confirmed = DefaultConfirmedPath
	}
	return unconfirmed, confirmed
}

// Callbacks returns the URLs to register with Client.Watch for a receiver
// reachable at baseURL.
func (c Config) Callbacks(baseURL string) cyphernode.Callbacks {
	unconfirmed, confirmed := c.paths()
	baseURL = strings.TrimRight(baseURL, "/")
	return cyphernode.Callbacks{
		UnconfirmedCallbackURL: baseURL + unconfirmed,
		ConfirmedCallbackURL:   baseURL + confirmed,
	}
}

// NewRouter returns a gin engine serving both callback paths. A nil
// handler acknowledges the notification without doing anything.
func NewRouter(cfg Config) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewEntry(log.StandardLogger())
	}
	logger = logger.WithField("component", "callback")

	router := gin.New()
	router.Use(gin.Recovery())

	unconfirmed, confirmed := cfg.paths()
	router.POST(unconfirmed, handle(logger, "unconfirmed", cfg.OnUnconfirmed))
	router.POST(confirmed, handle(logger, "confirmed", cfg.OnConfirmed))

	return router
}

func handle(logger *log.Entry, kind string, fn HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		var n Notification
		if err := c.ShouldBindJSON(&n); err != nil {
			logger.WithError(err).WithField("kind", kind).Warn("invalid callback payload")
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		entry := logger.WithFields(log.Fields{
			"kind":          kind,
			"address":       n.Address,
			"txid":          n.Hash,
			"confirmations": n.Confirmations,
		})
		entry.Debug("callback received")

		if fn != nil {
			if err := fn(c.Request.Context(), n); err != nil {
				entry.WithError(err).Error("callback handler failed")
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
		}

		c.Status(http.StatusOK)
	}
}
