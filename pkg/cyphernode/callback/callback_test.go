package callback

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ArkLabsHQ/cyphernode/pkg/cyphernode"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const (
	zeroConf = `{
		"id":"3832",
		"address":"2NB96fbwy8eoHttuZTtbwvvhEYrBwz494ov",
		"hash":"af867c86000da76df7ddb1054b273ca9e034e8c89d049b5b2795f9f590f67648",
		"vout_n":1,
		"sent_amount":0.84050318,
		"confirmations":0,
		"received":"2018-10-18T15:41:06+0000",
		"size":371,
		"vsize":166,
		"fees":0.00002992,
		"replaceable":false,
		"blockhash":"",
		"blocktime":"",
		"blockheight":""
	}`
	oneConf = `{
		"id":"3832",
		"address":"2NB96fbwy8eoHttuZTtbwvvhEYrBwz494ov",
		"hash":"af867c86000da76df7ddb1054b273ca9e034e8c89d049b5b2795f9f590f67648",
		"vout_n":1,
		"sent_amount":0.84050318,
		"confirmations":1,
		"received":"2018-10-18T15:41:06+0000",
		"size":371,
		"vsize":166,
		"fees":0.00002992,
		"replaceable":false,
		"blockhash":"00000000000000000011bb83bb9bed0f6e131d0d0c903ec3a063e00b3aa00bf6",
		"blocktime":"2018-10-18T16:58:49+0000",
		"blockheight":545300
	}`
)

func init() {
	gin.SetMode(gin.TestMode)
}

func post(router http.Handler, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)
	return rec
}

func TestRouter(t *testing.T) {
	t.Run("dispatch", func(t *testing.T) {
		var unconfirmed, confirmed []Notification
		router := NewRouter(Config{
			OnUnconfirmed: func(_ context.Context, n Notification) error {
				unconfirmed = append(unconfirmed, n)
				return nil
			},
			OnConfirmed: func(_ context.Context, n Notification) error {
				confirmed = append(confirmed, n)
				return nil
			},
		})

		rec := post(router, DefaultUnconfirmedPath, zeroConf)
		require.Equal(t, http.StatusOK, rec.Code)
		rec = post(router, DefaultConfirmedPath, oneConf)
		require.Equal(t, http.StatusOK, rec.Code)

		require.Len(t, unconfirmed, 1)
		require.Len(t, confirmed, 1)

		zero := unconfirmed[0]
		require.Equal(t, cyphernode.FlexInt(3832), zero.ID)
		require.False(t, zero.Confirmed())
		require.Equal(t, cyphernode.FlexInt(0), zero.BlockHeight)
		require.Empty(t, zero.BlockHash)
		require.Equal(t, 0.84050318, zero.SentAmount)

		one := confirmed[0]
		require.True(t, one.Confirmed())
		require.Equal(t, cyphernode.FlexInt(545300), one.BlockHeight)
		require.Equal(t, cyphernode.Timestamp("2018-10-18T16:58:49+0000"), one.BlockTime)
	})

	t.Run("custom paths", func(t *testing.T) {
		called := false
		router := NewRouter(Config{
			ConfirmedPath: "/hooks/confirmed",
			OnConfirmed: func(context.Context, Notification) error {
				called = true
				return nil
			},
		})

		require.Equal(t, http.StatusNotFound, post(router, DefaultConfirmedPath, oneConf).Code)
		require.Equal(t, http.StatusOK, post(router, "/hooks/confirmed", oneConf).Code)
		require.True(t, called)
	})

	t.Run("nil handler acknowledges", func(t *testing.T) {
		router := NewRouter(Config{})
		require.Equal(t, http.StatusOK, post(router, DefaultUnconfirmedPath, zeroConf).Code)
	})

	t.Run("bad payload", func(t *testing.T) {
		router := NewRouter(Config{
			OnUnconfirmed: func(context.Context, Notification) error {
				t.Fatal("handler must not be called")
				return nil
			},
		})

		require.Equal(t, http.StatusBadRequest, post(router, DefaultUnconfirmedPath, `{"id":`).Code)
		require.Equal(t, http.StatusBadRequest, post(router, DefaultUnconfirmedPath, `{"id":"1","hash":"ab"}`).Code)
	})

	t.Run("handler failure", func(t *testing.T) {
		router := NewRouter(Config{
			OnConfirmed: func(context.Context, Notification) error {
				return errors.New("database is down")
			},
		})

		rec := post(router, DefaultConfirmedPath, oneConf)
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Contains(t, rec.Body.String(), "database is down")
	})
}

func TestCallbacks(t *testing.T) {
	cfg := Config{ConfirmedPath: "/one"}
	got := cfg.Callbacks("https://shop.example:1111/")
	require.Equal(t, cyphernode.Callbacks{
		UnconfirmedCallbackURL: "https://shop.example:1111/callback0conf",
		ConfirmedCallbackURL:   "https://shop.example:1111/one",
	}, got)
}
