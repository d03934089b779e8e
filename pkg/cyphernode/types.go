package cyphernode

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/lightningnetwork/lnd/lnwire"
)

// Msat is an amount in millisatoshi. The gateway sends it either as a
// number or, for older c-lightning versions, as a "<n>msat" string.
type Msat uint64

func (m *Msat) UnmarshalJSON(b []byte) error {
	if isNull(b) {
		return nil
	}

	s := string(bytes.TrimSpace(b))
	if strings.HasPrefix(s, `"`) {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSuffix(s, "msat")
	}

	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid msat amount %s: %w", b, err)
	}
	*m = Msat(v)
	return nil
}

func (m Msat) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatUint(uint64(m), 10)), nil
}

func (m Msat) MilliSatoshi() lnwire.MilliSatoshi {
	return lnwire.MilliSatoshi(m)
}

func (m Msat) ToSatoshis() btcutil.Amount {
	return m.MilliSatoshi().ToSatoshis()
}

// Timestamp is kept as the raw text sent by the gateway, which is a unix
// timestamp on some versions and a "YYYY-MM-DD hh:mm:ss" string on others.
type Timestamp string

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if isNull(b) {
		return nil
	}

	if b = bytes.TrimSpace(b); b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Timestamp(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("invalid timestamp %s: %w", b, err)
	}
	*t = Timestamp(n.String())
	return nil
}

// jsonNumberRegexp is the number grammar of RFC 8259. strconv accepts more
// (NaN, Inf, +5, 007), none of which may be written unquoted.
var jsonNumberRegexp = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if jsonNumberRegexp.MatchString(string(t)) {
		return []byte(t), nil
	}
	return json.Marshal(string(t))
}

func (t Timestamp) String() string {
	return string(t)
}

// FlexInt is an integer the gateway sends either as a JSON number or as a
// quoted decimal string, as the xpub watch endpoints do for ids and
// indexes. An empty string decodes as zero: watch callbacks send
// "blockheight": "" until the transaction is mined.
type FlexInt int64

func (n *FlexInt) UnmarshalJSON(b []byte) error {
	if isNull(b) {
		return nil
	}

	s := string(bytes.TrimSpace(b))
	if strings.HasPrefix(s, `"`) {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			*n = 0
			return nil
		}
	}

	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid integer %s: %w", b, err)
	}
	*n = FlexInt(v)
	return nil
}

func (n FlexInt) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(int64(n), 10)), nil
}
