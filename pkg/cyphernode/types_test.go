package cyphernode

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMsat(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		fixtures := map[string]Msat{
			`699128000`:       699128000,
			`"699128000msat"`: 699128000,
			`"42"`:            42,
			`0`:               0,
		}
		for raw, expected := range fixtures {
			var got Msat
			require.NoError(t, json.Unmarshal([]byte(raw), &got), raw)
			require.Equal(t, expected, got, raw)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		for _, raw := range []string{`"12sat"`, `-1`, `1.5`, `true`} {
			var got Msat
			require.Error(t, json.Unmarshal([]byte(raw), &got), raw)
		}
	})

	t.Run("marshals as a number", func(t *testing.T) {
		b, err := json.Marshal(struct {
			Amount Msat `json:"amount_msat"`
		}{Amount: 1500})
		require.NoError(t, err)
		require.JSONEq(t, `{"amount_msat":1500}`, string(b))
	})

	t.Run("conversion", func(t *testing.T) {
		require.Equal(t, int64(1), int64(Msat(1999).ToSatoshis()))
		require.Equal(t, uint64(1999), uint64(Msat(1999).MilliSatoshi()))
	})
}

func TestTimestamp(t *testing.T) {
	fixtures := []struct {
		raw      string
		expected Timestamp
		out      string
	}{
		{`1596496264`, "1596496264", `1596496264`},
		{`"2018-09-06 21:14:03"`, "2018-09-06 21:14:03", `"2018-09-06 21:14:03"`},
		{`null`, "", `""`},
	}
	for _, f := range fixtures {
		t.Run(f.raw, func(t *testing.T) {
			var got Timestamp
			require.NoError(t, json.Unmarshal([]byte(f.raw), &got))
			require.Equal(t, f.expected, got)

			b, err := json.Marshal(got)
			require.NoError(t, err)
			require.Equal(t, f.out, string(b))
		})
	}

	t.Run("strings strconv would parse stay quoted", func(t *testing.T) {
		for _, raw := range []string{`"NaN"`, `"Inf"`, `"+5"`, `"007"`, `"1e"`, `"-"`} {
			var ts Timestamp
			require.NoError(t, json.Unmarshal([]byte(raw), &ts), raw)

			b, err := json.Marshal(BatchInfo{Oldest: ts})
			require.NoError(t, err, raw)

			var back BatchInfo
			require.NoError(t, json.Unmarshal(b, &back), raw)
			require.Equal(t, ts, back.Oldest, raw)
		}
	})

	t.Run("json numbers stay numbers", func(t *testing.T) {
		for _, raw := range []string{`0`, `-1`, `1.5`, `2e10`, `1596496264`} {
			var ts Timestamp
			require.NoError(t, json.Unmarshal([]byte(raw), &ts), raw)
			b, err := json.Marshal(ts)
			require.NoError(t, err)
			require.Equal(t, raw, string(b))
		}
	})

	var got Timestamp
	require.Error(t, json.Unmarshal([]byte(`{}`), &got))
}

func TestFlexInt(t *testing.T) {
	for raw, expected := range map[string]FlexInt{`5`: 5, `"109"`: 109, `"-3"`: -3, `""`: 0} {
		var got FlexInt
		require.NoError(t, json.Unmarshal([]byte(raw), &got), raw)
		require.Equal(t, expected, got)
	}

	var got FlexInt
	require.Error(t, json.Unmarshal([]byte(`"five"`), &got))
}
