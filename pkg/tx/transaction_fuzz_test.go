package tx

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func FuzzTransactionJSONDecode(f *testing.F) {
	f.Add([]byte(`{}`))
	f.Add([]byte(`{"format":2,"quantity":"0","reward":"0"}`))
	f.Add([]byte(`{"format":1,"owner":"AA","tags":[{"name":"aw","value":"AA"}]}`))
	f.Add([]byte(`{"format":2,"data":"aGVsbG8"}`))

	f.Fuzz(func(t *testing.T, data []byte) {
		var decoded Transaction
		if err := json.Unmarshal(data, &decoded); err != nil {
			return
		}

		// Anything that decoded must re-encode and decode to the same wire form.
		encoded, err := json.Marshal(&decoded)
		require.NoError(t, err)

		var again Transaction
		require.NoError(t, json.Unmarshal(encoded, &again))

		reencoded, err := json.Marshal(&again)
		require.NoError(t, err)
		require.Equal(t, encoded, reencoded)
	})
}
