package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCmdNames(t *testing.T) {
	t.Run("every command has a name that maps back", func(t *testing.T) {
		for cmd, name := range CmdNames {
			assert.Equal(t, cmd, NameToCmd[name])
			assert.Equal(t, name, cmd.String())
		}
	})
}

func TestCmdJSON(t *testing.T) {
	t.Run("inbound moves decode from command names", func(t *testing.T) {
		var msg InboundMessage
		err := json.Unmarshal([]byte(`{"command":"Move","cup":3}`), &msg)

		require.NoError(t, err)
		assert.Equal(t, Move, msg.Command)
		assert.Equal(t, 3, msg.Cup)
	})

	t.Run("unknown command names are rejected", func(t *testing.T) {
		var msg InboundMessage
		err := json.Unmarshal([]byte(`{"command":"Capture"}`), &msg)
		assert.Error(t, err)
	})

	t.Run("outbound commands encode as names", func(t *testing.T) {
		data, err := json.Marshal(OutboundMessage{Command: GameOver})
		require.NoError(t, err)
		assert.Contains(t, string(data), `"command":"GameOver"`)
	})
}
