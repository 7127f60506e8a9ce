package tracing

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
)

func TestInjectTraceID(t *testing.T) {
	var buf bytes.Buffer
	original := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = original })

	ctx := InjectTraceID(context.Background())
	log.Ctx(ctx).Info().Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	traceID, ok := entry["traceId"].(string)
	require.True(t, ok)
	_, err := uuid.Parse(traceID)
	require.NoError(t, err)
}
