package decl

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/jsbridge/internal/ctxlog"
	"github.com/vk/jsbridge/internal/host"
	"github.com/vk/jsbridge/internal/variant"
)

func buildPlayerTable(t *testing.T) *Table {
	t.Helper()
	table := NewTable(player)
	require.NoError(t, table.Script(Tool()))
	require.NoError(t, table.Member("died", Signal()))
	require.NoError(t, table.Member("speed", Export(variant.Float, Hint(variant.HintRange), HintString("0,10"))))
	require.NoError(t, table.Member("sprite", OnReady("$Sprite2D")))
	require.NoError(t, table.Member("health", Export(variant.Int)))
	require.NoError(t, table.Script(Icon("res://player.svg")))
	return table
}

func TestTable_RecordsInCallOrder(t *testing.T) {
	table := buildPlayerTable(t)

	kinds := []Kind{}
	for _, d := range table.Declarations() {
		kinds = append(kinds, d.Kind)
	}
	assert.Equal(t, []Kind{KindTool, KindSignal, KindProperty, KindReady, KindProperty, KindIcon}, kinds)
	assert.Equal(t, 6, table.Len())
	assert.Equal(t, player, table.Target())
}

func TestTable_NothingReachesHostBeforeCommit(t *testing.T) {
	h := &fakeHost{}
	table := buildPlayerTable(t)
	assert.Empty(t, h.calls)

	require.NoError(t, table.Commit(context.Background(), h))
	assert.Equal(t, []string{
		"tool:",
		"signal:died",
		"property:speed",
		"ready:sprite",
		"property:health",
		"icon:res://player.svg",
	}, h.methods())

	for _, c := range h.calls {
		assert.Equal(t, player, c.Target)
	}
}

func TestTable_FailedDecoratorRecordsNothing(t *testing.T) {
	table := NewTable(player)
	require.ErrorIs(t, table.Member("x", OnReady(3)), ErrInvalidEvaluator)
	require.ErrorIs(t, table.Member("", Signal()), ErrEmptyName)
	assert.Zero(t, table.Len())
}

func TestTable_DeclarationsIsACopy(t *testing.T) {
	table := buildPlayerTable(t)
	decls := table.Declarations()
	decls[0].Kind = KindIcon
	assert.Equal(t, KindTool, table.Declarations()[0].Kind)
}

func TestTable_CommitStopsAtFirstHostError(t *testing.T) {
	hostErr := errors.New("ready already registered")
	h := &fakeHost{reject: func(c call) error {
		if c.Method == "ready" {
			return hostErr
		}
		return nil
	}}

	var buf bytes.Buffer
	ctx := ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	err := buildPlayerTable(t).Commit(ctx, h)
	require.Error(t, err)
	assert.Same(t, hostErr, err)
	assert.Equal(t, []string{"tool:", "signal:died", "property:speed"}, h.methods())
	assert.Contains(t, buf.String(), "Host rejected declaration.")
	assert.Contains(t, buf.String(), "script=Player")
}

func TestTable_CommitTwiceRegistersTwice(t *testing.T) {
	h := &fakeHost{}
	table := NewTable(player)
	require.NoError(t, table.Member("died", Signal()))

	require.NoError(t, table.Commit(context.Background(), h))
	require.NoError(t, table.Commit(context.Background(), h))
	assert.Equal(t, []string{"signal:died", "signal:died"}, h.methods())
}

func TestTable_PropertyAndReadyPayloads(t *testing.T) {
	table := buildPlayerTable(t)
	decls := table.Declarations()

	require.NotNil(t, decls[2].Property)
	assert.Equal(t, "speed", decls[2].Name)
	assert.Equal(t, variant.Float, decls[2].Property.Type)

	require.NotNil(t, decls[3].Ready)
	assert.Equal(t, host.Evaluator{Expr: "$Sprite2D"}, decls[3].Ready.Evaluator)
	assert.Equal(t, "res://player.svg", decls[5].IconPath)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "property", KindProperty.String())
	assert.Equal(t, "kind(42)", Kind(42).String())
}
