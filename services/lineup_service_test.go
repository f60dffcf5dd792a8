package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/pelada/draft"
	"github.com/Dosada05/pelada/models"
	"github.com/Dosada05/pelada/storage"
)

type fakeRecorder struct {
	lineups  int
	rejected []string
	exports  []bool
}

func (f *fakeRecorder) ObserveLineup(*models.Lineup, time.Duration) { f.lineups++ }
func (f *fakeRecorder) IncRejected(reason string)                  { f.rejected = append(f.rejected, reason) }
func (f *fakeRecorder) IncExport(archived bool)                    { f.exports = append(f.exports, archived) }

type fakeUploader struct {
	err  error
	keys []string
	body []byte
}

func (f *fakeUploader) Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	f.keys = append(f.keys, key)
	f.body = data
	return &storage.UploadResult{Key: key, Location: f.GetPublicURL(key)}, nil
}

func (f *fakeUploader) GetPublicURL(key string) string {
	return "https://files.example.com/" + key
}

func seed(v int64) *int64 { return &v }

func TestGenerateLineup(t *testing.T) {
	rec := &fakeRecorder{}
	b := &fakeBroadcaster{}
	svc := NewLineupService(draft.New(draft.TableA()), nil, b, rec, discardLogger())
	ctx := context.Background()

	lineup, err := svc.Generate(ctx, GenerateLineupInput{Players: DefaultRoster()[:22], Seed: seed(11)})
	require.NoError(t, err)

	assert.Equal(t, 10, lineup.FormationSize)
	assert.Equal(t, draft.VariantA, lineup.Variant)
	assert.Equal(t, int64(11), lineup.Seed)
	assert.Equal(t, 22, lineup.Size())
	assert.False(t, lineup.GeneratedAt.IsZero())
	assert.Equal(t, 1, rec.lineups)
	require.Len(t, b.events, 1)
	assert.Equal(t, EventLineupGenerated, b.events[0].eventType)

	again, err := svc.Generate(ctx, GenerateLineupInput{Players: DefaultRoster()[:22], Seed: seed(11)})
	require.NoError(t, err)
	assert.Equal(t, lineup.Team1, again.Team1)
	assert.Equal(t, lineup.Team2, again.Team2)
}

func TestGenerateLineupRejects(t *testing.T) {
	rec := &fakeRecorder{}
	svc := NewLineupService(draft.New(draft.TableA()), nil, nil, rec, discardLogger())
	ctx := context.Background()

	_, err := svc.Generate(ctx, GenerateLineupInput{Players: DefaultRoster()[:15]})
	assert.ErrorIs(t, err, ErrInsufficientPlayers)

	assert.Equal(t, []string{"insufficient_players"}, rec.rejected)
	assert.Zero(t, rec.lineups)
}

func TestGenerateLineupAcceptsPlayersAsGiven(t *testing.T) {
	rec := &fakeRecorder{}
	svc := NewLineupService(draft.New(draft.TableA()), nil, nil, rec, discardLogger())

	players := DefaultRoster()[:16]
	players[0].Skill = -3
	players[1].Name = ""
	players[5].AlternativePosition = []string{"GOLEIRO"}
	players[9].Position = "LIB"

	lineup, err := svc.Generate(context.Background(), GenerateLineupInput{Players: players, Seed: seed(4)})
	require.NoError(t, err)
	assert.Equal(t, 16, lineup.Size())
	assert.Empty(t, rec.rejected)
	assert.Equal(t, 1, rec.lineups)
}

func TestExportLineup(t *testing.T) {
	ctx := context.Background()
	players := DefaultRoster()[:16]

	t.Run("local only", func(t *testing.T) {
		rec := &fakeRecorder{}
		svc := NewLineupService(draft.New(draft.TableB()), nil, nil, rec, discardLogger())
		lineup, err := svc.Generate(ctx, GenerateLineupInput{Players: players, Seed: seed(5)})
		require.NoError(t, err)

		res, err := svc.Export(ctx, lineup)
		require.NoError(t, err)
		assert.Empty(t, res.URL)
		assert.Contains(t, res.FileName, "-5.xlsx")
		assert.True(t, bytes.HasPrefix(res.Data, []byte("PK")))
		assert.Equal(t, []bool{false}, rec.exports)
	})

	t.Run("archived", func(t *testing.T) {
		rec := &fakeRecorder{}
		up := &fakeUploader{}
		svc := NewLineupService(draft.New(draft.TableA()), up, nil, rec, discardLogger())
		lineup, err := svc.Generate(ctx, GenerateLineupInput{Players: players})
		require.NoError(t, err)

		res, err := svc.Export(ctx, lineup)
		require.NoError(t, err)
		require.Len(t, up.keys, 1)
		assert.Equal(t, "lineups/"+res.FileName, up.keys[0])
		assert.Equal(t, res.Data, up.body)
		assert.Equal(t, up.GetPublicURL(up.keys[0]), res.URL)
		assert.Equal(t, []bool{true}, rec.exports)
	})

	t.Run("archive failure", func(t *testing.T) {
		svc := NewLineupService(draft.New(draft.TableA()), &fakeUploader{err: errors.New("denied")}, nil, nil, discardLogger())
		lineup, err := svc.Generate(ctx, GenerateLineupInput{Players: players})
		require.NoError(t, err)

		_, err = svc.Export(ctx, lineup)
		assert.ErrorIs(t, err, ErrArchiveFailed)
	})
}
