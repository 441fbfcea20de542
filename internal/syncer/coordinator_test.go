package syncer_test

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/helmarr/helmarr/internal/history"
	"github.com/helmarr/helmarr/internal/legacy"
	"github.com/helmarr/helmarr/internal/syncer"
	"github.com/helmarr/helmarr/internal/syncer/mocks"
)

// testLogger returns a discard logger for tests.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fixture struct {
	transfers  *mocks.MockTransferWriter
	downloads  *mocks.MockDownloadWriter
	pluginData *mocks.MockPluginDataWriter
	settings   *mocks.MockSettingsStore
	extractor  *mocks.MockExtractor
	coord      *syncer.Coordinator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		transfers:  mocks.NewMockTransferWriter(ctrl),
		downloads:  mocks.NewMockDownloadWriter(ctrl),
		pluginData: mocks.NewMockPluginDataWriter(ctrl),
		settings:   mocks.NewMockSettingsStore(ctrl),
		extractor:  mocks.NewMockExtractor(ctrl),
	}
	f.coord = syncer.NewCoordinator(f.transfers, f.downloads, f.pluginData, f.settings, testLogger())
	f.coord.SetSourceOpener(func(string, *slog.Logger) (syncer.Extractor, error) {
		return f.extractor, nil
	})
	return f
}

func TestCoordinator_RunTransfers(t *testing.T) {
	f := newFixture(t)

	f.extractor.EXPECT().TransferHistory().Return([]legacy.TransferRow{
		{Src: "/vol1/a.mkv", Dest: "/vol1/lib/a.mkv"},
		{Src: "", Dest: "/vol1/lib/b.mkv"}, // skipped, no source
		{Src: "/vol1/c.mkv", Dest: "/vol1/lib/c.mkv"},
	}, nil)
	f.extractor.EXPECT().Close().Return(nil)

	var written []*history.TransferRecord
	f.transfers.EXPECT().Append(gomock.Any()).Times(2).DoAndReturn(
		func(r *history.TransferRecord) error {
			written = append(written, r)
			return nil
		})
	f.settings.EXPECT().SaveSettings(gomock.Any()).Return(nil)

	summary, err := f.coord.Run(context.Background(), syncer.Settings{
		Transfer:   true,
		SourcePath: "/tmp/user.db",
		PathMap:    "/vol1:/data",
	})
	require.NoError(t, err)

	result := summary.Result(syncer.CategoryTransfer)
	require.NotNil(t, result)
	assert.Equal(t, 2, result.Written)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 0, result.Failed)
	assert.NoError(t, result.Err)
	require.Len(t, written, 2)
	assert.Equal(t, "/data/a.mkv", written[0].Src)
}

func TestCoordinator_ClearBeforeImport(t *testing.T) {
	f := newFixture(t)

	gomock.InOrder(
		f.transfers.EXPECT().Truncate().Return(nil),
		f.extractor.EXPECT().TransferHistory().Return(nil, nil),
	)
	f.extractor.EXPECT().Close().Return(nil)
	f.settings.EXPECT().SaveSettings(gomock.Any()).Return(nil)

	_, err := f.coord.Run(context.Background(), syncer.Settings{
		Transfer:   true,
		Clear:      true,
		SourcePath: "/tmp/user.db",
	})
	require.NoError(t, err)
}

func TestCoordinator_TruncateFailureAbortsCategoryOnly(t *testing.T) {
	f := newFixture(t)

	f.transfers.EXPECT().Truncate().Return(errors.New("disk full"))
	f.extractor.EXPECT().PluginHistory().Return([]legacy.PluginRow{
		{PluginID: "SiteStatistic", Key: "k", Value: "{}"},
	}, nil)
	f.pluginData.EXPECT().Upsert("SiteStatistic", "k", "{}").Return(nil)
	f.pluginData.EXPECT().Truncate().Return(nil)
	f.extractor.EXPECT().Close().Return(nil)
	f.settings.EXPECT().SaveSettings(gomock.Any()).Return(nil)

	summary, err := f.coord.Run(context.Background(), syncer.Settings{
		Transfer:   true,
		Plugin:     true,
		Clear:      true,
		SourcePath: "/tmp/user.db",
	})
	require.NoError(t, err)

	assert.Error(t, summary.Result(syncer.CategoryTransfer).Err)
	assert.Equal(t, 1, summary.Result(syncer.CategoryPlugin).Written)
}

func TestCoordinator_DuplicatesCountAsSkipped(t *testing.T) {
	f := newFixture(t)

	f.extractor.EXPECT().DownloadHistory().Return([]legacy.DownloadRow{
		{SavePath: "/dl/a", DownloadHash: "h1"},
		{SavePath: "/dl/b", DownloadHash: "h1"},
	}, nil)
	f.extractor.EXPECT().Close().Return(nil)

	first := f.downloads.EXPECT().Append(gomock.Any()).Return(nil)
	f.downloads.EXPECT().Append(gomock.Any()).Return(history.ErrDuplicate).After(first)
	f.settings.EXPECT().SaveSettings(gomock.Any()).Return(nil)

	summary, err := f.coord.Run(context.Background(), syncer.Settings{
		Download:   true,
		SourcePath: "/tmp/user.db",
	})
	require.NoError(t, err)

	result := summary.Result(syncer.CategoryDownload)
	assert.Equal(t, 1, result.Written)
	assert.Equal(t, 1, result.Skipped)
}

func TestCoordinator_DecodeErrorCountsAsFailed(t *testing.T) {
	f := newFixture(t)

	f.extractor.EXPECT().PluginHistory().Return([]legacy.PluginRow{
		{PluginID: "IYUUAutoSeed", Key: "h1", Value: `{"not":"an array"}`},
		{PluginID: "IYUUAutoSeed", Key: "h2", Value: `[{"downloader":"1"}]`},
	}, nil)
	f.extractor.EXPECT().Close().Return(nil)
	f.pluginData.EXPECT().Upsert("IYUUAutoSeed", "h2", `[{"downloader":"qbittorrent"}]`).Return(nil)
	f.settings.EXPECT().SaveSettings(gomock.Any()).Return(nil)

	summary, err := f.coord.Run(context.Background(), syncer.Settings{
		Plugin:        true,
		SourcePath:    "/tmp/user.db",
		DownloaderMap: "1:qbittorrent",
	})
	require.NoError(t, err)

	result := summary.Result(syncer.CategoryPlugin)
	assert.Equal(t, 1, result.Written)
	assert.Equal(t, 1, result.Failed)
}

func TestCoordinator_SystemicErrorAbortsCategory(t *testing.T) {
	f := newFixture(t)

	f.extractor.EXPECT().TransferHistory().Return([]legacy.TransferRow{
		{Src: "/a", Dest: "/b"},
		{Src: "/c", Dest: "/d"},
	}, nil)
	f.extractor.EXPECT().Close().Return(nil)
	f.transfers.EXPECT().Append(gomock.Any()).Return(sql.ErrConnDone)
	f.settings.EXPECT().SaveSettings(gomock.Any()).Return(nil)

	summary, err := f.coord.Run(context.Background(), syncer.Settings{
		Transfer:   true,
		SourcePath: "/tmp/user.db",
	})
	require.NoError(t, err)

	result := summary.Result(syncer.CategoryTransfer)
	require.Error(t, result.Err)
	assert.Equal(t, 0, result.Written)
}

func TestCoordinator_SourceUnavailableIsFatal(t *testing.T) {
	f := newFixture(t)
	f.coord.SetSourceOpener(func(string, *slog.Logger) (syncer.Extractor, error) {
		return nil, legacy.ErrSourceUnavailable
	})

	_, err := f.coord.Run(context.Background(), syncer.Settings{
		Transfer:   true,
		SourcePath: "/missing/user.db",
	})
	require.ErrorIs(t, err, legacy.ErrSourceUnavailable)
}

func TestCoordinator_MalformedRulesRejectRun(t *testing.T) {
	f := newFixture(t)

	_, err := f.coord.Run(context.Background(), syncer.Settings{
		Transfer:   true,
		SourcePath: "/tmp/user.db",
		PathMap:    "missing delimiter",
	})
	require.Error(t, err)
}

func TestCoordinator_NothingEnabled(t *testing.T) {
	f := newFixture(t)

	summary, err := f.coord.Run(context.Background(), syncer.Settings{SourcePath: "/tmp/user.db"})
	require.NoError(t, err)
	assert.Empty(t, summary.Categories)
}

func TestCoordinator_SecondRunRejectedWhileRunning(t *testing.T) {
	f := newFixture(t)

	release := make(chan struct{})
	started := make(chan struct{})
	f.extractor.EXPECT().TransferHistory().DoAndReturn(func() ([]legacy.TransferRow, error) {
		close(started)
		<-release
		return nil, nil
	})
	f.extractor.EXPECT().Close().Return(nil)
	f.settings.EXPECT().SaveSettings(gomock.Any()).Return(nil)

	settings := syncer.Settings{Transfer: true, SourcePath: "/tmp/user.db"}
	done := make(chan error, 1)
	go func() {
		_, err := f.coord.Run(context.Background(), settings)
		done <- err
	}()

	<-started
	assert.True(t, f.coord.Running())
	_, err := f.coord.Run(context.Background(), settings)
	assert.ErrorIs(t, err, syncer.ErrAlreadyRunning)

	close(release)
	require.NoError(t, <-done)
	assert.False(t, f.coord.Running())
}

func TestCoordinator_SettingsWriteBackResetsFlags(t *testing.T) {
	f := newFixture(t)

	f.extractor.EXPECT().TransferHistory().Return(nil, nil)
	f.extractor.EXPECT().Close().Return(nil)
	f.settings.EXPECT().SaveSettings(gomock.Any()).DoAndReturn(func(s syncer.Settings) error {
		assert.False(t, s.Clear)
		assert.False(t, s.Transfer)
		assert.False(t, s.Plugin)
		assert.False(t, s.Download)
		assert.Equal(t, "/tmp/user.db", s.SourcePath)
		assert.Equal(t, "/vol1:/data", s.PathMap)
		return nil
	})

	_, err := f.coord.Run(context.Background(), syncer.Settings{
		Transfer:   true,
		Clear:      false,
		SourcePath: "/tmp/user.db",
		PathMap:    "/vol1:/data",
	})
	require.NoError(t, err)
}
