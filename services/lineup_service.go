package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/pelada/draft"
	"github.com/Dosada05/pelada/export"
	"github.com/Dosada05/pelada/models"
	"github.com/Dosada05/pelada/storage"
)

const (
	EventLineupGenerated = "LINEUP_GENERATED"

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// LineupRecorder receives metrics about draws and exports.
type LineupRecorder interface {
	ObserveLineup(lineup *models.Lineup, duration time.Duration)
	IncRejected(reason string)
	IncExport(archived bool)
}

type LineupService interface {
	Generate(ctx context.Context, input GenerateLineupInput) (*models.Lineup, error)
	Export(ctx context.Context, lineup *models.Lineup) (*ExportResult, error)
}

type GenerateLineupInput struct {
	Players []models.Player
	// Seed reproduces an earlier draw when set.
	Seed *int64
}

type ExportResult struct {
	FileName    string
	ContentType string
	Data        []byte
	// URL is set when the export was archived to object storage.
	URL string
}

type lineupService struct {
	engine      *draft.Engine
	uploader    storage.FileUploader
	broadcaster Broadcaster
	recorder    LineupRecorder
	logger      *slog.Logger
	now         func() time.Time
}

// NewLineupService wires the draft engine; uploader, broadcaster and recorder may be nil.
func NewLineupService(
	engine *draft.Engine,
	uploader storage.FileUploader,
	broadcaster Broadcaster,
	recorder LineupRecorder,
	logger *slog.Logger,
) LineupService {
	if logger == nil {
		logger = slog.Default()
	}
	return &lineupService{
		engine:      engine,
		uploader:    uploader,
		broadcaster: broadcaster,
		recorder:    recorder,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *lineupService) Generate(ctx context.Context, input GenerateLineupInput) (*models.Lineup, error) {
	if len(input.Players) < draft.MinPlayers {
		s.reject("insufficient_players")
		return nil, fmt.Errorf("%w (got %d)", ErrInsufficientPlayers, len(input.Players))
	}

	// Игроки идут в движок как есть: неизвестные позиции и любые skill/age допустимы.
	start := s.now()
	var (
		result *draft.Result
		err    error
	)
	if input.Seed != nil {
		result, err = s.engine.AssignWithSeed(input.Players, *input.Seed)
	} else {
		result, err = s.engine.Assign(input.Players)
	}
	if err != nil {
		if errors.Is(err, draft.ErrInsufficientPlayers) {
			s.reject("insufficient_players")
			return nil, ErrInsufficientPlayers
		}
		return nil, fmt.Errorf("failed to draw teams: %w", err)
	}

	lineup := &models.Lineup{
		Team1:         result.Team1,
		Team2:         result.Team2,
		FormationSize: result.FormationSize,
		Variant:       s.engine.Table().Name,
		Seed:          result.Seed,
		GeneratedAt:   s.now().UTC(),
	}
	if s.recorder != nil {
		s.recorder.ObserveLineup(lineup, s.now().Sub(start))
	}

	s.logger.Info("lineup generated",
		slog.Int("players", lineup.Size()),
		slog.Int("formation_size", lineup.FormationSize),
		slog.String("variant", lineup.Variant),
		slog.Int64("seed", lineup.Seed),
	)
	if s.broadcaster != nil {
		s.broadcaster.Publish(EventLineupGenerated, lineup)
	}
	return lineup, nil
}

// Export renders the lineup workbook and archives it when an uploader is configured.
func (s *lineupService) Export(ctx context.Context, lineup *models.Lineup) (*ExportResult, error) {
	f, err := export.Lineup(lineup)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExportFailed, err)
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExportFailed, err)
	}

	res := &ExportResult{
		FileName:    fmt.Sprintf("times-%s-%d.xlsx", lineup.GeneratedAt.Format("20060102-150405"), lineup.Seed),
		ContentType: xlsxContentType,
		Data:        buf.Bytes(),
	}

	if s.uploader != nil {
		key := "lineups/" + res.FileName
		uploaded, err := s.uploader.Upload(ctx, key, xlsxContentType, bytes.NewReader(res.Data))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrArchiveFailed, err)
		}
		res.URL = uploaded.Location
		s.logger.Info("lineup export archived", slog.String("key", uploaded.Key), slog.String("url", uploaded.Location))
	}

	if s.recorder != nil {
		s.recorder.IncExport(res.URL != "")
	}
	return res, nil
}

func (s *lineupService) reject(reason string) {
	if s.recorder != nil {
		s.recorder.IncRejected(reason)
	}
}
