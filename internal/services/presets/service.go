package presets

import (
	"bufio"
	"context"
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/mcoot/blockdrop/internal/model"
	"github.com/mcoot/blockdrop/internal/services/board"
	"github.com/mcoot/blockdrop/internal/storage"
)

//go:embed default_presets.txt
var defaultPresets string

// headroom is the number of empty rows a preset must leave above it so new
// pieces can still be staged
const headroom = 6

// Service holds the named starting boards
type Service struct {
	storage      storage.Storage
	boardService *board.Service
	logger       *slog.Logger

	mu      sync.RWMutex
	presets []model.Preset
	byName  map[string]int
}

// New creates a new PresetService
func New(storage storage.Storage, boardService *board.Service, logger *slog.Logger) *Service {
	return &Service{
		storage:      storage,
		boardService: boardService,
		logger:       logger.With(slog.String("component", "preset-service")),
		byName:       make(map[string]int),
	}
}

// LoadDefaults loads the presets built into the binary
func (s *Service) LoadDefaults(ctx context.Context) error {
	return s.LoadFromReader(ctx, strings.NewReader(defaultPresets))
}

// LoadFromStorage loads presets previously saved to storage
func (s *Service) LoadFromStorage(ctx context.Context) error {
	presets, err := s.storage.GetPresets(ctx)
	if err != nil {
		return err
	}
	return s.LoadPresets(presets)
}

// LoadFromFile loads presets from a file and saves them to storage
func (s *Service) LoadFromFile(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return s.LoadFromReader(ctx, file)
}

// LoadFromReader parses presets and saves them to storage
func (s *Service) LoadFromReader(ctx context.Context, r io.Reader) error {
	presets, err := Parse(r)
	if err != nil {
		return err
	}
	if err := s.LoadPresets(presets); err != nil {
		return err
	}
	if err := s.storage.SavePresets(ctx, presets); err != nil {
		return err
	}

	s.logger.Info("presets loaded", slog.Int("count", len(presets)))
	return nil
}

// LoadPresets validates and installs presets without touching storage
func (s *Service) LoadPresets(presets []model.Preset) error {
	byName := make(map[string]int, len(presets))
	for i, p := range presets {
		if err := s.validate(p); err != nil {
			return err
		}
		if _, dup := byName[p.Name]; dup {
			return fmt.Errorf("%w: duplicate preset %q", model.ErrInvalidBoard, p.Name)
		}
		byName[p.Name] = i
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.presets = presets
	s.byName = byName
	return nil
}

func (s *Service) validate(p model.Preset) error {
	if p.Name == "" {
		return fmt.Errorf("%w: preset without a name", model.ErrInvalidBoard)
	}
	b, err := s.boardService.Parse(p.Rows)
	if err != nil {
		return fmt.Errorf("preset %q: %w", p.Name, err)
	}
	if full := s.boardService.FullRows(b); len(full) > 0 {
		return fmt.Errorf("%w: preset %q has full rows %v", model.ErrInvalidBoard, p.Name, full)
	}
	return nil
}

// IsLoaded returns whether any presets are installed
func (s *Service) IsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.presets) > 0
}

// List returns all presets in load order
func (s *Service) List() []model.Preset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Preset, len(s.presets))
	copy(out, s.presets)
	return out
}

// Get returns a preset by name
func (s *Service) Get(name string) (model.Preset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byName[name]
	if !ok {
		return model.Preset{}, fmt.Errorf("%w: %q", model.ErrPresetNotFound, name)
	}
	return s.presets[i], nil
}

// Build lays the named preset along the floor of an otherwise empty board
// with the given dimensions
func (s *Service) Build(name string, cfg model.GameConfig) (*model.Board, error) {
	p, err := s.Get(name)
	if err != nil {
		return nil, err
	}
	rows, cols := p.Dimensions()
	if cols != cfg.Cols {
		return nil, fmt.Errorf("%w: preset %q is %d wide, board is %d", model.ErrInvalidConfig, name, cols, cfg.Cols)
	}
	if rows > cfg.Rows-headroom {
		return nil, fmt.Errorf("%w: preset %q is too tall for %d rows", model.ErrInvalidConfig, name, cfg.Rows)
	}

	floor, err := s.boardService.Parse(p.Rows)
	if err != nil {
		return nil, err
	}
	b := model.NewBoard(cfg.Rows, cfg.Cols)
	offset := cfg.Rows - rows
	for row := range floor.Cells {
		copy(b.Cells[offset+row], floor.Cells[row])
	}
	return b, nil
}

// Parse reads presets in the text format: blocks introduced by "name:",
// an optional "description:" line, then board rows. Lines starting with
// "# " are comments.
func Parse(r io.Reader) ([]model.Preset, error) {
	var presets []model.Preset
	current := -1

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "" || line == "#" || strings.HasPrefix(line, "# "):
			continue
		case strings.HasPrefix(line, "name:"):
			presets = append(presets, model.Preset{
				Name: strings.TrimSpace(strings.TrimPrefix(line, "name:")),
			})
			current = len(presets) - 1
		case strings.HasPrefix(line, "description:"):
			if current < 0 {
				return nil, fmt.Errorf("%w: line %d: description before name", model.ErrInvalidBoard, lineNo)
			}
			presets[current].Description = strings.TrimSpace(strings.TrimPrefix(line, "description:"))
		default:
			if current < 0 {
				return nil, fmt.Errorf("%w: line %d: row before name", model.ErrInvalidBoard, lineNo)
			}
			presets[current].Rows = append(presets[current].Rows, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(presets) == 0 {
		return nil, model.ErrPresetsEmpty
	}
	return presets, nil
}

// Interface check
type ServiceInterface interface {
	LoadDefaults(ctx context.Context) error
	LoadFromStorage(ctx context.Context) error
	LoadFromFile(ctx context.Context, path string) error
	LoadPresets(presets []model.Preset) error
	IsLoaded() bool
	List() []model.Preset
	Get(name string) (model.Preset, error)
	Build(name string, cfg model.GameConfig) (*model.Board, error)
}

var _ ServiceInterface = (*Service)(nil)
