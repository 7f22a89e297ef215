package factory

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/blockdrop/internal/dependencies/mocks"
	"github.com/mcoot/blockdrop/internal/model"
	"github.com/mcoot/blockdrop/internal/services/auth"
	"github.com/mcoot/blockdrop/internal/services/placement"
	"github.com/mcoot/blockdrop/internal/storage/memory"
	"github.com/mcoot/blockdrop/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies,
// in-memory storage and the built-in presets. Every random draw must be
// queued on MockRandom first.
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	authCfg := auth.DefaultConfig()
	authCfg.BcryptCost = bcrypt.MinCost

	app := newWithDependencies(store, mockClock, mockRandom, authCfg, placement.DefaultParams(), model.DefaultGameConfig(), testutil.NopLogger())
	if err := app.PresetService.LoadDefaults(context.Background()); err != nil {
		panic("built-in presets failed to load: " + err.Error())
	}

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// NewGuest creates a guest session, queueing the random values it consumes
func (t *TestApp) NewGuest(ctx context.Context, id, name string) (*auth.Session, error) {
	t.MockRandom.QueueString(id, "token-"+id)
	return t.AuthService.CreateGuestPlayer(ctx, name)
}
