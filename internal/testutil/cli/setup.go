package cli

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/thenoetrevino/tandem/internal/app"
	"github.com/thenoetrevino/tandem/internal/testutil"
)

// SetupCLITest creates an in-memory DB and returns both the DB and App instance.
// It lives in its own package so service tests can import testutil without a cycle through app.
func SetupCLITest(t *testing.T, opts ...app.Option) (*sqlx.DB, *app.App) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	opts = append([]app.Option{app.WithClock(testutil.NewStepClock().Now)}, opts...)
	return db, app.New(db, opts...)
}
