package store_test

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/hostgraph/hostgraph/internal/db"
	"github.com/hostgraph/hostgraph/internal/db/migrations"
	"github.com/hostgraph/hostgraph/internal/dbpool"
	"github.com/hostgraph/hostgraph/internal/models"
	"github.com/hostgraph/hostgraph/internal/store"
)

// testEnv holds shared test infrastructure (single pool across all tests).
type testEnv struct {
	pool *dbpool.Pool
	log  *logrus.Logger
}

var (
	sharedEnv *testEnv
	envOnce   sync.Once
	envErr    error
)

func getTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	envOnce.Do(func() {
		ctx := context.Background()

		log := logrus.New()
		log.SetLevel(logrus.ErrorLevel)

		pool, err := dbpool.NewPool(ctx, dbURL, dbpool.Options{MaxConns: 4})
		if err != nil {
			envErr = err
			return
		}

		if err := db.RunMigrations(ctx, pool, log, migrations.FS); err != nil {
			pool.Close()
			envErr = err

			return
		}

		sharedEnv = &testEnv{pool: pool, log: log}
	})

	if envErr != nil {
		t.Fatalf("preparing test DB: %v", envErr)
	}

	return sharedEnv
}

// setupTestBase returns a Base and a unique prefix for node IDs and
// addresses. Every node whose ID carries the prefix is deleted after the test.
func setupTestBase(t *testing.T) (store.Base, string) {
	t.Helper()

	env := getTestEnv(t)
	prefix := "t" + uuid.NewString()[:8] + "-"

	t.Cleanup(func() {
		env.pool.Exec(context.Background(), "DELETE FROM hg_nodes WHERE id LIKE $1", prefix+"%") //nolint:errcheck // best-effort cleanup
	})

	return store.Base{Pool: env.pool, Log: env.log}, prefix
}

func ipNode(prefix, id, addr string) models.CreateNodeRequest {
	return models.CreateNodeRequest{
		ID:         prefix + id,
		Labels:     []string{models.LabelIP},
		Properties: map[string]any{models.PropAddress: prefix + addr},
	}
}

func labelled(prefix, id string, labels ...string) models.CreateNodeRequest {
	return models.CreateNodeRequest{ID: prefix + id, Labels: labels}
}

func rel(prefix, source, target, typ string) models.CreateRelationshipRequest {
	return models.CreateRelationshipRequest{Source: prefix + source, Target: prefix + target, Type: typ}
}
