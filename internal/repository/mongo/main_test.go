package mongo

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	testClient *mongo.Client
	// skipReason is set when no database could be started for the tests.
	skipReason string
	dbCounter  atomic.Int64
)

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		skipReason = "mongo tests disabled in short mode"
		os.Exit(m.Run())
	}

	cleanup, err := mongoSetup()
	if err != nil {
		skipReason = err.Error()
		os.Exit(m.Run())
	}

	code := m.Run()
	cleanup()
	os.Exit(code)
}

func mongoSetup() (func(), error) {
	// uses a sensible default on windows (tcp/http) and linux/osx (socket)
	pool, err := dockertest.NewPool("")
	if err != nil {
		return nil, fmt.Errorf("could not create new dockertest pool: %s", err)
	}
	if err = pool.Client.Ping(); err != nil {
		return nil, fmt.Errorf("could not ping dockertest pool: %s", err)
	}
	pool.MaxWait = 2 * time.Minute

	mongoResource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mongo",
		Tag:        "7.0",
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{
			Name: "no",
		}
	})
	if err != nil {
		return nil, fmt.Errorf("dockerpool run mongo: %s", err)
	}

	uri := fmt.Sprintf("mongodb://localhost:%s", mongoResource.GetPort("27017/tcp"))
	err = pool.Retry(func() error {
		client, err := ConnectDB(uri)
		if err != nil {
			return err
		}
		testClient = client
		return nil
	})
	if err != nil {
		_ = mongoResource.Close()
		return nil, fmt.Errorf("connect mongo: %s", err)
	}

	return func() {
		if err := DisconnectDB(testClient); err != nil {
			log.Errorf("disconnect test client: %s", err)
		}
		if err := mongoResource.Close(); err != nil {
			log.Errorf("remove mongo container: %s", err)
		}
	}, nil
}

// requireDB skips the test when no database is available. Otherwise it returns
// a fresh database with every index in place, dropped when the test ends.
func requireDB(t *testing.T) *mongo.Database {
	t.Helper()
	if testClient == nil {
		t.Skipf("no mongo: %s", skipReason)
	}

	db := testClient.Database(fmt.Sprintf("gym_test_%d", dbCounter.Add(1)))
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	EnsureIndexes(ctx, db)

	t.Cleanup(func() {
		_ = db.Drop(context.Background())
	})
	return db
}
