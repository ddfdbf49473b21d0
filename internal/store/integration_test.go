package store

import (
	"context"
	"database/sql"
	"os"
	"strconv"
	"sync"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// exerciseStore runs the behaviour every Store must share against s.
func exerciseStore(t *testing.T, s Store, collection string) {
	t.Helper()
	ctx := context.Background()

	if err := s.Update(ctx, collection, func([]byte) ([]byte, error) { return []byte("0"), nil }); err != nil {
		t.Fatalf("reset: %v", err)
	}
	const writers = 10
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.Update(ctx, collection, func(cur []byte) ([]byte, error) {
				n, _ := strconv.Atoi(string(cur))
				return []byte(strconv.Itoa(n + 1)), nil
			})
			if err != nil {
				t.Errorf("update: %v", err)
			}
		}()
	}
	wg.Wait()
	got, err := s.Load(ctx, collection)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != strconv.Itoa(writers) {
		t.Fatalf("counter = %s, want %d", got, writers)
	}
}

func TestMySQLStore(t *testing.T) {
	dsn := os.Getenv("MYSQL_TEST_DSN")
	if dsn == "" {
		t.Skip("MYSQL_TEST_DSN not set")
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s, err := NewMySQLStore(ctx, db)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	defer s.Close()
	exerciseStore(t, s, "test_counter")
}

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	s := NewMongoStore(client, client.Database("movie_booking_test"))
	defer s.Close()
	exerciseStore(t, s, "test_counter")
}
