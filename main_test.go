package main

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/portfolio-site-backend/admin"
	"github.com/rpupo63/portfolio-site-backend/api"
	"github.com/rpupo63/portfolio-site-backend/database"
	"github.com/rpupo63/portfolio-site-backend/database/dbtest"
	"github.com/rpupo63/portfolio-site-backend/services"
	"github.com/rpupo63/portfolio-site-backend/storage"
)

func TestServerResultAfterShutdownDoesNotBlock(t *testing.T) {
	server, err := api.NewServer(api.Dependencies{
		Database: database.New(dbtest.New(t)),
		Gate:     admin.NewGate(admin.GateConfig{}),
		Modals:   admin.NewMemoryModalStore(time.Minute),
		Images:   storage.NewUploader(nil),
		Resumes:  storage.NewUploader(nil),
		Notifier: services.NewNotifier(services.NotifierConfig{}),
	}, map[string]string{"PORT": "0"})
	require.NoError(t, err)

	errChannel := serverErrors()
	stopped := make(chan struct{})
	go func() {
		server.Start(errChannel)
		close(stopped)
	}()

	errChannel <- errors.New("interrupt")
	assert.EqualError(t, <-errChannel, "interrupt")

	server.ShutdownGracefully(time.Second)
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("server blocked sending its result")
	}
	assert.ErrorIs(t, <-errChannel, http.ErrServerClosed)
}
