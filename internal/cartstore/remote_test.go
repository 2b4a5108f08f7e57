package cartstore

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theabhishek-hub/ecommerce-storefront/internal/api"
)

func newRemoteStore(t *testing.T, handler http.HandlerFunc) *Remote {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := api.NewClient(api.Config{BaseURL: server.URL, Token: "user-1"}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return NewRemote(client, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRemoteAdd_ReturnsReReadState(t *testing.T) {
	var gets, posts int
	remote := newRemoteStore(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			posts++
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"success":true,"data":{"items":[]}}`))
		case http.MethodGet:
			gets++
			// The re-read is the source of truth, not the mutation response.
			w.Write([]byte(`{"success":true,"data":{"items":[
				{"productId":1,"productName":"Mouse","priceAmount":"799","quantity":4}
			]}}`))
		}
	})

	cart, err := remote.Add(context.Background(), lineItem(1, "Mouse", "799", 2))

	require.NoError(t, err)
	assert.Equal(t, 1, posts)
	assert.Equal(t, 1, gets)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, int32(4), cart.Items[0].Quantity, "rendered state must come from the re-read")
}

func TestRemoteRead_FailureReturnsEmptyAndError(t *testing.T) {
	remote := newRemoteStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	cart, err := remote.Read(context.Background())

	assert.Error(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestRemoteSetQuantity_MutationFailureSkipsReRead(t *testing.T) {
	var gets int
	remote := newRemoteStore(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			gets++
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"quantity must be between 1 and 99"}`))
	})

	_, err := remote.SetQuantity(context.Background(), 1, 0)

	require.Error(t, err)
	var validation *api.ValidationError
	assert.ErrorAs(t, err, &validation)
	assert.Zero(t, gets)
}

func TestForSession_PicksBackendOnce(t *testing.T) {
	remote := &Remote{}
	local := &Local{}

	assert.Same(t, remote, ForSession(true, remote, local).(*Remote))
	assert.Same(t, local, ForSession(false, remote, local).(*Local))
}
