package gcloud

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/iam/v1"
	"google.golang.org/api/option"
)

// newDelegationTestClient wires a Client at a local IAM stub.
func newDelegationTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	iamSvc, err := iam.NewService(context.Background(),
		option.WithEndpoint(ts.URL),
		option.WithoutAuthentication())
	require.NoError(t, err)

	return &Client{
		iam:         iamSvc,
		http:        ts.Client(),
		iamEndpoint: ts.URL,
	}
}

func TestEnableDelegation_ConfirmsClientID(t *testing.T) {
	t.Parallel()

	const email = "gwsetup-svc@acme-proj-1.iam.gserviceaccount.com"

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/projects/-/serviceAccounts/"+email, func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(&iam.ServiceAccount{
			Email:       email,
			UniqueId:    "1057261",
			DisplayName: "Workspace migration",
		})
	})
	mux.HandleFunc("PUT /v1/projects/-/serviceAccounts/"+email, func(w http.ResponseWriter, r *http.Request) {
		var got delegationResource
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, email, got.Email)

		json.NewEncoder(w).Encode(delegationResource{
			Email:          email,
			DisplayName:    got.DisplayName,
			OAuth2ClientID: "1057261",
		})
	})

	c := newDelegationTestClient(t, mux)

	clientID, err := c.EnableDelegation(context.Background(), email)
	require.NoError(t, err)
	assert.Equal(t, "1057261", clientID)
}

func TestEnableDelegation_MissingClientIDInBody(t *testing.T) {
	t.Parallel()

	const email = "gwsetup-svc@acme-proj-1.iam.gserviceaccount.com"

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/projects/-/serviceAccounts/"+email, func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(&iam.ServiceAccount{Email: email, UniqueId: "1057261"})
	})
	mux.HandleFunc("PUT /v1/projects/-/serviceAccounts/"+email, func(w http.ResponseWriter, _ *http.Request) {
		// 200 OK, but the provider dropped the delegation flag.
		json.NewEncoder(w).Encode(delegationResource{Email: email})
	})

	c := newDelegationTestClient(t, mux)

	clientID, err := c.EnableDelegation(context.Background(), email)
	require.NoError(t, err)
	assert.Empty(t, clientID, "an unconfirmed replace must yield an empty client id, not an error")
}

func TestEnableDelegation_HTTPError(t *testing.T) {
	t.Parallel()

	const email = "gwsetup-svc@acme-proj-1.iam.gserviceaccount.com"

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/projects/-/serviceAccounts/"+email, func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(&iam.ServiceAccount{Email: email})
	})
	mux.HandleFunc("PUT /v1/projects/-/serviceAccounts/"+email, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	})

	c := newDelegationTestClient(t, mux)

	_, err := c.EnableDelegation(context.Background(), email)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 500")
}
