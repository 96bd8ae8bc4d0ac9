package tracking_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"orderledger/internal/adapters/out/tracking"
	"orderledger/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const parcelDoc = `{
	"_id": "p-1",
	"busId": "KA-01",
	"route": {"stops": [1, 2, 3]},
	"shippingAddress": {"address": "1 Main St", "city": "Pune", "postalCode": "411001", "country": "IN", "landmark": "near temple"},
	"isAddressChanged": false
}`

func TestGetParcel_DecodesDocumentAndETag(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/parcels/p-1", r.URL.Path)
		w.Header().Set("ETag", `"v1"`)
		_, _ = io.WriteString(w, parcelDoc)
	}))
	defer srv.Close()

	client := tracking.NewClient(srv.URL+"/", time.Second, srv.Client(), nil)

	p, err := client.GetParcel(t.Context(), "p-1")

	require.NoError(t, err)
	assert.Equal(t, "p-1", p.ID())
	assert.Equal(t, `"v1"`, p.ETag())
	assert.JSONEq(t,
		`{"address": "1 Main St", "city": "Pune", "postalCode": "411001", "country": "IN", "landmark": "near temple"}`,
		string(p.RawShippingAddress()))
}

func TestGetParcel_NotFound_ReturnsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "no such parcel", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := tracking.NewClient(srv.URL, time.Second, srv.Client(), nil).GetParcel(t.Context(), "missing")

	var statusErr *tracking.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Equal(t, http.MethodGet, statusErr.Method)
}

func TestGetParcel_SlowService_TimesOut(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := tracking.NewClient(srv.URL, 50*time.Millisecond, srv.Client(), nil).GetParcel(t.Context(), "p-1")

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGetParcel_MalformedBody_ReturnsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `[1, 2]`)
	}))
	defer srv.Close()

	_, err := tracking.NewClient(srv.URL, time.Second, srv.Client(), nil).GetParcel(t.Context(), "p-1")

	require.Error(t, err)
}

func TestUpdateParcel_SendsWholeDocumentWithIfMatch(t *testing.T) {
	var received map[string]json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Header().Set("ETag", `"v1"`)
			_, _ = io.WriteString(w, parcelDoc)
		case http.MethodPut:
			assert.Equal(t, `"v1"`, r.Header.Get("If-Match"))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			body, _ := io.ReadAll(r.Body)
			assert.NoError(t, json.Unmarshal(body, &received))
			w.Header().Set("ETag", `"v2"`)
			_, _ = w.Write(body)
		}
	}))
	defer srv.Close()

	client := tracking.NewClient(srv.URL, time.Second, srv.Client(), nil)
	p, err := client.GetParcel(t.Context(), "p-1")
	require.NoError(t, err)

	city := "Mysuru"
	candidate, err := p.WithAddressPatch(order.AddressPatch{City: &city})
	require.NoError(t, err)

	updated, err := client.UpdateParcel(t.Context(), candidate)

	require.NoError(t, err)
	assert.Equal(t, `"v2"`, updated.ETag())
	doc, err := updated.MarshalJSON()
	require.NoError(t, err)
	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(doc, &fields))
	assert.JSONEq(t, `true`, string(fields["isAddressChanged"]))

	assert.JSONEq(t, `"KA-01"`, string(received["busId"]))
	assert.JSONEq(t, `{"stops": [1, 2, 3]}`, string(received["route"]))
	assert.JSONEq(t,
		`{"address": "1 Main St", "city": "Mysuru", "postalCode": "411001", "country": "IN", "landmark": "near temple"}`,
		string(received["shippingAddress"]))
	assert.JSONEq(t, `true`, string(received["isAddressChanged"]))
}

func TestUpdateParcel_EmptyResponse_KeepsSentDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			_, _ = io.WriteString(w, parcelDoc)
			return
		}
		w.Header().Set("ETag", `"v9"`)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := tracking.NewClient(srv.URL, time.Second, srv.Client(), nil)
	p, err := client.GetParcel(t.Context(), "p-1")
	require.NoError(t, err)

	updated, err := client.UpdateParcel(t.Context(), p.Reverted())

	require.NoError(t, err)
	assert.Equal(t, `"v9"`, updated.ETag())
	assert.JSONEq(t, string(p.RawShippingAddress()), string(updated.RawShippingAddress()))
}

func TestUpdateParcel_PreconditionFailed_ReturnsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			w.Header().Set("ETag", `"v1"`)
			_, _ = io.WriteString(w, parcelDoc)
			return
		}
		w.WriteHeader(http.StatusPreconditionFailed)
	}))
	defer srv.Close()

	client := tracking.NewClient(srv.URL, time.Second, srv.Client(), nil)
	p, err := client.GetParcel(t.Context(), "p-1")
	require.NoError(t, err)

	_, err = client.UpdateParcel(t.Context(), p)

	var statusErr *tracking.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusPreconditionFailed, statusErr.StatusCode)
}

func TestGetParcel_Unreachable_ReturnsError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	p, err := tracking.NewClient(url, time.Second, nil, nil).GetParcel(t.Context(), "p-1")

	require.Error(t, err)
	assert.Nil(t, p)
}

func TestNewClient_NonPositiveTimeout_UsesDefault(t *testing.T) {
	for _, timeout := range []time.Duration{0, -time.Second} {
		client := tracking.NewClient("http://tracking.local", timeout, nil, nil)

		assert.Equal(t, tracking.DefaultTimeout, client.Timeout())
	}
}
