package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"flare_server/mocks"
	"flare_server/models"
	"flare_server/services"
)

func newAccessRouter() (*mux.Router, *mocks.UserStoreMock) {
	users := new(mocks.UserStoreMock)
	controller := NewAccessController(&services.AccessService{Users: users})

	r := mux.NewRouter()
	r.HandleFunc("/private/request", controller.HandleRequestAccess).Methods("POST")
	r.HandleFunc("/private/accept", controller.HandleAcceptRequest).Methods("POST")
	r.HandleFunc("/private/decline", controller.HandleDeclineRequest).Methods("POST")
	r.HandleFunc("/private/revoke", controller.HandleRevokeAccess).Methods("POST")
	r.HandleFunc("/private/{ownerId}/photos", controller.HandleGetPrivatePhotos).Methods("GET")
	r.HandleFunc("/private/{ownerId}/state", controller.HandleGetAccessState).Methods("GET")
	return r, users
}

func TestHandleRequestAccess(t *testing.T) {
	router, users := newAccessRouter()
	users.On("GetUser", mock.Anything, "owner").Return(&models.UserRecord{UserID: "owner"}, nil)
	users.On("AddPrivateRequest", mock.Anything, "owner", "viewer").Return(nil)

	rec := httptest.NewRecorder()
	req := authedRequest(t, http.MethodPost, "/private/request", "viewer", map[string]string{"ownerId": "owner"})
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	users.AssertExpectations(t)
}

func TestHandleRequestAccessRequiresOwner(t *testing.T) {
	router, _ := newAccessRouter()

	rec := httptest.NewRecorder()
	req := authedRequest(t, http.MethodPost, "/private/request", "viewer", map[string]string{})
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleAcceptRequestWithoutPending(t *testing.T) {
	router, users := newAccessRouter()
	users.On("AcceptPrivateRequest", mock.Anything, "owner", "viewer").
		Return(models.ErrInvalidArgument("no pending request from 'viewer'"))

	rec := httptest.NewRecorder()
	req := authedRequest(t, http.MethodPost, "/private/accept", "owner", map[string]string{"requesterId": "viewer"})
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, string(models.KindInvalidArgument), decodeResponse(t, rec)["kind"])
}

func TestHandleRevokeAccess(t *testing.T) {
	router, users := newAccessRouter()
	users.On("RemovePrivateAccepted", mock.Anything, "owner", "viewer").Return(nil)

	rec := httptest.NewRecorder()
	req := authedRequest(t, http.MethodPost, "/private/revoke", "owner", map[string]string{"requesterId": "viewer"})
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	users.AssertExpectations(t)
}

func TestHandleGetPrivatePhotosDeniedWithoutGrant(t *testing.T) {
	router, users := newAccessRouter()
	users.On("GetUser", mock.Anything, "owner").
		Return(&models.UserRecord{UserID: "owner", PrivatePhotos: []string{"p1.jpg"}}, nil)

	rec := httptest.NewRecorder()
	req := authedRequest(t, http.MethodGet, "/private/owner/photos", "viewer", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHandleGetPrivatePhotosGranted(t *testing.T) {
	router, users := newAccessRouter()
	users.On("GetUser", mock.Anything, "owner").
		Return(&models.UserRecord{
			UserID:          "owner",
			PrivatePhotos:   []string{"p1.jpg", "p2.jpg"},
			PrivateAccepted: []string{"viewer"},
		}, nil)

	rec := httptest.NewRecorder()
	req := authedRequest(t, http.MethodGet, "/private/owner/photos", "viewer", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeResponse(t, rec)
	photos, ok := body["privatePhotos"].([]interface{})
	require.True(t, ok)
	assert.Len(t, photos, 2)
}

func TestHandleGetAccessState(t *testing.T) {
	router, users := newAccessRouter()
	users.On("GetUser", mock.Anything, "owner").
		Return(&models.UserRecord{UserID: "owner", PrivateRequests: []string{"viewer"}}, nil)

	rec := httptest.NewRecorder()
	req := authedRequest(t, http.MethodGet, "/private/owner/state", "viewer", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.AccessRequested, decodeResponse(t, rec)["state"])
}
