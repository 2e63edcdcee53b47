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

func newProfileRouter() (*mux.Router, *mocks.UserStoreMock) {
	users := new(mocks.UserStoreMock)
	controller := NewUserProfileController(&services.UserProfileService{Users: users})

	r := mux.NewRouter()
	r.HandleFunc("/profiles", controller.HandleCreateProfile).Methods("POST")
	r.HandleFunc("/profiles/candidates", controller.HandleGetCandidates).Methods("GET")
	r.HandleFunc("/profiles/report", controller.HandleReportUser).Methods("POST")
	r.HandleFunc("/profiles/{userId}", controller.HandleGetProfile).Methods("GET")
	r.HandleFunc("/profiles/{userId}", controller.HandleUpdateProfile).Methods("PATCH")
	r.HandleFunc("/profiles/{userId}", controller.HandleDeleteAccount).Methods("DELETE")
	return r, users
}

func TestHandleCreateProfileUsesCallerIdentity(t *testing.T) {
	router, users := newProfileRouter()
	users.On("PutUser", mock.Anything, mock.MatchedBy(func(u *models.UserRecord) bool {
		return u.UserID == "alice"
	})).Return(nil)

	rec := httptest.NewRecorder()
	req := authedRequest(t, http.MethodPost, "/profiles", "alice", map[string]string{"name": "Alice"})
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	users.AssertExpectations(t)
}

func TestHandleCreateProfileRejectsForeignUserID(t *testing.T) {
	router, users := newProfileRouter()

	rec := httptest.NewRecorder()
	req := authedRequest(t, http.MethodPost, "/profiles", "alice", map[string]string{"userId": "bob"})
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	users.AssertNotCalled(t, "PutUser", mock.Anything, mock.Anything)
}

func TestHandleGetProfileOwnerSeesFullRecord(t *testing.T) {
	router, users := newProfileRouter()
	users.On("GetUser", mock.Anything, "alice").Return(&models.UserRecord{
		UserID:     "alice",
		Name:       "Alice",
		LikedUsers: []string{"bob"},
	}, nil)

	rec := httptest.NewRecorder()
	req := authedRequest(t, http.MethodGet, "/profiles/alice", "alice", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	profile := decodeResponse(t, rec)["profile"].(map[string]interface{})
	assert.Contains(t, profile, "likedUsers")
}

func TestHandleGetProfileOthersSeeSummaryOnly(t *testing.T) {
	router, users := newProfileRouter()
	users.On("GetUser", mock.Anything, "alice").Return(&models.UserRecord{
		UserID:        "alice",
		Name:          "Alice",
		LikedUsers:    []string{"bob"},
		PrivatePhotos: []string{"secret.jpg"},
	}, nil)

	rec := httptest.NewRecorder()
	req := authedRequest(t, http.MethodGet, "/profiles/alice", "carol", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	profile := decodeResponse(t, rec)["profile"].(map[string]interface{})
	assert.Equal(t, "Alice", profile["name"])
	assert.NotContains(t, profile, "likedUsers")
	assert.NotContains(t, profile, "privatePhotos")
}

func TestHandleUpdateProfileOnlyOwner(t *testing.T) {
	router, users := newProfileRouter()

	rec := httptest.NewRecorder()
	req := authedRequest(t, http.MethodPatch, "/profiles/alice", "mallory", map[string]string{"name": "X"})
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	users.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleGetCandidatesInvalidLimit(t *testing.T) {
	router, _ := newProfileRouter()

	rec := httptest.NewRecorder()
	req := authedRequest(t, http.MethodGet, "/profiles/candidates?limit=abc", "alice", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGetCandidates(t *testing.T) {
	router, users := newProfileRouter()
	users.On("GetUser", mock.Anything, "alice").Return(&models.UserRecord{UserID: "alice"}, nil)
	users.On("ScanCandidates", mock.Anything, mock.Anything, "", int32(10)).
		Return([]models.UserRecord{{UserID: "bob", Name: "Bob"}}, "token123", nil)

	rec := httptest.NewRecorder()
	req := authedRequest(t, http.MethodGet, "/profiles/candidates?limit=10", "alice", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeResponse(t, rec)
	candidates, ok := body["candidates"].([]interface{})
	require.True(t, ok)
	require.Len(t, candidates, 1)
	assert.Equal(t, "token123", body["nextToken"])
}

func TestHandleDeleteAccount(t *testing.T) {
	router, users := newProfileRouter()
	record := &models.UserRecord{UserID: "alice"}
	users.On("GetUser", mock.Anything, "alice").Return(record, nil)
	users.On("ArchiveUser", mock.Anything, record).Return(nil)

	rec := httptest.NewRecorder()
	req := authedRequest(t, http.MethodDelete, "/profiles/alice", "alice", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	users.AssertExpectations(t)
}

func TestHandleReportUser(t *testing.T) {
	router, users := newProfileRouter()
	users.On("RecordReport", mock.Anything, mock.MatchedBy(func(r *models.Report) bool {
		return r.ReporterID == "alice" && r.ReportedID == "bob" && r.Reason == "spam"
	})).Return(nil)

	rec := httptest.NewRecorder()
	req := authedRequest(t, http.MethodPost, "/profiles/report", "alice",
		map[string]string{"reportedId": "bob", "reason": "spam"})
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, decodeResponse(t, rec)["reportId"])
	users.AssertExpectations(t)
}
