package sitehandler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/xw1nchester/tca-backend/internal/apperror"
	"github.com/xw1nchester/tca-backend/internal/backend"
	"github.com/xw1nchester/tca-backend/internal/site"
	mocksiteservice "github.com/xw1nchester/tca-backend/internal/site/handler/mocks"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func serve(t *testing.T, mockBehavior func(s *mocksiteservice.MockService), method, target, body string) *httptest.ResponseRecorder {
	ctrl := gomock.NewController(t)
	service := mocksiteservice.NewMockService(ctrl)
	mockBehavior(service)

	router := chi.NewRouter()
	New(service, zap.NewNop()).Register(router)

	r := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	r.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	return w
}

func TestHandler_pageHandler(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		w := serve(t, func(s *mocksiteservice.MockService) {
			s.EXPECT().Page("home").Return(&site.Page{Slug: "home", Title: "Home", HTML: "<h1>Home</h1>"}, nil)
		}, http.MethodGet, "/site/pages/home", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"slug":"home"`)
	})

	t.Run("Not found", func(t *testing.T) {
		w := serve(t, func(s *mocksiteservice.MockService) {
			s.EXPECT().Page("nope").Return(nil, apperror.NewCodedError(backend.KindNoRow, "page not found"))
		}, http.MethodGet, "/site/pages/nope", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandler_tiersHandler(t *testing.T) {
	w := serve(t, func(s *mocksiteservice.MockService) {
		s.EXPECT().Tiers().Return(site.Tiers)
	}, http.MethodGet, "/site/membership", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Training Subscription"`)
}

func TestHandler_nominationHandler(t *testing.T) {
	receipt := site.Receipt{ID: "r1", ReceivedAt: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)}

	tests := []struct {
		name               string
		inputBody          string
		mockBehavior       func(s *mocksiteservice.MockService)
		expectedStatusCode int
	}{
		{
			name:      "Accepted",
			inputBody: `{"businessName":"Sparkle","contactName":"Jane","email":"jane@acme.com","businessType":"cleaning","yearsInBusiness":"5-10"}`,
			mockBehavior: func(s *mocksiteservice.MockService) {
				s.EXPECT().SubmitNomination(gomock.Any(), site.NominationRequest{
					BusinessName:    "Sparkle",
					ContactName:     "Jane",
					Email:           "jane@acme.com",
					BusinessType:    "cleaning",
					YearsInBusiness: "5-10",
				}).Return(receipt)
			},
			expectedStatusCode: http.StatusAccepted,
		},
		{
			name:               "Unknown business type",
			inputBody:          `{"businessName":"Sparkle","contactName":"Jane","email":"jane@acme.com","businessType":"juggling","yearsInBusiness":"5-10"}`,
			mockBehavior:       func(s *mocksiteservice.MockService) {},
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "Missing fields",
			inputBody:          `{}`,
			mockBehavior:       func(s *mocksiteservice.MockService) {},
			expectedStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(t, tt.mockBehavior, http.MethodPost, "/site/awards/nominations", tt.inputBody)

			assert.Equal(t, tt.expectedStatusCode, w.Code)
		})
	}
}

func TestHandler_contactHandler(t *testing.T) {
	t.Run("Accepted", func(t *testing.T) {
		w := serve(t, func(s *mocksiteservice.MockService) {
			s.EXPECT().SubmitContact(gomock.Any(), site.ContactRequest{Name: "Jane", Email: "jane@acme.com", Message: "Hi"}).
				Return(site.Receipt{ID: "r2"})
		}, http.MethodPost, "/site/contact", `{"name":"Jane","email":"jane@acme.com","message":"Hi"}`)

		assert.Equal(t, http.StatusAccepted, w.Code)
		assert.Contains(t, w.Body.String(), `"id":"r2"`)
	})

	t.Run("Invalid email", func(t *testing.T) {
		w := serve(t, func(s *mocksiteservice.MockService) {}, http.MethodPost, "/site/contact", `{"name":"Jane","email":"jane","message":"Hi"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "field Email is not a valid email")
	})
}
