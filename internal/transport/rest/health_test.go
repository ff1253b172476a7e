package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/frahmantamala/visitor-management/internal/database"
	"github.com/frahmantamala/visitor-management/internal/transport/rest"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Health", func() {
	It("answers 503 when a component fails", func() {
		db, err := database.OpenMemory(context.Background())
		Expect(err).NotTo(HaveOccurred())
		defer db.Close()

		health := rest.NewHealthHandler(db.Std(), db.Driver)
		health.Register("photos", func(context.Context) (map[string]any, error) {
			return nil, errors.New("upload dir missing")
		})

		w := httptest.NewRecorder()
		health.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		Expect(w.Code).To(Equal(http.StatusServiceUnavailable))

		var resp rest.HealthResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.Components["database"].Status).To(Equal(rest.HealthHealthy))
		Expect(resp.Components["database"].Details).To(HaveKeyWithValue("driver", "sqlite"))
		Expect(resp.Components["photos"].Error).To(Equal("upload dir missing"))
	})
})
