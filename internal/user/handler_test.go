package user_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/frahmantamala/visitor-management/internal/transport"
	"github.com/frahmantamala/visitor-management/internal/user"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

var _ = Describe("User Handler", func() {
	var handler *user.Handler

	BeforeEach(func() {
		lg := slog.New(slog.NewTextHandler(io.Discard, nil))
		handler = user.NewHandler(user.NewService(newMockUserRepository(), bcrypt.MinCost, lg))
	})

	signup := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(body))
		w := httptest.NewRecorder()
		handler.Signup(w, req)
		return w
	}

	It("answers 201 on success", func() {
		w := signup(`{"username":"alice","password":"secret"}`)
		Expect(w.Code).To(Equal(http.StatusCreated))

		var resp user.SignupResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.Message).To(Equal("User registered successfully"))
	})

	It("answers 409 on a duplicate username", func() {
		Expect(signup(`{"username":"alice","password":"secret"}`).Code).To(Equal(http.StatusCreated))

		w := signup(`{"username":"alice","password":"other"}`)
		Expect(w.Code).To(Equal(http.StatusConflict))

		var resp transport.ErrorResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.Code).To(Equal(http.StatusConflict))
		Expect(resp.Error).To(Equal("Username already exists"))
	})

	It("answers 400 on malformed JSON", func() {
		Expect(signup(`{"username":`).Code).To(Equal(http.StatusBadRequest))
	})

	It("answers 400 on an unknown role", func() {
		Expect(signup(`{"username":"bob","password":"secret","role":"admin"}`).Code).To(Equal(http.StatusBadRequest))
	})
})
