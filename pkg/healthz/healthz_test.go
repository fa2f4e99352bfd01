package healthz_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mandelsoft/datacontainer/pkg/healthz"
)

var _ = Describe("health checks", func() {
	AfterEach(func() {
		healthz.Unregister("a")
		healthz.Unregister("b")
	})

	It("reports success", func() {
		healthz.Register("b", func() error { return nil })
		healthz.Register("a", func() error { return nil })
		rec := httptest.NewRecorder()
		healthz.Healthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(Equal("a: ok\nb: ok\n"))
	})

	It("reports failures", func() {
		healthz.Register("a", func() error { return fmt.Errorf("store unavailable") })
		healthz.Register("b", func() error { return nil })
		Expect(healthz.IsHealthy()).To(BeFalse())
		rec := httptest.NewRecorder()
		healthz.Healthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		Expect(rec.Code).To(Equal(http.StatusInternalServerError))
		Expect(rec.Body.String()).To(Equal("a: store unavailable\nb: ok\n"))
	})
})
