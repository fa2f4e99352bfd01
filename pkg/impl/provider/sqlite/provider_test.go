package sqlite_test

import (
	. "github.com/mandelsoft/datacontainer/pkg/testutils"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mandelsoft/datacontainer/pkg/filter"
	me "github.com/mandelsoft/datacontainer/pkg/impl/provider/sqlite"
	"github.com/mandelsoft/datacontainer/pkg/model"
	"github.com/mandelsoft/datacontainer/pkg/provider"
)

func page(id string, pid any, sorting int, title string) *model.Model {
	return model.NewWithProperties("pages", id, map[string]any{"pid": pid, "sorting": sorting, "title": title})
}

var _ = Describe("sqlite provider", func() {
	var store *me.Store
	var pages provider.DataProvider

	BeforeEach(func() {
		store = Must(me.Open(":memory:"))
		pages = Must(store.Provider("pages"))
		MustBeSuccessful(pages.SaveEach(model.NewCollection(
			page("1", 0, 256, "Home"),
			page("2", 0, 128, "About"),
			page("3", "1", 128, "Team"),
			page("4", 1, 256, "Jobs"),
		)))
	})

	AfterEach(func() {
		MustBeSuccessful(store.Close())
	})

	Context("fetch", func() {
		It("fetches by id", func() {
			m := Must(pages.Fetch(pages.EmptyConfig().WithId("3")))
			Expect(m.GetProperty("title")).To(Equal("Team"))
			Expect(m.GetProperty("sorting")).To(Equal(int64(128)))
		})

		It("reports missing models", func() {
			_, err := pages.Fetch(pages.EmptyConfig().WithId("9"))
			Expect(err).To(MatchError(provider.ErrNotExist))
		})

		It("compares numbers and numeric strings", func() {
			cfg := pages.EmptyConfig().WithFilter(filter.Equal("pid", 1))
			Expect(Must(pages.FetchAll(cfg)).Ids()).To(Equal([]string{"3", "4"}))
			cfg = pages.EmptyConfig().WithFilter(filter.Equal("pid", "1"))
			Expect(Must(pages.FetchAll(cfg)).Ids()).To(Equal([]string{"3", "4"}))
		})

		It("matches numeric strings by value", func() {
			cfg := pages.EmptyConfig().WithFilter(filter.Equal("pid", "1.0"))
			Expect(Must(pages.FetchAll(cfg)).Ids()).To(Equal([]string{"3", "4"}))
			cfg = pages.EmptyConfig().WithFilter(filter.In("sorting", "128.0", 512))
			Expect(Must(pages.FetchAll(cfg)).Ids()).To(Equal([]string{"2", "3"}))
			cfg = pages.EmptyConfig().WithFilter(filter.Greater("pid", "0.5"))
			Expect(Must(pages.FetchAll(cfg)).Ids()).To(Equal([]string{"3", "4"}))
		})

		It("sorts numeric strings by value", func() {
			news := Must(store.Provider("news"))
			MustBeSuccessful(news.SaveEach(model.NewCollection(
				model.NewWithProperties("news", "a", map[string]any{"rank": "10"}),
				model.NewWithProperties("news", "b", map[string]any{"rank": "9"}),
				model.NewWithProperties("news", "c", map[string]any{"rank": 2}),
				model.NewWithProperties("news", "d", map[string]any{}),
			)))
			cfg := news.EmptyConfig().WithSorting(provider.SortBy("rank"))
			Expect(Must(news.FetchAll(cfg)).Ids()).To(Equal([]string{"d", "c", "b", "a"}))
			cfg = news.EmptyConfig().WithSorting(provider.SortBy("rank", provider.DESC))
			Expect(Must(news.FetchAll(cfg)).Ids()).To(Equal([]string{"a", "b", "c", "d"}))
		})

		It("sorts", func() {
			cfg := pages.EmptyConfig().
				WithFilter(filter.Equal("pid", 0)).
				WithSorting(provider.SortBy("sorting"))
			Expect(Must(pages.FetchAll(cfg)).Ids()).To(Equal([]string{"2", "1"}))
		})

		It("evaluates composite filters", func() {
			cfg := pages.EmptyConfig().WithFilter(filter.Or(
				filter.Greater("sorting", 200),
				filter.Like("title", "T*"),
			))
			Expect(Must(pages.FetchAll(cfg)).Ids()).To(Equal([]string{"1", "3", "4"}))

			cfg = pages.EmptyConfig().WithFilter(filter.In("id", 2, 4))
			Expect(Must(pages.FetchAll(cfg)).Ids()).To(Equal([]string{"2", "4"}))
		})

		It("pages and projects", func() {
			cfg := pages.EmptyConfig()
			cfg.SetStart(1).SetAmount(2).SetFields("title")
			col := Must(pages.FetchAll(cfg))
			Expect(col.Ids()).To(Equal([]string{"2", "3"}))
			Expect(col.Get(0).PropertyNames()).To(Equal([]string{"title"}))
		})

		It("rejects invalid filters", func() {
			_, err := pages.FetchAll(pages.EmptyConfig().WithFilter(filter.Filter{Operation: "~", Property: "a"}))
			Expect(err).To(MatchError(model.ErrInvalidArgument))
		})
	})

	Context("write", func() {
		It("updates and assigns ids", func() {
			m := Must(pages.Fetch(pages.EmptyConfig().WithId("1")))
			m.SetProperty("sorting", 512)
			MustBeSuccessful(pages.Save(m))
			Expect(Must(pages.Fetch(pages.EmptyConfig().WithId("1"))).GetProperty("sorting")).To(Equal(int64(512)))

			n := pages.GetEmptyModel()
			MustBeSuccessful(pages.Save(n))
			Expect(n.GetId()).NotTo(BeEmpty())
			Expect(Must(pages.FetchAll(pages.EmptyConfig())).Len()).To(Equal(5))
		})

		It("separates providers", func() {
			news := Must(store.Provider("news"))
			MustBeSuccessful(news.Save(model.New("news", "1")))
			Expect(Must(news.FetchAll(news.EmptyConfig())).Ids()).To(Equal([]string{"1"}))
			Expect(Must(store.ProviderNames())).To(Equal([]string{"news", "pages"}))
		})

		It("checks the database", func() {
			MustBeSuccessful(store.Check())
		})

		It("deletes", func() {
			MustBeSuccessful(pages.Delete(model.New("pages", "2")))
			Expect(pages.Delete(model.New("pages", "2"))).To(MatchError(provider.ErrNotExist))
		})
	})
})
