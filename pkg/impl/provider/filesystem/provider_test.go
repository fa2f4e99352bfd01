package filesystem_test

import (
	. "github.com/mandelsoft/datacontainer/pkg/testutils"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mandelsoft/vfs/pkg/vfs"

	"github.com/mandelsoft/datacontainer/pkg/filter"
	me "github.com/mandelsoft/datacontainer/pkg/impl/provider/filesystem"
	"github.com/mandelsoft/datacontainer/pkg/model"
	"github.com/mandelsoft/datacontainer/pkg/provider"
)

var _ = Describe("file system provider", func() {
	var fs vfs.FileSystem
	var store *me.Store
	var pages provider.DataProvider

	BeforeEach(func() {
		fs = Must(TestFileSystem("testdata", false))
		store = Must(me.New("testdata", fs))
		pages = Must(store.Provider("pages"))
	})

	AfterEach(func() {
		vfs.Cleanup(fs)
	})

	Context("names", func() {
		It("checks names", func() {
			Expect(me.CheckName("A")).To(BeTrue())
			Expect(me.CheckName("a-_12-")).To(BeTrue())
			Expect(me.CheckName("0b7f3e52-41aa-4ad5-9b4b-3c6cc2c1e4a1")).To(BeTrue())
			Expect(me.CheckName("-a")).To(BeFalse())
			Expect(me.CheckName("a/b")).To(BeFalse())
			Expect(me.CheckName("")).To(BeFalse())
		})

		It("rejects invalid provider names", func() {
			_, err := store.Provider("../x")
			Expect(err).To(MatchError(model.ErrInvalidArgument))
		})

		It("lists providers", func() {
			Expect(Must(store.ProviderNames())).To(ConsistOf("pages", "news"))
		})

		It("checks the store", func() {
			MustBeSuccessful(store.Check())
		})
	})

	Context("fetch", func() {
		It("fetches by id", func() {
			m := Must(pages.Fetch(pages.EmptyConfig().WithId("2")))
			Expect(m.GetProperty("title")).To(Equal("About"))
			Expect(m.GetInt64Property("sorting")).To(Equal(int64(128)))
		})

		It("reports missing models", func() {
			_, err := pages.Fetch(pages.EmptyConfig().WithId("9"))
			Expect(err).To(MatchError(provider.ErrNotExist))
		})

		It("does not resolve ids outside the provider", func() {
			for _, id := range []string{"../news/n1", "../../x", ".hidden"} {
				_, err := pages.Fetch(pages.EmptyConfig().WithId(id))
				Expect(err).To(MatchError(provider.ErrNotExist), id)
			}
			Expect(pages.Delete(model.New("pages", "../news/n1"))).To(MatchError(provider.ErrNotExist))
		})

		It("filters and sorts", func() {
			cfg := pages.EmptyConfig()
			cfg.SetFilter(filter.Equal("pid", 0)).SetSorting(provider.SortBy("sorting", provider.DESC))
			Expect(Must(pages.FetchAll(cfg)).Ids()).To(Equal([]string{"3", "1"}))
		})

		It("handles empty providers", func() {
			p := Must(store.Provider("empty"))
			Expect(Must(p.FetchAll(p.EmptyConfig())).Len()).To(Equal(0))
		})
	})

	Context("write", func() {
		It("writes models", func() {
			m := pages.GetEmptyModel()
			m.SetProperty("pid", "3")
			m.SetProperty("sorting", 128)
			MustBeSuccessful(pages.Save(m))
			Expect(m.GetId()).NotTo(BeEmpty())

			r := Must(pages.Fetch(pages.EmptyConfig().WithId(m.GetId())))
			Expect(r.Properties()).To(HaveKeyWithValue("pid", "3"))
			Expect(Must(vfs.Exists(fs, "testdata/"+me.Path(m)))).To(BeTrue())
		})

		It("updates models", func() {
			m := Must(pages.Fetch(pages.EmptyConfig().WithId("1")))
			m.SetProperty("sorting", 512)
			MustBeSuccessful(pages.SaveEach(model.NewCollection(m)))
			Expect(Must(pages.Fetch(pages.EmptyConfig().WithId("1"))).GetInt64Property("sorting")).To(Equal(int64(512)))
		})

		It("does not rewrite unchanged models", func() {
			m := Must(pages.Fetch(pages.EmptyConfig().WithId("3")))
			before := Must(vfs.ReadFile(fs, "testdata/pages/3.yaml"))
			MustBeSuccessful(pages.Save(m))
			Expect(Must(vfs.ReadFile(fs, "testdata/pages/3.yaml"))).To(Equal(before))
		})

		It("deletes models", func() {
			MustBeSuccessful(pages.Delete(model.New("pages", "2")))
			_, err := pages.Fetch(pages.EmptyConfig().WithId("2"))
			Expect(err).To(MatchError(provider.ErrNotExist))
			Expect(pages.Delete(model.New("pages", "2"))).To(MatchError(provider.ErrNotExist))
		})
	})
})
