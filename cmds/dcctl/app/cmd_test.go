package app_test

import (
	"bytes"

	. "github.com/mandelsoft/datacontainer/pkg/testutils"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mandelsoft/vfs/pkg/vfs"

	"github.com/mandelsoft/datacontainer/cmds/dcctl/app"
)

var _ = Describe("dcctl", func() {
	var fs vfs.FileSystem
	var buf *bytes.Buffer

	run := func(args ...string) error {
		buf.Reset()
		cmd := app.New(fs)
		cmd.SetOut(buf)
		cmd.SetErr(buf)
		cmd.SetArgs(append([]string{"--config", "testdata/relationship.yaml", "--store", "testdata/store"}, args...))
		return cmd.Execute()
	}

	BeforeEach(func() {
		fs = Must(TestFileSystem("testdata", false))
		buf = bytes.NewBuffer(nil)
	})

	AfterEach(func() {
		vfs.Cleanup(fs)
	})

	Context("get", func() {
		It("lists root models", func() {
			MustBeSuccessful(run("get"))
			Expect("\n" + buf.String()).To(Equal(`
ID       SORTING PID TITLE
pages::1 128     0   Home
pages::3 256     0   Contact
`))
		})

		It("gets a model by plain id", func() {
			MustBeSuccessful(run("get", "2", "-o", "json"))
			Expect(buf.String()).To(MatchJSON(`{"id":"2","provider":"pages","properties":{"pid":1,"sorting":128,"title":"About"}}`))
		})

		It("gets models as yaml list", func() {
			MustBeSuccessful(run("get", "pages::1", "pages::3", "-o", "yaml"))
			Expect(buf.String()).To(ContainSubstring("items:"))
			Expect(buf.String()).To(ContainSubstring("title: Contact"))
		})

		It("fails for unknown models", func() {
			Expect(run("get", "4")).NotTo(Succeed())
		})
	})

	Context("relations", func() {
		It("shows the parent", func() {
			MustBeSuccessful(run("parent", "2", "-o", "json"))
			Expect(buf.String()).To(MatchJSON(`{"id":"1","provider":"pages","properties":{"pid":0,"sorting":128,"title":"Home"}}`))
		})

		It("shows siblings", func() {
			MustBeSuccessful(run("siblings", "pages::3"))
			Expect(buf.String()).To(ContainSubstring("pages::1"))
			Expect(buf.String()).To(ContainSubstring("pages::3"))
			Expect(buf.String()).NotTo(ContainSubstring("pages::2"))
		})

		It("shows children", func() {
			MustBeSuccessful(run("children", "1"))
			Expect(buf.String()).To(ContainSubstring("pages::2 128     1   About"))
		})

		It("shows the tree", func() {
			MustBeSuccessful(run("tree", "-f", "title"))
			Expect("\n" + buf.String()).To(Equal(`
pages::1 (Home)
  pages::2 (About)
pages::3 (Contact)
`))
		})
	})

	Context("move", func() {
		It("moves a model into a parent", func() {
			MustBeSuccessful(run("move", "3", "--into", "1"))
			MustBeSuccessful(run("tree"))
			Expect("\n" + buf.String()).To(Equal(`
pages::1
  pages::3
  pages::2
`))
		})

		It("moves a model behind an anchor", func() {
			MustBeSuccessful(run("move", "3", "--after", "2"))
			MustBeSuccessful(run("tree"))
			Expect("\n" + buf.String()).To(Equal(`
pages::1
  pages::2
  pages::3
`))
		})

		It("reports unknown targets", func() {
			Expect(run("move", "3", "--into", "4")).To(MatchError(ContainSubstring("4: ")))
			Expect(run("move", "3", "--after", "pages::4")).To(MatchError(ContainSubstring("pages::4: ")))
		})

		It("rejects moving a model below itself", func() {
			Expect(run("move", "1", "--into", "2")).To(MatchError(ContainSubstring("own subtree")))
			Expect(run("move", "1", "--into", "1")).To(MatchError(ContainSubstring("own subtree")))
			MustBeSuccessful(run("tree"))
			Expect("\n" + buf.String()).To(Equal(`
pages::1
  pages::2
pages::3
`))
		})

		It("requires exactly one target", func() {
			Expect(run("move", "3")).To(MatchError(ContainSubstring("exactly one of")))
			Expect(run("move", "3", "--root", "--into", "1")).To(MatchError(ContainSubstring("exactly one of")))
		})

		It("renumbers siblings", func() {
			MustBeSuccessful(run("renumber", "1"))
			Expect(buf.String()).To(Equal("no model found\n"))

			MustBeSuccessful(run("move", "3", "--after", "2"))
			MustBeSuccessful(run("renumber", "2", "-o", "yaml"))
			Expect(buf.String()).To(Equal("items: []\n"))
		})
	})
})
